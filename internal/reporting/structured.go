package reporting

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/spboyer/skillgate/internal/models"
	"gopkg.in/yaml.v3"
)

// XML renders report as an indented <skill_report> document.
func XML(report *models.SkillReport) (string, error) {
	data, err := xml.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling XML report: %w", err)
	}
	return xml.Header + string(data) + "\n", nil
}

// JSON renders report as indented JSON.
func JSON(report *models.SkillReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON report: %w", err)
	}
	return string(data) + "\n", nil
}

// YAML renders report as a YAML document.
func YAML(report *models.SkillReport) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return "", fmt.Errorf("marshaling YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("marshaling YAML report: %w", err)
	}
	return buf.String(), nil
}
