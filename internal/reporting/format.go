// Package reporting renders a SkillReport in the supported output formats.
// Every renderer is a pure function of the report and its options.
package reporting

import (
	"fmt"
	"strings"

	"github.com/spboyer/skillgate/internal/models"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatXML   Format = "xml"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatJUnit Format = "junit"
)

// Formats lists the accepted format names, aliases excluded.
var Formats = []Format{FormatTable, FormatXML, FormatYAML, FormatJSON, FormatJUnit}

// ParseFormat maps a user-supplied name to a Format. "structured" is an alias
// for xml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "table":
		return FormatTable, nil
	case "xml", "structured":
		return FormatXML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "junit":
		return FormatJUnit, nil
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q (expected one of %s)", name, strings.Join(names, ", "))
}

const (
	DefaultWidth = 80
	MinWidth     = 60
)

// Options tune rendering. Only the table format reads them.
type Options struct {
	// Width is the table width in columns. Zero means DefaultWidth; values
	// below MinWidth are raised to it.
	Width int
}

func (o Options) width() int {
	switch {
	case o.Width <= 0:
		return DefaultWidth
	case o.Width < MinWidth:
		return MinWidth
	default:
		return o.Width
	}
}

// Render encodes report in format.
func Render(report *models.SkillReport, format Format, opts Options) (string, error) {
	switch format {
	case FormatTable, "":
		return Table(report, opts), nil
	case FormatXML:
		return XML(report)
	case FormatYAML:
		return YAML(report)
	case FormatJSON:
		return JSON(report)
	case FormatJUnit:
		return JUnit(report)
	}
	return "", fmt.Errorf("unknown format %q", format)
}
