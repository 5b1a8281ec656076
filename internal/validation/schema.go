// Package validation checks documents against the embedded JSON schemas.
package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spboyer/skillgate/schemas"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// frontmatterSchema is the compiled JSON Schema for SKILL.md headers.
var frontmatterSchema *jsonschema.Schema

// reportSchema is the compiled JSON Schema for JSON reports.
var reportSchema *jsonschema.Schema

func init() {
	frontmatterSchema = mustCompileSchema(schemas.FrontmatterSchemaJSON, "frontmatter.schema.json")
	reportSchema = mustCompileSchema(schemas.ReportSchemaJSON, "report.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// FieldError is one schema violation.
type FieldError struct {
	// Field is the top-level key the violation sits under, or "" for the
	// document root.
	Field   string
	Message string
}

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidateFrontmatter checks the value types of a parsed header mapping.
// Unknown keys are not reported here.
func ValidateFrontmatter(fields map[string]any) []FieldError {
	return validateAgainstSchema(frontmatterSchema, convertToJSONCompatible(fields))
}

// ValidateReportJSON checks a JSON-encoded report.
func ValidateReportJSON(data []byte) []FieldError {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return []FieldError{{Message: fmt.Sprintf("JSON parse error: %v", err)}}
	}
	return validateAgainstSchema(reportSchema, doc)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []FieldError {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []FieldError{{Message: fmt.Sprintf("schema: %v", err)}}
	}
	var errs []FieldError
	collectSchemaErrors(ve, &errs)
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]FieldError) {
	if len(ve.Causes) == 0 {
		fe := FieldError{Message: ve.ErrorKind.LocalizedString(defaultPrinter)}
		if len(ve.InstanceLocation) > 0 {
			fe.Field = ve.InstanceLocation[0]
			if len(ve.InstanceLocation) > 1 {
				fe.Message = "/" + strings.Join(ve.InstanceLocation[1:], "/") + ": " + fe.Message
			}
		}
		*errs = append(*errs, fe)
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// convertToJSONCompatible converts YAML-decoded values to JSON-compatible types.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[fmt.Sprint(k)] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	default:
		return val
	}
}
