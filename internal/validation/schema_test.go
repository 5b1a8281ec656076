package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateFrontmatter_Valid(t *testing.T) {
	errs := ValidateFrontmatter(map[string]any{
		"name":           "my-skill",
		"description":    "Use when testing",
		"license":        "MIT",
		"allowed-tools":  []any{"Read", "Grep"},
		"metadata":       map[string]any{"owner": "me"},
		"version":        1.0,
		"user-invocable": true,
		"compatibility":  map[string]any{"editor": "any"},
	})
	require.Empty(t, errs)
}

func TestValidateFrontmatter_AllowedToolsString(t *testing.T) {
	require.Empty(t, ValidateFrontmatter(map[string]any{"allowed-tools": "Read, Grep"}))
}

func TestValidateFrontmatter_Invalid(t *testing.T) {
	errs := ValidateFrontmatter(map[string]any{
		"license":        42,
		"user-invocable": "yes",
		"hooks":          []any{"a"},
	})
	require.Len(t, errs, 3)
	fields := []string{errs[0].Field, errs[1].Field, errs[2].Field}
	require.Equal(t, []string{"hooks", "license", "user-invocable"}, fields)
	for _, e := range errs {
		require.NotEmpty(t, e.Message)
		require.Contains(t, e.String(), e.Field+": ")
	}
}

func TestValidateFrontmatter_NestedLocation(t *testing.T) {
	errs := ValidateFrontmatter(map[string]any{
		"compatibility": map[string]any{"editor": 3},
	})
	require.NotEmpty(t, errs)
	require.Equal(t, "compatibility", errs[0].Field)
}

func TestValidateReportJSON_ParseError(t *testing.T) {
	errs := ValidateReportJSON([]byte("{not json"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Message, "JSON parse error")
}

func TestValidateReportJSON_MissingFields(t *testing.T) {
	errs := ValidateReportJSON([]byte(`{"skill": "x"}`))
	require.NotEmpty(t, errs)
}
