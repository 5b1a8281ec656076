package checks

import (
	"testing"

	"github.com/spboyer/skillgate/internal/models"
	"github.com/spboyer/skillgate/internal/skill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSemantic(t *testing.T, description, body string) *Result {
	t.Helper()
	in := &Input{
		Bundle:      &skill.Bundle{Dir: t.TempDir()},
		Doc:         &skill.Document{Body: body},
		Frontmatter: &skill.Frontmatter{Name: "pdf-tools", Description: description},
	}
	return (&SemanticGate{}).Run(t.Context(), in)
}

func TestSemanticGate_Clean(t *testing.T) {
	res := runSemantic(t, goodDescription, "# PDF\n\nRun the extractor and check the output.\n")

	assert.Equal(t, models.StatusPass, res.Status)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestSemanticGate_SkipsWithoutFrontmatter(t *testing.T) {
	in := &Input{Bundle: &skill.Bundle{}, Doc: &skill.Document{Body: "TODO: write"}}
	res := (&SemanticGate{}).Run(t.Context(), in)

	assert.Equal(t, models.StatusSkip, res.Status)
	assert.Empty(t, res.Errors)
}

func TestSemanticGate_Description(t *testing.T) {
	t.Run("no trigger phrase", func(t *testing.T) {
		res := runSemantic(t, "Extracts tables from PDF files and writes them to CSV files on disk.", "body")
		assert.Equal(t, models.StatusPass, res.Status)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0].Message, "no usage trigger")
	})

	t.Run("trigger phrase case-insensitive", func(t *testing.T) {
		res := runSemantic(t, "Extracts tables from PDF files into CSV. USE WHEN converting PDF tables.", "body")
		assert.Empty(t, res.Warnings)
	})

	t.Run("creating phrasing", func(t *testing.T) {
		res := runSemantic(t, "Generates PDF reports for creating summaries whenever users want tables.", "body")
		assert.Empty(t, res.Warnings)
	})

	t.Run("short", func(t *testing.T) {
		res := runSemantic(t, "Use when parsing PDFs.", "body")
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, "Description is only 22 characters (recommended at least 50)", res.Warnings[0].Message)
	})

	t.Run("empty description is left to syntax", func(t *testing.T) {
		res := runSemantic(t, "", "body")
		assert.Empty(t, res.Warnings)
	})
}

func TestSemanticGate_Placeholders(t *testing.T) {
	res := runSemantic(t, goodDescription, "# Steps\n\n[TODO: fill in]\n\n[INSERT example]\n\n[TODO: and this]\n")

	assert.Equal(t, models.StatusFail, res.Status)
	assert.Equal(t, []string{
		`Unresolved placeholder "[TODO" in body`,
		`Unresolved placeholder "[INSERT" in body`,
	}, messages(res.Errors))
	for _, e := range res.Errors {
		assert.Equal(t, models.GateSemantic, e.Gate)
	}
}

func TestSemanticGate_PlaceholderCaseSensitive(t *testing.T) {
	res := runSemantic(t, goodDescription, "Keep a [todo] list of pages.\n")
	assert.Empty(t, res.Errors)
}

func TestSemanticGate_TemplateSyntaxPasses(t *testing.T) {
	body := "# Templates\n\nRender the greeting with {{ .Name }} in the page.\n\n" +
		"TODO: and FIXME comments in scripts are left alone.\n\n" +
		"```markdown\n[TODO: describe the step]\n```\n\n" +
		"Inline `[PLACEHOLDER]` shows the marker syntax.\n"
	res := runSemantic(t, goodDescription, body)

	assert.Equal(t, models.StatusPass, res.Status)
	assert.Empty(t, res.Errors, messages(res.Errors))
}

func TestSemanticGate_DirectiveVoice(t *testing.T) {
	tests := []struct {
		body string
		warn bool
	}{
		{"You should run the script first. You must check output.", true},
		{"Then you need to convert the file.", true},
		{"You can run the script.", false},
		{"This will convert the file.", false},
		{"Run the script.", false},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			res := runSemantic(t, goodDescription, tt.body)
			if tt.warn {
				require.Len(t, res.Warnings, 1)
				assert.Contains(t, res.Warnings[0].Message, "second-person directive")
				assert.Equal(t, models.StatusPass, res.Status)
			} else {
				assert.Empty(t, res.Warnings)
			}
		})
	}
}
