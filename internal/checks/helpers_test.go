package checks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spboyer/skillgate/internal/budget"
	"github.com/spboyer/skillgate/internal/metrics"
	"github.com/spboyer/skillgate/internal/models"
	"github.com/spboyer/skillgate/internal/skill"
	"github.com/stretchr/testify/require"
)

const goodDescription = "Extracts tables from PDF files into CSV. Use when the user asks to convert PDF tables."

func skillDoc(name, description, body string) string {
	return "---\nname: " + name + "\ndescription: " + description + "\n---\n" + body
}

// writeBundle creates a skill directory with SKILL.md and the given extra
// files, keyed by slash-separated relative path.
func writeBundle(t *testing.T, skillMD string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "pdf-tools")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, skill.FileName), []byte(skillMD), 0o644))
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

// inputFor builds the gate input the way the validator does.
func inputFor(t *testing.T, dir string) *Input {
	t.Helper()
	b := skill.Load(dir)
	require.NoError(t, b.Err)
	_, doc, fm := (&SyntaxGate{}).Check(b.Raw)
	cfg := budget.Default()
	return &Input{
		Bundle:      b,
		Doc:         doc,
		Frontmatter: fm,
		Metrics:     metrics.NewCalculator(cfg).Calculate(dir, doc.Body),
		Config:      cfg,
	}
}

func messages(issues []models.Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Message
	}
	return out
}
