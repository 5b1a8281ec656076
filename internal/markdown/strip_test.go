package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCode(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		keep    []string
		removed []string
	}{
		{
			name:    "fenced block",
			source:  "See references/real.md\n\n```bash\ncat references/missing.md\n```\n",
			keep:    []string{"references/real.md"},
			removed: []string{"references/missing.md"},
		},
		{
			name:    "tilde fence",
			source:  "Intro\n\n~~~\nscripts/gone.py\n~~~\n",
			keep:    []string{"Intro"},
			removed: []string{"scripts/gone.py"},
		},
		{
			name:    "inline span",
			source:  "Run `scripts/tool.sh` and read assets/logo.png\n",
			keep:    []string{"assets/logo.png"},
			removed: []string{"scripts/tool.sh"},
		},
		{
			name:    "fence inside list",
			source:  "- item\n\n  ```\n  references/in-list.md\n  ```\n",
			removed: []string{"references/in-list.md"},
		},
		{
			name:   "no code",
			source: "plain references/a.md text\n",
			keep:   []string{"plain references/a.md text"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripCode(tt.source)
			require.Len(t, got, len(tt.source))
			require.Equal(t, strings.Count(tt.source, "\n"), strings.Count(got, "\n"))
			for _, k := range tt.keep {
				assert.Contains(t, got, k)
			}
			for _, r := range tt.removed {
				assert.NotContains(t, got, r)
			}
		})
	}
}

func TestStripCode_Frontmatter(t *testing.T) {
	source := "---\nname: demo\ndescription: Reads references/a.md\n---\n\nBody `inline`\n"
	got := StripCode(source)
	assert.Contains(t, got, "references/a.md")
	assert.NotContains(t, got, "inline")
}
