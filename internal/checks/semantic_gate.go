package checks

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spboyer/skillgate/internal/markdown"
	"github.com/spboyer/skillgate/internal/models"
)

const minDescriptionLength = 50

// SemanticGate checks description quality and body content. It needs the
// parsed frontmatter; the validator skips it when there is none.
type SemanticGate struct{}

var _ Gate = (*SemanticGate)(nil)

func (*SemanticGate) Name() string { return models.GateSemantic }

func (*SemanticGate) Run(_ context.Context, in *Input) *Result {
	if in.Frontmatter == nil {
		return Skipped(models.GateSemantic)
	}
	res := newResult(models.GateSemantic)

	desc := strings.TrimSpace(in.Frontmatter.Description)
	if desc != "" {
		if !hasTriggerPhrase(desc) {
			res.addWarning(
				"Description has no usage trigger (e.g. 'Use when ...')",
				"Say when the skill applies, e.g. 'Use when the user asks to ...'",
			)
		}
		if n := utf8.RuneCountInString(desc); n < minDescriptionLength {
			res.addWarning(
				fmt.Sprintf("Description is only %d characters (recommended at least %d)", n, minDescriptionLength),
				"Describe what the skill does and when to use it",
			)
		}
	}

	body := in.Body()
	prose := markdown.StripCode(body)
	for _, marker := range placeholderMarkers {
		if strings.Contains(prose, marker) {
			res.addError(
				fmt.Sprintf("Unresolved placeholder %q in body", marker),
				"Replace template placeholders with real content",
			)
		}
	}

	if m := directiveVoicePattern.FindString(body); m != "" {
		res.addWarning(
			fmt.Sprintf("Body uses second-person directive %q", m),
			"Prefer imperative form ('Run the script') over 'you should'",
		)
	}

	return res.finish()
}

func hasTriggerPhrase(desc string) bool {
	for _, re := range triggerPatterns {
		if re.MatchString(desc) {
			return true
		}
	}
	return false
}
