package reporting

import (
	"fmt"

	"github.com/spboyer/skillgate/internal/models"
)

// InterpretBudget returns a plain-language label for the share of the total
// budget a skill uses.
func InterpretBudget(total models.TotalMetrics) string {
	switch total.Status {
	case models.StatusFail:
		return "over budget"
	case models.StatusWarn:
		return "approaching budget"
	default:
		return "within budget"
	}
}

// Summary is a one-line outcome such as "pdf-tools: FAIL (2 errors, 1 warning)".
func Summary(report *models.SkillReport) string {
	return fmt.Sprintf("%s: %s (%s, %s)",
		report.Skill, report.Status,
		plural(report.ErrorCount(), "error"),
		plural(report.WarningCount(), "warning"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
