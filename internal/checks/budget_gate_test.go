package checks

import (
	"strings"
	"testing"

	"github.com/spboyer/skillgate/internal/budget"
	"github.com/spboyer/skillgate/internal/metrics"
	"github.com/spboyer/skillgate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runBudget(t *testing.T, cfg *budget.Config, body string, refs map[string]string) *Result {
	t.Helper()
	dir := writeBundle(t, skillDoc("pdf-tools", goodDescription, body), refs)
	in := &Input{
		Config:  cfg,
		Metrics: metrics.NewCalculator(cfg).Calculate(dir, body),
	}
	return (&BudgetGate{}).Run(t.Context(), in)
}

func TestBudgetGate_SmallSkillPasses(t *testing.T) {
	res := runBudget(t, budget.Default(), "# PDF\n\nShort body.\n", map[string]string{
		"references/api.md": "# API\n",
	})

	assert.Equal(t, models.StatusPass, res.Status)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestBudgetGate_BodyOverLimitFails(t *testing.T) {
	// 25005 chars, 5001 words, 1 line.
	res := runBudget(t, budget.Default(), strings.Repeat("word ", 5001), nil)

	assert.Equal(t, models.StatusFail, res.Status)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "SKILL.md body has 6251 tokens, exceeding the limit of 4600", res.Errors[0].Message)
	assert.Equal(t, "SKILL.md body has 5001 words, exceeding the limit of 5000", res.Errors[1].Message)
	// 6251 of 8000 is above the 6000 warning line.
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "78.1% of the budget of 8000")
}

func TestBudgetGate_BodyTokensBetweenLimits(t *testing.T) {
	tests := []struct {
		name   string
		chars  int
		status models.Status
		errors int
		warns  int
	}{
		{name: "at warning line", chars: 4 * 3000, status: models.StatusPass},
		{name: "above warning line", chars: 4 * 3001, status: models.StatusPass, warns: 1},
		{name: "at error line", chars: 4 * 4600, status: models.StatusPass, warns: 1},
		{name: "above error line", chars: 4 * 4700, status: models.StatusFail, errors: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runBudget(t, budget.Default(), strings.Repeat("a", tt.chars), nil)

			assert.Equal(t, tt.status, res.Status)
			assert.Len(t, res.Errors, tt.errors)
			assert.Len(t, res.Warnings, tt.warns)
		})
	}
}

func TestBudgetGate_BodyWarning(t *testing.T) {
	// 501 lines of one short word each.
	res := runBudget(t, budget.Default(), strings.Repeat("x\n", 500), nil)

	assert.Equal(t, models.StatusPass, res.Status)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "SKILL.md body has 501 lines, above the recommended 500", res.Warnings[0].Message)
}

func TestBudgetGate_ReferencesNeverError(t *testing.T) {
	t.Run("approaching", func(t *testing.T) {
		// 4000 chars = 1000 tokens.
		res := runBudget(t, budget.Default(), "body", map[string]string{
			"references/big.md": strings.Repeat("a", 4000),
		})
		assert.Equal(t, models.StatusPass, res.Status)
		assert.Empty(t, res.Errors)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, "references/big.md has 1000 tokens, above the recommended 800 and approaching 1500", res.Warnings[0].Message)
	})

	t.Run("strongly exceeding", func(t *testing.T) {
		// 8000 chars = 2000 tokens.
		res := runBudget(t, budget.Default(), "body", map[string]string{
			"references/huge.md": strings.Repeat("a", 8000),
		})
		assert.Equal(t, models.StatusPass, res.Status)
		assert.Empty(t, res.Errors)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0].Message, "references/huge.md has 2000 tokens, strongly exceeding")
	})
}

func TestBudgetGate_ReferencesTotalWarning(t *testing.T) {
	res := runBudget(t, budget.Default(), "body", map[string]string{
		"references/a.md": strings.Repeat("a", 3200),
		"references/b.md": strings.Repeat("b", 3200),
		"references/c.md": strings.Repeat("c", 3200),
		"references/d.md": strings.Repeat("d", 3200),
	})

	// 4 x 800 = 3200 tokens: no per-file warning, total warning only.
	assert.Equal(t, models.StatusPass, res.Status)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{"References total 3200 tokens, above the recommended 3000"}, messages(res.Warnings))
}

func TestBudgetGate_TotalOverBudget(t *testing.T) {
	cfg := budget.New(1000, 0.5)
	res := runBudget(t, cfg, strings.Repeat("a", 2000), map[string]string{
		"references/a.md": strings.Repeat("a", 2400),
	})

	// 500 body + 600 reference tokens against a 1000 budget.
	assert.Equal(t, models.StatusFail, res.Status)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Skill totals 1100 tokens, exceeding the budget of 1000", res.Errors[0].Message)
	assert.Contains(t, res.Errors[0].Suggestion, budget.EnvTotalBudget)
	assert.Equal(t, models.GateBudget, res.Errors[0].Gate)
}

func TestBudgetGate_TotalWarning(t *testing.T) {
	cfg := budget.New(1000, 0.5)
	res := runBudget(t, cfg, strings.Repeat("a", 2400), nil)

	assert.Equal(t, models.StatusPass, res.Status)
	assert.Equal(t, []string{"Skill totals 600 tokens, 60.0% of the budget of 1000"}, messages(res.Warnings))
}
