package checks

import (
	"context"
	"fmt"
	"path"

	"github.com/spboyer/skillgate/internal/budget"
	"github.com/spboyer/skillgate/internal/models"
	"github.com/spboyer/skillgate/internal/skill"
)

// BudgetGate reports the calculator's threshold outcomes as issues. Only the
// enforced body and total thresholds can produce errors; reference files are
// advisory.
type BudgetGate struct{}

var _ Gate = (*BudgetGate)(nil)

func (*BudgetGate) Name() string { return models.GateBudget }

func (*BudgetGate) Run(_ context.Context, in *Input) *Result {
	res := newResult(models.GateBudget)
	m := in.Metrics
	cfg := in.Config

	bodyChecks := []struct {
		metric budget.Metric
		unit   string
		got    models.TokenMetric
	}{
		{budget.BodyTokens, "tokens", m.BodyMetrics.Tokens},
		{budget.BodyWords, "words", m.BodyMetrics.Words},
		{budget.BodyLines, "lines", m.BodyMetrics.Lines},
	}
	for _, bc := range bodyChecks {
		th := cfg.Threshold(bc.metric)
		switch bc.got.Status {
		case models.StatusFail:
			res.addError(
				fmt.Sprintf("SKILL.md body has %d %s, exceeding the limit of %d", bc.got.Value, bc.unit, *th.Error),
				"Move detailed material into references/ files",
			)
		case models.StatusWarn:
			res.addWarning(
				fmt.Sprintf("SKILL.md body has %d %s, above the recommended %d", bc.got.Value, bc.unit, th.Warning),
				"Consider moving detail into references/ files",
			)
		}
	}

	refWarn := cfg.Threshold(budget.Reference).Warning
	strong := cfg.ReferenceStrongWarning()
	for _, ref := range m.References {
		name := path.Join(skill.ReferencesDir, ref.Name)
		switch {
		case ref.Tokens > strong:
			res.addWarning(
				fmt.Sprintf("%s has %d tokens, strongly exceeding the recommended %d", name, ref.Tokens, refWarn),
				"Split the file into smaller topic files",
			)
		case ref.Status == models.StatusWarn:
			res.addWarning(
				fmt.Sprintf("%s has %d tokens, above the recommended %d and approaching %d", name, ref.Tokens, refWarn, strong),
				"",
			)
		}
	}

	if m.ReferencesTotal.Status == models.StatusWarn {
		res.addWarning(
			fmt.Sprintf("References total %d tokens, above the recommended %d", m.ReferencesTotal.Tokens, cfg.Threshold(budget.ReferencesTotal).Warning),
			"",
		)
	}

	total := cfg.Threshold(budget.Total)
	switch m.Total.Status {
	case models.StatusFail:
		res.addError(
			fmt.Sprintf("Skill totals %d tokens, exceeding the budget of %d", m.Total.Tokens.Value, *total.Error),
			fmt.Sprintf("Trim SKILL.md or references/, or raise %s", budget.EnvTotalBudget),
		)
	case models.StatusWarn:
		res.addWarning(
			fmt.Sprintf("Skill totals %d tokens, %.1f%% of the budget of %d", m.Total.Tokens.Value, m.Total.BudgetPercent, *total.Error),
			"",
		)
	}

	return res.finish()
}
