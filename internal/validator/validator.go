// Package validator runs the gate pipeline over a skill bundle and assembles
// the report.
package validator

import (
	"context"
	"log/slog"
	"time"

	"github.com/spboyer/skillgate/internal/budget"
	"github.com/spboyer/skillgate/internal/checks"
	"github.com/spboyer/skillgate/internal/metrics"
	"github.com/spboyer/skillgate/internal/models"
	"github.com/spboyer/skillgate/internal/scripts"
	"github.com/spboyer/skillgate/internal/skill"
)

// Validator validates skill bundles against one budget configuration.
type Validator struct {
	cfg     *budget.Config
	now     func() time.Time
	scripts scripts.Checker
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the clock used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithScriptChecker replaces the script syntax checker.
func WithScriptChecker(c scripts.Checker) Option {
	return func(v *Validator) { v.scripts = c }
}

// New returns a Validator. A nil cfg means budget.Default().
func New(cfg *budget.Config, opts ...Option) *Validator {
	if cfg == nil {
		cfg = budget.Default()
	}
	v := &Validator{cfg: cfg, now: time.Now, scripts: scripts.NewDispatcher()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs all four gates on the bundle at dir. It always returns a
// report; problems with the bundle itself are reported as issues.
func (v *Validator) Validate(ctx context.Context, dir string) *models.SkillReport {
	bundle := skill.Load(dir)
	if !bundle.Readable() {
		slog.Debug("Bundle unreadable", "dir", dir, "error", bundle.Err)
		return v.unreadableReport(bundle)
	}

	syntaxGate := &checks.SyntaxGate{}
	syntaxRes, doc, fm := syntaxGate.Check(bundle.Raw)

	in := &checks.Input{
		Bundle:      bundle,
		Doc:         doc,
		Frontmatter: fm,
		Config:      v.cfg,
	}
	in.Metrics = metrics.NewCalculator(v.cfg).Calculate(bundle.Dir, in.Body())

	results := []*checks.Result{syntaxRes}
	for _, g := range []checks.Gate{
		&checks.SemanticGate{},
		&checks.BudgetGate{},
		&checks.IntegrityGate{Scripts: v.scripts},
	} {
		results = append(results, g.Run(ctx, in))
	}

	report := v.newReport(bundle)
	report.SkillMD = in.Metrics.BodyMetrics
	report.References = in.Metrics.References
	report.ReferencesTotal = in.Metrics.ReferencesTotal
	report.Total = in.Metrics.Total
	aggregate(report, results)
	return report
}

// unreadableReport is the degenerate report for a bundle without a readable
// SKILL.md: one syntax error, the other gates skipped, zero metrics.
func (v *Validator) unreadableReport(bundle *skill.Bundle) *models.SkillReport {
	syntaxRes := &checks.Result{
		Gate:   models.GateSyntax,
		Status: models.StatusFail,
		Errors: []models.Issue{models.NewError(models.GateSyntax, bundle.Err.Error(),
			"Point at a skill directory containing "+skill.FileName)},
	}
	results := []*checks.Result{
		syntaxRes,
		checks.Skipped(models.GateSemantic),
		checks.Skipped(models.GateBudget),
		checks.Skipped(models.GateIntegrity),
	}

	report := v.newReport(bundle)
	zero := metrics.NewCalculator(v.cfg).Empty()
	report.SkillMD = zero.BodyMetrics
	report.ReferencesTotal = zero.ReferencesTotal
	report.Total = zero.Total
	aggregate(report, results)
	return report
}

// newReport names the report after the bundle directory, whatever the
// frontmatter says, so reports for one directory always agree.
func (v *Validator) newReport(bundle *skill.Bundle) *models.SkillReport {
	return &models.SkillReport{
		Skill:      bundle.DirName(),
		Path:       bundle.Dir,
		Timestamp:  v.now().UTC().Format(time.RFC3339),
		References: []models.FileMetrics{},
		Errors:     []models.Issue{},
		Warnings:   []models.Issue{},
	}
}

// aggregate copies gate statuses and issues into report in gate order and
// sets the overall status: FAIL iff there is any error.
func aggregate(report *models.SkillReport, results []*checks.Result) {
	byGate := make(map[string]*checks.Result, len(results))
	for _, r := range results {
		byGate[r.Gate] = r
	}
	for _, gate := range models.GateOrder {
		r, ok := byGate[gate]
		if !ok {
			report.Gates = report.Gates.With(gate, models.StatusSkip)
			continue
		}
		report.Gates = report.Gates.With(gate, r.Status)
		report.Errors = append(report.Errors, r.Errors...)
		report.Warnings = append(report.Warnings, r.Warnings...)
		slog.Debug("Gate finished", "gate", gate, "status", r.Status,
			"errors", len(r.Errors), "warnings", len(r.Warnings))
	}

	report.Status = models.StatusPass
	if len(report.Errors) > 0 {
		report.Status = models.StatusFail
	}
}
