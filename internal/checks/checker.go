// Package checks implements the four validation gates run against a skill
// bundle: syntax, semantic, budget and integrity.
package checks

import (
	"context"

	"github.com/spboyer/skillgate/internal/budget"
	"github.com/spboyer/skillgate/internal/metrics"
	"github.com/spboyer/skillgate/internal/models"
	"github.com/spboyer/skillgate/internal/skill"
)

// Input is what a gate sees. The validator fills it in gate order: Doc and
// Frontmatter come from the syntax gate, Metrics from the calculator.
type Input struct {
	Bundle *skill.Bundle
	// Doc is never nil once the syntax gate has run on a readable bundle.
	Doc *skill.Document
	// Frontmatter is nil when the header did not parse as a mapping.
	Frontmatter *skill.Frontmatter
	Metrics     *metrics.SkillMetrics
	Config      *budget.Config
}

// SkillName is the name matched by the recursion patterns: the frontmatter
// name when usable, else the directory name.
func (in *Input) SkillName() string {
	if in.Frontmatter != nil && in.Frontmatter.Name != "" {
		return in.Frontmatter.Name
	}
	return in.Bundle.DirName()
}

// Body is the document text after the frontmatter block.
func (in *Input) Body() string {
	if in.Doc == nil {
		return ""
	}
	return in.Doc.Body
}

// Raw is the whole document text.
func (in *Input) Raw() string {
	if in.Doc == nil {
		return in.Bundle.Raw
	}
	return in.Doc.Raw
}

// Result is the outcome of one gate.
type Result struct {
	Gate     string
	Status   models.Status
	Errors   []models.Issue
	Warnings []models.Issue
}

func newResult(gate string) *Result {
	return &Result{Gate: gate, Status: models.StatusPass}
}

// Skipped returns the result of a gate that did not run.
func Skipped(gate string) *Result {
	return &Result{Gate: gate, Status: models.StatusSkip}
}

func (r *Result) addError(message, suggestion string) {
	r.Errors = append(r.Errors, models.NewError(r.Gate, message, suggestion))
}

func (r *Result) addWarning(message, suggestion string) {
	r.Warnings = append(r.Warnings, models.NewWarning(r.Gate, message, suggestion))
}

// finish derives Status from the collected issues. Warnings never change a
// gate's status; it fails only on errors.
func (r *Result) finish() *Result {
	r.Status = models.StatusPass
	if len(r.Errors) > 0 {
		r.Status = models.StatusFail
	}
	return r
}

// Gate runs one validation stage. A gate never panics on bad content; every
// problem is expressed as an issue in its Result.
type Gate interface {
	Name() string
	Run(ctx context.Context, in *Input) *Result
}
