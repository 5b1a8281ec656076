package models

import "encoding/xml"

// Gate names, in execution order.
const (
	GateSyntax    = "syntax"
	GateSemantic  = "semantic"
	GateBudget    = "budget"
	GateIntegrity = "integrity"
)

// GateOrder lists the gate names in the order they run and are reported.
var GateOrder = []string{GateSyntax, GateSemantic, GateBudget, GateIntegrity}

// TokenMetric is one measured quantity with its threshold outcome. Max is nil
// for advisory thresholds.
type TokenMetric struct {
	Value  int    `json:"value" yaml:"value" xml:"value,attr"`
	Max    *int   `json:"max" yaml:"max" xml:"max,attr,omitempty"`
	Status Status `json:"status" yaml:"status" xml:"status,attr"`
}

// BodyMetrics holds the SKILL.md body measurements.
type BodyMetrics struct {
	Tokens TokenMetric `json:"tokens" yaml:"tokens" xml:"tokens"`
	Words  TokenMetric `json:"words" yaml:"words" xml:"words"`
	Lines  TokenMetric `json:"lines" yaml:"lines" xml:"lines"`
}

// FileMetrics holds the measurements of one reference file.
type FileMetrics struct {
	Name   string `json:"name" yaml:"name" xml:"name,attr"`
	Tokens int    `json:"tokens" yaml:"tokens" xml:"tokens,attr"`
	Words  int    `json:"words" yaml:"words" xml:"words,attr"`
	Lines  int    `json:"lines" yaml:"lines" xml:"lines,attr"`
	Status Status `json:"status" yaml:"status" xml:"status,attr"`
}

// ReferencesTotal is the subtotal over all reference files.
type ReferencesTotal struct {
	Tokens int    `json:"tokens" yaml:"tokens" xml:"tokens,attr"`
	Words  int    `json:"words" yaml:"words" xml:"words,attr"`
	Lines  int    `json:"lines" yaml:"lines" xml:"lines,attr"`
	Status Status `json:"status" yaml:"status" xml:"status,attr"`
}

// TotalMetrics is body plus references, measured against the total budget.
type TotalMetrics struct {
	Tokens        TokenMetric `json:"tokens" yaml:"tokens" xml:"tokens"`
	Words         int         `json:"words" yaml:"words" xml:"words"`
	Lines         int         `json:"lines" yaml:"lines" xml:"lines"`
	Status        Status      `json:"status" yaml:"status" xml:"status"`
	BudgetPercent float64     `json:"budget_percent" yaml:"budget_percent" xml:"budget_percent"`
}

// GateStatuses maps each gate to its status.
type GateStatuses struct {
	Syntax    Status `json:"syntax" yaml:"syntax" xml:"syntax"`
	Semantic  Status `json:"semantic" yaml:"semantic" xml:"semantic"`
	Budget    Status `json:"budget" yaml:"budget" xml:"budget"`
	Integrity Status `json:"integrity" yaml:"integrity" xml:"integrity"`
}

// Get returns the status recorded for the named gate, or "" for unknown names.
func (g GateStatuses) Get(gate string) Status {
	switch gate {
	case GateSyntax:
		return g.Syntax
	case GateSemantic:
		return g.Semantic
	case GateBudget:
		return g.Budget
	case GateIntegrity:
		return g.Integrity
	}
	return ""
}

// With returns a copy of g with the named gate set to s.
func (g GateStatuses) With(gate string, s Status) GateStatuses {
	switch gate {
	case GateSyntax:
		g.Syntax = s
	case GateSemantic:
		g.Semantic = s
	case GateBudget:
		g.Budget = s
	case GateIntegrity:
		g.Integrity = s
	}
	return g
}

// SkillReport is the result of one validation run. It is built once by the
// validator and only read afterwards.
type SkillReport struct {
	XMLName         xml.Name        `json:"-" yaml:"-" xml:"skill_report"`
	Skill           string          `json:"skill" yaml:"skill" xml:"skill"`
	Path            string          `json:"path" yaml:"path" xml:"path"`
	Timestamp       string          `json:"timestamp" yaml:"timestamp" xml:"timestamp"`
	Status          Status          `json:"status" yaml:"status" xml:"status"`
	Gates           GateStatuses    `json:"gates" yaml:"gates" xml:"gates"`
	SkillMD         BodyMetrics     `json:"skill_md" yaml:"skill_md" xml:"skill_md"`
	References      []FileMetrics   `json:"references" yaml:"references" xml:"references>file"`
	ReferencesTotal ReferencesTotal `json:"references_total" yaml:"references_total" xml:"references_total"`
	Total           TotalMetrics    `json:"total" yaml:"total" xml:"total"`
	Errors          []Issue         `json:"errors" yaml:"errors" xml:"errors>issue"`
	Warnings        []Issue         `json:"warnings" yaml:"warnings" xml:"warnings>issue"`
}

// Passed reports whether the overall status is PASS.
func (r *SkillReport) Passed() bool { return r.Status == StatusPass }

func (r *SkillReport) ErrorCount() int   { return len(r.Errors) }
func (r *SkillReport) WarningCount() int { return len(r.Warnings) }
