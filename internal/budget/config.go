package budget

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Environment variables read by Load.
const (
	EnvTotalBudget  = "SKILL_TOTAL_BUDGET"
	EnvWarningRatio = "SKILL_WARNING_RATIO"
)

// Default values. These are the single source of truth for the thresholds
// applied when nothing overrides them.
const (
	DefaultTotalBudget  = 8000
	DefaultWarningRatio = 0.75

	DefaultBodyTokensWarning = 3000
	DefaultBodyTokensError   = 4600
	DefaultBodyWordsWarning  = 3500
	DefaultBodyWordsError    = 5000
	DefaultBodyLinesWarning  = 500
	DefaultBodyLinesError    = 600

	DefaultReferenceWarning       = 800
	DefaultReferenceStrongWarning = 1500
	DefaultReferencesTotalWarning = 3000
)

// Config is the process-wide budget configuration. It is built once by Load
// or New and has no mutators; pass it explicitly to whatever needs it.
type Config struct {
	totalBudget     int
	warningRatio    float64
	bodyTokens      Threshold
	bodyWords       Threshold
	bodyLines       Threshold
	reference       Threshold
	referenceStrong int
	referencesTotal Threshold
	total           Threshold
}

// Overrides carries optional values from a project file. Zero fields are
// ignored.
type Overrides struct {
	TotalBudget  int
	WarningRatio float64
}

// New returns a Config for the given total budget and warning ratio with the
// fixed body and reference thresholds.
func New(totalBudget int, warningRatio float64) *Config {
	return &Config{
		totalBudget:     totalBudget,
		warningRatio:    warningRatio,
		bodyTokens:      Enforced(DefaultBodyTokensWarning, DefaultBodyTokensError),
		bodyWords:       Enforced(DefaultBodyWordsWarning, DefaultBodyWordsError),
		bodyLines:       Enforced(DefaultBodyLinesWarning, DefaultBodyLinesError),
		reference:       Advisory(DefaultReferenceWarning),
		referenceStrong: DefaultReferenceStrongWarning,
		referencesTotal: Advisory(DefaultReferencesTotalWarning),
		total:           Enforced(int(float64(totalBudget)*warningRatio), totalBudget),
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return New(DefaultTotalBudget, DefaultWarningRatio)
}

// Load layers project overrides and then environment variables onto the
// defaults. getenv is usually os.Getenv. Invalid values fall back silently to
// the layer below.
func Load(project Overrides, getenv func(string) string) *Config {
	total := DefaultTotalBudget
	ratio := DefaultWarningRatio

	if project.TotalBudget > 0 {
		total = project.TotalBudget
	}
	if validRatio(project.WarningRatio) {
		ratio = project.WarningRatio
	}

	if getenv != nil {
		if v, ok := parseTotal(getenv(EnvTotalBudget)); ok {
			total = v
		}
		if v, ok := parseRatio(getenv(EnvWarningRatio)); ok {
			ratio = v
		}
	}

	slog.Debug("Budget configuration loaded", "total", total, "warningRatio", ratio)
	return New(total, ratio)
}

func parseTotal(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func parseRatio(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !validRatio(v) {
		return 0, false
	}
	return v, true
}

func validRatio(v float64) bool {
	return !math.IsNaN(v) && v > 0 && v <= 1
}

// TotalBudget is the token budget for body plus references.
func (c *Config) TotalBudget() int { return c.totalBudget }

// WarningRatio is the fraction of TotalBudget at which the total warns.
func (c *Config) WarningRatio() float64 { return c.warningRatio }

// ReferenceStrongWarning is the per-reference token count above which the
// budget gate raises its stronger advisory warning.
func (c *Config) ReferenceStrongWarning() int { return c.referenceStrong }

// Threshold returns a copy of the threshold for m.
func (c *Config) Threshold(m Metric) Threshold {
	t := c.threshold(m)
	t.Error = t.Max()
	return t
}

func (c *Config) threshold(m Metric) Threshold {
	switch m {
	case BodyTokens:
		return c.bodyTokens
	case BodyWords:
		return c.bodyWords
	case BodyLines:
		return c.bodyLines
	case Reference:
		return c.reference
	case ReferencesTotal:
		return c.referencesTotal
	default:
		return c.total
	}
}

// Percent returns tokens as a percentage of the total budget.
func (c *Config) Percent(tokens int) float64 {
	if c.totalBudget <= 0 {
		return 0
	}
	return math.Round(float64(tokens)*1000/float64(c.totalBudget)) / 10
}
