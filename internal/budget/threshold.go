// Package budget holds the threshold model and the resource budget
// configuration used by the metrics calculator and the budget gate.
package budget

import "github.com/spboyer/skillgate/internal/models"

// Mode says whether a threshold can fail validation.
type Mode string

const (
	// ModeAdvisory thresholds only warn.
	ModeAdvisory Mode = "ADVISORY"
	// ModeEnforced thresholds warn and fail.
	ModeEnforced Mode = "ENFORCED"
)

// Threshold is a warning/error pair. A nil Error makes the threshold advisory:
// Evaluate never returns FAIL for it.
type Threshold struct {
	Warning int
	Error   *int
	Mode    Mode
}

// Advisory returns a threshold that can only warn.
func Advisory(warning int) Threshold {
	return Threshold{Warning: warning, Mode: ModeAdvisory}
}

// Enforced returns a threshold with a hard error bound. The pair is stored as
// given, even when errorAt < warning.
func Enforced(warning, errorAt int) Threshold {
	return Threshold{Warning: warning, Error: &errorAt, Mode: ModeEnforced}
}

// Evaluate classifies value. FAIL takes precedence over WARN and both bounds
// are exclusive: a value equal to a bound does not cross it.
func (t Threshold) Evaluate(value int) models.Status {
	if t.Error != nil && value > *t.Error {
		return models.StatusFail
	}
	if value > t.Warning {
		return models.StatusWarn
	}
	return models.StatusPass
}

// Max returns a copy of the error bound, or nil for advisory thresholds.
func (t Threshold) Max() *int {
	if t.Error == nil {
		return nil
	}
	v := *t.Error
	return &v
}

// Measure evaluates value and packages it as a report metric.
func (t Threshold) Measure(value int) models.TokenMetric {
	return models.TokenMetric{Value: value, Max: t.Max(), Status: t.Evaluate(value)}
}
