package budget

// Metric identifies a measured quantity. Each Metric maps to exactly one
// Threshold in a Config.
type Metric int

const (
	BodyTokens Metric = iota
	BodyWords
	BodyLines
	Reference
	ReferencesTotal
	Total
)

// Metrics lists every Metric in declaration order.
var Metrics = []Metric{BodyTokens, BodyWords, BodyLines, Reference, ReferencesTotal, Total}

func (m Metric) String() string {
	switch m {
	case BodyTokens:
		return "BODY_TOKENS"
	case BodyWords:
		return "BODY_WORDS"
	case BodyLines:
		return "BODY_LINES"
	case Reference:
		return "REFERENCE"
	case ReferencesTotal:
		return "REFERENCES_TOTAL"
	case Total:
		return "TOTAL"
	default:
		return "UNKNOWN"
	}
}
