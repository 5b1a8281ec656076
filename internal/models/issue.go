package models

// IssueType is the severity of an Issue.
type IssueType string

const (
	// IssueError blocks an overall PASS.
	IssueError IssueType = "ERROR"
	// IssueWarning is advisory and never blocks.
	IssueWarning IssueType = "WARNING"
)

// Issue is a single finding raised by a gate. Issues are values and are not
// modified after a gate returns them.
type Issue struct {
	Type       IssueType `json:"type" yaml:"type" xml:"type,attr"`
	Gate       string    `json:"gate" yaml:"gate" xml:"gate,attr"`
	Message    string    `json:"message" yaml:"message" xml:"message"`
	Suggestion string    `json:"suggestion,omitempty" yaml:"suggestion,omitempty" xml:"suggestion,omitempty"`
}

// NewError builds an ERROR issue for gate.
func NewError(gate, message, suggestion string) Issue {
	return Issue{Type: IssueError, Gate: gate, Message: message, Suggestion: suggestion}
}

// NewWarning builds a WARNING issue for gate.
func NewWarning(gate, message, suggestion string) Issue {
	return Issue{Type: IssueWarning, Gate: gate, Message: message, Suggestion: suggestion}
}
