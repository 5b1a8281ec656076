package models

// Status is the outcome of a threshold evaluation or a gate. Gates only use
// PASS, FAIL and SKIP.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
	// StatusSkip is only used for gates that did not run.
	StatusSkip Status = "SKIP"
)
