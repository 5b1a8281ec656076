// Package scripts checks bundled scripts for syntax errors without running
// them.
package scripts

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupported is returned for files no checker handles.
	ErrUnsupported = errors.New("unsupported script type")
	// ErrUnavailable is returned when the parser for a language is missing
	// from this machine.
	ErrUnavailable = errors.New("syntax checker unavailable")
)

// SyntaxError locates a parse failure in a script.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

// Checker parses a script and reports syntax problems. It returns nil for a
// well-formed file, a *SyntaxError for a parse failure, ErrUnsupported or
// ErrUnavailable (possibly wrapped), or an I/O error.
type Checker interface {
	CheckSyntax(ctx context.Context, path string) error
}

// Dispatcher picks a Checker by file extension.
type Dispatcher struct {
	byExt map[string]Checker
}

var _ Checker = (*Dispatcher)(nil)

// NewDispatcher returns a Dispatcher for shell and python scripts.
func NewDispatcher() *Dispatcher {
	shell := &ShellChecker{}
	return &Dispatcher{byExt: map[string]Checker{
		".sh":   shell,
		".bash": shell,
		".py":   NewPythonChecker(),
	}}
}

// CheckSyntax implements Checker. Extensions match case-insensitively.
func (d *Dispatcher) CheckSyntax(ctx context.Context, path string) error {
	c, ok := d.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	return c.CheckSyntax(ctx, path)
}
