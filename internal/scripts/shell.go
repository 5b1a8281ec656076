package scripts

import (
	"context"
	"errors"
	"fmt"
	"os"

	"mvdan.cc/sh/v3/syntax"
)

// ShellChecker parses shell scripts in-process as bash.
type ShellChecker struct{}

var _ Checker = (*ShellChecker)(nil)

func (*ShellChecker) CheckSyntax(_ context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(f, path); err != nil {
		var pe syntax.ParseError
		if errors.As(err, &pe) {
			return &SyntaxError{File: path, Line: int(pe.Pos.Line()), Msg: pe.Text}
		}
		return &SyntaxError{File: path, Msg: err.Error()}
	}
	return nil
}
