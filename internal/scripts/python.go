package scripts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const defaultPythonTimeout = 10 * time.Second

// syntaxExitCode is what pythonParseProgram exits with on a parse failure.
const syntaxExitCode = 3

// pythonParseProgram compiles the file to an AST only; nothing in it runs.
const pythonParseProgram = `import ast, sys
path = sys.argv[1]
try:
    with open(path, "rb") as f:
        ast.parse(f.read(), filename=path)
except (SyntaxError, ValueError) as e:
    line = getattr(e, "lineno", 0) or 0
    msg = getattr(e, "msg", None) or str(e)
    sys.stdout.write("%d\n%s" % (line, msg))
    sys.exit(3)
`

// PythonChecker parses python scripts with the local interpreter's ast
// module.
type PythonChecker struct {
	// Interpreters are tried in order; the first found on PATH is used.
	Interpreters []string
	Timeout      time.Duration
	lookPath     func(string) (string, error)
}

var _ Checker = (*PythonChecker)(nil)

func NewPythonChecker() *PythonChecker {
	return &PythonChecker{
		Interpreters: []string{"python3", "python"},
		Timeout:      defaultPythonTimeout,
		lookPath:     exec.LookPath,
	}
}

func (pc *PythonChecker) interpreter() (string, error) {
	lookPath := pc.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, name := range pc.Interpreters {
		if p, err := lookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("python interpreter not found: %w", ErrUnavailable)
}

func (pc *PythonChecker) CheckSyntax(ctx context.Context, path string) error {
	interp, err := pc.interpreter()
	if err != nil {
		return err
	}

	timeout := pc.Timeout
	if timeout <= 0 {
		timeout = defaultPythonTimeout
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(timeoutCtx, interp, "-c", pythonParseProgram, path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == syntaxExitCode {
		return parsePythonFailure(path, stdout.String())
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("checking %s: %s", path, msg)
	}
	return fmt.Errorf("checking %s: %w", path, err)
}

func parsePythonFailure(path, out string) *SyntaxError {
	lineStr, msg, _ := strings.Cut(out, "\n")
	line, err := strconv.Atoi(strings.TrimSpace(lineStr))
	if err != nil {
		line = 0
	}
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = "invalid syntax"
	}
	return &SyntaxError{File: path, Line: line, Msg: msg}
}
