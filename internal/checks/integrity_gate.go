package checks

//go:generate go tool mockgen -destination mock_checker_test.go -package checks github.com/spboyer/skillgate/internal/scripts Checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spboyer/skillgate/internal/markdown"
	"github.com/spboyer/skillgate/internal/models"
	"github.com/spboyer/skillgate/internal/scripts"
	"github.com/spboyer/skillgate/internal/skill"
)

// IntegrityGate checks that the bundle is self-consistent: no self-invocation,
// no dangling file references, parseable scripts and readable references.
type IntegrityGate struct {
	// Scripts checks script syntax; nil uses scripts.NewDispatcher().
	Scripts scripts.Checker
}

var _ Gate = (*IntegrityGate)(nil)

func (*IntegrityGate) Name() string { return models.GateIntegrity }

func (g *IntegrityGate) Run(ctx context.Context, in *Input) *Result {
	res := newResult(models.GateIntegrity)

	checkRecursion(res, in.Body(), in.SkillName())
	checkPathReferences(res, in.Bundle.Dir, in.Raw())
	if in.Metrics != nil {
		for _, fe := range in.Metrics.Unreadable {
			res.addError(
				fmt.Sprintf("Cannot read %s: %v", filepath.ToSlash(filepath.Join(skill.ReferencesDir, fe.Name)), fe.Err),
				"Check file permissions",
			)
		}
	}
	g.checkScripts(ctx, res, in.Bundle.Dir)
	checkConflicts(res, in.Raw())

	return res.finish()
}

// checkRecursion looks only at the body: the description legitimately names
// the skill.
func checkRecursion(res *Result, body, skillName string) {
	seen := map[[2]int]bool{}
	for _, re := range compileRecursionPatterns(skillName) {
		for _, loc := range re.FindAllStringIndex(body, -1) {
			key := [2]int{loc[0], loc[1]}
			if seen[key] {
				continue
			}
			seen[key] = true
			res.addError(
				fmt.Sprintf("Possible self-invocation: %q", body[loc[0]:loc[1]]),
				"A skill must not instruct the agent to invoke itself",
			)
		}
	}
}

func checkPathReferences(res *Result, dir, raw string) {
	scannable := markdown.StripCode(raw)
	seen := map[string]bool{}
	for _, ref := range pathRefPattern.FindAllString(scannable, -1) {
		if strings.ContainsAny(ref, placeholderPathChars) || seen[ref] {
			continue
		}
		seen[ref] = true
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(ref))); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				res.addError(fmt.Sprintf("Referenced file %s does not exist", ref), "Create the file or fix the path")
			} else {
				res.addError(fmt.Sprintf("Referenced file %s is not accessible: %v", ref, err), "")
			}
		}
	}
}

func (g *IntegrityGate) checkScripts(ctx context.Context, res *Result, dir string) {
	checker := g.Scripts
	if checker == nil {
		checker = scripts.NewDispatcher()
	}

	files, err := scriptFiles(dir)
	if err != nil {
		res.addError(fmt.Sprintf("Cannot list %s/: %v", skill.ScriptsDir, err), "")
	}
	for _, rel := range files {
		err := checker.CheckSyntax(ctx, filepath.Join(dir, filepath.FromSlash(rel)))
		var se *scripts.SyntaxError
		switch {
		case err == nil:
		case errors.Is(err, scripts.ErrUnsupported):
		case errors.Is(err, scripts.ErrUnavailable):
			res.addWarning(fmt.Sprintf("Script %s could not be verified: %v", rel, err), "")
		case errors.As(err, &se):
			msg := fmt.Sprintf("Syntax error in %s: %s", rel, se.Msg)
			if se.Line > 0 {
				msg = fmt.Sprintf("Syntax error in %s line %d: %s", rel, se.Line, se.Msg)
			}
			res.addError(msg, "Fix the script so it parses")
		default:
			res.addError(fmt.Sprintf("Cannot check %s: %v", rel, err), "")
		}
	}
	slog.Debug("Scripts checked", "count", len(files))
}

// scriptFiles lists regular files under dir/scripts as slash-separated paths
// relative to dir.
func scriptFiles(dir string) ([]string, error) {
	root := filepath.Join(dir, skill.ScriptsDir)
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") || d.Name() == "__pycache__" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	return files, err
}

func checkConflicts(res *Result, raw string) {
	if prohibitionPattern.MatchString(raw) && hasMandate(raw) {
		res.addWarning(
			"Document contains both strong prohibitions (NEVER/MUST NOT) and strong mandates (ALWAYS/MUST); check they do not conflict",
			"",
		)
	}
}
