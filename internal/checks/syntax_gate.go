package checks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spboyer/skillgate/internal/models"
	"github.com/spboyer/skillgate/internal/skill"
	"github.com/spboyer/skillgate/internal/validation"
)

const (
	maxNameLength        = 64
	maxDescriptionLength = 1024
)

// namePattern is the character set check; hyphen placement is checked
// separately so each rule gets its own message.
var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// SyntaxGate checks that SKILL.md has a well-formed frontmatter block with
// valid name and description fields.
type SyntaxGate struct{}

var _ Gate = (*SyntaxGate)(nil)

func (*SyntaxGate) Name() string { return models.GateSyntax }

func (g *SyntaxGate) Run(_ context.Context, in *Input) *Result {
	res, _, _ := g.Check(in.Bundle.Raw)
	return res
}

// Check validates raw and returns the gate result, the split document (never
// nil) and the typed frontmatter (nil unless the header parsed as a mapping).
func (*SyntaxGate) Check(raw string) (*Result, *skill.Document, *skill.Frontmatter) {
	res := newResult(models.GateSyntax)

	doc, err := skill.Parse(raw)
	if err != nil {
		switch {
		case errors.Is(err, skill.ErrEmpty):
			res.addError("SKILL.md is empty", "Add a frontmatter block with name and description, followed by instructions")
		case errors.Is(err, skill.ErrNoOpeningMarker):
			res.addError("Missing opening frontmatter marker: the first line must be '---'", "Start the file with a '---' line")
		case errors.Is(err, skill.ErrNoClosingMarker):
			res.addError("Missing closing frontmatter marker '---'", "End the frontmatter block with a '---' line")
		case errors.Is(err, skill.ErrNotMapping):
			res.addError("Frontmatter is not a dictionary of key: value pairs", "Write the header as YAML 'key: value' lines")
		default:
			res.addError(fmt.Sprintf("Frontmatter is not valid YAML: %v", err), "Fix the YAML syntax between the '---' markers")
		}
		slog.Debug("Syntax gate stopped on structure", "error", err)
		return res.finish(), doc, nil
	}

	fields := doc.Fields
	checkUnknownKeys(res, fields)
	checkName(res, fields)
	checkDescription(res, fields)

	for _, fe := range validation.ValidateFrontmatter(fields) {
		if fe.Field == "name" || fe.Field == "description" {
			continue
		}
		res.addWarning(fmt.Sprintf("Frontmatter field %s", fe.String()), "")
	}

	fm, err := skill.DecodeFrontmatter(fields)
	if err != nil {
		slog.Debug("Frontmatter decoded partially", "error", err)
	}
	return res.finish(), doc, fm
}

func checkUnknownKeys(res *Result, fields map[string]any) {
	var unknown []string
	for key := range fields {
		if !skill.IsAllowedKey(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return
	}
	sort.Strings(unknown)
	res.addError(
		fmt.Sprintf("Unexpected frontmatter keys: %s", strings.Join(unknown, ", ")),
		fmt.Sprintf("Allowed keys: %s", strings.Join(skill.AllowedKeys, ", ")),
	)
}

func checkName(res *Result, fields map[string]any) {
	raw, ok := fields["name"]
	if !ok || raw == nil {
		res.addError("Missing required frontmatter field 'name'", "Add 'name: your-skill-name'")
		return
	}
	name, ok := raw.(string)
	if !ok {
		res.addError(fmt.Sprintf("Field 'name' must be a string, got %T", raw), "Quote the name or use lowercase letters, digits and hyphens")
		return
	}
	if strings.TrimSpace(name) == "" {
		res.addError("Missing required frontmatter field 'name'", "Add 'name: your-skill-name'")
		return
	}
	if !namePattern.MatchString(name) {
		res.addError(fmt.Sprintf("Name %q must contain only lowercase letters, digits and hyphens", name), "Use kebab-case, e.g. 'pdf-tools'")
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		res.addError(fmt.Sprintf("Name %q must not start or end with a hyphen", name), "")
	}
	if strings.Contains(name, "--") {
		res.addError(fmt.Sprintf("Name %q must not contain consecutive hyphens", name), "")
	}
	if n := utf8.RuneCountInString(name); n > maxNameLength {
		res.addError(fmt.Sprintf("Name is %d characters (max %d)", n, maxNameLength), "Shorten the name")
	}
}

func checkDescription(res *Result, fields map[string]any) {
	raw, ok := fields["description"]
	if !ok || raw == nil {
		res.addError("Missing required frontmatter field 'description'", "Describe what the skill does and when to use it")
		return
	}
	desc, ok := raw.(string)
	if !ok {
		res.addError(fmt.Sprintf("Field 'description' must be a string, got %T", raw), "Quote the description")
		return
	}
	if strings.TrimSpace(desc) == "" {
		res.addError("Missing required frontmatter field 'description'", "Describe what the skill does and when to use it")
		return
	}
	if strings.ContainsAny(desc, "<>") {
		res.addError("Description must not contain angle brackets", "Remove '<' and '>' from the description")
	}
	if n := utf8.RuneCountInString(desc); n > maxDescriptionLength {
		res.addError(fmt.Sprintf("Description is %d characters (max %d)", n, maxDescriptionLength), "Move detail into the body or references/")
	}
}
