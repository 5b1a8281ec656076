package validator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spboyer/skillgate/internal/budget"
	"github.com/spboyer/skillgate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.FixedZone("PST", -8*3600))

func newTestValidator(cfg *budget.Config) *Validator {
	return New(cfg, WithClock(func() time.Time { return fixedTime }))
}

func writeSkill(t *testing.T, skillMD string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "pdf-tools")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(skillMD), 0o644))
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

const validSkill = `---
name: pdf-tools
description: Extracts tables from PDF files into CSV. Use when the user asks to convert PDF tables.
---
# PDF tools

Read references/api.md for the extractor options.
`

func TestValidate_CleanSkillPasses(t *testing.T) {
	dir := writeSkill(t, validSkill, map[string]string{
		"references/api.md": "# API\n\nOptions.\n",
	})

	r := newTestValidator(nil).Validate(t.Context(), dir)

	assert.Equal(t, models.StatusPass, r.Status)
	assert.True(t, r.Passed())
	assert.Equal(t, "pdf-tools", r.Skill)
	assert.Equal(t, dir, r.Path)
	assert.Equal(t, "2026-03-14T23:09:26Z", r.Timestamp)
	assert.Equal(t, models.GateStatuses{
		Syntax:    models.StatusPass,
		Semantic:  models.StatusPass,
		Budget:    models.StatusPass,
		Integrity: models.StatusPass,
	}, r.Gates)
	require.Len(t, r.References, 1)
	assert.Equal(t, "api.md", r.References[0].Name)
	assert.Equal(t, r.References[0].Tokens, r.ReferencesTotal.Tokens)
	assert.Equal(t, r.SkillMD.Tokens.Value+r.ReferencesTotal.Tokens, r.Total.Tokens.Value)
	assert.NotNil(t, r.Errors)
	assert.NotNil(t, r.Warnings)
	assert.Empty(t, r.Errors)
}

func TestValidate_MissingBundle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")

	r := newTestValidator(nil).Validate(t.Context(), dir)

	assert.Equal(t, models.StatusFail, r.Status)
	assert.Equal(t, "nope", r.Skill)
	assert.Equal(t, models.StatusFail, r.Gates.Syntax)
	assert.Equal(t, models.StatusSkip, r.Gates.Semantic)
	assert.Equal(t, models.StatusSkip, r.Gates.Budget)
	assert.Equal(t, models.StatusSkip, r.Gates.Integrity)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, models.GateSyntax, r.Errors[0].Gate)
	assert.Empty(t, r.Warnings)
	assert.Empty(t, r.References)
	assert.Equal(t, 0, r.Total.Tokens.Value)
	require.NotNil(t, r.Total.Tokens.Max)
	assert.Equal(t, budget.DefaultTotalBudget, *r.Total.Tokens.Max)
}

func TestValidate_DirectoryWithoutSkillMD(t *testing.T) {
	dir := t.TempDir()

	r := newTestValidator(nil).Validate(t.Context(), dir)

	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0].Message, "no SKILL.md found")
	assert.Equal(t, models.StatusSkip, r.Gates.Integrity)
}

func TestValidate_AllGatesRunAfterSyntaxFailure(t *testing.T) {
	skillMD := "---\nname: PDF_Tools\ndescription: Short.\n---\n[TODO: write]\nSee references/missing.md\n"
	dir := writeSkill(t, skillMD, nil)

	r := newTestValidator(nil).Validate(t.Context(), dir)

	assert.Equal(t, models.StatusFail, r.Status)
	assert.Equal(t, models.StatusFail, r.Gates.Syntax)
	assert.Equal(t, models.StatusFail, r.Gates.Semantic)
	assert.Equal(t, models.StatusPass, r.Gates.Budget)
	assert.Equal(t, models.StatusFail, r.Gates.Integrity)

	// Issues come out in gate order.
	var gates []string
	for _, e := range r.Errors {
		gates = append(gates, e.Gate)
	}
	assert.Equal(t, []string{models.GateSyntax, models.GateSemantic, models.GateIntegrity}, gates)
}

func TestValidate_SemanticSkippedWithoutMapping(t *testing.T) {
	dir := writeSkill(t, "# No frontmatter\n\nBody.\n", nil)

	r := newTestValidator(nil).Validate(t.Context(), dir)

	assert.Equal(t, models.StatusFail, r.Gates.Syntax)
	assert.Equal(t, models.StatusSkip, r.Gates.Semantic)
	assert.NotEqual(t, models.StatusSkip, r.Gates.Budget)
	assert.NotEqual(t, models.StatusSkip, r.Gates.Integrity)
	assert.Equal(t, "pdf-tools", r.Skill)
	// Without a header the whole document is the body.
	assert.Equal(t, len("# No frontmatter\n\nBody.\n")/4, r.SkillMD.Tokens.Value)
}

func TestValidate_WarningsDoNotFail(t *testing.T) {
	dir := writeSkill(t, validSkill, map[string]string{
		"references/api.md": strings.Repeat("a", 18000),
	})

	r := newTestValidator(nil).Validate(t.Context(), dir)

	assert.Equal(t, models.StatusPass, r.Status)
	assert.Equal(t, models.StatusPass, r.Gates.Budget)
	assert.Empty(t, r.Errors)
	require.NotEmpty(t, r.Warnings)
	assert.Equal(t, models.StatusWarn, r.References[0].Status)
}

func TestValidate_DirectiveVoiceKeepsGatePassing(t *testing.T) {
	skillMD := strings.Replace(validSkill, "# PDF tools\n", "# PDF tools\n\nYou should run the extractor first.\n", 1)
	dir := writeSkill(t, skillMD, map[string]string{"references/api.md": "# API\n"})

	r := newTestValidator(nil).Validate(t.Context(), dir)

	assert.Equal(t, models.StatusPass, r.Status)
	assert.Equal(t, models.StatusPass, r.Gates.Semantic)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, models.GateSemantic, r.Warnings[0].Gate)
}

func TestValidate_SkillNamedAfterDirectory(t *testing.T) {
	skillMD := strings.Replace(validSkill, "name: pdf-tools", "name: pdf-extractor", 1)
	dir := writeSkill(t, skillMD, map[string]string{"references/api.md": "# API\n"})

	r := newTestValidator(nil).Validate(t.Context(), dir)

	assert.Equal(t, "pdf-tools", r.Skill)
	assert.Equal(t, models.StatusPass, r.Status)
}

func TestValidate_BodyOverLimit(t *testing.T) {
	body := strings.Repeat("word ", 5000)
	skillMD := strings.Replace(validSkill, "# PDF tools\n", "# PDF tools\n"+body+"\n", 1)
	dir := writeSkill(t, skillMD, map[string]string{"references/api.md": "x"})

	r := newTestValidator(nil).Validate(t.Context(), dir)

	assert.Equal(t, models.StatusFail, r.Status)
	assert.Equal(t, models.StatusFail, r.Gates.Budget)
	assert.Equal(t, models.StatusFail, r.SkillMD.Tokens.Status)
}

func TestValidate_CustomBudget(t *testing.T) {
	dir := writeSkill(t, validSkill, map[string]string{
		"references/api.md": strings.Repeat("a", 400),
	})

	r := newTestValidator(budget.New(100, 0.5)).Validate(t.Context(), dir)

	assert.Equal(t, models.StatusFail, r.Status)
	assert.Equal(t, models.StatusFail, r.Total.Status)
	require.NotNil(t, r.Total.Tokens.Max)
	assert.Equal(t, 100, *r.Total.Tokens.Max)
	assert.Greater(t, r.Total.BudgetPercent, 100.0)
}
