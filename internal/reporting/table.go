package reporting

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/skillgate/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

const (
	indent      = "  "
	statusWidth = 4
	valueWidth  = 24
	// countWidth is one of the tokens/words/lines columns; three fill the
	// value column.
	countWidth = valueWidth / 3
)

// Table renders report as an aligned plain-text table.
func Table(report *models.SkillReport, opts Options) string {
	t := &tableWriter{width: opts.width()}
	t.labelWidth = t.width - len(indent) - 1 - valueWidth - 2 - statusWidth

	t.header(report)
	t.rule('=')
	t.gates(report.Gates)
	t.rule('-')

	t.section("SKILL.md")
	t.metricRow("Tokens", report.SkillMD.Tokens)
	t.metricRow("Words", report.SkillMD.Words)
	t.metricRow("Lines", report.SkillMD.Lines)

	t.section("REFERENCES")
	if len(report.References) == 0 {
		t.line(indent + "(none)")
	} else {
		t.line(indent + padRight("File", t.labelWidth) + " " + countColumns("Tokens", "Words", "Lines"))
		for _, ref := range report.References {
			t.row(ref.Name, countColumns(formatInt(ref.Tokens), formatInt(ref.Words), formatInt(ref.Lines)), ref.Status)
		}
		rt := report.ReferencesTotal
		t.line(indent + strings.Repeat("-", t.labelWidth+1+valueWidth))
		t.row("Subtotal", countColumns(formatInt(rt.Tokens), formatInt(rt.Words), formatInt(rt.Lines)), rt.Status)
	}

	t.section("TOTAL")
	total := report.Total
	value := formatMetric(total.Tokens) + " (" + numberPrinter.Sprintf("%.1f", total.BudgetPercent) + "%)"
	t.row("Tokens", value, total.Status)
	t.row("Words", formatInt(total.Words), "")
	t.row("Lines", formatInt(total.Lines), "")
	t.line(indent + "Budget: " + InterpretBudget(total))
	t.rule('=')

	t.issues("ERRORS", report.Errors)
	t.issues("WARNINGS", report.Warnings)
	return t.b.String()
}

type tableWriter struct {
	b          strings.Builder
	width      int
	labelWidth int
}

// line writes s padded to the table width.
func (t *tableWriter) line(s string) {
	t.b.WriteString(padRight(s, t.width))
	t.b.WriteByte('\n')
}

func (t *tableWriter) rule(ch rune) {
	t.line(strings.Repeat(string(ch), t.width))
}

func (t *tableWriter) section(title string) {
	t.line(title)
}

func (t *tableWriter) header(r *models.SkillReport) {
	status := string(r.Status)
	title := "SKILL: " + r.Skill
	room := t.width - statusWidth - 1
	title = runewidth.Truncate(title, room, "…")
	t.line(padRight(title, room) + " " + padLeft(status, statusWidth))
	t.line("Path: " + runewidth.Truncate(r.Path, t.width-len("Path: "), "…"))
	t.line("Timestamp: " + r.Timestamp)
}

// gates prints the four gate statuses two per row.
func (t *tableWriter) gates(g models.GateStatuses) {
	half := (t.width - len(indent)) / 2
	cellLabel := half - statusWidth - 1 - 2
	cell := func(gate string) string {
		return leader(gateLabel(gate), cellLabel) + " " + padRight(string(g.Get(gate)), statusWidth)
	}
	t.section("GATES")
	for i := 0; i < len(models.GateOrder); i += 2 {
		row := indent + cell(models.GateOrder[i])
		if i+1 < len(models.GateOrder) {
			row += "  " + cell(models.GateOrder[i+1])
		}
		t.line(row)
	}
}

func (t *tableWriter) metricRow(label string, m models.TokenMetric) {
	t.row(label, formatMetric(m), m.Status)
}

func (t *tableWriter) row(label, value string, status models.Status) {
	t.line(indent + leader(label, t.labelWidth) + " " + padLeft(value, valueWidth) + "  " + padRight(string(status), statusWidth))
}

func (t *tableWriter) issues(title string, issues []models.Issue) {
	t.line(title + " (" + formatInt(len(issues)) + ")")
	for _, is := range issues {
		t.wrapped(indent+"["+is.Gate+"] ", indent+indent, is.Message)
		if is.Suggestion != "" {
			t.wrapped(indent+indent+"-> ", indent+indent+"   ", is.Suggestion)
		}
	}
}

// wrapped writes text word-wrapped to the table width. The first line starts
// with first, continuation lines with rest.
func (t *tableWriter) wrapped(first, rest, text string) {
	prefix := first
	cur := ""
	for _, word := range strings.Fields(text) {
		room := t.width - runewidth.StringWidth(prefix)
		if cur != "" && runewidth.StringWidth(cur)+1+runewidth.StringWidth(word) > room {
			t.line(prefix + cur)
			prefix, cur = rest, ""
			room = t.width - runewidth.StringWidth(prefix)
		}
		if runewidth.StringWidth(word) > room {
			word = runewidth.Truncate(word, room, "…")
		}
		if cur == "" {
			cur = word
		} else {
			cur += " " + word
		}
	}
	t.line(prefix + cur)
}

func countColumns(tokens, words, lines string) string {
	return padLeft(tokens, countWidth) + padLeft(words, countWidth) + padLeft(lines, countWidth)
}

func gateLabel(gate string) string {
	if gate == "" {
		return gate
	}
	return strings.ToUpper(gate[:1]) + gate[1:]
}

func formatInt(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// formatMetric is "value / max", or just the value for advisory metrics.
func formatMetric(m models.TokenMetric) string {
	if m.Max == nil {
		return formatInt(m.Value)
	}
	return formatInt(m.Value) + " / " + formatInt(*m.Max)
}

// leader pads label with a dot leader to width columns. Labels that do not
// fit are truncated.
func leader(label string, width int) string {
	label = runewidth.Truncate(label, width-2, "…")
	fill := width - runewidth.StringWidth(label) - 1
	if fill <= 0 {
		return padRight(label, width)
	}
	return label + " " + strings.Repeat(".", fill)
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func padLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return strings.Repeat(" ", width-sw) + s
}
