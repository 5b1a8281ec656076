package metrics

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spboyer/skillgate/internal/budget"
	"github.com/spboyer/skillgate/internal/models"
	"github.com/spboyer/skillgate/internal/skill"
	"github.com/spboyer/skillgate/internal/tokens"
	"golang.org/x/sync/errgroup"
)

// maxParallelReads caps concurrent reference file reads.
const maxParallelReads = 8

// FileError records a reference file that could not be read.
type FileError struct {
	Name string
	Err  error
}

// SkillMetrics is the calculator output for one bundle.
type SkillMetrics struct {
	Body            tokens.Counts
	BodyMetrics     models.BodyMetrics
	References      []models.FileMetrics
	ReferencesTotal models.ReferencesTotal
	Total           models.TotalMetrics
	// Unreadable lists reference files that were found but could not be
	// read. They are excluded from the totals.
	Unreadable []FileError
}

// Calculator measures a bundle's body and reference files against a budget
// configuration.
type Calculator struct {
	cfg     *budget.Config
	counter tokens.Counter
}

// NewCalculator returns a Calculator bound to cfg that estimates tokens at
// four characters each.
func NewCalculator(cfg *budget.Config) *Calculator {
	return &Calculator{cfg: cfg, counter: tokens.NewEstimatingCounter()}
}

// Calculate measures body and every references/*.md file under dir. It
// does not fail: unreadable files are reported in Unreadable.
func (c *Calculator) Calculate(dir, body string) *SkillMetrics {
	var unreadable []FileError

	names, listErr := ReferenceFiles(dir)
	if listErr != nil {
		unreadable = append(unreadable, FileError{Name: skill.ReferencesDir, Err: listErr})
	}

	m := c.summarize(tokens.Measure(c.counter, body), c.readReferences(dir, names))
	m.Unreadable = append(unreadable, m.Unreadable...)

	slog.Debug("Metrics calculated",
		"bodyTokens", m.Body.Tokens,
		"references", len(m.References),
		"unreadable", len(m.Unreadable),
		"totalTokens", m.Total.Tokens.Value)
	return m
}

// Empty returns the metrics of a bundle with no body and no references.
func (c *Calculator) Empty() *SkillMetrics {
	return c.summarize(tokens.Counts{}, nil)
}

func (c *Calculator) summarize(body tokens.Counts, refs []referenceRead) *SkillMetrics {
	m := &SkillMetrics{References: []models.FileMetrics{}, Body: body}
	m.BodyMetrics = models.BodyMetrics{
		Tokens: c.cfg.Threshold(budget.BodyTokens).Measure(body.Tokens),
		Words:  c.cfg.Threshold(budget.BodyWords).Measure(body.Words),
		Lines:  c.cfg.Threshold(budget.BodyLines).Measure(body.Lines),
	}

	var sum tokens.Counts
	refThreshold := c.cfg.Threshold(budget.Reference)
	for _, r := range refs {
		if r.err != nil {
			m.Unreadable = append(m.Unreadable, FileError{Name: r.name, Err: r.err})
			continue
		}
		sum = sum.Add(r.counts)
		m.References = append(m.References, models.FileMetrics{
			Name:   r.name,
			Tokens: r.counts.Tokens,
			Words:  r.counts.Words,
			Lines:  r.counts.Lines,
			Status: refThreshold.Evaluate(r.counts.Tokens),
		})
	}

	m.ReferencesTotal = models.ReferencesTotal{
		Tokens: sum.Tokens,
		Words:  sum.Words,
		Lines:  sum.Lines,
		Status: c.cfg.Threshold(budget.ReferencesTotal).Evaluate(sum.Tokens),
	}

	total := m.Body.Add(sum)
	totalMetric := c.cfg.Threshold(budget.Total).Measure(total.Tokens)
	m.Total = models.TotalMetrics{
		Tokens:        totalMetric,
		Words:         total.Words,
		Lines:         total.Lines,
		Status:        totalMetric.Status,
		BudgetPercent: c.cfg.Percent(total.Tokens),
	}
	return m
}

type referenceRead struct {
	name   string
	counts tokens.Counts
	err    error
}

// readReferences reads files concurrently. Results keep the order of names.
func (c *Calculator) readReferences(dir string, names []string) []referenceRead {
	out := make([]referenceRead, len(names))
	refsDir := filepath.Join(dir, skill.ReferencesDir)

	var g errgroup.Group
	g.SetLimit(maxParallelReads)
	for i, name := range names {
		g.Go(func() error {
			out[i].name = name
			data, err := os.ReadFile(filepath.Join(refsDir, name))
			if err != nil {
				out[i].err = err
				return nil
			}
			out[i].counts = tokens.Measure(c.counter, string(data))
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// ReferenceFiles lists the .md files directly under dir/references by bare
// file name in lexical order. Subdirectories are not searched. A missing
// references directory yields no files and no error.
func ReferenceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dir, skill.ReferencesDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
