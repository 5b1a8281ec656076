package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/skillgate/internal/tokens"
	"github.com/spf13/cobra"
)

// now is replaced in tests.
var now = time.Now

// skippedDirs are never descended into, along with any dot directory.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"coverage":     true,
}

type countJSONOutput struct {
	GeneratedAt string                    `json:"generatedAt"`
	TotalTokens int                       `json:"totalTokens"`
	TotalFiles  int                       `json:"totalFiles"`
	Files       map[string]countFileEntry `json:"files"`
}

type countFileEntry struct {
	Tokens int `json:"tokens"`
	Words  int `json:"words"`
	Lines  int `json:"lines"`
}

// fileCount is one measured markdown file. Path is slash-separated and
// relative to the working directory when possible.
type fileCount struct {
	Path string
	tokens.Counts
}

// scanner measures markdown files named on the command line or found under
// named directories. A file reached twice is counted once.
type scanner struct {
	root    string
	counter tokens.Counter
	seen    map[string]bool
	files   []fileCount
}

func newScanner(root string) *scanner {
	return &scanner{root: root, counter: tokens.NewEstimatingCounter(), seen: map[string]bool{}}
}

func (s *scanner) scan(arg string) error {
	target := arg
	if !filepath.IsAbs(target) {
		target = filepath.Join(s.root, target)
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %q: %w", arg, err)
	}
	if !info.IsDir() {
		return s.measure(target)
	}

	err = filepath.WalkDir(target, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != target && (skippedDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if isMarkdown(d.Name()) {
			return s.measure(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %q: %w", arg, err)
	}
	return nil
}

func (s *scanner) measure(p string) error {
	if s.seen[p] {
		return nil
	}
	s.seen[p] = true

	content, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("reading %s: %w", p, err)
	}
	display := p
	if rel, err := filepath.Rel(s.root, p); err == nil {
		display = rel
	}
	s.files = append(s.files, fileCount{
		Path:   filepath.ToSlash(filepath.Clean(display)),
		Counts: tokens.Measure(s.counter, string(content)),
	})
	return nil
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

func runCount(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	sortBy, err := cmd.Flags().GetString("sort")
	if err != nil {
		return err
	}
	minTokens, err := cmd.Flags().GetInt("min-tokens")
	if err != nil {
		return err
	}
	noTotal, err := cmd.Flags().GetBool("no-total")
	if err != nil {
		return err
	}
	switch format {
	case "table":
	case "json":
		if cmd.Flags().Changed("sort") {
			return errors.New("--sort is only supported with table output")
		}
		if cmd.Flags().Changed("no-total") {
			return errors.New("--no-total is only supported with table output")
		}
	default:
		return fmt.Errorf("unknown format %q (expected json or table)", format)
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}
	if len(args) == 0 {
		args = []string{"."}
	}
	s := newScanner(root)
	for _, arg := range args {
		if err := s.scan(arg); err != nil {
			return err
		}
	}

	var results []fileCount
	for _, f := range s.files {
		if f.Tokens >= minTokens {
			results = append(results, f)
		}
	}
	sortResults(results, sortBy)

	out := cmd.OutOrStdout()
	if format == "json" {
		return writeCountJSON(out, results)
	}
	writeCountTable(out, results, !noTotal)
	return nil
}

func sortResults(results []fileCount, by string) {
	sort.SliceStable(results, func(i, j int) bool {
		switch by {
		case "tokens":
			return results[i].Tokens > results[j].Tokens
		case "name":
			return strings.ToLower(filepath.Base(results[i].Path)) < strings.ToLower(filepath.Base(results[j].Path))
		default:
			return results[i].Path < results[j].Path
		}
	})
}

func writeCountTable(w io.Writer, results []fileCount, showTotal bool) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No markdown files found.")
		return
	}

	pathWidth := runewidth.StringWidth("File")
	for _, r := range results {
		pathWidth = max(pathWidth, runewidth.StringWidth(r.Path))
	}
	row := func(label string, c tokens.Counts) {
		fmt.Fprintf(w, "%s  %8d  %8d  %6d\n", runewidth.FillRight(label, pathWidth), c.Tokens, c.Words, c.Lines)
	}

	header := fmt.Sprintf("%s  %8s  %8s  %6s", runewidth.FillRight("File", pathWidth), "Tokens", "Words", "Lines")
	rule := strings.Repeat("-", len(header))
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, rule)

	var total tokens.Counts
	for _, r := range results {
		row(r.Path, r.Counts)
		total = total.Add(r.Counts)
	}

	if showTotal {
		fmt.Fprintln(w, rule)
		row("Total", total)
		fmt.Fprintf(w, "\n%d file(s) scanned\n", len(results))
	}
}

func writeCountJSON(w io.Writer, results []fileCount) error {
	out := countJSONOutput{
		GeneratedAt: now().UTC().Format(time.RFC3339),
		TotalFiles:  len(results),
		Files:       make(map[string]countFileEntry, len(results)),
	}
	for _, r := range results {
		out.TotalTokens += r.Tokens
		out.Files[r.Path] = countFileEntry{Tokens: r.Tokens, Words: r.Words, Lines: r.Lines}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
