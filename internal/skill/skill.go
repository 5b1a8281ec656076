// Package skill loads skill bundles and splits SKILL.md into its frontmatter
// mapping and body.
package skill

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the metadata document at the root of every bundle.
const FileName = "SKILL.md"

// Marker opens and closes the frontmatter block. It must sit on its own line.
const Marker = "---"

// Bundle subdirectories.
const (
	ReferencesDir = "references"
	ScriptsDir    = "scripts"
	AssetsDir     = "assets"
)

var (
	ErrEmpty           = errors.New("SKILL.md is empty")
	ErrNoOpeningMarker = errors.New("frontmatter must start with '---' on the first line")
	ErrNoClosingMarker = errors.New("closing frontmatter delimiter '---' not found")
	ErrNotMapping      = errors.New("frontmatter is not a YAML mapping")
)

// Bundle is a skill directory with its SKILL.md contents. Err is set when the
// document could not be read; Raw is empty in that case.
type Bundle struct {
	Dir  string
	Path string
	Raw  string
	Err  error
}

// Load reads dir/SKILL.md. It never fails; read problems are kept in Err.
func Load(dir string) *Bundle {
	b := &Bundle{Dir: dir, Path: filepath.Join(dir, FileName)}
	info, err := os.Stat(dir)
	switch {
	case err != nil:
		b.Err = fmt.Errorf("skill directory %s: %w", dir, err)
		return b
	case !info.IsDir():
		b.Err = fmt.Errorf("skill path %s is not a directory", dir)
		return b
	}
	data, err := os.ReadFile(b.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			b.Err = fmt.Errorf("no %s found in %s", FileName, dir)
		} else {
			b.Err = fmt.Errorf("reading %s: %w", b.Path, err)
		}
		return b
	}
	b.Raw = string(data)
	return b
}

// Readable reports whether SKILL.md was read.
func (b *Bundle) Readable() bool { return b.Err == nil }

// DirName is the base name of the bundle directory.
func (b *Bundle) DirName() string {
	abs, err := filepath.Abs(b.Dir)
	if err != nil {
		return filepath.Base(b.Dir)
	}
	return filepath.Base(abs)
}

// Document is a split SKILL.md.
type Document struct {
	Raw string
	// Header is the text between the markers, without them.
	Header string
	// Body is the text after the closing marker line, or all of Raw when
	// there is no complete frontmatter block.
	Body string
	// Fields is the parsed header mapping.
	Fields map[string]any
}

// Parse splits raw and parses the header as a YAML mapping. On error the
// returned Document still carries Raw and Body so that later checks can run.
func Parse(raw string) (*Document, error) {
	doc := &Document{Raw: raw, Body: raw}
	if strings.TrimSpace(raw) == "" {
		return doc, ErrEmpty
	}
	header, body, err := Split(raw)
	if err != nil {
		return doc, err
	}
	doc.Header = header
	doc.Body = body

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(header), &node); err != nil {
		return doc, fmt.Errorf("unmarshalling frontmatter: %w", err)
	}
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return doc, ErrNotMapping
	}
	var fields map[string]any
	if err := node.Decode(&fields); err != nil {
		return doc, fmt.Errorf("unmarshalling frontmatter: %w", err)
	}
	doc.Fields = fields
	return doc, nil
}

// Split separates the frontmatter block from the body. The first line must be
// exactly the marker; the block ends at the next line that is exactly the
// marker. A trailing '\r' on marker lines is tolerated.
func Split(raw string) (header, body string, err error) {
	lines := strings.SplitAfter(raw, "\n")
	if len(lines) == 0 || !isMarker(lines[0]) {
		return "", raw, ErrNoOpeningMarker
	}
	for i := 1; i < len(lines); i++ {
		if isMarker(lines[i]) {
			return strings.Join(lines[1:i], ""), strings.Join(lines[i+1:], ""), nil
		}
	}
	return "", raw, ErrNoClosingMarker
}

// Body returns the text after the frontmatter block, or raw when the block is
// missing or unterminated.
func Body(raw string) string {
	_, body, _ := Split(raw)
	return body
}

func isMarker(line string) bool {
	return strings.TrimRight(line, "\r\n") == Marker
}
