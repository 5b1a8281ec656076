// Package projectconfig provides the ProjectConfig struct and loader for
// .skillgate.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spboyer/skillgate/internal/budget"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".skillgate.yaml"

// maxWalkLevels bounds the upward search for FileName.
const maxWalkLevels = 10

// Default output settings. Budget defaults live in the budget package.
const (
	DefaultFormat = "table"
	DefaultWidth  = 80
)

// BudgetConfig overrides the token budget.
type BudgetConfig struct {
	Total        int     `yaml:"total,omitempty"`
	WarningRatio float64 `yaml:"warning_ratio,omitempty"`
}

// OutputConfig holds report rendering defaults. CLI flags take precedence.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	Width  int    `yaml:"width,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .skillgate.yaml.
type ProjectConfig struct {
	Budget BudgetConfig `yaml:"budget,omitempty"`
	Output OutputConfig `yaml:"output,omitempty"`

	// Path is the file the values came from; empty when defaults were used.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Budget: BudgetConfig{
			Total:        budget.DefaultTotalBudget,
			WarningRatio: budget.DefaultWarningRatio,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
			Width:  DefaultWidth,
		},
	}
}

// BudgetOverrides returns the budget section in the form budget.Load expects.
func (c *ProjectConfig) BudgetOverrides() budget.Overrides {
	return budget.Overrides{
		TotalBudget:  c.Budget.Total,
		WarningRatio: c.Budget.WarningRatio,
	}
}

// Load finds .skillgate.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.Path = path
	return cfg, nil
}

// findConfigFile walks up from dir looking for FileName. Returns
// os.ErrNotExist if none is found.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range maxWalkLevels {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays usable values from src onto dst. Out-of-range budget
// values are ignored so the defaults stay in effect.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Budget.Total > 0 {
		dst.Budget.Total = src.Budget.Total
	}
	if src.Budget.WarningRatio > 0 && src.Budget.WarningRatio <= 1 {
		dst.Budget.WarningRatio = src.Budget.WarningRatio
	}

	if src.Output.Format != "" {
		dst.Output.Format = src.Output.Format
	}
	if src.Output.Width > 0 {
		dst.Output.Width = src.Output.Width
	}
}
