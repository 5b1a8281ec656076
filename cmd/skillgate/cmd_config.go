package main

import (
	"fmt"
	"os"

	"github.com/spboyer/skillgate/internal/budget"
	"github.com/spboyer/skillgate/internal/projectconfig"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type effectiveConfig struct {
	Source     string                     `yaml:"source"`
	Budget     effectiveBudget            `yaml:"budget"`
	Thresholds []thresholdEntry           `yaml:"thresholds"`
	Output     projectconfig.OutputConfig `yaml:"output"`
}

type effectiveBudget struct {
	Total                  int     `yaml:"total"`
	WarningRatio           float64 `yaml:"warning_ratio"`
	ReferenceStrongWarning int     `yaml:"reference_strong_warning"`
}

type thresholdEntry struct {
	Metric  string `yaml:"metric"`
	Warning int    `yaml:"warning"`
	Error   *int   `yaml:"error"`
	Mode    string `yaml:"mode"`
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config [skill-dir]",
		Short: "Print the effective budget configuration",
		Long: `Print the configuration validate would use for a bundle, after applying
.skillgate.yaml and the SKILL_TOTAL_BUDGET and SKILL_WARNING_RATIO
environment variables.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConfig,
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	pc, err := projectconfig.Load(dir)
	if err != nil {
		return err
	}
	cfg := budget.Load(pc.BudgetOverrides(), os.Getenv)

	data, err := yaml.Marshal(describeConfig(pc, cfg))
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func describeConfig(pc *projectconfig.ProjectConfig, cfg *budget.Config) effectiveConfig {
	source := pc.Path
	if source == "" {
		source = "defaults"
	}
	ec := effectiveConfig{
		Source: source,
		Budget: effectiveBudget{
			Total:                  cfg.TotalBudget(),
			WarningRatio:           cfg.WarningRatio(),
			ReferenceStrongWarning: cfg.ReferenceStrongWarning(),
		},
		Output: pc.Output,
	}
	for _, m := range budget.Metrics {
		th := cfg.Threshold(m)
		ec.Thresholds = append(ec.Thresholds, thresholdEntry{
			Metric:  m.String(),
			Warning: th.Warning,
			Error:   th.Error,
			Mode:    string(th.Mode),
		})
	}
	return ec
}
