package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spboyer/skillgate/internal/budget"
	"github.com/spboyer/skillgate/internal/projectconfig"
	"github.com/spboyer/skillgate/internal/reporting"
	"github.com/spboyer/skillgate/internal/validator"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type validateOptions struct {
	format string
	width  int
	output string
}

func newValidateCommand() *cobra.Command {
	opts := &validateOptions{}
	formats := make([]string, len(reporting.Formats))
	for i, f := range reporting.Formats {
		formats[i] = string(f)
	}

	cmd := &cobra.Command{
		Use:   "validate [skill-dir]",
		Short: "Validate a skill bundle",
		Long: `Validate a skill bundle and print a report.

The bundle directory defaults to the working directory. Budget limits come
from .skillgate.yaml (searched upward from the bundle) and the
SKILL_TOTAL_BUDGET and SKILL_WARNING_RATIO environment variables.

Exit status is 0 when the skill passes, 1 when it fails, 2 on usage errors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table",
		fmt.Sprintf("Output format: %s (structured is an alias for xml)", strings.Join(formats, " | ")))
	cmd.Flags().IntVar(&opts.width, "width", 0, "Table width in columns (default: terminal width or 80)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to this file instead of stdout")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *validateOptions) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	pc, err := projectconfig.Load(dir)
	if err != nil {
		return err
	}
	if pc.Path != "" {
		slog.Debug("Using project config", "path", pc.Path)
	}

	formatName := pc.Output.Format
	if cmd.Flags().Changed("format") {
		formatName = opts.format
	}
	format, err := reporting.ParseFormat(formatName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	width := pc.Output.Width
	if cmd.Flags().Changed("width") {
		width = opts.width
	} else if tw, ok := terminalWidth(out); ok && opts.output == "" {
		width = tw
	}

	cfg := budget.Load(pc.BudgetOverrides(), os.Getenv)
	report := validator.New(cfg).Validate(cmd.Context(), dir)

	rendered, err := reporting.Render(report, format, reporting.Options{Width: width})
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), reporting.Summary(report)) //nolint:errcheck
	} else if _, err := io.WriteString(out, rendered); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if !report.Passed() {
		return &ValidationFailedError{Message: reporting.Summary(report)}
	}
	return nil
}

// terminalWidth reports the column count of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	tw, _, err := term.GetSize(int(f.Fd()))
	if err != nil || tw <= 0 {
		return 0, false
	}
	return tw, true
}
