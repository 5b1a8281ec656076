// Package tokens implements the "skillgate tokens" command.
package tokens

import (
	"github.com/spf13/cobra"
)

// NewCommand returns the tokens command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [paths...]",
		Short: "Count tokens, words and lines in markdown files",
		Long: `Count tokens, words and lines in markdown files using the same estimate
the budget gate applies (one token per four characters).

Paths may be files or directories (scanned recursively for .md/.mdx files).
A relative path is resolved from the working directory; an absolute path is
used as-is. When no path is given, the working directory is scanned.`,
		Args: cobra.ArbitraryArgs,
		RunE: runCount,
	}
	cmd.Flags().String("format", "table", "Output format: json | table")
	cmd.Flags().String("sort", "path", "Sort table rows by: tokens | name | path")
	cmd.Flags().Int("min-tokens", 0, "Filter files with less than n tokens")
	cmd.Flags().Bool("no-total", false, "Hide total row in table output")
	return cmd
}
