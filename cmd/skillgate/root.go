package main

import (
	"log/slog"

	"github.com/spboyer/skillgate/cmd/skillgate/tokens"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skillgate",
		Short: "skillgate - quality gates for Agent Skill bundles",
		Long: `skillgate validates Agent Skill bundles before they ship.

A bundle is a directory with a SKILL.md file and optional references/,
scripts/ and assets/ directories. Validation runs four gates (syntax,
semantic, budget, integrity) and reports every error and warning found.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newConfigCommand())
	cmd.AddCommand(tokens.NewCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
