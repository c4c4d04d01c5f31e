package app

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.CreateVersionCommand())
	rootCmd.AddCommand(a.CreateManCommand(rootCmd))
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("helpman %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// CreateManCommand creates the man command, which documents helpman itself.
func (a *App) CreateManCommand(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate helpman's own man page",
		Hidden: true, // mainly for packaging use
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "HELPMAN",
				Section: "1",
				Source:  "helpman",
				Manual:  "User Commands",
			}
			return doc.GenMan(root, header, os.Stdout)
		},
	}
}
