package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/helpman"
	"github.com/agentstation/helpman/internal/report"
	"github.com/agentstation/helpman/internal/seealso"
)

// Execute runs the helpman CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "helpman [flags] BINARY_PATH",
		Short:   "Generate manual pages from a binary's help output",
		Version: a.version,
		Long: `Helpman converts a command-line binary's --help output, including the
help of every subcommand it exposes, into a troff manual page.

The binary is invoked once per discovered command path. Subcommands whose
help cannot be captured or parsed are skipped with a warning; the manual
is still generated for everything that parsed.`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: a.setupCommand,
		RunE:              a.runGenerate,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.helpman.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Generation flags; registration defaults come from the loaded config,
	// so flags given on the command line win over file and env values.
	flags := rootCmd.Flags()
	flags.StringVarP(&a.config.BinaryName, "binary-name", "n", a.config.BinaryName, "name used in the manual header (default: file name of BINARY_PATH)")
	flags.StringVarP(&a.config.OutputDir, "output-dir", "o", a.config.OutputDir, "directory the manual page is written to")
	flags.IntVarP(&a.config.Section, "section", "s", a.config.Section, "manual section number (1-8)")
	flags.StringVarP(&a.config.Title, "title", "t", a.config.Title, "manual title (default: derived from section)")
	flags.DurationVar(&a.config.Timeout, "timeout", a.config.Timeout, "timeout per help invocation")
	flags.IntVar(&a.config.MaxDepth, "max-depth", a.config.MaxDepth, "maximum subcommand nesting depth")
	flags.StringVar(&a.config.ReportPath, "report", a.config.ReportPath, "write a YAML generation report to this file")
	flags.StringVar(&a.config.Homepage, "homepage", a.config.Homepage, "homepage URL for the SEE ALSO section")
	flags.StringVar(&a.config.Repository, "repository", a.config.Repository, "repository URL for the SEE ALSO section (default: discovered from .git/config)")

	// -V shorthand; cobra handles the flag once it exists.
	rootCmd.Flags().BoolP("version", "V", false, "print version and exit")
	rootCmd.SetVersionTemplate("helpman {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, logLevel)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// runGenerate executes the full pipeline for the binary named on the
// command line.
func (a *App) runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	binaryPath := args[0]

	repository := a.config.Repository
	if repository == "" {
		repository = seealso.RepositoryURL(".")
	}

	result, err := helpman.Generate(ctx, binaryPath,
		helpman.WithBinaryName(a.config.BinaryName),
		helpman.WithOutputDir(a.config.OutputDir),
		helpman.WithSection(a.config.Section),
		helpman.WithTitle(a.config.Title),
		helpman.WithTimeout(a.config.Timeout),
		helpman.WithMaxDepth(a.config.MaxDepth),
		helpman.WithHomepage(a.config.Homepage),
		helpman.WithRepository(repository),
		helpman.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	if a.config.ReportPath != "" {
		rep := report.New(
			result.Document.BinaryName,
			result.Document.Section,
			result.Path,
			result.Document.Root.Count(),
			result.Warnings,
		)
		if err := rep.Write(a.config.ReportPath); err != nil {
			return err
		}
		a.logger.Info().Str("path", a.config.ReportPath).Msg("Generation report written")
	}

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
