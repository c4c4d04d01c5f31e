package helpman

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/helpman/internal/invoke"
	"github.com/agentstation/helpman/pkg/constants"
	"github.com/agentstation/helpman/pkg/errors"
)

// Option is a function that configures a Helpman instance.
type Option func(*config) error

// config carries everything a generation run needs, so no ambient state is
// consulted during assembly or rendering.
type config struct {
	binaryName string
	outputDir  string
	section    int
	title      string

	timeout  time.Duration
	maxDepth int

	runner invoke.Runner
	logger *zerolog.Logger

	homepage   string
	repository string
}

func defaultConfig() *config {
	return &config{
		outputDir: ".",
		section:   constants.DefaultManSection,
		timeout:   constants.DefaultHelpTimeout,
		maxDepth:  constants.DefaultMaxDepth,
	}
}

// WithBinaryName overrides the name used in the manual header and output
// file name. Defaults to the base name of the binary path.
func WithBinaryName(name string) Option {
	return func(c *config) error {
		c.binaryName = name
		return nil
	}
}

// WithOutputDir sets the directory the manual page is written to.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		if dir != "" {
			c.outputDir = dir
		}
		return nil
	}
}

// WithSection sets the manual section number (1-8).
func WithSection(section int) Option {
	return func(c *config) error {
		if section < constants.MinManSection || section > constants.MaxManSection {
			return errors.NewSectionError(section)
		}
		c.section = section
		return nil
	}
}

// WithTitle overrides the manual title derived from the section.
func WithTitle(title string) Option {
	return func(c *config) error {
		c.title = title
		return nil
	}
}

// WithTimeout bounds each help invocation of the target binary.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		if timeout > 0 {
			c.timeout = timeout
		}
		return nil
	}
}

// WithMaxDepth bounds subcommand nesting relative to the root command.
func WithMaxDepth(depth int) Option {
	return func(c *config) error {
		if depth > 0 {
			c.maxDepth = depth
		}
		return nil
	}
}

// WithRunner replaces the process-execution facility (useful for testing).
func WithRunner(runner invoke.Runner) Option {
	return func(c *config) error {
		c.runner = runner
		return nil
	}
}

// WithLogger sets the logger used during the run.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithHomepage adds a homepage reference to the SEE ALSO section.
func WithHomepage(url string) Option {
	return func(c *config) error {
		c.homepage = url
		return nil
	}
}

// WithRepository adds a source-repository reference to the SEE ALSO section.
func WithRepository(url string) Option {
	return func(c *config) error {
		c.repository = url
		return nil
	}
}
