package helpman

import (
	"context"
	"path/filepath"

	"github.com/agentstation/helpman/internal/assemble"
	"github.com/agentstation/helpman/internal/invoke"
	"github.com/agentstation/helpman/pkg/logging"
	"github.com/agentstation/helpman/pkg/mandoc"
)

// fallbackVersion is stamped into the header when the binary answers no
// --version probe.
const fallbackVersion = "1.0.0"

// Generate implements the Helpman interface.
func (h *helpman) Generate(ctx context.Context, binaryPath string) (*Result, error) {
	c := h.config

	logger := c.logger
	if logger == nil {
		logger = logging.Default()
	}
	ctx = logging.WithLogger(ctx, logger)

	name := c.binaryName
	if name == "" {
		name = filepath.Base(binaryPath)
	}

	runner := c.runner
	if runner == nil {
		runner = invoke.NewExecRunner(c.timeout)
	}

	assembler := assemble.New(runner, c.maxDepth)
	root, warnings, err := assembler.Assemble(ctx, []string{binaryPath})
	if err != nil {
		return nil, err
	}

	doc, err := mandoc.NewDocument(root, name, c.section, c.title)
	if err != nil {
		return nil, err
	}
	doc.Version = probeVersion(ctx, runner, binaryPath)
	doc.Homepage = c.homepage
	doc.Repository = c.repository

	outPath := filepath.Join(c.outputDir, doc.Filename())
	if err := writeAtomic(outPath, mandoc.Render(doc)); err != nil {
		return nil, err
	}

	logger.Info().
		Str("path", outPath).
		Int("commands", root.Count()).
		Int("skipped", len(warnings)).
		Msg("Manual page generated")

	return &Result{Path: outPath, Document: doc, Warnings: warnings}, nil
}

// probeVersion asks the binary for its version, falling back to a neutral
// default when the probe fails or the runner cannot probe at all.
func probeVersion(ctx context.Context, runner invoke.Runner, binaryPath string) string {
	prober, ok := runner.(invoke.VersionProber)
	if !ok {
		return fallbackVersion
	}
	version, err := prober.Version(ctx, binaryPath)
	if err != nil || version == "" {
		logging.FromContext(ctx).Debug().Err(err).Msg("Version probe failed, using fallback")
		return fallbackVersion
	}
	return version
}
