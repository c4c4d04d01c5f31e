// Package helpman turns a command-line binary's self-reported help text,
// including the help of every subcommand it exposes, into a single
// troff-formatted manual page.
//
// The pipeline is synchronous: each discovered command path is invoked once
// with a help flag, the captured text is classified into structured fields,
// the resulting nodes form a single-owner tree, and the tree is rendered and
// written atomically. One broken subcommand is skipped with a warning; only
// root-path failures abort a run.
//
// Example:
//
//	result, err := helpman.Generate(ctx, "/usr/local/bin/mytool",
//	    helpman.WithSection(1),
//	    helpman.WithOutputDir("./man"))
package helpman

import (
	"context"

	"github.com/agentstation/helpman/internal/assemble"
	"github.com/agentstation/helpman/pkg/mandoc"
)

// Result describes a completed generation run.
type Result struct {
	// Path is the written manual page file.
	Path string

	// Document is the rendered document, including the assembled tree.
	Document *mandoc.Document

	// Warnings lists subcommands omitted from the document.
	Warnings []assemble.Warning
}

// Generate builds and writes a manual page for the binary at binaryPath.
// It is shorthand for New followed by Generate on the returned instance.
func Generate(ctx context.Context, binaryPath string, opts ...Option) (*Result, error) {
	h, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return h.Generate(ctx, binaryPath)
}

// Helpman generates manual pages from help output.
type Helpman interface {
	// Generate runs the full pipeline for one binary: assemble the command
	// tree, render it, and write <binary-name>.<section> to the output
	// directory. No file is written on failure or cancellation.
	Generate(ctx context.Context, binaryPath string) (*Result, error)
}

// New creates a Helpman instance with the given options.
func New(opts ...Option) (Helpman, error) {
	c := defaultConfig()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return &helpman{config: c}, nil
}

// helpman is the internal implementation of the Helpman interface.
type helpman struct {
	config *config
}
