// Package assemble discovers a binary's full subcommand tree by repeated
// help invocations. An explicit work queue replaces recursion, so the depth
// bound and skip-and-warn policy are visible in one place.
package assemble

import (
	"context"
	"strings"

	"github.com/agentstation/helpman/internal/invoke"
	"github.com/agentstation/helpman/pkg/constants"
	"github.com/agentstation/helpman/pkg/errors"
	"github.com/agentstation/helpman/pkg/helptext"
	"github.com/agentstation/helpman/pkg/logging"
)

// Warning records one subcommand that was omitted from the tree.
type Warning struct {
	Path []string
	Err  error
}

// Command returns the space-joined command path the warning refers to.
func (w Warning) Command() string {
	return strings.Join(w.Path, " ")
}

// Assembler builds CommandHelp trees through a Runner.
type Assembler struct {
	runner   invoke.Runner
	maxDepth int
}

// New returns an Assembler using the given runner. maxDepth bounds
// subcommand nesting relative to the root; zero or negative selects the
// default.
func New(runner invoke.Runner, maxDepth int) *Assembler {
	if maxDepth <= 0 {
		maxDepth = constants.DefaultMaxDepth
	}
	return &Assembler{runner: runner, maxDepth: maxDepth}
}

// Assemble invokes and parses help for rootPath and every discovered
// subcommand path, breadth-first in discovery order. A failure on the root
// path is fatal; any other failure drops that subtree and records a warning,
// so one broken subcommand cannot prevent documenting the rest.
func (a *Assembler) Assemble(ctx context.Context, rootPath []string) (*helptext.CommandHelp, []Warning, error) {
	log := logging.FromContext(ctx)

	var (
		root     *helptext.CommandHelp
		warnings []Warning
	)
	// Nodes attach to parents by path; children are only enqueued after
	// their parent parsed, so the parent lookup cannot miss.
	nodes := make(map[string]*helptext.CommandHelp)

	frontier := [][]string{append([]string(nil), rootPath...)}

	for len(frontier) > 0 {
		if ctx.Err() != nil {
			return nil, warnings, errors.ErrCanceled
		}

		path := frontier[0]
		frontier = frontier[1:]
		isRoot := root == nil && len(path) == len(rootPath)

		depth := len(path) - len(rootPath)
		if depth > a.maxDepth {
			warnings = append(warnings, Warning{Path: path, Err: errors.New("max depth exceeded")})
			log.Warn().Strs("path", path).Int("max_depth", a.maxDepth).Msg("Skipping subcommand beyond depth bound")
			continue
		}

		node, err := a.node(ctx, path)
		if err != nil {
			if isRoot {
				return nil, warnings, err
			}
			warnings = append(warnings, Warning{Path: path, Err: err})
			log.Warn().Strs("path", path).Err(err).Msg("Skipping subcommand")
			continue
		}

		nodes[pathKey(path)] = node
		if isRoot {
			root = node
		} else {
			parent := nodes[pathKey(path[:len(path)-1])]
			parent.Children = append(parent.Children, node)
		}

		for _, name := range node.SubcommandNames {
			child := append(append([]string(nil), path...), name)
			frontier = append(frontier, child)
		}
		log.Debug().Strs("path", path).Int("subcommands", len(node.SubcommandNames)).Msg("Parsed command help")
	}

	return root, warnings, nil
}

// node runs one help invocation and classifies the output.
func (a *Assembler) node(ctx context.Context, path []string) (*helptext.CommandHelp, error) {
	text, err := a.runner.Run(ctx, path)
	if err != nil {
		return nil, err
	}
	return helptext.Parse(text, path)
}

func pathKey(path []string) string {
	return strings.Join(path, "\x00")
}
