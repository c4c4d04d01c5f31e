package assemble

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/helpman/pkg/errors"
	"github.com/agentstation/helpman/pkg/helptext"
)

// fakeRunner serves canned help text keyed by the space-joined command path.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, path []string) (string, error) {
	key := strings.Join(path, " ")
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	out, ok := f.outputs[key]
	if !ok {
		return "", errors.WrapInvoke(path, 1, errors.ErrNoHelpOutput)
	}
	return out, nil
}

// helpWith builds minimal help text declaring the given subcommands.
func helpWith(usage string, subcommands ...string) string {
	var b strings.Builder
	b.WriteString("Usage: " + usage + "\n")
	if len(subcommands) > 0 {
		b.WriteString("\nCommands:\n")
		for _, name := range subcommands {
			b.WriteString("  " + name + "    does " + name + "\n")
		}
	}
	return b.String()
}

func chainRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string]string{
		"a":     helpWith("a <COMMAND>", "b", "c"),
		"a b":   helpWith("a b"),
		"a c":   helpWith("a c <COMMAND>", "d"),
		"a c d": helpWith("a c d"),
	}}
}

// collectPaths flattens the tree into pre-order full command strings.
func collectPaths(root *helptext.CommandHelp) []string {
	var got []string
	root.Walk(func(n *helptext.CommandHelp) {
		got = append(got, n.FullCommand())
	})
	return got
}

func TestAssemble_BuildsTree(t *testing.T) {
	runner := chainRunner()
	root, warnings, err := New(runner, 0).Assemble(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 4, root.Count())
	assert.Equal(t, []string{"a", "a b", "a c", "a c d"}, collectPaths(root))
}

func TestAssemble_TreeShape(t *testing.T) {
	runner := chainRunner()
	root, warnings, err := New(runner, 0).Assemble(context.Background(), []string{"a"})
	require.NoError(t, err)
	require.Empty(t, warnings)

	require.Len(t, root.Children, 2)
	b := root.Children[0]
	c := root.Children[1]
	assert.Equal(t, []string{"a", "b"}, b.Path)
	assert.Equal(t, []string{"a", "c"}, c.Path)

	require.Len(t, c.Children, 1)
	assert.Equal(t, []string{"a", "c", "d"}, c.Children[0].Path)
	assert.Empty(t, b.Children)
}

// TestAssemble_RepeatedNameAtDifferentDepth verifies the path-extension
// invariant keeps the tree acyclic without any cycle detection.
func TestAssemble_RepeatedNameAtDifferentDepth(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"a":     helpWith("a <COMMAND>", "b", "c"),
		"a b":   helpWith("a b"),
		"a c":   helpWith("a c <COMMAND>", "b"),
		"a c b": helpWith("a c b"),
	}}

	root, warnings, err := New(runner, 0).Assemble(context.Background(), []string{"a"})
	require.NoError(t, err)
	require.Empty(t, warnings)

	assert.Equal(t, 4, root.Count())
	assert.Equal(t, []string{"a", "a b", "a c", "a c b"}, collectPaths(root))
}

func TestAssemble_Deterministic(t *testing.T) {
	first, _, err := New(chainRunner(), 0).Assemble(context.Background(), []string{"a"})
	require.NoError(t, err)
	second, _, err := New(chainRunner(), 0).Assemble(context.Background(), []string{"a"})
	require.NoError(t, err)

	assert.Equal(t, collectPaths(first), collectPaths(second))
}

func TestAssemble_SkipAndWarn(t *testing.T) {
	runner := chainRunner()
	runner.errs = map[string]error{
		"a b": errors.WrapInvoke([]string{"a", "b"}, 0, errors.ErrTimeout),
	}

	root, warnings, err := New(runner, 0).Assemble(context.Background(), []string{"a"})
	require.NoError(t, err, "one broken subcommand must not abort the run")

	// Siblings of the failed node survive.
	assert.Equal(t, []string{"a", "a c", "a c d"}, collectPaths(root))

	require.Len(t, warnings, 1)
	assert.Equal(t, "a b", warnings[0].Command())
	assert.True(t, errors.Is(warnings[0].Err, errors.ErrTimeout))
}

func TestAssemble_RootFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{
		"a": errors.WrapInvoke([]string{"a"}, 0, errors.ErrBinaryNotFound),
	}}

	root, _, err := New(runner, 0).Assemble(context.Background(), []string{"a"})
	assert.Nil(t, root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBinaryNotFound))
}

func TestAssemble_RootParseFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"a": "no usage here at all\n",
	}}

	root, _, err := New(runner, 0).Assemble(context.Background(), []string{"a"})
	assert.Nil(t, root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingUsage))
}

func TestAssemble_SubcommandParseFailureIsSkipped(t *testing.T) {
	runner := chainRunner()
	runner.outputs["a c"] = "gibberish without sections\n"

	root, warnings, err := New(runner, 0).Assemble(context.Background(), []string{"a"})
	require.NoError(t, err)

	// The c subtree is gone entirely; d is never even invoked.
	assert.Equal(t, []string{"a", "a b"}, collectPaths(root))
	assert.NotContains(t, runner.calls, "a c d")

	require.Len(t, warnings, 1)
	assert.True(t, errors.Is(warnings[0].Err, errors.ErrMissingUsage))
}

func TestAssemble_DepthBound(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"a":     helpWith("a", "b"),
		"a b":   helpWith("a b", "c"),
		"a b c": helpWith("a b c"),
	}}

	root, warnings, err := New(runner, 1).Assemble(context.Background(), []string{"a"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a b"}, collectPaths(root))
	require.Len(t, warnings, 1)
	assert.Equal(t, "a b c", warnings[0].Command())
	assert.NotContains(t, runner.calls, "a b c", "paths beyond the bound are never invoked")
}

func TestAssemble_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root, _, err := New(chainRunner(), 0).Assemble(ctx, []string{"a"})
	assert.Nil(t, root)
	assert.True(t, errors.Is(err, errors.ErrCanceled))
}
