package helptext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/helpman/pkg/errors"
)

const clapStyleHelp = `A tool that does things

Usage: mytool [OPTIONS] <INPUT>

Arguments:
  <INPUT>  Input file to process

Options:
  -v, --verbose          Be verbose
  -o, --output <FILE>    Output file [default: out.txt]
  -q, --quiet            Be quiet
                         and stay quiet
  -h, --help             Print help

Commands:
  build    Build the thing
  clean    Clean artifacts
  help     Print this message or the help of a subcommand
`

// TestParse_ClapStyle covers the common clap/cobra help shape end to end.
func TestParse_ClapStyle(t *testing.T) {
	cmd, err := Parse(clapStyleHelp, []string{"mytool"})
	require.NoError(t, err)

	assert.Equal(t, "mytool [OPTIONS] <INPUT>", cmd.Usage)
	assert.Equal(t, "A tool that does things", cmd.Description)

	require.Len(t, cmd.Arguments, 1)
	assert.Equal(t, "<INPUT>", cmd.Arguments[0].Name)
	assert.Equal(t, "Input file to process", cmd.Arguments[0].Help)

	require.Len(t, cmd.Options, 4)
	assert.Equal(t, "-v", cmd.Options[0].Short)
	assert.Equal(t, "--verbose", cmd.Options[0].Long)
	assert.Equal(t, "Be verbose", cmd.Options[0].Help)

	assert.Equal(t, "<FILE>", cmd.Options[1].Placeholder)
	assert.True(t, cmd.Options[1].HasDefault, "embedded [default: ...] should be detected")

	// Continuation lines fold into the previous option's help.
	assert.Equal(t, "Be quiet and stay quiet", cmd.Options[2].Help)

	// "help" never appears as a subcommand; recursing into it would only
	// re-document the root.
	assert.Equal(t, []string{"build", "clean"}, cmd.SubcommandNames)
}

// TestParse_UsageVerbatim verifies the parser's one hard guarantee: any text
// with a usage line parses, and the synopsis is returned as written.
func TestParse_UsageVerbatim(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		usage string
	}{
		{
			name:  "inline usage",
			text:  "Usage: run me now\n",
			usage: "run me now",
		},
		{
			name:  "uppercase header",
			text:  "USAGE: tool [FLAGS]\n",
			usage: "tool [FLAGS]",
		},
		{
			name:  "git style lowercase",
			text:  "usage: git [--version] [--help] <command>\n",
			usage: "git [--version] [--help] <command>",
		},
		{
			name:  "usage on following line",
			text:  "Usage:\n  kubectl [command]\n",
			usage: "kubectl [command]",
		},
		{
			name:  "prose after blank line stays out of the synopsis",
			text:  "Usage: run me\n\nSome prose after the usage block.\n",
			usage: "run me",
		},
		{
			name:  "git style prose after synopsis",
			text:  "usage: git [--version] <command>\n\nThese are common commands used daily.\n",
			usage: "git [--version] <command>",
		},
		{
			name:  "column-zero prose directly under the synopsis",
			text:  "Usage: prog [-h] [--out FILE]\nPositional arguments are described below.\n",
			usage: "prog [-h] [--out FILE]",
		},
		{
			name:  "indented alternate forms still join",
			text:  "Usage:\n  tool get <name>\n  tool list\n",
			usage: "tool get <name> | tool list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.text, []string{"x"})
			require.NoError(t, err)
			assert.Equal(t, tt.usage, cmd.Usage)
		})
	}
}

// TestParse_ProseAfterUsageBecomesDescription verifies text following the
// synopsis block is kept, just in the right field.
func TestParse_ProseAfterUsageBecomesDescription(t *testing.T) {
	text := `usage: git [--version] <command>

These are common commands used daily.

Commands:
  clone    Clone a repository
`
	cmd, err := Parse(text, []string{"git"})
	require.NoError(t, err)
	assert.Equal(t, "git [--version] <command>", cmd.Usage)
	assert.Equal(t, "These are common commands used daily.", cmd.Description)
	assert.Equal(t, []string{"clone"}, cmd.SubcommandNames)
}

// TestParse_MissingUsage verifies the single hard failure mode.
func TestParse_MissingUsage(t *testing.T) {
	texts := []string{
		"",
		"just some prose\nwith no sections at all\n",
		"Options:\n  -v  verbose\n",
	}
	for _, text := range texts {
		_, err := Parse(text, []string{"x"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrMissingUsage), "want ErrMissingUsage, got %v", err)

		var parseErr *errors.ParseError
		assert.True(t, errors.As(err, &parseErr))
	}
}

// TestParse_UnknownHeaderFoldsIntoDescription checks forward compatibility:
// unknown sections are kept, not rejected.
func TestParse_UnknownHeaderFoldsIntoDescription(t *testing.T) {
	text := `Usage: tool [OPTIONS]

Options:
  -v  verbose

Examples:
  tool --frob input.txt
`
	cmd, err := Parse(text, []string{"tool"})
	require.NoError(t, err)
	require.Len(t, cmd.Options, 1)

	assert.Contains(t, cmd.Description, "Examples:")
	assert.Contains(t, cmd.Description, "tool --frob input.txt")
}

// TestParse_CobraStyle covers "Available Commands:" and "Flags:" variants.
func TestParse_CobraStyle(t *testing.T) {
	text := `Manage the frobnicator.

Usage:
  frob [command]

Available Commands:
  start       Start frobnicating
  stop        Stop frobnicating
  completion  Generate the autocompletion script

Flags:
  -h, --help   help for frob
      --force  never prompt
`
	cmd, err := Parse(text, []string{"frob"})
	require.NoError(t, err)

	assert.Equal(t, "frob [command]", cmd.Usage)
	assert.Equal(t, []string{"start", "stop", "completion"}, cmd.SubcommandNames)

	require.Len(t, cmd.Options, 2)
	assert.Equal(t, "-h", cmd.Options[0].Short)
	assert.Equal(t, "--force", cmd.Options[1].Long)
	assert.Equal(t, "", cmd.Options[1].Short)
}

// TestParse_ArgumentContinuation verifies the continuation rule applies to
// the arguments section too.
func TestParse_ArgumentContinuation(t *testing.T) {
	text := `Usage: tool <SRC> <DST>

Arguments:
  <SRC>  Source path, which may be
           a file or a directory
  <DST>  Destination path
`
	cmd, err := Parse(text, []string{"tool"})
	require.NoError(t, err)

	require.Len(t, cmd.Arguments, 2)
	assert.Equal(t, "Source path, which may be a file or a directory", cmd.Arguments[0].Help)
	assert.Equal(t, "<DST>", cmd.Arguments[1].Name)
}

// TestParse_DuplicateSubcommandNames verifies names are deduplicated while
// preserving first-seen order.
func TestParse_DuplicateSubcommandNames(t *testing.T) {
	text := `Usage: tool <command>

Commands:
  sync    Synchronize
  sync    Synchronize again
  status  Show status
`
	cmd, err := Parse(text, []string{"tool"})
	require.NoError(t, err)
	assert.Equal(t, []string{"sync", "status"}, cmd.SubcommandNames)
}

// TestParse_PathIsCopied ensures the parser does not alias the caller's slice.
func TestParse_PathIsCopied(t *testing.T) {
	path := []string{"tool", "sub"}
	cmd, err := Parse("Usage: tool sub\n", path)
	require.NoError(t, err)

	path[1] = "mutated"
	assert.Equal(t, "sub", cmd.Name())
	assert.Equal(t, "tool sub", cmd.FullCommand())
}

func TestOptionLabel(t *testing.T) {
	tests := []struct {
		opt   Option
		label string
	}{
		{Option{Short: "-v", Long: "--verbose"}, "-v, --verbose"},
		{Option{Long: "--output", Placeholder: "<FILE>"}, "--output <FILE>"},
		{Option{Short: "-V"}, "-V"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.label, tt.opt.Label())
	}
}

func TestCommandHelp_Walk(t *testing.T) {
	root := &CommandHelp{Path: []string{"a"}}
	b := &CommandHelp{Path: []string{"a", "b"}}
	c := &CommandHelp{Path: []string{"a", "c"}}
	d := &CommandHelp{Path: []string{"a", "c", "d"}}
	root.Children = []*CommandHelp{b, c}
	c.Children = []*CommandHelp{d}

	var visited []string
	root.Walk(func(n *CommandHelp) {
		visited = append(visited, n.FullCommand())
	})

	assert.Equal(t, []string{"a", "a b", "a c", "a c d"}, visited)
	assert.Equal(t, 4, root.Count())
	assert.Equal(t, c, root.Find("c"))
	assert.Nil(t, root.Find("missing"))
}

// TestParse_ProseColonIsNotAHeader guards against prose that happens to end
// in a known header word.
func TestParse_ProseColonIsNotAHeader(t *testing.T) {
	text := `Usage: tool run

Options:
  -x  see usage: below for details
`
	cmd, err := Parse(text, []string{"tool"})
	require.NoError(t, err)
	assert.Equal(t, "tool run", cmd.Usage)
	require.Len(t, cmd.Options, 1)
	assert.True(t, strings.HasPrefix(cmd.Options[0].Help, "see usage:"))
}
