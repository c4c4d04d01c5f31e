// Package helptext classifies captured CLI help output into structured
// command descriptions. The parser is a line-oriented state machine that is
// total over arbitrary input: unknown sections fold into the description
// instead of failing, and the only hard requirement is a usage line.
package helptext

import "strings"

// Argument is one positional argument of a command.
type Argument struct {
	Name string
	Help string
}

// Option is one flag of a command.
type Option struct {
	Short       string // e.g. "-v"
	Long        string // e.g. "--verbose"
	Placeholder string // value name, e.g. "<FILE>"
	Help        string
	HasDefault  bool // help text embeds a default value
}

// Label returns the display form of the option, e.g. "-o, --output <DIR>".
func (o Option) Label() string {
	parts := make([]string, 0, 2)
	if o.Short != "" {
		parts = append(parts, o.Short)
	}
	if o.Long != "" {
		parts = append(parts, o.Long)
	}
	label := strings.Join(parts, ", ")
	if o.Placeholder != "" {
		label += " " + o.Placeholder
	}
	return label
}

// CommandHelp is one node of the discovered command tree. Each node owns its
// children exclusively; a child's Path extends its parent's Path by exactly
// one token, which keeps the tree finite and acyclic even when subcommand
// names repeat at different depths.
type CommandHelp struct {
	Path            []string
	Usage           string
	Description     string
	Arguments       []Argument
	Options         []Option
	SubcommandNames []string
	Children        []*CommandHelp
}

// Name returns the last token of the command path.
func (c *CommandHelp) Name() string {
	if len(c.Path) == 0 {
		return ""
	}
	return c.Path[len(c.Path)-1]
}

// FullCommand returns the space-joined command path, e.g. "tool sub leaf".
func (c *CommandHelp) FullCommand() string {
	return strings.Join(c.Path, " ")
}

// Find returns the direct child with the given name, or nil.
func (c *CommandHelp) Find(name string) *CommandHelp {
	for _, child := range c.Children {
		if child.Name() == name {
			return child
		}
	}
	return nil
}

// Walk calls fn for each node in the tree, depth-first pre-order,
// preserving discovery order.
func (c *CommandHelp) Walk(fn func(*CommandHelp)) {
	fn(c)
	for _, child := range c.Children {
		child.Walk(fn)
	}
}

// Count returns the number of nodes in the tree rooted at c.
func (c *CommandHelp) Count() int {
	n := 0
	c.Walk(func(*CommandHelp) { n++ })
	return n
}
