package mandoc

import (
	"fmt"
	"strings"

	"github.com/agentstation/helpman/pkg/helptext"
)

// Render flattens the document into troff source. Nodes appear in discovery
// order (pre-order walk), so identical trees always render identically.
func Render(doc *Document) string {
	r := &renderer{}

	r.header(doc)
	r.name(doc)
	r.synopsis(doc)
	r.description(doc.Root)
	r.arguments(doc.Root)
	r.options(doc.Root)
	r.commands(doc)
	r.seeAlso(doc)

	return r.b.String()
}

type renderer struct {
	b strings.Builder
}

// line writes one raw troff line.
func (r *renderer) line(format string, args ...any) {
	fmt.Fprintf(&r.b, format+"\n", args...)
}

// text writes escaped free text, guarding each line against interpretation
// as a troff request.
func (r *renderer) text(s string) {
	for _, line := range strings.Split(s, "\n") {
		r.b.WriteString(guardLine(Escape(line)))
		r.b.WriteByte('\n')
	}
}

func (r *renderer) header(doc *Document) {
	source := doc.BinaryName
	if doc.Version != "" {
		source += " " + doc.Version
	}
	r.line(`.TH "%s" "%d" "%s" "%s" "%s"`,
		Escape(strings.ToUpper(doc.BinaryName)),
		doc.Section,
		doc.GeneratedAt.Format("January 2006"),
		Escape(source),
		Escape(doc.Title))
}

func (r *renderer) name(doc *Document) {
	r.line(".SH NAME")
	short := shortDescription(doc.Root)
	r.line(`%s \- %s`, Escape(doc.BinaryName), Escape(short))
}

func (r *renderer) synopsis(doc *Document) {
	r.line(".SH SYNOPSIS")
	r.line(".B %s", Escape(doc.BinaryName))
	usage := cleanUsage(doc.Root.Usage, doc.BinaryName)
	if usage != "" {
		r.text(usage)
	}
}

func (r *renderer) description(node *helptext.CommandHelp) {
	if node.Description == "" {
		return
	}
	r.line(".SH DESCRIPTION")
	r.text(node.Description)
}

func (r *renderer) arguments(node *helptext.CommandHelp) {
	if len(node.Arguments) == 0 {
		return
	}
	r.line(".SH ARGUMENTS")
	r.argumentEntries(node)
}

func (r *renderer) options(node *helptext.CommandHelp) {
	if len(node.Options) == 0 {
		return
	}
	r.line(".SH OPTIONS")
	r.optionEntries(node)
}

// commands renders one .SS subsection per descendant of the root, headed by
// the dotted command path.
func (r *renderer) commands(doc *Document) {
	if len(doc.Root.Children) == 0 {
		return
	}
	r.line(".SH COMMANDS")
	doc.Root.Walk(func(node *helptext.CommandHelp) {
		if node == doc.Root {
			return
		}
		r.subsection(doc, node)
	})
}

func (r *renderer) subsection(doc *Document, node *helptext.CommandHelp) {
	r.line(".SS %s", Escape(displayCommand(doc, node)))
	if node.Usage != "" {
		r.line(".B %s", guardLine(Escape(node.Usage)))
	}
	if node.Description != "" {
		r.line(".PP")
		r.text(node.Description)
	}
	for _, arg := range node.Arguments {
		r.entry(Escape(arg.Name), arg.Help)
	}
	r.optionEntries(node)
}

func (r *renderer) argumentEntries(node *helptext.CommandHelp) {
	for _, arg := range node.Arguments {
		r.entry(Escape(arg.Name), arg.Help)
	}
}

func (r *renderer) optionEntries(node *helptext.CommandHelp) {
	for _, opt := range node.Options {
		r.entry(optionLabel(opt), opt.Help)
	}
}

// entry writes a tagged paragraph: bold label, indented help text.
func (r *renderer) entry(label, help string) {
	r.line(".TP")
	r.line(".B %s", guardLine(label))
	if help != "" {
		r.text(help)
	}
}

func (r *renderer) seeAlso(doc *Document) {
	if doc.Homepage == "" && doc.Repository == "" {
		return
	}
	r.line(".SH SEE ALSO")
	if doc.Homepage != "" {
		r.line(".PP")
		r.text("Homepage: " + doc.Homepage)
	}
	if doc.Repository != "" {
		r.line(".PP")
		r.text("Repository: " + doc.Repository)
	}
}

// optionLabel renders an option's flags and placeholder for a .B line, with
// the placeholder in italics.
func optionLabel(opt helptext.Option) string {
	parts := make([]string, 0, 2)
	if opt.Short != "" {
		parts = append(parts, Escape(opt.Short))
	}
	if opt.Long != "" {
		parts = append(parts, Escape(opt.Long))
	}
	label := strings.Join(parts, ", ")
	if opt.Placeholder != "" {
		label += ` \fI` + Escape(opt.Placeholder) + `\fR`
	}
	return label
}

// displayCommand renders a node's command path with the document's binary
// name in place of the first token, which may be an absolute path on disk.
func displayCommand(doc *Document, node *helptext.CommandHelp) string {
	if len(node.Path) == 0 {
		return doc.BinaryName
	}
	return strings.Join(append([]string{doc.BinaryName}, node.Path[1:]...), " ")
}

// shortDescription picks the first description line for the NAME section.
func shortDescription(root *helptext.CommandHelp) string {
	for _, line := range strings.Split(root.Description, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return "command-line tool"
}

// cleanUsage strips a leading repetition of the binary name from the usage
// synopsis, since SYNOPSIS already opens with the bold name.
func cleanUsage(usage, name string) string {
	usage = strings.TrimSpace(usage)
	return strings.TrimSpace(strings.TrimPrefix(usage, name))
}

// Escape makes free text safe for troff: literal backslashes are doubled and
// hyphens become explicit minus signs.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "-", `\-`)
	return s
}

// guardLine prefixes a non-breaking escape when a line would otherwise begin
// with a troff control character and be executed as a request.
func guardLine(line string) string {
	if strings.HasPrefix(line, ".") || strings.HasPrefix(line, "'") {
		return `\&` + line
	}
	return line
}
