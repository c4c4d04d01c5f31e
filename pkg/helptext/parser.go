package helptext

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/helpman/pkg/errors"
)

// state enumerates the classifier states. The parser starts in seekingHeader
// and transitions whenever a line carries a known section header.
type state int

const (
	seekingHeader state = iota
	inUsage
	inArguments
	inOptions
	inSubcommands
	inDescription
)

// titleCaser canonicalizes header tokens so "USAGE:", "usage:" and "Usage:"
// all select the same section.
var titleCaser = cases.Title(language.English)

// sectionByHeader maps canonical header tokens to classifier states. Lookup
// uses the last word of the header, which also covers variants like
// "Available Commands:" and "Global Options:".
var sectionByHeader = map[string]state{
	"Usage":       inUsage,
	"Arguments":   inArguments,
	"Args":        inArguments,
	"Options":     inOptions,
	"Flags":       inOptions,
	"Commands":    inSubcommands,
	"Subcommands": inSubcommands,
	"Description": inDescription,
}

var (
	// optionEntry splits a flag line into its flags part and inline help,
	// separated by two or more spaces or a tab.
	optionEntry = regexp.MustCompile(`^\s*(-\S.*?)(?:\s{2,}|\t)\s*(.*)$`)

	// sectionEntry matches a generic "name  help" entry line, capturing
	// leading indent, the name token, and the help text.
	sectionEntry = regexp.MustCompile(`^(\s*)(\S+)(?:\s{2,}|\t)\s*(.*)$`)

	longFlag  = regexp.MustCompile(`--[A-Za-z0-9][A-Za-z0-9._-]*`)
	shortFlag = regexp.MustCompile(`(?:^|[,\s])(-[A-Za-z0-9])(?:[,\s=]|$)`)

	angledPlaceholder = regexp.MustCompile(`<[^>]+>`)
	upperPlaceholder  = regexp.MustCompile(`(?:[=\s])([A-Z][A-Z0-9_-]+)\b`)

	// defaultMarker detects an embedded default value, e.g. "[default: .]"
	// or "(default 1)".
	defaultMarker = regexp.MustCompile(`(?i)[\[(]default[:=\s]`)

	subcommandName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

// parser carries the classifier state for a single Parse call.
type parser struct {
	cmd      *CommandHelp
	state    state
	sawUsage bool

	desc []string

	// entryIndent is the indentation of entry lines in the current section;
	// deeper-indented lines are continuations. Reset on state transitions.
	entryIndent int

	seenSubs map[string]bool
}

// Parse classifies captured help text into a CommandHelp for the command
// identified by path. It fails only when the text contains no usage header;
// every other section is optional and unknown sections fold into the
// description.
func Parse(text string, path []string) (*CommandHelp, error) {
	p := &parser{
		cmd:         &CommandHelp{Path: append([]string(nil), path...)},
		state:       seekingHeader,
		entryIndent: -1,
		seenSubs:    make(map[string]bool),
	}

	for _, line := range strings.Split(text, "\n") {
		p.line(strings.TrimRight(line, " \t\r"))
	}

	p.cmd.Description = strings.TrimSpace(strings.Join(p.desc, "\n"))
	if !p.sawUsage {
		return nil, errors.NewParseError(path, "no usage line found", errors.ErrMissingUsage)
	}
	return p.cmd, nil
}

// line classifies a single line of help output.
func (p *parser) line(line string) {
	trimmed := strings.TrimSpace(line)

	// Section headers sit at column zero by convention; indented colon lines
	// are entry or continuation text.
	if next, rest, ok := headerOf(trimmed); ok && indentOf(line) == 0 {
		p.state = next
		p.entryIndent = -1
		if next == inUsage {
			p.sawUsage = true
		}
		if rest != "" {
			p.content(rest)
		}
		return
	}

	// An unrecognized header at column zero is opaque section text; fold it
	// and everything under it into the description.
	if p.state != seekingHeader && p.state != inDescription && looksLikeHeader(line, trimmed) {
		p.state = inDescription
		p.entryIndent = -1
	}

	p.content(line)
}

// content routes a non-header line to the current section's handler.
func (p *parser) content(line string) {
	switch p.state {
	case seekingHeader, inDescription:
		p.descriptionLine(strings.TrimSpace(line))
	case inUsage:
		p.usageLine(line)
	case inArguments:
		p.argumentLine(line)
	case inOptions:
		p.optionLine(line)
	case inSubcommands:
		p.subcommandLine(line)
	}
}

// headerOf reports whether a line is a known section header, returning the
// target state and any inline content following the colon.
func headerOf(trimmed string) (state, string, bool) {
	i := strings.Index(trimmed, ":")
	if i <= 0 {
		return 0, "", false
	}
	head := trimmed[:i]
	words := strings.Fields(head)
	if len(words) == 0 || len(words) > 2 {
		return 0, "", false
	}
	// Single-word headers match any case ("Usage:", "USAGE:", git's
	// "usage:"). Two-word headers such as "Available Commands:" or "Global
	// Options:" must be capitalized so ordinary prose like "see usage:"
	// cannot fake a transition.
	if len(words) == 2 && (!startsUpper(words[0]) || !startsUpper(words[1])) {
		return 0, "", false
	}
	s, ok := sectionByHeader[titleCaser.String(strings.ToLower(words[len(words)-1]))]
	if !ok {
		return 0, "", false
	}
	return s, strings.TrimSpace(trimmed[i+1:]), true
}

// looksLikeHeader reports whether a line resembles a section header the
// classifier does not know: short, unindented, and colon-terminated.
func looksLikeHeader(line, trimmed string) bool {
	if trimmed == "" || indentOf(line) > 0 || !strings.HasSuffix(trimmed, ":") {
		return false
	}
	return len(strings.Fields(trimmed)) <= 3
}

func (p *parser) descriptionLine(trimmed string) {
	if trimmed == "" {
		// Preserve paragraph breaks but never lead with blanks.
		if len(p.desc) > 0 && p.desc[len(p.desc)-1] != "" {
			p.desc = append(p.desc, "")
		}
		return
	}
	p.desc = append(p.desc, trimmed)
}

func (p *parser) usageLine(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		// The synopsis block ends at the first blank line once captured;
		// whatever follows is prose, not usage.
		if p.cmd.Usage != "" {
			p.state = inDescription
		}
		return
	}
	if p.cmd.Usage == "" {
		p.cmd.Usage = trimmed
		return
	}
	if indentOf(line) == 0 {
		// Column-zero text after a captured synopsis (git and argparse put
		// prose here) belongs to the description.
		p.state = inDescription
		p.descriptionLine(trimmed)
		return
	}
	// Indented alternate forms collapse into the single-line synopsis.
	p.cmd.Usage += " | " + trimmed
}

func (p *parser) argumentLine(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	indent := indentOf(line)

	if m := sectionEntry.FindStringSubmatch(line); m != nil && (p.entryIndent < 0 || indent <= p.entryIndent) {
		p.entryIndent = indent
		p.cmd.Arguments = append(p.cmd.Arguments, Argument{
			Name: m[2],
			Help: strings.TrimSpace(m[3]),
		})
		return
	}

	if p.entryIndent >= 0 && indent > p.entryIndent && len(p.cmd.Arguments) > 0 {
		last := &p.cmd.Arguments[len(p.cmd.Arguments)-1]
		last.Help = appendText(last.Help, trimmed)
		return
	}

	// Name-only entry; help may follow on continuation lines.
	p.entryIndent = indent
	p.cmd.Arguments = append(p.cmd.Arguments, Argument{Name: trimmed})
}

func (p *parser) optionLine(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	if strings.HasPrefix(trimmed, "-") {
		p.cmd.Options = append(p.cmd.Options, parseOption(line))
		return
	}

	if n := len(p.cmd.Options); n > 0 && indentOf(line) > 0 {
		opt := &p.cmd.Options[n-1]
		opt.Help = appendText(opt.Help, trimmed)
		if defaultMarker.MatchString(opt.Help) {
			opt.HasDefault = true
		}
		return
	}

	// Stray unindented text inside the options block.
	p.descriptionLine(trimmed)
}

func (p *parser) subcommandLine(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	indent := indentOf(line)
	if p.entryIndent >= 0 && indent > p.entryIndent {
		return // continuation of the previous entry's help text
	}

	name := strings.Fields(trimmed)[0]
	name = strings.TrimSuffix(name, ",")
	if !subcommandName.MatchString(name) {
		return
	}
	p.entryIndent = indent

	// "help" re-prints what we are already parsing; recursing into it would
	// only duplicate the root.
	if name == "help" || p.seenSubs[name] {
		return
	}
	p.seenSubs[name] = true
	p.cmd.SubcommandNames = append(p.cmd.SubcommandNames, name)
}

// parseOption extracts flag tokens, a value placeholder, and inline help
// from a single option entry line.
func parseOption(line string) Option {
	flagsPart := strings.TrimSpace(line)
	help := ""
	if m := optionEntry.FindStringSubmatch(line); m != nil {
		flagsPart, help = m[1], strings.TrimSpace(m[2])
	}

	opt := Option{Help: help}
	if m := shortFlag.FindStringSubmatch(flagsPart); m != nil {
		opt.Short = m[1]
	}
	opt.Long = longFlag.FindString(flagsPart)

	if m := angledPlaceholder.FindString(flagsPart); m != "" {
		opt.Placeholder = m
	} else if m := upperPlaceholder.FindStringSubmatch(flagsPart); m != nil {
		opt.Placeholder = m[1]
	}

	opt.HasDefault = defaultMarker.MatchString(help)
	return opt
}

// startsUpper reports whether a word begins with an uppercase letter.
func startsUpper(word string) bool {
	return word != "" && word[0] >= 'A' && word[0] <= 'Z'
}

// indentOf returns the number of leading spaces and tabs in a line.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// appendText joins continuation text onto existing help text.
func appendText(existing, more string) string {
	if existing == "" {
		return more
	}
	return existing + " " + more
}
