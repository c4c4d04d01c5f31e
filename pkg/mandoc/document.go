// Package mandoc models a troff manual-page document and renders it from a
// discovered command tree. Only the small macro subset manual pages need is
// emitted: .TH, .SH, .SS, .TP, .B and font escapes.
package mandoc

import (
	"fmt"

	"github.com/agentstation/utc"

	"github.com/agentstation/helpman/pkg/constants"
	"github.com/agentstation/helpman/pkg/errors"
	"github.com/agentstation/helpman/pkg/helptext"
)

// sectionTitles is the conventional manual-title mapping for sections 1-8.
var sectionTitles = map[int]string{
	1: "User Commands",
	2: "System Calls",
	3: "Library Functions",
	4: "Kernel Interfaces",
	5: "File Formats",
	6: "Games",
	7: "Miscellaneous",
	8: "System Administration Commands",
}

// Document is a complete manual page: the root of the command tree plus the
// metadata stamped into the .TH header.
type Document struct {
	Root *helptext.CommandHelp

	BinaryName  string
	Section     int
	Title       string
	Version     string
	GeneratedAt utc.Time

	// SEE ALSO sources; the section is omitted when both are empty.
	Homepage   string
	Repository string
}

// NewDocument builds a Document for the given command tree, validating the
// section number and deriving the title from it when none is supplied.
func NewDocument(root *helptext.CommandHelp, binaryName string, section int, title string) (*Document, error) {
	if section < constants.MinManSection || section > constants.MaxManSection {
		return nil, errors.NewSectionError(section)
	}
	if title == "" {
		title = sectionTitles[section]
	}
	return &Document{
		Root:        root,
		BinaryName:  binaryName,
		Section:     section,
		Title:       title,
		GeneratedAt: utc.Now(),
	}, nil
}

// DefaultTitle returns the conventional manual title for a section, or the
// empty string for an out-of-range section.
func DefaultTitle(section int) string {
	return sectionTitles[section]
}

// Filename returns the conventional output file name, e.g. "foo.1".
func (d *Document) Filename() string {
	return fmt.Sprintf("%s.%d", d.BinaryName, d.Section)
}
