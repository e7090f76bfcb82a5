package changelog

import (
	"fmt"
	"strings"

	"github.com/indaco/kacl/internal/semver"
)

// Location identifies a line in a changelog file.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return fmt.Sprintf("%s[%d]", l.File, l.Line)
}

// Body holds the content lines of a section. Runs of blank lines collapse
// into one as lines are added; leading and trailing blank lines are dropped
// when the body is read.
type Body struct {
	lines []string
}

// Add appends a line, skipping a blank line that follows another blank line.
func (b *Body) Add(line string) {
	if line == "" && len(b.lines) > 0 && b.lines[len(b.lines)-1] == "" {
		return
	}
	b.lines = append(b.lines, line)
}

// finish drops the trailing blank line left behind by the parser.
func (b *Body) finish() {
	if n := len(b.lines); n > 0 && b.lines[n-1] == "" {
		b.lines = b.lines[:n-1]
	}
}

// Lines returns the body without leading or trailing blank lines.
func (b Body) Lines() []string {
	start, end := 0, len(b.lines)
	for start < end && b.lines[start] == "" {
		start++
	}
	for end > start && b.lines[end-1] == "" {
		end--
	}
	return b.lines[start:end]
}

// String returns the body lines joined by newlines, without a final newline.
func (b Body) String() string {
	return strings.Join(b.Lines(), "\n")
}

// IsEmpty reports whether the body has no content.
func (b Body) IsEmpty() bool {
	return len(b.Lines()) == 0
}

// section renders a heading followed by its body, if any.
func section(heading string, body Body) string {
	if content := body.String(); content != "" {
		return heading + "\n\n" + content
	}
	return heading
}

// Title is the level-1 heading of the file and the text below it.
type Title struct {
	Location
	Text string
	Body Body
}

// Heading returns the markdown heading line.
func (t *Title) Heading() string {
	return "# " + t.Text
}

func (t *Title) String() string {
	return section(t.Heading(), t.Body)
}

// VersionSection is a "## [version] - date note" heading and its body.
// An empty Date means the version is not released yet.
type VersionSection struct {
	Location
	Version semver.Version
	Date    string
	Note    string
	Body    Body
	Link    *CompareLink
}

// Heading renders the section heading in canonical form. The version is
// bracketed only when a compare link is bound to the section.
func (s *VersionSection) Heading() string {
	var sb strings.Builder
	sb.WriteString("## ")
	if s.Link != nil {
		sb.WriteString("[" + s.Version.String() + "]")
	} else {
		sb.WriteString(s.Version.String())
	}
	if s.Date != "" || s.Note != "" {
		sb.WriteString(" -")
	}
	if s.Date != "" {
		sb.WriteString(" " + s.Date)
	}
	if s.Note != "" {
		sb.WriteString(" " + s.Note)
	}
	return sb.String()
}

func (s *VersionSection) String() string {
	return section(s.Heading(), s.Body)
}

// IsReleased reports whether the section carries a release date.
func (s *VersionSection) IsReleased() bool {
	return s.Date != ""
}

// LinkBounded reports whether the bound compare link ends with the
// section's own version tag. It is false when no link is bound.
func (s *VersionSection) LinkBounded() bool {
	return s.Link != nil && s.Link.boundTo(s.Version)
}

// CompareLink is a "[label]: href" reference line. Links whose label is a
// version are bound to the matching VersionSection; all others are kept as
// bare links.
type CompareLink struct {
	Location
	Label string
	Href  string

	version   semver.Version
	versioned bool
}

// Version returns the version named by the label, if the label is one.
func (l *CompareLink) Version() (semver.Version, bool) {
	return l.version, l.versioned
}

// Bounded reports whether the href ends with "...v<version>" for the
// version named by the label. Bare links are never bounded.
func (l *CompareLink) Bounded() bool {
	return l.versioned && l.boundTo(l.version)
}

func (l *CompareLink) boundTo(v semver.Version) bool {
	return strings.HasSuffix(l.Href, "...v"+v.String())
}

func (l *CompareLink) String() string {
	return "[" + l.Label + "]: " + l.Href
}

// Comment is a "[//]: ..." markdown comment line.
type Comment struct {
	Location
	Text string
}

func (c *Comment) String() string {
	return c.Text
}

// EntryKind tags the variant held by an Entry.
type EntryKind int

const (
	// EntryTitle holds a *Title.
	EntryTitle EntryKind = iota
	// EntrySection holds a *VersionSection.
	EntrySection
	// EntryLink holds a bare *CompareLink (label is not a version).
	EntryLink
)

func (k EntryKind) String() string {
	switch k {
	case EntryTitle:
		return "title"
	case EntrySection:
		return "section"
	case EntryLink:
		return "link"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(k))
	}
}

// Entry is one top-level element of a Document in file order. Exactly one
// of the pointer fields is set, as selected by Kind.
type Entry struct {
	Kind    EntryKind
	Title   *Title
	Section *VersionSection
	Link    *CompareLink
}

// Line returns the line the entry started on.
func (e Entry) Line() int {
	switch e.Kind {
	case EntryTitle:
		return e.Title.Line
	case EntrySection:
		return e.Section.Line
	case EntryLink:
		return e.Link.Line
	default:
		return 0
	}
}

func (e Entry) String() string {
	switch e.Kind {
	case EntryTitle:
		return e.Title.String()
	case EntrySection:
		return e.Section.String()
	case EntryLink:
		return e.Link.String()
	default:
		return ""
	}
}
