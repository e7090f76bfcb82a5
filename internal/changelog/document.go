package changelog

import (
	"fmt"
	"slices"

	"github.com/indaco/kacl/internal/semver"
)

// Document is a parsed changelog.
//
// The version index, the version order and the first/last markers are
// kept consistent by the Document itself; sections are never removed once
// parsed, and a section changes key only through Release.
type Document struct {
	file    string
	entries []Entry

	index map[semver.Version]*VersionSection
	order []semver.Version

	// first is the bottom-most (oldest) version, last the top-most (newest).
	first, last     semver.Version
	hasFirst        bool
	trailingComment *Comment
}

func newDocument(file string) *Document {
	return &Document{
		file:  file,
		index: make(map[semver.Version]*VersionSection),
	}
}

// File returns the file name the document was parsed from.
func (d *Document) File() string {
	return d.file
}

// Title returns the level-1 title section, if present.
func (d *Document) Title() *Title {
	for _, e := range d.entries {
		if e.Kind == EntryTitle {
			return e.Title
		}
	}
	return nil
}

// Entries returns the top-level entries in file order.
func (d *Document) Entries() []Entry {
	return slices.Clone(d.entries)
}

// Versions returns the versions in file order, newest first by convention.
func (d *Document) Versions() []semver.Version {
	return slices.Clone(d.order)
}

// Sections returns the version sections in file order.
func (d *Document) Sections() []*VersionSection {
	out := make([]*VersionSection, 0, len(d.order))
	for _, v := range d.order {
		out = append(out, d.index[v])
	}
	return out
}

// Section returns the section for v.
func (d *Document) Section(v semver.Version) (*VersionSection, bool) {
	s, ok := d.index[v]
	return s, ok
}

// FirstVersion returns the oldest version, i.e. the bottom-most section.
func (d *Document) FirstVersion() (semver.Version, bool) {
	return d.first, d.hasFirst
}

// LastVersion returns the newest version, i.e. the top-most section.
func (d *Document) LastVersion() (semver.Version, bool) {
	return d.last, d.hasFirst
}

// TrailingComment returns the comment on the last line of the file, if any.
func (d *Document) TrailingComment() *Comment {
	return d.trailingComment
}

// Body returns the body text of the section for the given version.
// ok is false when the document has no such version.
func (d *Document) Body(version string) (body string, ok bool, err error) {
	v, err := semver.Parse(version)
	if err != nil {
		return "", false, err
	}
	s, ok := d.index[v]
	if !ok {
		return "", false, nil
	}
	return s.Body.String(), true, nil
}

// noteSeen records a version heading in scan order: the first one seen is
// the newest, the most recent one seen is the oldest.
func (d *Document) noteSeen(v semver.Version) {
	if !d.hasFirst {
		d.last = v
		d.hasFirst = true
	}
	d.first = v
}

// register adds a finished section to the index.
func (d *Document) register(s *VersionSection) error {
	if prev, ok := d.index[s.Version]; ok {
		return structuralf(prev.Location, "Duplicate version %q. See also line %d", s.Version.String(), s.Line)
	}
	d.index[s.Version] = s
	d.order = append(d.order, s.Version)
	return nil
}

// bindLink attaches a version compare link to its section.
func (d *Document) bindLink(l *CompareLink) error {
	s, ok := d.index[l.version]
	if !ok {
		return structuralf(l.Location, "Link for unknown version: %s", l)
	}
	if s.Link != nil {
		return structuralf(l.Location, "Duplicate link: %s", l.version)
	}
	s.Link = l
	return nil
}

// rekey moves the section stored under from to the key to, keeping the
// index, the order and the first/last markers in step.
func (d *Document) rekey(from, to semver.Version) error {
	if from == to {
		return nil
	}
	s, ok := d.index[from]
	if !ok {
		return fmt.Errorf("no section for version %s", from)
	}
	if _, taken := d.index[to]; taken {
		return fmt.Errorf("version %s already present", to)
	}

	delete(d.index, from)
	d.index[to] = s
	for i, v := range d.order {
		if v == from {
			d.order[i] = to
		}
	}
	if d.first == from {
		d.first = to
	}
	if d.last == from {
		d.last = to
	}
	return nil
}
