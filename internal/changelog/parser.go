package changelog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/indaco/kacl/internal/logging"
	"github.com/indaco/kacl/internal/semver"
)

// ParseOptions configures a parse run.
type ParseOptions struct {
	// File is the name used in locations and diagnostics.
	File string

	// IgnoreInvalid silences warnings about link labels that look like
	// versions but do not parse as one.
	IgnoreInvalid bool

	// Logger receives debug output. A nil Logger discards it.
	Logger *slog.Logger
}

// parser is the line-by-line state machine that assembles a Document.
type parser struct {
	opts ParseOptions
	log  *slog.Logger
	doc  *Document

	title   *Title          // open title, if any
	current *VersionSection // open version section, if any
	pending *Comment        // comment waiting for the next line
	lineNum int
}

// Parse reads a changelog from r.
func Parse(r io.Reader, opts ParseOptions) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", opts.File, err)
	}
	return ParseLines(lines, opts)
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string, opts ParseOptions) (*Document, error) {
	return Parse(strings.NewReader(s), opts)
}

// ParseLines builds a Document from raw lines (without line terminators).
func ParseLines(lines []string, opts ParseOptions) (*Document, error) {
	p := &parser{
		opts: opts,
		log:  logging.OrDiscard(opts.Logger),
		doc:  newDocument(opts.File),
	}

	for _, raw := range lines {
		if err := p.line(raw); err != nil {
			return nil, err
		}
	}
	if err := p.finish(); err != nil {
		return nil, err
	}

	// A comment on the very last line belongs to the file.
	p.doc.trailingComment = p.pending

	p.log.Log(context.Background(), logging.LevelTrace, "finished parsing", "file", opts.File, "lines", p.lineNum)
	return p.doc, nil
}

func (p *parser) loc() Location {
	return Location{File: p.opts.File, Line: p.lineNum}
}

// open reports whether a section (title or version) accepts body lines.
func (p *parser) open() bool {
	return p.title != nil || p.current != nil
}

func (p *parser) addBody(line string) {
	if p.current != nil {
		p.current.Body.Add(line)
		return
	}
	p.title.Body.Add(line)
}

func (p *parser) line(raw string) error {
	// A pending comment sticks to whatever section is open when the
	// following line arrives.
	if p.pending != nil {
		if !p.open() {
			return structuralf(p.loc(), "Stray comment - don't know how to handle")
		}
		p.addBody(p.pending.Text)
		p.pending = nil
	}

	p.lineNum++
	line := strings.TrimRight(raw, " \t\r\n\f\v")
	kind := classify(line)
	p.log.Log(context.Background(), logging.LevelTrace, "read line", "line", p.lineNum, "kind", kind.String(), "text", line)

	switch kind {
	case lineBlank:
		if len(p.doc.entries) == 0 {
			return nil
		}
		if p.open() {
			p.addBody(line)
		}
		return nil
	case lineH1:
		return p.startTitle(line)
	case lineH2:
		return p.startSection(line)
	case lineLink:
		return p.link(line)
	case lineComment:
		p.pending = &Comment{Location: p.loc(), Text: line}
		return nil
	default:
		if !p.open() {
			return structuralf(p.loc(), "Content outside of a section: %s", line)
		}
		p.addBody(line)
		return nil
	}
}

func (p *parser) startTitle(line string) error {
	if err := p.finish(); err != nil {
		return err
	}
	text, ok := parseTitle(line)
	if !ok {
		return structuralf(p.loc(), "Invalid title: %s", line)
	}
	p.title = &Title{Location: p.loc(), Text: text}
	p.doc.entries = append(p.doc.entries, Entry{Kind: EntryTitle, Title: p.title})
	return nil
}

func (p *parser) startSection(line string) error {
	if err := p.finish(); err != nil {
		return err
	}

	hdr, ok := parseVersionHeader(line)
	if !ok {
		return structuralf(p.loc(), "Invalid version header: %s", line)
	}
	v, err := semver.Parse(hdr.version)
	if err != nil {
		return &StructuralError{Location: p.loc(), Msg: err.Error(), Err: err}
	}

	p.current = &VersionSection{
		Location: p.loc(),
		Version:  v,
		Date:     hdr.date,
		Note:     hdr.note,
	}
	p.doc.entries = append(p.doc.entries, Entry{Kind: EntrySection, Section: p.current})
	p.doc.noteSeen(v)
	return nil
}

func (p *parser) link(line string) error {
	if err := p.finish(); err != nil {
		return err
	}

	label, href, ok := parseLink(line)
	if !ok {
		return structuralf(p.loc(), "Invalid link: %s", line)
	}
	link := &CompareLink{Location: p.loc(), Label: label, Href: href}

	v, err := semver.Parse(label)
	if err != nil {
		if versionLikeRegex.MatchString(label) && !p.opts.IgnoreInvalid {
			p.log.Warn(fmt.Sprintf("%s Link label looks like a version, but is not: %s", link.Location, label))
		}
		p.doc.entries = append(p.doc.entries, Entry{Kind: EntryLink, Link: link})
		return nil
	}

	link.version, link.versioned = v, true
	return p.doc.bindLink(link)
}

// finish closes the open section, registering version sections in the
// document index.
func (p *parser) finish() error {
	if p.title != nil {
		p.title.Body.finish()
		p.title = nil
	}
	if p.current == nil {
		return nil
	}
	sec := p.current
	p.current = nil
	sec.Body.finish()
	p.log.Debug("section parsed", "version", sec.Version.String(), "line", sec.Line)
	return p.doc.register(sec)
}
