package changelog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/indaco/kacl/internal/core"
	"github.com/indaco/kacl/internal/logging"
)

// Diagnostic is a single rule violation found by the Validator.
type Diagnostic struct {
	File    string
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s", Location{File: d.File, Line: d.Line}, d.Message)
}

// Sink receives diagnostics as they are found.
type Sink func(Diagnostic)

// Collect returns a Sink that appends to dst.
func Collect(dst *[]Diagnostic) Sink {
	return func(d Diagnostic) {
		*dst = append(*dst, d)
	}
}

// ValidatorOptions configures a Validator.
type ValidatorOptions struct {
	// Oracle looks up tag dates. Nil disables the tag checks.
	Oracle core.TagDateReader

	// Sink receives every violation. Nil discards them.
	Sink Sink

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// Validator checks the rules a Document must satisfy beyond what the
// parser enforces. It never fails: violations are reported through the
// Sink and summarized by the boolean results.
type Validator struct {
	doc    *Document
	oracle core.TagDateReader
	sink   Sink
	log    *slog.Logger
}

// NewValidator creates a Validator for doc.
func NewValidator(doc *Document, opts ValidatorOptions) *Validator {
	sink := opts.Sink
	if sink == nil {
		sink = func(Diagnostic) {}
	}
	return &Validator{
		doc:    doc,
		oracle: opts.Oracle,
		sink:   sink,
		log:    logging.OrDiscard(opts.Logger),
	}
}

func (v *Validator) report(line int, format string, args ...any) {
	d := Diagnostic{File: v.doc.file, Line: line, Message: fmt.Sprintf(format, args...)}
	v.log.Debug("violation", "line", line, "message", d.Message)
	v.sink(d)
}

// Validate reports whether the document is sound. A dated section's
// compare link must end with its own version tag. When an oracle is
// configured, every dated version must have a tag with the same date;
// exempt names a version allowed to have no tag yet (the one being
// released). Pass "" to exempt nothing.
func (v *Validator) Validate(ctx context.Context, exempt string) bool {
	valid := true
	if len(v.doc.order) == 0 {
		v.report(0, "No version information found in file")
		valid = false
	}

	for _, key := range v.doc.order {
		s := v.doc.index[key]

		if !s.IsReleased() && key != v.doc.last {
			v.report(s.Line, "Unexpected unreleased version: %s", key)
			valid = false
		}
		if s.Link == nil && key != v.doc.first {
			v.report(s.Line, "Version without compare link: %s", key)
			valid = false
		}
		if s.IsReleased() && s.Link != nil && !s.LinkBounded() {
			v.report(s.Link.Line, "Unbounded link: %s", s.Link.Href)
			valid = false
		}
		if v.oracle != nil && s.IsReleased() {
			if !v.checkTag(ctx, s, exempt) {
				valid = false
			}
		}
	}

	return valid
}

func (v *Validator) checkTag(ctx context.Context, s *VersionSection, exempt string) bool {
	version := s.Version.String()
	tagDate, ok := v.oracle.TagDate(ctx, version)
	if ok {
		if tagDate != s.Date {
			v.report(s.Line, "Version %s release date and SCM tag date differ: %q <-> %q", version, s.Date, tagDate)
			return false
		}
		return true
	}
	if version == exempt {
		return true
	}
	v.report(s.Line, "No SCM tag for version %s (searched for tag \"v%s\")", version, version)
	return false
}

// IsReleasable reports whether the document may be published as is: it
// must be valid, every version must be dated, no version may contain
// "SNAPSHOT" and every compare link must point at its own version tag.
func (v *Validator) IsReleasable(ctx context.Context, exempt string) bool {
	valid := v.Validate(ctx, exempt)

	ready := true
	for _, key := range v.doc.order {
		s := v.doc.index[key]

		if !s.IsReleased() {
			v.report(s.Line, "Version without release date: %s", key)
			ready = false
		}
		if key.ContainsSnapshot() {
			v.report(s.Line, "Version containing \"SNAPSHOT\": %s", key)
			ready = false
		}
		// Dated sections were checked by Validate already.
		if !s.IsReleased() && s.Link != nil && !s.LinkBounded() {
			v.report(s.Link.Line, "Unbounded compare link for version %s: %s", key, s.Link.Href)
			ready = false
		}
	}

	return valid && ready
}
