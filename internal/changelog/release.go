package changelog

import (
	"time"

	"github.com/indaco/kacl/internal/semver"
)

// DateLayout is the release date format used in version headings.
const DateLayout = "2006-01-02"

// nowFn is the clock used by Release. Tests override it.
var nowFn = time.Now

// Release marks a version as released today. The section to release is the
// one for target if it exists, otherwise the Unreleased section. The
// section gets today's date, loses its note and takes target as version;
// its compare link is rewritten to end with "...v<target>".
//
// On error the Document is left unchanged.
func (d *Document) Release(target string) (*VersionSection, error) {
	return d.releaseOn(target, nowFn())
}

func (d *Document) releaseOn(target string, day time.Time) (*VersionSection, error) {
	version, err := semver.Parse(target)
	if err != nil {
		return nil, err
	}

	s, ok := d.index[version]
	if !ok {
		s, ok = d.index[semver.Unreleased]
	}
	if !ok {
		return nil, commandf("Neither entry %q nor %q found", version.String(), semver.UnreleasedText)
	}

	if s.Link == nil {
		return nil, commandf("%s No compare link for version %s", s.Location, s.Version)
	}
	href, ok := boundHref(s.Link.Href, version)
	if !ok {
		return nil, commandf("%s Failed to create bounded link for version %s from: %s",
			s.Link.Location, version, s.Link.Href)
	}

	if err := d.rekey(s.Version, version); err != nil {
		return nil, commandf("%v", err)
	}
	s.Version = version
	s.Date = day.Format(DateLayout)
	s.Note = ""
	s.Link.Href = href
	s.Link.Label = version.String()
	s.Link.version, s.Link.versioned = version, true

	return s, nil
}

// boundHref replaces the trailing "...<ref>" of a compare URL with the
// version tag, e.g. ".../compare/v1.0.0...HEAD" becomes
// ".../compare/v1.0.0...v1.1.0". A ref containing a dot is already a
// version tag and is left alone.
func boundHref(href string, v semver.Version) (string, bool) {
	loc := compareRefRegex.FindStringIndex(href)
	if loc == nil {
		return "", false
	}
	return href[:loc[0]] + "...v" + v.String(), true
}
