package changelog

import "regexp"

// lineKind classifies a physical line of a changelog file.
type lineKind int

const (
	lineText lineKind = iota
	lineBlank
	lineH1
	lineH2
	lineLink
	lineComment
)

func (k lineKind) String() string {
	switch k {
	case lineBlank:
		return "blank"
	case lineH1:
		return "h1"
	case lineH2:
		return "h2"
	case lineLink:
		return "link"
	case lineComment:
		return "comment"
	default:
		return "text"
	}
}

var (
	// h1Regex and h2Regex only detect the heading level; the full line is
	// matched against titleRegex or versionHeaderRegex afterwards.
	h1Regex = regexp.MustCompile(`^#[^#]`)
	h2Regex = regexp.MustCompile(`^##[^#]`)

	// titleRegex captures:
	//   1. Title text
	titleRegex = regexp.MustCompile(`^#\s*([^#].*)$`)

	// versionHeaderRegex matches "## [1.2.3] - 2024-01-31 note".
	// It captures:
	//   1. Opening bracket, if any
	//   2. Version token
	//   3. Closing bracket, if any
	//   4. (optional) Release date
	//   5. (optional) Note
	versionHeaderRegex = regexp.MustCompile(
		`^##\s*(\[)?([^\s\]]+)(\])?` + // ## [version]
			`(?:\s*-\s*(\d{4}-\d{2}-\d{2})?\s*(.+)?)?$`, // optional " - date note"
	)

	// linkStartRegex detects a reference definition line; linkRegex then
	// captures:
	//   1. Label
	//   2. Href
	linkStartRegex = regexp.MustCompile(`^\[\w[^\s\]]*\]:`)
	linkRegex      = regexp.MustCompile(`^\[(\w[^\s\]]*)\]:\s*(\S*)$`)

	// commentRegex matches the markdown comment idiom "[//]: # (text)".
	commentRegex = regexp.MustCompile(`^\[//\]:`)

	// compareRefRegex matches the moving end of a compare URL ("...HEAD",
	// "...main"); a ref with a dot is a version tag.
	compareRefRegex = regexp.MustCompile(`\.\.\.[^.\s]+$`)

	// versionLikeRegex flags link labels that were probably meant as versions.
	versionLikeRegex = regexp.MustCompile(`^\d\.`)
)

// lineRule pairs a detector with the kind it assigns. Rules are evaluated
// in order and the first match wins.
type lineRule struct {
	kind  lineKind
	match func(line string) bool
}

var lineRules = []lineRule{
	{lineBlank, func(line string) bool { return line == "" }},
	{lineH1, h1Regex.MatchString},
	{lineH2, h2Regex.MatchString},
	{lineLink, linkStartRegex.MatchString},
	{lineComment, commentRegex.MatchString},
}

// classify returns the kind of a line whose trailing whitespace has
// already been removed.
func classify(line string) lineKind {
	for _, r := range lineRules {
		if r.match(line) {
			return r.kind
		}
	}
	return lineText
}

type versionHeader struct {
	version string
	date    string
	note    string
}

func parseVersionHeader(line string) (versionHeader, bool) {
	m := versionHeaderRegex.FindStringSubmatch(line)
	if m == nil {
		return versionHeader{}, false
	}
	return versionHeader{version: m[2], date: m[4], note: m[5]}, true
}

func parseTitle(line string) (string, bool) {
	m := titleRegex.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func parseLink(line string) (label, href string, ok bool) {
	m := linkRegex.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
