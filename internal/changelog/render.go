package changelog

import (
	"io"
	"strings"
)

// Render returns the canonical text of the document.
//
// The output starts with a blank line. Every entry follows in file order;
// the title and each version section are followed by a blank line, bare
// links are not. The compare links of all sections come next, in section
// file order, each block of them followed by a blank line. The trailing
// comment, if any, is last. Parsing the output and rendering again yields
// the same text.
func (d *Document) Render() string {
	var sb strings.Builder
	sb.WriteString("\n")

	afterBareLink := false
	for _, e := range d.entries {
		sb.WriteString(e.String())
		sb.WriteString("\n")
		afterBareLink = e.Kind == EntryLink
		if !afterBareLink {
			sb.WriteString("\n")
		}
	}

	var links []string
	for _, v := range d.order {
		if s := d.index[v]; s.Link != nil {
			links = append(links, "["+s.Version.String()+"]: "+s.Link.Href)
		}
	}
	if len(links) > 0 {
		if afterBareLink {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join(links, "\n"))
		sb.WriteString("\n\n")
	}

	if d.trailingComment != nil {
		sb.WriteString(d.trailingComment.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteTo writes the rendered document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.Render())
	return int64(n), err
}
