package render

import (
	"html"
	"regexp"
	"strings"
)

var (
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*]+)\*`)
)

// inlineFormat converts the in-band inline markup of a single line to HTML:
// **bold** becomes <strong> and single *italic* becomes <em>.
//
// Bold runs are replaced before italics, so a line like "**bold only**"
// leaves no stray asterisks for the italic rule to mis-parse as nested
// emphasis. Text is HTML-escaped first; the markup asterisks survive
// escaping untouched.
func inlineFormat(s string) string {
	s = html.EscapeString(s)
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	return s
}

// stripBold removes bold markers without converting them. Table cells
// render as plain styled text, so emphasis markers inside them are dropped
// — including unpaired ones.
func stripBold(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
