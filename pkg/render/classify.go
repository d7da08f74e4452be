package render

import (
	"regexp"
	"strings"
)

// lineKind is the closed set of classifications the dispatch loop handles.
// Classification order matters and mirrors the dispatch precedence:
// letterhead directives, blank lines, table candidates, section headers,
// list items, and finally plain text.
type lineKind int

const (
	kindBlank lineKind = iota
	kindDirective
	kindTableCandidate
	kindSectionHeader
	kindListItem
	kindPlain
)

// Letterhead markup tokens. Matched against the whitespace-trimmed line.
const (
	markerHeaderStart   = "[HEADER_START]"
	markerHeaderEnd     = "[HEADER_END]"
	markerClinicLogo    = "[CLINIC_LOGO]"
	markerLocationStart = "[LOCATION_RIGHT]"
	markerLocationEnd   = "[/LOCATION_RIGHT]"
)

var (
	// sectionHeaderRe matches a bold-marked all-caps label such as
	// "**CHIEF COMPLAINT:** worsening cough". Group 1 is the label without
	// the colon, group 2 the same-line trailing content.
	sectionHeaderRe = regexp.MustCompile(`^\*\*([A-Z][A-Z0-9 &/',.\-]*):\*\*\s*(.*)$`)

	// plainHeaderRe matches the bare form "CHIEF COMPLAINT: worsening cough".
	// The label must be all-caps from the start of the line to the colon.
	plainHeaderRe = regexp.MustCompile(`^([A-Z][A-Z0-9 &/',.\-]*):\s*(.*)$`)

	// listItemRe matches numbered ("3. ") and bulleted ("- ", "• ", "* ")
	// list lines. Group 1 is the leading whitespace, group 2 the marker,
	// group 3 the remainder.
	listItemRe = regexp.MustCompile(`^([ \t]*)(\d+\.|[-•*]) (.*)$`)

	// tableSeparatorRe matches decorative separator rows inside a table run,
	// e.g. "--- | --- | ---". Such rows are dropped, never rendered.
	tableSeparatorRe = regexp.MustCompile(`^[\s\-|]+$`)
)

// isDirective reports whether the trimmed line is a letterhead markup token.
func isDirective(trimmed string) bool {
	switch trimmed {
	case markerHeaderStart, markerHeaderEnd, markerClinicLogo, markerLocationStart, markerLocationEnd:
		return true
	}
	return false
}

// classify assigns line to one of the closed set of line kinds. The table
// check precedes the header check: a pipe-bearing line is always a table
// candidate first, and only falls back to header/list/plain handling when
// the lookahead finds no qualifying run.
func classify(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return kindBlank
	case isDirective(trimmed):
		return kindDirective
	case strings.Contains(line, "|"):
		return kindTableCandidate
	default:
		return classifyNonTable(line)
	}
}

// classifyNonTable classifies with the table rule disabled. Used when a
// pipe-bearing line turned out not to start a table run, so header and
// list rules still apply to it.
func classifyNonTable(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return kindBlank
	case sectionHeaderRe.MatchString(trimmed) || plainHeaderRe.MatchString(trimmed):
		return kindSectionHeader
	case listItemRe.MatchString(line):
		return kindListItem
	default:
		return kindPlain
	}
}
