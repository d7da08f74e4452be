// Package render converts the language model's formatted note text into a
// styled HTML fragment for the PDF/print layer.
//
// The input uses a small in-band markup: blank lines as paragraph breaks,
// all-caps colon-terminated labels (optionally bold-marked) as section
// headers, numbered and bulleted list lines, contiguous pipe-delimited
// runs as tables, and a one-time [HEADER_START]…[HEADER_END] clinic
// letterhead block. Everything else is a plain paragraph with inline
// markdown (**bold**, *italic*) applied.
//
// The renderer is a line-oriented state machine: an explicit classifier
// assigns each line one of a closed set of kinds, and a single dispatch
// loop with a forward cursor consumes multi-line constructs via lookahead.
// Malformed or unclosed markup consumes to end-of-input and renders
// whatever was captured. Document always returns
// a string and is deterministic: identical input yields byte-identical
// output.
package render

import (
	"fmt"
	"html"
	"strings"
)

// indentPxPerChar scales list indentation: each leading whitespace
// character indents the item by this many pixels, unbounded. A magic
// constant tuned to the model's output depth; do not generalize.
const indentPxPerChar = 10

// Options configures a single Document call.
type Options struct {
	// ClinicLogoDataURI is a base64 image data URI rendered in the
	// letterhead block. When empty, [CLINIC_LOGO] markers produce no image.
	ClinicLogoDataURI string
}

// Document renders content to an HTML fragment.
//
// The letterhead block, if present, is emitted before the rest of the body
// regardless of where it appears in the input; all other content keeps its
// source order. Empty input returns an empty string. Document never fails.
func Document(content string, opts Options) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")

	// Letterhead HTML accumulates separately so it can lead the output no
	// matter where the block sits in the scan.
	var head, body strings.Builder

	i := 0
	for i < len(lines) {
		line := lines[i]

		switch classify(line) {
		case kindBlank:
			body.WriteString("<br>\n")
			i++

		case kindDirective:
			i = renderDirective(lines, i, opts, &head, &body)

		case kindTableCandidate:
			if n := tableRun(lines, i); n >= 2 {
				body.WriteString(renderTable(lines[i : i+n]))
				i += n
				continue
			}
			// A lone pipe-bearing line is not a table; handle it as a
			// regular line and re-scan from the next.
			renderRegular(line, &body)
			i++

		default:
			renderRegular(line, &body)
			i++
		}
	}

	return head.String() + body.String()
}

// renderDirective handles a letterhead marker encountered at lines[i] in
// normal scanning mode and returns the next cursor position.
//
// [HEADER_START] enters header capture. A standalone [CLINIC_LOGO] outside
// a header block is skipped when a logo is configured; without one it
// falls through to plain-paragraph handling. Stray [HEADER_END],
// [LOCATION_RIGHT], and [/LOCATION_RIGHT] markers are consumed silently.
func renderDirective(lines []string, i int, opts Options, head, body *strings.Builder) int {
	switch strings.TrimSpace(lines[i]) {
	case markerHeaderStart:
		lh, next := scanLetterhead(lines, i+1, opts.ClinicLogoDataURI)
		head.WriteString(renderLetterhead(lh))
		return next

	case markerClinicLogo:
		if opts.ClinicLogoDataURI == "" {
			renderRegular(lines[i], body)
		}
		return i + 1

	default:
		return i + 1
	}
}

// renderRegular renders a single non-directive, non-table line: section
// header, list item, or plain paragraph. Classification here ignores
// pipes, so a lone pipe-bearing line still gets header and list handling.
func renderRegular(line string, body *strings.Builder) {
	switch classifyNonTable(line) {
	case kindSectionHeader:
		body.WriteString(renderSectionHeader(strings.TrimSpace(line)))
	case kindListItem:
		body.WriteString(renderListItem(line))
	case kindBlank:
		body.WriteString("<br>\n")
	default:
		fmt.Fprintf(body, `<p style="margin: 4px 0;">%s</p>`+"\n", inlineFormat(line))
	}
}

// renderSectionHeader renders "**LABEL:** rest" or "LABEL: rest" as a
// heavy-weight label followed by the inline-formatted trailing content.
func renderSectionHeader(trimmed string) string {
	m := sectionHeaderRe.FindStringSubmatch(trimmed)
	if m == nil {
		m = plainHeaderRe.FindStringSubmatch(trimmed)
	}
	label, rest := html.EscapeString(m[1]), m[2]
	if rest == "" {
		return fmt.Sprintf(`<p style="margin: 10px 0 4px 0;"><strong>%s:</strong></p>`+"\n", label)
	}
	return fmt.Sprintf(`<p style="margin: 10px 0 4px 0;"><strong>%s:</strong> %s</p>`+"\n", label, inlineFormat(rest))
}

// renderListItem renders a numbered or bulleted line as an indented
// paragraph with the marker bolded. Indentation is the leading-whitespace
// character count times indentPxPerChar, unclamped.
func renderListItem(line string) string {
	m := listItemRe.FindStringSubmatch(line)
	indent := len(m[1]) * indentPxPerChar
	marker, rest := m[2], m[3]
	return fmt.Sprintf(
		`<p style="margin: 2px 0; margin-left: %dpx;"><strong>%s</strong> %s</p>`+"\n",
		indent, marker, inlineFormat(rest),
	)
}
