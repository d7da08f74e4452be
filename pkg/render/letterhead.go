package render

import (
	"fmt"
	"html"
	"strings"
)

// letterhead holds the parts captured from a [HEADER_START]…[HEADER_END]
// block while scanning.
type letterhead struct {
	logoHTML string
	location []string
}

// scanLetterhead consumes a letterhead block starting at lines[i], where
// lines[i-1] was the [HEADER_START] marker. It returns the captured parts
// and the index of the first line after the block.
//
// The scan is permissive: a missing [HEADER_END] (or [/LOCATION_RIGHT])
// consumes to end-of-input and whatever was captured up to that point is
// rendered. Non-marker lines inside the block that are not part of a
// location section are consumed without output.
func scanLetterhead(lines []string, i int, logoDataURI string) (letterhead, int) {
	var lh letterhead

	for i < len(lines) {
		switch strings.TrimSpace(lines[i]) {
		case markerHeaderEnd:
			return lh, i + 1

		case markerClinicLogo:
			if logoDataURI != "" {
				lh.logoHTML = fmt.Sprintf(
					`<img src="%s" alt="Clinic logo" style="max-height: 60px; max-width: 180px;">`,
					html.EscapeString(logoDataURI),
				)
			}
			i++

		case markerLocationStart:
			i++
			for i < len(lines) {
				trimmed := strings.TrimSpace(lines[i])
				if trimmed == markerLocationEnd {
					i++
					break
				}
				if trimmed != "" {
					lh.location = append(lh.location, trimmed)
				}
				i++
			}

		default:
			i++
		}
	}
	return lh, i
}

// renderLetterhead emits the clinic letterhead as a two-cell table — logo
// left, location right — followed by a horizontal rule. The first captured
// location line is the office name, rendered bold and larger; subsequent
// lines render as smaller address lines.
func renderLetterhead(lh letterhead) string {
	var loc strings.Builder
	for idx, line := range lh.location {
		if idx == 0 {
			fmt.Fprintf(&loc, `<div style="font-size: 14px; font-weight: bold;">%s</div>`, html.EscapeString(line))
		} else {
			fmt.Fprintf(&loc, `<div style="font-size: 10px; color: #444;">%s</div>`, html.EscapeString(line))
		}
		loc.WriteString("\n")
	}

	var sb strings.Builder
	sb.WriteString(`<table style="width: 100%; border-collapse: collapse; margin-bottom: 8px;">` + "\n<tr>\n")
	fmt.Fprintf(&sb, `<td style="width: 50%%; vertical-align: top; text-align: left;">%s</td>`, lh.logoHTML)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, `<td style="width: 50%%; vertical-align: top; text-align: right;">`+"\n%s</td>", loc.String())
	sb.WriteString("\n</tr>\n</table>\n")
	sb.WriteString(`<hr style="border: none; border-top: 1px solid #999; margin: 4px 0 12px 0;">` + "\n")
	return sb.String()
}
