package render

import (
	"fmt"
	"html"
	"strings"
)

// Column-width heuristics, expressed in percent. The 2- and 3-column splits
// are deliberate magic constants tuned against the document layouts the
// model actually produces (muscle-strength and reflex grids with a wide
// label column); other cardinalities fall back to an equal split. Do not
// generalize these.
var (
	twoColWidths   = []string{"60%", "40%"}
	threeColWidths = []string{"60%", "20%", "20%"}
)

// Body rows alternate between these two background shades.
const (
	rowShadeEven = "#ffffff"
	rowShadeOdd  = "#f5f5f5"
)

// tableRun returns the length of the contiguous pipe-bearing run starting
// at lines[start]. The run ends at the first blank line or first line
// without a pipe.
func tableRun(lines []string, start int) int {
	n := 0
	for start+n < len(lines) {
		line := lines[start+n]
		if strings.TrimSpace(line) == "" || !strings.Contains(line, "|") {
			break
		}
		n++
	}
	return n
}

// renderTable converts a detected run of pipe-delimited lines into an HTML
// table. Separator rows are dropped. The header row is the first
// non-separator row that occurs in the first half of the run; a run whose
// non-separator rows all sit in the second half renders with no header.
//
// Header cells are uppercased; the first column is left-aligned and all
// others centered. Body cells keep their text except that first-column
// cells are uppercased; bold markers are stripped everywhere.
func renderTable(run []string) string {
	headerIdx := -1
	var bodyRows [][]string
	var headerRow []string

	for idx, raw := range run {
		if tableSeparatorRe.MatchString(raw) {
			continue
		}
		cells := splitCells(raw)
		if headerIdx < 0 && 2*idx < len(run) {
			headerIdx = idx
			headerRow = cells
			continue
		}
		bodyRows = append(bodyRows, cells)
	}

	cols := len(headerRow)
	if cols == 0 {
		for _, row := range bodyRows {
			if len(row) > cols {
				cols = len(row)
			}
		}
	}
	if cols == 0 {
		return ""
	}
	widths := columnWidths(cols)

	var sb strings.Builder
	sb.WriteString(`<table style="width: 100%; border-collapse: collapse; margin: 12px 0;">`)
	sb.WriteString("\n")

	if headerRow != nil {
		sb.WriteString("<thead>\n<tr>\n")
		for c := 0; c < cols; c++ {
			cell := ""
			if c < len(headerRow) {
				cell = headerRow[c]
			}
			fmt.Fprintf(&sb,
				`<th style="width: %s; text-align: %s; padding: 4px 6px; border-bottom: 2px solid #333;">%s</th>`,
				widths[c], columnAlign(c), html.EscapeString(strings.ToUpper(cell)),
			)
			sb.WriteString("\n")
		}
		sb.WriteString("</tr>\n</thead>\n")
	}

	sb.WriteString("<tbody>\n")
	for r, row := range bodyRows {
		shade := rowShadeEven
		if r%2 == 1 {
			shade = rowShadeOdd
		}
		fmt.Fprintf(&sb, `<tr style="background-color: %s;">`, shade)
		sb.WriteString("\n")
		for c := 0; c < cols; c++ {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if c == 0 {
				cell = strings.ToUpper(cell)
			}
			fmt.Fprintf(&sb,
				`<td style="width: %s; text-align: %s; padding: 4px 6px; border-bottom: 1px solid #ddd;">%s</td>`,
				widths[c], columnAlign(c), html.EscapeString(cell),
			)
			sb.WriteString("\n")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")

	return sb.String()
}

// splitCells splits a table row on pipes, trims each cell, strips bold
// markers, and drops empty edge cells produced by leading/trailing pipes
// ("| a | b |" and "a | b" both yield two cells).
func splitCells(raw string) []string {
	parts := strings.Split(raw, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, stripBold(strings.TrimSpace(p)))
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// columnWidths apportions widths by column count: 2 columns get 60/40,
// 3 get 60/20/20, anything else an equal split.
func columnWidths(cols int) []string {
	switch cols {
	case 2:
		return twoColWidths
	case 3:
		return threeColWidths
	}
	widths := make([]string, cols)
	for i := range widths {
		widths[i] = fmt.Sprintf("%d%%", 100/cols)
	}
	return widths
}

// columnAlign left-aligns the first column and centers the rest.
func columnAlign(col int) string {
	if col == 0 {
		return "left"
	}
	return "center"
}
