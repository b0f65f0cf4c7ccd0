package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// table converts an HTML table to markdown. Captions become a bold
// line above the table, th rows become the header row, colspans expand
// to empty cells, and two-column tables where every row has exactly
// two cells take a key/value fast path.
func (c *Converter) table(n *html.Node, listLevel int) string {
	var parts []string
	if cap := findFirst(n, "caption"); cap != nil {
		if text := cleanWhitespace(rawText(cap)); text != "" {
			parts = append(parts, "**"+text+"**\n")
		}
	}

	trs := findAll(n, "tr")
	if len(trs) == 0 {
		return ""
	}

	if kv := c.keyValueTable(trs); kv != "" {
		return kv
	}

	var headers []string
	var rows [][]string
	maxCols := 0

	for _, tr := range trs {
		var cells []string
		hasTH := false
		for _, cell := range rowCells(tr) {
			if cell.Data == "th" {
				hasTH = true
			}
			cells = append(cells, c.cellContent(cell))
			colspan, _ := strconv.Atoi(attr(cell, "colspan"))
			for i := 1; i < colspan; i++ {
				cells = append(cells, "")
			}
		}
		if len(cells) == 0 {
			continue
		}
		if len(cells) > maxCols {
			maxCols = len(cells)
		}
		if hasTH && headers == nil {
			headers = cells
		} else {
			rows = append(rows, cells)
		}
	}

	if len(rows) == 0 && headers == nil {
		return ""
	}

	var lines []string
	width := maxCols
	if headers != nil {
		headers = padRow(headers, maxCols)
		width = len(headers)
		lines = append(lines, tableRow(headers), separatorRow(width))
	} else {
		lines = append(lines, separatorRow(width))
	}
	for _, row := range rows {
		row = padRow(row, width)
		lines = append(lines, tableRow(row[:width]))
	}
	parts = append(parts, strings.Join(lines, "\n"))

	return strings.Join(parts, "\n") + "\n\n"
}

// keyValueTable renders a multi-row table where every row has exactly
// two cells as key/value pairs, with the separator after the first
// row. Returns "" when the shape does not match.
func (c *Converter) keyValueTable(trs []*html.Node) string {
	if len(trs) < 2 {
		return ""
	}
	for _, tr := range trs {
		if len(rowCells(tr)) != 2 {
			return ""
		}
	}
	var rows []string
	for _, tr := range trs {
		cells := rowCells(tr)
		rows = append(rows, "| "+c.cellContent(cells[0])+" | "+c.cellContent(cells[1])+" |")
	}
	lines := append([]string{rows[0], "| --- | --- |"}, rows[1:]...)
	return strings.Join(lines, "\n") + "\n\n"
}

// rowCells returns the th and td children of a table row.
func rowCells(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for child := tr.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && (child.Data == "th" || child.Data == "td") {
			cells = append(cells, child)
		}
	}
	return cells
}

// cellContent renders one cell. Macro-free cells that contain a date
// collapse to just the date; everything else converts normally with
// pipes escaped.
func (c *Converter) cellContent(cell *html.Node) string {
	hasMacro := findFirst(cell, "ac:structured-macro") != nil || findFirst(cell, "ac:macro") != nil
	if !hasMacro {
		if date := extractDate(cell); date != "" {
			return escapePipe(date)
		}
	}
	text := cleanWhitespace(c.children(cell, 0))
	return escapePipe(text)
}

func padRow(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}

func tableRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func separatorRow(width int) string {
	cells := make([]string, width)
	for i := range cells {
		cells[i] = "---"
	}
	return tableRow(cells)
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{4}/\d{2}/\d{2}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`),
	regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{4}`),
	regexp.MustCompile(`(?i)\d{1,2} (Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{4}`),
}

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// extractDate finds a date in a table cell: a Confluence time element
// first, then common textual date patterns. Returns "" when the cell
// has no date.
func extractDate(cell *html.Node) string {
	if t := findFirst(cell, "time"); t != nil {
		if dt := attr(t, "datetime"); dt != "" {
			for _, layout := range datetimeLayouts {
				if parsed, err := time.Parse(layout, dt); err == nil {
					return parsed.Format("2006-01-02")
				}
			}
		}
		if text := cleanWhitespace(rawText(t)); text != "" {
			return text
		}
	}

	text := cleanWhitespace(rawText(cell))
	if text == "" {
		return ""
	}
	for _, re := range datePatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}
