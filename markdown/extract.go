// Package markdown dissects converted markdown: it finds tables,
// profiles the prose around them, and counts link-like content.
package markdown

import (
	"regexp"
	"strings"

	"github.com/confsift/confsift"
)

var separatorCellRE = regexp.MustCompile(`^[-:\s]+$`)

// ExtractTables finds all well-formed tables in a markdown document
// and returns them as cell grids in document order. A table is a run
// of at least two table-like lines containing a separator row;
// separator rows are dropped from the parsed grid.
func ExtractTables(md string) []confsift.TableGrid {
	var tables []confsift.TableGrid
	var block []string

	flush := func() {
		if len(block) >= 2 && containsSeparatorRow(block) {
			if grid := parseBlock(block); len(grid) > 0 {
				tables = append(tables, grid)
			}
		}
		block = nil
	}

	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if isTableLine(line) {
			block = append(block, line)
		} else {
			flush()
		}
	}
	flush()

	return tables
}

// isTableLine reports whether a line looks like a table row: it splits
// into at least two cells on unescaped pipes.
func isTableLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.Contains(trimmed, "|") {
		return false
	}
	return len(ParseCells(trimmed)) >= 2
}

// isSeparatorRow reports whether a line is a header separator like
// | --- | :--- |.
func isSeparatorRow(line string) bool {
	trimmed := strings.Trim(strings.TrimSpace(line), "|")
	for _, part := range strings.Split(trimmed, "|") {
		if part == "" {
			continue
		}
		if !separatorCellRE.MatchString(part) {
			return false
		}
	}
	return true
}

func containsSeparatorRow(block []string) bool {
	for _, line := range block {
		if isSeparatorRow(line) {
			return true
		}
	}
	return false
}

func parseBlock(block []string) confsift.TableGrid {
	var grid confsift.TableGrid
	for _, line := range block {
		if strings.TrimSpace(line) == "" || isSeparatorRow(line) {
			continue
		}
		if cells := ParseCells(line); len(cells) > 0 {
			grid = append(grid, cells)
		}
	}
	return grid
}

// ParseCells splits a table row into trimmed cell strings, honoring
// backslash-escaped pipes. A trailing empty cell is kept only when the
// row has explicit content for it.
func ParseCells(line string) []string {
	s := strings.Trim(strings.TrimSpace(line), "|")

	var cells []string
	var current strings.Builder
	escaped := false
	for _, ch := range s {
		switch {
		case ch == '\\' && !escaped:
			escaped = true
			continue
		case ch == '|' && !escaped:
			cells = append(cells, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			if escaped && ch == '|' {
				current.WriteRune('|')
			} else {
				current.WriteRune(ch)
			}
		}
		escaped = false
	}
	if current.Len() > 0 {
		cells = append(cells, strings.TrimSpace(current.String()))
	}
	return cells
}
