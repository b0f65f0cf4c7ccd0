package analyze

import (
	"regexp"
	"strings"

	"github.com/confsift/confsift"
	"github.com/confsift/confsift/markdown"
)

var boldCellRE = regexp.MustCompile(`^\s*\*\*(.+?)\*\*\s*$`)

func isBoldCell(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return false
	}
	return boldCellRE.MatchString(trimmed)
}

func extractBoldText(cell string) string {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return ""
	}
	if m := boldCellRE.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// DetectHeading classifies the header edges of a table.
//
// Bold syntax decides first: an all-bold first row gives column
// headers, an all-bold first column gives row headers. Two-column
// tables whose second column is mostly empty get row headers by the
// key/value heuristic. Finally, a non-bold first row of short,
// non-example cells is promoted to column headers.
func DetectHeading(grid confsift.TableGrid) *confsift.HeadingResult {
	result := &confsift.HeadingResult{Type: confsift.HeadingNone}

	if len(grid) == 0 || allRowsEmpty(grid) {
		return result
	}

	rows := grid.Rows()
	cols := grid.Cols()
	if cols == 0 {
		return result
	}

	norm := normalize(grid, cols)

	firstRow := norm[0]
	allFirstRowBold := allNonEmptyBold(firstRow)

	firstCol := make([]string, rows)
	for r := range norm {
		firstCol[r] = norm[r][0]
	}
	allFirstColBold := allNonEmptyBold(firstCol)

	// Two-column tables with a sparse second column read as key/value
	// listings even without bold markers.
	keyValue := false
	if cols == 2 && !allFirstColBold && !allFirstRowBold {
		firstFilled, secondFilled := 0, 0
		for r := range norm {
			if strings.TrimSpace(norm[r][0]) != "" {
				firstFilled++
			}
			if strings.TrimSpace(norm[r][1]) != "" {
				secondFilled++
			}
		}
		half := float64(rows) * 0.5
		if float64(firstFilled) >= half && float64(secondFilled) <= half {
			keyValue = true
		}
	}
	result.KeyValue = keyValue

	if allFirstRowBold {
		headers := make([]string, len(firstRow))
		for i, c := range firstRow {
			headers[i] = extractBoldText(c)
		}
		result.ColumnHeaders = headers
	}

	if allFirstColBold || keyValue {
		startRow := 0
		if allFirstRowBold {
			startRow = 1
		}
		var headers []string
		for r := startRow; r < rows; r++ {
			if allFirstColBold {
				headers = append(headers, extractBoldText(norm[r][0]))
			} else {
				headers = append(headers, strings.TrimSpace(norm[r][0]))
			}
		}
		result.RowHeaders = headers
	}

	if result.ColumnHeaders == nil {
		if headers := promoteHeaderRow(firstRow); headers != nil {
			result.ColumnHeaders = headers
		}
	}

	switch {
	case result.ColumnHeaders != nil && result.RowHeaders != nil:
		result.Type = confsift.HeadingBoth
	case result.ColumnHeaders != nil:
		result.Type = confsift.HeadingColumn
	case result.RowHeaders != nil:
		result.Type = confsift.HeadingRow
	}
	return result
}

// promoteHeaderRow treats a non-bold first row as column headers when
// every non-empty cell is short field-name text (at most four words,
// no example data) and at least two cells are filled.
func promoteHeaderRow(firstRow []string) []string {
	nonEmpty := 0
	for _, cell := range firstRow {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if len(markdown.Words(trimmed)) > 4 {
			return nil
		}
		if strings.HasPrefix(strings.ToLower(trimmed), "e.g.") {
			return nil
		}
	}
	if nonEmpty < 2 {
		return nil
	}
	headers := make([]string, len(firstRow))
	for i, cell := range firstRow {
		headers[i] = strings.TrimSpace(cell)
	}
	return headers
}

func allNonEmptyBold(cells []string) bool {
	nonEmpty := 0
	for _, c := range cells {
		if strings.TrimSpace(c) == "" {
			continue
		}
		nonEmpty++
		if !isBoldCell(c) {
			return false
		}
	}
	return nonEmpty > 0
}

func allRowsEmpty(grid confsift.TableGrid) bool {
	for _, row := range grid {
		if len(row) > 0 {
			return false
		}
	}
	return true
}

func normalize(grid confsift.TableGrid, cols int) [][]string {
	norm := make([][]string, len(grid))
	for i, row := range grid {
		n := make([]string, cols)
		copy(n, row)
		norm[i] = n
	}
	return norm
}
