package analyze

import (
	"strings"

	"github.com/confsift/confsift"
)

// DefaultLabelColumns is how many leading columns count as row labels
// when judging whether a table is empty.
const DefaultLabelColumns = 1

// Table analyzes a table grid with the default label column count.
func Table(grid confsift.TableGrid) *confsift.TableAnalysis {
	return TableWithLabelColumns(grid, DefaultLabelColumns)
}

// TableWithLabelColumns computes the full content profile of a table.
// Word counts exclude header cells so that header vocabulary does not
// inflate content measures; link-like counts include every cell.
func TableWithLabelColumns(grid confsift.TableGrid, labelCols int) *confsift.TableAnalysis {
	a := &confsift.TableAnalysis{}
	if len(grid) == 0 {
		a.Empty = true
		return a
	}

	rows := grid.Rows()
	cols := grid.Cols()
	norm := normalize(grid, cols)

	a.Rows = rows
	a.Cols = cols
	a.TotalCells = rows * cols
	a.Heading = DetectHeading(grid)

	colEmpty := make([]int, cols)
	a.Cells = make([][]confsift.CellMetrics, rows)

	for r := 0; r < rows; r++ {
		rowMetrics := make([]confsift.CellMetrics, cols)
		summary := confsift.RowSummary{Index: r, Cells: len(grid[r])}

		for c := 0; c < cols; c++ {
			cm := Cell(norm[r][c])
			rowMetrics[c] = cm

			if !a.HeaderCell(r, c) {
				a.Words += cm.Words
				a.MeaningfulWords += cm.MeaningfulWords
				a.PlaceholderWords += cm.PlaceholderWords
				a.IndexWords += cm.IndexWords
				summary.Words += cm.Words
				summary.MeaningfulWords += cm.MeaningfulWords
				summary.PlaceholderWords += cm.PlaceholderWords
				summary.IndexWords += cm.IndexWords
				if cm.HasUsefulContent {
					a.Useful = true
				}
			}

			a.Links += cm.Links
			a.Images += cm.Images
			a.Files += cm.Files
			a.Mentions += cm.Mentions
			summary.Links += cm.Links
			summary.Images += cm.Images
			summary.Files += cm.Files
			summary.Mentions += cm.Mentions

			if cm.Empty {
				summary.EmptyCells++
				colEmpty[c]++
			} else {
				a.FilledCells++
			}
		}

		a.Cells[r] = rowMetrics
		a.RowSummaries = append(a.RowSummaries, summary)
	}

	for c, cnt := range colEmpty {
		if cnt == rows {
			a.EmptyColumns = append(a.EmptyColumns, c)
		}
	}
	for _, s := range a.RowSummaries {
		if s.EmptyCells == cols {
			a.EmptyRows = append(a.EmptyRows, s.Index)
		}
	}

	a.DataCells, a.FilledDataCells, a.FillPercentage = dataFill(a)

	a.Empty = emptyBeyondLabels(norm, labelCols)

	return a
}

// dataFill measures fill over non-header cells. A data cell counts as
// filled when it carries meaningful words or links; single-row tables
// have no data fill.
func dataFill(a *confsift.TableAnalysis) (total, filled int, pct float64) {
	if a.Rows <= 1 {
		return 0, 0, 0
	}
	hasColH := a.Heading.HasColumnHeaders()
	hasRowH := a.Heading.HasRowHeaders()

	dataRows := a.Rows
	if hasColH {
		dataRows--
	}
	dataCols := a.Cols
	if hasRowH {
		dataCols--
	}
	total = dataRows * dataCols
	if total <= 0 {
		return 0, 0, 0
	}

	for r := 0; r < a.Rows; r++ {
		if hasColH && r == 0 {
			continue
		}
		for c := 0; c < a.Cols; c++ {
			if hasRowH && c == 0 {
				continue
			}
			cm := a.Cells[r][c]
			if cm.MeaningfulWords > 0 || cm.Links > 0 {
				filled++
			}
		}
	}
	return total, filled, float64(filled) / float64(total) * 100
}

// emptyBeyondLabels reports whether every cell after the leading label
// columns is blank.
func emptyBeyondLabels(norm [][]string, labelCols int) bool {
	for _, row := range norm {
		if labelCols >= len(row) {
			continue
		}
		for _, cell := range row[labelCols:] {
			if strings.TrimSpace(cell) != "" {
				return false
			}
		}
	}
	return true
}
