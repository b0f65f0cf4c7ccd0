package confsift

// TableGrid is a parsed markdown table as a grid of trimmed cell
// strings. Rows may be ragged; analysis normalizes them to the widest
// row by padding with empty cells.
type TableGrid [][]string

// Rows returns the number of rows in the grid.
func (g TableGrid) Rows() int { return len(g) }

// Cols returns the width of the widest row.
func (g TableGrid) Cols() int {
	cols := 0
	for _, row := range g {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// HeadingType describes which edges of a table act as headers.
type HeadingType string

const (
	HeadingNone   HeadingType = "none"
	HeadingRow    HeadingType = "row"    // first column holds row headers
	HeadingColumn HeadingType = "column" // first row holds column headers
	HeadingBoth   HeadingType = "both"
)

// HeadingResult is the outcome of table heading detection.
type HeadingResult struct {
	Type HeadingType

	// ColumnHeaders holds the first-row header texts when Type is
	// column or both, with bold markers stripped.
	ColumnHeaders []string

	// RowHeaders holds the first-column header texts when Type is
	// row or both.
	RowHeaders []string

	// KeyValue reports that the table matched the implicit
	// two-column key/value layout heuristic.
	KeyValue bool
}

// HasColumnHeaders reports whether the first row was classified as a
// header row.
func (h *HeadingResult) HasColumnHeaders() bool {
	return h != nil && (h.Type == HeadingColumn || h.Type == HeadingBoth)
}

// HasRowHeaders reports whether the first column was classified as a
// header column.
func (h *HeadingResult) HasRowHeaders() bool {
	return h != nil && (h.Type == HeadingRow || h.Type == HeadingBoth)
}

// CellMetrics is the per-cell lexical profile used by the table
// decision rules. Every word in a cell lands in exactly one of the
// meaningful, placeholder, or index buckets.
type CellMetrics struct {
	Text string

	Words            int
	MeaningfulWords  int
	PlaceholderWords int
	IndexWords       int

	Meaningful   []string
	Placeholders []string
	Indexes      []string

	Links    int
	Images   int
	Files    int
	Mentions int

	MentionList []string

	Empty bool

	// HasUsefulContent is true when the cell has at least two
	// meaningful words or any link, image, file, or mention.
	HasUsefulContent bool
}

// RowSummary aggregates cell metrics across one table row. Word counts
// exclude header cells; link-like counts include them.
type RowSummary struct {
	Index int
	Cells int

	Words            int
	MeaningfulWords  int
	PlaceholderWords int
	IndexWords       int

	Links    int
	Images   int
	Files    int
	Mentions int

	EmptyCells int
}

// TableAnalysis is the full content profile of one table: dimensions,
// per-cell and per-row metrics, aggregate counts, heading detection,
// and the emptiness/usefulness predicates the decision engine reads.
type TableAnalysis struct {
	Rows int
	Cols int

	// TotalCells and FilledCells count every cell, headers included.
	// A cell is filled when it has any non-whitespace text.
	TotalCells  int
	FilledCells int

	// DataCells and FilledDataCells count non-header cells only. A
	// data cell is filled when it has meaningful words or links.
	// FillPercentage is FilledDataCells over DataCells.
	DataCells       int
	FilledDataCells int
	FillPercentage  float64

	// Word counts exclude header cells; link-like counts include them.
	Words            int
	MeaningfulWords  int
	PlaceholderWords int
	IndexWords       int

	Links    int
	Images   int
	Files    int
	Mentions int

	EmptyRows    []int
	EmptyColumns []int

	Cells        [][]CellMetrics
	RowSummaries []RowSummary

	Heading *HeadingResult

	// Empty is true when every cell beyond the leading label columns
	// is blank. Useful is true when any non-header cell has useful
	// content.
	Empty  bool
	Useful bool
}

// HeaderCell reports whether the cell at (row, col) is a header cell
// under the detected heading type.
func (a *TableAnalysis) HeaderCell(row, col int) bool {
	if a == nil || a.Heading == nil {
		return false
	}
	return (a.Heading.HasColumnHeaders() && row == 0) ||
		(a.Heading.HasRowHeaders() && col == 0)
}
