// Package decide turns table and page content profiles into quality
// verdicts. Table rules run in a fixed priority order and every rule
// evaluation is appended to the decision log, fired or not, so a
// verdict can always be traced back to the rule that produced it.
package decide

import (
	"fmt"
	"math"

	"github.com/confsift/confsift"
)

// Decision thresholds.
const (
	// MeaningfulWordsThreshold is the table-level meaningful word count
	// at or above which a table is useful.
	MeaningfulWordsThreshold = 3

	// WordsPerCellUseful is the per-cell meaningful word count above
	// which a single cell makes the whole table useful.
	WordsPerCellUseful = 5

	// HeaderHeavyThreshold is the percentage of meaningful words in the
	// header row above which a table reads as headings only.
	HeaderHeavyThreshold = 70
)

// DecideTable applies the ordered rule set to one table analysis:
// priority content, rich cell, structural emptiness patterns,
// meaningful word threshold, then the ambiguous fallback.
func DecideTable(a *confsift.TableAnalysis) *confsift.TableDecision {
	if a == nil {
		return &confsift.TableDecision{
			Verdict: confsift.VerdictGibberish,
			Reason:  "No analysis data",
		}
	}

	var log []string
	pct := roundPct(a.FillPercentage)
	fillInfo := fmt.Sprintf("%d/%d cells (%.1f%%) excluding headers", a.FilledDataCells, a.DataCells, pct)

	hasPriority, priorityReason := checkPriorityContent(a)
	log = append(log, "Priority Content: "+priorityReason)
	if hasPriority {
		return finish(a, confsift.VerdictUseful, priorityReason, fillInfo, pct, log)
	}

	hasRichCell, cellReason := checkCellWordCount(a)
	log = append(log, "Rich Cell: "+cellReason)
	if hasRichCell {
		return finish(a, confsift.VerdictUseful, cellReason, fillInfo, pct, log)
	}

	firstRowOnly, firstRowReason := checkFirstRowOnlyFilled(a)
	log = append(log, "First Row Only Filled: "+firstRowReason)
	if firstRowOnly {
		return finish(a, confsift.VerdictGibberish, "Only header row filled (rest empty)", fillInfo, pct, log)
	}

	firstColOnly, firstColReason := checkFirstColumnOnlyFilled(a)
	log = append(log, "First Column Only Filled: "+firstColReason)
	if firstColOnly {
		return finish(a, confsift.VerdictGibberish, "Only first column filled", fillInfo, pct, log)
	}

	headerHeavy, headerReason := checkHeaderHeavyTable(a)
	log = append(log, "Header Heavy: "+headerReason)
	if headerHeavy {
		return finish(a, confsift.VerdictGibberish, headerReason, fillInfo, pct, log)
	}

	singleFilled, singleReason := checkSingleRowOrColumnFilled(a)
	log = append(log, "Single Row/Col: "+singleReason)
	if singleFilled {
		return finish(a, confsift.VerdictGibberish, singleReason, fillInfo, pct, log)
	}

	log = append(log, fmt.Sprintf("Meaningful Words: %d", a.MeaningfulWords))
	if a.MeaningfulWords >= MeaningfulWordsThreshold {
		reason := fmt.Sprintf("%d meaningful words found (≥%d threshold)", a.MeaningfulWords, MeaningfulWordsThreshold)
		return finish(a, confsift.VerdictUseful, reason, fillInfo, pct, log)
	}

	if a.MeaningfulWords == 0 {
		return finish(a, confsift.VerdictGibberish, "No meaningful content found", fillInfo, pct, log)
	}

	reason := fmt.Sprintf("Ambiguous: %d words (below threshold) but has some content", a.MeaningfulWords)
	return finish(a, confsift.VerdictCantDecide, reason, fillInfo, pct, log)
}

// checkPriorityContent looks for high-value content in priority order.
// Links outrank files, which outrank images, which outrank mentions.
func checkPriorityContent(a *confsift.TableAnalysis) (bool, string) {
	checks := []struct {
		count    int
		singular string
		label    string
	}{
		{a.Links, "link", "highest priority"},
		{a.Files, "file", "high priority"},
		{a.Images, "image", ""},
		{a.Mentions, "mention", ""},
	}
	for _, c := range checks {
		if c.count > 0 {
			suffix := ""
			if c.label != "" {
				suffix = " (" + c.label + ")"
			}
			return true, fmt.Sprintf("%d %s(s) found%s", c.count, c.singular, suffix)
		}
	}
	return false, "No priority content"
}

// checkCellWordCount looks for a single data cell rich enough to make
// the table useful on its own. The first row is skipped by position.
func checkCellWordCount(a *confsift.TableAnalysis) (bool, string) {
	for r, row := range a.Cells {
		if r == 0 {
			continue
		}
		for _, cm := range row {
			if cm.MeaningfulWords > WordsPerCellUseful {
				return true, fmt.Sprintf("Found cell with %d meaningful words (>%d threshold)", cm.MeaningfulWords, WordsPerCellUseful)
			}
		}
	}
	return false, fmt.Sprintf("No cell has >%d meaningful words", WordsPerCellUseful)
}

// checkFirstRowOnlyFilled reports when every data row below the first
// is empty of meaningful words and links.
func checkFirstRowOnlyFilled(a *confsift.TableAnalysis) (bool, string) {
	if a.Rows <= 1 {
		return false, fmt.Sprintf("Only %d row total", a.Rows)
	}
	filled := 0
	for i, s := range a.RowSummaries {
		if i > 0 && (s.MeaningfulWords > 0 || s.Links > 0) {
			filled++
		}
	}
	if filled == 0 {
		return true, fmt.Sprintf("Only header row filled, %d data rows empty", a.Rows-1)
	}
	return false, fmt.Sprintf("%d/%d data rows have content", filled, a.Rows-1)
}

// checkFirstColumnOnlyFilled reports when the first column is the only
// one with meaningful words in the data rows.
func checkFirstColumnOnlyFilled(a *confsift.TableAnalysis) (bool, string) {
	if a.Cols <= 1 {
		return false, fmt.Sprintf("Only %d column total", a.Cols)
	}
	filledCols := 0
	firstFilled := false
	for c := 0; c < a.Cols; c++ {
		if colHasDataContent(a, c) {
			filledCols++
			if c == 0 {
				firstFilled = true
			}
		}
	}
	if filledCols == 1 && firstFilled {
		return true, fmt.Sprintf("Only 1st column filled, %d other columns empty", a.Cols-1)
	}
	return false, fmt.Sprintf("%d/%d columns have content", filledCols, a.Cols)
}

// checkHeaderHeavyTable reports when the first row holds more than
// HeaderHeavyThreshold percent of the table's meaningful words. Row
// summaries already exclude detected header cells, so this only fires
// on tables whose heading detection came up empty.
func checkHeaderHeavyTable(a *confsift.TableAnalysis) (bool, string) {
	if a.Rows <= 1 || len(a.RowSummaries) == 0 {
		return false, "Table too small or no row data"
	}
	headerWords := a.RowSummaries[0].MeaningfulWords
	dataWords := 0
	for _, s := range a.RowSummaries[1:] {
		dataWords += s.MeaningfulWords
	}
	total := headerWords + dataWords
	if total == 0 {
		return false, "No meaningful words in table"
	}
	pct := float64(headerWords) / float64(total) * 100
	if pct > HeaderHeavyThreshold {
		return true, fmt.Sprintf("Header has %.1f%% of content (%d/%d words)", pct, headerWords, total)
	}
	return false, fmt.Sprintf("Header has %.1f%% of content (acceptable)", pct)
}

// checkSingleRowOrColumnFilled reports when exactly one data row or
// exactly one column carries meaningful words, wherever it sits.
func checkSingleRowOrColumnFilled(a *confsift.TableAnalysis) (bool, string) {
	if a.Rows <= 1 || a.Cols <= 1 {
		return false, "Too small to check"
	}

	var rowsWith []int
	for r, row := range a.Cells {
		if r == 0 {
			continue
		}
		for _, cm := range row {
			if cm.MeaningfulWords > 0 {
				rowsWith = append(rowsWith, r)
				break
			}
		}
	}
	var colsWith []int
	for c := 0; c < a.Cols; c++ {
		if colHasDataContent(a, c) {
			colsWith = append(colsWith, c)
		}
	}

	totalDataRows := a.Rows - 1
	if len(rowsWith) == 1 {
		return true, fmt.Sprintf("Only 1 row filled (row %d), %d rows empty", rowsWith[0], totalDataRows-1)
	}
	if len(colsWith) == 1 {
		return true, fmt.Sprintf("Only 1 column filled (col %d), %d columns empty", colsWith[0], a.Cols-1)
	}
	return false, fmt.Sprintf("%d rows and %d columns have content", len(rowsWith), len(colsWith))
}

// colHasDataContent reports whether column c has meaningful words in
// any row after the first.
func colHasDataContent(a *confsift.TableAnalysis, c int) bool {
	for r := 1; r < len(a.Cells); r++ {
		if c < len(a.Cells[r]) && a.Cells[r][c].MeaningfulWords > 0 {
			return true
		}
	}
	return false
}

// finish builds the decision with the metrics and useful-indicator
// list reports expect alongside the verdict.
func finish(a *confsift.TableAnalysis, v confsift.Verdict, reason, fillInfo string, pct float64, log []string) *confsift.TableDecision {
	d := &confsift.TableDecision{
		Verdict:          v,
		Reason:           reason,
		Log:              log,
		FillInfo:         fillInfo,
		FillPercentage:   pct,
		Words:            a.Words,
		MeaningfulWords:  a.MeaningfulWords,
		PlaceholderWords: a.PlaceholderWords + a.IndexWords,
		Links:            a.Links,
		Images:           a.Images,
		Files:            a.Files,
		Mentions:         a.Mentions,
		SmallKeyValue:    SmallKeyValue(a),
	}
	if v != confsift.VerdictGibberish {
		if d.MeaningfulWords >= MeaningfulWordsThreshold {
			d.UsefulIndicators = append(d.UsefulIndicators, fmt.Sprintf("%d meaningful words (excl. headings & placeholders)", d.MeaningfulWords))
		}
		if d.Links > 0 {
			d.UsefulIndicators = append(d.UsefulIndicators, fmt.Sprintf("%d link(s)", d.Links))
		}
		if d.Images > 0 {
			d.UsefulIndicators = append(d.UsefulIndicators, fmt.Sprintf("%d image(s)", d.Images))
		}
		if d.Files > 0 {
			d.UsefulIndicators = append(d.UsefulIndicators, fmt.Sprintf("%d file reference(s)", d.Files))
		}
		if d.Mentions > 0 {
			d.UsefulIndicators = append(d.UsefulIndicators, fmt.Sprintf("%d user mention(s)", d.Mentions))
		}
	}
	return d
}

func roundPct(pct float64) float64 {
	return math.Round(pct*10) / 10
}
