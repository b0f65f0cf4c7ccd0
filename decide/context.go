package decide

import (
	"fmt"

	"github.com/confsift/confsift"
)

// Small key/value table shape bounds.
const (
	smallKeyValueCols    = 2
	smallKeyValueMaxRows = 4
)

// SmallKeyValue reports whether a table has the small key/value shape:
// exactly two columns and at most four rows. Tables like this are
// almost always page metadata (Date, Team, Participants) regardless of
// what heading detection said about them.
func SmallKeyValue(a *confsift.TableAnalysis) bool {
	return a != nil && a.Cols == smallKeyValueCols && a.Rows <= smallKeyValueMaxRows
}

// DecideTableInContext decides one table with awareness of the other
// tables on the page. A small key/value table followed by any other
// table is metadata, not content, and is marked GIBBERISH outright;
// the reason notes whether any of the later tables is itself useful.
// Without page context, or for the last-positioned table, the standard
// rules apply.
func DecideTableInContext(a *confsift.TableAnalysis, all []*confsift.TableAnalysis, index int) *confsift.TableDecision {
	if !SmallKeyValue(a) || all == nil {
		return DecideTable(a)
	}

	var subsequent []*confsift.TableAnalysis
	if index >= 0 && index+1 <= len(all) {
		subsequent = all[index+1:]
	}
	if len(subsequent) == 0 {
		return DecideTable(a)
	}

	usefulAfter := false
	for _, tbl := range subsequent {
		if DecideTable(tbl).Verdict == confsift.VerdictUseful {
			usefulAfter = true
			break
		}
	}

	suffix := "with no useful tables after it"
	logEntry := "Small key-value table"
	if usefulAfter {
		suffix = "- metadata table with other tables present"
		logEntry = "Small key-value metadata table"
	}

	pct := roundPct(a.FillPercentage)
	return &confsift.TableDecision{
		Verdict:          confsift.VerdictGibberish,
		Reason:           fmt.Sprintf("Small key-value table (≤%d rows) %s", smallKeyValueMaxRows, suffix),
		Log:              []string{logEntry},
		FillInfo:         fmt.Sprintf("%d/%d cells (%.1f%%) excluding headers", a.FilledDataCells, a.DataCells, pct),
		FillPercentage:   pct,
		Words:            a.Words,
		MeaningfulWords:  a.MeaningfulWords,
		PlaceholderWords: a.PlaceholderWords + a.IndexWords,
		Links:            a.Links,
		Images:           a.Images,
		Files:            a.Files,
		Mentions:         a.Mentions,
		SmallKeyValue:    true,
	}
}
