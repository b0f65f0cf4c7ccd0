package decide

import (
	"fmt"
	"strings"

	"github.com/confsift/confsift"
)

// WordsOutsideTablesThreshold is the non-table word count (headings
// excluded) at or above which prose alone makes a page useful.
const WordsOutsideTablesThreshold = 30

// PageSignals carries the aggregate metrics a page verdict is built
// from. Document counts cover the whole markdown text, table counts
// only the cells of its tables; the difference is the prose.
type PageSignals struct {
	UsefulTables    int
	GibberishTables int
	TotalTables     int

	// WordsOutsideTables is the document word count with table lines
	// and headings already excluded.
	WordsOutsideTables int

	// Document and Tables are whole-document and table-only scans of
	// link-like content.
	Document confsift.ContentScan
	Tables   confsift.ContentScan
}

// DecidePage judges a whole page. Any one of these makes it useful: a
// useful table, enough prose outside tables, or any link, image, file
// reference, or user mention outside tables. A page with none of them
// is gibberish.
func DecidePage(sig PageSignals) *confsift.PageDecision {
	d := &confsift.PageDecision{
		UsefulTables:          sig.UsefulTables,
		GibberishTables:       sig.GibberishTables,
		TotalTables:           sig.TotalTables,
		WordsOutsideTables:    sig.WordsOutsideTables,
		LinksOutsideTables:    outside(sig.Document.Links, sig.Tables.Links),
		ImagesOutsideTables:   outside(sig.Document.Images, sig.Tables.Images),
		FilesOutsideTables:    outside(sig.Document.Files, sig.Tables.Files),
		MentionsOutsideTables: outside(sig.Document.Mentions, sig.Tables.Mentions),
	}

	if d.UsefulTables > 0 {
		d.UsefulIndicators = append(d.UsefulIndicators, fmt.Sprintf("%d useful table(s)", d.UsefulTables))
	}
	if d.WordsOutsideTables >= WordsOutsideTablesThreshold {
		d.UsefulIndicators = append(d.UsefulIndicators, fmt.Sprintf("%d words outside tables (excl. headings)", d.WordsOutsideTables))
	}
	if d.LinksOutsideTables > 0 {
		d.UsefulIndicators = append(d.UsefulIndicators, fmt.Sprintf("%d link(s) outside tables", d.LinksOutsideTables))
	}
	if d.ImagesOutsideTables > 0 {
		d.UsefulIndicators = append(d.UsefulIndicators, fmt.Sprintf("%d image(s) outside tables", d.ImagesOutsideTables))
	}
	if d.FilesOutsideTables > 0 {
		d.UsefulIndicators = append(d.UsefulIndicators, fmt.Sprintf("%d file reference(s) outside tables", d.FilesOutsideTables))
	}
	if d.MentionsOutsideTables > 0 {
		d.UsefulIndicators = append(d.UsefulIndicators, fmt.Sprintf("%d user mention(s) outside tables", d.MentionsOutsideTables))
	}

	if len(d.UsefulIndicators) == 0 {
		d.Gibberish = true
		d.Reason = "No useful content found"
	} else {
		d.Reason = "Useful: " + strings.Join(d.UsefulIndicators, ", ")
	}
	return d
}

func outside(document, tables int) int {
	if n := document - tables; n > 0 {
		return n
	}
	return 0
}
