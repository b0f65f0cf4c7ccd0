package confsift

// Verdict is the outcome of a quality decision.
type Verdict string

const (
	VerdictUseful     Verdict = "USEFUL"
	VerdictGibberish  Verdict = "GIBBERISH"
	VerdictCantDecide Verdict = "CAN'T DECIDE"
)

// Gibberish reports whether the verdict is GIBBERISH. For page-level
// counting an undecided table counts as useful, so this is the only
// predicate callers need.
func (v Verdict) Gibberish() bool { return v == VerdictGibberish }

// TableDecision is the verdict for one table, with the reason that
// decided it and an ordered log of every rule evaluated on the way.
type TableDecision struct {
	Verdict Verdict
	Reason  string

	// Log records each rule evaluation in the order applied, whether
	// or not the rule fired.
	Log []string

	// FillInfo is a human-readable summary of non-header cell fill,
	// FillPercentage the numeric form.
	FillInfo       string
	FillPercentage float64

	// Aggregate metrics carried over from the analysis for reports.
	// PlaceholderWords folds index words in.
	Words            int
	MeaningfulWords  int
	PlaceholderWords int
	Links            int
	Images           int
	Files            int
	Mentions         int

	// UsefulIndicators lists what made a non-gibberish table useful.
	UsefulIndicators []string

	// SmallKeyValue marks a 2-column table with at most 4 rows, the
	// shape the context override targets.
	SmallKeyValue bool
}

// PageDecision is the aggregate verdict for a whole page.
type PageDecision struct {
	Gibberish bool
	Reason    string

	UsefulTables    int
	GibberishTables int
	TotalTables     int

	// Outside-table counts: whatever the document has beyond what its
	// tables account for, floored at zero.
	WordsOutsideTables    int
	LinksOutsideTables    int
	ImagesOutsideTables   int
	FilesOutsideTables    int
	MentionsOutsideTables int

	UsefulIndicators []string
}

// ContentScan counts link-like content in a span of markdown text.
type ContentScan struct {
	Links    int
	Images   int
	Files    int
	Mentions int
}

// Add accumulates another scan into s.
func (s *ContentScan) Add(o *ContentScan) {
	if o == nil {
		return
	}
	s.Links += o.Links
	s.Images += o.Images
	s.Files += o.Files
	s.Mentions += o.Mentions
}

// DocumentStructure profiles the non-table prose of a markdown
// document. Word counts ignore table lines, blockquotes, macro
// placeholders, and image references.
type DocumentStructure struct {
	// WordCount excludes heading text; WordCountWithHeadings does not.
	WordCount             int
	WordCountWithHeadings int
	HeadingWordCount      int

	Paragraphs    int
	TotalHeadings int
	MainHeadings  int
	Subheadings   int
	HeadingLevels map[string]int

	UnorderedListItems int
	OrderedListItems   int
	CodeBlocks         int
	Blockquotes        int
	Images             int
}
