package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/confsift/confsift"
)

var (
	wordRE          = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	headingRE       = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	headingMarkupRE = regexp.MustCompile("[*_`\\[\\]()]")

	tableLineRE    = regexp.MustCompile(`(?m)^[|\s]*\|.*$`)
	blockquoteRE   = regexp.MustCompile(`(?m)^>.*$`)
	macroRefRE     = regexp.MustCompile(`\[MACRO:.*?\]`)
	summarySpanRE  = regexp.MustCompile(`(?s)<summary>.*?</summary>`)
	detailsTagRE   = regexp.MustCompile(`</?details>`)
	imageRE        = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	unorderedRE    = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	orderedRE      = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	blockquoteLine = regexp.MustCompile(`(?m)^>\s+`)
	paragraphSep   = regexp.MustCompile(`\n\s*\n`)
)

// AnalyzeStructure profiles the prose of a markdown document. Word
// counts ignore table lines, blockquotes, macro placeholders, details
// and summary tags, and image references, so they measure narrative
// text only.
func AnalyzeStructure(md string) *confsift.DocumentStructure {
	s := &confsift.DocumentStructure{HeadingLevels: map[string]int{}}
	if strings.TrimSpace(md) == "" {
		return s
	}

	for _, p := range paragraphSep.Split(md, -1) {
		if strings.TrimSpace(p) != "" {
			s.Paragraphs++
		}
	}

	for _, m := range headingRE.FindAllStringSubmatch(md, -1) {
		level := len(m[1])
		s.TotalHeadings++
		if level == 1 {
			s.MainHeadings++
		} else {
			s.Subheadings++
		}
		s.HeadingLevels[fmt.Sprintf("h%d", level)]++
		text := headingMarkupRE.ReplaceAllString(m[2], "")
		s.HeadingWordCount += len(wordRE.FindAllString(text, -1))
	}

	counted := md
	counted = tableLineRE.ReplaceAllString(counted, "")
	counted = blockquoteRE.ReplaceAllString(counted, "")
	counted = macroRefRE.ReplaceAllString(counted, "")
	counted = summarySpanRE.ReplaceAllString(counted, "")
	counted = detailsTagRE.ReplaceAllString(counted, "")
	counted = imageRE.ReplaceAllString(counted, "")

	s.WordCountWithHeadings = len(wordRE.FindAllString(counted, -1))
	s.WordCount = s.WordCountWithHeadings - s.HeadingWordCount
	if s.WordCount < 0 {
		s.WordCount = 0
	}

	s.UnorderedListItems = len(unorderedRE.FindAllString(md, -1))
	s.OrderedListItems = len(orderedRE.FindAllString(md, -1))
	s.CodeBlocks = strings.Count(md, "```") / 2
	s.Blockquotes = len(blockquoteLine.FindAllString(md, -1))
	s.Images = len(imageRE.FindAllString(md, -1))

	return s
}
