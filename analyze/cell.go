// Package analyze profiles table content: per-cell lexical metrics,
// heading detection, and the table-level aggregates the decision
// engine consumes.
package analyze

import (
	"regexp"
	"strings"

	"github.com/confsift/confsift"
	"github.com/confsift/confsift/markdown"
)

// placeholderVocabulary holds words that fill cells without saying
// anything: status markers, severity scales, and scratch values.
var placeholderVocabulary = map[string]struct{}{
	"draft": {}, "tbd": {}, "yes": {}, "no": {}, "none": {}, "n/a": {},
	"na": {}, "todo": {}, "pending": {}, "ok": {}, "done": {}, "wip": {},
	"placeholder": {}, "example": {}, "sample": {}, "test": {},
	"tmp": {}, "temp": {}, "xxx": {}, "yyy": {}, "zzz": {}, "abc": {},
	"tba": {}, "high": {}, "low": {}, "medium": {},
	"medium-high": {}, "medium-low": {}, "high-medium": {}, "low-medium": {},
	"high-low": {}, "low-high": {},
	"status": {},
}

var romanNumeralRE = regexp.MustCompile(`^m{0,4}(cm|cd|d?c{0,3})(xc|xl|l?x{0,3})(ix|iv|v?i{0,3})$`)

// isIndexWord reports whether a word is an index or counter: a number,
// a roman numeral, a single letter, or a short run of one repeated
// letter.
func isIndexWord(word string) bool {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return false
	}
	if isDigits(w) {
		return true
	}
	if allRomanChars(w) && romanNumeralRE.MatchString(w) {
		return true
	}
	runes := []rune(w)
	if len(runes) == 1 && isAlpha(runes[0]) {
		return true
	}
	if len(runes) <= 3 && isAlpha(runes[0]) {
		same := true
		for _, r := range runes {
			if r != runes[0] {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func allRomanChars(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("ivxlcdm", r) {
			return false
		}
	}
	return true
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Cell computes the lexical profile of one cell. Every word lands in
// exactly one bucket: index patterns first, then placeholder
// vocabulary (after stripping bold and italic markers), then
// meaningful.
func Cell(text string) confsift.CellMetrics {
	stripped := strings.TrimSpace(text)
	cm := confsift.CellMetrics{
		Text:  text,
		Empty: stripped == "",
	}

	if !cm.Empty {
		for _, word := range markdown.Words(text) {
			clean := strings.Trim(strings.ToLower(word), "*_")
			switch {
			case isIndexWord(word):
				cm.Indexes = append(cm.Indexes, word)
			case inPlaceholderVocabulary(clean):
				cm.Placeholders = append(cm.Placeholders, word)
			default:
				cm.Meaningful = append(cm.Meaningful, word)
			}
		}
	}

	cm.Words = len(cm.Meaningful) + len(cm.Placeholders) + len(cm.Indexes)
	cm.MeaningfulWords = len(cm.Meaningful)
	cm.PlaceholderWords = len(cm.Placeholders)
	cm.IndexWords = len(cm.Indexes)

	scan := markdown.Scan(text)
	cm.Links = scan.Links
	cm.Images = scan.Images
	cm.Files = scan.Files
	cm.Mentions = scan.Mentions
	cm.MentionList = markdown.Mentions(text)

	cm.HasUsefulContent = cm.MeaningfulWords >= 2 ||
		cm.Links > 0 || cm.Images > 0 || cm.Files > 0 || cm.Mentions > 0

	return cm
}

func inPlaceholderVocabulary(word string) bool {
	_, ok := placeholderVocabulary[word]
	return ok
}
