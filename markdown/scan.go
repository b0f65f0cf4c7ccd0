package markdown

import (
	"regexp"

	"github.com/confsift/confsift"
)

var (
	linkRE    = regexp.MustCompile(`https?://[^\s)]+`)
	imgFileRE = regexp.MustCompile(`(?i)\b\S+\.(png|jpg|jpeg|gif|svg|bmp|webp)\b`)
	docFileRE = regexp.MustCompile(`(?i)\b\S+\.(pdf|docx?|xlsx?|csv|pptx?)\b`)
	mentionRE = regexp.MustCompile(`\[~[^\]]+\]`)
)

// Scan counts link-like content in a span of markdown text: URLs,
// image references, document file references, and user mentions.
func Scan(text string) *confsift.ContentScan {
	return &confsift.ContentScan{
		Links:    len(linkRE.FindAllString(text, -1)),
		Images:   len(imgFileRE.FindAllString(text, -1)),
		Files:    len(docFileRE.FindAllString(text, -1)),
		Mentions: len(mentionRE.FindAllString(text, -1)),
	}
}

// Mentions returns the user mentions in text.
func Mentions(text string) []string {
	return mentionRE.FindAllString(text, -1)
}

// Words returns all word tokens in text.
func Words(text string) []string {
	return wordRE.FindAllString(text, -1)
}
