package goquery

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

func (c *Converter) listBlock(n *html.Node, listLevel int) string {
	return c.list(n, listLevel)
}

// list converts a ul or ol element to markdown. indent is the nesting
// level; nested lists indent two spaces per level and ordered lists
// number per level.
func (c *Converter) list(n *html.Node, indent int) string {
	ordered := n.Data == "ol"
	indentSpaces := strings.Repeat("  ", indent)

	var lines []string
	idx := 1
	for _, li := range childElements(n, "li") {
		// Item text excludes nested lists, which render after the line.
		var parts []string
		for child := li.FirstChild; child != nil; child = child.NextSibling {
			if isListElement(child) {
				continue
			}
			if p := c.node(child, indent+1); p != "" {
				parts = append(parts, p)
			}
		}
		text := cleanWhitespace(strings.Join(parts, " "))

		prefix := "-"
		if ordered {
			prefix = fmt.Sprintf("%d.", idx)
		}
		if text != "" {
			lines = append(lines, indentSpaces+prefix+" "+text)
		} else {
			lines = append(lines, indentSpaces+prefix)
		}

		for child := li.FirstChild; child != nil; child = child.NextSibling {
			if isListElement(child) {
				if nested := c.list(child, indent+1); nested != "" {
					lines = append(lines, nested)
				}
			}
		}
		idx++
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n\n"
}

func isListElement(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "ul" || n.Data == "ol")
}
