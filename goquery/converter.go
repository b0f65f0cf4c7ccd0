// Package goquery implements Confluence storage-format conversion to
// markdown on top of goquery's HTML parsing.
//
// Storage format is XHTML with Confluence extension elements in the
// ac: and ri: namespaces. It is parsed as HTML, so extension element
// names arrive lowercased with their prefixes intact, and CDATA
// sections arrive as comment nodes carrying the raw text.
package goquery

import (
	stdhtml "html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/confsift/confsift"
	"golang.org/x/net/html"
)

var _ confsift.Converter = (*Converter)(nil)

// handlerFunc renders one element node. listLevel is the current list
// nesting depth, used for indentation.
type handlerFunc func(c *Converter, n *html.Node, listLevel int) string

// Converter converts Confluence storage-format XHTML to markdown. The
// element dispatch table and macro registry are fixed at construction,
// so a single Converter is safe for concurrent use.
type Converter struct {
	handlers map[string]handlerFunc
	macros   map[string]macroFunc
}

// NewConverter returns a Converter with the full set of element
// handlers and macro renderers registered.
func NewConverter() *Converter {
	c := &Converter{}
	c.handlers = map[string]handlerFunc{
		"script":         suppress,
		"style":          suppress,
		"ac:placeholder": suppress,

		"span":             (*Converter).span,
		"ac:task-list":     (*Converter).taskList,
		"ac:adf-extension": (*Converter).adfExtension,

		"ac:structured-macro": (*Converter).structuredMacro,
		"ac:macro":            (*Converter).structuredMacro,

		"ac:emoticon": (*Converter).emoticon,
		"ac:link":     (*Converter).userLink,
		"ac:image":    (*Converter).attachedImage,
		"img":         (*Converter).image,
		"a":           (*Converter).anchor,

		"ul": (*Converter).listBlock,
		"ol": (*Converter).listBlock,

		"h1": (*Converter).heading,
		"h2": (*Converter).heading,
		"h3": (*Converter).heading,
		"h4": (*Converter).heading,
		"h5": (*Converter).heading,
		"h6": (*Converter).heading,

		"pre":  (*Converter).codeBlock,
		"code": (*Converter).codeBlock,

		"table": (*Converter).table,

		"p":       (*Converter).paragraph,
		"div":     (*Converter).paragraph,
		"section": (*Converter).paragraph,

		"strong": (*Converter).bold,
		"b":      (*Converter).bold,
		"em":     (*Converter).italic,
		"i":      (*Converter).italic,
	}
	c.macros = newMacroRegistry()
	return c
}

var (
	blankLinesRE  = regexp.MustCompile(`\n\s*\n\s*\n+`)
	allSpaceRE    = regexp.MustCompile(`\s+`)
	horizSpaceRE  = regexp.MustCompile(`[ \t]+`)
	doubleBlankRE = regexp.MustCompile(`\n\s*\n+`)
)

// Convert parses a storage-format body and renders it as markdown.
// Conversion is total: parse failures are the only error path, and an
// empty body yields "".
func (c *Converter) Convert(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", confsift.Errorf(confsift.EINVALID, "Cannot parse page body: %v.", err)
	}

	sel := doc.Find("body")
	if len(sel.Nodes) == 0 {
		return "", nil
	}

	var parts []string
	for n := sel.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if p := c.node(n, 0); strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return postprocess(strings.Join(parts, "\n")), nil
}

// postprocess collapses runs of blank lines and strips trailing
// horizontal whitespace from lines that do not precede a table row.
func postprocess(md string) string {
	md = blankLinesRE.ReplaceAllString(md, "\n\n")

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}
		if !strings.HasPrefix(next, "|") {
			lines[i] = strings.TrimRight(line, " \t")
		}
	}
	md = strings.Join(lines, "\n")

	return strings.TrimSpace(md) + "\n"
}

// node renders any node. Text passes through cleaned; elements
// dispatch through the handler table; everything unregistered degrades
// to the concatenated rendering of its children.
func (c *Converter) node(n *html.Node, listLevel int) string {
	switch n.Type {
	case html.TextNode:
		return cleanWhitespace(n.Data)
	case html.CommentNode:
		// CDATA sections surface as comments; their payload is text.
		if data, ok := cdataText(n); ok {
			return cleanWhitespace(data)
		}
		return ""
	case html.ElementNode:
		if h, ok := c.handlers[n.Data]; ok {
			return h(c, n, listLevel)
		}
		return c.children(n, listLevel)
	default:
		return ""
	}
}

// children renders all child nodes and joins the non-empty parts with
// a single space.
func (c *Converter) children(n *html.Node, listLevel int) string {
	var parts []string
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if p := c.node(child, listLevel); p != "" {
			parts = append(parts, p)
		}
	}
	return cleanWhitespace(strings.Join(parts, " "))
}

func suppress(c *Converter, n *html.Node, listLevel int) string { return "" }

// span renders like any container unless it is a Confluence
// placeholder span, which carries instructional text never meant for
// readers.
func (c *Converter) span(n *html.Node, listLevel int) string {
	class := attr(n, "class")
	if strings.Contains(class, "text-placeholder") || strings.Contains(class, "placeholder-inline-tasks") {
		return ""
	}
	return c.children(n, listLevel)
}

func (c *Converter) paragraph(n *html.Node, listLevel int) string {
	inner := cleanWhitespace(c.children(n, listLevel))
	if inner == "" {
		return ""
	}
	return "\n" + inner + "\n\n"
}

func (c *Converter) heading(n *html.Node, listLevel int) string {
	level := int(n.Data[1] - '0')
	text := cleanWhitespace(collectText(n, " "))
	if text == "" {
		return ""
	}
	return "\n" + strings.Repeat("#", level) + " " + text + "\n\n"
}

func (c *Converter) bold(n *html.Node, listLevel int) string {
	return "**" + cleanWhitespace(collectText(n, " ")) + "**"
}

func (c *Converter) italic(n *html.Node, listLevel int) string {
	return "*" + cleanWhitespace(collectText(n, " ")) + "*"
}

// codeBlock renders pre and code elements as fenced blocks with the
// body text taken verbatim.
func (c *Converter) codeBlock(n *html.Node, listLevel int) string {
	text := strings.TrimRight(rawText(n), " \t\n\r")
	return "\n```\n" + text + "\n```\n"
}

func (c *Converter) anchor(n *html.Node, listLevel int) string {
	href := strings.TrimSpace(attr(n, "href"))
	text := cleanWhitespace(collectText(n, " "))
	if strings.HasPrefix(href, "mailto:") {
		return "[" + text + "](" + href + ")"
	}
	if href != "" {
		if text == "" {
			text = href
		}
		return "[" + text + "](" + href + ")"
	}
	return text
}

func (c *Converter) image(n *html.Node, listLevel int) string {
	src := strings.TrimSpace(attr(n, "src"))
	if src == "" {
		src = strings.TrimSpace(attr(n, "data-src"))
	}
	alt := cleanWhitespace(attr(n, "alt"))
	if src != "" {
		return "![" + alt + "](" + src + ")"
	}
	return alt
}

// attachedImage renders ac:image elements, whose source is an
// ri:attachment filename and whose caption lives in a plain-text body.
func (c *Converter) attachedImage(n *html.Node, listLevel int) string {
	src := ""
	if att := findFirst(n, "ri:attachment"); att != nil {
		src = strings.TrimSpace(attr(att, "ri:filename"))
	}
	alt := ""
	if cap := findFirst(n, "ac:plain-text-body"); cap != nil {
		alt = cleanWhitespace(collectText(cap, " "))
	}
	if src != "" {
		return "![" + alt + "](" + src + ")"
	}
	if alt != "" {
		return alt
	}
	return "[Image]"
}

// emoji shortnames Confluence commonly stores, mapped to the rendered
// character. Anything else degrades to :shortname:.
var emojiNames = map[string]string{
	"clipboard":          "📋",
	"thought_balloon":    "💭",
	"white_check_mark":   "✅",
	"blue_star":          "⭐",
	"warning":            "⚠️",
	"information_source": "ℹ️",
	"check_mark_button":  "✅",
}

func (c *Converter) emoticon(n *html.Node, listLevel int) string {
	key := attr(n, "ac:emoji-shortname")
	if key == "" {
		key = attr(n, "ac:name")
	}
	key = strings.ReplaceAll(strings.Trim(key, ":"), "-", "_")

	rendered := ""
	if key != "" {
		if emoji, ok := emojiNames[key]; ok {
			rendered = emoji
		} else {
			rendered = ":" + key + ":"
		}
	}

	// Self-closing emoticon tags are not closed by the HTML parser, so
	// following siblings can land here as children. Render them too.
	trailing := c.children(n, listLevel)

	switch {
	case rendered != "" && trailing != "":
		return rendered + " " + trailing
	case rendered != "":
		return rendered
	default:
		return trailing
	}
}

// userLink renders ac:link elements. User references become [~account]
// mentions; anything else degrades to the link text.
func (c *Converter) userLink(n *html.Node, listLevel int) string {
	users := findAll(n, "ri:user")
	if len(users) == 0 {
		return cleanWhitespace(collectText(n, " "))
	}
	var mentions []string
	for _, u := range users {
		account := attr(u, "ri:account-id")
		if account == "" {
			account = attr(u, "username")
		}
		if account == "" {
			account = attr(u, "ri:username")
		}
		if account == "" {
			account = attr(u, "acct")
		}
		if account == "" {
			account = cleanWhitespace(collectText(u, " "))
		}
		if account == "" {
			continue
		}
		mentions = append(mentions, "[~"+strings.ReplaceAll(account, "@", "")+"]")
	}
	if len(mentions) == 0 {
		return cleanWhitespace(collectText(n, " "))
	}
	return strings.Join(mentions, ", ")
}

// taskList renders inline ac:task-list elements as markdown task
// items. Tasks whose body is placeholder-only are skipped.
func (c *Converter) taskList(n *html.Node, listLevel int) string {
	var lines []string
	for _, task := range findAll(n, "ac:task") {
		status := ""
		if s := findFirst(task, "ac:task-status"); s != nil {
			status = strings.ToLower(strings.TrimSpace(collectText(s, " ")))
		}
		text := ""
		if body := findFirst(task, "ac:task-body"); body != nil {
			text = cleanWhitespace(collectTextExcluding(body, " ", isPlaceholderNode))
		}
		if text == "" {
			continue
		}
		mark := " "
		if status == "complete" {
			mark = "x"
		}
		lines = append(lines, "- ["+mark+"] "+text)
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// adfExtension flattens Atlassian Document Format islands to a short
// bracketed preview of their visible text.
func (c *Converter) adfExtension(n *html.Node, listLevel int) string {
	text := cleanWhitespace(collectTextExcluding(n, " ", func(node *html.Node) bool {
		return isPlaceholderNode(node) || node.Data == "ac:adf-attribute"
	}))
	if text == "" {
		return ""
	}
	return "[ADF-CONTENT: " + truncateRunes(text, 50) + "...]"
}

func isPlaceholderNode(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if n.Data == "ac:placeholder" {
		return true
	}
	if n.Data == "span" {
		class := attr(n, "class")
		return strings.Contains(class, "text-placeholder") || strings.Contains(class, "placeholder-inline-tasks")
	}
	return false
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// cleanWhitespace normalizes text for inline use: non-breaking spaces
// become regular spaces, zero-width spaces vanish, entities are
// unescaped, and all interior whitespace collapses to single spaces.
func cleanWhitespace(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "​", "")
	s = stdhtml.UnescapeString(s)
	return strings.TrimSpace(allSpaceRE.ReplaceAllString(s, " "))
}

// cleanWhitespaceKeepNewlines is the block-level variant: horizontal
// runs collapse but line structure survives, with blank-line runs
// reduced to one blank line.
func cleanWhitespaceKeepNewlines(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "​", "")
	s = stdhtml.UnescapeString(s)
	s = horizSpaceRE.ReplaceAllString(s, " ")
	s = doubleBlankRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// escapePipe escapes pipe characters so cell text cannot break table
// rows.
func escapePipe(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// cdataText extracts the payload of a CDATA section that the HTML
// parser surfaced as a comment node.
func cdataText(n *html.Node) (string, bool) {
	if n.Type != html.CommentNode {
		return "", false
	}
	if strings.HasPrefix(n.Data, "[CDATA[") {
		return strings.TrimSuffix(strings.TrimPrefix(n.Data, "[CDATA["), "]]"), true
	}
	return "", false
}

// findFirst returns the first descendant element with the given tag
// name, depth first.
func findFirst(n *html.Node, name string) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == name {
			return child
		}
		if found := findFirst(child, name); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns all descendant elements with the given tag name in
// document order.
func findAll(n *html.Node, name string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode && child.Data == name {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(n)
	return out
}

// childElements returns the direct child elements with the given tag
// name.
func childElements(n *html.Node, name string) []*html.Node {
	var out []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == name {
			out = append(out, child)
		}
	}
	return out
}

// collectText joins the stripped text chunks of a subtree with sep,
// skipping empty chunks. CDATA payloads count as text.
func collectText(n *html.Node, sep string) string {
	return collectTextExcluding(n, sep, nil)
}

// collectTextExcluding is collectText with a subtree skip predicate.
func collectTextExcluding(n *html.Node, sep string, skip func(*html.Node) bool) string {
	var chunks []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if skip != nil && skip(node) {
			return
		}
		switch node.Type {
		case html.TextNode:
			if t := strings.TrimSpace(node.Data); t != "" {
				chunks = append(chunks, t)
			}
		case html.CommentNode:
			if data, ok := cdataText(node); ok {
				if t := strings.TrimSpace(data); t != "" {
					chunks = append(chunks, t)
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(chunks, sep)
}

// rawText concatenates all text in a subtree without any whitespace
// normalization. Used for code bodies.
func rawText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			sb.WriteString(node.Data)
		case html.CommentNode:
			if data, ok := cdataText(node); ok {
				sb.WriteString(data)
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}
