package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// macroParam is one ac:parameter of a macro. Parameters keep document
// order so rendered parameter lists are deterministic.
type macroParam struct {
	Name  string
	Value string
}

type paramList []macroParam

func (p paramList) Get(names ...string) string {
	for _, name := range names {
		for _, param := range p {
			if param.Name == name && param.Value != "" {
				return param.Value
			}
		}
	}
	return ""
}

// macroBody is the body of a macro: either the child nodes of a
// rich-text body (or of the macro itself) or the raw text of a
// plain-text body.
type macroBody struct {
	Nodes   []*html.Node
	Plain   string
	IsPlain bool
}

// text returns the body rendered as cleaned inline text.
func (b macroBody) text() string {
	if b.IsPlain {
		return cleanWhitespace(b.Plain)
	}
	var chunks []string
	for _, n := range b.Nodes {
		if t := collectText(n, " "); t != "" {
			chunks = append(chunks, t)
		}
	}
	return cleanWhitespace(strings.Join(chunks, " "))
}

// raw returns the body text without whitespace normalization.
func (b macroBody) raw() string {
	if b.IsPlain {
		return b.Plain
	}
	var sb strings.Builder
	for _, n := range b.Nodes {
		sb.WriteString(rawText(n))
	}
	return sb.String()
}

// macroArgs is everything a renderer gets: the resolved macro name,
// ordered parameters, the body, and any ac:-namespaced element
// attributes beyond the name.
type macroArgs struct {
	Name     string
	Params   paramList
	Body     macroBody
	Metadata []macroParam
}

type macroFunc func(c *Converter, m macroArgs) string

// newMacroRegistry builds the macro dispatch table, registering each
// renderer under every macro name it serves.
func newMacroRegistry() map[string]macroFunc {
	reg := map[string]macroFunc{}
	register := func(fn macroFunc, names ...string) {
		for _, name := range names {
			reg[name] = fn
		}
	}

	register(renderUIMacro, "info", "note", "tip", "warning", "success", "error")
	register(renderCodeMacro, "code", "code-block")
	register(renderTOCMacro, "toc", "table-of-contents")
	register(renderExpandMacro, "expand", "details")
	register(renderStatusMacro, "status")
	register(renderViewFileMacro, "viewpdf", "view-file", "viewfile")
	register(renderIncludeMacro, "include", "include-page", "excerpt-include", "excerpt")
	register(renderJiraMacro, "jira", "jira-issues", "jira-issue")
	register(renderTaskListMacro, "task-list", "tasklist")
	register(renderPanelMacro, "panel")
	register(renderChildrenMacro, "children")
	register(renderContentByLabelMacro, "content-by-label")
	register(renderIndexMacro, "index")
	register(renderRoadmapMacro, "roadmap", "roadmap-planner")

	return reg
}

// structuredMacro dispatches ac:structured-macro and ac:macro
// elements through the registry; unregistered macros degrade to a
// bracketed placeholder.
func (c *Converter) structuredMacro(n *html.Node, listLevel int) string {
	m := extractMacro(n)
	if m.Name == "" {
		return ""
	}
	if fn, ok := c.macros[m.Name]; ok {
		return fn(c, m)
	}
	return renderUnknownMacro(c, m)
}

func extractMacro(n *html.Node) macroArgs {
	name := attr(n, "ac:name")
	if name == "" {
		name = attr(n, "name")
	}
	if name == "" {
		name = attr(n, "ac:macro-name")
	}

	var params paramList
	for _, p := range findAll(n, "ac:parameter") {
		pname := attr(p, "ac:name")
		if pname == "" {
			pname = attr(p, "name")
		}
		params = append(params, macroParam{
			Name:  pname,
			Value: cleanWhitespace(collectText(p, " ")),
		})
	}

	var metadata []macroParam
	for _, a := range n.Attr {
		if strings.HasPrefix(a.Key, "ac:") && a.Key != "ac:name" && a.Key != "ac:macro-name" {
			metadata = append(metadata, macroParam{Name: a.Key, Value: a.Val})
		}
	}

	return macroArgs{
		Name:     strings.ToLower(strings.TrimSpace(name)),
		Params:   params,
		Body:     extractMacroBody(n),
		Metadata: metadata,
	}
}

func extractMacroBody(n *html.Node) macroBody {
	if rich := findFirst(n, "ac:rich-text-body"); rich != nil {
		var nodes []*html.Node
		for child := rich.FirstChild; child != nil; child = child.NextSibling {
			nodes = append(nodes, child)
		}
		return macroBody{Nodes: nodes}
	}
	if plain := findFirst(n, "ac:plain-text-body"); plain != nil {
		return macroBody{Plain: rawText(plain), IsPlain: true}
	}
	var nodes []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		nodes = append(nodes, child)
	}
	return macroBody{Nodes: nodes}
}

// renderBodyBlocks converts body nodes one by one and joins the
// non-blank renderings with newlines.
func renderBodyBlocks(c *Converter, b macroBody) string {
	if b.IsPlain {
		return cleanWhitespaceKeepNewlines(b.Plain)
	}
	var parts []string
	for _, n := range b.Nodes {
		if p := c.node(n, 0); strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// UI chrome macros carry no reader content.
func renderUIMacro(c *Converter, m macroArgs) string { return "" }

func renderCodeMacro(c *Converter, m macroArgs) string {
	lang := m.Params.Get("language", "lang")
	code := strings.TrimRight(m.Body.raw(), " \t\n\r")
	return "\n```" + lang + "\n" + code + "\n```\n"
}

func renderTOCMacro(c *Converter, m macroArgs) string {
	return "\n<!-- TOC omitted: Table of Contents macro -->\n\n"
}

func renderExpandMacro(c *Converter, m macroArgs) string {
	title := cleanWhitespace(m.Params.Get("title", "label"))
	content := renderBodyBlocks(c, m.Body)
	if title != "" {
		return "\n<details>\n<summary>" + title + "</summary>\n\n" + content + "\n\n</details>\n\n"
	}
	return "\n<details>\n\n" + content + "\n\n</details>\n\n"
}

func renderStatusMacro(c *Converter, m macroArgs) string {
	title := m.Params.Get("title")
	if title == "" {
		title = m.Body.text()
	}
	if title != "" {
		return "[STATUS: " + title + "]"
	}
	return "[STATUS]"
}

func renderViewFileMacro(c *Converter, m macroArgs) string {
	name := m.Params.Get("name", "file")
	if name != "" {
		return "[PDF: " + name + "]"
	}
	for _, n := range m.Body.Nodes {
		att := n
		if !(n.Type == html.ElementNode && n.Data == "ri:attachment") {
			att = findFirst(n, "ri:attachment")
		}
		if att != nil {
			if filename := attr(att, "ri:filename"); filename != "" {
				return "[Attachment: " + filename + "]"
			}
			return "[Attachment]"
		}
	}
	return "[PDF]"
}

func renderIncludeMacro(c *Converter, m macroArgs) string {
	page := m.Params.Get("page", "name", "pageTitle")
	space := m.Params.Get("space", "spaceKey")
	switch {
	case page != "" && space != "":
		return "[INCLUDE-REF: " + page + " (Space: " + space + ")]"
	case page != "":
		return "[INCLUDE-REF: " + page + "]"
	case space != "":
		return "[INCLUDE-REF: Space " + space + "]"
	default:
		return "[INCLUDE-REF]"
	}
}

var jqlProjectRE = regexp.MustCompile(`(?i)project\s*=\s*["']([^"']+)["']`)

func renderJiraMacro(c *Converter, m macroArgs) string {
	server := m.Params.Get("server", "servername")
	if server == "" {
		server = "System Jira"
	}
	jql := m.Params.Get("jqlQuery", "jql", "query")
	project := ""
	if match := jqlProjectRE.FindStringSubmatch(jql); match != nil {
		project = match[1]
	}
	// count=true macros render as a dynamic issue count in Confluence;
	// the count itself is not stored, so a stand-in is used.
	if strings.ToLower(m.Params.Get("count")) == "true" {
		if project != "" {
			return "N issues [JIRA: " + project + "]"
		}
		return "N issues [JIRA: " + server + "]"
	}
	if project != "" {
		return "[JIRA-REF: " + server + " - " + project + "]"
	}
	return "[JIRA-REF: " + server + "]"
}

// renderTaskListMacro renders the task-list macro. Unlike inline task
// lists, empty task bodies render with a stand-in description.
func renderTaskListMacro(c *Converter, m macroArgs) string {
	var lines []string
	for _, n := range m.Body.Nodes {
		tasks := findAll(n, "ac:task")
		if n.Type == html.ElementNode && n.Data == "ac:task" {
			tasks = append([]*html.Node{n}, tasks...)
		}
		for _, task := range tasks {
			status := ""
			if s := findFirst(task, "ac:task-status"); s != nil {
				status = strings.ToLower(strings.TrimSpace(collectText(s, " ")))
			}
			text := ""
			if body := findFirst(task, "ac:task-body"); body != nil {
				text = cleanWhitespace(collectText(body, " "))
			}
			if text == "" {
				text = "(no description)"
			}
			mark := " "
			if status == "complete" {
				mark = "x"
			}
			lines = append(lines, "- ["+mark+"] "+text)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func renderPanelMacro(c *Converter, m macroArgs) string {
	colour := m.Params.Get("bgColor", "color")
	content := renderBodyBlocks(c, m.Body)
	quoted := strings.ReplaceAll(content, "\n", "\n> ")
	return "\n> **Panel (" + colour + "):**\n>\n> " + quoted + "\n"
}

func renderChildrenMacro(c *Converter, m macroArgs) string {
	return "[PAGE-REF: Child pages list]"
}

func renderContentByLabelMacro(c *Converter, m macroArgs) string {
	labels := m.Params.Get("labels", "cql")
	if labels != "" {
		return "[PAGE-REF: Pages with labels - " + labels + "]"
	}
	return "[PAGE-REF: Pages by label]"
}

func renderIndexMacro(c *Converter, m macroArgs) string {
	return "[PAGE-REF: Page index]"
}

// renderRoadmapMacro keeps only the short human-readable parameters;
// roadmap macros embed large URL-encoded JSON blobs as parameters.
func renderRoadmapMacro(c *Converter, m macroArgs) string {
	title := m.Params.Get("title", "label")
	if title == "" {
		title = "Roadmap"
	}
	var kept []string
	for _, p := range m.Params {
		if len(p.Value) < 80 && !strings.HasPrefix(p.Value, "%7B") {
			kept = append(kept, p.Name+"="+p.Value)
		}
	}
	return fmt.Sprintf("[MACRO: %s (%s)]", title, strings.Join(kept, ", "))
}

func renderUnknownMacro(c *Converter, m macroArgs) string {
	preview := m.Body.text()

	var params []string
	for _, p := range m.Params {
		params = append(params, p.Name+"="+p.Value)
	}
	paramStr := strings.Join(params, ", ")

	meta := ""
	if len(m.Metadata) > 0 {
		var pairs []string
		for _, p := range m.Metadata {
			pairs = append(pairs, p.Name+"="+p.Value)
		}
		meta = "  <!-- " + strings.Join(pairs, ", ") + " -->"
	}

	if preview != "" {
		return fmt.Sprintf("[MACRO: %s %s -> %s]%s", m.Name, paramStr, preview, meta)
	}
	return fmt.Sprintf("[MACRO: %s %s]%s", m.Name, paramStr, meta)
}
