package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConverter_Macros(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "ui macros render as nothing",
			body: `<ac:structured-macro ac:name="info"><ac:rich-text-body><p>Note text</p></ac:rich-text-body></ac:structured-macro>`,
			want: "\n",
		},
		{
			name: "code macro with language",
			body: `<ac:structured-macro ac:name="code">` +
				`<ac:parameter ac:name="language">go</ac:parameter>` +
				`<ac:plain-text-body><![CDATA[fmt.Println("hi")]]></ac:plain-text-body>` +
				`</ac:structured-macro>`,
			want: "```go\nfmt.Println(\"hi\")\n```\n",
		},
		{
			name: "code macro preserves line structure",
			body: `<ac:structured-macro ac:name="code">` +
				"<ac:plain-text-body><![CDATA[a := 1\nb := 2]]></ac:plain-text-body>" +
				`</ac:structured-macro>`,
			want: "```\na := 1\nb := 2\n```\n",
		},
		{
			name: "toc macro",
			body: `<ac:structured-macro ac:name="toc"></ac:structured-macro>`,
			want: "<!-- TOC omitted: Table of Contents macro -->\n",
		},
		{
			name: "expand with title",
			body: `<ac:structured-macro ac:name="expand">` +
				`<ac:parameter ac:name="title">More</ac:parameter>` +
				`<ac:rich-text-body><p>Hidden</p></ac:rich-text-body>` +
				`</ac:structured-macro>`,
			want: "<details>\n<summary>More</summary>\n\nHidden\n\n</details>\n",
		},
		{
			name: "expand without title",
			body: `<ac:structured-macro ac:name="expand">` +
				`<ac:rich-text-body><p>Hidden</p></ac:rich-text-body>` +
				`</ac:structured-macro>`,
			want: "<details>\n\nHidden\n\n</details>\n",
		},
		{
			name: "status with title",
			body: `<ac:structured-macro ac:name="status"><ac:parameter ac:name="title">DRAFT</ac:parameter></ac:structured-macro>`,
			want: "[STATUS: DRAFT]\n",
		},
		{
			name: "status falls back to body text",
			body: `<ac:structured-macro ac:name="status"><ac:parameter ac:name="colour">Green</ac:parameter></ac:structured-macro>`,
			want: "[STATUS: Green]\n",
		},
		{
			name: "viewpdf with name parameter",
			body: `<ac:structured-macro ac:name="viewpdf"><ac:parameter ac:name="name">spec.pdf</ac:parameter></ac:structured-macro>`,
			want: "[PDF: spec.pdf]\n",
		},
		{
			name: "viewpdf with attachment body",
			body: `<ac:structured-macro ac:name="viewpdf">` +
				`<ac:rich-text-body><ri:attachment ri:filename="report.pdf"></ri:attachment></ac:rich-text-body>` +
				`</ac:structured-macro>`,
			want: "[Attachment: report.pdf]\n",
		},
		{
			name: "viewpdf without details",
			body: `<ac:structured-macro ac:name="viewpdf"></ac:structured-macro>`,
			want: "[PDF]\n",
		},
		{
			name: "include with page and space",
			body: `<ac:structured-macro ac:name="include">` +
				`<ac:parameter ac:name="page">Overview</ac:parameter>` +
				`<ac:parameter ac:name="space">ENG</ac:parameter>` +
				`</ac:structured-macro>`,
			want: "[INCLUDE-REF: Overview (Space: ENG)]\n",
		},
		{
			name: "include with page only",
			body: `<ac:structured-macro ac:name="include"><ac:parameter ac:name="page">Overview</ac:parameter></ac:structured-macro>`,
			want: "[INCLUDE-REF: Overview]\n",
		},
		{
			name: "jira count reference",
			body: `<ac:structured-macro ac:name="jira">` +
				`<ac:parameter ac:name="jqlQuery">project = "Platform" and status = open</ac:parameter>` +
				`<ac:parameter ac:name="count">true</ac:parameter>` +
				`</ac:structured-macro>`,
			want: "N issues [JIRA: Platform]\n",
		},
		{
			name: "jira full list reference",
			body: `<ac:structured-macro ac:name="jira">` +
				`<ac:parameter ac:name="jqlQuery">project = 'Platform'</ac:parameter>` +
				`</ac:structured-macro>`,
			want: "[JIRA-REF: System Jira - Platform]\n",
		},
		{
			name: "jira without jql",
			body: `<ac:structured-macro ac:name="jira"></ac:structured-macro>`,
			want: "[JIRA-REF: System Jira]\n",
		},
		{
			name: "task list macro with empty body task",
			body: `<ac:structured-macro ac:name="task-list">` +
				`<ac:task-list>` +
				`<ac:task><ac:task-status>complete</ac:task-status><ac:task-body>Done thing</ac:task-body></ac:task>` +
				`<ac:task><ac:task-status>incomplete</ac:task-status><ac:task-body></ac:task-body></ac:task>` +
				`</ac:task-list>` +
				`</ac:structured-macro>`,
			want: "- [x] Done thing\n- [ ] (no description)\n",
		},
		{
			name: "panel",
			body: `<ac:structured-macro ac:name="panel">` +
				`<ac:parameter ac:name="bgColor">yellow</ac:parameter>` +
				`<ac:rich-text-body><p>Careful now</p></ac:rich-text-body>` +
				`</ac:structured-macro>`,
			want: "> **Panel (yellow):**\n>\n> Careful now\n",
		},
		{
			name: "children macro",
			body: `<ac:structured-macro ac:name="children"></ac:structured-macro>`,
			want: "[PAGE-REF: Child pages list]\n",
		},
		{
			name: "content by label with labels",
			body: `<ac:structured-macro ac:name="content-by-label"><ac:parameter ac:name="labels">howto</ac:parameter></ac:structured-macro>`,
			want: "[PAGE-REF: Pages with labels - howto]\n",
		},
		{
			name: "index macro",
			body: `<ac:structured-macro ac:name="index"></ac:structured-macro>`,
			want: "[PAGE-REF: Page index]\n",
		},
		{
			name: "roadmap drops encoded blob parameters",
			body: `<ac:structured-macro ac:name="roadmap">` +
				`<ac:parameter ac:name="title">Q3 Plan</ac:parameter>` +
				`<ac:parameter ac:name="source">%7B%22timeline%22%3A%7B%22startDate%22%3A%222023-01-01%22%7D%7D</ac:parameter>` +
				`</ac:structured-macro>`,
			want: "[MACRO: Q3 Plan (title=Q3 Plan)]\n",
		},
		{
			name: "unknown macro with params body and metadata",
			body: `<ac:structured-macro ac:name="mystery" ac:macro-id="abc">` +
				`<ac:parameter ac:name="mode">fast</ac:parameter>` +
				`<ac:rich-text-body><p>Preview text</p></ac:rich-text-body>` +
				`</ac:structured-macro>`,
			want: "[MACRO: mystery mode=fast -> Preview text]  <!-- ac:macro-id=abc -->\n",
		},
		{
			name: "unknown macro without body",
			body: `<ac:structured-macro ac:name="mystery"></ac:structured-macro>`,
			want: "[MACRO: mystery ]\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, convert(t, tt.body))
		})
	}
}
