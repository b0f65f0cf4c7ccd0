package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConverter_Tables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "key value table gets separator after first row",
			body: `<table><tbody>` +
				`<tr><td>Owner</td><td>Platform team</td></tr>` +
				`<tr><td>Status</td><td>Active</td></tr>` +
				`</tbody></table>`,
			want: "| Owner | Platform team |\n| --- | --- |\n| Status | Active |\n",
		},
		{
			name: "header row from th cells",
			body: `<table>` +
				`<tr><th>Name</th><th>Role</th><th>Team</th></tr>` +
				`<tr><td>Alice</td><td>Engineer</td><td>Platform</td></tr>` +
				`</table>`,
			want: "| Name | Role | Team |\n| --- | --- | --- |\n| Alice | Engineer | Platform |\n",
		},
		{
			name: "colspan expands to empty cells",
			body: `<table>` +
				`<tr><th>A</th><th>B</th><th>C</th></tr>` +
				`<tr><td colspan="2">X</td><td>Y</td></tr>` +
				`</table>`,
			want: "| A | B | C |\n| --- | --- | --- |\n| X |  | Y |\n",
		},
		{
			name: "caption renders above table",
			body: `<table><caption>Metrics</caption>` +
				`<tr><th>A</th><th>B</th><th>C</th></tr>` +
				`<tr><td>1</td><td>2</td><td>3</td></tr>` +
				`</table>`,
			want: "**Metrics**\n\n| A | B | C |\n| --- | --- | --- |\n| 1 | 2 | 3 |\n",
		},
		{
			name: "headerless table gets leading separator",
			body: `<table>` +
				`<tr><td>a</td><td>b</td><td>c</td></tr>` +
				`<tr><td>d</td><td>e</td><td>f</td></tr>` +
				`</table>`,
			want: "| --- | --- | --- |\n| a | b | c |\n| d | e | f |\n",
		},
		{
			name: "pipes in cells escaped",
			body: `<table>` +
				`<tr><td>a|b</td><td>c</td><td>d</td></tr>` +
				`<tr><td>e</td><td>f</td><td>g</td></tr>` +
				`</table>`,
			want: "| --- | --- | --- |\n| a\\|b | c | d |\n| e | f | g |\n",
		},
		{
			name: "time element collapses to date",
			body: `<table>` +
				`<tr><td>Updated</td><td><time datetime="2023-01-15T10:30:00Z"></time></td></tr>` +
				`<tr><td>Reviewed</td><td><time datetime="2023-02-01"></time></td></tr>` +
				`</table>`,
			want: "| Updated | 2023-01-15 |\n| --- | --- |\n| Reviewed | 2023-02-01 |\n",
		},
		{
			name: "textual date extracted from cell",
			body: `<table>` +
				`<tr><td>Due</td><td>Due by Jan 15, 2023 at noon</td></tr>` +
				`<tr><td>Done</td><td>n/a</td></tr>` +
				`</table>`,
			want: "| Due | Jan 15, 2023 |\n| --- | --- |\n| Done | n/a |\n",
		},
		{
			name: "ragged rows padded",
			body: `<table>` +
				`<tr><th>A</th><th>B</th><th>C</th></tr>` +
				`<tr><td>1</td></tr>` +
				`</table>`,
			want: "| A | B | C |\n| --- | --- | --- |\n| 1 |  |  |\n",
		},
		{
			name: "empty table renders nothing",
			body: `<table></table>`,
			want: "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, convert(t, tt.body))
		})
	}
}
