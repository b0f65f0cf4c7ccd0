package decide_test

import (
	"testing"

	"github.com/confsift/confsift"
	"github.com/confsift/confsift/decide"
	"github.com/stretchr/testify/assert"
)

func TestDecidePage(t *testing.T) {
	t.Parallel()

	t.Run("useful table makes page useful", func(t *testing.T) {
		t.Parallel()
		d := decide.DecidePage(decide.PageSignals{
			UsefulTables:    2,
			GibberishTables: 1,
			TotalTables:     3,
		})

		assert.False(t, d.Gibberish)
		assert.Equal(t, "Useful: 2 useful table(s)", d.Reason)
		assert.Equal(t, []string{"2 useful table(s)"}, d.UsefulIndicators)
	})

	t.Run("enough prose outside tables", func(t *testing.T) {
		t.Parallel()
		d := decide.DecidePage(decide.PageSignals{WordsOutsideTables: 35})

		assert.False(t, d.Gibberish)
		assert.Equal(t, "Useful: 35 words outside tables (excl. headings)", d.Reason)
	})

	t.Run("prose below threshold is not enough", func(t *testing.T) {
		t.Parallel()
		d := decide.DecidePage(decide.PageSignals{WordsOutsideTables: 10})

		assert.True(t, d.Gibberish)
		assert.Equal(t, "No useful content found", d.Reason)
	})

	t.Run("links outside tables", func(t *testing.T) {
		t.Parallel()
		d := decide.DecidePage(decide.PageSignals{
			Document: confsift.ContentScan{Links: 3},
			Tables:   confsift.ContentScan{Links: 1},
		})

		assert.False(t, d.Gibberish)
		assert.Equal(t, 2, d.LinksOutsideTables)
		assert.Equal(t, "Useful: 2 link(s) outside tables", d.Reason)
	})

	t.Run("table counts never go negative outside", func(t *testing.T) {
		t.Parallel()
		d := decide.DecidePage(decide.PageSignals{
			Document: confsift.ContentScan{Links: 1},
			Tables:   confsift.ContentScan{Links: 5},
		})

		assert.True(t, d.Gibberish)
		assert.Equal(t, 0, d.LinksOutsideTables)
	})

	t.Run("indicators join in fixed order", func(t *testing.T) {
		t.Parallel()
		d := decide.DecidePage(decide.PageSignals{
			UsefulTables:       1,
			TotalTables:        1,
			WordsOutsideTables: 40,
			Document:           confsift.ContentScan{Links: 1, Images: 2, Files: 1, Mentions: 1},
		})

		assert.False(t, d.Gibberish)
		assert.Equal(t, "Useful: 1 useful table(s), 40 words outside tables (excl. headings), "+
			"1 link(s) outside tables, 2 image(s) outside tables, "+
			"1 file reference(s) outside tables, 1 user mention(s) outside tables", d.Reason)
	})

	t.Run("empty page is gibberish", func(t *testing.T) {
		t.Parallel()
		d := decide.DecidePage(decide.PageSignals{})

		assert.True(t, d.Gibberish)
		assert.Equal(t, "No useful content found", d.Reason)
		assert.Empty(t, d.UsefulIndicators)
	})
}

func TestMajorityVote(t *testing.T) {
	t.Parallel()

	u := confsift.VerdictUseful
	g := confsift.VerdictGibberish
	cd := confsift.VerdictCantDecide

	tests := []struct {
		name     string
		verdicts []confsift.Verdict
		want     confsift.Verdict
	}{
		{"no tables", nil, g},
		{"tie goes useful", []confsift.Verdict{u, g}, u},
		{"gibberish majority", []confsift.Verdict{g, g, u}, g},
		{"useful majority", []confsift.Verdict{u, u, g}, u},
		{"undecided drags both below half", []confsift.Verdict{u, g, cd}, cd},
		{"all undecided", []confsift.Verdict{cd, cd}, cd},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, decide.MajorityVote(tt.verdicts))
		})
	}
}
