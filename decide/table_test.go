package decide_test

import (
	"testing"

	"github.com/confsift/confsift"
	"github.com/confsift/confsift/analyze"
	"github.com/confsift/confsift/decide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideTable(t *testing.T) {
	t.Parallel()

	t.Run("nil analysis is gibberish", func(t *testing.T) {
		t.Parallel()
		d := decide.DecideTable(nil)
		assert.Equal(t, confsift.VerdictGibberish, d.Verdict)
		assert.Equal(t, "No analysis data", d.Reason)
	})

	t.Run("link outranks everything", func(t *testing.T) {
		t.Parallel()
		a := analyze.Table(confsift.TableGrid{
			{"Docs", "Link"},
			{"Guide", "See https://example.com/guide for details"},
		})
		d := decide.DecideTable(a)

		assert.Equal(t, confsift.VerdictUseful, d.Verdict)
		assert.Equal(t, "1 link(s) found (highest priority)", d.Reason)
		assert.Equal(t, 1, d.Links)
		assert.Contains(t, d.UsefulIndicators, "1 link(s)")
		assert.Contains(t, d.UsefulIndicators, "8 meaningful words (excl. headings & placeholders)")
		require.NotEmpty(t, d.Log)
		assert.Equal(t, "Priority Content: 1 link(s) found (highest priority)", d.Log[0])
	})

	t.Run("file reference without links", func(t *testing.T) {
		t.Parallel()
		a := analyze.Table(confsift.TableGrid{
			{"Doc", "File"},
			{"Spec", "design.pdf"},
		})
		d := decide.DecideTable(a)

		assert.Equal(t, confsift.VerdictUseful, d.Verdict)
		assert.Equal(t, "1 file(s) found (high priority)", d.Reason)
	})

	t.Run("rich data cell is useful", func(t *testing.T) {
		t.Parallel()
		a := analyze.Table(confsift.TableGrid{
			{"ID", "Notes"},
			{"1", "the quarterly review meeting covered roadmap planning decisions"},
		})
		d := decide.DecideTable(a)

		assert.Equal(t, confsift.VerdictUseful, d.Verdict)
		assert.Equal(t, "Found cell with 8 meaningful words (>5 threshold)", d.Reason)
	})

	t.Run("only header row filled is gibberish", func(t *testing.T) {
		t.Parallel()
		a := analyze.Table(confsift.TableGrid{
			{"Name", "Status"},
			{"", ""},
			{"", ""},
		})
		d := decide.DecideTable(a)

		assert.Equal(t, confsift.VerdictGibberish, d.Verdict)
		assert.Equal(t, "Only header row filled (rest empty)", d.Reason)
		assert.Contains(t, d.Log, "First Row Only Filled: Only header row filled, 2 data rows empty")
	})

	t.Run("only first column filled is gibberish", func(t *testing.T) {
		t.Parallel()
		a := analyze.Table(confsift.TableGrid{
			{"Name", "Status"},
			{"Alice", "Done"},
		})
		d := decide.DecideTable(a)

		assert.Equal(t, confsift.VerdictGibberish, d.Verdict)
		assert.Equal(t, "Only first column filled", d.Reason)
		assert.Contains(t, d.Log, "First Column Only Filled: Only 1st column filled, 1 other columns empty")
		assert.True(t, d.SmallKeyValue)
	})

	t.Run("header heavy table is gibberish", func(t *testing.T) {
		t.Parallel()
		a := analyze.Table(confsift.TableGrid{
			{
				"project delivery milestone schedule overview section",
				"quarterly budget allocation review committee notes",
				"engineering operations incident response planning guide",
			},
			{"alpha", "beta", ""},
		})
		require.NotNil(t, a.Heading)
		require.Equal(t, confsift.HeadingNone, a.Heading.Type)

		d := decide.DecideTable(a)
		assert.Equal(t, confsift.VerdictGibberish, d.Verdict)
		assert.Equal(t, "Header has 90.0% of content (18/20 words)", d.Reason)
	})

	t.Run("single filled row anywhere is gibberish", func(t *testing.T) {
		t.Parallel()
		a := analyze.Table(confsift.TableGrid{
			{"Col", "Val", "Note"},
			{"", "", ""},
			{"", "stakeholder alignment", ""},
			{"", "", ""},
		})
		d := decide.DecideTable(a)

		assert.Equal(t, confsift.VerdictGibberish, d.Verdict)
		assert.Equal(t, "Only 1 row filled (row 2), 2 rows empty", d.Reason)
	})

	t.Run("meaningful word threshold is useful", func(t *testing.T) {
		t.Parallel()
		a := analyze.Table(confsift.TableGrid{
			{"Item", "Owner"},
			{"server migration", "completed fully"},
			{"database upgrade", "awaiting signoff"},
		})
		d := decide.DecideTable(a)

		assert.Equal(t, confsift.VerdictUseful, d.Verdict)
		assert.Equal(t, "8 meaningful words found (≥3 threshold)", d.Reason)
		assert.Contains(t, d.Log, "Meaningful Words: 8")
	})

	t.Run("sparse ambiguous content", func(t *testing.T) {
		t.Parallel()
		a := analyze.Table(confsift.TableGrid{
			{"Item", "Owner", "Status"},
			{"apple", "", ""},
			{"", "grape", ""},
		})
		d := decide.DecideTable(a)

		assert.Equal(t, confsift.VerdictCantDecide, d.Verdict)
		assert.Equal(t, "Ambiguous: 2 words (below threshold) but has some content", d.Reason)
		assert.Empty(t, d.UsefulIndicators)
	})

	t.Run("placeholder only rows read as empty", func(t *testing.T) {
		t.Parallel()
		a := analyze.Table(confsift.TableGrid{
			{"Task", "State", "Owner"},
			{"1", "tbd", "n/a"},
			{"2", "todo", "pending"},
		})
		d := decide.DecideTable(a)

		assert.Equal(t, confsift.VerdictGibberish, d.Verdict)
		assert.Equal(t, "Only header row filled (rest empty)", d.Reason)
		assert.Equal(t, 0, d.MeaningfulWords)
		assert.Equal(t, 7, d.PlaceholderWords)
	})

	t.Run("header only table has no meaningful content", func(t *testing.T) {
		t.Parallel()
		a := analyze.Table(confsift.TableGrid{
			{"Name", "Status", "Owner"},
		})
		d := decide.DecideTable(a)

		assert.Equal(t, confsift.VerdictGibberish, d.Verdict)
		assert.Equal(t, "No meaningful content found", d.Reason)
		assert.Equal(t, "0/0 cells (0.0%) excluding headers", d.FillInfo)
	})

	t.Run("fill info excludes header cells", func(t *testing.T) {
		t.Parallel()
		a := analyze.Table(confsift.TableGrid{
			{"Item", "Owner"},
			{"server migration", "completed fully"},
			{"database upgrade", "awaiting signoff"},
		})
		d := decide.DecideTable(a)
		assert.Equal(t, "4/4 cells (100.0%) excluding headers", d.FillInfo)
		assert.InDelta(t, 100.0, d.FillPercentage, 0.001)
	})
}

func TestDecideTable_LinkNeverDowngrades(t *testing.T) {
	t.Parallel()

	grids := []confsift.TableGrid{
		{{"Name", "Status"}, {"Alice", "Done"}},
		{
			{"Item", "Owner"},
			{"server migration", "completed fully"},
			{"database upgrade", "awaiting signoff"},
		},
	}

	for _, grid := range grids {
		linked := make(confsift.TableGrid, len(grid))
		for i, row := range grid {
			linked[i] = append([]string(nil), row...)
		}
		last := linked[len(linked)-1]
		last[len(last)-1] += " https://example.com/ref"

		// A link wins by rule order whatever the rest of the table says.
		d := decide.DecideTable(analyze.Table(linked))
		assert.Equal(t, confsift.VerdictUseful, d.Verdict)
	}
}
