package labelstudio_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/confsift/confsift"
	"github.com/confsift/confsift/labelstudio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededCache() *confsift.RecordCache {
	cache := confsift.NewRecordCache(nil)
	cache.Put(&confsift.Record{
		ID:         "9",
		Title:      "Release Plan",
		URL:        "https://wiki.example.com/pages/9/Release+Plan",
		Space:      "ENG",
		Annotation: "no",
	})
	return cache
}

func TestExporter_Row(t *testing.T) {
	t.Parallel()

	t.Run("matched task merges record fields", func(t *testing.T) {
		t.Parallel()

		exporter := labelstudio.NewExporter(seededCache())
		task := &labelstudio.Task{
			ID:   42,
			Data: labelstudio.TaskData{Text: `<a href="https://wiki.example.com/pages/9/Release+Plan">page</a>`},
			Annotations: []*labelstudio.Annotation{
				{Result: []*labelstudio.AnnotationResult{
					{FromName: "gibberish", Value: labelstudio.AnnotationValue{Choices: []string{"no"}}},
				}},
			},
		}

		row, err := exporter.Row(context.Background(), task)
		require.NoError(t, err)

		assert.Equal(t, labelstudio.LookupFound, row["lookup_status"])
		assert.Equal(t, int64(42), row["label_studio_task_id"])
		assert.Equal(t, "9", row["id"])
		assert.Equal(t, "Release Plan", row["title"])
		assert.Equal(t, "ENG", row["space"])
		assert.Equal(t, 1, row["annotator_count"])
		assert.JSONEq(t, `{"gibberish": "no"}`, row["annotator1"].(string))
	})

	t.Run("unmatched URL", func(t *testing.T) {
		t.Parallel()

		exporter := labelstudio.NewExporter(seededCache())
		task := &labelstudio.Task{
			ID:   43,
			Data: labelstudio.TaskData{URL: "https://wiki.example.com/pages/404/Missing"},
		}

		row, err := exporter.Row(context.Background(), task)
		require.NoError(t, err)

		assert.Equal(t, labelstudio.LookupNotFound, row["lookup_status"])
		assert.Equal(t, "https://wiki.example.com/pages/404/Missing", row["url"])
		assert.Equal(t, 0, row["annotator_count"])
	})

	t.Run("task without URL", func(t *testing.T) {
		t.Parallel()

		exporter := labelstudio.NewExporter(seededCache())
		task := &labelstudio.Task{ID: 44, Data: labelstudio.TaskData{Text: "no link here"}}

		row, err := exporter.Row(context.Background(), task)
		require.NoError(t, err)
		assert.Equal(t, labelstudio.LookupNoURLInTask, row["lookup_status"])
	})

	t.Run("annotator without results gets empty column", func(t *testing.T) {
		t.Parallel()

		exporter := labelstudio.NewExporter(seededCache())
		task := &labelstudio.Task{
			ID:          45,
			Data:        labelstudio.TaskData{URL: "https://wiki.example.com/pages/9/Release+Plan"},
			Annotations: []*labelstudio.Annotation{{}},
		}

		row, err := exporter.Row(context.Background(), task)
		require.NoError(t, err)
		assert.Equal(t, "", row["annotator1"])
	})
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	exporter := labelstudio.NewExporter(seededCache())
	tasks := []*labelstudio.Task{
		{ID: 1, Data: labelstudio.TaskData{URL: "https://wiki.example.com/pages/9/Release+Plan"}},
		{ID: 2, Data: labelstudio.TaskData{URL: "https://wiki.example.com/pages/404"}},
	}

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(context.Background(), &buf, tasks))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, labelstudio.LookupFound, first["lookup_status"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, labelstudio.LookupNotFound, second["lookup_status"])
}
