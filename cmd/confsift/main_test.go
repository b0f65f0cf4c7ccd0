package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/confsift/confsift/cmd/confsift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func corpusJSONL() string {
	return `{"id":"101","url":"https://wiki.example.com/pages/101/Release+Plan","title":"Release Plan","body":"` +
		`<p>The quarterly release planning meeting covered the rollout schedule for every regional deployment, including staged migration windows, rollback procedures, monitoring dashboards, escalation contacts, and the follow-up review sessions scheduled with each platform team across all four business units involved.</p>"}` + "\n" +
		`{"id":"102","url":"https://wiki.example.com/pages/102/Empty","title":"Empty","body":"<p>ok</p>"}` + "\n"
}

func TestCmdRun(t *testing.T) {
	t.Parallel()

	t.Run("classifies a corpus", func(t *testing.T) {
		t.Parallel()

		input := writeTempFile(t, "corpus.jsonl", corpusJSONL())

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"run", input}, stdout, stderr)
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, `"url": "https://wiki.example.com/pages/101/Release+Plan"`)
		assert.Contains(t, out, `"decision": "useful"`)
		assert.Contains(t, out, `"decision": "gibberish"`)
		assert.Contains(t, out, `"page_title": "Empty"`)

		assert.Contains(t, stderr.String(), "2 pages, 1 useful, 1 gibberish, 0 errors")
	})

	t.Run("results format attaches is_gibberish", func(t *testing.T) {
		t.Parallel()

		input := writeTempFile(t, "corpus.jsonl", corpusJSONL())
		output := filepath.Join(t.TempDir(), "results.jsonl")

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"run", input, "--format", "results", "-o", output}, stdout, stderr)
		require.NoError(t, err)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"is_gibberish":"no"`)
		assert.Contains(t, string(data), `"is_gibberish":"yes"`)
	})

	t.Run("missing input file", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		err := m.Run(testContext(), []string{"run", filepath.Join(t.TempDir(), "nope.jsonl")}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
	})
}

func TestCmdInspect(t *testing.T) {
	t.Parallel()

	t.Run("reports the decision trace", func(t *testing.T) {
		t.Parallel()

		input := writeTempFile(t, "corpus.jsonl", corpusJSONL())

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"inspect", input, "--id", "101"}, stdout, stderr)
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, "Page:    Release Plan")
		assert.Contains(t, out, "Verdict: USEFUL")
		assert.Contains(t, out, "Reason:")
		assert.Contains(t, out, "Words outside tables:")
	})

	t.Run("requires id or url", func(t *testing.T) {
		t.Parallel()

		input := writeTempFile(t, "corpus.jsonl", corpusJSONL())

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		err := m.Run(testContext(), []string{"inspect", input}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("unknown page", func(t *testing.T) {
		t.Parallel()

		input := writeTempFile(t, "corpus.jsonl", corpusJSONL())

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		err := m.Run(testContext(), []string{"inspect", input, "--id", "999"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
	})
}

func TestCmdEval(t *testing.T) {
	t.Parallel()

	results := `{"url":"https://wiki/a","title":"A","annotation":"yes","result":{"is_gibberish":"yes"}}
{"url":"https://wiki/b","title":"B","annotation":"no","result":{"is_gibberish":"no"}}
{"url":"https://wiki/c","title":"C","annotation":"yes","result":{"is_gibberish":"no"}}
`

	t.Run("prints metrics", func(t *testing.T) {
		t.Parallel()

		input := writeTempFile(t, "results.jsonl", results)

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"eval", input}, stdout, stderr)
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, "Samples: 3 (2 gibberish, 1 useful)")
		assert.Contains(t, out, "Accuracy: 0.6667")
		assert.Contains(t, out, "Gibberish (yes)")
		assert.Contains(t, out, "Confusion matrix")
	})

	t.Run("saves mispredictions", func(t *testing.T) {
		t.Parallel()

		input := writeTempFile(t, "results.jsonl", results)
		mispred := filepath.Join(t.TempDir(), "mispredictions.json")

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"eval", input, "-m", mispred}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved 1 mispredictions")

		data, err := os.ReadFile(mispred)
		require.NoError(t, err)
		assert.Contains(t, string(data), "False Negative (Gibberish marked as Useful)")
	})
}

func TestCmdIngest(t *testing.T) {
	t.Parallel()

	input := writeTempFile(t, "corpus.jsonl", corpusJSONL()+
		`{"id":"103","url":"https://wiki.example.com/pages/101/Release+Plan","title":"Dup","body":"<p>x</p>"}`+"\n")

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "ingest.db")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{"ingest", input}, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Ingested 2 records (1 duplicates, 0 failed)")
}
