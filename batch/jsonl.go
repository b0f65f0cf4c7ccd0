package batch

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/confsift/confsift"
)

// maxLineBytes bounds a single JSONL line. Storage-format bodies for
// large pages run to several megabytes.
const maxLineBytes = 64 * 1024 * 1024

// ReadRecords reads line-delimited JSON records. Blank lines are
// skipped; a malformed line fails the read with its line number.
func ReadRecords(r io.Reader) ([]*confsift.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var records []*confsift.Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record confsift.Record
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, confsift.Errorf(confsift.EINVALID, "line %d: %v", lineNo, err)
		}
		records = append(records, &record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// WritePageOutputs writes outcomes as a JSON array of page outputs,
// one entry per record in input order.
func WritePageOutputs(w io.Writer, outcomes []*Outcome) error {
	outputs := make([]*confsift.PageOutput, len(outcomes))
	for i, outcome := range outcomes {
		outputs[i] = &confsift.PageOutput{
			URL:       outcome.Record.URL,
			Decision:  outcome.Decision(),
			Index:     outcome.Index,
			PageTitle: outcome.Record.Title,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(outputs)
}

// resultLine is one line of the result-attached JSONL output: the
// record fields with the verdict nested under "result".
type resultLine struct {
	*confsift.Record
	Result resultPayload `json:"result"`
}

type resultPayload struct {
	IsGibberish *string `json:"is_gibberish"`
	Status      string  `json:"status,omitempty"`
	Reason      string  `json:"reason,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// WriteResults writes outcomes as line-delimited JSON, each line the
// original record with a result field attached. Failed records carry a
// null is_gibberish and an ERROR status.
func WriteResults(w io.Writer, outcomes []*Outcome) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, outcome := range outcomes {
		line := resultLine{Record: outcome.Record}
		if outcome.Err != nil {
			msg := confsift.ErrorMessage(outcome.Err)
			line.Result = resultPayload{
				Status: "ERROR",
				Reason: "Processing error: " + msg,
				Error:  msg,
			}
		} else {
			answer := "no"
			if outcome.Result.Verdict().Gibberish() {
				answer = "yes"
			}
			line.Result = resultPayload{IsGibberish: &answer}
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
