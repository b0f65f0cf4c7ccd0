// Package batch runs the page pipeline over many records with bounded
// concurrency and renders the aggregate outputs.
package batch

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/confsift/confsift"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the worker limit used when none is configured.
const DefaultConcurrency = 10

// Runner processes a batch of records concurrently.
type Runner struct {
	Processor   confsift.Processor
	Concurrency int
}

// NewRunner returns a Runner backed by the given processor.
func NewRunner(processor confsift.Processor) *Runner {
	return &Runner{
		Processor:   processor,
		Concurrency: DefaultConcurrency,
	}
}

// Outcome holds the result of processing a single record.
type Outcome struct {
	Index  int
	Record *confsift.Record
	Result *confsift.PageResult
	Err    error
}

// Decision returns the lowercase decision string for the outcome
// ("useful" or "gibberish"), or an "error: ..." decision when
// processing failed.
func (o *Outcome) Decision() string {
	if o.Err != nil {
		return fmt.Sprintf("error: %s", confsift.ErrorMessage(o.Err))
	}
	return strings.ToLower(string(o.Result.Verdict()))
}

// Report summarizes a completed run.
type Report struct {
	RunID     string `json:"run_id"`
	Total     int    `json:"total"`
	Useful    int    `json:"useful"`
	Gibberish int    `json:"gibberish"`
	Errors    int    `json:"errors"`
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Run processes every record and returns the outcomes in input order
// together with a summary report. Per-record failures become error
// outcomes rather than failing the run; Run itself fails only when the
// context is canceled before all records are processed.
func (r *Runner) Run(ctx context.Context, records []*confsift.Record, progress ProgressFunc) ([]*Outcome, *Report, error) {
	total := len(records)

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressStarted,
			Completed: 0,
			Total:     total,
		})
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan *Outcome, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, record := range records {
			i, record := i, record
			g.Go(func() error {
				result, err := r.Processor.Process(gctx, record)
				resultCh <- &Outcome{
					Index:  i,
					Record: record,
					Result: result,
					Err:    err,
				}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	outcomes := make([]*Outcome, total)
	for outcome := range resultCh {
		completed.Add(1)
		outcomes[outcome.Index] = outcome

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       outcome.Record.URL,
		}
		if outcome.Err != nil {
			event.Type = ProgressFailed
			event.Error = outcome.Err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	report := &Report{
		RunID: uuid.New().String(),
		Total: total,
	}
	for _, outcome := range outcomes {
		switch {
		case outcome.Err != nil:
			report.Errors++
		case outcome.Result.Verdict().Gibberish():
			report.Gibberish++
		default:
			report.Useful++
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return outcomes, report, nil
}
