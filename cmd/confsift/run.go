package main

import (
	"fmt"
	"io"
	"os"

	"github.com/confsift/confsift"
	"github.com/confsift/confsift/batch"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer f.Close()

	records, err := batch.ReadRecords(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", confsift.ErrorMessage(err))
		return err
	}

	runner := batch.NewRunner(deps.Processor)
	if c.Concurrency > 0 {
		runner.Concurrency = c.Concurrency
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "Processing %d pages\n", event.Total)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	outcomes, report, err := runner.Run(deps.Ctx, records, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	out := deps.Stdout
	if c.Output != "" {
		outFile, err := os.Create(c.Output)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer outFile.Close()
		out = outFile
	}

	if err := writeOutcomes(out, outcomes, c.Format); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stderr, "Run %s: %d pages, %d useful, %d gibberish, %d errors\n",
		report.RunID, report.Total, report.Useful, report.Gibberish, report.Errors)

	return nil
}

func writeOutcomes(w io.Writer, outcomes []*batch.Outcome, format string) error {
	if format == "results" {
		return batch.WriteResults(w, outcomes)
	}
	return batch.WritePageOutputs(w, outcomes)
}
