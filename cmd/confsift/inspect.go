package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/confsift/confsift"
	"github.com/confsift/confsift/batch"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	if c.ID == "" && c.URL == "" {
		err := confsift.Errorf(confsift.EINVALID, "either --id or --url is required")
		fmt.Fprintf(deps.Stderr, "error: %s\n", confsift.ErrorMessage(err))
		return err
	}

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

	record := c.find(records)
	if record == nil {
		err := confsift.Errorf(confsift.ENOTFOUND, "no matching page in %s", c.Input)
		fmt.Fprintf(deps.Stderr, "error: %s\n", confsift.ErrorMessage(err))
		return err
	}

	result, err := deps.Processor.Process(deps.Ctx, record)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", confsift.ErrorMessage(err))
		return err
	}

	c.report(deps, record, result)
	return nil
}

// find returns the first record matching the requested ID and URL.
func (c *InspectCmd) find(records []*confsift.Record) *confsift.Record {
	target := confsift.NormalizeURL(c.URL)
	for _, record := range records {
		if c.ID != "" && record.ID != c.ID {
			continue
		}
		if c.URL != "" && confsift.NormalizeURL(record.URL) != target {
			continue
		}
		return record
	}
	return nil
}

func (c *InspectCmd) report(deps *Dependencies, record *confsift.Record, result *confsift.PageResult) {
	out := deps.Stdout

	fmt.Fprintf(out, "Page:    %s\n", record.Title)
	fmt.Fprintf(out, "URL:     %s\n", record.URL)
	fmt.Fprintf(out, "ID:      %s\n", record.ID)
	fmt.Fprintf(out, "Verdict: %s\n", result.Verdict())
	fmt.Fprintf(out, "Reason:  %s\n", result.Page.Reason)
	fmt.Fprintln(out)

	s := result.Structure
	fmt.Fprintf(out, "Words outside tables: %d (%d incl. headings)\n", s.WordCount, s.WordCountWithHeadings)
	fmt.Fprintf(out, "Headings: %d  Paragraphs: %d  Code blocks: %d\n", s.TotalHeadings, s.Paragraphs, s.CodeBlocks)
	fmt.Fprintf(out, "Links: %d  Images: %d  Files: %d  Mentions: %d\n",
		result.Scan.Links, result.Scan.Images, result.Scan.Files, result.Scan.Mentions)

	if len(result.Page.UsefulIndicators) > 0 {
		fmt.Fprintf(out, "Indicators: %s\n", strings.Join(result.Page.UsefulIndicators, ", "))
	}

	for _, table := range result.Tables {
		d := table.Decision
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Table %d: %s\n", table.Index+1, d.Verdict)
		fmt.Fprintf(out, "  Reason: %s\n", d.Reason)
		fmt.Fprintf(out, "  Fill:   %s\n", d.FillInfo)
		fmt.Fprintf(out, "  Words:  %d total, %d meaningful, %d placeholder\n",
			d.Words, d.MeaningfulWords, d.PlaceholderWords)
		if len(d.UsefulIndicators) > 0 {
			fmt.Fprintf(out, "  Useful: %s\n", strings.Join(d.UsefulIndicators, ", "))
		}
		for _, entry := range d.Log {
			fmt.Fprintf(out, "  - %s\n", entry)
		}
	}
}
