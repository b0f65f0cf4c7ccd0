package main

import (
	"fmt"
	"os"

	"github.com/confsift/confsift"
	"github.com/confsift/confsift/batch"
	"github.com/confsift/confsift/bloom"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
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

	seen := bloom.NewSeenURLs(uint(len(records))+1, 0.001)

	var created, duplicates, failed int
	for _, record := range records {
		if seen.MarkSeen(record.URL) {
			duplicates++
			continue
		}
		if err := deps.Records.CreateRecord(deps.Ctx, record); err != nil {
			if confsift.ErrorCode(err) == confsift.ECONFLICT {
				duplicates++
				continue
			}
			failed++
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", record.URL, confsift.ErrorMessage(err))
			continue
		}
		created++
	}

	fmt.Fprintf(deps.Stdout, "Ingested %d records (%d duplicates, %d failed)\n", created, duplicates, failed)
	return nil
}
