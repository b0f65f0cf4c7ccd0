package main

import (
	"fmt"
	"os"

	"github.com/confsift/confsift"
	"github.com/confsift/confsift/labelstudio"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	client := labelstudio.NewClient(c.BaseURL, c.APIKey,
		labelstudio.WithPageSize(c.PageSize),
		labelstudio.WithRateLimit(c.RateLimit),
	)

	tasks, err := client.FetchTasks(deps.Ctx, c.Project)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", confsift.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stderr, "Fetched %d tasks from project %d\n", len(tasks), c.Project)

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

	cache := confsift.NewRecordCache(deps.Records)
	exporter := labelstudio.NewExporter(cache)
	if err := exporter.Export(deps.Ctx, out, tasks); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	return nil
}
