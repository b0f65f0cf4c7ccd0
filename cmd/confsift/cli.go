package main

import (
	"context"
	"io"

	"github.com/confsift/confsift"
	"github.com/confsift/confsift/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Records   confsift.RecordService
	Processor confsift.Processor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log each processed page to stderr"`

	Run     RunCmd     `cmd:"" help:"Classify every page in a JSONL corpus"`
	Inspect InspectCmd `cmd:"" help:"Show the full decision trace for one page"`
	Eval    EvalCmd    `cmd:"" help:"Score predictions against ground-truth annotations"`
	Fetch   FetchCmd   `cmd:"" help:"Export annotation tasks merged with the local corpus"`
	Ingest  IngestCmd  `cmd:"" help:"Load a JSONL corpus into the local database"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Input       string `arg:"" help:"JSONL corpus file"`
	Output      string `short:"o" help:"Output file (default stdout)"`
	Format      string `default:"pages" enum:"pages,results" help:"Output format: pages (JSON array) or results (JSONL with result field)"`
	Concurrency int    `short:"c" default:"10" help:"Concurrent processing limit"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	Input string `arg:"" help:"JSONL corpus file"`
	ID    string `help:"Page ID to inspect"`
	URL   string `help:"Page URL to inspect"`
}

// EvalCmd is the "eval" subcommand.
type EvalCmd struct {
	Input          string `arg:"" help:"Results JSONL file with annotations"`
	Mispredictions string `short:"m" help:"Write mispredictions to this JSON file"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Project   int     `arg:"" help:"Annotation project ID"`
	BaseURL   string  `env:"LABEL_STUDIO_URL" required:"" help:"Annotation platform base URL"`
	APIKey    string  `env:"LABEL_STUDIO_API_KEY" required:"" help:"Annotation platform API key"`
	Output    string  `short:"o" help:"Output file (default stdout)"`
	PageSize  int     `default:"50" help:"Tasks per request"`
	RateLimit float64 `default:"5" help:"Max requests per second"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Input string `arg:"" help:"JSONL corpus file"`
}
