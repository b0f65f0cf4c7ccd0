// Package slog provides logging decorators for the domain interfaces,
// built on the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/confsift/confsift"
)

// Ensure LoggingProcessor implements confsift.Processor.
var _ confsift.Processor = (*LoggingProcessor)(nil)

// LoggingProcessor wraps a Processor with per-page decision logging.
type LoggingProcessor struct {
	next   confsift.Processor
	logger *slog.Logger
}

// NewLoggingProcessor creates a new LoggingProcessor.
func NewLoggingProcessor(next confsift.Processor, logger *slog.Logger) *LoggingProcessor {
	return &LoggingProcessor{next: next, logger: logger}
}

// Process delegates to the wrapped processor and logs the outcome.
func (p *LoggingProcessor) Process(ctx context.Context, record *confsift.Record) (result *confsift.PageResult, err error) {
	url := ""
	if record != nil {
		url = record.URL
	}
	defer func(begin time.Time) {
		decision := ""
		tables := 0
		if result != nil {
			decision = string(result.Verdict())
			tables = len(result.Tables)
		}
		p.logger.Info("page processed",
			"url", url,
			"decision", decision,
			"tables", tables,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Process(ctx, record)
}
