package mock

import (
	"context"

	"github.com/confsift/confsift"
)

var _ confsift.Processor = (*Processor)(nil)

// Processor is a mock implementation of confsift.Processor.
type Processor struct {
	ProcessFn func(ctx context.Context, record *confsift.Record) (*confsift.PageResult, error)
}

func (p *Processor) Process(ctx context.Context, record *confsift.Record) (*confsift.PageResult, error) {
	return p.ProcessFn(ctx, record)
}
