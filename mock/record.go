package mock

import (
	"context"

	"github.com/confsift/confsift"
)

var _ confsift.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of confsift.RecordService.
type RecordService struct {
	CreateRecordFn    func(ctx context.Context, record *confsift.Record) error
	FindRecordByIDFn  func(ctx context.Context, id string) (*confsift.Record, error)
	FindRecordByURLFn func(ctx context.Context, url string) (*confsift.Record, error)
	FindRecordsFn     func(ctx context.Context, filter confsift.RecordFilter) ([]*confsift.Record, error)
	DeleteRecordFn    func(ctx context.Context, id string) error
}

func (s *RecordService) CreateRecord(ctx context.Context, record *confsift.Record) error {
	return s.CreateRecordFn(ctx, record)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*confsift.Record, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecordByURL(ctx context.Context, url string) (*confsift.Record, error) {
	return s.FindRecordByURLFn(ctx, url)
}

func (s *RecordService) FindRecords(ctx context.Context, filter confsift.RecordFilter) ([]*confsift.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	return s.DeleteRecordFn(ctx, id)
}
