package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/confsift/confsift"
)

// Ensure LoggingRecordService implements confsift.RecordService.
var _ confsift.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService with operation logging.
type LoggingRecordService struct {
	next   confsift.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next confsift.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

// CreateRecord delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) CreateRecord(ctx context.Context, record *confsift.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("record created",
			"url", record.URL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRecord(ctx, record)
}

// FindRecordByID delegates to the wrapped service.
func (s *LoggingRecordService) FindRecordByID(ctx context.Context, id string) (record *confsift.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("record lookup by id",
			"id", id,
			"found", record != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecordByID(ctx, id)
}

// FindRecordByURL delegates to the wrapped service.
func (s *LoggingRecordService) FindRecordByURL(ctx context.Context, url string) (record *confsift.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("record lookup by url",
			"url", url,
			"found", record != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecordByURL(ctx, url)
}

// FindRecords delegates to the wrapped service.
func (s *LoggingRecordService) FindRecords(ctx context.Context, filter confsift.RecordFilter) (records []*confsift.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("record query",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, filter)
}

// DeleteRecord delegates to the wrapped service.
func (s *LoggingRecordService) DeleteRecord(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("record deleted",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteRecord(ctx, id)
}
