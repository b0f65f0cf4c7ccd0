package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/confsift/confsift"
)

// Compile-time interface verification.
var _ confsift.RecordService = (*RecordService)(nil)

// RecordService implements confsift.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// hashBody computes xxHash of a page body and returns a hex string.
func hashBody(body string) string {
	h := xxhash.Sum64String(body)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateRecord creates a new record. An ID comes from the page URL
// when it carries one, otherwise a fresh UUID; the body hash is
// computed when missing. The stored URL is normalized.
func (s *RecordService) CreateRecord(ctx context.Context, record *confsift.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	record.URL = confsift.NormalizeURL(record.URL)
	if record.ID == "" {
		if id := confsift.PageIDFromURL(record.URL); id != "" {
			record.ID = id
		} else {
			record.ID = uuid.New().String()
		}
	}
	if record.BodyHash == "" {
		record.BodyHash = hashBody(record.Body)
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, title, url, space, status, body, body_hash, annotation, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Title, record.URL, record.Space, record.Status, record.Body,
		record.BodyHash, record.Annotation,
		record.CreatedAt.Format(time.RFC3339), record.UpdatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint") {
		return confsift.Errorf(confsift.ECONFLICT, "record already exists: %s", record.URL)
	}
	return err
}

const recordColumns = "id, title, url, space, status, body, body_hash, annotation, created_at, updated_at"

// FindRecordByID retrieves a record by page ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*confsift.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM records
		WHERE id = ?
	`, id)
	return scanRecord(row.Scan)
}

// FindRecordByURL retrieves a record by normalized page URL.
func (s *RecordService) FindRecordByURL(ctx context.Context, url string) (*confsift.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM records
		WHERE url = ?
	`, confsift.NormalizeURL(url))
	return scanRecord(row.Scan)
}

// FindRecords retrieves records matching the filter, newest first.
func (s *RecordService) FindRecords(ctx context.Context, filter confsift.RecordFilter) ([]*confsift.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM records WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, confsift.NormalizeURL(*filter.URL))
	}
	if filter.Space != nil {
		query.WriteString(" AND space = ?")
		args = append(args, *filter.Space)
	}
	if filter.Annotation != nil {
		query.WriteString(" AND annotation = ?")
		args = append(args, *filter.Annotation)
	}

	query.WriteString(" ORDER BY created_at DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*confsift.Record
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// DeleteRecord permanently removes a record.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return confsift.Errorf(confsift.ENOTFOUND, "record not found")
	}

	return nil
}

// scanRecord reads one record row through the given scan function.
func scanRecord(scan func(dest ...any) error) (*confsift.Record, error) {
	var record confsift.Record
	var createdAt, updatedAt string

	err := scan(&record.ID, &record.Title, &record.URL, &record.Space, &record.Status,
		&record.Body, &record.BodyHash, &record.Annotation, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, confsift.Errorf(confsift.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}

	if record.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if record.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &record, nil
}
