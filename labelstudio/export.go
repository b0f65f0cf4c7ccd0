package labelstudio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/confsift/confsift"
)

// Lookup statuses recorded on exported rows.
const (
	LookupFound       = "found"
	LookupNotFound    = "not_found_in_cache"
	LookupNoURLInTask = "no_url_in_task"
)

// Exporter merges annotation tasks with corpus records looked up
// through a shared record cache.
type Exporter struct {
	cache *confsift.RecordCache
}

// NewExporter creates an exporter over the given cache.
func NewExporter(cache *confsift.RecordCache) *Exporter {
	return &Exporter{cache: cache}
}

// Row flattens one task into an export row: the task ID, the matched
// corpus record's fields, and one annotatorN column per response.
func (e *Exporter) Row(ctx context.Context, task *Task) (map[string]any, error) {
	row := map[string]any{
		"label_studio_task_id": task.ID,
	}

	url := task.PageURL()
	if url == "" {
		row["lookup_status"] = LookupNoURLInTask
	} else {
		record, err := e.cache.Lookup(ctx, url)
		switch {
		case err == nil:
			row["lookup_status"] = LookupFound
			row["id"] = record.ID
			row["title"] = record.Title
			row["url"] = record.URL
			row["space"] = record.Space
			row["status"] = record.Status
			row["annotation"] = record.Annotation
			if !record.CreatedAt.IsZero() {
				row["created_at"] = record.CreatedAt.Format(time.RFC3339)
			}
			if !record.UpdatedAt.IsZero() {
				row["updated_at"] = record.UpdatedAt.Format(time.RFC3339)
			}
		case confsift.ErrorCode(err) == confsift.ENOTFOUND:
			row["lookup_status"] = LookupNotFound
			row["url"] = url
		default:
			return nil, err
		}
	}

	row["annotator_count"] = len(task.Annotations)
	for i, annotation := range task.Annotations {
		fields := annotation.Fields()
		value := ""
		if len(fields) > 0 {
			raw, err := json.Marshal(fields)
			if err != nil {
				return nil, err
			}
			value = string(raw)
		}
		row[fmt.Sprintf("annotator%d", i+1)] = value
	}

	return row, nil
}

// Export writes one JSON line per task to w.
func (e *Exporter) Export(ctx context.Context, w io.Writer, tasks []*Task) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := e.Row(ctx, task)
		if err != nil {
			return err
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
