package confsift

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Record is a single Confluence page as stored in the corpus: the raw
// storage-format XHTML body plus the identifying metadata that came
// with it.
type Record struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Space string `json:"space,omitempty"`

	// Status is the Confluence page status ("current", "archived").
	Status string `json:"status,omitempty"`

	// Body is the storage-format XHTML of the page.
	Body string `json:"body"`

	// BodyHash is the xxhash of Body, hex-encoded. Used to detect
	// content changes between corpus snapshots.
	BodyHash string `json:"body_hash,omitempty"`

	// Annotation is an optional human ground-truth label carried by
	// evaluation corpora: "yes" means gibberish, "no" means useful.
	Annotation string `json:"annotation,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Validate returns an error if the record has missing or invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "Record URL required.")
	}
	return nil
}

// RecordService represents a service for managing corpus records.
type RecordService interface {
	// CreateRecord stores a new record. Assigns an ID and a body hash
	// when the record carries none.
	CreateRecord(ctx context.Context, record *Record) error

	// FindRecordByID returns a record by Confluence page ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)

	// FindRecordByURL returns a record by normalized page URL.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByURL(ctx context.Context, url string) (*Record, error)

	// FindRecords returns records matching the filter, newest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// DeleteRecord permanently removes a record.
	// Returns ENOTFOUND if the record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}

// RecordFilter narrows a FindRecords query. Nil fields match
// everything.
type RecordFilter struct {
	ID         *string
	URL        *string
	Space      *string
	Annotation *string

	Limit  int
	Offset int
}

// NormalizeURL canonicalizes a page URL for use as a lookup key:
// surrounding whitespace and trailing slashes are stripped.
func NormalizeURL(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), "/")
}

var (
	pagesPathRE = regexp.MustCompile(`/pages/(\d+)(?:/|$)`)
	pageIDRE    = regexp.MustCompile(`[?&]pageId=(\d+)`)
)

// PageIDFromURL extracts the numeric Confluence page ID from a page
// URL, covering both the /pages/<id>/ path style and the legacy
// ?pageId=<id> query style. Returns "" when the URL carries no ID.
func PageIDFromURL(url string) string {
	if m := pagesPathRE.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := pageIDRE.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}
