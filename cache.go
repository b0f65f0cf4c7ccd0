package confsift

import (
	"context"
	"sync"
)

// RecordCache is a read-through lookup cache over a RecordService.
// Records are indexed by normalized URL and by page ID so that the
// same page can be found through either key. A cache is safe for
// concurrent use and is passed explicitly to whatever needs lookups.
type RecordCache struct {
	mu      sync.RWMutex
	records map[string]*Record
	source  RecordService
}

// NewRecordCache returns an empty cache backed by source. A nil source
// is allowed; the cache then only serves records added via Put.
func NewRecordCache(source RecordService) *RecordCache {
	return &RecordCache{
		records: make(map[string]*Record),
		source:  source,
	}
}

// Put adds a record to the cache, indexing it by normalized URL and,
// when the URL carries one, by page ID.
func (c *RecordCache) Put(record *Record) {
	if record == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if url := NormalizeURL(record.URL); url != "" {
		c.records[url] = record
	}
	if id := record.ID; id != "" {
		c.records["id:"+id] = record
	} else if id := PageIDFromURL(record.URL); id != "" {
		c.records["id:"+id] = record
	}
}

// Len returns the number of cache keys currently populated.
func (c *RecordCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Lookup finds the record for a page URL. The cache is consulted first
// by normalized URL and then by the page ID embedded in the URL; on a
// miss the backing service is queried the same way and the result is
// cached. Returns ENOTFOUND when the record cannot be found anywhere.
func (c *RecordCache) Lookup(ctx context.Context, url string) (*Record, error) {
	key := NormalizeURL(url)
	if key == "" {
		return nil, Errorf(EINVALID, "Lookup URL required.")
	}
	pageID := PageIDFromURL(url)

	c.mu.RLock()
	if r, ok := c.records[key]; ok {
		c.mu.RUnlock()
		return r, nil
	}
	if pageID != "" {
		if r, ok := c.records["id:"+pageID]; ok {
			c.mu.RUnlock()
			return r, nil
		}
	}
	c.mu.RUnlock()

	if c.source == nil {
		return nil, Errorf(ENOTFOUND, "Record not found for URL %q.", url)
	}

	r, err := c.source.FindRecordByURL(ctx, key)
	if err != nil && ErrorCode(err) != ENOTFOUND {
		return nil, err
	}
	if r == nil && pageID != "" {
		r, err = c.source.FindRecordByID(ctx, pageID)
		if err != nil && ErrorCode(err) != ENOTFOUND {
			return nil, err
		}
	}
	if r == nil {
		return nil, Errorf(ENOTFOUND, "Record not found for URL %q.", url)
	}
	c.Put(r)
	return r, nil
}
