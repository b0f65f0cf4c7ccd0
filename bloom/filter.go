// Package bloom tracks already-ingested page URLs with a Bloom filter
// so large batch runs can skip duplicates without holding every URL in
// memory.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"

	"github.com/confsift/confsift"
)

// SeenURLs is a set of page URLs with false positives but no false
// negatives. URLs are normalized before hashing so trailing-slash
// variants of the same page collapse to one entry.
type SeenURLs struct {
	f *bloom.BloomFilter
}

// NewSeenURLs creates a filter sized for n expected URLs with the
// given false positive rate.
func NewSeenURLs(n uint, fpRate float64) *SeenURLs {
	return &SeenURLs{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Mark records a URL as seen.
func (s *SeenURLs) Mark(url string) {
	s.f.AddString(confsift.NormalizeURL(url))
}

// Seen returns true if the URL might have been seen already.
func (s *SeenURLs) Seen(url string) bool {
	return s.f.TestString(confsift.NormalizeURL(url))
}

// MarkSeen records the URL and reports whether it was already present,
// in one pass over the filter.
func (s *SeenURLs) MarkSeen(url string) bool {
	return s.f.TestAndAddString(confsift.NormalizeURL(url))
}

// EstimatedCount returns the approximate number of URLs recorded.
func (s *SeenURLs) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
