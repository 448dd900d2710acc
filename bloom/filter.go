// Package bloom provides duplicate-document detection using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter keyed on document content hashes.
// Safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected documents
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd adds a content hash to the filter and reports whether it might
// have been seen before. False positives are possible; false negatives are
// not.
func (f *Filter) TestAndAdd(hash string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(hash)
}

// Test returns true if the content hash might be in the filter.
func (f *Filter) Test(hash string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(hash)
}

// EstimatedCount returns the approximate number of documents in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
