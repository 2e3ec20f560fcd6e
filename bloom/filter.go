// Package bloom provides deduplication of 64-bit fingerprints using Bloom filters.
package bloom

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter of content fingerprints.
// It is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd reports whether the fingerprint might already be in the
// filter and adds it.
func (f *Filter) TestAndAdd(fp uint64) bool {
	return f.f.TestAndAdd(key(fp))
}

func key(fp uint64) []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, 8), fp)
}
