// Package blockhash implements a content-addressed hash table over
// Block, restoring the original_source BlockHash facility (src/blockhash.c,
// include/c_plus/blockhash.h) that spec.md's distillation dropped: a
// table keyed by byte content rather than pointer identity, used to
// intern repeated byte strings so equal content shares one Block.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package blockhash

import (
	"sort"
	"sync"

	cuckoo "github.com/seiflotfy/cuckoofilter"

	"github.com/tfcore/tf/block"
)

// Table interns Blocks by content. A cuckoofilter-backed negative cache
// is consulted before the real bucket lookup, so a long-lived intern
// table's common case — content never seen before — short-circuits
// without walking a bucket.
type Table struct {
	mu      sync.Mutex
	filter  *cuckoo.Filter
	buckets map[uint64][]block.Block // digest -> sorted-by-content bucket
}

// New creates an empty Table. capacityHint sizes the cuckoofilter;
// overshooting briefly increases the filter's false-positive rate
// rather than correctness (a false positive just means the real bucket
// lookup runs when it wasn't strictly necessary).
func New(capacityHint uint) *Table {
	return &Table{
		filter:  cuckoo.NewFilter(capacityHint),
		buckets: make(map[uint64][]block.Block),
	}
}

// locate returns the index in bucket where b belongs to keep the slice
// sorted by content (spec.md's resolved Open Question: adopt the
// the_Foundation sorted-insertion-point semantics), and whether b is
// already present at that index.
func locate(bucket []block.Block, b block.Block) (idx int, found bool) {
	idx = sort.Search(len(bucket), func(i int) bool { return bucket[i].Cmp(b) >= 0 })
	found = idx < len(bucket) && bucket[idx].Equal(b)
	return idx, found
}

// Intern returns a canonical Block whose content equals b's: the first
// Block with that content ever interned, so that repeated content always
// resolves to one shared handle and Clone() (not a fresh allocation).
func (t *Table) Intern(b block.Block) block.Block {
	digest := b.XXHash()
	key := keyBytes(digest)

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.filter.Lookup(key) {
		// definitely not present: skip the bucket walk entirely
		t.filter.InsertUnique(key)
		t.buckets[digest] = []block.Block{b}
		return b
	}

	bucket := t.buckets[digest]
	idx, found := locate(bucket, b)
	if found {
		return bucket[idx].Clone()
	}
	t.buckets[digest] = insertAt(bucket, idx, b)
	return b
}

// Len reports the number of distinct Blocks currently interned.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, bucket := range t.buckets {
		n += len(bucket)
	}
	return n
}

func insertAt(bucket []block.Block, idx int, b block.Block) []block.Block {
	bucket = append(bucket, block.Block{})
	copy(bucket[idx+1:], bucket[idx:])
	bucket[idx] = b
	return bucket
}

func keyBytes(digest uint64) []byte {
	var k [8]byte
	for i := range k {
		k[i] = byte(digest >> (8 * i))
	}
	return k[:]
}
