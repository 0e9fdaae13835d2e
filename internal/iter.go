package internal

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// MergeSorted merges dual-return iterators and yields the pairs in key
// order. Later sequences override earlier ones for the same key.
func MergeSorted[K cmp.Ordered, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		merged := map[K]V{}
		for _, seq := range seqs {
			maps.Insert(merged, seq)
		}
		for _, key := range slices.Sorted(maps.Keys(merged)) {
			if !yield(key, merged[key]) {
				return
			}
		}
	}
}
