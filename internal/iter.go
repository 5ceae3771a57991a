// Package internal holds iterator helpers shared by the synvm packages.
package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, val := range seq {
				if !yield(key, val) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// IterSeq2Map converts the values of a dual-return iterator.
func IterSeq2Map[K any, V any, W any](seq iter.Seq2[K, V], convert func(V) W) iter.Seq2[K, W] {
	return func(yield func(K, W) bool) {
		for key, val := range seq {
			if !yield(key, convert(val)) {
				return
			}
		}
	}
}
