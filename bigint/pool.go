// This file provides pooled scratch buffers for the temporaries of the
// division and multiplication loops.

package bigint

import (
	"math/bits"
	"sync"
)

// wordPools pools []Word slices by size class. Size classes are powers of 4
// starting at 4 words: 4, 16, 64, 256, 1K, 4K, 16K.
var wordPools = [...]sync.Pool{
	{New: func() any { return make([]Word, 4) }},
	{New: func() any { return make([]Word, 16) }},
	{New: func() any { return make([]Word, 64) }},
	{New: func() any { return make([]Word, 256) }},
	{New: func() any { return make([]Word, 1024) }},
	{New: func() any { return make([]Word, 4096) }},
	{New: func() any { return make([]Word, 16384) }},
}

// wordPoolSizes defines the size classes for wordPools.
var wordPoolSizes = [...]int{4, 16, 64, 256, 1024, 4096, 16384}

// wordPoolIndex returns the pool index for a given size, or -1 if the size is
// too large for pooling. Class i holds 4^(i+1) words, so bits.Len(size-1)
// maps directly onto the index.
func wordPoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > wordPoolSizes[len(wordPoolSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 1) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireWords returns a zeroed word slice of exactly size words. The slice
// should be handed back with releaseWords once the caller is done with it.
func acquireWords(size int) ([]Word, error) {
	if err := checkLimit(size); err != nil {
		return nil, err
	}
	idx := wordPoolIndex(size)
	if idx < 0 {
		return allocWords(size)
	}
	w := wordPools[idx].Get().([]Word)
	clear(w)
	return w[:size], nil
}

// releaseWords returns a slice obtained from acquireWords to its pool. Slices
// whose capacity no longer matches a size class (because the owner outgrew
// them) are left to the garbage collector.
func releaseWords(w []Word) {
	if w == nil {
		return
	}
	c := cap(w)
	idx := wordPoolIndex(c)
	if idx >= 0 && wordPoolSizes[idx] == c {
		wordPools[idx].Put(w[:c])
	}
}

// scratch is a pooled temporary. It must not escape the operator that
// acquired it.
func scratch(size int) (*Int, error) {
	w, err := acquireWords(size)
	if err != nil {
		return nil, err
	}
	return &Int{words: w}, nil
}

// scratchCopy returns a pooled, non-negative copy of |x|.
func scratchCopy(x *Int) (*Int, error) {
	n := x.digits()
	if n == 0 {
		n = 1
	}
	s, err := scratch(n)
	if err != nil {
		return nil, err
	}
	copy(s.words, x.words[:x.digits()])
	return s, nil
}

func release(xs ...*Int) {
	for _, x := range xs {
		if x == nil {
			continue
		}
		releaseWords(x.words)
		x.words = nil
		x.neg = false
	}
}
