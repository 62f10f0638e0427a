// Copyright 2022, The bnz authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bnz

// The Burrows-Wheeler Transform implementation used here is the textbook
// construction: materialize the block twice over, sort every cyclic
// rotation with a comparison sort, and read off the cyclic predecessor of
// each rotation in sorted order. This runs in O(n² log n) in the worst
// case and exists as a correctness oracle rather than a production
// encoder. A production implementation would build a suffix array over
// the doubled block in O(n) (e.g., with the SA-IS methodology by Nong,
// Zhang, and Chan) and derive the same permutation and pointer from it.
//
// References:
//	https://www.hpl.hp.com/techreports/Compaq-DEC/SRC-RR-124.pdf
//	https://sites.google.com/site/yuta256/sais

import (
	"bytes"
	"sort"
)

// EncodeBWT computes the Burrows-Wheeler transform of buf in place and
// returns the position of the original block within the sorted rotation
// order. Rotations that compare equal, which happens exactly when the
// block is periodic, are ordered by ascending start offset, so the
// returned pointer is deterministic for every input.
//
// An empty block has no rotations; by convention EncodeBWT leaves buf
// untouched and returns -1.
func EncodeBWT(buf []byte) (ptr int) {
	if len(buf) == 0 {
		return -1
	}

	// Duplicating the block lets rotation i be compared as the plain
	// slice t[i:i+n], since no rotation needs to wrap more than once.
	n := len(buf)
	t := make([]byte, 2*n)
	copy(t, buf)
	copy(t[n:], buf)

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(i, j int) bool {
		x, y := perm[i], perm[j]
		if c := bytes.Compare(t[x:x+n], t[y:y+n]); c != 0 {
			return c < 0
		}
		// The start offset is an explicit sort key rather than a
		// stability assumption; sort.Slice is not stable.
		return x < y
	})

	for i, idx := range perm {
		if idx == 0 {
			ptr = i
			idx = n
		}
		buf[i] = t[idx-1]
	}
	return ptr
}
