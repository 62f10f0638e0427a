// Copyright 2022, The bnz authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

// The inverse transforms live here rather than in the bnz package because
// decoding is not part of the product; they exist only so tests and fuzz
// harnesses can verify the encoders by round-trip.

// InverseBWT inverts the Burrows-Wheeler transform of buf in place, given
// the pointer reported by the forward transform. It uses the standard
// first-column cycle walk and runs in O(n).
func InverseBWT(buf []byte, ptr int) {
	if len(buf) == 0 {
		return
	}

	var c [256]int
	for _, v := range buf {
		c[v]++
	}

	var sum int
	for i, v := range c {
		sum += v
		c[i] = sum - v
	}

	tt := make([]int, len(buf))
	for i := range buf {
		b := buf[i]
		tt[c[b]] |= i
		c[b]++
	}

	buf2 := make([]byte, len(buf))
	tPos := tt[ptr]
	for i := range tt {
		buf2[i] = buf[tPos]
		tPos = tt[tPos]
	}
	copy(buf, buf2)
}

// ExpandRLE1 decodes the first-stage run-length encoding. Four identical
// consecutive literals must be followed by a count byte holding the
// number of further repetitions; ExpandRLE1 panics if the count byte is
// missing, which a complete encoding never omits.
func ExpandRLE1(data []byte) []byte {
	var out []byte
	var lastVal byte
	var lastCnt int
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b != lastVal {
			lastCnt = 0
		}
		lastCnt++
		out = append(out, b)
		lastVal = b
		if lastCnt == 4 {
			i++
			if i >= len(data) {
				panic("missing terminating run-length repeater")
			}
			for n := int(data[i]); n > 0; n-- {
				out = append(out, b)
			}
			lastCnt = 0
		}
	}
	return out
}
