// Copyright 2022, The bnz authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bnz

// ErrBlockFull is reported by RunLengthEncoding.Write when the next input
// byte cannot be encoded into the remaining space of the current block.
var ErrBlockFull error = Error("rle1 block is full")

// RunLengthEncoding implements the first RLE stage of BZip2. Every
// sequence of 4..255 duplicated bytes is replaced by only the first
// 4 bytes, and a single byte representing the repeat length. Similar to
// the C bzip2 implementation, the encoder will always terminate repeat
// sequences with a count (even if it is the end of the buffer), and it
// will also never produce run lengths of 256..259.
//
// For example, if the input was:
//	input:  "AAAAAAABBBBCCCD"
//
// Then the output will be:
//	output: "AAAA\x03BBBB\x00CCCD"
//
// The count byte is emitted together with the fourth literal and then
// incremented in place as the run continues. This is byte-for-byte
// equivalent to emitting length-4 once the run ends, and it means a
// finished encoding never dangles a terminator.
type RunLengthEncoding struct {
	buf     []byte
	idx     int
	lastVal byte
	lastCnt int
}

// Init resets the encoder to write into the given block.
func (rle *RunLengthEncoding) Init(buf []byte) {
	*rle = RunLengthEncoding{buf: buf}
}

// Write encodes buf into the current block. If the block fills up
// mid-way, Write returns the number of input bytes consumed along with
// ErrBlockFull; the block contents remain a valid encoding of exactly
// those consumed bytes. A literal and its count byte are placed as a
// pair, so the encoding is never cut between them.
func (rle *RunLengthEncoding) Write(buf []byte) (int, error) {
	for i, b := range buf {
		if rle.lastVal != b {
			rle.lastCnt = 0
		}
		rle.lastCnt++
		switch {
		case rle.lastCnt < 4:
			if rle.idx >= len(rle.buf) {
				return i, ErrBlockFull
			}
			rle.buf[rle.idx] = b
			rle.idx++
		case rle.lastCnt == 4:
			if rle.idx+1 >= len(rle.buf) {
				return i, ErrBlockFull
			}
			rle.buf[rle.idx] = b
			rle.idx++
			rle.buf[rle.idx] = 0
			rle.idx++
		case rle.lastCnt < 256:
			rle.buf[rle.idx-1]++
		default:
			// A run of 256 forces a split: the count byte saturates at
			// 251 and this byte reseeds a fresh run of the same value.
			if rle.idx >= len(rle.buf) {
				return i, ErrBlockFull
			}
			rle.lastCnt = 1
			rle.buf[rle.idx] = b
			rle.idx++
		}
		rle.lastVal = b
	}
	return len(buf), nil
}

// Bytes returns the encoded portion of the block.
func (rle *RunLengthEncoding) Bytes() []byte { return rle.buf[:rle.idx] }

// EncodeRLE1 encodes src in its entirety and returns the encoded output.
// The block is sized from the worst-case expansion, so the encoding never
// runs out of space. The empty input encodes to an empty output.
func EncodeRLE1(src []byte) []byte {
	rle := new(RunLengthEncoding)
	rle.Init(make([]byte, rle1MaxSize(len(src))))
	if _, err := rle.Write(src); err != nil {
		panic(err) // block is sized for the worst case
	}
	return rle.Bytes()
}

// rle1MaxSize bounds the encoded size of n input bytes. The worst case is
// back-to-back runs of exactly 4 bytes, each costing 5 output bytes.
func rle1MaxSize(n int) int {
	return n + n/4 + 2
}
