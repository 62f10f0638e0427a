// Copyright 2022, The bnz authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bnz

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/bnzip/bnz/internal/testutil"
)

func TestRunLengthEncoding(t *testing.T) {
	var vectors = []struct {
		size   int
		input  string
		output string
		done   bool
	}{{
		size:   0,
		input:  "",
		output: "",
	}, {
		size:   6,
		input:  "abc",
		output: "abc",
	}, {
		size:   6,
		input:  "abcccc",
		output: "abccc",
		done:   true,
	}, {
		size:   7,
		input:  "abcccc",
		output: "abcccc\x00",
	}, {
		size:   14,
		input:  "aaaabbbbcccc",
		output: "aaaa\x00bbbb\x00ccc",
		done:   true,
	}, {
		size:   15,
		input:  "aaaabbbbcccc",
		output: "aaaa\x00bbbb\x00cccc\x00",
	}, {
		size:   16,
		input:  strings.Repeat("a", 4),
		output: "aaaa\x00",
	}, {
		size:   16,
		input:  strings.Repeat("a", 255),
		output: "aaaa\xfb",
	}, {
		size:   16,
		input:  strings.Repeat("a", 256),
		output: "aaaa\xfba",
	}, {
		size:   16,
		input:  strings.Repeat("a", 259),
		output: "aaaa\xfbaaaa\x00",
	}, {
		size:   16,
		input:  strings.Repeat("a", 500),
		output: "aaaa\xfbaaaa\xf1",
	}, {
		size:   64,
		input:  "aaabbbcccddddddeeefgghiiijkllmmmmmmmmnnoo",
		output: "aaabbbcccdddd\x02eeefgghiiijkllmmmm\x04nnoo",
	}}

	buf := make([]byte, 3)
	for i, v := range vectors {
		rle := new(RunLengthEncoding)
		rle.Init(make([]byte, v.size))
		_, err := io.CopyBuffer(rle, strings.NewReader(v.input), buf)
		output := string(rle.Bytes())

		if output != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, output, v.output)
		}
		if done := err == ErrBlockFull; done != v.done {
			t.Errorf("test %d, done mismatch: got %v want %v", i, done, v.done)
		}
	}
}

func TestEncodeRLE1(t *testing.T) {
	var vectors = []struct {
		input  string
		output string
	}{{
		input:  "",
		output: "",
	}, {
		input:  "abc",
		output: "abc",
	}, {
		input:  "AAA",
		output: "AAA",
	}, {
		input:  "AAAA",
		output: "AAAA\x00",
	}, {
		input:  strings.Repeat("A", 10),
		output: "AAAA\x06",
	}, {
		input:  strings.Repeat("A", 256),
		output: "AAAA\xfbA",
	}, {
		input:  "AAAAAAABBBBCCCD",
		output: "AAAA\x03BBBB\x00CCCD",
	}, {
		input:  strings.Repeat("a", 512),
		output: "aaaa\xfbaaaa\xfbaa",
	}}

	for i, v := range vectors {
		output := string(EncodeRLE1([]byte(v.input)))
		if output != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, output, v.output)
		}
	}
}

func TestRunLengthExpansion(t *testing.T) {
	var vectors = []struct {
		input  string
		output string
	}{{
		input:  "",
		output: "",
	}, {
		input:  "abc",
		output: "abc",
	}, {
		input:  "baaaa\x00aaaa\x00",
		output: "baaaaaaaa",
	}, {
		input:  "abcccc\x00",
		output: "abcccc",
	}, {
		input:  "aaaa\x00bbbb\x00ccc",
		output: "aaaabbbbccc",
	}, {
		input:  "aaaa\xfb",
		output: strings.Repeat("a", 255),
	}, {
		input:  "aaaa\xfba",
		output: strings.Repeat("a", 256),
	}, {
		input:  "aaaa\xffaaaa\xffaaaa\xff",
		output: strings.Repeat("a", 259*3),
	}, {
		input:  "bbbaaaa\xffaaaa\xffaaaa\xff",
		output: "bbb" + strings.Repeat("a", 259*3),
	}}

	for i, v := range vectors {
		output := string(testutil.ExpandRLE1([]byte(v.input)))
		if output != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, output, v.output)
		}
	}
}

// encodedRunLen computes the encoded size of a single maximal run of
// length n by walking the counter transitions: literals below 4, a
// literal-and-count pair at 4, free increments below 256, and a reseeding
// literal at the forced split.
func encodedRunLen(n int) (m int) {
	var cnt int
	for i := 0; i < n; i++ {
		cnt++
		switch {
		case cnt < 4:
			m++
		case cnt == 4:
			m += 2
		case cnt < 256:
			// Count byte increments in place.
		default:
			m++
			cnt = 1
		}
	}
	return m
}

func TestRLE1RunLengths(t *testing.T) {
	rd := testutil.NewRand(421)
	for trial := 0; trial < 32; trial++ {
		var input []byte
		var wantLen int
		var lastVal byte = 0xff
		for run := 0; run < 16; run++ {
			val := byte(rd.Intn(256))
			if val == lastVal {
				val ^= 0x80 // keep runs maximal
			}
			n := 1 + rd.Intn(600)
			input = append(input, bytes.Repeat([]byte{val}, n)...)
			wantLen += encodedRunLen(n)
			lastVal = val
		}

		output := EncodeRLE1(input)
		if len(output) != wantLen {
			t.Errorf("trial %d, encoded length mismatch: got %d, want %d", trial, len(output), wantLen)
		}
		if !bytes.Equal(testutil.ExpandRLE1(output), input) {
			t.Errorf("trial %d, round-trip mismatch", trial)
		}
	}
}
