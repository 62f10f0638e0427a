// Copyright 2022, The bnz authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

// Package transforms implements a fuzzer for the front-end transforms.
// Each transform is applied to the input and checked against its inverse
// oracle, so any deviation from a byte-exact round-trip panics.
package transforms

import (
	"bytes"

	"github.com/bnzip/bnz"
	"github.com/bnzip/bnz/internal/testutil"
)

func Fuzz(data []byte) int {
	testRLE1(data)
	testBWT(data)
	if len(data) > 0 {
		return 1 // Favor non-degenerate blocks
	}
	return 0
}

func testBWT(data []byte) {
	buf := append([]byte(nil), data...)
	ptr := bnz.EncodeBWT(buf)
	if len(data) == 0 {
		if ptr != -1 {
			panic("unexpected pointer for empty block")
		}
		return
	}
	if ptr < 0 || ptr >= len(buf) {
		panic("pointer out of range")
	}
	testutil.InverseBWT(buf, ptr)
	if !bytes.Equal(buf, data) {
		panic("mismatching bytes after inverse transform")
	}
}

func testRLE1(data []byte) {
	output := bnz.EncodeRLE1(data)
	if !bytes.Equal(testutil.ExpandRLE1(output), data) {
		panic("mismatching bytes after run expansion")
	}
}
