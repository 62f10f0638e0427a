// Copyright 2022, The bnz authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore
// +build ignore

// Generates runs.bin. This test file is dominated by runs of identical
// bytes at a spread of lengths that straddle the interesting RLE1
// thresholds (below 4, 4..255, and past the forced split at 256), mixed
// with stretches of plain random data so the block sort still has
// ordinary content to permute.
package main

import "math/rand"
import "os"

const (
	name = "runs.bin"
	size = 1 << 18
)

func main() {
	var b []byte
	var r = rand.New(rand.NewSource(0))

	randRunLen := func() (l int) {
		p := r.Float32()
		switch {
		case p <= 0.25: // 1..3, stays literal
			l = 1 + r.Int()%3
		case p <= 0.50: // 4..8, shortest counted runs
			l = 4 + r.Int()%5
		case p <= 0.75: // 9..255, one count byte
			l = 9 + r.Int()%247
		case p <= 0.95: // 256..511, exactly one split
			l = 256 + r.Int()%256
		case p <= 1.00: // 512..2048, repeated splits
			l = 512 + r.Int()%1536
		}
		return l
	}

	writeRun := func(v byte, l int) {
		for i := 0; i < l; i++ {
			b = append(b, v)
		}
	}

	writeRand := func(l int) {
		for i := 0; i < l; i++ {
			b = append(b, byte(r.Int()))
		}
	}

	for len(b) < size {
		if p := r.Float32(); p <= 0.8 {
			writeRun(byte(r.Int()), randRunLen())
		} else {
			writeRand(1 + r.Int()%64)
		}
	}

	if err := os.WriteFile(name, b[:size], 0664); err != nil {
		panic(err)
	}
}
