// Copyright 2022, The bnz authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench measures the front-end transforms: the raw throughput of
// each transform, and the effect the block-sort front end has on the
// compression ratio of downstream general-purpose compressors.
package bench

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/dsnet/golib/unitconv"

	"github.com/bnzip/bnz"
	"github.com/bnzip/bnz/internal/testutil"
)

const (
	FormatFlate = iota
	FormatXZ
)

// Encoder wraps a downstream compressor at some compression level.
// Codecs without levels ignore the argument.
type Encoder func(io.Writer, int) io.WriteCloser

var Encoders map[int]map[string]Encoder

// List of search paths for test files.
var Paths []string

func RegisterEncoder(format int, name string, enc Encoder) {
	if Encoders == nil {
		Encoders = make(map[int]map[string]Encoder)
	}
	if Encoders[format] == nil {
		Encoders[format] = make(map[string]Encoder)
	}
	Encoders[format][name] = enc
}

// Transform is a front-end preprocessor applied before a downstream
// compressor sees the block.
type Transform func([]byte) []byte

// Transforms lists the measurable front-end configurations. The block
// sort drops its pointer here; a few header bytes do not move ratios.
var Transforms = map[string]Transform{
	"none": func(b []byte) []byte {
		return b
	},
	"rle1": func(b []byte) []byte {
		return bnz.EncodeRLE1(b)
	},
	"bwt": func(b []byte) []byte {
		buf := append([]byte(nil), b...)
		bnz.EncodeBWT(buf)
		return buf
	},
	"rle1+bwt": func(b []byte) []byte {
		buf := bnz.EncodeRLE1(b)
		bnz.EncodeBWT(buf)
		return buf
	},
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// BenchmarkTransform benchmarks a single transform on the given input
// data and reports the result.
func BenchmarkTransform(input []byte, xf Transform) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if xf == nil {
			b.Fatalf("unexpected error: nil Transform")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			xf(input)
			b.SetBytes(int64(len(input)))
		}
	})
}

// BenchmarkTransformSuite runs the throughput benchmark across all
// transforms, files, and sizes.
//
// The values returned have the following structure:
//	results: [len(files)*len(sizes)][len(xfs)]Result
//	names:   [len(files)*len(sizes)]string
func BenchmarkTransformSuite(xfs, files []string, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(xfs, files, []int{0}, sizes, tick,
		func(input []byte, xf string, lvl int) Result {
			result := BenchmarkTransform(input, Transforms[xf])
			if result.N == 0 {
				return Result{}
			}
			us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
			rate := float64(result.Bytes) / us
			return Result{R: rate}
		})
}

// BenchmarkRatioSuite measures the compression ratio that the named
// downstream codec achieves after each front-end transform, across all
// files, levels, and sizes. The delta column is relative to the first
// transform, so listing "none" first reports the front-end gain.
//
// The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(xfs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkRatioSuite(format int, codec string, xfs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(xfs, files, levels, sizes, tick,
		func(input []byte, xf string, lvl int) Result {
			enc := Encoders[format][codec]
			if enc == nil {
				return Result{}
			}
			buf := new(bytes.Buffer)
			wr := enc(buf, lvl)
			if _, err := io.Copy(wr, bytes.NewReader(Transforms[xf](input))); err != nil {
				return Result{}
			}
			if wr.Close() != nil {
				return Result{}
			}
			if buf.Len() == 0 {
				return Result{}
			}
			ratio := float64(len(input)) / float64(buf.Len())
			return Result{R: ratio}
		})
}

type benchFunc func(input []byte, xf string, level int) Result

func benchmarkSuite(xfs, files []string, levels, sizes []int, tick func(), run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(files) * len(levels) * len(sizes)
	d1 := len(xfs)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names := make([]string, d0)

	// Run the benchmark for every transform, file, level, and size.
	var i int
	for _, f := range files {
		for _, l := range levels {
			for _, n := range sizes {
				b, err := testutil.LoadFile(getPath(f), n)
				name := getName(f, l, len(b))
				for j, x := range xfs {
					if tick != nil {
						tick()
					}
					names[i] = name
					if err == nil {
						results[i][j] = run(b, x, l)
					}
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, names
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

func getName(f string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12:
		s := fmt.Sprintf("%e", float64(n))
		re := regexp.MustCompile("\\.0*e\\+0*")
		sn = re.ReplaceAllString(s, "e")
	default:
		s := unitconv.FormatPrefix(float64(n), unitconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", path.Base(f), l, sn)
}
