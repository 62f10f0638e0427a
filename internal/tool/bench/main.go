// Copyright 2022, The bnz authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore
// +build ignore

// Benchmark tool for the bnz front-end transforms.
//
// Example usage:
//	$ go build -o benchmark main.go
//	$ ./benchmark \
//		-tests      xfRate,ratio \
//		-formats    fl           \
//		-transforms none,rle1,rle1+bwt \
//		-files      runs.bin     \
//		-levels     6            \
//		-sizes      1e4,1e5,1e6
//
//	BENCHMARK: fl:ratio
//		benchmark            none ratio  delta      rle1+bwt ratio  delta
//		runs.bin:6:1e4            3.12   1.00x               4.67   1.50x
//		...
package main

import (
	"flag"
	"fmt"
	"go/build"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dsnet/golib/unitconv"

	"github.com/bnzip/bnz/internal/tool/bench"
)

// By default, the benchmark tool will look for test data in this "package".
const testPkg = "github.com/bnzip/bnz/testdata"

const (
	defaultLevels     = "1,6,9"
	defaultSizes      = "1e4,1e5,1e6"
	defaultTransforms = "none,rle1,bwt,rle1+bwt"
)

var (
	fmtToEnum = map[string]int{
		"fl": bench.FormatFlate,
		"xz": bench.FormatXZ,
	}
	enumToFmt = map[int]string{
		bench.FormatFlate: "fl",
		bench.FormatXZ:    "xz",
	}
)

const (
	testTransformRate = iota
	testCompressRatio
)

var (
	testToEnum = map[string]int{
		"xfRate": testTransformRate,
		"ratio":  testCompressRatio,
	}
	enumToTest = map[int]string{
		testTransformRate: "xfRate",
		testCompressRatio: "ratio",
	}
)

func defaultTests() string {
	return "xfRate,ratio"
}

func defaultFormats() string {
	var d []int
	for k := range bench.Encoders {
		d = append(d, k)
	}
	sort.Ints(d)
	var s []string
	for _, v := range d {
		s = append(s, enumToFmt[v])
	}
	return strings.Join(s, ",")
}

func defaultCodecs() string {
	m := make(map[string]bool)
	for _, v := range bench.Encoders {
		for k := range v {
			m[k] = true
		}
	}
	hasStd := m["std"]
	delete(m, "std")
	var s []string
	for k := range m {
		s = append(s, k)
	}
	sort.Strings(s)
	if hasStd {
		s = append([]string{"std"}, s...) // Ensure "std" always appears first
	}
	return strings.Join(s, ",")
}

func defaultFiles() string {
	p := strings.Split(defaultPaths(), ",")[0]
	fis, err := os.ReadDir(p)
	if err != nil {
		return ""
	}
	var s []string
	for _, fi := range fis {
		if !strings.HasSuffix(fi.Name(), ".go") {
			s = append(s, fi.Name())
		}
	}
	return strings.Join(s, ",")
}

func defaultPaths() string {
	pkg, err := build.Import(testPkg, "", build.FindOnly)
	if err != nil {
		return ""
	}
	return pkg.Dir
}

func main() {
	// Setup flag arguments.
	f0 := flag.String("tests", defaultTests(), "List of different benchmark tests")
	f1 := flag.String("formats", defaultFormats(), "List of downstream formats for the ratio test")
	f2 := flag.String("codecs", defaultCodecs(), "List of downstream codecs for the ratio test")
	f3 := flag.String("transforms", defaultTransforms, "List of front-end transforms to benchmark")
	f4 := flag.String("paths", defaultPaths(), "List of paths to search for test files")
	f5 := flag.String("files", defaultFiles(), "List of input files to benchmark")
	f6 := flag.String("levels", defaultLevels, "List of compression levels to benchmark")
	f7 := flag.String("sizes", defaultSizes, "List of input sizes to benchmark")
	flag.Parse()

	// Parse the flag arguments.
	var sep = regexp.MustCompile("[,:]")
	var tests, formats []int
	var codecs, xfs, paths, files []string
	var levels, sizes []int
	for _, s := range sep.Split(*f0, -1) {
		if _, ok := testToEnum[s]; !ok {
			panic("invalid test")
		}
		tests = append(tests, testToEnum[s])
	}
	for _, s := range sep.Split(*f1, -1) {
		if _, ok := fmtToEnum[s]; !ok {
			panic("invalid format")
		}
		formats = append(formats, fmtToEnum[s])
	}
	codecs = sep.Split(*f2, -1)
	for _, s := range sep.Split(*f3, -1) {
		if _, ok := bench.Transforms[s]; !ok {
			panic("invalid transform")
		}
		xfs = append(xfs, s)
	}
	paths = sep.Split(*f4, -1)
	files = sep.Split(*f5, -1)
	for _, s := range sep.Split(*f6, -1) {
		lvl, err := unitconv.ParsePrefix(s, unitconv.AutoParse)
		if err != nil {
			panic("invalid level")
		}
		levels = append(levels, int(lvl))
	}
	for _, s := range sep.Split(*f7, -1) {
		var size int
		if nf, err := unitconv.ParsePrefix(s, unitconv.AutoParse); err == nil {
			size = int(nf)
		}
		sizes = append(sizes, size)
	}

	ts := time.Now()
	bench.Paths = paths
	runBenchmarks(tests, formats, codecs, xfs, files, levels, sizes)
	te := time.Now()
	fmt.Printf("RUNTIME: %v\n", te.Sub(ts))
}

func runBenchmarks(tests, formats []int, codecs, xfs, files []string, levels, sizes []int) {
	// Progress ticker.
	var cnt, total int
	tick := func() {
		pct := 100.0 * float64(cnt) / float64(total)
		fmt.Printf("\t[%6.2f%%] %d of %d\r", pct, cnt, total)
		cnt++
	}

	for _, t := range tests {
		switch t {
		case testTransformRate:
			fmt.Printf("BENCHMARK: xfRate\n")
			cnt, total = 0, len(xfs)*len(files)*len(sizes)
			results, names := bench.BenchmarkTransformSuite(xfs, files, sizes, tick)
			printResults(results, names, xfs, "MB/s", "")
			fmt.Println()
		case testCompressRatio:
			for _, f := range formats {
				for _, c := range codecs {
					if _, ok := bench.Encoders[f][c]; !ok {
						continue
					}
					fmt.Printf("BENCHMARK: %s:%s:ratio\n", enumToFmt[f], c)
					cnt, total = 0, len(xfs)*len(files)*len(levels)*len(sizes)
					results, names := bench.BenchmarkRatioSuite(f, c, xfs, files, levels, sizes, tick)
					printResults(results, names, xfs, "ratio", "x")
					fmt.Println()
				}
			}
		default:
			panic("unknown test")
		}
	}
}

func printResults(results [][]bench.Result, names, xfs []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(names))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(xfs))
	}

	// Label the header row.
	cells[0][0] = "benchmark"
	for i, x := range xfs {
		cells[0][1+2*i] = x + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Fill in the result rows.
	for i, name := range names {
		cells[1+i][0] = name
		for j := range xfs {
			r := results[i][j]
			if r.R == 0 {
				continue
			}
			cells[1+i][1+2*j] = fmt.Sprintf("%.2f", r.R)
			cells[1+i][2+2*j] = fmt.Sprintf("%.2f%s", r.D, suffix)
		}
	}

	// Compute column widths and print the table.
	widths := make([]int, len(cells[0]))
	for _, row := range cells {
		for j, s := range row {
			if len(s) > widths[j] {
				widths[j] = len(s)
			}
		}
	}
	for _, row := range cells {
		fmt.Printf("\t%-*s", widths[0], row[0])
		for j := 1; j < len(row); j++ {
			fmt.Printf("  %*s", widths[j], row[j])
		}
		fmt.Println()
	}
}
