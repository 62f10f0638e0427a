// Copyright 2022, The bnz authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// bnzdbg drives the reference transforms over real inputs so that their
// output can be compared against another implementation without copying
// whole buffers around: the bwt command prints the transform of a single
// line of text, and the rle1 command prints a CRC-32 of each encoded file.
package main

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"io"
	"log"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"

	"github.com/bnzip/bnz"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "bnzdbg",
		Usage: "Verification harness for the bnz reference transforms",
		Commands: []*cli.Command{
			{
				Name:   "bwt",
				Usage:  "Transform one line of text read from stdin",
				Action: runBWT,
			},
			{
				Name:      "rle1",
				Usage:     "Run-length encode files and report each encoded CRC-32",
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "hex",
						Aliases: []string{"x"},
						Usage:   "dump the encoded bytes as hexadecimal instead",
					},
				},
				Action: runRLE1,
			},
		},
	}
}

// runBWT transforms a single terminator-free line and reports the
// transformed bytes, the origin pointer, and the block length.
func runBWT(ctx *cli.Context) error {
	line, err := bufio.NewReader(ctx.App.Reader).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("reading input: %w", err)
	}
	buf := []byte(strings.TrimSuffix(line, "\n"))

	ptr := bnz.EncodeBWT(buf)
	fmt.Fprintf(ctx.App.Writer, "%q\n%d\n%d\n", buf, ptr, len(buf))
	return nil
}

func runRLE1(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.Exit("rle1: no input files", 1)
	}

	// Unreadable inputs are reported together at the end; the transform
	// itself is total and never contributes an error.
	var errs *multierror.Error
	for _, path := range ctx.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		output := bnz.EncodeRLE1(data)
		if ctx.Bool("hex") {
			fmt.Fprintf(ctx.App.Writer, "%s: %x\n", path, output)
		} else {
			fmt.Fprintf(ctx.App.Writer, "%s: %d\n", path, crc32.ChecksumIEEE(output))
		}
	}
	return errs.ErrorOrNil()
}
