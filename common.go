// Copyright 2022, The bnz authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bnz implements the block-sorting front end of the BZip2
// compressed data format: the first-stage run-length encoder (RLE1) and
// the forward Burrows-Wheeler transform.
//
// The encoders here are reference implementations. They favor obviously
// correct constructions over speed so that optimized implementations
// (a linear time suffix array sort, a vectorized run scanner) can be
// checked against them byte-for-byte. Both transforms operate on a fully
// materialized in-memory block and are total over their input domain.
package bnz

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "bnz: " + string(e) }
