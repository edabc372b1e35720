//go:build !mono

// Package mono provides low-level monotonic time
/*
 * Copyright (c) 2018-2021, NVIDIA CORPORATION. All rights reserved.
 */
package mono

import "time"

// start anchors the portable NanoTime: readings are measured from it with
// the monotonic clock reading that time.Now carries.
var start = time.Now()

// NanoTime returns a monotonic reading in nanoseconds. The //go:linkname
// variant (fast_nanotime.go with the "mono" build tag) reads the
// runtime's clock directly; this is the portable fallback used by
// default builds.
func NanoTime() int64 { return int64(time.Since(start)) }

// Since returns the elapsed duration since a prior NanoTime reading.
func Since(start int64) time.Duration { return time.Duration(NanoTime() - start) }
