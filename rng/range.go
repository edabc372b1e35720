// Package rng implements half-open integer ranges, shared by Block,
// String, and Stream as the common element/byte-range type.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package rng

import "fmt"

// Range is the half-open interval [Start, End). Size is End-Start; a
// Range is empty iff End == Start. Callers are expected to maintain
// End >= Start (a Range with End < Start is a programmer error, see
// cmn/debug.Assert call sites in block/xstring).
type Range struct {
	Start, End int
}

// Of constructs a Range over [start, end).
func Of(start, end int) Range { return Range{Start: start, End: end} }

// Sized constructs a Range of the given size starting at start.
func Sized(start, size int) Range { return Range{Start: start, End: start + size} }

// Zero is the empty range at the origin.
var Zero = Range{}

func (r Range) Size() int    { return r.End - r.Start }
func (r Range) IsEmpty() bool { return r.End == r.Start }

// Contains reports whether i lies in [Start, End).
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// ContainsRange reports whether other is fully inside r.
func (r Range) ContainsRange(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Overlaps reports whether r and other share at least one element.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Clamped returns r intersected with [0, limit); if they don't
// intersect the result is the empty range at limit.
func (r Range) Clamped(limit int) Range {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > limit {
		end = limit
	}
	if end < start {
		return Range{Start: limit, End: limit}
	}
	return Range{Start: start, End: end}
}

// Shifted translates both endpoints by delta.
func (r Range) Shifted(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }
