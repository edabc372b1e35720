// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package rng_test

import (
	"testing"

	"github.com/tfcore/tf/rng"
)

func TestBasics(t *testing.T) {
	r := rng.Of(3, 7)
	if r.Size() != 4 {
		t.Fatalf("size = %d, want 4", r.Size())
	}
	if r.IsEmpty() {
		t.Fatal("non-empty range reported empty")
	}
	if !rng.Zero.IsEmpty() {
		t.Fatal("zero range should be empty")
	}
	if !r.Contains(3) || r.Contains(7) || !r.Contains(6) {
		t.Fatal("Contains boundary semantics wrong")
	}
}

func TestOverlapsAndContainsRange(t *testing.T) {
	a := rng.Of(0, 10)
	b := rng.Of(5, 15)
	c := rng.Of(10, 20)
	if !a.Overlaps(b) {
		t.Fatal("a and b should overlap")
	}
	if a.Overlaps(c) {
		t.Fatal("half-open ranges sharing only the boundary should not overlap")
	}
	if !a.ContainsRange(rng.Of(2, 8)) {
		t.Fatal("a should contain [2,8)")
	}
	if a.ContainsRange(b) {
		t.Fatal("a should not contain b")
	}
}

func TestClamped(t *testing.T) {
	r := rng.Of(-5, 20).Clamped(10)
	if r != rng.Of(0, 10) {
		t.Fatalf("clamped = %v, want [0,10)", r)
	}
	empty := rng.Of(15, 20).Clamped(10)
	if !empty.IsEmpty() {
		t.Fatalf("out-of-bounds range should clamp to empty, got %v", empty)
	}
}
