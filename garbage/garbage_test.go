// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package garbage_test

import (
	"testing"

	"github.com/tfcore/tf/garbage"
)

func TestScopeLIFO(t *testing.T) {
	garbage.BeginScope()
	var order []int
	garbage.Collect(1, func(p any) { order = append(order, p.(int)) })
	garbage.Collect(2, func(p any) { order = append(order, p.(int)) })
	garbage.Collect(3, func(p any) { order = append(order, p.(int)) })
	garbage.EndScope()

	want := []int{3, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestNestedScopes(t *testing.T) {
	garbage.BeginScope()
	defer garbage.EndScope()

	ran := false
	garbage.BeginScope()
	garbage.Collect(nil, func(any) { ran = true })
	garbage.EndScope()

	if !ran {
		t.Fatal("inner scope deleter did not run on inner EndScope")
	}
	if garbage.Depth() != 1 {
		t.Fatalf("depth = %d, want 1 after inner scope closed", garbage.Depth())
	}
}

func TestRecycle(t *testing.T) {
	garbage.BeginScope()
	defer garbage.EndScope()

	ran := false
	garbage.Collect(nil, func(any) { ran = true })
	garbage.Recycle()
	if !ran {
		t.Fatal("Recycle should run the old frame's deleters")
	}
	if garbage.Depth() != 1 {
		t.Fatalf("depth = %d, want 1 after Recycle", garbage.Depth())
	}
}

func TestEndScopeWithoutBeginPanics(t *testing.T) {
	// debug builds panic in debug.Assert; other builds panic indexing the
	// empty frame stack.
	defer func() {
		if recover() == nil {
			t.Fatal("EndScope with no open scope should panic")
		}
	}()
	garbage.EndScope()
}
