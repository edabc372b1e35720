// Copyright (c) 2023, NVIDIA CORPORATION. All rights reserved.
package cos_test

import (
	"testing"

	"github.com/tfcore/tf/cmn/cos"
)

func TestGenUUID(t *testing.T) {
	seen := make(map[string]bool, 100)
	for range 100 {
		id := cos.GenUUID()
		if !cos.IsValidUUID(id) {
			t.Fatalf("generated id %q fails its own validity check", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestGenTie(t *testing.T) {
	a, b := cos.GenTie(), cos.GenTie()
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("expected 3-byte ties, got %q %q", a, b)
	}
	if a == b {
		t.Fatalf("consecutive ties should differ: %q == %q", a, b)
	}
}
