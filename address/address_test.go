// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package address_test

import (
	"testing"

	"github.com/tfcore/tf/address"
)

func TestLookupLocalhost(t *testing.T) {
	a := address.LookupHostCStr("localhost", 8080)
	a.WaitForFinished()
	if !a.IsValid() {
		t.Fatalf("expected localhost to resolve, status = %v", a.Status())
	}
	ep, ok := a.SocketParameters()
	if !ok {
		t.Fatal("expected at least one endpoint")
	}
	if ep.Port != 8080 {
		t.Fatalf("Port = %d, want 8080", ep.Port)
	}
	if a.ToString() == "" {
		t.Fatal("ToString() should not be empty once resolved")
	}
}

func TestLookupInvalidHost(t *testing.T) {
	a := address.LookupHostCStr("this-host-does-not-exist.invalid", 80)
	a.WaitForFinished()
	if a.Status() != address.StatusInvalid {
		t.Fatalf("status = %v, want StatusInvalid", a.Status())
	}
	if _, ok := a.SocketParameters(); ok {
		t.Fatal("expected no endpoints for an invalid host")
	}
}
