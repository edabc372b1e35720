// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package tlsreq_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestTlsRequest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, t.Name())
}
