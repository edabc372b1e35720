// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package garbage

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID extracts the numeric id the runtime prints at the head of
// a goroutine's stack trace. It is not a public Go API and exists solely
// to key the per-goroutine scope stack; callers never see this value.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if bytes.HasPrefix(b, []byte(prefix)) {
		b = b[len(prefix):]
		if i := bytes.IndexByte(b, ' '); i >= 0 {
			b = b[:i]
		}
		if id, err := strconv.ParseUint(string(b), 10, 64); err == nil {
			return id
		}
	}
	return 0
}

// GoroutineID is the exported form, reused by package xsync to key its
// recursive-mutex ownership map by the same identity this package uses
// to key scope stacks.
func GoroutineID() uint64 { return goroutineID() }
