// Package xsync implements the recursive Mutex and the Mutex-bound
// Condition that the rest of this module's synchronisation is built on.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package xsync

import (
	"sync"

	"github.com/tfcore/tf/garbage"
)

// Mutex is re-entrant by the owning goroutine, unlike sync.Mutex: the
// same goroutine may Lock it again without deadlocking, and must Unlock
// it the same number of times. Every other goroutine blocks as usual.
type Mutex struct {
	mu    sync.Mutex
	cond  sync.Cond
	owner uint64
	depth int
}

func NewMutex() *Mutex {
	m := &Mutex{}
	m.cond.L = &m.mu
	return m
}

func (m *Mutex) Lock() {
	id := garbage.GoroutineID()
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.depth > 0 && m.owner != id {
		m.cond.Wait()
	}
	m.owner = id
	m.depth++
}

func (m *Mutex) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assertHeldLocked()
	m.depth--
	if m.depth == 0 {
		m.owner = 0
		m.cond.Broadcast()
	}
}

// TryLock attempts to acquire m without blocking.
func (m *Mutex) TryLock() bool {
	id := garbage.GoroutineID()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.depth > 0 && m.owner != id {
		return false
	}
	m.owner = id
	m.depth++
	return true
}

// IsLockedByCurrent reports whether the calling goroutine already holds
// m, for debug.AssertMutexLocked-style call-site assertions.
func (m *Mutex) IsLockedByCurrent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.depth > 0 && m.owner == garbage.GoroutineID()
}

func (m *Mutex) assertHeldLocked() {
	if m.depth == 0 || m.owner != garbage.GoroutineID() {
		panic("xsync: Unlock of a Mutex not held by the calling goroutine")
	}
}

// unlockAll fully releases m (dropping every recursive level the
// calling goroutine holds) and reports how many levels there were, for
// Condition.Wait to restore after waking.
func (m *Mutex) unlockAll() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assertHeldLocked()
	depth := m.depth
	m.depth = 0
	m.owner = 0
	m.cond.Broadcast()
	return depth
}

// relockDepth reacquires m at the given recursion depth.
func (m *Mutex) relockDepth(depth int) {
	id := garbage.GoroutineID()
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.depth > 0 && m.owner != id {
		m.cond.Wait()
	}
	m.owner = id
	m.depth = depth
}
