// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package xsync_test

import (
	"sync"
	"testing"
	"time"

	"github.com/tfcore/tf/xsync"
)

func TestMutexRecursiveLock(t *testing.T) {
	m := xsync.NewMutex()
	m.Lock()
	m.Lock() // same goroutine: must not deadlock
	m.Unlock()
	m.Unlock()
}

func TestMutexExcludesOtherGoroutines(t *testing.T) {
	m := xsync.NewMutex()
	m.Lock()
	defer m.Unlock()

	acquired := make(chan struct{})
	go func() {
		m.Lock()
		close(acquired)
		m.Unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("another goroutine should not acquire a held Mutex")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGuard(t *testing.T) {
	m := xsync.NewMutex()
	func() {
		defer xsync.Guard(m)()
		if !m.IsLockedByCurrent() {
			t.Fatal("Guard should hold the lock for the function's duration")
		}
	}()
	if m.IsLockedByCurrent() {
		t.Fatal("Guard's deferred unlock should have released by now")
	}
}

func TestConditionSignal(t *testing.T) {
	m := xsync.NewMutex()
	cond := xsync.NewCondition(m)
	ready := false
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		m.Lock()
		for !ready {
			cond.Wait()
		}
		m.Unlock()
	}()

	time.Sleep(20 * time.Millisecond)
	m.Lock()
	ready = true
	cond.Signal()
	m.Unlock()

	wg.Wait()
}

func TestConditionTimedWaitTimesOut(t *testing.T) {
	m := xsync.NewMutex()
	cond := xsync.NewCondition(m)
	m.Lock()
	defer m.Unlock()
	woke := cond.TimedWait(time.Now().Add(20 * time.Millisecond))
	if woke {
		t.Fatal("TimedWait should report false when the deadline passes with no Signal")
	}
}
