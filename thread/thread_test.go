// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package thread_test

import (
	"context"
	"testing"
	"time"

	"github.com/tfcore/tf/object"
	"github.com/tfcore/tf/thread"
)

func TestLifecycleResult(t *testing.T) {
	th := thread.New(func(ctx context.Context) int { return 42 })
	if th.State() != thread.StateCreated {
		t.Fatalf("state = %v, want Created", th.State())
	}
	th.Start()
	if got := th.Result(); got != 42 {
		t.Fatalf("Result() = %d, want 42", got)
	}
	if !th.IsFinished() {
		t.Fatal("expected IsFinished after Result()")
	}
}

func TestFinishedAudienceNotified(t *testing.T) {
	th := thread.New(func(ctx context.Context) int { return 0 })
	notified := make(chan struct{})
	th.Finished().Insert(newObserver(), func(recv object.Ref, subject object.Ref, _ ...any) {
		close(notified)
	})
	th.Start()
	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("finished audience was never notified")
	}
}

func TestCurrentThreadFromWithin(t *testing.T) {
	found := make(chan *thread.Thread, 1)
	var th *thread.Thread
	th = thread.New(func(ctx context.Context) int {
		found <- thread.CurrentThread()
		return 0
	})
	th.Start()
	got := <-found
	if got != th {
		t.Fatalf("CurrentThread() inside run = %v, want %v", got, th)
	}
	th.Join()
}

func TestTerminateCooperative(t *testing.T) {
	th := thread.New(func(ctx context.Context) int {
		<-ctx.Done()
		return -1
	}, thread.WithTermination())
	th.Start()
	time.Sleep(10 * time.Millisecond)
	th.Terminate()
	if got := th.Result(); got != -1 {
		t.Fatalf("Result() = %d, want -1", got)
	}
}

type observerObj struct {
	object.Base
}

var observerClass = &object.ClassDescriptor{
	Name: "observer",
	New:  func() object.Ref { return &observerObj{} },
}

func newObserver() *observerObj {
	return object.New(observerClass).(*observerObj)
}
