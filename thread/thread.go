// Package thread wraps a goroutine with the lifecycle, result channel,
// and process-wide lookup table (ThreadHash) that spec.md §4.6
// describes: Created -> Running -> Finished, an extra reference held
// for the run function's duration, and a `finished` Audience notified
// on completion.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package thread

import (
	"context"
	"sync/atomic"

	"github.com/tfcore/tf/audience"
	"github.com/tfcore/tf/cmn/cos"
	"github.com/tfcore/tf/cmn/debug"
	"github.com/tfcore/tf/garbage"
	"github.com/tfcore/tf/object"
	"github.com/tfcore/tf/xmetrics"
)

// RunFunc is the worker body. It receives a context that is canceled by
// Terminate when termination was enabled at New — Go has no forcible
// goroutine kill, so cancellation here is cooperative: the function
// must itself observe ctx.Done().
type RunFunc func(ctx context.Context) int

type State int32

const (
	StateCreated State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

var threadClass = &object.ClassDescriptor{
	Name: "Thread",
	New:  func() object.Ref { return &Thread{} },
}

// Thread is an Object subtype wrapping one goroutine.
type Thread struct {
	object.Base

	id                 string
	state              atomic.Int32
	run                RunFunc
	result             int
	finished           *audience.Audience
	terminationEnabled bool
	cancel             context.CancelFunc
	done               chan struct{}
}

type Option func(*Thread)

// WithTermination enables Terminate's cooperative cancellation; without
// it, Terminate is a documented no-op.
func WithTermination() Option { return func(t *Thread) { t.terminationEnabled = true } }

// New creates a Thread in state Created; call Start to run it.
func New(run RunFunc, opts ...Option) *Thread {
	t := object.New(threadClass).(*Thread)
	t.id = cos.GenUUID()
	t.run = run
	t.finished = audience.New()
	t.state.Store(int32(StateCreated))
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Thread) ID() string { return t.id }

func (t *Thread) Finished() *audience.Audience { return t.finished }

func (t *Thread) State() State { return State(t.state.Load()) }

func (t *Thread) IsRunning() bool  { return t.State() == StateRunning }
func (t *Thread) IsFinished() bool { return t.State() == StateFinished }

// Start spawns the goroutine, transitioning Created -> Running.
func (t *Thread) Start() {
	debug.Assert(t.State() == StateCreated, "Thread.Start called more than once")

	ctx := context.Background()
	if t.terminationEnabled {
		ctx, t.cancel = context.WithCancel(ctx)
	}
	t.done = make(chan struct{})

	object.Retain(t) // kept alive for run's duration, mirroring the OS-thread body's extra ref
	t.state.Store(int32(StateRunning))
	xmetrics.ThreadsStarted.Inc()

	go func() {
		register(t)
		garbage.BeginScope()

		t.result = t.run(ctx)

		unregister()
		t.state.Store(int32(StateFinished))
		xmetrics.ThreadsFinished.Inc()
		t.finished.Notify(t)
		garbage.Recycle()
		garbage.Drop()
		close(t.done)
		object.Release(t)
	}()
}

// Join blocks until the thread has finished, without retrieving Result.
func (t *Thread) Join() {
	if t.done != nil {
		<-t.done
	}
}

// Result joins the thread if still running and returns its return code.
func (t *Thread) Result() int {
	t.Join()
	return t.result
}

// Terminate cancels the run context if termination was enabled at New;
// otherwise it is a no-op.
func (t *Thread) Terminate() {
	if t.terminationEnabled && t.cancel != nil {
		t.cancel()
	}
}
