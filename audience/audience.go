// Package audience implements the sorted observer set: Insert is
// idempotent, Notify tolerates observers that mutate the set during
// iteration, and a destroyed receiver is automatically dropped from
// every Audience that still holds it (object.Base.RegisterDetach).
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package audience

import (
	"reflect"
	"sort"
	"sync"

	"github.com/tfcore/tf/object"
)

// Callback is invoked as fn(receiver, subject, args...) during Notify.
type Callback func(receiver object.Ref, subject object.Ref, args ...any)

type observer struct {
	receiver object.Ref
	fn       Callback
	sig      string  // receiver's debug signature: the sort key's first component
	fnAddr   uintptr // fn's code pointer: the sort key's tiebreaker
}

func (o observer) less(other observer) bool {
	if o.sig != other.sig {
		return o.sig < other.sig
	}
	return o.fnAddr < other.fnAddr
}

func (o observer) equalKey(other observer) bool {
	return o.sig == other.sig && o.fnAddr == other.fnAddr
}

func funcAddr(fn Callback) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// Audience is a sorted set of Observers.
type Audience struct {
	mu        sync.Mutex
	observers []observer
}

func New() *Audience { return &Audience{} }

func makeObserver(receiver object.Ref, fn Callback) observer {
	return observer{receiver: receiver, fn: fn, sig: object.Signature(receiver), fnAddr: funcAddr(fn)}
}

func locate(observers []observer, key observer) (idx int, found bool) {
	idx = sort.Search(len(observers), func(i int) bool { return !observers[i].less(key) })
	found = idx < len(observers) && observers[idx].equalKey(key)
	return idx, found
}

// Insert adds (receiver, fn) if not already present and reports
// whether it was new. On first insertion of this receiver, the
// Audience registers a detach callback with the receiver so that its
// destruction removes it from this Audience automatically.
func (a *Audience) Insert(receiver object.Ref, fn Callback) bool {
	key := makeObserver(receiver, fn)

	a.mu.Lock()
	idx, found := locate(a.observers, key)
	if found {
		a.mu.Unlock()
		return false
	}
	a.observers = insertAt(a.observers, idx, key)
	hadOther := a.hasReceiverLocked(receiver, idx)
	a.mu.Unlock()

	if !hadOther {
		object.RegisterDetach(receiver, func() { a.RemoveObject(receiver) })
	}
	return true
}

// hasReceiverLocked reports whether any observer other than the one at
// skipIdx still references receiver; callers hold a.mu.
func (a *Audience) hasReceiverLocked(receiver object.Ref, skipIdx int) bool {
	sig := object.Signature(receiver)
	for i, o := range a.observers {
		if i != skipIdx && o.sig == sig {
			return true
		}
	}
	return false
}

// Remove deletes exactly the (receiver, fn) pair, reporting whether it
// was present.
func (a *Audience) Remove(receiver object.Ref, fn Callback) bool {
	key := makeObserver(receiver, fn)
	a.mu.Lock()
	defer a.mu.Unlock()
	idx, found := locate(a.observers, key)
	if !found {
		return false
	}
	a.observers = append(a.observers[:idx], a.observers[idx+1:]...)
	return true
}

// RemoveObject deletes every observer whose receiver is receiver.
func (a *Audience) RemoveObject(receiver object.Ref) {
	sig := object.Signature(receiver)
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.observers[:0]
	for _, o := range a.observers {
		if o.sig != sig {
			out = append(out, o)
		}
	}
	a.observers = out
}

// Notify invokes fn(receiver, subject, args...) on a snapshot of the
// sorted observer set taken at entry; inserts/removes triggered by a
// callback affect only subsequent Notify calls.
func (a *Audience) Notify(subject object.Ref, args ...any) {
	a.mu.Lock()
	snapshot := make([]observer, len(a.observers))
	copy(snapshot, a.observers)
	a.mu.Unlock()

	for _, o := range snapshot {
		o.fn(o.receiver, subject, args...)
	}
}

func (a *Audience) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.observers)
}

func insertAt(observers []observer, idx int, o observer) []observer {
	observers = append(observers, observer{})
	copy(observers[idx+1:], observers[idx:])
	observers[idx] = o
	return observers
}
