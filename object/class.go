// Package object implements the intrusive reference-counted Object
// model: a ClassDescriptor chain for sub-typing, an embeddable Base
// carrying the atomic refcount and class pointer, and a serialize/
// deserialize dispatch hook.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package object

import (
	"io"

	"github.com/tfcore/tf/cmn/debug"
)

// ClassDescriptor is a static, immutable description of an Object type:
// a name for diagnostics, an optional super-class for sub-typing, and
// optional serialize/deserialize hooks. There is no instanceSize field
// as in the C original — Go allocates concrete struct types directly,
// so New is the factory in place of an instanceSize + memset.
type ClassDescriptor struct {
	Name        string
	Super       *ClassDescriptor
	New         func() Ref
	Deinit      func(Ref)
	Serialize   func(Ref, io.Writer) error
	Deserialize func(Ref, io.Reader) error
}

// IsInstance reports whether class c (or any of its ancestors) matches
// target, walking the super chain exactly like the original's
// class_Of/isInstance walk.
func IsInstance(c *ClassDescriptor, target *ClassDescriptor) bool {
	for cur := c; cur != nil; cur = cur.Super {
		if cur == target {
			return true
		}
	}
	return false
}

// deinitChain runs class.Deinit from most-derived to root. r's dynamic
// Class() is already the most-derived descriptor (set once at
// construction and never reassigned), so walking Super from there
// yields the required most-derived-to-root order.
func deinitChain(r Ref) {
	for c := r.Class(); c != nil; c = c.Super {
		if c.Deinit != nil {
			c.Deinit(r)
		}
	}
}

// requireSerialize and requireDeserialize panic in debug builds if class
// omits the hook a caller
// is about to dispatch through, matching "classes that omit these fail
// a debug assertion when used so".
func requireSerialize(c *ClassDescriptor) {
	debug.Assert(c.Serialize != nil, "class "+c.Name+" has no Serialize hook")
}

func requireDeserialize(c *ClassDescriptor) {
	debug.Assert(c.Deserialize != nil, "class "+c.Name+" has no Deserialize hook")
}
