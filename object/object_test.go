// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package object_test

import (
	"testing"

	"github.com/tfcore/tf/object"
)

type widget struct {
	object.Base
	deinited bool
}

var widgetClass = &object.ClassDescriptor{
	Name: "widget",
	New:  func() object.Ref { return &widget{} },
	Deinit: func(r object.Ref) {
		r.(*widget).deinited = true
	},
}

type gadget struct {
	widget
}

var gadgetClass = &object.ClassDescriptor{
	Name:  "gadget",
	Super: widgetClass,
	New:   func() object.Ref { return &gadget{} },
}

func TestNewRetainRelease(t *testing.T) {
	r := object.New(widgetClass)
	if object.Refs(r) != 1 {
		t.Fatalf("Refs() = %d, want 1", object.Refs(r))
	}
	object.Retain(r)
	if object.Refs(r) != 2 {
		t.Fatalf("Refs() = %d, want 2", object.Refs(r))
	}
	object.Release(r)
	if r.(*widget).deinited {
		t.Fatal("deinit ran too early")
	}
	object.Release(r)
	if !r.(*widget).deinited {
		t.Fatal("deinit should run when refcount reaches 0")
	}
}

func TestIsInstance(t *testing.T) {
	g := object.New(gadgetClass)
	if !object.IsInstanceOf(g, gadgetClass) {
		t.Fatal("gadget should be an instance of gadgetClass")
	}
	if !object.IsInstanceOf(g, widgetClass) {
		t.Fatal("gadget should be an instance of its super class widgetClass")
	}
}

func TestDetachCallbackRunsOnce(t *testing.T) {
	r := object.New(widgetClass)
	n := 0
	r.(*widget).RegisterDetach(func() { n++ })
	r.(*widget).RegisterDetach(func() { n++ })
	object.Release(r)
	if n != 2 {
		t.Fatalf("detach callbacks ran %d times, want 2", n)
	}
}
