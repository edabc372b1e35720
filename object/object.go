package object

import (
	"sync"
	"sync/atomic"

	"github.com/tfcore/tf/cmn/debug"
)

// Ref is implemented by every Object subtype's pointer receiver, the
// Go stand-in for the C original's `Object*` plus class-chain vtable
// walk. base() is unexported so only types embedding Base (in any
// package) can satisfy Ref — embedding promotes it across package
// boundaries, the way sort.Interface-style sealed interfaces work.
type Ref interface {
	Class() *ClassDescriptor
	base() *Base
}

// Base is embedded as the first field of every concrete Object type.
// It carries the atomic refcount and the class pointer, and a set of
// opaque detach callbacks that Audiences register when they take this
// object on as a receiver (object.Base's AudienceMember back-reference,
// kept free of any import on package audience to avoid a dependency
// cycle — an Audience registers `func() { a.RemoveObject(self) }`here
// and Base invokes every registered callback exactly once at deinit).
type Base struct {
	class    *ClassDescriptor
	refs     atomic.Int32
	mu       sync.Mutex
	onDeinit []func()
	sig      string
}

// Init must be called by every constructor before the new Object is
// handed out, the Go equivalent of new_Object's {class, refcount=1}.
func (b *Base) Init(class *ClassDescriptor) {
	b.class = class
	b.refs.Store(1)
}

func (b *Base) Class() *ClassDescriptor { return b.class }

func (b *Base) base() *Base { return b }

// RegisterDetach records a callback to run exactly once when this
// object's refcount reaches zero — an Audience calls this when it
// inserts the object as an observer's receiver.
func (b *Base) RegisterDetach(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onDeinit = append(b.onDeinit, fn)
}

// New allocates and initializes a fresh instance via class.New,
// matching new_Object(class).
func New(class *ClassDescriptor) Ref {
	debug.Assert(class.New != nil, "class "+class.Name+" has no New factory")
	r := class.New()
	r.base().Init(class)
	return r
}

// Retain increments r's refcount and returns r (or nil passthrough),
// matching ref_Object.
func Retain(r Ref) Ref {
	if r == nil {
		return nil
	}
	r.base().refs.Add(1)
	return r
}

// Release decrements r's refcount; at zero it runs the class-chain
// deinit (most-derived to root) and every registered detach callback,
// matching deref_Object.
func Release(r Ref) {
	if r == nil {
		return
	}
	b := r.base()
	if b.refs.Add(-1) != 0 {
		return
	}
	deinitChain(r)
	b.mu.Lock()
	detach := b.onDeinit
	b.onDeinit = nil
	b.mu.Unlock()
	for _, fn := range detach {
		fn()
	}
}

// Refs reports the current refcount, mainly for tests and assertions.
func Refs(r Ref) int32 {
	if r == nil {
		return 0
	}
	return r.base().refs.Load()
}

// RegisterDetach is the per-Ref convenience wrapper around
// Base.RegisterDetach, used by package audience to hook an Audience's
// RemoveObject into a receiver's deinit.
func RegisterDetach(r Ref, fn func()) {
	r.base().RegisterDetach(fn)
}

// IsInstanceOf is the per-Ref convenience wrapper around IsInstance.
func IsInstanceOf(r Ref, target *ClassDescriptor) bool {
	if r == nil {
		return false
	}
	return IsInstance(r.Class(), target)
}
