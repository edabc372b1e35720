// Package block implements a copy-on-write byte buffer with an atomic
// ref-count, detach-on-write semantics, and amortised growth.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package block

import (
	"bytes"
	"fmt"
	"sync/atomic"

	"github.com/tfcore/tf/cmn/cos"
	"github.com/tfcore/tf/cmn/debug"
)

// blockData is the shared, ref-counted backing store. buf always has
// len(buf) == allocSize and buf[size] == 0 (the trailing NUL). A single
// process-wide empty singleton is shared by every default-constructed
// Block and is never mutated in place: any mutator first detaches off
// of it.
type blockData struct {
	refs atomic.Int32
	buf  []byte
	size int
}

var empty = &blockData{buf: []byte{0}, size: 0}

func isShared(d *blockData) bool {
	return d == empty || d.refs.Load() > 1
}

func ref(d *blockData) *blockData {
	if d != empty {
		d.refs.Add(1)
	}
	return d
}

func unref(d *blockData) {
	if d == empty {
		return
	}
	d.refs.Add(-1)
	// Go's GC reclaims the backing array once refs drops to zero and no
	// Block handle points at it; there is no explicit free to call here.
}

// Block is a copy-on-write handle over a BlockData. The zero Block is
// valid and shares the empty singleton.
type Block struct {
	d *blockData
}

// New allocates a Block of the given logical size, zero-filled.
func New(size int) Block {
	d := alloc(size)
	return Block{d: d}
}

// Empty returns a Block sharing the process-wide empty singleton.
func Empty() Block { return Block{d: empty} }

// FromBytes copies p into a freshly allocated Block.
func FromBytes(p []byte) Block {
	b := New(len(p))
	copy(b.d.buf, p)
	return b
}

// FromCStr copies the bytes of s into a freshly allocated Block.
func FromCStr(s string) Block { return FromBytes([]byte(s)) }

func alloc(size int) *blockData {
	if size == 0 {
		return empty
	}
	n := nextAlloc(size+1, cos.BlockMinAlloc)
	buf := make([]byte, n)
	d := &blockData{buf: buf, size: size}
	d.refs.Store(1)
	return d
}

func init() {
	// the shared empty singleton's ref count starts at 1 but is never
	// consulted (ref/unref special-case it), matching the spec's
	// "permanently biased so it is never freed".
	empty.refs.Store(1)
}

// nextAlloc is the smallest power-of-two >= requested that is also
// >= current, per the amortised-growth contract in spec.md §4.1.
func nextAlloc(requested, current int) int {
	n := current
	if n < cos.BlockMinAlloc {
		n = cos.BlockMinAlloc
	}
	for n < requested {
		n *= 2
	}
	return n
}

// Clone returns a new handle sharing the same backing storage (O(1));
// the spec's "copying a Block increments the BlockData refcount".
func (b Block) Clone() Block { return Block{d: ref(b.d)} }

// Release drops this handle's reference. Block is otherwise GC-managed
// in Go (there is no destructor to call automatically), so Release only
// matters for code that wants the refcount-driven Clone()/Release()
// discipline to stay symmetric — e.g. for unit tests asserting
// copy-on-write behavior, or for object.Ref types embedding a Block
// field whose Deinit should mirror the C original's deinit chain.
func (b Block) Release() { unref(b.d) }

func (b Block) Size() int { return b.d.size }

func (b Block) IsEmpty() bool { return b.d.size == 0 }

func (b Block) At(i int) byte {
	debug.Assert(i >= 0 && i < b.d.size, "Block.At out of range")
	return b.d.buf[i]
}

func (b Block) Front() byte { return b.At(0) }
func (b Block) Back() byte  { return b.At(b.d.size - 1) }

// ConstData returns the logical bytes without ever detaching — readers
// never trigger a copy.
func (b Block) ConstData() []byte { return b.d.buf[:b.d.size] }

// AllocSize reports the backing buffer's current capacity (size+1 at
// minimum, for the trailing NUL). Exposed mainly for tests asserting
// the growth invariant.
func (b Block) AllocSize() int { return len(b.d.buf) }

// Refs reports the current share count; 1 means this handle is unique.
func (b Block) Refs() int32 {
	if b.d == empty {
		return 1
	}
	return b.d.refs.Load()
}

// detach ensures b.d is uniquely owned, optionally with at least
// minAlloc capacity, cloning BlockData if it was shared. Every mutator
// funnels through this first.
func (b *Block) detach(minAlloc int) {
	if !isShared(b.d) && len(b.d.buf) >= minAlloc {
		return
	}
	n := nextAlloc(minAlloc, len(b.d.buf))
	if n < cos.BlockMinAlloc {
		n = cos.BlockMinAlloc
	}
	nb := make([]byte, n)
	copy(nb, b.d.buf[:b.d.size])
	old := b.d
	b.d = &blockData{buf: nb, size: b.d.size}
	b.d.refs.Store(1)
	unref(old)
}

// Data is the mutable-access mutator: even a caller that ends up not
// writing through it has paid for uniqueness, matching the spec's
// "data() (non-const) is itself a mutator".
func (b *Block) Data() []byte {
	b.detach(b.d.size + 1)
	return b.d.buf[:b.d.size]
}

// Reserve guarantees AllocSize() >= n+1 without changing Size().
func (b *Block) Reserve(n int) {
	b.detach(n + 1)
}

// Resize changes the logical size, zero-filling any newly exposed bytes.
func (b *Block) Resize(n int) {
	debug.Assert(n >= 0, "Block.Resize negative size")
	old := b.d.size
	b.detach(n + 1)
	if n > old {
		clear(b.d.buf[old:n])
	}
	b.d.size = n
	b.d.buf[n] = 0
}

// Truncate shortens the Block to n bytes; n must be <= Size().
func (b *Block) Truncate(n int) {
	debug.Assert(n >= 0 && n <= b.d.size, "Block.Truncate out of range")
	b.detach(b.d.size + 1)
	b.d.size = n
	b.d.buf[n] = 0
}

func (b *Block) PushBack(c byte) {
	b.detach(b.d.size + 2)
	b.d.buf[b.d.size] = c
	b.d.size++
	b.d.buf[b.d.size] = 0
}

func (b *Block) PopBack() byte {
	debug.Assert(b.d.size > 0, "Block.PopBack of empty Block")
	b.detach(b.d.size + 1)
	c := b.d.buf[b.d.size-1]
	b.d.size--
	b.d.buf[b.d.size] = 0
	return c
}

func (b *Block) SetByte(i int, c byte) {
	debug.Assert(i >= 0 && i < b.d.size, "Block.SetByte out of range")
	b.detach(b.d.size + 1)
	b.d.buf[i] = c
}

// SetData replaces the contents wholesale.
func (b *Block) SetData(p []byte) {
	b.detach(len(p) + 1)
	copy(b.d.buf, p)
	b.d.size = len(p)
	b.d.buf[b.d.size] = 0
}

// Append appends other's bytes (a copy of their contents, not a shared
// reference — Block never aliases another Block's storage by range).
func (b *Block) Append(other Block) { b.AppendBytes(other.ConstData()) }

func (b *Block) AppendBytes(p []byte) {
	old := b.d.size
	b.detach(old + len(p) + 1)
	copy(b.d.buf[old:], p)
	b.d.size = old + len(p)
	b.d.buf[b.d.size] = 0
}

// InsertData splices p into the Block at byte offset at.
func (b *Block) InsertData(at int, p []byte) {
	debug.Assert(at >= 0 && at <= b.d.size, "Block.InsertData out of range")
	old := b.d.size
	b.detach(old + len(p) + 1)
	copy(b.d.buf[at+len(p):old+len(p)], b.d.buf[at:old])
	copy(b.d.buf[at:], p)
	b.d.size = old + len(p)
	b.d.buf[b.d.size] = 0
}

// Remove deletes [start, start+count) from the Block.
func (b *Block) Remove(start, count int) {
	debug.Assert(start >= 0 && count >= 0 && start+count <= b.d.size, "Block.Remove out of range")
	b.detach(b.d.size + 1)
	copy(b.d.buf[start:], b.d.buf[start+count:b.d.size])
	b.d.size -= count
	b.d.buf[b.d.size] = 0
}

// Printf overwrites the Block with a formatted string.
func (b *Block) Printf(format string, a ...any) {
	b.SetData([]byte(fmt.Sprintf(format, a...)))
}

// Mid returns a new Block holding count bytes starting at byte start (a
// copy, not a view — Block handles always own a complete, NUL-terminated
// backing array).
func (b Block) Mid(start, count int) Block {
	debug.Assert(start >= 0 && count >= 0 && start+count <= b.d.size, "Block.Mid out of range")
	return FromBytes(b.d.buf[start : start+count])
}

// Cmp is the prefix-aware comparator: if one side is a proper prefix of
// the other, the shorter one compares less.
func (b Block) Cmp(other Block) int { return bytes.Compare(b.ConstData(), other.ConstData()) }

func (b Block) CmpData(p []byte) int { return bytes.Compare(b.ConstData(), p) }

func (b Block) CmpCStr(s string) int { return bytes.Compare(b.ConstData(), []byte(s)) }

func (b Block) Equal(other Block) bool { return b.Cmp(other) == 0 }
