package stream

import (
	"encoding/binary"
	"io"

	"github.com/tfcore/tf/block"
	"github.com/tfcore/tf/cmn/debug"
	"github.com/tfcore/tf/xsync"
)

// Buffer is a Stream over a Block: openEmpty starts empty and
// read-write; Open is read-only over the caller's Block (shared, not
// copied, via Block's own copy-on-write Clone); OpenData takes
// ownership of the caller's Block for read-write use.
type Buffer struct {
	mu            *xsync.Mutex
	dataAvailable *xsync.Condition
	data          block.Block
	pos           int
	order         binary.ByteOrder
	readOnly      bool
}

func newBuffer() *Buffer {
	b := &Buffer{order: binary.LittleEndian}
	b.mu = xsync.NewMutex()
	b.dataAvailable = xsync.NewCondition(b.mu)
	return b
}

func OpenEmpty() *Buffer {
	b := newBuffer()
	b.data = block.Empty()
	return b
}

// Open is read-only over other's bytes: no copy is made (Clone is O(1)
// and copy-on-write protects other from any mutation here, which would
// be rejected anyway since b is read-only).
func Open(other block.Block) *Buffer {
	b := newBuffer()
	b.data = other.Clone()
	b.readOnly = true
	return b
}

// OpenData takes ownership of other for read-write use.
func OpenData(other block.Block) *Buffer {
	b := newBuffer()
	b.data = other
	return b
}

func (b *Buffer) ByteOrder() binary.ByteOrder     { return b.order }
func (b *Buffer) SetByteOrder(o binary.ByteOrder) { b.order = o }

func (b *Buffer) Pos() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int64(b.pos)
}

func (b *Buffer) Size() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int64(b.data.Size())
}

// Seek sets the absolute position, clamped to [0, Size()].
func (b *Buffer) Seek(offset int64) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if offset < 0 {
		offset = 0
	}
	if int(offset) > b.data.Size() {
		offset = int64(b.data.Size())
	}
	b.pos = int(offset)
	return int64(b.pos)
}

func (b *Buffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	avail := b.data.Size() - b.pos
	if avail <= 0 {
		return 0, io.EOF
	}
	n := copy(p, b.data.ConstData()[b.pos:])
	b.pos += n
	return n, nil
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	debug.Assert(!b.readOnly, "Write on a read-only Buffer")

	needed := b.pos + len(p)
	prevSize := b.data.Size()
	if needed > prevSize {
		b.data.Resize(needed)
	}
	mutable := b.data.Data()
	copy(mutable[b.pos:], p)
	b.pos += len(p)

	if b.data.Size() > prevSize {
		b.dataAvailable.Broadcast()
	}
	return len(p), nil
}

// Flush drains any implementation buffers; a no-op for the in-memory
// Buffer, which has none.
func (b *Buffer) Flush() error { return nil }

// WaitForData blocks until Size() exceeds last, for a consumer that
// wants new bytes without polling.
func (b *Buffer) WaitForData(last int64) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	for int64(b.data.Size()) <= last {
		b.dataAvailable.Wait()
	}
	return int64(b.data.Size())
}

// Reset discards all buffered data and rewinds to position zero, for a
// producer/consumer Buffer (e.g. Socket's output queue) that has just
// been fully drained and is about to be reused as empty.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	debug.Assert(!b.readOnly, "Reset on a read-only Buffer")
	b.data = block.Empty()
	b.pos = 0
}

func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.data.ConstData()...)
}
