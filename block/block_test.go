// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package block_test

import (
	"testing"

	"github.com/tfcore/tf/block"
)

// scenario 1 from spec.md §8: Block copy-on-write.
func TestCopyOnWrite(t *testing.T) {
	a := block.FromCStr("Hello")
	b := a.Clone()

	a.AppendBytes([]byte(" World"))

	if string(a.ConstData()) != "Hello World" {
		t.Fatalf("a = %q, want %q", a.ConstData(), "Hello World")
	}
	if string(b.ConstData()) != "Hello" {
		t.Fatalf("b = %q, want %q (copy-on-write should leave it unchanged)", b.ConstData(), "Hello")
	}
}

func TestTrailingNUL(t *testing.T) {
	b := block.FromCStr("abc")
	raw := b.Data()
	if b.AllocSize() < b.Size()+1 {
		t.Fatalf("allocSize %d must be >= size+1 (%d)", b.AllocSize(), b.Size()+1)
	}
	if raw[:b.Size()+1][b.Size()] != 0 {
		t.Fatalf("byte at Size() must be the trailing NUL, got %#x", raw[:b.Size()+1][b.Size()])
	}
}

func TestGrowthInvariant(t *testing.T) {
	b := block.New(0)
	n := 0
	reallocs := 0
	lastAlloc := b.AllocSize()
	for i := 0; i < 10000; i++ {
		b.PushBack(byte(i))
		n++
		if b.AllocSize() != lastAlloc {
			reallocs++
			lastAlloc = b.AllocSize()
		}
	}
	if b.AllocSize() < n+1 {
		t.Fatalf("allocSize %d < n+1 (%d)", b.AllocSize(), n+1)
	}
	// O(log N) reallocations for N appends under doubling growth.
	if reallocs > 20 {
		t.Fatalf("too many reallocations: %d for %d appends", reallocs, n)
	}
}

func TestMutatorsPreserveReaderIsolation(t *testing.T) {
	a := block.FromCStr("base")
	b := a.Clone()
	a.SetByte(0, 'B')
	if b.At(0) != 'b' {
		t.Fatalf("mutating a's unique copy should not affect b")
	}
}

func TestRemoveInsert(t *testing.T) {
	b := block.FromCStr("Hello World")
	b.Remove(5, 1) // drop the space
	if string(b.ConstData()) != "HelloWorld" {
		t.Fatalf("got %q", b.ConstData())
	}
	b.InsertData(5, []byte(" "))
	if string(b.ConstData()) != "Hello World" {
		t.Fatalf("got %q", b.ConstData())
	}
}

func TestMid(t *testing.T) {
	b := block.FromCStr("Hello World")
	m := b.Mid(6, 5)
	if string(m.ConstData()) != "World" {
		t.Fatalf("got %q", m.ConstData())
	}
}

func TestCmpPrefix(t *testing.T) {
	short := block.FromCStr("Hello")
	long := block.FromCStr("Hello!")
	if short.Cmp(long) >= 0 {
		t.Fatalf("a proper prefix must compare less than the longer string")
	}
}

func TestCompressRoundTrip(t *testing.T) {
	orig := block.FromCStr("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly, repeatedly")
	for _, codec := range []block.Codec{block.CodecZlib, block.CodecLZ4} {
		c, err := orig.Compress(codec, 6)
		if err != nil {
			t.Fatalf("compress: %v", err)
		}
		d, err := c.Decompress(codec)
		if err != nil {
			t.Fatalf("decompress: %v", err)
		}
		if !d.Equal(orig) {
			t.Fatalf("round trip mismatch for codec %d: got %q", codec, d.ConstData())
		}
	}
}

func TestDigestsStable(t *testing.T) {
	a := block.FromCStr("stable content")
	b := block.FromCStr("stable content")
	if a.CRC32() != b.CRC32() {
		t.Fatal("CRC32 should be stable for equal content")
	}
	if a.MD5() != b.MD5() {
		t.Fatal("MD5 should be stable for equal content")
	}
	if a.XXHash() != b.XXHash() {
		t.Fatal("XXHash should be stable for equal content")
	}
}
