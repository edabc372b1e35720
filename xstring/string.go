// Package xstring implements a UTF-8 text type layered on block.Block:
// zero-copy slicing via byte ranges, forward/reverse code-point
// iteration, and locale-independent ordering.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package xstring

import (
	"fmt"
	"unicode/utf8"

	"github.com/tfcore/tf/block"
	"github.com/tfcore/tf/cmn/debug"
	"github.com/tfcore/tf/rng"
)

// String is a Block whose bytes are guaranteed well-formed UTF-8 whenever
// produced through this package's API.
type String struct {
	block.Block
}

func New() String { return String{block.Empty()} }

func FromCStr(s string) String { return String{block.FromCStr(s)} }

func FromBytes(p []byte) String { return String{block.FromBytes(p)} }

// FromRange copies [r.Start, r.End) of s's bytes into a new String.
func FromRange(s string, r rng.Range) String { return FromCStr(s[r.Start:r.End]) }

// FromCodePoints encodes a slice of runes as UTF-8.
func FromCodePoints(cps []rune) String { return FromCStr(string(cps)) }

// Format builds a String the way fmt.Sprintf would.
func Format(format string, a ...any) String { return FromCStr(fmt.Sprintf(format, a...)) }

func (s String) Clone() String { return String{s.Block.Clone()} }

// CStr returns the NUL-terminated-by-construction UTF-8 bytes as a Go
// string (a copy, since Go strings are immutable and Block is not).
func (s String) CStr() string { return string(s.ConstData()) }

// Size is the byte length (spec.md's size_String).
func (s String) Size() int { return s.Block.Size() }

// Length is the code-point count, an O(n) scan (spec.md's length_String).
func (s String) Length() int { return utf8.RuneCount(s.ConstData()) }

// First returns the first code point, or 0 if s is empty.
func (s String) First() rune {
	if s.IsEmpty() {
		return 0
	}
	r, _ := utf8.DecodeRune(s.ConstData())
	return r
}

// Range is the byte range [0, Size()) this String occupies — used with
// the Rangecc-family algorithms (Split, Trim) that operate on
// non-owning (start,end) byte spans rather than making copies.
func (s String) Range() rng.Range { return rng.Of(0, s.Size()) }

// Mid returns a new String of charCount code points starting at the
// charStart'th code point (indices in code points, not bytes): it walks
// forward to locate the corresponding byte range.
func (s String) Mid(charStart, charCount int) String {
	data := s.ConstData()
	bStart := byteOffsetOfRune(data, charStart)
	bEnd := byteOffsetOfRune(data, charStart+charCount)
	return FromBytes(data[bStart:bEnd])
}

func byteOffsetOfRune(data []byte, runeIdx int) int {
	if runeIdx <= 0 {
		return 0
	}
	off, n := 0, 0
	for off < len(data) {
		if n == runeIdx {
			return off
		}
		_, size := utf8.DecodeRune(data[off:])
		off += size
		n++
	}
	debug.Assert(n >= runeIdx, "Mid: charStart/charCount past end of string")
	return off
}

// Set overwrites s's contents wholesale.
func (s *String) Set(other String) { s.Block.SetData(other.ConstData()) }

func (s *String) SetCStr(str string) { s.Block.SetData([]byte(str)) }

func (s *String) FormatSet(format string, a ...any) { s.SetCStr(fmt.Sprintf(format, a...)) }

func (s *String) Append(other String) { s.Block.AppendBytes(other.ConstData()) }

func (s *String) AppendRange(str string, r rng.Range) { s.Block.AppendBytes([]byte(str[r.Start:r.End])) }

func (s *String) AppendChar(cp rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], cp)
	s.Block.AppendBytes(buf[:n])
}

func (s *String) Prepend(other String) {
	s.Block.InsertData(0, other.ConstData())
}

func (s *String) Clear() { s.Block.SetData(nil) }

// Truncate walks N code points and truncates the Block at that byte
// offset.
func (s *String) Truncate(charCount int) {
	off := byteOffsetOfRune(s.ConstData(), charCount)
	s.Block.Truncate(off)
}
