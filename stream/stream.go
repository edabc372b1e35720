// Package stream implements the abstract Stream contract (seek/read/
// write/flush plus endian-aware numeric codecs) and Buffer, the
// in-memory Stream over a block.Block.
/*
 * Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
 */
package stream

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/tfcore/tf/block"
	"github.com/tfcore/tf/xstring"
)

// Stream is the abstract seek/read/write/flush contract that Buffer and
// Socket implement (TlsRequest is not a Stream). It
// embeds io.Reader/io.Writer so a Stream is usable directly with
// anything expecting those, including encoding/gob-style codecs.
type Stream interface {
	io.Reader
	io.Writer

	// Seek sets the absolute byte position. On a non-seekable Stream it
	// leaves the position unchanged and returns it as-is.
	Seek(offset int64) int64
	Flush() error
	Pos() int64
	Size() int64
	ByteOrder() binary.ByteOrder
	SetByteOrder(binary.ByteOrder)
}

func readExact(s Stream, n int) ([]byte, error) {
	buf := make([]byte, n)
	read := 0
	for read < n {
		k, err := s.Read(buf[read:])
		read += k
		if err != nil {
			if read == n {
				return buf, nil
			}
			return buf[:read], err
		}
		if k == 0 {
			return buf[:read], io.ErrUnexpectedEOF
		}
	}
	return buf, nil
}

func ReadUint8(s Stream) (uint8, error) {
	b, err := readExact(s, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func ReadUint16(s Stream) (uint16, error) {
	b, err := readExact(s, 2)
	if err != nil {
		return 0, err
	}
	return s.ByteOrder().Uint16(b), nil
}

func ReadUint32(s Stream) (uint32, error) {
	b, err := readExact(s, 4)
	if err != nil {
		return 0, err
	}
	return s.ByteOrder().Uint32(b), nil
}

func ReadUint64(s Stream) (uint64, error) {
	b, err := readExact(s, 8)
	if err != nil {
		return 0, err
	}
	return s.ByteOrder().Uint64(b), nil
}

func ReadInt16(s Stream) (int16, error) { v, err := ReadUint16(s); return int16(v), err }
func ReadInt32(s Stream) (int32, error) { v, err := ReadUint32(s); return int32(v), err }
func ReadInt64(s Stream) (int64, error) { v, err := ReadUint64(s); return int64(v), err }

func ReadFloat32(s Stream) (float32, error) {
	v, err := ReadUint32(s)
	return math.Float32frombits(v), err
}

func ReadFloat64(s Stream) (float64, error) {
	v, err := ReadUint64(s)
	return math.Float64frombits(v), err
}

func WriteUint8(s Stream, v uint8) error {
	_, err := s.Write([]byte{v})
	return err
}

func WriteUint16(s Stream, v uint16) error {
	b := make([]byte, 2)
	s.ByteOrder().PutUint16(b, v)
	_, err := s.Write(b)
	return err
}

func WriteUint32(s Stream, v uint32) error {
	b := make([]byte, 4)
	s.ByteOrder().PutUint32(b, v)
	_, err := s.Write(b)
	return err
}

func WriteUint64(s Stream, v uint64) error {
	b := make([]byte, 8)
	s.ByteOrder().PutUint64(b, v)
	_, err := s.Write(b)
	return err
}

func WriteInt16(s Stream, v int16) error { return WriteUint16(s, uint16(v)) }
func WriteInt32(s Stream, v int32) error { return WriteUint32(s, uint32(v)) }
func WriteInt64(s Stream, v int64) error { return WriteUint64(s, uint64(v)) }

func WriteFloat32(s Stream, v float32) error { return WriteUint32(s, math.Float32bits(v)) }
func WriteFloat64(s Stream, v float64) error { return WriteUint64(s, math.Float64bits(v)) }

// ReadAll reads until EOF into a fresh Block.
func ReadAll(s Stream) (block.Block, error) {
	var buf []byte
	chunk := make([]byte, 4096)
	for {
		n, err := s.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err == io.EOF {
			return block.FromBytes(buf), nil
		}
		if err != nil {
			return block.FromBytes(buf), err
		}
		if n == 0 {
			return block.FromBytes(buf), nil
		}
	}
}

// ReadString returns the remaining contents as a String.
func ReadString(s Stream) (xstring.String, error) {
	b, err := ReadAll(s)
	return xstring.String{Block: b}, err
}

// ReadLines splits the remaining UTF-8 contents on "\n".
func ReadLines(s Stream) ([]xstring.String, error) {
	str, err := ReadString(s)
	if err != nil && err != io.EOF {
		return nil, err
	}
	parts := xstring.SplitStrings(str.CStr(), "\n")
	lines := make([]xstring.String, len(parts))
	for i, p := range parts {
		lines[i] = xstring.FromCStr(p)
	}
	return lines, nil
}
