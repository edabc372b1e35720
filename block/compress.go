// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package block

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v3"
)

// Codec selects which compressor Compress/Decompress use. zlib is the
// spec's named "optionally zlib" runtime dependency (§6); lz4 is offered
// alongside it as a faster, lower-ratio alternative pulled from the
// retrieval pack's third-party stack.
type Codec int

const (
	CodecZlib Codec = iota
	CodecLZ4
)

// Compress returns a new Block holding the compressed form of b's
// current contents at the given codec's level (zlib levels 0-9; lz4
// ignores level and always compresses at its single default setting).
func (b Block) Compress(codec Codec, level int) (Block, error) {
	var out bytes.Buffer
	switch codec {
	case CodecZlib:
		w, err := zlib.NewWriterLevel(&out, level)
		if err != nil {
			return Block{}, err
		}
		if _, err := w.Write(b.ConstData()); err != nil {
			return Block{}, err
		}
		if err := w.Close(); err != nil {
			return Block{}, err
		}
	case CodecLZ4:
		w := lz4.NewWriter(&out)
		if _, err := w.Write(b.ConstData()); err != nil {
			return Block{}, err
		}
		if err := w.Close(); err != nil {
			return Block{}, err
		}
	}
	return FromBytes(out.Bytes()), nil
}

// Decompress returns a new Block holding the decompressed form of b's
// current contents, which must have been produced by Compress with the
// same codec.
func (b Block) Decompress(codec Codec) (Block, error) {
	var r io.Reader
	switch codec {
	case CodecZlib:
		zr, err := zlib.NewReader(bytes.NewReader(b.ConstData()))
		if err != nil {
			return Block{}, err
		}
		defer zr.Close()
		r = zr
	case CodecLZ4:
		r = lz4.NewReader(bytes.NewReader(b.ConstData()))
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return Block{}, err
	}
	return FromBytes(out), nil
}
