// Copyright (c) 2024, NVIDIA CORPORATION. All rights reserved.
package block

import (
	"crypto/md5"
	"hash/crc32"

	"github.com/OneOfOne/xxhash"
	"golang.org/x/crypto/blake2b"
)

// CRC32 is the IEEE CRC-32 of the Block's current contents.
func (b Block) CRC32() uint32 { return crc32.ChecksumIEEE(b.ConstData()) }

// MD5 is the MD5 digest of the Block's current contents.
func (b Block) MD5() [md5.Size]byte { return md5.Sum(b.ConstData()) }

// XXHash is a fast 64-bit digest, useful as a BlockHash bucket key (see
// package blockhash) where cryptographic strength is not needed.
func (b Block) XXHash() uint64 { return xxhash.Checksum64(b.ConstData()) }

// Blake2b256 is a stronger digest than XXHash at a moderate cost, offered
// alongside CRC32/MD5 as the third built-in option.
func (b Block) Blake2b256() [32]byte { return blake2b.Sum256(b.ConstData()) }
