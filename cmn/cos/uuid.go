// Package cos provides common low-level types, error helpers, and
// env-overridable tunables shared by every package in this module.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package cos

import (
	"sync/atomic"

	"github.com/teris-io/shortid"
)

// Alphabet for generating ids similar to shortid.DEFAULT_ABC.
// NOTE: len(idABC) > 0x3f - see GenTie().
const idABC = "-5nZJDft6LuzsjGNpPwY7rQa39vehq4i1cV2FROo8yHSlC0BUEdWbIxMmTgKXAk_"

// LenShortID is the nominal length of a GenUUID() id, per
// https://github.com/teris-io/shortid#id-length
const LenShortID = 9

const tooLongID = 32

var (
	sid  *shortid.Shortid
	rtie atomic.Uint32
)

func InitShortID(seed uint64) {
	sid = shortid.MustNew(4 /*worker*/, idABC, seed)
}

func init() { InitShortID(1) }

// GenUUID mints an object/thread id: a shortid draw, massaged so it
// always starts and ends on an alphanumeric byte (mirrors GenTie's use
// of rtie to break ties when the raw draw lands on a boundary char).
func GenUUID() string {
	uuid := sid.MustGenerate()
	var h, t string
	if !isAlpha(uuid[0]) {
		tie := int(rtie.Add(1))
		h = string(rune('A' + tie%26))
	}
	if c := uuid[len(uuid)-1]; c == '-' || c == '_' {
		tie := int(rtie.Add(1))
		t = string(rune('a' + tie%26))
	}
	return h + uuid + t
}

func IsValidUUID(uuid string) bool {
	return len(uuid) >= LenShortID && IsAlphaNice(uuid)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsAlphaNice reports letters, numbers, and '-'/'_' not at either end.
func IsAlphaNice(s string) bool {
	l := len(s)
	if l > tooLongID {
		return false
	}
	for i := range l {
		c := s[i]
		if isAlpha(c) || (c >= '0' && c <= '9') {
			continue
		}
		if c != '-' && c != '_' {
			return false
		}
		if i == 0 || i == l-1 {
			return false
		}
	}
	return true
}

// GenTie is a fast 3-byte tie-breaker, used when two ids must be
// distinguished without a fresh shortid draw (e.g. lexicographically
// ordering two Observers that raced to register in the same tick).
func GenTie() string {
	tie := rtie.Add(1)
	b0 := idABC[tie&0x3f]
	b1 := idABC[(^tie)&0x3f]
	b2 := idABC[(tie>>2)&0x3f]
	return string([]byte{b0, b1, b2})
}
