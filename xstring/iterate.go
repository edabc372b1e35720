package xstring

import "unicode/utf8"

// Iterator walks a String's code points forward or backward without
// allocating, yielding (rune, byte range) pairs.
type Iterator struct {
	data    []byte
	pos     int // forward: next unread byte; reverse: next unread byte from the end
	reverse bool
}

func (s String) Iter() *Iterator      { return &Iterator{data: s.ConstData()} }
func (s String) ReverseIter() *Iterator {
	return &Iterator{data: s.ConstData(), pos: len(s.ConstData()), reverse: true}
}

// Next advances the iterator and reports the next code point along with
// its byte range within the String, or ok=false at the end.
func (it *Iterator) Next() (cp rune, byteRange [2]int, ok bool) {
	if it.reverse {
		if it.pos <= 0 {
			return 0, [2]int{}, false
		}
		r, size := utf8.DecodeLastRune(it.data[:it.pos])
		start := it.pos - size
		br := [2]int{start, it.pos}
		it.pos = start
		return r, br, true
	}
	if it.pos >= len(it.data) {
		return 0, [2]int{}, false
	}
	r, size := utf8.DecodeRune(it.data[it.pos:])
	br := [2]int{it.pos, it.pos + size}
	it.pos += size
	return r, br, true
}

// CodePoints collects every code point into a slice (mainly for tests
// and small strings; prefer Iter() in hot loops).
func (s String) CodePoints() []rune {
	out := make([]rune, 0, s.Length())
	it := s.Iter()
	for {
		cp, _, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, cp)
	}
	return out
}
