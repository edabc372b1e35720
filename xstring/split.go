package xstring

import (
	"strings"

	"github.com/tfcore/tf/rng"
)

// Split divides whole on sep and returns the resulting byte ranges,
// following the original_source nextSplit_Rangecc rules rather than
// strings.Split's: an empty range at the very start or very end of
// whole (produced by whole starting or ending with sep) is dropped, but
// an empty range between two *interior* separators is kept, and a
// whole that is exactly equal to sep yields no ranges at all.
func Split(whole, sep string) []rng.Range {
	if sep == "" || whole == sep {
		return nil
	}
	var out []rng.Range
	pos := 0
	seenFirst := false
	for {
		idx := strings.Index(whole[pos:], sep)
		if idx < 0 {
			break
		}
		r := rng.Of(pos, pos+idx)
		if !(r.IsEmpty() && !seenFirst) {
			out = append(out, r)
		}
		seenFirst = true
		pos += idx + len(sep)
	}
	if pos < len(whole) {
		out = append(out, rng.Of(pos, len(whole)))
	}
	return out
}

// SplitStrings is Split plus materializing each range as a substring
// (still a zero-copy Go string slice, since whole and its slices share
// the same backing array).
func SplitStrings(whole, sep string) []string {
	ranges := Split(whole, sep)
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = whole[r.Start:r.End]
	}
	return out
}

// TrimRange returns the byte range of whole with leading/trailing ASCII
// whitespace excluded (the Rangecc-family trim: no copy is made).
func TrimRange(whole string) rng.Range {
	start, end := 0, len(whole)
	for start < end && isSpace(whole[start]) {
		start++
	}
	for end > start && isSpace(whole[end-1]) {
		end--
	}
	return rng.Of(start, end)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func (s String) TrimStart() String {
	r := TrimRange(s.CStr())
	return FromCStr(s.CStr()[r.Start:])
}

func (s String) TrimEnd() String {
	r := TrimRange(s.CStr())
	return FromCStr(s.CStr()[:r.End])
}

func (s String) Trim() String {
	r := TrimRange(s.CStr())
	return FromCStr(s.CStr()[r.Start:r.End])
}
