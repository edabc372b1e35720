package xstring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sensitivity selects case handling for comparisons (spec.md's
// StringComparison capability set).
type Sensitivity int

const (
	CaseSensitive Sensitivity = iota
	CaseInsensitive
)

// Cmp orders two Strings byte-for-byte (CaseSensitive) or code-point by
// lower-cased code point (CaseInsensitive). A proper prefix always
// compares less than the longer string, matching Block.Cmp.
func Cmp(a, b String, sens Sensitivity) int {
	if sens == CaseSensitive {
		return a.Block.Cmp(b.Block)
	}
	return cmpFold(a.CStr(), b.CStr())
}

func cmpFold(a, b string) int {
	for {
		if a == "" && b == "" {
			return 0
		}
		if a == "" {
			return -1
		}
		if b == "" {
			return 1
		}
		ra, sa := utf8.DecodeRuneInString(a)
		rb, sb := utf8.DecodeRuneInString(b)
		la, lb := unicode.ToLower(ra), unicode.ToLower(rb)
		if la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
		a, b = a[sa:], b[sb:]
	}
}

func Equal(a, b String, sens Sensitivity) bool { return Cmp(a, b, sens) == 0 }

func StartsWith(s String, prefix string, sens Sensitivity) bool {
	if sens == CaseSensitive {
		return strings.HasPrefix(s.CStr(), prefix)
	}
	return strings.HasPrefix(strings.ToLower(s.CStr()), strings.ToLower(prefix))
}

func EndsWith(s String, suffix string, sens Sensitivity) bool {
	if sens == CaseSensitive {
		return strings.HasSuffix(s.CStr(), suffix)
	}
	return strings.HasSuffix(strings.ToLower(s.CStr()), strings.ToLower(suffix))
}

// IndexOf returns the byte offset of the first occurrence of needle at
// or after byte offset from, or -1.
func IndexOf(s String, needle string, from int, sens Sensitivity) int {
	hay := s.CStr()
	if from > len(hay) {
		return -1
	}
	hay = hay[from:]
	if sens == CaseInsensitive {
		hay = strings.ToLower(hay)
		needle = strings.ToLower(needle)
	}
	idx := strings.Index(hay, needle)
	if idx < 0 {
		return -1
	}
	return idx + from
}

func LastIndexOf(s String, needle string, sens Sensitivity) int {
	hay := s.CStr()
	if sens == CaseInsensitive {
		hay = strings.ToLower(hay)
		needle = strings.ToLower(needle)
	}
	return strings.LastIndex(hay, needle)
}

func Contains(s String, needle string, sens Sensitivity) bool {
	return IndexOf(s, needle, 0, sens) >= 0
}
