package grammar

import (
	"bytes"

	"github.com/ghettovoice/gouri/internal/constraints"
)

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
// Truncated or non-hex sequences are copied as is.
func Unescape[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isPctEncoded(s, i) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Escape escapes s by replacing each char matched by shouldEscape callback to the hex form "% HEXDIG HEXDIG".
// Valid "%XX" triplets are kept untouched, so Escape(Escape(s)) == Escape(s).
// If shouldEscape is nil, all chars except unreserved are escaped.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsUnreserved(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case isPctEncoded(s, i):
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 2
		case shouldEscape(s[i]):
			writeEscaped(&b, s[i])
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Normalize works like [Escape] and additionally brings valid triplets to the canonical form:
// hex digits are uppercased, triplets of unreserved chars are decoded (RFC 3986 Section 6.2.2).
func Normalize[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsUnreserved(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case isPctEncoded(s, i):
			if c := unhex(s[i+1])<<4 | unhex(s[i+2]); IsUnreserved(c) {
				b.WriteByte(c)
			} else {
				writeEscaped(&b, c)
			}
			i += 2
		case shouldEscape(s[i]):
			writeEscaped(&b, s[i])
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

const upperhex = "0123456789ABCDEF"

func writeEscaped(b *bytes.Buffer, c byte) {
	b.WriteByte('%')
	b.WriteByte(upperhex[c>>4])
	b.WriteByte(upperhex[c&15])
}

func isPctEncoded[T constraints.Byteseq](s T, i int) bool {
	return s[i] == '%' && i+2 < len(s) && IsHexDigit(s[i+1]) && IsHexDigit(s[i+2])
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// RFC 3986 character classes.
const (
	clsAlpha uint8 = 1 << iota
	clsDigit
	clsHex
	clsUnreserved
	clsSubDelim
	clsGenDelim
)

var charClasses = func() (tbl [256]uint8) {
	for c := 'a'; c <= 'z'; c++ {
		tbl[c] |= clsAlpha | clsUnreserved
		tbl[c-'a'+'A'] |= clsAlpha | clsUnreserved
	}
	for c := '0'; c <= '9'; c++ {
		tbl[c] |= clsDigit | clsHex | clsUnreserved
	}
	for _, c := range "abcdefABCDEF" {
		tbl[c] |= clsHex
	}
	for _, c := range "-._~" {
		tbl[c] |= clsUnreserved
	}
	for _, c := range "!$&'()*+,;=" {
		tbl[c] |= clsSubDelim
	}
	for _, c := range ":/?#[]@" {
		tbl[c] |= clsGenDelim
	}
	return tbl
}()

// IsAlpha checks ALPHA rule.
func IsAlpha(c byte) bool { return charClasses[c]&clsAlpha != 0 }

// IsDigit checks DIGIT rule.
func IsDigit(c byte) bool { return charClasses[c]&clsDigit != 0 }

// IsHexDigit checks HEXDIG rule (case-insensitive).
func IsHexDigit(c byte) bool { return charClasses[c]&clsHex != 0 }

// IsUnreserved checks unreserved rule.
func IsUnreserved(c byte) bool { return charClasses[c]&clsUnreserved != 0 }

// IsSubDelim checks sub-delims rule.
func IsSubDelim(c byte) bool { return charClasses[c]&clsSubDelim != 0 }

// IsGenDelim checks gen-delims rule.
func IsGenDelim(c byte) bool { return charClasses[c]&clsGenDelim != 0 }

// IsCTL reports whether c is an ASCII control char.
func IsCTL(c byte) bool { return c < 0x20 || c == 0x7f }

// IsRegNameChar checks chars allowed in reg-name besides pct-encoded.
func IsRegNameChar(c byte) bool { return charClasses[c]&(clsUnreserved|clsSubDelim) != 0 }

// IsUserChar checks chars allowed in the user part of userinfo (no ":").
func IsUserChar(c byte) bool { return IsRegNameChar(c) }

// IsUserInfoChar checks chars allowed in userinfo besides pct-encoded.
func IsUserInfoChar(c byte) bool { return IsRegNameChar(c) || c == ':' }

// IsPChar checks pchar rule besides pct-encoded.
func IsPChar(c byte) bool { return IsRegNameChar(c) || c == ':' || c == '@' }

// IsPathChar checks chars allowed in path: pchar and the "/" segment separator.
func IsPathChar(c byte) bool { return IsPChar(c) || c == '/' }

// IsQueryChar checks chars allowed in query and fragment.
func IsQueryChar(c byte) bool { return IsPChar(c) || c == '/' || c == '?' }

// IsFragmentChar checks chars allowed in fragment.
func IsFragmentChar(c byte) bool { return IsQueryChar(c) }

// ShouldEscapeUser reports whether the given byte for the user part of userinfo needs escaping.
func ShouldEscapeUser(c byte) bool { return !IsUserChar(c) }

// ShouldEscapeUserInfo reports whether the given byte for userinfo needs escaping.
func ShouldEscapeUserInfo(c byte) bool { return !IsUserInfoChar(c) }

// ShouldEscapeRegName reports whether the given byte for reg-name needs escaping.
func ShouldEscapeRegName(c byte) bool { return !IsRegNameChar(c) }

// ShouldEscapePath reports whether the given byte for path needs escaping.
func ShouldEscapePath(c byte) bool { return !IsPathChar(c) }

// ShouldEscapeQuery reports whether the given byte for query needs escaping.
func ShouldEscapeQuery(c byte) bool { return !IsQueryChar(c) }

// ShouldEscapeFragment reports whether the given byte for fragment needs escaping.
func ShouldEscapeFragment(c byte) bool { return !IsFragmentChar(c) }
