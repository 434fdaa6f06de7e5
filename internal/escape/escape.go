// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape converts between Go strings and the escaped text of JSON
// string literals. It is shared by the value renderer and the query parser.
package escape

import (
	"errors"
	"unicode/utf8"

	"go4.org/mem"
)

const hexDigit = "0123456789abcdef"

// Quote appends the JSON encoding of s to buf and returns the updated
// buffer. The result does not include surrounding quotation marks.
func Quote(buf []byte, s mem.RO) []byte {
	for s.Len() != 0 {
		r, n := mem.DecodeRune(s)
		s = s.SliceFrom(n)

		if r >= utf8.RuneSelf {
			switch r {
			case '\ufffd', '\u2028', '\u2029':
				// Replacement rune, line separator, paragraph separator.
				buf = appendHex4(buf, r)
			default:
				buf = utf8.AppendRune(buf, r)
			}
			continue
		}

		switch b := byte(r); b {
		case '"', '\\':
			buf = append(buf, '\\', b)
		case '\b':
			buf = append(buf, '\\', 'b')
		case '\f':
			buf = append(buf, '\\', 'f')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\t':
			buf = append(buf, '\\', 't')
		default:
			if b < ' ' {
				buf = appendHex4(buf, rune(b))
			} else {
				buf = append(buf, b)
			}
		}
	}
	return buf
}

// appendHex4 appends the \uXXXX encoding of r to buf.
func appendHex4(buf []byte, r rune) []byte {
	return append(buf, '\\', 'u',
		hexDigit[(r>>12)&15], hexDigit[(r>>8)&15], hexDigit[(r>>4)&15], hexDigit[r&15])
}

// Unquote decodes the text of a JSON string literal with its surrounding
// quotation marks already removed. Escape sequences are replaced by their
// unescaped equivalents; an invalid escape is replaced by the Unicode
// replacement rune. Unquote reports an error only for an escape sequence
// truncated by the end of the input.
func Unquote(src mem.RO) ([]byte, error) {
	out := make([]byte, 0, src.Len())
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(out, src), nil
		}
		out = mem.Append(out, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		src = src.SliceFrom(n)

		switch r {
		case '"', '\\', '/':
			out = append(out, byte(r))
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			v, ok := parseHex4(src.SliceTo(4))
			if !ok {
				v = utf8.RuneError
			}
			out = utf8.AppendRune(out, v)
			src = src.SliceFrom(4)
		default:
			out = utf8.AppendRune(out, utf8.RuneError)
		}
	}
}

// parseHex4 decodes exactly four hex digits.
func parseHex4(data mem.RO) (rune, bool) {
	var v rune
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
