// SPDX-FileCopyrightText: 2021-2023 Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package bytesparse implements the primitive byte-slice parser combinators
// used by the syslog decoder. Each parser is a pure function taking a byte
// slice and returning either a value and the remaining slice, or an error.
// Parsers never allocate unless they construct an owned value (a string or
// a StructuredDataElement); none of them use an io.Reader or a lazy
// iterator abstraction, since the RFC5424/RFC3164 grammars never need one.
package bytesparse

import "fmt"

// Error is the decoder's error taxonomy: a string-carrying error with a
// stable Kind so callers can distinguish failure modes without parsing
// error text.
type Error struct {
	Kind string
	msg  string
}

func (e *Error) Error() string { return e.msg }

func newError(kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// NewError builds an Error of the given Kind for callers outside this
// package (the decoder) that need to signal one of the shared failure
// kinds, such as KindBadVersion, without duplicating the string taxonomy.
func NewError(kind, format string, args ...any) *Error {
	return newError(kind, format, args...)
}

const (
	KindMissingStart    = "missing start delimiter"
	KindMissingEnd      = "missing end delimiter"
	KindInvalidPriority = "invalid priority content"
	KindBadVersion      = "invalid message, version not 1"
	KindMissingField    = "missing field"
	KindUnexpectedEOF   = "unexpected end of input"
	KindInvalidUTF8     = "invalid UTF-8"
)

// AnyByte reads one byte; it fails on empty input.
func AnyByte(s []byte) (byte, []byte, error) {
	if len(s) == 0 {
		return 0, s, newError(KindUnexpectedEOF, "unexpected end of input")
	}
	return s[0], s[1:], nil
}

// Byte consumes one specific byte; it fails if the input is empty or the
// leading byte does not match b.
func Byte(b byte) func([]byte) ([]byte, error) {
	return func(s []byte) ([]byte, error) {
		if len(s) == 0 {
			return s, newError(KindUnexpectedEOF, "unexpected end of input, wanted %q", b)
		}
		if s[0] != b {
			return s, newError(KindMissingStart, "expected %q, got %q", b, s[0])
		}
		return s[1:], nil
	}
}

// Until returns the prefix up to (not including) the first occurrence of
// end; the remaining slice begins at end. It fails if end is absent.
func Until(s []byte, end byte) (prefix, rest []byte, err error) {
	for i, b := range s {
		if b == end {
			return s[:i], s[i:], nil
		}
	}
	return nil, s, newError(KindMissingEnd, "missing end %q delimiter", end)
}

// Delimited consumes start, returns the content up to end, and consumes
// end. It fails if either delimiter is missing or the content is empty.
func Delimited(s []byte, start, end byte) (content, rest []byte, err error) {
	s, err = Byte(start)(s)
	if err != nil {
		return nil, s, newError(KindMissingStart, "missing start %q delimiter", start)
	}
	content, rest, err = Until(s, end)
	if err != nil {
		return nil, s, newError(KindMissingEnd, "missing end %q delimiter", end)
	}
	if len(content) == 0 {
		return nil, rest, newError(KindMissingField, "empty content between %q and %q", start, end)
	}
	rest = rest[1:] // consume end
	return content, rest, nil
}

// Take splits at offset n; it fails if s is shorter than n.
func Take(s []byte, n int) (taken, rest []byte, err error) {
	if len(s) < n {
		return nil, s, newError(KindUnexpectedEOF, "wanted %d bytes, have %d", n, len(s))
	}
	return s[:n], s[n:], nil
}
