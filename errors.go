// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ijson

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/creachadair/mds/mstr"
)

var (
	// ErrSyntax is wrapped by errors reporting malformed input.
	ErrSyntax = errors.New("syntax error")

	// ErrIncomplete is wrapped by errors reporting that the input ended with
	// an open container or an unterminated value.
	ErrIncomplete = errors.New("unexpected end of input")

	// ErrTrailingData is wrapped by errors reporting that the input contained
	// more than one top-level value.
	ErrTrailingData = errors.New("too many results")
)

// nearLen is the maximum length of the input excerpt in a SyntaxError.
const nearLen = 20

// SyntaxError is the concrete type of errors reported by the parser.
// Use errors.Is with ErrSyntax, ErrIncomplete, or ErrTrailingData to
// distinguish the kind of failure.
type SyntaxError struct {
	Line    int    // line number of the failure, 1-based
	Near    string // input at the point of failure, if available
	Message string // description of the failure

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.Near == "" {
		return fmt.Sprintf("line %d: %s", s.Line, s.Message)
	}
	return fmt.Sprintf("line %d: %s near %q", s.Line, s.Message, s.Near)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// nearText returns up to nearLen bytes of data starting at pos, with newlines
// replaced by spaces so that the text fits on one line.
func nearText(data []byte, pos int) string {
	if pos < 0 || pos >= len(data) {
		return ""
	}
	near := mstr.Trunc(data[pos:], nearLen)
	return string(bytes.ReplaceAll(near, []byte("\n"), []byte(" ")))
}
