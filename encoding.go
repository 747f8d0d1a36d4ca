// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ijson

import (
	"github.com/creachadair/ijson/ast"
	"github.com/creachadair/ijson/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.AppendQuoted(nil, mem.S(src))) }

// Unquote decodes a JSON string value, including its double quotation marks.
// It uses the same rules as the parser, so unpaired surrogate escapes are
// replaced by the Unicode replacement rune.
func Unquote(src string) (string, error) {
	v, err := Parse([]byte(src))
	if err != nil {
		return "", err
	}
	s, ok := v.(ast.String)
	if !ok {
		return "", &SyntaxError{Line: 1, Near: nearText([]byte(src), 0), Message: "not a string", err: ErrSyntax}
	}
	return string(s), nil
}
