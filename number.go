// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ijson

import (
	"errors"
	"strconv"

	"github.com/creachadair/ijson/ast"
	"go4.org/mem"
)

var errBadNumber = errors.New("invalid number")

// parseNumber converts the text of a complete number token. Integers that fit
// in 64 bits become ast.Int, all others become ast.Float.
func parseNumber(text []byte, isFloat bool) (ast.Value, error) {
	if !validNumber(text) {
		return nil, errBadNumber
	}
	m := mem.B(text)
	if !isFloat {
		z, err := mem.ParseInt(m, 10, 64)
		if err == nil {
			return ast.Int(z), nil
		} else if !errors.Is(err, strconv.ErrRange) {
			return nil, err
		}
		// Out of range for int64; fall back to floating point.
	}
	f, err := mem.ParseFloat(m, 64)
	if err != nil {
		return nil, err
	}
	return ast.Float(f), nil
}

// validNumber reports whether text matches the JSON number grammar:
//
//	-? (0 | [1-9][0-9]*) (\.[0-9]+)? ([eE][+-]?[0-9]+)?
func validNumber(text []byte) bool {
	i := 0
	if i < len(text) && text[i] == '-' {
		i++
	}
	switch {
	case i == len(text):
		return false
	case text[i] == '0':
		i++
	case isDigit(text[i]):
		i = skipDigits(text, i)
	default:
		return false
	}

	if i < len(text) && text[i] == '.' {
		j := skipDigits(text, i+1)
		if j == i+1 {
			return false
		}
		i = j
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		j := skipDigits(text, i)
		if j == i {
			return false
		}
		i = j
	}
	return i == len(text)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func skipDigits(text []byte, i int) int {
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	return i
}
