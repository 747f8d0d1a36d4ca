// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines the values produced by the incremental JSON parser.
//
// A Value is one of the concrete types Bool, Int, Float, String, Array,
// Object, or the type of the Null constant. The set is closed: no other type
// satisfies the Value interface.
package ast

import (
	"math"
	"strconv"

	"github.com/creachadair/ijson/internal/escape"

	"go4.org/mem"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string

	appendJSON([]byte) []byte
}

type nullValue struct{}

// Null represents the null constant.
var Null Value = nullValue{}

// JSON satisfies the Value interface.
func (nullValue) JSON() string { return "null" }

func (nullValue) appendJSON(buf []byte) []byte { return append(buf, "null"...) }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

func (b Bool) appendJSON(buf []byte) []byte { return strconv.AppendBool(buf, bool(b)) }

// An Int is a number written without a fraction or exponent.
type Int int64

// JSON satisfies the Value interface.
func (z Int) JSON() string { return strconv.FormatInt(int64(z), 10) }

func (z Int) appendJSON(buf []byte) []byte { return strconv.AppendInt(buf, int64(z), 10) }

// A Float is a number written with a fraction and/or exponent, or an integer
// too large to represent as an Int.
type Float float64

// JSON satisfies the Value interface. The encoding always includes a decimal
// point or exponent, so that parsing it again yields a Float. Non-finite
// values have no JSON encoding and are rendered as null.
func (f Float) JSON() string { return string(f.appendJSON(nil)) }

func (f Float) appendJSON(buf []byte) []byte {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return append(buf, "null"...)
	}
	fc := byte('f')
	if a := math.Abs(v); a != 0 && (a < 1e-6 || a >= 1e21) {
		fc = 'e'
	}
	start := len(buf)
	buf = strconv.AppendFloat(buf, v, fc, -1, 64)
	if mem.IndexByte(mem.B(buf[start:]), '.') < 0 && mem.IndexByte(mem.B(buf[start:]), 'e') < 0 {
		buf = append(buf, ".0"...)
	}
	return buf
}

// A String is a string value, with escapes already decoded.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return string(s.appendJSON(nil)) }

func (s String) appendJSON(buf []byte) []byte { return escape.AppendQuoted(buf, mem.S(string(s))) }

// An Array is a sequence of values.
type Array []Value

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// JSON satisfies the Value interface.
func (a Array) JSON() string { return string(a.appendJSON(nil)) }

func (a Array) appendJSON(buf []byte) []byte {
	buf = append(buf, '[')
	for i, v := range a {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = v.appendJSON(buf)
	}
	return append(buf, ']')
}

// An Object is a collection of key-value members, in order of first
// appearance of each key.
type Object []*Member

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// JSON satisfies the Value interface.
func (o Object) JSON() string { return string(o.appendJSON(nil)) }

func (o Object) appendJSON(buf []byte) []byte {
	buf = append(buf, '{')
	for i, m := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = escape.AppendQuoted(buf, mem.S(m.Key))
		buf = append(buf, ':')
		buf = m.Value.appendJSON(buf)
	}
	return append(buf, '}')
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, value Value) *Member { return &Member{Key: key, Value: value} }
