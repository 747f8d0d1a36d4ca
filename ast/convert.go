// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"slices"
)

// ToValue converts a Go value into a Value. It accepts nil, bool, string,
// signed and unsigned integers, float32, float64, []any, map[string]any
// (members in key order), and Value. Any other type causes a panic.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := make(Object, len(keys))
		for i, k := range keys {
			out[i] = Field(k, ToValue(t[k]))
		}
		return out
	default:
		panic(fmt.Sprintf("cannot convert %T to a value", v))
	}
}

// Interface converts v into plain Go values: nil, bool, int64, float64,
// string, []any, and map[string]any. Object member order is not preserved.
func Interface(v Value) any {
	switch t := v.(type) {
	case nil, nullValue:
		return nil
	case Bool:
		return bool(t)
	case Int:
		return int64(t)
	case Float:
		return float64(t)
	case String:
		return string(t)
	case Array:
		out := make([]any, len(t))
		for i, elt := range t {
			out[i] = Interface(elt)
		}
		return out
	case Object:
		out := make(map[string]any, len(t))
		for _, m := range t {
			out[m.Key] = Interface(m.Value)
		}
		return out
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}
