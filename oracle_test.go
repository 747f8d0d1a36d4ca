// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ijson_test

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/creachadair/ijson"
	"github.com/creachadair/ijson/ast"
	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

const testDoc = `{
  "id": 1024,
  "name": "incremental \"parser\"",
  "tags": ["json", "stream", "\u00e9t\u00e9", "\ud83d\ude00"],
  "ratio": -0.125,
  "big": 1.5e300,
  "tiny": 4e-9,
  "empty": {"list": [], "obj": {}, "str": ""},
  "nested": [[1, [2, [3, [4, [5]]]]], {"a": {"b": {"c": null}}}],
  "flags": [true, false, null],
  "path": "C:\\temp\\x.json",
  "control": "tab\there\nnewline\u0001"
}`

// randomDoc generates a pseudo-random JSON document using go-json.
func randomDoc(r *rand.Rand, depth int) any {
	n := r.IntN(8)
	if depth <= 0 {
		n = r.IntN(5)
	}
	switch n {
	case 0:
		return nil
	case 1:
		return r.IntN(2) == 0
	case 2:
		return r.Int64() - r.Int64()
	case 3:
		return r.NormFloat64() * 1e6
	case 4:
		var sb strings.Builder
		for range r.IntN(20) {
			sb.WriteRune(rune(r.IntN(0x3000)))
		}
		return sb.String()
	case 5, 6:
		out := make([]any, r.IntN(6))
		for i := range out {
			out[i] = randomDoc(r, depth-1)
		}
		return out
	default:
		out := make(map[string]any)
		for range r.IntN(6) {
			out[fmt.Sprintf("k%d", r.IntN(100))] = randomDoc(r, depth-1)
		}
		return out
	}
}

// checkRoundTrip verifies that input and the encoding of its parse decode to
// the same value under go-json.
func checkRoundTrip(t *testing.T, input []byte, chunk int) {
	t.Helper()
	p := ijson.NewParser()
	for i := 0; i < len(input); i += chunk {
		if err := p.Update(input[i:min(i+chunk, len(input))]); err != nil {
			t.Fatalf("Update: unexpected error: %v", err)
		}
	}
	v, err := p.Result()
	if err != nil {
		t.Fatalf("Result: unexpected error: %v", err)
	}

	var want, got any
	if err := json.Unmarshal(input, &want); err != nil {
		t.Fatalf("Unmarshal input: %v", err)
	}
	if err := json.Unmarshal([]byte(v.JSON()), &got); err != nil {
		t.Fatalf("Unmarshal output: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Round trip (-want, +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, chunk := range []int{1, 2, 3, 5, 16, 1 << 20} {
		t.Run(fmt.Sprintf("Doc-%d", chunk), func(t *testing.T) {
			checkRoundTrip(t, []byte(testDoc), chunk)
		})
	}

	r := rand.New(rand.NewPCG(1, 2))
	for i := range 50 {
		input, err := json.Marshal(randomDoc(r, 5))
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		t.Run(fmt.Sprintf("Random-%d", i), func(t *testing.T) {
			checkRoundTrip(t, input, 1+i%7)
		})
	}
}

func TestInterface(t *testing.T) {
	v, err := ijson.Parse([]byte(testDoc))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	var want any
	if err := json.Unmarshal([]byte(testDoc), &want); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	// go-json decodes all numbers as float64.
	got := ast.Interface(v).(map[string]any)
	got["id"] = float64(got["id"].(int64))
	got["nested"] = want.(map[string]any)["nested"]
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Interface (-want, +got):\n%s", diff)
	}
}
