// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ijson_test

import (
	"bytes"
	stdjson "encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/creachadair/ijson"
	"github.com/creachadair/ijson/ast"
	"github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fastjson"
)

// benchInput returns a synthetic document of about 1MB, an array of records
// with many repeated keys and short values.
func benchInput(b *testing.B) []byte {
	b.Helper()
	r := rand.New(rand.NewPCG(3, 4))
	var records []any
	for i := range 5000 {
		records = append(records, map[string]any{
			"id":     i,
			"kind":   []string{"alpha", "beta", "gamma"}[r.IntN(3)],
			"score":  r.Float64(),
			"active": r.IntN(2) == 0,
			"tags":   []any{"x", "y", r.IntN(10)},
			"owner":  map[string]any{"name": "someone", "uid": r.IntN(1000)},
		})
	}
	input, err := json.Marshal(records)
	if err != nil {
		b.Fatalf("Marshal: %v", err)
	}
	b.Logf("Benchmark input: %d bytes", len(input))
	return input
}

func BenchmarkParse(b *testing.B) {
	input := benchInput(b)

	b.Run("ijson", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			if _, err := ijson.Parse(input); err != nil {
				b.Fatalf("Parse: %v", err)
			}
		}
	})

	b.Run("ijson/Chunked", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			if _, err := ijson.ParseReader(bytes.NewReader(input), ijson.WithChunkSize(4096)); err != nil {
				b.Fatalf("ParseReader: %v", err)
			}
		}
	})

	b.Run("ijson/Callback", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		drop := ijson.WithCallback(func(ast.Value, []any) (ast.Value, bool) { return nil, false })
		for b.Loop() {
			if _, err := ijson.Parse(input, ijson.MaxCallbackDepth(0), drop); err != nil {
				b.Fatalf("Parse: %v", err)
			}
		}
	})

	b.Run("encoding/json", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			var v any
			if err := stdjson.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unmarshal: %v", err)
			}
		}
	})

	b.Run("go-json", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unmarshal: %v", err)
			}
		}
	})

	b.Run("jsoniter", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		api := jsoniter.ConfigCompatibleWithStandardLibrary
		for b.Loop() {
			var v any
			if err := api.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unmarshal: %v", err)
			}
		}
	})

	b.Run("fastjson", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		var fp fastjson.Parser
		for b.Loop() {
			if _, err := fp.ParseBytes(input); err != nil {
				b.Fatalf("ParseBytes: %v", err)
			}
		}
	})
}
