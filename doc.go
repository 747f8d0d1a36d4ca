// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ijson implements an incremental JSON parser.
//
// # Parsing
//
// A Parser accepts its input in chunks of arbitrary size. Construct a parser
// with NewParser and call its Update method with each chunk as it arrives.
// Chunk boundaries may fall anywhere in the input, including in the middle of
// a string, number, or escape sequence. When the input is complete, call
// Result to obtain the parsed value:
//
//	p := ijson.NewParser()
//	for chunk := range chunks {
//	   if err := p.Update(chunk); err != nil {
//	      log.Fatalf("Update failed: %v", err)
//	   }
//	}
//	v, err := p.Result()
//
// The caller may reuse the storage of each chunk once Update returns. To parse
// a complete input in one step, use Parse or ParseReader.
//
// Values are reported as ast.Value, whose concrete types are described in
// package ast. Numbers written with a fraction or exponent are ast.Float,
// others are ast.Int unless they do not fit in 64 bits.
//
// # Errors
//
// Errors from Update and Result have concrete type *ijson.SyntaxError, and
// wrap one of:
//
//	Error            | Meaning
//	---------------- | --------------------------------------------------
//	ErrSyntax        | the input is not valid JSON
//	ErrIncomplete    | the input ended before the value was complete
//	ErrTrailingData  | the input contains more than one top-level value
//
// A syntax error is permanent: later calls to Update and Result report the
// same error. An incomplete input is not an error until Result is called.
//
// # Callbacks
//
// The WithCallback option installs a function that is called with each
// completed value before it is added to its enclosing container, together
// with the path of that value. The callback may replace the value, or discard
// it so that it is never retained. The MaxCallbackDepth option restricts the
// callback to shallow values:
//
//	p := ijson.NewParser(
//	   ijson.MaxCallbackDepth(0),
//	   ijson.WithCallback(func(v ast.Value, path []any) (ast.Value, bool) {
//	      process(path[0], v)
//	      return nil, false // do not keep the element
//	   }),
//	)
//
// With a callback that discards values, the memory needed to process a large
// top-level array or object is bounded by the size of its largest element.
package ijson
