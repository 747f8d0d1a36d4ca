// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ijson

import (
	"log/slog"
	"math"

	"github.com/creachadair/ijson/ast"
)

// A Callback is invoked with each completed value that is about to be added
// to a container no deeper than the configured maximum callback depth, along
// with the path of that value. Path elements are ints (array offsets) and
// strings (object keys), outermost first; see [ast.Path].
//
// If the callback returns false, the value is discarded and the container
// does not receive it. Array offsets still advance, so the paths of later
// siblings are unchanged. Otherwise the returned value, which may differ from
// v, is added in its place.
//
// The path slice is only valid during the call. The callback must not call
// methods of the parser that invoked it.
type Callback func(v ast.Value, path []any) (ast.Value, bool)

// An Option configures a Parser.
type Option func(*Parser)

// WithCallback sets the callback for completed values.
func WithCallback(cb Callback) Option { return func(p *Parser) { p.callback = cb } }

// MaxCallbackDepth limits the callback to values added to containers nested
// at most depth levels inside the top-level value. At depth 0 the callback
// sees only the direct elements or members of the top-level container. If
// depth < 0, there is no limit, which is also the default.
func MaxCallbackDepth(depth int) Option {
	return func(p *Parser) {
		if depth < 0 {
			depth = math.MaxInt
		}
		p.maxDepth = depth
	}
}

// WithLogger enables debug logging of parser progress to l.
// By default the parser does not log.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l.With("component", "ijson")
		}
	}
}

// DefaultChunkSize is the default size of the chunks read by ReadFrom.
const DefaultChunkSize = 32 << 10

// WithChunkSize sets the size of the chunks read by ReadFrom. If n <= 0,
// DefaultChunkSize is used.
func WithChunkSize(n int) Option {
	return func(p *Parser) {
		if n <= 0 {
			n = DefaultChunkSize
		}
		p.chunkSize = n
	}
}
