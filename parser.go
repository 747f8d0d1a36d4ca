// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ijson

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/creachadair/ijson/ast"
	"github.com/creachadair/ijson/internal/intern"
)

// A Parser is an incremental JSON parser. Input is delivered in chunks by
// calls to Update, and the parsed value is recovered by Result once the input
// is complete. Chunk boundaries may fall anywhere, including inside a token.
//
// A Parser is not safe for concurrent use. Once Update or Result reports a
// syntax error, the parser is permanently failed and every later call reports
// the same error.
type Parser struct {
	state    *state
	line     int
	data     []byte // the chunk being parsed
	beg      int    // offset in data of the open string or number token, or -1
	carry    []byte // prefix of a token split across chunks, and decoded escapes
	isFloat  bool   // the open number has a fraction or exponent
	needsKey bool   // the next string is an object key
	unicode  rune   // accumulated \u escape digits
	high     rune   // pending high surrogate, or 0
	err      *SyntaxError

	frames  []*frame // frames[0] is the root; frames[top] is current
	top     int
	hwm     int // deepest frame used during the current call
	pathBuf []any

	keys, vals *intern.Cache
	stats      intern.Stats

	callback  Callback
	maxDepth  int
	chunkSize int
	log       *slog.Logger
}

// NewParser constructs a new Parser with the given options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		state:     beforeValue,
		line:      1,
		beg:       -1,
		frames:    []*frame{{isArray: true}},
		maxDepth:  math.MaxInt,
		chunkSize: DefaultChunkSize,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses data as a single complete JSON value.
func Parse(data []byte, opts ...Option) (ast.Value, error) {
	p := NewParser(opts...)
	if err := p.Update(data); err != nil {
		return nil, err
	}
	return p.Result()
}

// ParseReader parses the contents of r as a single complete JSON value.
func ParseReader(r io.Reader, opts ...Option) (ast.Value, error) {
	p := NewParser(opts...)
	if _, err := p.ReadFrom(r); err != nil {
		return nil, err
	}
	return p.Result()
}

// Line reports the current line number of the input, 1-based.
func (p *Parser) Line() int { return p.line }

// Stats reports the cumulative string interning statistics for p.
func (p *Parser) Stats() intern.Stats { return p.stats }

// Update parses the next chunk of input. The parser does not retain chunk
// after Update returns, so the caller may reuse its storage.
func (p *Parser) Update(chunk []byte) error {
	if p.err != nil {
		return p.err
	}

	// The interning caches live for one call and are sized to the chunk.
	size := min(max(len(chunk)/16, 2), 512)
	p.keys, p.vals = intern.New(size), intern.New(size)

	p.run(chunk)
	p.trimFrames()

	cs := p.keys.Stats().Add(p.vals.Stats())
	p.stats = p.stats.Add(cs)
	p.keys, p.vals = nil, nil

	if p.err != nil {
		p.data = nil
		p.log.Error("parse failed", "line", p.line, "error", p.err)
		return p.err
	}

	// Save the unterminated part of an open token for the next call.
	if p.beg >= 0 {
		if p.beg < len(chunk) {
			p.flushSurrogate() // string text follows a pending high surrogate
		}
		p.carry = append(p.carry, chunk[p.beg:]...)
		p.beg = 0
	}
	p.data = nil
	p.log.Debug("update", "bytes", len(chunk), "line", p.line, "depth", p.top,
		"state", p.state, "carry", len(p.carry), "hits", cs.Hits, "misses", cs.Misses)
	return nil
}

// ReadFrom reads r to EOF in chunks and delivers each to Update. It reports
// the number of bytes read, and the first error from r or from Update.
// It implements the [io.ReaderFrom] interface.
func (p *Parser) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, p.chunkSize)
	var nr int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			nr += int64(n)
			if perr := p.Update(buf[:n]); perr != nil {
				return nr, perr
			}
		}
		if err == io.EOF {
			return nr, nil
		} else if err != nil {
			return nr, err
		}
	}
}

// Result reports the value parsed from the input delivered to Update. The
// input must consist of exactly one JSON value, optionally surrounded by
// whitespace. Errors wrap ErrIncomplete if the input ended before the value
// was complete, or ErrTrailingData if more than one value was found.
func (p *Parser) Result() (ast.Value, error) {
	if p.err != nil {
		return nil, p.err
	} else if p.top != 0 {
		return nil, p.endError(ErrIncomplete, "%d unclosed containers", p.top)
	}

	// A number has no closing delimiter, so end it with a synthetic space.
	if p.state.isNumber() {
		if err := p.Update([]byte(" ")); err != nil {
			return nil, err
		}
	}
	if p.state != afterValue {
		return nil, p.endError(ErrIncomplete, "input ended %s", p.state)
	}

	switch root := p.frames[0]; len(root.arr) {
	case 0:
		return nil, p.endError(ErrIncomplete, "no value")
	case 1:
		return root.arr[0], nil
	default:
		return nil, p.endError(ErrTrailingData, "%d values", len(root.arr))
	}
}

func (p *Parser) endError(kind error, msg string, args ...any) error {
	return &SyntaxError{
		Line:    p.line,
		Message: kind.Error() + ": " + fmt.Sprintf(msg, args...),
		err:     kind,
	}
}

// run feeds each byte of data through the automaton, until the data are
// exhausted or an error occurs.
func (p *Parser) run(data []byte) {
	p.data = data
	for pos := 0; pos < len(data) && p.err == nil; pos++ {
		c := classOf[data[pos]]
		if fn := p.state.next[c]; fn != nil {
			fn(p, pos, c)
		}
	}
}

func (p *Parser) fail(pos int, msg string, args ...any) {
	p.err = &SyntaxError{
		Line:    p.line,
		Near:    nearText(p.data, pos),
		Message: fmt.Sprintf(msg, args...),
		err:     ErrSyntax,
	}
}

// token returns the text of the open token, which ends at end, including any
// part carried over from earlier chunks. The caller must reset the carry
// buffer once it is done with the result.
func (p *Parser) token(end int) []byte {
	text := p.data[p.beg:end]
	if len(p.carry) != 0 {
		p.carry = append(p.carry, text...)
		text = p.carry
	}
	p.beg = -1
	return text
}

func syntaxError(p *Parser, pos int, c class) {
	p.fail(pos, "unexpected %q %s", p.data[pos], p.state)
}

func eatNewline(p *Parser, pos int, c class) { p.line++ }

func goTo(next *state) action {
	return func(p *Parser, pos int, c class) { p.state = next }
}

func literal(v ast.Value) action {
	return func(p *Parser, pos int, c class) {
		p.attach(v)
		p.state = afterValue
	}
}

func topLevelValue(p *Parser, pos int, c class) {
	if p.top != 0 {
		syntaxError(p, pos, c)
		return
	}
	p.state = beforeValue
	beforeValue.next[c](p, pos, c)
}

// Containers

func arrayOpen(p *Parser, pos int, c class) {
	p.push(true)
	p.needsKey = false
	p.state = beforeValue
}

func objectOpen(p *Parser, pos int, c class) {
	p.push(false)
	p.needsKey = true
	p.state = beforeKey
}

func arrayClose(p *Parser, pos int, c class)  { p.closeFrame(pos, true) }
func objectClose(p *Parser, pos int, c class) { p.closeFrame(pos, false) }

func (p *Parser) closeFrame(pos int, isArray bool) {
	f := p.frames[p.top]
	switch {
	case p.top == 0:
		p.fail(pos, "unbalanced %q", p.data[pos])
		return
	case f.isArray != isArray:
		p.fail(pos, "mismatched %q", p.data[pos])
		return
	case f.needsValue:
		p.fail(pos, "trailing comma before %q", p.data[pos])
		return
	}
	v := f.value()
	p.top--
	p.needsKey = false
	p.attach(v)
	p.state = afterValue
}

func eatColon(p *Parser, pos int, c class) { p.state = beforeValue }

func eatComma(p *Parser, pos int, c class) {
	if p.top == 0 {
		syntaxError(p, pos, c)
		return
	}
	f := p.frames[p.top]
	if f.isArray {
		p.state = beforeValue
	} else {
		p.state = beforeKey
		p.needsKey = true
	}
	f.needsValue = true
}

// Numbers

func numberOpen(p *Parser, pos int, c class) {
	p.isFloat = false
	p.beg = pos
	p.state = inInteger
}

func fractionOpen(p *Parser, pos int, c class) {
	p.isFloat = true
	p.state = inFraction
}

func exponentOpen(p *Parser, pos int, c class) {
	p.isFloat = true
	p.state = inExponent
}

// numberClose ends the open number at the first byte that cannot extend it,
// then handles that byte as if it followed a value.
func numberClose(p *Parser, pos int, c class) {
	text := p.token(pos)
	v, err := parseNumber(text, p.isFloat)
	if err != nil {
		p.fail(pos, "invalid number %q", text)
		return
	}
	p.carry = p.carry[:0]
	p.attach(v)
	p.state = afterValue
	if fn := afterValue.next[c]; fn != nil {
		fn(p, pos, c)
	}
}

// Strings

func stringOpen(p *Parser, pos int, c class) {
	p.beg = pos + 1
	p.high = 0
	p.state = inString
}

func stringClose(p *Parser, pos int, c class) {
	p.flushSurrogate()
	text := p.token(pos)
	if p.needsKey {
		p.frames[p.top].key = p.keys.Intern(text, true)
		p.needsKey = false
		p.state = afterKey
	} else {
		p.attach(ast.String(p.vals.Intern(text, false)))
		p.state = afterValue
	}
	p.carry = p.carry[:0]
}

func newlineInString(p *Parser, pos int, c class) {
	p.fail(pos, "newline in string")
}

func escapeOpen(p *Parser, pos int, c class) {
	if pos > p.beg {
		p.flushSurrogate() // text intervened since the last escape
	}
	p.carry = append(p.carry, p.data[p.beg:pos]...)
	p.beg = -1
	p.state = afterEscape
}

func escapeByte(b byte) action {
	return func(p *Parser, pos int, c class) {
		p.flushSurrogate()
		p.carry = append(p.carry, b)
		p.beg = pos + 1
		p.state = inString
	}
}

func hexFirst(p *Parser, pos int, c class) {
	p.unicode = hexValue(p.data[pos])
	p.state = hex2
}

func hexNext(next *state) action {
	return func(p *Parser, pos int, c class) {
		p.unicode = p.unicode<<4 | hexValue(p.data[pos])
		p.state = next
	}
}

func hexLast(p *Parser, pos int, c class) {
	p.appendCodePoint(p.unicode<<4 | hexValue(p.data[pos]))
	p.beg = pos + 1
	p.state = inString
}

// appendCodePoint appends the UTF-8 encoding of the code point u from a \u
// escape to the carry buffer. A high surrogate is held until the next escape,
// and combined with it if that escape is a low surrogate. Unpaired surrogates
// are replaced by U+FFFD.
func (p *Parser) appendCodePoint(u rune) {
	switch {
	case utf16.IsSurrogate(u) && u < 0xdc00:
		p.flushSurrogate()
		p.high = u
	case utf16.IsSurrogate(u) && p.high != 0:
		p.carry = utf8.AppendRune(p.carry, utf16.DecodeRune(p.high, u))
		p.high = 0
	default:
		p.flushSurrogate()
		p.carry = utf8.AppendRune(p.carry, u) // a lone low surrogate becomes U+FFFD
	}
}

func (p *Parser) flushSurrogate() {
	if p.high != 0 {
		p.carry = utf8.AppendRune(p.carry, utf8.RuneError)
		p.high = 0
	}
}

func hexValue(b byte) rune {
	switch {
	case b <= '9':
		return rune(b - '0')
	case b <= 'F':
		return rune(b-'A') + 10
	default:
		return rune(b-'a') + 10
	}
}
