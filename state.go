// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ijson

import (
	"slices"

	"github.com/creachadair/ijson/ast"
)

// An action handles the byte at data[pos], whose class is c, in the current
// state. A nil action consumes the byte and leaves the state unchanged.
type action func(p *Parser, pos int, c class)

// A state is one node of the parsing automaton.
type state struct {
	name string // for diagnostics, e.g. "after value"
	next [numClasses]action
}

func (s *state) String() string { return s.name }

type transition struct {
	c  class
	fn action
}

// define sets the actions of s: fn for each listed class, and def for every
// other class.
func (s *state) define(def action, ts ...transition) {
	for i := range s.next {
		s.next[i] = def
	}
	for _, t := range ts {
		s.next[t.c] = t.fn
	}
}

// The states of the automaton. Their tables are filled in by init, since the
// actions refer back to the states.
var (
	beforeValue = &state{name: "before value"}
	afterValue  = &state{name: "after value"}
	beforeKey   = &state{name: "before key"}
	afterKey    = &state{name: "after key"}

	inString    = &state{name: "in string"}
	afterEscape = &state{name: "after escape"}
	hex1        = &state{name: "in \\u escape"}
	hex2        = &state{name: "in \\u escape"}
	hex3        = &state{name: "in \\u escape"}
	hex4        = &state{name: "in \\u escape"}

	inInteger  = &state{name: "in number"}
	inFraction = &state{name: "in fraction"}
	inExponent = &state{name: "in exponent"}

	trueR  = &state{name: "in true"}
	trueU  = &state{name: "in true"}
	trueE  = &state{name: "in true"}
	falseA = &state{name: "in false"}
	falseL = &state{name: "in false"}
	falseS = &state{name: "in false"}
	falseE = &state{name: "in false"}
	nullU  = &state{name: "in null"}
	nullL1 = &state{name: "in null"}
	nullL2 = &state{name: "in null"}
)

func init() {
	space := []transition{
		{cSpace, nil},
		{cNewline, eatNewline},
	}
	valueStart := []transition{
		{cLBrace, objectOpen},
		{cLSquare, arrayOpen},
		{cQuote, stringOpen},
		{cMinus, numberOpen},
		{cDigit, numberOpen},
		{cLetterT, goTo(trueR)},
		{cLetterF, goTo(falseA)},
		{cLetterN, goTo(nullU)},
	}

	beforeValue.define(syntaxError, slices.Concat(valueStart, space,
		[]transition{{cRSquare, arrayClose}})...)

	// At the top level, another value may follow a complete one. It is
	// accepted here and reported by Result.
	var nextValue []transition
	for _, t := range valueStart {
		nextValue = append(nextValue, transition{t.c, topLevelValue})
	}
	afterValue.define(syntaxError, slices.Concat(space, nextValue, []transition{
		{cComma, eatComma},
		{cRBrace, objectClose},
		{cRSquare, arrayClose},
	})...)

	beforeKey.define(syntaxError, slices.Concat(space, []transition{
		{cQuote, stringOpen},
		{cRBrace, objectClose},
	})...)
	afterKey.define(syntaxError, slices.Concat(space, []transition{
		{cColon, eatColon},
	})...)

	inString.define(nil,
		transition{cQuote, stringClose},
		transition{cBSlash, escapeOpen},
		transition{cNewline, newlineInString},
	)
	afterEscape.define(syntaxError,
		transition{cLetterN, escapeByte('\n')},
		transition{cLetterR, escapeByte('\r')},
		transition{cLetterT, escapeByte('\t')},
		transition{cLetterB, escapeByte('\b')},
		transition{cLetterF, escapeByte('\f')},
		transition{cQuote, escapeByte('"')},
		transition{cBSlash, escapeByte('\\')},
		transition{cSlash, escapeByte('/')},
		transition{cLetterU, goTo(hex1)},
	)
	hex1.define(syntaxError, hexDigits(hexFirst)...)
	hex2.define(syntaxError, hexDigits(hexNext(hex3))...)
	hex3.define(syntaxError, hexDigits(hexNext(hex4))...)
	hex4.define(syntaxError, hexDigits(hexLast)...)

	// Number states are deliberately loose; the complete token is checked
	// when the number is closed.
	inInteger.define(numberClose,
		transition{cDigit, nil},
		transition{cDot, fractionOpen},
		transition{cLetterE, exponentOpen},
		transition{cExpE, exponentOpen},
	)
	inFraction.define(numberClose,
		transition{cDigit, nil},
		transition{cLetterE, exponentOpen},
		transition{cExpE, exponentOpen},
	)
	inExponent.define(numberClose,
		transition{cPlus, nil},
		transition{cMinus, nil},
		transition{cDigit, nil},
	)

	trueR.define(syntaxError, transition{cLetterR, goTo(trueU)})
	trueU.define(syntaxError, transition{cLetterU, goTo(trueE)})
	trueE.define(syntaxError, transition{cLetterE, literal(ast.Bool(true))})

	falseA.define(syntaxError, transition{cLetterA, goTo(falseL)})
	falseL.define(syntaxError, transition{cLetterL, goTo(falseS)})
	falseS.define(syntaxError, transition{cLetterS, goTo(falseE)})
	falseE.define(syntaxError, transition{cLetterE, literal(ast.Bool(false))})

	nullU.define(syntaxError, transition{cLetterU, goTo(nullL1)})
	nullL1.define(syntaxError, transition{cLetterL, goTo(nullL2)})
	nullL2.define(syntaxError, transition{cLetterL, literal(ast.Null)})
}

func hexDigits(fn action) []transition {
	out := make([]transition, len(hexClasses))
	for i, c := range hexClasses {
		out[i] = transition{c, fn}
	}
	return out
}

// isNumber reports whether s is one of the states inside a number token.
func (s *state) isNumber() bool {
	return s == inInteger || s == inFraction || s == inExponent
}
