// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ijson

import "fmt"

// A class is the syntactic role of an input byte. Transition tables are
// indexed by class rather than by byte value.
type class uint8

// numClasses is the number of distinct classes, including the default.
// It must agree with the declarations below.
const numClasses = 28

// A classifier assigns classes to byte values.
type classifier struct {
	of   [256]class // offset by one; zero means unassigned
	next class
	done bool
}

// declare assigns each byte of chars to a fresh class and returns it.
// Assigning a byte twice is a programming error and panics.
func (c *classifier) declare(chars string) class {
	if c.done {
		panic("classifier is already finished")
	}
	cls := c.next
	for i := 0; i < len(chars); i++ {
		b := chars[i]
		if c.of[b] != 0 {
			panic(fmt.Sprintf("duplicate class for byte %q", b))
		}
		c.of[b] = cls + 1
	}
	c.next++
	return cls
}

// finish assigns a new default class to every byte not yet assigned, and
// returns the resulting table together with the default class.
func (c *classifier) finish() ([256]class, class) {
	def := c.next
	var out [256]class
	for i, v := range c.of {
		if v == 0 {
			out[i] = def
		} else {
			out[i] = v - 1
		}
	}
	c.next++
	c.done = true
	return out, def
}

var classes classifier

var (
	cLBrace   = classes.declare("{")
	cRBrace   = classes.declare("}")
	cLSquare  = classes.declare("[")
	cRSquare  = classes.declare("]")
	cComma    = classes.declare(",")
	cColon    = classes.declare(":")
	cQuote    = classes.declare(`"`)
	cBSlash   = classes.declare(`\`)
	cSlash    = classes.declare("/")
	cSpace    = classes.declare(" \t\r")
	cNewline  = classes.declare("\n")
	cLetterT  = classes.declare("t")
	cLetterR  = classes.declare("r")
	cLetterU  = classes.declare("u")
	cLetterE  = classes.declare("e")
	cLetterF  = classes.declare("f")
	cLetterA  = classes.declare("a")
	cLetterL  = classes.declare("l")
	cLetterS  = classes.declare("s")
	cLetterN  = classes.declare("n")
	cLetterB  = classes.declare("b")
	cPlus     = classes.declare("+")
	cMinus    = classes.declare("-")
	cDigit    = classes.declare("0123456789")
	cDot      = classes.declare(".")
	cExpE     = classes.declare("E")
	cHexOther = classes.declare("ABCDFcd")

	// classOf maps every byte value to exactly one class.
	classOf, cDefault = finishClasses()
)

func finishClasses() ([256]class, class) {
	tab, def := classes.finish()
	if int(def)+1 != numClasses {
		panic(fmt.Sprintf("have %d classes, want %d", def+1, numClasses))
	}
	return tab, def
}

// hexClasses are the classes containing the hexadecimal digits.
var hexClasses = []class{cDigit, cLetterA, cLetterB, cLetterE, cLetterF, cExpE, cHexOther}
