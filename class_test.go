// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ijson

import (
	"testing"

	"github.com/creachadair/mds/mtest"
)

func TestClasses(t *testing.T) {
	for b, c := range classOf {
		if c >= numClasses {
			t.Errorf("Byte %q has class %d, want < %d", b, c, numClasses)
		}
	}
	tests := []struct {
		chars string
		want  class
	}{
		{"{", cLBrace},
		{"]", cRSquare},
		{" \t\r", cSpace},
		{"\n", cNewline},
		{"0123456789", cDigit},
		{"E", cExpE},
		{"e", cLetterE},
		{"ABCDFcd", cHexOther},
		{"xyzGHZ'\x00\x7f\xff", cDefault},
	}
	for _, test := range tests {
		for i := 0; i < len(test.chars); i++ {
			if got := classOf[test.chars[i]]; got != test.want {
				t.Errorf("Class of %q: got %d, want %d", test.chars[i], got, test.want)
			}
		}
	}

	// Every hex digit, and nothing else, belongs to a hex class.
	for b := range 256 {
		isHex := (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
		if got := isHexClass(classOf[b]); got != isHex {
			t.Errorf("Byte %q: hex digit %v, want %v", b, got, isHex)
		}
	}
}

func isHexClass(c class) bool {
	for _, h := range hexClasses {
		if h == c {
			return true
		}
	}
	return false
}

func TestClassifierPanics(t *testing.T) {
	mtest.MustPanic(t, func() {
		var c classifier
		c.declare("ab")
		c.declare("ba")
	})
	mtest.MustPanic(t, func() {
		var c classifier
		c.declare("a")
		c.finish()
		c.declare("b")
	})
}

func TestFrameArena(t *testing.T) {
	p := NewParser()
	if err := p.Update([]byte(`[[[1]],`)); err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if len(p.frames) != 4 {
		t.Errorf("After nesting: got %d frames, want 4", len(p.frames))
	}
	deep := p.frames[2]

	// Frames at depth are reused for later containers.
	if err := p.Update([]byte(`[`)); err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if p.frames[2] != deep {
		t.Error("Frame at depth 2 was not reused")
	}
	if len(p.frames) != 3 {
		t.Errorf("After trim: got %d frames, want 3", len(p.frames))
	}

	if err := p.Update([]byte(`2]]`)); err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if len(p.frames) != 3 {
		t.Errorf("After close: got %d frames, want 3", len(p.frames))
	}
	if err := p.Update([]byte(` `)); err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if len(p.frames) != 1 {
		t.Errorf("After idle update: got %d frames, want 1", len(p.frames))
	}
	v, err := p.Result()
	if err != nil {
		t.Fatalf("Result: unexpected error: %v", err)
	}
	if got, want := v.JSON(), `[[[1]],[2]]`; got != want {
		t.Errorf("Result: got %#q, want %#q", got, want)
	}
}

func TestValidNumber(t *testing.T) {
	for _, s := range []string{"0", "-0", "12", "0.5", "-1.25e+10", "3E-2", "1e0"} {
		if !validNumber([]byte(s)) {
			t.Errorf("validNumber(%q): got false, want true", s)
		}
	}
	for _, s := range []string{"", "-", "00", "01", "1.", ".1", "1e", "1e+", "+1", "1-", "1.2.3", "1e2e3", "--1"} {
		if validNumber([]byte(s)) {
			t.Errorf("validNumber(%q): got true, want false", s)
		}
	}
}
