// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package intern implements a small lossy cache that deduplicates short byte
// sequences into shared strings.
//
// The cache is open-addressed with no chaining: each input hashes to exactly
// one slot, and a miss overwrites whatever the slot held. A collision costs a
// fresh allocation but never produces a wrong result.
package intern

import (
	"unique"

	"github.com/cespare/xxhash/v2"
	"go4.org/mem"
)

// MaxLen is the longest input, in bytes, that is eligible for caching.
const MaxLen = 16

// Stats record the outcomes of calls to Intern.
type Stats struct {
	Hits     int // cached inputs found in their slot
	Misses   int // cached inputs that replaced their slot
	Uncached int // inputs longer than MaxLen
}

// Calls reports the total number of Intern calls recorded by s.
func (s Stats) Calls() int { return s.Hits + s.Misses + s.Uncached }

// Add returns the sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Hits:     s.Hits + o.Hits,
		Misses:   s.Misses + o.Misses,
		Uncached: s.Uncached + o.Uncached,
	}
}

type entry struct {
	n   int8 // -1 for an empty slot
	buf [MaxLen]byte
	val string
}

// A Cache maps short byte sequences to previously-interned strings.
// A Cache is not safe for concurrent use.
type Cache struct {
	slots []entry
	stats Stats
}

// New constructs a cache with the given number of slots. If size < 1, a cache
// with one slot is created.
func New(size int) *Cache {
	c := &Cache{slots: make([]entry, max(size, 1))}
	for i := range c.slots {
		c.slots[i].n = -1
	}
	return c
}

// Len reports the number of slots in c.
func (c *Cache) Len() int { return len(c.slots) }

// Stats reports the hit and miss counts for c.
func (c *Cache) Stats() Stats { return c.stats }

// Intern returns a string whose contents equal b. If b is no longer than
// MaxLen and an identical input was interned into the same slot earlier, the
// earlier string is returned and shares its storage.
//
// Longer inputs are always copied. If symbol is true they are additionally
// canonicalized through the process-wide unique table, so that repeated long
// object keys share storage across parsers.
func (c *Cache) Intern(b []byte, symbol bool) string {
	in := mem.B(b)
	if in.Len() > MaxLen {
		c.stats.Uncached++
		if symbol {
			return unique.Make(in.StringCopy()).Value()
		}
		return in.StringCopy()
	}

	e := &c.slots[xxhash.Sum64(b)%uint64(len(c.slots))]
	if int(e.n) == in.Len() && in.Equal(mem.B(e.buf[:e.n])) {
		c.stats.Hits++
		return e.val
	}
	c.stats.Misses++
	e.val = in.StringCopy()
	e.n = int8(copy(e.buf[:], b))
	return e.val
}
