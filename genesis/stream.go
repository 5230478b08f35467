// Package genesis produces candidate rule tables: seeded random streams,
// structural enhancement, the generation strategies, and the heuristic
// repairs that push tables toward visible activity.
package genesis

import (
	"hash/fnv"
	"math/rand/v2"
	"strings"

	"github.com/pthm-cable/antfarm/rules"
)

// Stream yields uniform values in [0, 1). Every random draw in this
// package comes from an injected Stream, never ambient randomness, so
// pool construction stays reproducible while live generation can pass a
// time-seeded stream.
type Stream interface {
	Float64() float64
}

// NewStream returns a deterministic PCG-backed stream for the seed.
func NewStream(seed uint64) Stream {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// StableSeed hashes the parts into a process-independent 64-bit seed.
func StableSeed(parts ...string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(strings.Join(parts, "|")))
	return h.Sum64()
}

// Intn draws a uniform int in [0, n). Returns 0 for n <= 0.
func Intn(s Stream, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Chance reports true with probability p.
func Chance(s Stream, p float64) bool {
	return s.Float64() < p
}

// randTurn draws a uniform turn value.
func randTurn(s Stream) rules.Turn {
	return rules.Turn(Intn(s, rules.NumTurns))
}

// otherColor draws a uniform color different from c. Needs colors >= 2.
func otherColor(s Stream, c uint8, colors int) uint8 {
	return uint8((int(c) + 1 + Intn(s, colors-1)) % colors)
}

// otherState draws a uniform state different from st. Needs states >= 2.
func otherState(s Stream, st uint8, states int) uint8 {
	return uint8((int(st) + 1 + Intn(s, states-1)) % states)
}

// randRule draws a fully random rule within the table's legal ranges.
func randRule(s Stream, states, colors int) rules.Rule {
	return rules.Rule{
		Write:     uint8(Intn(s, colors)),
		Turn:      randTurn(s),
		NextState: uint8(Intn(s, states)),
	}
}
