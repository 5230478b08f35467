package eca

import "github.com/pthm-cable/antfarm/rules"

// Mapping selects how a transformed bit string becomes a rule table.
type Mapping uint8

const (
	// MapV1 reads bit pairs directly as write/turn over a fixed
	// 2-state, 2-color grid; the state alternates on every visit.
	MapV1 Mapping = iota
	// MapV2 combines adjacent bits into a 2-bit turn code and derives
	// the next state from one component bit.
	MapV2
	// MapStream deterministically expands the 8 bits into a longer
	// stream and slices 4 bits per (state, color) cell.
	MapStream
)

// Mappings lists every mapping scheme in build order.
var Mappings = [3]Mapping{MapV1, MapV2, MapStream}

// String returns the mapping's short scheme id.
func (m Mapping) String() string {
	switch m {
	case MapV1:
		return "v1"
	case MapV2:
		return "v2"
	case MapStream:
		return "stream"
	}
	return "unknown"
}

// turnCodes indexes 2-bit turn codes for MapV2 and MapStream.
var turnCodes = [4]rules.Turn{rules.Left, rules.Right, rules.NoTurn, rules.UTurn}

// BuildTable maps bits to a concrete rule table. MapV1 and MapV2 always
// produce 2-state, 2-color tables and ignore the dimension arguments;
// MapStream honors them (clamped to at least 1x2).
func BuildTable(b Bits, m Mapping, states, colors int) rules.Table {
	switch m {
	case MapV1:
		return buildV1(b)
	case MapV2:
		return buildV2(b)
	default:
		return buildStream(b, states, colors)
	}
}

func buildV1(b Bits) rules.Table {
	t := rules.New(2, 2)
	for s := 0; s < 2; s++ {
		for c := 0; c < 2; c++ {
			k := s*2 + c
			turn := rules.Left
			if b[2*k+1] == 1 {
				turn = rules.Right
			}
			t.Set(s, c, rules.Rule{
				Write:     b[2*k],
				Turn:      turn,
				NextState: uint8(1 - s),
			})
		}
	}
	return t
}

func buildV2(b Bits) rules.Table {
	t := rules.New(2, 2)
	for s := 0; s < 2; s++ {
		for c := 0; c < 2; c++ {
			k := s*2 + c
			hi, lo := b[2*k], b[2*k+1]
			t.Set(s, c, rules.Rule{
				Write:     lo,
				Turn:      turnCodes[hi<<1|lo],
				NextState: hi,
			})
		}
	}
	return t
}

// mix perturbs stream index i so the expanded stream is not a plain
// repetition of the 8 source bits.
func mix(i int) uint8 {
	return uint8(((i * 5) ^ (i >> 1)) & 1)
}

func buildStream(b Bits, states, colors int) rules.Table {
	if states < 1 {
		states = 1
	}
	if colors < 2 {
		colors = 2
	}
	stream := make([]uint8, states*colors*4)
	for i := range stream {
		stream[i] = b[i%8] ^ mix(i)
	}

	t := rules.New(states, colors)
	for s := 0; s < states; s++ {
		for c := 0; c < colors; c++ {
			k := (s*colors + c) * 4
			w0, w1 := stream[k], stream[k+1]
			t0, t1 := stream[k+2], stream[k+3]
			t.Set(s, c, rules.Rule{
				Write:     (w0<<1 | w1) % uint8(colors),
				Turn:      turnCodes[t0<<1|t1],
				NextState: uint8((s + int(w0)) % states),
			})
		}
	}
	return t
}
