// Package eca maps elementary cellular automaton rule numbers onto small
// turmite rule tables. Every function here is a pure, reproducible
// function of its inputs.
package eca

import "strings"

// Bits is the rendered form of an 8-bit ECA rule: Bits[i] is the output
// bit for the 3-cell neighborhood pattern i (left<<2 | center<<1 | right).
type Bits [8]uint8

// RenderRule expands a rule number into its bit representation.
func RenderRule(rule uint8) Bits {
	var b Bits
	for i := 0; i < 8; i++ {
		b[i] = (rule >> i) & 1
	}
	return b
}

// Byte packs the bits back into a rule number.
func (b Bits) Byte() uint8 {
	var n uint8
	for i := 0; i < 8; i++ {
		n |= b[i] << i
	}
	return n
}

// String renders the bits as a compact 8-character string, pattern 0 first.
func (b Bits) String() string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		sb.WriteByte('0' + b[i])
	}
	return sb.String()
}

// Transform is one of the three ECA symmetry operations. Each is an
// involution: applying it twice restores the original bits.
type Transform uint8

const (
	Mirror Transform = iota
	Conjugate
	Invert
)

// String returns the transform's short name.
func (t Transform) String() string {
	switch t {
	case Mirror:
		return "mirror"
	case Conjugate:
		return "conjugate"
	case Invert:
		return "invert"
	}
	return "unknown"
}

// mirrorPerm swaps the left and right neighbor in each pattern index.
var mirrorPerm = [8]int{0, 4, 2, 6, 1, 5, 3, 7}

// Apply runs the transforms over the bits in the order given.
func Apply(b Bits, transforms []Transform) Bits {
	for _, tr := range transforms {
		switch tr {
		case Mirror:
			var out Bits
			for i := 0; i < 8; i++ {
				out[i] = b[mirrorPerm[i]]
			}
			b = out
		case Conjugate:
			var out Bits
			for i := 0; i < 8; i++ {
				out[i] = 1 - b[7-i]
			}
			b = out
		case Invert:
			for i := 0; i < 8; i++ {
				b[i] = 1 - b[i]
			}
		}
	}
	return b
}

// TransformsLabel joins transform names for metadata labels; the empty
// set renders as "none".
func TransformsLabel(transforms []Transform) string {
	if len(transforms) == 0 {
		return "none"
	}
	names := make([]string, len(transforms))
	for i, tr := range transforms {
		names[i] = tr.String()
	}
	return strings.Join(names, "+")
}
