package eca

// Behavior class hints, 1 through 4, loosely following Wolfram's classes.
// The hint only biases seed pool sampling; it is not a behavior proof.
const (
	ClassUniform  = 1
	ClassPeriodic = 2
	ClassChaotic  = 3
	ClassComplex  = 4
)

// trafficRule is the well-known traffic-flow rule.
const trafficRule = 184

// periodicPatterns are bit strings (packed via Bits.Byte) known to settle
// into simple repetition regardless of the rule that produced them.
var periodicPatterns = map[uint8]bool{
	0x55: true, // 01010101
	0xAA: true, // 10101010
	0x33: true, // 00110011
	0xCC: true, // 11001100
	0x0F: true, // 00001111
	0xF0: true, // 11110000
	0x66: true, // 01100110
	0x99: true, // 10011001
}

// chaoticRules and complexRules are checked against the untransformed
// rule number only.
var chaoticRules = map[uint8]bool{
	18: true, 22: true, 30: true, 45: true, 60: true,
	90: true, 105: true, 106: true, 126: true, 150: true, 161: true,
}

var complexRules = map[uint8]bool{
	54: true, 110: true, 124: true, 137: true, 147: true, 193: true,
}

// Classify assigns a coarse behavior class hint to a transformed bit
// string. The rule argument is the untransformed rule number the bits
// were derived from.
func Classify(b Bits, rule uint8) int {
	if rule == trafficRule {
		return ClassPeriodic
	}

	packed := b.Byte()
	if packed == 0 || packed == 0xFF || isPowerOfTwo(packed) {
		return ClassUniform
	}
	if periodicPatterns[packed] {
		return ClassPeriodic
	}
	if complexRules[rule] {
		return ClassComplex
	}
	if chaoticRules[rule] {
		return ClassChaotic
	}

	// Fall back on cyclic bit transitions as a roughness measure.
	transitions := 0
	for i := 0; i < 8; i++ {
		if b[i] != b[(i+1)%8] {
			transitions++
		}
	}
	switch {
	case transitions >= 6:
		return ClassChaotic
	case transitions >= 3:
		return ClassPeriodic
	default:
		return ClassUniform
	}
}

func isPowerOfTwo(n uint8) bool {
	return n != 0 && n&(n-1) == 0
}
