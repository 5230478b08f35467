package genesis

import (
	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/eca"
	"github.com/pthm-cable/antfarm/rules"
)

// derivedTurns indexes the CA-evolved turn combinator.
var derivedTurns = [4]rules.Turn{rules.NoTurn, rules.Left, rules.Right, rules.UTurn}

// turnDelta folds a turn into the signed sum the combinator consumes.
func turnDelta(t rules.Turn) int {
	switch t {
	case rules.Left:
		return -1
	case rules.Right:
		return 1
	case rules.UTurn:
		return 2
	}
	return 0
}

// CAEvolved derives each state's rules from its predecessor state's
// left/center/right color-indexed rules, the same way an elementary CA
// derives a row from the one above it.
func CAEvolved(cfg *config.Config, s Stream) rules.Table {
	g := cfg.Generate
	states := g.CAStatesMin + Intn(s, g.CAStatesMax-g.CAStatesMin+1)
	colors := g.CAColorsMin + Intn(s, g.CAColorsMax-g.CAColorsMin+1)
	t := rules.New(states, colors)

	// State 0: simple alternating pattern.
	for c := 0; c < colors; c++ {
		turn := rules.Left
		if c%2 == 1 {
			turn = rules.Right
		}
		t.Set(0, c, rules.Rule{
			Write:     uint8((c + 1) % colors),
			Turn:      turn,
			NextState: uint8(1 % states),
		})
	}

	for st := 1; st < states; st++ {
		for c := 0; c < colors; c++ {
			if Chance(s, g.CARandomCell) {
				t.Set(st, c, randRule(s, states, colors))
				continue
			}
			l := t.At(st-1, (c-1+colors)%colors)
			ctr := t.At(st-1, c)
			r := t.At(st-1, (c+1)%colors)

			turnSum := turnDelta(l.Turn) + turnDelta(ctr.Turn) + turnDelta(r.Turn)
			if turnSum < 0 {
				turnSum = -turnSum
			}
			colorSum := int(l.Write) + int(ctr.Write) + int(r.Write)

			t.Set(st, c, rules.Rule{
				Write:     uint8((colorSum + st) % colors),
				Turn:      derivedTurns[turnSum%4],
				NextState: majority(l.NextState, ctr.NextState, r.NextState),
			})
		}
	}
	return t
}

// majority votes over three states; ties go to the lowest candidate.
func majority(a, b, c uint8) uint8 {
	if a == b || a == c {
		return a
	}
	if b == c {
		return b
	}
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Sacred builds a highly symmetric table: writes and states advance
// cyclically, turns follow (state+color) parity with a small flip chance.
func Sacred(cfg *config.Config, s Stream) rules.Table {
	g := cfg.Generate
	states := pickInt(s, g.SacredStates, 2)
	colors := pickInt(s, g.SacredColors, 4)
	t := rules.New(states, colors)

	for st := 0; st < states; st++ {
		for c := 0; c < colors; c++ {
			next := uint8((st + 1) % states)
			if Chance(s, g.SacredStay) {
				next = uint8(st)
			} else if Chance(s, g.SacredSkip) {
				next = uint8((st + 2) % states)
			}

			turn := rules.Left
			if (st+c)%2 == 1 {
				turn = rules.Right
			}
			if Chance(s, g.SacredFlip) {
				if turn == rules.Left {
					turn = rules.Right
				} else {
					turn = rules.Left
				}
			}

			t.Set(st, c, rules.Rule{
				Write:     uint8((c + 1) % colors),
				Turn:      turn,
				NextState: next,
			})
		}
	}
	return t
}

func pickInt(s Stream, choices []int, fallback int) int {
	if len(choices) == 0 {
		return fallback
	}
	return choices[Intn(s, len(choices))]
}

// DirectECA maps a uniformly random rule number through scheme v1 with
// no transform. Always available, even with an empty seed pool.
func DirectECA(s Stream) (rules.Table, uint8) {
	rule := uint8(Intn(s, 256))
	return eca.BuildTable(eca.RenderRule(rule), eca.MapV1, 0, 0), rule
}

// Mutate applies n single-cell mutations, each redrawn from the full
// legal range. Strict mode never touches nextState.
func Mutate(t rules.Table, n int, strict bool, s Stream) rules.Table {
	out := t.Clone()
	for i := 0; i < n; i++ {
		mutateCell(out, s, strict)
	}
	return out
}
