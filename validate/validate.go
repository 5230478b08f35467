// Package validate decides whether a candidate rule table produces
// interesting behavior. Three gates run in order: structural, static
// dynamics, then a full simulation with multi-window activity
// measurement. Malformed tables are negative results, never errors.
package validate

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/rules"
)

// Simulation is the collaborator contract the simulated gate drives.
// The reference implementation lives in the sim package; tests supply
// scripted fakes.
type Simulation interface {
	SetRules(t rules.Table)
	Reset()
	ClearAgents()
	AddAgent(x, y int, facing uint8) int
	Update(steps int)
	Cells() []uint8
	Steps() int
}

// Factory constructs a fresh simulation for one validation run.
type Factory func(width, height int) Simulation

// ErrSimContract reports a simulation collaborator missing the minimal
// required contract. This is the validator's only hard failure.
var ErrSimContract = errors.New("validate: simulation factory violates the required contract")

// Stage names the gate a table failed at.
type Stage string

const (
	StageStructural Stage = "structural"
	StageStatic     Stage = "static"
	StageSimulated  Stage = "simulated"
)

// Activity holds the simulated gate's window measurements.
type Activity struct {
	Changed    int // cells changed in window one
	Late       int // cells changed in window two
	Tail       int // cells changed in the long tail window
	Painted    int // non-background cells after the run
	ColorsSeen int // distinct non-background colors after the run
}

// Result is the validator's verdict on one candidate.
type Result struct {
	OK       bool
	Stage    Stage  // failing gate; empty on acceptance
	Reason   string // human-readable rejection reason
	Stats    rules.DynamicsStats
	Activity Activity // populated only when the simulated gate ran
}

// Validator runs the three gates with a fixed configuration.
type Validator struct {
	cfg     *config.Config
	factory Factory
	place   Placement
}

// New wires a validator. A nil factory, or one that cannot construct a
// simulation, is a contract violation.
func New(cfg *config.Config, factory Factory, place Placement) (*Validator, error) {
	if factory == nil {
		return nil, ErrSimContract
	}
	if probe := factory(8, 8); probe == nil {
		return nil, fmt.Errorf("%w: factory returned nil", ErrSimContract)
	}
	if place == nil {
		place = DefaultPlacement
	}
	return &Validator{cfg: cfg, factory: factory, place: place}, nil
}

// Validate runs the gates in order and stops at the first failure.
// strategy labels the candidate's origin for agent placement.
func (v *Validator) Validate(t rules.Table, strategy string) Result {
	if res, ok := v.structural(t); !ok {
		return res
	}

	stats := rules.Analyze(t)
	if res, ok := v.static(t, stats); !ok {
		return res
	}

	return v.simulated(t, stats, strategy)
}

func reject(stage Stage, stats rules.DynamicsStats, format string, args ...any) (Result, bool) {
	return Result{Stage: stage, Reason: fmt.Sprintf(format, args...), Stats: stats}, false
}

// structural rejects malformed or trivially under-specified tables
// without running anything further.
func (v *Validator) structural(t rules.Table) (Result, bool) {
	c := v.cfg.Validate
	var none rules.DynamicsStats

	if t.States() == 0 || t.Colors() == 0 {
		return reject(StageStructural, none, "empty table")
	}
	if !t.Closed() {
		return reject(StageStructural, none, "write or nextState references outside the table")
	}
	if t.States() < c.MinStates || t.Colors() < c.MinColors {
		return reject(StageStructural, none, "%d states x %d colors below minimum %dx%d",
			t.States(), t.Colors(), c.MinStates, c.MinColors)
	}
	if tv := rules.TurnVariety(t); tv < c.MinTurnVariety {
		return reject(StageStructural, none, "turn variety %d below minimum %d", tv, c.MinTurnVariety)
	}
	if wv := rules.WriteVariety(t); wv < c.MinWriteVariety {
		return reject(StageStructural, none, "write variety %d below minimum %d", wv, c.MinWriteVariety)
	}
	return Result{}, true
}

// static rejects tables whose derived dynamics cannot support activity.
func (v *Validator) static(t rules.Table, stats rules.DynamicsStats) (Result, bool) {
	c := v.cfg.Validate

	painting := rules.PaintingStates(t)
	if painting == 0 {
		return reject(StageStatic, stats, "no state paints non-zero from a blank cell")
	}
	if len(stats.Absorbing) > 0 {
		return reject(StageStatic, stats, "absorbing colors %v", stats.Absorbing)
	}
	if stats.WriteChange < c.MinWriteChange {
		return reject(StageStatic, stats, "write-change ratio %.2f below %.2f",
			stats.WriteChange, c.MinWriteChange)
	}
	if noTurn := 1 - stats.Turning; noTurn > c.MaxNoTurn {
		return reject(StageStatic, stats, "no-turn ratio %.2f above %.2f", noTurn, c.MaxNoTurn)
	}
	if stats.SelfState > c.MaxSelfState {
		return reject(StageStatic, stats, "self-next ratio %.2f above %.2f",
			stats.SelfState, c.MaxSelfState)
	}
	if painting < c.MinPaintingStates {
		return reject(StageStatic, stats, "%d painting states below minimum %d",
			painting, c.MinPaintingStates)
	}
	return Result{}, true
}

// scaled adjusts a threshold by the table's color count, clamped to the
// configured floor and cap.
func (v *Validator) scaled(base int, colors int) int {
	c := v.cfg.Validate
	scale := float64(colors) / 4.0
	if scale < c.ScaleFloor {
		scale = c.ScaleFloor
	}
	if scale > c.ScaleCap {
		scale = c.ScaleCap
	}
	return int(float64(base) * scale)
}

// simulated runs the candidate on a fresh grid and measures cell churn
// across two consecutive windows plus a long tail window.
func (v *Validator) simulated(t rules.Table, stats rules.DynamicsStats, strategy string) Result {
	c := v.cfg.Validate
	w, h := v.cfg.Grid.Width, v.cfg.Grid.Height
	agents := v.cfg.Grid.Agents

	sim := v.factory(w, h)
	sim.SetRules(t)
	sim.Reset()
	sim.ClearAgents()
	for i := 0; i < agents; i++ {
		x, y := v.place(strategy, i, agents, w, h)
		sim.AddAgent(x, y, uint8(i%4))
	}

	sim.Update(c.Warmup)
	snap0 := snapshot(sim)
	sim.Update(c.Window)
	snap1 := snapshot(sim)
	sim.Update(c.Window)
	snap2 := snapshot(sim)
	sim.Update(c.Tail)
	snap3 := snapshot(sim)

	act := Activity{
		Changed: diff(snap0, snap1),
		Late:    diff(snap1, snap2),
		Tail:    diff(snap2, snap3),
	}
	seen := make(map[uint8]bool)
	for _, cell := range snap3 {
		if cell != 0 {
			act.Painted++
			seen[cell] = true
		}
	}
	act.ColorsSeen = len(seen)

	colors := t.Colors()
	fail := func(format string, args ...any) Result {
		res, _ := reject(StageSimulated, stats, format, args...)
		res.Activity = act
		return res
	}

	if min := v.scaled(c.MinChanged, colors); act.Changed < min {
		return fail("window one changed %d cells, need %d", act.Changed, min)
	}
	if min := v.scaled(c.MinLate, colors); act.Late < min {
		return fail("window two changed %d cells, need %d", act.Late, min)
	}
	if float64(act.Late) < c.LateRatio*float64(act.Changed) {
		return fail("early fizzle: %d late vs %d early", act.Late, act.Changed)
	}
	if min := v.scaled(c.MinTail, colors); act.Tail < min {
		return fail("tail changed %d cells, need %d", act.Tail, min)
	}
	if float64(act.Tail) < c.TailRatio*float64(act.Late) {
		return fail("late freeze: %d tail vs %d late", act.Tail, act.Late)
	}
	if min := v.scaled(c.MinPainted, colors); act.Painted < min {
		return fail("%d painted cells, need %d", act.Painted, min)
	}
	if act.ColorsSeen < c.MinColorsSeen {
		return fail("%d distinct colors, need %d", act.ColorsSeen, c.MinColorsSeen)
	}

	return Result{OK: true, Stats: stats, Activity: act}
}

func snapshot(sim Simulation) []uint8 {
	cells := sim.Cells()
	out := make([]uint8, len(cells))
	copy(out, cells)
	return out
}

func diff(a, b []uint8) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}
