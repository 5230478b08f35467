// Package sim implements the reference grid turmite simulation that the
// validator drives and the viewer renders. Stepping is synchronous and
// run-to-completion; nothing here touches shared state.
package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/antfarm/rules"
)

// Position is an agent's grid cell.
type Position struct {
	X, Y int
}

// Agent carries a turmite's internal state and heading.
// Facing: 0 = north, 1 = east, 2 = south, 3 = west.
type Agent struct {
	State  uint8
	Facing uint8
}

// deltas maps facing to the forward step, north being -Y.
var deltas = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Sim is a toroidal grid of colors walked by turmite agents.
type Sim struct {
	world  *ecs.World
	mapper *ecs.Map2[Position, Agent]

	w, h  int
	grid  []uint8
	table rules.Table
	steps int

	// agents keeps a stable update order; ECS iteration order is not
	// part of the determinism contract.
	agents []ecs.Entity
}

// New creates an empty simulation with the given grid dimensions.
// Dimensions below 1 are clamped to 1.
func New(w, h int) *Sim {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	world := ecs.NewWorld()
	return &Sim{
		world:  world,
		mapper: ecs.NewMap2[Position, Agent](world),
		w:      w,
		h:      h,
		grid:   make([]uint8, w*h),
	}
}

// Width returns the grid width in cells.
func (s *Sim) Width() int { return s.w }

// Height returns the grid height in cells.
func (s *Sim) Height() int { return s.h }

// SetRules installs the rule table driving every agent.
func (s *Sim) SetRules(t rules.Table) {
	s.table = t.Clone()
}

// Rules returns the installed table.
func (s *Sim) Rules() rules.Table { return s.table }

// Reset clears the grid and the step counter. Agents stay where they are.
func (s *Sim) Reset() {
	for i := range s.grid {
		s.grid[i] = 0
	}
	s.steps = 0
}

// ClearAgents despawns every agent entity.
func (s *Sim) ClearAgents() {
	for _, e := range s.agents {
		s.world.RemoveEntity(e)
	}
	s.agents = s.agents[:0]
}

// AddAgent spawns an agent at (x, y) with the given facing and returns
// its handle. Coordinates wrap toroidally.
func (s *Sim) AddAgent(x, y int, facing uint8) int {
	e := s.mapper.NewEntity(
		&Position{X: wrap(x, s.w), Y: wrap(y, s.h)},
		&Agent{State: 0, Facing: facing & 3},
	)
	s.agents = append(s.agents, e)
	return len(s.agents) - 1
}

// AgentCount returns the number of live agents.
func (s *Sim) AgentCount() int { return len(s.agents) }

// Cells exposes the per-cell color grid in row-major order.
func (s *Sim) Cells() []uint8 { return s.grid }

// Steps returns the number of steps taken since the last Reset.
func (s *Sim) Steps() int { return s.steps }

// Update advances the simulation by the given number of steps.
func (s *Sim) Update(steps int) {
	states := s.table.States()
	colors := s.table.Colors()
	if states == 0 || colors == 0 {
		return
	}
	for n := 0; n < steps; n++ {
		for _, e := range s.agents {
			pos, ag := s.mapper.Get(e)

			// A freshly installed table may have fewer states than the
			// one the agent last ran under.
			if int(ag.State) >= states {
				ag.State %= uint8(states)
			}

			idx := pos.Y*s.w + pos.X
			color := s.grid[idx]
			if int(color) >= colors {
				color %= uint8(colors)
			}
			r := s.table.At(int(ag.State), int(color))

			s.grid[idx] = r.Write
			ag.Facing = turn(ag.Facing, r.Turn)
			d := deltas[ag.Facing]
			pos.X = wrap(pos.X+d[0], s.w)
			pos.Y = wrap(pos.Y+d[1], s.h)
			ag.State = r.NextState
		}
		s.steps++
	}
}

func turn(facing uint8, t rules.Turn) uint8 {
	switch t {
	case rules.Left:
		return (facing + 3) & 3
	case rules.Right:
		return (facing + 1) & 3
	case rules.UTurn:
		return (facing + 2) & 3
	}
	return facing
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
