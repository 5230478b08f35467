package validate

import (
	"hash/fnv"
	"math"
)

// Placement chooses validation agent start positions. The strategy name
// selects among arrangements so different origins spread their agents
// differently, but the mapping is fixed for a given name.
type Placement func(strategy string, index, total, width, height int) (x, y int)

// DefaultPlacement hashes the strategy name to one of three fixed
// arrangements: a center cluster, a ring, or a diagonal line.
func DefaultPlacement(strategy string, index, total, width, height int) (int, int) {
	h := fnv.New32a()
	h.Write([]byte(strategy))
	switch h.Sum32() % 3 {
	case 0:
		return cluster(index, width, height)
	case 1:
		return ring(index, total, width, height)
	default:
		return diagonal(index, total, width, height)
	}
}

// cluster packs agents around the grid center with small fixed offsets.
func cluster(index, width, height int) (int, int) {
	offsets := [][2]int{{0, 0}, {2, 1}, {-2, -1}, {1, -2}, {-1, 2}, {3, 0}, {0, 3}, {-3, 0}}
	o := offsets[index%len(offsets)]
	return wrap(width/2+o[0], width), wrap(height/2+o[1], height)
}

// ring spreads agents evenly on a circle of radius min(w,h)/4.
func ring(index, total, width, height int) (int, int) {
	if total < 1 {
		total = 1
	}
	r := float64(min(width, height)) / 4
	a := 2 * math.Pi * float64(index) / float64(total)
	x := width/2 + int(r*math.Cos(a))
	y := height/2 + int(r*math.Sin(a))
	return wrap(x, width), wrap(y, height)
}

// diagonal spaces agents along the main diagonal.
func diagonal(index, total, width, height int) (int, int) {
	if total < 1 {
		total = 1
	}
	x := (index + 1) * width / (total + 1)
	y := (index + 1) * height / (total + 1)
	return wrap(x, width), wrap(y, height)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
