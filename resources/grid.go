package resources

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

type cellKey struct {
	x, y, z int
}

// grid buckets branch end points into cubic cells at least as large as the
// query radius, so a radius query only needs the 27 surrounding cells.
type grid struct {
	cellSize float64
	cells    map[cellKey][]int
}

func newGrid(points []Snapshot, cellSize float64) *grid {
	g := &grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int, len(points)),
	}
	if cellSize <= 0 {
		return g
	}
	for i := range points {
		k := g.key(points[i].End)
		g.cells[k] = append(g.cells[k], i)
	}
	return g
}

func (g *grid) key(p r3.Vec) cellKey {
	return cellKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
		z: int(math.Floor(p.Z / g.cellSize)),
	}
}

// candidatesInto appends every index in the cells around p to dst, sorted
// ascending. Callers still filter by exact distance.
func (g *grid) candidatesInto(dst []int, p r3.Vec) []int {
	if g.cellSize <= 0 {
		return dst
	}
	c := g.key(p)
	start := len(dst)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				dst = append(dst, g.cells[cellKey{c.x + dx, c.y + dy, c.z + dz}]...)
			}
		}
	}
	sort.Ints(dst[start:])
	return dst
}
