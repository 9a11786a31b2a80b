package sph

import "github.com/san-kum/pipeflow/internal/geom"

// grid is a uniform cell grid over the bounding box, keyed by cell size = h,
// so any pair closer than h lands within one cell of each other. Neighbor
// queries visit the 27 surrounding cells; distance filtering stays in the
// physics passes, which keeps correctness independent of the search strategy.
type grid struct {
	origin     geom.Vec3
	cellSize   float64
	nx, ny, nz int
	cells      [][]int
}

func newGrid(bounds geom.Box, cellSize float64) *grid {
	size := bounds.Size()
	g := &grid{
		origin:   bounds.Min,
		cellSize: cellSize,
		nx:       int(size.X/cellSize) + 1,
		ny:       int(size.Y/cellSize) + 1,
		nz:       int(size.Z/cellSize) + 1,
	}
	g.cells = make([][]int, g.nx*g.ny*g.nz)
	return g
}

// rebuild re-bins every particle. Bins are filled in particle index order,
// so neighbor enumeration order is deterministic across runs.
func (g *grid) rebuild(particles []Particle) {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	for i := range particles {
		idx := g.cellIndex(particles[i].Position)
		g.cells[idx] = append(g.cells[idx], i)
	}
}

// forEachNeighbor visits every particle index binned within one cell of pos,
// each exactly once. Candidates beyond the smoothing radius are included;
// callers apply the r < h cutoff.
func (g *grid) forEachNeighbor(pos geom.Vec3, visit func(j int)) {
	cx, cy, cz := g.cellCoords(pos)
	for dx := -1; dx <= 1; dx++ {
		x := cx + dx
		if x < 0 || x >= g.nx {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			y := cy + dy
			if y < 0 || y >= g.ny {
				continue
			}
			for dz := -1; dz <= 1; dz++ {
				z := cz + dz
				if z < 0 || z >= g.nz {
					continue
				}
				for _, j := range g.cells[(x*g.ny+y)*g.nz+z] {
					visit(j)
				}
			}
		}
	}
}

func (g *grid) cellIndex(pos geom.Vec3) int {
	x, y, z := g.cellCoords(pos)
	return (x*g.ny+y)*g.nz + z
}

// cellCoords clamps, so particles outside the box bin to border cells.
func (g *grid) cellCoords(pos geom.Vec3) (int, int, int) {
	x := clampInt(int((pos.X-g.origin.X)/g.cellSize), g.nx-1)
	y := clampInt(int((pos.Y-g.origin.Y)/g.cellSize), g.ny-1)
	z := clampInt(int((pos.Z-g.origin.Z)/g.cellSize), g.nz-1)
	return x, y, z
}

func clampInt(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
