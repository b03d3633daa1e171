package physics

import (
	"math"

	"github.com/lixenwraith/rigid2d/constants"
	"github.com/lixenwraith/rigid2d/vmath"
)

// spatialGrid is the uniform-grid broad phase: a sparse map from hashed cell
// coordinates to the shapes whose bounds overlap that cell. It is fully
// rebuilt every fixed step; a cheap rebuild beats stale-cell bugs when most
// shapes move every frame.
//
// Each shape remembers the cell keys it was inserted into, so removal is
// O(cells occupied)
type spatialGrid struct {
	cellSize    float64
	invCellSize float64
	cells       map[int64][]*Shape

	// Visit stamp for de-duplicating candidates of shapes spanning several
	// cells without allocating a set per query
	stamp uint64
}

func newSpatialGrid(cellSize float64) *spatialGrid {
	if cellSize <= 0 {
		cellSize = constants.GridCellSize
	}
	return &spatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cells:       make(map[int64][]*Shape),
	}
}

// cellCoord maps a world coordinate to a cell index
func (g *spatialGrid) cellCoord(v float64) int64 {
	return int64(math.Floor(v * g.invCellSize))
}

// cellKey folds a 2D cell coordinate into one sparse map key via a
// multiplicative hash
func cellKey(x, y int64) int64 {
	return x*constants.CellHashPrimeX ^ y*constants.CellHashPrimeY
}

// insert adds the shape to every cell its cached bounds span and records
// those keys on the shape. Bounds must be fresh
func (g *spatialGrid) insert(s *Shape) {
	s.cells = s.cells[:0]
	g.eachCell(s.bounds, func(key int64) {
		g.cells[key] = append(g.cells[key], s)
		s.cells = append(s.cells, key)
	})
}

// remove erases the shape from every cell it was inserted into, dropping
// cells that become empty
func (g *spatialGrid) remove(s *Shape) {
	for _, key := range s.cells {
		bucket := g.cells[key]
		for i, other := range bucket {
			if other == s {
				bucket[i] = bucket[len(bucket)-1]
				bucket = bucket[:len(bucket)-1]
				break
			}
		}
		if len(bucket) == 0 {
			delete(g.cells, key)
		} else {
			g.cells[key] = bucket
		}
	}
	s.cells = s.cells[:0]
}

// clear drops all cells, keeping the map for reuse
func (g *spatialGrid) clear() {
	for key := range g.cells {
		delete(g.cells, key)
	}
}

// candidates appends to buf every other shape sharing a cell with s, each
// at most once, and returns the extended slice
func (g *spatialGrid) candidates(s *Shape, buf []*Shape) []*Shape {
	g.stamp++
	s.queryStamp = g.stamp
	for _, key := range s.cells {
		for _, other := range g.cells[key] {
			if other.queryStamp == g.stamp {
				continue
			}
			other.queryStamp = g.stamp
			buf = append(buf, other)
		}
	}
	return buf
}

// eachCell enumerates the keys of every cell the bounds span
func (g *spatialGrid) eachCell(bounds vmath.AABB, fn func(key int64)) {
	minX := g.cellCoord(bounds.Min.X())
	minY := g.cellCoord(bounds.Min.Y())
	maxX := g.cellCoord(bounds.Max.X())
	maxY := g.cellCoord(bounds.Max.Y())
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			fn(cellKey(x, y))
		}
	}
}

// occupancy returns the number of live cells and the largest bucket, for
// diagnostics
func (g *spatialGrid) occupancy() (cells, maxBucket int) {
	cells = len(g.cells)
	for _, bucket := range g.cells {
		if len(bucket) > maxBucket {
			maxBucket = len(bucket)
		}
	}
	return cells, maxBucket
}
