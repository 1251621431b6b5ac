// Package grid implements the occupancy grid used by the Berclaz driver: a
// regular lattice of cells over a continuous coordinate space, each cell
// holding a detection score that can be smoothed with a convolution kernel.
// Cells are stored as a single flat slice rather than nested vectors.
package grid

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds indicates a cell index or position fell outside the grid.
var ErrOutOfBounds = errors.New("grid: index out of bounds")

// Cell holds everything Grid tracks per cell: the current smoothed score and
// the index of the detection (if any) the cell was seeded from.
type Cell struct {
	Score        float64
	DetectionIdx int
	HasDetection bool
}

// Grid is a width*height*depth lattice of Cells over a continuous coordinate
// box [0,Width)x[0,Height)x[0,Depth). Depth defaults to a single layer for
// the common 2D case.
type Grid struct {
	widthCount, heightCount, depthCount int
	width, height, depth                float64
	cellWidth, cellHeight, cellDepth    float64
	cells                               []Cell // flattened, index = (z*heightCount+y)*widthCount+x
}

// New2D creates a single-layer grid.
func New2D(widthCount, heightCount int, width, height float64) *Grid {
	return New3D(widthCount, heightCount, 1, width, height, 0)
}

// New3D creates a multi-layer grid.
func New3D(widthCount, heightCount, depthCount int, width, height, depth float64) *Grid {
	g := &Grid{
		widthCount:  widthCount,
		heightCount: heightCount,
		depthCount:  depthCount,
		width:       width,
		height:      height,
		depth:       depth,
		cellWidth:   width / float64(widthCount),
		cellHeight:  height / float64(heightCount),
		cells:       make([]Cell, widthCount*heightCount*depthCount),
	}
	if depthCount > 1 {
		g.cellDepth = depth / float64(depthCount)
	}

	return g
}

func (g *Grid) WidthCount() int  { return g.widthCount }
func (g *Grid) HeightCount() int { return g.heightCount }
func (g *Grid) DepthCount() int  { return g.depthCount }
func (g *Grid) Width() float64   { return g.width }
func (g *Grid) Height() float64  { return g.height }
func (g *Grid) Depth() float64   { return g.depth }

func (g *Grid) index(x, y, z int) (int, error) {
	if x < 0 || x >= g.widthCount || y < 0 || y >= g.heightCount || z < 0 || z >= g.depthCount {
		return 0, fmt.Errorf("%w: (%d,%d,%d)", ErrOutOfBounds, x, y, z)
	}

	return (z*g.heightCount+y)*g.widthCount + x, nil
}

// PositionToIndex converts a continuous position to its containing cell
// index via truncating division.
func (g *Grid) PositionToIndex(x, y, z float64) (xi, yi, zi int) {
	xi = int(x / g.cellWidth)
	yi = int(y / g.cellHeight)
	if g.depthCount > 1 {
		zi = int(z / g.cellDepth)
	}

	return xi, yi, zi
}

// At returns the cell at the given index.
func (g *Grid) At(x, y, z int) (Cell, error) {
	i, err := g.index(x, y, z)
	if err != nil {
		return Cell{}, err
	}

	return g.cells[i], nil
}

// Set stores the cell at the given index.
func (g *Grid) Set(x, y, z int, c Cell) error {
	i, err := g.index(x, y, z)
	if err != nil {
		return err
	}
	g.cells[i] = c

	return nil
}

// AtPosition returns the cell containing the given continuous position.
func (g *Grid) AtPosition(x, y, z float64) (Cell, error) {
	xi, yi, zi := g.PositionToIndex(x, y, z)

	return g.At(xi, yi, zi)
}

// SetPosition stores a cell at the index containing the given position.
func (g *Grid) SetPosition(x, y, z float64, c Cell) error {
	xi, yi, zi := g.PositionToIndex(x, y, z)

	return g.Set(xi, yi, zi, c)
}
