package grid

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Convolve2D applies a (2*vicinity+1)^2 mask to every layer of the grid
// independently, reading and writing Score. Samples that fall outside the
// grid are skipped rather than treated as zero (border-clipped, not
// zero-padded).
func (g *Grid) Convolve2D(vicinity int, mask []float64, multiplier float64) error {
	maskSize := vicinity*2 + 1
	if len(mask) != maskSize*maskSize {
		return errMaskSize(maskSize*maskSize, len(mask))
	}

	out := make([]float64, len(g.cells))
	for z := 0; z < g.depthCount; z++ {
		for y := 0; y < g.heightCount; y++ {
			for x := 0; x < g.widthCount; x++ {
				score := 0.0
				for vy := -vicinity; vy <= vicinity; vy++ {
					ny := y + vy
					if ny < 0 || ny >= g.heightCount {
						continue
					}
					my := vy + vicinity
					for vx := -vicinity; vx <= vicinity; vx++ {
						nx := x + vx
						if nx < 0 || nx >= g.widthCount {
							continue
						}
						mx := vx + vicinity
						mi := my*maskSize + mx
						idx, _ := g.index(nx, ny, z)
						score += g.cells[idx].Score * mask[mi]
					}
				}
				idx, _ := g.index(x, y, z)
				out[idx] = score * multiplier
			}
		}
	}

	for i := range g.cells {
		g.cells[i].Score = out[i]
	}

	return nil
}

// Convolve3D is Convolve2D generalized across the depth axis as well.
func (g *Grid) Convolve3D(vicinity int, mask []float64, multiplier float64) error {
	maskSize := vicinity*2 + 1
	if len(mask) != maskSize*maskSize*maskSize {
		return errMaskSize(maskSize*maskSize*maskSize, len(mask))
	}

	out := make([]float64, len(g.cells))
	for z := 0; z < g.depthCount; z++ {
		for y := 0; y < g.heightCount; y++ {
			for x := 0; x < g.widthCount; x++ {
				score := 0.0
				for vz := -vicinity; vz <= vicinity; vz++ {
					nz := z + vz
					if nz < 0 || nz >= g.depthCount {
						continue
					}
					mz := vz + vicinity
					for vy := -vicinity; vy <= vicinity; vy++ {
						ny := y + vy
						if ny < 0 || ny >= g.heightCount {
							continue
						}
						my := vy + vicinity
						for vx := -vicinity; vx <= vicinity; vx++ {
							nx := x + vx
							if nx < 0 || nx >= g.widthCount {
								continue
							}
							mx := vx + vicinity
							mi := (mz*maskSize+my)*maskSize + mx
							idx, _ := g.index(nx, ny, nz)
							score += g.cells[idx].Score * mask[mi]
						}
					}
				}
				idx, _ := g.index(x, y, z)
				out[idx] = score * multiplier
			}
		}
	}

	for i := range g.cells {
		g.cells[i].Score = out[i]
	}

	return nil
}

// ClampQuantile rewrites every cell's score to its quantile rank within the
// whole grid's score distribution, using gonum's empirical CDF. This is an
// optional post-convolution normalization step, useful when batches have
// wildly different score scales.
func (g *Grid) ClampQuantile() {
	if len(g.cells) == 0 {
		return
	}

	sorted := make([]float64, len(g.cells))
	for i, c := range g.cells {
		sorted[i] = c.Score
	}
	sort.Float64s(sorted)

	for i, c := range g.cells {
		g.cells[i].Score = stat.CDF(c.Score, stat.Empirical, sorted, nil)
	}
}

type maskSizeError struct {
	want, got int
}

func (e *maskSizeError) Error() string {
	return "grid: mask has wrong length"
}

func errMaskSize(want, got int) error {
	return &maskSizeError{want: want, got: got}
}
