package ioformat

import (
	"github.com/wrede/gbmot/grid"
	"github.com/wrede/gbmot/sequence"
)

// detectionGaussianKernel is the 3x3 smoothing kernel applied to every
// detection grid after seeding, one layer at a time.
var detectionGaussianKernel = []float64{
	0.002284, 0.043222, 0.002284,
	0.043222, 0.817976, 0.043222,
	0.002284, 0.043222, 0.002284,
}

// ParseGrid quantizes the detections of seq in frames [start, stop) into a
// grid of depth stop-start over the continuous window
// [minX,maxX)x[minY,maxY), at the given cell resolution. Every cell starts
// as a virtual placeholder (score 0); a real detection falling in a cell
// seeds it, and a later detection in the same cell only overwrites it when
// its score is equal or higher. The grid is then smoothed with a 3x3
// Gaussian kernel, one frame layer at a time.
func ParseGrid(seq *sequence.DetectionSequence, start, stop int, minX, maxX float64, resX int, minY, maxY float64, resY int) *grid.Grid {
	depth := stop - start
	g := grid.New3D(resX, resY, depth, maxX-minX, maxY-minY, float64(depth))

	for z := 0; z < depth; z++ {
		frame := start + z
		if frame < 0 || frame >= seq.FrameCount() {
			continue
		}
		for idx, det := range seq.At(frame) {
			xi, yi, _ := g.PositionToIndex(det.CenterX()-minX, det.CenterY()-minY, 0)
			if xi < 0 || xi >= resX || yi < 0 || yi >= resY {
				continue
			}

			cell, err := g.At(xi, yi, z)
			if err != nil {
				continue
			}
			if cell.HasDetection && det.DetectionScore < cell.Score {
				continue
			}

			_ = g.Set(xi, yi, z, grid.Cell{
				Score:        det.DetectionScore,
				DetectionIdx: idx,
				HasDetection: true,
			})
		}
	}

	_ = g.Convolve2D(1, detectionGaussianKernel, 1.0)

	return g
}
