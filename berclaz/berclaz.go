// Package berclaz implements the Berclaz spatio-temporal grid tracker:
// quantize each batch of frames into a grid, build a source/sink-terminated
// DAG with vicinity wiring, run the shared KSP engine for K vertex-disjoint
// paths, then connect tracks across batches. Cell vertices use a
// consistently width-major linear index, and connectTracks only merges on
// a strictly improving match.
package berclaz

import (
	"math"

	"github.com/wrede/gbmot/config"
	"github.com/wrede/gbmot/detection"
	"github.com/wrede/gbmot/diag"
	"github.com/wrede/gbmot/digraph"
	"github.com/wrede/gbmot/grid"
	"github.com/wrede/gbmot/ioformat"
	"github.com/wrede/gbmot/ksp"
	"github.com/wrede/gbmot/sequence"
	"github.com/wrede/gbmot/tracklet"
)

const (
	virtualEdgeWeight = 0.0
	maxScoreValue     = 0.999999
	minScoreValue     = 0.000001
)

// Driver runs the Berclaz algorithm.
type Driver struct {
	Config config.BerclazConfig
	Sink   diag.Sink
}

// New returns a Driver with the given configuration and diagnostic sink.
func New(cfg config.BerclazConfig, sink diag.Sink) *Driver {
	return &Driver{Config: cfg, Sink: sink}
}

// Run splits sequence into batches of Config.BatchSize frames, tracks each
// batch independently via the grid DAG + KSP, then connects tracks across
// batch boundaries if more than one batch was processed.
func (d *Driver) Run(seq *sequence.DetectionSequence) ([]*tracklet.Tracklet, error) {
	var tracks []*tracklet.Tracklet

	frameCount := seq.FrameCount()
	for start := 0; start < frameCount; start += d.Config.BatchSize {
		stop := start + d.Config.BatchSize
		if stop > frameCount {
			stop = frameCount
		}

		diag.Debugf(d.Sink, "batch offset: %d", start)

		g := ioformat.ParseGrid(seq, start, stop, 0, 1, d.Config.HorizontalResolution, 0, 1, d.Config.VerticalResolution)
		if d.Config.ClampScoreQuantile {
			g.ClampQuantile()
		}

		diag.Debugf(d.Sink, "create graph")
		dag, source, sink, cellVertex := d.createGraph(g, seq, start)

		diag.Debugf(d.Sink, "run ksp")
		paths, err := ksp.KShortestPaths(dag, source, sink, d.Config.MaxTrackCount)
		if err != nil {
			if _, ok := err.(*ksp.NegativeCycleError); ok {
				diag.Errorf(d.Sink, "negative cycle in batch at offset %d: %v", start, err)
			} else {
				return nil, err
			}
		}

		for _, p := range paths {
			tlt := tracklet.New()
			for _, v := range p.Vertices {
				if v == source || v == sink {
					continue
				}
				// Virtual cells (no real detection) never appear in cellVertex;
				// a path is allowed to pass through them to bridge a gap, but
				// only real detections become track points.
				det, ok := cellVertex[v]
				if !ok {
					continue
				}
				tlt.Add(det, true)
			}
			if tlt.Len() > 0 {
				tracks = append(tracks, tlt)
			}
		}
	}

	if d.Config.BatchSize < frameCount {
		diag.Debugf(d.Sink, "connect tracks")
		tracks = connectTracks(tracks)
	}

	for _, t := range tracks {
		if err := t.InterpolateMissingFrames(); err != nil {
			return nil, err
		}
	}

	diag.Infof(d.Sink, "berclaz: extracted %d tracks", len(tracks))

	return tracks, nil
}

// createGraph builds one vertex per cell plus source/sink, vicinity-wired
// forward edges, and the logit edge weight -log(s/(1-s)). cellVertex maps
// a cell vertex back to the real detection.Detection that seeded it; cells
// without a real detection (virtual placeholders) are left out of the map
// entirely, so a path may still traverse them but never emits a track point
// for one. start is the batch's first frame, used to resolve each grid
// depth layer z back to the absolute frame start+z in seq.
func (d *Driver) createGraph(g *grid.Grid, seq *sequence.DetectionSequence, start int) (*digraph.Graph, digraph.VertexID, digraph.VertexID, map[digraph.VertexID]detection.Detection) {
	dag := digraph.New()
	w, h, dep := g.WidthCount(), g.HeightCount(), g.DepthCount()

	vertexAt := make([][]digraph.VertexID, dep)
	cellVertex := make(map[digraph.VertexID]detection.Detection)

	for z := 0; z < dep; z++ {
		frame := start + z
		var layer []detection.Detection
		if frame >= 0 && frame < seq.FrameCount() {
			layer = seq.At(frame)
		}

		vertexAt[z] = make([]digraph.VertexID, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := dag.AddVertex(nil)
				// width-major linear index, consistently applied.
				vertexAt[z][x+y*w] = v

				cell, _ := g.At(x, y, z)
				if cell.HasDetection && cell.DetectionIdx >= 0 && cell.DetectionIdx < len(layer) {
					cellVertex[v] = layer[cell.DetectionIdx]
				}
			}
		}
	}

	source := dag.AddVertex(nil)
	sink := dag.AddVertex(nil)

	vicinity := d.Config.VicinitySize
	for z := 0; z < dep; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				cell, _ := g.At(x, y, z)
				score := clampScore(cell.Score)
				weight := -math.Log(score / (1 - score))

				vi := vertexAt[z][x+y*w]

				if z < dep-1 {
					for ny := max(0, y-vicinity); ny < min(h, y+vicinity+1); ny++ {
						for nx := max(0, x-vicinity); nx < min(w, x+vicinity+1); nx++ {
							vj := vertexAt[z+1][nx+ny*w]
							_, _ = dag.AddEdge(vi, vj, weight)
						}
					}
					_, _ = dag.AddEdge(vi, sink, virtualEdgeWeight)
				} else {
					_, _ = dag.AddEdge(vi, sink, weight)
				}

				_, _ = dag.AddEdge(source, vi, virtualEdgeWeight)
			}
		}
	}

	return dag, source, sink, cellVertex
}

func clampScore(s float64) float64 {
	if s > maxScoreValue {
		return maxScoreValue
	}
	if s < minScoreValue {
		return minScoreValue
	}

	return s
}
