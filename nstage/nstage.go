// Package nstage implements the N-Stage graph-based tracker: build a
// directed graph over detections, iteratively extract shortest paths as
// tracklets, then repeat over a graph of tracklets for each further stage.
// Each extraction reuses the K=1 case of the shared ksp engine, which
// reduces to plain Dijkstra/Bellman-Ford dispatch since stage graphs never
// carry negative weights.
package nstage

import (
	"math"

	"github.com/wrede/gbmot/config"
	"github.com/wrede/gbmot/detection"
	"github.com/wrede/gbmot/diag"
	"github.com/wrede/gbmot/digraph"
	"github.com/wrede/gbmot/ksp"
	"github.com/wrede/gbmot/sequence"
	"github.com/wrede/gbmot/tracklet"
)

// node is the graph vertex label for both the stage-0 object graph (one
// node per detection) and every later tracklet graph (one node per
// tracklet from the prior stage). Source and sink are virtual nodes.
type node struct {
	virtual bool
	det     detection.Detection
	tlt     *tracklet.Tracklet
}

func (n node) compare(other node) (float64, error) {
	if n.tlt != nil && other.tlt != nil {
		return n.tlt.Compare(other.tlt)
	}
	if n.tlt == nil && other.tlt == nil {
		return n.det.Compare(other.det)
	}

	return 0, ErrNodeKindMismatch
}

// Driver runs the N-Stage algorithm.
type Driver struct {
	Config config.NStageConfig
	Sink   diag.Sink
}

// New returns a Driver with the given configuration and diagnostic sink
// (nil sink is valid; diagnostics are simply dropped).
func New(cfg config.NStageConfig, sink diag.Sink) *Driver {
	return &Driver{Config: cfg, Sink: sink}
}

// Run executes every configured stage over seq and returns the final,
// fully flattened tracks.
func (d *Driver) Run(seq *sequence.DetectionSequence) ([]*tracklet.Tracklet, error) {
	iterations := d.Config.Iterations()
	if iterations == 0 {
		return nil, config.ErrNoStages
	}

	objGraph, objNodes := d.createObjectGraph(seq)

	curGraph, curNodes, err := d.createTrackletGraph(objGraph, objNodes, seq.FrameCount(), 0)
	if err != nil {
		return nil, err
	}

	for stage := 1; stage < iterations; stage++ {
		curGraph, curNodes, err = d.createTrackletGraph(curGraph, curNodes, seq.FrameCount(), stage)
		if err != nil {
			return nil, err
		}
	}

	tracks := extractTracks(curGraph, curNodes)
	for _, t := range tracks {
		for i := 0; i < iterations-1; i++ {
			if err := t.Flatten(); err != nil {
				return nil, err
			}
		}
	}

	diag.Infof(d.Sink, "n-stage: extracted %d tracks over %d stages", len(tracks), iterations)

	return tracks, nil
}

// createObjectGraph builds stage 0: one vertex per detection plus virtual
// source/sink, edges within the first stage's max_frame_skip window.
func (d *Driver) createObjectGraph(seq *sequence.DetectionSequence) (*digraph.Graph, map[digraph.VertexID]node) {
	diag.Infof(d.Sink, "creating object graph")

	g := digraph.New()
	nodes := make(map[digraph.VertexID]node)

	source := g.AddVertex(nil)
	nodes[source] = node{virtual: true}

	frameCount := seq.FrameCount()
	layers := make([][]digraph.VertexID, frameCount)
	for i := 0; i < frameCount; i++ {
		for _, det := range seq.At(i) {
			v := g.AddVertex(nil)
			nodes[v] = node{det: det}
			layers[i] = append(layers[i], v)
		}
	}

	sink := g.AddVertex(nil)
	nodes[sink] = node{virtual: true}

	maxSkip := d.Config.MaxFrameSkip[0]
	penalty := d.Config.PenaltyValue[0]

	for i := range layers {
		for _, u := range layers[i] {
			for k := 1; k <= maxSkip && i+k < len(layers); k++ {
				for _, v := range layers[i+k] {
					w, err := nodes[u].compare(nodes[v])
					if err != nil {
						continue
					}
					_, _ = g.AddEdge(u, v, w)
				}
			}
			_, _ = g.AddEdge(source, u, float64(i+1)*penalty)
			_, _ = g.AddEdge(u, sink, float64(len(layers)-i)*penalty)
		}
	}

	diag.Debugf(d.Sink, "object graph: %d vertices, %d edges", g.NumVertices(), g.NumEdges())

	return g, nodes
}

// createTrackletGraph runs the tracklet-extraction loop on graph and then
// builds the next stage's graph over the extracted tracklets.
func (d *Driver) createTrackletGraph(
	graph *digraph.Graph,
	nodes map[digraph.VertexID]node,
	frameCount, stage int,
) (*digraph.Graph, map[digraph.VertexID]node, error) {
	diag.Infof(d.Sink, "creating tracklet graph, stage %d", stage)

	source := digraph.VertexID(0)
	sink := digraph.VertexID(graph.NumVertices() - 1)

	var tracklets []*tracklet.Tracklet
	for i := 0; i < d.Config.MaxTrackletCount[stage]; i++ {
		paths, err := ksp.KShortestPaths(graph, source, sink, 1)
		if err != nil {
			if _, ok := err.(*ksp.NegativeCycleError); ok {
				diag.Errorf(d.Sink, "negative cycle during tracklet extraction: %v", err)

				break
			}

			return nil, nil, err
		}
		if len(paths) == 0 {
			break
		}

		tlt := tracklet.New()
		for _, v := range paths[0].Vertices {
			n := nodes[v]
			if n.virtual {
				continue
			}
			if n.tlt != nil {
				tlt.AddTracklet(n.tlt, true)
			} else {
				tlt.Add(n.det, true)
			}

			outs, err := graph.OutEdges(v)
			if err != nil {
				return nil, nil, err
			}
			for _, eid := range outs {
				_ = graph.SetEdgeWeight(eid, math.Inf(1))
			}
		}

		tracklets = append(tracklets, tlt)
	}

	next := digraph.New()
	nextNodes := make(map[digraph.VertexID]node)

	tltSource := next.AddVertex(nil)
	nextNodes[tltSource] = node{virtual: true}

	vertexOf := make([]digraph.VertexID, len(tracklets))
	for i, tlt := range tracklets {
		v := next.AddVertex(nil)
		nextNodes[v] = node{tlt: tlt}
		vertexOf[i] = v
	}

	tltSink := next.AddVertex(nil)
	nextNodes[tltSink] = node{virtual: true}

	maxSkip := d.Config.MaxFrameSkip[stage]
	penalty := d.Config.PenaltyValue[stage]

	for i, ta := range tracklets {
		u := vertexOf[i]
		for j, tb := range tracklets {
			if i == j {
				continue
			}
			if ta.LastFrame() < tb.FirstFrame() && tb.FirstFrame()-ta.LastFrame() < maxSkip {
				w, err := ta.Compare(tb)
				if err != nil {
					continue
				}
				_, _ = next.AddEdge(u, vertexOf[j], w)
			}
		}
		_, _ = next.AddEdge(tltSource, u, float64(ta.FirstFrame()+1)*penalty)
		_, _ = next.AddEdge(u, tltSink, float64(frameCount-ta.LastFrame())*penalty)
	}

	diag.Debugf(d.Sink, "tracklet graph: %d vertices, %d edges", next.NumVertices(), next.NumEdges())

	return next, nextNodes, nil
}

func extractTracks(graph *digraph.Graph, nodes map[digraph.VertexID]node) []*tracklet.Tracklet {
	var tracks []*tracklet.Tracklet
	for _, v := range graph.Vertices() {
		n := nodes[v]
		if n.virtual || n.tlt == nil {
			continue
		}
		tracks = append(tracks, n.tlt)
	}

	return tracks
}
