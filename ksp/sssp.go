package ksp

import (
	"container/heap"
	"math"

	"github.com/wrede/gbmot/digraph"
)

const noPred = digraph.VertexID(-1)

// ssspResult holds the outcome of a single-source shortest-path run: Dist
// holds the best known distance to every vertex (math.Inf(1) if unreachable),
// Pred holds the predecessor vertex on the shortest path (noPred if none),
// and PredWeight holds the weight of the specific edge used to relax that
// predecessor relationship. The Suurballe transformation does not read
// PredWeight; it looks weights up with edgeWeightLookup.
type ssspResult struct {
	Dist       map[digraph.VertexID]float64
	Pred       map[digraph.VertexID]digraph.VertexID
	PredWeight map[digraph.VertexID]float64
}

// sssp dispatches to Dijkstra (no negative edges) or Bellman-Ford (at least
// one negative edge).
func sssp(g *digraph.Graph, source digraph.VertexID) (*ssspResult, error) {
	if g.HasNegativeEdge() {
		return bellmanFord(g, source)
	}

	return dijkstra(g, source)
}

func newSSSPResult(g *digraph.Graph, source digraph.VertexID) *ssspResult {
	r := &ssspResult{
		Dist:       make(map[digraph.VertexID]float64, g.NumVertices()),
		Pred:       make(map[digraph.VertexID]digraph.VertexID, g.NumVertices()),
		PredWeight: make(map[digraph.VertexID]float64, g.NumVertices()),
	}
	for _, v := range g.Vertices() {
		r.Dist[v] = math.Inf(1)
		r.Pred[v] = noPred
	}
	r.Dist[source] = 0

	return r
}

// heapItem and heapQueue implement the lazy-decrease-key min-heap pattern:
// container/heap, push duplicates, ignore stale pops via a visited set.
type heapItem struct {
	vertex digraph.VertexID
	dist   float64
}

type heapQueue []heapItem

func (q heapQueue) Len() int            { return len(q) }
func (q heapQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q heapQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *heapQueue) Push(x interface{}) { *q = append(*q, x.(heapItem)) }
func (q *heapQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]

	return item
}

// dijkstra computes shortest distances from source assuming no negative
// edge weights. Edges with weight +Inf are treated as removed, which is how
// nstage's reuse-prevention saturation takes effect.
func dijkstra(g *digraph.Graph, source digraph.VertexID) (*ssspResult, error) {
	r := newSSSPResult(g, source)
	visited := make(map[digraph.VertexID]bool, g.NumVertices())

	pq := &heapQueue{{vertex: source, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(heapItem)
		u := item.vertex
		if visited[u] {
			continue
		}
		visited[u] = true

		outs, err := g.OutEdges(u)
		if err != nil {
			return nil, err
		}
		for _, eid := range outs {
			e, err := g.Edge(eid)
			if err != nil {
				return nil, err
			}
			if math.IsInf(e.Weight, 1) {
				continue
			}
			newDist := r.Dist[u] + e.Weight
			if newDist < r.Dist[e.To] {
				r.Dist[e.To] = newDist
				r.Pred[e.To] = u
				r.PredWeight[e.To] = e.Weight
				heap.Push(pq, heapItem{vertex: e.To, dist: newDist})
			}
		}
	}

	return r, nil
}

// bellmanFord computes shortest distances from source, tolerating negative
// edge weights. It relaxes all edges |V|-1 times, then performs one extra
// relaxation pass; any edge still relaxable in that pass witnesses a
// negative-weight cycle reachable from source (design note: "standard
// Bellman-Ford with an explicit extra relaxation pass").
func bellmanFord(g *digraph.Graph, source digraph.VertexID) (*ssspResult, error) {
	r := newSSSPResult(g, source)
	vertices := g.Vertices()
	edges := g.Edges()

	relaxOnce := func() bool {
		changed := false
		for _, eid := range edges {
			e, _ := g.Edge(eid)
			if math.IsInf(e.Weight, 1) || math.IsInf(r.Dist[e.From], 1) {
				continue
			}
			newDist := r.Dist[e.From] + e.Weight
			if newDist < r.Dist[e.To] {
				r.Dist[e.To] = newDist
				r.Pred[e.To] = e.From
				r.PredWeight[e.To] = e.Weight
				changed = true
			}
		}

		return changed
	}

	for i := 0; i < len(vertices)-1; i++ {
		if !relaxOnce() {
			break
		}
	}

	// Extra relaxation pass: any further improvement witnesses a negative cycle.
	for _, eid := range edges {
		e, _ := g.Edge(eid)
		if math.IsInf(e.Weight, 1) || math.IsInf(r.Dist[e.From], 1) {
			continue
		}
		if r.Dist[e.From]+e.Weight < r.Dist[e.To] {
			return nil, &NegativeCycleError{Vertex: e.To}
		}
	}

	return r, nil
}

// buildPath walks predecessors from sink back to source, returning the
// vertex sequence [source, ..., sink]. It detects revisits (a cycle baked
// into the predecessor chain) and reports ErrNoPath when sink is unreachable.
func buildPath(r *ssspResult, source, sink digraph.VertexID) ([]digraph.VertexID, error) {
	if math.IsInf(r.Dist[sink], 1) {
		return nil, ErrNoPath
	}

	visited := make(map[digraph.VertexID]bool)
	var rev []digraph.VertexID
	cur := sink
	for {
		if visited[cur] {
			return nil, &NegativeCycleError{Vertex: cur}
		}
		visited[cur] = true
		rev = append(rev, cur)
		if cur == source {
			break
		}
		prev := r.Pred[cur]
		if prev == noPred {
			return nil, ErrNoPath
		}
		cur = prev
	}

	out := make([]digraph.VertexID, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}

	return out, nil
}
