// Package ksp implements the K-shortest vertex-disjoint paths engine: the
// shared hard core used by both the N-Stage and Berclaz drivers to extract
// globally optimal, pairwise vertex-disjoint s→t paths from a weighted DAG
// that may carry negative edge weights.
//
// Built on a lazy-decrease-key heap SSSP (sentinel errors, no Options type
// since the engine takes its graph and k directly), extended with
// Bellman-Ford for negative edges and the Suurballe/Bhandari
// path-disjointness transformation for k > 1.
package ksp

import (
	"math"

	"github.com/wrede/gbmot/digraph"
)

// Path is one s→t path found by the engine: the ordered vertex sequence and
// its total cost measured on the original (untransformed) edge weights.
type Path struct {
	Vertices []digraph.VertexID
	Cost     float64
}

// KShortestPaths finds up to k pairwise vertex-disjoint source→sink paths in
// g, minimizing their combined cost. g is never mutated. Behavior by k:
//
//	k == 0: returns (nil, nil).
//	k == 1: a single SSSP call.
//	k == 2: the path-pair procedure.
//	k >  2: the iterative procedure, seeded by the first SSSP.
//
// On ErrNoPath the dispatcher stops early and returns the paths already
// found (nil error). On a detected negative cycle it does the same, but
// returns the NegativeCycleError alongside the partial results so the
// caller can log it.
func KShortestPaths(g *digraph.Graph, source, sink digraph.VertexID, k int) ([]Path, error) {
	if k <= 0 {
		return nil, nil
	}
	if source >= digraph.VertexID(g.NumVertices()) || sink >= digraph.VertexID(g.NumVertices()) || source < 0 || sink < 0 {
		return nil, ErrEmptyGraph
	}

	switch {
	case k == 1:
		return singlePath(g, source, sink)
	case k == 2:
		return pathPair(g, source, sink)
	default:
		return iterative(g, source, sink, k)
	}
}

func pathCost(g *digraph.Graph, vertices []digraph.VertexID) float64 {
	cost := 0.0
	for i := 0; i+1 < len(vertices); i++ {
		cost += edgeWeightLookup(g, vertices[i], vertices[i+1])
	}

	return cost
}

func singlePath(g *digraph.Graph, source, sink digraph.VertexID) ([]Path, error) {
	r, err := sssp(g, source)
	if err != nil {
		return nil, err
	}

	vertices, err := buildPath(r, source, sink)
	if err == ErrNoPath {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return []Path{{Vertices: vertices, Cost: pathCost(g, vertices)}}, nil
}

// pathPair implements the path-pair procedure for k==2, operating directly
// on g's original weights (no potential reweighting).
func pathPair(g *digraph.Graph, source, sink digraph.VertexID) ([]Path, error) {
	r1, err := sssp(g, source)
	if err != nil {
		return nil, err
	}
	p1, err := buildPath(r1, source, sink)
	if err == ErrNoPath {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	covered := newOrderedEdgeSet()
	covered.addAll(pairsFromVertices(p1))

	sg := buildSplitGraph(g, source, sink, covered)
	r2, err := sssp(sg.graph, source)
	if err != nil {
		// Negative cycle in the transformed graph: degrade to the single path found.
		if _, ok := err.(*NegativeCycleError); ok {
			return []Path{{Vertices: p1, Cost: pathCost(g, p1)}}, err
		}

		return nil, err
	}
	p2InSplit, err := buildPath(r2, source, sink)
	if err == ErrNoPath {
		// No second vertex-disjoint path exists; return what we have.
		return []Path{{Vertices: p1, Cost: pathCost(g, p1)}}, nil
	}
	if err != nil {
		if _, ok := err.(*NegativeCycleError); ok {
			return []Path{{Vertices: p1, Cost: pathCost(g, p1)}}, err
		}

		return nil, err
	}

	p2 := make([]digraph.VertexID, len(p2InSplit))
	for i, v := range p2InSplit {
		p2[i] = sg.orig(v)
	}

	pairs1 := pairsFromVertices(p1)
	pairs2 := pairsFromVertices(p2)

	set1 := newOrderedEdgeSet()
	set1.addAll(pairs1)
	set2 := newOrderedEdgeSet()
	set2.addAll(pairs2)

	var remaining1, remaining2 []pair
	for _, p := range pairs1 {
		if set2.contains(pair{from: p.to, to: p.from}) {
			continue // cancelled
		}
		remaining1 = append(remaining1, p)
	}
	for _, p := range pairs2 {
		if set1.contains(pair{from: p.to, to: p.from}) {
			continue // cancelled
		}
		remaining2 = append(remaining2, p)
	}

	final1 := walkFromSource(source, sink, remaining1, remaining2)
	final2 := walkFromSource(source, sink, remaining2, remaining1)

	return []Path{
		{Vertices: final1, Cost: pathCost(g, final1)},
		{Vertices: final2, Cost: pathCost(g, final2)},
	}, nil
}

// walkFromSource reconstructs the path that starts by taking the first
// edge of `primary` out of source, then follows whichever of primary/
// secondary's remaining edges continues the chain. After cancellation the
// two remaining edge sets interleave into exactly two disjoint s→t chains;
// this walks one of them.
func walkFromSource(source, sink digraph.VertexID, primary, secondary []pair) []digraph.VertexID {
	all := append(append([]pair{}, primary...), secondary...)
	next := make(map[digraph.VertexID]digraph.VertexID)

	var firstHop *pair
	for i, p := range primary {
		if p.from == source {
			firstHop = &primary[i]

			break
		}
	}
	if firstHop == nil {
		return nil
	}

	for _, p := range all {
		if p == *firstHop {
			continue
		}
		next[p.from] = p.to
	}

	path := []digraph.VertexID{source, firstHop.to}
	cur := firstHop.to
	for cur != sink {
		nxt, ok := next[cur]
		if !ok {
			break
		}
		path = append(path, nxt)
		cur = nxt
	}

	return path
}

// iterative implements the iterative procedure for k>2: Johnson potential
// reweighting followed by up to k-1 further SSSP rounds against the
// accumulated multi-predecessor map P*.
func iterative(g *digraph.Graph, source, sink digraph.VertexID, k int) ([]Path, error) {
	r1, err := sssp(g, source)
	if err != nil {
		return nil, err
	}
	p1, err := buildPath(r1, source, sink)
	if err == ErrNoPath {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	reduced := reweight(g, r1.Dist)

	pStar := newOrderedEdgeSet()
	pStar.addAll(pairsFromVertices(p1))

	var lastErr error
	for i := 2; i <= k; i++ {
		sg := buildSplitGraph(reduced, source, sink, pStar)
		ri, err := sssp(sg.graph, source)
		if err != nil {
			if _, ok := err.(*NegativeCycleError); ok {
				lastErr = err
			}

			break
		}
		pathInSplit, err := buildPath(ri, source, sink)
		if err == ErrNoPath {
			break
		}
		if err != nil {
			if _, ok := err.(*NegativeCycleError); ok {
				lastErr = err
			}

			break
		}

		mapped := make([]digraph.VertexID, len(pathInSplit))
		for j, v := range pathInSplit {
			mapped[j] = sg.orig(v)
		}

		pStar.addAll(pairsFromVertices(mapped))
		pStar.cancelReciprocals()
	}

	paths := extractPaths(pStar, source, sink)
	out := make([]Path, 0, len(paths))
	for _, vs := range paths {
		out = append(out, Path{Vertices: vs, Cost: pathCost(g, vs)})
	}

	return out, lastErr
}

// reweight returns a clone of g whose every edge weight w(u,v) becomes
// w(u,v) + dist[u] - dist[v] (Johnson's technique). Edges touching a vertex
// unreachable from the SSSP source are left at +Inf (unusable): they cannot
// appear on any s→t path anyway.
func reweight(g *digraph.Graph, dist map[digraph.VertexID]float64) *digraph.Graph {
	out := digraph.New()
	for range g.Vertices() {
		out.AddVertex(nil)
	}
	for _, eid := range g.Edges() {
		e, _ := g.Edge(eid)
		du, dv := dist[e.From], dist[e.To]
		w := math.Inf(1)
		if !math.IsInf(du, 1) && !math.IsInf(dv, 1) {
			w = e.Weight + du - dv
		}
		_, _ = out.AddEdge(e.From, e.To, w)
	}

	return out
}

// extractPaths walks each predecessor chain in P* back from a vertex with
// an edge into sink to source, and emits the reversed sequence.
func extractPaths(pStar *orderedEdgeSet, source, sink digraph.VertexID) [][]digraph.VertexID {
	preds := pStar.predsOf()

	var out [][]digraph.VertexID
	for _, u := range preds[sink] {
		chain := []digraph.VertexID{u}
		cur := u
		for cur != source {
			ps := preds[cur]
			if len(ps) == 0 {
				chain = nil

				break
			}
			cur = ps[0]
			chain = append(chain, cur)
		}
		if chain == nil {
			continue
		}

		// chain is [u, ..., source] in reverse; flip and append sink.
		path := make([]digraph.VertexID, 0, len(chain)+1)
		for i := len(chain) - 1; i >= 0; i-- {
			path = append(path, chain[i])
		}
		path = append(path, sink)
		out = append(out, path)
	}

	return out
}
