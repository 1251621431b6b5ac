package ksp

import "github.com/wrede/gbmot/digraph"

// pair is a directed (from,to) vertex pair, used to track which edges are
// currently part of the accumulated multi-predecessor map P*.
type pair struct {
	from, to digraph.VertexID
}

// orderedEdgeSet is P*: a set of directed vertex pairs that also remembers
// insertion order, so that tie-breaking ("ties are broken by insertion
// order") and deterministic predecessor extraction are both possible.
type orderedEdgeSet struct {
	order []pair
	have  map[pair]bool
}

func newOrderedEdgeSet() *orderedEdgeSet {
	return &orderedEdgeSet{have: make(map[pair]bool)}
}

func (s *orderedEdgeSet) add(p pair) {
	if s.have[p] {
		return
	}
	s.have[p] = true
	s.order = append(s.order, p)
}

func (s *orderedEdgeSet) addAll(ps []pair) {
	for _, p := range ps {
		s.add(p)
	}
}

func (s *orderedEdgeSet) contains(p pair) bool { return s.have[p] }

// cancelReciprocals removes every pair (u,v) for which (v,u) is also
// present.
func (s *orderedEdgeSet) cancelReciprocals() {
	drop := make(map[pair]bool)
	for _, p := range s.order {
		rev := pair{from: p.to, to: p.from}
		if s.have[rev] {
			drop[p] = true
			drop[rev] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	kept := s.order[:0:0]
	for _, p := range s.order {
		if !drop[p] {
			kept = append(kept, p)
		}
	}
	s.order = kept
	for p := range drop {
		delete(s.have, p)
	}
}

// predsOf returns, for every vertex with at least one predecessor in s, the
// list of predecessors in insertion order.
func (s *orderedEdgeSet) predsOf() map[digraph.VertexID][]digraph.VertexID {
	out := make(map[digraph.VertexID][]digraph.VertexID)
	for _, p := range s.order {
		out[p.to] = append(out[p.to], p.from)
	}

	return out
}

// pairsFromVertices builds the ordered (from,to) pairs of consecutive
// vertices along a path.
func pairsFromVertices(path []digraph.VertexID) []pair {
	out := make([]pair, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		out = append(out, pair{from: path[i], to: path[i+1]})
	}

	return out
}

// splitGraph is the result of transforming g according to the accumulated
// path set covered: every edge on covered is reversed (attached at the
// twin of its target, unless the target is the sink), interior vertices of
// covered get a twin, and external edges ending at an interior vertex are
// retargeted to that vertex's twin.
type splitGraph struct {
	graph  *digraph.Graph
	origOf map[digraph.VertexID]digraph.VertexID // twin -> original; absent for non-twins
}

// orig maps a vertex in the split graph back to its original-graph identity.
func (sg *splitGraph) orig(v digraph.VertexID) digraph.VertexID {
	if o, ok := sg.origOf[v]; ok {
		return o
	}

	return v
}

// buildSplitGraph constructs the transformed graph, generalized to an
// arbitrary accumulated edge set `covered` (a single path for the K=2
// path-pair procedure, or the full P* for the K>2 iterative procedure).
// g is never mutated; the returned graph is new.
func buildSplitGraph(g *digraph.Graph, source, sink digraph.VertexID, covered *orderedEdgeSet) *splitGraph {
	out := digraph.New()
	for range g.Vertices() {
		out.AddVertex(nil)
	}

	interior := make(map[digraph.VertexID]digraph.VertexID) // original -> twin
	origOf := make(map[digraph.VertexID]digraph.VertexID)   // twin -> original

	predsOf := covered.predsOf()
	for v := range predsOf {
		if v == source || v == sink {
			continue
		}
		twin := out.AddVertex(nil)
		interior[v] = twin
		origOf[twin] = v
	}

	// Reverse every covered edge, attaching it at the twin of its target
	// (unless the target is the sink, which has no twin).
	for _, p := range covered.order {
		w := edgeWeightLookup(g, p.from, p.to)
		origin := p.to
		if twin, ok := interior[p.to]; ok {
			origin = twin
		}
		_, _ = out.AddEdge(origin, p.from, -w)
	}

	// Copy every other edge, retargeting endpoints that are interior
	// vertices covered by the path set to their twin.
	for _, eid := range g.Edges() {
		e, _ := g.Edge(eid)
		if covered.contains(pair{from: e.From, to: e.To}) {
			continue
		}
		to := e.To
		if twin, ok := interior[to]; ok {
			to = twin
		}
		_, _ = out.AddEdge(e.From, to, e.Weight)
	}

	return &splitGraph{graph: out, origOf: origOf}
}

// edgeWeightLookup returns the weight of the first edge found from->to in g.
// Multiple parallel edges between the same pair are rare in these per-batch
// DAGs; when they occur, the first one added wins, matching the
// deterministic insertion-order iteration guaranteed by digraph.Graph.
func edgeWeightLookup(g *digraph.Graph, from, to digraph.VertexID) float64 {
	outs, err := g.OutEdges(from)
	if err != nil {
		return 0
	}
	for _, eid := range outs {
		e, _ := g.Edge(eid)
		if e.To == to {
			return e.Weight
		}
	}

	return 0
}
