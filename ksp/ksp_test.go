package ksp_test

import (
	"testing"

	"github.com/wrede/gbmot/digraph"
	"github.com/wrede/gbmot/ksp"
	"github.com/stretchr/testify/require"
)

func TestKZeroReturnsNil(t *testing.T) {
	g := digraph.New()
	s := g.AddVertex(nil)
	tt := g.AddVertex(nil)
	paths, err := ksp.KShortestPaths(g, s, tt, 0)
	require.NoError(t, err)
	require.Nil(t, paths)
}

func TestKOneIsShortestPath(t *testing.T) {
	g := digraph.New()
	s := g.AddVertex(nil)
	a := g.AddVertex(nil)
	b := g.AddVertex(nil)
	tt := g.AddVertex(nil)
	mustEdge(t, g, s, a, 1)
	mustEdge(t, g, a, tt, 1)
	mustEdge(t, g, s, b, 5)
	mustEdge(t, g, b, tt, 5)

	paths, err := ksp.KShortestPaths(g, s, tt, 1)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.Equal(t, []digraph.VertexID{s, a, tt}, paths[0].Vertices)
	require.Equal(t, 2.0, paths[0].Cost)
}

func TestKOneNoPath(t *testing.T) {
	g := digraph.New()
	s := g.AddVertex(nil)
	tt := g.AddVertex(nil)
	paths, err := ksp.KShortestPaths(g, s, tt, 1)
	require.NoError(t, err)
	require.Nil(t, paths)
}

// Two fully independent two-hop branches: the optimal disjoint pair is just
// both branches taken whole, no reversal needed.
func TestPathPairAlreadyDisjoint(t *testing.T) {
	g := digraph.New()
	s := g.AddVertex(nil)
	a := g.AddVertex(nil)
	b := g.AddVertex(nil)
	c := g.AddVertex(nil)
	d := g.AddVertex(nil)
	tt := g.AddVertex(nil)
	mustEdge(t, g, s, a, 1)
	mustEdge(t, g, a, tt, 1)
	mustEdge(t, g, s, b, 2)
	mustEdge(t, g, b, c, 1)
	mustEdge(t, g, c, d, 1)
	mustEdge(t, g, d, tt, 2)

	paths, err := ksp.KShortestPaths(g, s, tt, 2)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	seen := make(map[digraph.VertexID]int)
	for _, p := range paths {
		for _, v := range p.Vertices {
			seen[v]++
		}
	}
	for v, count := range seen {
		if v == s || v == tt {
			require.Equal(t, 2, count, "source/sink shared by both paths")
		} else {
			require.Equal(t, 1, count, "interior vertex %d must belong to exactly one path", v)
		}
	}
}

// A single available path: the second SSSP degrades to ErrNoPath and the
// dispatcher returns the one path found, without error.
func TestPathPairOnlyOnePathExists(t *testing.T) {
	g := digraph.New()
	s := g.AddVertex(nil)
	a := g.AddVertex(nil)
	tt := g.AddVertex(nil)
	mustEdge(t, g, s, a, 1)
	mustEdge(t, g, a, tt, 1)

	paths, err := ksp.KShortestPaths(g, s, tt, 2)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.Equal(t, []digraph.VertexID{s, a, tt}, paths[0].Vertices)
}

// Two candidate paths that overlap on an interior vertex: the winning
// disjoint pair must route around it, exercising the split-graph reversal.
func TestPathPairCrossingRequiresReversal(t *testing.T) {
	g := digraph.New()
	s := g.AddVertex(nil)
	v1 := g.AddVertex(nil)
	v2 := g.AddVertex(nil)
	tt := g.AddVertex(nil)
	mustEdge(t, g, s, v1, 1)
	mustEdge(t, g, v1, v2, 0)
	mustEdge(t, g, v2, tt, 1)
	mustEdge(t, g, s, v2, 2)
	mustEdge(t, g, v1, tt, 2)

	paths, err := ksp.KShortestPaths(g, s, tt, 2)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	interior := make(map[digraph.VertexID]int)
	for _, p := range paths {
		for _, v := range p.Vertices {
			if v != s && v != tt {
				interior[v]++
			}
		}
	}
	for v, c := range interior {
		require.Equal(t, 1, c, "vertex %d reused across disjoint paths", v)
	}
}

func TestKGreaterThanTwoStopsWhenExhausted(t *testing.T) {
	g := digraph.New()
	s := g.AddVertex(nil)
	a := g.AddVertex(nil)
	b := g.AddVertex(nil)
	tt := g.AddVertex(nil)
	mustEdge(t, g, s, a, 1)
	mustEdge(t, g, a, tt, 1)
	mustEdge(t, g, s, b, 1)
	mustEdge(t, g, b, tt, 1)

	paths, err := ksp.KShortestPaths(g, s, tt, 5)
	require.NoError(t, err)
	require.Len(t, paths, 2)
}

// Three fully independent branches: K=3 must actually recover all three as
// pairwise vertex-disjoint paths, not just stop early once exhausted.
func TestKThreeRecoversThreeDisjointPaths(t *testing.T) {
	g := digraph.New()
	s := g.AddVertex(nil)
	tt := g.AddVertex(nil)

	branches := make([][2]digraph.VertexID, 3)
	for i := 0; i < 3; i++ {
		a := g.AddVertex(nil)
		b := g.AddVertex(nil)
		mustEdge(t, g, s, a, float64(i+1))
		mustEdge(t, g, a, b, 1)
		mustEdge(t, g, b, tt, float64(i+1))
		branches[i] = [2]digraph.VertexID{a, b}
	}

	paths, err := ksp.KShortestPaths(g, s, tt, 3)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	seen := make(map[digraph.VertexID]int)
	for _, p := range paths {
		require.Len(t, p.Vertices, 4)
		for _, v := range p.Vertices {
			if v == s || v == tt {
				continue
			}
			seen[v]++
		}
	}
	require.Len(t, seen, 6, "all six interior branch vertices must appear")
	for v, count := range seen {
		require.Equal(t, 1, count, "interior vertex %d reused across paths", v)
	}
}

// Suurballe reference: 7 vertices, s=0, t=6, K=2. One optimal disjoint pair
// is {0->1->2->6, 0->4->5->6} with combined cost 5+1+1 + 2+1+1 = 11; any
// vertex-disjoint pair achieving that combined minimum is an acceptable
// answer.
func TestPathPairSevenNodeReference(t *testing.T) {
	g := digraph.New()
	vs := make([]digraph.VertexID, 7)
	for i := range vs {
		vs[i] = g.AddVertex(nil)
	}

	type e struct {
		from, to int
		w        float64
	}
	edges := []e{
		{0, 1, 5}, {0, 4, 2},
		{1, 2, 1}, {1, 4, 1},
		{2, 6, 1},
		{3, 2, 1},
		{4, 3, 2}, {4, 5, 1},
		{5, 2, 1}, {5, 6, 1},
	}
	for _, edge := range edges {
		mustEdge(t, g, vs[edge.from], vs[edge.to], edge.w)
	}

	paths, err := ksp.KShortestPaths(g, vs[0], vs[6], 2)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	total := paths[0].Cost + paths[1].Cost
	require.Equal(t, 11.0, total)

	interior := make(map[digraph.VertexID]int)
	for _, p := range paths {
		for _, v := range p.Vertices {
			if v != vs[0] && v != vs[6] {
				interior[v]++
			}
		}
	}
	for v, c := range interior {
		require.Equal(t, 1, c, "vertex %d reused across disjoint paths", v)
	}
}

func mustEdge(t *testing.T, g *digraph.Graph, from, to digraph.VertexID, w float64) {
	t.Helper()
	_, err := g.AddEdge(from, to, w)
	require.NoError(t, err)
}
