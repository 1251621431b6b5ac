package digraph_test

import (
	"math"
	"testing"

	"github.com/wrede/gbmot/digraph"
	"github.com/stretchr/testify/require"
)

func TestAddVertexAndEdge(t *testing.T) {
	g := digraph.New()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	eid, err := g.AddEdge(a, b, -3.5)
	require.NoError(t, err)

	e, err := g.Edge(eid)
	require.NoError(t, err)
	require.Equal(t, a, e.From)
	require.Equal(t, b, e.To)
	require.Equal(t, -3.5, e.Weight)
	require.True(t, g.HasNegativeEdge())
}

func TestParallelEdgesAllowed(t *testing.T) {
	g := digraph.New()
	a := g.AddVertex(nil)
	b := g.AddVertex(nil)
	_, err := g.AddEdge(a, b, 1)
	require.NoError(t, err)
	_, err = g.AddEdge(a, b, 2)
	require.NoError(t, err)

	outs, err := g.OutEdges(a)
	require.NoError(t, err)
	require.Len(t, outs, 2)
}

func TestClearOutEdgesSaturates(t *testing.T) {
	g := digraph.New()
	a := g.AddVertex(nil)
	b := g.AddVertex(nil)
	eid, err := g.AddEdge(a, b, 1)
	require.NoError(t, err)

	require.NoError(t, g.ClearOutEdges(a, math.Inf(1)))
	e, err := g.Edge(eid)
	require.NoError(t, err)
	require.True(t, math.IsInf(e.Weight, 1))
}

func TestCloneIndependence(t *testing.T) {
	g := digraph.New()
	a := g.AddVertex(nil)
	b := g.AddVertex(nil)
	eid, err := g.AddEdge(a, b, 1)
	require.NoError(t, err)

	clone := g.Clone()
	require.NoError(t, clone.SetEdgeWeight(eid, 99))

	orig, err := g.Edge(eid)
	require.NoError(t, err)
	require.Equal(t, 1.0, orig.Weight)
}

func TestInsertionOrderDeterministic(t *testing.T) {
	g := digraph.New()
	g.AddVertex("x")
	g.AddVertex("y")
	g.AddVertex("z")

	ids := g.Vertices()
	require.Equal(t, []digraph.VertexID{0, 1, 2}, ids)
}
