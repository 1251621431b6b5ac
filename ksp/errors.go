package ksp

import (
	"errors"
	"fmt"

	"github.com/wrede/gbmot/digraph"
)

// ErrNoPath indicates the sink is unreachable from the source in the
// current graph. K dispatchers treat this as "stop iterating, return what
// has been found so far".
var ErrNoPath = errors.New("ksp: no path from source to sink")

// ErrEmptyGraph indicates source or sink do not exist in the graph.
var ErrEmptyGraph = errors.New("ksp: source or sink vertex does not exist")

// NegativeCycleError indicates a negative-weight cycle was detected reaching
// Vertex during predecessor-chain reconstruction or Bellman-Ford relaxation.
// It is a fatal algorithmic condition: the engine returns it alongside
// whatever paths were already found, and the caller logs it.
type NegativeCycleError struct {
	Vertex digraph.VertexID
}

func (e *NegativeCycleError) Error() string {
	return fmt.Sprintf("ksp: negative cycle at %d", e.Vertex)
}
