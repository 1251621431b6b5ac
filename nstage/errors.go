package nstage

import "errors"

// ErrNodeKindMismatch indicates a comparison was attempted between a
// detection node and a tracklet node; this should never happen since each
// stage's graph is homogeneous.
var ErrNodeKindMismatch = errors.New("nstage: cannot compare detection node with tracklet node")
