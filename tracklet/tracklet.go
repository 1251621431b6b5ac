// Package tracklet implements an ordered, gap-tolerant path of detections
// believed to originate from the same physical object. A Tracklet itself
// satisfies the same Compare/Interpolate capability as a plain detection.Detection,
// so tracklets can be used as vertex labels in a higher-stage graph.
package tracklet

import (
	"errors"
	"sort"

	"github.com/wrede/gbmot/detection"
)

// Sentinel errors for tracklet operations.
var (
	// ErrEmptyTracklet indicates an operation requiring at least one path
	// element was called on an empty Tracklet.
	ErrEmptyTracklet = errors.New("tracklet: path is empty")

	// ErrNotFlat indicates Detections (or Combine) was called on a tracklet
	// whose path still holds at least one nested Tracklet; Flatten it first.
	ErrNotFlat = errors.New("tracklet: path holds nested tracklets")
)

// pathElem is either a raw detection.Detection or a nested Tracklet. Stage 0
// of the N-Stage driver builds tracklets of raw detections; stage i>0 builds
// tracklets-of-tracklets, which Flatten later collapses.
type pathElem struct {
	det    detection.Detection
	nested *Tracklet
}

func (p pathElem) frameIndex() int {
	if p.nested != nil {
		return p.nested.FirstFrame()
	}

	return p.det.FrameIndex
}

// Tracklet is an ordered list of non-virtual detections (or nested tracklets),
// sorted strictly ascending by frame index.
type Tracklet struct {
	path []pathElem
}

// New builds an empty Tracklet.
func New() *Tracklet {
	return &Tracklet{}
}

// FromDetections builds a Tracklet from an already frame-sorted slice of
// detections. Intended for tests and interpolation helpers.
func FromDetections(dets []detection.Detection) *Tracklet {
	tr := New()
	for _, d := range dets {
		tr.Add(d, false)
	}

	return tr
}

// Add inserts det into the path keeping strict ascending-frame order. If a
// path element already occupies det.FrameIndex, overwrite controls whether
// the existing element is replaced (true) or det is dropped (false).
func (t *Tracklet) Add(det detection.Detection, overwrite bool) {
	t.addElem(pathElem{det: det}, overwrite)
}

// AddTracklet inserts a nested tracklet as a single path element, keyed by
// its FirstFrame. Used when building stage i>0 tracklet graphs.
func (t *Tracklet) AddTracklet(nested *Tracklet, overwrite bool) {
	t.addElem(pathElem{nested: nested}, overwrite)
}

func (t *Tracklet) addElem(e pathElem, overwrite bool) {
	frame := e.frameIndex()
	idx := sort.Search(len(t.path), func(i int) bool { return t.path[i].frameIndex() >= frame })
	if idx < len(t.path) && t.path[idx].frameIndex() == frame {
		if overwrite {
			t.path[idx] = e
		}

		return
	}

	t.path = append(t.path, pathElem{})
	copy(t.path[idx+1:], t.path[idx:])
	t.path[idx] = e
}

// Len returns the number of path elements.
func (t *Tracklet) Len() int { return len(t.path) }

// FirstFrame returns the lowest frame index in the path, or -1 if empty.
func (t *Tracklet) FirstFrame() int {
	if len(t.path) == 0 {
		return -1
	}

	return t.path[0].frameIndex()
}

// LastFrame returns the highest frame index in the path, or -1 if empty.
func (t *Tracklet) LastFrame() int {
	if len(t.path) == 0 {
		return -1
	}

	return t.path[len(t.path)-1].frameIndex()
}

// IsVirtual is always false for a Tracklet: only raw detections are virtual.
func (t *Tracklet) IsVirtual() bool { return false }

// first returns the detection.Detection representation of the first path
// element, recursing through nested tracklets.
func (t *Tracklet) first() (detection.Detection, error) {
	if len(t.path) == 0 {
		return detection.Detection{}, ErrEmptyTracklet
	}
	e := t.path[0]
	if e.nested != nil {
		return e.nested.first()
	}

	return e.det, nil
}

// last returns the detection.Detection representation of the last path
// element, recursing through nested tracklets.
func (t *Tracklet) last() (detection.Detection, error) {
	if len(t.path) == 0 {
		return detection.Detection{}, ErrEmptyTracklet
	}
	e := t.path[len(t.path)-1]
	if e.nested != nil {
		return e.nested.last()
	}

	return e.det, nil
}

// Compare implements the same capability as detection.Detection.Compare:
// the cost between the last detection of t and the first detection of
// other.
func (t *Tracklet) Compare(other *Tracklet) (float64, error) {
	a, err := t.last()
	if err != nil {
		return 0, err
	}
	b, err := other.first()
	if err != nil {
		return 0, err
	}

	return a.Compare(b)
}

// Interpolate implements the same capability as detection.Detection.Interpolate,
// applied to the same endpoint pair used by Compare.
func (t *Tracklet) Interpolate(other *Tracklet, frac float64) (detection.Detection, error) {
	a, err := t.last()
	if err != nil {
		return detection.Detection{}, err
	}
	b, err := other.first()
	if err != nil {
		return detection.Detection{}, err
	}

	return a.Interpolate(b, frac)
}

// Detections returns the flat, frame-ordered list of raw detections backing
// this tracklet. Every path element must already be a raw detection (call
// Flatten first if the tracklet holds nested tracklets).
func (t *Tracklet) Detections() ([]detection.Detection, error) {
	out := make([]detection.Detection, 0, len(t.path))
	for _, e := range t.path {
		if e.nested != nil {
			return nil, ErrNotFlat
		}
		out = append(out, e.det)
	}

	return out, nil
}

// AtFrame returns the detection at the given frame index and true, or the
// zero Detection and false if no path element occupies that frame.
func (t *Tracklet) AtFrame(frame int) (detection.Detection, bool) {
	for _, e := range t.path {
		if e.frameIndex() == frame {
			if e.nested != nil {
				return e.nested.AtFrame(frame)
			}

			return e.det, true
		}
		if e.frameIndex() > frame {
			break
		}
	}

	return detection.Detection{}, false
}

// Flatten replaces the path with the concatenation of each nested tracklet's
// own path, preserving order, when every element is itself a Tracklet. It is
// a no-op (returns nil) if the path is already flat.
func (t *Tracklet) Flatten() error {
	if len(t.path) == 0 {
		return nil
	}

	allNested := true
	for _, e := range t.path {
		if e.nested == nil {
			allNested = false

			break
		}
	}
	if !allNested {
		return nil
	}

	merged := make([]pathElem, 0, len(t.path))
	for _, e := range t.path {
		merged = append(merged, e.nested.path...)
	}
	t.path = merged

	return nil
}

// Combine appends every detection of other onto this tracklet, maintaining
// frame order.
func (t *Tracklet) Combine(other *Tracklet) error {
	dets, err := other.Detections()
	if err != nil {
		return err
	}
	for _, d := range dets {
		t.Add(d, false)
	}

	return nil
}

// InterpolateMissingFrames inserts interpolants at fraction 0.5 between
// every consecutive pair whose frame gap is >1, iterating until every gap
// in the path is exactly 1. Idempotent: a second call is a no-op.
func (t *Tracklet) InterpolateMissingFrames() error {
	for {
		gapAt := -1
		for i := 0; i+1 < len(t.path); i++ {
			if t.path[i+1].frameIndex()-t.path[i].frameIndex() > 1 {
				gapAt = i

				break
			}
		}
		if gapAt < 0 {
			return nil
		}

		a, err := t.elemDetection(gapAt)
		if err != nil {
			return err
		}
		b, err := t.elemDetection(gapAt + 1)
		if err != nil {
			return err
		}

		mid, err := a.Interpolate(b, 0.5)
		if err != nil {
			return err
		}

		t.path = append(t.path, pathElem{})
		copy(t.path[gapAt+2:], t.path[gapAt+1:])
		t.path[gapAt+1] = pathElem{det: mid}
	}
}

func (t *Tracklet) elemDetection(i int) (detection.Detection, error) {
	e := t.path[i]
	if e.nested != nil {
		return e.nested.last()
	}

	return e.det, nil
}
