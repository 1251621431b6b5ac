// Package detection defines the Detection value type shared by every stage
// of the tracker: a single per-frame observation of an object, polymorphic
// over three kinds (Point, Box, Angular) via a Kind discriminant rather than
// a class hierarchy.
//
// A Detection is immutable except for DetectionScore and the weight fields,
// which may be set during construction. All positions are expected to already
// be normalized into [0,1]^2 by the time a Detection reaches this package;
// normalization itself lives in ioformat.
package detection

import "errors"

// Sentinel errors for detection construction and comparison.
var (
	// ErrNegativeFrame indicates a FrameIndex was constructed with a negative value.
	ErrNegativeFrame = errors.New("detection: frame index must be non-negative")

	// ErrKindMismatch indicates Compare or Interpolate was called between
	// detections of incompatible Kind.
	ErrKindMismatch = errors.New("detection: mismatched detection kinds")
)

// Kind discriminates the payload carried by a Detection.
type Kind int

const (
	// Point is a plain 2D position with temporal/spatial weights.
	Point Kind = iota
	// Box adds width/height to Point.
	Box
	// Angular adds an angle and angular weight to Point.
	Angular
)

// String renders the Kind name for diagnostics and CSV headers.
func (k Kind) String() string {
	switch k {
	case Point:
		return "Point"
	case Box:
		return "Box"
	case Angular:
		return "Angular"
	default:
		return "Unknown"
	}
}

// Detection is a single observation of an object in one frame.
//
// FrameIndex, DetectionScore and IsVirtual are common to every Kind. X/Y,
// TemporalWeight and SpatialWeight are populated for all kinds; Width/Height
// are meaningful only for Box, Angle/AngularWeight only for Angular.
type Detection struct {
	Kind Kind

	FrameIndex      int
	DetectionScore  float64
	IsVirtual       bool
	X, Y            float64
	TemporalWeight  float64
	SpatialWeight   float64
	Width, Height   float64
	Angle           float64
	AngularWeight   float64
}

// NewVirtual builds the placeholder Detection used as source/sink vertices
// and as empty grid cells. Its score is 0 and it carries no real position.
func NewVirtual() Detection {
	return Detection{IsVirtual: true}
}

// NewPoint builds a Point detection.
func NewPoint(frame int, x, y, score, temporalWeight, spatialWeight float64) (Detection, error) {
	if frame < 0 {
		return Detection{}, ErrNegativeFrame
	}

	return Detection{
		Kind:           Point,
		FrameIndex:     frame,
		DetectionScore: score,
		X:              x,
		Y:              y,
		TemporalWeight: temporalWeight,
		SpatialWeight:  spatialWeight,
	}, nil
}

// NewBox builds a Box detection.
func NewBox(frame int, x, y, width, height, score, temporalWeight, spatialWeight float64) (Detection, error) {
	d, err := NewPoint(frame, x, y, score, temporalWeight, spatialWeight)
	if err != nil {
		return Detection{}, err
	}
	d.Kind = Box
	d.Width = width
	d.Height = height

	return d, nil
}

// NewAngular builds an Angular detection.
func NewAngular(frame int, x, y, angleRad, score, temporalWeight, spatialWeight, angularWeight float64) (Detection, error) {
	d, err := NewPoint(frame, x, y, score, temporalWeight, spatialWeight)
	if err != nil {
		return Detection{}, err
	}
	d.Kind = Angular
	d.Angle = angleRad
	d.AngularWeight = angularWeight

	return d, nil
}

// CenterX returns the comparison x-coordinate: for Box this is the box
// center (X already holds the top-left corner by convention), for Point and
// Angular it is X itself.
func (d Detection) CenterX() float64 {
	if d.Kind == Box {
		return d.X + d.Width/2
	}

	return d.X
}

// CenterY returns the comparison y-coordinate, mirroring CenterX.
func (d Detection) CenterY() float64 {
	if d.Kind == Box {
		return d.Y + d.Height/2
	}

	return d.Y
}
