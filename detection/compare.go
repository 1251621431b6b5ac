package detection

import "math"

// Compare returns a non-negative dissimilarity cost between d (the earlier
// detection) and other (the later one), used directly as a graph edge
// weight. Smaller is a better match; Compare(d, d) is zero.
//
// Formulas:
//
//	Point:   Δframe·w_t + euclid(p1,p2)·w_s
//	Box:     same, using box centers
//	Angular: Point cost + |Δangle|·w_a
//
// Δframe is taken as non-negative: graphs built over these detections only
// ever connect a detection to one occurring at an equal or later frame, so
// the absolute value of the signed difference is used here.
func (d Detection) Compare(other Detection) (float64, error) {
	if d.Kind != other.Kind {
		return 0, ErrKindMismatch
	}

	df := float64(other.FrameIndex - d.FrameIndex)
	if df < 0 {
		df = -df
	}

	dx := other.CenterX() - d.CenterX()
	dy := other.CenterY() - d.CenterY()
	euclid := math.Hypot(dx, dy)

	cost := df*d.TemporalWeight + euclid*d.SpatialWeight

	if d.Kind == Angular {
		da := other.Angle - d.Angle
		if da < 0 {
			da = -da
		}
		cost += da * d.AngularWeight
	}

	return cost, nil
}

// Interpolate linearly interpolates every numeric field between d and other
// at fraction t in [0,1] (t=0 returns a value equal to d, t=1 equal to
// other). FrameIndex is rounded to the nearest non-negative integer.
func (d Detection) Interpolate(other Detection, t float64) (Detection, error) {
	if d.Kind != other.Kind {
		return Detection{}, ErrKindMismatch
	}

	lerp := func(a, b float64) float64 { return a + (b-a)*t }

	frame := int(math.Round(lerp(float64(d.FrameIndex), float64(other.FrameIndex))))
	if frame < 0 {
		frame = 0
	}

	out := Detection{
		Kind:           d.Kind,
		FrameIndex:     frame,
		DetectionScore: lerp(d.DetectionScore, other.DetectionScore),
		X:              lerp(d.X, other.X),
		Y:              lerp(d.Y, other.Y),
		TemporalWeight: lerp(d.TemporalWeight, other.TemporalWeight),
		SpatialWeight:  lerp(d.SpatialWeight, other.SpatialWeight),
	}

	switch d.Kind {
	case Box:
		out.Width = lerp(d.Width, other.Width)
		out.Height = lerp(d.Height, other.Height)
	case Angular:
		out.Angle = lerp(d.Angle, other.Angle)
		out.AngularWeight = lerp(d.AngularWeight, other.AngularWeight)
	}

	return out, nil
}
