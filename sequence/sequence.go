// Package sequence implements DetectionSequence, a frame-indexed container
// of detection.Detection, densely indexed from frame 0 to the highest frame
// appended so far.
package sequence

import "github.com/wrede/gbmot/detection"

// DetectionSequence maps a frame index to the (possibly empty) list of
// detections observed in that frame. Appending at frame F auto-extends the
// sequence to length F+1, leaving intermediate frames as empty slices.
type DetectionSequence struct {
	frames [][]detection.Detection
}

// New builds an empty DetectionSequence.
func New() *DetectionSequence {
	return &DetectionSequence{}
}

// Append adds det to its own frame, extending the sequence as needed.
func (s *DetectionSequence) Append(det detection.Detection) {
	s.ensure(det.FrameIndex)
	s.frames[det.FrameIndex] = append(s.frames[det.FrameIndex], det)
}

func (s *DetectionSequence) ensure(frame int) {
	for len(s.frames) <= frame {
		s.frames = append(s.frames, nil)
	}
}

// FrameCount returns the number of frames currently spanned (max_frame+1, or
// 0 if empty).
func (s *DetectionSequence) FrameCount() int { return len(s.frames) }

// At returns the (possibly nil) list of detections for the given frame. A
// frame outside [0, FrameCount) returns nil.
func (s *DetectionSequence) At(frame int) []detection.Detection {
	if frame < 0 || frame >= len(s.frames) {
		return nil
	}

	return s.frames[frame]
}

// All returns every detection in the sequence, frame order then insertion order.
func (s *DetectionSequence) All() []detection.Detection {
	out := make([]detection.Detection, 0)
	for _, f := range s.frames {
		out = append(out, f...)
	}

	return out
}

// Range returns frames [start, stop) clamped to the sequence's bounds.
func (s *DetectionSequence) Range(start, stop int) [][]detection.Detection {
	if start < 0 {
		start = 0
	}
	if stop > len(s.frames) {
		stop = len(s.frames)
	}
	if start >= stop {
		return nil
	}

	return s.frames[start:stop]
}
