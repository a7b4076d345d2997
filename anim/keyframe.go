package anim

import (
	"errors"
	"fmt"
)

// Keyframe errors. Decoders wrap them into schema errors.
var (
	// ErrInvalidKeyframes is returned for empty or out-of-order keyframe
	// lists and for frame-only markers that are not last.
	ErrInvalidKeyframes = errors.New("anim: invalid keyframes")

	// ErrMismatchedLength is returned when bezier vertex and tangent
	// arrays differ in length, or start and end shapes differ in size.
	ErrMismatchedLength = errors.New("anim: mismatched bezier lengths")
)

// Handle is an easing control point in the unit square.
type Handle struct {
	X, Y float64
}

// Keyframe is one canonical interpolation segment.
type Keyframe[T Value] struct {
	StartFrame float64
	EndFrame   float64
	StartValue T
	EndValue   T

	// Out eases away from StartValue, In eases into EndValue.
	// Either being nil makes the segment linear.
	Out *Handle
	In  *Handle

	Hold bool
}

// RawKeyframe is a keyframe as documents encode it. Start is nil for a
// frame-only marker.
type RawKeyframe[T Value] struct {
	Frame float64
	Start *T
	End   *T
	Out   *Handle
	In    *Handle
	Hold  bool
}

// Raw is an undecoded property: either a static value or a keyframe list.
type Raw[T Value] struct {
	Static    *T
	Keyframes []RawKeyframe[T]
}

// Normalize converts a raw encoding into canonical keyframes.
//
// A static value yields one keyframe spanning [0, 0]. In a keyframe list,
// every EndFrame comes from the next entry's Frame and a missing End from
// the next entry's Start. Hold keyframes keep their start value. A trailing
// frame-only marker only provides the last EndFrame.
func Normalize[T Value](raw Raw[T]) ([]Keyframe[T], error) {
	if raw.Static != nil {
		if err := checkShape(*raw.Static); err != nil {
			return nil, err
		}
		return []Keyframe[T]{{StartValue: *raw.Static, EndValue: *raw.Static}}, nil
	}
	if len(raw.Keyframes) == 0 {
		return nil, fmt.Errorf("%w: no value and no keyframes", ErrInvalidKeyframes)
	}

	out := make([]Keyframe[T], 0, len(raw.Keyframes))
	for i, rk := range raw.Keyframes {
		if rk.Start == nil {
			if i != len(raw.Keyframes)-1 {
				return nil, fmt.Errorf("%w: frame-only marker at index %d is not last", ErrInvalidKeyframes, i)
			}
			if i == 0 {
				return nil, fmt.Errorf("%w: only a frame-only marker", ErrInvalidKeyframes)
			}
			continue
		}
		if i > 0 && rk.Frame < raw.Keyframes[i-1].Frame {
			return nil, fmt.Errorf("%w: frame %v after %v", ErrInvalidKeyframes, rk.Frame, raw.Keyframes[i-1].Frame)
		}
		if err := checkShape(*rk.Start); err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}

		kf := Keyframe[T]{
			StartFrame: rk.Frame,
			EndFrame:   rk.Frame,
			StartValue: *rk.Start,
			EndValue:   *rk.Start,
			Out:        rk.Out,
			In:         rk.In,
			Hold:       rk.Hold,
		}

		var end *T
		if i+1 < len(raw.Keyframes) {
			next := raw.Keyframes[i+1]
			kf.EndFrame = max(next.Frame, kf.StartFrame)
			end = next.Start
		}
		if rk.End != nil {
			end = rk.End
		}
		if end != nil && !rk.Hold {
			if err := checkPair(*rk.Start, *end); err != nil {
				return nil, fmt.Errorf("keyframe %d: %w", i, err)
			}
			kf.EndValue = *end
		}
		out = append(out, kf)
	}
	return out, nil
}

func checkShape[T Value](v T) error {
	if b, ok := any(v).(Bezier); ok && !b.Valid() {
		return fmt.Errorf("%w: %d vertices, %d in, %d out", ErrMismatchedLength,
			len(b.Vertices), len(b.InTangents), len(b.OutTangents))
	}
	return nil
}

func checkPair[T Value](a, b T) error {
	if err := checkShape(b); err != nil {
		return err
	}
	ab, ok := any(a).(Bezier)
	if !ok {
		return nil
	}
	if bb := any(b).(Bezier); len(ab.Vertices) != len(bb.Vertices) {
		return fmt.Errorf("%w: start has %d vertices, end has %d", ErrMismatchedLength,
			len(ab.Vertices), len(bb.Vertices))
	}
	return nil
}
