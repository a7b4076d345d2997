package bodymovin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gogpu/lottie/anim"
	"github.com/gogpu/lottie/geom"
)

var errValue = errors.New("bodymovin: unexpected value")

// flag is a boolean that documents write either as true/false or as 0/1.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*f = true
		return nil
	case "false", "null":
		*f = false
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s is not a flag", errValue, data)
	}
	*f = n != 0
	return nil
}

// rawProperty is an animatable value: {"a": 0|1, "k": value | keyframes}.
type rawProperty struct {
	Animated flag            `json:"a"`
	K        json.RawMessage `json:"k"`
}

type rawKeyframe struct {
	T float64         `json:"t"`
	S json.RawMessage `json:"s"`
	E json.RawMessage `json:"e"`
	I *rawEase        `json:"i"`
	O *rawEase        `json:"o"`
	H flag            `json:"h"`
}

// rawEase is an easing handle. Multi-dimensional values carry one handle
// per dimension; the first is used for all of them.
type rawEase struct {
	X json.RawMessage `json:"x"`
	Y json.RawMessage `json:"y"`
}

func (e *rawEase) handle() (*anim.Handle, error) {
	if e == nil {
		return nil, nil
	}
	x, err := parseScalar(e.X)
	if err != nil {
		return nil, err
	}
	y, err := parseScalar(e.Y)
	if err != nil {
		return nil, err
	}
	return &anim.Handle{X: x, Y: y}, nil
}

// parser converts one JSON value into T.
type parser[T anim.Value] func(json.RawMessage) (T, error)

// isKeyframeList reports whether k is an array of objects.
func isKeyframeList(k json.RawMessage) bool {
	k = bytes.TrimSpace(k)
	if len(k) == 0 || k[0] != '[' {
		return false
	}
	rest := bytes.TrimSpace(k[1:])
	return len(rest) > 0 && rest[0] == '{'
}

// decodeProperty decodes a property object. A missing property yields def.
func decodeProperty[T anim.Value](data json.RawMessage, parse parser[T], def T) (anim.Property[T], error) {
	if isAbsent(data) {
		return anim.Static(def), nil
	}
	var rp rawProperty
	if err := json.Unmarshal(data, &rp); err != nil {
		return anim.Property[T]{}, err
	}
	if isAbsent(rp.K) {
		return anim.Static(def), nil
	}

	if !isKeyframeList(rp.K) {
		v, err := parse(rp.K)
		if err != nil {
			return anim.Property[T]{}, err
		}
		return anim.NewProperty(anim.Raw[T]{Static: &v})
	}

	var rks []rawKeyframe
	if err := json.Unmarshal(rp.K, &rks); err != nil {
		return anim.Property[T]{}, err
	}
	raw := anim.Raw[T]{Keyframes: make([]anim.RawKeyframe[T], len(rks))}
	for i, rk := range rks {
		kf := anim.RawKeyframe[T]{Frame: rk.T, Hold: bool(rk.H)}
		if !isAbsent(rk.S) {
			v, err := parse(rk.S)
			if err != nil {
				return anim.Property[T]{}, fmt.Errorf("keyframe %d: %w", i, err)
			}
			kf.Start = &v
		}
		if !isAbsent(rk.E) {
			v, err := parse(rk.E)
			if err != nil {
				return anim.Property[T]{}, fmt.Errorf("keyframe %d: %w", i, err)
			}
			kf.End = &v
		}
		var err error
		if kf.In, err = rk.I.handle(); err != nil {
			return anim.Property[T]{}, fmt.Errorf("keyframe %d: %w", i, err)
		}
		if kf.Out, err = rk.O.handle(); err != nil {
			return anim.Property[T]{}, fmt.Errorf("keyframe %d: %w", i, err)
		}
		raw.Keyframes[i] = kf
	}
	return anim.NewProperty(raw)
}

func isAbsent(data json.RawMessage) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || string(data) == "null"
}

// numbers decodes a number or an array of numbers.
func numbers(data json.RawMessage) ([]float64, error) {
	var vs []float64
	if err := json.Unmarshal(data, &vs); err == nil {
		return vs, nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %s is not a number", errValue, clip(data))
	}
	return []float64{v}, nil
}

// parseScalar takes the first number of data.
func parseScalar(data json.RawMessage) (float64, error) {
	vs, err := numbers(data)
	if err != nil {
		return 0, err
	}
	if len(vs) == 0 {
		return 0, fmt.Errorf("%w: empty array", errValue)
	}
	return vs[0], nil
}

// parsePoint takes x and y from [x, y, z?]. A single number sets both.
func parsePoint(data json.RawMessage) (geom.Point, error) {
	vs, err := numbers(data)
	if err != nil {
		return geom.Point{}, err
	}
	switch len(vs) {
	case 0:
		return geom.Point{}, fmt.Errorf("%w: empty point", errValue)
	case 1:
		return geom.Pt(vs[0], vs[0]), nil
	}
	return geom.Pt(vs[0], vs[1]), nil
}

// parseColor reads [r, g, b, a?]. Documents that write 0-255 channels are
// detected by any channel above 1.
func parseColor(data json.RawMessage) (anim.Color, error) {
	vs, err := numbers(data)
	if err != nil {
		return anim.Color{}, err
	}
	if len(vs) < 3 {
		return anim.Color{}, fmt.Errorf("%w: color with %d components", errValue, len(vs))
	}
	c := anim.Color{R: vs[0], G: vs[1], B: vs[2], A: 1}
	if len(vs) > 3 {
		c.A = vs[3]
	}
	if c.R > 1 || c.G > 1 || c.B > 1 || c.A > 1 {
		c.R, c.G, c.B = c.R/255, c.G/255, c.B/255
		if c.A > 1 {
			c.A /= 255
		}
	}
	return c, nil
}

func parseScalars(data json.RawMessage) (anim.Scalars, error) {
	vs, err := numbers(data)
	return anim.Scalars(vs), err
}

type rawBezier struct {
	Closed   flag        `json:"c"`
	In       [][]float64 `json:"i"`
	Out      [][]float64 `json:"o"`
	Vertices [][]float64 `json:"v"`
}

// parseBezier reads a bezier object, or the first element of an array of
// them as keyframes write it.
func parseBezier(data json.RawMessage) (anim.Bezier, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return anim.Bezier{}, err
		}
		if len(list) == 0 {
			return anim.Bezier{}, fmt.Errorf("%w: empty shape array", errValue)
		}
		data = list[0]
	}
	var rb rawBezier
	if err := json.Unmarshal(data, &rb); err != nil {
		return anim.Bezier{}, err
	}
	pts := func(in [][]float64) []geom.Point {
		out := make([]geom.Point, len(in))
		for i, p := range in {
			if len(p) >= 2 {
				out[i] = geom.Pt(p[0], p[1])
			}
		}
		return out
	}
	return anim.Bezier{
		Closed:      bool(rb.Closed),
		Vertices:    pts(rb.Vertices),
		InTangents:  pts(rb.In),
		OutTangents: pts(rb.Out),
	}, nil
}

// clip shortens data for error messages.
func clip(data []byte) string {
	const limit = 32
	if len(data) > limit {
		return string(data[:limit]) + "..."
	}
	return string(data)
}
