package lottie

import (
	"github.com/gogpu/lottie/anim"
	"github.com/gogpu/lottie/backend/recording"
	"github.com/gogpu/lottie/geom"
)

func num(v float64) anim.Property[float64] { return anim.Static(v) }

func vec(x, y float64) anim.Property[geom.Point] { return anim.Static(geom.Pt(x, y)) }

// linear animates a scalar from a to b over frames [f0, f1].
func linear(f0, f1, a, b float64) anim.Property[float64] {
	return anim.Animated([]anim.Keyframe[float64]{
		{StartFrame: f0, EndFrame: f1, StartValue: a, EndValue: b},
	})
}

func rect(cx, cy, w, h float64) *Rectangle {
	return &Rectangle{Position: vec(cx, cy), Size: vec(w, h)}
}

func solid(r, g, b float64) *Fill {
	return &Fill{Color: anim.Static(anim.Color{R: r, G: g, B: b, A: 1}), Opacity: num(100)}
}

// polygon returns a closed bezier through pts with straight edges.
func polygon(pts ...geom.Point) anim.Bezier {
	return anim.Bezier{
		Closed:      true,
		Vertices:    pts,
		InTangents:  make([]geom.Point, len(pts)),
		OutTangents: make([]geom.Point, len(pts)),
	}
}

func shapeLayer(index int, items ...ShapeItem) *Layer {
	return &Layer{
		Name:        "shape",
		Index:       index,
		Kind:        LayerShape,
		OutPoint:    60,
		TimeStretch: 1,
		Transform:   DefaultTransform(),
		Shapes:      items,
	}
}

func testAnimation(layers ...*Layer) *Animation {
	return &Animation{
		FrameRate: 30,
		OutPoint:  60,
		Width:     100,
		Height:    100,
		Layers:    layers,
	}
}

// commandsOf returns the recorded commands of type T.
func commandsOf[T recording.Command](r *recording.Recorder) []T {
	var out []T
	for _, c := range r.Commands() {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }

// linear0 animates a point from a to b over frames [0, 10].
func linear0(a, b geom.Point) anim.Property[geom.Point] {
	return anim.Animated([]anim.Keyframe[geom.Point]{
		{StartFrame: 0, EndFrame: 10, StartValue: a, EndValue: b},
	})
}
