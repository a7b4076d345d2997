package bodymovin

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/lottie"
	"github.com/gogpu/lottie/anim"
	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
)

// rawShape holds the keys of every shape item type. Bodymovin reuses
// keys across item types with different meanings, such as "s" for a
// rectangle's size and a trim path's start, so those stay undecoded until
// the type is known.
type rawShape struct {
	Type   string `json:"ty"`
	Name   string `json:"nm"`
	Hidden flag   `json:"hd"`

	Items []json.RawMessage `json:"it"`

	A json.RawMessage `json:"a"`
	C json.RawMessage `json:"c"`
	D json.RawMessage `json:"d"`
	E json.RawMessage `json:"e"`
	H json.RawMessage `json:"h"`
	O json.RawMessage `json:"o"`
	P json.RawMessage `json:"p"`
	R json.RawMessage `json:"r"`
	S json.RawMessage `json:"s"`
	W json.RawMessage `json:"w"`

	StarType       int             `json:"sy"`
	Points         json.RawMessage `json:"pt"`
	OuterRadius    json.RawMessage `json:"or"`
	InnerRadius    json.RawMessage `json:"ir"`
	OuterRoundness json.RawMessage `json:"os"`
	InnerRoundness json.RawMessage `json:"is"`

	Shape json.RawMessage `json:"ks"`

	LineCap    int     `json:"lc"`
	LineJoin   int     `json:"lj"`
	MiterLimit float64 `json:"ml"`

	GradientType int       `json:"t"`
	Stops        *rawStops `json:"g"`

	Mode int `json:"m"`

	Transform *rawTransform `json:"tr"`
}

type rawStops struct {
	Count int             `json:"p"`
	K     json.RawMessage `json:"k"`
}

type rawDash struct {
	Kind  string          `json:"n"`
	Value json.RawMessage `json:"v"`
}

// reversed is the direction value of shapes drawn counter-clockwise.
const reversed = 3

// direction reads the "d" key of geometry items.
func direction(data json.RawMessage) lottie.Direction {
	if v, err := parseScalar(data); err == nil && v == reversed {
		return lottie.CounterClockwise
	}
	return lottie.Clockwise
}

func (d *decoder) shapes(path string, raw []json.RawMessage) []lottie.ShapeItem {
	items := make([]lottie.ShapeItem, 0, len(raw))
	for i, data := range raw {
		p := fmt.Sprintf("%s[%d]", path, i)
		var rs rawShape
		if err := json.Unmarshal(data, &rs); err != nil {
			d.fail(p, err)
			return nil
		}
		if rs.Type == "tr" {
			continue
		}
		if item := d.shape(p, &rs); item != nil {
			items = append(items, item)
		}
	}
	return items
}

func (d *decoder) shape(path string, rs *rawShape) lottie.ShapeItem {
	hidden := bool(rs.Hidden)
	switch rs.Type {
	case "gr":
		g := &lottie.Group{
			Name:      rs.Name,
			Hidden:    hidden,
			Items:     d.shapes(path+".it", rs.Items),
			Transform: lottie.DefaultTransform(),
		}
		if tr := d.groupTransform(path+".it", rs.Items); tr != nil {
			g.Transform = *tr
		}
		return g
	case "rc":
		return &lottie.Rectangle{
			Name:      rs.Name,
			Hidden:    hidden,
			Direction: direction(rs.D),
			Position:  d.point(path+".p", rs.P, geom.Point{}),
			Size:      d.point(path+".s", rs.S, geom.Point{}),
			Radius:    d.scalar(path+".r", rs.R, 0),
		}
	case "el":
		return &lottie.Ellipse{
			Name:      rs.Name,
			Hidden:    hidden,
			Direction: direction(rs.D),
			Position:  d.point(path+".p", rs.P, geom.Point{}),
			Size:      d.point(path+".s", rs.S, geom.Point{}),
		}
	case "sr":
		kind := lottie.Star
		if rs.StarType == 2 {
			kind = lottie.Polygon
		}
		return &lottie.Polystar{
			Name:           rs.Name,
			Hidden:         hidden,
			Direction:      direction(rs.D),
			Kind:           kind,
			Position:       d.point(path+".p", rs.P, geom.Point{}),
			Points:         d.scalar(path+".pt", rs.Points, 0),
			Rotation:       d.scalar(path+".r", rs.R, 0),
			OuterRadius:    d.scalar(path+".or", rs.OuterRadius, 0),
			InnerRadius:    d.scalar(path+".ir", rs.InnerRadius, 0),
			OuterRoundness: d.scalar(path+".os", rs.OuterRoundness, 0),
			InnerRoundness: d.scalar(path+".is", rs.InnerRoundness, 0),
		}
	case "sh":
		return &lottie.FreePath{
			Name:      rs.Name,
			Hidden:    hidden,
			Direction: direction(rs.D),
			Shape:     d.bezier(path+".ks", rs.Shape),
		}
	case "fl":
		return &lottie.Fill{
			Name:    rs.Name,
			Hidden:  hidden,
			Color:   d.color(path+".c", rs.C),
			Opacity: d.scalar(path+".o", rs.O, 100),
			Rule:    fillRule(rs.R),
		}
	case "st":
		return &lottie.Stroke{
			Name:          rs.Name,
			Hidden:        hidden,
			Color:         d.color(path+".c", rs.C),
			Opacity:       d.scalar(path+".o", rs.O, 100),
			StrokeOptions: d.strokeOptions(path, rs),
		}
	case "gf":
		return &lottie.GradientFill{
			Name:     rs.Name,
			Hidden:   hidden,
			Opacity:  d.scalar(path+".o", rs.O, 100),
			Rule:     fillRule(rs.R),
			Gradient: d.gradient(path, rs),
		}
	case "gs":
		return &lottie.GradientStroke{
			Name:          rs.Name,
			Hidden:        hidden,
			Opacity:       d.scalar(path+".o", rs.O, 100),
			Gradient:      d.gradient(path, rs),
			StrokeOptions: d.strokeOptions(path, rs),
		}
	case "tm":
		mode := lottie.TrimSimultaneous
		if rs.Mode == 2 {
			mode = lottie.TrimIndividual
		}
		return &lottie.TrimPath{
			Name:   rs.Name,
			Hidden: hidden,
			Start:  d.scalar(path+".s", rs.S, 0),
			End:    d.scalar(path+".e", rs.E, 100),
			Offset: d.scalar(path+".o", rs.O, 0),
			Mode:   mode,
		}
	case "rp":
		stacking := lottie.StackAbove
		if rs.Mode == 2 {
			stacking = lottie.StackBelow
		}
		r := &lottie.Repeater{
			Name:         rs.Name,
			Hidden:       hidden,
			Copies:       d.scalar(path+".c", rs.C, 1),
			Offset:       d.scalar(path+".o", rs.O, 0),
			Stacking:     stacking,
			Transform:    lottie.DefaultTransform(),
			StartOpacity: anim.Static(100.0),
			EndOpacity:   anim.Static(100.0),
		}
		if rs.Transform != nil {
			r.Transform = d.transform(path+".tr", rs.Transform)
			r.StartOpacity = d.scalar(path+".tr.so", rs.Transform.StartOpacity, 100)
			r.EndOpacity = d.scalar(path+".tr.eo", rs.Transform.EndOpacity, 100)
		}
		return r
	}
	// Round corners, pucker and bloat, twist, zig zag, offset path, merge
	// paths and anything newer are carried as opaque modifiers.
	return &lottie.Modifier{Name: rs.Name, Hidden: hidden, Type: rs.Type}
}

// groupTransform decodes the "tr" item of a group's item list.
func (d *decoder) groupTransform(path string, items []json.RawMessage) *lottie.Transform {
	for i, data := range items {
		var head struct {
			Type string `json:"ty"`
		}
		if json.Unmarshal(data, &head) != nil || head.Type != "tr" {
			continue
		}
		var rt rawTransform
		if err := json.Unmarshal(data, &rt); err != nil {
			d.fail(fmt.Sprintf("%s[%d]", path, i), err)
			return nil
		}
		t := d.transform(fmt.Sprintf("%s[%d]", path, i), &rt)
		return &t
	}
	return nil
}

// fillRule reads the "r" key of fills: 1 non-zero, 2 even-odd.
func fillRule(data json.RawMessage) backend.FillRule {
	if v, err := parseScalar(data); err == nil && v == 2 {
		return backend.EvenOdd
	}
	return backend.NonZero
}

var (
	lineCaps  = map[int]backend.LineCap{1: backend.CapButt, 2: backend.CapRound, 3: backend.CapSquare}
	lineJoins = map[int]backend.LineJoin{1: backend.JoinMiter, 2: backend.JoinRound, 3: backend.JoinBevel}
	dashKinds = map[string]lottie.DashKind{"d": lottie.DashLength, "g": lottie.DashGap, "o": lottie.DashOffset}
)

func (d *decoder) strokeOptions(path string, rs *rawShape) lottie.StrokeOptions {
	o := lottie.StrokeOptions{
		Width:      d.scalar(path+".w", rs.W, 0),
		Cap:        lineCaps[rs.LineCap],
		Join:       lineJoins[rs.LineJoin],
		MiterLimit: rs.MiterLimit,
	}
	if isAbsent(rs.D) {
		return o
	}
	var dashes []rawDash
	if err := json.Unmarshal(rs.D, &dashes); err != nil {
		d.fail(path+".d", err)
		return o
	}
	for i, rd := range dashes {
		kind, ok := dashKinds[rd.Kind]
		if !ok {
			d.failf(fmt.Sprintf("%s.d[%d].n", path, i), "unknown dash kind %q", rd.Kind)
			continue
		}
		o.Dashes = append(o.Dashes, lottie.Dash{
			Kind:   kind,
			Length: d.scalar(fmt.Sprintf("%s.d[%d].v", path, i), rd.Value, 0),
		})
	}
	return o
}

func (d *decoder) gradient(path string, rs *rawShape) lottie.Gradient {
	g := lottie.Gradient{
		Kind:            lottie.LinearGradient,
		Start:           d.point(path+".s", rs.S, geom.Point{}),
		End:             d.point(path+".e", rs.E, geom.Point{}),
		HighlightLength: d.scalar(path+".h", rs.H, 0),
		HighlightAngle:  d.scalar(path+".a", rs.A, 0),
	}
	if rs.GradientType == 2 {
		g.Kind = lottie.RadialGradient
	}
	if rs.Stops == nil {
		d.failf(path+".g", "gradient without stops")
		return g
	}
	g.StopCount = rs.Stops.Count
	g.Stops = d.scalars(path+".g.k", rs.Stops.K)
	return g
}
