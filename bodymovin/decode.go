package bodymovin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/lottie"
	"github.com/gogpu/lottie/anim"
	"github.com/gogpu/lottie/geom"
)

type rawAnimation struct {
	Version   string      `json:"v"`
	Name      string      `json:"nm"`
	FrameRate float64     `json:"fr"`
	InPoint   float64     `json:"ip"`
	OutPoint  float64     `json:"op"`
	Width     float64     `json:"w"`
	Height    float64     `json:"h"`
	Layers    []rawLayer  `json:"layers"`
	Assets    []rawAsset  `json:"assets"`
	Markers   []rawMarker `json:"markers"`
}

// rawAsset is a precomposition. Image assets carry no layers and are
// skipped.
type rawAsset struct {
	ID     string     `json:"id"`
	Width  float64    `json:"w"`
	Height float64    `json:"h"`
	Layers []rawLayer `json:"layers"`
}

type rawMarker struct {
	Time     float64 `json:"tm"`
	Comment  string  `json:"cm"`
	Duration float64 `json:"dr"`
}

type rawLayer struct {
	Type        int               `json:"ty"`
	Name        string            `json:"nm"`
	Index       *int              `json:"ind"`
	Parent      *int              `json:"parent"`
	InPoint     float64           `json:"ip"`
	OutPoint    float64           `json:"op"`
	StartTime   float64           `json:"st"`
	Stretch     *float64          `json:"sr"`
	Transform   rawTransform      `json:"ks"`
	AutoOrient  flag              `json:"ao"`
	ThreeD      flag              `json:"ddd"`
	Hidden      flag              `json:"hd"`
	Blend       int               `json:"bm"`
	MatteMode   int               `json:"tt"`
	MatteSource flag              `json:"td"`
	MatteParent *int              `json:"tp"`
	Masks       []rawMask         `json:"masksProperties"`
	Shapes      []json.RawMessage `json:"shapes"`
	RefID       string            `json:"refId"`
	Width       float64           `json:"w"`
	Height      float64           `json:"h"`
	SolidWidth  float64           `json:"sw"`
	SolidHeight float64           `json:"sh"`
	SolidColor  string            `json:"sc"`
	TimeRemap   json.RawMessage   `json:"tm"`
	Effects     []json.RawMessage `json:"ef"`
	Styles      []json.RawMessage `json:"sy"`
}

type rawTransform struct {
	Anchor    json.RawMessage `json:"a"`
	Position  json.RawMessage `json:"p"`
	Scale     json.RawMessage `json:"s"`
	Rotation  json.RawMessage `json:"r"`
	RotationZ json.RawMessage `json:"rz"`
	RotationX json.RawMessage `json:"rx"`
	RotationY json.RawMessage `json:"ry"`
	Skew      json.RawMessage `json:"sk"`
	SkewAxis  json.RawMessage `json:"sa"`
	Opacity   json.RawMessage `json:"o"`

	// Repeater transforms only.
	StartOpacity json.RawMessage `json:"so"`
	EndOpacity   json.RawMessage `json:"eo"`
}

// rawSplitPosition is a position written as separate x, y and z channels.
type rawSplitPosition struct {
	Split flag            `json:"s"`
	X     json.RawMessage `json:"x"`
	Y     json.RawMessage `json:"y"`
	Z     json.RawMessage `json:"z"`
}

type rawMask struct {
	Name     string          `json:"nm"`
	Mode     string          `json:"mode"`
	Inverted flag            `json:"inv"`
	Shape    json.RawMessage `json:"pt"`
	Opacity  json.RawMessage `json:"o"`
	Expand   json.RawMessage `json:"x"`
}

var maskModes = map[string]lottie.MaskMode{
	"n":  lottie.MaskNone,
	"a":  lottie.MaskAdd,
	"s":  lottie.MaskSubtract,
	"i":  lottie.MaskIntersect,
	"l":  lottie.MaskLighten,
	"da": lottie.MaskDarken,
	"f":  lottie.MaskDifference,
}

// Decode reads one Bodymovin document from r and validates it.
func Decode(r io.Reader) (*lottie.Animation, error) {
	var raw rawAnimation
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &lottie.SchemaError{Reason: "malformed document", Err: err}
	}
	d := &decoder{}
	a := d.animation(&raw)
	if d.err != nil {
		return nil, d.err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	lottie.Logger().Info("bodymovin: document decoded",
		"name", a.Name, "version", a.Version, "layers", len(a.Layers), "frames", a.Duration())
	return a, nil
}

// DecodeBytes decodes a document held in memory.
func DecodeBytes(data []byte) (*lottie.Animation, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeFile decodes the document stored at path.
func DecodeFile(path string) (*lottie.Animation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// decoder converts raw structures into the model. The first failure is
// kept in err and turns every later call into a no-op.
type decoder struct {
	err error
}

func (d *decoder) fail(path string, err error) {
	if d.err == nil {
		d.err = &lottie.SchemaError{Path: path, Reason: "invalid value", Err: err}
	}
}

func (d *decoder) failf(path, format string, args ...any) {
	if d.err == nil {
		d.err = &lottie.SchemaError{Path: path, Reason: fmt.Sprintf(format, args...)}
	}
}

func property[T anim.Value](d *decoder, path string, data json.RawMessage, parse parser[T], def T) anim.Property[T] {
	if d.err != nil {
		return anim.Property[T]{}
	}
	p, err := decodeProperty(data, parse, def)
	if err != nil {
		d.fail(path, err)
	}
	return p
}

func (d *decoder) scalar(path string, data json.RawMessage, def float64) anim.Property[float64] {
	return property(d, path, data, parseScalar, def)
}

func (d *decoder) point(path string, data json.RawMessage, def geom.Point) anim.Property[geom.Point] {
	return property(d, path, data, parsePoint, def)
}

func (d *decoder) color(path string, data json.RawMessage) anim.Property[anim.Color] {
	return property(d, path, data, parseColor, anim.Color{A: 1})
}

func (d *decoder) bezier(path string, data json.RawMessage) anim.Property[anim.Bezier] {
	return property(d, path, data, parseBezier, anim.Bezier{})
}

func (d *decoder) scalars(path string, data json.RawMessage) anim.Property[anim.Scalars] {
	return property(d, path, data, parseScalars, nil)
}

func (d *decoder) animation(raw *rawAnimation) *lottie.Animation {
	if raw.FrameRate <= 0 {
		d.failf("fr", "frame rate %v is not positive", raw.FrameRate)
	}
	if raw.OutPoint < raw.InPoint {
		d.failf("op", "out point %v before in point %v", raw.OutPoint, raw.InPoint)
	}
	a := &lottie.Animation{
		Version:   raw.Version,
		Name:      raw.Name,
		FrameRate: raw.FrameRate,
		InPoint:   raw.InPoint,
		OutPoint:  raw.OutPoint,
		Width:     raw.Width,
		Height:    raw.Height,
		Layers:    d.layers("layers", raw.Layers),
	}
	for i, ra := range raw.Assets {
		if ra.Layers == nil {
			continue
		}
		a.Assets = append(a.Assets, &lottie.Asset{
			ID:     ra.ID,
			Width:  ra.Width,
			Height: ra.Height,
			Layers: d.layers(fmt.Sprintf("assets[%d].layers", i), ra.Layers),
		})
	}
	for _, rm := range raw.Markers {
		a.Markers = append(a.Markers, lottie.Marker{Name: rm.Comment, Time: rm.Time, Duration: rm.Duration})
	}
	return a
}

func (d *decoder) layers(path string, raw []rawLayer) []*lottie.Layer {
	out := make([]*lottie.Layer, 0, len(raw))
	for i := range raw {
		out = append(out, d.layer(fmt.Sprintf("%s[%d]", path, i), i, &raw[i]))
	}
	return out
}

var layerKinds = [...]lottie.LayerKind{
	0: lottie.LayerPrecomp,
	1: lottie.LayerSolid,
	2: lottie.LayerImage,
	3: lottie.LayerNull,
	4: lottie.LayerShape,
	5: lottie.LayerText,
}

func (d *decoder) layer(path string, pos int, rl *rawLayer) *lottie.Layer {
	l := &lottie.Layer{
		Name:        rl.Name,
		Parent:      rl.Parent,
		InPoint:     rl.InPoint,
		OutPoint:    rl.OutPoint,
		StartTime:   rl.StartTime,
		TimeStretch: 1,
		AutoOrient:  bool(rl.AutoOrient),
		ThreeD:      bool(rl.ThreeD),
		Hidden:      bool(rl.Hidden),
		MatteSource: bool(rl.MatteSource),
		MatteParent: rl.MatteParent,
		RefID:       rl.RefID,
		Width:       rl.Width,
		Height:      rl.Height,
		EffectCount: len(rl.Effects),
		StyleCount:  len(rl.Styles),
	}

	// Layers without an index get one no document can refer to.
	l.Index = -(pos + 1)
	if rl.Index != nil {
		l.Index = *rl.Index
	}
	if rl.Stretch != nil && *rl.Stretch != 0 {
		l.TimeStretch = *rl.Stretch
	}

	if rl.Type >= 0 && rl.Type < len(layerKinds) {
		l.Kind = layerKinds[rl.Type]
	} else {
		// Audio, camera and data layers draw nothing.
		lottie.Logger().Debug("bodymovin: layer type drawn as null", "layer", rl.Name, "type", rl.Type)
		l.Kind = lottie.LayerNull
	}
	if rl.Blend < 0 || rl.Blend > int(lottie.BlendHardMix) {
		d.failf(path+".bm", "unknown blend mode %d", rl.Blend)
	}
	l.Blend = lottie.BlendMode(rl.Blend)
	if rl.MatteMode < 0 || rl.MatteMode > int(lottie.MatteLumaInverted) {
		d.failf(path+".tt", "unknown matte mode %d", rl.MatteMode)
	}
	l.MatteMode = lottie.MatteMode(rl.MatteMode)

	l.Transform = d.transform(path+".ks", &rl.Transform)
	if !isAbsent(rl.TimeRemap) {
		tm := d.scalar(path+".tm", rl.TimeRemap, 0)
		l.TimeRemap = &tm
	}

	switch l.Kind {
	case lottie.LayerSolid:
		l.Width, l.Height = rl.SolidWidth, rl.SolidHeight
		l.SolidColor = d.solidColor(path+".sc", rl.SolidColor)
	case lottie.LayerShape:
		l.Shapes = d.shapes(path+".shapes", rl.Shapes)
	}

	for i := range rl.Masks {
		l.Masks = append(l.Masks, d.mask(fmt.Sprintf("%s.masksProperties[%d]", path, i), &rl.Masks[i]))
	}
	return l
}

// solidColor parses a "#rrggbb" solid layer color.
func (d *decoder) solidColor(path, hex string) anim.Color {
	if hex == "" {
		return anim.Color{}
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		d.fail(path, err)
		return anim.Color{}
	}
	return anim.Color{R: c.R, G: c.G, B: c.B, A: 1}
}

func (d *decoder) mask(path string, rm *rawMask) lottie.Mask {
	mode, ok := maskModes[rm.Mode]
	if !ok {
		d.failf(path+".mode", "unknown mask mode %q", rm.Mode)
	}
	return lottie.Mask{
		Name:     rm.Name,
		Mode:     mode,
		Inverted: bool(rm.Inverted),
		Shape:    d.bezier(path+".pt", rm.Shape),
		Opacity:  d.scalar(path+".o", rm.Opacity, 100),
		Expand:   d.scalar(path+".x", rm.Expand, 0),
	}
}

// transform decodes a layer, group or repeater transform. Absent scale and
// opacity are 100%.
func (d *decoder) transform(path string, rt *rawTransform) lottie.Transform {
	t := lottie.Transform{
		Anchor:    d.point(path+".a", rt.Anchor, geom.Point{}),
		Scale:     d.point(path+".s", rt.Scale, geom.Pt(100, 100)),
		Skew:      d.scalar(path+".sk", rt.Skew, 0),
		SkewAxis:  d.scalar(path+".sa", rt.SkewAxis, 0),
		Opacity:   d.scalar(path+".o", rt.Opacity, 100),
		RotationX: d.scalar(path+".rx", rt.RotationX, 0),
		RotationY: d.scalar(path+".ry", rt.RotationY, 0),
	}
	if isAbsent(rt.Rotation) {
		t.Rotation = d.scalar(path+".rz", rt.RotationZ, 0)
	} else {
		t.Rotation = d.scalar(path+".r", rt.Rotation, 0)
	}

	var split rawSplitPosition
	if !isAbsent(rt.Position) && json.Unmarshal(rt.Position, &split) == nil && bool(split.Split) {
		t.SplitPosition = true
		t.PositionX = d.scalar(path+".p.x", split.X, 0)
		t.PositionY = d.scalar(path+".p.y", split.Y, 0)
		t.PositionZ = d.scalar(path+".p.z", split.Z, 0)
	} else {
		t.Position = d.point(path+".p", rt.Position, geom.Point{})
	}
	return t
}
