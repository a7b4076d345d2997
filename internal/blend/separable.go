package blend

import "math"

// channelFunc mixes one unpremultiplied backdrop channel cb with one source
// channel cs, both in [0, 1].
type channelFunc func(cb, cs float64) float64

var separable = map[Op]channelFunc{
	Multiply: func(cb, cs float64) float64 { return cb * cs },
	Screen:   screen,
	Overlay:  func(cb, cs float64) float64 { return hardLight(cs, cb) },
	Darken:   math.Min,
	Lighten:  math.Max,
	ColorDodge: func(cb, cs float64) float64 {
		switch {
		case cb == 0:
			return 0
		case cs >= 1:
			return 1
		}
		return math.Min(1, cb/(1-cs))
	},
	ColorBurn: func(cb, cs float64) float64 {
		switch {
		case cb >= 1:
			return 1
		case cs <= 0:
			return 0
		}
		return 1 - math.Min(1, (1-cb)/cs)
	},
	HardLight: hardLight,
	SoftLight: func(cb, cs float64) float64 {
		if cs <= 0.5 {
			return cb - (1-2*cs)*cb*(1-cb)
		}
		d := math.Sqrt(cb)
		if cb <= 0.25 {
			d = ((16*cb-12)*cb + 4) * cb
		}
		return cb + (2*cs-1)*(d-cb)
	},
	Difference: func(cb, cs float64) float64 { return math.Abs(cb - cs) },
	Exclusion:  func(cb, cs float64) float64 { return cb + cs - 2*cb*cs },
}

func screen(cb, cs float64) float64 {
	return cb + cs - cb*cs
}

func hardLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb * 2 * cs
	}
	return screen(cb, 2*cs-1)
}

// separableBlend applies
//
//	co = cs*(1-ab) + cb*(1-as) + as*ab*B(cb/ab, cs/as)
//	ao = as + ab*(1-as)
//
// on premultiplied inputs.
func separableBlend(sr, sg, sb, sa, dr, dg, db, da byte, mix channelFunc) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}
	as, ab := toUnit(sa), toUnit(da)
	ch := func(s, d byte) byte {
		cs, cb := toUnit(s), toUnit(d)
		return toByte(cs*(1-ab) + cb*(1-as) + as*ab*mix(cb/ab, cs/as))
	}
	return ch(sr, dr), ch(sg, dg), ch(sb, db), toByte(as + ab*(1-as))
}
