package blend

// rgb is an unpremultiplied color in [0, 1].
type rgb struct{ r, g, b float64 }

func (c rgb) lum() float64 {
	return 0.3*c.r + 0.59*c.g + 0.11*c.b
}

func (c rgb) sat() float64 {
	return max(c.r, c.g, c.b) - min(c.r, c.g, c.b)
}

func (c rgb) clip() rgb {
	l := c.lum()
	n := min(c.r, c.g, c.b)
	x := max(c.r, c.g, c.b)
	if n < 0 {
		c = rgb{l + (c.r-l)*l/(l-n), l + (c.g-l)*l/(l-n), l + (c.b-l)*l/(l-n)}
	}
	if x > 1 {
		c = rgb{l + (c.r-l)*(1-l)/(x-l), l + (c.g-l)*(1-l)/(x-l), l + (c.b-l)*(1-l)/(x-l)}
	}
	return c
}

func (c rgb) withLum(l float64) rgb {
	d := l - c.lum()
	return rgb{c.r + d, c.g + d, c.b + d}.clip()
}

// withSat scales the channels so that max-min equals s, keeping their
// ordering.
func (c rgb) withSat(s float64) rgb {
	ch := []*float64{&c.r, &c.g, &c.b}
	// order ch as min, mid, max
	if *ch[0] > *ch[1] {
		ch[0], ch[1] = ch[1], ch[0]
	}
	if *ch[1] > *ch[2] {
		ch[1], ch[2] = ch[2], ch[1]
	}
	if *ch[0] > *ch[1] {
		ch[0], ch[1] = ch[1], ch[0]
	}
	lo, mid, hi := ch[0], ch[1], ch[2]
	if *hi > *lo {
		*mid = (*mid - *lo) * s / (*hi - *lo)
		*hi = s
	} else {
		*mid, *hi = 0, 0
	}
	*lo = 0
	return c
}

type mixFunc func(cb, cs rgb) rgb

var nonSeparable = map[Op]mixFunc{
	Hue:        func(cb, cs rgb) rgb { return cs.withSat(cb.sat()).withLum(cb.lum()) },
	Saturation: func(cb, cs rgb) rgb { return cb.withSat(cs.sat()).withLum(cb.lum()) },
	Color:      func(cb, cs rgb) rgb { return cs.withLum(cb.lum()) },
	Luminosity: func(cb, cs rgb) rgb { return cb.withLum(cs.lum()) },
}

func nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da byte, mix mixFunc) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}
	as, ab := toUnit(sa), toUnit(da)
	cs := rgb{toUnit(sr) / as, toUnit(sg) / as, toUnit(sb) / as}
	cb := rgb{toUnit(dr) / ab, toUnit(dg) / ab, toUnit(db) / ab}
	m := mix(cb, cs)

	ch := func(s, d byte, b float64) byte {
		return toByte(toUnit(s)*(1-ab) + toUnit(d)*(1-as) + as*ab*b)
	}
	return ch(sr, dr, m.r), ch(sg, dg, m.g), ch(sb, db, m.b), toByte(as + ab*(1-as))
}
