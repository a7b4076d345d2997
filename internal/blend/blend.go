// Package blend implements Porter-Duff compositing operators and the W3C
// separable and non-separable blend modes over premultiplied 8-bit RGBA.
//
// All functions take and return premultiplied alpha values in 0-255, the
// layout of image.RGBA.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Op is a compositing operator or blend mode.
type Op uint8

const (
	SourceOver      Op = iota // S + D*(1-Sa)
	SourceIn                  // S*Da
	DestinationIn             // D*Sa
	DestinationOut            // D*(1-Sa)
	DestinationAtop           // S*(1-Da) + D*Sa
	Plus                      // min(S + D, 1)

	// Blend modes composite source-over with the mixed color.
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Hue
	Saturation
	Color
	Luminosity
)

// Func combines one source pixel with one destination pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// FuncFor returns the pixel function for op. Unknown ops fall back to
// SourceOver.
func FuncFor(op Op) Func {
	switch op {
	case SourceIn:
		return sourceIn
	case DestinationIn:
		return destinationIn
	case DestinationOut:
		return destinationOut
	case DestinationAtop:
		return destinationAtop
	case Plus:
		return plus
	}
	if ch, ok := separable[op]; ok {
		return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
			return separableBlend(sr, sg, sb, sa, dr, dg, db, da, ch)
		}
	}
	if mix, ok := nonSeparable[op]; ok {
		return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
			return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, mix)
		}
	}
	return sourceOver
}

// Pixels applies op to every pixel of two equally sized premultiplied RGBA
// buffers, writing the result into dst.
func Pixels(dst, src []byte, op Op) {
	f := FuncFor(op)
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		dst[i], dst[i+1], dst[i+2], dst[i+3] = f(
			src[i], src[i+1], src[i+2], src[i+3],
			dst[i], dst[i+1], dst[i+2], dst[i+3])
	}
}
