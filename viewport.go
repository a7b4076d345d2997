package lottie

import (
	"math"

	"github.com/gogpu/lottie/geom"
)

// fitViewport returns the transform that scales a composition of size
// cw x ch uniformly into a w x h surface and centers it. Empty sizes
// yield the identity.
func fitViewport(cw, ch float64, w, h int) geom.Matrix {
	if cw <= 0 || ch <= 0 || w <= 0 || h <= 0 {
		return geom.Identity()
	}
	s := math.Min(float64(w)/cw, float64(h)/ch)
	tx := (float64(w) - cw*s) / 2
	ty := (float64(h) - ch*s) / 2
	return geom.Translate(tx, ty).Multiply(geom.Scale(s, s))
}
