// Package raster implements a CPU backend that draws into *image.RGBA
// surfaces.
//
// Paths are scan converted with golang.org/x/image/vector into alpha
// coverage masks and composited with golang.org/x/image/draw. Strokes are expanded into
// fill outlines first. Offscreen targets are ordinary RGBA images that
// Composite combines with the Porter-Duff operators and blend modes of
// internal/blend.
//
// Importing the package registers the backend as "raster":
//
//	import _ "github.com/gogpu/lottie/backend/raster"
//
//	b, err := backend.New("raster", 512, 512)
//
// Even-odd fills treat every subpath as non-zero and combine subpath
// coverage with XOR, which differs from a true even-odd scan only for
// self-intersecting subpaths.
package raster
