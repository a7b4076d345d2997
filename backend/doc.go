// Package backend defines the port between the animation engine and the
// concrete renderers that draw its output.
//
// A backend supplies four capabilities:
//
//   - path building (PathFactory, PathBuilder)
//   - style conversion of colors and gradients into its own paint values
//     (StyleConv)
//   - transforms, expressed as geom.Matrix, the single matrix type every
//     backend accepts
//   - a render context that fills and strokes paths and manages offscreen
//     targets for compositing (RenderContext)
//
// The engine is written against Backend only. Concrete adapters live in
// sub-packages (raster, recording) or in other modules, and make
// themselves available through the registry:
//
//	import _ "github.com/gogpu/lottie/backend/raster"
//
//	b, err := backend.New("raster", 512, 512)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Offscreen targets
//
// Target 0 (Screen) is the surface the backend was created for. NewTarget
// allocates a transparent target of the same size. Drawing goes to the
// target selected with SetTarget, and Composite combines two targets with
// a Porter-Duff operator. Targets must be released within the frame that
// allocated them.
package backend
