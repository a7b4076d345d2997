// Package lottie evaluates and renders Lottie (Bodymovin) vector
// animations.
//
// # Overview
//
// An [Animation] is a tree of layers whose properties are keyframed over
// time. For every frame the engine samples those properties, generates
// bezier geometry for the shape items, runs the modifier pipeline (trim
// paths and repeaters), resolves fills, strokes and gradients, and issues
// draw calls to a [backend.Backend]. Masks, track mattes and layer blend
// modes go through offscreen targets of the backend.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/lottie"
//	    "github.com/gogpu/lottie/backend/raster"
//	    "github.com/gogpu/lottie/bodymovin"
//	)
//
//	a, err := bodymovin.DecodeFile("loader.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b, _ := raster.New(512, 512)
//	p := lottie.NewPlayer(a)
//
//	// In the host's frame callback:
//	drew, err := p.RenderNextFrame(b, dt.Seconds())
//
// # Architecture
//
// The module is organized into:
//   - geom: points, affine matrices, bezier paths and path measurement
//   - anim: keyframes, easing and interpolated properties
//   - lottie: document model, geometry generation, transforms, the
//     modifier pipeline, the compositor and the Player
//   - bodymovin: decoding of the Bodymovin JSON format
//   - backend: the rendering port, with recording and raster
//     implementations
//
// # Coordinate System
//
// Composition coordinates follow the format:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in the document are in degrees, clockwise
//
// The Player scales the composition uniformly to fit the backend surface
// and centers it.
//
// # Unsupported Features
//
// 3D layers, luma mattes, darken and difference masks, layer effects,
// expressions, and image and text layers are skipped. Each is logged once
// per layer through the logger set with [SetLogger].
package lottie
