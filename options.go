package lottie

import "github.com/gogpu/lottie/backend"

// Option configures a Player during creation.
//
// Example:
//
//	// Loop the "intro" marker over a white background
//	p := lottie.NewPlayer(a,
//	    lottie.WithLoop(true),
//	    lottie.WithBackground(backend.White),
//	    lottie.WithSegment("intro"))
type Option func(*options)

// options holds optional configuration for Player creation.
type options struct {
	loop       bool
	background backend.Color
	segment    string
}

// defaultOptions returns the default player options.
func defaultOptions() options {
	return options{
		loop:       true,
		background: backend.Transparent,
	}
}

// WithLoop selects whether playback wraps around at the out point.
// Players loop by default; a player that does not loop holds the last
// frame.
func WithLoop(loop bool) Option {
	return func(o *options) {
		o.loop = loop
	}
}

// WithBackground sets the color the surface is cleared to before each
// frame. The default is transparent.
func WithBackground(c backend.Color) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithSegment restricts playback to the time range of the named marker.
// An unknown marker is logged and the whole animation plays.
func WithSegment(marker string) Option {
	return func(o *options) {
		o.segment = marker
	}
}
