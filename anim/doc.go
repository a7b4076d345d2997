// Package anim holds animated property values and their keyframes.
//
// Raw keyframe encodings, including the legacy start/end form and lists
// terminated by a frame-only marker, are turned into canonical keyframes by
// Normalize. Property.Value samples a property at any frame, applying hold
// keyframes and cubic-bezier easing.
//
//	p, err := anim.NewProperty(raw)
//	if err != nil {
//	    return err
//	}
//	v := p.Value(12.5)
package anim
