// Package bodymovin decodes Bodymovin JSON documents, the file format of
// Lottie animations, into the lottie document model.
//
// Keyframed values go through anim.Normalize, so both the legacy encoding
// (explicit end values) and the current one (end values taken from the
// next keyframe) are accepted. Colors in the 0-255 range are scaled to
// [0, 1]. Missing scale and opacity values default to 100 percent.
//
// Every failure is a *lottie.SchemaError whose Path points at the
// offending value, for example "layers[2].shapes[0].it[1].c".
package bodymovin
