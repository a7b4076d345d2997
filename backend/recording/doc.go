// Package recording is a vector backend that captures every draw call as a
// typed command instead of rasterizing it.
//
// Commands are plain structs, so tests and tools can inspect exactly what
// the engine drew, and a Recording can be replayed into any other backend:
//
//	rec := recording.NewRecorder(512, 512)
//	if err := player.RenderFrame(rec, 0); err != nil {
//		return err
//	}
//	r := rec.Finish()
//	err := r.Playback(rasterBackend)
//
// The package registers itself as "recording" with the backend registry.
package recording
