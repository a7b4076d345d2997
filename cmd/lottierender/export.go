package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/lottie"
	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/backend/recording"
)

// frameRange lists the whole frames to export: the marker's range when
// segment is set, the playable range otherwise.
func frameRange(a *lottie.Animation, segment string) ([]float64, error) {
	start, end := a.InPoint, a.OutPoint
	if segment != "" {
		m, err := a.Marker(segment)
		if err != nil {
			return nil, err
		}
		start, end = m.Time, m.End()
	}
	var frames []float64
	for f := math.Ceil(start); f < end; f++ {
		frames = append(frames, f)
	}
	return frames, nil
}

// export renders the frames of a into cfg.Output. Each worker owns one
// player and one backend; frames are dealt to workers round robin.
func export(ctx context.Context, log *slog.Logger, a *lottie.Animation, cfg *Config) error {
	frames, err := frameRange(a, cfg.Segment)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return err
	}
	w, h := cfg.size(a)
	workers := max(1, min(cfg.Workers, len(frames)))
	log.Info("lottierender: exporting", "frames", len(frames), "size", fmt.Sprintf("%dx%d", w, h),
		"backend", cfg.Backend, "workers", workers)

	g, ctx := errgroup.WithContext(ctx)
	for k := range workers {
		g.Go(func() error {
			b, err := backend.New(cfg.Backend, w, h)
			if err != nil {
				return err
			}
			p := lottie.NewPlayer(a, cfg.playerOptions()...)
			for i := k; i < len(frames); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				f := frames[i]
				if err := p.RenderFrame(b, f); err != nil {
					return fmt.Errorf("frame %v: %w", f, err)
				}
				if err := writeFrame(b, filepath.Join(cfg.Output, fmt.Sprintf("frame_%05d", int(f)))); err != nil {
					return fmt.Errorf("frame %v: %w", f, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("lottierender: export done", "frames", len(frames), "output", cfg.Output)
	return nil
}

type imager interface {
	Image() *image.RGBA
}

// writeFrame saves the screen of b next to base, with an extension that
// depends on the backend.
func writeFrame(b backend.Backend, base string) error {
	switch b := b.(type) {
	case imager:
		return writeFile(base+".png", func(f *os.File) error { return png.Encode(f, b.Image()) })
	case *recording.Recorder:
		rec := b.Finish()
		return writeFile(base+".txt", func(f *os.File) error {
			_, err := rec.WriteTo(f)
			return err
		})
	}
	return fmt.Errorf("backend %T has no output format", b)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
