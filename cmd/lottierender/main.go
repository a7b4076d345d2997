// Command lottierender exports the frames of a Bodymovin document as PNG
// images or as command listings.
//
// Usage:
//
//	lottierender [flags] animation.json
//
// Settings may also come from a YAML file given with -config; flags
// override it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/lottie"
	"github.com/gogpu/lottie/bodymovin"

	_ "github.com/gogpu/lottie/backend/raster"
	_ "github.com/gogpu/lottie/backend/recording"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		output     = flag.String("output", "", "output directory")
		backendArg = flag.String("backend", "", "backend: raster or recording")
		width      = flag.Int("width", 0, "surface width, default composition width")
		height     = flag.Int("height", 0, "surface height, default composition height")
		scale      = flag.Float64("scale", 0, "scale applied to the composition size")
		segment    = flag.String("segment", "", "export only the frames of this marker")
		background = flag.String("background", "", "background color as #rrggbb")
		workers    = flag.Int("workers", 0, "parallel render workers")
		logLevel   = flag.String("log-level", "", "log level: debug, info, warn, error")
		watchInput = flag.Bool("watch", false, "re-export when the input changes")
	)
	flag.Parse()

	cfg := &Config{}
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, "lottierender:", err)
			os.Exit(1)
		}
	}
	if flag.NArg() > 0 {
		cfg.Input = flag.Arg(0)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output = *output
		case "backend":
			cfg.Backend = *backendArg
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "scale":
			cfg.Scale = *scale
		case "segment":
			cfg.Segment = *segment
		case "background":
			cfg.Background = *background
		case "workers":
			cfg.Workers = *workers
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	cfg.applyDefaults()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.level()}))
	lottie.SetLogger(logger)

	if err := cfg.validate(); err != nil {
		logger.Error("lottierender: invalid configuration", "err", err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg, *watchInput); err != nil {
		logger.Error("lottierender: fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *Config, watchInput bool) error {
	rebuild := func(ctx context.Context) error {
		a, err := bodymovin.DecodeFile(cfg.Input)
		if err != nil {
			return err
		}
		return export(ctx, logger, a, cfg)
	}
	if err := rebuild(ctx); err != nil && !watchInput {
		return err
	} else if err != nil {
		logger.Error("lottierender: export failed", "err", err)
	}
	if !watchInput {
		return nil
	}
	return watch(ctx, logger, cfg.Input, rebuild)
}
