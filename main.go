package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/glyph-rain/audio"
	"github.com/lixenwraith/glyph-rain/config"
	"github.com/lixenwraith/glyph-rain/engine"
	"github.com/lixenwraith/glyph-rain/rain"
	"github.com/lixenwraith/glyph-rain/render"
	"github.com/lixenwraith/glyph-rain/terminal"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, envErr := config.FromEnv()

	cmd := &cobra.Command{
		Use:          "glyph-rain",
		Short:        "Digital rain for your terminal",
		Long:         "Renders continuously falling glyph streams to the terminal.\nPress Esc, q, or Ctrl+C to quit.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			return run(cfg)
		},
	}

	f := cmd.Flags()
	f.IntVar(&cfg.Width, "width", cfg.Width, "viewport width (0 = detect)")
	f.IntVar(&cfg.Height, "height", cfg.Height, "viewport height (0 = detect)")
	f.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "simulation tick interval")
	f.DurationVar(&cfg.RefreshInterval, "refresh", cfg.RefreshInterval, "display refresh interval")
	f.Float64Var(&cfg.SpawnChance, "density", cfg.SpawnChance, "per-tick spawn probability [0,1]")
	f.DurationVar(&cfg.MinGlyphInterval, "min-glyph-interval", cfg.MinGlyphInterval, "fastest per-stack cadence")
	f.DurationVar(&cfg.MaxGlyphInterval, "max-glyph-interval", cfg.MaxGlyphInterval, "slowest per-stack cadence")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = entropy)")
	f.BoolVar(&cfg.Sound, "sound", cfg.Sound, "blip on stack spawn")
	f.StringVar(&cfg.LogPath, "log", cfg.LogPath, "log file path (empty = no logging)")

	return cmd
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	scr, err := terminal.NewScreen(logger)
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer scr.Fini()

	width, height := scr.Size()
	if cfg.Width > 0 {
		width = cfg.Width
	}
	if cfg.Height > 0 {
		height = cfg.Height
	}

	var player *audio.Player
	if cfg.Sound {
		player, err = audio.NewPlayer()
		if err != nil {
			logger.Warn("audio unavailable", "err", err)
		}
	}
	defer player.Close()

	rng := rain.NewRand(cfg.Seed)
	field := rain.NewStackField(width, height, rain.FieldOptions{
		SpawnChance:      cfg.SpawnChance,
		MinGlyphInterval: cfg.MinGlyphInterval,
		MaxGlyphInterval: cfg.MaxGlyphInterval,
		OnSpawn:          player.Blip,
	}, rng)

	compositor := render.NewCompositor(width, height, scr)
	scheduler := engine.NewScheduler(field, compositor, engine.SystemClock{},
		cfg.TickInterval, cfg.RefreshInterval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go scr.Watch()
	go func() {
		select {
		case <-scr.Done():
		case <-sigCh:
		case <-ctx.Done():
		}
		cancel()
	}()

	logger.Info("starting", "width", width, "height", height,
		"seed", cfg.Seed, "density", cfg.SpawnChance)
	return scheduler.Run(ctx)
}

func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.New(f)
	logger.SetLevel(log.DebugLevel)
	return logger, func() { _ = f.Close() }, nil
}
