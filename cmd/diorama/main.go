package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/sharxbyte/Diorama-Sound/internal/diorama"
)

type config struct {
	AssetDir string `env:"DIORAMA_ASSETS" envDefault:"assets"`
	Seed     uint64 `env:"DIORAMA_SEED"`
	Headless bool   `env:"DIORAMA_HEADLESS"`
	Debug    bool   `env:"DIORAMA_DEBUG"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("parse env", "err", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := diorama.NewWallClock()

	var (
		sink    diorama.LightSink
		buttons diorama.ButtonSource
		out     diorama.OutputStream
		cleanup func()
	)
	if cfg.Headless {
		sink = diorama.NewSimLights()
		buttons = diorama.NullButton{}
		out = diorama.NewSimStream()
		cleanup = func() {}
		log.Info("running headless")
	} else {
		hw, err := diorama.NewHardwareLights()
		if err != nil {
			log.Error("lighting bring-up", "err", err)
			os.Exit(1)
		}
		gpio, err := diorama.NewGPIOButtons(clock)
		if err != nil {
			hw.Close()
			log.Error("button bring-up", "err", err)
			os.Exit(1)
		}
		oto := diorama.NewOtoStream()
		sink = hw
		buttons = gpio
		out = oto
		cleanup = func() {
			oto.Close()
			hw.Close()
		}
	}
	defer cleanup()

	lights := diorama.NewLights(sink)

	catalog, err := diorama.NewCatalog(cfg.AssetDir)
	if err != nil {
		// Storage failure before the mode machine starts is terminal:
		// blink the fault pattern until powered down.
		log.Error("asset volume unavailable", "dir", cfg.AssetDir, "err", err)
		diorama.DiagnosticBlink(ctx, lights)
		os.Exit(1)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Info("starting", "assets", cfg.AssetDir, "seed", seed)

	ctrl := diorama.NewController(catalog, out, lights, buttons, diorama.NewRand(seed), log)
	diorama.Run(ctx, ctrl, clock, log)

	lights.Off()
}
