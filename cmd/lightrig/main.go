// Package main is the entry point for the lightrig widget server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/lightrig/internal/config"
	"github.com/Faultbox/lightrig/internal/engine/texture"
	"github.com/Faultbox/lightrig/internal/hostsync"
	"github.com/Faultbox/lightrig/internal/logger"
	"github.com/Faultbox/lightrig/internal/presenter"
	"github.com/Faultbox/lightrig/internal/prompt"
	"github.com/Faultbox/lightrig/internal/transport"
	"github.com/Faultbox/lightrig/internal/widget"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Lightrig ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped normally")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := transport.NewHub("host", cfg.Server.WriteTimeout, logger.Named("host"))
	ui := transport.NewHub("ui", cfg.Server.WriteTimeout, logger.Named("ui"))

	w := widget.New(widget.Options{
		Width:         float64(cfg.Viewport.Width),
		Height:        float64(cfg.Viewport.Height),
		FrameInterval: cfg.Render.FrameInterval(),
		ShowFPS:       cfg.Render.ShowFPS,
		Relight: prompt.RelightOptions{
			Cinematic:         cfg.Prompts.Cinematic,
			GlobalConstraints: cfg.Prompts.GlobalConstraints,
		},
		Loader: texture.NewLoader(cfg.Images.MaxBytes, cfg.Images.MaxPixels, cfg.Images.FetchTimeout, cfg.Images.ThumbnailSize),
		Host:   hostsync.EmitterFunc(func(m hostsync.Outbound) { host.Broadcast(m) }),
		UI:     presenter.SinkFunc(ui.Broadcast),
		Logger: logger.Named("widget"),
	})

	widgetErr := make(chan error, 1)
	go func() { widgetErr <- w.Run(ctx) }()

	srv := transport.NewServer(cfg.Server, w, host, ui, logger.Named("transport"))
	if err := srv.ListenAndServe(ctx); err != nil {
		stop()
		<-widgetErr
		return fmt.Errorf("serve: %w", err)
	}
	return <-widgetErr
}
