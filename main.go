package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"cloudscape/assets"
	"cloudscape/config"
	"cloudscape/core"
	"cloudscape/harness"
	"cloudscape/rendering/opengl"
	"cloudscape/server"
)

func init() {
	// GLFW and the GL context must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	// Parse command line flags
	var (
		settingsPath = flag.String("settings", config.DefaultPath, "Settings file")
		shaderPath   = flag.String("shader", "", "Fragment shader path or http(s) URL")
		width        = flag.Int("width", 0, "Window width")
		height       = flag.Int("height", 0, "Window height")
		listen       = flag.String("listen", "", "Parameter server address")
		noServer     = flag.Bool("no-server", false, "Disable the parameter server")
		logLevel     = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	settings, loaded, err := config.LoadSettings(*settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		return 1
	}
	if *shaderPath != "" {
		settings.Shader.FragmentPath = *shaderPath
	}
	if *width > 0 {
		settings.Window.Width = *width
	}
	if *height > 0 {
		settings.Window.Height = *height
	}
	if *listen != "" {
		settings.Server.Listen = *listen
	}
	if *noServer {
		settings.Server.Enabled = false
	}
	if *logLevel != "" {
		settings.LogLevel = *logLevel
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		return 1
	}

	level, _ := config.ParseLevel(settings.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	logger.Info("starting cloudscape",
		"settings", *settingsPath,
		"loaded", loaded,
		"shader", settings.Shader.FragmentPath,
		"window", fmt.Sprintf("%dx%d", settings.Window.Width, settings.Window.Height))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var window *opengl.Window
	acquire := func() (harness.Device, harness.Surface, error) {
		dev, w, err := opengl.Acquire(opengl.WindowConfig{
			Width:  settings.Window.Width,
			Height: settings.Window.Height,
			Title:  settings.Window.Title,
			VSync:  settings.Window.VSync,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		window = w
		return dev, w, nil
	}
	notifier := harness.NotifierFunc(func(message string) {
		fmt.Fprintln(os.Stderr, message)
		if window != nil {
			window.Notify(message)
		}
	})

	fetcher := assets.NewFetcher(settings.Shader.FragmentPath, settings.FetchTimeout())
	h, surface, err := harness.Boot(ctx, acquire, fetcher.Fetch, harness.Options{
		Defaults: settings.HarnessDefaults(),
		Notifier: notifier,
		Logger:   logger,
	})
	if window != nil {
		defer window.Terminate()
	}
	if err != nil {
		if window != nil {
			window.WaitClose(ctx)
		}
		return 1
	}

	var params chan core.Param
	if settings.Server.Enabled {
		params = make(chan core.Param, 64)
		srv := server.New(settings.Server.Listen, params, h.State, logger)
		go func() {
			if err := srv.ListenAndServe(ctx); err != nil {
				logger.Error("parameter server stopped", "error", err)
			}
		}()
	}

	harness.NewScheduler(h, surface, params).Run(ctx)

	logger.Info("shutting down")
	return 0
}
