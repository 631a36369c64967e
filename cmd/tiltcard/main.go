package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tiltcard/app"
	"github.com/lixenwraith/tiltcard/config"
	"github.com/lixenwraith/tiltcard/core"
)

var (
	configFlag      = flag.String("config", "", "Config file (default $TILTCARD_CONFIG or ~/.config/tiltcard/config.toml)")
	logLevelFlag    = flag.String("log-level", "", "Log level: error, warn, info, debug")
	logFileFlag     = flag.String("log-file", "", "Log file, empty discards")
	imageFlag       = flag.String("image", "", "PNG/JPEG/GIF shown on the card")
	listenFlag      = flag.String("listen", "", "Serve the pose WebSocket on this address")
	printConfigFlag = flag.Bool("print-config", false, "Print the default config and exit")
)

func main() {
	flag.Parse()

	if *printConfigFlag {
		if err := config.WriteDefault(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "tiltcard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tiltcard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	applyFlags(&cfg)

	level, err := core.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, closer, err := core.NewLogger(level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.SetCrashScreen(screen)
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	a, err := app.New(screen, cfg, app.Options{Logger: logger})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("tiltcard started", "network", cfg.Network.Enabled, "audio", cfg.Audio.Enabled)
	return a.Run(ctx)
}

// applyFlags overrides file and env values with explicitly set flags
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.Log.Level = *logLevelFlag
		case "log-file":
			cfg.Log.File = *logFileFlag
		case "image":
			cfg.Render.Image = *imageFlag
		case "listen":
			cfg.Network.Listen = *listenFlag
			cfg.Network.Enabled = *listenFlag != ""
		}
	})
}
