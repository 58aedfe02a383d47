package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"galactic/game"
	"galactic/logger"
	"galactic/screen"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default game config")
	logLevel := flag.String("log-level", "info", "log level (or set LOG_LEVEL)")
	logFormat := flag.String("log-format", "console", "log format, console or json (or set LOG_FORMAT)")
	profileDir := flag.String("profile-dir", "", "capture CPU profiles into this directory on FPS drops")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: *logLevel, Format: *logFormat})
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}
	defer log.Sync()

	config := game.DefaultConfig()
	if *configPath != "" {
		config, err = game.LoadConfig(*configPath)
		if err != nil {
			log.Fatal("failed to load config", zap.String("path", *configPath), zap.Error(err))
		}
	}

	world, err := game.NewWorld(config, log)
	if err != nil {
		log.Fatal("failed to create world", zap.Error(err))
	}

	g := screen.New(world, log, screen.Options{ProfileDir: *profileDir})
	defer g.Close()

	width, height := config.ScreenSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Galactic")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(config.TPS)

	if err := ebiten.RunGame(g); err != nil {
		log.Error("game stopped", zap.Error(err))
	}
}
