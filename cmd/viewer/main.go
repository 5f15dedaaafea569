// Interactive 3D viewer: orbit a generated tree, tweak the grammar with
// sliders, step resource cycles and export USDA.
//
// Usage: go run ./cmd/viewer -config tree.yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plantgrow/config"
	"github.com/pthm-cable/plantgrow/logging"
)

const (
	windowWidth  = 1280
	windowHeight = 800
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Export directory (empty = use config)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger, err := logging.New(logging.Options{Format: "text", Level: *logLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	config.MustInit(*configPath)
	cfg := *config.Cfg()
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "plantgrow viewer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	v := NewViewer(&cfg, logger.Logger)
	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()
	}
}
