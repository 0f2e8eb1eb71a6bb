package main

import (
	"flag"
	"io/fs"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/lanesiege/internal/application/game"
	"github.com/younwookim/lanesiege/internal/application/scene/battle"
	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

// loadConfig reads the embedded configs, or a directory when dir is set
func loadConfig(dir string) (*config.GameConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadAll()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs").LoadAll()
}

func main() {
	// Parse command line flags
	reportFlag := flag.String("report", "", "Write a per-wave report to file (e.g., -report report.json)")
	seedFlag := flag.Int64("seed", 0, "RNG seed (0 = time based)")
	configFlag := flag.String("config", "", "Config directory (default: embedded configs)")
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	b, err := battle.New(cfg, *seedFlag, *reportFlag)
	if err != nil {
		log.Fatalf("Failed to create battle: %v", err)
	}
	log.Printf("Seed: %d", b.Seed())

	g := game.New(b, cfg.Sim.Display.ScreenWidth, cfg.Sim.Display.ScreenHeight)
	start := time.Now()
	g.SetClock(func() float64 { return time.Since(start).Seconds() })

	display := cfg.Sim.Display
	scale := max(display.Scale, 1)
	ebiten.SetWindowSize(display.ScreenWidth*scale, display.ScreenHeight*scale)
	ebiten.SetWindowTitle("Lane Siege")
	if display.Framerate > 0 {
		ebiten.SetTPS(display.Framerate)
	}

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	b.OnExit()
}
