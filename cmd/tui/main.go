package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

func main() {
	configFlag := flag.String("config", "cmd/game/configs", "Config directory")
	seedFlag := flag.Int64("seed", 0, "RNG seed (0 = time based)")
	muteFlag := flag.Bool("mute", false, "Disable sound")
	logFlag := flag.String("log", "", "Write log output to file")
	flag.Parse()

	cfg, err := config.NewLoader(*configFlag).LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// the screen owns the terminal from here on
	logOut := io.Discard
	if *logFlag != "" {
		f, err := os.Create(*logFlag)
		if err != nil {
			log.Fatalf("Failed to create log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	log.SetOutput(logOut)

	sound, err := newSoundCues(!*muteFlag)
	if err != nil {
		log.Printf("audio disabled: %v", err)
	}

	h, err := newHost(screen, cfg, sound, *seedFlag)
	if err != nil {
		sound.Close()
		screen.Fini()
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to create host: %v", err)
	}
	log.Printf("Seed: %d", h.seed)

	done := h.bindTeardown()
	defer h.engine.Cleanup()

	run(h, done)
}

// pollEvents forwards terminal events until done is closed or the screen is finalized
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// run drives the host until the player quits
func run(h *host, done <-chan struct{}) {
	eventChan := make(chan tcell.Event, 100)
	go pollEvents(h.screen, eventChan, done)

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-eventChan:
			if !h.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			h.tick(now.Sub(last).Seconds())
			last = now
			h.draw()
		}
	}
}
