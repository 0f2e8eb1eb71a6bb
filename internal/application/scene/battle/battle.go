// Package battle provides the lane battle scene.
package battle

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/lanesiege/internal/application/progress"
	"github.com/younwookim/lanesiege/internal/application/report"
	"github.com/younwookim/lanesiege/internal/application/scene"
	"github.com/younwookim/lanesiege/internal/application/sim"
	"github.com/younwookim/lanesiege/internal/application/state"
	"github.com/younwookim/lanesiege/internal/application/system"
	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

const unitFlashTime = 0.2

// Battle runs the simulation engine and draws it
type Battle struct {
	config *config.GameConfig
	store  *progress.Store
	engine *sim.Engine
	frames *sim.FrameQueue

	rng  *rand.Rand
	seed int64
	now  float64

	paused  bool
	secs    int
	screenW int
	screenH int
	face    font.Face

	// Hurt flash per unit
	unitFlash map[entity.EntityID]float64

	recorder   *report.Recorder
	reportPath string

	// OnEvent, if set, receives "kill", "hurt", "wave" and "gameover" cues
	OnEvent func(name string)
}

// New creates a battle scene. A non-empty reportPath records a wave report saved on exit.
// seed 0 picks a time-based seed.
func New(cfg *config.GameConfig, seed int64, reportPath string) (*Battle, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	store, err := progress.NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	b := &Battle{
		config:     cfg,
		store:      store,
		frames:     sim.NewFrameQueue(),
		screenW:    cfg.Sim.Display.ScreenWidth,
		screenH:    cfg.Sim.Display.ScreenHeight,
		face:       basicfont.Face7x13,
		unitFlash:  make(map[entity.EntityID]float64),
		reportPath: reportPath,
	}
	b.reset(seed)
	return b, nil
}

// reset builds a fresh engine (and recorder) over the store for a new run
func (b *Battle) reset(seed int64) {
	if b.engine != nil {
		b.engine.Cleanup()
	}
	b.seed = seed
	b.rng = rand.New(rand.NewSource(seed))
	b.paused = false
	b.secs = 0
	clear(b.unitFlash)

	cb := b.callbacks()
	if b.reportPath != "" {
		b.recorder = report.NewRecorder(seed)
		cb = b.recorder.Wrap(cb)
		log.Printf("Recording report: %s (seed: %d)", b.reportPath, seed)
	}
	b.engine = sim.NewEngine(b.config, b.store, cb, b.rng, b.frames)
}

func (b *Battle) callbacks() *system.Callbacks {
	return &system.Callbacks{
		OnGainLoot: b.store.GainLoot,
		OnWaveEnd: func() {
			b.store.EndWave()
			log.Printf("Wave %d cleared (gold: %d, level: %d)", b.store.Wave(), b.store.Gold(), b.store.Level())
			b.emit("wave")
		},
		OnTimeUpdate: func(secs int) { b.secs = secs },
		OnGameOver: func() {
			b.store.GameOver()
			log.Printf("Game over on wave %d", b.store.Wave())
			b.emit("gameover")
			b.saveReport()
		},
		OnUnitDamaged: func(id entity.EntityID) {
			b.unitFlash[id] = unitFlashTime
			b.emit("hurt")
		},
		OnEnemyKilled: func(*entity.Enemy) { b.emit("kill") },
	}
}

func (b *Battle) emit(name string) {
	if b.OnEvent != nil {
		b.OnEvent(name)
	}
}

// Update proceeds the scene (implements scene.Scene)
func (b *Battle) Update(dt float64) (scene.Scene, error) {
	b.handleInput()
	b.advance(dt)
	return nil, nil
}

func (b *Battle) handleInput() {
	switch b.store.Phase() {
	case state.PhaseStart:
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			b.StartWave()
		}
	case state.PhaseCombat, state.PhaseShop:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			b.TogglePause()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
			b.saveReport()
		}
	case state.PhaseGameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
			b.Restart()
		}
	}
}

// advance moves scene time forward and pumps the engine's frame requests
func (b *Battle) advance(dt float64) {
	if b.paused {
		return
	}
	b.now += dt
	b.frames.Pump(b.now)

	for id, t := range b.unitFlash {
		if t -= dt; t <= 0 {
			delete(b.unitFlash, id)
		} else {
			b.unitFlash[id] = t
		}
	}

	if b.store.Update(dt) {
		b.store.NextWave()
		b.startEngineWave()
	}
}

// StartWave leaves the start screen and begins the first wave
func (b *Battle) StartWave() {
	if b.store.Phase() != state.PhaseStart {
		return
	}
	b.store.BeginCombat()
	b.startEngineWave()
}

func (b *Battle) startEngineWave() {
	b.engine.StartWave(0, b.store.Wave())
	if b.recorder != nil {
		b.recorder.BeginWave(b.engine.Waves().Plan())
	}
	plan := b.engine.Waves().Plan()
	if plan.Flag != "" {
		log.Printf("Wave %d (%s): %d enemies", plan.Wave, plan.Flag, plan.Total)
	} else {
		log.Printf("Wave %d: %d enemies", plan.Wave, plan.Total)
	}
}

// TogglePause stops or resumes the engine loop. The first frame after resuming has zero dt.
func (b *Battle) TogglePause() {
	b.paused = !b.paused
	if b.paused {
		b.engine.Stop()
	} else {
		b.engine.Start()
	}
}

// Restart begins a new run with a new seed
func (b *Battle) Restart() {
	b.saveReport()
	if err := b.store.Reset(); err != nil {
		log.Printf("Failed to reset run: %v", err)
		return
	}
	b.reset(time.Now().UnixNano())
}

func (b *Battle) saveReport() {
	if b.recorder == nil || b.recorder.WaveCount() == 0 {
		return
	}
	filename := b.reportPath
	if filename == "" {
		filename = report.GenerateFilename()
	}
	if err := b.recorder.Save(filename); err != nil {
		log.Printf("Failed to save report: %v", err)
	} else {
		log.Printf("Report saved: %s (%d waves)", filename, b.recorder.WaveCount())
	}
}

// OnEnter is called when entering this scene
func (b *Battle) OnEnter() {
	// Scene is already initialized in New
}

// OnExit stops the engine, releases its bindings and saves the report
func (b *Battle) OnExit() {
	b.engine.Cleanup()
	if b.recorder != nil {
		b.recorder.Stop()
	}
	b.saveReport()
}

// Store exposes the progression store
func (b *Battle) Store() *progress.Store {
	return b.store
}

// Engine exposes the simulation engine
func (b *Battle) Engine() *sim.Engine {
	return b.engine
}

// Paused reports whether the scene is paused
func (b *Battle) Paused() bool {
	return b.paused
}

// Seed returns the seed of the current run
func (b *Battle) Seed() int64 {
	return b.seed
}

// Layout returns the game's screen dimensions (used by game.Game)
func (b *Battle) Layout(outsideWidth, outsideHeight int) (int, int) {
	return b.screenW, b.screenH
}
