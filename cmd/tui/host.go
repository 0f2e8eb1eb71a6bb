package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/lanesiege/internal/application/progress"
	"github.com/younwookim/lanesiege/internal/application/sim"
	"github.com/younwookim/lanesiege/internal/application/state"
	"github.com/younwookim/lanesiege/internal/application/system"
	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/domain/world"
	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

const (
	hudRows  = 2
	laneRows = 2 // terminal rows per lane
)

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLane   = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleHome   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFrozen = tcell.StyleDefault.Foreground(tcell.ColorLightCyan)
	styleDying  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleShot   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStream = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleDead   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHero   = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
)

var classStyles = map[entity.WeaponClass]tcell.Style{
	entity.ClassMelee:       tcell.StyleDefault.Foreground(tcell.ColorSandyBrown),
	entity.ClassRanged:      tcell.StyleDefault.Foreground(tcell.ColorLightGreen),
	entity.ClassMagic:       tcell.StyleDefault.Foreground(tcell.ColorMediumPurple),
	entity.ClassEngineering: tcell.StyleDefault.Foreground(tcell.ColorKhaki),
}

// host runs the simulation in a terminal
type host struct {
	screen tcell.Screen
	config *config.GameConfig
	sound  *soundCues

	store  *progress.Store
	engine *sim.Engine
	frames *sim.FrameQueue
	rng    *rand.Rand
	seed   int64

	now    float64
	paused bool
	secs   int
	status string
}

func newHost(screen tcell.Screen, cfg *config.GameConfig, sound *soundCues, seed int64) (*host, error) {
	store, err := progress.NewStore(cfg)
	if err != nil {
		return nil, err
	}
	h := &host{
		screen: screen,
		config: cfg,
		sound:  sound,
		store:  store,
		frames: sim.NewFrameQueue(),
		rng:    rand.New(rand.NewSource(1)),
	}
	h.engine = sim.NewEngine(cfg, store, h.callbacks(), h.rng, h.frames)
	h.reset(seed)
	return h, nil
}

// reset reseeds the shared RNG and clears the field. The engine lives as long
// as the host; its bindings release terminal resources on Cleanup.
func (h *host) reset(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	h.seed = seed
	h.rng.Seed(seed)
	h.engine.Stop()
	h.engine.World().Reset(0)
	h.paused = false
	h.secs = 0
	h.status = "SPACE: start | P: pause | Q: quit"
}

// bindTeardown registers terminal resources with the engine. Cleanup releases
// them in reverse: the returned channel closes, audio stops, the screen is finalized.
func (h *host) bindTeardown() <-chan struct{} {
	h.engine.Bind(h.screen.Fini)
	h.engine.Bind(h.sound.Close)
	done := make(chan struct{})
	h.engine.Bind(func() { close(done) })
	return done
}

func (h *host) callbacks() *system.Callbacks {
	return &system.Callbacks{
		OnGainLoot: h.store.GainLoot,
		OnWaveEnd: func() {
			h.store.EndWave()
			h.status = fmt.Sprintf("Wave %d cleared", h.store.Wave())
			h.sound.Play("wave")
		},
		OnTimeUpdate: func(secs int) { h.secs = secs },
		OnGameOver: func() {
			h.store.GameOver()
			h.status = "GAME OVER | R: restart | Q: quit"
			h.sound.Play("gameover")
		},
		OnUnitDamaged: func(entity.EntityID) { h.sound.Play("hurt") },
		OnEnemyKilled: func(*entity.Enemy) { h.sound.Play("kill") },
		// no room for floating numbers in a terminal
		OnAddFloatingText: func(*world.World, string, color.RGBA, float64, float64) {},
	}
}

// handleEvent processes one terminal event and returns false when the host should quit
func (h *host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ':
			h.startWave()
		case 'p', 'P':
			h.togglePause()
		case 'r', 'R':
			if h.store.Phase() == state.PhaseGameOver {
				h.restart()
			}
		}
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *host) startWave() {
	if h.store.Phase() != state.PhaseStart {
		return
	}
	h.store.BeginCombat()
	h.startEngineWave()
}

func (h *host) startEngineWave() {
	h.engine.StartWave(0, h.store.Wave())
	plan := h.engine.Waves().Plan()
	h.status = fmt.Sprintf("Wave %d", h.store.Wave())
	log.Printf("wave %d: %d enemies over %.0fs", h.store.Wave(), plan.Total, plan.Duration)
}

func (h *host) togglePause() {
	if h.store.Phase() != state.PhaseCombat {
		return
	}
	h.paused = !h.paused
	if h.paused {
		h.engine.Stop()
		h.status = "PAUSED"
		return
	}
	h.engine.Start()
	h.status = fmt.Sprintf("Wave %d", h.store.Wave())
}

func (h *host) restart() {
	if err := h.store.Reset(); err != nil {
		log.Printf("restart failed: %v", err)
		return
	}
	h.reset(0)
}

// tick advances the host clock by dt seconds
func (h *host) tick(dt float64) {
	if h.paused {
		return
	}
	h.now += dt
	h.frames.Pump(h.now)
	if h.store.Update(dt) {
		h.store.NextWave()
		h.startEngineWave()
	}
}
