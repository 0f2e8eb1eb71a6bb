// Package sim drives the combat systems frame by frame.
package sim

import (
	"math"
	"math/rand"

	"github.com/younwookim/lanesiege/internal/application/state"
	"github.com/younwookim/lanesiege/internal/application/system"
	"github.com/younwookim/lanesiege/internal/domain/world"
	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

// Engine is the simulation orchestrator.
// It owns the World and runs Wave -> Enemy -> Combat -> Projectile -> Effects
// each combat frame, on the caller's goroutine.
type Engine struct {
	config    *config.GameConfig
	store     system.Store
	callbacks *system.Callbacks
	rng       *rand.Rand
	frames    FrameRequester

	world       *world.World
	table       *config.WaveTable
	waves       *system.WaveSystem
	enemies     *system.EnemySystem
	combat      *system.CombatSystem
	projectiles *system.ProjectileSystem
	effects     *system.EffectsSystem

	state     state.RunState
	handle    FrameHandle
	hasHandle bool
	lastTime  float64 // <0 after Start: the first frame has dt 0
	lastSecs  int
	waveEnded bool

	bindings []func()
}

// NewEngine wires the systems over a fresh World
func NewEngine(cfg *config.GameConfig, store system.Store, cb *system.Callbacks, rng *rand.Rand, frames FrameRequester) *Engine {
	if cb == nil {
		cb = &system.Callbacks{}
	}
	damager := system.NewDamager(cfg)
	table := config.NewWaveTable(cfg.Waves.Waves)
	return &Engine{
		config:      cfg,
		store:       store,
		callbacks:   cb,
		rng:         rng,
		frames:      frames,
		world:       world.NewWorld(),
		table:       table,
		waves:       system.NewWaveSystem(cfg, table),
		enemies:     system.NewEnemySystem(cfg, damager),
		combat:      system.NewCombatSystem(cfg, damager),
		projectiles: system.NewProjectileSystem(cfg, damager),
		effects:     system.NewEffectsSystem(damager),
		lastTime:    -1,
	}
}

// Start begins requesting frames. No-op when already running.
func (e *Engine) Start() {
	if e.state == state.Running {
		return
	}
	e.state = state.Running
	e.lastTime = -1
	e.requestFrame()
}

// Stop halts the loop and cancels the pending frame request. Safe to call repeatedly.
func (e *Engine) Stop() {
	if e.state == state.Stopped {
		return
	}
	e.state = state.Stopped
	if e.hasHandle && e.frames != nil {
		e.frames.CancelFrame(e.handle)
	}
	e.hasHandle = false
}

// Bind registers a release function run by Cleanup (input hooks, listeners)
func (e *Engine) Bind(release func()) {
	e.bindings = append(e.bindings, release)
}

// Cleanup stops the engine and releases every binding, newest first
func (e *Engine) Cleanup() {
	e.Stop()
	for i := len(e.bindings) - 1; i >= 0; i-- {
		e.bindings[i]()
	}
	e.bindings = nil
}

// StartWave resets the World, primes the scheduler and starts the loop if needed.
// A non-positive duration uses the wave definition's duration.
func (e *Engine) StartWave(duration float64, wave int) {
	if duration <= 0 {
		if def, ok := e.table.Lookup(wave); ok {
			duration = def.Duration
		}
	}
	e.world.Reset(duration)
	e.waves.Prime(wave, duration, e.store.Stats(), e.rng)
	e.waveEnded = false
	e.lastSecs = int(math.Ceil(duration))
	if e.callbacks.OnTimeUpdate != nil {
		e.callbacks.OnTimeUpdate(e.lastSecs)
	}
	e.Start()
}

func (e *Engine) requestFrame() {
	if e.frames == nil {
		return
	}
	e.handle = e.frames.RequestFrame(e.frame)
	e.hasHandle = true
}

func (e *Engine) frame(now float64) {
	e.hasHandle = false
	if e.state != state.Running {
		return
	}
	dt := 0.0
	if e.lastTime >= 0 {
		dt = now - e.lastTime
	}
	e.lastTime = now

	e.Step(dt)

	if e.state == state.Running {
		e.requestFrame()
	}
}

// Step runs one frame with dt clamped to [0, maxStep]
func (e *Engine) Step(dt float64) {
	dt = math.Max(0, math.Min(dt, e.config.Sim.Simulation.MaxStep))

	if e.callbacks.OnPresentationTick != nil {
		e.callbacks.OnPresentationTick(dt)
	}

	if e.store.Phase() != state.PhaseCombat || e.waveEnded {
		return
	}

	ctx := system.NewContext(e.store, e.callbacks, e.rng, e.world)
	if life := e.config.Sim.Simulation.FloatingTextLife; life > 0 {
		ctx.TextLife = life
	}

	e.world.TimeRemaining -= dt
	if e.world.TimeRemaining <= 0 {
		e.world.TimeRemaining = 0
		e.waveEnded = true
		// entries due in the final frame still belong to this wave
		e.waves.Flush(ctx)
		if e.callbacks.OnTimeUpdate != nil && e.lastSecs != 0 {
			e.lastSecs = 0
			e.callbacks.OnTimeUpdate(0)
		}
		if e.callbacks.OnWaveEnd != nil {
			e.callbacks.OnWaveEnd()
		}
		return
	}
	if secs := int(math.Ceil(e.world.TimeRemaining)); secs != e.lastSecs {
		e.lastSecs = secs
		if e.callbacks.OnTimeUpdate != nil {
			e.callbacks.OnTimeUpdate(secs)
		}
	}

	e.world.BeginFrame()
	e.waves.Update(ctx, dt)
	breached := e.enemies.Update(ctx, dt)
	e.combat.Update(ctx, dt)
	e.projectiles.Update(ctx, dt)
	e.effects.Update(ctx, dt)

	if breached {
		if e.callbacks.OnGameOver != nil {
			e.callbacks.OnGameOver()
		}
		e.Stop()
	}
}

// Running reports whether the loop is active
func (e *Engine) Running() bool {
	return e.state == state.Running
}

// State returns the run state
func (e *Engine) State() state.RunState {
	return e.state
}

// TimeRemaining returns the wave timer in seconds
func (e *Engine) TimeRemaining() float64 {
	return e.world.TimeRemaining
}

// WaveEnded reports whether the current wave's timer expired
func (e *Engine) WaveEnded() bool {
	return e.waveEnded
}

// World exposes the simulation state for rendering
func (e *Engine) World() *world.World {
	return e.world
}

// Waves exposes the scheduler (spawn plan, pending count)
func (e *Engine) Waves() *system.WaveSystem {
	return e.waves
}
