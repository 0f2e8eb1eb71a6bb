// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/lanesiege/internal/application/scene"
)

// Clock returns the host time in seconds
type Clock func() float64

// Game implements ebiten.Game and manages Scene transitions.
// With a clock set, scenes receive the measured time between updates;
// otherwise every update advances by the fixed dt.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64

	clock   Clock
	last    float64
	hasLast bool
	frames  int
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.step())
	if err != nil {
		return err
	}
	g.frames++

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// step returns the delta for this update. The first clocked update uses the fixed dt.
func (g *Game) step() float64 {
	if g.clock == nil {
		return g.dt
	}
	now := g.clock()
	dt := g.dt
	if g.hasLast {
		dt = now - g.last
		if dt < 0 {
			dt = 0
		}
	}
	g.last = now
	g.hasLast = true
	return dt
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the fixed delta time used when no clock is set.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// SetClock switches to variable timestep driven by clock
func (g *Game) SetClock(clock Clock) {
	g.clock = clock
	g.hasLast = false
}

// Frames returns the number of completed updates
func (g *Game) Frames() int {
	return g.frames
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}
