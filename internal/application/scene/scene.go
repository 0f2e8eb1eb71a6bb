// Package scene holds the screen abstraction the game loop switches between.
//
// Battle is the only screen today; title and result screens would plug in
// here without touching the loop.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen. Returning a non-nil Scene from Update switches to it.
type Scene interface {
	// Update advances by dt seconds of measured host time.
	// A non-nil error ends the game.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter runs when the scene becomes current
	OnEnter()
	// OnExit runs when the scene is replaced; stop engines and flush reports here
	OnExit()
}
