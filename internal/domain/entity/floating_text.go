package entity

import "image/color"

// Feedback text colors
var (
	ColorDamage = color.RGBA{255, 255, 255, 255}
	ColorCrit   = color.RGBA{255, 210, 60, 255}
	ColorGold   = color.RGBA{255, 200, 0, 255}
	ColorXP     = color.RGBA{120, 200, 255, 255}
	ColorBurn   = color.RGBA{255, 120, 40, 255}
	ColorHurt   = color.RGBA{255, 70, 70, 255}
)

// FloatingText is a short-lived feedback label (damage numbers, loot).
// Game logic never reads it.
type FloatingText struct {
	X, Y    float64
	VX, VY  float64
	Text    string
	Color   color.RGBA
	Life    float64
	MaxLife float64
	Scale   float64
}

// NewFloatingText creates a text rising from (x, y)
func NewFloatingText(text string, c color.RGBA, x, y, life float64) *FloatingText {
	return &FloatingText{
		X:       x,
		Y:       y,
		VY:      -40,
		Text:    text,
		Color:   c,
		Life:    life,
		MaxLife: life,
		Scale:   1.4,
	}
}

// Update moves the text and returns false once it expired
func (t *FloatingText) Update(dt float64) bool {
	t.X += t.VX * dt
	t.Y += t.VY * dt
	t.Life -= dt
	// pop then settle
	if t.Scale > 1 {
		t.Scale -= dt * 2
		if t.Scale < 1 {
			t.Scale = 1
		}
	}
	return t.Life > 0
}

// Alpha returns the fade factor (0-1) for rendering
func (t *FloatingText) Alpha() float64 {
	if t.MaxLife <= 0 {
		return 0
	}
	a := t.Life / t.MaxLife
	if a < 0 {
		return 0
	}
	return a
}
