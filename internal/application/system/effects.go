package system

import (
	"github.com/younwookim/lanesiege/internal/domain/world"
)

// EffectsSystem ages floating texts and fires deferred blasts that are due
type EffectsSystem struct {
	damager *Damager
	due     []world.Blast
}

// NewEffectsSystem creates an effects system
func NewEffectsSystem(damager *Damager) *EffectsSystem {
	return &EffectsSystem{damager: damager}
}

// Update runs one frame
func (s *EffectsSystem) Update(ctx *Context, dt float64) {
	w := ctx.World

	kept := w.FloatingTexts[:0]
	for _, t := range w.FloatingTexts {
		if t.Update(dt) {
			kept = append(kept, t)
		}
	}
	clear(w.FloatingTexts[len(kept):])
	w.FloatingTexts = kept

	s.due = w.DueBlasts(dt, s.due[:0])
	for _, b := range s.due {
		s.damager.Area(ctx, b.X, b.Y, b.Radius, b.Damage, b.Chain, b.Depth)
	}
}
