package entity

import "math"

// Projectile is a pooled shot fired by a unit.
// Instances are reused; Reset restores every field to its constructor default.
type Projectile struct {
	ID     EntityID
	X, Y   float64
	VX, VY float64
	Speed  float64
	Damage float64
	Radius float64

	Motion   MotionKind
	TargetID EntityID
	Class    WeaponClass
	Effects  Effects

	// Stream projectiles expire by Life instead of on first hit
	Life  float64
	Age   float64
	BaseY float64

	Pierce int
	Bounce int
	Chain  bool

	// Hit holds enemies already struck by this projectile
	Hit map[EntityID]struct{}

	MarkedForDeletion bool
}

// NewProjectile creates a projectile in default state
func NewProjectile() *Projectile {
	return &Projectile{Hit: make(map[EntityID]struct{}, 4)}
}

// Reset restores the default state (hit set cleared, optional fields zeroed)
func (p *Projectile) Reset() {
	hit := p.Hit
	if hit == nil {
		hit = make(map[EntityID]struct{}, 4)
	} else {
		clear(hit)
	}
	*p = Projectile{Hit: hit}
}

// IsStream returns true for timed multi-hit projectiles
func (p *Projectile) IsStream() bool {
	return p.Life > 0
}

// HasHit reports whether the enemy was already struck
func (p *Projectile) HasHit(id EntityID) bool {
	_, ok := p.Hit[id]
	return ok
}

// MarkHit records a struck enemy
func (p *Projectile) MarkHit(id EntityID) {
	p.Hit[id] = struct{}{}
}

// AimAt points the velocity toward (tx, ty) at the projectile's speed
func (p *Projectile) AimAt(tx, ty float64) {
	dx := tx - p.X
	dy := ty - p.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1e-6 {
		return
	}
	p.VX = dx / dist * p.Speed
	p.VY = dy / dist * p.Speed
}

// Rotation returns the rotation angle based on velocity vector (rendering only)
func (p *Projectile) Rotation() float64 {
	return math.Atan2(p.VY, p.VX)
}
