package system

import (
	"math"

	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/domain/spatial"
	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

// ProjectileSystem moves projectiles and resolves their collisions with enemies
type ProjectileSystem struct {
	config  *config.GameConfig
	damager *Damager
	grid    *spatial.Grid

	byID       map[entity.EntityID]*entity.Enemy
	candidates []spatial.Entry
}

// NewProjectileSystem creates a projectile system with its own spatial index
func NewProjectileSystem(cfg *config.GameConfig, damager *Damager) *ProjectileSystem {
	field := cfg.Sim.Field
	return &ProjectileSystem{
		config:     cfg,
		damager:    damager,
		grid:       spatial.NewGrid(field.Width, field.Height, cfg.Sim.Simulation.SpatialCellSize),
		byID:       make(map[entity.EntityID]*entity.Enemy, 64),
		candidates: make([]spatial.Entry, 0, 32),
	}
}

// Update advances all projectiles one frame
func (s *ProjectileSystem) Update(ctx *Context, dt float64) {
	s.rebuildIndex(ctx)

	w := ctx.World
	// bounce spawns appended during the loop start moving next frame
	n := len(w.Projectiles)
	for i := 0; i < n; i++ {
		p := w.Projectiles[i]
		if p.MarkedForDeletion {
			continue
		}

		s.steer(ctx, p)
		if !s.move(p, dt) {
			continue
		}
		s.collide(ctx, p)

		if s.outOfBounds(p) {
			p.MarkedForDeletion = true
		}
	}

	w.ReleaseDeletedProjectiles()
}

// rebuildIndex buckets every enemy without a death timer
func (s *ProjectileSystem) rebuildIndex(ctx *Context) {
	s.grid.Clear()
	clear(s.byID)
	for _, e := range ctx.World.Enemies {
		if !e.Alive() {
			continue
		}
		s.grid.Insert(spatial.Entry{ID: e.ID, X: e.X, Y: e.Y, Radius: e.Radius})
		s.byID[e.ID] = e
	}
}

// steer re-aims tracking projectiles; a vanished target degrades to linear motion
func (s *ProjectileSystem) steer(ctx *Context, p *entity.Projectile) {
	if p.Motion != entity.MotionTracking {
		return
	}
	target := ctx.World.FindEnemy(p.TargetID)
	if target == nil || !target.Alive() {
		p.Motion = entity.MotionLinear
		p.TargetID = 0
		return
	}
	p.AimAt(target.X, target.Y)
}

// move integrates position; returns false if the projectile expired
func (s *ProjectileSystem) move(p *entity.Projectile, dt float64) bool {
	p.X += p.VX * dt
	p.Y += p.VY * dt

	if !p.IsStream() {
		return true
	}
	cc := s.config.Sim.Combat
	p.Age += dt
	p.Life -= dt
	p.Y = p.BaseY + cc.StreamWobbleAmp*math.Sin(p.Age*cc.StreamWobbleFreq)
	if p.Life <= 0 {
		p.MarkedForDeletion = true
		return false
	}
	return true
}

func (s *ProjectileSystem) collide(ctx *Context, p *entity.Projectile) {
	s.candidates = s.grid.Retrieve(p.X, p.Y, p.Radius, s.candidates[:0])

	for _, c := range s.candidates {
		if p.HasHit(c.ID) {
			continue
		}
		e := s.byID[c.ID]
		if e == nil || !e.Alive() {
			continue
		}
		reach := p.Radius + e.Radius
		if e.DistanceSq(p.X, p.Y) >= reach*reach {
			continue
		}

		s.applyHit(ctx, p, e)
		p.MarkHit(e.ID)

		switch {
		case p.IsStream():
			continue
		case p.Bounce > 0:
			s.bounce(ctx, p, e)
			p.MarkedForDeletion = true
			return
		case p.Pierce > 0:
			p.Pierce--
			continue
		default:
			p.MarkedForDeletion = true
			return
		}
	}
}

// applyHit deals projectile damage and its on-hit status effects
func (s *ProjectileSystem) applyHit(ctx *Context, p *entity.Projectile, e *entity.Enemy) {
	fx := s.config.Sim.Effects
	s.damager.Hit(ctx, e, p.Damage)

	if e.Alive() {
		if slow, ok := entity.FindEffect[entity.SlowOnHit](p.Effects); ok {
			e.SlowTimer = slow.Duration
			e.SlowMult = slow.Multiplier
			if e.SlowTimer <= 0 {
				e.SlowTimer = fx.SlowDuration
			}
			if e.SlowMult <= 0 {
				e.SlowMult = fx.SlowMultiplier
			}
		}
		if burn, ok := entity.FindEffect[entity.BurnChance](p.Effects); ok {
			if ctx.Roll(burn.Percent) {
				e.BurnTimer = burn.Duration
				e.BurnDPS += burn.DPS
			}
		}
	}

	if explode, ok := entity.FindEffect[entity.ExplodeOnHit](p.Effects); ok {
		s.damager.Area(ctx, p.X, p.Y, explode.Radius, p.Damage*fx.ExplodeOnHitRatio, p.Chain, 0)
	}
}

// bounce spawns a weaker tracking projectile toward the nearest other enemy
func (s *ProjectileSystem) bounce(ctx *Context, p *entity.Projectile, hit *entity.Enemy) {
	cc := s.config.Sim.Combat
	target := s.nearestOther(ctx, hit, p.X, p.Y, cc.BounceSearchRadius)
	if target == nil {
		return
	}

	np := ctx.World.SpawnProjectile()
	np.X = p.X
	np.Y = p.Y
	np.Speed = p.Speed
	np.Radius = p.Radius
	np.Damage = p.Damage * cc.BounceDamageFactor
	np.Class = p.Class
	np.Effects = p.Effects
	np.Chain = p.Chain
	np.Motion = entity.MotionTracking
	np.TargetID = target.ID
	np.Bounce = p.Bounce - 1
	np.MarkHit(hit.ID)
	np.AimAt(target.X, target.Y)
}

func (s *ProjectileSystem) nearestOther(ctx *Context, hit *entity.Enemy, x, y, radius float64) *entity.Enemy {
	var best *entity.Enemy
	bestDist := radius * radius
	for _, e := range ctx.World.Enemies {
		if e == hit || !e.Alive() {
			continue
		}
		d2 := e.DistanceSq(x, y)
		if d2 <= bestDist {
			best = e
			bestDist = d2
		}
	}
	return best
}

func (s *ProjectileSystem) outOfBounds(p *entity.Projectile) bool {
	f := s.config.Sim.Field
	return p.X < -f.Margin || p.X > f.Width+f.Margin ||
		p.Y < -f.Margin || p.Y > f.Height+f.Margin
}
