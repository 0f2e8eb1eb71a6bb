package system

import (
	"math"
	"strconv"

	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

// CombatSystem resolves unit attacks: timed effects, cooldowns, targeting,
// pattern dispatch and the hero ultimate
type CombatSystem struct {
	config  *config.GameConfig
	damager *Damager

	swingCos float64
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(cfg *config.GameConfig, damager *Damager) *CombatSystem {
	return &CombatSystem{
		config:   cfg,
		damager:  damager,
		swingCos: math.Cos(cfg.Sim.Combat.SwingHalfAngleDeg * math.Pi / 180),
	}
}

// Update runs one frame of combat for every unit in the roster
func (s *CombatSystem) Update(ctx *Context, dt float64) {
	for _, u := range ctx.Units {
		if !s.config.Sim.Grid.InBounds(u.Row, u.Col) {
			continue
		}
		if u.Dead {
			s.deathEffects(ctx, u)
			continue
		}
		s.updateUnit(ctx, u, dt)
	}
}

func (s *CombatSystem) updateUnit(ctx *Context, u *entity.Unit, dt float64) {
	armed := s.tickArming(u, dt)
	s.timedEffects(ctx, u, dt)

	if u.Dead || !u.CanAttack() {
		return
	}

	if u.AttackAnim == entity.AttackAttacking {
		u.AttackProgress += s.config.Sim.Combat.MeleeAnimRate * dt
		if u.AttackProgress >= 1 {
			u.AttackAnim = entity.AttackIdle
			u.AttackProgress = 0
		}
	}

	if !armed {
		return
	}

	if u.Hero {
		s.heroEnergy(ctx, u, dt)
	}

	if u.Cooldown > 0 {
		u.Cooldown -= dt
		if u.Cooldown > 0 {
			return
		}
	}

	target := s.acquireTarget(ctx, u)
	if target == nil {
		return
	}

	dmg := s.Damage(ctx.Stats, u)
	s.dispatch(ctx, u, target, dmg)
	u.Cooldown = s.Cooldown(ctx.Stats, u)
}

// tickArming advances the delayed trigger; returns false while still arming
func (s *CombatSystem) tickArming(u *entity.Unit, dt float64) bool {
	if u.State != entity.UnitArming {
		return true
	}
	u.ArmTimer -= dt
	if u.ArmTimer <= 0 {
		u.ArmTimer = 0
		u.State = entity.UnitReady
	}
	return false
}

func (s *CombatSystem) timedEffects(ctx *Context, u *entity.Unit, dt float64) {
	ux, uy := s.config.Sim.Grid.CellCenter(u.Row, u.Col)

	if gold, ok := entity.FindEffect[entity.GenerateGold](u.Effects); ok && gold.Interval > 0 {
		u.GoldTimer += dt
		for u.GoldTimer >= gold.Interval {
			u.GoldTimer -= gold.Interval
			ctx.Callbacks.gainLoot(0, gold.Amount)
			ctx.AddText("+"+strconv.Itoa(gold.Amount)+"g", entity.ColorGold, ux, uy-20)
		}
	}

	if sd, ok := entity.FindEffect[entity.SelfDestruct](u.Effects); ok && u.State == entity.UnitReady {
		if s.enemyWithin(ctx, ux, uy, sd.Radius) {
			s.damager.Area(ctx, ux, uy, sd.Radius, float64(sd.Damage), false, 0)
			u.Effects = u.Effects.Without(entity.EffectSelfDestruct)
			if ctx.Store != nil {
				ctx.Store.DamageUnit(u.ID, u.HP)
			}
			ctx.Callbacks.unitDamaged(u.ID)
		}
	}
}

// deathEffects fires one-shot explosions of a dead unit, then drops them from the bag
func (s *CombatSystem) deathEffects(ctx *Context, u *entity.Unit) {
	onDeath, hasDeath := entity.FindEffect[entity.ExplodeOnDeath](u.Effects)
	onHit, hasHit := entity.FindEffect[entity.ExplodeOnHit](u.Effects)
	if !hasDeath && !hasHit {
		return
	}

	ux, uy := s.config.Sim.Grid.CellCenter(u.Row, u.Col)
	if hasDeath {
		s.damager.Area(ctx, ux, uy, onDeath.Radius, math.Round(float64(u.Damage)*onDeath.DamageMult), false, 0)
	}
	if hasHit {
		dmg := float64(u.Damage) * s.config.Sim.Effects.ExplodeOnHitRatio
		s.damager.Area(ctx, ux, uy, onHit.Radius, dmg, onHit.Chain, 0)
	}
	u.Effects = u.Effects.Without(entity.EffectExplodeOnDeath, entity.EffectExplodeOnHit)
}

func (s *CombatSystem) heroEnergy(ctx *Context, u *entity.Unit, dt float64) {
	if ctx.Store == nil {
		return
	}
	gain := s.config.Sim.Hero.EnergyRegen * ctx.Stats.EnergyGainRate * dt
	if gain > 0 {
		ctx.Store.UpdateHeroEnergy(u.ID, gain)
	}

	maxEnergy := ctx.Stats.HeroMaxEnergy
	if maxEnergy <= 0 {
		maxEnergy = u.MaxEnergy
	}
	if maxEnergy <= 0 || u.Energy < maxEnergy {
		return
	}

	// ultimate: flat damage to everything, survivors frozen
	hero := s.config.Sim.Hero
	for _, e := range ctx.World.Enemies {
		if !e.Alive() {
			continue
		}
		s.damager.Hit(ctx, e, float64(hero.UltDamage))
		if e.Alive() {
			e.Frozen = hero.UltFreeze
		}
	}
	ctx.Store.UpdateHeroEnergy(u.ID, -u.Energy)
}

// Damage returns the attack damage of a unit under the current stats
func (s *CombatSystem) Damage(stats Stats, u *entity.Unit) int {
	base := float64(u.Damage + stats.ClassBonus[u.Class])
	mult := 1 + stats.DamagePercent/100 + stats.TempDamageMult
	heroMult := 1.0
	if u.Hero && stats.HeroDamageMult > 0 {
		heroMult = stats.HeroDamageMult
	}
	return int(math.Round(base * mult * heroMult))
}

// Cooldown returns the re-armed cooldown after an attack
func (s *CombatSystem) Cooldown(stats Stats, u *entity.Unit) float64 {
	speed := 1 + stats.AttackSpeedPercent/100
	if u.Hero && stats.HeroAttackSpeedMult > 0 {
		speed *= stats.HeroAttackSpeedMult
	}
	if speed <= 0 {
		return u.MaxCooldown
	}
	return u.MaxCooldown / speed
}

func (s *CombatSystem) isGlobal(u *entity.Unit) bool {
	return u.Class == entity.ClassMagic ||
		(u.Hero && u.HeroAttack == entity.HeroTracking) ||
		u.Range >= s.config.Sim.Combat.GlobalRangeThreshold
}

// acquireTarget picks the nearest enemy. Lane units only look ahead in their
// own row; global units search the whole board ignoring rows.
func (s *CombatSystem) acquireTarget(ctx *Context, u *entity.Unit) *entity.Enemy {
	ux, uy := s.config.Sim.Grid.CellCenter(u.Row, u.Col)
	global := s.isGlobal(u)
	unlimited := u.Range >= s.config.Sim.Combat.GlobalRangeThreshold ||
		(u.Hero && u.HeroAttack == entity.HeroTracking)

	var best *entity.Enemy
	bestDist := math.MaxFloat64
	for _, e := range ctx.World.Enemies {
		if !e.Alive() {
			continue
		}
		if !global && (e.Row != u.Row || e.X < ux) {
			continue
		}
		d2 := e.DistanceSq(ux, uy)
		if !unlimited {
			reach := u.Range + e.Radius
			if d2 > reach*reach {
				continue
			}
		}
		if d2 < bestDist {
			best = e
			bestDist = d2
		}
	}
	return best
}

func (s *CombatSystem) dispatch(ctx *Context, u *entity.Unit, target *entity.Enemy, dmg int) {
	switch u.Pattern {
	case entity.PatternThrust:
		s.damager.Hit(ctx, target, float64(dmg))
		u.StartAttackAnim()
	case entity.PatternSwing:
		s.swing(ctx, u, dmg)
		u.StartAttackAnim()
	case entity.PatternStream:
		s.fireStream(ctx, u, dmg)
	default:
		if u.Hero {
			s.fireHero(ctx, u, target, dmg)
			return
		}
		s.fire(ctx, u, target, dmg)
	}
}

// swing hits every enemy in range inside the cone facing the enemy side
func (s *CombatSystem) swing(ctx *Context, u *entity.Unit, dmg int) {
	ux, uy := s.config.Sim.Grid.CellCenter(u.Row, u.Col)
	for _, e := range ctx.World.Enemies {
		if !e.Alive() {
			continue
		}
		dx := e.X - ux
		dy := e.Y - uy
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist > u.Range+e.Radius {
			continue
		}
		// facing is +x; cos(angle) = dx/dist
		if dist > 0 && dx/dist < s.swingCos {
			continue
		}
		s.damager.Hit(ctx, e, float64(dmg))
	}
}

func (s *CombatSystem) fire(ctx *Context, u *entity.Unit, target *entity.Enemy, dmg int) {
	ux, uy := s.config.Sim.Grid.CellCenter(u.Row, u.Col)
	p := s.spawnProjectile(ctx, u, ux, uy, dmg)
	p.AimAt(target.X, target.Y)
}

func (s *CombatSystem) fireStream(ctx *Context, u *entity.Unit, dmg int) {
	cc := s.config.Sim.Combat
	ux, uy := s.config.Sim.Grid.CellCenter(u.Row, u.Col)
	p := s.spawnProjectile(ctx, u, ux, uy, dmg)
	p.Speed = cc.StreamSpeed
	p.VX = cc.StreamSpeed
	p.Life = cc.StreamLife
	p.BaseY = uy
}

func (s *CombatSystem) fireHero(ctx *Context, u *entity.Unit, target *entity.Enemy, dmg int) {
	grid := s.config.Sim.Grid
	ux, uy := grid.CellCenter(u.Row, u.Col)

	switch u.HeroAttack {
	case entity.HeroTriShot:
		for row := u.Row - 1; row <= u.Row+1; row++ {
			if !grid.InBounds(row, u.Col) {
				continue
			}
			s.fireStraight(ctx, u, ux, grid.RowCenterY(row), dmg)
		}
	case entity.HeroPentaShot:
		for row := 0; row < grid.Rows; row++ {
			s.fireStraight(ctx, u, ux, grid.RowCenterY(row), dmg)
		}
	case entity.HeroTracking:
		p := s.spawnProjectile(ctx, u, ux, uy, dmg)
		p.Motion = entity.MotionTracking
		p.TargetID = target.ID
		p.AimAt(target.X, target.Y)
	default:
		s.fire(ctx, u, target, dmg)
	}
}

func (s *CombatSystem) fireStraight(ctx *Context, u *entity.Unit, x, y float64, dmg int) {
	p := s.spawnProjectile(ctx, u, x, y, dmg)
	p.VX = p.Speed
	p.VY = 0
}

// spawnProjectile takes a pooled projectile and loads the unit's on-hit effects
func (s *CombatSystem) spawnProjectile(ctx *Context, u *entity.Unit, x, y float64, dmg int) *entity.Projectile {
	cc := s.config.Sim.Combat
	p := ctx.World.SpawnProjectile()
	p.X = x
	p.Y = y
	p.Speed = cc.ProjectileSpeed
	p.Radius = cc.ProjectileRadius
	p.Damage = float64(dmg)
	p.Class = u.Class
	p.Effects = u.Effects.Without(
		entity.EffectExplodeOnDeath,
		entity.EffectGenerateGold,
		entity.EffectSelfDestruct,
	)
	if pierce, ok := entity.FindEffect[entity.Pierce](p.Effects); ok {
		p.Pierce = pierce.Count
	}
	if bounce, ok := entity.FindEffect[entity.BounceOnHit](p.Effects); ok {
		p.Bounce = bounce.Count
	}
	if explode, ok := entity.FindEffect[entity.ExplodeOnHit](p.Effects); ok {
		p.Chain = explode.Chain
	}
	return p
}

func (s *CombatSystem) enemyWithin(ctx *Context, x, y, radius float64) bool {
	for _, e := range ctx.World.Enemies {
		if !e.Alive() {
			continue
		}
		reach := radius + e.Radius
		if e.DistanceSq(x, y) <= reach*reach {
			return true
		}
	}
	return false
}
