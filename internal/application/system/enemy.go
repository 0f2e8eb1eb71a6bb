package system

import (
	"strconv"

	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

// EnemySystem walks enemies down their lanes, ticks status timers and
// resolves enemy melee against units blocking the lane
type EnemySystem struct {
	config  *config.GameConfig
	damager *Damager
}

// NewEnemySystem creates an enemy system
func NewEnemySystem(cfg *config.GameConfig, damager *Damager) *EnemySystem {
	return &EnemySystem{
		config:  cfg,
		damager: damager,
	}
}

// Update advances every enemy and returns true if one reached the home line
func (s *EnemySystem) Update(ctx *Context, dt float64) bool {
	breached := false
	homeX := s.config.Sim.Grid.HomeLineX()

	for _, e := range ctx.World.Enemies {
		if e.HitFlash > 0 {
			e.HitFlash -= dt
		}
		if e.DeathTimer != nil {
			*e.DeathTimer -= dt
			if *e.DeathTimer <= 0 {
				e.MarkedForDeletion = true
			}
			continue
		}
		if e.MarkedForDeletion {
			continue
		}

		if e.Frozen > 0 {
			e.Frozen -= dt
			continue
		}

		if e.BurnTimer > 0 {
			e.BurnTimer -= dt
			e.HP -= e.BurnDPS * dt
			if e.BurnTimer <= 0 {
				e.BurnTimer = 0
				e.BurnDPS = 0
			}
			if e.HP <= 0 {
				s.damager.Kill(ctx, e)
				continue
			}
		}

		if e.SlowTimer > 0 {
			e.SlowTimer -= dt
		}

		if u := s.blockingUnit(ctx.Units, e); u != nil {
			s.attackUnit(ctx, e, u, dt)
			continue
		}

		e.AttackState = entity.AttackIdle
		e.AttackProgress = 0
		e.X -= e.Speed * e.SpeedMultiplier() * dt

		if e.X <= homeX {
			breached = true
		}
	}

	ctx.World.RemoveDeletedEnemies()
	return breached
}

// blockingUnit returns the rightmost living unit in the enemy's lane whose cell the enemy touches
func (s *EnemySystem) blockingUnit(units []*entity.Unit, e *entity.Enemy) *entity.Unit {
	grid := s.config.Sim.Grid
	half := grid.CellSize / 2

	var best *entity.Unit
	bestX := 0.0
	for _, u := range units {
		if u.Dead || u.Row != e.Row || !grid.InBounds(u.Row, u.Col) {
			continue
		}
		ux, _ := grid.CellCenter(u.Row, u.Col)
		if e.X-e.Radius > ux+half || e.X < ux-half {
			continue
		}
		if best == nil || ux > bestX {
			best = u
			bestX = ux
		}
	}
	return best
}

func (s *EnemySystem) attackUnit(ctx *Context, e *entity.Enemy, u *entity.Unit, dt float64) {
	e.AttackState = entity.AttackAttacking
	e.AttackProgress += s.config.Sim.Enemy.AttackRate * dt
	if e.AttackProgress < 1 {
		return
	}
	e.AttackProgress = 0
	if ctx.Store != nil {
		ctx.Store.DamageUnit(u.ID, e.Damage)
	}
	ctx.Callbacks.unitDamaged(u.ID)
	ux, uy := s.config.Sim.Grid.CellCenter(u.Row, u.Col)
	ctx.AddText("-"+strconv.Itoa(e.Damage), entity.ColorHurt, ux, uy-20)
}
