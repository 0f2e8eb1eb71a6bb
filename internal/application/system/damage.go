package system

import (
	"math"
	"strconv"

	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/domain/world"
	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

// Damager is the shared hit and kill path used by every system that hurts enemies
type Damager struct {
	config *config.GameConfig
}

// NewDamager creates a damager
func NewDamager(cfg *config.GameConfig) *Damager {
	return &Damager{config: cfg}
}

// Hit applies damage to a living enemy and runs the kill path if it dies.
// Returns true if this hit killed the enemy.
func (d *Damager) Hit(ctx *Context, e *entity.Enemy, amount float64) bool {
	if e == nil || !e.Alive() || amount <= 0 {
		return false
	}

	killed := e.TakeDamage(amount, d.config.Sim.Simulation.HitFlashDuration)
	ctx.AddText(strconv.Itoa(int(math.Round(amount))), entity.ColorDamage, e.X, e.Y-e.Radius)
	if killed {
		d.Kill(ctx, e)
	}
	return killed
}

// Kill starts the death animation, pays out loot and rolls chain death damage
func (d *Damager) Kill(ctx *Context, e *entity.Enemy) {
	if !e.Alive() {
		return
	}

	e.StartDeath(d.config.Sim.Simulation.DeathAnimDuration)
	ctx.Callbacks.gainLoot(e.XP, e.Gold)
	if e.Gold > 0 {
		ctx.AddText("+"+strconv.Itoa(e.Gold)+"g", entity.ColorGold, e.X, e.Y-e.Radius-12)
	}
	ctx.Callbacks.enemyKilled(e)

	if !ctx.Roll(ctx.Stats.ChainDeathChance) {
		return
	}
	other := d.randomOther(ctx, e)
	if other == nil {
		return
	}
	dmg := math.Round(e.MaxHP * d.config.Sim.Combat.ChainDeathFraction)
	d.Hit(ctx, other, dmg)
}

func (d *Damager) randomOther(ctx *Context, dead *entity.Enemy) *entity.Enemy {
	n := 0
	for _, e := range ctx.World.Enemies {
		if e != dead && e.Alive() {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	pick := ctx.RNG.Intn(n)
	for _, e := range ctx.World.Enemies {
		if e == dead || !e.Alive() {
			continue
		}
		if pick == 0 {
			return e
		}
		pick--
	}
	return nil
}

// Area applies flat damage to every living enemy within radius of (x, y).
// With chain set, the first kill schedules one smaller follow-up blast on a
// later frame, as long as depth stays under the configured maximum.
func (d *Damager) Area(ctx *Context, x, y, radius, amount float64, chain bool, depth int) {
	if amount <= 0 || radius <= 0 {
		return
	}
	fx := d.config.Sim.Effects
	scheduled := false
	r2 := radius * radius

	for _, e := range ctx.World.Enemies {
		if !e.Alive() || e.DistanceSq(x, y) > r2 {
			continue
		}
		killed := d.Hit(ctx, e, amount)
		if !killed || !chain || scheduled || depth >= fx.MaxChainDepth {
			continue
		}
		ctx.World.ScheduleBlast(world.Blast{
			X:      e.X,
			Y:      e.Y,
			Radius: radius * fx.ChainRadiusFactor,
			Damage: amount * fx.ChainDamageFactor,
			Delay:  fx.ChainDelay,
			Chain:  true,
			Depth:  depth + 1,
		})
		scheduled = true
	}
}
