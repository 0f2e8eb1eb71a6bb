package system

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/younwookim/lanesiege/internal/application/state"
	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/domain/world"
)

// Stats are the combat-affecting player stats, read once per frame
type Stats struct {
	DamagePercent       float64
	AttackSpeedPercent  float64
	ClassBonus          map[entity.WeaponClass]int
	Luck                float64 // percent, scales every proc chance
	EnemyCountPercent   float64
	EnergyGainRate      float64
	HeroMaxEnergy       float64
	TempDamageMult      float64
	HeroDamageMult      float64
	HeroAttackSpeedMult float64
	ChainDeathChance    float64 // percent
}

// Store is the progression store as seen by the simulation.
// Units are read every frame and mutated only through DamageUnit and UpdateHeroEnergy.
type Store interface {
	Phase() state.Phase
	Wave() int
	Stats() Stats
	Units() []*entity.Unit
	DamageUnit(id entity.EntityID, amount int)
	UpdateHeroEnergy(id entity.EntityID, amount float64)
}

// Callbacks are the lifecycle events emitted to collaborators. Nil fields are skipped.
type Callbacks struct {
	OnGainLoot        func(xp, gold int)
	OnWaveEnd         func()
	OnTimeUpdate      func(secondsRemaining int)
	OnGameOver        func()
	OnUnitDamaged     func(id entity.EntityID)
	OnAddFloatingText func(w *world.World, text string, c color.RGBA, x, y float64)

	OnEnemySpawned     func(e *entity.Enemy)
	OnEnemyKilled      func(e *entity.Enemy)
	OnPresentationTick func(dt float64)
}

func (c *Callbacks) gainLoot(xp, gold int) {
	if c != nil && c.OnGainLoot != nil {
		c.OnGainLoot(xp, gold)
	}
}

func (c *Callbacks) unitDamaged(id entity.EntityID) {
	if c != nil && c.OnUnitDamaged != nil {
		c.OnUnitDamaged(id)
	}
}

func (c *Callbacks) enemySpawned(e *entity.Enemy) {
	if c != nil && c.OnEnemySpawned != nil {
		c.OnEnemySpawned(e)
	}
}

func (c *Callbacks) enemyKilled(e *entity.Enemy) {
	if c != nil && c.OnEnemyKilled != nil {
		c.OnEnemyKilled(e)
	}
}

// Context is built once per frame and passed to every system
type Context struct {
	Phase     state.Phase
	Wave      int
	Stats     Stats
	Units     []*entity.Unit
	Store     Store
	Callbacks *Callbacks
	RNG       *rand.Rand
	World     *world.World

	// TextLife is how long feedback texts live
	TextLife float64
}

// NewContext snapshots the store for one frame
func NewContext(store Store, cb *Callbacks, rng *rand.Rand, w *world.World) *Context {
	return &Context{
		Phase:     store.Phase(),
		Wave:      store.Wave(),
		Stats:     store.Stats(),
		Units:     store.Units(),
		Store:     store,
		Callbacks: cb,
		RNG:       rng,
		World:     w,
		TextLife:  0.8,
	}
}

// AddText emits floating feedback text. Without a handler the text goes straight into the world.
func (c *Context) AddText(text string, col color.RGBA, x, y float64) {
	if c.Callbacks != nil && c.Callbacks.OnAddFloatingText != nil {
		c.Callbacks.OnAddFloatingText(c.World, text, col, x, y)
		return
	}
	c.World.AddFloatingText(entity.NewFloatingText(text, col, x, y, c.TextLife))
}

// Roll tests a percent chance scaled by luck. A non-positive chance never
// succeeds and draws nothing from the RNG.
func (c *Context) Roll(percent float64) bool {
	p := percent * math.Max(0, 1+c.Stats.Luck/100)
	if p <= 0 {
		return false
	}
	return c.RNG.Float64()*100 < p
}
