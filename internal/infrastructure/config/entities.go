package config

import (
	"fmt"
	"image/color"

	"github.com/younwookim/lanesiege/internal/domain/entity"
)

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Enemies map[string]EnemyConfig `json:"enemies"`
	Units   map[string]UnitConfig  `json:"units"`
	Roster  []RosterSlot           `json:"roster"`
	Player  PlayerConfig           `json:"player"`
}

// EnemyConfig is one row of the static enemy table
type EnemyConfig struct {
	HP        float64  `json:"hp"`
	HPPerWave float64  `json:"hpPerWave"`
	Speed     float64  `json:"speed"` // pixels/sec
	Damage    int      `json:"damage"`
	Radius    float64  `json:"radius"`
	Scale     float64  `json:"scale"`
	XP        int      `json:"xp"`
	Gold      int      `json:"gold"`
	Color     [3]uint8 `json:"color"`
}

// RGBA returns the draw color
func (e EnemyConfig) RGBA() color.RGBA {
	return color.RGBA{e.Color[0], e.Color[1], e.Color[2], 255}
}

// UnitConfig is a unit template
type UnitConfig struct {
	Name       string         `json:"name"`
	Class      string         `json:"class"`
	Damage     int            `json:"damage"`
	Range      float64        `json:"range"` // cells
	Cooldown   float64        `json:"cooldown"`
	HP         int            `json:"hp"`
	Pattern    string         `json:"pattern"`
	Hero       bool           `json:"hero"`
	MaxEnergy  float64        `json:"maxEnergy"`
	HeroAttack string         `json:"heroAttack"`
	ArmTime    float64        `json:"armTime"` // >0 makes a delayed-trigger unit
	Effects    []EffectConfig `json:"effects"`
}

// EffectConfig is the JSON form of an effect bag entry
type EffectConfig struct {
	Type       string  `json:"type"`
	Radius     float64 `json:"radius,omitempty"`
	DamageMult float64 `json:"damageMult,omitempty"`
	Chain      bool    `json:"chain,omitempty"`
	Count      int     `json:"count,omitempty"`
	Percent    float64 `json:"percent,omitempty"`
	DPS        float64 `json:"dps,omitempty"`
	Duration   float64 `json:"duration,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`
	Interval   float64 `json:"interval,omitempty"`
	Amount     int     `json:"amount,omitempty"`
	Damage     int     `json:"damage,omitempty"`
}

// Effect converts the entry to its typed variant
func (c EffectConfig) Effect() (entity.Effect, error) {
	switch c.Type {
	case "explode_on_death":
		return entity.ExplodeOnDeath{Radius: c.Radius, DamageMult: c.DamageMult}, nil
	case "explode_on_hit":
		return entity.ExplodeOnHit{Radius: c.Radius, Chain: c.Chain}, nil
	case "bounce_on_hit":
		return entity.BounceOnHit{Count: c.Count}, nil
	case "pierce":
		return entity.Pierce{Count: c.Count}, nil
	case "burn_chance":
		return entity.BurnChance{Percent: c.Percent, DPS: c.DPS, Duration: c.Duration}, nil
	case "slow_on_hit":
		return entity.SlowOnHit{Duration: c.Duration, Multiplier: c.Multiplier}, nil
	case "generate_gold":
		return entity.GenerateGold{Interval: c.Interval, Amount: c.Amount}, nil
	case "self_destruct":
		return entity.SelfDestruct{Radius: c.Radius, Damage: c.Damage}, nil
	}
	return nil, fmt.Errorf("unknown effect type %q", c.Type)
}

// RosterSlot places a unit template on the grid at game start
type RosterSlot struct {
	Template string `json:"template"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

// PlayerConfig holds the starting progression values
type PlayerConfig struct {
	Gold        int         `json:"gold"`
	XPPerLevel  int         `json:"xpPerLevel"`
	Stats       StatsConfig `json:"stats"`
	LevelUpGain StatsConfig `json:"levelUpGain"`
	ShopTime    float64     `json:"shopTime"`
}

// StatsConfig is the JSON form of the combat-affecting player stats
type StatsConfig struct {
	DamagePercent       float64        `json:"damagePercent"`
	AttackSpeedPercent  float64        `json:"attackSpeedPercent"`
	ClassBonus          map[string]int `json:"classBonus"`
	Luck                float64        `json:"luck"`
	EnemyCountPercent   float64        `json:"enemyCountPercent"`
	EnergyGainRate      float64        `json:"energyGainRate"`
	HeroMaxEnergy       float64        `json:"heroMaxEnergy"`
	TempDamageMult      float64        `json:"tempDamageMult"`
	HeroDamageMult      float64        `json:"heroDamageMult"`
	HeroAttackSpeedMult float64        `json:"heroAttackSpeedMult"`
	ChainDeathChance    float64        `json:"chainDeathChance"`
}

// BuildUnit instantiates a template at a grid cell. Range is converted to pixels.
func (c UnitConfig) BuildUnit(id entity.EntityID, row, col int, cellSize float64) (*entity.Unit, error) {
	class, ok := entity.ParseWeaponClass(c.Class)
	if !ok {
		return nil, fmt.Errorf("unit %s: unknown class %q", c.Name, c.Class)
	}
	pattern, ok := entity.ParseAttackPattern(c.Pattern)
	if !ok {
		return nil, fmt.Errorf("unit %s: unknown pattern %q", c.Name, c.Pattern)
	}
	heroAttack, ok := entity.ParseHeroAttack(c.HeroAttack)
	if !ok {
		return nil, fmt.Errorf("unit %s: unknown hero attack %q", c.Name, c.HeroAttack)
	}

	effects := make(entity.Effects, 0, len(c.Effects))
	for _, ec := range c.Effects {
		e, err := ec.Effect()
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", c.Name, err)
		}
		effects = append(effects, e)
	}

	u := &entity.Unit{
		ID:          id,
		Name:        c.Name,
		Row:         row,
		Col:         col,
		Class:       class,
		Damage:      c.Damage,
		Range:       c.Range * cellSize,
		MaxCooldown: c.Cooldown,
		HP:          c.HP,
		MaxHP:       c.HP,
		Pattern:     pattern,
		Hero:        c.Hero,
		MaxEnergy:   c.MaxEnergy,
		HeroAttack:  heroAttack,
		Effects:     effects,
	}
	if c.ArmTime > 0 {
		u.State = entity.UnitArming
		u.ArmTimer = c.ArmTime
	}
	return u, nil
}
