// Package progress is the in-memory progression store the simulation reads
// each frame: phase, wave number, player stats and the unit roster.
package progress

import (
	"fmt"

	"github.com/younwookim/lanesiege/internal/application/state"
	"github.com/younwookim/lanesiege/internal/application/system"
	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

type slot struct {
	unit     *entity.Unit
	template config.UnitConfig
}

// Store holds run progression. It implements system.Store.
type Store struct {
	config *config.GameConfig

	phase state.Phase
	wave  int
	gold  int
	xp    int
	level int

	stats system.Stats
	gain  system.Stats

	slots []slot
	units []*entity.Unit

	shopTimer float64

	// OnLevelUp is called after each level gained
	OnLevelUp func(level int)
}

// NewStore creates a store at wave 1 with the configured roster
func NewStore(cfg *config.GameConfig) (*Store, error) {
	s := &Store{config: cfg}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset restarts the run: starting gold, base stats and a fresh roster
func (s *Store) Reset() error {
	player := s.config.Entities.Player
	s.phase = state.PhaseStart
	s.wave = 1
	s.gold = player.Gold
	s.xp = 0
	s.level = 1
	s.shopTimer = 0
	s.stats = StatsFromConfig(player.Stats)
	s.gain = StatsFromConfig(player.LevelUpGain)

	grid := s.config.Sim.Grid
	s.slots = s.slots[:0]
	s.units = s.units[:0]
	for i, rs := range s.config.Entities.Roster {
		tmpl, ok := s.config.Entities.Units[rs.Template]
		if !ok {
			return fmt.Errorf("roster slot %d: unknown template %q", i, rs.Template)
		}
		if !grid.InBounds(rs.Row, rs.Col) {
			return fmt.Errorf("roster slot %d: cell (%d,%d) outside the grid", i, rs.Row, rs.Col)
		}
		u, err := tmpl.BuildUnit(entity.EntityID(i+1), rs.Row, rs.Col, grid.CellSize)
		if err != nil {
			return fmt.Errorf("roster slot %d: %w", i, err)
		}
		s.slots = append(s.slots, slot{unit: u, template: tmpl})
		s.units = append(s.units, u)
	}
	return nil
}

// StatsFromConfig converts the JSON stats block. Unknown class names are ignored.
func StatsFromConfig(c config.StatsConfig) system.Stats {
	st := system.Stats{
		DamagePercent:       c.DamagePercent,
		AttackSpeedPercent:  c.AttackSpeedPercent,
		Luck:                c.Luck,
		EnemyCountPercent:   c.EnemyCountPercent,
		EnergyGainRate:      c.EnergyGainRate,
		HeroMaxEnergy:       c.HeroMaxEnergy,
		TempDamageMult:      c.TempDamageMult,
		HeroDamageMult:      c.HeroDamageMult,
		HeroAttackSpeedMult: c.HeroAttackSpeedMult,
		ChainDeathChance:    c.ChainDeathChance,
	}
	if len(c.ClassBonus) > 0 {
		st.ClassBonus = make(map[entity.WeaponClass]int, len(c.ClassBonus))
		for name, bonus := range c.ClassBonus {
			if class, ok := entity.ParseWeaponClass(name); ok {
				st.ClassBonus[class] = bonus
			}
		}
	}
	return st
}

func (s *Store) Phase() state.Phase    { return s.phase }
func (s *Store) Wave() int             { return s.wave }
func (s *Store) Units() []*entity.Unit { return s.units }
func (s *Store) Gold() int             { return s.gold }
func (s *Store) XP() int               { return s.xp }
func (s *Store) Level() int            { return s.level }

// Stats returns a copy; the class bonus map is shared and must not be mutated
func (s *Store) Stats() system.Stats {
	return s.stats
}

// DamageUnit lowers a unit's hp; at zero it is marked dead until the wave ends
func (s *Store) DamageUnit(id entity.EntityID, amount int) {
	u := s.unit(id)
	if u == nil || u.Dead {
		return
	}
	u.HP -= amount
	if u.HP <= 0 {
		u.HP = 0
		u.Dead = true
	}
}

// UpdateHeroEnergy adds to a living hero's energy, clamped to [0, max].
// Non-heroes and unknown ids are ignored.
func (s *Store) UpdateHeroEnergy(id entity.EntityID, amount float64) {
	u := s.unit(id)
	if u == nil || !u.Hero || u.Dead {
		return
	}
	limit := u.MaxEnergy
	if s.stats.HeroMaxEnergy > 0 {
		limit = s.stats.HeroMaxEnergy
	}
	u.Energy += amount
	if u.Energy < 0 {
		u.Energy = 0
	}
	if limit > 0 && u.Energy > limit {
		u.Energy = limit
	}
}

// GainLoot credits xp and gold; xp past each threshold grants a level
func (s *Store) GainLoot(xp, gold int) {
	s.gold += gold
	s.xp += xp

	per := s.config.Entities.Player.XPPerLevel
	if per <= 0 {
		return
	}
	for s.xp >= per {
		s.xp -= per
		s.levelUp()
	}
}

func (s *Store) levelUp() {
	s.level++
	g := s.gain
	s.stats.DamagePercent += g.DamagePercent
	s.stats.AttackSpeedPercent += g.AttackSpeedPercent
	s.stats.Luck += g.Luck
	s.stats.EnemyCountPercent += g.EnemyCountPercent
	s.stats.EnergyGainRate += g.EnergyGainRate
	s.stats.HeroMaxEnergy += g.HeroMaxEnergy
	s.stats.HeroDamageMult += g.HeroDamageMult
	s.stats.HeroAttackSpeedMult += g.HeroAttackSpeedMult
	s.stats.ChainDeathChance += g.ChainDeathChance
	if len(g.ClassBonus) > 0 {
		// copy so snapshots handed out earlier stay unchanged
		bonus := make(map[entity.WeaponClass]int, len(s.stats.ClassBonus)+len(g.ClassBonus))
		for k, v := range s.stats.ClassBonus {
			bonus[k] = v
		}
		for k, v := range g.ClassBonus {
			bonus[k] += v
		}
		s.stats.ClassBonus = bonus
	}
	if s.OnLevelUp != nil {
		s.OnLevelUp(s.level)
	}
}

// Spend takes gold if the player can afford it
func (s *Store) Spend(amount int) bool {
	if amount < 0 || amount > s.gold {
		return false
	}
	s.gold -= amount
	return true
}

// SetTempDamage sets the one-wave damage multiplier; cleared at wave end
func (s *Store) SetTempDamage(mult float64) {
	s.stats.TempDamageMult = mult
}

// BeginCombat enters the combat phase for the current wave
func (s *Store) BeginCombat() {
	if s.phase == state.PhaseGameOver {
		return
	}
	s.phase = state.PhaseCombat
}

// EndWave enters the shop: dead units are revived with their template
// effects, every unit's combat bookkeeping is reset and hero energy drops to zero
func (s *Store) EndWave() {
	if s.phase != state.PhaseCombat {
		return
	}
	s.phase = state.PhaseShop
	s.shopTimer = s.config.Entities.Player.ShopTime
	s.stats.TempDamageMult = 0

	cell := s.config.Sim.Grid.CellSize
	for _, sl := range s.slots {
		u := sl.unit
		fresh, err := sl.template.BuildUnit(u.ID, u.Row, u.Col, cell)
		if err != nil {
			// templates were validated by Reset
			continue
		}
		*u = *fresh
	}
}

// Update counts the shop timer down and returns true when it elapses.
// The caller then calls NextWave and starts the engine on the new wave.
func (s *Store) Update(dt float64) bool {
	if s.phase != state.PhaseShop {
		return false
	}
	s.shopTimer -= dt
	return s.shopTimer <= 0
}

// ShopTimeRemaining returns the seconds left before the next wave
func (s *Store) ShopTimeRemaining() float64 {
	if s.phase != state.PhaseShop || s.shopTimer < 0 {
		return 0
	}
	return s.shopTimer
}

// NextWave advances the wave counter and re-enters combat
func (s *Store) NextWave() {
	if s.phase != state.PhaseShop {
		return
	}
	s.wave++
	s.phase = state.PhaseCombat
}

// GameOver ends the run
func (s *Store) GameOver() {
	s.phase = state.PhaseGameOver
}

// LivingUnits counts units still on the field
func (s *Store) LivingUnits() int {
	n := 0
	for _, u := range s.units {
		if !u.Dead {
			n++
		}
	}
	return n
}

func (s *Store) unit(id entity.EntityID) *entity.Unit {
	for _, u := range s.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}
