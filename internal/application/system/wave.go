package system

import (
	"math"
	"math/rand"
	"sort"

	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

// Burst is a batch of enemies released together at a wave time
type Burst struct {
	Time  float64
	Types []string
}

// SpawnPlan is the schedule built from one wave definition
type SpawnPlan struct {
	Wave            int
	Duration        float64
	Flag            string
	Total           int // size of the shuffled spawn list
	Bursts          []Burst
	Trickle         []string
	TrickleInterval float64
	TricklePhase    float64 // first trickle emission time
}

// BurstCount returns the number of enemies carried by bursts
func (p *SpawnPlan) BurstCount() int {
	n := 0
	for _, b := range p.Bursts {
		n += len(b.Types)
	}
	return n
}

// WaveSystem turns wave definitions into timed spawns
type WaveSystem struct {
	config *config.GameConfig
	waves  *config.WaveTable

	plan         SpawnPlan
	elapsed      float64
	nextBurst    int
	nextTrickle  int
	trickleTimer float64
	spawned      int
}

// NewWaveSystem creates a wave system over a wave table
func NewWaveSystem(cfg *config.GameConfig, waves *config.WaveTable) *WaveSystem {
	return &WaveSystem{
		config: cfg,
		waves:  waves,
	}
}

// Prime builds the spawn schedule for a wave. A non-positive duration uses the
// wave definition's own duration. Returns false if no wave is defined at all.
func (s *WaveSystem) Prime(wave int, duration float64, stats Stats, rng *rand.Rand) bool {
	def, ok := s.waves.Lookup(wave)
	s.elapsed = 0
	s.nextBurst = 0
	s.nextTrickle = 0
	s.spawned = 0
	if !ok {
		s.plan = SpawnPlan{Wave: wave}
		return false
	}
	if duration <= 0 {
		duration = def.Duration
	}
	s.plan = BuildSpawnPlan(def, wave, duration, stats.EnemyCountPercent, s.config.Sim.Waves, rng)
	s.trickleTimer = s.plan.TricklePhase
	return true
}

// BuildSpawnPlan expands a composition into a shuffled spawn list and splits it
// into ramped bursts plus an evenly paced trickle.
func BuildSpawnPlan(def config.WaveDef, wave int, duration, enemyCountPercent float64, tuning config.WaveTuning, rng *rand.Rand) SpawnPlan {
	plan := SpawnPlan{Wave: wave, Duration: duration, Flag: def.Flag}

	// sorted keys keep the list deterministic for a seed
	types := make([]string, 0, len(def.Composition))
	for t := range def.Composition {
		types = append(types, t)
	}
	sort.Strings(types)

	var list []string
	for _, t := range types {
		n := int(math.Round(float64(def.Count) * def.Composition[t] * (1 + enemyCountPercent/100)))
		for i := 0; i < n; i++ {
			list = append(list, t)
		}
	}
	rng.Shuffle(len(list), func(i, j int) {
		list[i], list[j] = list[j], list[i]
	})
	plan.Total = len(list)
	if len(list) == 0 {
		return plan
	}

	budget := int(math.Floor(float64(len(list)) * tuning.BurstShare))
	budget = max(0, min(budget, len(list)))
	numBursts := 0
	if tuning.BurstInterval > 0 {
		numBursts = int(duration / tuning.BurstInterval)
	}

	if numBursts < 1 {
		plan.Bursts = []Burst{{Time: 0, Types: list[:budget]}}
	} else {
		plan.Bursts = rampBursts(list[:budget], numBursts, tuning)
	}

	plan.Trickle = list[budget:]
	if len(plan.Trickle) > 0 {
		plan.TrickleInterval = duration / float64(len(plan.Trickle))
		plan.TricklePhase = rng.Float64() * plan.TrickleInterval
	}
	return plan
}

// rampBursts splits entries over n intervals with linearly growing shares.
// Sizes come from cumulative rounding so they always sum to len(entries).
func rampBursts(entries []string, n int, tuning config.WaveTuning) []Burst {
	slope := math.Max(0, math.Min(1, tuning.RampSlope))

	bursts := make([]Burst, n)
	cum := 0.0
	start := 0
	for i := 0; i < n; i++ {
		ramp := 0.0
		if n > 1 {
			ramp = -1 + 2*float64(i)/float64(n-1)
		}
		// share of the burst budget: burstShare/n scaled by (1 + ramp*slope)
		cum += (1 + ramp*slope) / float64(n)

		end := int(math.Round(cum * float64(len(entries))))
		if i == n-1 || end > len(entries) {
			end = len(entries)
		}
		if end < start {
			end = start
		}
		bursts[i] = Burst{
			Time:  float64(i) * tuning.BurstInterval,
			Types: entries[start:end],
		}
		start = end
	}
	return bursts
}

// Update emits every due burst and the trickle
func (s *WaveSystem) Update(ctx *Context, dt float64) {
	s.elapsed += dt

	for s.nextBurst < len(s.plan.Bursts) && s.plan.Bursts[s.nextBurst].Time <= s.elapsed {
		for _, t := range s.plan.Bursts[s.nextBurst].Types {
			s.spawn(ctx, t)
		}
		s.nextBurst++
	}

	if s.nextTrickle >= len(s.plan.Trickle) {
		return
	}
	s.trickleTimer -= dt
	for s.trickleTimer <= 0 && s.nextTrickle < len(s.plan.Trickle) {
		s.spawn(ctx, s.plan.Trickle[s.nextTrickle])
		s.nextTrickle++
		s.trickleTimer += s.plan.TrickleInterval
	}
}

// Flush emits every entry still pending. Every scheduled time lies within the
// wave, so on the expiry frame nothing is left behind.
func (s *WaveSystem) Flush(ctx *Context) {
	for ; s.nextBurst < len(s.plan.Bursts); s.nextBurst++ {
		for _, t := range s.plan.Bursts[s.nextBurst].Types {
			s.spawn(ctx, t)
		}
	}
	for ; s.nextTrickle < len(s.plan.Trickle); s.nextTrickle++ {
		s.spawn(ctx, s.plan.Trickle[s.nextTrickle])
	}
}

func (s *WaveSystem) spawn(ctx *Context, enemyType string) {
	ec, ok := s.config.Entities.Enemies[enemyType]
	if !ok {
		return
	}
	grid := s.config.Sim.Grid
	if grid.Rows <= 0 {
		return
	}

	row := ctx.RNG.Intn(grid.Rows)
	x := s.config.Sim.Field.Width + ec.Radius
	y := grid.RowCenterY(row)
	hp := ec.HP + ec.HPPerWave*float64(s.plan.Wave-1)

	e := entity.NewEnemy(ctx.World.NewID(), enemyType, x, y, ec.Radius, row, hp)
	e.Speed = ec.Speed
	e.Damage = ec.Damage
	e.XP = ec.XP
	e.Gold = ec.Gold
	if ec.Scale > 0 {
		e.Scale = ec.Scale
	}
	ctx.World.AddEnemy(e)
	s.spawned++
	ctx.Callbacks.enemySpawned(e)
}

// Plan returns the current spawn schedule
func (s *WaveSystem) Plan() SpawnPlan {
	return s.plan
}

// Pending returns how many scheduled entries have not been emitted yet
func (s *WaveSystem) Pending() int {
	n := len(s.plan.Trickle) - s.nextTrickle
	for i := s.nextBurst; i < len(s.plan.Bursts); i++ {
		n += len(s.plan.Bursts[i].Types)
	}
	return n
}

// Spawned returns how many enemies were spawned this wave
func (s *WaveSystem) Spawned() int {
	return s.spawned
}
