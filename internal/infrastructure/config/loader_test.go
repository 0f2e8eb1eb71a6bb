package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/lanesiege/internal/domain/entity"
)

const configDir = "../../../cmd/game/configs"

func TestLoader_LoadSim(t *testing.T) {
	loader := NewLoader(configDir)

	cfg, err := loader.LoadSim()
	require.NoError(t, err)

	assert.Equal(t, 960, cfg.Display.ScreenWidth)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, 5, cfg.Grid.Rows)
	assert.Equal(t, 9, cfg.Grid.Cols)
	assert.Equal(t, 64.0, cfg.Grid.CellSize)
	assert.Equal(t, 0.1, cfg.Simulation.MaxStep)
	assert.Equal(t, 45.0, cfg.Combat.SwingHalfAngleDeg)
	assert.Equal(t, 0.7, cfg.Combat.BounceDamageFactor)
	assert.Equal(t, 10.0, cfg.Waves.BurstInterval)
	assert.Equal(t, 0.9, cfg.Waves.BurstShare)
	assert.Equal(t, 1, cfg.Effects.MaxChainDepth)
}

func TestLoader_LoadEntities(t *testing.T) {
	loader := NewLoader(configDir)

	cfg, err := loader.LoadEntities()
	require.NoError(t, err)

	alien, ok := cfg.Enemies["baby_alien"]
	require.True(t, ok)
	assert.Equal(t, 20.0, alien.HP)
	assert.Equal(t, 4.0, alien.HPPerWave)

	hero, ok := cfg.Units["commander"]
	require.True(t, ok)
	assert.True(t, hero.Hero)
	assert.Equal(t, "tri_shot", hero.HeroAttack)

	assert.NotEmpty(t, cfg.Roster)
	assert.Equal(t, 10, cfg.Player.XPPerLevel)
	assert.Equal(t, 1.0, cfg.Player.Stats.EnergyGainRate)
}

func TestLoader_LoadWaves(t *testing.T) {
	loader := NewLoader(configDir)

	cfg, err := loader.LoadWaves()
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Waves)

	first := cfg.Waves[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 8, first.Count)
	assert.Equal(t, map[string]float64{"baby_alien": 1.0}, first.Composition)
}

func TestLoader_LoadAll(t *testing.T) {
	loader := NewLoader(configDir)

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	assert.NotNil(t, cfg.Sim)
	assert.NotNil(t, cfg.Entities)
	assert.NotNil(t, cfg.Waves)
}

func TestLoader_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		loader := NewFSLoader(fstest.MapFS{}, "")
		_, err := loader.LoadSim()
		assert.ErrorContains(t, err, "failed to read sim.json")
	})

	t.Run("bad json", func(t *testing.T) {
		loader := NewFSLoader(fstest.MapFS{
			"waves.json": {Data: []byte("{")},
		}, "")
		_, err := loader.LoadWaves()
		assert.ErrorContains(t, err, "failed to parse waves.json")
	})

	t.Run("empty waves", func(t *testing.T) {
		loader := NewFSLoader(fstest.MapFS{
			"waves.json": {Data: []byte(`{"waves": []}`)},
		}, "")
		_, err := loader.LoadWaves()
		assert.Error(t, err)
	})

	t.Run("unknown roster template", func(t *testing.T) {
		loader := NewFSLoader(fstest.MapFS{
			"entities.json": {Data: []byte(`{"units": {}, "roster": [{"template": "ghost"}]}`)},
		}, "")
		_, err := loader.LoadEntities()
		assert.ErrorContains(t, err, "ghost")
	})

	t.Run("unknown effect", func(t *testing.T) {
		loader := NewFSLoader(fstest.MapFS{
			"entities.json": {Data: []byte(`{"units": {"x": {"effects": [{"type": "teleport"}]}}}`)},
		}, "")
		_, err := loader.LoadEntities()
		assert.ErrorContains(t, err, "teleport")
	})
}

func TestLoader_SimDefaults(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{
		"sim.json": {Data: []byte(`{"grid": {"cellSize": 48}}`)},
	}, "")

	cfg, err := loader.LoadSim()
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Simulation.MaxStep)
	assert.Equal(t, 48.0, cfg.Simulation.SpatialCellSize)
	assert.Equal(t, 0.25, cfg.Combat.ChainDeathFraction)
	assert.Equal(t, 0.5, cfg.Effects.ExplodeOnHitRatio)
}

func TestWaveTable_Lookup(t *testing.T) {
	table := NewWaveTable([]WaveDef{
		{Number: 2, Count: 20},
		{Number: 1, Count: 10},
	})

	def, ok := table.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 10, def.Count)

	// unknown wave falls back to the last defined one
	def, ok = table.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, 2, def.Number)

	_, ok = NewWaveTable(nil).Lookup(1)
	assert.False(t, ok)
}

func TestGridConfig(t *testing.T) {
	g := GridConfig{Rows: 5, Cols: 9, CellSize: 64, OffsetX: 64, OffsetY: 48}

	x, y := g.CellCenter(0, 0)
	assert.Equal(t, 96.0, x)
	assert.Equal(t, 80.0, y)
	assert.Equal(t, 2, g.RowAt(g.RowCenterY(2)))
	assert.Equal(t, -1, g.RowAt(10))
	assert.Equal(t, -1, g.RowAt(48+5*64))
	assert.True(t, g.InBounds(4, 8))
	assert.False(t, g.InBounds(5, 0))
	assert.False(t, g.InBounds(0, -1))
	assert.Equal(t, 640.0, g.RightEdgeX())
}

func TestUnitConfig_BuildUnit(t *testing.T) {
	cfg, err := NewLoader(configDir).LoadEntities()
	require.NoError(t, err)

	t.Run("ranged with effects", func(t *testing.T) {
		u, err := cfg.Units["archer"].BuildUnit(3, 0, 1, 64)
		require.NoError(t, err)
		assert.Equal(t, entity.ClassRanged, u.Class)
		assert.Equal(t, entity.PatternShoot, u.Pattern)
		assert.Equal(t, 8*64.0, u.Range)
		p, ok := entity.FindEffect[entity.Pierce](u.Effects)
		require.True(t, ok)
		assert.Equal(t, 1, p.Count)
	})

	t.Run("mine starts arming", func(t *testing.T) {
		u, err := cfg.Units["mine"].BuildUnit(4, 2, 6, 64)
		require.NoError(t, err)
		assert.Equal(t, entity.UnitArming, u.State)
		assert.Equal(t, 3.0, u.ArmTimer)
		assert.False(t, u.CanAttack())
	})

	t.Run("bad class", func(t *testing.T) {
		_, err := UnitConfig{Name: "x", Class: "psychic"}.BuildUnit(1, 0, 0, 64)
		assert.Error(t, err)
	})
}
