package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/domain/world"
)

func TestEnemySystem_Movement(t *testing.T) {
	cfg := createTestGameConfig()

	tests := []struct {
		name      string
		setup     func(e *entity.Enemy)
		expectedX float64
	}{
		{"walks left", func(e *entity.Enemy) {}, 490},
		{"slowed", func(e *entity.Enemy) { e.SlowTimer = 1; e.SlowMult = 0.5 }, 495},
		{"slow wears off", func(e *entity.Enemy) { e.SlowTimer = 0.25; e.SlowMult = 0.5 }, 490},
		{"frozen", func(e *entity.Enemy) { e.Frozen = 1 }, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewEnemySystem(cfg, NewDamager(cfg))
			w := world.NewWorld()
			ctx := newTestContext(newMockStore(), w)
			e := addEnemy(w, cfg, 2, 500, 20)
			tt.setup(e)

			breached := sys.Update(ctx, 0.5)

			assert.False(t, breached)
			assert.InDelta(t, tt.expectedX, e.X, 1e-9)
		})
	}
}

func TestEnemySystem_FrozenCountsDown(t *testing.T) {
	cfg := createTestGameConfig()
	sys := NewEnemySystem(cfg, NewDamager(cfg))
	w := world.NewWorld()
	ctx := newTestContext(newMockStore(), w)
	e := addEnemy(w, cfg, 2, 500, 20)
	e.Frozen = 0.5

	sys.Update(ctx, 0.5)
	assert.Equal(t, 500.0, e.X)

	sys.Update(ctx, 0.5)
	assert.InDelta(t, 490, e.X, 1e-9)
}

func TestEnemySystem_Breach(t *testing.T) {
	cfg := createTestGameConfig()
	sys := NewEnemySystem(cfg, NewDamager(cfg))
	w := world.NewWorld()
	ctx := newTestContext(newMockStore(), w)
	addEnemy(w, cfg, 0, 70, 20)

	assert.True(t, sys.Update(ctx, 0.5))
}

func TestEnemySystem_DyingEnemyDoesNotBreach(t *testing.T) {
	cfg := createTestGameConfig()
	sys := NewEnemySystem(cfg, NewDamager(cfg))
	w := world.NewWorld()
	ctx := newTestContext(newMockStore(), w)
	e := addEnemy(w, cfg, 0, 60, 20)
	e.StartDeath(1)

	assert.False(t, sys.Update(ctx, 0.5))
	assert.Equal(t, 60.0, e.X)
}

func TestEnemySystem_MeleeAgainstBlockingUnit(t *testing.T) {
	cfg := createTestGameConfig()
	sys := NewEnemySystem(cfg, NewDamager(cfg))
	w := world.NewWorld()

	u := newTestUnit(7, 2, 4, entity.PatternShoot) // cell center x = 352
	store := newMockStore(u)

	var damaged []entity.EntityID
	cb := &Callbacks{OnUnitDamaged: func(id entity.EntityID) { damaged = append(damaged, id) }}
	ctx := NewContext(store, cb, testRNG(), w)
	e := addEnemy(w, cfg, 2, 390, 20)

	sys.Update(ctx, 0.5)
	assert.Equal(t, entity.AttackAttacking, e.AttackState)
	assert.Equal(t, 390.0, e.X, "blocked enemies stop")
	assert.Empty(t, damaged)

	sys.Update(ctx, 0.5)
	assert.Equal(t, 45, u.HP)
	assert.Equal(t, 5, store.damaged[7])
	assert.Equal(t, []entity.EntityID{7}, damaged)
	require.NotEmpty(t, w.FloatingTexts)
	assert.Equal(t, "-5", w.FloatingTexts[len(w.FloatingTexts)-1].Text)
}

func TestEnemySystem_NotBlocked(t *testing.T) {
	cfg := createTestGameConfig()

	tests := []struct {
		name string
		unit *entity.Unit
	}{
		{"dead unit", func() *entity.Unit { u := newTestUnit(1, 2, 4, entity.PatternShoot); u.Dead = true; return u }()},
		{"other lane", newTestUnit(1, 1, 4, entity.PatternShoot)},
		{"already passed", newTestUnit(1, 2, 7, entity.PatternShoot)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewEnemySystem(cfg, NewDamager(cfg))
			w := world.NewWorld()
			ctx := newTestContext(newMockStore(tt.unit), w)
			e := addEnemy(w, cfg, 2, 390, 20)

			sys.Update(ctx, 0.5)

			assert.InDelta(t, 380, e.X, 1e-9)
			assert.Equal(t, entity.AttackIdle, e.AttackState)
		})
	}
}

func TestEnemySystem_DeathTimerRemovesEnemy(t *testing.T) {
	cfg := createTestGameConfig()
	sys := NewEnemySystem(cfg, NewDamager(cfg))
	w := world.NewWorld()
	ctx := newTestContext(newMockStore(), w)
	e := addEnemy(w, cfg, 2, 500, 20)
	e.StartDeath(0.4)

	sys.Update(ctx, 0.25)
	require.Len(t, w.Enemies, 1)

	sys.Update(ctx, 0.25)
	assert.Empty(t, w.Enemies)
	assert.Nil(t, w.FindEnemy(e.ID))
}

func TestEnemySystem_Burn(t *testing.T) {
	cfg := createTestGameConfig()

	t.Run("damages over time then expires", func(t *testing.T) {
		sys := NewEnemySystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		e := addEnemy(w, cfg, 2, 500, 100)
		e.BurnTimer = 0.25
		e.BurnDPS = 10

		sys.Update(ctx, 0.5)

		assert.InDelta(t, 95, e.HP, 1e-9)
		assert.Zero(t, e.BurnTimer)
		assert.Zero(t, e.BurnDPS)
	})

	t.Run("kills through the shared kill path", func(t *testing.T) {
		sys := NewEnemySystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		gold := 0
		ctx := NewContext(newMockStore(), &Callbacks{OnGainLoot: func(_, g int) { gold += g }}, testRNG(), w)
		e := addEnemy(w, cfg, 2, 500, 4)
		e.BurnTimer = 2
		e.BurnDPS = 10

		sys.Update(ctx, 0.5)

		assert.True(t, e.Dying())
		assert.Equal(t, 1, gold)
		assert.Equal(t, 500.0, e.X)
	})
}
