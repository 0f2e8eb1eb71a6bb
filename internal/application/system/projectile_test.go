package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/domain/world"
)

// spawnShot fires a linear projectile from (x, y) moving right at vx
func spawnShot(w *world.World, x, y, vx, damage float64) *entity.Projectile {
	p := w.SpawnProjectile()
	p.X = x
	p.Y = y
	p.VX = vx
	p.Speed = vx
	p.Damage = damage
	p.Radius = 5
	p.Class = entity.ClassRanged
	return p
}

func TestProjectileSystem_LinearHit(t *testing.T) {
	cfg := createTestGameConfig()
	sys := NewProjectileSystem(cfg, NewDamager(cfg))
	w := world.NewWorld()
	ctx := newTestContext(newMockStore(), w)
	e := addEnemy(w, cfg, 2, 320, 20)
	spawnShot(w, 300, e.Y, 400, 10)

	sys.Update(ctx, 0.01)

	assert.Equal(t, 10.0, e.HP)
	assert.Empty(t, w.Projectiles)
	assert.Equal(t, 1, w.IdleProjectiles())
}

func TestProjectileSystem_MissKeepsFlying(t *testing.T) {
	cfg := createTestGameConfig()
	sys := NewProjectileSystem(cfg, NewDamager(cfg))
	w := world.NewWorld()
	ctx := newTestContext(newMockStore(), w)
	e := addEnemy(w, cfg, 2, 600, 20)
	p := spawnShot(w, 300, e.Y, 400, 10)

	sys.Update(ctx, 0.1)

	assert.InDelta(t, 340, p.X, 1e-9)
	assert.Equal(t, 20.0, e.HP)
	require.Len(t, w.Projectiles, 1)
}

func TestProjectileSystem_SkipsDyingEnemies(t *testing.T) {
	cfg := createTestGameConfig()
	sys := NewProjectileSystem(cfg, NewDamager(cfg))
	w := world.NewWorld()
	ctx := newTestContext(newMockStore(), w)
	e := addEnemy(w, cfg, 2, 304, 20)
	e.StartDeath(0.4)
	spawnShot(w, 300, e.Y, 400, 10)

	sys.Update(ctx, 0.01)

	assert.Equal(t, 20.0, e.HP)
	assert.Len(t, w.Projectiles, 1)
}

func TestProjectileSystem_Pierce(t *testing.T) {
	cfg := createTestGameConfig()

	t.Run("hits count plus one distinct enemies", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)

		var enemies []*entity.Enemy
		for i := 0; i < 4; i++ {
			enemies = append(enemies, addEnemy(w, cfg, 2, 304+float64(i), 100))
		}
		p := spawnShot(w, 300, enemies[0].Y, 400, 10)
		p.Pierce = 2

		sys.Update(ctx, 0.01)

		hit := 0
		for _, e := range enemies {
			if e.HP == 90 {
				hit++
			} else {
				assert.Equal(t, 100.0, e.HP)
			}
		}
		assert.Equal(t, 3, hit)
		assert.Empty(t, w.Projectiles)
	})

	t.Run("never hits the same enemy twice", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		e := addEnemy(w, cfg, 2, 304, 100)
		p := spawnShot(w, 300, e.Y, 10, 10)
		p.Pierce = 5

		for i := 0; i < 5; i++ {
			sys.Update(ctx, 0.1)
		}

		assert.Equal(t, 90.0, e.HP)
		require.Len(t, w.Projectiles, 1)
		assert.Equal(t, 4, p.Pierce)
	})
}

func TestProjectileSystem_Bounce(t *testing.T) {
	cfg := createTestGameConfig()

	t.Run("retargets with reduced damage", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		a := addEnemy(w, cfg, 2, 304, 100)
		b := addEnemy(w, cfg, 2, 400, 100)
		p := spawnShot(w, 300, a.Y, 400, 10)
		p.Bounce = 1

		sys.Update(ctx, 0.01)

		assert.Equal(t, 90.0, a.HP)
		require.Len(t, w.Projectiles, 1)
		np := w.Projectiles[0]
		assert.Equal(t, entity.MotionTracking, np.Motion)
		assert.Equal(t, b.ID, np.TargetID)
		assert.InDelta(t, 7, np.Damage, 1e-9)
		assert.Zero(t, np.Bounce)
		assert.True(t, np.HasHit(a.ID))

		for i := 0; i < 20; i++ {
			sys.Update(ctx, 0.05)
		}

		assert.Equal(t, 90.0, a.HP)
		assert.InDelta(t, 93, b.HP, 1e-9)
		assert.Empty(t, w.Projectiles)
	})

	t.Run("chain of bounces runs out", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		var line []*entity.Enemy
		for _, x := range []float64{304, 360, 420, 480} {
			line = append(line, addEnemy(w, cfg, 2, x, 1))
		}
		p := spawnShot(w, 300, line[0].Y, 400, 10)
		p.Bounce = 3

		seen := []int{3}
		for i := 0; i < 300 && len(w.Projectiles) > 0; i++ {
			sys.Update(ctx, 0.01)
			if len(w.Projectiles) == 1 {
				if b := w.Projectiles[0].Bounce; b != seen[len(seen)-1] {
					seen = append(seen, b)
				}
			}
		}

		assert.Equal(t, []int{3, 2, 1, 0}, seen)
		assert.Empty(t, w.Projectiles)
		for i, e := range line {
			assert.True(t, e.Dying(), "enemy %d", i)
		}
	})

	t.Run("no other enemy in range", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		a := addEnemy(w, cfg, 2, 304, 100)
		addEnemy(w, cfg, 2, 900, 100)
		p := spawnShot(w, 300, a.Y, 400, 10)
		p.Bounce = 2

		sys.Update(ctx, 0.01)

		assert.Equal(t, 90.0, a.HP)
		assert.Empty(t, w.Projectiles)
	})
}

func TestProjectileSystem_Tracking(t *testing.T) {
	cfg := createTestGameConfig()

	t.Run("re-aims at a moving target", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		target := addEnemy(w, cfg, 3, 300, 100)
		p := spawnShot(w, 300, cfg.Sim.Grid.RowCenterY(2), 400, 10)
		p.Motion = entity.MotionTracking
		p.TargetID = target.ID

		sys.Update(ctx, 0.01)

		assert.InDelta(t, 0, p.VX, 1e-9)
		assert.InDelta(t, 400, p.VY, 1e-9)
	})

	t.Run("degrades to linear when the target is gone", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		p := spawnShot(w, 300, cfg.Sim.Grid.RowCenterY(2), 400, 10)
		p.Motion = entity.MotionTracking
		p.TargetID = 999

		sys.Update(ctx, 0.1)

		assert.Equal(t, entity.MotionLinear, p.Motion)
		assert.Zero(t, p.TargetID)
		assert.InDelta(t, 340, p.X, 1e-9)
	})

	t.Run("degrades to linear when the target is dying", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		target := addEnemy(w, cfg, 3, 600, 100)
		target.StartDeath(0.4)
		p := spawnShot(w, 300, cfg.Sim.Grid.RowCenterY(2), 400, 10)
		p.Motion = entity.MotionTracking
		p.TargetID = target.ID

		sys.Update(ctx, 0.1)

		assert.Equal(t, entity.MotionLinear, p.Motion)
	})
}

func TestProjectileSystem_Stream(t *testing.T) {
	cfg := createTestGameConfig()
	sys := NewProjectileSystem(cfg, NewDamager(cfg))
	w := world.NewWorld()
	ctx := newTestContext(newMockStore(), w)
	first := addEnemy(w, cfg, 2, 310, 100)
	second := addEnemy(w, cfg, 2, 340, 100)

	p := spawnShot(w, 300, first.Y, 200, 10)
	p.Life = 0.5
	p.BaseY = first.Y

	for i := 0; i < 10; i++ {
		sys.Update(ctx, 0.1)
	}

	assert.Equal(t, 90.0, first.HP, "streams hit each enemy once")
	assert.Equal(t, 90.0, second.HP)
	assert.Empty(t, w.Projectiles, "streams expire by lifetime")
	assert.Equal(t, 1, w.IdleProjectiles())
}

func TestProjectileSystem_OutOfBounds(t *testing.T) {
	cfg := createTestGameConfig()
	sys := NewProjectileSystem(cfg, NewDamager(cfg))
	w := world.NewWorld()
	ctx := newTestContext(newMockStore(), w)
	spawnShot(w, 990, 100, 400, 10)

	sys.Update(ctx, 0.1)

	assert.Empty(t, w.Projectiles)
	assert.Equal(t, 1, w.IdleProjectiles())

	reused := w.SpawnProjectile()
	assert.Zero(t, w.IdleProjectiles())
	assert.Empty(t, reused.Hit)
	assert.False(t, reused.MarkedForDeletion)
}

func TestProjectileSystem_OnHitEffects(t *testing.T) {
	cfg := createTestGameConfig()

	t.Run("slow falls back to configured values", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		e := addEnemy(w, cfg, 2, 304, 100)
		p := spawnShot(w, 300, e.Y, 400, 10)
		p.Effects = entity.Effects{entity.SlowOnHit{}}

		sys.Update(ctx, 0.01)

		assert.Equal(t, 2.0, e.SlowTimer)
		assert.Equal(t, 0.5, e.SlowMult)
	})

	t.Run("burn stacks", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		e := addEnemy(w, cfg, 2, 304, 100)
		e.BurnDPS = 3
		p := spawnShot(w, 300, e.Y, 400, 10)
		p.Effects = entity.Effects{entity.BurnChance{Percent: 100, DPS: 4, Duration: 3}}

		sys.Update(ctx, 0.01)

		assert.Equal(t, 3.0, e.BurnTimer)
		assert.Equal(t, 7.0, e.BurnDPS)
	})

	t.Run("zero burn chance never ignites", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		e := addEnemy(w, cfg, 2, 304, 100)
		p := spawnShot(w, 300, e.Y, 400, 10)
		p.Effects = entity.Effects{entity.BurnChance{Percent: 0, DPS: 4, Duration: 3}}

		sys.Update(ctx, 0.01)

		assert.Zero(t, e.BurnTimer)
	})

	t.Run("explode on hit splashes half damage", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		a := addEnemy(w, cfg, 2, 304, 100)
		b := addEnemy(w, cfg, 2, 340, 100)
		c := addEnemy(w, cfg, 2, 400, 100)
		p := spawnShot(w, 300, a.Y, 400, 10)
		p.Effects = entity.Effects{entity.ExplodeOnHit{Radius: 50}}

		sys.Update(ctx, 0.01)

		assert.Equal(t, 85.0, a.HP)
		assert.Equal(t, 95.0, b.HP)
		assert.Equal(t, 100.0, c.HP)
		assert.Empty(t, w.Blasts)
	})

	t.Run("chained explosion schedules a follow-up", func(t *testing.T) {
		sys := NewProjectileSystem(cfg, NewDamager(cfg))
		w := world.NewWorld()
		ctx := newTestContext(newMockStore(), w)
		a := addEnemy(w, cfg, 2, 304, 100)
		b := addEnemy(w, cfg, 2, 340, 5)
		p := spawnShot(w, 300, a.Y, 400, 10)
		p.Effects = entity.Effects{entity.ExplodeOnHit{Radius: 50, Chain: true}}
		p.Chain = true

		sys.Update(ctx, 0.01)

		assert.True(t, b.Dying())
		require.Len(t, w.Blasts, 1)
		assert.Equal(t, 1, w.Blasts[0].Depth)
	})
}
