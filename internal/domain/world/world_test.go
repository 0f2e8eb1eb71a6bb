package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/lanesiege/internal/domain/entity"
)

func TestNewWorld(t *testing.T) {
	w := NewWorld()

	require.NotNil(t, w)
	assert.Equal(t, entity.EntityID(1), w.nextID)
	assert.Empty(t, w.Enemies)
	assert.Empty(t, w.Projectiles)
}

func TestNewID(t *testing.T) {
	w := NewWorld()

	assert.Equal(t, entity.EntityID(1), w.NewID())
	assert.Equal(t, entity.EntityID(2), w.NewID())
	assert.Equal(t, entity.EntityID(3), w.NewID())
}

func TestIDsNeverRecycled(t *testing.T) {
	w := NewWorld()

	p := w.SpawnProjectile()
	first := p.ID
	p.MarkedForDeletion = true
	w.ReleaseDeletedProjectiles()

	again := w.SpawnProjectile()
	assert.Same(t, p, again, "pooled instance is reused")
	assert.NotEqual(t, first, again.ID, "ids are not")

	w.Reset(30)
	assert.Greater(t, w.NewID(), again.ID)
}

func TestReset(t *testing.T) {
	w := NewWorld()
	w.AddEnemy(entity.NewEnemy(w.NewID(), "baby_alien", 0, 0, 10, 0, 10))
	w.SpawnProjectile()
	w.SpawnProjectile()
	w.AddFloatingText(entity.NewFloatingText("1", entity.ColorDamage, 0, 0, 1))
	w.ScheduleBlast(Blast{Delay: 1})

	w.Reset(45)

	assert.Empty(t, w.Enemies)
	assert.Empty(t, w.Projectiles)
	assert.Empty(t, w.FloatingTexts)
	assert.Empty(t, w.Blasts)
	assert.Equal(t, 45.0, w.TimeRemaining)
	assert.Equal(t, 2, w.IdleProjectiles())
}

func TestFindEnemy(t *testing.T) {
	w := NewWorld()
	e := entity.NewEnemy(w.NewID(), "baby_alien", 0, 0, 10, 0, 10)
	w.AddEnemy(e)

	assert.Same(t, e, w.FindEnemy(e.ID))
	assert.Nil(t, w.FindEnemy(999))

	e.MarkedForDeletion = true
	w.RemoveDeletedEnemies()
	assert.Nil(t, w.FindEnemy(e.ID))
}

func TestLivingEnemies(t *testing.T) {
	w := NewWorld()
	a := entity.NewEnemy(w.NewID(), "baby_alien", 0, 0, 10, 0, 10)
	b := entity.NewEnemy(w.NewID(), "baby_alien", 0, 0, 10, 0, 10)
	w.AddEnemy(a)
	w.AddEnemy(b)

	assert.Equal(t, 2, w.LivingEnemies())

	b.StartDeath(0.4)
	assert.Equal(t, 1, w.LivingEnemies())
	assert.Len(t, w.Enemies, 2, "dying enemies stay until marked")
}

func TestReleaseDeletedProjectiles(t *testing.T) {
	w := NewWorld()
	a := w.SpawnProjectile()
	b := w.SpawnProjectile()
	c := w.SpawnProjectile()
	b.MarkedForDeletion = true

	w.ReleaseDeletedProjectiles()

	require.Len(t, w.Projectiles, 2)
	assert.Same(t, a, w.Projectiles[0])
	assert.Same(t, c, w.Projectiles[1])
	assert.Equal(t, 1, w.IdleProjectiles())
}

func TestDueBlasts(t *testing.T) {
	w := NewWorld()
	w.ScheduleBlast(Blast{X: 1, Delay: 0.1})
	w.ScheduleBlast(Blast{X: 2, Delay: 0.3})

	due := w.DueBlasts(0.15, nil)
	assert.Empty(t, due, "nothing counts down in the scheduling frame")
	require.Len(t, w.Blasts, 2)
	assert.Equal(t, 0.1, w.Blasts[0].Delay)

	w.BeginFrame()
	due = w.DueBlasts(0.15, due[:0])
	require.Len(t, due, 1)
	assert.Equal(t, 1.0, due[0].X)
	require.Len(t, w.Blasts, 1)
	assert.InDelta(t, 0.15, w.Blasts[0].Delay, 1e-9)

	w.BeginFrame()
	w.ScheduleBlast(Blast{X: 3, Delay: 0.01})
	due = w.DueBlasts(0.2, due[:0])
	require.Len(t, due, 1)
	assert.Equal(t, 2.0, due[0].X)
	require.Len(t, w.Blasts, 1)
	assert.Equal(t, 3.0, w.Blasts[0].X)
}
