package world

import (
	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/domain/pool"
)

// Blast is an area explosion scheduled for a later frame
type Blast struct {
	X, Y   float64
	Radius float64
	Damage float64
	Delay  float64 // seconds until it fires
	Chain  bool
	Depth  int

	queued uint64 // frame the blast was scheduled in
}

// World holds every simulation entity of the current wave and the wave timer
type World struct {
	nextID entity.EntityID

	Enemies       []*entity.Enemy
	Projectiles   []*entity.Projectile
	FloatingTexts []*entity.FloatingText
	Blasts        []Blast

	// TimeRemaining counts down while in combat
	TimeRemaining float64

	frame uint64

	projectiles *pool.Pool[entity.Projectile]
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:      1, // 0 is "nil"
		Enemies:     make([]*entity.Enemy, 0, 64),
		Projectiles: make([]*entity.Projectile, 0, 128),
		projectiles: pool.New(entity.NewProjectile, (*entity.Projectile).Reset),
	}
}

// NewID returns a new unique entity ID (never recycled)
func (w *World) NewID() entity.EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// Reset clears the world for a new wave. Live projectiles go back to the pool.
func (w *World) Reset(duration float64) {
	for _, p := range w.Projectiles {
		w.projectiles.Release(p)
	}
	clear(w.Projectiles)
	w.Projectiles = w.Projectiles[:0]
	clear(w.Enemies)
	w.Enemies = w.Enemies[:0]
	w.FloatingTexts = w.FloatingTexts[:0]
	w.Blasts = w.Blasts[:0]
	w.TimeRemaining = duration
}

// AddEnemy appends an enemy
func (w *World) AddEnemy(e *entity.Enemy) {
	w.Enemies = append(w.Enemies, e)
}

// FindEnemy looks an enemy up by id; nil once it has been removed
func (w *World) FindEnemy(id entity.EntityID) *entity.Enemy {
	for _, e := range w.Enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// LivingEnemies counts enemies that can still be hit
func (w *World) LivingEnemies() int {
	n := 0
	for _, e := range w.Enemies {
		if e.Alive() {
			n++
		}
	}
	return n
}

// RemoveDeletedEnemies filters out enemies marked for deletion
func (w *World) RemoveDeletedEnemies() {
	kept := w.Enemies[:0]
	for _, e := range w.Enemies {
		if !e.MarkedForDeletion {
			kept = append(kept, e)
		}
	}
	clear(w.Enemies[len(kept):])
	w.Enemies = kept
}

// SpawnProjectile takes a projectile from the pool, assigns a fresh id and
// adds it to the live list
func (w *World) SpawnProjectile() *entity.Projectile {
	p := w.projectiles.Get()
	p.ID = w.NewID()
	w.Projectiles = append(w.Projectiles, p)
	return p
}

// ReleaseDeletedProjectiles returns marked projectiles to the pool, then
// filters them out of the live list
func (w *World) ReleaseDeletedProjectiles() {
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if p.MarkedForDeletion {
			w.projectiles.Release(p)
			continue
		}
		kept = append(kept, p)
	}
	clear(w.Projectiles[len(kept):])
	w.Projectiles = kept
}

// IdleProjectiles returns the number of pooled projectiles waiting for reuse
func (w *World) IdleProjectiles() int {
	return w.projectiles.Len()
}

// AddFloatingText appends a feedback label
func (w *World) AddFloatingText(t *entity.FloatingText) {
	w.FloatingTexts = append(w.FloatingTexts, t)
}

// BeginFrame starts a simulation frame. Blasts scheduled from here on start
// counting down in the next frame.
func (w *World) BeginFrame() {
	w.frame++
}

// ScheduleBlast queues an explosion for a later frame
func (w *World) ScheduleBlast(b Blast) {
	b.queued = w.frame
	w.Blasts = append(w.Blasts, b)
}

// DueBlasts advances every queued blast by dt and removes the ones that are due.
// Blasts scheduled during the current frame are left untouched.
// Due blasts are returned in scheduling order.
func (w *World) DueBlasts(dt float64, due []Blast) []Blast {
	kept := w.Blasts[:0]
	for _, b := range w.Blasts {
		if b.queued == w.frame {
			kept = append(kept, b)
			continue
		}
		b.Delay -= dt
		if b.Delay <= 0 {
			due = append(due, b)
			continue
		}
		kept = append(kept, b)
	}
	w.Blasts = kept
	return due
}
