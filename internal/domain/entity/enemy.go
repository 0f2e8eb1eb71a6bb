package entity

// Enemy is a hostile walker advancing along one lane toward the home line
type Enemy struct {
	ID     EntityID
	Type   string
	X, Y   float64
	Radius float64
	Row    int

	// Stats
	HP     float64
	MaxHP  float64
	Speed  float64 // pixels/sec
	Damage int
	Scale  float64
	XP     int
	Gold   int

	// Status (seconds)
	Frozen    float64
	SlowTimer float64
	SlowMult  float64
	BurnTimer float64
	BurnDPS   float64
	HitFlash  float64

	// Melee against units
	AttackState    AttackState
	AttackProgress float64 // 0..1

	// DeathTimer is non-nil while the death animation plays
	DeathTimer        *float64
	MarkedForDeletion bool
}

// NewEnemy creates an enemy at full health
func NewEnemy(id EntityID, enemyType string, x, y, radius float64, row int, hp float64) *Enemy {
	return &Enemy{
		ID:       id,
		Type:     enemyType,
		X:        x,
		Y:        y,
		Radius:   radius,
		Row:      row,
		HP:       hp,
		MaxHP:    hp,
		Scale:    1,
		SlowMult: 1,
	}
}

// Alive returns true if the enemy can still be targeted and collided with
func (e *Enemy) Alive() bool {
	return e.DeathTimer == nil && !e.MarkedForDeletion
}

// Dying returns true while the death animation plays
func (e *Enemy) Dying() bool {
	return e.DeathTimer != nil
}

// StartDeath starts the death animation; the enemy is excluded from collision from now on
func (e *Enemy) StartDeath(duration float64) {
	t := duration
	e.DeathTimer = &t
	e.AttackState = AttackIdle
	e.AttackProgress = 0
}

// TakeDamage applies damage and returns true if hp dropped to zero or below
func (e *Enemy) TakeDamage(amount float64, flash float64) bool {
	e.HP -= amount
	e.HitFlash = flash
	return e.HP <= 0
}

// SpeedMultiplier returns the current movement multiplier from slow effects
func (e *Enemy) SpeedMultiplier() float64 {
	if e.SlowTimer > 0 {
		return e.SlowMult
	}
	return 1
}

// DistanceSq returns the squared distance to a point
func (e *Enemy) DistanceSq(x, y float64) float64 {
	dx := e.X - x
	dy := e.Y - y
	return dx*dx + dy*dy
}
