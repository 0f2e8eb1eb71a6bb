package entity

// Unit is a stationary friendly unit on the grid.
// The roster is owned by the progression store; combat bookkeeping fields
// (Cooldown, AttackAnim, AttackProgress, ArmTimer, GoldTimer) belong to the resolver.
type Unit struct {
	ID       EntityID
	Name     string
	Row, Col int

	Class       WeaponClass
	Damage      int
	Range       float64 // pixels
	Cooldown    float64
	MaxCooldown float64
	HP          int
	MaxHP       int
	Pattern     AttackPattern

	// Hero
	Hero       bool
	Energy     float64
	MaxEnergy  float64
	HeroAttack HeroAttack

	// Delayed trigger (mines)
	State    UnitState
	ArmTimer float64

	Effects Effects
	Dead    bool

	// Resolver bookkeeping
	AttackAnim     AttackState
	AttackProgress float64
	GoldTimer      float64
}

// CanAttack returns true if the unit has an attack at all
func (u *Unit) CanAttack() bool {
	return u.Damage > 0 && u.Pattern != PatternNone
}

// StartAttackAnim starts the melee animation
func (u *Unit) StartAttackAnim() {
	u.AttackAnim = AttackAttacking
	u.AttackProgress = 0
}
