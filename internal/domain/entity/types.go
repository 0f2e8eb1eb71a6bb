package entity

// EntityID is a unique identifier for an entity (never recycled within a wave)
type EntityID uint64

// WeaponClass is the weapon family of a unit; each class has its own flat damage bonus
type WeaponClass int

const (
	ClassMelee WeaponClass = iota
	ClassRanged
	ClassMagic
	ClassEngineering
)

// String returns the config name of the class
func (c WeaponClass) String() string {
	switch c {
	case ClassMelee:
		return "melee"
	case ClassRanged:
		return "ranged"
	case ClassMagic:
		return "magic"
	case ClassEngineering:
		return "engineering"
	default:
		return "unknown"
	}
}

// ParseWeaponClass converts a config name to a WeaponClass
func ParseWeaponClass(s string) (WeaponClass, bool) {
	switch s {
	case "melee":
		return ClassMelee, true
	case "ranged":
		return ClassRanged, true
	case "magic":
		return ClassMagic, true
	case "engineering":
		return ClassEngineering, true
	}
	return ClassMelee, false
}

// AttackPattern is the delivery shape of a unit's attack
type AttackPattern int

const (
	PatternNone AttackPattern = iota
	PatternThrust
	PatternSwing
	PatternShoot
	PatternStream
)

// ParseAttackPattern converts a config name to an AttackPattern
func ParseAttackPattern(s string) (AttackPattern, bool) {
	switch s {
	case "", "none":
		return PatternNone, true
	case "thrust":
		return PatternThrust, true
	case "swing":
		return PatternSwing, true
	case "shoot":
		return PatternShoot, true
	case "stream":
		return PatternStream, true
	}
	return PatternNone, false
}

// HeroAttack is the projectile fan-out variant of a hero unit
type HeroAttack int

const (
	HeroLinear HeroAttack = iota
	HeroTriShot
	HeroPentaShot
	HeroTracking
)

// ParseHeroAttack converts a config name to a HeroAttack
func ParseHeroAttack(s string) (HeroAttack, bool) {
	switch s {
	case "", "linear":
		return HeroLinear, true
	case "tri_shot":
		return HeroTriShot, true
	case "penta_shot":
		return HeroPentaShot, true
	case "tracking":
		return HeroTracking, true
	}
	return HeroLinear, false
}

// UnitState is the trigger state machine of delayed-trigger units (mines)
type UnitState int

const (
	UnitIdle UnitState = iota
	UnitArming
	UnitReady
)

// AttackState is the melee animation state shared by enemies and units
type AttackState int

const (
	AttackIdle AttackState = iota
	AttackAttacking
)

// MotionKind is how a projectile moves
type MotionKind int

const (
	MotionLinear MotionKind = iota
	MotionTracking
)
