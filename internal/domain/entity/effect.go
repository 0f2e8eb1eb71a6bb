package entity

// EffectKind identifies an Effect variant
type EffectKind int

const (
	EffectExplodeOnDeath EffectKind = iota
	EffectExplodeOnHit
	EffectBounceOnHit
	EffectPierce
	EffectBurnChance
	EffectSlowOnHit
	EffectGenerateGold
	EffectSelfDestruct
)

// Effect is one entry of a unit or projectile effect bag.
// The set of variants is closed; resolvers switch on the concrete type.
type Effect interface {
	Kind() EffectKind
}

// ExplodeOnDeath blasts the area around a unit once, when it dies
type ExplodeOnDeath struct {
	Radius     float64
	DamageMult float64 // multiple of the unit's damage
}

// ExplodeOnHit blasts the impact point at half the projectile damage.
// On a unit it fires once if the unit is killed by a hit.
type ExplodeOnHit struct {
	Radius float64
	Chain  bool
}

// BounceOnHit retargets a new projectile to a nearby enemy after impact
type BounceOnHit struct {
	Count int
}

// Pierce lets a projectile pass through Count extra enemies
type Pierce struct {
	Count int
}

// BurnChance ignites the target with Percent probability; burn damage stacks
type BurnChance struct {
	Percent  float64
	DPS      float64
	Duration float64
}

// SlowOnHit slows the target for Duration seconds
type SlowOnHit struct {
	Duration   float64
	Multiplier float64
}

// GenerateGold pays Amount gold every Interval seconds during combat
type GenerateGold struct {
	Interval float64
	Amount   int
}

// SelfDestruct detonates a ready mine when an enemy enters its range
type SelfDestruct struct {
	Radius float64
	Damage int
}

func (ExplodeOnDeath) Kind() EffectKind { return EffectExplodeOnDeath }
func (ExplodeOnHit) Kind() EffectKind   { return EffectExplodeOnHit }
func (BounceOnHit) Kind() EffectKind    { return EffectBounceOnHit }
func (Pierce) Kind() EffectKind         { return EffectPierce }
func (BurnChance) Kind() EffectKind     { return EffectBurnChance }
func (SlowOnHit) Kind() EffectKind      { return EffectSlowOnHit }
func (GenerateGold) Kind() EffectKind   { return EffectGenerateGold }
func (SelfDestruct) Kind() EffectKind   { return EffectSelfDestruct }

// Effects is an effect bag
type Effects []Effect

// FindEffect returns the first effect of type T in the bag
func FindEffect[T Effect](bag Effects) (T, bool) {
	for _, e := range bag {
		if v, ok := e.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Has reports whether the bag holds an effect of the given kind
func (b Effects) Has(kind EffectKind) bool {
	for _, e := range b {
		if e.Kind() == kind {
			return true
		}
	}
	return false
}

// Without returns a copy of the bag minus the given kinds
func (b Effects) Without(kinds ...EffectKind) Effects {
	out := make(Effects, 0, len(b))
	for _, e := range b {
		drop := false
		for _, k := range kinds {
			if e.Kind() == k {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns an independent copy of the bag
func (b Effects) Clone() Effects {
	if len(b) == 0 {
		return nil
	}
	out := make(Effects, len(b))
	copy(out, b)
	return out
}
