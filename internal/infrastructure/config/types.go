package config

// SimConfig is the root config for sim.json
type SimConfig struct {
	Display    DisplayConfig    `json:"display"`
	Grid       GridConfig       `json:"grid"`
	Field      FieldConfig      `json:"field"`
	Simulation SimulationConfig `json:"simulation"`
	Combat     CombatConfig     `json:"combat"`
	Hero       HeroConfig       `json:"hero"`
	Effects    EffectsConfig    `json:"effects"`
	Waves      WaveTuning       `json:"waves"`
	Enemy      EnemyTuning      `json:"enemy"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

// GridConfig describes the lane grid. Offsets place cell (0,0) on screen.
type GridConfig struct {
	Rows     int     `json:"rows"`
	Cols     int     `json:"cols"`
	CellSize float64 `json:"cellSize"`
	OffsetX  float64 `json:"offsetX"`
	OffsetY  float64 `json:"offsetY"`
}

// CellCenter returns the pixel center of a grid cell
func (g GridConfig) CellCenter(row, col int) (x, y float64) {
	x = g.OffsetX + (float64(col)+0.5)*g.CellSize
	y = g.OffsetY + (float64(row)+0.5)*g.CellSize
	return x, y
}

// RowCenterY returns the pixel y of a lane's center line
func (g GridConfig) RowCenterY(row int) float64 {
	return g.OffsetY + (float64(row)+0.5)*g.CellSize
}

// RowAt returns the lane containing pixel y, or -1 when outside the grid
func (g GridConfig) RowAt(y float64) int {
	if y < g.OffsetY || g.CellSize <= 0 {
		return -1
	}
	row := int((y - g.OffsetY) / g.CellSize)
	if row >= g.Rows {
		return -1
	}
	return row
}

// InBounds reports whether (row, col) is a valid cell
func (g GridConfig) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// HomeLineX is the left edge of the grid; enemies crossing it breach
func (g GridConfig) HomeLineX() float64 {
	return g.OffsetX
}

// RightEdgeX is the right edge of the grid
func (g GridConfig) RightEdgeX() float64 {
	return g.OffsetX + float64(g.Cols)*g.CellSize
}

// FieldConfig is the playfield in pixels; projectiles beyond Margin are dropped
type FieldConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

type SimulationConfig struct {
	MaxStep           float64 `json:"maxStep"` // dt clamp (seconds)
	SpatialCellSize   float64 `json:"spatialCellSize"`
	DeathAnimDuration float64 `json:"deathAnimDuration"`
	HitFlashDuration  float64 `json:"hitFlashDuration"`
	FloatingTextLife  float64 `json:"floatingTextLife"`
}

type CombatConfig struct {
	// Units whose range reaches this many pixels search the whole board
	GlobalRangeThreshold float64 `json:"globalRangeThreshold"`
	SwingHalfAngleDeg    float64 `json:"swingHalfAngleDeg"`
	MeleeAnimRate        float64 `json:"meleeAnimRate"` // animation progress per second
	ProjectileSpeed      float64 `json:"projectileSpeed"`
	ProjectileRadius     float64 `json:"projectileRadius"`
	StreamLife           float64 `json:"streamLife"`
	StreamSpeed          float64 `json:"streamSpeed"`
	StreamWobbleAmp      float64 `json:"streamWobbleAmp"`
	StreamWobbleFreq     float64 `json:"streamWobbleFreq"`
	BounceSearchRadius   float64 `json:"bounceSearchRadius"`
	BounceDamageFactor   float64 `json:"bounceDamageFactor"`
	ChainDeathFraction   float64 `json:"chainDeathFraction"` // of the dead enemy's max hp
}

type HeroConfig struct {
	EnergyRegen float64 `json:"energyRegen"` // energy per second before the gain-rate stat
	UltDamage   int     `json:"ultDamage"`
	UltFreeze   float64 `json:"ultFreeze"` // seconds
}

type EffectsConfig struct {
	SlowDuration      float64 `json:"slowDuration"`
	SlowMultiplier    float64 `json:"slowMultiplier"`
	ExplodeOnHitRatio float64 `json:"explodeOnHitRatio"` // of the projectile damage
	ChainDelay        float64 `json:"chainDelay"`
	ChainRadiusFactor float64 `json:"chainRadiusFactor"`
	ChainDamageFactor float64 `json:"chainDamageFactor"`
	MaxChainDepth     int     `json:"maxChainDepth"`
}

type WaveTuning struct {
	BurstInterval float64 `json:"burstInterval"`
	BurstShare    float64 `json:"burstShare"`
	RampSlope     float64 `json:"rampSlope"`
}

type EnemyTuning struct {
	AttackRate float64 `json:"attackRate"` // melee swings per second
}
