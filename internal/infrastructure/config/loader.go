package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Sim      *SimConfig
	Entities *EntitiesConfig
	Waves    *WavesConfig
}

// Loader loads game configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

func (l *Loader) readJSON(name string, v any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// LoadSim loads sim.json
func (l *Loader) LoadSim() (*SimConfig, error) {
	var cfg SimConfig
	if err := l.readJSON("sim.json", &cfg); err != nil {
		return nil, err
	}
	applySimDefaults(&cfg)
	return &cfg, nil
}

// LoadEntities loads entities.json
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	var cfg EntitiesConfig
	if err := l.readJSON("entities.json", &cfg); err != nil {
		return nil, err
	}

	for _, slot := range cfg.Roster {
		if _, ok := cfg.Units[slot.Template]; !ok {
			return nil, fmt.Errorf("entities.json: roster references unknown unit %q", slot.Template)
		}
	}
	for name, u := range cfg.Units {
		for _, ec := range u.Effects {
			if _, err := ec.Effect(); err != nil {
				return nil, fmt.Errorf("entities.json: unit %s: %w", name, err)
			}
		}
	}

	return &cfg, nil
}

// LoadWaves loads waves.json
func (l *Loader) LoadWaves() (*WavesConfig, error) {
	var cfg WavesConfig
	if err := l.readJSON("waves.json", &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Waves) == 0 {
		return nil, fmt.Errorf("waves.json: no waves defined")
	}
	return &cfg, nil
}

// LoadAll loads all configurations (sim, entities, waves)
func (l *Loader) LoadAll() (*GameConfig, error) {
	sim, err := l.LoadSim()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	waves, err := l.LoadWaves()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Sim:      sim,
		Entities: entities,
		Waves:    waves,
	}, nil
}

// applySimDefaults fills zero tuning values
func applySimDefaults(cfg *SimConfig) {
	if cfg.Simulation.MaxStep <= 0 {
		cfg.Simulation.MaxStep = 0.1
	}
	if cfg.Simulation.SpatialCellSize <= 0 {
		cfg.Simulation.SpatialCellSize = cfg.Grid.CellSize
	}
	if cfg.Combat.SwingHalfAngleDeg <= 0 {
		cfg.Combat.SwingHalfAngleDeg = 45
	}
	if cfg.Combat.BounceDamageFactor <= 0 {
		cfg.Combat.BounceDamageFactor = 0.7
	}
	if cfg.Combat.ChainDeathFraction <= 0 {
		cfg.Combat.ChainDeathFraction = 0.25
	}
	if cfg.Effects.ExplodeOnHitRatio <= 0 {
		cfg.Effects.ExplodeOnHitRatio = 0.5
	}
	if cfg.Effects.MaxChainDepth <= 0 {
		cfg.Effects.MaxChainDepth = 1
	}
	if cfg.Waves.BurstInterval <= 0 {
		cfg.Waves.BurstInterval = 10
	}
	if cfg.Waves.BurstShare <= 0 {
		cfg.Waves.BurstShare = 0.9
	}
}
