package config

import "sort"

// WavesConfig is the root config for waves.json
type WavesConfig struct {
	Waves []WaveDef `json:"waves"`
}

// WaveDef is a declarative wave: total count split by composition shares
type WaveDef struct {
	Number      int                `json:"number"`
	Duration    float64            `json:"duration"` // seconds
	Count       int                `json:"count"`
	Composition map[string]float64 `json:"composition"`
	Flag        string             `json:"flag,omitempty"` // e.g. "boss", "elite"
}

// WaveTable looks wave definitions up by number
type WaveTable struct {
	defs []WaveDef
}

// NewWaveTable sorts the definitions by wave number
func NewWaveTable(defs []WaveDef) *WaveTable {
	sorted := make([]WaveDef, len(defs))
	copy(sorted, defs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})
	return &WaveTable{defs: sorted}
}

// Lookup returns the definition for wave n. Unknown numbers fall back to the
// last defined wave. ok is false only when the table is empty.
func (t *WaveTable) Lookup(n int) (WaveDef, bool) {
	if len(t.defs) == 0 {
		return WaveDef{}, false
	}
	for _, d := range t.defs {
		if d.Number == n {
			return d, true
		}
	}
	return t.defs[len(t.defs)-1], true
}

// Len returns the number of defined waves
func (t *WaveTable) Len() int {
	return len(t.defs)
}
