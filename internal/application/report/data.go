// Package report records per-wave combat statistics and writes them as JSON.
package report

// Outcome is how a wave ended
type Outcome string

const (
	OutcomeCleared  Outcome = "cleared"
	OutcomeBreached Outcome = "breached"
	OutcomeAborted  Outcome = "aborted"
)

// WaveReport holds the counters of one wave
type WaveReport struct {
	Wave     int     `json:"wave"`
	Flag     string  `json:"flag,omitempty"`
	Duration float64 `json:"duration"`
	Planned  int     `json:"planned"`
	Spawned  int     `json:"spawned"`
	Killed   int     `json:"killed"`
	XP       int     `json:"xp"`
	Gold     int     `json:"gold"`
	UnitHits int     `json:"unitHits"`
	Outcome  Outcome `json:"outcome"`
}

// Report is a whole run
type Report struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	StartTime string       `json:"startTime"`
	Waves     []WaveReport `json:"waves"`
}

// Totals sums every wave's counters
func (r Report) Totals() WaveReport {
	var t WaveReport
	for _, w := range r.Waves {
		t.Planned += w.Planned
		t.Spawned += w.Spawned
		t.Killed += w.Killed
		t.XP += w.XP
		t.Gold += w.Gold
		t.UnitHits += w.UnitHits
		t.Duration += w.Duration
	}
	t.Wave = len(r.Waves)
	if n := len(r.Waves); n > 0 {
		t.Outcome = r.Waves[n-1].Outcome
	}
	return t
}
