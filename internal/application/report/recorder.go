package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/lanesiege/internal/application/system"
	"github.com/younwookim/lanesiege/internal/domain/entity"
)

// Recorder collects wave counters from simulation callbacks
type Recorder struct {
	data      Report
	current   *WaveReport
	recording bool
}

// NewRecorder creates a recorder for a run seeded with seed
func NewRecorder(seed int64) *Recorder {
	return &Recorder{
		data: Report{
			Version:   "1.0",
			Seed:      seed,
			StartTime: time.Now().Format(time.RFC3339),
			Waves:     make([]WaveReport, 0, 16),
		},
		recording: true,
	}
}

// BeginWave opens a wave entry. An unfinished previous wave is closed as aborted.
func (r *Recorder) BeginWave(plan system.SpawnPlan) {
	if !r.recording {
		return
	}
	if r.current != nil {
		r.EndWave(OutcomeAborted)
	}
	r.current = &WaveReport{
		Wave:     plan.Wave,
		Flag:     plan.Flag,
		Duration: plan.Duration,
		Planned:  plan.Total,
	}
}

// EndWave closes the open wave entry
func (r *Recorder) EndWave(outcome Outcome) {
	if r.current == nil {
		return
	}
	r.current.Outcome = outcome
	r.data.Waves = append(r.data.Waves, *r.current)
	r.current = nil
}

// Wrap returns callbacks that record each event before forwarding it to next.
// next may be nil.
func (r *Recorder) Wrap(next *system.Callbacks) *system.Callbacks {
	if next == nil {
		next = &system.Callbacks{}
	}
	cb := *next
	cb.OnEnemySpawned = func(e *entity.Enemy) {
		if r.current != nil {
			r.current.Spawned++
		}
		if next.OnEnemySpawned != nil {
			next.OnEnemySpawned(e)
		}
	}
	cb.OnEnemyKilled = func(e *entity.Enemy) {
		if r.current != nil {
			r.current.Killed++
		}
		if next.OnEnemyKilled != nil {
			next.OnEnemyKilled(e)
		}
	}
	cb.OnGainLoot = func(xp, gold int) {
		if r.current != nil {
			r.current.XP += xp
			r.current.Gold += gold
		}
		if next.OnGainLoot != nil {
			next.OnGainLoot(xp, gold)
		}
	}
	cb.OnUnitDamaged = func(id entity.EntityID) {
		if r.current != nil {
			r.current.UnitHits++
		}
		if next.OnUnitDamaged != nil {
			next.OnUnitDamaged(id)
		}
	}
	cb.OnWaveEnd = func() {
		r.EndWave(OutcomeCleared)
		if next.OnWaveEnd != nil {
			next.OnWaveEnd()
		}
	}
	cb.OnGameOver = func() {
		r.EndWave(OutcomeBreached)
		if next.OnGameOver != nil {
			next.OnGameOver()
		}
	}
	return &cb
}

// Save writes the report to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Waves) == 0 {
		return fmt.Errorf("no waves to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// Load reads a report written by Save
func Load(filename string) (*Report, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data Report
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &data, nil
}

// Stop stops recording; an open wave is closed as aborted
func (r *Recorder) Stop() {
	r.EndWave(OutcomeAborted)
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// WaveCount returns the number of finished waves
func (r *Recorder) WaveCount() int {
	return len(r.data.Waves)
}

// Current returns the open wave entry, if any
func (r *Recorder) Current() (WaveReport, bool) {
	if r.current == nil {
		return WaveReport{}, false
	}
	return *r.current, true
}

// Data returns the report
func (r *Recorder) Data() Report {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("report_%s.json", time.Now().Format("20060102_150405"))
}
