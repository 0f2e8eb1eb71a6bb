package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// cue is a short sine tone
type cue struct {
	freq     float64
	duration time.Duration
}

var cues = map[string]cue{
	"kill":     {880, 40 * time.Millisecond},
	"hurt":     {220, 60 * time.Millisecond},
	"wave":     {660, 200 * time.Millisecond},
	"gameover": {110, 500 * time.Millisecond},
}

// soundCues plays event tones through the speaker
type soundCues struct {
	enabled bool
}

// newSoundCues initializes the speaker. Audio failure is not fatal; the cues stay silent.
func newSoundCues(enabled bool) (*soundCues, error) {
	s := &soundCues{}
	if !enabled {
		return s, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return s, err
	}
	s.enabled = true
	return s, nil
}

// Play plays the tone for an event name; unknown names are ignored
func (s *soundCues) Play(name string) {
	if !s.enabled {
		return
	}
	c, ok := cues[name]
	if !ok {
		return
	}
	sine, err := generators.SineTone(sampleRate, c.freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(c.duration), sine))
}

// Close releases the speaker
func (s *soundCues) Close() {
	if s.enabled {
		speaker.Close()
		s.enabled = false
	}
}
