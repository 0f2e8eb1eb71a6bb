package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/lanesiege/internal/application/state"
	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

func newTestHost(t *testing.T) *host {
	t.Helper()
	h := newHostOnScreen(t)
	t.Cleanup(h.screen.Fini)
	return h
}

func newHostOnScreen(t *testing.T) *host {
	t.Helper()
	cfg, err := config.NewLoader("../game/configs").LoadAll()
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(96, 16)

	h, err := newHost(screen, cfg, &soundCues{}, 7)
	require.NoError(t, err)
	return h
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func advance(h *host, seconds float64) {
	steps := int(seconds * 60)
	for i := 0; i < steps; i++ {
		h.tick(1.0 / 60)
	}
}

func TestViewColumn(t *testing.T) {
	v := view{field: 960, width: 96}

	tests := []struct {
		x    float64
		want int
	}{
		{0, 0},
		{64, 6},
		{959, 95},
		{960, -1},
		{-1, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, v.column(tt.x), "x=%v", tt.x)
	}

	assert.Equal(t, -1, view{width: 96}.column(10), "zero field width")
	assert.Equal(t, hudRows+2*laneRows, v.laneLine(2))
}

func TestUnitGlyph(t *testing.T) {
	tests := []struct {
		name string
		unit entity.Unit
		want rune
	}{
		{"melee", entity.Unit{Class: entity.ClassMelee}, 'm'},
		{"ranged", entity.Unit{Class: entity.ClassRanged}, 'r'},
		{"magic", entity.Unit{Class: entity.ClassMagic}, 'w'},
		{"engineering", entity.Unit{Class: entity.ClassEngineering}, 'e'},
		{"hero", entity.Unit{Class: entity.ClassMelee, Hero: true}, 'M'},
		{"dead", entity.Unit{Class: entity.ClassRanged, Dead: true}, 'x'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unitGlyph(&tt.unit))
		})
	}
}

func TestEnemyGlyph(t *testing.T) {
	assert.Equal(t, 'o', enemyGlyph(&entity.Enemy{Scale: 1}))
	assert.Equal(t, '@', enemyGlyph(&entity.Enemy{Scale: 1.5}))

	e := &entity.Enemy{Scale: 1.5}
	e.StartDeath(0.4)
	assert.Equal(t, '*', enemyGlyph(e))
}

func TestHostKeys(t *testing.T) {
	h := newTestHost(t)

	assert.True(t, h.handleEvent(key('p')), "pause before combat is ignored")
	assert.False(t, h.paused)

	assert.True(t, h.handleEvent(key(' ')))
	assert.Equal(t, state.PhaseCombat, h.store.Phase())
	assert.True(t, h.engine.Running())

	h.handleEvent(key('p'))
	assert.True(t, h.paused)
	assert.False(t, h.engine.Running())

	h.handleEvent(key('p'))
	assert.False(t, h.paused)
	assert.True(t, h.engine.Running())

	assert.True(t, h.handleEvent(tcell.NewEventResize(96, 16)))
	assert.False(t, h.handleEvent(key('q')))
	assert.False(t, h.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestHostWaveCycle(t *testing.T) {
	h := newTestHost(t)
	h.handleEvent(key(' '))

	advance(h, 10)
	assert.Greater(t, h.secs, 0)

	advance(h, 21)
	require.Equal(t, state.PhaseShop, h.store.Phase())
	assert.Contains(t, h.status, "cleared")

	advance(h, h.config.Entities.Player.ShopTime+1)
	assert.Equal(t, 2, h.store.Wave())
	assert.Equal(t, state.PhaseCombat, h.store.Phase())
	assert.True(t, h.engine.Running())
}

func TestHostPausedTickIsFrozen(t *testing.T) {
	h := newTestHost(t)
	h.handleEvent(key(' '))
	advance(h, 1)
	h.handleEvent(key('p'))

	remaining := h.engine.TimeRemaining()
	now := h.now
	advance(h, 5)
	assert.Equal(t, remaining, h.engine.TimeRemaining())
	assert.Equal(t, now, h.now)
}

func TestHostRestart(t *testing.T) {
	h := newTestHost(t)

	h.handleEvent(key('r'))
	assert.Equal(t, int64(7), h.seed, "restart needs a finished run")

	h.handleEvent(key(' '))
	advance(h, 1)
	h.store.GameOver()
	engine := h.engine

	h.handleEvent(key('r'))
	assert.Equal(t, state.PhaseStart, h.store.Phase())
	assert.Equal(t, 1, h.store.Wave())
	assert.NotEqual(t, int64(7), h.seed)
	assert.Empty(t, h.engine.World().Enemies)
	assert.Same(t, engine, h.engine, "one engine per host")
	assert.False(t, h.engine.Running())

	h.handleEvent(key(' '))
	assert.True(t, h.engine.Running())
	assert.Equal(t, state.PhaseCombat, h.store.Phase())
}

func TestHostDraw(t *testing.T) {
	h := newTestHost(t)
	h.draw()

	mainc, _, _, _ := h.screen.GetContent(0, 0)
	assert.Equal(t, 'W', mainc)

	w, _ := h.screen.Size()
	v := newView(h.config, w)
	for _, u := range h.store.Units() {
		cx, _ := h.config.Sim.Grid.CellCenter(u.Row, u.Col)
		got, _, _, _ := h.screen.GetContent(v.column(cx), v.laneLine(u.Row))
		assert.Equal(t, unitGlyph(u), got, "unit %s", u.Name)
	}

	h.handleEvent(key(' '))
	advance(h, 5)
	assert.NotPanics(t, h.draw)
}

func TestHostCleanupReleasesTerminal(t *testing.T) {
	h := newHostOnScreen(t)
	done := h.bindTeardown()
	h.handleEvent(key(' '))
	require.True(t, h.engine.Running())

	select {
	case <-done:
		t.Fatal("done closed before cleanup")
	default:
	}

	h.engine.Cleanup()

	assert.False(t, h.engine.Running())
	select {
	case <-done:
	default:
		t.Fatal("cleanup did not close done")
	}
	assert.NotPanics(t, h.engine.Cleanup, "bindings run once")
}

func TestPollEventsStopsOnDone(t *testing.T) {
	h := newTestHost(t)
	done := make(chan struct{})
	close(done)
	require.NoError(t, h.screen.PostEvent(tcell.NewEventInterrupt(nil)))

	// nobody reads events, so only done lets it return
	pollEvents(h.screen, make(chan tcell.Event), done)
}
