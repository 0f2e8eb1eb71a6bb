package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/lanesiege/internal/application/state"
	"github.com/younwookim/lanesiege/internal/domain/entity"
	"github.com/younwookim/lanesiege/internal/infrastructure/config"
)

// view maps playfield pixels onto terminal cells
type view struct {
	grid  config.GridConfig
	field float64 // playfield width in pixels
	width int     // terminal columns
}

func newView(cfg *config.GameConfig, width int) view {
	return view{grid: cfg.Sim.Grid, field: cfg.Sim.Field.Width, width: width}
}

// column returns the terminal column for pixel x, or -1 when off screen
func (v view) column(x float64) int {
	if v.field <= 0 || x < 0 {
		return -1
	}
	col := int(x / v.field * float64(v.width))
	if col >= v.width {
		return -1
	}
	return col
}

// laneLine returns the terminal row of a lane's center line
func (v view) laneLine(row int) int {
	return hudRows + row*laneRows
}

// unitGlyph is the class letter of a unit, upper case for heroes
func unitGlyph(u *entity.Unit) rune {
	if u.Dead {
		return 'x'
	}
	var r rune
	switch u.Class {
	case entity.ClassMelee:
		r = 'm'
	case entity.ClassRanged:
		r = 'r'
	case entity.ClassMagic:
		r = 'w'
	default:
		r = 'e'
	}
	if u.Hero {
		r -= 'a' - 'A'
	}
	return r
}

// enemyGlyph reflects size and state
func enemyGlyph(e *entity.Enemy) rune {
	switch {
	case e.Dying():
		return '*'
	case e.Scale > 1.2:
		return '@'
	default:
		return 'o'
	}
}

func (h *host) draw() {
	s := h.screen
	s.Clear()
	w, _ := s.Size()
	v := newView(h.config, w)
	grid := h.config.Sim.Grid

	// lanes
	left, right := v.column(grid.HomeLineX()), v.column(grid.RightEdgeX())
	if right < 0 {
		right = w - 1
	}
	for row := 0; row < grid.Rows; row++ {
		y := v.laneLine(row)
		for x := 0; x < w; x++ {
			s.SetContent(x, y+1, '·', nil, styleLane)
		}
		if left >= 0 {
			s.SetContent(left, y, '|', nil, styleHome)
		}
		for col := 0; col <= grid.Cols; col++ {
			if x := v.column(grid.OffsetX + float64(col)*grid.CellSize); x >= 0 && x <= right {
				s.SetContent(x, y+1, '+', nil, styleLane)
			}
		}
	}

	// units
	for _, u := range h.store.Units() {
		cx, _ := grid.CellCenter(u.Row, u.Col)
		x := v.column(cx)
		if x < 0 {
			continue
		}
		style, ok := classStyles[u.Class]
		if !ok {
			style = styleHUD
		}
		switch {
		case u.Dead:
			style = styleDead
		case u.Hero:
			style = styleHero
		}
		s.SetContent(x, v.laneLine(u.Row), unitGlyph(u), nil, style)
	}

	// projectiles under enemies
	world := h.engine.World()
	for _, p := range world.Projectiles {
		row := grid.RowAt(p.Y)
		x := v.column(p.X)
		if row < 0 || x < 0 {
			continue
		}
		glyph, style := '-', styleShot
		if p.IsStream() {
			glyph, style = '~', styleStream
		}
		s.SetContent(x, v.laneLine(row), glyph, nil, style)
	}

	for _, e := range world.Enemies {
		x := v.column(e.X)
		if x < 0 {
			continue
		}
		style := styleEnemy
		switch {
		case e.Dying():
			style = styleDying
		case e.Frozen > 0:
			style = styleFrozen
		}
		s.SetContent(x, v.laneLine(e.Row), enemyGlyph(e), nil, style)
	}

	h.drawHUD(w)
	s.Show()
}

func (h *host) drawHUD(w int) {
	st := h.store
	line := fmt.Sprintf("Wave %d  %ds  Gold %d  XP %d  Lv %d  Units %d  [%s]",
		st.Wave(), h.secs, st.Gold(), st.XP(), st.Level(), st.LivingUnits(), st.Phase())
	if st.Phase() == state.PhaseShop {
		line += fmt.Sprintf("  next in %.0fs", st.ShopTimeRemaining())
	}
	h.print(0, 0, line, styleHUD, w)
	h.print(0, 1, h.status, styleHUD.Dim(true), w)
}

func (h *host) print(x, y int, str string, style tcell.Style, w int) {
	for _, r := range strings.TrimRight(str, " ") {
		if x >= w {
			return
		}
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
