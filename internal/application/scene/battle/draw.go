package battle

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/lanesiege/internal/application/state"
	"github.com/younwookim/lanesiege/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG        = color.RGBA{26, 26, 46, 255}
	colorLaneA     = color.RGBA{38, 44, 64, 255}
	colorLaneB     = color.RGBA{34, 38, 58, 255}
	colorGridLine  = color.RGBA{60, 66, 92, 255}
	colorHomeLine  = color.RGBA{200, 60, 60, 255}
	colorHealthBG  = color.RGBA{60, 60, 60, 255}
	colorHealthFG  = color.RGBA{100, 200, 100, 255}
	colorEnemyHP   = color.RGBA{220, 80, 80, 255}
	colorEnergy    = color.RGBA{80, 180, 255, 255}
	colorCooldown  = color.RGBA{255, 255, 255, 90}
	colorArming    = color.RGBA{255, 200, 0, 255}
	colorFlash     = color.RGBA{255, 255, 255, 255}
	colorDead      = color.RGBA{70, 70, 70, 255}
	colorShot      = color.RGBA{255, 240, 180, 255}
	colorStream    = color.RGBA{255, 140, 40, 200}
	colorHUD       = color.RGBA{230, 230, 230, 255}
	colorFrozen    = color.RGBA{150, 220, 255, 255}
	colorSlowRing  = color.RGBA{120, 160, 255, 255}
	colorBurnRing  = color.RGBA{255, 120, 40, 255}
	colorHeroFrame = color.RGBA{255, 215, 0, 255}
)

var classColors = map[entity.WeaponClass]color.RGBA{
	entity.ClassMelee:       {190, 120, 80, 255},
	entity.ClassRanged:      {100, 200, 100, 255},
	entity.ClassMagic:       {150, 110, 230, 255},
	entity.ClassEngineering: {200, 200, 110, 255},
}

// Draw renders the battle screen
func (b *Battle) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	b.drawLanes(screen)
	b.drawUnits(screen)
	b.drawEnemies(screen)
	b.drawProjectiles(screen)
	b.drawFloatingTexts(screen)
	b.drawHUD(screen)

	switch {
	case b.store.Phase() == state.PhaseGameOver:
		b.drawGameOverOverlay(screen)
	case b.paused:
		b.drawPauseOverlay(screen)
	case b.store.Phase() == state.PhaseStart:
		b.drawStartOverlay(screen)
	}
}

func (b *Battle) drawLanes(screen *ebiten.Image) {
	g := b.config.Sim.Grid
	cs := float32(g.CellSize)
	for row := 0; row < g.Rows; row++ {
		c := colorLaneA
		if row%2 == 1 {
			c = colorLaneB
		}
		y := float32(g.OffsetY) + float32(row)*cs
		vector.DrawFilledRect(screen, 0, y, float32(b.screenW), cs, c, false)
		for col := 0; col < g.Cols; col++ {
			x := float32(g.OffsetX) + float32(col)*cs
			vector.StrokeRect(screen, x, y, cs, cs, 1, colorGridLine, false)
		}
	}

	home := float32(g.HomeLineX())
	top := float32(g.OffsetY)
	bottom := top + float32(g.Rows)*cs
	vector.StrokeLine(screen, home, top, home, bottom, 2, colorHomeLine, false)
}

func (b *Battle) drawUnits(screen *ebiten.Image) {
	g := b.config.Sim.Grid
	size := float32(g.CellSize) * 0.6

	for _, u := range b.store.Units() {
		if !g.InBounds(u.Row, u.Col) {
			continue
		}
		cx, cy := g.CellCenter(u.Row, u.Col)
		x := float32(cx) - size/2
		y := float32(cy) - size/2

		c, ok := classColors[u.Class]
		if !ok {
			c = colorHUD
		}
		switch {
		case u.Dead:
			c = colorDead
		case b.unitFlash[u.ID] > 0:
			c = colorFlash
		}

		// Melee lunge
		if u.AttackAnim == entity.AttackAttacking {
			x += float32(math.Sin(u.AttackProgress*math.Pi) * 6)
		}

		vector.DrawFilledRect(screen, x, y, size, size, c, false)
		if u.Hero {
			vector.StrokeRect(screen, x-2, y-2, size+4, size+4, 2, colorHeroFrame, false)
		}
		if u.Dead {
			continue
		}

		// Cooldown shade
		if u.MaxCooldown > 0 && u.Cooldown > 0 {
			frac := float32(math.Min(1, u.Cooldown/u.MaxCooldown))
			vector.DrawFilledRect(screen, x, y+size*(1-frac), size, size*frac, colorCooldown, false)
		}

		if u.State == entity.UnitArming {
			vector.StrokeCircle(screen, float32(cx), float32(cy), size/2+3, 1, colorArming, true)
		}

		drawBar(screen, x, y-6, size, 3, float64(u.HP)/float64(max(u.MaxHP, 1)), colorHealthFG)
		if u.Hero {
			maxEnergy := b.store.Stats().HeroMaxEnergy
			if maxEnergy <= 0 {
				maxEnergy = u.MaxEnergy
			}
			if maxEnergy > 0 {
				drawBar(screen, x, y+size+3, size, 3, u.Energy/maxEnergy, colorEnergy)
			}
		}
	}
}

func (b *Battle) drawEnemies(screen *ebiten.Image) {
	for _, e := range b.engine.World().Enemies {
		c := colorHUD
		if ec, ok := b.config.Entities.Enemies[e.Type]; ok {
			c = ec.RGBA()
		}

		alpha := 1.0
		if e.DeathTimer != nil {
			if d := b.config.Sim.Simulation.DeathAnimDuration; d > 0 {
				alpha = math.Max(0, *e.DeathTimer/d)
			}
		}
		switch {
		case e.HitFlash > 0:
			c = colorFlash
		case e.Frozen > 0:
			c = colorFrozen
		}
		c = fade(c, alpha)

		x, y, r := float32(e.X), float32(e.Y), float32(e.Radius)
		if e.AttackState == entity.AttackAttacking {
			x -= float32(math.Sin(e.AttackProgress*math.Pi) * 4)
		}
		vector.DrawFilledCircle(screen, x, y, r, c, true)

		if e.SlowTimer > 0 {
			vector.StrokeCircle(screen, x, y, r+2, 1, colorSlowRing, true)
		}
		if e.BurnTimer > 0 {
			vector.StrokeCircle(screen, x, y, r+4, 1, colorBurnRing, true)
		}

		if e.Alive() && e.HP < e.MaxHP {
			drawBar(screen, x-r, y-r-6, 2*r, 3, e.HP/e.MaxHP, colorEnemyHP)
		}
	}
}

func (b *Battle) drawProjectiles(screen *ebiten.Image) {
	for _, p := range b.engine.World().Projectiles {
		x, y := float32(p.X), float32(p.Y)
		if p.IsStream() {
			vector.DrawFilledCircle(screen, x, y, float32(p.Radius)+2, colorStream, true)
			continue
		}

		// Tail along the velocity
		rot := p.Rotation()
		length := 10.0
		tx := x - float32(math.Cos(rot)*length)
		ty := y - float32(math.Sin(rot)*length)
		vector.StrokeLine(screen, x, y, tx, ty, 2, colorShot, true)
		vector.DrawFilledCircle(screen, x, y, float32(p.Radius)*0.6, colorShot, true)
	}
}

func (b *Battle) drawFloatingTexts(screen *ebiten.Image) {
	for _, t := range b.engine.World().FloatingTexts {
		c := fade(t.Color, t.Alpha())
		w := text.BoundString(b.face, t.Text).Dx()
		text.Draw(screen, t.Text, b.face, int(t.X)-w/2, int(t.Y), c)
	}
}

func (b *Battle) drawHUD(screen *ebiten.Image) {
	st := b.store
	hud := fmt.Sprintf("Wave %d   Time %ds   Gold %d   Lv %d (%d xp)   Units %d/%d",
		st.Wave(), b.secs, st.Gold(), st.Level(), st.XP(), st.LivingUnits(), len(st.Units()))
	text.Draw(screen, hud, b.face, 10, 20, colorHUD)

	switch st.Phase() {
	case state.PhaseShop:
		msg := fmt.Sprintf("Next wave in %.0fs", math.Ceil(st.ShopTimeRemaining()))
		text.Draw(screen, msg, b.face, b.screenW/2-60, 38, colorArming)
	case state.PhaseCombat:
		plan := b.engine.Waves().Plan()
		msg := fmt.Sprintf("Incoming %d/%d", b.engine.Waves().Spawned(), plan.Total)
		if plan.Flag != "" {
			msg += "  [" + plan.Flag + "]"
		}
		text.Draw(screen, msg, b.face, b.screenW-220, 38, colorHUD)
	}

	ebitenutil.DebugPrintAt(screen, "ESC: Pause | F5: Save report", 10, b.screenH-16)
}

func (b *Battle) drawStartOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(b.screenW), float64(b.screenH), overlay)

	msg := "LANE SIEGE\n\nPress SPACE to start"
	ebitenutil.DebugPrintAt(screen, msg, b.screenW/2-60, b.screenH/2-20)
}

func (b *Battle) drawPauseOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(b.screenW), float64(b.screenH), overlay)

	msg := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, msg, b.screenW/2-50, b.screenH/2-20)
}

func (b *Battle) drawGameOverOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{100, 0, 0, 180}
	ebitenutil.DrawRect(screen, 0, 0, float64(b.screenW), float64(b.screenH), overlay)

	msg := fmt.Sprintf("GAME OVER\n\nReached wave %d\nGold: %d\n\nPress Z to restart", b.store.Wave(), b.store.Gold())
	ebitenutil.DebugPrintAt(screen, msg, b.screenW/2-60, b.screenH/2-40)
}

// drawBar draws a background bar filled to ratio (clamped to 0-1)
func drawBar(screen *ebiten.Image, x, y, w, h float32, ratio float64, fg color.RGBA) {
	ratio = math.Max(0, math.Min(1, ratio))
	vector.DrawFilledRect(screen, x, y, w, h, colorHealthBG, false)
	vector.DrawFilledRect(screen, x, y, w*float32(ratio), h, fg, false)
}

// fade scales a color by alpha (pre-multiplied alpha)
func fade(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		uint8(float64(c.R) * alpha),
		uint8(float64(c.G) * alpha),
		uint8(float64(c.B) * alpha),
		uint8(float64(c.A) * alpha),
	}
}
