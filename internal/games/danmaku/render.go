package danmaku

import (
	"fmt"
	"math"

	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/entity"
	"github.com/vovakirdan/danmaku/internal/world"
)

// Playfield glyphs.
const (
	PlayerChar      = '▲'
	PlayerBlinkChar = '△'
	HomingChar      = '◆'
	FarChar         = '∘' // Projectile outside the player's depth slice
	LargeChar       = '●'
	MediumChar      = '•'
	SmallChar       = '·'
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

const (
	hudHeight = 1
	minWidth  = 24
	minHeight = 10
)

// field is the screen rectangle the playfield is projected into, border
// excluded.
type field struct {
	x, y, w, h int
	bounds     core.Bounds
}

// layout fits the playfield into the screen below the HUD, keeping the
// world's aspect ratio.
func layout(dst *core.Screen, bounds core.Bounds) (field, bool) {
	availW := dst.Width() - 2
	availH := dst.Height() - hudHeight - 2
	if dst.Width() < minWidth || dst.Height() < minHeight {
		return field{}, false
	}

	size := bounds.Size()
	w := int(math.Round(float64(availH) * size.X / size.Y * cellAspect))
	h := availH
	if w > availW {
		w = availW
		h = int(math.Round(float64(availW) * size.Y / size.X / cellAspect))
	}
	w = core.Clamp(w, 2, availW)
	h = core.Clamp(h, 2, availH)

	return field{
		x:      (dst.Width() - w) / 2,
		y:      hudHeight + 1 + (availH-h)/2,
		w:      w,
		h:      h,
		bounds: bounds,
	}, true
}

// project maps a world position to a screen cell.
func (f field) project(p core.Vec3) (int, int) {
	size := f.bounds.Size()
	fx := (p.X - f.bounds.Min.X) / size.X
	fy := (p.Y - f.bounds.Min.Y) / size.Y
	x := f.x + int(math.Round(fx*float64(f.w-1)))
	y := f.y + int(math.Round(fy*float64(f.h-1)))
	return x, y
}

// inside reports whether a cell lies in the playfield.
func (f field) inside(x, y int) bool {
	return x >= f.x && x < f.x+f.w && y >= f.y && y < f.y+f.h
}

// Render draws the current frame to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}
	s := g.snap

	g.renderHUD(dst)

	f, ok := layout(dst, s.Bounds)
	if !ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	dst.DrawBox(core.NewRect(f.x-1, f.y-1, f.w+2, f.h+2), core.ColorGray)

	for _, p := range s.Particles {
		g.renderParticle(dst, f, p)
	}
	for _, p := range s.Projectiles {
		g.renderProjectile(dst, f, s, p)
	}
	g.renderPlayer(dst, f, s)

	switch {
	case s.State == core.StateMenu:
		g.renderOverlay(dst, g.Title(), "Press Enter to start")
	case s.State == core.StateGameOver:
		line := fmt.Sprintf("Survived %.1fs  |  Press R to restart", s.SurvivalTime)
		if s.NewRecord {
			line = fmt.Sprintf("NEW RECORD %.1fs  |  Press R to restart", s.SurvivalTime)
		}
		g.renderOverlay(dst, "Game Over", line)
	case s.Paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the status line.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.snap
	hud := fmt.Sprintf(" %s  Time %.1fs  Best %.1fs  Lv %.2f  Bullets %d/%d",
		g.Title(), s.SurvivalTime, s.BestTime, s.Difficulty, len(s.Projectiles), s.ProjectileCap)
	dst.DrawText(0, 0, hud)

	var flags string
	if s.LowPerformance {
		flags += " LOW"
	}
	if s.DebugMode {
		flags += " DEBUG"
	}
	if g.godMode {
		flags += " INV"
	}
	if flags != "" {
		dst.DrawTextColor(dst.Width()-len(flags)-1, 0, flags, core.ColorYellow)
	}
}

func (g *Game) renderParticle(dst *core.Screen, f field, p world.ParticleView) {
	x, y := f.project(p.Pos)
	if !f.inside(x, y) {
		return
	}
	r := '.'
	switch {
	case p.Alpha > 0.66:
		r = '*'
	case p.Alpha > 0.33:
		r = '+'
	}
	dst.SetColor(x, y, r, p.Color)
}

func (g *Game) renderProjectile(dst *core.Screen, f field, s world.Snapshot, p world.ProjectileView) {
	x, y := f.project(p.Pos)
	if !f.inside(x, y) {
		return
	}

	r, c := SmallChar, p.Color
	switch {
	case p.Tracking == entity.TrackActiveHoming:
		r = HomingChar
	case p.Radius >= 8:
		r = LargeChar
	case p.Radius >= 5:
		r = MediumChar
	}

	// In the depth variant only projectiles within the collision slice can hit.
	if g.cfg.World.Depth > 0 && math.Abs(p.Pos.Z-s.Player.Pos.Z) > g.cfg.Collision.ZThreshold {
		r, c = FarChar, core.ColorGray
	}
	dst.SetColor(x, y, r, c)
}

func (g *Game) renderPlayer(dst *core.Screen, f field, s world.Snapshot) {
	if !s.Player.Alive {
		return
	}
	x, y := f.project(s.Player.Pos)
	r := PlayerChar
	if s.Player.Invincible && int(s.SurvivalTime*10)%2 == 1 {
		r = PlayerBlinkChar
	}
	dst.SetColor(x, y, r, core.ColorBrightWhite)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)

	dst.DrawTextCentered(boxY+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(boxY+3, line2, core.ColorWhite)
}
