package tui

import (
	"fmt"
	"math"

	"github.com/Zordux/Last-Vector/internal/config"
	"github.com/Zordux/Last-Vector/internal/core"
	"github.com/Zordux/Last-Vector/internal/sim"
)

const hudRows = 2

// DrawWorld projects the arena onto the screen buffer: two HUD rows on top,
// the playfield scaled to whatever remains. Cell aspect is not corrected;
// the arena is simply stretched to the terminal.
func DrawWorld(s *core.Screen, st *sim.GameState, cfg *config.ArenaConfig) {
	s.Clear()
	drawHUD(s, st, cfg)

	fieldH := s.Height() - hudRows
	if fieldH < 4 || s.Width() < 8 {
		return
	}
	sx := float64(s.Width()) / cfg.Arena.Width
	sy := float64(fieldH) / cfg.Arena.Height

	project := func(p core.Vec2) (int, int) {
		return int(p.X * sx), hudRows + int(p.Y*sy)
	}

	for _, o := range st.Obstacles {
		x0 := int(o.X * sx)
		y0 := hudRows + int(o.Y*sy)
		w := core.Max(1, int(o.W*sx))
		h := core.Max(1, int(o.H*sy))
		s.FillRect(x0, y0, w, h, '#', core.ColorGray)
	}

	if st.Upgrades.Level(sim.UpgradeRingOfFire) > 0 {
		drawRing(s, st, cfg, sx, sy)
	}

	for i := range st.Bullets {
		x, y := project(st.Bullets[i].Pos)
		s.SetCell(x, y, '·', core.ColorBrightYellow)
	}

	for i := range st.Zombies {
		z := &st.Zombies[i]
		x, y := project(z.Pos)
		color := core.ColorRed
		if z.SlowTimer > 0 {
			color = core.ColorBrightCyan
		}
		s.SetCell(x, y, 'z', color)
	}

	px, py := project(st.Player.Pos)
	color := core.ColorBrightGreen
	if st.Player.InvulnTimer > 0 {
		color = core.ColorWhite
	}
	s.SetCell(px, py, '@', color)

	switch st.PlayState {
	case sim.StateChoosingUpgrade:
		drawUpgradeOverlay(s, st)
	case sim.StateDead:
		drawGameOverOverlay(s, st)
	}
}

func drawHUD(s *core.Screen, st *sim.GameState, cfg *config.ArenaConfig) {
	p := &st.Player
	hp := meter(p.Health, p.MaxHealth, 10)
	sta := meter(p.Stamina, p.MaxStamina, 10)

	line1 := fmt.Sprintf(" HP %s  STA %s  AMMO %d/%d+%d", hp, sta, p.Mag, p.MagCapacity, p.Reserve)
	if p.ReloadTimer > 0 {
		line1 += " [reloading]"
	}
	s.DrawTextColored(0, 0, line1, core.ColorWhite)

	line2 := fmt.Sprintf(" KILLS %d  TIME %5.1fs / %.0fs  DIFF %.2f  HORDE %d",
		st.Stats.Kills, st.EpisodeTime, cfg.Episode.LimitSeconds, st.Difficulty, len(st.Zombies))
	s.DrawTextColored(0, 1, line2, core.ColorGray)
}

// meter renders a value as a fixed-width bar like [######----].
func meter(val, max float64, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := int(val / max * float64(width))
	filled = core.Clamp(filled, 0, width)

	out := make([]rune, 0, width+2)
	out = append(out, '[')
	for i := 0; i < width; i++ {
		if i < filled {
			out = append(out, '#')
		} else {
			out = append(out, '-')
		}
	}
	return string(append(out, ']'))
}

func drawRing(s *core.Screen, st *sim.GameState, cfg *config.ArenaConfig, sx, sy float64) {
	lvl := float64(st.Upgrades.Level(sim.UpgradeRingOfFire))
	radius := 70.0 + 16.0*lvl

	// Sample the circle rather than rasterizing it; gaps are fine for a
	// terminal effect marker.
	const samples = 48
	for i := 0; i < samples; i++ {
		theta := 2 * math.Pi * float64(i) / samples
		p := core.Vec2{
			X: st.Player.Pos.X + radius*math.Cos(theta),
			Y: st.Player.Pos.Y + radius*math.Sin(theta),
		}
		if p.X < 0 || p.X >= cfg.Arena.Width || p.Y < 0 || p.Y >= cfg.Arena.Height {
			continue
		}
		x := int(p.X * sx)
		y := hudRows + int(p.Y*sy)
		if s.GetCell(x, y).Rune == ' ' {
			s.SetCell(x, y, '*', core.ColorOrange)
		}
	}
}

func drawUpgradeOverlay(s *core.Screen, st *sim.GameState) {
	w := 44
	h := 8
	x := (s.Width() - w) / 2
	y := (s.Height() - h) / 2
	if x < 0 || y < 0 {
		return
	}

	s.FillRect(x, y, w, h, ' ', core.ColorDefault)
	s.DrawFrame(x, y, w, h, core.ColorBrightYellow)
	centeredText(s, y+1, "LEVEL UP: CHOOSE AN UPGRADE", core.ColorBrightYellow)

	for i, id := range st.Offer {
		cur := st.Upgrades.Level(id)
		line := fmt.Sprintf("%d) %-16s Lv %d", i+1, id.String(), cur)
		s.DrawTextColored(x+3, y+3+i, line, core.ColorWhite)
	}
	centeredText(s, y+h-2, "press 1, 2 or 3", core.ColorGray)
}

func drawGameOverOverlay(s *core.Screen, st *sim.GameState) {
	w := 40
	h := 7
	x := (s.Width() - w) / 2
	y := (s.Height() - h) / 2
	if x < 0 || y < 0 {
		return
	}

	s.FillRect(x, y, w, h, ' ', core.ColorDefault)
	s.DrawFrame(x, y, w, h, core.ColorBrightRed)
	centeredText(s, y+1, "YOU DIED", core.ColorBrightRed)
	centeredText(s, y+3, fmt.Sprintf("kills %d   survived %.1fs", st.Stats.Kills, st.EpisodeTime), core.ColorWhite)
	centeredText(s, y+5, "n: new run   q: quit", core.ColorGray)
}

func centeredText(s *core.Screen, y int, text string, c core.Color) {
	s.DrawTextColored((s.Width()-len(text))/2, y, text, c)
}
