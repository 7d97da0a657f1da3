package show

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/hypewave/internal/core"
	"github.com/vovakirdan/hypewave/internal/crowd"
)

// Visual characters for rendering
const (
	StageChar  = '▒'
	MoshChar   = '*'
	HumanChar  = '@'
	EmptyChar  = '·'
	PilotChars = "123456789"
)

// bounceRunes go from standing still to full jump.
var bounceRunes = []rune{'.', ':', 'o', 'O', '8'}

// arrowRunes are indexed by octant, starting east and turning clockwise
// in screen space (y grows down).
var arrowRunes = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// viewport maps screen cells onto the field. Terminal cells are about
// twice as tall as wide, so one field unit spans two columns.
type viewport struct {
	x0, y0 int
	w, h   int
	size   float64
}

func newViewport(screenW, screenH, fieldSize int) viewport {
	h := max(screenH-2, 1) // HUD above, hint line below
	w := min(screenW, 2*h)
	return viewport{
		x0:   (screenW - w) / 2,
		y0:   1,
		w:    w,
		h:    h,
		size: float64(fieldSize),
	}
}

// toField returns the field point at the centre of screen cell (sx, sy).
func (v viewport) toField(sx, sy int) crowd.Vec {
	fx := (float64(sx-v.x0) + 0.5) * v.size / float64(v.w)
	fy := (float64(sy-v.y0) + 0.5) * v.size / float64(v.h)
	return crowd.V(fx, fy)
}

// toScreen returns the screen cell showing field point p.
func (v viewport) toScreen(p crowd.Vec) (int, int) {
	sx := v.x0 + int(math.Floor(p.X*float64(v.w)/v.size))
	sy := v.y0 + int(math.Floor(p.Y*float64(v.h)/v.size))
	return sx, sy
}

// Render draws the current show state to the screen.
func (s *Show) Render(dst *core.Screen) {
	dst.Clear()
	if s.sim == nil {
		return
	}

	vp := newViewport(dst.Width(), dst.Height(), s.sim.Size())
	maxHype := s.sim.Config().MaxHype

	for sy := vp.y0; sy < vp.y0+vp.h; sy++ {
		for sx := vp.x0; sx < vp.x0+vp.w; sx++ {
			p := vp.toField(sx, sy)
			if s.sim.OnStage(p) {
				dst.SetColor(sx, sy, StageChar, core.ColorMagenta)
				continue
			}
			if s.layer == LayerMove {
				s.drawMove(dst, sx, sy, p)
				continue
			}
			s.drawHype(dst, sx, sy, p, maxHype)
		}
	}

	for i, p := range s.performers {
		if !p.Alive() {
			continue
		}
		sx, sy := vp.toScreen(p.FieldPos())
		if i == 0 && s.opts.Human {
			dst.SetColor(sx, sy, HumanChar, core.ColorBrightYellow)
			continue
		}
		ch := rune(PilotChars[i%len(PilotChars)])
		dst.SetColor(sx, sy, ch, core.ColorBrightCyan)
	}

	s.drawHUD(dst)

	if s.paused {
		s.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if s.gameOver {
		s.drawCenteredMessage(dst, "SHOW OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.Score()))
	}
}

// drawHype paints hype as heat and the member's bounce as the glyph.
func (s *Show) drawHype(dst *core.Screen, sx, sy int, p crowd.Vec, maxHype float64) {
	level := r2.Norm(s.sim.HypeField().Sample(p)) / maxHype
	cx, cy := int(p.X), int(p.Y)

	if s.audience.Moshing(cx, cy) {
		dst.SetColor(sx, sy, MoshChar, core.ColorBrightRed)
		return
	}
	pose, ok := s.audience.PoseAt(cx, cy)
	if !ok {
		dst.SetColor(sx, sy, ' ', core.ColorDefault)
		return
	}
	bounce := s.cfg.Audience.BounceScale * (1 + s.cfg.Audience.HypeBoost)
	i := int(pose.Height / bounce * float64(len(bounceRunes)-1))
	i = core.Clamp(i, 0, len(bounceRunes)-1)
	dst.SetColor(sx, sy, bounceRunes[i], core.Heat(level))
}

// drawMove paints the movement field as arrows.
func (s *Show) drawMove(dst *core.Screen, sx, sy int, p crowd.Vec) {
	m := s.sim.MoveField().Sample(p)
	mag := r2.Norm(m)
	if mag < 0.05 {
		dst.SetColor(sx, sy, EmptyChar, core.ColorGray)
		return
	}
	angle := math.Atan2(m.Y, m.X)
	octant := int(math.Round(angle/(math.Pi/4))+8) % 8
	dst.SetColor(sx, sy, arrowRunes[octant], core.Heat(mag/s.cfg.Performer.WaveSize))
}

func (s *Show) drawHUD(dst *core.Screen) {
	st := s.State()
	hud := fmt.Sprintf(" %s  Score: %d  Lives: %d  Pits: %d  Layer: %s  T: %.1fs ",
		s.opts.Venue.Name, st.Score, st.Lives, len(s.sim.Pits()), s.layer, s.sim.Now())
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)

	hint := " arrows/WASD move  space wave  tab layer  p pause  r restart  q quit "
	if !s.opts.Human {
		hint = " tab layer  p pause  r restart  q quit "
	}
	dst.DrawTextColor(0, dst.Height()-1, hint, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (s *Show) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorWhite)
}
