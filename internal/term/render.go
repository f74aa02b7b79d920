package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/ugaemi/skatedog/internal/dog"
	"github.com/ugaemi/skatedog/internal/fx"
	"github.com/ugaemi/skatedog/internal/game"
	"github.com/ugaemi/skatedog/internal/trick"
)

// Cells per meter. Terminal cells are about twice as tall as wide.
const (
	cellsPerMeterX = 2.0
	cellsPerMeterY = 1.0
	leashDots      = 12
	decalDimFade   = 0.5 // decals past this much of their life draw dim
	hudRows        = 2 // status line and banner
	helpText       = "arrows/WASD move  space ollie  J flip  K grab  B board  Q quit"
)

// Canvas is the part of tcell.Screen the renderer draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
	Clear()
}

var (
	slackColor = colorful.Color{R: 0.2, G: 0.8, B: 0.2}
	midColor   = colorful.Color{R: 0.95, G: 0.85, B: 0.1}
	tautColor  = colorful.Color{R: 0.9, G: 0.15, B: 0.1}

	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBoard   = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleDog     = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleRamp    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleRail    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHydrant = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePee     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePoop    = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// TautnessColor blends green through yellow to red.
func TautnessColor(t float64) tcell.Color {
	t = mgl64.Clamp(t, 0, 1)
	var c colorful.Color
	if t < 0.5 {
		c = slackColor.BlendLab(midColor, t*2)
	} else {
		c = midColor.BlendLab(tautColor, (t-0.5)*2)
	}
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Renderer draws frames with the camera centered on the player.
type Renderer struct {
	canvas Canvas
	w, h   int
	center mgl64.Vec2
}

func NewRenderer(c Canvas) *Renderer {
	return &Renderer{canvas: c}
}

// Draw paints a whole frame. Later layers overwrite earlier ones: props,
// decals, leash, dog, board, player, then the HUD.
func (r *Renderer) Draw(f game.Frame) {
	r.canvas.Clear()
	r.w, r.h = r.canvas.Size()
	r.center = f.Player.Pos

	for _, p := range f.Props {
		r.drawProp(p)
	}
	for _, d := range f.Decals {
		r.drawDecal(d)
	}
	r.drawLeash(f.Leash)
	r.plot(f.Dog.Pos, 'd', styleDog)
	if f.PlayerMode == game.ModeOnBoard {
		r.drawBoard(f)
	}
	r.plot(f.Player.Pos, '@', stylePlayer)
	r.drawHUD(f)
}

// toScreen maps a world position to a cell. The play area sits between the
// HUD rows and the help line.
func (r *Renderer) toScreen(p mgl64.Vec2) (int, int) {
	rel := p.Sub(r.center)
	cx := r.w / 2
	cy := hudRows + (r.h-hudRows-1)/2
	return cx + int(math.Round(rel[0]*cellsPerMeterX)), cy + int(math.Round(rel[1]*cellsPerMeterY))
}

func (r *Renderer) inPlayArea(x, y int) bool {
	return x >= 0 && x < r.w && y >= hudRows && y < r.h-1
}

func (r *Renderer) plot(p mgl64.Vec2, ch rune, style tcell.Style) {
	x, y := r.toScreen(p)
	if r.inPlayArea(x, y) {
		r.canvas.SetContent(x, y, ch, nil, style)
	}
}

func (r *Renderer) drawProp(p game.Prop) {
	switch p.Kind {
	case game.PropRamp:
		r.plot(p.Pos, '/', styleRamp)
		r.plot(p.Pos.Add(mgl64.Vec2{0.5, 0}), '/', styleRamp)
	case game.PropRail:
		for x := -game.RailHalfLength; x <= game.RailHalfLength; x += 0.5 {
			r.plot(p.Pos.Add(mgl64.Vec2{x, 0}), '=', styleRail)
		}
	case game.PropHydrant:
		r.plot(p.Pos, 'h', styleHydrant)
	}
}

func (r *Renderer) drawDecal(d fx.Decal) {
	ch, style := '~', stylePee
	if d.Kind == dog.DecalPoop {
		ch, style = 'o', stylePoop
	}
	if d.Fade() < decalDimFade {
		style = style.Dim(true)
	}
	r.plot(d.Pos, ch, style)
}

func (r *Renderer) drawLeash(l game.LeashView) {
	style := tcell.StyleDefault.Foreground(TautnessColor(l.Tautness))
	for i := 1; i < leashDots; i++ {
		t := float64(i) / leashDots
		p := l.PlayerEnd.Add(l.DogEnd.Sub(l.PlayerEnd).Mul(t))
		r.plot(p, '·', style)
	}
}

// drawBoard puts the board under the player, lifted by the hop and turned
// by the spin. A grabbed board is pulled in and drawn squashed.
func (r *Renderer) drawBoard(f game.Frame) {
	pose := f.Board
	pos := f.Player.Pos.Add(mgl64.Vec2{0, 1 + pose.Offset[1]})
	ch := boardGlyph(pose.Rotation)
	if pose.Scale < 1 {
		ch = grabGlyph
	}
	r.plot(pos, ch, styleBoard)
}

const grabGlyph = '+'


// boardGlyph picks one of four line glyphs for the board's rotation.
func boardGlyph(rot float64) rune {
	glyphs := []rune{'-', '\\', '|', '/'}
	step := math.Pi / 4
	i := int(math.Round(rot/step)) % len(glyphs)
	if i < 0 {
		i += len(glyphs)
	}
	return glyphs[i]
}

func (r *Renderer) drawHUD(f game.Frame) {
	status := fmt.Sprintf(" SCORE %06d  lands %d  bails %d  dog %s %3.0f%%  %s",
		f.DisplayedScore, f.Lands, f.Bails, f.DogState, f.DogMood*100, f.PlayerMode)
	if f.Air == trick.Airborne {
		status += fmt.Sprintf("  AIR %.1fs", f.AirRemaining)
	}
	if f.FlipName != "" {
		status += "  " + f.FlipName
	}
	if f.GrabName != "" {
		status += "  " + f.GrabName
	}
	if f.Grinding {
		status += "  GRIND"
	}
	r.text(0, 0, padRight(status, r.w), styleHUD)

	if f.Banner != "" {
		x := (r.w - runewidth.StringWidth(f.Banner)) / 2
		r.text(max(x, 0), 1, f.Banner, styleBanner)
	}
	r.text(0, r.h-1, helpText, styleHelp)
}

// text writes s from x, clipped to the screen width.
func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	if y < 0 || y >= r.h {
		return
	}
	s = runewidth.Truncate(s, r.w-x, "")
	for _, ch := range s {
		if x >= r.w {
			return
		}
		r.canvas.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
