package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tiltcard/parameter"
	"github.com/lixenwraith/tiltcard/spin"
)

// CardConfig holds the card presentation options
type CardConfig struct {
	Perspective float64 // Eye distance in card widths
	ShowStatus  bool
	Hint        string
}

// DefaultCardConfig returns the stock presentation
func DefaultCardConfig() CardConfig {
	return CardConfig{
		Perspective: parameter.Perspective,
		ShowStatus:  true,
		Hint:        parameter.HintText,
	}
}

var (
	styleBackdrop = tcell.StyleDefault.Background(tcell.NewRGBColor(14, 14, 18))
	styleShadow   = tcell.StyleDefault.Background(tcell.NewRGBColor(4, 4, 6))
	styleHint     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 150, 160)).Background(tcell.NewRGBColor(14, 14, 18))
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(170, 170, 180))
	styleClose    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(14, 14, 18)).Bold(true)
)

// CardRenderer rasterizes the rotated card onto a tcell screen
// Implements spin.Renderer; all methods run on the frame loop goroutine
type CardRenderer struct {
	screen  tcell.Screen
	texture Texture
	cfg     CardConfig
	layout  Layout
	status  func() string

	pose    spin.Pose
	open    bool
	grabbed bool
	dirty   bool
}

// NewCardRenderer creates a renderer sized to the current screen
func NewCardRenderer(screen tcell.Screen, tex Texture, cfg CardConfig) *CardRenderer {
	if cfg.Perspective <= 0 {
		cfg.Perspective = parameter.Perspective
	}
	if tex == nil {
		tex = NewLabelTexture(parameter.CardTitle, parameter.CardSubtitle)
	}
	r := &CardRenderer{
		screen:  screen,
		texture: tex,
		cfg:     cfg,
	}
	w, h := screen.Size()
	r.layout = ComputeLayout(w, h, cfg.ShowStatus)
	return r
}

// Render implements spin.Renderer
func (r *CardRenderer) Render(p spin.Pose) {
	r.pose = p
	r.draw()
}

// SetOpen shows or hides the card view
func (r *CardRenderer) SetOpen(open bool) {
	r.open = open
	r.draw()
}

// SetGrabbed switches the drop shadow between idle and grabbed
func (r *CardRenderer) SetGrabbed(grabbed bool) {
	if r.grabbed == grabbed {
		return
	}
	r.grabbed = grabbed
	r.draw()
}

// SetStatus installs the status bar text provider
func (r *CardRenderer) SetStatus(fn func() string) {
	r.status = fn
}

// SetShowStatus toggles the status bar, which moves the card
func (r *CardRenderer) SetShowStatus(show bool) {
	r.cfg.ShowStatus = show
	r.Resize()
}

// ShowStatus reports whether the status bar is shown
func (r *CardRenderer) ShowStatus() bool {
	return r.cfg.ShowStatus
}

// Resize recomputes the layout from the screen size
func (r *CardRenderer) Resize() {
	w, h := r.screen.Size()
	r.layout = ComputeLayout(w, h, r.cfg.ShowStatus)
	r.draw()
}

// Redraw repaints without a pose change, used for status updates
func (r *CardRenderer) Redraw() {
	r.draw()
}

// Layout returns the current placement, used for hit testing
func (r *CardRenderer) Layout() Layout {
	return r.layout
}

// TakeDirty reports and clears whether the back buffer changed since the last call
func (r *CardRenderer) TakeDirty() bool {
	d := r.dirty
	r.dirty = false
	return d
}

func (r *CardRenderer) draw() {
	r.screen.Clear()
	r.dirty = true
	l := r.layout

	if !r.open {
		r.drawText(l.Screen.H/2, parameter.ClosedText, styleHint)
		r.drawStatus()
		return
	}

	for y := 0; y < l.HintRow; y++ {
		for x := 0; x < l.Screen.W; x++ {
			r.screen.SetContent(x, y, ' ', nil, styleBackdrop)
		}
	}

	if l.Card.Empty() {
		r.drawText(l.Screen.H/2, "terminal too small", styleHint)
		r.drawStatus()
		return
	}

	r.drawShadow()
	r.drawCard()
	for i, ch := range parameter.CloseButton {
		r.screen.SetContent(l.Close.X+i, l.Close.Y, ch, nil, styleClose)
	}
	r.drawText(l.HintRow, r.cfg.Hint, styleHint)
	r.drawStatus()
}

func (r *CardRenderer) drawShadow() {
	off := parameter.ShadowOffsetIdle
	if r.grabbed {
		off = parameter.ShadowOffsetGrabbed
	}
	c := r.layout.Card
	for y := c.Y + off; y < c.Y+c.H+off && y < r.layout.HintRow; y++ {
		for x := c.X + off*2; x < c.X+c.W+off*2 && x < r.layout.Screen.W; x++ {
			r.screen.SetContent(x, y, ' ', nil, styleShadow)
		}
	}
}

// drawCard inverse-maps every cell through the perspective onto the rotated card plane
// Unit length is the card width; rows are scaled by the cell aspect
func (r *CardRenderer) drawCard() {
	c := r.layout.Card
	basis := BasisFor(r.pose)
	scale := float64(c.W)
	halfH := float64(c.H) * parameter.CellAspect / scale / 2
	cx := float64(c.X) + float64(c.W)/2
	cy := float64(c.Y) + float64(c.H)/2

	for y := 0; y < r.layout.HintRow; y++ {
		sy := (float64(y) + 0.5 - cy) * parameter.CellAspect / scale
		for x := 0; x < r.layout.Screen.W; x++ {
			sx := (float64(x) + 0.5 - cx) / scale
			u, v, front, hit := basis.Project(sx, sy, r.cfg.Perspective)
			if !hit || math.Abs(u) > 0.5 || math.Abs(v) > halfH {
				continue
			}

			// Back face shows the same texels, seen mirrored through the card
			cell := r.texture.Sample(u+0.5, (v+halfH)/(2*halfH), c.W, c.H)
			if !front {
				cell.Fg = dim(cell.Fg, parameter.BackFaceDim)
				cell.Bg = dim(cell.Bg, parameter.BackFaceDim)
			}
			r.screen.SetContent(x, y, cell.Ch, nil, tcell.StyleDefault.Foreground(cell.Fg).Background(cell.Bg))
		}
	}
}

func (r *CardRenderer) drawStatus() {
	row := r.layout.StatusRow
	if row < 0 || r.status == nil {
		return
	}
	text := centerText(r.status(), r.layout.Screen.W)
	runes := []rune(text)
	for x := 0; x < r.layout.Screen.W; x++ {
		ch := ' '
		if x < len(runes) {
			ch = runes[x]
		}
		r.screen.SetContent(x, row, ch, nil, styleStatus)
	}
}

func (r *CardRenderer) drawText(row int, text string, style tcell.Style) {
	if row < 0 || row >= r.layout.Screen.H || text == "" {
		return
	}
	runes := []rune(text)
	start := max((r.layout.Screen.W-len(runes))/2, 0)
	for i, ch := range runes {
		if start+i >= r.layout.Screen.W {
			break
		}
		r.screen.SetContent(start+i, row, ch, nil, style)
	}
}
