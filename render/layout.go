package render

import (
	"math"

	"github.com/lixenwraith/tiltcard/parameter"
)

// cardAspect is the card width over height in physical units
const cardAspect = 3.0 / 4.0

// Rect is a cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x,y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports a zero-area rect
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Layout places the unrotated card, its close button and the text rows on screen
type Layout struct {
	Screen    Rect
	Card      Rect
	Close     Rect
	HintRow   int
	StatusRow int // -1 when the status bar is hidden
}

// ComputeLayout sizes the card to fit a w x h terminal, Card is empty when it cannot fit
func ComputeLayout(w, h int, showStatus bool) Layout {
	l := Layout{
		Screen:    Rect{W: w, H: h},
		HintRow:   h - 1,
		StatusRow: -1,
	}
	reserved := 1
	if showStatus {
		l.HintRow = h - 2
		l.StatusRow = h - 1
		reserved = 2
	}

	// One row margin above and below, two columns each side
	rows := min(parameter.CardMaxRows, h-reserved-2)
	cols := int(math.Round(float64(rows) * parameter.CellAspect * cardAspect))
	if cols > w-4 {
		cols = w - 4
		rows = int(math.Round(float64(cols) / (parameter.CellAspect * cardAspect)))
	}
	if rows < parameter.CardMinRows || cols < 3 {
		return l
	}

	cx := w / 2
	cy := (h - reserved) / 2
	l.Card = Rect{X: cx - cols/2, Y: cy - rows/2, W: cols, H: rows}

	btn := len(parameter.CloseButton)
	closeY := l.Card.Y - 1
	if closeY < 0 {
		closeY = l.Card.Y
	}
	l.Close = Rect{X: l.Card.X + l.Card.W - btn, Y: closeY, W: btn, H: 1}
	return l
}
