package render

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Cell is one sampled terminal cell
type Cell struct {
	Ch rune
	Fg tcell.Color
	Bg tcell.Color
}

// Texture samples the card face at normalized (u,v) in [0,1], cols/rows is the unrotated card size
type Texture interface {
	Sample(u, v float64, cols, rows int) Cell
}

// Card stock palette
var (
	cardPaper  = tcell.NewRGBColor(246, 241, 230)
	cardInk    = tcell.NewRGBColor(34, 34, 40)
	cardBorder = tcell.NewRGBColor(120, 96, 64)
	cardAccent = tcell.NewRGBColor(176, 60, 48)
)

// LabelTexture is a bordered card with centered text lines
type LabelTexture struct {
	Title string
	Lines []string
}

// NewLabelTexture creates the default card face
func NewLabelTexture(title string, lines ...string) *LabelTexture {
	return &LabelTexture{Title: title, Lines: lines}
}

func (t *LabelTexture) Sample(u, v float64, cols, rows int) Cell {
	col := clampIndex(u, cols)
	row := clampIndex(v, rows)
	cell := Cell{Ch: ' ', Fg: cardInk, Bg: cardPaper}

	// Border
	top, bottom := row == 0, row == rows-1
	left, right := col == 0, col == cols-1
	switch {
	case top && left:
		return Cell{Ch: '╭', Fg: cardBorder, Bg: cardPaper}
	case top && right:
		return Cell{Ch: '╮', Fg: cardBorder, Bg: cardPaper}
	case bottom && left:
		return Cell{Ch: '╰', Fg: cardBorder, Bg: cardPaper}
	case bottom && right:
		return Cell{Ch: '╯', Fg: cardBorder, Bg: cardPaper}
	case top || bottom:
		return Cell{Ch: '─', Fg: cardBorder, Bg: cardPaper}
	case left || right:
		return Cell{Ch: '│', Fg: cardBorder, Bg: cardPaper}
	}

	// Title centered vertically, extra lines below it
	lines := append([]string{t.Title}, t.Lines...)
	first := (rows - len(lines)) / 2
	idx := row - first
	if idx < 0 || idx >= len(lines) {
		return cell
	}
	text := []rune(lines[idx])
	start := (cols - len(text)) / 2
	if i := col - start; i >= 0 && i < len(text) {
		cell.Ch = text[i]
		if idx == 0 {
			cell.Fg = cardAccent
		}
	}
	return cell
}

// ImageTexture samples a decoded image with half-block cells, two pixels per cell
type ImageTexture struct {
	img    image.Image
	bounds image.Rectangle
}

// NewImageTexture wraps a decoded image
func NewImageTexture(img image.Image) *ImageTexture {
	return &ImageTexture{img: img, bounds: img.Bounds()}
}

// LoadImageTexture decodes a PNG, JPEG or GIF file
func LoadImageTexture(path string) (*ImageTexture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s: empty image", path)
	}
	return NewImageTexture(img), nil
}

func (t *ImageTexture) Sample(u, v float64, cols, rows int) Cell {
	// Upper half-block: foreground is the top pixel, background the bottom one
	half := 0.25 / float64(max(rows, 1))
	return Cell{
		Ch: '▀',
		Fg: t.pixel(u, v-half),
		Bg: t.pixel(u, v+half),
	}
}

func (t *ImageTexture) pixel(u, v float64) tcell.Color {
	x := t.bounds.Min.X + clampIndex(u, t.bounds.Dx())
	y := t.bounds.Min.Y + clampIndex(v, t.bounds.Dy())
	r, g, b, _ := t.img.At(x, y).RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// clampIndex maps a normalized coordinate onto [0, n)
func clampIndex(f float64, n int) int {
	i := int(f * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// dim scales a color toward black
func dim(c tcell.Color, factor float64) tcell.Color {
	if c == tcell.ColorDefault {
		return c
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(
		int32(float64(r)*factor),
		int32(float64(g)*factor),
		int32(float64(b)*factor),
	)
}

// centerText pads s to width w, truncating when longer
func centerText(s string, w int) string {
	r := []rune(s)
	if len(r) >= w {
		return string(r[:max(w, 0)])
	}
	pad := (w - len(r)) / 2
	return strings.Repeat(" ", pad) + s
}
