package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/solitaire/internal/view"
)

type ink int

const (
	inkNone ink = iota
	inkBorder
	inkRed
	inkBlack
	inkBack
	inkPlaceholder
	inkRoving
)

func (i ink) style() (lipgloss.Style, bool) {
	switch i {
	case inkBorder:
		return CardBorderStyle, true
	case inkRed:
		return RedCardStyle, true
	case inkBlack:
		return BlackCardStyle, true
	case inkBack:
		return CardBackStyle, true
	case inkPlaceholder:
		return PlaceholderStyle, true
	case inkRoving:
		return RovingStyle, true
	}
	return lipgloss.Style{}, false
}

type cell struct {
	r   rune
	ink ink
}

// canvas is a grid of styled terminal cells. Writes outside the grid are
// dropped.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([][]cell, c.h)
	for y := range c.cells {
		row := make([]cell, c.w)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, r rune, i ink) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, ink: i}
}

func (c *canvas) text(x, y int, s string, i ink) {
	for _, r := range s {
		c.set(x, y, r, i)
		x++
	}
}

type boxStyle struct {
	tl, tr, bl, br, h, v rune
}

var (
	solidBox  = boxStyle{'┌', '┐', '└', '┘', '─', '│'}
	dashedBox = boxStyle{'┌', '┐', '└', '┘', '┄', '┆'}
)

// box draws the outline of b and fills its inside with fill.
func (c *canvas) box(b bounds, bs boxStyle, border ink, fill rune, fillInk ink) {
	if b.w < 2 || b.h < 2 {
		return
	}
	x2, y2 := b.x+b.w-1, b.y+b.h-1
	for x := b.x + 1; x < x2; x++ {
		c.set(x, b.y, bs.h, border)
		c.set(x, y2, bs.h, border)
	}
	for y := b.y + 1; y < y2; y++ {
		c.set(b.x, y, bs.v, border)
		c.set(x2, y, bs.v, border)
		for x := b.x + 1; x < x2; x++ {
			c.set(x, y, fill, fillInk)
		}
	}
	c.set(b.x, b.y, bs.tl, border)
	c.set(x2, b.y, bs.tr, border)
	c.set(b.x, y2, bs.bl, border)
	c.set(x2, y2, bs.br, border)
}

// String renders the canvas with runs of equal ink styled together.
func (c *canvas) String() string {
	var out strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			out.WriteByte('\n')
		}
		line := strings.TrimRightFunc(renderRow(row), func(r rune) bool { return r == ' ' })
		out.WriteString(line)
	}
	return out.String()
}

func renderRow(row []cell) string {
	var out, run strings.Builder
	current := inkNone
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if st, ok := current.style(); ok {
			out.WriteString(st.Render(run.String()))
		} else {
			out.WriteString(run.String())
		}
		run.Reset()
	}
	for _, cl := range row {
		if cl.ink != current {
			flush()
			current = cl.ink
		}
		run.WriteRune(cl.r)
	}
	flush()
	return out.String()
}

// bounds is a rectangle snapped to whole terminal cells.
type bounds struct {
	x, y, w, h int
}

func toBounds(r view.Rect) bounds {
	return bounds{
		x: int(math.Round(r.X)),
		y: int(math.Round(r.Y)),
		w: int(math.Round(r.W)),
		h: int(math.Round(r.H)),
	}
}
