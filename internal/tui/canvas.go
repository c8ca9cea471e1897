package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"globeview/internal/globe"
)

// logical is the side of the square canvas the projector targets.
const logical = 2 * globe.CenterX

type discOp struct {
	x, y, r, sw  float64
	fill, stroke globe.Color
}

// Canvas is a globe.Surface that paints discs into coloured braille cells.
// Discs drawn since the last Clear are retained so a resize can repaint them.
type Canvas struct {
	w, h   int // in cells
	buf    *brailleBuf
	ops    []discOp
	styles map[globe.Color]lipgloss.Style
}

func NewCanvas() *Canvas {
	return &Canvas{styles: map[globe.Color]lipgloss.Style{}}
}

// Resize sets the cell area and repaints the retained discs into it.
func (c *Canvas) Resize(w, h int) {
	if w == c.w && h == c.h && c.buf != nil {
		return
	}
	c.w, c.h = max(1, w), max(1, h)
	c.buf = newBrailleBuf(c.w, c.h)
	for _, op := range c.ops {
		c.paint(op)
	}
}

func (c *Canvas) Clear() {
	c.ops = c.ops[:0]
	if c.buf != nil {
		c.buf.reset()
	}
}

func (c *Canvas) DrawDisc(x, y, radius float64, fill globe.Color, strokeWidth float64, stroke globe.Color) {
	op := discOp{x: x, y: y, r: radius, sw: strokeWidth, fill: fill, stroke: stroke}
	c.ops = append(c.ops, op)
	c.paint(op)
}

// Len reports how many discs have been drawn since the last Clear.
func (c *Canvas) Len() int { return len(c.ops) }

// toMicro fits the logical square into the micro-pixel grid, centred.
func (c *Canvas) toMicro(x, y float64) (mx, my int, scale float64) {
	wMic, hMic := c.w*2, c.h*4
	side := min(wMic, hMic)
	scale = float64(side) / logical
	mx = (wMic-side)/2 + int(x*scale)
	my = (hMic-side)/2 + int(y*scale)
	return mx, my, scale
}

func (c *Canvas) paint(op discOp) {
	if c.buf == nil {
		return
	}
	mx, my, s := c.toMicro(op.x, op.y)
	r := op.r * s
	if !op.fill.Transparent() {
		c.buf.disc(mx, my, r, op.fill)
	}
	// outlines on tiny filled discs would hide the fill
	if op.sw > 0 && !op.stroke.Transparent() && (op.fill.Transparent() || r >= 2) {
		c.buf.ring(mx, my, r, op.stroke)
	}
}

func (c *Canvas) style(col globe.Color) lipgloss.Style {
	st, ok := c.styles[col]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)))
		c.styles[col] = st
	}
	return st
}

func (c *Canvas) View() string {
	if c.buf == nil {
		return ""
	}
	return strings.Join(c.buf.toLines(func(col globe.Color, s string) string {
		return c.style(col).Render(s)
	}), "\n")
}
