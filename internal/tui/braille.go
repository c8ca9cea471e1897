package tui

import (
	"math"
	"strings"

	"globeview/internal/globe"
)

// dots maps a micro-pixel column and row to its braille bit.
var dots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

type brailleBuf struct {
	w, h int             // in cells
	m    [][]uint8       // per-cell 8-bit mask
	c    [][]globe.Color // last colour drawn into the cell
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]globe.Color, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]globe.Color, w)
	}
	return &brailleBuf{w: w, h: h, m: m, c: c}
}

func (b *brailleBuf) reset() {
	for y := range b.m {
		clear(b.m[y])
		clear(b.c[y])
	}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, col globe.Color) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dots[mx%2][my%4]
	b.c[cy][cx] = col
}

// disc fills every micro-pixel within r of the centre; the centre is always set.
func (b *brailleBuf) disc(mx, my int, r float64, col globe.Color) {
	b.setPixel(mx, my, col)
	ir := int(math.Ceil(r))
	for dy := -ir; dy <= ir; dy++ {
		for dx := -ir; dx <= ir; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				b.setPixel(mx+dx, my+dy, col)
			}
		}
	}
}

// ring plots the outline of a circle of radius r.
func (b *brailleBuf) ring(mx, my int, r float64, col globe.Color) {
	n := max(8, int(4*math.Pi*r))
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		b.setPixel(mx+int(math.Round(r*math.Cos(a))), my+int(math.Round(r*math.Sin(a))), col)
	}
}

// toLines renders each row, handing runs of same-coloured cells to paint.
func (b *brailleBuf) toLines(paint func(globe.Color, string) string) []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		var runCol globe.Color
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runCol.Transparent() {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(paint(runCol, string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			r, col := ' ', globe.Color{}
			if mask != 0 {
				r, col = rune(0x2800+int(mask)), b.c[y][x]
			}
			if col != runCol {
				flush()
				runCol = col
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
