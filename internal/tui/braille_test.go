package tui

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"

	"globeview/internal/globe"
)

var (
	red  = globe.RGB(255, 0, 0)
	blue = globe.RGB(0, 0, 255)
)

func lit(b *brailleBuf) int {
	n := 0
	for _, row := range b.m {
		for _, mask := range row {
			n += bits.OnesCount8(mask)
		}
	}
	return n
}

func TestBraille_SetPixel(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.setPixel(0, 0, red)
	b.setPixel(1, 3, red)
	b.setPixel(3, 0, blue)
	b.setPixel(4, 0, blue)
	b.setPixel(-1, 0, blue)
	b.setPixel(0, 4, blue)

	assert.Equal(t, uint8(0x81), b.m[0][0])
	assert.Equal(t, uint8(0x08), b.m[0][1])
	assert.Equal(t, red, b.c[0][0])
	assert.Equal(t, blue, b.c[0][1])
}

func TestBraille_ToLinesGroupsRuns(t *testing.T) {
	b := newBrailleBuf(4, 1)
	b.setPixel(2, 0, red)
	b.setPixel(4, 0, red)
	paint := func(c globe.Color, s string) string { return fmt.Sprintf("[%s|%s]", c.Triple(), s) }

	assert.Equal(t, []string{" [255,0,0|⠁⠁] "}, b.toLines(paint))

	b.reset()
	assert.Equal(t, []string{"    "}, b.toLines(paint))
	assert.Zero(t, lit(b))
}

func TestBraille_Disc(t *testing.T) {
	b := newBrailleBuf(8, 4)
	b.disc(4, 4, 0.2, red)
	assert.Equal(t, 1, lit(b), "a sub-pixel disc still shows its centre")

	b.reset()
	b.disc(4, 4, 1, red)
	assert.Equal(t, 5, lit(b))
}

func TestBraille_Ring(t *testing.T) {
	b := newBrailleBuf(8, 4)
	b.ring(8, 8, 3, red)

	assert.Greater(t, lit(b), 8)
	assert.Zero(t, b.m[2][4]&dots[0][0], "centre stays empty")
}
