// Package raster paints globe frames into images and encodes them.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"globeview/internal/globe"
)

// Logical is the side of the square canvas the projector targets.
const Logical = 720.0

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Canvas is a globe.Surface backed by an RGBA image of any square size.
type Canvas struct {
	img   *image.RGBA
	bg    image.Image
	scale float64
	z     *vector.Rasterizer
}

// New creates a size×size canvas cleared to bg.
func New(size int, bg color.Color) *Canvas {
	c := &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, size, size)),
		bg:    image.NewUniform(bg),
		scale: float64(size) / Logical,
		z:     vector.NewRasterizer(1, 1),
	}
	c.Clear()
	return c
}

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), c.bg, image.Point{}, draw.Src)
}

// DrawDisc fills a disc of radius and strokes its outline, the stroke
// centred on the edge like a 2D canvas arc.
func (c *Canvas) DrawDisc(x, y, radius float64, fill globe.Color, strokeWidth float64, stroke globe.Color) {
	if !fill.Transparent() {
		c.shape(x, y, radius, 0, fill)
	}
	if strokeWidth > 0 && !stroke.Transparent() {
		c.shape(x, y, radius+strokeWidth/2, math.Max(0, radius-strokeWidth/2), stroke)
	}
}

// shape rasterises the annulus between inner and outer radius (a disc when
// inner is 0) in a scratch mask the size of its bounding box.
func (c *Canvas) shape(x, y, outer, inner float64, col globe.Color) {
	s := c.scale
	x0, y0 := int(math.Floor((x-outer)*s)), int(math.Floor((y-outer)*s))
	x1, y1 := int(math.Ceil((x+outer)*s)), int(math.Ceil((y+outer)*s))
	r := image.Rect(x0, y0, x1, y1).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}

	c.z.Reset(r.Dx(), r.Dy())
	lx, ly := float32(x*s-float64(r.Min.X)), float32(y*s-float64(r.Min.Y))
	c.circle(lx, ly, float32(outer*s), false)
	if inner > 0 {
		c.circle(lx, ly, float32(inner*s), true)
	}
	c.z.Draw(c.img, r, image.NewUniform(col), image.Point{})
}

// circle adds a closed circle; reverse winding cuts a hole.
func (c *Canvas) circle(cx, cy, r float32, reverse bool) {
	k := r * kappa
	z := c.z
	z.MoveTo(cx+r, cy)
	if !reverse {
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	} else {
		z.CubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		z.CubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		z.CubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		z.CubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	}
	z.ClosePath()
}

// Caption writes lines of text in the top-left corner.
func (c *Canvas) Caption(fg color.Color, lines ...string) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(fg), Face: face}
	lh := face.Metrics().Height.Ceil()
	for i, l := range lines {
		d.Dot = fixed.P(8, 8+lh*(i+1))
		d.DrawString(l)
	}
}

// Format picks an encoding from a file name.
func Format(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return "png", nil
	case ".webp":
		return "webp", nil
	default:
		return "", fmt.Errorf("raster: unsupported output %q", ext)
	}
}

// Encode writes the canvas as png or webp.
func (c *Canvas) Encode(w io.Writer, format string) error {
	switch format {
	case "png":
		return png.Encode(w, c.img)
	case "webp":
		return nativewebp.Encode(w, c.img, nil)
	}
	return fmt.Errorf("raster: unsupported format %q", format)
}
