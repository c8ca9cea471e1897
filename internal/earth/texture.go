package earth

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"

	"globeview/internal/geom"
)

// TextureColors maps the key colours of a world map texture to palette names.
var TextureColors = []struct {
	RGB  color.RGBA
	Name string
}{
	{color.RGBA{254, 254, 254, 255}, "white"},
	{color.RGBA{0, 102, 204, 255}, "blue"},
	{color.RGBA{64, 224, 208, 255}, "turquoise"},
	{color.RGBA{34, 139, 34, 255}, "green"},
	{color.RGBA{210, 180, 140, 255}, "beige"},
}

// Colorizer samples an equirectangular (plate carrée) texture.
type Colorizer struct {
	img image.Image
}

func NewColorizer(img image.Image) *Colorizer { return &Colorizer{img: img} }

// LoadTexture decodes a PNG, JPEG or TGA world map, picked by extension.
// TGA has no magic number, so the decoder is never sniffed from content.
func LoadTexture(path string) (*Colorizer, error) {
	var decode func(io.Reader) (image.Image, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		decode = png.Decode
	case ".jpg", ".jpeg":
		decode = jpeg.Decode
	case ".tga":
		decode = tga.Decode
	default:
		return nil, fmt.Errorf("texture: unknown extension: %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	defer f.Close()
	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return NewColorizer(img), nil
}

func (c *Colorizer) pixel(lat, lon float64) (int, int) {
	b := c.img.Bounds()
	w, h := b.Dx(), b.Dy()
	x := int((lon + 180) * (float64(w) / 360))
	y := int((90 - lat) * (float64(h) / 180))
	x = ((x % w) + w) % w
	y = max(0, min(y, h-1))
	return b.Min.X + x, b.Min.Y + y
}

// At names the palette colour under lat/lon. Unknown texture colours snap to
// the nearest key colour; white away from the poles reads as beige.
func (c *Colorizer) At(lat, lon float64) string {
	r, g, b, _ := c.img.At(c.pixel(lat, lon)).RGBA()
	px := [3]float64{float64(r >> 8), float64(g >> 8), float64(b >> 8)}

	name := ""
	best := math.Inf(1)
	for _, tc := range TextureColors {
		dr, dg, db := px[0]-float64(tc.RGB.R), px[1]-float64(tc.RGB.G), px[2]-float64(tc.RGB.B)
		if d := dr*dr + dg*dg + db*db; d < best {
			best, name = d, tc.Name
		}
	}
	if name == "white" && math.Abs(lat) < 60 {
		name = "beige"
	}
	return name
}

// Colorize names a colour for every cover point.
func (c *Colorizer) Colorize(cover []geom.LatLon) []geom.Sample {
	out := make([]geom.Sample, len(cover))
	for i, p := range cover {
		out[i] = geom.Sample{LatLon: p, Color: c.At(p.Lat, p.Lon)}
	}
	return out
}
