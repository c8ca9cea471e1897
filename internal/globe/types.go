package globe

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Group tags a point with its rendering policy.
type Group int

const (
	GroupTerrain   Group = 1 // land and sea
	GroupGraticule Group = 2 // latitude rings and poles
	GroupPlace     Group = 3 // bookmarked places
)

// NeutralIndex is the palette slot used to outline non-terrain groups.
const NeutralIndex = 6

// Point is one input sample on (roughly) the unit sphere.
type Point struct {
	Group Group
	X     float64
	Y     float64
	Z     float64
	Color int
}

// Color is an 8-bit RGB colour with straight alpha.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// ParseRGB parses the "r,g,b" triples used by the point datasets.
func ParseRGB(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("rgb %q: want 3 components", s)
	}
	var c [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("rgb %q: %w", s, err)
		}
		c[i] = uint8(v)
	}
	return RGB(c[0], c[1], c[2]), nil
}

// Triple formats the colour the way datasets store it.
func (c Color) Triple() string { return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B) }

func (c Color) String() string {
	if c.A == 255 {
		return "rgb(" + c.Triple() + ")"
	}
	return fmt.Sprintf("rgba(%s,%s)", c.Triple(), strconv.FormatFloat(float64(c.A)/255, 'f', 2, 64))
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Transparent reports whether drawing the colour is a no-op.
func (c Color) Transparent() bool { return c.A == 0 }

// Swatch is one named palette entry.
type Swatch struct {
	Name  string
	Color Color
}

// Palette maps a point's colour index to a drawable colour.
type Palette []Swatch

// At returns the colour at index i, or the zero colour when i is out of range.
func (p Palette) At(i int) Color {
	if i < 0 || i >= len(p) {
		return Color{}
	}
	return p[i].Color
}

// Index returns the position of the named swatch or -1.
func (p Palette) Index(name string) int {
	for i, s := range p {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// GroupName labels a group number inside a dataset.
type GroupName struct {
	Group Group
	Name  string
}

// Dataset is the loaded point payload.
type Dataset struct {
	Palette Palette
	Groups  []GroupName
	Points  []Point
}

// Bookmark is a named place. It is drawn as a point and listed for jumping.
type Bookmark struct {
	Place     string  `json:"place"`
	Latitude  string  `json:"latitude"`
	Longitude string  `json:"longitude"`
	Note      string  `json:"note"`
	JumpLat   float64 `json:"jump_lat"`
	JumpLon   float64 `json:"jump_lon"`
	Group     Group   `json:"group"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Color     int     `json:"color"`
}

// Point returns the bookmark as a renderable point.
func (b Bookmark) Point() Point {
	return Point{Group: b.Group, X: b.X, Y: b.Y, Z: b.Z, Color: b.Color}
}

// Scene is everything the projector needs for one globe.
type Scene struct {
	Points    []Point
	Palette   Palette
	Bookmarks []Bookmark
}

// NewScene folds the bookmarks into the dataset points, bookmarks last.
func NewScene(ds Dataset, bookmarks []Bookmark) Scene {
	pts := make([]Point, 0, len(ds.Points)+len(bookmarks))
	pts = append(pts, ds.Points...)
	for _, b := range bookmarks {
		pts = append(pts, b.Point())
	}
	return Scene{Points: pts, Palette: ds.Palette, Bookmarks: bookmarks}
}

// Drawable is a projected disc ready for a Surface.
type Drawable struct {
	X, Y        float64 // screen space
	Radius      float64
	StrokeWidth float64
	Fill        Color
	Stroke      Color
	RotY, RotZ  float64 // rolled view-plane coordinates
	Group       Group
}

// Orientation is the cumulative view state.
type Orientation struct {
	Pitch      float64
	Yaw        float64
	Rotation   float64
	UpsideDown bool
}

// Surface is the drawing primitive a host provides.
type Surface interface {
	Clear()
	DrawDisc(x, y, radius float64, fill Color, strokeWidth float64, stroke Color)
}

// Display receives the formatted coordinates after every visible update.
type Display interface {
	ShowCoordinates(c Coordinates)
}

// ErrInvalidInput is returned for jump targets that are not numbers.
var ErrInvalidInput = errors.New("invalid (non-numeric) input")
