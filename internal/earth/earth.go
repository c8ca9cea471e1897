// Package earth synthesises globe datasets: an even cover of the sphere,
// texture-sampled terrain colours, the graticule and bookmarked places.
package earth

import (
	"fmt"
	"math"

	"globeview/internal/geom"
	"globeview/internal/globe"
)

// Oblateness flattens the unit sphere towards the poles.
const Oblateness = 0.00336413942215

// Palette is the colour table every generated dataset carries. Black sits at
// globe.NeutralIndex.
var Palette = globe.Palette{
	{Name: "white", Color: globe.RGB(230, 239, 245)},
	{Name: "blue", Color: globe.RGB(131, 212, 245)},
	{Name: "beige", Color: globe.RGB(189, 173, 158)},
	{Name: "turquoise", Color: globe.RGB(94, 255, 222)},
	{Name: "green", Color: globe.RGB(52, 144, 24)},
	{Name: "red", Color: globe.RGB(143, 27, 27)},
	{Name: "black", Color: globe.RGB(7, 1, 24)},
	{Name: "gold", Color: globe.RGB(224, 190, 130)},
	{Name: "silver", Color: globe.RGB(192, 192, 192)},
}

// Groups names the point groups of a generated dataset.
var Groups = []globe.GroupName{
	{Group: globe.GroupTerrain, Name: "earth_terrain"},
	{Group: globe.GroupGraticule, Name: "earth_latitudes"},
	{Group: globe.GroupPlace, Name: "special_spots"},
}

// XYZ places a latitude/longitude on the oblate unit sphere, rounded to 7 decimals.
func XYZ(lat, lon float64) (x, y, z float64) {
	north := lat * math.Pi / 180
	east := lon * math.Pi / 180
	z = math.Sin(north)
	r := math.Cos(north) * (1 + Oblateness*(1-math.Abs(z)))
	return round(math.Cos(east)*r, 7), round(math.Sin(east)*r, 7), round(z, 7)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func colorIndex(name string) (int, error) {
	i := Palette.Index(name)
	if i < 0 {
		return 0, fmt.Errorf("earth: unknown colour %q", name)
	}
	return i, nil
}

func mustColor(name string) int {
	i, err := colorIndex(name)
	if err != nil {
		panic(err)
	}
	return i
}

type ring struct {
	lat   float64
	color string
}

var rings = []ring{
	{-66.6, "white"}, // antarctic circle
	{-23.4, "gold"},  // tropic of capricorn
	{0, "red"},       // equator
	{23.4, "gold"},   // tropic of cancer
	{66.6, "white"},  // arctic circle
}

// Graticule returns the poles and the five major latitude rings.
func Graticule() []globe.Point {
	pts := []globe.Point{
		{Group: globe.GroupGraticule, Z: 1, Color: mustColor("gold")},
		{Group: globe.GroupGraticule, Z: -1, Color: mustColor("white")},
	}
	for _, r := range rings {
		c := mustColor(r.color)
		for lon := 5; lon < 360; lon += 10 {
			x, y, z := XYZ(r.lat, float64(lon))
			pts = append(pts, globe.Point{Group: globe.GroupGraticule, X: x, Y: y, Z: z, Color: c})
		}
	}
	return pts
}

// Bookmark turns a place into a silver group-3 bookmark.
func Bookmark(p geom.Place) globe.Bookmark {
	x, y, z := XYZ(p.Lat, p.Lon)
	return globe.Bookmark{
		Place:     p.Name,
		Latitude:  hemisphere(p.Lat, "N", "S"),
		Longitude: hemisphere(p.Lon, "E", "W"),
		Note:      p.Note,
		JumpLat:   p.Lat,
		JumpLon:   p.Lon,
		Group:     globe.GroupPlace,
		X:         x,
		Y:         y,
		Z:         z,
		Color:     mustColor("silver"),
	}
}

func hemisphere(v float64, pos, neg string) string {
	dir := pos
	if v < 0 {
		dir = neg
	}
	return fmt.Sprintf("%.1f° %s", math.Abs(v), dir)
}

// Generate builds the points dataset from coloured terrain samples and the
// bookmarks from places.
func Generate(terrain []geom.Sample, places []geom.Place) (globe.Dataset, []globe.Bookmark, error) {
	ds := globe.Dataset{Palette: Palette, Groups: Groups}
	ds.Points = make([]globe.Point, 0, len(terrain)+182)
	for _, s := range terrain {
		c, err := colorIndex(s.Color)
		if err != nil {
			return globe.Dataset{}, nil, err
		}
		x, y, z := XYZ(s.Lat, s.Lon)
		ds.Points = append(ds.Points, globe.Point{Group: globe.GroupTerrain, X: x, Y: y, Z: z, Color: c})
	}
	ds.Points = append(ds.Points, Graticule()...)

	bms := make([]globe.Bookmark, len(places))
	for i, p := range places {
		bms[i] = Bookmark(p)
	}
	return ds, bms, nil
}
