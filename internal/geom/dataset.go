package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"globeview/internal/globe"
)

// LoadDataset reads a points payload: [palette, groups, points] where palette
// entries are [index, name, "r,g,b"], groups are [number, name] and points are
// [group, x, y, z, colorIndex].
func LoadDataset(path string) (globe.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return globe.Dataset{}, err
	}
	defer f.Close()
	ds, err := DecodeDataset(f)
	if err != nil {
		return globe.Dataset{}, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

func DecodeDataset(r io.Reader) (globe.Dataset, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return globe.Dataset{}, err
	}
	if len(raw) < 3 {
		return globe.Dataset{}, errors.New("want [palette, groups, points]")
	}

	var colors [][3]any
	if err := json.Unmarshal(raw[0], &colors); err != nil {
		return globe.Dataset{}, fmt.Errorf("palette: %w", err)
	}
	var ds globe.Dataset
	for _, c := range colors {
		idx, ok1 := index(c[0])
		name, ok2 := c[1].(string)
		rgb, ok3 := c[2].(string)
		if !ok1 || !ok2 || !ok3 {
			return globe.Dataset{}, fmt.Errorf("palette entry %v", c)
		}
		col, err := globe.ParseRGB(rgb)
		if err != nil {
			return globe.Dataset{}, fmt.Errorf("palette: %w", err)
		}
		for len(ds.Palette) <= idx {
			ds.Palette = append(ds.Palette, globe.Swatch{})
		}
		ds.Palette[idx] = globe.Swatch{Name: name, Color: col}
	}

	var groups [][2]any
	if err := json.Unmarshal(raw[1], &groups); err != nil {
		return globe.Dataset{}, fmt.Errorf("groups: %w", err)
	}
	for _, g := range groups {
		num, ok1 := index(g[0])
		name, ok2 := g[1].(string)
		if !ok1 || !ok2 {
			return globe.Dataset{}, fmt.Errorf("group entry %v", g)
		}
		ds.Groups = append(ds.Groups, globe.GroupName{Group: globe.Group(num), Name: name})
	}

	var pts [][5]float64
	if err := json.Unmarshal(raw[2], &pts); err != nil {
		return globe.Dataset{}, fmt.Errorf("points: %w", err)
	}
	ds.Points = make([]globe.Point, len(pts))
	for i, p := range pts {
		if _, ok := index(p[0]); !ok {
			return globe.Dataset{}, fmt.Errorf("point %d: group %v", i, p[0])
		}
		if _, ok := index(p[4]); !ok {
			return globe.Dataset{}, fmt.Errorf("point %d: color %v", i, p[4])
		}
		ds.Points[i] = globe.Point{Group: globe.Group(p[0]), X: p[1], Y: p[2], Z: p[3], Color: int(p[4])}
	}
	if len(ds.Points) == 0 {
		return globe.Dataset{}, errors.New("no points")
	}
	return ds, nil
}

// index accepts a non-negative whole JSON number.
func index(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// WriteDataset encodes ds in the layout LoadDataset reads.
func WriteDataset(w io.Writer, ds globe.Dataset) error {
	colors := make([][3]any, len(ds.Palette))
	for i, s := range ds.Palette {
		colors[i] = [3]any{i, s.Name, s.Color.Triple()}
	}
	groups := make([][2]any, len(ds.Groups))
	for i, g := range ds.Groups {
		groups[i] = [2]any{int(g.Group), g.Name}
	}
	pts := make([][5]float64, len(ds.Points))
	for i, p := range ds.Points {
		pts[i] = [5]float64{float64(p.Group), p.X, p.Y, p.Z, float64(p.Color)}
	}
	return json.NewEncoder(w).Encode([]any{colors, groups, pts})
}

// LoadBookmarks reads an array of bookmark records.
func LoadBookmarks(path string) ([]globe.Bookmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bms []globe.Bookmark
	if err := json.Unmarshal(data, &bms); err != nil {
		return nil, fmt.Errorf("bookmarks %s: %w", path, err)
	}
	return bms, nil
}

// WriteBookmarks encodes bookmarks as indented JSON.
func WriteBookmarks(w io.Writer, bms []globe.Bookmark) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if bms == nil {
		bms = []globe.Bookmark{}
	}
	return enc.Encode(bms)
}

// IsBookmarks sniffs whether a JSON file holds bookmark records rather than a
// points payload.
func IsBookmarks(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var probe []map[string]any
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	if len(probe) == 0 {
		return true
	}
	_, ok := probe[0]["place"]
	return ok
}
