package geom

import (
	"encoding/json"
	"errors"
	"os"
)

// LoadPlacesGeoJSON reads named places from Point features. The name comes
// from the "name" or "place" property, the note from "note" or "description".
// A MultiPoint feature yields one place per position, all sharing the name.
func LoadPlacesGeoJSON(path string) ([]Place, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	t, _ := raw["type"].(string)
	if t == "" {
		return nil, errors.New("invalid geojson: missing type")
	}

	parsePoint := func(v any) (LatLon, bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			lon, lok := a[0].(float64)
			lat, aok := a[1].(float64)
			if lok && aok {
				return LatLon{Lat: lat, Lon: lon}, true
			}
		}
		return LatLon{}, false
	}
	prop := func(props map[string]any, keys ...string) string {
		for _, k := range keys {
			if s, ok := props[k].(string); ok && s != "" {
				return s
			}
		}
		return ""
	}

	var out []Place
	walk := func(g map[string]any, props map[string]any) {
		name := prop(props, "name", "place", "title")
		note := prop(props, "note", "description")
		gt, _ := g["type"].(string)
		switch gt {
		case "Point":
			if ll, ok := parsePoint(g["coordinates"]); ok {
				out = append(out, Place{Name: name, LatLon: ll, Note: note})
			}
		case "MultiPoint":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, el := range arr {
					if ll, ok := parsePoint(el); ok {
						out = append(out, Place{Name: name, LatLon: ll, Note: note})
					}
				}
			}
		}
	}
	feature := func(v any) {
		fm, _ := v.(map[string]any)
		g, ok := fm["geometry"].(map[string]any)
		if !ok {
			return
		}
		props, _ := fm["properties"].(map[string]any)
		walk(g, props)
	}

	switch t {
	case "Feature":
		feature(raw)
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				feature(f)
			}
		}
	default:
		walk(raw, nil)
	}
	if len(out) == 0 {
		return nil, errors.New("no points found in geojson")
	}
	return out, nil
}
