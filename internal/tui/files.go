package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"globeview/internal/earth"
	"globeview/internal/geom"
	"globeview/internal/globe"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

var supported = map[string]string{
	".json":    "points or places",
	".csv":     "places",
	".kml":     "places",
	".geojson": "places",
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if desc, ok := supported[ext]; ok {
			items = append(items, fileItem{title: name, desc: desc, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads a point set or a place list and redraws the globe.
// Point sets replace the dataset; every other format replaces the places.
func (m *Model) loadPath(p string) {
	m.selPath = p
	ext := strings.ToLower(filepath.Ext(p))
	var err error
	switch {
	case ext == ".json" && geom.IsBookmarks(p):
		var bms []globe.Bookmark
		if bms, err = geom.LoadBookmarks(p); err == nil {
			m.bookmarks = bms
		}
	case ext == ".json":
		var ds globe.Dataset
		if ds, err = geom.LoadDataset(p); err == nil {
			m.dataset = ds
		}
	case ext == ".csv" || ext == ".kml" || ext == ".geojson":
		var places []geom.Place
		if places, err = loadPlaces(p, ext); err == nil {
			m.bookmarks = make([]globe.Bookmark, 0, len(places))
			for _, pl := range places {
				m.bookmarks = append(m.bookmarks, earth.Bookmark(pl))
			}
		}
	default:
		m.status = "unsupported file: " + ext
		return
	}
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}

	m.nav.SetScene(globe.NewScene(m.dataset, m.bookmarks))
	m.status = "loaded: " + filepath.Base(p) +
		fmt.Sprintf("  counts: points=%d places=%d", len(m.dataset.Points), len(m.bookmarks))
	if m.mode == modePlaces {
		m.refreshPlaces()
	}
}

func loadPlaces(p, ext string) ([]geom.Place, error) {
	switch ext {
	case ".kml":
		return geom.LoadPlacesKML(p)
	case ".geojson":
		return geom.LoadPlacesGeoJSON(p)
	}
	return geom.LoadPlaces(p)
}
