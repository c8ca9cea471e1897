package tui

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globeview/internal/earth"
	"globeview/internal/geom"
	"globeview/internal/globe"
)

func testDataset() globe.Dataset {
	return globe.Dataset{Palette: earth.Palette, Groups: earth.Groups, Points: earth.Graticule()}
}

func testPlaces() []globe.Bookmark {
	return []globe.Bookmark{
		earth.Bookmark(geom.Place{Name: "Alpha", LatLon: geom.LatLon{Lat: 10, Lon: 20}}),
		earth.Bookmark(geom.Place{Name: "Beta", LatLon: geom.LatLon{Lat: -30, Lon: 40}, Note: "south"}),
	}
}

func newTestModel(t *testing.T, bms []globe.Bookmark) Model {
	t.Helper()
	m := New(Options{Dataset: testDataset(), Bookmarks: bms, Dir: t.TempDir()})
	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	drain(&m)
	return m
}

func send(m Model, msg tea.Msg) Model {
	nm, _ := m.Update(msg)
	return nm.(Model)
}

// drain fires every queued continuation in order.
func drain(m *Model) {
	for len(m.sched.tasks) > 0 {
		ids := make([]uint64, 0, len(m.sched.tasks))
		for id := range m.sched.tasks {
			ids = append(ids, id)
		}
		m.sched.fire(slices.Min(ids))
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_OpeningTransition(t *testing.T) {
	m := New(Options{Dataset: testDataset(), Dir: t.TempDir()})
	assert.NotNil(t, m.Init(), "middle-out reveal schedules its batches")
	assert.Equal(t, "0.000", m.hud.c.LatText)

	drain(&m)
	ds := globe.Project(m.nav.Scene().Points, earth.Palette, 0, 0, 0)
	assert.Equal(t, len(ds)+1, m.canvas.Len())
}

func TestUpdate_NavigationKeys(t *testing.T) {
	tests := []struct {
		key  string
		want globe.Orientation
	}{
		{"up", globe.Orientation{Pitch: 45}},
		{"w", globe.Orientation{Pitch: 45}},
		{"W", globe.Orientation{Pitch: 90, UpsideDown: true}},
		{"s", globe.Orientation{Pitch: -45}},
		{"d", globe.Orientation{Yaw: 45}},
		{"A", globe.Orientation{Yaw: -90}},
		{"[", globe.Orientation{Rotation: 90}},
		{"]", globe.Orientation{Rotation: -90}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := newTestModel(t, nil)
			m = send(m, key(tt.key))
			assert.Equal(t, tt.want, m.nav.Orientation())
		})
	}
}

func TestUpdate_KeyAfterPoleEscapeIsApplied(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, key("W"))
	m = send(m, key("d"))
	escaped := m.nav.Orientation()
	assert.Equal(t, -90.0, escaped.Rotation)
	assert.False(t, m.nav.Locked())

	m = send(m, key("d"))
	assert.NotEqual(t, escaped, m.nav.Orientation())
	assert.False(t, m.statusErr)
}

func TestUpdate_FireMsgContinuesTransition(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, key("d"))
	require.NotZero(t, m.sched.Pending())

	before := m.canvas.Len()
	ids := make([]uint64, 0)
	for id := range m.sched.tasks {
		ids = append(ids, id)
	}
	m = send(m, fireMsg{id: slices.Min(ids)})
	assert.Greater(t, m.canvas.Len(), before)
}

func TestUpdate_Jump(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, key("j"))
	require.Equal(t, modeJump, m.mode)

	m.jump.inputs[0].SetValue("12.5")
	m.jump.inputs[1].SetValue("-40")
	m = send(m, key("enter"))

	assert.Equal(t, modeGlobe, m.mode)
	assert.False(t, m.statusErr)
	assert.Equal(t, globe.Orientation{Pitch: 12.5, Yaw: -40}, m.nav.Orientation())
	assert.Equal(t, "12.500", m.hud.c.LatText)
}

func TestUpdate_JumpInvalid(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, key("j"))
	m.jump.inputs[0].SetValue("abc")
	m = send(m, key("enter"))

	assert.Equal(t, modeJump, m.mode)
	assert.True(t, m.statusErr)
	assert.Equal(t, invalidInput, m.status)
	assert.Equal(t, globe.Orientation{}, m.nav.Orientation())
	assert.Contains(t, m.View(), invalidInput)
}

func TestUpdate_JumpClearAndToggle(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, key("j"))
	m.jump.inputs[0].SetValue("5")
	m.jump.inputs[1].SetValue("6")

	m = send(m, key("tab"))
	assert.Equal(t, 1, m.jump.focus)

	m = send(m, key("c"))
	lat, lon := m.jump.values()
	assert.Equal(t, "0", lat)
	assert.Equal(t, "0", lon)

	m = send(m, key("esc"))
	assert.Equal(t, modeGlobe, m.mode)
}

func TestUpdate_Places(t *testing.T) {
	m := newTestModel(t, testPlaces())
	m = send(m, key("p"))
	require.Equal(t, modePlaces, m.mode)
	assert.Len(t, m.tbl.Rows(), 2)

	m = send(m, key("down"))
	m = send(m, key("enter"))

	assert.Equal(t, modeGlobe, m.mode)
	assert.Equal(t, globe.Orientation{Pitch: -30, Yaw: 40}, m.nav.Orientation())
	assert.Equal(t, "jumped to Beta", m.status)
}

func TestUpdate_PlacesEmpty(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, key("p"))

	assert.Equal(t, modeGlobe, m.mode)
	assert.Equal(t, "no places for current dataset", m.status)
}

func TestHandleKey_Quit(t *testing.T) {
	m := newTestModel(t, nil)
	cmd, done := m.handleKey(key("q"))
	require.True(t, done)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestRefreshDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.kml", "a.csv", "notes.txt", "xyz_points.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	m := New(Options{Dataset: testDataset(), Dir: dir})
	var names []string
	for _, it := range m.items {
		names = append(names, it.(fileItem).title)
	}
	assert.Equal(t, []string{"a.csv", "b.kml", "xyz_points.json"}, names)
}

func TestLoadPath(t *testing.T) {
	m := newTestModel(t, nil)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "places.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Place Name,Latitude,Longitude,Note\nOslo,59.91,10.75,capital\nLima,-12.05,-77.04,\n"), 0o644))
	m.loadPath(csvPath)
	assert.False(t, m.statusErr)
	require.Len(t, m.bookmarks, 2)
	assert.Equal(t, "Oslo", m.bookmarks[0].Place)
	assert.Len(t, m.nav.Scene().Bookmarks, 2)
	assert.True(t, strings.HasPrefix(m.status, "loaded: places.csv"))

	bmPath := filepath.Join(dir, "spots.json")
	f, err := os.Create(bmPath)
	require.NoError(t, err)
	require.NoError(t, geom.WriteBookmarks(f, testPlaces()[:1]))
	require.NoError(t, f.Close())
	m.loadPath(bmPath)
	require.Len(t, m.bookmarks, 1)
	assert.Equal(t, "Alpha", m.bookmarks[0].Place)

	ptsPath := filepath.Join(dir, "xyz_points.json")
	f, err = os.Create(ptsPath)
	require.NoError(t, err)
	ds := testDataset()
	ds.Points = ds.Points[:2]
	require.NoError(t, geom.WriteDataset(f, ds))
	require.NoError(t, f.Close())
	m.loadPath(ptsPath)
	assert.Len(t, m.dataset.Points, 2)
	assert.Len(t, m.nav.Scene().Points, 3)
}

func TestLoadPath_Errors(t *testing.T) {
	m := newTestModel(t, testPlaces())
	dir := t.TempDir()

	m.loadPath(filepath.Join(dir, "notes.txt"))
	assert.Equal(t, "unsupported file: .txt", m.status)

	bad := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(bad, []byte("[1,"), 0o644))
	m.loadPath(bad)
	assert.True(t, strings.HasPrefix(m.status, "load error: "))
	assert.Len(t, m.bookmarks, 2, "a failed load keeps the current scene")
}

func TestView(t *testing.T) {
	m := newTestModel(t, nil)
	v := m.View()

	assert.Contains(t, v, "globeview")
	assert.Contains(t, v, "lat 0.000")
	assert.Contains(t, v, "lon 0.000")
	assert.True(t, strings.ContainsFunc(v, isBraille))

	m = send(m, key("h"))
	assert.NotContains(t, m.View(), "q quit")
}

func TestUpdate_ResizeKeepsFrame(t *testing.T) {
	m := newTestModel(t, nil)
	n := m.canvas.Len()
	m = send(m, tea.WindowSizeMsg{Width: 60, Height: 30})

	assert.Equal(t, n, m.canvas.Len())
	assert.NotZero(t, lit(m.canvas.buf))
}
