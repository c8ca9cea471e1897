package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"globeview/internal/globe"
)

// refreshPlaces rebuilds the places table from the current bookmarks.
func (m *Model) refreshPlaces() {
	bms := m.bookmarks
	if len(bms) == 0 {
		m.mode = modeGlobe
		m.status = "no places for current dataset"
		return
	}
	titles := []string{"Place", "Latitude", "Longitude", "Note"}
	widths := make([]int, len(titles))
	for i, t := range titles {
		widths[i] = len(t) + 2
	}
	rows := make([]table.Row, 0, len(bms))
	maxColW := 24
	for i, b := range bms {
		row := table.Row{fmt.Sprintf("%d", i+1), b.Place, b.Latitude, b.Longitude, b.Note}
		for j, v := range row[1:] {
			widths[j] = min(maxColW, max(widths[j], len([]rune(v))+2))
		}
		rows = append(rows, row)
	}
	cols := []table.Column{{Title: "#", Width: 4}}
	for i, t := range titles {
		cols = append(cols, table.Column{Title: t, Width: widths[i]})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	m.tbl.SetCursor(0)
}

func (m Model) selectedPlace() (globe.Bookmark, bool) {
	i := m.tbl.Cursor()
	if i < 0 || i >= len(m.bookmarks) {
		return globe.Bookmark{}, false
	}
	return m.bookmarks[i], true
}

func (m Model) placesWidth() int {
	w := 0
	for _, c := range m.tbl.Columns() {
		w += c.Width + 3
	}
	return w
}
