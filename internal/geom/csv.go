package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCSV(f)
}

func parseCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	// spreadsheet exports often carry a BOM
	recs[0][0] = strings.TrimPrefix(recs[0][0], "\ufeff")
	return recs, nil
}

// columns finds the first header matching each wanted name set, case-insensitively.
func columns(header []string, want ...[]string) ([]int, error) {
	idx := make([]int, len(want))
	for i := range idx {
		idx[i] = -1
	}
	for i, h := range header {
		lh := strings.ToLower(strings.TrimSpace(h))
		for w, names := range want {
			if idx[w] != -1 {
				continue
			}
			for _, n := range names {
				if lh == n {
					idx[w] = i
				}
			}
		}
	}
	for w, i := range idx {
		if i == -1 {
			return nil, fmt.Errorf("csv: column %s not found", want[w][0])
		}
	}
	return idx, nil
}

var (
	latNames   = []string{"lat", "latitude", "y"}
	lonNames   = []string{"lon", "lng", "long", "longitude", "x"}
	colorNames = []string{"color", "colour"}
	placeNames = []string{"place name", "place", "name"}
	noteNames  = []string{"note", "notes", "description"}
)

func parseLatLon(row []string, iLat, iLon int) (LatLon, bool) {
	if iLat >= len(row) || iLon >= len(row) {
		return LatLon{}, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(row[iLat]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(row[iLon]), 64)
	if err1 != nil || err2 != nil {
		return LatLon{}, false
	}
	return LatLon{Lat: lat, Lon: lon}, true
}

// LoadTerrain reads coloured samples from a CSV with lat, lon and color columns.
func LoadTerrain(path string) ([]Sample, error) {
	recs, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	idx, err := columns(recs[0], latNames, lonNames, colorNames)
	if err != nil {
		return nil, err
	}
	var out []Sample
	for _, row := range recs[1:] {
		ll, ok := parseLatLon(row, idx[0], idx[1])
		if !ok || idx[2] >= len(row) {
			continue
		}
		out = append(out, Sample{LatLon: ll, Color: strings.TrimSpace(row[idx[2]])})
	}
	if len(out) == 0 {
		return nil, errors.New("csv: no valid terrain rows parsed")
	}
	return out, nil
}

// LoadCover reads header-less lat,lon pairs.
func LoadCover(path string) ([]LatLon, error) {
	recs, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	var out []LatLon
	for _, row := range recs {
		if ll, ok := parseLatLon(row, 0, 1); ok {
			out = append(out, ll)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("csv: no valid coordinates parsed")
	}
	return out, nil
}

// WriteCover writes lat,lon pairs without a header.
func WriteCover(w io.Writer, pts []LatLon) error {
	cw := csv.NewWriter(w)
	for _, p := range pts {
		if err := cw.Write([]string{
			strconv.FormatFloat(p.Lat, 'f', -1, 64),
			strconv.FormatFloat(p.Lon, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadPlaces reads named places from a CSV with place name, latitude,
// longitude and note columns.
func LoadPlaces(path string) ([]Place, error) {
	recs, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	idx, err := columns(recs[0], placeNames, latNames, lonNames)
	if err != nil {
		return nil, err
	}
	noteIdx := -1
	if n, err := columns(recs[0], noteNames); err == nil {
		noteIdx = n[0]
	}
	var out []Place
	for _, row := range recs[1:] {
		ll, ok := parseLatLon(row, idx[1], idx[2])
		if !ok || idx[0] >= len(row) {
			continue
		}
		p := Place{Name: strings.TrimSpace(row[idx[0]]), LatLon: ll}
		if noteIdx >= 0 && noteIdx < len(row) {
			p.Note = strings.TrimSpace(row[noteIdx])
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, errors.New("csv: no valid places parsed")
	}
	return out, nil
}
