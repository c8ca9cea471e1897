package geom

import (
	"encoding/xml"
	"errors"
	"os"
	"strconv"
	"strings"
)

// LoadPlacesKML extracts named places from Placemark > Point > coordinates.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadPlacesKML(path string) ([]Place, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Name        string    `xml:"name"`
		Description string    `xml:"description"`
		Point       *kmlPoint `xml:"Point"`
	}
	type kmlFolder struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Document>Placemark"`
		Folders    []kmlFolder    `xml:"Document>Folder"`
		Bare       []kmlPlacemark `xml:"Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	marks := append(doc.Bare, doc.Placemarks...)
	for _, f := range doc.Folders {
		marks = append(marks, f.Placemarks...)
	}

	var out []Place
	for _, pm := range marks {
		if pm.Point == nil {
			continue
		}
		// only the first tuple of a point is meaningful
		fields := strings.Fields(pm.Point.Coordinates)
		if len(fields) == 0 {
			continue
		}
		vals := strings.Split(fields[0], ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, Place{
			Name:   strings.TrimSpace(pm.Name),
			LatLon: LatLon{Lat: lat, Lon: lon},
			Note:   strings.TrimSpace(pm.Description),
		})
	}
	if len(out) == 0 {
		return nil, errors.New("kml: no points found")
	}
	return out, nil
}
