package geom

// LatLon is a position in degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// Sample is a coloured terrain position; Color names a palette swatch.
type Sample struct {
	LatLon
	Color string
}

// Place is a named position to bookmark.
type Place struct {
	Name string
	LatLon
	Note string
}
