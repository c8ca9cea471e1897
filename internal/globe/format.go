package globe

import (
	"fmt"
	"math"
)

// poleTolerance is how close to ±90 a latitude must be to count as a pole.
const poleTolerance = 0.001

// Coordinates is the human-readable position under the view centre.
type Coordinates struct {
	Lat     float64
	Lon     float64
	LatText string
	LonText string
	LatDMS  string
	LonDMS  string
}

// Format converts cumulative pitch and yaw into latitude and longitude.
// Pitch past a pole reflects back and shifts longitude by 180.
func Format(pitch, yaw float64) Coordinates {
	lat, offset := reflectLat(pitch)
	lat = round3(lat)
	lon := round3(wrap(yaw+offset, 180))
	if lon == 180 {
		lon = -180
	}
	if atPole(lat) {
		lon = 0
	}
	// drop negative zero so "-0.000" never shows
	if lat == 0 {
		lat = 0
	}
	if lon == 0 {
		lon = 0
	}

	return Coordinates{
		Lat:     lat,
		Lon:     lon,
		LatText: fmt.Sprintf("%.3f", lat),
		LonText: fmt.Sprintf("%.3f", lon),
		LatDMS:  DMS(lat, true),
		LonDMS:  DMS(lon, false),
	}
}

// DMS renders a decimal angle as degrees, minutes and seconds with a hemisphere.
func DMS(v float64, latitude bool) string {
	abs := math.Abs(v)
	deg := math.Floor(abs)
	minF := (abs - deg) * 60
	mins := math.Floor(minF)
	sec := roundHalfUp((minF - mins) * 60)

	dir := "E"
	switch {
	case latitude && v >= 0:
		dir = "N"
	case latitude:
		dir = "S"
	case v < 0:
		dir = "W"
	}
	return fmt.Sprintf("(%d° %d' %d\" %s)", int(deg), int(mins), int(sec), dir)
}

// reflectLat reduces v into [-90, 90]; values over the top are mirrored and
// the returned longitude offset is 180.
func reflectLat(v float64) (lat, lonOffset float64) {
	lat = wrap(v, 90)
	if lat > 90 {
		return 180 - lat, 180
	}
	return lat, 0
}

// wrap reduces v into [-shift, 360-shift).
func wrap(v, shift float64) float64 {
	return math.Mod(math.Mod(v+shift, 360)+360, 360) - shift
}

func atPole(lat float64) bool {
	return math.Abs(lat-90) < poleTolerance || math.Abs(lat+90) < poleTolerance
}

func round3(v float64) float64 { return roundHalfUp(v*1000) / 1000 }

// roundHalfUp rounds .5 towards +Inf, unlike math.Round.
func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }
