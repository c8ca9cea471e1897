package earth

import (
	"math"

	"globeview/internal/geom"
)

// DefaultCover is the number of points on the equator.
const DefaultCover = 500

// CoverSphere spreads points evenly over the sphere. Rungs of latitude climb
// from the equator towards both poles, each holding about n*cos(lat) points;
// consecutive rungs are offset so points do not line up into meridians.
func CoverSphere(n int) []geom.LatLon {
	const twoPi = 2 * math.Pi
	rungs := int(math.RoundToEven(float64(n)/2)) - 1
	if rungs < 1 {
		rungs = 1
	}
	psiStep := math.Pi / 2 / float64(rungs+1)
	perRung := func(psi float64) int {
		return max(3, int(math.RoundToEven(math.Cos(psi)*float64(n))))
	}
	fold := func(a float64) float64 {
		a = floorMod(a, twoPi)
		if a > math.Pi {
			a -= twoPi
		}
		return a
	}
	shuffle := 333.4444 * twoPi / float64(rungs)

	var out []geom.LatLon
	add := func(sig, psi float64) {
		out = append(out, geom.LatLon{Lat: round(psi*180/math.Pi, 4), Lon: round(sig*180/math.Pi, 4)})
	}

	nextStart := 0.0
	for rung := 0; rung < rungs; rung++ {
		psi := psiStep * float64(rung)
		count := perRung(psi)
		half := math.Pi / float64(count)
		step := 2 * half
		start := nextStart

		nextCount := perRung(psiStep * float64(rung+1))
		offset := half
		if rung%2 == 1 {
			offset = -half
		}
		if nextCount < count {
			offset += twoPi / 7.777777
		}
		offset += step * math.RoundToEven(shuffle/step)
		nextStart = fold(start + offset)

		for i := 0; i < count; i++ {
			sig := fold(step*float64(i) + start)
			add(sig, psi)
			if rung > 0 {
				add(-sig, -psi)
			}
		}
	}
	add(0, math.Pi/2)
	add(0, -math.Pi/2)
	return out
}

func floorMod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	return r
}
