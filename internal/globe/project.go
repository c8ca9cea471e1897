package globe

import "math"

// Fixed canvas geometry.
const (
	CenterX = 360.0
	CenterY = 360.0
	Radius  = 330.0

	// cullDepth hides points at or behind the horizon.
	cullDepth = 0.0000001
)

// groupStyle sizes a disc from its squared depth d: base + scale*d.
type groupStyle struct {
	fillBase, fillScale     float64
	strokeBase, strokeScale float64
	strokeIsFill            bool
}

var groupStyles = map[Group]groupStyle{
	GroupTerrain:   {fillBase: 0.66, fillScale: 0.22, strokeBase: 0.33, strokeScale: 0.22, strokeIsFill: true},
	GroupGraticule: {fillBase: 2, fillScale: 3.777, strokeBase: 1, strokeScale: 2.777},
	GroupPlace:     {fillBase: 4, fillScale: 2},
}

var otherStyle = groupStyle{fillBase: 1, strokeBase: 0.5}

func styleFor(g Group) groupStyle {
	if s, ok := groupStyles[g]; ok {
		return s
	}
	return otherStyle
}

// Project rotates points by pitch then yaw, culls the far hemisphere, rolls
// the result on screen and maps it onto the canvas. Angles are in degrees.
func Project(points []Point, palette Palette, pitch, yaw, roll float64) []Drawable {
	rot := roll / 180 * math.Pi
	sinRot, cosRot := math.Sin(rot), math.Cos(rot)

	alpha := yaw / 180 * math.Pi
	gamma := pitch / 180 * math.Pi
	sinA, cosA := math.Sin(-alpha), math.Cos(-alpha)
	sinG, cosG := math.Sin(gamma), math.Cos(gamma)

	neutral := palette.At(NeutralIndex)
	out := make([]Drawable, 0, len(points)/2)
	for _, p := range points {
		depth := p.X*cosG*cosA - p.Y*cosG*sinA + p.Z*sinG
		if depth < cullDepth {
			continue
		}
		y := p.X*sinA + p.Y*cosA
		z := -p.X*sinG*cosA + p.Y*sinG*sinA + p.Z*cosG

		st := styleFor(p.Group)
		d2 := depth * depth
		fill := palette.At(p.Color)
		stroke := neutral
		if st.strokeIsFill {
			stroke = fill
		}

		ry := y*cosRot - z*sinRot
		rz := y*sinRot + z*cosRot
		out = append(out, Drawable{
			X:           ry*Radius + CenterX,
			Y:           -rz*Radius + CenterY,
			Radius:      st.fillBase + st.fillScale*d2,
			StrokeWidth: st.strokeBase + st.strokeScale*d2,
			Fill:        fill,
			Stroke:      stroke,
			RotY:        ry,
			RotZ:        rz,
			Group:       p.Group,
		})
	}
	return out
}
