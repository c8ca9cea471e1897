package globe

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// maxAngle bounds every cumulative angle.
const maxAngle = 999999999

// Navigator owns the view orientation and turns navigation commands into
// state updates and renders. It is not safe for concurrent use; hosts call it
// from a single event loop.
type Navigator struct {
	scene   Scene
	engine  *Engine
	display Display
	logger  *slog.Logger

	o      Orientation
	locked bool // compound move in progress
}

func NewNavigator(scene Scene, engine *Engine) *Navigator {
	return &Navigator{
		scene:  scene,
		engine: engine,
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithDisplay sets the receiver of coordinate text.
func (n *Navigator) WithDisplay(d Display) *Navigator {
	n.display = d
	return n
}

// WithLogger sets the debug logger.
func (n *Navigator) WithLogger(l *slog.Logger) *Navigator {
	if l != nil {
		n.logger = l
	}
	return n
}

// Initialize shows the starting coordinates and draws the first frame.
func (n *Navigator) Initialize() {
	n.refresh()
	n.render(MiddleOut)
}

// SetScene replaces the globe contents and redraws from the current orientation.
func (n *Navigator) SetScene(s Scene) {
	n.scene = s
	n.Initialize()
}

func (n *Navigator) Scene() Scene             { return n.scene }
func (n *Navigator) Orientation() Orientation { return n.o }
func (n *Navigator) Locked() bool             { return n.locked }

// Coordinates formats the current orientation.
func (n *Navigator) Coordinates() Coordinates { return Format(n.o.Pitch, n.o.Yaw) }

// Navigate moves the view by screen-relative pitch and yaw deltas. Commands
// issued while a compound move runs are dropped.
func (n *Navigator) Navigate(dPitch, dYaw float64, kind Transition) {
	if n.locked {
		n.logger.Debug("navigate dropped", "pitch", dPitch, "yaw", dYaw)
		return
	}

	pitch, yaw := remap(n.o.Rotation, dPitch, dYaw)

	lat, _ := reflectLat(-n.o.Pitch)
	if atPole(round3(lat)) && yaw != 0 && pitch == 0 {
		n.escapePole(yaw, kind)
		return
	}
	n.update(pitch, yaw, kind)
}

// escapePole turns a yaw issued on a pole into a nudge off the pole, two yaw
// steps and a quarter roll so the view visibly moves.
func (n *Navigator) escapePole(yaw float64, kind Transition) {
	n.locked = true
	defer func() { n.locked = false }()

	n.logger.Debug("compound move", "yaw", yaw, "pitch", n.o.Pitch)
	n.update(math.Abs(yaw), 0, Silent)
	n.update(0, yaw, Silent)
	n.update(0, yaw, Silent)
	if yaw > 0 {
		n.o.Rotation = clamp(n.o.Rotation - 90)
	} else {
		n.o.Rotation = clamp(n.o.Rotation + 90)
	}
	n.refresh()
	n.render(kind)
}

// update is the state primitive: it applies pitch, flips chirality on a pole
// crossing, applies yaw and renders unless kind is Silent.
func (n *Navigator) update(pitch, yaw float64, kind Transition) {
	old := n.o.Pitch
	next := old + pitch
	if math.Floor((old-90)/180) != math.Floor((next-90)/180) {
		n.o.UpsideDown = !n.o.UpsideDown
		n.logger.Debug("pole crossed", "pitch", next, "upside_down", n.o.UpsideDown)
	}

	n.o.Pitch = clamp(next)
	if n.o.UpsideDown {
		yaw = -yaw
	}
	n.o.Yaw = clamp(n.o.Yaw + yaw)

	if kind != Silent {
		n.refresh()
		n.render(kind)
	}
}

// RotateLeft rolls the view a quarter turn counter-clockwise.
func (n *Navigator) RotateLeft() { n.rotate(90) }

// RotateRight rolls the view a quarter turn clockwise.
func (n *Navigator) RotateRight() { n.rotate(-90) }

func (n *Navigator) rotate(delta float64) {
	n.o.Rotation = clamp(n.o.Rotation + delta)
	n.refresh()
	n.render(Instantaneous)
}

// JumpTo centres the view on the typed latitude and longitude.
func (n *Navigator) JumpTo(lat, lon string) error {
	la, err := parseAngle(lat)
	if err != nil {
		return err
	}
	lo, err := parseAngle(lon)
	if err != nil {
		return err
	}
	n.jump(la, lo)
	return nil
}

// JumpToBookmark centres the view on a bookmarked place.
func (n *Navigator) JumpToBookmark(b Bookmark) {
	n.jump(b.JumpLat, b.JumpLon)
}

func (n *Navigator) jump(lat, lon float64) {
	n.o = Orientation{Pitch: lat, Yaw: lon}
	n.refresh()
	n.render(MiddleOut)
}

func (n *Navigator) refresh() {
	if n.display != nil {
		n.display.ShowCoordinates(n.Coordinates())
	}
}

func (n *Navigator) render(kind Transition) {
	ds := Project(n.scene.Points, n.scene.Palette, n.o.Pitch, n.o.Yaw, n.o.Rotation)
	n.engine.Run(ds, kind)
}

// remap rotates screen-relative deltas into globe deltas for the current roll.
func remap(rotation, pitch, yaw float64) (float64, float64) {
	switch int(math.Mod(math.Mod(roundHalfUp(rotation), 360)+360, 360)) {
	case 90:
		return -yaw, pitch
	case 180:
		return -pitch, -yaw
	case 270:
		return yaw, -pitch
	}
	return pitch, yaw
}

func clamp(v float64) float64 {
	if math.Abs(v) > maxAngle {
		return math.Copysign(maxAngle, v)
	}
	return v
}

func parseAngle(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("jump %q: %w", s, ErrInvalidInput)
	}
	return v, nil
}
