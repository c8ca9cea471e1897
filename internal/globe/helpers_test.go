package globe

import (
	"sort"
	"time"
)

type fakeTimer struct {
	due     time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeScheduler is a manual clock with a timer list.
type fakeScheduler struct {
	now    time.Time
	timers []*fakeTimer
	waits  []time.Duration
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{now: time.Unix(1700000000, 0)}
}

func (s *fakeScheduler) Now() time.Time { return s.now }

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{due: s.now.Add(d), fn: fn}
	s.timers = append(s.timers, t)
	s.waits = append(s.waits, d)
	return t
}

func (s *fakeScheduler) pending() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].due.Before(out[j].due) })
	return out
}

// drain fires timers in due order until none are left.
func (s *fakeScheduler) drain() {
	for {
		p := s.pending()
		if len(p) == 0 {
			return
		}
		t := p[0]
		if t.due.After(s.now) {
			s.now = t.due
		}
		t.fired = true
		t.fn()
	}
}

type disc struct {
	X, Y, Radius, StrokeWidth float64
	Fill, Stroke              Color
}

// recordingSurface keeps the discs drawn since the last Clear.
type recordingSurface struct {
	clears int
	discs  []disc
	onDraw func()
}

func (r *recordingSurface) Clear() {
	r.clears++
	r.discs = nil
}

func (r *recordingSurface) DrawDisc(x, y, radius float64, fill Color, strokeWidth float64, stroke Color) {
	r.discs = append(r.discs, disc{X: x, Y: y, Radius: radius, StrokeWidth: strokeWidth, Fill: fill, Stroke: stroke})
	if r.onDraw != nil {
		r.onDraw()
	}
}

func (r *recordingSurface) last() disc { return r.discs[len(r.discs)-1] }

type recordingDisplay struct {
	shown []Coordinates
	on    func(Coordinates)
}

func (d *recordingDisplay) ShowCoordinates(c Coordinates) {
	d.shown = append(d.shown, c)
	if d.on != nil {
		d.on(c)
	}
}

func testPalette() Palette {
	return Palette{
		{Name: "white", Color: RGB(230, 239, 245)},
		{Name: "blue", Color: RGB(131, 212, 245)},
		{Name: "beige", Color: RGB(189, 173, 158)},
		{Name: "turquoise", Color: RGB(94, 255, 222)},
		{Name: "green", Color: RGB(52, 144, 24)},
		{Name: "red", Color: RGB(143, 27, 27)},
		{Name: "black", Color: RGB(7, 1, 24)},
		{Name: "gold", Color: RGB(224, 190, 130)},
		{Name: "silver", Color: RGB(192, 192, 192)},
	}
}
