package globe

import (
	"sort"
	"time"
)

// Transition names how a new view is revealed.
type Transition string

const (
	Instantaneous  Transition = "instantaneous"
	Silent         Transition = "silent" // state only, nothing is drawn
	MiddleOut      Transition = "middle-out"
	WipeFromLeft   Transition = "wipe-from-left"
	WipeFromRight  Transition = "wipe-from-right"
	WipeFromTop    Transition = "wipe-from-top"
	WipeFromBottom Transition = "wipe-from-bottom"
)

const (
	DefaultDuration = 144 * time.Millisecond
	DefaultSteps    = 13
)

var (
	focusStroke = Color{R: 192, G: 192, B: 192, A: 194}
	focusRadius = 11.0
)

// Timer is a scheduled continuation.
type Timer interface {
	Stop() bool
}

// Scheduler runs delayed continuations on the caller's event loop.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Engine paints drawables onto a Surface, either at once or in timed batches.
// Only one transition is in flight; starting another supersedes it.
type Engine struct {
	surface Surface
	sched   Scheduler
	pending Timer
	gen     uint64

	duration time.Duration
	steps    int
}

func NewEngine(surface Surface, sched Scheduler) *Engine {
	return &Engine{surface: surface, sched: sched, duration: DefaultDuration, steps: DefaultSteps}
}

// WithTiming overrides the budget Run uses. Non-positive values keep the
// current setting.
func (e *Engine) WithTiming(duration time.Duration, steps int) *Engine {
	if duration > 0 {
		e.duration = duration
	}
	if steps > 0 {
		e.steps = steps
	}
	return e
}

// Run starts a transition with the engine's budget.
func (e *Engine) Run(ds []Drawable, kind Transition) {
	e.RunWith(ds, kind, e.duration, e.steps)
}

// RunWith reveals ds over duration in steps batches.
func (e *Engine) RunWith(ds []Drawable, kind Transition, duration time.Duration, steps int) {
	e.Cancel()

	if kind == Instantaneous {
		e.surface.Clear()
		e.draw(ds)
		e.focus()
		return
	}

	if steps <= 0 {
		steps = 1
	}
	sorted := Order(ds, kind)
	n := len(sorted)
	per := (n + steps - 1) / steps
	stepDur := duration / time.Duration(steps)

	e.surface.Clear()
	if n == 0 {
		e.focus()
		return
	}

	gen := e.gen
	step := 0
	var next func()
	next = func() {
		if gen != e.gen {
			return
		}
		e.pending = nil
		for {
			start := e.sched.Now()
			lo, hi := min(step*per, n), min((step+1)*per, n)
			e.draw(sorted[lo:hi])
			step++
			if step >= steps {
				e.focus()
				return
			}
			// a slow batch moves on at once; lost time is not made up later
			if wait := stepDur - e.sched.Now().Sub(start); wait > 0 {
				e.pending = e.sched.AfterFunc(wait, next)
				return
			}
		}
	}
	next()
}

// Cancel drops every remaining batch of the current transition.
func (e *Engine) Cancel() {
	e.gen++
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

// Pending reports how many continuations are scheduled.
func (e *Engine) Pending() int {
	if e.pending == nil {
		return 0
	}
	return 1
}

func (e *Engine) draw(ds []Drawable) {
	for _, d := range ds {
		e.surface.DrawDisc(d.X, d.Y, d.Radius, d.Fill, d.StrokeWidth, d.Stroke)
	}
}

func (e *Engine) focus() {
	e.surface.DrawDisc(CenterX, CenterY, focusRadius, Color{}, 1, focusStroke)
}

// Order returns a copy of ds in reveal order: group first, then the key the
// transition kind sweeps along. Unknown kinds keep input order within a group.
func Order(ds []Drawable, kind Transition) []Drawable {
	out := append([]Drawable(nil), ds...)
	key := sortKey(kind)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if key == nil {
			return false
		}
		return key(a) < key(b)
	})
	return out
}

func sortKey(kind Transition) func(Drawable) float64 {
	switch kind {
	case MiddleOut:
		return func(d Drawable) float64 {
			dx, dy := d.X-CenterX, d.Y-CenterY
			return dx*dx + dy*dy
		}
	case WipeFromLeft:
		return func(d Drawable) float64 { return d.RotY }
	case WipeFromRight:
		return func(d Drawable) float64 { return -d.RotY }
	case WipeFromTop:
		return func(d Drawable) float64 { return -d.RotZ }
	case WipeFromBottom:
		return func(d Drawable) float64 { return d.RotZ }
	}
	return nil
}
