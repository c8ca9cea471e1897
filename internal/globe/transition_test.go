package globe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(n int, group Group) []Drawable {
	ds := make([]Drawable, n)
	for i := range ds {
		y := float64(i)/float64(n) - 0.5
		ds[i] = Drawable{X: y*330 + 360, Y: 360, Radius: 1, RotY: y, Group: group}
	}
	return ds
}

func TestEngine_Instantaneous(t *testing.T) {
	surf, sched := &recordingSurface{}, newFakeScheduler()
	e := NewEngine(surf, sched)

	e.Run(row(5, GroupTerrain), Instantaneous)

	assert.Equal(t, 1, surf.clears)
	require.Len(t, surf.discs, 6)
	ring := surf.last()
	assert.Equal(t, disc{X: 360, Y: 360, Radius: 11, StrokeWidth: 1, Stroke: focusStroke}, ring)
	assert.True(t, ring.Fill.Transparent())
	assert.Equal(t, 0, e.Pending())
	assert.Empty(t, sched.timers)
}

func TestEngine_StagedBatches(t *testing.T) {
	surf, sched := &recordingSurface{}, newFakeScheduler()
	e := NewEngine(surf, sched)

	e.Run(row(26, GroupTerrain), WipeFromLeft)

	// first batch is drawn synchronously
	assert.Len(t, surf.discs, 2)
	assert.Equal(t, 1, e.Pending())
	require.Len(t, sched.waits, 1)
	assert.Equal(t, DefaultDuration/DefaultSteps, sched.waits[0])

	sched.drain()
	assert.Len(t, surf.discs, 27)
	assert.Equal(t, 1, surf.clears)
	assert.Len(t, sched.waits, DefaultSteps-1)
	assert.Equal(t, 0, e.Pending())
	assert.Equal(t, 11.0, surf.last().Radius)

	// drawn left to right
	for i := 1; i < 26; i++ {
		assert.Less(t, surf.discs[i-1].X, surf.discs[i].X)
	}
}

func TestEngine_ShortLastBatches(t *testing.T) {
	surf, sched := &recordingSurface{}, newFakeScheduler()
	e := NewEngine(surf, sched)

	// ceil(14/13) = 2 per batch, so batches 7..12 are empty
	e.Run(row(14, GroupTerrain), MiddleOut)
	sched.drain()
	assert.Len(t, surf.discs, 15)
	assert.Len(t, sched.waits, DefaultSteps-1)
}

func TestEngine_SlowBatchDoesNotWait(t *testing.T) {
	surf, sched := &recordingSurface{}, newFakeScheduler()
	surf.onDraw = func() { sched.now = sched.now.Add(20 * time.Millisecond) }
	e := NewEngine(surf, sched)

	e.Run(row(13, GroupTerrain), WipeFromTop)

	assert.Empty(t, sched.timers)
	assert.Len(t, surf.discs, 14)
	assert.Equal(t, 0, e.Pending())
}

func TestEngine_PartialOverrunWaitsRemainder(t *testing.T) {
	surf, sched := &recordingSurface{}, newFakeScheduler()
	surf.onDraw = func() { sched.now = sched.now.Add(time.Millisecond) }
	e := NewEngine(surf, sched)

	e.RunWith(row(4, GroupTerrain), WipeFromBottom, 40*time.Millisecond, 2)
	require.Len(t, sched.waits, 1)
	assert.Equal(t, 18*time.Millisecond, sched.waits[0])
}

func TestEngine_EmptyDrawsOnlyFocus(t *testing.T) {
	surf, sched := &recordingSurface{}, newFakeScheduler()
	e := NewEngine(surf, sched)

	e.Run(nil, MiddleOut)

	require.Len(t, surf.discs, 1)
	assert.Equal(t, 11.0, surf.discs[0].Radius)
	assert.Equal(t, 1, surf.clears)
	assert.Empty(t, sched.timers)
}

func TestEngine_NonPositiveStepsClamp(t *testing.T) {
	for _, steps := range []int{0, -3} {
		surf, sched := &recordingSurface{}, newFakeScheduler()
		e := NewEngine(surf, sched)
		e.RunWith(row(7, GroupTerrain), WipeFromRight, time.Second, steps)
		assert.Len(t, surf.discs, 8)
		assert.Empty(t, sched.timers)
	}
}

func TestEngine_NewRunSupersedesOld(t *testing.T) {
	surf, sched := &recordingSurface{}, newFakeScheduler()
	e := NewEngine(surf, sched)

	e.Run(row(26, GroupTerrain), WipeFromLeft)
	first := sched.pending()
	require.Len(t, first, 1)

	e.Run(row(13, GroupPlace), MiddleOut)
	assert.True(t, first[0].stopped)
	left := sched.pending()
	require.Len(t, left, 1)
	assert.NotSame(t, first[0], left[0])

	// a stale continuation firing anyway must not draw
	first[0].fn()
	assert.Len(t, surf.discs, 1)

	sched.drain()
	require.Len(t, surf.discs, 14)
	for _, d := range surf.discs[:13] {
		assert.Equal(t, 1.0, d.Radius)
	}
}

func TestEngine_InstantaneousCancelsStaged(t *testing.T) {
	surf, sched := &recordingSurface{}, newFakeScheduler()
	e := NewEngine(surf, sched)

	e.Run(row(26, GroupTerrain), WipeFromLeft)
	e.Run(row(3, GroupTerrain), Instantaneous)
	assert.Empty(t, sched.pending())
	assert.Len(t, surf.discs, 4)
}

func TestOrder_GroupFirst(t *testing.T) {
	ds := append(row(3, GroupPlace), row(3, GroupTerrain)...)
	out := Order(ds, WipeFromRight)
	for i, d := range out {
		if i < 3 {
			assert.Equal(t, GroupTerrain, d.Group)
		} else {
			assert.Equal(t, GroupPlace, d.Group)
		}
	}
	assert.Greater(t, out[0].RotY, out[1].RotY)
}

func TestOrder_LeftReversedIsRight(t *testing.T) {
	ds := []Drawable{{RotY: 0.3}, {RotY: -0.7}, {RotY: 0.1}, {RotY: 0.9}, {RotY: -0.2}}
	left := Order(ds, WipeFromLeft)
	right := Order(ds, WipeFromRight)
	for i := range left {
		assert.Equal(t, left[i], right[len(right)-1-i])
	}
	// input untouched
	assert.Equal(t, 0.3, ds[0].RotY)
}

func TestOrder_Keys(t *testing.T) {
	ds := []Drawable{
		{X: 400, Y: 360, RotY: 0.12, RotZ: 0},
		{X: 360, Y: 300, RotY: 0, RotZ: 0.18},
		{X: 361, Y: 361, RotY: 0.003, RotZ: -0.003},
	}
	mid := Order(ds, MiddleOut)
	assert.Equal(t, []Drawable{ds[2], ds[0], ds[1]}, mid)

	top := Order(ds, WipeFromTop)
	assert.Equal(t, ds[1], top[0])
	assert.Equal(t, ds[2], top[2])

	bottom := Order(ds, WipeFromBottom)
	assert.Equal(t, ds[2], bottom[0])

	// unknown kinds keep input order
	assert.Equal(t, ds, Order(ds, Transition("spiral")))
}

func TestEngine_WithTiming(t *testing.T) {
	surf, sched := &recordingSurface{}, newFakeScheduler()
	e := NewEngine(surf, sched).WithTiming(40*time.Millisecond, 4)

	e.Run(row(8, GroupTerrain), MiddleOut)
	sched.drain()

	assert.Len(t, surf.discs, 9)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond, 10 * time.Millisecond}, sched.waits)

	e.WithTiming(0, -1)
	assert.Equal(t, 40*time.Millisecond, e.duration)
	assert.Equal(t, 4, e.steps)
}
