// Package sched runs delayed continuations cooperatively on one goroutine.
package sched

import (
	"container/heap"
	"context"
	"time"

	"globeview/internal/globe"
)

// Clock abstracts wall time so loops can run against a fake clock in tests.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the real clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ManualClock only moves when slept on or advanced.
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock { return &ManualClock{now: start} }

func (c *ManualClock) Now() time.Time { return c.now }

func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func (c *ManualClock) Sleep(_ context.Context, d time.Duration) error {
	c.Advance(d)
	return nil
}

type task struct {
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
	index   int
}

// Stop cancels the task. It reports whether the task was still pending.
func (t *task) Stop() bool {
	if t.stopped || t.index < 0 {
		return false
	}
	t.stopped = true
	return true
}

type queue []*task

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}
func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *queue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}
func (q *queue) Pop() any {
	old := *q
	t := old[len(old)-1]
	old[len(old)-1] = nil
	t.index = -1
	*q = old[:len(old)-1]
	return t
}

// Loop is a timer queue drained by Run. Tasks run on the goroutine calling Run,
// one at a time, never before their due time.
type Loop struct {
	clock Clock
	q     queue
	seq   uint64
}

func NewLoop(clock Clock) *Loop {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Loop{clock: clock}
}

func (l *Loop) Now() time.Time { return l.clock.Now() }

// AfterFunc queues fn to run once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) globe.Timer {
	l.seq++
	t := &task{due: l.clock.Now().Add(d), seq: l.seq, fn: fn}
	heap.Push(&l.q, t)
	return t
}

// Pending counts tasks that have not been stopped or run.
func (l *Loop) Pending() int {
	n := 0
	for _, t := range l.q {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Run executes queued tasks in due order until the queue is empty or ctx ends.
// Tasks may schedule further tasks.
func (l *Loop) Run(ctx context.Context) error {
	for l.q.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := l.q[0]
		if t.stopped {
			heap.Pop(&l.q)
			continue
		}
		if wait := t.due.Sub(l.clock.Now()); wait > 0 {
			if err := l.clock.Sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}
		heap.Pop(&l.q)
		t.fn()
	}
	return nil
}
