package cinematic

import (
	"container/heap"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Timers is a queue of one-shot actions keyed by a deadline on a simulated
// clock. The clock only moves when Advance is called, which makes firing
// order deterministic: earlier deadlines first, equal deadlines in the order
// they were scheduled.
type Timers struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
	log   logrus.FieldLogger
}

type timer struct {
	deadline time.Duration
	seq      uint64
	fn       func()
}

func NewTimers(logger logrus.FieldLogger) *Timers {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Timers{log: logger}
}

// Now returns the time elapsed on the queue's clock.
func (t *Timers) Now() time.Duration {
	return t.now
}

// Pending returns the number of actions that have not fired yet.
func (t *Timers) Pending() int {
	return t.queue.Len()
}

// Schedule runs fn once, delay after the current clock time. Negative delays
// count as zero. An action never runs inside Schedule, even with no delay.
func (t *Timers) Schedule(delay time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	deadline := t.now + delay
	if delay > math.MaxInt64-t.now {
		deadline = math.MaxInt64
	}
	t.seq++
	heap.Push(&t.queue, &timer{deadline: deadline, seq: t.seq, fn: fn})
}

// Advance moves the clock forward by dt and runs every action now due,
// including actions scheduled by those actions when they are due as well.
// It returns the number of actions run.
func (t *Timers) Advance(dt time.Duration) int {
	if dt > 0 {
		if dt > math.MaxInt64-t.now {
			t.now = math.MaxInt64
		} else {
			t.now += dt
		}
	}
	fired := 0
	for t.queue.Len() > 0 && t.queue[0].deadline <= t.now {
		next := heap.Pop(&t.queue).(*timer)
		t.run(next)
		fired++
	}
	return fired
}

func (t *Timers) run(next *timer) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Errorf("cinematic: timer action at %s panicked: %v", next.deadline, r)
		}
	}()
	next.fn()
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline == q[j].deadline {
		return q[i].seq < q[j].seq
	}
	return q[i].deadline < q[j].deadline
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
