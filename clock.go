package goku

import "time"

// Clock is a monotonic time source. Animation and frame timing read it once
// per frame; inject a ManualClock for deterministic tests.
type Clock interface {
	// Millis returns monotonic milliseconds since an arbitrary origin.
	Millis() int64
	// Seconds returns the same reading in seconds.
	Seconds() float64
}

// SystemClock reads the monotonic wall clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock whose origin is now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Millis() int64 {
	return time.Since(c.start).Milliseconds()
}

func (c *SystemClock) Seconds() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only moves when told to.
type ManualClock struct {
	ms int64
}

// Set jumps the clock to ms.
func (c *ManualClock) Set(ms int64) { c.ms = ms }

// Advance moves the clock forward by ms.
func (c *ManualClock) Advance(ms int64) { c.ms += ms }

func (c *ManualClock) Millis() int64 { return c.ms }

func (c *ManualClock) Seconds() float64 { return float64(c.ms) / 1000 }

const timerWindow = 60

// Timer measures frame deltas against a Clock and keeps a rolling window of
// the last 60 for average and FPS queries.
type Timer struct {
	clock  Clock
	start  int64
	last   int64
	delta  int64
	frames []int64
}

// NewTimer creates a Timer started at the clock's current reading.
func NewTimer(clock Clock) *Timer {
	now := clock.Millis()
	return &Timer{
		clock:  clock,
		start:  now,
		last:   now,
		frames: make([]int64, 0, timerWindow),
	}
}

// Step records the time since the previous Step.
func (t *Timer) Step() {
	now := t.clock.Millis()
	t.delta = now - t.last
	t.last = now
	if len(t.frames) == timerWindow {
		copy(t.frames, t.frames[1:])
		t.frames = t.frames[:timerWindow-1]
	}
	t.frames = append(t.frames, t.delta)
}

// Delta returns the duration between the last two steps.
func (t *Timer) Delta() time.Duration {
	return time.Duration(t.delta) * time.Millisecond
}

// AverageDelta returns the mean delta over the window, or 0 before any step.
func (t *Timer) AverageDelta() time.Duration {
	if len(t.frames) == 0 {
		return 0
	}
	var sum int64
	for _, d := range t.frames {
		sum += d
	}
	return time.Duration(sum) * time.Millisecond / time.Duration(len(t.frames))
}

// FPS returns frames per second derived from AverageDelta, or 0 when unknown.
func (t *Timer) FPS() float64 {
	avg := t.AverageDelta()
	if avg <= 0 {
		return 0
	}
	return 1 / avg.Seconds()
}

// Elapsed returns the time since the timer was created.
func (t *Timer) Elapsed() time.Duration {
	return time.Duration(t.clock.Millis()-t.start) * time.Millisecond
}
