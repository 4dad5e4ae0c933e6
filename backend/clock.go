package backend

import "github.com/hajimehoshi/ebiten/v2"

// TickClock derives time from ebiten ticks so that a run is reproducible
// regardless of wall-clock jitter. Game advances it once per Update.
type TickClock struct {
	ticks int64
	tps   int
}

// NewTickClock returns a clock at tick zero. tps <= 0 uses ebiten.TPS().
func NewTickClock(tps int) *TickClock {
	return &TickClock{tps: tps}
}

func (c *TickClock) rate() int64 {
	if c.tps > 0 {
		return int64(c.tps)
	}
	if t := ebiten.TPS(); t > 0 {
		return int64(t)
	}
	return ebiten.DefaultTPS
}

// Tick advances the clock by one tick.
func (c *TickClock) Tick() { c.ticks++ }

// Ticks returns the number of ticks so far.
func (c *TickClock) Ticks() int64 { return c.ticks }

// Millis implements goku.Clock.
func (c *TickClock) Millis() int64 { return c.ticks * 1000 / c.rate() }

// Seconds implements goku.Clock.
func (c *TickClock) Seconds() float64 { return float64(c.ticks) / float64(c.rate()) }
