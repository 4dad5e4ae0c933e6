package goku

import "time"

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	renderTime time.Duration
	drawCalls  int
	culled     int
	entities   int
	particles  int
}

// debugLog logs render stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("render",
		"time", stats.renderTime,
		"draw_calls", stats.drawCalls,
		"culled", stats.culled,
		"entities", stats.entities,
		"particles", stats.particles,
	)
}

// debugMaxParticles is the live particle count above which debug mode warns.
const debugMaxParticles = 10000

func (s *Scene) debugCheckParticles() {
	if s.debug && len(s.Particles) > debugMaxParticles {
		s.logger.Warn("particle count exceeds threshold",
			"count", len(s.Particles), "threshold", debugMaxParticles)
	}
}
