package goku

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"golang.org/x/image/colornames"
)

// RecycleLife is the lifetime given to a particle that falls past the bottom
// bound in Update.
const RecycleLife float32 = 5

// ParticleShape selects how a particle is drawn.
type ParticleShape int

const (
	ParticleRect ParticleShape = iota
	ParticleCircle
)

// String returns "rect" or "circle".
func (s ParticleShape) String() string {
	if s == ParticleCircle {
		return "circle"
	}
	return "rect"
}

// ParseParticleShape maps "rect" or "circle" to a shape. The empty string is
// a rect.
func ParseParticleShape(name string) (ParticleShape, error) {
	switch name {
	case "", "rect":
		return ParticleRect, nil
	case "circle":
		return ParticleCircle, nil
	}
	return 0, fmt.Errorf("goku: unknown particle shape %q", name)
}

// Particle is a single simulated point. It carries no reference to any
// emitter; spawners append values to a caller-owned slice.
type Particle struct {
	X, Y       float32
	XVel, YVel float32
	// Life is the remaining lifetime in seconds.
	Life  float32
	Size  uint32
	Color color.RGBA
	// Alpha is derived from Life on every update.
	Alpha uint8
	Shape ParticleShape
}

// NewParticle returns a fully opaque particle of size 2.
func NewParticle(x, y, xVel, yVel, life float32, c color.RGBA, shape ParticleShape) Particle {
	return Particle{
		X: x, Y: y,
		XVel: xVel, YVel: yVel,
		Life:  life,
		Size:  2,
		Color: c,
		Alpha: 255,
		Shape: shape,
	}
}

// Update integrates the particle over dt seconds. A particle that ends below
// bound is moved back to the top with RecycleLife seconds to live.
func (p *Particle) Update(dt float32, bound uint32) {
	p.Drift(dt)
	if math.Floor(float64(p.Y)) > float64(bound) {
		p.Y = 0
		p.Life = RecycleLife
	}
}

// Drift integrates like Update but never recycles.
func (p *Particle) Drift(dt float32) {
	p.X += p.XVel * dt
	p.Y += p.YVel * dt
	p.Life -= dt
	p.Alpha = uint8(clamp(float64(p.Life)*255, 0, 255))
}

// Alive reports whether the particle still has life left.
func (p *Particle) Alive() bool { return p.Life > 0 }

// Rect returns the particle's world-space square.
func (p *Particle) Rect() Rect {
	return Rect{int(p.X), int(p.Y), int(p.Size), int(p.Size)}
}

// DrawColor returns the particle color with its current alpha.
func (p *Particle) DrawColor() color.NRGBA {
	return color.NRGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: p.Alpha}
}

// PruneDead removes particles with no life left, preserving order. It reuses
// the backing array of ps.
func PruneDead(ps []Particle) []Particle {
	live := ps[:0]
	for _, p := range ps {
		if p.Alive() {
			live = append(live, p)
		}
	}
	clear(ps[len(live):])
	return live
}

func polar(rng *rand.Rand, angle, speed Range) (float32, float32) {
	a := angle.Sample(rng)
	s := speed.Sample(rng)
	return float32(math.Cos(a) * s), float32(math.Sin(a) * s)
}

var (
	fullCircle = Range{0, 2 * math.Pi}
	upperHalf  = Range{math.Pi, 2 * math.Pi}

	sparkColor = color.RGBA{123, 56, 89, 255}

	firePalette = []color.RGBA{
		{254, 95, 85, 255},
		{254, 207, 92, 255},
		{254, 253, 153, 255},
	}

	stardustPalette = []color.RGBA{colornames.White, colornames.Lightyellow}
	leafPalette     = []color.RGBA{colornames.Forestgreen, colornames.Orange, colornames.Gold, colornames.Sienna}
)

// SpawnSparks appends count sparks bursting from (x, y) in every direction.
func SpawnSparks(ps []Particle, rng *rand.Rand, x, y, count int, shape ParticleShape) []Particle {
	for range count {
		vx, vy := polar(rng, fullCircle, Range{50, 200})
		life := Range{0.5, 2.5}.Sample(rng)
		ps = append(ps, NewParticle(float32(x), float32(y), vx, vy, float32(life), sparkColor, shape))
	}
	return ps
}

// SpawnFires appends count flame particles rising from (x, y).
func SpawnFires(ps []Particle, rng *rand.Rand, x, y, count int, shape ParticleShape) []Particle {
	for range count {
		vx, vy := polar(rng, upperHalf, Range{50, 200})
		life := Range{0.5, 2.5}.Sample(rng)
		c := firePalette[intNOf(rng, len(firePalette))]
		ps = append(ps, NewParticle(float32(x), float32(y), vx, vy, float32(life), c, shape))
	}
	return ps
}

// SpawnRain appends count raindrops along the top edge of a screen of the
// given width.
func SpawnRain(ps []Particle, rng *rand.Rand, screenWidth, count int, shape ParticleShape) []Particle {
	for range count {
		x := IntRange{0, screenWidth}.Sample(rng)
		vx := Range{-5, 5}.Sample(rng)
		vy := Range{50, 100}.Sample(rng)
		life := Range{2, 5}.Sample(rng)
		ps = append(ps, NewParticle(float32(x), 0, float32(vx), float32(vy), float32(life), colornames.Blue, shape))
	}
	return ps
}

// SpawnGlowingOrbs appends count slow, large, translucent orbs around (x, y).
func SpawnGlowingOrbs(ps []Particle, rng *rand.Rand, x, y, count int, shape ParticleShape) []Particle {
	for range count {
		vx, vy := polar(rng, fullCircle, Range{10, 30})
		life := Range{3, 6}.Sample(rng)
		c := color.RGBA{
			R: uint8(IntRange{100, 256}.Sample(rng)),
			G: uint8(IntRange{100, 256}.Sample(rng)),
			B: uint8(IntRange{100, 256}.Sample(rng)),
			A: 128,
		}
		p := NewParticle(float32(x), float32(y), vx, vy, float32(life), c, shape)
		p.Size = uint32(IntRange{4, 10}.Sample(rng))
		ps = append(ps, p)
	}
	return ps
}

// SpawnStardust appends count faint specks scattered across the screen.
func SpawnStardust(ps []Particle, rng *rand.Rand, screenWidth, screenHeight, count int, shape ParticleShape) []Particle {
	for range count {
		x := IntRange{0, screenWidth}.Sample(rng)
		y := IntRange{0, screenHeight}.Sample(rng)
		vx, vy := polar(rng, fullCircle, Range{1, 5})
		life := Range{3, 6}.Sample(rng)
		c := stardustPalette[intNOf(rng, len(stardustPalette))]
		p := NewParticle(float32(x), float32(y), vx, vy, float32(life), c, shape)
		p.Size = uint32(IntRange{2, 5}.Sample(rng))
		ps = append(ps, p)
	}
	return ps
}

// SpawnSwirlingLeaves appends count leaves along the top edge of the screen.
// screenHeight is accepted for symmetry with SpawnStardust.
func SpawnSwirlingLeaves(ps []Particle, rng *rand.Rand, screenWidth, screenHeight, count int, shape ParticleShape) []Particle {
	_ = screenHeight
	for range count {
		x := IntRange{0, screenWidth}.Sample(rng)
		vx, vy := polar(rng, fullCircle, Range{1, 3})
		life := Range{5, 10}.Sample(rng)
		c := leafPalette[intNOf(rng, len(leafPalette))]
		p := NewParticle(float32(x), 0, vx, vy, float32(life), c, shape)
		p.Size = uint32(IntRange{8, 15}.Sample(rng))
		ps = append(ps, p)
	}
	return ps
}

// SpawnFunc appends n particles of one effect.
type SpawnFunc func(ps []Particle, rng *rand.Rand, n int) []Particle

// EffectConfig names an effect and where it spawns.
type EffectConfig struct {
	// Effect is one of "sparks", "fires", "rain", "glowing_orbs", "stardust"
	// or "swirling_leaves".
	Effect string `yaml:"effect"`
	// Origin is used by the point effects (sparks, fires, glowing_orbs).
	Origin Point `yaml:"origin"`
	// Area is the screen size used by the area effects.
	Area  Point  `yaml:"area"`
	Shape string `yaml:"shape"`
}

// SpawnFuncFor returns the spawner described by cfg.
func SpawnFuncFor(cfg EffectConfig) (SpawnFunc, error) {
	shape, err := ParseParticleShape(cfg.Shape)
	if err != nil {
		return nil, err
	}
	o, a := cfg.Origin, cfg.Area
	switch cfg.Effect {
	case "sparks":
		return func(ps []Particle, rng *rand.Rand, n int) []Particle {
			return SpawnSparks(ps, rng, o.X, o.Y, n, shape)
		}, nil
	case "fires":
		return func(ps []Particle, rng *rand.Rand, n int) []Particle {
			return SpawnFires(ps, rng, o.X, o.Y, n, shape)
		}, nil
	case "rain":
		return func(ps []Particle, rng *rand.Rand, n int) []Particle {
			return SpawnRain(ps, rng, a.X, n, shape)
		}, nil
	case "glowing_orbs":
		return func(ps []Particle, rng *rand.Rand, n int) []Particle {
			return SpawnGlowingOrbs(ps, rng, o.X, o.Y, n, shape)
		}, nil
	case "stardust":
		return func(ps []Particle, rng *rand.Rand, n int) []Particle {
			return SpawnStardust(ps, rng, a.X, a.Y, n, shape)
		}, nil
	case "swirling_leaves":
		return func(ps []Particle, rng *rand.Rand, n int) []Particle {
			return SpawnSwirlingLeaves(ps, rng, a.X, a.Y, n, shape)
		}, nil
	}
	return nil, fmt.Errorf("goku: unknown particle effect %q", cfg.Effect)
}

// ParticleEmitter spawns particles at a steady rate into a shared set.
type ParticleEmitter struct {
	// EmitRate is the number of particles spawned per second.
	EmitRate float64
	// MaxParticles caps the live set; spawning stops at the cap. Zero means
	// no cap.
	MaxParticles int
	Spawn        SpawnFunc

	emitAccum float64
	active    bool
}

// Start begins emitting particles.
func (e *ParticleEmitter) Start() { e.active = true }

// Stop stops emitting new particles. Existing particles continue to live out.
func (e *ParticleEmitter) Stop() { e.active = false }

// IsActive reports whether the emitter is currently emitting new particles.
func (e *ParticleEmitter) IsActive() bool { return e.active }

// Emit appends the particles due after dt seconds to ps.
func (e *ParticleEmitter) Emit(ps []Particle, rng *rand.Rand, dt float32) []Particle {
	if !e.active || e.EmitRate <= 0 || e.Spawn == nil {
		return ps
	}
	e.emitAccum += e.EmitRate * float64(dt)
	n := int(e.emitAccum)
	e.emitAccum -= float64(n)
	if e.MaxParticles > 0 {
		n = min(n, e.MaxParticles-len(ps))
	}
	if n <= 0 {
		return ps
	}
	return e.Spawn(ps, rng, n)
}
