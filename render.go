package goku

import (
	"image/color"
	"time"
)

// RenderSink receives draw calls in screen space. The core never touches
// pixels; a backend implements this to blit textures and fill rectangles.
type RenderSink interface {
	// DrawFrame copies src from tex into dst, mirrored horizontally if flip.
	DrawFrame(tex Texture, src, dst Rect, flip bool)
	// DrawTile draws the tile texture for code into dst.
	DrawTile(code uint32, dst Rect)
	// FillRect fills dst with c.
	FillRect(dst Rect, c color.Color)
	// DrawParticle draws one particle covering dst.
	DrawParticle(dst Rect, c color.Color, shape ParticleShape)
}

// Render draws the scene back to front: parallax layers, visible tiles,
// shapes, entities, particles and finally the UI. Everything except the
// parallax layers and UI is camera-transformed; items outside the view are
// skipped.
func (s *Scene) Render(sink RenderSink) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	cam := s.Camera
	for _, l := range s.Background.Layers {
		if l.Texture == nil {
			continue
		}
		src := Rect{0, 0, l.Texture.Bounds().Dx(), l.Texture.Bounds().Dy()}
		for _, dst := range l.DestRects(cam) {
			sink.DrawFrame(l.Texture, src, dst, false)
			stats.drawCalls++
		}
	}

	if s.World != nil {
		s.World.VisibleTiles(cam.VisibleBounds(), func(col, row int, code uint32) {
			sink.DrawTile(code, cam.TransformRect(s.World.TileRect(col, row)))
			stats.drawCalls++
		})
	}

	if s.Board != nil {
		shapes := s.Board.Placed
		if s.Board.Active != nil {
			shapes = append(shapes[:len(shapes):len(shapes)], s.Board.Active)
		}
		for _, sh := range shapes {
			for _, b := range sh.Blocks {
				if !cam.Visible(b) {
					stats.culled++
					continue
				}
				sink.FillRect(cam.TransformRect(b), sh.Color)
				stats.drawCalls++
			}
		}
	}

	for _, e := range s.entities {
		dst := e.DestRect()
		if !cam.Visible(dst) {
			stats.culled++
			continue
		}
		if e.hasFrame && e.frame.Texture != nil {
			sink.DrawFrame(e.frame.Texture, e.frame.Source, cam.TransformRect(dst), e.frame.Flip)
		} else {
			sink.FillRect(cam.TransformRect(dst), e.Color)
		}
		stats.drawCalls++
	}

	for i := range s.Particles {
		p := &s.Particles[i]
		r := p.Rect()
		if !cam.Visible(r) {
			stats.culled++
			continue
		}
		sink.DrawParticle(cam.TransformRect(r), p.DrawColor(), p.Shape)
		stats.drawCalls++
	}

	s.UI.Render(sink)

	if s.debug {
		stats.renderTime = time.Since(t0)
		stats.entities = len(s.entities)
		stats.particles = len(s.Particles)
		s.debugLog(stats)
	}
}
