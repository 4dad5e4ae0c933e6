package backend

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/goku"
)

// Sink draws goku render calls into an ebiten image.
type Sink struct {
	// Target receives the draws. Set it before every Render.
	Target *ebiten.Image
	// Tiles holds a texture per tile code. Codes without a texture fall back
	// to TileColors; codes with neither are not drawn.
	Tiles      map[uint32]*ebiten.Image
	TileColors map[uint32]color.Color

	op ebiten.DrawImageOptions
}

// NewSink returns a sink that draws the solid tile code in gray.
func NewSink(solidCode uint32) *Sink {
	return &Sink{
		Tiles: make(map[uint32]*ebiten.Image),
		TileColors: map[uint32]color.Color{
			solidCode: color.RGBA{0x60, 0x60, 0x60, 0xff},
		},
	}
}

// frameGeoM maps src onto dst, mirrored horizontally when flip is set.
func frameGeoM(src, dst goku.Rect, flip bool) ebiten.GeoM {
	var m ebiten.GeoM
	if src.Width <= 0 || src.Height <= 0 {
		return m
	}
	if flip {
		m.Scale(-1, 1)
		m.Translate(float64(src.Width), 0)
	}
	m.Scale(float64(dst.Width)/float64(src.Width), float64(dst.Height)/float64(src.Height))
	m.Translate(float64(dst.X), float64(dst.Y))
	return m
}

// DrawFrame implements goku.RenderSink. Textures that are not
// *ebiten.Image are skipped.
func (s *Sink) DrawFrame(tex goku.Texture, src, dst goku.Rect, flip bool) {
	img, ok := tex.(*ebiten.Image)
	if !ok || s.Target == nil {
		return
	}
	sub := img.SubImage(image.Rect(src.X, src.Y, src.X+src.Width, src.Y+src.Height)).(*ebiten.Image)
	s.op.GeoM = frameGeoM(src, dst, flip)
	s.Target.DrawImage(sub, &s.op)
}

// DrawTile implements goku.RenderSink.
func (s *Sink) DrawTile(code uint32, dst goku.Rect) {
	if img, ok := s.Tiles[code]; ok {
		b := img.Bounds()
		s.DrawFrame(img, goku.Rect{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}, dst, false)
		return
	}
	if c, ok := s.TileColors[code]; ok {
		s.FillRect(dst, c)
	}
}

// FillRect implements goku.RenderSink.
func (s *Sink) FillRect(dst goku.Rect, c color.Color) {
	if s.Target == nil {
		return
	}
	vector.DrawFilledRect(s.Target, float32(dst.X), float32(dst.Y), float32(dst.Width), float32(dst.Height), c, false)
}

// DrawParticle implements goku.RenderSink.
func (s *Sink) DrawParticle(dst goku.Rect, c color.Color, shape goku.ParticleShape) {
	if s.Target == nil {
		return
	}
	if shape == goku.ParticleCircle {
		r := float32(dst.Width) / 2
		vector.DrawFilledCircle(s.Target, float32(dst.X)+r, float32(dst.Y)+r, r, c, true)
		return
	}
	s.FillRect(dst, c)
}
