package goku

// ParallaxLayer is a horizontally repeating background image that scrolls
// at its own speed relative to the camera.
type ParallaxLayer struct {
	Texture Texture
	// Speed is both the auto-scroll rate in pixels per second and the
	// fraction of camera movement the layer follows.
	Speed  float32
	Offset float32
}

// NewParallaxLayer creates a layer with zero offset.
func NewParallaxLayer(tex Texture, speed float32) *ParallaxLayer {
	return &ParallaxLayer{Texture: tex, Speed: speed}
}

func (l *ParallaxLayer) size() (int, int) {
	if l.Texture == nil {
		return 0, 0
	}
	b := l.Texture.Bounds()
	return b.Dx(), b.Dy()
}

// Update scrolls the layer by Speed*dt, wrapping by the texture width.
func (l *ParallaxLayer) Update(dt float32) {
	w, _ := l.size()
	if w <= 0 {
		return
	}
	l.Offset += l.Speed * dt
	for l.Offset > float32(w) {
		l.Offset -= float32(w)
	}
	for l.Offset < 0 {
		l.Offset += float32(w)
	}
}

// DestRects returns the screen rectangles covering the camera view with
// copies of the texture, left to right.
func (l *ParallaxLayer) DestRects(cam *Camera) []Rect {
	w, h := l.size()
	if w <= 0 || h <= 0 || cam == nil {
		return nil
	}
	x := int(l.Offset-float32(cam.Position.X)*l.Speed) % w
	if x > 0 {
		x -= w
	}
	var out []Rect
	for ; x < cam.Size.X; x += w {
		out = append(out, Rect{x, 0, w, h})
	}
	return out
}

// ParallaxBackground is a stack of layers drawn back to front.
type ParallaxBackground struct {
	Layers []*ParallaxLayer
}

// Update scrolls every layer.
func (b *ParallaxBackground) Update(dt float32) {
	for _, l := range b.Layers {
		l.Update(dt)
	}
}
