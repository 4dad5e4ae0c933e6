package goku

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallaxLayerWraps(t *testing.T) {
	l := NewParallaxLayer(image.NewRGBA(image.Rect(0, 0, 100, 50)), 30)
	l.Update(1)
	assert.Equal(t, float32(30), l.Offset)
	l.Update(3)
	assert.Equal(t, float32(20), l.Offset, "120 wraps to 20")

	l.Speed = -30
	l.Update(1)
	assert.Equal(t, float32(90), l.Offset, "negative offsets wrap up")
}

func TestParallaxLayerWithoutTexture(t *testing.T) {
	l := NewParallaxLayer(nil, 10)
	l.Update(1)
	assert.Zero(t, l.Offset)
	assert.Nil(t, l.DestRects(NewCamera(Point{}, 100, 100)))
}

func TestParallaxDestRectsCoverView(t *testing.T) {
	l := NewParallaxLayer(image.NewRGBA(image.Rect(0, 0, 100, 40)), 0)
	cam := NewCamera(Point{}, 250, 100)

	assert.Equal(t, []Rect{{0, 0, 100, 40}, {100, 0, 100, 40}, {200, 0, 100, 40}}, l.DestRects(cam))

	l.Offset = 30
	assert.Equal(t, []Rect{{-70, 0, 100, 40}, {30, 0, 100, 40}, {130, 0, 100, 40}, {230, 0, 100, 40}}, l.DestRects(cam))
}

func TestParallaxBackgroundUpdatesAllLayers(t *testing.T) {
	tex := image.NewRGBA(image.Rect(0, 0, 500, 10))
	b := ParallaxBackground{Layers: []*ParallaxLayer{NewParallaxLayer(tex, 10), NewParallaxLayer(tex, 20)}}
	b.Update(0.5)
	assert.Equal(t, float32(5), b.Layers[0].Offset)
	assert.Equal(t, float32(10), b.Layers[1].Offset)
}
