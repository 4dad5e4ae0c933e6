package goku

import "image/color"

// Button is a clickable rectangle in screen space.
type Button struct {
	Rect    Rect
	Color   color.RGBA
	OnClick func()
}

// IsPressed reports whether (x, y) is inside the button. The right and
// bottom edges are outside.
func (b *Button) IsPressed(x, y int) bool {
	return b.Rect.Contains(x, y)
}

// Click runs the callback, if any.
func (b *Button) Click() {
	if b.OnClick != nil {
		b.OnClick()
	}
}

// Checkbox is a button with a checked state. Toggling also fires the
// button's callback.
type Checkbox struct {
	Button
	Checked bool
}

// Toggle flips Checked and fires OnClick.
func (c *Checkbox) Toggle() {
	c.Checked = !c.Checked
	c.Click()
}

// Slider is a handle that moves along a horizontal track. Value is the
// handle position as a fraction of the free track, in [0, 1].
type Slider struct {
	Track       Rect
	Handle      Rect
	TrackColor  color.RGBA
	HandleColor color.RGBA
	Value       float32
	OnChange    func(v float32)
}

// HandleClick centers the handle on x, clamped to the track, if (x, y) is on
// the track. It reports whether the click hit.
func (s *Slider) HandleClick(x, y int) bool {
	if !s.Track.Contains(x, y) {
		return false
	}
	lo := s.Track.X
	hi := s.Track.X + s.Track.Width - s.Handle.Width
	s.Handle.X = min(max(x-s.Handle.Width/2, lo), max(hi, lo))
	s.updateValue()
	return true
}

func (s *Slider) updateValue() {
	free := s.Track.Width - s.Handle.Width
	if free <= 0 {
		s.Value = 0
	} else {
		s.Value = float32(s.Handle.X-s.Track.X) / float32(free)
	}
	if s.OnChange != nil {
		s.OnChange(s.Value)
	}
}

// UILayer groups widgets that receive mouse clicks.
type UILayer struct {
	Buttons    []*Button
	Checkboxes []*Checkbox
	Sliders    []*Slider
}

// HandleMouseClick dispatches a click at screen position (x, y) to every
// widget under it and reports whether any was hit.
func (l *UILayer) HandleMouseClick(x, y int) bool {
	hit := false
	for _, b := range l.Buttons {
		if b.IsPressed(x, y) {
			b.Click()
			hit = true
		}
	}
	for _, c := range l.Checkboxes {
		if c.IsPressed(x, y) {
			c.Toggle()
			hit = true
		}
	}
	for _, s := range l.Sliders {
		if s.HandleClick(x, y) {
			hit = true
		}
	}
	return hit
}

// Render draws every widget as filled rectangles. Checked checkboxes get an
// inset mark.
func (l *UILayer) Render(sink RenderSink) {
	for _, b := range l.Buttons {
		sink.FillRect(b.Rect, b.Color)
	}
	for _, c := range l.Checkboxes {
		sink.FillRect(c.Rect, c.Color)
		if c.Checked {
			in := Rect{c.Rect.X + c.Rect.Width/4, c.Rect.Y + c.Rect.Height/4, c.Rect.Width / 2, c.Rect.Height / 2}
			sink.FillRect(in, color.RGBA{255, 255, 255, 255})
		}
	}
	for _, s := range l.Sliders {
		sink.FillRect(s.Track, s.TrackColor)
		sink.FillRect(s.Handle, s.HandleColor)
	}
}
