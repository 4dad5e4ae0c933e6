package goku

import (
	"fmt"
	"sort"
)

// TextureLoader turns an image path into a Texture. The ebiten subpackage
// provides one backed by ebitenutil; tests use in-memory images.
type TextureLoader interface {
	LoadTexture(path string) (Texture, error)
}

// TextureLoaderFunc adapts a function to TextureLoader.
type TextureLoaderFunc func(path string) (Texture, error)

func (f TextureLoaderFunc) LoadTexture(path string) (Texture, error) { return f(path) }

// Frame is what a renderer needs to draw the current animation frame.
type Frame struct {
	Texture Texture
	Source  Rect
	Flip    bool
}

// AnimationSet holds named animations for one entity and tracks which one is
// current. Each animation keeps its own frame and timing, so switching tags
// resumes the target where it left off instead of restarting it.
type AnimationSet struct {
	loader     TextureLoader
	animations map[string]*AnimatedTexture
	current    string
	hasCurrent bool
}

// NewAnimationSet creates an empty set. loader may be nil if animations are
// only added with Add.
func NewAnimationSet(loader TextureLoader) *AnimationSet {
	return &AnimationSet{
		loader:     loader,
		animations: make(map[string]*AnimatedTexture),
	}
}

// Load reads the texture at path and registers it under tag. The first
// animation added becomes current.
func (s *AnimationSet) Load(tag, path string, frameWidth, frameHeight, frameDelay, row int) error {
	if s.loader == nil {
		return &LoadError{Op: "texture", Path: path, Err: fmt.Errorf("no texture loader for tag %q", tag)}
	}
	tex, err := s.loader.LoadTexture(path)
	if err != nil {
		return &LoadError{Op: "texture", Path: path, Err: err}
	}
	sheet := SpriteSheet{Texture: tex, FrameWidth: frameWidth, FrameHeight: frameHeight, Row: row}
	if err := sheet.validate(); err != nil {
		return &LoadError{Op: "texture", Path: path, Err: fmt.Errorf("tag %q: %w", tag, err)}
	}
	s.Add(tag, NewAnimatedTexture(sheet, frameDelay))
	return nil
}

// Add registers anim under tag, replacing any previous animation with that
// tag. The first animation added becomes current.
func (s *AnimationSet) Add(tag string, anim *AnimatedTexture) {
	s.animations[tag] = anim
	if !s.hasCurrent {
		s.current = tag
		s.hasCurrent = true
	}
}

// Remove drops the animation for tag. If tag is current it stays selected and
// the next Advance reports ErrAnimationNotLoaded.
func (s *AnimationSet) Remove(tag string) {
	delete(s.animations, tag)
}

// SetAnimation selects tag if it is loaded and reports whether it is now
// current. Unknown tags are ignored.
func (s *AnimationSet) SetAnimation(tag string) bool {
	if _, ok := s.animations[tag]; !ok {
		return false
	}
	s.current = tag
	s.hasCurrent = true
	return true
}

// Current returns the selected tag.
func (s *AnimationSet) Current() (string, bool) {
	return s.current, s.hasCurrent
}

// Animation returns the animation for tag.
func (s *AnimationSet) Animation(tag string) (*AnimatedTexture, bool) {
	a, ok := s.animations[tag]
	return a, ok
}

// Tags returns the loaded tags in sorted order.
func (s *AnimationSet) Tags() []string {
	tags := make([]string, 0, len(s.animations))
	for t := range s.animations {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// currentAnimation returns the selected animation or a *StateError.
func (s *AnimationSet) currentAnimation() (*AnimatedTexture, error) {
	if !s.hasCurrent {
		return nil, &StateError{Err: ErrNoAnimation}
	}
	a, ok := s.animations[s.current]
	if !ok {
		return nil, &StateError{Tag: s.current, Err: ErrAnimationNotLoaded}
	}
	return a, nil
}

// Advance steps the current animation to time now and returns its frame.
func (s *AnimationSet) Advance(now int64) (Frame, error) {
	a, err := s.currentAnimation()
	if err != nil {
		return Frame{}, err
	}
	src := a.Advance(now)
	return Frame{Texture: a.Sheet.Texture, Source: src, Flip: a.Flip}, nil
}

// FrameSize returns the frame width and height of the current animation.
func (s *AnimationSet) FrameSize() (w, h int, err error) {
	a, err := s.currentAnimation()
	if err != nil {
		return 0, 0, err
	}
	return a.Sheet.FrameWidth, a.Sheet.FrameHeight, nil
}
