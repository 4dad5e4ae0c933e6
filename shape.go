package goku

import (
	"fmt"
	"image/color"
)

// Shape is a rigid group of equally sized blocks, such as a falling
// tetromino. Block 1 is the rotation pivot.
type Shape struct {
	Blocks []Rect
	Color  color.RGBA
	Body   RigidBody
}

// NewShape creates a shape at rest. blocks is copied.
func NewShape(blocks []Rect, c color.RGBA, mass float32) *Shape {
	return &Shape{Blocks: cloneBlocks(blocks), Color: c, Body: NewRigidBody(mass)}
}

// TetrominoKind names one of the seven classic pieces.
type TetrominoKind int

const (
	TetrominoI TetrominoKind = iota
	TetrominoO
	TetrominoT
	TetrominoS
	TetrominoZ
	TetrominoJ
	TetrominoL
)

var tetrominoCells = [...][4]Point{
	TetrominoI: {{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	TetrominoO: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	TetrominoT: {{0, 0}, {1, 0}, {2, 0}, {1, 1}},
	TetrominoS: {{0, 1}, {1, 1}, {1, 0}, {2, 0}},
	TetrominoZ: {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	TetrominoJ: {{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	TetrominoL: {{0, 1}, {1, 1}, {2, 1}, {2, 0}},
}

var tetrominoNames = map[string]TetrominoKind{
	"I": TetrominoI, "O": TetrominoO, "T": TetrominoT, "S": TetrominoS,
	"Z": TetrominoZ, "J": TetrominoJ, "L": TetrominoL,
}

// ParseTetromino maps "I", "O", "T", "S", "Z", "J" or "L" to its kind.
func ParseTetromino(name string) (TetrominoKind, error) {
	k, ok := tetrominoNames[name]
	if !ok {
		return 0, fmt.Errorf("goku: unknown tetromino %q", name)
	}
	return k, nil
}

// Tetromino builds a piece of the given kind with its top-left cell at
// origin. Unknown kinds produce an I piece.
func Tetromino(kind TetrominoKind, origin Point, blockSize int, c color.RGBA) *Shape {
	if kind < 0 || int(kind) >= len(tetrominoCells) {
		kind = TetrominoI
	}
	cells := tetrominoCells[kind]
	blocks := make([]Rect, len(cells))
	for i, cell := range cells {
		blocks[i] = Rect{origin.X + cell.X*blockSize, origin.Y + cell.Y*blockSize, blockSize, blockSize}
	}
	return &Shape{Blocks: blocks, Color: c, Body: NewRigidBody(1)}
}

// Update integrates the body and moves the blocks through policy. A nil
// policy behaves like RejectAll.
func (s *Shape) Update(dt float32, policy CollisionPolicy, obs Obstacles) Resolution {
	if policy == nil {
		policy = RejectAll{}
	}
	s.Body.Update(dt)
	offset := Point{int(s.Body.Velocity.X), int(s.Body.Velocity.Y)}
	res := policy.Resolve(s.Blocks, offset, &s.Body, obs)
	s.Blocks = res.Blocks
	return res
}

// Rotate turns the shape a quarter clockwise about block 1. Shapes with fewer
// than two blocks are left alone.
func (s *Shape) Rotate() {
	if len(s.Blocks) < 2 {
		return
	}
	pivot := s.Blocks[1]
	for i := range s.Blocks {
		b := &s.Blocks[i]
		dx := b.X - pivot.X
		dy := b.Y - pivot.Y
		b.X = pivot.X - dy
		b.Y = pivot.Y + dx
	}
}

// CollidesWith reports whether any block of s overlaps a block of other.
func (s *Shape) CollidesWith(other *Shape) bool {
	if other == nil {
		return false
	}
	for _, a := range s.Blocks {
		if Colliders(other.Blocks).Intersects(a) {
			return true
		}
	}
	return false
}

// Intersects lets a shape act as an obstacle.
func (s *Shape) Intersects(r Rect) bool {
	return Colliders(s.Blocks).Intersects(r)
}

// Bounds returns the smallest rectangle enclosing every block.
func (s *Shape) Bounds() Rect {
	if len(s.Blocks) == 0 {
		return Rect{}
	}
	minX, minY := s.Blocks[0].X, s.Blocks[0].Y
	maxX, maxY := s.Blocks[0].X+s.Blocks[0].Width, s.Blocks[0].Y+s.Blocks[0].Height
	for _, b := range s.Blocks[1:] {
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.X+b.Width)
		maxY = max(maxY, b.Y+b.Height)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// Clone returns a deep copy.
func (s *Shape) Clone() *Shape {
	c := *s
	c.Blocks = cloneBlocks(s.Blocks)
	return &c
}

// Board runs falling shapes inside a bounded well. The active piece moves
// with AxisSeparated; once it lands it joins Placed.
type Board struct {
	Bounds    Rect
	BlockSize int
	// Gravity is applied to the active piece each step. Zero means straight
	// down.
	Gravity Vec2
	Active  *Shape
	Placed  []*Shape
	// Spawn, if set, supplies the next piece whenever Active is empty.
	Spawn func() *Shape
	// OnLand, if set, is called with each piece as it comes to rest.
	OnLand func(s *Shape)
}

// NewBoard creates an empty board.
func NewBoard(bounds Rect, blockSize int) *Board {
	return &Board{Bounds: bounds, BlockSize: blockSize}
}

func (b *Board) gravity() Vec2 {
	if b.Gravity.IsZero() {
		return Vec2{0, 1}
	}
	return b.Gravity
}

// Step advances the active piece by dt and reports whether it landed. extra
// adds obstacles beyond the placed pieces and may be nil.
func (b *Board) Step(dt float32, extra Obstacles) (landed bool) {
	if b.Active == nil && b.Spawn != nil {
		b.Active = b.Spawn()
	}
	if b.Active == nil {
		return false
	}
	b.Active.Body.ApplyGravity(b.gravity())
	res := b.Active.Update(dt, AxisSeparated{Bounds: b.Bounds}, ObstacleSet{b.Obstacles(), extra})
	b.Active.Body.ResetAcceleration()
	if res.Landed {
		landed := b.Active
		b.Placed = append(b.Placed, landed)
		b.Active = nil
		if b.OnLand != nil {
			b.OnLand(landed)
		}
		return true
	}
	return false
}

// Nudge shifts the active piece one block sideways if it fits there. dir
// is -1 for left and 1 for right. It reports whether the piece moved.
func (b *Board) Nudge(dir int) bool {
	if b.Active == nil || dir == 0 {
		return false
	}
	dx := max(b.BlockSize, 1)
	if dir < 0 {
		dx = -dx
	}
	d := Point{dx, 0}
	check := AxisSeparated{Bounds: b.Bounds}
	if !check.inBounds(b.Active.Blocks, d) || intersectsAny(b.Active.Blocks, d, b.Obstacles()) {
		return false
	}
	b.Active.Blocks = translateBlocks(b.Active.Blocks, d)
	return true
}

// Rotate turns the active piece if the rotated blocks fit. It reports whether
// the rotation happened.
func (b *Board) Rotate() bool {
	if b.Active == nil {
		return false
	}
	prev := cloneBlocks(b.Active.Blocks)
	b.Active.Rotate()
	check := AxisSeparated{Bounds: b.Bounds}
	if !check.inBounds(b.Active.Blocks, Point{}) || intersectsAny(b.Active.Blocks, Point{}, b.Obstacles()) {
		b.Active.Blocks = prev
		return false
	}
	return true
}

// Obstacles returns the blocks of every placed piece.
func (b *Board) Obstacles() Colliders {
	var out Colliders
	for _, s := range b.Placed {
		out = append(out, s.Blocks...)
	}
	return out
}

// Intersects lets the board act as an obstacle for entities. Both placed
// and active blocks count.
func (b *Board) Intersects(r Rect) bool {
	if b.Active != nil && b.Active.Intersects(r) {
		return true
	}
	return b.Obstacles().Intersects(r)
}
