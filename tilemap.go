package goku

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Tile map defaults.
const (
	DefaultTileSize  = 82
	DefaultSolidCode = 2
)

// WorldConfig controls how a tile map is interpreted. Zero fields take the
// defaults above.
type WorldConfig struct {
	// TileSize is the width and height of one tile in world pixels.
	TileSize int `yaml:"tile_size"`
	// SolidCode is the tile code that generates a collider. Use SolidCodeZero
	// to mark code 0 as solid, since the zero value means "default".
	SolidCode uint32 `yaml:"solid_code"`
	// SolidCodeZero makes code 0 the solid code.
	SolidCodeZero bool `yaml:"solid_code_zero"`
}

func (c WorldConfig) tileSize() int {
	if c.TileSize <= 0 {
		return DefaultTileSize
	}
	return c.TileSize
}

func (c WorldConfig) solidCode() uint32 {
	if c.SolidCodeZero {
		return 0
	}
	if c.SolidCode == 0 {
		return DefaultSolidCode
	}
	return c.SolidCode
}

// StaticWorld is a grid of tile codes plus the colliders of its solid tiles.
// Colliders are computed once at load and never change afterwards.
type StaticWorld struct {
	tiles     []uint32 // row-major, len = cols * rows
	cols      int
	rows      int
	tileSize  int
	solid     uint32
	colliders []Rect
}

// LoadWorldFile reads a tile map from path.
func LoadWorldFile(path string, cfg WorldConfig) (*StaticWorld, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Op: "tilemap", Path: path, Err: err}
	}
	w, err := LoadWorld(bytes.NewReader(data), cfg)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Path = path
		}
		return nil, err
	}
	return w, nil
}

// LoadWorld parses a whitespace-separated tile map, one row per line. Trailing
// blank lines are ignored; every other row must have as many cells as the
// first.
func LoadWorld(r io.Reader, cfg WorldConfig) (*StaticWorld, error) {
	var grid [][]uint32
	var blank int // blank lines seen since the last non-blank row
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			blank++
			continue
		}
		if blank > 0 && len(grid) > 0 {
			return nil, &LoadError{Op: "tilemap", Line: line - blank, Err: fmt.Errorf("%w: row has 0 cells, want %d", ErrRaggedRow, len(grid[0]))}
		}
		blank = 0
		row := make([]uint32, len(fields))
		for i, tok := range fields {
			v, err := strconv.ParseUint(tok, 10, 32)
			if err != nil {
				return nil, &LoadError{Op: "tilemap", Line: line, Col: i + 1, Err: fmt.Errorf("%w %q", ErrInvalidTile, tok)}
			}
			row[i] = uint32(v)
		}
		if len(grid) > 0 && len(row) != len(grid[0]) {
			return nil, &LoadError{Op: "tilemap", Line: line, Err: fmt.Errorf("%w: row has %d cells, want %d", ErrRaggedRow, len(row), len(grid[0]))}
		}
		grid = append(grid, row)
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Op: "tilemap", Line: line, Err: err}
	}
	return NewWorldFromGrid(grid, cfg)
}

// NewWorldFromGrid builds a world from an in-memory grid, for example one
// produced by a procedural generator. The grid is copied.
func NewWorldFromGrid(grid [][]uint32, cfg WorldConfig) (*StaticWorld, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, &LoadError{Op: "tilemap", Err: ErrEmptyMap}
	}
	cols := len(grid[0])
	w := &StaticWorld{
		tiles:    make([]uint32, 0, cols*len(grid)),
		cols:     cols,
		rows:     len(grid),
		tileSize: cfg.tileSize(),
		solid:    cfg.solidCode(),
	}
	for y, row := range grid {
		if len(row) != cols {
			return nil, &LoadError{Op: "tilemap", Line: y + 1, Err: fmt.Errorf("%w: row has %d cells, want %d", ErrRaggedRow, len(row), cols)}
		}
		w.tiles = append(w.tiles, row...)
	}
	w.buildColliders()
	return w, nil
}

func (w *StaticWorld) buildColliders() {
	for i, code := range w.tiles {
		if code != w.solid {
			continue
		}
		col, row := i%w.cols, i/w.cols
		w.colliders = append(w.colliders, w.TileRect(col, row))
	}
}

// Cols returns the map width in tiles.
func (w *StaticWorld) Cols() int { return w.cols }

// Rows returns the map height in tiles.
func (w *StaticWorld) Rows() int { return w.rows }

// TileSize returns the tile edge length in world pixels.
func (w *StaticWorld) TileSize() int { return w.tileSize }

// SolidCode returns the code that marks solid tiles.
func (w *StaticWorld) SolidCode() uint32 { return w.solid }

// Tile returns the code at (col, row).
func (w *StaticWorld) Tile(col, row int) (uint32, bool) {
	if col < 0 || col >= w.cols || row < 0 || row >= w.rows {
		return 0, false
	}
	return w.tiles[row*w.cols+col], true
}

// TileRect returns the world rectangle of cell (col, row).
func (w *StaticWorld) TileRect(col, row int) Rect {
	return Rect{col * w.tileSize, row * w.tileSize, w.tileSize, w.tileSize}
}

// Bounds returns the world rectangle covered by the map.
func (w *StaticWorld) Bounds() Rect {
	return Rect{0, 0, w.cols * w.tileSize, w.rows * w.tileSize}
}

// Colliders returns a copy of the solid-tile colliders in row-major order.
func (w *StaticWorld) Colliders() []Rect {
	out := make([]Rect, len(w.colliders))
	copy(out, w.colliders)
	return out
}

// ColliderCount returns the number of solid tiles.
func (w *StaticWorld) ColliderCount() int { return len(w.colliders) }

// Intersects reports whether r overlaps any solid tile. It scans every
// collider.
func (w *StaticWorld) Intersects(r Rect) bool {
	return Colliders(w.colliders).Intersects(r)
}

// VisibleTiles calls fn for every cell overlapping view, in row-major order.
func (w *StaticWorld) VisibleTiles(view Rect, fn func(col, row int, code uint32)) {
	if view.IsEmpty() {
		return
	}
	c0 := max(floorDiv(view.X, w.tileSize), 0)
	r0 := max(floorDiv(view.Y, w.tileSize), 0)
	c1 := min(floorDiv(view.X+view.Width-1, w.tileSize), w.cols-1)
	r1 := min(floorDiv(view.Y+view.Height-1, w.tileSize), w.rows-1)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			fn(col, row, w.tiles[row*w.cols+col])
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
