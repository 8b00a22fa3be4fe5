// Package collision answers whether level tiles block a box from moving one
// step in a direction.
package collision

import (
	"errors"
	"fmt"
)

const (
	TileShift = 4
	TileSize  = 1 << TileShift
)

var ErrTableShape = errors.New("collision: malformed table")

// Direction is the movement direction being tested.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Query reports whether the box at (x, y) sized w×h is blocked from moving
// in dir.
type Query interface {
	Blocked(x, y, w, h int, dir Direction) bool
}

// NoCollision never blocks.
type NoCollision struct{}

func (NoCollision) Blocked(x, y, w, h int, dir Direction) bool { return false }

// TableCollision looks tiles up in a flat row-major byte table. A nonzero
// byte is solid.
type TableCollision struct {
	tiles  []byte
	width  int
	height int
}

// NewTable wraps data as a table widthTiles wide.
func NewTable(data []byte, widthTiles int) (*TableCollision, error) {
	if widthTiles <= 0 || len(data) == 0 || len(data)%widthTiles != 0 {
		return nil, fmt.Errorf("%w: %d bytes for width %d", ErrTableShape, len(data), widthTiles)
	}
	return &TableCollision{
		tiles:  data,
		width:  widthTiles,
		height: len(data) / widthTiles,
	}, nil
}

// Size returns the table dimensions in tiles.
func (t *TableCollision) Size() (w, h int) {
	return t.width, t.height
}

// Solid reports whether tile (tx, ty) is solid. Tiles outside the table are
// open; the map edge is owned by the camera clamp.
func (t *TableCollision) Solid(tx, ty int) bool {
	if tx < 0 || ty < 0 || tx >= t.width || ty >= t.height {
		return false
	}
	return t.tiles[ty*t.width+tx] != 0
}

func (t *TableCollision) Blocked(x, y, w, h int, dir Direction) bool {
	if t == nil || w <= 0 || h <= 0 {
		return false
	}
	switch dir {
	case Left:
		return t.anyInColumn((x-1)>>TileShift, y>>TileShift, (y+h-1)>>TileShift)
	case Right:
		return t.anyInColumn((x+w)>>TileShift, y>>TileShift, (y+h-1)>>TileShift)
	case Up:
		return t.anyInRow((y-1)>>TileShift, x>>TileShift, (x+w-1)>>TileShift)
	case Down:
		return t.anyInRow((y+h)>>TileShift, x>>TileShift, (x+w-1)>>TileShift)
	}
	return false
}

func (t *TableCollision) anyInColumn(tx, ty0, ty1 int) bool {
	for ty := ty0; ty <= ty1; ty++ {
		if t.Solid(tx, ty) {
			return true
		}
	}
	return false
}

func (t *TableCollision) anyInRow(ty, tx0, tx1 int) bool {
	for tx := tx0; tx <= tx1; tx++ {
		if t.Solid(tx, ty) {
			return true
		}
	}
	return false
}
