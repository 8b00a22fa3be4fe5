package collision

import "github.com/jakecoffman/cp"

// probeInset keeps the probe strip strictly inside one pixel column or row,
// so BB intersection never picks up a tile that merely shares an edge.
const probeInset = 0.25

// ShapeCollision answers the same queries as TableCollision from a chipmunk
// space holding one static box per solid tile.
type ShapeCollision struct {
	space *cp.Space
	count int
}

// NewShapes builds a static space from a collision table.
func NewShapes(t *TableCollision) *ShapeCollision {
	space := cp.NewSpace()
	s := &ShapeCollision{space: space}
	if t == nil {
		return s
	}
	for ty := 0; ty < t.height; ty++ {
		for tx := 0; tx < t.width; tx++ {
			if !t.Solid(tx, ty) {
				continue
			}
			x0 := float64(tx * TileSize)
			y0 := float64(ty * TileSize)
			bb := cp.BB{L: x0, B: y0, R: x0 + TileSize, T: y0 + TileSize}
			shape := cp.NewBox2(space.StaticBody, bb, 0)
			space.AddShape(shape)
			s.count++
		}
	}
	return s
}

// Shapes returns the number of static boxes in the space.
func (s *ShapeCollision) Shapes() int {
	return s.count
}

func (s *ShapeCollision) Blocked(x, y, w, h int, dir Direction) bool {
	if s == nil || s.space == nil || w <= 0 || h <= 0 {
		return false
	}
	fx, fy := float64(x), float64(y)
	fw, fh := float64(w), float64(h)

	var probe cp.BB
	switch dir {
	case Left:
		probe = cp.BB{L: fx - 1 + probeInset, R: fx - probeInset, B: fy + probeInset, T: fy + fh - probeInset}
	case Right:
		probe = cp.BB{L: fx + fw + probeInset, R: fx + fw + 1 - probeInset, B: fy + probeInset, T: fy + fh - probeInset}
	case Up:
		probe = cp.BB{L: fx + probeInset, R: fx + fw - probeInset, B: fy - 1 + probeInset, T: fy - probeInset}
	case Down:
		probe = cp.BB{L: fx + probeInset, R: fx + fw - probeInset, B: fy + fh + probeInset, T: fy + fh + 1 - probeInset}
	default:
		return false
	}

	hit := false
	s.space.BBQuery(probe, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		hit = true
	}, nil)
	return hit
}
