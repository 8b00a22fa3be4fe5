// Package camera tracks a target, keeps the view inside the bound map and
// issues scroll updates to the display backend.
package camera

import (
	"errors"
	"fmt"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/fix"
	"github.com/milk9111/platformer/sprite"
)

const (
	DefaultScreenWidth         = 320
	DefaultScreenHeight        = 224
	DefaultVerticalScrollTiles = 32
)

var (
	ErrNoMap    = errors.New("camera: no map")
	ErrEmptyMap = errors.New("camera: map has no area")
	// ErrMapTooLarge means a map edge lies outside the fixed-point range.
	ErrMapTooLarge = errors.New("camera: map exceeds fixed-point range")
)

// Backend receives scroll updates and provides the display refresh wait.
type Backend interface {
	ScrollMapTo(x, y int)
	WaitForRefresh()
}

// Map is the scrollable plane, sized in tiles.
type Map struct {
	WidthTiles  int
	HeightTiles int
	TileSize    int
}

// PixelSize returns the map size in pixels.
func (m Map) PixelSize() (w, h int) {
	return m.WidthTiles * m.TileSize, m.HeightTiles * m.TileSize
}

// Target is anything the camera can follow.
type Target interface {
	Position() (x, y fix.Fix32)
	Size() (w, h int)
	Handle() sprite.Handle
}

// Camera holds the scroll state for one map.
type Camera struct {
	backend Backend

	screenW int
	screenH int

	mapW     int
	mapH     int
	tileSize int

	currentX int
	currentY int
	active   bool

	maxVerticalScrollTiles int

	lastScrollX int
	lastScrollY int
	scrolled    bool
}

// New returns an inactive camera for a screenW×screenH display. Bind must
// succeed before it tracks anything.
func New(screenW, screenH int, backend Backend) *Camera {
	if screenW <= 0 {
		screenW = DefaultScreenWidth
	}
	if screenH <= 0 {
		screenH = DefaultScreenHeight
	}
	return &Camera{
		backend:                backend,
		screenW:                screenW,
		screenH:                screenH,
		maxVerticalScrollTiles: DefaultVerticalScrollTiles,
	}
}

// Bind records the map bounds and activates tracking.
func (c *Camera) Bind(m *Map) error {
	if m == nil {
		return fmt.Errorf("camera: init failed: %w", ErrNoMap)
	}
	w, h := m.PixelSize()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("camera: init failed: %w (%dx%d tiles of %d px)", ErrEmptyMap, m.WidthTiles, m.HeightTiles, m.TileSize)
	}
	if w > fix.MaxInt || h > fix.MaxInt {
		return fmt.Errorf("camera: init failed: %w (%dx%d px, max %d)", ErrMapTooLarge, w, h, fix.MaxInt)
	}
	c.mapW = w
	c.mapH = h
	c.tileSize = m.TileSize
	c.currentX = 0
	c.currentY = 0
	c.scrolled = false
	c.active = true
	return nil
}

// MapSize returns the bound map size in pixels.
func (c *Camera) MapSize() (w, h int) {
	return c.mapW, c.mapH
}

// ScreenSize returns the display size in pixels.
func (c *Camera) ScreenSize() (w, h int) {
	return c.screenW, c.screenH
}

// Position returns the current scroll offset.
func (c *Camera) Position() (x, y int) {
	return c.currentX, c.currentY
}

func (c *Camera) Activate()    { c.active = true }
func (c *Camera) Deactivate()  { c.active = false }
func (c *Camera) Active() bool { return c.active }

// VerticalScrollLimit returns the vertical scroll ceiling in tiles.
func (c *Camera) VerticalScrollLimit() int {
	return c.maxVerticalScrollTiles
}

// SetVerticalScrollLimit sets the vertical scroll ceiling in tiles. Negative
// values are stored as 0.
func (c *Camera) SetVerticalScrollLimit(tiles int) {
	c.maxVerticalScrollTiles = max(tiles, 0)
}

// ClampToMapBounds keeps an entity box inside the map. Only the out of range
// axis snaps; an in-range value keeps its fraction.
func (c *Camera) ClampToMapBounds(x, y *fix.Fix32, w, h int) {
	if x != nil {
		px := x.Int()
		if cx := common.Clamp(px, 0, c.mapW-1-w); cx != px {
			*x = fix.FromInt(cx)
		}
	}
	if y != nil {
		py := y.Int()
		if cy := common.Clamp(py, 0, c.mapH-h); cy != py {
			*y = fix.FromInt(cy)
		}
	}
}

// clampScroll keeps a scroll offset inside [0, map-screen] on both axes,
// then applies the vertical tile ceiling.
func (c *Camera) clampScroll(x, y int) (int, int) {
	x = common.Clamp(x, 0, c.mapW-c.screenW)
	y = common.Clamp(y, 0, c.mapH-c.screenH)
	if c.tileSize > 0 {
		y = min(y, c.maxVerticalScrollTiles*c.tileSize)
	}
	return x, y
}

// FollowTarget centres the view on t. It does nothing while the camera is
// inactive.
func (c *Camera) FollowTarget(t Target) {
	if !c.active || t == nil {
		return
	}
	tx, ty := t.Position()
	w, h := t.Size()
	targetX, targetY := tx.Int(), ty.Int()

	x, y := c.clampScroll(
		targetX-c.screenW/2+w/2,
		targetY-c.screenH/2+h/2,
	)
	c.currentX = x
	c.currentY = y

	if !c.scrolled || x != c.lastScrollX || y != c.lastScrollY {
		c.scroll(x, y)
	}
	if s := t.Handle(); s != nil {
		s.SetPosition(targetX-x, targetY-y)
	}
}

// ToScreen converts a map position into screen space for the current scroll.
func (c *Camera) ToScreen(x, y fix.Fix32) (int, int) {
	return x.Int() - c.currentX, y.Int() - c.currentY
}

// SetPosition scrolls to (x, y) directly. Tracking wins: it does nothing
// while the camera is active.
func (c *Camera) SetPosition(x, y int) {
	if c.active {
		return
	}
	c.currentX, c.currentY = c.clampScroll(x, y)
	c.scroll(c.currentX, c.currentY)
}

// Shake jolts the view horizontally for frames refreshes, alternating
// +intensity and -intensity around the current offset. It blocks until done,
// then restores the offset and resumes tracking.
func (c *Camera) Shake(frames, intensity int) {
	c.Deactivate()
	baseX, baseY := c.currentX, c.currentY
	for i := 0; i < frames; i++ {
		offset := intensity
		if i%2 != 0 {
			offset = -intensity
		}
		c.SetPosition(baseX+offset, baseY)
		if c.backend != nil {
			c.backend.WaitForRefresh()
		}
	}
	c.currentX, c.currentY = baseX, baseY
	c.Activate()
}

func (c *Camera) scroll(x, y int) {
	c.lastScrollX = x
	c.lastScrollY = y
	c.scrolled = true
	if c.backend != nil {
		c.backend.ScrollMapTo(x, y)
	}
}
