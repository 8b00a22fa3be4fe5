// Package platform owns the per-frame state shared by the core components
// and sequences them once per display refresh.
package platform

import (
	"errors"
	"fmt"

	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/player"
)

const (
	DefaultShakeFrames    = 20
	DefaultShakeIntensity = 4
)

var ErrNoBackend = errors.New("platform: no backend")

// Backend is the hardware side of the frame: pad polling, the refresh wait
// and map scrolling.
type Backend interface {
	PollControllers() (pad1, pad2 input.Button)
	camera.Backend
}

// Config describes the fixed setup of a Context.
type Config struct {
	Backend      Backend
	Map          *camera.Map
	ScreenWidth  int
	ScreenHeight int
	Collision    collision.Query
	Players      []*player.Player
	// Tracked is the index into Players the camera follows.
	Tracked int
	// VerticalScrollTiles overrides the camera's default ceiling when > 0.
	VerticalScrollTiles int
	ShakeFrames         int
	ShakeIntensity      int
}

// ShakeRequest asks the frame loop to run a camera shake between frames.
type ShakeRequest struct {
	Frames    int
	Intensity int
}

// Context is the explicit platform state handed to every system.
type Context struct {
	Input     input.State
	Camera    *camera.Camera
	Players   []*player.Player
	Collision collision.Query
	Backend   Backend
	Tracked   int

	// Frame counts completed Steps.
	Frame int
	Debug bool

	ShakeFrames    int
	ShakeIntensity int
	pendingShake   *ShakeRequest

	scheduler *Scheduler
}

// NewContext binds the camera to the map and builds the default schedule.
// It is the one fallible boot step; the frame loop must not start if it
// fails.
func NewContext(cfg Config) (*Context, error) {
	if cfg.Backend == nil {
		return nil, ErrNoBackend
	}
	cam := camera.New(cfg.ScreenWidth, cfg.ScreenHeight, cfg.Backend)
	if err := cam.Bind(cfg.Map); err != nil {
		return nil, fmt.Errorf("platform: %w", err)
	}
	if cfg.VerticalScrollTiles > 0 {
		cam.SetVerticalScrollLimit(cfg.VerticalScrollTiles)
	}

	coll := cfg.Collision
	if coll == nil {
		coll = collision.NoCollision{}
	}
	tracked := cfg.Tracked
	if tracked < 0 || tracked >= len(cfg.Players) {
		tracked = 0
	}
	shakeFrames := cfg.ShakeFrames
	if shakeFrames <= 0 {
		shakeFrames = DefaultShakeFrames
	}
	shakeIntensity := cfg.ShakeIntensity
	if shakeIntensity <= 0 {
		shakeIntensity = DefaultShakeIntensity
	}

	c := &Context{
		Camera:         cam,
		Players:        cfg.Players,
		Collision:      coll,
		Backend:        cfg.Backend,
		Tracked:        tracked,
		ShakeFrames:    shakeFrames,
		ShakeIntensity: shakeIntensity,
	}
	c.scheduler = DefaultScheduler()
	return c, nil
}

// TrackedPlayer returns the player the camera follows, or nil.
func (c *Context) TrackedPlayer() *player.Player {
	if c == nil || c.Tracked < 0 || c.Tracked >= len(c.Players) {
		return nil
	}
	return c.Players[c.Tracked]
}

// RequestShake queues a shake for the end of the frame. A later request in
// the same frame replaces an earlier one.
func (c *Context) RequestShake(frames, intensity int) {
	if c == nil || frames <= 0 {
		return
	}
	c.pendingShake = &ShakeRequest{Frames: frames, Intensity: intensity}
}

// PendingShake returns the queued shake, if any.
func (c *Context) PendingShake() (ShakeRequest, bool) {
	if c == nil || c.pendingShake == nil {
		return ShakeRequest{}, false
	}
	return *c.pendingShake, true
}

// Scheduler returns the system order used by Step.
func (c *Context) Scheduler() *Scheduler {
	return c.scheduler
}

// SetScheduler replaces the system order.
func (c *Context) SetScheduler(s *Scheduler) {
	if s == nil {
		return
	}
	c.scheduler = s
}
