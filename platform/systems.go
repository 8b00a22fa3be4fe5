package platform

import "github.com/milk9111/platformer/input"

// InputSystem polls both pads once per frame.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (s *InputSystem) Update(c *Context) {
	if c == nil || c.Backend == nil {
		return
	}
	c.Input.Poll(c.Backend.PollControllers())
}

// ShortcutSystem handles pad-1 edges that are not player actions: Start
// toggles the debug overlay and C requests a camera shake.
type ShortcutSystem struct{}

func NewShortcutSystem() *ShortcutSystem {
	return &ShortcutSystem{}
}

func (s *ShortcutSystem) Update(c *Context) {
	if c == nil {
		return
	}
	pad := c.Input.Pad(input.Controller1)
	if pad.Pressed(input.ButtonStart) {
		c.Debug = !c.Debug
	}
	if pad.Pressed(input.ButtonC) {
		c.RequestShake(c.ShakeFrames, c.ShakeIntensity)
	}
}

// PlayerSystem runs each player's state machine against its own pad.
type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem {
	return &PlayerSystem{}
}

func (s *PlayerSystem) Update(c *Context) {
	if c == nil || c.Camera == nil {
		return
	}
	for _, p := range c.Players {
		if p == nil {
			continue
		}
		p.Update(c.Input.Pad(p.Controller), c.Camera, c.Collision)
	}
}

// CameraSystem follows the tracked player and places every other player's
// sprite relative to the new scroll. While the camera is inactive the scroll
// holds and the tracked sprite is placed like the rest.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (s *CameraSystem) Update(c *Context) {
	if c == nil || c.Camera == nil {
		return
	}
	tracked := c.TrackedPlayer()
	if tracked != nil && c.Camera.Active() {
		c.Camera.FollowTarget(tracked)
	} else {
		tracked = nil
	}
	for _, p := range c.Players {
		if p == nil || p == tracked || p.Sprite == nil {
			continue
		}
		p.Sprite.SetPosition(c.Camera.ToScreen(p.X, p.Y))
	}
}

type animator interface {
	Update()
}

// AnimationSystem advances every player sprite that animates itself.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(c *Context) {
	if c == nil {
		return
	}
	for _, p := range c.Players {
		if p == nil || p.Sprite == nil {
			continue
		}
		if a, ok := p.Sprite.(animator); ok {
			a.Update()
		}
	}
}
