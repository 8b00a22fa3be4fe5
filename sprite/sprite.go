// Package sprite holds backend-neutral sprite state: screen position,
// horizontal flip and the playing animation cycle.
package sprite

// Handle is the display-side view of an entity. The core sets position and
// animation selection; allocation and drawing belong to the frame driver.
type Handle interface {
	SetPosition(x, y int)
	Position() (x, y int)
	// SetAnimation selects a cycle. Selecting the cycle already playing
	// leaves its frame alone.
	SetAnimation(anim int)
	// SetAnimationFrame selects a cycle and restarts it at frame.
	SetAnimationFrame(anim, frame int)
	SetHFlip(flip bool)
	HFlip() bool
	Animation() int
	Frame() int
	FrameCount() int
}

// Cycle describes one animation cycle on a sheet row.
type Cycle struct {
	Name   string
	Frames int
	FPS    float64
	Loop   bool
}

// Sprite is the default Handle. Update advances the playing cycle by one
// 60 Hz tick.
type Sprite struct {
	X, Y   int
	Flip   bool
	Cycles []Cycle

	anim    int
	frame   int
	timer   int
	playing bool
}

// New creates a sprite at (x, y) playing cycle 0.
func New(cycles []Cycle, x, y int) *Sprite {
	return &Sprite{X: x, Y: y, Cycles: cycles, playing: true}
}

func (s *Sprite) SetPosition(x, y int) {
	s.X = x
	s.Y = y
}

func (s *Sprite) Position() (int, int) {
	return s.X, s.Y
}

func (s *Sprite) SetAnimation(anim int) {
	if anim == s.anim {
		return
	}
	s.SetAnimationFrame(anim, 0)
}

func (s *Sprite) SetAnimationFrame(anim, frame int) {
	if anim < 0 || anim >= len(s.Cycles) {
		return
	}
	s.anim = anim
	s.frame = 0
	if n := s.Cycles[anim].Frames; frame > 0 && frame < n {
		s.frame = frame
	}
	s.timer = 0
	s.playing = true
}

func (s *Sprite) SetHFlip(flip bool) { s.Flip = flip }
func (s *Sprite) HFlip() bool        { return s.Flip }
func (s *Sprite) Animation() int     { return s.anim }
func (s *Sprite) Frame() int         { return s.frame }

func (s *Sprite) FrameCount() int {
	if s.anim < 0 || s.anim >= len(s.Cycles) {
		return 0
	}
	return s.Cycles[s.anim].Frames
}

// Playing reports whether the cycle is still advancing. Non-looping cycles
// stop on their last frame.
func (s *Sprite) Playing() bool { return s.playing }

// Update advances the current cycle by one tick.
func (s *Sprite) Update() {
	if !s.playing || s.anim < 0 || s.anim >= len(s.Cycles) {
		return
	}
	c := s.Cycles[s.anim]
	if c.Frames <= 1 || c.FPS <= 0 {
		return
	}

	ticksPerFrame := int(60.0 / c.FPS)
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}

	s.timer++
	if s.timer < ticksPerFrame {
		return
	}
	s.timer = 0
	s.frame++
	if s.frame >= c.Frames {
		if c.Loop {
			s.frame = 0
		} else {
			s.frame = c.Frames - 1
			s.playing = false
		}
	}
}

// OnLastFrame reports whether h shows the final frame of its cycle.
func OnLastFrame(h Handle) bool {
	n := h.FrameCount()
	return n > 0 && h.Frame() == n-1
}
