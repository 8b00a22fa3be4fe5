// Package player drives one controller-bound player: state transitions,
// walking, animation selection and map clamping.
package player

import (
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/fix"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/sprite"
)

const (
	DefaultWalkSpeed   = 2
	DefaultLookTimeout = 240 // 4 s at 60 Hz
	DefaultWidth       = 32
	DefaultHeight      = 32
)

// AnimationSet maps states to cycle indices on a sprite sheet.
type AnimationSet struct {
	Idle   int
	Walk   int
	Look   int
	Jump   int
	Crouch int
}

var (
	FrogAnimations  = AnimationSet{Idle: 0, Walk: 1, Look: 2, Jump: 3, Crouch: 4}
	SonicAnimations = AnimationSet{Idle: 0, Look: 1, Walk: 2, Crouch: 6, Jump: 7}
)

// AnimationsFor returns the built-in table for a controller.
func AnimationsFor(c input.Controller) AnimationSet {
	if c&1 == input.Controller2 {
		return SonicAnimations
	}
	return FrogAnimations
}

// Tuning holds the adjustable movement constants.
type Tuning struct {
	WalkSpeed   fix.Fix32
	LookTimeout int
}

func DefaultTuning() Tuning {
	return Tuning{
		WalkSpeed:   fix.FromInt(DefaultWalkSpeed),
		LookTimeout: DefaultLookTimeout,
	}
}

// Bounds keeps an entity box on the map.
type Bounds interface {
	ClampToMapBounds(x, y *fix.Fix32, w, h int)
}

// Player is one controller-driven character.
type Player struct {
	X, Y   fix.Fix32
	VX, VY fix.Fix32
	Width  int
	Height int

	State        State
	FrameCounter int
	CanIdle      bool

	Controller input.Controller
	Sprite     sprite.Handle
	Anims      AnimationSet
	Tuning     Tuning
}

// New creates an idle player at (x, y) driven by controller c.
func New(c input.Controller, x, y fix.Fix32, handle sprite.Handle) *Player {
	return &Player{
		X:          x,
		Y:          y,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		State:      StateIdle,
		CanIdle:    true,
		Controller: c,
		Sprite:     handle,
		Anims:      AnimationsFor(c),
		Tuning:     DefaultTuning(),
	}
}

func (p *Player) Position() (fix.Fix32, fix.Fix32) { return p.X, p.Y }
func (p *Player) Size() (int, int)                 { return p.Width, p.Height }
func (p *Player) Handle() sprite.Handle            { return p.Sprite }

// Update runs one frame: pick the next state, apply its effects, clamp to
// the map and push the position to the sprite.
func (p *Player) Update(pad input.Edges, bounds Bounds, coll collision.Query) {
	if coll == nil {
		coll = collision.NoCollision{}
	}

	next := p.nextState(pad)
	if next != p.State {
		p.State = next
		p.FrameCounter = 0
	}
	p.VX, p.VY = 0, 0

	if b := behaviorFor(p.State); b != nil {
		b.Apply(p, pad, coll)
	}

	if p.State == StateLook && p.lookFinished() {
		p.FrameCounter = 0
		p.CanIdle = true
	}

	if bounds != nil {
		bounds.ClampToMapBounds(&p.X, &p.Y, p.Width, p.Height)
	}
	if p.Sprite != nil {
		p.Sprite.SetPosition(p.X.Int(), p.Y.Int())
	}
}

// nextState applies the transition rules in priority order. Crouch is
// decided last and overrides the rest.
func (p *Player) nextState(pad input.Edges) State {
	next := p.State
	switch {
	case pad.Down(input.ButtonDir):
		next = StateWalk
	case p.State == StateIdle && p.FrameCounter > p.Tuning.LookTimeout:
		next = StateLook
	case p.State == StateLook && p.lookFinished():
		next = StateIdle
	case p.CanIdle:
		next = StateIdle
	}

	if pad.Down(input.ButtonA) {
		next = StateCrouch
		p.CanIdle = false
	} else if next == StateCrouch {
		next = StateIdle
		p.CanIdle = true
	}
	return next
}

func (p *Player) lookFinished() bool {
	if p.Sprite == nil {
		return true
	}
	return p.Sprite.Animation() == p.Anims.Look && sprite.OnLastFrame(p.Sprite)
}

// walk moves one step per held direction. Diagonals move at full speed on
// both axes. Each axis is gated by the collision query before it moves.
func (p *Player) walk(pad input.Edges, coll collision.Query) {
	speed := p.Tuning.WalkSpeed
	x, y := p.X.Int(), p.Y.Int()

	if pad.Down(input.ButtonUp) && !coll.Blocked(x, y, p.Width, p.Height, collision.Up) {
		p.Y -= speed
		p.VY -= speed
	}
	if pad.Down(input.ButtonDown) && !coll.Blocked(x, y, p.Width, p.Height, collision.Down) {
		p.Y += speed
		p.VY += speed
	}

	y = p.Y.Int()
	if pad.Down(input.ButtonLeft) {
		if p.Sprite != nil {
			p.Sprite.SetHFlip(true)
		}
		if !coll.Blocked(x, y, p.Width, p.Height, collision.Left) {
			p.X -= speed
			p.VX -= speed
		}
	}
	if pad.Down(input.ButtonRight) {
		if p.Sprite != nil {
			p.Sprite.SetHFlip(false)
		}
		if !coll.Blocked(x, y, p.Width, p.Height, collision.Right) {
			p.X += speed
			p.VX += speed
		}
	}
}

func (p *Player) setAnimation(anim int) {
	if p.Sprite != nil {
		p.Sprite.SetAnimation(anim)
	}
}
