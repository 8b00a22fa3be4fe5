package player

import (
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/input"
)

// State is the player's animation/behaviour state. Exactly one is active.
type State int

const (
	StateIdle State = iota
	StateWalk
	StateLook
	StateJump
	StateCrouch
)

func (s State) String() string {
	if b := behaviorFor(s); b != nil {
		return b.Name()
	}
	return "unknown"
}

// stateBehavior applies one state's per-frame effects.
type stateBehavior interface {
	Name() string
	Apply(p *Player, pad input.Edges, coll collision.Query)
}

// State singletons, indexed by State.
var behaviors = [...]stateBehavior{
	StateIdle:   idleState{},
	StateWalk:   walkState{},
	StateLook:   lookState{},
	StateJump:   jumpState{},
	StateCrouch: crouchState{},
}

func behaviorFor(s State) stateBehavior {
	if s < 0 || int(s) >= len(behaviors) {
		return nil
	}
	return behaviors[s]
}

type idleState struct{}

func (idleState) Name() string { return "idle" }
func (idleState) Apply(p *Player, pad input.Edges, coll collision.Query) {
	p.setAnimation(p.Anims.Idle)
	p.FrameCounter++
	p.CanIdle = true
}

type walkState struct{}

func (walkState) Name() string { return "walk" }
func (walkState) Apply(p *Player, pad input.Edges, coll collision.Query) {
	p.walk(pad, coll)
	p.setAnimation(p.Anims.Walk)
	p.FrameCounter = 0
	p.CanIdle = true
}

type lookState struct{}

func (lookState) Name() string { return "look" }
func (lookState) Apply(p *Player, pad input.Edges, coll collision.Query) {
	p.setAnimation(p.Anims.Look)
	p.FrameCounter = 0
	p.CanIdle = false
}

// jumpState has no transition into it yet; it only plays its cycle.
type jumpState struct{}

func (jumpState) Name() string { return "jump" }
func (jumpState) Apply(p *Player, pad input.Edges, coll collision.Query) {
	if p.Sprite != nil {
		p.Sprite.SetAnimationFrame(p.Anims.Jump, 0)
	}
	p.FrameCounter = 0
	p.CanIdle = false
}

type crouchState struct{}

func (crouchState) Name() string { return "crouch" }
func (crouchState) Apply(p *Player, pad input.Edges, coll collision.Query) {
	p.setAnimation(p.Anims.Crouch)
	p.FrameCounter = 0
	p.CanIdle = false
}
