package main

import (
	"fmt"
	"strings"

	"github.com/milk9111/platformer/platform"
)

// debugText is the overlay shown while debug mode is on.
func debugText(ctx *platform.Context, collisionKind string, fps float64) string {
	var b strings.Builder
	if collisionKind == "" {
		collisionKind = "none"
	}
	fmt.Fprintf(&b, "fps %.1f frame %d collision %s\n", fps, ctx.Frame, collisionKind)

	cx, cy := ctx.Camera.Position()
	state := "tracking"
	if !ctx.Camera.Active() {
		state = "fixed"
	}
	fmt.Fprintf(&b, "cam %d,%d %s limit %d\n", cx, cy, state, ctx.Camera.VerticalScrollLimit())

	for _, p := range ctx.Players {
		anim, frame := -1, -1
		if p.Sprite != nil {
			anim, frame = p.Sprite.Animation(), p.Sprite.Frame()
		}
		fmt.Fprintf(&b, "%s %-6s x=%d y=%d ctr=%d idle=%t anim=%d:%d %s\n",
			p.Controller, p.State, p.X.Int(), p.Y.Int(), p.FrameCounter, p.CanIdle, anim, frame,
			ctx.Input.Pad(p.Controller).Current)
	}
	return b.String()
}
