// Package sheet generates placeholder sprite sheets for animation sets that
// have no art.
package sheet

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/platformer/prefabs"
)

// Sheet holds one image per frame, indexed by cycle then frame.
type Sheet [][]*ebiten.Image

// Frame returns the image for (anim, frame), or nil when out of range.
func (s Sheet) Frame(anim, frame int) *ebiten.Image {
	if anim < 0 || anim >= len(s) || frame < 0 || frame >= len(s[anim]) {
		return nil
	}
	return s[anim][frame]
}

// Build renders the set colour shaded by frame, with an eye on the facing
// side and a marker bar that walks across as frames advance.
func Build(set prefabs.AnimationSetSpec, w, h int) Sheet {
	var base color.Color = colornames.Crimson
	if set.Color != nil && set.Color.Color != nil {
		base = set.Color.Color
	}
	s := make(Sheet, len(set.Cycles))
	for ci, cycle := range set.Cycles {
		n := max(cycle.Frames, 1)
		frames := make([]*ebiten.Image, n)
		for fi := range frames {
			img := ebiten.NewImage(w, h)
			img.Fill(Shade(base, 1-0.4*float64(fi)/float64(n)))
			vector.FillRect(img, float32(w)*0.65, float32(h)*0.2, float32(w)*0.2, float32(h)*0.2, colornames.White, false)
			barW := float32(w) / float32(n)
			vector.FillRect(img, barW*float32(fi), float32(h)-4, barW, 4, colornames.Gold, false)
			frames[fi] = img
		}
		s[ci] = frames
	}
	return s
}

// Shade scales the colour channels of c by f, keeping alpha.
func Shade(c color.Color, f float64) color.Color {
	r, g, b, a := c.RGBA()
	scale := func(v uint32) uint8 {
		return uint8(min(float64(v>>8)*f, 255))
	}
	return color.RGBA{R: scale(r), G: scale(g), B: scale(b), A: uint8(a >> 8)}
}
