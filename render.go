package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/player"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/sheet"
)

// renderer draws the scrolled tile map and the player sprites from
// generated placeholder sheets.
type renderer struct {
	level   *levels.Level
	tiles   []*ebiten.Image
	players []*player.Player
	sheets  []sheet.Sheet
	face    text.Face
}

func newRenderer(lvl *levels.Level, players []*player.Player, sets []prefabs.AnimationSetSpec) *renderer {
	r := &renderer{
		level:   lvl,
		players: players,
		face:    text.NewGoXFace(basicfont.Face7x13),
	}

	for i, meta := range lvl.LayerMeta {
		c, err := prefabs.ParseColor(meta.Color)
		if err != nil {
			log.Printf("levels: layer %d: %v", i, err)
			c = colornames.Magenta
		}
		img := ebiten.NewImage(lvl.TileSize, lvl.TileSize)
		img.Fill(c)
		vector.StrokeRect(img, 0, 0, float32(lvl.TileSize), float32(lvl.TileSize), 1, sheet.Shade(c, 0.7), false)
		r.tiles = append(r.tiles, img)
	}

	for i, p := range players {
		var set prefabs.AnimationSetSpec
		if i < len(sets) {
			set = sets[i]
		}
		r.sheets = append(r.sheets, sheet.Build(set, p.Width, p.Height))
	}
	return r
}

func (r *renderer) draw(screen *ebiten.Image, scrollX, scrollY int, debug bool) {
	screen.Fill(colornames.Midnightblue)
	r.drawTiles(screen, scrollX, scrollY)
	for i, p := range r.players {
		r.drawPlayer(screen, i, p, debug)
	}
}

func (r *renderer) drawTiles(screen *ebiten.Image, scrollX, scrollY int) {
	lvl := r.level
	ts := lvl.TileSize
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	tx0, ty0 := max(scrollX/ts, 0), max(scrollY/ts, 0)
	tx1, ty1 := min((scrollX+sw)/ts+1, lvl.Width), min((scrollY+sh)/ts+1, lvl.Height)

	for layer := range lvl.Layers {
		if layer >= len(r.tiles) {
			break
		}
		for ty := ty0; ty < ty1; ty++ {
			for tx := tx0; tx < tx1; tx++ {
				if lvl.Tile(layer, tx, ty) == 0 {
					continue
				}
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(float64(tx*ts-scrollX), float64(ty*ts-scrollY))
				screen.DrawImage(r.tiles[layer], op)
			}
		}
	}
}

func (r *renderer) drawPlayer(screen *ebiten.Image, i int, p *player.Player, debug bool) {
	if p.Sprite == nil || i >= len(r.sheets) {
		return
	}
	sx, sy := p.Sprite.Position()
	if img := r.sheets[i].Frame(p.Sprite.Animation(), p.Sprite.Frame()); img != nil {
		op := &ebiten.DrawImageOptions{}
		if p.Sprite.HFlip() {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(float64(p.Width), 0)
		}
		op.GeoM.Translate(float64(sx), float64(sy))
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(img, op)
	}

	label := &text.DrawOptions{}
	label.GeoM.Translate(float64(sx), float64(sy-14))
	label.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(screen, fmt.Sprintf("P%d", int(p.Controller)+1), r.face, label)

	if debug {
		vector.StrokeRect(screen, float32(sx), float32(sy), float32(p.Width), float32(p.Height), 1, colornames.Yellow, false)
	}
}
