package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/sheet"
	"github.com/milk9111/platformer/sprite"
)

const (
	viewSize = 256
	scale    = 4
)

type preview struct {
	spec   *prefabs.PlayerSpec
	names  []string
	set    int
	w, h   int
	sheet  sheet.Sheet
	cycles []sprite.Cycle
	sprite *sprite.Sprite
}

func newPreview(spec *prefabs.PlayerSpec, start string) (*preview, error) {
	names := make([]string, 0, len(spec.AnimationSets))
	for name := range spec.AnimationSets {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("player.yaml declares no animation sets")
	}

	w, h := spec.Size()
	p := &preview{spec: spec, names: names, w: w, h: h}
	for i, name := range names {
		if name == start {
			p.set = i
		}
	}
	p.load()
	return p, nil
}

func (p *preview) load() {
	set := p.spec.AnimationSets[p.names[p.set]]
	p.sheet = sheet.Build(set, p.w, p.h)
	p.cycles = set.SpriteCycles()
	p.sprite = sprite.New(p.cycles, 0, 0)
}

func (p *preview) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		p.set = (p.set + 1) % len(p.names)
		p.load()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		p.step(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		p.step(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		p.sprite.SetAnimationFrame(p.sprite.Animation(), 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		p.sprite.SetHFlip(!p.sprite.HFlip())
	}
	p.sprite.Update()
	return nil
}

func (p *preview) step(d int) {
	if len(p.cycles) == 0 {
		return
	}
	n := len(p.cycles)
	p.sprite.SetAnimation((p.sprite.Animation() + d + n) % n)
}

func (p *preview) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	anim, frame := p.sprite.Animation(), p.sprite.Frame()
	if img := p.sheet.Frame(anim, frame); img != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		if p.sprite.HFlip() {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(float64(p.w*scale), 0)
		}
		op.GeoM.Translate(float64(viewSize-p.w*scale)/2, float64(viewSize-p.h*scale)/2)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(img, op)
	}

	name := ""
	if anim >= 0 && anim < len(p.cycles) {
		c := p.cycles[anim]
		name = fmt.Sprintf("%s %d/%d %.0ffps loop=%t", c.Name, frame+1, c.Frames, c.FPS, c.Loop)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s [%d] %s\ntab set, left/right cycle, space restart, f flip",
		p.names[p.set], anim, name))
}

func (p *preview) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	set := flag.String("set", "frog", "animation set to show first")
	flag.Parse()

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatal(err)
	}
	p, err := newPreview(spec, *set)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(viewSize*2, viewSize*2)
	ebiten.SetWindowTitle("Animation Preview")
	if err := ebiten.RunGame(p); err != nil {
		log.Fatal(err)
	}
}
