package main

import (
	"log"
	"path/filepath"

	"github.com/milk9111/platformer/prefabs"
)

// applyReloads re-reads changed prefab files. It runs on the logic
// goroutine between frames.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("prefabs: watch: %v", err)
		}
	default:
	}

	for _, name := range g.watcher.Drain() {
		if err := g.reload(name); err != nil {
			log.Printf("prefabs: reload %s: %v", name, err)
			continue
		}
		log.Printf("prefabs: reloaded %s", name)
	}
}

func (g *Game) reload(name string) error {
	switch name {
	case "player.yaml":
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		tuning := spec.Tuning()
		for _, p := range g.ctx.Players {
			p.Tuning = tuning
		}
	case "camera.yaml":
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return err
		}
		g.ctx.Camera.SetVerticalScrollLimit(spec.VerticalScrollTiles)
		if spec.Shake.Frames > 0 {
			g.ctx.ShakeFrames = spec.Shake.Frames
		}
		if spec.Shake.Intensity > 0 {
			g.ctx.ShakeIntensity = spec.Shake.Intensity
		}
	case "controls.toml":
		spec, err := prefabs.LoadControlsSpec()
		if err != nil {
			return err
		}
		ctrls, err := newControls(spec)
		if err != nil {
			return err
		}
		g.controls = ctrls
	default:
		if g.pilot == nil || filepath.Ext(name) != ".tengo" || filepath.Base(g.pilot.Name()) != name {
			return nil
		}
		return g.loadPilot(g.pilot.Name())
	}
	return nil
}
