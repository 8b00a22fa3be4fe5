package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/platformer/autopilot"
	"github.com/milk9111/platformer/levels"
)

const windowScale = 3

func main() {
	levelName := flag.String("level", levels.Default, "level in levels/ or a path to a level JSON file")
	collisionKind := flag.String("collision", "none", "collision query: none, table or shapes")
	script := flag.String("autopilot", autopilot.DefaultScript, "tengo script driving pad 2 when no second gamepad is attached (empty disables)")
	debug := flag.Bool("debug", false, "start with the debug overlay shown")
	watch := flag.Bool("watch", false, "hot reload prefabs/ specs and scripts from disk")
	flag.Parse()

	game, err := NewGame(Options{
		Level:     *levelName,
		Collision: *collisionKind,
		Autopilot: *script,
		Debug:     *debug,
		Watch:     *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.ScreenSize()
	ebiten.SetWindowSize(w*windowScale, h*windowScale)
	ebiten.SetWindowTitle("platformer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
