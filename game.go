package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/platformer/autopilot"
	"github.com/milk9111/platformer/fix"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/platform"
	"github.com/milk9111/platformer/player"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/sprite"
)

type Options struct {
	Level     string
	Collision string
	Autopilot string
	Debug     bool
	Watch     bool
}

type Game struct {
	ctx           *platform.Context
	sync          *vsync
	stopped       chan struct{}
	level         *levels.Level
	collisionKind string

	controls *controls
	pilot    *autopilot.Script
	watcher  *prefabs.Watcher
	render   *renderer

	clipboardReady bool
}

func NewGame(opts Options) (*Game, error) {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}
	controlsSpec, err := prefabs.LoadControlsSpec()
	if err != nil {
		return nil, err
	}
	ctrls, err := newControls(controlsSpec)
	if err != nil {
		return nil, err
	}

	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}
	coll, err := lvl.Collision(opts.Collision)
	if err != nil {
		return nil, err
	}

	players, sets, err := buildPlayers(playerSpec)
	if err != nil {
		return nil, err
	}

	sync := newVsync()
	ctx, err := platform.NewContext(platform.Config{
		Backend:             sync,
		Map:                 lvl.Map(),
		ScreenWidth:         cameraSpec.ScreenWidth,
		ScreenHeight:        cameraSpec.ScreenHeight,
		Collision:           coll,
		Players:             players,
		VerticalScrollTiles: cameraSpec.VerticalScrollTiles,
		ShakeFrames:         cameraSpec.Shake.Frames,
		ShakeIntensity:      cameraSpec.Shake.Intensity,
	})
	if err != nil {
		return nil, err
	}
	ctx.Debug = opts.Debug

	g := &Game{
		ctx:           ctx,
		sync:          sync,
		stopped:       make(chan struct{}),
		level:         lvl,
		collisionKind: opts.Collision,
		controls:      ctrls,
	}

	if opts.Autopilot != "" {
		if err := g.loadPilot(opts.Autopilot); err != nil {
			return nil, err
		}
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardReady = true
	}

	g.render = newRenderer(lvl, players, sets)

	go g.loop()
	return g, nil
}

// buildPlayers creates one player per spec entry with its sprite cycles.
func buildPlayers(spec *prefabs.PlayerSpec) ([]*player.Player, []prefabs.AnimationSetSpec, error) {
	if len(spec.Players) == 0 {
		return nil, nil, errors.New("prefabs: player.yaml declares no players")
	}
	w, h := spec.Size()
	players := make([]*player.Player, 0, len(spec.Players))
	sets := make([]prefabs.AnimationSetSpec, 0, len(spec.Players))
	for _, entry := range spec.Players {
		c, err := input.ParseController(entry.Controller)
		if err != nil {
			return nil, nil, fmt.Errorf("prefabs: player.yaml: %w", err)
		}
		set, err := spec.AnimationSet(entry.Animations)
		if err != nil {
			return nil, nil, err
		}
		spr := sprite.New(set.SpriteCycles(), 0, 0)
		p := player.New(c, fix.FromFloat(entry.Spawn.X), fix.FromFloat(entry.Spawn.Y), spr)
		p.Anims = set.Set()
		p.Tuning = spec.Tuning()
		p.Width, p.Height = w, h
		players = append(players, p)
		sets = append(sets, set)
	}
	return players, sets, nil
}

func (g *Game) loadPilot(name string) error {
	pilot, err := autopilot.Load(name)
	if err != nil {
		return err
	}
	pilot.Observe(func() (int, int) {
		if p := g.playerFor(input.Controller2); p != nil {
			return p.X.Int(), p.Y.Int()
		}
		return 0, 0
	})
	g.pilot = pilot
	return nil
}

func (g *Game) playerFor(c input.Controller) *player.Player {
	for _, p := range g.ctx.Players {
		if p.Controller == c {
			return p
		}
	}
	return nil
}

// loop is the logic goroutine. It owns every core value while it runs.
func (g *Game) loop() {
	defer close(g.stopped)
	if !g.sync.next() {
		return
	}
	platform.Run(g.ctx, g.beforeFrame)
}

func (g *Game) beforeFrame() bool {
	if g.sync.stopping() {
		return false
	}
	g.applyReloads()
	return true
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copyOverlay()
	}
	if !g.sync.refresh(g.poll(), g.stopped) {
		return ebiten.Termination
	}
	return nil
}

// poll reads both pads. Pad 2 falls back to the autopilot when it has no
// gamepad and no keys are held.
func (g *Game) poll() [2]input.Button {
	var masks [2]input.Button
	for i := range masks {
		c := input.Controller(i)
		if id, ok := g.controls.gamepad(c); ok {
			masks[i] = gamepadMask(id)
			continue
		}
		masks[i] = g.controls.keyboard(c)
		if c == input.Controller2 && masks[i] == input.ButtonNone && g.pilot != nil {
			masks[i] = g.pilot.Next()
		}
	}
	return masks
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.draw(screen, g.sync.scrollX, g.sync.scrollY, g.ctx.Debug)
	if g.ctx.Debug {
		ebitenutil.DebugPrintAt(screen, g.overlay(), 2, 2)
	}
}

func (g *Game) overlay() string {
	return debugText(g.ctx, g.collisionKind, ebiten.ActualFPS())
}

func (g *Game) copyOverlay() {
	if !g.clipboardReady {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.overlay()))
	log.Printf("debug overlay copied to clipboard")
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenSize()
}

func (g *Game) ScreenSize() (int, int) {
	return g.ctx.Camera.ScreenSize()
}

func (g *Game) Close() {
	g.sync.stop()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
