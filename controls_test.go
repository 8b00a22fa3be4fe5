package main

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/fix"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/platform"
	"github.com/milk9111/platformer/player"
	"github.com/milk9111/platformer/prefabs"
)

func TestLookupKey(t *testing.T) {
	cases := []struct {
		name string
		want ebiten.Key
	}{
		{"ArrowUp", ebiten.KeyArrowUp},
		{"arrowleft", ebiten.KeyArrowLeft},
		{" Z ", ebiten.KeyZ},
		{"Enter", ebiten.KeyEnter},
		{"Space", ebiten.KeySpace},
	}
	for _, tc := range cases {
		got, ok := lookupKey(tc.name)
		if !ok || got != tc.want {
			t.Fatalf("lookupKey(%q) = %v, %v", tc.name, got, ok)
		}
	}
	if _, ok := lookupKey("Hyper"); ok {
		t.Fatalf("expected unknown key")
	}
}

func TestNewControlsFromEmbeddedSpec(t *testing.T) {
	spec, err := prefabs.LoadControlsSpec()
	if err != nil {
		t.Fatalf("LoadControlsSpec: %v", err)
	}
	c, err := newControls(spec)
	if err != nil {
		t.Fatalf("newControls: %v", err)
	}
	for pad, bindings := range c.keys {
		if len(bindings) != 8 {
			t.Fatalf("pad %d: expected 8 bindings, got %d", pad, len(bindings))
		}
	}

	bad := &prefabs.ControlsSpec{Pad1: map[string][]string{"up": {"NotAKey"}}}
	if _, err := newControls(bad); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestStickMask(t *testing.T) {
	cases := []struct {
		h, v float64
		want input.Button
	}{
		{0, 0, input.ButtonNone},
		{0.3, -0.3, input.ButtonNone},
		{-0.9, 0, input.ButtonLeft},
		{0.5, 0, input.ButtonRight},
		{0, -1, input.ButtonUp},
		{1, 1, input.ButtonRight | input.ButtonDown},
	}
	for _, tc := range cases {
		if got := stickMask(tc.h, tc.v); got != tc.want {
			t.Fatalf("stickMask(%v, %v) = %v, want %v", tc.h, tc.v, got, tc.want)
		}
	}
}

func TestDebugText(t *testing.T) {
	p := player.New(input.Controller2, fix.FromInt(40), fix.FromInt(50), nil)
	ctx, err := platform.NewContext(platform.Config{
		Backend:      newVsync(),
		Map:          &camera.Map{WidthTiles: 64, HeightTiles: 32, TileSize: 16},
		ScreenWidth:  camera.DefaultScreenWidth,
		ScreenHeight: camera.DefaultScreenHeight,
		Players:      []*player.Player{p},
	})
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	got := debugText(ctx, "", 59.94)
	for _, want := range []string{"fps 59.9", "collision none", "cam 0,0 tracking limit 32", "pad2 idle", "x=40 y=50", "anim=-1:-1"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in overlay:\n%s", want, got)
		}
	}
}

func TestBuildPlayersFromSpec(t *testing.T) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	players, sets, err := buildPlayers(spec)
	if err != nil {
		t.Fatalf("buildPlayers: %v", err)
	}
	if len(players) != 2 || len(sets) != 2 {
		t.Fatalf("expected two players")
	}
	if players[0].Anims != player.FrogAnimations || players[1].Anims != player.SonicAnimations {
		t.Fatalf("unexpected animation tables %+v / %+v", players[0].Anims, players[1].Anims)
	}
	if players[1].Controller != input.Controller2 || players[1].X.Int() != 160 {
		t.Fatalf("unexpected player 2 %+v", players[1])
	}

	if _, _, err := buildPlayers(&prefabs.PlayerSpec{}); err == nil {
		t.Fatalf("expected error for empty spec")
	}
}
