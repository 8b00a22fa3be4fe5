package main

import (
	"testing"
	"time"

	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/fix"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/platform"
	"github.com/milk9111/platformer/player"
)

func TestVsyncHandsMasksToLogicFrames(t *testing.T) {
	v := newVsync()
	stopped := make(chan struct{})
	var seen [][2]input.Button
	go func() {
		defer close(stopped)
		if !v.next() {
			return
		}
		for i := 0; i < 3; i++ {
			p1, p2 := v.PollControllers()
			seen = append(seen, [2]input.Button{p1, p2})
			v.ScrollMapTo(i, i*2)
			v.WaitForRefresh()
		}
	}()

	frames := [][2]input.Button{
		{input.ButtonLeft, 0},
		{input.ButtonA, input.ButtonStart},
		{0, input.ButtonRight},
	}
	for i, m := range frames {
		if !v.refresh(m, stopped) {
			t.Fatalf("refresh %d: logic stopped early", i)
		}
		if v.scrollX != i || v.scrollY != i*2 {
			t.Fatalf("refresh %d: scroll %d,%d not settled", i, v.scrollX, v.scrollY)
		}
	}
	// The logic goroutine has exited after three frames.
	if v.refresh([2]input.Button{}, stopped) {
		t.Fatalf("expected refresh to report stopped logic")
	}
	for i, m := range frames {
		if seen[i] != m {
			t.Fatalf("frame %d: expected %v, got %v", i, m, seen[i])
		}
	}
}

func TestVsyncStopReleasesLogic(t *testing.T) {
	v := newVsync()
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		v.WaitForRefresh()
		v.next()
	}()
	v.stop()
	v.stop()
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatalf("logic goroutine still parked after stop")
	}
	if !v.stopping() {
		t.Fatalf("expected stopping")
	}
}

func TestVsyncRunsPlatformLoop(t *testing.T) {
	v := newVsync()
	p := player.New(input.Controller1, fix.FromInt(100), fix.FromInt(100), nil)
	ctx, err := platform.NewContext(platform.Config{
		Backend:      v,
		Map:          &camera.Map{WidthTiles: 64, HeightTiles: 32, TileSize: 16},
		ScreenWidth:  camera.DefaultScreenWidth,
		ScreenHeight: camera.DefaultScreenHeight,
		Players:      []*player.Player{p},
	})
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if !v.next() {
			return
		}
		platform.Run(ctx, func() bool { return !v.stopping() })
	}()

	for i := 0; i < 10; i++ {
		if !v.refresh([2]input.Button{input.ButtonRight, 0}, stopped) {
			t.Fatalf("logic stopped at refresh %d", i)
		}
	}
	if p.X.Int() != 120 {
		t.Fatalf("expected 10 walk frames, got x=%d", p.X.Int())
	}
	v.stop()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("logic goroutine did not stop")
	}
}
