package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/platformer/fix"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/player"
)

func TestLoadPlayerSpec(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	tuning := spec.Tuning()
	if tuning.WalkSpeed != fix.FromInt(2) || tuning.LookTimeout != 240 {
		t.Fatalf("unexpected tuning %+v", tuning)
	}
	if w, h := spec.Size(); w != 32 || h != 32 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
	if len(spec.Players) != 2 {
		t.Fatalf("expected two players, got %d", len(spec.Players))
	}

	cases := []struct {
		set  string
		want player.AnimationSet
	}{
		{"frog", player.FrogAnimations},
		{"sonic", player.SonicAnimations},
	}
	for _, tc := range cases {
		t.Run(tc.set, func(t *testing.T) {
			set, err := spec.AnimationSet(tc.set)
			if err != nil {
				t.Fatalf("AnimationSet: %v", err)
			}
			if set.Set() != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, set.Set())
			}
			cycles := set.SpriteCycles()
			for _, idx := range []int{tc.want.Idle, tc.want.Walk, tc.want.Look, tc.want.Jump, tc.want.Crouch} {
				if idx >= len(cycles) {
					t.Fatalf("index %d has no cycle", idx)
				}
			}
			if cycles[tc.want.Look].Loop {
				t.Fatalf("look cycle must not loop")
			}
			if set.Color == nil || set.Color.Color == nil {
				t.Fatalf("expected colour")
			}
		})
	}

	if _, err := spec.AnimationSet("knuckles"); !errors.Is(err, ErrUnknownSet) {
		t.Fatalf("expected ErrUnknownSet, got %v", err)
	}
}

func TestPlayerSpecDefaults(t *testing.T) {
	var spec *PlayerSpec
	if spec.Tuning() != player.DefaultTuning() {
		t.Fatalf("nil spec should use defaults")
	}
	empty := &PlayerSpec{}
	if w, h := empty.Size(); w != player.DefaultWidth || h != player.DefaultHeight {
		t.Fatalf("unexpected default size %dx%d", w, h)
	}
	half := &PlayerSpec{WalkSpeed: 1.5}
	if half.Tuning().WalkSpeed != fix.FromFloat(1.5) {
		t.Fatalf("expected fractional walk speed")
	}
}

func TestAnimationSetRejectsIndexWithoutCycle(t *testing.T) {
	cycles := []CycleSpec{{Name: "idle", Frames: 1}, {Name: "walk", Frames: 2}}
	cases := []struct {
		name    string
		indices AnimationIndexSpec
		wantErr bool
	}{
		{"in range", AnimationIndexSpec{Idle: 0, Walk: 1, Look: 1, Jump: 0, Crouch: 1}, false},
		{"look past end", AnimationIndexSpec{Look: 5}, true},
		{"negative crouch", AnimationIndexSpec{Crouch: -1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := &PlayerSpec{AnimationSets: map[string]AnimationSetSpec{
				"frog": {Indices: tc.indices, Cycles: cycles},
			}}
			_, err := spec.AnimationSet("frog")
			if tc.wantErr && !errors.Is(err, ErrBadAnimation) {
				t.Fatalf("expected ErrBadAnimation, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("AnimationSet: %v", err)
			}
		})
	}
}

func TestPlayerSpecValidate(t *testing.T) {
	sets := map[string]AnimationSetSpec{
		"frog": {Cycles: []CycleSpec{{Name: "idle", Frames: 1}}},
	}
	cases := []struct {
		name  string
		entry PlayerEntrySpec
		want  error
	}{
		{"ok", PlayerEntrySpec{Controller: 1, Animations: "frog", Spawn: PointSpec{X: 48, Y: 640}}, nil},
		{"spawn past range", PlayerEntrySpec{Controller: 1, Animations: "frog", Spawn: PointSpec{X: 40000}}, ErrSpawnRange},
		{"negative spawn", PlayerEntrySpec{Controller: 1, Animations: "frog", Spawn: PointSpec{Y: -1}}, ErrSpawnRange},
		{"missing set", PlayerEntrySpec{Controller: 1, Animations: "sonic"}, ErrUnknownSet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := &PlayerSpec{Players: []PlayerEntrySpec{tc.entry}, AnimationSets: sets}
			err := spec.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadCameraSpec(t *testing.T) {
	spec, err := LoadCameraSpec()
	if err != nil {
		t.Fatalf("LoadCameraSpec: %v", err)
	}
	if spec.ScreenWidth != 320 || spec.ScreenHeight != 224 {
		t.Fatalf("unexpected screen %dx%d", spec.ScreenWidth, spec.ScreenHeight)
	}
	if spec.VerticalScrollTiles != 32 || spec.Shake.Frames != 20 || spec.Shake.Intensity != 4 {
		t.Fatalf("unexpected camera spec %+v", spec)
	}
}

func TestLoadControlsSpec(t *testing.T) {
	spec, err := LoadControlsSpec()
	if err != nil {
		t.Fatalf("LoadControlsSpec: %v", err)
	}
	pad1, err := spec.Bindings(input.Controller1)
	if err != nil {
		t.Fatalf("Bindings: %v", err)
	}
	if keys := pad1[input.ButtonLeft]; len(keys) != 1 || keys[0] != "ArrowLeft" {
		t.Fatalf("unexpected pad1 left keys %v", keys)
	}
	if keys := pad1[input.ButtonStart]; len(keys) != 1 || keys[0] != "Enter" {
		t.Fatalf("unexpected pad1 start keys %v", keys)
	}
	pad2, err := spec.Bindings(input.Controller2)
	if err != nil {
		t.Fatalf("Bindings: %v", err)
	}
	if keys := pad2[input.ButtonA]; len(keys) != 1 || keys[0] != "J" {
		t.Fatalf("unexpected pad2 a keys %v", keys)
	}

	bad := &ControlsSpec{Pad1: map[string][]string{"turbo": {"T"}}}
	if _, err := bad.Bindings(input.Controller1); err == nil {
		t.Fatalf("expected unknown button error")
	}
}

func TestLoadSpecUnknownFormat(t *testing.T) {
	if _, err := LoadSpec[CameraSpec]("camera.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := LoadSpec[map[string]any]("scripts/attract.tengo"); err == nil {
		t.Fatalf("expected error for non-spec file")
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, Dir), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	override := []byte("screen_width: 256\nscreen_height: 240\n")
	if err := os.WriteFile(filepath.Join(dir, Dir, "camera.yaml"), override, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Chdir(dir)

	spec, err := LoadCameraSpec()
	if err != nil {
		t.Fatalf("LoadCameraSpec: %v", err)
	}
	if spec.ScreenWidth != 256 || spec.ScreenHeight != 240 {
		t.Fatalf("expected disk override, got %dx%d", spec.ScreenWidth, spec.ScreenHeight)
	}
	if _, ok := ModTime("prefabs/camera.yaml"); !ok {
		t.Fatalf("expected mod time for disk file")
	}
	if _, ok := ModTime("player.yaml"); ok {
		t.Fatalf("embedded-only file has no mod time")
	}
	// Embedded files still load when no disk copy exists.
	if _, err := LoadPlayerSpec(); err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{in: "#ff8000", want: color.NRGBA{R: 0xff, G: 0x80, A: 0xff}},
		{in: "10203040", want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{in: "SeaGreen", want: color.RGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 0xff}},
		{in: "#12345", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"attract.tengo", "scripts/attract.tengo", "prefabs/scripts/attract.tengo"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("LoadScript(%q) returned empty script", name)
		}
	}
	if _, err := LoadScript("missing.tengo"); err == nil {
		t.Fatalf("expected missing script error")
	}
	names := Scripts()
	if len(names) < 2 {
		t.Fatalf("expected embedded scripts, got %v", names)
	}
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("walk_speed: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if name != "player.yaml" {
			t.Fatalf("expected player.yaml, got %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
}

func TestWatcherDrainDeduplicates(t *testing.T) {
	w := &Watcher{Events: make(chan string, 4)}
	w.Events <- "player.yaml"
	w.Events <- "camera.yaml"
	w.Events <- "player.yaml"
	got := w.Drain()
	if len(got) != 2 || got[0] != "player.yaml" || got[1] != "camera.yaml" {
		t.Fatalf("unexpected drain %v", got)
	}
	if more := w.Drain(); len(more) != 0 {
		t.Fatalf("expected empty drain, got %v", more)
	}
}
