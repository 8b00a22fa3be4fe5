package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/platformer/fix"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/player"
	"github.com/milk9111/platformer/sprite"
)

var (
	ErrUnknownFormat = errors.New("prefabs: unknown spec format")
	ErrUnknownSet    = errors.New("prefabs: unknown animation set")
	ErrBadAnimation  = errors.New("prefabs: animation index has no cycle")
	ErrSpawnRange    = errors.New("prefabs: spawn outside fixed-point range")
)

// LoadSpec loads and decodes a spec file. The decoder follows the
// extension: .yaml/.yml through yaml.v3, .toml through BurntSushi/toml.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &spec)
	case ".toml":
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&spec)
	default:
		return zero, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
	}
	if err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PlayerEntrySpec struct {
	Controller int       `yaml:"controller"`
	Animations string    `yaml:"animations"`
	Spawn      PointSpec `yaml:"spawn"`
}

type AnimationIndexSpec struct {
	Idle   int `yaml:"idle"`
	Walk   int `yaml:"walk"`
	Look   int `yaml:"look"`
	Jump   int `yaml:"jump"`
	Crouch int `yaml:"crouch"`
}

type CycleSpec struct {
	Name   string  `yaml:"name"`
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

type AnimationSetSpec struct {
	Color   *YAMLColor         `yaml:"color"`
	Indices AnimationIndexSpec `yaml:"indices"`
	Cycles  []CycleSpec        `yaml:"cycles"`
}

// Validate checks that every state's index names a declared cycle.
func (s AnimationSetSpec) Validate() error {
	indices := []struct {
		state string
		index int
	}{
		{"idle", s.Indices.Idle},
		{"walk", s.Indices.Walk},
		{"look", s.Indices.Look},
		{"jump", s.Indices.Jump},
		{"crouch", s.Indices.Crouch},
	}
	for _, i := range indices {
		if i.index < 0 || i.index >= len(s.Cycles) {
			return fmt.Errorf("%w: %s=%d with %d cycles", ErrBadAnimation, i.state, i.index, len(s.Cycles))
		}
	}
	return nil
}

// Set converts the indices into the table the player state machine uses.
func (s AnimationSetSpec) Set() player.AnimationSet {
	return player.AnimationSet{
		Idle:   s.Indices.Idle,
		Walk:   s.Indices.Walk,
		Look:   s.Indices.Look,
		Jump:   s.Indices.Jump,
		Crouch: s.Indices.Crouch,
	}
}

func (s AnimationSetSpec) SpriteCycles() []sprite.Cycle {
	cycles := make([]sprite.Cycle, len(s.Cycles))
	for i, c := range s.Cycles {
		cycles[i] = sprite.Cycle{Name: c.Name, Frames: c.Frames, FPS: c.FPS, Loop: c.Loop}
	}
	return cycles
}

type PlayerSpec struct {
	Name              string                      `yaml:"name"`
	WalkSpeed         float64                     `yaml:"walk_speed"`
	LookTimeoutFrames int                         `yaml:"look_timeout_frames"`
	Width             int                         `yaml:"width"`
	Height            int                         `yaml:"height"`
	Players           []PlayerEntrySpec           `yaml:"players"`
	AnimationSets     map[string]AnimationSetSpec `yaml:"animation_sets"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: player.yaml: %w", err)
	}
	return &spec, nil
}

// Validate checks every player entry: its spawn must fit a fixed-point
// position and its animation set must exist with in-range indices.
func (s *PlayerSpec) Validate() error {
	for i, entry := range s.Players {
		sp := entry.Spawn
		if sp.X < 0 || sp.Y < 0 || sp.X > fix.MaxInt || sp.Y > fix.MaxInt {
			return fmt.Errorf("%w: player %d at %v,%v", ErrSpawnRange, i+1, sp.X, sp.Y)
		}
		if _, err := s.AnimationSet(entry.Animations); err != nil {
			return fmt.Errorf("player %d: %w", i+1, err)
		}
	}
	return nil
}

// Tuning fills unset values from the player defaults.
func (s *PlayerSpec) Tuning() player.Tuning {
	t := player.DefaultTuning()
	if s == nil {
		return t
	}
	if s.WalkSpeed > 0 {
		t.WalkSpeed = fix.FromFloat(s.WalkSpeed)
	}
	if s.LookTimeoutFrames > 0 {
		t.LookTimeout = s.LookTimeoutFrames
	}
	return t
}

func (s *PlayerSpec) Size() (w, h int) {
	w, h = player.DefaultWidth, player.DefaultHeight
	if s == nil {
		return w, h
	}
	if s.Width > 0 {
		w = s.Width
	}
	if s.Height > 0 {
		h = s.Height
	}
	return w, h
}

// AnimationSet looks up a named set and checks its indices.
func (s *PlayerSpec) AnimationSet(name string) (AnimationSetSpec, error) {
	if s != nil {
		if set, ok := s.AnimationSets[name]; ok {
			if err := set.Validate(); err != nil {
				return AnimationSetSpec{}, fmt.Errorf("set %q: %w", name, err)
			}
			return set, nil
		}
	}
	return AnimationSetSpec{}, fmt.Errorf("%w: %q", ErrUnknownSet, name)
}

type ShakeSpec struct {
	Frames    int `yaml:"frames"`
	Intensity int `yaml:"intensity"`
}

type CameraSpec struct {
	Name                string    `yaml:"name"`
	ScreenWidth         int       `yaml:"screen_width"`
	ScreenHeight        int       `yaml:"screen_height"`
	VerticalScrollTiles int       `yaml:"vertical_scroll_tiles"`
	Shake               ShakeSpec `yaml:"shake"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ControlsSpec maps button names to keyboard key names for each pad.
type ControlsSpec struct {
	Pad1 map[string][]string `toml:"pad1"`
	Pad2 map[string][]string `toml:"pad2"`
}

func LoadControlsSpec() (*ControlsSpec, error) {
	spec, err := LoadSpec[ControlsSpec]("controls.toml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Bindings resolves the button names for one pad.
func (s *ControlsSpec) Bindings(c input.Controller) (map[input.Button][]string, error) {
	if s == nil {
		return nil, nil
	}
	raw := s.Pad1
	if c == input.Controller2 {
		raw = s.Pad2
	}
	out := make(map[input.Button][]string, len(raw))
	for name, keys := range raw {
		b, err := input.ParseButton(name)
		if err != nil {
			return nil, fmt.Errorf("prefabs: controls %s: %w", c, err)
		}
		out[b] = append(out[b], keys...)
	}
	return out, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

func ParseColor(v string) (color.Color, error) {
	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(v))]; ok {
		return named, nil
	}

	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		n, err := parse(i * 2)
		if err != nil {
			return nil, fmt.Errorf("invalid color format: %s", v)
		}
		rgba[i] = n
	}
	return color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
}
