// Package autopilot drives a pad from a tengo script. The script sees the
// frame number and the button constants and assigns the held buttons to
// mask.
package autopilot

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/prefabs"
)

const DefaultScript = "attract.tengo"

var ErrEmptyScript = errors.New("autopilot: empty script")

// Observer reports the driven player's map position to the script.
type Observer func() (x, y int)

type Script struct {
	name     string
	compiled *tengo.Compiled
	observe  Observer
	frame    int
	failing  bool
}

// Load compiles an embedded or on-disk script by name.
func Load(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return Compile(name, src)
}

// Compile builds a script from source. name is only used in log lines.
func Compile(name string, src []byte) (*Script, error) {
	if strings.TrimSpace(string(src)) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyScript, name)
	}
	s := &Script{name: name}

	script := tengo.NewScript(src)
	_ = script.Add("frame", 0)
	_ = script.Add("mask", 0)
	for _, c := range buttonConstants() {
		_ = script.Add(c.name, c.value)
	}
	_ = script.Add("position", &tengo.UserFunction{Name: "position", Value: s.position})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("autopilot: compile %s: %w", name, err)
	}
	s.compiled = compiled
	return s, nil
}

func (s *Script) Name() string { return s.name }

// Observe sets the source for the script's position() builtin.
func (s *Script) Observe(o Observer) { s.observe = o }

// Mask runs the script for frame and returns the buttons it holds. A failing
// run yields no buttons; the failure is logged once until a run succeeds.
func (s *Script) Mask(frame int) input.Button {
	if s == nil || s.compiled == nil {
		return input.ButtonNone
	}
	mask, err := s.run(frame)
	if err != nil {
		if !s.failing {
			log.Printf("autopilot: %s frame %d: %v", s.name, frame, err)
		}
		s.failing = true
		return input.ButtonNone
	}
	s.failing = false
	return mask
}

// Next runs the script for its own frame counter and advances it.
func (s *Script) Next() input.Button {
	if s == nil {
		return input.ButtonNone
	}
	mask := s.Mask(s.frame)
	s.frame++
	return mask
}

// Failing reports whether the last run errored.
func (s *Script) Failing() bool { return s != nil && s.failing }

func (s *Script) run(frame int) (input.Button, error) {
	if err := s.compiled.Set("frame", frame); err != nil {
		return input.ButtonNone, err
	}
	if err := s.compiled.Set("mask", 0); err != nil {
		return input.ButtonNone, err
	}
	if err := s.compiled.Run(); err != nil {
		return input.ButtonNone, err
	}
	v := s.compiled.Get("mask")
	if v.ValueType() != "int" {
		return input.ButtonNone, fmt.Errorf("mask is %s, not int", v.ValueType())
	}
	return input.Button(v.Int()) & allButtons, nil
}

func (s *Script) position(args ...tengo.Object) (tengo.Object, error) {
	x, y := 0, 0
	if s.observe != nil {
		x, y = s.observe()
	}
	return &tengo.Array{Value: []tengo.Object{&tengo.Int{Value: int64(x)}, &tengo.Int{Value: int64(y)}}}, nil
}

const allButtons = input.ButtonDir | input.ButtonA | input.ButtonB | input.ButtonC |
	input.ButtonStart | input.ButtonX | input.ButtonY | input.ButtonZ | input.ButtonMode

type constant struct {
	name  string
	value int
}

func buttonConstants() []constant {
	buttons := []input.Button{
		input.ButtonUp, input.ButtonDown, input.ButtonLeft, input.ButtonRight,
		input.ButtonA, input.ButtonB, input.ButtonC, input.ButtonStart,
		input.ButtonX, input.ButtonY, input.ButtonZ, input.ButtonMode,
	}
	out := make([]constant, 0, len(buttons))
	for _, b := range buttons {
		out = append(out, constant{name: strings.ToUpper(b.String()), value: int(b)})
	}
	return out
}
