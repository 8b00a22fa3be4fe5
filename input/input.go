// Package input turns raw per-frame controller bitmasks into press, release
// and hold predicates.
package input

import (
	"fmt"
	"strings"
)

// Button is a controller bitmask. Several buttons may be or-ed together.
type Button uint16

// Six-button pad layout.
const (
	ButtonUp    Button = 0x0001
	ButtonDown  Button = 0x0002
	ButtonLeft  Button = 0x0004
	ButtonRight Button = 0x0008
	ButtonB     Button = 0x0010
	ButtonC     Button = 0x0020
	ButtonA     Button = 0x0040
	ButtonStart Button = 0x0080
	ButtonZ     Button = 0x0100
	ButtonY     Button = 0x0200
	ButtonX     Button = 0x0400
	ButtonMode  Button = 0x0800

	ButtonNone Button = 0
	ButtonDir         = ButtonUp | ButtonDown | ButtonLeft | ButtonRight
)

var buttonNames = []struct {
	b    Button
	name string
}{
	{ButtonUp, "up"},
	{ButtonDown, "down"},
	{ButtonLeft, "left"},
	{ButtonRight, "right"},
	{ButtonA, "a"},
	{ButtonB, "b"},
	{ButtonC, "c"},
	{ButtonStart, "start"},
	{ButtonX, "x"},
	{ButtonY, "y"},
	{ButtonZ, "z"},
	{ButtonMode, "mode"},
}

// ParseButton resolves a single button name such as "left" or "start".
func ParseButton(name string) (Button, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, bn := range buttonNames {
		if bn.name == n {
			return bn.b, nil
		}
	}
	return ButtonNone, fmt.Errorf("input: unknown button %q", name)
}

func (b Button) String() string {
	if b == ButtonNone {
		return "none"
	}
	var parts []string
	for _, bn := range buttonNames {
		if b&bn.b != 0 {
			parts = append(parts, bn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Controller selects one of the two pads.
type Controller int

const (
	Controller1 Controller = iota
	Controller2
)

// ParseController maps the 1-based pad number used in specs to a Controller.
func ParseController(n int) (Controller, error) {
	switch n {
	case 1:
		return Controller1, nil
	case 2:
		return Controller2, nil
	}
	return Controller1, fmt.Errorf("input: controller %d out of range", n)
}

func (c Controller) String() string {
	return fmt.Sprintf("pad%d", int(c&1)+1)
}

// Edges holds one pad's state for the current and previous frame.
type Edges struct {
	Current  Button
	Previous Button
}

// Pressed reports whether any bit of b went from up to down this frame.
func (e Edges) Pressed(b Button) bool {
	return (e.Current&b)&^(e.Previous&b) != 0
}

// Released reports whether any bit of b went from down to up this frame.
func (e Edges) Released(b Button) bool {
	return (^e.Current&b)&(e.Previous&b) != 0
}

// Down reports whether any bit of b is held this frame.
func (e Edges) Down(b Button) bool {
	return e.Current&b != 0
}

// State tracks both pads. Poll must run exactly once per frame before any
// predicate is read, so frame n is always compared against frame n-1.
type State struct {
	pads [2]Edges
}

// Poll shifts the current masks into previous and stores the new ones.
func (s *State) Poll(pad1, pad2 Button) {
	s.pads[Controller1].Previous = s.pads[Controller1].Current
	s.pads[Controller2].Previous = s.pads[Controller2].Current
	s.pads[Controller1].Current = pad1
	s.pads[Controller2].Current = pad2
}

// Pad returns the edge view for c. Only the low bit of c is used.
func (s *State) Pad(c Controller) Edges {
	return s.pads[c&1]
}

func (s *State) Pressed(c Controller, b Button) bool  { return s.Pad(c).Pressed(b) }
func (s *State) Released(c Controller, b Button) bool { return s.Pad(c).Released(b) }
func (s *State) Down(c Controller, b Button) bool     { return s.Pad(c).Down(b) }

// Reset clears both pads.
func (s *State) Reset() {
	s.pads = [2]Edges{}
}
