package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/prefabs"
)

const stickDeadzone = 0.5

type keyBinding struct {
	button input.Button
	keys   []ebiten.Key
}

// controls maps the keyboard and attached gamepads onto the two pads.
type controls struct {
	keys [2][]keyBinding
}

var keyNames = func() map[string]ebiten.Key {
	names := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		names[strings.ToLower(k.String())] = k
	}
	return names
}()

func lookupKey(name string) (ebiten.Key, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

func newControls(spec *prefabs.ControlsSpec) (*controls, error) {
	c := &controls{}
	for _, pad := range []input.Controller{input.Controller1, input.Controller2} {
		bindings, err := spec.Bindings(pad)
		if err != nil {
			return nil, err
		}
		for button, names := range bindings {
			kb := keyBinding{button: button}
			for _, name := range names {
				k, ok := lookupKey(name)
				if !ok {
					return nil, fmt.Errorf("prefabs: controls %s: unknown key %q", pad, name)
				}
				kb.keys = append(kb.keys, k)
			}
			c.keys[pad] = append(c.keys[pad], kb)
		}
	}
	return c, nil
}

func (c *controls) keyboard(pad input.Controller) input.Button {
	var mask input.Button
	for _, kb := range c.keys[pad&1] {
		for _, k := range kb.keys {
			if ebiten.IsKeyPressed(k) {
				mask |= kb.button
				break
			}
		}
	}
	return mask
}

// gamepad returns the standard-layout gamepad assigned to pad, in connection
// order.
func (c *controls) gamepad(pad input.Controller) (ebiten.GamepadID, bool) {
	var ids []ebiten.GamepadID
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			ids = append(ids, id)
		}
	}
	i := int(pad & 1)
	if i >= len(ids) {
		return 0, false
	}
	return ids[i], true
}

var gamepadButtons = []struct {
	b      input.Button
	button ebiten.StandardGamepadButton
}{
	{input.ButtonUp, ebiten.StandardGamepadButtonLeftTop},
	{input.ButtonDown, ebiten.StandardGamepadButtonLeftBottom},
	{input.ButtonLeft, ebiten.StandardGamepadButtonLeftLeft},
	{input.ButtonRight, ebiten.StandardGamepadButtonLeftRight},
	{input.ButtonA, ebiten.StandardGamepadButtonRightLeft},
	{input.ButtonB, ebiten.StandardGamepadButtonRightBottom},
	{input.ButtonC, ebiten.StandardGamepadButtonRightRight},
	{input.ButtonX, ebiten.StandardGamepadButtonFrontTopLeft},
	{input.ButtonY, ebiten.StandardGamepadButtonRightTop},
	{input.ButtonZ, ebiten.StandardGamepadButtonFrontTopRight},
	{input.ButtonStart, ebiten.StandardGamepadButtonCenterRight},
	{input.ButtonMode, ebiten.StandardGamepadButtonCenterLeft},
}

func gamepadMask(id ebiten.GamepadID) input.Button {
	var mask input.Button
	for _, gb := range gamepadButtons {
		if ebiten.IsStandardGamepadButtonPressed(id, gb.button) {
			mask |= gb.b
		}
	}
	h := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	return mask | stickMask(h, v)
}

// stickMask turns analog stick deflection into d-pad bits.
func stickMask(h, v float64) input.Button {
	var mask input.Button
	switch {
	case h <= -stickDeadzone:
		mask |= input.ButtonLeft
	case h >= stickDeadzone:
		mask |= input.ButtonRight
	}
	switch {
	case v <= -stickDeadzone:
		mask |= input.ButtonUp
	case v >= stickDeadzone:
		mask |= input.ButtonDown
	}
	return mask
}
