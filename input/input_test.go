package input

import "testing"

func TestEdgePredicates(t *testing.T) {
	cases := []struct {
		name                    string
		cur, prev, b            Button
		pressed, released, down bool
	}{
		{"rising", ButtonA, 0, ButtonA, true, false, true},
		{"falling", 0, ButtonA, ButtonA, false, true, false},
		{"held", ButtonA, ButtonA, ButtonA, false, false, true},
		{"idle", 0, 0, ButtonA, false, false, false},
		{"other_bit_only", ButtonB, 0, ButtonA, false, false, false},
		{"mask_any_rising", ButtonLeft | ButtonUp, ButtonUp, ButtonDir, true, false, true},
		{"mask_swap_both_edges", ButtonLeft, ButtonRight, ButtonLeft | ButtonRight, true, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := Edges{Current: c.cur, Previous: c.prev}
			if got := e.Pressed(c.b); got != c.pressed {
				t.Fatalf("Pressed = %v, want %v", got, c.pressed)
			}
			if got := e.Released(c.b); got != c.released {
				t.Fatalf("Released = %v, want %v", got, c.released)
			}
			if got := e.Down(c.b); got != c.down {
				t.Fatalf("Down = %v, want %v", got, c.down)
			}
		})
	}
}

// A single bit can never be pressed and released on the same frame.
func TestPressedReleasedExclusive(t *testing.T) {
	for cur := 0; cur < 1<<4; cur++ {
		for prev := 0; prev < 1<<4; prev++ {
			e := Edges{Current: Button(cur), Previous: Button(prev)}
			for bit := Button(1); bit < 1<<4; bit <<= 1 {
				if e.Pressed(bit) && e.Released(bit) {
					t.Fatalf("cur=%04b prev=%04b bit=%04b pressed and released", cur, prev, bit)
				}
			}
		}
	}
}

func TestPollShiftsPerController(t *testing.T) {
	var s State
	s.Poll(ButtonA, ButtonStart)
	if !s.Pressed(Controller1, ButtonA) || !s.Pressed(Controller2, ButtonStart) {
		t.Fatalf("expected both pads to register presses on first poll")
	}
	if s.Down(Controller1, ButtonStart) || s.Down(Controller2, ButtonA) {
		t.Fatalf("pads leaked into each other")
	}

	s.Poll(ButtonA, 0)
	if s.Pressed(Controller1, ButtonA) {
		t.Fatalf("held button reported as pressed on second frame")
	}
	if !s.Down(Controller1, ButtonA) {
		t.Fatalf("held button not down")
	}
	if !s.Released(Controller2, ButtonStart) {
		t.Fatalf("expected release of start on pad 2")
	}

	s.Poll(0, 0)
	if !s.Released(Controller1, ButtonA) || s.Released(Controller2, ButtonStart) {
		t.Fatalf("release edges not frame-exact")
	}
}

func TestPadMasksControllerIndex(t *testing.T) {
	var s State
	s.Poll(ButtonB, ButtonC)
	if s.Pad(Controller(3)) != s.Pad(Controller2) {
		t.Fatalf("controller index not masked to low bit")
	}
	s.Reset()
	if s.Pad(Controller1) != (Edges{}) {
		t.Fatalf("Reset left state behind")
	}
}

func TestParse(t *testing.T) {
	b, err := ParseButton(" Start ")
	if err != nil || b != ButtonStart {
		t.Fatalf("ParseButton = %v, %v", b, err)
	}
	if _, err := ParseButton("turbo"); err == nil {
		t.Fatalf("expected error for unknown button")
	}
	if c, err := ParseController(2); err != nil || c != Controller2 {
		t.Fatalf("ParseController(2) = %v, %v", c, err)
	}
	if _, err := ParseController(3); err == nil {
		t.Fatalf("expected error for controller 3")
	}
	if got := (ButtonUp | ButtonA).String(); got != "up|a" {
		t.Fatalf("String = %q", got)
	}
}
