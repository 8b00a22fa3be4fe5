package platform

// System updates the context once per frame.
type System interface {
	Update(c *Context)
}

// Scheduler runs systems in insertion order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(c *Context) {
	for _, system := range s.systems {
		system.Update(c)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// DefaultScheduler orders the frame: poll input, react to pad-1 shortcuts,
// update players, move the camera, then advance sprite animations. The
// camera must run after the players or it tracks last frame's position.
func DefaultScheduler() *Scheduler {
	return NewScheduler(
		NewInputSystem(),
		NewShortcutSystem(),
		NewPlayerSystem(),
		NewCameraSystem(),
		NewAnimationSystem(),
	)
}
