package platform

// Step runs one frame of the schedule. It does not wait for the refresh.
func Step(c *Context) {
	if c == nil || c.scheduler == nil {
		return
	}
	c.scheduler.Update(c)
	c.Frame++
}

// Run loops Step and the refresh wait until before returns false. A nil
// before runs forever. A shake requested during a frame runs after that
// frame's refresh and blocks input and player updates for its duration.
func Run(c *Context, before func() bool) {
	if c == nil || c.Backend == nil {
		return
	}
	for {
		if before != nil && !before() {
			return
		}
		Step(c)
		c.Backend.WaitForRefresh()
		if req, ok := c.PendingShake(); ok {
			c.pendingShake = nil
			c.Camera.Shake(req.Frames, req.Intensity)
		}
	}
}
