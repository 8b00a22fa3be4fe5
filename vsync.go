package main

import "github.com/milk9111/platformer/input"

// vsync hands each refresh from ebiten's Update to the logic goroutine.
// Update sends the polled masks on tick and waits on done; the logic
// goroutine signals done from WaitForRefresh and then blocks for the next
// tick. Everything the logic goroutine writes is therefore settled whenever
// Update or Draw runs.
type vsync struct {
	tick  chan [2]input.Button
	done  chan struct{}
	quit  chan struct{}
	masks [2]input.Button

	scrollX, scrollY int
	refreshes        int
}

func newVsync() *vsync {
	return &vsync{
		tick: make(chan [2]input.Button),
		done: make(chan struct{}),
		quit: make(chan struct{}),
	}
}

func (v *vsync) PollControllers() (input.Button, input.Button) {
	return v.masks[0], v.masks[1]
}

func (v *vsync) ScrollMapTo(x, y int) {
	v.scrollX, v.scrollY = x, y
}

// WaitForRefresh parks the logic goroutine until the next Update. It returns
// without waiting once the driver is shutting down.
func (v *vsync) WaitForRefresh() {
	v.refreshes++
	select {
	case v.done <- struct{}{}:
	case <-v.quit:
		return
	}
	v.next()
}

// next blocks for the masks of the coming refresh.
func (v *vsync) next() bool {
	select {
	case m := <-v.tick:
		v.masks = m
		return true
	case <-v.quit:
		return false
	}
}

// refresh runs on ebiten's Update: it releases one logic frame and waits for
// it to finish. It reports false once the logic goroutine has stopped.
func (v *vsync) refresh(masks [2]input.Button, stopped <-chan struct{}) bool {
	select {
	case v.tick <- masks:
	case <-stopped:
		return false
	}
	select {
	case <-v.done:
		return true
	case <-stopped:
		return false
	}
}

func (v *vsync) stop() {
	select {
	case <-v.quit:
	default:
		close(v.quit)
	}
}

func (v *vsync) stopping() bool {
	select {
	case <-v.quit:
		return true
	default:
		return false
	}
}
