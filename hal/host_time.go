//go:build !baremetal

package hal

import (
	"sync"
	"time"
)

// hostClock is wall-clock time since the HAL was created.
type hostClock struct {
	start time.Time
}

func newHostClock() *hostClock {
	return &hostClock{start: time.Now()}
}

func (c *hostClock) Now() time.Duration    { return time.Since(c.start) }
func (c *hostClock) Sleep(d time.Duration) { time.Sleep(d) }

// virtualClock only moves when slept on, so headless runs are deterministic
// and finish as fast as the host can step them.
type virtualClock struct {
	mu  sync.Mutex
	now time.Duration
}

func (c *virtualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *virtualClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}
