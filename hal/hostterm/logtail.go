//go:build !tinygo

package hostterm

import (
	"bytes"
	"sync"
)

// LogTail keeps the last N complete lines written to it. The terminal owns
// stdout while the view is up, so host logs are routed here instead.
type LogTail struct {
	mu      sync.Mutex
	max     int
	lines   []string
	partial []byte
}

func NewLogTail(n int) *LogTail {
	if n < 1 {
		n = 1
	}
	return &LogTail{max: n}
}

func (t *LogTail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.partial = append(t.partial, p...)
	for {
		i := bytes.IndexByte(t.partial, '\n')
		if i < 0 {
			break
		}
		t.lines = append(t.lines, string(t.partial[:i]))
		t.partial = t.partial[i+1:]
	}
	if over := len(t.lines) - t.max; over > 0 {
		t.lines = append(t.lines[:0], t.lines[over:]...)
	}
	return len(p), nil
}

// Lines returns a copy of the retained lines, oldest first.
func (t *LogTail) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}
