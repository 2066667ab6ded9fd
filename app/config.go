package app

import (
	"time"

	"tapmenu/input"
	"tapmenu/menu"
	"tapmenu/ui"
)

// Config holds everything fixed at startup.
type Config struct {
	// Calibration overrides the board calibration when non-zero.
	Calibration input.Calibration

	// Buttons defaults to ui.DefaultLayout scaled to the calibrated
	// display. Every button must fit on that display.
	Buttons []ui.Button
	// Disabled lists button labels that start disabled.
	Disabled []string
	Title    string

	Debounce time.Duration
	// Feedback is how long a pressed button stays highlighted. Zero means
	// menu.DefaultFeedback; a negative value turns the hold off.
	Feedback time.Duration
	Tick     time.Duration

	// TouchThresholds are tried in order until the controller answers.
	TouchThresholds []uint8
	TouchRetryDelay time.Duration

	// OnStatus observes status changes from the loop goroutine.
	OnStatus func(menu.Status)
}

// DefaultTouchThresholds are the sensitivity thresholds tried at boot.
var DefaultTouchThresholds = []uint8{40, 128, 20, 60}

// DefaultConfig returns the reference menu.
func DefaultConfig() Config {
	return Config{
		Title:           menu.DefaultTitle,
		Debounce:        input.DefaultDebounce,
		Feedback:        menu.DefaultFeedback,
		Tick:            10 * time.Millisecond,
		TouchThresholds: append([]uint8(nil), DefaultTouchThresholds...),
		TouchRetryDelay: 100 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Debounce <= 0 {
		c.Debounce = d.Debounce
	}
	switch {
	case c.Feedback == 0:
		c.Feedback = d.Feedback
	case c.Feedback < 0:
		c.Feedback = 0
	}
	if c.Tick <= 0 {
		c.Tick = d.Tick
	}
	if len(c.TouchThresholds) == 0 {
		c.TouchThresholds = d.TouchThresholds
	}
	if c.TouchRetryDelay < 0 {
		c.TouchRetryDelay = 0
	}
	return c
}
