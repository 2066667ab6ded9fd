package app

import (
	"context"
	"errors"
	"time"

	"tapmenu/hal"
)

// Halt parks the caller after a fatal boot error. Only a reset (or ctx, on
// the host) gets out.
func Halt(ctx context.Context, h hal.HAL, err error) {
	if l := h.Logger(); l != nil && err != nil {
		l.WriteLineString("halt: " + err.Error())
	}
	clock := h.Clock()
	for ctx.Err() == nil {
		clock.Sleep(time.Second)
	}
}

// Start boots the menu and loops until ctx is done, which counts as a clean
// stop. A touch init failure is already drawn on the panel, so Start halts
// on it and returns nil once ctx is done. Any other boot error is a
// configuration mistake and is returned to the caller.
func Start(ctx context.Context, h hal.HAL, cfg Config) error {
	m, err := New(h, cfg)
	switch {
	case errors.Is(err, ErrTouchInit):
		Halt(ctx, h, err)
		return nil
	case err != nil:
		return err
	}
	if err := m.Loop(ctx); ctx.Err() == nil {
		return err
	}
	return nil
}

// Run starts the menu and loops forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

// RunWithConfig is Run with a custom config. Firmware has no caller to
// return to, so a boot error Start hands back is logged and halted on.
func RunWithConfig(h hal.HAL, cfg Config) {
	ctx := context.Background()
	if err := Start(ctx, h, cfg); err != nil {
		Halt(ctx, h, err)
	}
}
