//go:build !baremetal

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	// Tick is the loop period.
	Tick time.Duration
	// Ticks stops the run after N ticks (0 = no tick limit).
	Ticks uint64
	// Duration stops the run once the HAL clock passes it (0 = no limit).
	Duration time.Duration
}

// RunHeadless builds the app on h and steps it once per tick until a limit
// is reached or ctx is done. Build errors are returned as is.
func RunHeadless(ctx context.Context, h *Host, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Tick <= 0 {
		return fmt.Errorf("invalid headless tick: %s", cfg.Tick)
	}

	step, err := newApp(h)
	if err != nil {
		return err
	}

	var tick uint64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cfg.Duration > 0 && h.clock.Now() >= cfg.Duration {
			return nil
		}
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
		h.clock.Sleep(cfg.Tick)
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			return nil
		}
	}
}
