//go:build !tinygo && !cgo

package hostwin

import (
	"context"
	"errors"

	"tapmenu/hal"
)

func Run(_ *hal.Host, _ int, _ func(ctx context.Context) error) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
