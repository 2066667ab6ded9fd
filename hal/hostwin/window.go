//go:build !tinygo && cgo

// Package hostwin shows the simulated display in a desktop window and feeds
// the mouse (or a touchscreen) to the simulated panel.
package hostwin

import (
	"context"
	"errors"
	"image"

	"tapmenu/hal"
	"tapmenu/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens the window and runs loop on its own goroutine, as the firmware
// would run on the MCU. It blocks until the window closes or loop fails.
func Run(h *hal.Host, scale int, loop func(ctx context.Context) error) error {
	if scale <= 0 {
		scale = 2
	}
	w, ht := h.DisplaySize()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := &game{h: h, done: make(chan error, 1)}
	go func() {
		g.done <- loop(ctx)
	}()

	ebiten.SetWindowTitle("tapmenu (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(w*scale, ht*scale)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	h     *hal.Host
	img   *image.RGBA
	fbImg *ebiten.Image
	done  chan error

	halted bool
}

func (g *game) Update() error {
	if !g.halted {
		select {
		case err := <-g.done:
			if err != nil {
				return err
			}
			// The loop only returns cleanly when asked to stop.
			g.halted = true
		default:
		}
	}
	g.pollPointer()
	return nil
}

func (g *game) pollPointer() {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		g.h.SetPointer(x, y, true)
		return
	}
	x, y := ebiten.CursorPosition()
	g.h.SetPointer(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.h.DisplaySize()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	g.h.SnapshotRGBA(g.img.Pix)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.DisplaySize()
}
