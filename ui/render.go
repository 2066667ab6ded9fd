package ui

import (
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Surface is a display that can also fill rectangles natively.
type Surface interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Align selects the horizontal text anchor. Text is always centered
// vertically on the anchor point.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ButtonState selects the visual for DrawButton.
type ButtonState uint8

const (
	Normal ButtonState = iota
	Pressed
)

const (
	// HeaderHeight is the height of the status bar at the top of the screen.
	HeaderHeight = 40
	cornerRadius = 8
)

// Renderer draws menu widgets onto a Surface.
type Renderer struct {
	s      Surface
	font   tinyfont.Fonter
	ascent int
}

func NewRenderer(s Surface) *Renderer {
	return &Renderer{s: s, font: &proggy.TinySZ8pt7b, ascent: 8}
}

// Size returns the surface size in pixels.
func (r *Renderer) Size() (int, int) {
	w, h := r.s.Size()
	return int(w), int(h)
}

func (r *Renderer) Clear(c Color) {
	w, h := r.Size()
	r.FillRect(0, 0, w, h, c)
}

func (r *Renderer) FillRect(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	_ = r.s.FillRectangle(int16(x), int16(y), int16(w), int16(h), c.ToRGBA())
}

// FillRoundRect fills a rectangle with quarter-circle corners.
func (r *Renderer) FillRoundRect(x, y, w, h, radius int, c Color) {
	radius = clampRadius(radius, w, h)
	for row := 0; row < h; row++ {
		in := cornerInset(radius, row, h)
		r.FillRect(x+in, y+row, w-2*in, 1, c)
	}
}

// DrawRoundRect draws a one pixel outline matching FillRoundRect.
func (r *Renderer) DrawRoundRect(x, y, w, h, radius int, c Color) {
	radius = clampRadius(radius, w, h)
	rgba := c.ToRGBA()
	for row := 0; row < h; row++ {
		in := cornerInset(radius, row, h)
		if row == 0 || row == h-1 {
			r.FillRect(x+in, y+row, w-2*in, 1, c)
			continue
		}
		// Extend toward the edge row so the arc has no gaps.
		outer := cornerInset(radius, row-1, h)
		if row >= h/2 {
			outer = cornerInset(radius, row+1, h)
		}
		span := outer - in
		if span < 1 {
			span = 1
		}
		if span == 1 {
			r.s.SetPixel(int16(x+in), int16(y+row), rgba)
			r.s.SetPixel(int16(x+w-1-in), int16(y+row), rgba)
			continue
		}
		r.FillRect(x+in, y+row, span, 1, c)
		r.FillRect(x+w-in-span, y+row, span, 1, c)
	}
}

// DrawText draws s anchored at (x, y).
func (r *Renderer) DrawText(s string, x, y int, c Color, align Align) {
	_, width := tinyfont.LineWidth(r.font, s)
	switch align {
	case AlignCenter:
		x -= int(width) / 2
	case AlignRight:
		x -= int(width)
	}
	tinyfont.WriteLine(r.s, r.font, int16(x), int16(y+r.ascent/2), s, c.ToRGBA())
}

// DrawButton renders b. Disabled buttons use the muted palette whatever the
// requested state.
func (r *Renderer) DrawButton(b Button, state ButtonState) {
	bg, fg := b.Fill, b.Text
	if state == Pressed {
		bg, fg = White, b.Fill
	}
	if !b.Enabled {
		bg, fg = DarkGrey, LightGrey
	}

	rc := b.Bounds
	r.FillRoundRect(rc.X, rc.Y, rc.W, rc.H, cornerRadius, bg)
	r.DrawRoundRect(rc.X, rc.Y, rc.W, rc.H, cornerRadius, White)
	mid := rc.Center()
	r.DrawText(b.Label, mid.X, mid.Y, fg, AlignCenter)
	r.flush()
}

// DrawHeader repaints the status bar: title on the left, status on the
// right in its accent color.
func (r *Renderer) DrawHeader(title, status string, accent Color) {
	w, _ := r.Size()
	r.FillRect(0, 0, w, HeaderHeight, Navy)
	r.DrawText(title, 10, HeaderHeight/2, White, AlignLeft)
	r.DrawText(status, w-10, HeaderHeight/2, accent, AlignRight)
	r.flush()
}

// DrawMessage writes a single line at (x, y) and flushes.
func (r *Renderer) DrawMessage(s string, x, y int, c Color) {
	r.DrawText(s, x, y, c, AlignLeft)
	r.flush()
}

func (r *Renderer) flush() {
	_ = r.s.Display()
}

func clampRadius(radius, w, h int) int {
	if radius < 0 {
		return 0
	}
	if m := w / 2; radius > m {
		radius = m
	}
	if m := h / 2; radius > m {
		radius = m
	}
	return radius
}

// cornerInset returns how far the rounded edge sits inside the rect on row.
func cornerInset(radius, row, h int) int {
	d := row
	if h-1-row < d {
		d = h - 1 - row
	}
	if d < 0 || d >= radius {
		return 0
	}
	dy := float64(radius - d)
	dx := math.Sqrt(float64(radius*radius) - dy*dy)
	return radius - int(dx)
}
