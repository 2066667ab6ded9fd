package ui

import (
	"errors"
	"fmt"

	"tapmenu/input"
)

var (
	ErrIndex = errors.New("ui: button index out of range")
	// ErrOffscreen means a button reaches past the display edge.
	ErrOffscreen = errors.New("ui: button off screen")
)

// LayoutWidth and LayoutHeight are the display size DefaultLayout is drawn
// for.
const (
	LayoutWidth  = 480
	LayoutHeight = 320
)

// Rect is an axis-aligned rectangle, top-left origin.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r. All four edges are inclusive,
// so a rect of width w claims w+1 columns.
func (r Rect) Contains(p input.Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Within reports whether r fits on a w x h display.
func (r Rect) Within(w, h int) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.W <= w && r.Y+r.H <= h
}

// Center returns the middle of r.
func (r Rect) Center() input.Point {
	return input.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Button is one entry of the menu grid.
type Button struct {
	Bounds  Rect
	Label   string
	Fill    Color
	Text    Color
	Enabled bool
}

// DefaultLayout is the two-column, eight-button main menu for a 480x320
// landscape display.
func DefaultLayout() []Button {
	return []Button{
		{Bounds: Rect{20, 55, 210, 55}, Label: "LED ON", Fill: Green, Text: White, Enabled: true},
		{Bounds: Rect{20, 120, 210, 55}, Label: "LED OFF", Fill: Red, Text: White, Enabled: true},
		{Bounds: Rect{20, 185, 210, 55}, Label: "SENSOR", Fill: Blue, Text: White, Enabled: true},
		{Bounds: Rect{20, 250, 210, 55}, Label: "SETTINGS", Fill: Orange, Text: Black, Enabled: true},
		{Bounds: Rect{250, 55, 210, 55}, Label: "INFO", Fill: Cyan, Text: Black, Enabled: true},
		{Bounds: Rect{250, 120, 210, 55}, Label: "STATUS", Fill: Purple, Text: White, Enabled: true},
		{Bounds: Rect{250, 185, 210, 55}, Label: "WIFI", Fill: Yellow, Text: Black, Enabled: true},
		{Bounds: Rect{250, 250, 210, 55}, Label: "CLEAR", Fill: DarkGrey, Text: White, Enabled: true},
	}
}

// LayoutFor scales DefaultLayout onto a w x h display. Edges are scaled
// rather than sizes, so neighbouring buttons keep their gaps.
func LayoutFor(w, h int) []Button {
	bs := DefaultLayout()
	if w == LayoutWidth && h == LayoutHeight {
		return bs
	}
	for i := range bs {
		r := &bs[i].Bounds
		x0, y0 := r.X*w/LayoutWidth, r.Y*h/LayoutHeight
		x1, y1 := (r.X+r.W)*w/LayoutWidth, (r.Y+r.H)*h/LayoutHeight
		*r = Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	}
	return bs
}

// CheckBounds returns an error wrapping ErrOffscreen for the first button
// that does not fit on a w x h display.
func CheckBounds(buttons []Button, w, h int) error {
	for i, b := range buttons {
		if !b.Bounds.Within(w, h) {
			return fmt.Errorf("%w: button %d (%q) %+v on %dx%d", ErrOffscreen, i, b.Label, b.Bounds, w, h)
		}
	}
	return nil
}

// Registry is the fixed, ordered set of buttons. Its length never changes
// after construction.
type Registry struct {
	buttons []Button
}

// NewRegistry copies buttons into a registry. Every button needs a positive
// width and height.
func NewRegistry(buttons []Button) (*Registry, error) {
	if len(buttons) == 0 {
		return nil, errors.New("ui: empty button layout")
	}
	r := &Registry{buttons: make([]Button, len(buttons))}
	for i, b := range buttons {
		if b.Bounds.W <= 0 || b.Bounds.H <= 0 {
			return nil, fmt.Errorf("ui: button %d (%q): size %dx%d must be positive", i, b.Label, b.Bounds.W, b.Bounds.H)
		}
		r.buttons[i] = b
	}
	return r, nil
}

func (r *Registry) Len() int { return len(r.buttons) }

// Button returns a copy of button i.
func (r *Registry) Button(i int) (Button, bool) {
	if i < 0 || i >= len(r.buttons) {
		return Button{}, false
	}
	return r.buttons[i], true
}

// Index returns the position of the first button with the given label.
func (r *Registry) Index(label string) (int, bool) {
	for i := range r.buttons {
		if r.buttons[i].Label == label {
			return i, true
		}
	}
	return -1, false
}

// HitTest returns the lowest-index enabled button containing p. Disabled
// buttons never match.
func (r *Registry) HitTest(p input.Point) (int, bool) {
	for i := range r.buttons {
		b := &r.buttons[i]
		if b.Enabled && b.Bounds.Contains(p) {
			return i, true
		}
	}
	return -1, false
}

func (r *Registry) SetEnabled(i int, enabled bool) error {
	if i < 0 || i >= len(r.buttons) {
		return ErrIndex
	}
	r.buttons[i].Enabled = enabled
	return nil
}

func (r *Registry) SetLabel(i int, label string) error {
	if i < 0 || i >= len(r.buttons) {
		return ErrIndex
	}
	r.buttons[i].Label = label
	return nil
}

func (r *Registry) SetColors(i int, fill, text Color) error {
	if i < 0 || i >= len(r.buttons) {
		return ErrIndex
	}
	r.buttons[i].Fill = fill
	r.buttons[i].Text = text
	return nil
}
