package input

import "tinygo.org/x/drivers/touch"

// Point is a position on the display in pixels, top-left origin.
type Point struct {
	X, Y int
}

// Axis is a two-point linear map from one raw sensor axis to one screen axis.
// Screen1 > Screen2 is allowed and flips the direction.
type Axis struct {
	Raw1, Raw2       int
	Screen1, Screen2 int
}

// Apply maps v without clamping. Integer division truncates toward zero.
func (a Axis) Apply(v int) int {
	if a.Raw1 == a.Raw2 {
		return a.Screen1
	}
	return (v-a.Raw1)*(a.Screen2-a.Screen1)/(a.Raw2-a.Raw1) + a.Screen1
}

// Invert returns the raw value whose mapping lands closest to s.
func (a Axis) Invert(s int) int {
	if a.Screen1 == a.Screen2 {
		return a.Raw1
	}
	num := (s - a.Screen1) * (a.Raw2 - a.Raw1)
	den := a.Screen2 - a.Screen1
	raw := num/den + a.Raw1

	best, bestErr := raw, absInt(a.Apply(raw)-s)
	for _, c := range [...]int{raw - 1, raw + 1} {
		if e := absInt(a.Apply(c) - s); e < bestErr {
			best, bestErr = c, e
		}
	}
	return best
}

// Calibration converts raw panel readings into display pixels.
//
// The panel sits rotated 90 degrees relative to the display: the sensor's X
// axis runs along the screen's Y axis and the sensor's Y axis along screen X.
type Calibration struct {
	// SensorX maps sensor X onto screen Y.
	SensorX Axis
	// SensorY maps sensor Y onto screen X.
	SensorY Axis

	Width, Height int
}

// Reference is the calibration measured on the 480x320 ILI9488 panel with an
// FT6236 controller in landscape rotation.
func Reference() Calibration {
	return Calibration{
		SensorX: Axis{Raw1: 8, Raw2: 296, Screen1: 320, Screen2: 0},
		SensorY: Axis{Raw1: 0, Raw2: 479, Screen1: 0, Screen2: 479},
		Width:   480,
		Height:  320,
	}
}

// ReferenceQVGA is a starting calibration for a 320x240 ILI9341 panel with
// an XPT2046 resistive controller. Resistive panels vary unit to unit; run
// `tapmenu calibrate` for real values.
func ReferenceQVGA() Calibration {
	return Calibration{
		SensorX: Axis{Raw1: 300, Raw2: 3800, Screen1: 0, Screen2: 239},
		SensorY: Axis{Raw1: 200, Raw2: 3700, Screen1: 319, Screen2: 0},
		Width:   320,
		Height:  240,
	}
}

// MapRaw applies the axis swap and linear maps without clamping.
func (c Calibration) MapRaw(p touch.Point) Point {
	return Point{
		X: c.SensorY.Apply(p.Y),
		Y: c.SensorX.Apply(p.X),
	}
}

// Map converts a raw sample to screen pixels, clamped to the display.
// Out-of-range raw input is never rejected.
func (c Calibration) Map(p touch.Point) Point {
	s := c.MapRaw(p)
	s.X = clamp(s.X, 0, c.Width-1)
	s.Y = clamp(s.Y, 0, c.Height-1)
	return s
}

// Unmap returns a raw sample that maps back onto s.
func (c Calibration) Unmap(s Point) touch.Point {
	return touch.Point{
		X: c.SensorX.Invert(s.Y),
		Y: c.SensorY.Invert(s.X),
		Z: 1,
	}
}

// Fit derives a calibration from raw readings taken while touching the
// top-left (0,0) and bottom-right (width-1,height-1) display corners.
func Fit(topLeft, bottomRight touch.Point, width, height int) Calibration {
	return Calibration{
		SensorX: Axis{Raw1: topLeft.X, Raw2: bottomRight.X, Screen1: 0, Screen2: height - 1},
		SensorY: Axis{Raw1: topLeft.Y, Raw2: bottomRight.Y, Screen1: 0, Screen2: width - 1},
		Width:   width,
		Height:  height,
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
