package menu

import (
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tapmenu/ui"
)

type surface struct {
	w, h int
	pix  []ui.Color
}

func newSurface() *surface {
	return &surface{w: 480, h: 320, pix: make([]ui.Color, 480*320)}
}

func (s *surface) Size() (int16, int16) { return int16(s.w), int16(s.h) }
func (s *surface) Display() error       { return nil }

func (s *surface) SetPixel(x, y int16, c color.RGBA) {
	if int(x) < 0 || int(x) >= s.w || int(y) < 0 || int(y) >= s.h {
		return
	}
	s.pix[int(y)*s.w+int(x)] = ui.FromRGBA(c)
}

func (s *surface) FillRectangle(x, y, w, h int16, c color.RGBA) error {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			s.SetPixel(xx, yy, c)
		}
	}
	return nil
}

type sleepRecorder struct {
	slept   []time.Duration
	onSleep func()
}

func (c *sleepRecorder) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	if c.onSleep != nil {
		c.onSleep()
	}
}

type led struct{ on, touched bool }

func (l *led) High() { l.on, l.touched = true, true }
func (l *led) Low()  { l.on, l.touched = false, true }

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }

type fixture struct {
	d       *Dispatcher
	surf    *surface
	clock   *sleepRecorder
	led     *led
	log     *lines
	history []Status
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg, err := ui.NewRegistry(ui.DefaultLayout())
	require.NoError(t, err)

	f := &fixture{surf: newSurface(), clock: &sleepRecorder{}, led: &led{}, log: &lines{}}
	f.d, err = NewDispatcher(Config{
		Registry: reg,
		Renderer: ui.NewRenderer(f.surf),
		Clock:    f.clock,
		LED:      f.led,
		Log:      f.log,
		Actions:  DefaultActions("tapmenu dev"),
		Feedback: DefaultFeedback,
		OnStatus: func(s Status) { f.history = append(f.history, s) },
	})
	require.NoError(t, err)
	return f
}

func TestDispatchLEDOn(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.d.Dispatch(0))
	require.Equal(t, Status{Text: "LED: ON", Color: ui.Green}, f.d.Status())
	require.True(t, f.led.on)
	require.Equal(t, []time.Duration{DefaultFeedback}, f.clock.slept)
	require.Contains(t, *f.log, "Status: LED: ON")

	require.True(t, f.d.Dispatch(1))
	require.False(t, f.led.on)
	require.Equal(t, ui.Red, f.d.Status().Color)
}

func TestDispatchShowsPressedStateDuringFeedback(t *testing.T) {
	f := newFixture(t)
	b := ui.DefaultLayout()[3]
	px, py := b.Bounds.X+4, b.Bounds.Y+b.Bounds.H/2

	var during ui.Color
	f.clock.onSleep = func() {
		if during == 0 {
			during = f.surf.pix[py*f.surf.w+px]
		}
	}
	require.True(t, f.d.Dispatch(3))
	require.Equal(t, ui.White, during)
	require.Equal(t, ui.Orange, f.surf.pix[py*f.surf.w+px], "normal state restored")
	require.Equal(t, "Settings opened", f.d.Status().Text)
}

func TestDispatchSensorIsTwoStage(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.d.Dispatch(2))
	require.Equal(t, []Status{
		{Text: "Reading sensor...", Color: ui.Cyan},
		{Text: "Temp: 25C", Color: ui.Yellow},
	}, f.history)
	require.Equal(t, []time.Duration{DefaultFeedback, SensorDelay}, f.clock.slept)
	require.False(t, f.led.touched)
}

func TestDispatchUnknownIndexIsNoop(t *testing.T) {
	f := newFixture(t)

	require.False(t, f.d.Dispatch(42))
	require.False(t, f.d.Dispatch(-1))
	require.Equal(t, Ready, f.d.Status())
	require.Empty(t, f.history)
	require.Empty(t, f.clock.slept)
}

func TestDispatchSequencesDoNotInterleave(t *testing.T) {
	f := newFixture(t)
	actions := DefaultActions("tapmenu dev")

	order := []int{2, 0, 2, 4, 7}
	var want []Status
	for _, i := range order {
		require.True(t, f.d.Dispatch(i))
		for _, st := range actions[i].Steps {
			want = append(want, st.Status)
		}
	}
	require.Equal(t, want, f.history)
	require.Equal(t, Ready, f.d.Status())
}

func TestDispatchInfoUsesDeviceInfo(t *testing.T) {
	f := newFixture(t)
	f.d.Dispatch(4)
	if got := f.d.Status().Text; got != "tapmenu dev" {
		t.Fatalf("Status().Text = %q, want %q", got, "tapmenu dev")
	}
}

func TestDrawAllPaintsEveryButton(t *testing.T) {
	f := newFixture(t)
	f.d.DrawAll()
	for i, b := range ui.DefaultLayout() {
		px, py := b.Bounds.X+4, b.Bounds.Y+b.Bounds.H/2
		if got := f.surf.pix[py*f.surf.w+px]; got != b.Fill {
			t.Fatalf("button %d fill = %#04x, want %#04x", i, uint16(got), uint16(b.Fill))
		}
	}
	if got := f.surf.pix[5*f.surf.w+200]; got != ui.Navy {
		t.Fatalf("header = %#04x, want navy", uint16(got))
	}
}

func TestNewDispatcherValidates(t *testing.T) {
	reg, err := ui.NewRegistry(ui.DefaultLayout())
	require.NoError(t, err)

	_, err = NewDispatcher(Config{
		Registry: reg,
		Renderer: ui.NewRenderer(newSurface()),
		Clock:    &sleepRecorder{},
		Actions:  DefaultActions("x")[:3],
	})
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "3 actions for 8 buttons"), err.Error())

	_, err = NewDispatcher(Config{Registry: reg})
	require.Error(t, err)
}
