package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tapmenu/hal"
	"tapmenu/input"
	"tapmenu/menu"
	"tapmenu/ui"
)

type run struct {
	host *hal.Host
	out  *bytes.Buffer
	menu *Menu
	err  error
}

func runScript(t *testing.T, cfg Config, hcfg hal.HostConfig, d time.Duration) *run {
	t.Helper()
	out := &bytes.Buffer{}
	hcfg.Virtual = true
	hcfg.Out = out
	r := &run{host: hal.NewHost(hcfg), out: out}

	r.err = hal.RunHeadless(context.Background(), r.host, func(h hal.HAL) (func() error, error) {
		m, err := New(h, cfg)
		if err != nil {
			return nil, err
		}
		r.menu = m
		return m.Step, nil
	}, hal.HeadlessConfig{Tick: 10 * time.Millisecond, Duration: d})
	return r
}

func (r *run) count(line string) int {
	return strings.Count(r.out.String(), line+"\n")
}

func TestTapOnLEDOnButton(t *testing.T) {
	r := runScript(t, DefaultConfig(), hal.HostConfig{
		Script: []hal.Tap{{At: 300 * time.Millisecond, X: 60, Y: 80}},
	}, time.Second)
	require.NoError(t, r.err)

	require.Equal(t, menu.Status{Text: "LED: ON", Color: ui.Green}, r.menu.Status())
	require.True(t, r.host.LEDOn())
	require.Equal(t, 1, r.count("Touch at: (60, 80)"))
	require.Equal(t, 1, r.count("Button 0 (LED ON) pressed!"))
	require.Equal(t, 1, r.count("Status: LED: ON"))
	require.Equal(t, 1, r.count("Touch OK (threshold: 40)"))
	require.Equal(t, 1, r.count("Menu ready!"))
}

func TestTapOutsideButtonsChangesNothing(t *testing.T) {
	r := runScript(t, DefaultConfig(), hal.HostConfig{
		Script: []hal.Tap{{At: 300 * time.Millisecond, X: 400, Y: 400}},
	}, time.Second)
	require.NoError(t, r.err)

	require.Equal(t, menu.Ready, r.menu.Status())
	require.Equal(t, 1, strings.Count(r.out.String(), "Touch at:"))
	require.NotContains(t, r.out.String(), "pressed!")
	require.Equal(t, 1, r.count("Status: Ready"), "only the boot status")
}

func TestHeldPressDispatchesOnce(t *testing.T) {
	// Two touch-downs 50ms apart with no release in between.
	r := runScript(t, DefaultConfig(), hal.HostConfig{
		Script: []hal.Tap{
			{At: 300 * time.Millisecond, Hold: 50 * time.Millisecond, X: 60, Y: 80},
			{At: 350 * time.Millisecond, Hold: 80 * time.Millisecond, X: 60, Y: 80},
		},
	}, time.Second)
	require.NoError(t, r.err)
	require.Equal(t, 1, r.count("Button 0 (LED ON) pressed!"))
}

func TestSeparatedPressesDispatchTwice(t *testing.T) {
	r := runScript(t, DefaultConfig(), hal.HostConfig{
		Script: []hal.Tap{
			{At: 300 * time.Millisecond, X: 60, Y: 80},
			{At: 600 * time.Millisecond, X: 300, Y: 80},
		},
	}, 1500*time.Millisecond)
	require.NoError(t, r.err)
	require.Equal(t, 1, r.count("Button 0 (LED ON) pressed!"))
	require.Equal(t, 1, r.count("Button 4 (INFO) pressed!"))
	require.Equal(t, DeviceInfo(hal.Board{Name: "host"}), r.menu.Status().Text)
}

func TestSensorActionBlocksLoop(t *testing.T) {
	// The second tap lands while the sensor action is still holding.
	r := runScript(t, DefaultConfig(), hal.HostConfig{
		Script: []hal.Tap{
			{At: 300 * time.Millisecond, X: 60, Y: 200},
			{At: 700 * time.Millisecond, X: 60, Y: 80},
		},
	}, 2*time.Second)
	require.NoError(t, r.err)

	out := r.out.String()
	require.Equal(t, 1, r.count("Button 2 (SENSOR) pressed!"))
	require.Equal(t, 0, r.count("Button 0 (LED ON) pressed!"))
	require.Less(t, strings.Index(out, "Status: Reading sensor..."), strings.Index(out, "Status: Temp: 25C"))
	require.Equal(t, "Temp: 25C", r.menu.Status().Text)
}

func TestDisabledButtonIgnored(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = []string{"LED ON"}
	r := runScript(t, cfg, hal.HostConfig{
		Script: []hal.Tap{{At: 300 * time.Millisecond, X: 60, Y: 80}},
	}, time.Second)
	require.NoError(t, r.err)

	require.Equal(t, menu.Ready, r.menu.Status())
	require.False(t, r.host.LEDOn())
	require.Equal(t, uint16(ui.DarkGrey), r.host.Pixel(24, 82))
}

func TestUnknownDisabledLabel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = []string{"NOPE"}
	r := runScript(t, cfg, hal.HostConfig{}, time.Second)
	require.Error(t, r.err)
	require.Contains(t, r.err.Error(), "NOPE")
}

func TestTouchInitRetriesThresholds(t *testing.T) {
	r := runScript(t, DefaultConfig(), hal.HostConfig{TouchInitFailures: 2}, 100*time.Millisecond)
	require.NoError(t, r.err)
	require.Equal(t, []uint8{40, 128, 20}, r.host.TouchInitThresholds())
	require.Equal(t, 1, r.count("Touch OK (threshold: 20)"))
}

func TestTouchInitFailureIsFatal(t *testing.T) {
	r := runScript(t, DefaultConfig(), hal.HostConfig{TouchInitFailures: 4}, time.Second)
	require.True(t, errors.Is(r.err, ErrTouchInit), "err = %v", r.err)
	require.Nil(t, r.menu)
	require.Equal(t, []uint8{40, 128, 20, 60}, r.host.TouchInitThresholds())

	red := false
	for x := 20; x < 200 && !red; x++ {
		for y := 40; y < 60; y++ {
			if r.host.Pixel(x, y) == uint16(ui.Red) {
				red = true
				break
			}
		}
	}
	require.True(t, red, "failure message drawn in red")
	require.NotContains(t, r.out.String(), "Menu ready!")
}

func TestHaltReturnsWhenContextDone(t *testing.T) {
	h := hal.NewHost(hal.HostConfig{Virtual: true, Out: &bytes.Buffer{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	Halt(ctx, h, ErrTouchInit)
}

func TestBootDrawsMenu(t *testing.T) {
	r := runScript(t, DefaultConfig(), hal.HostConfig{}, 50*time.Millisecond)
	require.NoError(t, r.err)
	for i, b := range ui.DefaultLayout() {
		got := r.host.Pixel(b.Bounds.X+4, b.Bounds.Y+b.Bounds.H/2)
		require.Equal(t, uint16(b.Fill), got, "button %d", i)
	}
	require.Equal(t, uint16(ui.Navy), r.host.Pixel(240, 3))
}

func TestOnStatusObservesChanges(t *testing.T) {
	var seen []string
	cfg := DefaultConfig()
	cfg.OnStatus = func(s menu.Status) { seen = append(seen, s.Text) }

	r := runScript(t, cfg, hal.HostConfig{
		Script: []hal.Tap{{At: 300 * time.Millisecond, X: 60, Y: 200}},
	}, 2*time.Second)
	require.NoError(t, r.err)
	require.Equal(t, []string{"Ready", "Reading sensor...", "Temp: 25C"}, seen)
}

func TestQVGABoardTapsEveryButton(t *testing.T) {
	var seen []string
	cfg := DefaultConfig()
	cfg.OnStatus = func(s menu.Status) { seen = append(seen, s.Text) }

	layout := ui.LayoutFor(320, 240)
	var script []hal.Tap
	for i, b := range layout {
		c := b.Bounds.Center()
		script = append(script, hal.Tap{At: time.Duration(i+1) * time.Second, X: c.X, Y: c.Y})
	}
	r := runScript(t, cfg, hal.HostConfig{Name: "qvga", Calibration: input.ReferenceQVGA(), Script: script}, 10*time.Second)
	require.NoError(t, r.err)

	for i, b := range layout {
		require.Equal(t, 1, r.count(fmt.Sprintf("Button %d (%s) pressed!", i, b.Label)), "button %d", i)
		got := r.host.Pixel(b.Bounds.X+4, b.Bounds.Y+b.Bounds.H/2)
		require.Equal(t, uint16(b.Fill), got, "button %d drawn on screen", i)
	}
	require.Equal(t, []string{
		"Ready",
		"LED: ON",
		"LED: OFF",
		"Reading sensor...", "Temp: 25C",
		"Settings opened",
		DeviceInfo(hal.Board{Name: "qvga"}),
		"System OK",
		"WiFi: Disconnected",
		"Ready",
	}, seen)
}

func TestOffscreenButtonRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Buttons = ui.DefaultLayout()
	r := runScript(t, cfg, hal.HostConfig{Calibration: input.ReferenceQVGA()}, time.Second)
	require.ErrorIs(t, r.err, ui.ErrOffscreen)
	require.False(t, errors.Is(r.err, ErrTouchInit))
	require.Nil(t, r.menu)
	require.Empty(t, r.host.TouchInitThresholds(), "rejected before touch init")
}

func TestZeroFeedbackUsesDefault(t *testing.T) {
	require.Equal(t, menu.DefaultFeedback, Config{}.withDefaults().Feedback)
	require.Equal(t, time.Duration(0), Config{Feedback: -1}.withDefaults().Feedback)

	h := hal.NewHost(hal.HostConfig{Virtual: true, Out: &bytes.Buffer{}})
	m, err := New(h, Config{})
	require.NoError(t, err)

	clock := h.Clock()
	clock.Sleep(300 * time.Millisecond)
	h.SetPointer(60, 80, true)
	start := clock.Now()
	require.NoError(t, m.Step())
	require.Equal(t, "LED: ON", m.Status().Text)
	require.Equal(t, menu.DefaultFeedback, clock.Now()-start, "pressed state held")
}

func TestStartReturnsConfigErrors(t *testing.T) {
	out := &bytes.Buffer{}
	h := hal.NewHost(hal.HostConfig{Virtual: true, Out: out})
	cfg := DefaultConfig()
	cfg.Disabled = []string{"NOPE"}

	err := Start(context.Background(), h, cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "NOPE")
	require.NotContains(t, out.String(), "halt:")
}

func TestStartHaltsOnTouchInit(t *testing.T) {
	out := &bytes.Buffer{}
	h := hal.NewHost(hal.HostConfig{Virtual: true, TouchInitFailures: 4, Out: out})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, Start(ctx, h, DefaultConfig()))
	require.Contains(t, out.String(), "halt: touch init failed")
}

func TestStartStopsCleanly(t *testing.T) {
	h := hal.NewHost(hal.HostConfig{Virtual: true, Out: &bytes.Buffer{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, Start(ctx, h, DefaultConfig()))
}
