package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tapmenu/app"
	"tapmenu/hal"
)

func headlessCmd(opts *options) *cobra.Command {
	var (
		taps      []string
		duration  time.Duration
		ticks     uint64
		touchFail int
	)
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Replay scripted taps on a virtual clock and print the final state",
		Example: `  tapmenu headless --tap 60,80@300 --duration 1s
  tapmenu headless --tap 300,200@300+500 --tap 60,140@1200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if duration <= 0 && ticks == 0 {
				return fmt.Errorf("headless needs --duration or --ticks")
			}
			script, err := parseTaps(taps)
			if err != nil {
				return err
			}
			c, err := opts.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			hcfg := c.Host()
			hcfg.Virtual = true
			hcfg.Script = script
			hcfg.TouchInitFailures = touchFail
			hcfg.Out = out
			host := hal.NewHost(hcfg)
			acfg := c.App()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var m *app.Menu
			err = hal.RunHeadless(ctx, host, func(h hal.HAL) (func() error, error) {
				mm, err := app.New(h, acfg)
				if err != nil {
					return nil, err
				}
				m = mm
				return m.Step, nil
			}, hal.HeadlessConfig{Tick: acfg.Tick, Ticks: ticks, Duration: duration})
			if err != nil {
				return err
			}

			led := "off"
			if host.LEDOn() {
				led = "on"
			}
			fmt.Fprintf(out, "status: %s\n", m.Status().Text)
			fmt.Fprintf(out, "led: %s\n", led)
			fmt.Fprintf(out, "elapsed: %s\n", host.Clock().Now())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&taps, "tap", nil, "tap at X,Y@MS[+HOLDMS] in screen pixels (repeatable)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop when the virtual clock reaches this")
	cmd.Flags().Uint64Var(&ticks, "ticks", 0, "stop after N loop ticks")
	cmd.Flags().IntVar(&touchFail, "touch-fail", 0, "make the first N touch init attempts fail")
	return cmd
}

func parseTaps(args []string) ([]hal.Tap, error) {
	taps := make([]hal.Tap, 0, len(args))
	for _, s := range args {
		t, err := parseTap(s)
		if err != nil {
			return nil, err
		}
		taps = append(taps, t)
	}
	return taps, nil
}

// parseTap reads X,Y@MS or X,Y@MS+HOLDMS.
func parseTap(s string) (hal.Tap, error) {
	pos, when, ok := strings.Cut(s, "@")
	if !ok {
		return hal.Tap{}, fmt.Errorf("tap %q: want X,Y@MS", s)
	}
	xs, ys, ok := strings.Cut(pos, ",")
	if !ok {
		return hal.Tap{}, fmt.Errorf("tap %q: want X,Y@MS", s)
	}
	at, hold, hasHold := strings.Cut(when, "+")

	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return hal.Tap{}, fmt.Errorf("tap %q: x: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return hal.Tap{}, fmt.Errorf("tap %q: y: %w", s, err)
	}
	atMS, err := strconv.Atoi(strings.TrimSpace(at))
	if err != nil || atMS < 0 {
		return hal.Tap{}, fmt.Errorf("tap %q: bad time %q", s, at)
	}
	t := hal.Tap{At: time.Duration(atMS) * time.Millisecond, X: x, Y: y}
	if hasHold {
		holdMS, err := strconv.Atoi(strings.TrimSpace(hold))
		if err != nil || holdMS <= 0 {
			return hal.Tap{}, fmt.Errorf("tap %q: bad hold %q", s, hold)
		}
		t.Hold = time.Duration(holdMS) * time.Millisecond
	}
	return t, nil
}
