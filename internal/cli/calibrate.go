package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"tinygo.org/x/drivers/touch"

	"tapmenu/input"
	"tapmenu/internal/config"
)

func calibrateCmd(opts *options) *cobra.Command {
	var (
		topLeft, bottomRight string
		width, height        int
		write                bool
	)
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Derive a touch calibration from two raw corner readings",
		Long: `Touch the top-left and bottom-right display corners, note the raw
controller readings, and pass them here. The result is printed as a config
snippet, or merged into the config file with --write.`,
		Example: `  tapmenu calibrate --top-left 296,0 --bottom-right 8,479`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, err := parseRaw(topLeft)
			if err != nil {
				return fmt.Errorf("--top-left: %w", err)
			}
			br, err := parseRaw(bottomRight)
			if err != nil {
				return fmt.Errorf("--bottom-right: %w", err)
			}
			if width <= 0 || height <= 0 {
				return fmt.Errorf("display size %dx%d must be positive", width, height)
			}
			if tl.X == br.X || tl.Y == br.Y {
				return fmt.Errorf("corner readings share an axis value; touch opposite corners")
			}

			cal := input.Fit(tl, br, width, height)
			out := cmd.OutOrStdout()
			if write {
				path := opts.configPath
				if path == "" {
					path = config.DefaultPath()
				}
				if err := config.SaveCalibration(path, cal); err != nil {
					return err
				}
				fmt.Fprintf(out, "calibration written to %s\n", path)
				return nil
			}
			writeCalibration(out, cal)
			return nil
		},
	}
	cmd.Flags().StringVar(&topLeft, "top-left", "", "raw X,Y read at the top-left corner")
	cmd.Flags().StringVar(&bottomRight, "bottom-right", "", "raw X,Y read at the bottom-right corner")
	cmd.Flags().IntVar(&width, "width", 480, "display width in pixels")
	cmd.Flags().IntVar(&height, "height", 320, "display height in pixels")
	cmd.Flags().BoolVar(&write, "write", false, "merge the result into the config file")
	_ = cmd.MarkFlagRequired("top-left")
	_ = cmd.MarkFlagRequired("bottom-right")
	return cmd
}

func parseRaw(s string) (touch.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return touch.Point{}, fmt.Errorf("want X,Y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return touch.Point{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return touch.Point{}, err
	}
	return touch.Point{X: x, Y: y, Z: 1}, nil
}

func writeCalibration(w io.Writer, c input.Calibration) {
	fmt.Fprintf(w, "[calibration]\nwidth = %d\nheight = %d\n", c.Width, c.Height)
	for _, a := range []struct {
		name string
		axis input.Axis
	}{{"sensor_x", c.SensorX}, {"sensor_y", c.SensorY}} {
		fmt.Fprintf(w, "\n[calibration.%s]\nraw1 = %d\nraw2 = %d\nscreen1 = %d\nscreen2 = %d\n",
			a.name, a.axis.Raw1, a.axis.Raw2, a.axis.Screen1, a.axis.Screen2)
	}
}
