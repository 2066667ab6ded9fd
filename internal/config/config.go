// Package config loads host-side settings for the simulator and CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"tapmenu/app"
	"tapmenu/hal"
	"tapmenu/input"
)

// EnvPrefix is prepended to every environment override, e.g.
// TAPMENU_MENU_DEBOUNCE=250ms.
const EnvPrefix = "TAPMENU"

// Config holds application configuration.
type Config struct {
	Board       BoardConfig       `mapstructure:"board"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
	Menu        MenuConfig        `mapstructure:"menu"`
}

// BoardConfig names the simulated board.
type BoardConfig struct {
	Name string `mapstructure:"name"`
}

// AxisConfig is one raw-to-screen axis.
type AxisConfig struct {
	Raw1    int `mapstructure:"raw1"`
	Raw2    int `mapstructure:"raw2"`
	Screen1 int `mapstructure:"screen1"`
	Screen2 int `mapstructure:"screen2"`
}

// CalibrationConfig holds the touch calibration and display size.
type CalibrationConfig struct {
	SensorX AxisConfig `mapstructure:"sensor_x"`
	SensorY AxisConfig `mapstructure:"sensor_y"`
	Width   int        `mapstructure:"width"`
	Height  int        `mapstructure:"height"`
}

// MenuConfig holds loop timing and startup settings.
type MenuConfig struct {
	Title           string        `mapstructure:"title"`
	Disabled        []string      `mapstructure:"disabled"`
	Debounce        time.Duration `mapstructure:"debounce"`
	Feedback        time.Duration `mapstructure:"feedback"`
	Tick            time.Duration `mapstructure:"tick"`
	TouchThresholds []int         `mapstructure:"touch_thresholds"`
	TouchRetryDelay time.Duration `mapstructure:"touch_retry_delay"`
}

// DefaultPath is ~/.config/tapmenu/config.toml.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "tapmenu", "config.toml")
}

// Load reads configuration from path and the environment. An empty path
// falls back to TAPMENU_CONFIG, then DefaultPath. A missing default file is
// not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	explicit := path != ""
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
		explicit = path != ""
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	ref := input.Reference()
	d := app.DefaultConfig()

	v.SetDefault("board.name", "host")

	v.SetDefault("calibration.sensor_x.raw1", ref.SensorX.Raw1)
	v.SetDefault("calibration.sensor_x.raw2", ref.SensorX.Raw2)
	v.SetDefault("calibration.sensor_x.screen1", ref.SensorX.Screen1)
	v.SetDefault("calibration.sensor_x.screen2", ref.SensorX.Screen2)
	v.SetDefault("calibration.sensor_y.raw1", ref.SensorY.Raw1)
	v.SetDefault("calibration.sensor_y.raw2", ref.SensorY.Raw2)
	v.SetDefault("calibration.sensor_y.screen1", ref.SensorY.Screen1)
	v.SetDefault("calibration.sensor_y.screen2", ref.SensorY.Screen2)
	v.SetDefault("calibration.width", ref.Width)
	v.SetDefault("calibration.height", ref.Height)

	thresholds := make([]int, len(d.TouchThresholds))
	for i, t := range d.TouchThresholds {
		thresholds[i] = int(t)
	}
	v.SetDefault("menu.title", d.Title)
	v.SetDefault("menu.disabled", []string{})
	v.SetDefault("menu.debounce", d.Debounce)
	v.SetDefault("menu.feedback", d.Feedback)
	v.SetDefault("menu.tick", d.Tick)
	v.SetDefault("menu.touch_thresholds", thresholds)
	v.SetDefault("menu.touch_retry_delay", d.TouchRetryDelay)
}

// Validate rejects settings the menu cannot run with.
func (c Config) Validate() error {
	if c.Calibration.Width <= 0 || c.Calibration.Height <= 0 {
		return fmt.Errorf("calibration: display size %dx%d must be positive", c.Calibration.Width, c.Calibration.Height)
	}
	if c.Menu.Debounce < 0 || c.Menu.Feedback < 0 || c.Menu.TouchRetryDelay < 0 {
		return fmt.Errorf("menu: durations must not be negative")
	}
	if c.Menu.Tick <= 0 {
		return fmt.Errorf("menu: tick %s must be positive", c.Menu.Tick)
	}
	for _, t := range c.Menu.TouchThresholds {
		if t < 1 || t > 255 {
			return fmt.Errorf("menu: touch threshold %d out of range 1..255", t)
		}
	}
	return nil
}

// CalibrationMapping converts the calibration section.
func (c Config) CalibrationMapping() input.Calibration {
	axis := func(a AxisConfig) input.Axis {
		return input.Axis{Raw1: a.Raw1, Raw2: a.Raw2, Screen1: a.Screen1, Screen2: a.Screen2}
	}
	return input.Calibration{
		SensorX: axis(c.Calibration.SensorX),
		SensorY: axis(c.Calibration.SensorY),
		Width:   c.Calibration.Width,
		Height:  c.Calibration.Height,
	}
}

// App converts the menu section into the startup config.
func (c Config) App() app.Config {
	cfg := app.DefaultConfig()
	cfg.Calibration = c.CalibrationMapping()
	cfg.Title = c.Menu.Title
	cfg.Disabled = append([]string(nil), c.Menu.Disabled...)
	cfg.Debounce = c.Menu.Debounce
	cfg.Feedback = c.Menu.Feedback
	cfg.Tick = c.Menu.Tick
	cfg.TouchRetryDelay = c.Menu.TouchRetryDelay
	if len(c.Menu.TouchThresholds) > 0 {
		cfg.TouchThresholds = make([]uint8, len(c.Menu.TouchThresholds))
		for i, t := range c.Menu.TouchThresholds {
			cfg.TouchThresholds[i] = uint8(t)
		}
	}
	return cfg
}

// Host converts the board and calibration sections into a simulated board.
func (c Config) Host() hal.HostConfig {
	return hal.HostConfig{
		Name:        c.Board.Name,
		Calibration: c.CalibrationMapping(),
	}
}

// SaveCalibration writes cal into the config file at path, keeping the
// other keys already there. The directory is created if needed.
func SaveCalibration(path string, cal input.Calibration) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	v.Set("calibration.sensor_x.raw1", cal.SensorX.Raw1)
	v.Set("calibration.sensor_x.raw2", cal.SensorX.Raw2)
	v.Set("calibration.sensor_x.screen1", cal.SensorX.Screen1)
	v.Set("calibration.sensor_x.screen2", cal.SensorX.Screen2)
	v.Set("calibration.sensor_y.raw1", cal.SensorY.Raw1)
	v.Set("calibration.sensor_y.raw2", cal.SensorY.Raw2)
	v.Set("calibration.sensor_y.screen1", cal.SensorY.Screen1)
	v.Set("calibration.sensor_y.screen2", cal.SensorY.Screen2)
	v.Set("calibration.width", cal.Width)
	v.Set("calibration.height", cal.Height)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
