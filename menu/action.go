package menu

import (
	"time"

	"tapmenu/ui"
)

// Status is the text and accent color shown in the header.
type Status struct {
	Text  string
	Color ui.Color
}

// Ready is the boot and reset status.
var Ready = Status{Text: "Ready", Color: ui.White}

// LEDChange is an optional side effect on the indicator LED.
type LEDChange uint8

const (
	LEDKeep LEDChange = iota
	LEDOn
	LEDOff
)

// Step sets the status, then holds for Delay before the next step runs.
type Step struct {
	Status Status
	Delay  time.Duration
}

// Action is what a button does once its press feedback has been shown.
type Action struct {
	Name  string
	LED   LEDChange
	Steps []Step
}

// SensorDelay is the simulated sensor acquisition time.
const SensorDelay = 500 * time.Millisecond

// DefaultActions returns the action table for ui.DefaultLayout, in the same
// order. deviceInfo is shown by the INFO button.
func DefaultActions(deviceInfo string) []Action {
	return []Action{
		{Name: "led-on", LED: LEDOn, Steps: []Step{{Status: Status{"LED: ON", ui.Green}}}},
		{Name: "led-off", LED: LEDOff, Steps: []Step{{Status: Status{"LED: OFF", ui.Red}}}},
		{Name: "sensor", Steps: []Step{
			{Status: Status{"Reading sensor...", ui.Cyan}, Delay: SensorDelay},
			{Status: Status{"Temp: 25C", ui.Yellow}},
		}},
		{Name: "settings", Steps: []Step{{Status: Status{"Settings opened", ui.Orange}}}},
		{Name: "info", Steps: []Step{{Status: Status{deviceInfo, ui.Cyan}}}},
		{Name: "status", Steps: []Step{{Status: Status{"System OK", ui.Green}}}},
		{Name: "wifi", Steps: []Step{{Status: Status{"WiFi: Disconnected", ui.Yellow}}}},
		{Name: "clear", Steps: []Step{{Status: Ready}}},
	}
}
