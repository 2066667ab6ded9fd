//go:build tinygo

package main

import (
	"tapmenu/app"
	"tapmenu/hal"
)

func main() {
	app.Run(hal.New())
}
