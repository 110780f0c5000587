//go:build tinygo && baremetal

package main

import (
	"neo/app"
	"neo/hal"
)

func main() {
	app.Run(hal.New(), app.Config{})
}
