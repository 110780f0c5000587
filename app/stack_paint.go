//go:build tinygo && baremetal

package app

import "neo/neoui/stack"

func defaultStack() stack.Monitor { return stack.NewPaint() }
