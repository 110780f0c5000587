//go:build !tinygo

package app

import "neo/neoui/stack"

func defaultStack() stack.Monitor { return stack.NewRuntime() }
