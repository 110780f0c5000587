//go:build tinygo

package critical

import "runtime/interrupt"

type state = interrupt.State

// Enter disables interrupts and returns the previous mask.
func Enter() State { return interrupt.Disable() }

// Exit restores the mask saved by Enter.
func Exit(s State) { interrupt.Restore(s) }
