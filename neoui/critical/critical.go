// Package critical masks interrupts around short bus operations.
//
// On TinyGo it disables interrupts (runtime/interrupt). On the host
// simulator a process-wide mutex stands in for the interrupt mask, since
// host input backends may feed events from other goroutines.
package critical

// State is the saved mask returned by Enter and consumed by Exit.
type State = state

// Do runs fn with interrupts masked.
func Do(fn func()) {
	s := Enter()
	fn()
	Exit(s)
}
