// Package metrics keeps per-slot run counters for the scheduler.
//
// Counters grow until Reset. The metrics report task resets every slot it
// prints, so values are deltas over one reporting epoch, not lifetime totals.
// The Total and Over arrays are lifetime counters that Reset leaves alone;
// exporters derive monotonic series from them.
package metrics

import (
	"io"
	"strconv"
)

// MaxTasks is the number of task slots.
const MaxTasks = 16

// NameLen is the width of a task label.
const NameLen = 8

// Name is a fixed-width task label.
type Name [NameLen]byte

// MakeName pads or truncates s to NameLen bytes with '_'.
func MakeName(s string) Name {
	var n Name
	for i := range n {
		if i < len(s) {
			n[i] = s[i]
		} else {
			n[i] = '_'
		}
	}
	return n
}

func (n Name) String() string { return string(n[:]) }

// Metrics holds counters in parallel arrays indexed by slot.
type Metrics struct {
	RunCount      [MaxTasks]uint32
	MaxStack      [MaxTasks]uint32
	MaxDurationUS [MaxTasks]uint32
	Name          [MaxTasks]Name

	// Lifetime counters. They wrap at 2^32; take deltas with uint32
	// subtraction.
	TotalRuns [MaxTasks]uint32
	OverTime  [MaxTasks]uint32
	OverStack [MaxTasks]uint32

	budgetUS    [MaxTasks]uint32
	budgetStack [MaxTasks]uint32
}

// New returns zeroed metrics.
func New() *Metrics {
	return &Metrics{}
}

// SetName labels a slot.
func (m *Metrics) SetName(slot int, name Name) {
	if slot < 0 || slot >= MaxTasks {
		return
	}
	m.Name[slot] = name
}

// SetBudget declares the time and stack budgets of a slot. Zero disables
// the check.
func (m *Metrics) SetBudget(slot int, timeUS, stackBytes uint32) {
	if slot < 0 || slot >= MaxTasks {
		return
	}
	m.budgetUS[slot] = timeUS
	m.budgetStack[slot] = stackBytes
}

// Record accounts one completed run of slot.
//
// A run longer than the time budget counts one OverTime. stackBytes is a
// high-water figure, so OverStack counts only when the epoch maximum rises
// above the stack budget.
func (m *Metrics) Record(slot int, stackBytes, durationUS uint32) {
	if slot < 0 || slot >= MaxTasks {
		return
	}
	m.RunCount[slot]++
	m.TotalRuns[slot]++
	if b := m.budgetUS[slot]; b > 0 && durationUS > b {
		m.OverTime[slot]++
	}
	if stackBytes > m.MaxStack[slot] {
		if b := m.budgetStack[slot]; b > 0 && stackBytes > b {
			m.OverStack[slot]++
		}
		m.MaxStack[slot] = stackBytes
	}
	if durationUS > m.MaxDurationUS[slot] {
		m.MaxDurationUS[slot] = durationUS
	}
}

// Reset zeroes the epoch counters of one slot. The name, budgets and
// lifetime counters are kept.
func (m *Metrics) Reset(slot int) {
	if slot < 0 || slot >= MaxTasks {
		return
	}
	m.RunCount[slot] = 0
	m.MaxStack[slot] = 0
	m.MaxDurationUS[slot] = 0
}

var reportHeader = []byte("\r\n\r\n")

// Field widths of the report line.
const (
	runCountWidth = 4
	stackWidth    = 5
	durationWidth = 7
)

// AppendLine appends the report line of slot to dst:
//
//	Task <name>: <run_count> runs, <max_stack> bytes, <max_duration_us> uS\r\n
func (m *Metrics) AppendLine(dst []byte, slot int) []byte {
	dst = append(dst, "Task "...)
	dst = append(dst, m.Name[slot][:]...)
	dst = append(dst, ": "...)
	dst = appendPadded(dst, m.RunCount[slot], runCountWidth)
	dst = append(dst, " runs, "...)
	dst = appendPadded(dst, m.MaxStack[slot], stackWidth)
	dst = append(dst, " bytes, "...)
	dst = appendPadded(dst, m.MaxDurationUS[slot], durationWidth)
	dst = append(dst, " uS\r\n"...)
	return dst
}

// WriteReport prints every slot that ran since the last report and resets it.
func (m *Metrics) WriteReport(w io.Writer) error {
	if _, err := w.Write(reportHeader); err != nil {
		return err
	}
	var buf [80]byte
	for i := 0; i < MaxTasks; i++ {
		if m.RunCount[i] == 0 {
			continue
		}
		line := m.AppendLine(buf[:0], i)
		if _, err := w.Write(line); err != nil {
			return err
		}
		m.Reset(i)
	}
	return nil
}

func appendPadded(dst []byte, v uint32, width int) []byte {
	var digits [10]byte
	d := strconv.AppendUint(digits[:0], uint64(v), 10)
	for i := len(d); i < width; i++ {
		dst = append(dst, '0')
	}
	return append(dst, d...)
}
