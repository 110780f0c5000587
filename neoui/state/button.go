package state

// Debounce accepts a level after two equal consecutive samples.
type Debounce struct {
	Stable bool
	last   bool
}

// Sample feeds one reading and reports whether the stable level changed.
func (d *Debounce) Sample(v bool) bool {
	changed := v == d.last && v != d.Stable
	if changed {
		d.Stable = v
	}
	d.last = v
	return changed
}

// Button holds the debounced state of the two front buttons.
type Button struct {
	PTT Debounce
	AI  Debounce

	ReadErrors uint32
}
