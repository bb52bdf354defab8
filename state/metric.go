// Package state defines the per-tick view of the managed player and the
// collaborator interfaces that supply it.
package state

// Metric is a resource gauge with a current and a maximum value.
type Metric struct {
	Current int
	Max     int
}

// Percent returns floor(current/max*100). A zero or negative maximum
// yields 0 so an unknown gauge reads as fully depleted rather than
// failing; threshold checks treat that as critical.
func (m Metric) Percent() int {
	if m.Max <= 0 {
		return 0
	}
	return m.Current * 100 / m.Max
}
