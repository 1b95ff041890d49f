package alarm

import "time"

// SecondGate admits at most one check per distinct wall-clock second.
type SecondGate struct {
	last   int64
	primed bool
}

// Admit reports whether now falls in a second that has not been admitted yet.
func (gate *SecondGate) Admit(now time.Time) bool {
	second := now.Unix()
	if gate.primed && second == gate.last {
		return false
	}
	gate.last = second
	gate.primed = true
	return true
}
