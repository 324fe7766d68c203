package core

// State is the lifecycle of the harness.
// Failed is terminal; nothing leaves it without a restart.
type State int

const (
	StateUninitialized State = iota
	StateAcquiring
	StateBuilding
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAcquiring:
		return "acquiring"
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "invalid"
}

// CanTransition reports whether the lifecycle allows moving from s to next
func (s State) CanTransition(next State) bool {
	switch s {
	case StateUninitialized:
		return next == StateAcquiring
	case StateAcquiring:
		return next == StateBuilding || next == StateFailed
	case StateBuilding:
		return next == StateReady || next == StateFailed
	case StateReady:
		return next == StateReady
	}
	return false
}
