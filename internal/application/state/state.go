package state

// RunState is the simulation loop state
type RunState int

const (
	Stopped RunState = iota
	Running
)

// String returns the string representation of the run state
func (s RunState) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Running:
		return "Running"
	default:
		return "Unknown"
	}
}

// Phase is the game phase owned by the progression store.
// Combat systems only run in PhaseCombat.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseCombat
	PhaseShop
	PhaseGameOver
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "Start"
	case PhaseCombat:
		return "Combat"
	case PhaseShop:
		return "Shop"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}
