package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// State is the session state machine. The ordinals are stable and may be
// serialized across process boundaries.
type State int

const (
	StateMenu     State = 0
	StatePlaying  State = 1
	StateGameOver State = 2
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameState summarizes a session for the platform.
// Returned by Game.State() after every step.
type GameState struct {
	State        State
	SurvivalTime float64 // Seconds survived in the current session
	Difficulty   float64
	BestTime     float64
	NewRecord    bool // Set once the session ended with a new best time
	Paused       bool
}

// GameOver reports whether the session has ended.
func (g GameState) GameOver() bool {
	return g.State == StateGameOver
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
