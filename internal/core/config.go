package core

// RuntimeConfig is handed to a show when it starts or restarts.
// The platform fills it from the terminal size and CLI flags.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second the platform steps at
	Seed     int64 // RNG seed, 0 means pick from the clock
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 30 fps.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// ShowState is the part of a show the platform needs for its chrome.
type ShowState struct {
	Score    int
	Lives    int
	GameOver bool
	Paused   bool
}

// StepResult is returned after every frame.
type StepResult struct {
	State  ShowState
	Ticked bool // the crowd simulation advanced during this frame
}
