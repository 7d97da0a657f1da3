package audience

// Seat is the grid cell a crowd member stands on.
type Seat struct {
	X, Y int
}

// Pose is a crowd member's animation state.
type Pose struct {
	Level    float64 // perceived hype, 0..1 on a square-root curve
	Target   float64 // bounce height the member is heading for
	Height   float64 // current bounce height
	Velocity float64 // spring velocity
}

// Mosh marks a member caught in a pit until sim time Until.
type Mosh struct {
	Until float64
}
