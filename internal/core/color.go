package core

// Color represents a foreground color for a screen cell.
// The TUI maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// HeatRamp orders colors from cold to hot for intensity maps.
var HeatRamp = []Color{
	ColorGray,
	ColorBlue,
	ColorCyan,
	ColorGreen,
	ColorYellow,
	ColorOrange,
	ColorRed,
	ColorBrightMagenta,
}

// Heat picks a ramp color for t in [0, 1]. Values outside are clamped.
func Heat(t float64) Color {
	t = ClampF(t, 0, 1)
	i := int(t * float64(len(HeatRamp)-1))
	return HeatRamp[i]
}
