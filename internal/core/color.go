package core

// Color is a foreground/background pairing for a screen cell.
// Values map to ANSI 256-color codes in the platform layer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorBrightWhite
	ColorYellow
	ColorBrightYellow
	ColorOrange
	ColorRed
	ColorBrightRed
	ColorMagenta
	ColorGreen
	ColorBrightGreen
	ColorCyan
	ColorBlue
)
