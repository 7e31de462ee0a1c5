package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange
	ColorGray
)
