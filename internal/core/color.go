package core

// Color is a foreground color for a screen cell.
// The platform layer maps it to ANSI 256-color codes.
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
	ColorOrange
	ColorGray
	ColorBrown
)

// LineColor returns the signage color of a subway line bullet.
func LineColor(line string) Color {
	switch line {
	case "1", "2", "3":
		return ColorRed
	case "4", "5", "6":
		return ColorGreen
	case "A", "C", "E":
		return ColorBlue
	case "B", "D", "F", "M":
		return ColorOrange
	case "N", "Q", "R", "W":
		return ColorYellow
	case "L", "S":
		return ColorGray
	case "G":
		return ColorGreen
	case "J", "Z":
		return ColorBrown
	case "7":
		return ColorMagenta
	default:
		return ColorDefault
	}
}
