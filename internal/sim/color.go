package sim

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"
)

// Color is a palette entry used to tint a logo.
type Color uint8

const (
	YellowishBronze Color = iota
	Teal
	Aqua
	Lime
	Purple
	Gray
	White
	Red
	Maroon
	Green
	Blue

	colorCount
)

// Palette lists every color a sprite can take, in declaration order.
var Palette = [colorCount]Color{
	YellowishBronze, Teal, Aqua, Lime, Purple, Gray, White, Red, Maroon, Green, Blue,
}

var colorNames = [colorCount]string{
	YellowishBronze: "yellowish-bronze",
	Teal:            "teal",
	Aqua:            "aqua",
	Lime:            "lime",
	Purple:          "purple",
	Gray:            "gray",
	White:           "white",
	Red:             "red",
	Maroon:          "maroon",
	Green:           "green",
	Blue:            "blue",
}

var colorValues = [colorCount]color.RGBA{
	YellowishBronze: {R: 0x66, G: 0x6c, B: 0x2b, A: 0xff}, // no CSS name for this one
	Teal:            colornames.Teal,
	Aqua:            colornames.Aqua,
	Lime:            colornames.Lime,
	Purple:          colornames.Purple,
	Gray:            colornames.Gray,
	White:           colornames.White,
	Red:             colornames.Red,
	Maroon:          colornames.Maroon,
	Green:           colornames.Green,
	Blue:            colornames.Blue,
}

// Valid reports whether c is a palette entry.
func (c Color) Valid() bool { return c < colorCount }

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorNames[c]
}

// Value returns the opaque color value.
func (c Color) Value() color.RGBA {
	if !c.Valid() {
		return color.RGBA{A: 0xff}
	}
	return colorValues[c]
}

// Hex returns the color as a lowercase #rrggbb string.
func (c Color) Hex() string {
	v := c.Value()
	return fmt.Sprintf("#%02x%02x%02x", v.R, v.G, v.B)
}
