package dxficon

import "fmt"

type colorKind uint8

const (
	colorNone colorKind = iota
	colorInherit
	colorRGB
)

// Color is a resolved display color. The zero value disables
// painting; Inherited defers to the enclosing drawing context.
type Color struct {
	kind    colorKind
	R, G, B uint8
}

// Inherited is the "inherit from drawing context" color.
var Inherited = Color{kind: colorInherit}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{kind: colorRGB, R: r, G: g, B: b}
}

// IsNone reports whether the color disables painting.
func (c Color) IsNone() bool { return c.kind == colorNone }

// IsInherit reports whether the color defers to the context.
func (c Color) IsInherit() bool { return c.kind == colorInherit }

// String renders the color in CSS form.
func (c Color) String() string {
	switch c.kind {
	case colorInherit:
		return "currentColor"
	case colorRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	default:
		return "none"
	}
}

// neutralGray covers color indices with no palette entry.
var neutralGray = RGB(128, 128, 128)

// aciColors holds the named part of the AutoCAD color index.
// Index 7 is nominally white but flips to black, the usual
// convention for drawings shown on a light background.
var aciColors = map[int]Color{
	1: RGB(255, 0, 0),
	2: RGB(255, 255, 0),
	3: RGB(0, 255, 0),
	4: RGB(0, 255, 255),
	5: RGB(0, 0, 255),
	6: RGB(255, 0, 255),
	7: RGB(0, 0, 0),
	8: RGB(128, 128, 128),
	9: RGB(192, 192, 192),

	250: RGB(51, 51, 51),
	251: RGB(91, 91, 91),
	252: RGB(131, 131, 131),
	253: RGB(171, 171, 171),
	254: RGB(211, 211, 211),
	255: RGB(251, 251, 251),
}

// DefaultPalette maps an AutoCAD color index to a display color.
// Index 0 means "inherit"; unmapped indices fall back to a neutral
// gray.
func DefaultPalette(index int) Color {
	if index == 0 {
		return Inherited
	}
	if c, ok := aciColors[index]; ok {
		return c
	}
	return neutralGray
}
