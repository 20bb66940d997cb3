package lungviz

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette is the tissue colour for a health band.
type Palette struct {
	Fill       color.NRGBA
	TarOpacity float64
}

type paletteBand struct {
	min     float64
	palette Palette
}

var paletteBands = []paletteBand{
	{99, Palette{mustHex("#E5ACAC"), 0.1}},
	{95, Palette{mustHex("#D9A09F"), 0.2}},
	{90, Palette{mustHex("#CE9594"), 0.35}},
	{85, Palette{mustHex("#C38B8A"), 0.4}},
	{80, Palette{mustHex("#B87F7E"), 0.55}},
	{75, Palette{mustHex("#A37170"), 0.6}},
	{70, Palette{mustHex("#8E625F"), 0.65}},
	{60, Palette{mustHex("#79514E"), 0.7}},
	{50, Palette{mustHex("#64413E"), 0.75}},
	{40, Palette{mustHex("#503130"), 0.8}},
	{30, Palette{mustHex("#3C2625"), 0.85}},
	{20, Palette{mustHex("#2A1B1A"), 0.9}},
	{10, Palette{mustHex("#1C1110"), 0.95}},
}

var lowestPalette = Palette{mustHex("#110A0A"), 1.0}

// PaletteFor returns the tissue palette for a health percentage.
func PaletteFor(health float64) Palette {
	for _, b := range paletteBands {
		if health >= b.min {
			return b.palette
		}
	}
	return lowestPalette
}

// Fixed colours used by the scene layers.
var (
	colorOutline       = mustHex("#444444")
	colorBronchi       = mustHex("#BB8585")
	colorBlack         = mustHex("#000000")
	colorAlveolus      = mustHex("#FFB6B6")
	colorAlveolusEdge  = mustHex("#DDA0A0")
	colorMucus         = mustHex("#E2D2D2")
	colorMucusEdge     = mustHex("#D4C2C2")
	colorInflamed      = mustHex("#E88A8A")
	colorEmphysema     = mustHex("#FFDDDD")
	colorEmphysemaEdge = mustHex("#E8C0C0")
	colorFibrosis      = mustHex("#AA7777")
	colorFibrosisEdge  = mustHex("#996666")
	colorBulla         = mustHex("#F8E0E0")
	colorBullaEdge     = mustHex("#E0C0C0")
	colorHoneycomb     = mustHex("#885050")
	colorHoneycombEdge = mustHex("#5F3535")
	colorUpperBulla    = mustHex("#C0A0A0")
	colorUpperBullaRim = mustHex("#A08080")
)

var macrophageColors = []color.NRGBA{
	mustHex("#443333"),
	mustHex("#332222"),
	mustHex("#221111"),
	mustHex("#110000"),
}

var tarSpotColors = []color.NRGBA{
	mustHex("#100808"),
	mustHex("#080404"),
	mustHex("#000000"),
}

type bronchiolitisColors struct {
	fill, edge color.NRGBA
}

func bronchiolitisPalette(health float64) bronchiolitisColors {
	switch {
	case health >= 85:
		return bronchiolitisColors{mustHex("#CC7777"), mustHex("#BB6666")}
	case health >= 70:
		return bronchiolitisColors{mustHex("#BB6666"), mustHex("#AA5555")}
	default:
		return bronchiolitisColors{mustHex("#AA5555"), mustHex("#994444")}
	}
}

// ParseHex parses a #RRGGBB colour into an opaque NRGBA value.
func ParseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("colour %q must have six hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func mustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// HexString formats the RGB part of c as #RRGGBB.
func HexString(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
