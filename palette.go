package flurry

import (
	"fmt"
	"strconv"
	"strings"
)

// Palette is a named particle color.
type Palette struct {
	Name  string
	Color Color
}

// Built-in palettes, in picker order.
var (
	PaletteTwilight  = Palette{"twilight", mustHex("#9b59b6")}
	PaletteRose      = Palette{"rose", mustHex("#ff69b4")}
	PaletteSunset    = Palette{"sunset", mustHex("#f39c12")}
	PaletteOcean     = Palette{"ocean", mustHex("#00d4ff")}
	PaletteStarlight = Palette{"starlight", mustHex("#ffd700")}
	PaletteLove      = Palette{"love", mustHex("#ff0080")}

	Palettes = []Palette{PaletteTwilight, PaletteRose, PaletteSunset, PaletteOcean, PaletteStarlight, PaletteLove}
)

// DefaultColor is the cyan the engine starts with.
var DefaultColor = mustHex("#00f2ff")

// LookupPalette returns the palette called name.
func LookupPalette(name string) (Palette, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range Palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// ParseHexColor parses "#rrggbb" or "rrggbb" into an opaque Color.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}, nil
}

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel8(c.R), channel8(c.G), channel8(c.B))
}

func channel8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func mustHex(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
