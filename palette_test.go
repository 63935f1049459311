package flurry

import (
	"errors"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0080", Color{1, 0, 128.0 / 255, 1}},
		{"00f2ff", Color{0, 242.0 / 255, 1, 1}},
		{" #000000 ", Color{0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#fff", "#gggggg", "red", "#1234567"} {
		if _, err := ParseHexColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHexColor(%q) err = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestColorHex(t *testing.T) {
	for _, p := range Palettes {
		c, err := ParseHexColor(p.Color.Hex())
		if err != nil || c != p.Color {
			t.Errorf("%s: Hex() = %q does not parse back", p.Name, p.Color.Hex())
		}
	}
	if got := (Color{R: 2, G: -1, B: 0.5}).Hex(); got != "#ff0080" {
		t.Errorf("out of range channels Hex() = %q", got)
	}
}

func TestLookupPalette(t *testing.T) {
	p, ok := LookupPalette("Love")
	if !ok || p != PaletteLove {
		t.Errorf("LookupPalette(Love) = %v, %v", p, ok)
	}
	if PaletteLove.Color.Hex() != "#ff0080" {
		t.Errorf("love = %s", PaletteLove.Color.Hex())
	}
	if _, ok := LookupPalette("mud"); ok {
		t.Error("unknown palette found")
	}
	if DefaultColor.Hex() != "#00f2ff" {
		t.Errorf("DefaultColor = %s", DefaultColor.Hex())
	}
}
