package colorutil

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"red", "#ff0000", Red, false},
		{"no hash prefix", "00ff00", Green, false},
		{"mixed case", "#AbCdEf", color.RGBA{R: 0xab, G: 0xcd, B: 0xef, A: 255}, false},
		{"leading space", "  #0000ff", Blue, false},
		{"too short", "#fff", Black, true},
		{"not hex", "#zzzzzz", Black, true},
		{"empty", "", Black, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatHexRoundTrip(t *testing.T) {
	for _, hex := range Palette {
		c, err := ParseHex(hex)
		if err != nil {
			t.Fatalf("palette entry %q does not parse: %v", hex, err)
		}
		if got := FormatHex(c); got != hex {
			t.Errorf("FormatHex(ParseHex(%q)) = %q", hex, got)
		}
	}
}

func TestWithOpacity(t *testing.T) {
	tests := []struct {
		name    string
		opacity float64
		wantA   uint8
	}{
		{"opaque", 1.0, 255},
		{"half", 0.5, 127},
		{"transparent", 0.0, 0},
		{"clamped low", -0.5, 0},
		{"clamped high", 2.0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithOpacity(Red, tt.opacity)
			if got.A != tt.wantA {
				t.Errorf("WithOpacity(Red, %v).A = %d, want %d", tt.opacity, got.A, tt.wantA)
			}
			if got.R != Red.R || got.G != Red.G || got.B != Red.B {
				t.Errorf("WithOpacity changed the color channels: %v", got)
			}
		})
	}
}

func TestBlend(t *testing.T) {
	// Opaque source replaces the destination entirely.
	if got := Blend(Black, Red); got != Red {
		t.Errorf("Blend(Black, Red) = %v, want %v", got, Red)
	}

	// Fully transparent source leaves the destination color.
	clear := color.RGBA{R: 255, G: 255, B: 255, A: 0}
	got := Blend(Blue, clear)
	if got.R != Blue.R || got.G != Blue.G || got.B != Blue.B || got.A != 255 {
		t.Errorf("Blend(Blue, transparent) = %v, want %v", got, Blue)
	}

	// Half white over black lands mid-gray.
	half := color.RGBA{R: 255, G: 255, B: 255, A: 128}
	got = Blend(Black, half)
	if got.R < 126 || got.R > 130 {
		t.Errorf("Blend(Black, half white).R = %d, want about 128", got.R)
	}
}
