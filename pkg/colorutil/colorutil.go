// Package colorutil provides shared color utilities for the route marker application.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Common drawing colors used throughout the application.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// Palette is the set of swatch colors offered by the style panel.
var Palette = []string{
	"#ff0000", "#ff8000", "#ffff00", "#00c000",
	"#00c0c0", "#0000ff", "#8000ff", "#ff00ff",
	"#000000", "#808080", "#ffffff", "#804000",
}

// ParseHex parses a "#rrggbb" (or "rrggbb") color string. Invalid input
// returns black and an error.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Black, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b); err != nil {
		return Black, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// FormatHex formats a color as "#rrggbb", dropping alpha.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WithOpacity returns the color with its alpha channel scaled by opacity,
// clamped to [0, 1].
func WithOpacity(c color.RGBA, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(opacity * 255)
	return c
}

// Blend alpha-blends src over dst using the src alpha channel.
func Blend(dst, src color.RGBA) color.RGBA {
	alpha := float64(src.A) / 255
	inv := 1 - alpha
	return color.RGBA{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
		A: 255,
	}
}
