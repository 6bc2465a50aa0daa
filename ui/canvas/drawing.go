// Package canvas provides the interactive route drawing surface: hit testing,
// the pointer interaction state machine, and software rendering over the
// background image.
package canvas

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"route-marker/pkg/colorutil"
	"route-marker/pkg/geometry"
)

// labelFace is the face used for label badges and the angle readout. Labels
// render at a fixed screen size; only their anchor tracks pan and zoom.
var labelFace = basicfont.Face7x13

const (
	labelPadding   = 4.0  // box padding around the label text, screen px
	labelBoxHeight = 18.0 // fixed label box height budget, screen px
	handleRadius   = 8.0  // rotation handle circle radius, screen px
	labelHitMargin = 2.0  // extra margin around the label box for hit testing
)

// labelTextWidth measures the rendered width of label text in screen pixels.
func labelTextWidth(text string) float64 {
	return float64(font.MeasureString(labelFace, text)) / 64
}

// labelBox returns the unrotated screen-space rectangle of a label badge
// centered on its anchor.
func labelBox(anchor geometry.Point2D, text string) geometry.Rect {
	w := labelTextWidth(text) + 2*labelPadding
	return geometry.Rect{
		X:      anchor.X - w/2,
		Y:      anchor.Y - labelBoxHeight/2,
		Width:  w,
		Height: labelBoxHeight,
	}
}

// handleCenter returns the screen position of the rotation handle: to the
// right of the label box at half text width + padding + half icon size.
func handleCenter(anchor geometry.Point2D, text string) geometry.Point2D {
	return geometry.Point2D{
		X: anchor.X + labelTextWidth(text)/2 + labelPadding + handleRadius,
		Y: anchor.Y,
	}
}

// blendPixel alpha-blends col over the pixel at (x, y), clipping to bounds.
func blendPixel(out *image.RGBA, x, y int, col color.RGBA) {
	bounds := out.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	if col.A == 255 {
		out.SetRGBA(x, y, col)
		return
	}
	out.SetRGBA(x, y, colorutil.Blend(out.RGBAAt(x, y), col))
}

// drawThickLine draws a line between two points using Bresenham's algorithm,
// stamping a thickness x thickness block at each step.
func drawThickLine(out *image.RGBA, x1, y1, x2, y2, thickness int, col color.RGBA) {
	if thickness < 1 {
		thickness = 1
	}

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				blendPixel(out, x1+s, y1+t, col)
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawDashedLine draws a 1px dashed line, alternating dashLen pixels on and
// dashLen pixels off along the Bresenham walk.
func drawDashedLine(out *image.RGBA, x1, y1, x2, y2, dashLen int, col color.RGBA) {
	if dashLen < 1 {
		dashLen = 4
	}

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	step := 0

	for {
		if (step/dashLen)%2 == 0 {
			blendPixel(out, x1, y1, col)
		}
		step++

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillCircle draws a filled circle.
func fillCircle(out *image.RGBA, cx, cy int, r float64, col color.RGBA) {
	ir := int(r + 1)
	r2 := r * r
	for y := cy - ir; y <= cy+ir; y++ {
		for x := cx - ir; x <= cx+ir; x++ {
			ddx := float64(x - cx)
			ddy := float64(y - cy)
			if ddx*ddx+ddy*ddy <= r2 {
				blendPixel(out, x, y, col)
			}
		}
	}
}

// drawCircle draws a circle outline two pixels thick.
func drawCircle(out *image.RGBA, cx, cy int, r float64, col color.RGBA) {
	ir := int(r + 1)
	outer := r * r
	inner := (r - 2) * (r - 2)
	for y := cy - ir; y <= cy+ir; y++ {
		for x := cx - ir; x <= cx+ir; x++ {
			ddx := float64(x - cx)
			ddy := float64(y - cy)
			d2 := ddx*ddx + ddy*ddy
			if d2 <= outer && d2 >= inner {
				blendPixel(out, x, y, col)
			}
		}
	}
}

// drawString renders text onto the output with its baseline at (x, y).
func drawString(out *image.RGBA, text string, x, y int, col color.RGBA) {
	d := font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(col),
		Face: labelFace,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// drawLabelBadge renders a route's label badge rotated around its anchor:
// a filled box with a border in the route's color and the label text inside.
// The badge is rasterized unrotated into a scratch image and then sampled
// back through the inverse rotation, so visual rotation matches the stored
// angle exactly.
func drawLabelBadge(out *image.RGBA, anchor geometry.Point2D, text string, rotationDeg float64, border color.RGBA) {
	if text == "" {
		return
	}

	boxW := int(labelTextWidth(text) + 2*labelPadding)
	boxH := int(labelBoxHeight)
	scratch := image.NewRGBA(image.Rect(0, 0, boxW, boxH))

	// Box background, border, and text.
	for y := 0; y < boxH; y++ {
		for x := 0; x < boxW; x++ {
			scratch.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 230})
		}
	}
	for x := 0; x < boxW; x++ {
		scratch.SetRGBA(x, 0, border)
		scratch.SetRGBA(x, boxH-1, border)
	}
	for y := 0; y < boxH; y++ {
		scratch.SetRGBA(0, y, border)
		scratch.SetRGBA(boxW-1, y, border)
	}
	metrics := labelFace.Metrics()
	baseline := (boxH+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2 + 1
	drawString(scratch, text, int(labelPadding), baseline, colorutil.Black)

	rotateBlit(out, scratch, anchor, rotationDeg)
}

// rotateBlit composites src onto out, rotated by deg around the src center
// placed at the given screen point. Nearest-neighbor sampling through the
// inverse rotation.
func rotateBlit(out *image.RGBA, src *image.RGBA, center geometry.Point2D, deg float64) {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)

	srcW := float64(src.Bounds().Dx())
	srcH := float64(src.Bounds().Dy())

	// Bounding box of the rotated badge on the destination.
	half := math.Sqrt(srcW*srcW+srcH*srcH) / 2
	minX := int(center.X - half - 1)
	maxX := int(center.X + half + 1)
	minY := int(center.Y - half - 1)
	maxY := int(center.Y + half + 1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			// Inverse-rotate into badge space.
			rx := float64(x) - center.X
			ry := float64(y) - center.Y
			sx := rx*cos + ry*sin + srcW/2
			sy := -rx*sin + ry*cos + srcH/2
			if sx < 0 || sy < 0 || sx >= srcW || sy >= srcH {
				continue
			}
			blendPixel(out, x, y, src.RGBAAt(int(sx), int(sy)))
		}
	}
}
