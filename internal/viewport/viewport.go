// Package viewport maps between screen space (canvas pixels) and image space
// (the coordinate system routes are stored in). The same Transform instance
// is shared by hit testing and rendering so the two can never disagree about
// where a point is.
package viewport

import (
	"route-marker/pkg/geometry"
)

const (
	// MinZoom and MaxZoom bound the user zoom multiplier.
	MinZoom = 0.5
	MaxZoom = 3.0
	// ZoomStep is the zoom change per wheel notch.
	ZoomStep = 0.1
)

// Transform holds the viewport state: the fit-to-contain base scale derived
// from the image and canvas sizes, the user zoom level, and the pan offset.
// The background image is centered in the canvas before panning applies.
type Transform struct {
	canvasSize geometry.Size
	imageSize  geometry.Size // natural pixels of the background image
	baseScale  float64
	zoom       float64
	pan        geometry.Point2D
}

// New creates a transform with no image and zoom 1.
func New() *Transform {
	return &Transform{zoom: 1}
}

// Ready reports whether both an image and a canvas size are known, i.e.
// whether coordinate conversion is meaningful.
func (t *Transform) Ready() bool {
	return t.baseScale > 0
}

// SetCanvasSize records the canvas pixel dimensions and refits the base
// scale. Zoom and pan are preserved across resizes.
func (t *Transform) SetCanvasSize(size geometry.Size) {
	t.canvasSize = size
	t.refit()
}

// SetImageSize records a new background image's natural dimensions. Replacing
// the image resets zoom and pan.
func (t *Transform) SetImageSize(size geometry.Size) {
	t.imageSize = size
	t.zoom = 1
	t.pan = geometry.Point2D{}
	t.refit()
}

// Reset returns zoom and pan to their initial values.
func (t *Transform) Reset() {
	t.zoom = 1
	t.pan = geometry.Point2D{}
}

// refit recomputes the fit-to-contain base scale.
func (t *Transform) refit() {
	if t.canvasSize.IsZero() || t.imageSize.IsZero() {
		t.baseScale = 0
		return
	}
	sx := t.canvasSize.Width / t.imageSize.Width
	sy := t.canvasSize.Height / t.imageSize.Height
	if sx < sy {
		t.baseScale = sx
	} else {
		t.baseScale = sy
	}
}

// BaseScale returns the fit-to-contain scale.
func (t *Transform) BaseScale() float64 { return t.baseScale }

// Zoom returns the current zoom level.
func (t *Transform) Zoom() float64 { return t.zoom }

// Pan returns the current pan offset in screen pixels.
func (t *Transform) Pan() geometry.Point2D { return t.pan }

// CanvasSize returns the canvas dimensions in screen pixels.
func (t *Transform) CanvasSize() geometry.Size { return t.canvasSize }

// ImageSize returns the background image's natural dimensions.
func (t *Transform) ImageSize() geometry.Size { return t.imageSize }

// EffectiveScale is the single multiplier converting image-space lengths to
// screen-space lengths.
func (t *Transform) EffectiveScale() float64 {
	return t.baseScale * t.zoom
}

// DisplaySize is the image size at the base scale, independent of zoom.
func (t *Transform) DisplaySize() geometry.Size {
	return geometry.Size{
		Width:  t.imageSize.Width * t.baseScale,
		Height: t.imageSize.Height * t.baseScale,
	}
}

// origin returns the screen position of the image's top-left corner: the
// image centered at the current zoom, shifted by the pan offset.
func (t *Transform) origin() geometry.Point2D {
	disp := t.DisplaySize()
	return geometry.Point2D{
		X: (t.canvasSize.Width-disp.Width*t.zoom)/2 + t.pan.X,
		Y: (t.canvasSize.Height-disp.Height*t.zoom)/2 + t.pan.Y,
	}
}

// ImageRect returns the screen-space rectangle the image is rendered into.
func (t *Transform) ImageRect() geometry.Rect {
	o := t.origin()
	disp := t.DisplaySize()
	return geometry.Rect{
		X:      o.X,
		Y:      o.Y,
		Width:  disp.Width * t.zoom,
		Height: disp.Height * t.zoom,
	}
}

// ImageToScreen converts an image-space point to screen space.
func (t *Transform) ImageToScreen(p geometry.Point2D) geometry.Point2D {
	o := t.origin()
	eff := t.EffectiveScale()
	return geometry.Point2D{X: o.X + p.X*eff, Y: o.Y + p.Y*eff}
}

// ScreenToImage converts a screen-space point to image space. When the point
// falls outside the rendered image rectangle there is no meaningful image
// coordinate; the zero point and false are returned, and callers treat the
// operation as a no-op.
func (t *Transform) ScreenToImage(p geometry.Point2D) (geometry.Point2D, bool) {
	if !t.Ready() {
		return geometry.Point2D{}, false
	}
	img := t.screenToImageRaw(p)
	if img.X < 0 || img.Y < 0 || img.X > t.imageSize.Width || img.Y > t.imageSize.Height {
		return geometry.Point2D{}, false
	}
	return img, true
}

// screenToImageRaw converts without bounds checking.
func (t *Transform) screenToImageRaw(p geometry.Point2D) geometry.Point2D {
	o := t.origin()
	eff := t.EffectiveScale()
	return geometry.Point2D{X: (p.X - o.X) / eff, Y: (p.Y - o.Y) / eff}
}

// PanBy translates the pan offset by a raw screen-space delta. Pan is
// intentionally unbounded.
func (t *Transform) PanBy(delta geometry.Point2D) {
	t.pan = t.pan.Add(delta)
}

// SetZoom clamps and applies a zoom level, returning the value in effect.
func (t *Transform) SetZoom(zoom float64) float64 {
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	t.zoom = zoom
	return t.zoom
}

// ZoomAt changes the zoom by the given number of wheel notches while keeping
// the image point under cursor visually anchored. Returns true if the zoom
// level changed.
func (t *Transform) ZoomAt(cursor geometry.Point2D, notches float64) bool {
	if !t.Ready() {
		return false
	}
	target := t.zoom + notches*ZoomStep
	if target < MinZoom {
		target = MinZoom
	}
	if target > MaxZoom {
		target = MaxZoom
	}
	if target == t.zoom {
		return false
	}

	anchored := t.screenToImageRaw(cursor)
	t.zoom = target

	disp := t.DisplaySize()
	eff := t.EffectiveScale()
	t.pan = geometry.Point2D{
		X: cursor.X - (t.canvasSize.Width-disp.Width*t.zoom)/2 - anchored.X*eff,
		Y: cursor.Y - (t.canvasSize.Height-disp.Height*t.zoom)/2 - anchored.Y*eff,
	}
	return true
}
