package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"route-marker/internal/app"
	"route-marker/internal/background"
	"route-marker/internal/scene"
	"route-marker/internal/viewport"
	"route-marker/pkg/geometry"
)

// RouteCanvas is the interactive drawing surface widget. It owns the viewport
// transform and the interaction state machine, renders through a software
// raster, and translates Fyne pointer/touch/wheel events into engine calls.
type RouteCanvas struct {
	widget.BaseWidget

	state *app.State
	view  *viewport.Transform
	inter *Interaction

	raster  *fynecanvas.Raster
	bg      image.Image
	loading bool

	// scale maps event coordinates (points) to raster pixels; updated on
	// every draw so hit testing stays aligned with rendering on hiDPI.
	scale float64

	onCursorMove func(pt geometry.Point2D, inside bool)
}

var (
	_ fyne.Widget        = (*RouteCanvas)(nil)
	_ fyne.Draggable     = (*RouteCanvas)(nil)
	_ fyne.Scrollable    = (*RouteCanvas)(nil)
	_ desktop.Mouseable  = (*RouteCanvas)(nil)
	_ desktop.Hoverable  = (*RouteCanvas)(nil)
	_ desktop.Cursorable = (*RouteCanvas)(nil)
	_ mobile.Touchable   = (*RouteCanvas)(nil)
)

// NewRouteCanvas creates the drawing surface over the application state.
func NewRouteCanvas(state *app.State) *RouteCanvas {
	rc := &RouteCanvas{
		state: state,
		view:  viewport.New(),
		scale: 1,
	}
	rc.inter = NewInteraction(state.Scene, rc.view, func() scene.Style {
		return state.Style
	})
	rc.inter.OnChange(func() { rc.Refresh() })

	rc.raster = fynecanvas.NewRaster(rc.draw)
	rc.raster.ScaleMode = fynecanvas.ImageScalePixels
	rc.raster.SetMinSize(fyne.NewSize(400, 300))

	// Panel-driven scene changes need redraws too.
	for _, ev := range []scene.EventType{
		scene.EventSelectionChanged, scene.EventRouteUpdated, scene.EventRouteDeleted,
		scene.EventCleared, scene.EventUndone, scene.EventRouteCommitted,
	} {
		state.Scene.On(ev, func(interface{}) { rc.Refresh() })
	}

	rc.ExtendBaseWidget(rc)
	return rc
}

// Interaction exposes the state machine for callback registration.
func (rc *RouteCanvas) Interaction() *Interaction {
	return rc.inter
}

// View exposes the shared viewport transform.
func (rc *RouteCanvas) View() *viewport.Transform {
	return rc.view
}

// OnCursorMove registers a callback reporting the cursor's image-space
// position (for the status bar).
func (rc *RouteCanvas) OnCursorMove(fn func(pt geometry.Point2D, inside bool)) {
	rc.onCursorMove = fn
}

// SetBackground installs a newly decoded background image. Replacing the
// image resets zoom and pan and refits the base scale.
func (rc *RouteCanvas) SetBackground(img *background.Image) {
	if img == nil {
		rc.bg = nil
		rc.view.SetImageSize(geometry.Size{})
	} else {
		rc.bg = img.Image
		rc.view.SetImageSize(img.NaturalSize())
	}
	rc.Refresh()
}

// SetLoading toggles the image-loading state. While loading, input handling
// and scene rendering are suppressed.
func (rc *RouteCanvas) SetLoading(loading bool) {
	rc.loading = loading
	rc.Refresh()
}

// ZoomIn zooms one notch toward the canvas center.
func (rc *RouteCanvas) ZoomIn() { rc.zoomCenter(1) }

// ZoomOut zooms one notch away from the canvas center.
func (rc *RouteCanvas) ZoomOut() { rc.zoomCenter(-1) }

func (rc *RouteCanvas) zoomCenter(notches float64) {
	size := rc.view.CanvasSize()
	center := geometry.Point2D{X: size.Width / 2, Y: size.Height / 2}
	rc.inter.Wheel(center, notches)
}

// ResetView restores zoom 1 and centered pan.
func (rc *RouteCanvas) ResetView() {
	rc.view.Reset()
	rc.Refresh()
}

// Refresh redraws the raster.
func (rc *RouteCanvas) Refresh() {
	rc.raster.Refresh()
	rc.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (rc *RouteCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(rc.raster)
}

// draw is the raster drawing function.
func (rc *RouteCanvas) draw(w, h int) image.Image {
	if size := rc.Size(); size.Width > 0 {
		rc.scale = float64(w) / float64(size.Width)
	}
	rc.view.SetCanvasSize(geometry.NewSize(float64(w), float64(h)))

	return Render(w, h, Frame{
		Background: rc.bg,
		Scene:      rc.state.Scene,
		View:       rc.view,
		Hover:      rc.inter.HoverState(),
		Mode:       rc.inter.Mode(),
		Pointer:    rc.inter.Pointer(),
		Loading:    rc.loading,
	})
}

// inputBlocked reports whether pointer input should be ignored.
func (rc *RouteCanvas) inputBlocked() bool {
	return rc.loading || rc.bg == nil
}

// toEngine converts an event position to raster pixel coordinates.
func (rc *RouteCanvas) toEngine(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{X: float64(pos.X) * rc.scale, Y: float64(pos.Y) * rc.scale}
}

// MouseDown implements desktop.Mouseable. Middle button or a held Ctrl
// modifier triggers panning regardless of what is under the pointer.
func (rc *RouteCanvas) MouseDown(ev *desktop.MouseEvent) {
	if rc.inputBlocked() {
		return
	}
	panTrigger := ev.Button == desktop.MouseButtonTertiary ||
		ev.Modifier&fyne.KeyModifierControl != 0
	rc.inter.PointerDown(rc.toEngine(ev.Position), panTrigger)
}

// MouseUp implements desktop.Mouseable.
func (rc *RouteCanvas) MouseUp(_ *desktop.MouseEvent) {
	if rc.inputBlocked() {
		return
	}
	rc.inter.PointerUp()
}

// Dragged implements fyne.Draggable; it feeds button-held pointer motion to
// the state machine.
func (rc *RouteCanvas) Dragged(ev *fyne.DragEvent) {
	if rc.inputBlocked() {
		return
	}
	rc.inter.PointerMove(rc.toEngine(ev.Position))
}

// DragEnd implements fyne.Draggable. Gesture termination is handled by
// MouseUp / MouseOut.
func (rc *RouteCanvas) DragEnd() {}

// MouseIn implements desktop.Hoverable.
func (rc *RouteCanvas) MouseIn(_ *desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable; it drives hover affordance and the
// status bar readout.
func (rc *RouteCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if rc.inputBlocked() {
		return
	}
	pt := rc.toEngine(ev.Position)
	rc.inter.PointerMove(pt)
	if rc.onCursorMove != nil {
		imgPt, ok := rc.view.ScreenToImage(pt)
		rc.onCursorMove(imgPt, ok)
	}
}

// MouseOut implements desktop.Hoverable. Leaving the canvas terminates any
// in-progress gesture; there is no timeout-based cancellation.
func (rc *RouteCanvas) MouseOut() {
	if rc.inputBlocked() {
		return
	}
	rc.inter.PointerUp()
	if rc.onCursorMove != nil {
		rc.onCursorMove(geometry.Point2D{}, false)
	}
}

// Scrolled implements fyne.Scrollable: one notch per event, zooming toward
// the cursor.
func (rc *RouteCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if rc.inputBlocked() {
		return
	}
	notches := 1.0
	if ev.Scrolled.DY < 0 {
		notches = -1.0
	}
	rc.inter.Wheel(rc.toEngine(ev.Position), notches)
}

// Cursor implements desktop.Cursorable, reflecting the hover affordance.
func (rc *RouteCanvas) Cursor() desktop.Cursor {
	switch rc.inter.HoverState().Kind {
	case HitHandle:
		return desktop.HResizeCursor
	case HitLabel:
		return desktop.PointerCursor
	default:
		return desktop.CrosshairCursor
	}
}

// TouchDown implements mobile.Touchable.
func (rc *RouteCanvas) TouchDown(ev *mobile.TouchEvent) {
	if rc.inputBlocked() {
		return
	}
	rc.inter.TouchDown(rc.toEngine(ev.Position))
}

// TouchUp implements mobile.Touchable.
func (rc *RouteCanvas) TouchUp(_ *mobile.TouchEvent) {
	if rc.inputBlocked() {
		return
	}
	rc.inter.TouchUp()
}

// TouchCancel implements mobile.Touchable.
func (rc *RouteCanvas) TouchCancel(_ *mobile.TouchEvent) {
	if rc.inputBlocked() {
		return
	}
	rc.inter.TouchUp()
}
