package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"route-marker/internal/scene"
	"route-marker/internal/viewport"
	"route-marker/pkg/colorutil"
	"route-marker/pkg/geometry"
)

// selectionExtra is the thickness bonus a selected route is stroked with.
const selectionExtra = 2

var (
	canvasBackground = color.RGBA{R: 0x26, G: 0x26, B: 0x2b, A: 255}
	handleFill       = color.RGBA{R: 255, G: 255, B: 255, A: 220}
)

// Frame is everything one render pass reads. The transform is the same
// instance hit testing uses, so a frame can never disagree with input
// resolution about where things are.
type Frame struct {
	Background image.Image
	Scene      *scene.Scene
	View       *viewport.Transform
	Hover      Hover
	Mode       Mode
	Pointer    geometry.Point2D
	Loading    bool
}

// Render composes one frame into a w x h RGBA image: background raster,
// committed routes, the in-progress route, label badges, selection and hover
// affordances, and the live rotation guide. The pass is deterministic and
// holds no state between calls.
func Render(w, h int, f Frame) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	fillBackground(out, canvasBackground)

	if f.Loading {
		drawCenteredStatus(out, "Loading image...")
		return out
	}
	if f.Background == nil || !f.View.Ready() {
		drawCenteredStatus(out, "No image loaded")
		return out
	}

	drawBackgroundImage(out, f.Background, f.View)

	selected := f.Scene.Selected()
	for _, r := range f.Scene.Routes() {
		renderStroke(out, r, f.View, r == selected)
	}
	if r := f.Scene.InProgress(); r != nil {
		renderStroke(out, r, f.View, false)
	}

	for _, r := range f.Scene.Routes() {
		if r.Label == "" {
			continue
		}
		border, err := colorutil.ParseHex(r.Color)
		if err != nil {
			border = colorutil.Black
		}
		anchor := f.View.ImageToScreen(r.LabelAnchor())
		drawLabelBadge(out, anchor, r.Label, r.LabelRotation, border)
	}

	if _, rotating := f.Mode.(ModeRotate); rotating {
		renderRotationGuide(out, f)
	}
	if selected != nil && f.Hover.Route == selected && f.Hover.Kind != HitNone {
		renderRotationHandle(out, selected, f.View)
	}

	return out
}

func fillBackground(out *image.RGBA, col color.RGBA) {
	bounds := out.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetRGBA(x, y, col)
		}
	}
}

// drawBackgroundImage scales the background into its current screen rectangle
// using the shared transform.
func drawBackgroundImage(out *image.RGBA, bg image.Image, view *viewport.Transform) {
	rect := view.ImageRect()
	dst := image.Rect(
		int(math.Floor(rect.X)), int(math.Floor(rect.Y)),
		int(math.Ceil(rect.X+rect.Width)), int(math.Ceil(rect.Y+rect.Height)),
	)
	xdraw.ApproxBiLinear.Scale(out, dst, bg, bg.Bounds(), xdraw.Src, nil)
}

// renderStroke draws one route's polyline. Stroke width follows the zoom
// level so strokes thicken as the user zooms in; selection adds a constant
// bonus on top.
func renderStroke(out *image.RGBA, r *scene.Route, view *viewport.Transform, selected bool) {
	if len(r.Points) == 0 {
		return
	}

	col, err := colorutil.ParseHex(r.Color)
	if err != nil {
		col = colorutil.Black
	}
	col = colorutil.WithOpacity(col, r.Opacity)

	width := int(math.Round(r.Thickness.Pixels() * view.Zoom()))
	if width < 1 {
		width = 1
	}
	if selected {
		width += selectionExtra
	}

	prev := view.ImageToScreen(r.Points[0])
	if len(r.Points) == 1 {
		drawThickLine(out, int(prev.X), int(prev.Y), int(prev.X), int(prev.Y), width, col)
		return
	}
	for _, p := range r.Points[1:] {
		cur := view.ImageToScreen(p)
		drawThickLine(out, int(prev.X), int(prev.Y), int(cur.X), int(cur.Y), width, col)
		prev = cur
	}
}

// renderRotationHandle draws the handle circle beside the selected route's
// label badge.
func renderRotationHandle(out *image.RGBA, r *scene.Route, view *viewport.Transform) {
	if r.Label == "" {
		return
	}
	anchor := view.ImageToScreen(r.LabelAnchor())
	center := handleCenter(anchor, r.Label)
	border, err := colorutil.ParseHex(r.Color)
	if err != nil {
		border = colorutil.Black
	}
	fillCircle(out, int(center.X), int(center.Y), handleRadius, handleFill)
	drawCircle(out, int(center.X), int(center.Y), handleRadius, border)
}

// renderRotationGuide draws the dashed line from the rotation center to the
// pointer plus the current angle readout.
func renderRotationGuide(out *image.RGBA, f Frame) {
	mode, ok := f.Mode.(ModeRotate)
	if !ok {
		return
	}
	selected := f.Scene.Selected()
	if selected == nil {
		return
	}

	drawDashedLine(out,
		int(mode.Center.X), int(mode.Center.Y),
		int(f.Pointer.X), int(f.Pointer.Y),
		4, colorutil.Yellow)

	// basicfont only covers ASCII, so no degree sign here.
	readout := fmt.Sprintf("%.0f deg", selected.LabelRotation)
	drawString(out, readout, int(f.Pointer.X)+12, int(f.Pointer.Y)-8, colorutil.Yellow)
}

// drawCenteredStatus prints a status line in the middle of an empty canvas.
func drawCenteredStatus(out *image.RGBA, text string) {
	bounds := out.Bounds()
	w := int(labelTextWidth(text))
	x := bounds.Min.X + (bounds.Dx()-w)/2
	y := bounds.Min.Y + bounds.Dy()/2
	drawString(out, text, x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
}
