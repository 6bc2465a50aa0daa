package canvas

import (
	"route-marker/internal/scene"
	"route-marker/internal/viewport"
	"route-marker/pkg/geometry"
)

// rotationSnap is the rotation drag's angle granularity in degrees.
const rotationSnap = 5

// Mode is the interaction state machine's current state. Exactly one mode is
// active at a time; each variant carries only the data its gesture needs, so
// invalid combinations (dragging while rotating) cannot be represented.
type Mode interface{ isMode() }

// ModeDraw is the default mode: pointer-down over empty image space starts a
// route, moves extend it, pointer-up commits it.
type ModeDraw struct{}

// ModePan translates the viewport by raw pointer deltas.
type ModePan struct {
	Last geometry.Point2D // previous pointer sample, screen space
}

// ModeRotate spins the selected route's label around its anchor.
type ModeRotate struct {
	Center geometry.Point2D // label anchor, screen space
}

// ModeDrag repositions the selected route's label.
type ModeDrag struct{}

func (ModeDraw) isMode()   {}
func (ModePan) isMode()    {}
func (ModeRotate) isMode() {}
func (ModeDrag) isMode()   {}

// Hover is the render-only affordance state updated on every pointer move.
// It never influences mode transitions.
type Hover struct {
	Kind  HitKind // HitLabel, HitHandle, or HitNone
	Route *scene.Route
}

// Interaction drives the canvas state machine. Pointer, wheel, and touch
// events come in; scene commands and viewport mutations go out. All geometric
// decisions are delegated to the hit tester and the shared transform.
type Interaction struct {
	scene *scene.Scene
	view  *viewport.Transform
	hit   *HitTester

	mode    Mode
	hover   Hover
	pointer geometry.Point2D // last pointer position, screen space
	touches int

	// style supplies the panel's current drawing parameters for new routes.
	style func() scene.Style

	// onChange is invoked after any state change that needs a redraw.
	onChange func()
	// onZoomChange reports the zoom level after a wheel event.
	onZoomChange func(zoom float64)
	// onPanChange reports pan offset updates.
	onPanChange func(pan geometry.Point2D)
}

// NewInteraction wires a state machine over the scene and transform.
func NewInteraction(s *scene.Scene, view *viewport.Transform, style func() scene.Style) *Interaction {
	return &Interaction{
		scene: s,
		view:  view,
		hit:   NewHitTester(s, view),
		mode:  ModeDraw{},
		style: style,
	}
}

// Mode returns the current interaction mode.
func (it *Interaction) Mode() Mode { return it.mode }

// HoverState returns the current hover affordance.
func (it *Interaction) HoverState() Hover { return it.hover }

// Pointer returns the last seen pointer position in screen space.
func (it *Interaction) Pointer() geometry.Point2D { return it.pointer }

// OnChange registers the redraw trigger.
func (it *Interaction) OnChange(fn func()) { it.onChange = fn }

// OnZoomChange registers the zoom report callback.
func (it *Interaction) OnZoomChange(fn func(float64)) { it.onZoomChange = fn }

// OnPanChange registers the pan report callback.
func (it *Interaction) OnPanChange(fn func(geometry.Point2D)) { it.onPanChange = fn }

func (it *Interaction) changed() {
	if it.onChange != nil {
		it.onChange()
	}
}

// PointerDown handles a pointer press. panTrigger is true for middle-button
// or modifier-held presses, which take priority over every hit test.
func (it *Interaction) PointerDown(pt geometry.Point2D, panTrigger bool) {
	it.pointer = pt

	if panTrigger {
		it.mode = ModePan{Last: pt}
		it.changed()
		return
	}

	switch hit := it.hit.Resolve(pt); hit.Kind {
	case HitHandle:
		anchor := it.view.ImageToScreen(hit.Route.LabelAnchor())
		it.mode = ModeRotate{Center: anchor}

	case HitLabel:
		if hit.Route == it.scene.Selected() {
			it.mode = ModeDrag{}
		} else {
			// Selection switch; no drag starts on the same gesture.
			it.scene.Apply(scene.Command{Op: scene.OpSelect, ID: hit.Route.ID})
			it.mode = ModeDraw{}
		}

	case HitStroke:
		it.scene.Apply(scene.Command{Op: scene.OpSelect, ID: hit.Route.ID})
		it.mode = ModeDraw{}

	default:
		it.mode = ModeDraw{}
		if imgPt, ok := it.view.ScreenToImage(pt); ok {
			it.scene.Apply(scene.Command{Op: scene.OpStart, Point: imgPt, Style: it.style()})
		}
	}
	it.changed()
}

// PointerMove handles pointer motion, with or without a button held.
func (it *Interaction) PointerMove(pt geometry.Point2D) {
	it.pointer = pt

	switch mode := it.mode.(type) {
	case ModePan:
		delta := pt.Sub(mode.Last)
		it.view.PanBy(delta)
		it.mode = ModePan{Last: pt}
		if it.onPanChange != nil {
			it.onPanChange(it.view.Pan())
		}

	case ModeRotate:
		// Absolute angle each sample; never accumulated deltas.
		angle := geometry.AngleDegrees(mode.Center, pt)
		snapped := geometry.SnapDegrees(angle, rotationSnap)
		it.scene.Apply(scene.Command{Op: scene.OpRotateLabel, Angle: snapped})

	case ModeDrag:
		// Outside the image rectangle the update is dropped, not an error.
		if imgPt, ok := it.view.ScreenToImage(pt); ok {
			it.scene.Apply(scene.Command{Op: scene.OpMoveLabel, Point: imgPt})
		}

	case ModeDraw:
		if it.scene.InProgress() != nil {
			if imgPt, ok := it.view.ScreenToImage(pt); ok {
				it.scene.Apply(scene.Command{Op: scene.OpAppend, Point: imgPt})
			}
		}
	}

	it.updateHover(pt)
	it.changed()
}

// PointerUp terminates the current gesture. Pointer-leave is handled
// identically: leaving the canvas is the cancellation mechanism.
func (it *Interaction) PointerUp() {
	switch it.mode.(type) {
	case ModePan, ModeRotate, ModeDrag:
		// Rotation was committed live on every move; nothing left to apply.
		it.mode = ModeDraw{}

	case ModeDraw:
		it.scene.Apply(scene.Command{Op: scene.OpCommit})
	}
	it.changed()
}

// Wheel adjusts the zoom level toward the cursor. Wheel handling neither
// depends on nor changes the interaction mode.
func (it *Interaction) Wheel(pt geometry.Point2D, notches float64) {
	if it.view.ZoomAt(pt, notches) {
		if it.onZoomChange != nil {
			it.onZoomChange(it.view.Zoom())
		}
		it.changed()
	}
}

// TouchDown registers a touch contact. A second finger suppresses
// single-finger interpretation: any gesture in flight is cut short and the
// machine parks in pan. Actual pinch-zoom math is not implemented.
func (it *Interaction) TouchDown(pt geometry.Point2D) {
	it.touches++
	if it.touches >= 2 {
		if it.scene.InProgress() != nil {
			it.scene.Apply(scene.Command{Op: scene.OpCommit})
		}
		it.mode = ModePan{Last: pt}
		it.changed()
		return
	}
	it.PointerDown(pt, false)
}

// TouchUp releases a touch contact.
func (it *Interaction) TouchUp() {
	if it.touches > 0 {
		it.touches--
	}
	if it.touches == 0 {
		it.PointerUp()
	}
}

// updateHover refreshes the render affordance: which label or rotation handle
// the pointer is over.
func (it *Interaction) updateHover(pt geometry.Point2D) {
	selected := it.scene.Selected()
	if it.hit.HandleAt(pt, selected) {
		it.hover = Hover{Kind: HitHandle, Route: selected}
		return
	}
	if it.hit.LabelAt(pt, selected) {
		it.hover = Hover{Kind: HitLabel, Route: selected}
		return
	}
	for _, r := range it.scene.Routes() {
		if it.hit.LabelAt(pt, r) {
			it.hover = Hover{Kind: HitLabel, Route: r}
			return
		}
	}
	it.hover = Hover{Kind: HitNone}
}
