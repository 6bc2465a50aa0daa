package canvas

import (
	"route-marker/internal/scene"
	"route-marker/internal/viewport"
	"route-marker/pkg/geometry"
)

// HitKind identifies what a pointer position resolved to.
type HitKind int

const (
	HitNone HitKind = iota
	HitLabel
	HitHandle
	HitStroke
)

// Hit is the result of resolving a pointer position against the scene.
type Hit struct {
	Kind  HitKind
	Route *scene.Route
}

// HitTester resolves screen-space pointer positions against the scene through
// the shared viewport transform. It caches nothing across viewport changes:
// every query reads the transform as it currently stands, which keeps hit
// testing and rendering agreeing by construction.
type HitTester struct {
	scene *scene.Scene
	view  *viewport.Transform
}

// NewHitTester creates a hit tester over the given scene and transform.
func NewHitTester(s *scene.Scene, view *viewport.Transform) *HitTester {
	return &HitTester{scene: s, view: view}
}

// LabelAt reports whether the screen point is inside the route's label badge.
// A route without label text never hits. The test rectangle is NOT rotated
// even though the badge renders rotated; this is a deliberate approximation
// kept from the original behavior.
func (h *HitTester) LabelAt(pt geometry.Point2D, r *scene.Route) bool {
	if r == nil || r.Label == "" {
		return false
	}
	anchor := h.view.ImageToScreen(r.LabelAnchor())
	return labelBox(anchor, r.Label).Inset(-labelHitMargin).Contains(pt)
}

// HandleAt reports whether the screen point is inside the route's rotation
// handle, the circle to the right of the label badge.
func (h *HitTester) HandleAt(pt geometry.Point2D, r *scene.Route) bool {
	if r == nil || r.Label == "" {
		return false
	}
	anchor := h.view.ImageToScreen(r.LabelAnchor())
	return pt.Distance(handleCenter(anchor, r.Label)) <= handleRadius
}

// StrokeAt returns the first committed route whose stroke is under the screen
// point, or nil. Routes are scanned in insertion order, so on overlap the
// first-drawn route wins. The image-space hit threshold is the stroke's pixel
// width times two divided by the effective scale: picking precision follows
// the stroke's visual size, not its raw image-space extent.
func (h *HitTester) StrokeAt(pt geometry.Point2D) *scene.Route {
	imgPt, ok := h.view.ScreenToImage(pt)
	if !ok {
		return nil
	}
	eff := h.view.EffectiveScale()
	if eff <= 0 {
		return nil
	}

	for _, r := range h.scene.Routes() {
		if len(r.Points) < 2 {
			// A 1-point route is legal but never hit-testable as a stroke.
			continue
		}
		threshold := r.Thickness.Pixels() * 2 / eff
		for i := 1; i < len(r.Points); i++ {
			if geometry.DistancePointToSegment(imgPt, r.Points[i-1], r.Points[i]) < threshold {
				return r
			}
		}
	}
	return nil
}

// Resolve applies the pointer-down priority order below the pan trigger:
// the selected route's rotation handle, the selected route's label, any
// route's label, then any route's stroke. First match wins.
func (h *HitTester) Resolve(pt geometry.Point2D) Hit {
	selected := h.scene.Selected()
	if h.HandleAt(pt, selected) {
		return Hit{Kind: HitHandle, Route: selected}
	}
	if h.LabelAt(pt, selected) {
		return Hit{Kind: HitLabel, Route: selected}
	}
	for _, r := range h.scene.Routes() {
		if r != selected && h.LabelAt(pt, r) {
			return Hit{Kind: HitLabel, Route: r}
		}
	}
	if r := h.StrokeAt(pt); r != nil {
		return Hit{Kind: HitStroke, Route: r}
	}
	return Hit{Kind: HitNone}
}
