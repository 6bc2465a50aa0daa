package canvas

import (
	"testing"

	"route-marker/internal/scene"
	"route-marker/internal/viewport"
	"route-marker/pkg/geometry"
)

func newTestInteraction() (*Interaction, *scene.Scene, *viewport.Transform) {
	s := scene.New()
	v := unitView()
	it := NewInteraction(s, v, scene.DefaultStyle)
	return it, s, v
}

func TestDrawGesture(t *testing.T) {
	it, s, _ := newTestInteraction()

	it.PointerDown(pt(20, 20), false)
	if s.InProgress() == nil || len(s.InProgress().Points) != 1 {
		t.Fatalf("in-progress after down = %v", s.InProgress())
	}
	if _, ok := it.Mode().(ModeDraw); !ok {
		t.Fatalf("mode = %T, want ModeDraw", it.Mode())
	}

	it.PointerMove(pt(30, 30))
	it.PointerMove(pt(40, 40))
	if got := len(s.InProgress().Points); got != 3 {
		t.Fatalf("in-progress points = %d, want 3", got)
	}

	it.PointerUp()
	if s.InProgress() != nil {
		t.Error("in-progress route survived pointer up")
	}
	routes := s.Routes()
	if len(routes) != 1 || len(routes[0].Points) != 3 {
		t.Fatalf("committed routes = %v", routes)
	}
}

func TestClickWithoutMoveDiscards(t *testing.T) {
	it, s, _ := newTestInteraction()

	it.PointerDown(pt(20, 20), false)
	it.PointerUp()
	if len(s.Routes()) != 0 {
		t.Error("a plain click produced a route")
	}
}

func TestPointerLeaveCommitsLikePointerUp(t *testing.T) {
	it, s, _ := newTestInteraction()

	it.PointerDown(pt(20, 20), false)
	it.PointerMove(pt(60, 60))
	// The widget reports leave as PointerUp; whatever was drawn commits.
	it.PointerUp()
	if len(s.Routes()) != 1 {
		t.Fatalf("routes after leave = %d, want 1", len(s.Routes()))
	}
}

func TestDownOutsideImageStartsNothing(t *testing.T) {
	s := scene.New()
	// 300x200 canvas pillarboxes the 200x200 image; x < 50 is dead space.
	v := viewport.New()
	v.SetCanvasSize(geometry.NewSize(300, 200))
	v.SetImageSize(geometry.NewSize(200, 200))
	it := NewInteraction(s, v, scene.DefaultStyle)

	it.PointerDown(pt(10, 100), false)
	if s.InProgress() != nil {
		t.Error("press in the letterbox area started a route")
	}
}

func TestPanGesture(t *testing.T) {
	it, s, v := newTestInteraction()

	var reported geometry.Point2D
	it.OnPanChange(func(pan geometry.Point2D) { reported = pan })

	it.PointerDown(pt(100, 100), true)
	if _, ok := it.Mode().(ModePan); !ok {
		t.Fatalf("mode = %T, want ModePan", it.Mode())
	}

	it.PointerMove(pt(110, 95))
	it.PointerMove(pt(130, 90))
	want := geometry.NewPoint2D(30, -10)
	if v.Pan() != want {
		t.Errorf("Pan() = %v, want %v", v.Pan(), want)
	}
	if reported != want {
		t.Errorf("reported pan = %v, want %v", reported, want)
	}

	it.PointerUp()
	if _, ok := it.Mode().(ModeDraw); !ok {
		t.Errorf("mode after pan = %T, want ModeDraw", it.Mode())
	}
	if len(s.Routes()) != 0 || s.InProgress() != nil {
		t.Error("pan gesture touched the scene")
	}
}

func TestPanTriggerOverridesHits(t *testing.T) {
	it, s, _ := newTestInteraction()
	anchor := pt(100, 50)
	s.SetRoutes([]*scene.Route{
		makeRoute("a", "AB", &anchor, pt(10, 100), pt(190, 100)),
	})

	// Pan trigger over the label still pans.
	it.PointerDown(pt(100, 50), true)
	if _, ok := it.Mode().(ModePan); !ok {
		t.Errorf("mode = %T, want ModePan", it.Mode())
	}
	if s.Selected() != nil {
		t.Error("pan press changed the selection")
	}
}

func TestStrokeClickSelects(t *testing.T) {
	it, s, _ := newTestInteraction()
	r := makeRoute("a", "", nil, pt(10, 100), pt(190, 100))
	s.SetRoutes([]*scene.Route{r})

	it.PointerDown(pt(100, 100), false)
	if s.Selected() != r {
		t.Fatal("stroke click did not select the route")
	}
	if s.InProgress() != nil {
		t.Error("stroke click started a new route")
	}

	// Moving with the button down must not extend anything.
	it.PointerMove(pt(120, 120))
	it.PointerUp()
	if len(s.Routes()) != 1 {
		t.Errorf("routes = %d after selection gesture, want 1", len(s.Routes()))
	}
}

func TestLabelClickSelectsWithoutDragging(t *testing.T) {
	it, s, _ := newTestInteraction()
	anchor := pt(100, 50)
	r := makeRoute("a", "AB", &anchor, pt(10, 100), pt(190, 100))
	s.SetRoutes([]*scene.Route{r})

	it.PointerDown(pt(100, 50), false)
	if s.Selected() != r {
		t.Fatal("label click did not select the route")
	}
	if _, ok := it.Mode().(ModeDrag); ok {
		t.Fatal("selection switch started a drag on the same gesture")
	}

	// The same gesture's moves must not reposition the label.
	it.PointerMove(pt(150, 80))
	if r.LabelPosition == nil || *r.LabelPosition != anchor {
		t.Errorf("label moved during the selection gesture: %v", r.LabelPosition)
	}
	it.PointerUp()
}

func TestDragSelectedLabel(t *testing.T) {
	it, s, _ := newTestInteraction()
	anchor := pt(100, 50)
	r := makeRoute("a", "AB", &anchor, pt(10, 100), pt(190, 100))
	s.SetRoutes([]*scene.Route{r})
	s.Apply(scene.Command{Op: scene.OpSelect, ID: "a"})

	it.PointerDown(pt(100, 50), false)
	if _, ok := it.Mode().(ModeDrag); !ok {
		t.Fatalf("mode = %T, want ModeDrag", it.Mode())
	}

	it.PointerMove(pt(120, 80))
	if r.LabelPosition == nil || *r.LabelPosition != pt(120, 80) {
		t.Errorf("LabelPosition = %v, want (120,80)", r.LabelPosition)
	}

	// Outside the image the update is dropped and the last position stays.
	it.PointerMove(pt(-5, 80))
	if *r.LabelPosition != pt(120, 80) {
		t.Errorf("LabelPosition = %v after leaving the image", r.LabelPosition)
	}

	it.PointerUp()
	if _, ok := it.Mode().(ModeDraw); !ok {
		t.Errorf("mode after drag = %T, want ModeDraw", it.Mode())
	}
}

func TestRotateSnapsToFiveDegrees(t *testing.T) {
	it, s, _ := newTestInteraction()
	anchor := pt(100, 50)
	r := makeRoute("a", "AB", &anchor, pt(10, 100), pt(190, 100))
	s.SetRoutes([]*scene.Route{r})
	s.Apply(scene.Command{Op: scene.OpSelect, ID: "a"})

	// Handle center is at (119, 50).
	it.PointerDown(pt(119, 50), false)
	mode, ok := it.Mode().(ModeRotate)
	if !ok {
		t.Fatalf("mode = %T, want ModeRotate", it.Mode())
	}
	if mode.Center != pt(100, 50) {
		t.Errorf("rotation center = %v, want the label anchor", mode.Center)
	}

	tests := []struct {
		pointer geometry.Point2D
		want    float64
	}{
		{pt(110, 60), 45},  // exactly diagonal
		{pt(110, 51), 5},   // 5.7 degrees snaps down
		{pt(110, 49), 355}, // negative angles wrap into [0,360)
		{pt(100, 60), 90},
	}
	for _, tt := range tests {
		it.PointerMove(tt.pointer)
		if r.LabelRotation != tt.want {
			t.Errorf("rotation at %v = %v, want %v", tt.pointer, r.LabelRotation, tt.want)
		}
	}

	it.PointerUp()
	if _, ok := it.Mode().(ModeDraw); !ok {
		t.Errorf("mode after rotate = %T, want ModeDraw", it.Mode())
	}
	if r.LabelRotation != 90 {
		t.Errorf("rotation after release = %v, want 90", r.LabelRotation)
	}
}

func TestWheelZoomsAnyMode(t *testing.T) {
	it, _, v := newTestInteraction()

	var reported float64
	it.OnZoomChange(func(zoom float64) { reported = zoom })

	it.Wheel(pt(100, 100), 1)
	if got := v.Zoom(); got < 1.099 || got > 1.101 {
		t.Errorf("Zoom() = %v, want 1.1", got)
	}
	if reported != v.Zoom() {
		t.Errorf("reported zoom = %v, want %v", reported, v.Zoom())
	}

	// Mid-pan the wheel still works and the mode is untouched.
	it.PointerDown(pt(100, 100), true)
	it.Wheel(pt(100, 100), -1)
	if _, ok := it.Mode().(ModePan); !ok {
		t.Errorf("wheel changed the mode to %T", it.Mode())
	}
}

func TestSecondTouchSuppressesDrawing(t *testing.T) {
	it, s, _ := newTestInteraction()

	it.TouchDown(pt(20, 20))
	it.PointerMove(pt(40, 40))
	if s.InProgress() == nil {
		t.Fatal("first touch did not start drawing")
	}

	it.TouchDown(pt(120, 120))
	if s.InProgress() != nil {
		t.Error("second touch left a route in progress")
	}
	if _, ok := it.Mode().(ModePan); !ok {
		t.Errorf("mode with two touches = %T, want ModePan", it.Mode())
	}
	// The two-point route committed when the second finger landed.
	if len(s.Routes()) != 1 {
		t.Errorf("routes = %d, want 1", len(s.Routes()))
	}

	it.TouchUp()
	if _, ok := it.Mode().(ModePan); !ok {
		t.Error("lifting one of two fingers ended the gesture")
	}
	it.TouchUp()
	if _, ok := it.Mode().(ModeDraw); !ok {
		t.Errorf("mode after all touches up = %T, want ModeDraw", it.Mode())
	}
}

func TestHoverAffordance(t *testing.T) {
	it, s, _ := newTestInteraction()
	anchor := pt(100, 50)
	r := makeRoute("a", "AB", &anchor, pt(10, 100), pt(190, 100))
	s.SetRoutes([]*scene.Route{r})

	it.PointerMove(pt(100, 50))
	if h := it.HoverState(); h.Kind != HitLabel || h.Route != r {
		t.Errorf("hover over label = %+v", h)
	}

	s.Apply(scene.Command{Op: scene.OpSelect, ID: "a"})
	it.PointerMove(pt(119, 50))
	if h := it.HoverState(); h.Kind != HitHandle || h.Route != r {
		t.Errorf("hover over handle = %+v", h)
	}

	it.PointerMove(pt(20, 180))
	if h := it.HoverState(); h.Kind != HitNone {
		t.Errorf("hover over empty space = %+v", h)
	}
}
