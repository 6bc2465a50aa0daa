package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func pointsApproxEqual(a, b Point2D) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y)
}

func TestDistancePointToSegment(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point2D
		want    float64
	}{
		{
			name: "perpendicular to middle",
			p:    Point2D{X: 5, Y: 3},
			a:    Point2D{X: 0, Y: 0},
			b:    Point2D{X: 10, Y: 0},
			want: 3,
		},
		{
			name: "beyond start clamps to endpoint",
			p:    Point2D{X: -3, Y: 4},
			a:    Point2D{X: 0, Y: 0},
			b:    Point2D{X: 10, Y: 0},
			want: 5,
		},
		{
			name: "beyond end clamps to endpoint",
			p:    Point2D{X: 13, Y: 4},
			a:    Point2D{X: 0, Y: 0},
			b:    Point2D{X: 10, Y: 0},
			want: 5,
		},
		{
			name: "degenerate segment is a point",
			p:    Point2D{X: 3, Y: 4},
			a:    Point2D{X: 0, Y: 0},
			b:    Point2D{X: 0, Y: 0},
			want: 5,
		},
		{
			name: "point on segment",
			p:    Point2D{X: 5, Y: 5},
			a:    Point2D{X: 0, Y: 0},
			b:    Point2D{X: 10, Y: 10},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistancePointToSegment(tt.p, tt.a, tt.b)
			if !approxEqual(got, tt.want) {
				t.Errorf("DistancePointToSegment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAngleDegrees(t *testing.T) {
	center := Point2D{X: 10, Y: 10}
	tests := []struct {
		name string
		p    Point2D
		want float64
	}{
		{"right", Point2D{X: 20, Y: 10}, 0},
		{"below", Point2D{X: 10, Y: 20}, 90},
		{"left", Point2D{X: 0, Y: 10}, 180},
		{"above", Point2D{X: 10, Y: 0}, -90},
		{"diagonal", Point2D{X: 20, Y: 20}, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleDegrees(center, tt.p)
			if !approxEqual(got, tt.want) {
				t.Errorf("AngleDegrees() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-725, 355},
		{359.5, 359.5},
	}

	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); !approxEqual(got, tt.want) {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSnapDegrees(t *testing.T) {
	tests := []struct {
		name     string
		deg      float64
		step     float64
		want     float64
	}{
		{"rounds down", 47, 5, 45},
		{"rounds up", 48, 5, 50},
		{"wraps to zero", 358, 5, 0},
		{"negative wraps", -2, 5, 0},
		{"negative snaps then wraps", -93, 5, 265},
		{"zero step normalizes only", -90, 0, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapDegrees(tt.deg, tt.step); !approxEqual(got, tt.want) {
				t.Errorf("SnapDegrees(%v, %v) = %v, want %v", tt.deg, tt.step, got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 10)

	inside := []Point2D{{X: 10, Y: 10}, {X: 30, Y: 20}, {X: 15, Y: 15}}
	for _, p := range inside {
		if !r.Contains(p) {
			t.Errorf("expected %v inside %v", p, r)
		}
	}

	outside := []Point2D{{X: 9.9, Y: 15}, {X: 30.1, Y: 15}, {X: 15, Y: 21}}
	for _, p := range outside {
		if r.Contains(p) {
			t.Errorf("expected %v outside %v", p, r)
		}
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(10, 10, 20, 10)

	grown := r.Inset(-2)
	if grown.X != 8 || grown.Y != 8 || grown.Width != 24 || grown.Height != 14 {
		t.Errorf("Inset(-2) = %+v", grown)
	}

	shrunk := r.Inset(3)
	if shrunk.X != 13 || shrunk.Y != 13 || shrunk.Width != 14 || shrunk.Height != 4 {
		t.Errorf("Inset(3) = %+v", shrunk)
	}
}

func TestMidpoint(t *testing.T) {
	tests := []struct {
		name   string
		points []Point2D
		want   Point2D
	}{
		{"empty", nil, Point2D{}},
		{"single", []Point2D{{X: 1, Y: 2}}, Point2D{X: 1, Y: 2}},
		{"odd count", []Point2D{{X: 0}, {X: 1}, {X: 2}}, Point2D{X: 1}},
		{"even count takes later middle", []Point2D{{X: 0}, {X: 1}, {X: 2}, {X: 3}}, Point2D{X: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Midpoint(tt.points); got != tt.want {
				t.Errorf("Midpoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolylineLength(t *testing.T) {
	points := []Point2D{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 14}}
	if got := PolylineLength(points); !approxEqual(got, 15) {
		t.Errorf("PolylineLength() = %v, want 15", got)
	}
	if got := PolylineLength(points[:1]); got != 0 {
		t.Errorf("single point length = %v, want 0", got)
	}
}

func TestBoundingBox(t *testing.T) {
	points := []Point2D{{X: 3, Y: -1}, {X: -2, Y: 4}, {X: 7, Y: 2}}
	box := BoundingBox(points)
	want := Rect{X: -2, Y: -1, Width: 9, Height: 5}
	if box != want {
		t.Errorf("BoundingBox() = %+v, want %+v", box, want)
	}
}
