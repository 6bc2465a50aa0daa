package geometry

import "testing"

func TestFitSegmentExactLine(t *testing.T) {
	// Points already on y = 2x + 1 must project onto themselves.
	points := []Point2D{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 5}}

	a, b, ok := FitSegment(points)
	if !ok {
		t.Fatal("FitSegment() ok = false")
	}
	if !pointsApproxEqual(a, points[0]) {
		t.Errorf("a = %v, want %v", a, points[0])
	}
	if !pointsApproxEqual(b, points[2]) {
		t.Errorf("b = %v, want %v", b, points[2])
	}
}

func TestFitSegmentVerticalRun(t *testing.T) {
	points := []Point2D{{X: 5, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 2}}

	a, b, ok := FitSegment(points)
	if !ok {
		t.Fatal("FitSegment() ok = false")
	}
	if !pointsApproxEqual(a, points[0]) || !pointsApproxEqual(b, points[2]) {
		t.Errorf("FitSegment() = %v, %v, want %v, %v", a, b, points[0], points[2])
	}
}

func TestFitSegmentNoisyHorizontal(t *testing.T) {
	// Symmetric noise around y = 10 averages out.
	points := []Point2D{
		{X: 0, Y: 10.5}, {X: 1, Y: 9.5}, {X: 2, Y: 10.5}, {X: 3, Y: 9.5},
	}

	a, b, ok := FitSegment(points)
	if !ok {
		t.Fatal("FitSegment() ok = false")
	}
	if !approxEqual(a.Y, 10) || !approxEqual(b.Y, 10) {
		t.Errorf("fitted endpoints = %v, %v, want y = 10", a, b)
	}
	if !approxEqual(a.X, 0) || !approxEqual(b.X, 3) {
		t.Errorf("fitted endpoints = %v, %v, want x = 0 and 3", a, b)
	}
}

func TestFitSegmentDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []Point2D
	}{
		{"empty", nil},
		{"single point", []Point2D{{X: 1, Y: 1}}},
		{"coincident points", []Point2D{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := FitSegment(tt.points); ok {
				t.Error("FitSegment() ok = true, want false")
			}
		})
	}
}
