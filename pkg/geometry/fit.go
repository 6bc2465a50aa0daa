package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// FitSegment fits a straight segment through the points by least squares and
// returns the projections of the first and last point onto the fitted line.
// The independent axis is chosen from the larger extent so near-vertical point
// runs stay well conditioned. Returns ok=false for fewer than 2 points or a
// degenerate (single-location) point set.
func FitSegment(points []Point2D) (a, b Point2D, ok bool) {
	n := len(points)
	if n < 2 {
		return Point2D{}, Point2D{}, false
	}

	box := BoundingBox(points)
	if box.Width == 0 && box.Height == 0 {
		return Point2D{}, Point2D{}, false
	}

	// Swap axes when the points run steeper than 45 degrees.
	swapped := box.Height > box.Width
	indep := func(p Point2D) float64 {
		if swapped {
			return p.Y
		}
		return p.X
	}
	dep := func(p Point2D) float64 {
		if swapped {
			return p.X
		}
		return p.Y
	}

	// Solve dep = m*indep + c in the least-squares sense.
	design := mat.NewDense(n, 2, nil)
	rhs := mat.NewVecDense(n, nil)
	for i, p := range points {
		design.Set(i, 0, indep(p))
		design.Set(i, 1, 1)
		rhs.SetVec(i, dep(p))
	}

	var qr mat.QR
	qr.Factorize(design)
	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, rhs); err != nil {
		return Point2D{}, Point2D{}, false
	}
	m, c := sol.AtVec(0), sol.AtVec(1)

	project := func(p Point2D) Point2D {
		// Line through (0, c) with direction (1, m) in (indep, dep) space.
		norm := math.Sqrt(1 + m*m)
		dx, dy := 1/norm, m/norm
		t := indep(p)*dx + (dep(p)-c)*dy
		pi, pd := t*dx, c+t*dy
		if swapped {
			return Point2D{X: pd, Y: pi}
		}
		return Point2D{X: pi, Y: pd}
	}

	return project(points[0]), project(points[n-1]), true
}
