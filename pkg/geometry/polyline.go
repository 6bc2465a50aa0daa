package geometry

// Midpoint returns the middle element of a point sequence. For an even number
// of points the later of the two middle elements is returned. An empty
// sequence yields the zero point.
func Midpoint(points []Point2D) Point2D {
	if len(points) == 0 {
		return Point2D{}
	}
	return points[len(points)/2]
}

// PolylineLength returns the total length of the polyline through the points.
func PolylineLength(points []Point2D) float64 {
	var length float64
	for i := 1; i < len(points); i++ {
		length += points[i-1].Distance(points[i])
	}
	return length
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
func BoundingBox(points []Point2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
