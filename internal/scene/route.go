// Package scene holds the in-memory route collection and the command and
// event surfaces through which the rest of the application mutates and
// observes it.
package scene

import (
	"github.com/google/uuid"

	"route-marker/pkg/geometry"
)

// Thickness enumerates the stroke widths a route can be drawn with.
type Thickness int

const (
	Thin Thickness = iota
	Medium
	Thick
)

// Pixels returns the stroke width in screen pixels at zoom 1.
func (t Thickness) Pixels() float64 {
	switch t {
	case Medium:
		return 3
	case Thick:
		return 5
	default:
		return 1
	}
}

func (t Thickness) String() string {
	switch t {
	case Medium:
		return "Medium"
	case Thick:
		return "Thick"
	default:
		return "Thin"
	}
}

// ThicknessFromString parses a Thickness name, defaulting to Thin.
func ThicknessFromString(s string) Thickness {
	switch s {
	case "Medium":
		return Medium
	case "Thick":
		return Thick
	default:
		return Thin
	}
}

// labelOffsetY is the default label anchor offset above the route midpoint,
// in image units.
const labelOffsetY = -15

// Route is a single drawn polyline with its display style and label.
// Points are stored in image space and are append-only while the route is
// being drawn.
type Route struct {
	ID            string             `json:"id"`
	Points        []geometry.Point2D `json:"points"`
	Color         string             `json:"color"`
	Opacity       float64            `json:"opacity"`
	Thickness     Thickness          `json:"thickness"`
	Label         string             `json:"label,omitempty"`
	LabelRotation float64            `json:"label_rotation,omitempty"`

	// LabelPosition overrides the midpoint anchor rule when set. It is stored
	// in image space so the label tracks pan and zoom like the route itself.
	LabelPosition *geometry.Point2D `json:"label_position,omitempty"`
}

// Style carries the editable style fields copied between the side panel and a
// route. Selection copies these out of the route; they are only written back
// on an explicit update or at the end of a rotation drag.
type Style struct {
	Color         string
	Opacity       float64
	Thickness     Thickness
	Label         string
	LabelRotation float64
}

// DefaultStyle returns the style a fresh drawing session starts with.
func DefaultStyle() Style {
	return Style{
		Color:     "#ff0000",
		Opacity:   1.0,
		Thickness: Medium,
	}
}

// newRoute creates an empty route with a fresh ID and the given style.
func newRoute(style Style) *Route {
	return &Route{
		ID:            uuid.NewString(),
		Color:         style.Color,
		Opacity:       style.Opacity,
		Thickness:     style.Thickness,
		Label:         style.Label,
		LabelRotation: style.LabelRotation,
	}
}

// StyleOf copies a route's editable fields into a Style.
func StyleOf(r *Route) Style {
	return Style{
		Color:         r.Color,
		Opacity:       r.Opacity,
		Thickness:     r.Thickness,
		Label:         r.Label,
		LabelRotation: r.LabelRotation,
	}
}

// applyStyle writes the style fields back into the route.
func (r *Route) applyStyle(s Style) {
	r.Color = s.Color
	r.Opacity = s.Opacity
	r.Thickness = s.Thickness
	r.Label = s.Label
	r.LabelRotation = s.LabelRotation
}

// LabelAnchor returns the label anchor in image space: the stored position if
// one was set, otherwise the middle point of the sequence offset upward.
func (r *Route) LabelAnchor() geometry.Point2D {
	if r.LabelPosition != nil {
		return *r.LabelPosition
	}
	mid := geometry.Midpoint(r.Points)
	return geometry.Point2D{X: mid.X, Y: mid.Y + labelOffsetY}
}

// defaultLabelPosition computes the anchor assigned when a route is committed.
func (r *Route) defaultLabelPosition() geometry.Point2D {
	mid := geometry.Midpoint(r.Points)
	return geometry.Point2D{X: mid.X, Y: mid.Y + labelOffsetY}
}

// Length returns the route's total length in image units.
func (r *Route) Length() float64 {
	return geometry.PolylineLength(r.Points)
}
