package scene

import (
	"route-marker/pkg/geometry"
)

// Op identifies a scene mutation command.
type Op int

const (
	// OpStart begins a new in-progress route at Point using Style.
	OpStart Op = iota
	// OpAppend appends Point to the in-progress route.
	OpAppend
	// OpCommit finalizes the in-progress route. Routes with fewer than two
	// points are silently discarded.
	OpCommit
	// OpSelect selects the committed route with ID.
	OpSelect
	// OpDeselect clears the selection.
	OpDeselect
	// OpUpdateStyle writes Style back into the selected route.
	OpUpdateStyle
	// OpDelete removes the selected route.
	OpDelete
	// OpClear removes every committed route.
	OpClear
	// OpUndo drops the most recently committed route.
	OpUndo
	// OpMoveLabel sets the selected route's label position to Point.
	OpMoveLabel
	// OpRotateLabel sets the selected route's label rotation to Angle.
	OpRotateLabel
	// OpStraighten replaces the selected route's points with a least-squares
	// fitted segment.
	OpStraighten
)

// Command is a single scene mutation. Only the fields relevant to Op are read.
type Command struct {
	Op    Op
	ID    string
	Point geometry.Point2D
	Style Style
	Angle float64
}

// Apply executes a command against the scene, maintaining the selection and
// in-progress invariants and emitting change events. Commands whose
// precondition does not hold (no selection, nothing in progress) are no-ops:
// every pointer-driven path must be total.
func (s *Scene) Apply(cmd Command) {
	switch cmd.Op {
	case OpStart:
		s.setSelected(nil)
		s.inProgress = newRoute(cmd.Style)
		s.inProgress.Points = append(s.inProgress.Points, cmd.Point)
		s.emit(EventRouteStarted, s.inProgress)

	case OpAppend:
		if s.inProgress == nil {
			return
		}
		s.inProgress.Points = append(s.inProgress.Points, cmd.Point)
		s.emit(EventPointAppended, s.inProgress)

	case OpCommit:
		r := s.inProgress
		if r == nil {
			return
		}
		s.inProgress = nil
		if len(r.Points) < 2 {
			// A single click produces no route.
			s.emit(EventRouteDiscarded, r)
			return
		}
		pos := r.defaultLabelPosition()
		r.LabelPosition = &pos
		s.routes = append(s.routes, r)
		s.emit(EventRouteCommitted, r)

	case OpSelect:
		r := s.Find(cmd.ID)
		if r == nil {
			return
		}
		s.setSelected(r)

	case OpDeselect:
		s.setSelected(nil)

	case OpUpdateStyle:
		if s.selected == nil {
			return
		}
		s.selected.applyStyle(cmd.Style)
		s.emit(EventRouteUpdated, s.selected)

	case OpDelete:
		if s.selected == nil {
			return
		}
		deleted := s.selected
		for i, r := range s.routes {
			if r == deleted {
				s.routes = append(s.routes[:i], s.routes[i+1:]...)
				break
			}
		}
		s.setSelected(nil)
		s.emit(EventRouteDeleted, deleted)

	case OpClear:
		s.routes = nil
		s.inProgress = nil
		s.setSelected(nil)
		s.emit(EventCleared, nil)

	case OpUndo:
		if len(s.routes) == 0 {
			return
		}
		last := s.routes[len(s.routes)-1]
		s.routes = s.routes[:len(s.routes)-1]
		if s.selected == last {
			s.setSelected(nil)
		}
		s.emit(EventUndone, last)

	case OpMoveLabel:
		if s.selected == nil {
			return
		}
		pos := cmd.Point
		s.selected.LabelPosition = &pos
		s.emit(EventLabelMoved, s.selected)

	case OpRotateLabel:
		if s.selected == nil {
			return
		}
		s.selected.LabelRotation = cmd.Angle
		s.emit(EventLabelRotated, s.selected)

	case OpStraighten:
		if s.selected == nil {
			return
		}
		a, b, ok := geometry.FitSegment(s.selected.Points)
		if !ok {
			return
		}
		s.selected.Points = []geometry.Point2D{a, b}
		s.emit(EventRouteUpdated, s.selected)
	}
}
