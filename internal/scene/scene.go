package scene

// EventType identifies scene change notifications.
type EventType int

const (
	EventRouteStarted EventType = iota
	EventPointAppended
	EventRouteCommitted
	EventRouteDiscarded
	EventSelectionChanged
	EventRouteUpdated
	EventRouteDeleted
	EventCleared
	EventUndone
	EventLabelMoved
	EventLabelRotated
)

// Listener is called when a scene event occurs. The data argument is the
// affected *Route, or nil for events with no single subject (clear, empty
// selection).
type Listener func(data interface{})

// Scene owns the committed routes, the route currently being drawn, and the
// current selection. It performs no rendering and no input interpretation;
// mutation happens exclusively through Apply. Scene is not synchronized and
// must only be used from the UI event loop.
type Scene struct {
	routes     []*Route
	selected   *Route
	inProgress *Route
	listeners  map[EventType][]Listener
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		listeners: make(map[EventType][]Listener),
	}
}

// On registers a listener for the given event type.
func (s *Scene) On(event EventType, listener Listener) {
	s.listeners[event] = append(s.listeners[event], listener)
}

func (s *Scene) emit(event EventType, data interface{}) {
	for _, l := range s.listeners[event] {
		l(data)
	}
}

// Routes returns the committed routes in insertion order. The slice is shared;
// callers must not modify it.
func (s *Scene) Routes() []*Route {
	return s.routes
}

// Selected returns the selected route, or nil.
func (s *Scene) Selected() *Route {
	return s.selected
}

// InProgress returns the route currently being drawn, or nil.
func (s *Scene) InProgress() *Route {
	return s.inProgress
}

// Find returns the committed route with the given ID, or nil.
func (s *Scene) Find(id string) *Route {
	for _, r := range s.routes {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// SetRoutes replaces the whole collection, dropping selection and any route
// in progress. Used when loading a drawing from disk.
func (s *Scene) SetRoutes(routes []*Route) {
	s.routes = routes
	s.inProgress = nil
	s.setSelected(nil)
	s.emit(EventCleared, nil)
	for _, r := range routes {
		s.emit(EventRouteCommitted, r)
	}
}

func (s *Scene) setSelected(r *Route) {
	if s.selected == r {
		return
	}
	s.selected = r
	if r != nil {
		s.emit(EventSelectionChanged, r)
	} else {
		s.emit(EventSelectionChanged, nil)
	}
}
