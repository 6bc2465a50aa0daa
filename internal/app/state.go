// Package app provides application state, events, and drawing persistence.
package app

import (
	"sync"

	"route-marker/internal/background"
	"route-marker/internal/scene"
)

// EventType identifies application-level events.
type EventType int

const (
	EventBackgroundLoading EventType = iota
	EventBackgroundLoaded
	EventBackgroundFailed
	EventDrawingLoaded
	EventDrawingSaved
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the scene, the active drawing style, the
// background image, and the current drawing file. Scene access is UI-thread
// only; the fields crossing goroutines (background load, file watching) are
// guarded by the mutex.
type State struct {
	mu sync.RWMutex

	// Scene is the route collection; mutate it via scene.Command only.
	Scene *scene.Scene

	// Style holds the side panel's current drawing parameters. New routes are
	// seeded from it; selecting a route copies that route's style into it.
	Style scene.Style

	// DrawingPath is the file the drawing was loaded from or saved to.
	DrawingPath string
	Modified    bool

	bg      *background.Image
	loading bool

	listeners map[EventType][]EventListener
}

// NewState creates a new application state with an empty scene.
func NewState() *State {
	s := &State{
		Scene:     scene.New(),
		Style:     scene.DefaultStyle(),
		listeners: make(map[EventType][]EventListener),
	}

	// Any scene mutation dirties the drawing.
	dirty := func(interface{}) { s.SetModified(true) }
	for _, ev := range []scene.EventType{
		scene.EventRouteCommitted, scene.EventRouteUpdated, scene.EventRouteDeleted,
		scene.EventCleared, scene.EventUndone, scene.EventLabelMoved, scene.EventLabelRotated,
	} {
		s.Scene.On(ev, dirty)
	}
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the drawing as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	changed := s.Modified != modified
	s.Modified = modified
	s.mu.Unlock()
	if changed {
		s.Emit(EventModified, modified)
	}
}

// Background returns the current background image, or nil.
func (s *State) Background() *background.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bg
}

// Loading reports whether a background image decode is in flight.
func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// BeginBackgroundLoad enters the loading state. Input handling and rendering
// of the canvas are suppressed until FinishBackgroundLoad runs.
func (s *State) BeginBackgroundLoad(path string) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.Emit(EventBackgroundLoading, path)
}

// FinishBackgroundLoad leaves the loading state. On success the image becomes
// current; on failure the previous image is kept so the engine never holds
// zero-sized geometry.
func (s *State) FinishBackgroundLoad(img *background.Image, err error) {
	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.bg = img
	}
	s.mu.Unlock()

	if err != nil {
		s.Emit(EventBackgroundFailed, err)
		return
	}
	s.Emit(EventBackgroundLoaded, img)
}

// LoadBackground synchronously decodes an image file and installs it as the
// background. Callers off the UI thread must marshal the emitted events back
// themselves.
func (s *State) LoadBackground(path string) error {
	s.BeginBackgroundLoad(path)
	img, err := background.Load(path)
	s.FinishBackgroundLoad(img, err)
	return err
}
