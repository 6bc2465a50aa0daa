package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"route-marker/internal/scene"
)

// DrawingFile is the JSON structure of a saved drawing (.routes file).
type DrawingFile struct {
	Version  int       `json:"version"`
	Created  time.Time `json:"created,omitempty"`
	Modified time.Time `json:"modified,omitempty"`

	// Background image path, relative to the drawing file when possible.
	Background string `json:"background,omitempty"`

	Routes []*scene.Route `json:"routes"`
}

const drawingVersion = 1

// SaveDrawing writes the current routes and background reference to path.
func (s *State) SaveDrawing(path string) error {
	file := DrawingFile{
		Version:  drawingVersion,
		Modified: time.Now(),
		Routes:   s.Scene.Routes(),
	}
	if bg := s.Background(); bg != nil {
		rel, err := filepath.Rel(filepath.Dir(path), bg.Path)
		if err != nil {
			rel = bg.Path
		}
		file.Background = rel
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	s.mu.Lock()
	s.DrawingPath = path
	s.mu.Unlock()
	s.SetModified(false)
	s.Emit(EventDrawingSaved, path)
	return nil
}

// LoadDrawing reads a drawing file, replaces the scene contents, and returns
// the resolved background image path ("" if the drawing has none). Loading
// the background itself is the caller's job: decode is asynchronous and owned
// by the shell.
func (s *State) LoadDrawing(path string) (backgroundPath string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var file DrawingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", fmt.Errorf("invalid drawing file: %w", err)
	}

	s.Scene.SetRoutes(file.Routes)

	s.mu.Lock()
	s.DrawingPath = path
	s.mu.Unlock()
	s.SetModified(false)

	if file.Background != "" && !filepath.IsAbs(file.Background) {
		backgroundPath = filepath.Join(filepath.Dir(path), file.Background)
	} else {
		backgroundPath = file.Background
	}
	s.Emit(EventDrawingLoaded, path)
	return backgroundPath, nil
}
