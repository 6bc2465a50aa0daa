// Command routerender renders a saved drawing to a PNG without opening the
// GUI, for batch export and quick inspection of .routes files.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"route-marker/internal/app"
	"route-marker/internal/background"
	"route-marker/internal/scene"
	"route-marker/internal/viewport"
	"route-marker/pkg/geometry"
	"route-marker/ui/canvas"
)

func main() {
	drawingPath := flag.String("drawing", "", "Path to a .routes drawing file")
	outPath := flag.String("out", "render.png", "Output PNG path")
	width := flag.Int("width", 0, "Output width in pixels (0 = image width)")
	height := flag.Int("height", 0, "Output height in pixels (0 = image height)")
	flag.Parse()

	if *drawingPath == "" {
		fmt.Println("Usage: routerender -drawing <path> [-out render.png] [-width N] [-height N]")
		os.Exit(1)
	}

	data, err := os.ReadFile(*drawingPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read drawing: %v\n", err)
		os.Exit(1)
	}
	var file app.DrawingFile
	if err := json.Unmarshal(data, &file); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid drawing file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded drawing: %d routes\n", len(file.Routes))

	if file.Background == "" {
		fmt.Fprintln(os.Stderr, "Drawing has no background image reference")
		os.Exit(1)
	}
	bgPath := file.Background
	if !filepath.IsAbs(bgPath) {
		bgPath = filepath.Join(filepath.Dir(*drawingPath), bgPath)
	}

	bg, err := background.Load(bgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load background: %v\n", err)
		os.Exit(1)
	}
	natural := bg.NaturalSize()
	fmt.Printf("Background: %s (%.0fx%.0f)\n", bgPath, natural.Width, natural.Height)

	w, h := *width, *height
	if w <= 0 {
		w = int(natural.Width)
	}
	if h <= 0 {
		h = int(natural.Height)
	}

	s := scene.New()
	s.SetRoutes(file.Routes)

	view := viewport.New()
	view.SetCanvasSize(geometry.NewSize(float64(w), float64(h)))
	view.SetImageSize(natural)

	out := canvas.Render(w, h, canvas.Frame{
		Background: bg.Image,
		Scene:      s,
		View:       view,
	})

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%dx%d)\n", *outPath, w, h)
}
