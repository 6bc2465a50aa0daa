// Package main provides the entry point for the Route Marker application.
package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	fyneapp "fyne.io/fyne/v2/app"

	"route-marker/internal/app"
	"route-marker/internal/version"
	"route-marker/ui/mainwindow"
	"route-marker/ui/prefs"
)

const appTitle = "Route Marker"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("io.routemarker.app")
	fyneApp.Settings().SetTheme(&app.RouteMarkerTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// A drawing or image path on the command line overrides the restored
	// session.
	if len(os.Args) > 1 {
		openStartupFile(win, os.Args[1])
	}

	win.ShowAndRun()
}

func openStartupFile(win *mainwindow.MainWindow, path string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".routes":
		win.OpenDrawing(path)
	case ".png", ".jpg", ".jpeg", ".gif", ".tiff", ".tif":
		win.OpenImage(path)
	default:
		log.Printf("Unrecognized file type: %s", path)
	}
}
