// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"route-marker/internal/app"
	"route-marker/internal/background"
	"route-marker/internal/scene"
	"route-marker/internal/version"
	"route-marker/pkg/geometry"
	"route-marker/ui/canvas"
	"route-marker/ui/panels"
	"route-marker/ui/prefs"
)

const (
	prefKeyLastDir     = "lastDirectory"
	prefKeyLastImage   = "lastImage"
	prefKeyLastDrawing = "lastDrawing"
)

// drawingExt is the drawing file extension.
const drawingExt = ".routes"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	canvas    *canvas.RouteCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
	zoomLabel *widget.Label

	watcher *background.Watcher
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Route Marker")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreLastSession()

	win.SetCloseIntercept(mw.onClose)
	return mw
}

// setupUI creates the main layout: side panel | toolbar + canvas, status bar
// at the bottom.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewRouteCanvas(mw.state)
	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")
	mw.zoomLabel = widget.NewLabel("Zoom: 100%")

	mw.canvas.OnCursorMove(func(pt geometry.Point2D, inside bool) {
		if inside {
			mw.statusBar.SetText(fmt.Sprintf("Image: %.0f, %.0f", pt.X, pt.Y))
		} else {
			mw.statusBar.SetText("Ready")
		}
	})
	mw.canvas.Interaction().OnZoomChange(func(zoom float64) {
		mw.zoomLabel.SetText(fmt.Sprintf("Zoom: %.0f%%", zoom*100))
	})

	toolbar := container.NewHBox(
		widget.NewButton("-", mw.canvas.ZoomOut),
		widget.NewButton("+", mw.canvas.ZoomIn),
		widget.NewButton("Reset View", mw.onResetView),
		mw.zoomLabel,
	)

	canvasArea := container.NewBorder(toolbar, nil, nil, nil, mw.canvas)

	split := container.NewHSplit(mw.sidePanel.Container(), canvasArea)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1200, 800))

	// Watch the background image so on-disk edits show up automatically.
	watcher, err := background.NewWatcher(func(path string) {
		mw.loadBackgroundAsync(path)
	})
	if err != nil {
		log.Printf("background watcher unavailable: %v", err)
	}
	mw.watcher = watcher
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Drawing...", mw.onOpenDrawing),
		fyne.NewMenuItem("Save Drawing", mw.onSaveDrawing),
		fyne.NewMenuItem("Save Drawing As...", mw.onSaveDrawingAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.onClose() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			mw.state.Scene.Apply(scene.Command{Op: scene.OpUndo})
		}),
		fyne.NewMenuItem("Delete Selected", func() {
			if r := mw.state.Scene.Selected(); r != nil {
				mw.state.Scene.Apply(scene.Command{Op: scene.OpDelete, ID: r.ID})
			}
		}),
		fyne.NewMenuItem("Deselect", func() {
			mw.state.Scene.Apply(scene.Command{Op: scene.OpDeselect})
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Reset View", mw.onResetView),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventBackgroundLoading, func(data interface{}) {
		mw.canvas.SetLoading(true)
		if path, ok := data.(string); ok {
			mw.updateStatus("Loading " + filepath.Base(path) + "...")
		}
	})

	mw.state.On(app.EventBackgroundLoaded, func(data interface{}) {
		img := mw.state.Background()
		mw.canvas.SetLoading(false)
		mw.canvas.SetBackground(img)
		if img != nil {
			if mw.watcher != nil {
				if err := mw.watcher.Watch(img.Path); err != nil {
					log.Printf("background watch failed: %v", err)
				}
			}
			mw.updateStatus("Loaded " + filepath.Base(img.Path))
		}
		mw.zoomLabel.SetText("Zoom: 100%")
	})

	mw.state.On(app.EventBackgroundFailed, func(data interface{}) {
		mw.canvas.SetLoading(false)
		if err, ok := data.(error); ok {
			log.Printf("background load failed: %v", err)
			dialog.ShowError(err, mw.Window)
		}
		mw.updateStatus("Image load failed")
	})

	mw.state.On(app.EventDrawingLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Route Marker - " + filepath.Base(path))
			mw.updateStatus("Drawing loaded: " + path)
		}
	})

	mw.state.On(app.EventDrawingSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Route Marker - " + filepath.Base(path))
			mw.updateStatus("Saved " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

func (mw *MainWindow) onResetView() {
	mw.canvas.ResetView()
	mw.zoomLabel.SetText("Zoom: 100%")
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// OpenImage loads the image at path as the background. Exposed for startup
// arguments.
func (mw *MainWindow) OpenImage(path string) {
	mw.prefs.SetString(prefKeyLastImage, path)
	mw.saveLastDir(path)
	mw.loadBackgroundAsync(path)
}

// OpenDrawing loads the drawing at path and its background image. Exposed for
// startup arguments.
func (mw *MainWindow) OpenDrawing(path string) {
	bgPath, err := mw.state.LoadDrawing(path)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.prefs.SetString(prefKeyLastDrawing, path)
	mw.saveLastDir(path)
	if bgPath != "" {
		mw.prefs.SetString(prefKeyLastImage, bgPath)
		mw.loadBackgroundAsync(bgPath)
	} else {
		mw.canvas.Refresh()
	}
}

// loadBackgroundAsync decodes the image off the UI goroutine; large TIFF
// scans take a while.
func (mw *MainWindow) loadBackgroundAsync(path string) {
	mw.state.BeginBackgroundLoad(path)
	go func() {
		img, err := background.Load(path)
		mw.state.FinishBackgroundLoad(img, err)
	}()
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// restoreLastSession reopens the previous drawing, or failing that the
// previous background image.
func (mw *MainWindow) restoreLastSession() {
	if path := mw.prefs.String(prefKeyLastDrawing); path != "" {
		if _, err := mw.state.LoadDrawing(path); err == nil {
			if bg := mw.prefs.String(prefKeyLastImage); bg != "" {
				mw.loadBackgroundAsync(bg)
			}
			return
		}
		// A missing drawing file is not an error on startup.
		mw.prefs.SetString(prefKeyLastDrawing, "")
	}
	if path := mw.prefs.String(prefKeyLastImage); path != "" {
		mw.loadBackgroundAsync(path)
	}
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		mw.OpenImage(reader.URI().Path())
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(
		[]string{".png", ".jpg", ".jpeg", ".gif", ".tiff", ".tif"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenDrawing() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		mw.OpenDrawing(reader.URI().Path())
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{drawingExt}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveDrawing() {
	if mw.state.DrawingPath == "" {
		mw.onSaveDrawingAs()
		return
	}
	if err := mw.state.SaveDrawing(mw.state.DrawingPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveDrawingAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != drawingExt {
			path += drawingExt
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveDrawing(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefKeyLastDrawing, path)
	}, mw.Window)
	fd.SetFileName("drawing" + drawingExt)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// onClose confirms discarding unsaved work, then shuts the watcher down and
// persists preferences.
func (mw *MainWindow) onClose() {
	if !mw.state.Modified {
		mw.shutdown()
		return
	}
	dialog.ShowConfirm("Unsaved Changes",
		"The drawing has unsaved changes. Quit anyway?",
		func(confirmed bool) {
			if confirmed {
				mw.shutdown()
			}
		}, mw.Window)
}

func (mw *MainWindow) shutdown() {
	if mw.watcher != nil {
		mw.watcher.Close()
	}
	if err := mw.prefs.Save(); err != nil {
		log.Printf("saving preferences: %v", err)
	}
	mw.app.Quit()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Route Marker",
		fmt.Sprintf("Route Marker v%s\n\n"+
			"Draw and annotate routes over a background image.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
