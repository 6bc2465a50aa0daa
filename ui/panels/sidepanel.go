// Package panels provides UI panels for the application.
package panels

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	fynecanvas "fyne.io/fyne/v2/canvas"

	"route-marker/internal/app"
	"route-marker/internal/scene"
	"route-marker/pkg/colorutil"
	"route-marker/ui/canvas"
)

// SidePanel is the main side panel: drawing style for new routes, the
// selected route's properties, the route list, and scene-wide actions.
type SidePanel struct {
	state  *app.State
	canvas *canvas.RouteCanvas
	window fyne.Window

	container fyne.CanvasObject

	// Style card (new routes).
	colorSelect  *widget.Select
	colorPreview *fynecanvas.Rectangle
	opacity      *widget.Slider
	opacityLabel *widget.Label
	thickness    *widget.RadioGroup

	// Selected route card.
	labelEntry     *widget.Entry
	rotationSlider *widget.Slider
	rotationLabel  *widget.Label
	applyButton    *widget.Button
	straightenBtn  *widget.Button
	deleteButton   *widget.Button
	selectionCard  *widget.Card

	// Route list.
	routeList *widget.List

	// syncing suppresses widget callbacks while fields are being seeded
	// from the scene, so copy-out never echoes back as a command.
	syncing bool
}

// NewSidePanel creates the side panel over the application state.
func NewSidePanel(state *app.State, cvs *canvas.RouteCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: cvs,
	}

	sp.buildStyleCard()
	sp.buildSelectionCard()
	sp.buildRouteList()

	undoButton := widget.NewButton("Undo", func() {
		state.Scene.Apply(scene.Command{Op: scene.OpUndo})
	})
	clearButton := widget.NewButton("Clear All", func() {
		sp.confirmClear()
	})

	sp.container = container.NewVBox(
		widget.NewCard("Drawing Style", "", container.NewVBox(
			container.NewBorder(nil, nil, nil, sp.colorPreview, sp.colorSelect),
			sp.opacityLabel,
			sp.opacity,
			widget.NewLabel("Thickness:"),
			sp.thickness,
		)),
		sp.selectionCard,
		widget.NewCard("Routes", "", container.NewVBox(
			// A bare List has no intrinsic height inside a VBox.
			container.NewGridWrap(fyne.NewSize(260, 180), sp.routeList),
			container.NewHBox(undoButton, clearButton),
		)),
	)

	// Keep the list and the selection card tracking the scene.
	for _, ev := range []scene.EventType{
		scene.EventRouteCommitted, scene.EventRouteDeleted,
		scene.EventCleared, scene.EventUndone, scene.EventRouteUpdated,
	} {
		state.Scene.On(ev, func(interface{}) { sp.routeList.Refresh() })
	}
	state.Scene.On(scene.EventSelectionChanged, func(interface{}) {
		sp.seedFromSelection()
		sp.routeList.Refresh()
	})
	state.Scene.On(scene.EventLabelRotated, func(interface{}) {
		sp.syncRotationFromScene()
	})

	sp.seedFromSelection()
	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for confirmation dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.window = w
}

func (sp *SidePanel) buildStyleCard() {
	sp.colorPreview = fynecanvas.NewRectangle(color.Black)
	sp.colorPreview.SetMinSize(fyne.NewSize(28, 28))

	sp.colorSelect = widget.NewSelect(colorutil.Palette, func(hex string) {
		if sp.syncing {
			return
		}
		sp.state.Style.Color = hex
		sp.updateColorPreview(hex)
		sp.applySelectedStyle()
	})

	sp.opacityLabel = widget.NewLabel("Opacity: 100%")
	sp.opacity = widget.NewSlider(0, 100)
	sp.opacity.OnChanged = func(val float64) {
		sp.opacityLabel.SetText(fmt.Sprintf("Opacity: %.0f%%", val))
		if sp.syncing {
			return
		}
		sp.state.Style.Opacity = val / 100
		sp.applySelectedStyle()
	}

	sp.thickness = widget.NewRadioGroup(
		[]string{"Thin", "Medium", "Thick"},
		func(selected string) {
			if sp.syncing || selected == "" {
				return
			}
			sp.state.Style.Thickness = scene.ThicknessFromString(selected)
			sp.applySelectedStyle()
		})
	sp.thickness.Horizontal = true

	sp.seedStyleWidgets(sp.state.Style)
}

func (sp *SidePanel) buildSelectionCard() {
	sp.labelEntry = widget.NewEntry()
	sp.labelEntry.SetPlaceHolder("Route label")

	sp.rotationLabel = widget.NewLabel("Rotation: 0")
	sp.rotationSlider = widget.NewSlider(0, 355)
	sp.rotationSlider.Step = 5
	sp.rotationSlider.OnChanged = func(val float64) {
		sp.rotationLabel.SetText(fmt.Sprintf("Rotation: %.0f", val))
		if sp.syncing {
			return
		}
		if sp.state.Scene.Selected() != nil {
			sp.state.Scene.Apply(scene.Command{Op: scene.OpRotateLabel, Angle: val})
		}
	}

	sp.applyButton = widget.NewButton("Apply Label", func() {
		sp.applyLabel()
	})
	sp.straightenBtn = widget.NewButton("Straighten", func() {
		sp.state.Scene.Apply(scene.Command{Op: scene.OpStraighten})
	})
	sp.deleteButton = widget.NewButton("Delete", func() {
		if r := sp.state.Scene.Selected(); r != nil {
			sp.state.Scene.Apply(scene.Command{Op: scene.OpDelete, ID: r.ID})
		}
	})

	sp.selectionCard = widget.NewCard("Selected Route", "", container.NewVBox(
		sp.labelEntry,
		sp.applyButton,
		sp.rotationLabel,
		sp.rotationSlider,
		container.NewHBox(sp.straightenBtn, sp.deleteButton),
	))
}

func (sp *SidePanel) buildRouteList() {
	sp.routeList = widget.NewList(
		func() int {
			return len(sp.state.Scene.Routes())
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("route")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			routes := sp.state.Scene.Routes()
			if id >= len(routes) {
				return
			}
			r := routes[id]
			name := r.Label
			if name == "" {
				name = "(unlabeled)"
			}
			obj.(*widget.Label).SetText(fmt.Sprintf(
				"%s  %d pts  %.0f px", name, len(r.Points), r.Length()))
		},
	)
	sp.routeList.OnSelected = func(id widget.ListItemID) {
		routes := sp.state.Scene.Routes()
		if id < len(routes) {
			sp.state.Scene.Apply(scene.Command{Op: scene.OpSelect, ID: routes[id].ID})
		}
	}
}

// applySelectedStyle pushes the style card's values onto the selected route,
// keeping its label and rotation intact. With nothing selected the style only
// affects future routes.
func (sp *SidePanel) applySelectedStyle() {
	r := sp.state.Scene.Selected()
	if r == nil {
		return
	}
	style := scene.StyleOf(r)
	style.Color = sp.state.Style.Color
	style.Opacity = sp.state.Style.Opacity
	style.Thickness = sp.state.Style.Thickness
	sp.state.Scene.Apply(scene.Command{Op: scene.OpUpdateStyle, Style: style})
}

func (sp *SidePanel) applyLabel() {
	r := sp.state.Scene.Selected()
	if r == nil {
		return
	}
	style := scene.StyleOf(r)
	style.Label = sp.labelEntry.Text
	sp.state.Scene.Apply(scene.Command{Op: scene.OpUpdateStyle, Style: style})
}

// seedFromSelection copies the selected route's properties into the widgets.
// The copy is one-way; edits flow back only through explicit commands.
func (sp *SidePanel) seedFromSelection() {
	sp.syncing = true
	defer func() { sp.syncing = false }()

	r := sp.state.Scene.Selected()
	if r == nil {
		sp.labelEntry.SetText("")
		sp.rotationSlider.SetValue(0)
		sp.rotationLabel.SetText("Rotation: 0")
		sp.applyButton.Disable()
		sp.straightenBtn.Disable()
		sp.deleteButton.Disable()
		sp.seedStyleWidgets(sp.state.Style)
		return
	}

	sp.applyButton.Enable()
	sp.straightenBtn.Enable()
	sp.deleteButton.Enable()
	sp.labelEntry.SetText(r.Label)
	sp.rotationSlider.SetValue(r.LabelRotation)
	sp.rotationLabel.SetText(fmt.Sprintf("Rotation: %.0f", r.LabelRotation))
	style := scene.StyleOf(r)
	sp.seedStyleWidgets(style)
	// Label and rotation stay per-route; only the visual style carries over
	// to the next drawn route.
	sp.state.Style = scene.Style{
		Color:     style.Color,
		Opacity:   style.Opacity,
		Thickness: style.Thickness,
	}
}

func (sp *SidePanel) seedStyleWidgets(style scene.Style) {
	sp.colorSelect.SetSelected(style.Color)
	sp.updateColorPreview(style.Color)
	sp.opacity.SetValue(style.Opacity * 100)
	sp.thickness.SetSelected(style.Thickness.String())
}

// syncRotationFromScene reflects a canvas rotation drag on the slider.
func (sp *SidePanel) syncRotationFromScene() {
	r := sp.state.Scene.Selected()
	if r == nil {
		return
	}
	sp.syncing = true
	sp.rotationSlider.SetValue(r.LabelRotation)
	sp.rotationLabel.SetText(fmt.Sprintf("Rotation: %.0f", r.LabelRotation))
	sp.syncing = false
}

func (sp *SidePanel) updateColorPreview(hex string) {
	col, err := colorutil.ParseHex(hex)
	if err != nil {
		col = colorutil.Black
	}
	sp.colorPreview.FillColor = col
	sp.colorPreview.Refresh()
}

func (sp *SidePanel) confirmClear() {
	if len(sp.state.Scene.Routes()) == 0 && sp.state.Scene.InProgress() == nil {
		return
	}
	if sp.window == nil {
		sp.state.Scene.Apply(scene.Command{Op: scene.OpClear})
		return
	}
	dialog.ShowConfirm("Clear All Routes",
		"Remove every route from the drawing? This cannot be undone.",
		func(confirmed bool) {
			if confirmed {
				sp.state.Scene.Apply(scene.Command{Op: scene.OpClear})
			}
		}, sp.window)
}
