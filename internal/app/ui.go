package app

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gohip/pkg/analysis"
	"github.com/philipparndt/gohip/pkg/export"
	"github.com/philipparndt/gohip/pkg/overlay"
	"github.com/philipparndt/gohip/pkg/protocol"
	"github.com/philipparndt/gohip/pkg/session"
	"github.com/philipparndt/gohip/pkg/viewer"
)

// paletteOrder is the order of the colour buttons
var paletteOrder = []string{"red", "blue", "green", "purple"}

// buildUI creates the window content
func (app *App) buildUI() {
	ui := &app.UI

	ui.stepTitle = widget.NewLabel("")
	ui.stepTitle.TextStyle = fyne.TextStyle{Bold: true}
	ui.stepText = widget.NewLabel("")
	ui.stepText.Wrapping = fyne.TextWrapWord
	ui.imageCounter = widget.NewLabel("")
	ui.results = widget.NewLabel("")

	ui.idEntry = widget.NewEntry()
	ui.idEntry.SetPlaceHolder("Image ID")
	ui.idEntry.OnChanged = app.session.SetID

	ui.rightButton = widget.NewButton("Right", func() {
		app.session.ToggleLaterality(export.LateralityRight)
	})
	ui.leftButton = widget.NewButton("Left", func() {
		app.session.ToggleLaterality(export.LateralityLeft)
	})

	openButton := widget.NewButton("Choose File", app.showFileDialog)
	openFolderButton := widget.NewButton("Choose Folder", app.showFolderDialog)

	lineWidth := widget.NewSlider(0.5, 5)
	lineWidth.Step = 0.1
	lineWidth.SetValue(app.Style.lineWidth)
	lineWidth.OnChanged = func(v float64) {
		app.Style.lineWidth = v
		app.applyStyle()
	}

	colors := container.NewHBox()
	for _, name := range paletteOrder {
		c := viewer.Palette[name]
		colors.Add(widget.NewButton(strings.ToUpper(name[:1])+name[1:], func() {
			app.Style.color = c
			app.applyStyle()
		}))
	}

	header := container.NewVBox(
		container.NewHBox(
			openButton,
			openFolderButton,
			widget.NewLabel("Image ID:"),
			container.NewGridWrap(fyne.NewSize(200, ui.idEntry.MinSize().Height), ui.idEntry),
			ui.rightButton,
			ui.leftButton,
			ui.imageCounter,
		),
		container.NewBorder(nil, nil, widget.NewLabel("Line width:"), colors, lineWidth),
		ui.stepTitle,
		ui.stepText,
	)

	ui.backButton = widget.NewButton("Back", app.session.Previous)
	ui.nextButton = widget.NewButton("Next", app.session.Next)
	ui.undoButton = widget.NewButton("Undo", app.session.Undo)
	ui.clearButton = widget.NewButton("Clear", app.session.Clear)
	ui.clearAllButton = widget.NewButton("Clear All", app.session.ClearAll)

	ui.exportBox = container.NewHBox(
		widget.NewButton("Download text", func() { app.export(export.ScopeCurrent, true) }),
		widget.NewButton("Download CSV", func() { app.export(export.ScopeCurrent, false) }),
		widget.NewButton("Download all text", func() { app.export(export.ScopeAll, true) }),
		widget.NewButton("Download all CSV", func() { app.export(export.ScopeAll, false) }),
		widget.NewButton("All with coor text", func() { app.export(export.ScopeCoordinates, true) }),
		widget.NewButton("All with coor CSV", func() { app.export(export.ScopeCoordinates, false) }),
	)
	ui.nextImageButton = widget.NewButton("Next Image in Directory", func() {
		if err := app.session.NextImage(); err != nil {
			dialog.ShowError(err, app.window)
		}
	})

	footer := container.NewVBox(
		container.NewHBox(
			ui.backButton,
			ui.nextButton,
			ui.undoButton,
			ui.clearButton,
			ui.clearAllButton,
		),
		container.NewHBox(ui.exportBox, ui.nextImageButton),
	)

	resultsPanel := container.NewVScroll(container.NewVBox(
		widget.NewLabel("Measurements:"),
		widget.NewSeparator(),
		ui.results,
	))
	resultsPanel.SetMinSize(fyne.NewSize(260, 0))

	content := container.NewBorder(
		header,       // top
		footer,       // bottom
		nil,          // left
		resultsPanel, // right
		app.view,     // center
	)
	app.window.SetContent(content)
	app.window.Canvas().SetOnTypedKey(app.handleKey)
}

// handleKey maps keyboard shortcuts to protocol events
func (app *App) handleKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyRight, fyne.KeyReturn:
		app.session.Next()
	case fyne.KeyLeft:
		app.session.Previous()
	case fyne.KeyBackspace:
		app.session.Undo()
	case fyne.KeyEscape:
		app.session.Clear()
	}
}

func (app *App) applyStyle() {
	app.view.SetStyle(viewer.Style{Color: app.Style.color, LineWidth: app.Style.lineWidth})
}

func (app *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		app.openImages([]string{reader.URI().Path()})
	}, app.window)
}

func (app *App) showFolderDialog() {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, app.window)
			return
		}
		if dir == nil {
			return
		}
		app.openImages([]string{dir.Path()})
	}, app.window)
}

// export asks for a target file and writes the selected records to it.
// Text exports are tab separated.
func (app *App) export(scope export.Scope, text bool) {
	all := app.session.Records()
	records := all
	if scope == export.ScopeCurrent {
		records = nil
		if r, ok := app.session.CurrentRecord(); ok {
			records = append(records, r)
		}
	}
	if len(records) == 0 {
		dialog.ShowInformation("Export", "There is no complete measurement to export yet.", app.window)
		return
	}

	opts := export.Options{Coordinates: scope == export.ScopeCoordinates}
	ext := ".csv"
	if text {
		opts.Delimiter = '\t'
		ext = ".txt"
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := export.Write(writer, records, opts); err != nil {
			dialog.ShowError(err, app.window)
			return
		}
		fmt.Printf("Exported %d record(s) to: %s\n", len(records), writer.URI().Path())
	}, app.window)
	save.SetFileName(export.FileName(all, scope) + ext)
	save.Show()
}

// refresh updates every widget from a session snapshot
func (app *App) refresh(snap session.Snapshot) {
	ui := &app.UI
	p := snap.Protocol

	if snap.Image != "" {
		if err := app.loadImage(snap.Image); err != nil {
			dialog.ShowError(err, app.window)
		}
	}
	if app.Image.image != nil {
		b := app.Image.image.Bounds()
		app.view.SetScene(overlay.Build(p, snap.Result, float64(b.Dx()), float64(b.Dy())))
	}

	switch p.State() {
	case protocol.Idle:
		ui.stepTitle.SetText("Choose an image to start")
		ui.stepText.SetText("")
	case protocol.Complete:
		ui.stepTitle.SetText("All steps complete")
		ui.stepText.SetText("Export the measurements or continue with the next image.")
	default:
		s, _ := p.ActiveStep()
		ui.stepTitle.SetText(fmt.Sprintf("Step %d: %s", s.ID, s.Label))
		ui.stepText.SetText(s.Text)
	}

	if ui.idEntry.Text != snap.ID {
		ui.idEntry.SetText(snap.ID)
	}
	ui.rightButton.Importance = lateralityImportance(snap.Laterality == export.LateralityRight)
	ui.leftButton.Importance = lateralityImportance(snap.Laterality == export.LateralityLeft)
	ui.rightButton.Refresh()
	ui.leftButton.Refresh()

	if snap.ImageCount > 1 {
		ui.imageCounter.SetText(fmt.Sprintf("Image %d of %d", snap.ImageIndex+1, snap.ImageCount))
	} else {
		ui.imageCounter.SetText("")
	}

	ui.results.SetText(formatResult(snap.Result))

	active := p.State() != protocol.Idle
	setEnabled(ui.backButton, p.Active() > 1)
	setEnabled(ui.nextButton, active && !p.Complete())
	setEnabled(ui.undoButton, active)
	setEnabled(ui.clearButton, active && !p.Complete())
	setEnabled(ui.clearAllButton, active)

	if p.Complete() {
		ui.exportBox.Show()
	} else {
		ui.exportBox.Hide()
	}
	if p.Complete() && snap.HasNextImage() {
		ui.nextImageButton.Show()
	} else {
		ui.nextImageButton.Hide()
	}
}

func lateralityImportance(selected bool) widget.Importance {
	if selected {
		return widget.HighImportance
	}
	return widget.MediumImportance
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

// formatResult renders the measurement panel text
func formatResult(r analysis.Result) string {
	var sb strings.Builder

	if r.Hip != nil {
		fmt.Fprintf(&sb, "Abduction Angle: %s\n", analysis.FormatMeasurement(r.Hip.Gamma, "°"))
		fmt.Fprintf(&sb, "S/TL Ratio: %s\n", analysis.FormatMeasurement(r.Hip.Ratio, ""))
		fmt.Fprintf(&sb, "Anteversion (Widmer): %s\n", analysis.FormatMeasurement(r.Hip.AnteversionWidmer, "°"))
		fmt.Fprintf(&sb, "Anteversion (Liaw): %s\n", analysis.FormatMeasurement(r.Hip.Beta, "°"))
		if !r.Hip.Finite() {
			sb.WriteString("\nWarning: degenerate input, check the captured points\n")
		}
	}

	if r.Parabola != nil {
		par := r.Parabola.Parabola
		fmt.Fprintf(&sb, "Parabola: x = %s·y² + %s·y + %s\n",
			analysis.FormatMeasurement(par.A, ""),
			analysis.FormatMeasurement(par.B, ""),
			analysis.FormatMeasurement(par.C, ""))
		for _, arm := range r.Parabola.Arms {
			fmt.Fprintf(&sb, "Arm %s: x' = %s, x'' = %s\n",
				analysis.FormatPoint(arm.Point),
				analysis.FormatMeasurement(arm.Derivatives.First, ""),
				analysis.FormatMeasurement(arm.Derivatives.Second, ""))
		}
	}

	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
