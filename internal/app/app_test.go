package app

import (
	"image"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gohip/pkg/analysis"
	"github.com/philipparndt/gohip/pkg/export"
	"github.com/philipparndt/gohip/pkg/geometry"
	"github.com/philipparndt/gohip/pkg/imageio"
	"github.com/philipparndt/gohip/pkg/protocol"
	"github.com/philipparndt/gohip/pkg/session"
	"github.com/philipparndt/gohip/pkg/viewer"
)

var hipClicks = []geometry.Point{
	{X: 0, Y: 0}, {X: 0, Y: 100},
	{X: 0, Y: 0}, {X: 100, Y: 0},
	{X: 50, Y: 30},
	{X: 50, Y: 30},
}

func newTestApp(t *testing.T) *App {
	a := test.NewTempApp(t)
	style := viewer.DefaultStyle()
	app := &App{
		window:  a.NewWindow("test"),
		session: session.New(protocol.DefaultConfig()),
		view:    viewer.NewAnnotationView(),
		Style:   StyleState{color: style.Color, lineWidth: style.LineWidth},
	}
	app.buildUI()
	return app
}

func (app *App) sync() {
	app.refresh(app.session.Snapshot())
}

func TestRefreshIdle(t *testing.T) {
	app := newTestApp(t)
	app.sync()

	assert.Equal(t, "Choose an image to start", app.UI.stepTitle.Text)
	assert.True(t, app.UI.nextButton.Disabled())
	assert.True(t, app.UI.undoButton.Disabled())
	assert.False(t, app.UI.exportBox.Visible())
	assert.False(t, app.UI.nextImageButton.Visible())
	assert.Equal(t, "-", app.UI.results.Text)
}

func TestRefreshFollowsCapture(t *testing.T) {
	app := newTestApp(t)
	app.session.ClearAll()
	app.sync()

	assert.Equal(t, "Step 1: Teardrop Coordinates", app.UI.stepTitle.Text)
	assert.True(t, app.UI.backButton.Disabled())
	assert.True(t, app.UI.nextButton.Disabled())

	for _, p := range hipClicks[:2] {
		app.session.Click(p)
	}
	app.sync()
	assert.Equal(t, "Step 2: Acetabulum Diameter Coordinates", app.UI.stepTitle.Text)
	assert.False(t, app.UI.backButton.Disabled())

	for _, p := range hipClicks[2:] {
		app.session.Click(p)
	}
	app.sync()
	assert.Equal(t, "All steps complete", app.UI.stepTitle.Text)
	assert.True(t, app.UI.exportBox.Visible())
	assert.False(t, app.UI.nextImageButton.Visible())
	assert.Contains(t, app.UI.results.Text, "Abduction Angle: 90.00 °")
	assert.Contains(t, app.UI.results.Text, "Anteversion (Widmer): 23.7")
}

func TestRefreshWithImages(t *testing.T) {
	app := newTestApp(t)

	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.png", "b.png"} {
		path := filepath.Join(dir, name)
		require.NoError(t, imageio.SavePNG(path, image.NewRGBA(image.Rect(0, 0, 120, 80))))
		paths = append(paths, path)
	}

	app.openImages([]string{dir})
	app.sync()

	assert.Equal(t, paths[0], app.Image.path)
	assert.Equal(t, "a", app.UI.idEntry.Text)
	assert.Equal(t, "Image 1 of 2", app.UI.imageCounter.Text)

	for _, p := range hipClicks {
		app.session.Click(p)
	}
	app.sync()
	assert.True(t, app.UI.nextImageButton.Visible())

	require.NoError(t, app.session.NextImage())
	app.sync()
	assert.Equal(t, paths[1], app.Image.path)
	assert.Equal(t, "b", app.UI.idEntry.Text)
	assert.Equal(t, "Step 1: Teardrop Coordinates", app.UI.stepTitle.Text)
}

func TestLateralityButtons(t *testing.T) {
	app := newTestApp(t)
	app.sync()

	test.Tap(app.UI.leftButton)
	app.sync()
	assert.Equal(t, widget.HighImportance, app.UI.leftButton.Importance)
	assert.Equal(t, widget.MediumImportance, app.UI.rightButton.Importance)

	test.Tap(app.UI.rightButton)
	app.sync()
	assert.Equal(t, export.LateralityRight, app.session.Snapshot().Laterality)
	assert.Equal(t, widget.MediumImportance, app.UI.leftButton.Importance)
}

func TestIDEntry(t *testing.T) {
	app := newTestApp(t)

	test.Type(app.UI.idEntry, "patient-7")
	assert.Equal(t, "patient-7", app.session.Snapshot().ID)
}

func TestHandleKey(t *testing.T) {
	app := newTestApp(t)
	app.session.ClearAll()
	app.session.Click(hipClicks[0])
	app.session.Click(hipClicks[1])

	app.handleKey(&fyne.KeyEvent{Name: fyne.KeyLeft})
	assert.Equal(t, protocol.StepID(1), app.session.Snapshot().Protocol.Active())

	app.session.Click(hipClicks[0])
	app.handleKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	step, _ := app.session.Snapshot().Protocol.ActiveStep()
	assert.Equal(t, 0, step.Len())
}

func TestFormatResultParabola(t *testing.T) {
	par := geometry.FitParabola(geometry.NewPoint(10, 20), geometry.NewPoint(30, 30))
	text := formatResult(analysis.Result{Parabola: &analysis.ParabolaResult{
		Parabola: par,
		Arms: []analysis.ParabolaArm{{
			Point:       geometry.NewPoint(30, 30),
			Derivatives: geometry.ParabolaDerivatives(par.A, 20, 30),
		}},
	}})

	assert.Contains(t, text, "Parabola: x = 0.20·y²")
	assert.Contains(t, text, "Arm (30.00, 30.00)")
}
