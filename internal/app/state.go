package app

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gohip/pkg/watcher"
)

// UIState holds the widgets that are updated from session snapshots
type UIState struct {
	stepTitle    *widget.Label
	stepText     *widget.Label
	idEntry      *widget.Entry
	rightButton  *widget.Button
	leftButton   *widget.Button
	imageCounter *widget.Label
	results      *widget.Label

	backButton     *widget.Button
	nextButton     *widget.Button
	undoButton     *widget.Button
	clearButton    *widget.Button
	clearAllButton *widget.Button

	exportBox       *fyne.Container
	nextImageButton *widget.Button
}

// ImageState holds the decoded image currently shown
type ImageState struct {
	path  string
	image image.Image
}

// StyleState holds the overlay drawing settings
type StyleState struct {
	color     color.Color
	lineWidth float64
}

// FileWatchState holds the step configuration hot-reload state
type FileWatchState struct {
	stepsPath   string
	fileWatcher *watcher.FileWatcher
}
