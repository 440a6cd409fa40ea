package app

import (
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/philipparndt/gohip/pkg/protocol"
	"github.com/philipparndt/gohip/pkg/session"
	"github.com/philipparndt/gohip/pkg/viewer"
)

// Options configures the desktop application
type Options struct {
	// StepsPath is a built-in protocol name or a step configuration file
	StepsPath string
	// Watch reloads StepsPath when it changes
	Watch bool
	// Images are opened on start; directories are expanded
	Images []string
}

type App struct {
	window  fyne.Window
	session *session.Session
	view    *viewer.AnnotationView

	UI        UIState
	Image     ImageState
	Style     StyleState
	FileWatch FileWatchState
}

// Run starts the application and blocks until the window is closed
func Run(opts Options) error {
	cfg, err := protocol.Resolve(opts.StepsPath)
	if err != nil {
		return err
	}
	if opts.StepsPath != "" {
		fmt.Printf("Loaded step configuration from: %s\n", opts.StepsPath)
	}

	a := fyneapp.NewWithID("io.github.philipparndt.gohip")
	w := a.NewWindow("GoHip - Hip Radiograph Measurement")

	style := viewer.DefaultStyle()
	app := &App{
		window:  w,
		session: session.New(cfg),
		view:    viewer.NewAnnotationView(),
		Style: StyleState{
			color:     style.Color,
			lineWidth: style.LineWidth,
		},
		FileWatch: FileWatchState{
			stepsPath: opts.StepsPath,
		},
	}

	app.buildUI()
	app.view.SetOnTap(app.session.Click)
	app.session.OnChange(func(snap session.Snapshot) {
		fyne.Do(func() {
			app.refresh(snap)
		})
	})

	if opts.Watch {
		if err := app.setupFileWatcher(); err != nil {
			fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
			fmt.Println("Auto-reload will not be available")
		} else {
			defer app.FileWatch.fileWatcher.Close()
		}
	}

	if len(opts.Images) > 0 {
		app.openImages(opts.Images)
	}
	app.refresh(app.session.Snapshot())

	w.Resize(fyne.NewSize(1400, 900))
	w.ShowAndRun()
	return nil
}
