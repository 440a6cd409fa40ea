package app

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2/dialog"

	"github.com/philipparndt/gohip/pkg/imageio"
	"github.com/philipparndt/gohip/pkg/protocol"
	"github.com/philipparndt/gohip/pkg/watcher"
)

// openImages starts a new batch from files and directories
func (app *App) openImages(paths []string) {
	images, err := imageio.ExpandPaths(paths)
	if err != nil {
		dialog.ShowError(err, app.window)
		return
	}
	if err := app.session.LoadImages(images); err != nil {
		dialog.ShowError(fmt.Errorf("no images found: %w", err), app.window)
		return
	}
	fmt.Printf("Loaded %d image(s)\n", len(images))
}

// loadImage decodes path unless it is already shown
func (app *App) loadImage(path string) error {
	if path == app.Image.path {
		return nil
	}
	img, err := imageio.Load(path)
	if err != nil {
		return err
	}
	app.Image = ImageState{path: path, image: img}
	app.view.SetImage(img)
	return nil
}

// setupFileWatcher reloads the step configuration when its file changes
func (app *App) setupFileWatcher() error {
	path := app.FileWatch.stepsPath
	if path == "" {
		return errors.New("no step configuration file given")
	}
	for _, name := range protocol.BuiltinNames() {
		if path == name {
			return fmt.Errorf("built-in protocol %q cannot be watched", name)
		}
	}

	fw, err := watcher.WatchConfig(path, watcher.DefaultDebounce, func(cfg *protocol.Config) {
		fmt.Printf("Step configuration changed, restarting capture: %s\n", path)
		app.session.Reconfigure(cfg)
	}, func(err error) {
		fmt.Printf("Warning: %v\n", err)
	})
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	app.FileWatch.fileWatcher = fw
	fmt.Printf("Watching for changes: %s\n", path)
	return nil
}
