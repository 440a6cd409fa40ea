package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/philipparndt/gohip/pkg/protocol"
)

// DefaultDebounce is the delay between the last change of a file and the reload
const DefaultDebounce = 500 * time.Millisecond

// FileWatcher watches files for changes and triggers callbacks.
//
// The directories containing the files are watched rather than the files
// themselves, so files replaced by an editor's atomic save keep being
// tracked.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	callbacks map[string]func(string)
	dirs      map[string]bool
	debounce  time.Duration
	timers    map[string]*time.Timer
	onError   func(error)
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:   watcher,
		callbacks: make(map[string]func(string)),
		dirs:      make(map[string]bool),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
		onError: func(err error) {
			fmt.Printf("Watcher error: %v\n", err)
		},
	}, nil
}

// SetErrorHandler replaces the default handler, which prints the error
func (fw *FileWatcher) SetErrorHandler(handler func(error)) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.onError = handler
}

// Watch starts watching the specified files
// callback will be called when any of the files change
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		dir := filepath.Dir(absPath)
		if !fw.dirs[dir] {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			fw.dirs[dir] = true
		}

		fw.callbacks[absPath] = callback
	}

	return nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}

				// Writes, and creates/renames that replace the file
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					fw.handleFileChange(filepath.Clean(event.Name))
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.mu.Lock()
				onError := fw.onError
				fw.mu.Unlock()
				onError(err)
			}
		}
	}()
}

// handleFileChange handles a file change event with debouncing
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, exists := fw.callbacks[filePath]
	if !exists {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}

	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		callback(filePath)
	})
}

// Close stops the watcher and any pending callbacks
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}

// WatchConfig reloads the step configuration at path whenever it changes.
// onReload receives every configuration that parses and validates; onError
// receives load failures and watcher errors. The returned watcher is already
// running.
func WatchConfig(path string, debounce time.Duration, onReload func(*protocol.Config), onError func(error)) (*FileWatcher, error) {
	fw, err := NewFileWatcher(debounce)
	if err != nil {
		return nil, err
	}
	if onError != nil {
		fw.SetErrorHandler(onError)
	}

	reload := func(changed string) {
		cfg, err := protocol.LoadConfig(changed)
		if err != nil {
			fw.mu.Lock()
			handler := fw.onError
			fw.mu.Unlock()
			handler(err)
			return
		}
		onReload(cfg)
	}

	if err := fw.Watch([]string{path}, reload); err != nil {
		fw.watcher.Close()
		return nil, err
	}
	fw.Start()
	return fw, nil
}
