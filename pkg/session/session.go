package session

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/philipparndt/gohip/pkg/analysis"
	"github.com/philipparndt/gohip/pkg/export"
	"github.com/philipparndt/gohip/pkg/geometry"
	"github.com/philipparndt/gohip/pkg/protocol"
)

// ErrNoImages is returned when an image batch is empty
var ErrNoImages = errors.New("no images given")

// ErrLastImage is returned by NextImage at the end of the batch
var ErrLastImage = errors.New("already at the last image")

// Snapshot is a consistent view of the session at one point in time
type Snapshot struct {
	Protocol   protocol.Protocol
	Result     analysis.Result
	Image      string // path of the current image, empty when none is loaded
	ImageIndex int
	ImageCount int
	ID         string
	Laterality export.Laterality
	Records    []export.Record
}

// HasNextImage reports whether the batch has an image after the current one
func (s Snapshot) HasNextImage() bool {
	return s.ImageIndex+1 < s.ImageCount
}

// Session owns the live protocol snapshot of one annotation session together
// with the image batch and the recorded measurements. It is safe for use
// from multiple goroutines.
type Session struct {
	mu sync.Mutex

	proto  protocol.Protocol
	result analysis.Result

	images     []string
	index      int
	id         string
	laterality export.Laterality
	records    []export.Record

	onChange func(Snapshot)
}

// New creates a session for cfg. The protocol starts idle.
func New(cfg *protocol.Config) *Session {
	proto := protocol.New(cfg)
	return &Session{
		proto:  proto,
		result: analysis.Measure(proto),
	}
}

// OnChange registers fn to be called after every change. fn runs on the
// goroutine that caused the change, after the session lock is released.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Protocol:   s.proto,
		Result:     s.result,
		ImageIndex: s.index,
		ImageCount: len(s.images),
		ID:         s.id,
		Laterality: s.laterality,
		Records:    slices.Clone(s.records),
	}
	if s.index < len(s.images) {
		snap.Image = s.images[s.index]
	}
	return snap
}

// update runs fn under the lock and notifies the change listener
func (s *Session) update(fn func() error) error {
	s.mu.Lock()
	if err := fn(); err != nil {
		s.mu.Unlock()
		return err
	}
	snap := s.snapshotLocked()
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(snap)
	}
	return nil
}

// Dispatch applies a capture event to the protocol, re-measures and records
// the result once the protocol is complete
func (s *Session) Dispatch(ev protocol.Event) {
	_ = s.update(func() error {
		s.setProtocolLocked(protocol.Reduce(s.proto, ev))
		return nil
	})
}

// Click captures an image-space point for the active step
func (s *Session) Click(p geometry.Point) {
	s.Dispatch(protocol.Click(p))
}

// Next advances to the next step if the active one is complete
func (s *Session) Next() {
	s.Dispatch(protocol.Event{Type: protocol.EventNext})
}

// Previous moves back one step and clears it
func (s *Session) Previous() {
	s.Dispatch(protocol.Event{Type: protocol.EventPrevious})
}

// Undo removes the last captured point
func (s *Session) Undo() {
	s.Dispatch(protocol.Event{Type: protocol.EventUndo})
}

// Clear empties the active step
func (s *Session) Clear() {
	s.Dispatch(protocol.Event{Type: protocol.EventClear})
}

// ClearAll restarts the protocol at step 1
func (s *Session) ClearAll() {
	s.Dispatch(protocol.Event{Type: protocol.EventClearAll})
}

func (s *Session) setProtocolLocked(p protocol.Protocol) {
	s.proto = p
	s.result = analysis.Measure(p)
	s.recordLocked()
}

// recordLocked inserts or replaces the record of the current ID once the
// protocol is complete
func (s *Session) recordLocked() {
	if !s.proto.Complete() || s.result.Hip == nil {
		return
	}
	record := export.NewRecord(s.id, *s.result.Hip, s.laterality, export.StepCoordinates(s.proto))

	i := slices.IndexFunc(s.records, func(r export.Record) bool { return r.ID == s.id })
	if i >= 0 {
		s.records[i] = record
		return
	}
	s.records = append(s.records, record)
}

// LoadImages starts a new image batch and opens its first image
func (s *Session) LoadImages(paths []string) error {
	if len(paths) == 0 {
		return ErrNoImages
	}
	return s.update(func() error {
		s.images = slices.Clone(paths)
		s.openLocked(0)
		return nil
	})
}

// NextImage opens the next image of the batch
func (s *Session) NextImage() error {
	return s.update(func() error {
		if s.index+1 >= len(s.images) {
			return ErrLastImage
		}
		s.openLocked(s.index + 1)
		return nil
	})
}

// openLocked makes image i current: the ID defaults to the file name
// without extension, laterality is cleared and the protocol restarts
func (s *Session) openLocked(i int) {
	s.index = i
	s.id = ImageID(s.images[i])
	s.laterality = export.LateralityNone
	s.setProtocolLocked(protocol.ClearAll(s.proto))
}

// ImageID returns the default ID of an image: its base name without extension
func ImageID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SetID sets the ID the current measurement is recorded under
func (s *Session) SetID(id string) {
	_ = s.update(func() error {
		s.id = id
		return nil
	})
}

// ToggleLaterality selects l, or clears the laterality if l is already selected
func (s *Session) ToggleLaterality(l export.Laterality) {
	_ = s.update(func() error {
		if s.laterality == l {
			s.laterality = export.LateralityNone
		} else {
			s.laterality = l
		}
		s.recordLocked()
		return nil
	})
}

// Reconfigure replaces the step template. The protocol restarts with the new
// steps; it stays idle if no capture was in progress.
func (s *Session) Reconfigure(cfg *protocol.Config) {
	_ = s.update(func() error {
		p := protocol.New(cfg)
		if s.proto.State() != protocol.Idle {
			p = protocol.ClearAll(p)
		}
		s.setProtocolLocked(p)
		return nil
	})
}

// Records returns the recorded measurements in insertion order
func (s *Session) Records() []export.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

// CurrentRecord returns the record of the current ID, if one exists
func (s *Session) CurrentRecord() (export.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.records, func(r export.Record) bool { return r.ID == s.id })
	if i < 0 {
		return export.Record{}, false
	}
	return s.records[i], true
}
