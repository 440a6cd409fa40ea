package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/gohip/pkg/export"
	"github.com/philipparndt/gohip/pkg/geometry"
)

// ScriptError reports a failing line of an event script
type ScriptError struct {
	Line int
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// ErrUnknownCommand is returned for script lines with an unknown command
var ErrUnknownCommand = errors.New("unknown command")

// RunScript replays a line-oriented event script against s.
//
//	images <path>...        start an image batch
//	click <x> <y>           capture a point in image coordinates
//	next | back | undo      navigate the protocol
//	clear | clear-all       reset the active step or the whole protocol
//	id <name>               set the record ID
//	laterality left|right   toggle the laterality
//	next-image              open the next image of the batch
//
// Blank lines and lines starting with # are ignored.
func RunScript(s *Session, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := runCommand(s, strings.Fields(text)); err != nil {
			return &ScriptError{Line: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}

func runCommand(s *Session, fields []string) error {
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "images":
		if len(args) == 0 {
			return fmt.Errorf("images: %w", ErrNoImages)
		}
		return s.LoadImages(args)
	case "click":
		if len(args) != 2 {
			return fmt.Errorf("click: expected 2 coordinates, got %d", len(args))
		}
		x, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("click: invalid x coordinate: %w", err)
		}
		y, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("click: invalid y coordinate: %w", err)
		}
		s.Click(geometry.NewPoint(x, y))
	case "next":
		s.Next()
	case "back":
		s.Previous()
	case "undo":
		s.Undo()
	case "clear":
		s.Clear()
	case "clear-all":
		s.ClearAll()
	case "id":
		if len(args) != 1 {
			return fmt.Errorf("id: expected 1 argument, got %d", len(args))
		}
		s.SetID(args[0])
	case "laterality":
		if len(args) != 1 {
			return fmt.Errorf("laterality: expected left or right")
		}
		l, err := export.ParseLaterality(args[0])
		if err != nil || l == export.LateralityNone {
			return fmt.Errorf("laterality: expected left or right, got %q", args[0])
		}
		s.ToggleLaterality(l)
	case "next-image":
		return s.NextImage()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	return nil
}
