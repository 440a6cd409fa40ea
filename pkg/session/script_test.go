package session

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gohip/pkg/export"
	"github.com/philipparndt/gohip/pkg/protocol"
)

const hipScript = `
# two radiographs of the same batch
images left-hip.png right-hip.png
laterality left

click 0 0
click 0 100
click 0 0
click 100 0
click 50 30
click 50 30

next-image
id second
laterality RIGHT
click 0 0
click 0 100
click 0 0
click 100 0
click 50 30
click 50 40
undo
click 50 30
`

func TestRunScript(t *testing.T) {
	s := New(protocol.DefaultConfig())
	require.NoError(t, RunScript(s, strings.NewReader(hipScript)))

	records := s.Records()
	require.Len(t, records, 2)

	assert.Equal(t, "left-hip", records[0].ID)
	assert.Equal(t, export.LateralityLeft, records[0].Laterality)
	assert.Equal(t, "second", records[1].ID)
	assert.Equal(t, export.LateralityRight, records[1].Laterality)
	assert.InDelta(t, 0.5, records[1].Ratio, 1e-9)
}

func TestRunScriptWithoutImages(t *testing.T) {
	script := "clear-all\nclick 1 1\nclick 2 2\nback\nclick 3 3\nclear\n"
	s := New(protocol.DefaultConfig())
	require.NoError(t, RunScript(s, strings.NewReader(script)))

	snap := s.Snapshot()
	assert.Equal(t, protocol.StepID(1), snap.Protocol.Active())
	step, _ := snap.Protocol.Step(1)
	assert.Zero(t, step.Len())
}

func TestRunScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		line   int
		target error
	}{
		{"unknown command", "clear-all\n\njump 3\n", 3, ErrUnknownCommand},
		{"missing images", "images\n", 1, ErrNoImages},
		{"last image", "images a.png\nnext-image\n", 2, ErrLastImage},
		{"bad click", "# comment\nclick 1\n", 2, nil},
		{"bad coordinate", "click x 1\n", 1, nil},
		{"bad laterality", "laterality up\n", 1, nil},
		{"bad id", "id\n", 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RunScript(New(protocol.DefaultConfig()), strings.NewReader(tt.script))
			require.Error(t, err)

			var scriptErr *ScriptError
			require.True(t, errors.As(err, &scriptErr))
			assert.Equal(t, tt.line, scriptErr.Line)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}
