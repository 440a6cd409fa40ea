package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gohip/pkg/geometry"
	"github.com/philipparndt/gohip/pkg/protocol"
)

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("12.5, -3")
	require.NoError(t, err)
	assert.Equal(t, geometry.NewPoint(12.5, -3), p)

	for _, bad := range []string{"", "12", "a,1", "1,b", "1;2"} {
		_, err := parsePoint(bad)
		assert.Error(t, err, bad)
	}
}

func TestParsePoints(t *testing.T) {
	points, err := parsePoints([]string{"0,0", "100,0"})
	require.NoError(t, err)
	assert.Equal(t, []geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}, points)

	_, err = parsePoints([]string{"0,0", "oops"})
	assert.Error(t, err)
}

func TestCapturablePoints(t *testing.T) {
	assert.Equal(t, 6, capturablePoints(protocol.DefaultConfig()))
	assert.Equal(t, 3, capturablePoints(protocol.ParabolaConfig()))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"ellipse", "measure", "parabola", "steps", "replay", "render", "version", "completion"} {
		assert.True(t, names[want], want)
	}
}
