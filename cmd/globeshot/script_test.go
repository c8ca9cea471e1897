package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globeview/internal/globe"
)

func TestParseScript(t *testing.T) {
	cmds, err := parseScript(" up45, right90 ,rotl,rotr,down30,left90,jump:10:-20,place:Sydney,")
	require.NoError(t, err)
	assert.Equal(t, []command{
		{op: "move", dPitch: 45, kind: globe.WipeFromTop},
		{op: "move", dYaw: 90, kind: globe.WipeFromRight},
		{op: "rotl"},
		{op: "rotr"},
		{op: "move", dPitch: -30, kind: globe.WipeFromBottom},
		{op: "move", dYaw: -90, kind: globe.WipeFromLeft},
		{op: "jump", lat: "10", lon: "-20"},
		{op: "place", place: "Sydney"},
	}, cmds)

	cmds, err = parseScript("")
	require.NoError(t, err)
	assert.Empty(t, cmds)
}

func TestParseScript_Errors(t *testing.T) {
	for _, s := range []string{"up", "up-5", "leftx", "spin", "jump:1", "place:"} {
		t.Run(s, func(t *testing.T) {
			_, err := parseScript(s)
			assert.Error(t, err)
		})
	}
}
