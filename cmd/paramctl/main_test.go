package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	msgs, err := parseArgs([]string{"fov=2", "cameraAzimuth=-45.5"})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "fov", msgs[0].Name)
	assert.Equal(t, 2.0, *msgs[0].Value)
	assert.Equal(t, -45.5, *msgs[1].Value)

	for _, bad := range []string{"fov", "=2", "fov=wide"} {
		_, err := parseArgs([]string{bad})
		assert.Error(t, err, bad)
	}
}
