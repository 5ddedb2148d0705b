package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo_Run(t *testing.T) {
	stdout := &bytes.Buffer{}
	demo, err := NewDemo(stdout, 7, 42)
	require.NoError(t, err)

	require.NoError(t, demo.Run(context.Background()))

	output := stdout.String()
	assert.Contains(t, output, "day  1: 3 new")
	assert.Contains(t, output, "day  7:")
	assert.Contains(t, output, "cards")
	assert.Contains(t, output, "average recall chance")
}

func TestDemo_Run_Deterministic(t *testing.T) {
	first := &bytes.Buffer{}
	demo, err := NewDemo(first, 5, 42)
	require.NoError(t, err)
	require.NoError(t, demo.Run(context.Background()))

	second := &bytes.Buffer{}
	demo, err = NewDemo(second, 5, 42)
	require.NoError(t, err)
	require.NoError(t, demo.Run(context.Background()))

	assert.Equal(t, first.String(), second.String())
}
