package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReviewCommand(t *testing.T) {
	cmd := newReviewCommand()

	assert.Equal(t, "review", cmd.Use)
	assert.Equal(t, "Start an interactive review session for due cards", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestNewReviewCommand_RunE_InvalidConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	cmd := newReviewCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}
