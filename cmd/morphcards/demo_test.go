package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDemoCommand(t *testing.T) {
	cmd := newDemoCommand()

	assert.Equal(t, "demo", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	daysFlag := cmd.Flags().Lookup("days")
	assert.NotNil(t, daysFlag)
	assert.Equal(t, "14", daysFlag.DefValue)

	seedFlag := cmd.Flags().Lookup("seed")
	assert.NotNil(t, seedFlag)
	assert.Equal(t, "42", seedFlag.DefValue)
}

func TestNewDemoCommand_RunE(t *testing.T) {
	cmd := newDemoCommand()
	cmd.SetArgs([]string{"--days", "2"})

	err := cmd.Execute()
	assert.NoError(t, err)
}

func TestNewDemoCommand_RunE_InvalidDays(t *testing.T) {
	cmd := newDemoCommand()
	cmd.SetArgs([]string{"--days", "0"})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--days must be at least 1")
}
