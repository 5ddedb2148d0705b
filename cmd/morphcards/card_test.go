package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCardCommand(t *testing.T) {
	cmd := newCardCommand()

	assert.Equal(t, "card", cmd.Use)
	assert.Equal(t, "Manage vocabulary cards", cmd.Short)
	assert.True(t, cmd.HasSubCommands())
}

func TestNewCardAddCommand(t *testing.T) {
	cmd := newCardAddCommand()

	assert.Equal(t, "add <word> <sentence>", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewCardAddCommand_RunE_MissingArgs(t *testing.T) {
	cmd := newCardAddCommand()
	cmd.SetArgs([]string{"ephemeral"})

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestNewCardAddCommand_RunE_InvalidConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	cmd := newCardAddCommand()
	cmd.SetArgs([]string{"ephemeral", "The beauty of cherry blossoms is ephemeral."})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}

func TestNewCardListCommand(t *testing.T) {
	cmd := newCardListCommand()

	assert.Equal(t, "list", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewCardDueCommand(t *testing.T) {
	cmd := newCardDueCommand()

	assert.Equal(t, "due", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}
