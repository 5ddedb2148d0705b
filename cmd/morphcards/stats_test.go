package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStatsCommand(t *testing.T) {
	cmd := newStatsCommand()

	assert.Equal(t, "stats", cmd.Use)
	assert.Equal(t, "Show a review statistics report", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	// Verify flags
	yearFlag := cmd.Flags().Lookup("year")
	assert.NotNil(t, yearFlag)
	assert.Equal(t, "0", yearFlag.DefValue)

	monthFlag := cmd.Flags().Lookup("month")
	assert.NotNil(t, monthFlag)
	assert.Equal(t, "0", monthFlag.DefValue)

	assert.NotNil(t, cmd.Flags().Lookup("report"))
	assert.NotNil(t, cmd.Flags().Lookup("pdf"))
}

func TestNewStatsCommand_MonthWithoutYear(t *testing.T) {
	cmd := newStatsCommand()
	cmd.SetArgs([]string{"--month", "3"})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--month requires --year")
}

func TestNewStatsCommand_InvalidMonth(t *testing.T) {
	cmd := newStatsCommand()
	cmd.SetArgs([]string{"--year", "2025", "--month", "13"})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--month must be between 1 and 12")
}

func TestNewStatsCommand_PDFWithoutReport(t *testing.T) {
	cmd := newStatsCommand()
	cmd.SetArgs([]string{"--pdf"})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--pdf requires --report")
}

func TestNewStatsCommand_RunE_InvalidConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	cmd := newStatsCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}
