package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

func TestGenerateSlotsMorningWindow(t *testing.T) {
	slots, err := GenerateSlots("09:00", "12:00", SlotStepMinutes)
	require.NoError(t, err)

	want := []types.TimeString{
		"09:00", "09:20", "09:40",
		"10:00", "10:20", "10:40",
		"11:00", "11:20", "11:40",
	}
	assert.Equal(t, want, slots)
}

func TestGenerateSlotsNoStartWithinOneStepOfClose(t *testing.T) {
	slots, err := GenerateSlots("09:00", "09:30", SlotStepMinutes)
	require.NoError(t, err)

	// 09:20 would leave only 10 minutes before close.
	assert.Equal(t, []types.TimeString{"09:00"}, slots)
}

func TestGenerateSlotsEmptyWindow(t *testing.T) {
	slots, err := GenerateSlots("09:00", "09:10", SlotStepMinutes)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	first, err := GenerateSlots("08:00", "18:00", SlotStepMinutes)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := GenerateSlots("08:00", "18:00", SlotStepMinutes)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	openMin, _ := types.TimeString("08:00").Minutes()
	closeMin, _ := types.TimeString("18:00").Minutes()
	assert.Len(t, first, (closeMin-openMin-SlotStepMinutes)/SlotStepMinutes+1)
}

func TestGenerateSlotsInvalidBounds(t *testing.T) {
	_, err := GenerateSlots("banana", "12:00", SlotStepMinutes)
	assert.Error(t, err)
}
