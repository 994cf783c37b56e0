package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekdaySpanish(t *testing.T) {
	cases := map[string]Weekday{
		"lunes":     Monday,
		"martes":    Tuesday,
		"miercoles": Wednesday,
		"miércoles": Wednesday,
		"Miércoles": Wednesday,
		"jueves":    Thursday,
		"viernes":   Friday,
		"sábado":    Saturday,
		"SÁBADO":    Saturday,
		"domingo":   Sunday,
		" lunes ":   Monday,
	}

	for name, want := range cases {
		got, err := ParseWeekday(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, want, got, "name %q", name)
	}
}

func TestParseWeekdayEnglish(t *testing.T) {
	got, err := ParseWeekday("Wednesday")
	require.NoError(t, err)
	assert.Equal(t, Wednesday, got)
}

func TestParseWeekdayUnknown(t *testing.T) {
	_, err := ParseWeekday("feriado")
	assert.Error(t, err)

	_, err = ParseWeekday("")
	assert.Error(t, err)
}

func TestCanonicalDayName(t *testing.T) {
	assert.Equal(t, "miercoles", CanonicalDayName("  Miércoles "))
	assert.Equal(t, "sabado", CanonicalDayName("SÁBADO"))
	assert.Equal(t, "lunes", CanonicalDayName("lunes"))
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "miercoles", Wednesday.String())
	assert.Equal(t, "domingo", Sunday.String())
}

func TestWeekdayFromTime(t *testing.T) {
	// 2025-06-02 is a Monday.
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		d := date.AddDate(0, 0, i)
		assert.Equal(t, Weekday(i), WeekdayFromTime(d.Weekday()), "offset %d", i)
	}
}
