package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:20")
	require.NoError(t, err)
	assert.Equal(t, "09:20", ts.String())

	for _, raw := range []string{"", "24:00", "09:60", "0920", "ab:cd"} {
		_, err := NewTimeStringFromString(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("11:40")

	end, err := ts.AddMinutes(40)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:20"), end)

	prev, err := ts.AddMinutes(-20)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:20"), prev)

	// Past midnight is not representable.
	_, err = TimeString("23:50").AddMinutes(20)
	assert.Error(t, err)
}

func TestTimeStringComparisons(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("09:20")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.True(t, a.Equal(TimeString("09:00")))
	assert.False(t, a.Equal(b))
}

func TestTimeStringMinuteOfHour(t *testing.T) {
	m, err := TimeString("11:40").MinuteOfHour()
	require.NoError(t, err)
	assert.Equal(t, 40, m)
}

func TestTimeStringAt(t *testing.T) {
	loc, err := time.LoadLocation("America/Montevideo")
	require.NoError(t, err)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, loc)
	instant, err := TimeString("09:20").At(date, loc)
	require.NoError(t, err)

	assert.Equal(t, 9, instant.Hour())
	assert.Equal(t, 20, instant.Minute())
	assert.Equal(t, loc, instant.Location())
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(700)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:40"), ts)

	_, err = NewTimeStringFromMinutes(1440)
	assert.Error(t, err)
}
