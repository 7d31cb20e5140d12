package timezone_test

import (
	"pms/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{
			name:  "utc afternoon",
			input: time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC),
			want:  time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "local date is kept for non utc instants",
			input: time.Date(2024, 3, 11, 1, 0, 0, 0, jakarta),
			want:  time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(timezone.DateOnly(tt.input)))
		})
	}
}

func TestParseDate(t *testing.T) {
	date, err := timezone.ParseDate("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", timezone.FormatDate(date))

	_, err = timezone.ParseDate("10/03/2024")
	assert.Error(t, err)

	_, err = timezone.ParseDate("2024-02-30")
	assert.Error(t, err)
}

func TestParseAsOf(t *testing.T) {
	instant, err := timezone.ParseAsOf("2024-03-12T10:00:00Z")
	require.NoError(t, err)
	assert.True(t, instant.Equal(time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)))

	date, err := timezone.ParseAsOf("2024-03-12")
	require.NoError(t, err)
	assert.Equal(t, 0, date.Hour())
	assert.Equal(t, "2024-03-12", timezone.FormatDate(date))

	now, err := timezone.ParseAsOf("")
	require.NoError(t, err)
	assert.False(t, now.IsZero())

	_, err = timezone.ParseAsOf("yesterday")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	checkIn := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, timezone.DaysBetween(checkIn, checkOut))
	assert.Equal(t, 0, timezone.DaysBetween(checkIn, checkIn))
}
