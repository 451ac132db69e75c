package booking_test

import (
	"testing"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	m, err := booking.ParseClock("07:00")
	require.NoError(t, err)
	assert.Equal(t, 420, m)

	m, err = booking.ParseClock("18:00")
	require.NoError(t, err)
	assert.Equal(t, 1080, m)

	for _, bad := range []string{"", "7", "25:00", "10:60", "aa:bb", "10:5"} {
		_, err := booking.ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidateWindow(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		ok         bool
	}{
		{"last half hour", "17:30", "18:00", true},
		{"whole day", "07:00", "18:00", true},
		{"start after closing", "18:30", "19:00", false},
		{"end after closing", "17:00", "18:30", false},
		{"start before opening", "06:30", "08:00", false},
		{"end before start", "10:00", "09:00", false},
		{"empty window", "10:00", "10:00", false},
		{"garbage", "ten", "11:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := booking.ValidateWindow(tc.start, tc.end)
			if tc.ok {
				assert.NoError(t, err)

				return
			}
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestWithinBusinessHours(t *testing.T) {
	assert.True(t, booking.WithinBusinessHours("07:00"))
	assert.True(t, booking.WithinBusinessHours("18:00"))
	assert.False(t, booking.WithinBusinessHours("06:59"))
	assert.False(t, booking.WithinBusinessHours("18:01"))
	assert.False(t, booking.WithinBusinessHours(""))
}
