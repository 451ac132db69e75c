package booking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
)

// Daily operating window, in minutes since midnight.
const (
	OpeningMinutes = 7 * 60
	ClosingMinutes = 18 * 60
)

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	return h*60 + m, nil
}

// WithinBusinessHours reports whether t falls inside [07:00, 18:00].
func WithinBusinessHours(t string) bool {
	minutes, err := ParseClock(t)
	if err != nil {
		return false
	}

	return minutes >= OpeningMinutes && minutes <= ClosingMinutes
}

// ValidateWindow checks that start and end are inside the operating window and start < end.
func ValidateWindow(start, end string) error {
	startMinutes, err := ParseClock(start)
	if err != nil {
		return apperr.Validation("%s", err)
	}
	endMinutes, err := ParseClock(end)
	if err != nil {
		return apperr.Validation("%s", err)
	}

	if startMinutes < OpeningMinutes || startMinutes > ClosingMinutes ||
		endMinutes < OpeningMinutes || endMinutes > ClosingMinutes {
		return apperr.Validation("Booking times must be between 7:00 AM and 6:00 PM")
	}
	if endMinutes <= startMinutes {
		return apperr.Validation("End time must be after start time")
	}

	return nil
}
