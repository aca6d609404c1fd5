package duration

import (
	"strconv"
	"strings"
	"time"
)

// parseClock converts an "HH:MM" wall-clock string to minutes since midnight.
func parseClock(value string) (int, bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, false
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}

	return hours*60 + minutes, true
}

// ScheduledMinutes computes the planned duration of a shift from its
// template times. Shifts where end <= start are treated as crossing
// midnight. Malformed times degrade to 0 rather than failing the
// enclosing operation, and a break longer than the shift clamps to 0.
func ScheduledMinutes(startTime, endTime string, breakMinutes int) int {
	start, ok := parseClock(startTime)
	if !ok {
		return 0
	}

	end, ok := parseClock(endTime)
	if !ok {
		return 0
	}

	if end <= start {
		end += 24 * 60
	}

	if breakMinutes < 0 {
		breakMinutes = 0
	}

	minutes := end - start - breakMinutes
	if minutes < 0 {
		return 0
	}

	return minutes
}

// ActualMinutes computes worked minutes from attendance timestamps.
// Returns nil while either side is missing, 0 when checkout is not
// after check-in, and the truncated whole-minute difference otherwise.
func ActualMinutes(checkIn, checkOut *time.Time) *int {
	if checkIn == nil || checkOut == nil {
		return nil
	}

	minutes := 0
	if diff := checkOut.Sub(*checkIn); diff > 0 {
		minutes = int(diff / time.Minute)
	}

	return &minutes
}
