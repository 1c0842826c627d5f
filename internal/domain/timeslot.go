package domain

import (
	"fmt"
	"time"
)

type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
)

// afternoon service starts at 15:00 local time
const afternoonStartHour = 15

func ParseTimeSlot(s string) (TimeSlot, error) {
	switch TimeSlot(s) {
	case SlotMorning, SlotAfternoon:
		return TimeSlot(s), nil
	default:
		return "", fmt.Errorf("invalid time slot %q", s)
	}
}

// SlotFromTime maps a wall-clock time to the service period it falls in.
func SlotFromTime(t time.Time) TimeSlot {
	if t.Hour() < afternoonStartHour {
		return SlotMorning
	}
	return SlotAfternoon
}

const dateLayout = "2006-01-02"

// ParseDate parses a calendar day and normalizes it to midnight UTC so
// reservation dates compare by equality.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
