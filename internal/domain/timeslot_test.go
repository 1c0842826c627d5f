package domain

import (
	"testing"
	"time"
)

func TestParseTimeSlot(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeSlot
		wantErr bool
	}{
		{input: "morning", want: SlotMorning},
		{input: "afternoon", want: SlotAfternoon},
		{input: "evening", wantErr: true},
		{input: "Morning", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseTimeSlot(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeSlot(%q) expected error, got %q", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeSlot(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeSlot(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSlotFromTime(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         TimeSlot
	}{
		{0, 0, SlotMorning},
		{11, 30, SlotMorning},
		{14, 59, SlotMorning},
		{15, 0, SlotAfternoon},
		{18, 45, SlotAfternoon},
		{23, 59, SlotAfternoon},
	}

	for _, tc := range tests {
		at := time.Date(2024, 5, 20, tc.hour, tc.minute, 0, 0, time.UTC)
		if got := SlotFromTime(at); got != tc.want {
			t.Errorf("SlotFromTime(%02d:%02d) = %q, want %q", tc.hour, tc.minute, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-05-20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}
	if FormatDate(got) != "2024-05-20" {
		t.Errorf("FormatDate round trip = %q", FormatDate(got))
	}

	for _, bad := range []string{"20-05-2024", "2024/05/20", "2024-13-01", "today", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}
