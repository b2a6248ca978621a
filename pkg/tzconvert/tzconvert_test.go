package tzconvert

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"
)

func TestLocalHour(t *testing.T) {
	// 2024-01-15 15:30 UTC (winter) and 2024-07-15 15:30 UTC (summer).
	winter := time.Date(2024, 1, 15, 15, 30, 0, 0, time.UTC)
	summer := time.Date(2024, 7, 15, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		instant  time.Time
		timezone string
		want     int
	}{
		{"EST winter", winter, "America/New_York", 10},
		{"EDT summer", summer, "America/New_York", 11},
		{"PST winter", winter, "America/Los_Angeles", 7},
		{"PDT summer", summer, "America/Los_Angeles", 8},
		{"CET winter", winter, "Europe/Amsterdam", 16},
		{"CEST summer", summer, "Europe/Amsterdam", 17},
		{"IST half hour", winter, "Asia/Kolkata", 21},
		{"JST next day wrap", time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC), "Asia/Tokyo", 5},
		{"plain UTC", winter, "UTC", 15},
		{"offset label", winter, "UTC-4", 11},
		{"offset label with minutes", winter, "UTC+5:30", 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocalHour(tt.instant, tt.timezone)
			if err != nil {
				t.Fatalf("LocalHour(%v, %q) error = %v", tt.instant, tt.timezone, err)
			}
			if got != tt.want {
				t.Errorf("LocalHour(%v, %q) = %d, want %d", tt.instant, tt.timezone, got, tt.want)
			}
		})
	}
}

func TestLoadUnknown(t *testing.T) {
	for _, name := range []string{"", "Mars/Olympus_Mons", "UTC*3", "UTC+99", "UTC-+5", "UTC+5:+3", "Local"} {
		if _, err := Load(name); !errors.Is(err, ErrUnknownTimezone) {
			t.Errorf("Load(%q) error = %v, want ErrUnknownTimezone", name, err)
		}
	}
}

func TestParseUTCOffset(t *testing.T) {
	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"UTC", 0, true},
		{"UTC+0", 0, true},
		{"UTC-4", -4 * 3600, true},
		{"UTC+8", 8 * 3600, true},
		{"UTC+5:30", 5*3600 + 30*60, true},
		{"UTC-3:30", -(3*3600 + 30*60), true},
		{"UTC+14", 14 * 3600, true},
		{"UTC+15", 0, false},
		{"UTC4", 0, false},
		{"UTC-+5", 0, false},
		{"UTC+-5", 0, false},
		{"UTC+5:+3", 0, false},
		{"UTC+5:", 0, false},
		{"UTC+", 0, false},
		{"UTC+ 5", 0, false},
		{"America/New_York", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseUTCOffset(tt.name)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("parseUTCOffset(%q) = (%d, %v), want (%d, %v)", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMinuteOfDay(t *testing.T) {
	ts := time.Date(2024, 3, 1, 13, 45, 10, 0, time.UTC)
	if got := MinuteOfDay(ts); got != 13*60+45 {
		t.Errorf("MinuteOfDay() = %d, want %d", got, 13*60+45)
	}
}

func TestAtMinuteOfDay(t *testing.T) {
	ny, err := Load("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	base := time.Date(2024, 3, 1, 22, 10, 42, 500, ny)

	got, err := AtMinuteOfDay(base, 9*60+30)
	if err != nil {
		t.Fatalf("AtMinuteOfDay() error = %v", err)
	}
	want := time.Date(2024, 3, 1, 9, 30, 42, 500, ny)
	if !got.Equal(want) {
		t.Errorf("AtMinuteOfDay() = %v, want %v", got, want)
	}
	if got.Location() != ny {
		t.Errorf("AtMinuteOfDay() changed location to %v", got.Location())
	}

	for _, bad := range []int{-1, 1440, 5000} {
		if _, err := AtMinuteOfDay(base, bad); !errors.Is(err, ErrMinuteOutOfRange) {
			t.Errorf("AtMinuteOfDay(%d) error = %v, want ErrMinuteOutOfRange", bad, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	// Setting a minute then reading it back gives the same minute on an
	// ordinary (non-transition) day in any zone.
	for _, name := range []string{"UTC", "America/Los_Angeles", "Asia/Kolkata", "Australia/Sydney"} {
		loc, err := Load(name)
		if err != nil {
			t.Fatal(err)
		}
		base := time.Date(2024, 6, 12, 0, 0, 0, 0, loc)
		for minute := 0; minute < 1440; minute += 30 {
			at, err := AtMinuteOfDay(base, minute)
			if err != nil {
				t.Fatal(err)
			}
			if got := MinuteOfDay(at); got != minute {
				t.Errorf("%s: MinuteOfDay(AtMinuteOfDay(%d)) = %d", name, minute, got)
			}
		}
	}
}

func TestOffsetString(t *testing.T) {
	summer := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		timezone string
		want     string
	}{
		{"America/New_York", "UTC-4"},
		{"Asia/Kolkata", "UTC+5:30"},
		{"UTC", "UTC+0"},
		{"UTC-3:30", "UTC-3:30"},
	}
	for _, tt := range tests {
		got, err := OffsetString(summer, tt.timezone)
		if err != nil {
			t.Fatalf("OffsetString(%q) error = %v", tt.timezone, err)
		}
		if got != tt.want {
			t.Errorf("OffsetString(%q) = %q, want %q", tt.timezone, got, tt.want)
		}
	}
}

func TestFormatMinute(t *testing.T) {
	tests := []struct {
		minute   int
		is24Hour bool
		want     string
	}{
		{0, false, "12:00 AM"},
		{0, true, "00:00"},
		{9*60 + 30, false, "9:30 AM"},
		{9*60 + 30, true, "09:30"},
		{12 * 60, false, "12:00 PM"},
		{13*60 + 5, false, "1:05 PM"},
		{1439, false, "11:59 PM"},
		{1439, true, "23:59"},
	}
	for _, tt := range tests {
		if got := FormatMinute(tt.minute, tt.is24Hour); got != tt.want {
			t.Errorf("FormatMinute(%d, %v) = %q, want %q", tt.minute, tt.is24Hour, got, tt.want)
		}
	}
}
