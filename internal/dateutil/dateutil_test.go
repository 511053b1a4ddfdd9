package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15", time.UTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("", time.UTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now().In(time.UTC))
		if !got.Equal(today) {
			t.Errorf("got %v, want %v", got, today)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025", time.UTC)
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 1440, false},
		{"9:30", 0, true},
		{"25:00", 0, true},
		{"ab:cd", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeFormat) {
					t.Errorf("got error %v, want %v", err, ErrInvalidTimeFormat)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	got, err := ParseWeekday(" Sunday ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != time.Sunday {
		t.Errorf("got %v, want Sunday", got)
	}

	_, err = ParseWeekday("funday")
	if !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("got error %v, want %v", err, ErrInvalidWeekday)
	}
}

func TestStartOfWeek(t *testing.T) {
	wed := time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		t         time.Time
		weekStart time.Weekday
		want      time.Time
	}{
		{"monday start", wed, time.Monday, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"sunday start", wed, time.Sunday, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)},
		{"on the start day", time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC), time.Monday, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"sunday with monday start", time.Date(2025, 1, 19, 8, 0, 0, 0, time.UTC), time.Monday, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"saturday start", wed, time.Saturday, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.t, tt.weekStart)
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthGridStart(t *testing.T) {
	// February 2025 starts on a Saturday.
	got := MonthGridStart(time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC), time.Monday)
	want := time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDayBoundaries(t *testing.T) {
	t.Run("consecutive midnights", func(t *testing.T) {
		first := time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)
		b := DayBoundaries(first, 7)
		if len(b) != 8 {
			t.Fatalf("got %d boundaries, want 8", len(b))
		}
		for i, bound := range b {
			want := time.Date(2025, 1, 13+i, 0, 0, 0, 0, time.UTC)
			if !bound.Equal(want) {
				t.Errorf("boundary %d: got %v, want %v", i, bound, want)
			}
		}
	})

	t.Run("daylight saving day is shorter", func(t *testing.T) {
		loc, err := time.LoadLocation("Europe/Madrid")
		if err != nil {
			t.Skipf("timezone data unavailable: %v", err)
		}
		b := DayBoundaries(time.Date(2025, 3, 30, 0, 0, 0, 0, loc), 1)
		if got := b[1].Sub(b[0]); got != 23*time.Hour {
			t.Errorf("got %v, want 23h", got)
		}
	})

	t.Run("no days", func(t *testing.T) {
		if b := DayBoundaries(time.Now(), 0); b != nil {
			t.Errorf("got %v, want nil", b)
		}
	})
}

func TestAt(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	got := At(day, 9*60+45)
	want := time.Date(2025, 1, 15, 9, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if end := At(day, 24*60); !end.Equal(day.AddDate(0, 0, 1)) {
		t.Errorf("end of day: got %v, want next midnight", end)
	}
}

func TestParseRelativeDate(t *testing.T) {
	// Wednesday.
	now := time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)
	today := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"", today},
		{"Today", today},
		{"tomorrow", today.AddDate(0, 0, 1)},
		{"yesterday", today.AddDate(0, 0, -1)},
		{"next-week", today.AddDate(0, 0, 7)},
		{"last-week", today.AddDate(0, 0, -7)},
		{"next-month", time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)},
		{"last-month", time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)},
		{"friday", time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC)},
		{"2024-12-01", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.in, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseRelativeDate("someday", now)
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}
