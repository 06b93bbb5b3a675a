package service

import (
	"errors"
	"testing"
	"time"

	"github.com/campusrooms/booking-client/internal/core/domain"
)

func TestValidate(t *testing.T) {
	start := time.Date(2024, time.September, 10, 14, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.September, 10, 16, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		duration float64
		want     error
	}{
		{"valid", start, end, 2.0, nil},
		{"missing start", time.Time{}, end, 2.0, domain.ErrMissingField},
		{"missing end", start, time.Time{}, 2.0, domain.ErrMissingField},
		{"missing duration", start, end, 0, domain.ErrMissingField},
		{"inverted", end, start, 2.0, domain.ErrRangeInverted},
		{"equal instants", start, start, 2.0, domain.ErrRangeInverted},
		// Inversion wins over the duration value.
		{"inverted with negative duration", end, start, -2.0, domain.ErrRangeInverted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.start, tc.end, tc.duration)
			if !errors.Is(got, tc.want) && got != tc.want {
				t.Errorf("Validate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2024-09-10 14:30", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, time.September, 10, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parsed %v, want %v", got, want)
	}
}

func TestParseDateTime_Invalid(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2024-13-40 99:99", "2024-09-10T14:30"} {
		if _, err := ParseDateTime(s, time.UTC); !errors.Is(err, domain.ErrInvalidDate) {
			t.Errorf("ParseDateTime(%q) = %v, want ErrInvalidDate", s, err)
		}
	}
}
