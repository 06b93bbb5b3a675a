package service

import (
	"testing"
	"time"

	"github.com/campusrooms/booking-client/internal/core/domain"
)

func TestTimeRangeBuilder_DraftAlwaysConsistent(t *testing.T) {
	b := NewTimeRangeBuilder(time.UTC)
	b.SetDate(RangeStart, 2024, time.September, 10)
	b.SetDate(RangeEnd, 2024, time.September, 10)
	if err := b.SetHour(RangeStart, 9); err != nil {
		t.Fatalf("set start hour: %v", err)
	}
	if err := b.SetMinute(RangeStart, 30); err != nil {
		t.Fatalf("set start minute: %v", err)
	}
	if err := b.SetHour(RangeEnd, 12); err != nil {
		t.Fatalf("set end hour: %v", err)
	}
	if err := b.SetMinute(RangeEnd, 0); err != nil {
		t.Fatalf("set end minute: %v", err)
	}

	d := b.Draft()
	wantStart := time.Date(2024, time.September, 10, 9, 30, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.September, 10, 12, 0, 0, 0, time.UTC)
	if !d.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", d.Start, wantStart)
	}
	if !d.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", d.End, wantEnd)
	}
	if d.DurationHours != 2.5 {
		t.Errorf("duration = %v, want 2.5", d.DurationHours)
	}

	// Changing any single part recomputes the whole triple.
	if err := b.SetHour(RangeEnd, 13); err != nil {
		t.Fatalf("set end hour: %v", err)
	}
	if got := b.Draft().DurationHours; got != 3.5 {
		t.Errorf("duration after hour change = %v, want 3.5", got)
	}
}

func TestTimeRangeBuilder_RejectsOutOfRangeParts(t *testing.T) {
	b := NewTimeRangeBuilder(time.UTC)
	if err := b.SetHour(RangeStart, 24); err == nil {
		t.Error("expected error for hour 24")
	}
	if err := b.SetMinute(RangeEnd, 60); err == nil {
		t.Error("expected error for minute 60")
	}
	if err := b.SetHour(RangeStart, -1); err == nil {
		t.Error("expected error for negative hour")
	}
}

// An end clock numerically earlier than the start clock must not wrap to the
// next day: the duration is derived strictly from the full instants.
func TestTimeRangeBuilder_NoWraparoundHeuristic(t *testing.T) {
	b := NewTimeRangeBuilder(time.UTC)
	b.SetDate(RangeStart, 2024, time.September, 10)
	b.SetDate(RangeEnd, 2024, time.September, 10)
	_ = b.SetHour(RangeStart, 14)
	_ = b.SetMinute(RangeStart, 0)
	_ = b.SetHour(RangeEnd, 13)
	_ = b.SetMinute(RangeEnd, 0)

	d := b.Draft()
	if d.DurationHours != -1.0 {
		t.Errorf("duration = %v, want -1.0 (no wrap to next day)", d.DurationHours)
	}
	if err := Validate(d.Start, d.End, d.DurationHours); err != domain.ErrRangeInverted {
		t.Errorf("Validate = %v, want ErrRangeInverted", err)
	}
}

func TestTimeRangeBuilder_CrossMidnightViaDates(t *testing.T) {
	b := NewTimeRangeBuilder(time.UTC)
	b.SetDate(RangeStart, 2024, time.September, 10)
	b.SetDate(RangeEnd, 2024, time.September, 11)
	_ = b.SetHour(RangeStart, 23)
	_ = b.SetMinute(RangeStart, 0)
	_ = b.SetHour(RangeEnd, 1)
	_ = b.SetMinute(RangeEnd, 30)

	if got := b.Draft().DurationHours; got != 2.5 {
		t.Errorf("duration = %v, want 2.5", got)
	}
}

func TestComputeDuration_OneDecimalRounding(t *testing.T) {
	start := time.Date(2024, time.September, 10, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		minutes int
		want    float64
	}{
		{60, 1.0},
		{90, 1.5},
		{100, 1.7}, // 1.666... rounds to 1.7
		{5, 0.1},
		{2, 0.0}, // 0.033... rounds down
	}
	for _, tc := range cases {
		end := start.Add(time.Duration(tc.minutes) * time.Minute)
		if got := ComputeDuration(start, end); got != tc.want {
			t.Errorf("ComputeDuration(+%dm) = %v, want %v", tc.minutes, got, tc.want)
		}
	}
}

func TestComputeDuration_NonNegativeForValidRanges(t *testing.T) {
	start := time.Date(2024, time.September, 10, 8, 0, 0, 0, time.UTC)
	for m := 1; m <= 48*60; m += 17 {
		end := start.Add(time.Duration(m) * time.Minute)
		if got := ComputeDuration(start, end); got < 0 {
			t.Fatalf("ComputeDuration(+%dm) = %v, want >= 0", m, got)
		}
	}
}

func TestTimeRangeBuilder_DefaultsFollowClock(t *testing.T) {
	b := NewTimeRangeBuilder(time.UTC)
	fixed := time.Date(2024, time.September, 10, 14, 45, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }
	b.seedDays()

	d := b.Draft()
	wantStart := time.Date(2024, time.September, 10, 9, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.September, 10, 11, 0, 0, 0, time.UTC)
	if !d.Start.Equal(wantStart) {
		t.Errorf("default start = %v, want %v", d.Start, wantStart)
	}
	if !d.End.Equal(wantEnd) {
		t.Errorf("default end = %v, want %v", d.End, wantEnd)
	}
	if d.DurationHours != 2.0 {
		t.Errorf("default duration = %v, want 2.0", d.DurationHours)
	}
}

func TestTimeRangeBuilder_QuickFill(t *testing.T) {
	b := NewTimeRangeBuilder(time.UTC)
	fixed := time.Date(2024, time.September, 10, 14, 45, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }

	b.QuickFill(RangeStart, 0)
	b.QuickFill(RangeEnd, 3)

	d := b.Draft()
	if !d.Start.Equal(fixed) {
		t.Errorf("start = %v, want %v", d.Start, fixed)
	}
	if !d.End.Equal(fixed.Add(3 * time.Hour)) {
		t.Errorf("end = %v, want %v", d.End, fixed.Add(3*time.Hour))
	}
	if d.DurationHours != 3.0 {
		t.Errorf("duration = %v, want 3.0", d.DurationHours)
	}
}

func TestTimeRangeBuilder_LoadExistingBooking(t *testing.T) {
	b := NewTimeRangeBuilder(time.UTC)
	b.Load(domain.Booking{
		RoomID:   "room-1",
		StartsAt: time.Date(2024, time.October, 2, 10, 15, 0, 0, time.UTC),
		EndsAt:   time.Date(2024, time.October, 2, 12, 45, 0, 0, time.UTC),
	})

	d := b.Draft()
	if d.RoomID != "room-1" {
		t.Errorf("room = %q, want room-1", d.RoomID)
	}
	if d.DurationHours != 2.5 {
		t.Errorf("duration = %v, want 2.5", d.DurationHours)
	}
}
