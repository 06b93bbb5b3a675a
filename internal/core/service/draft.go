package service

import (
	"fmt"
	"math"
	"time"

	"github.com/campusrooms/booking-client/internal/core/domain"
)

// Endpoint selects which side of the time range an edit targets.
type Endpoint int

const (
	RangeStart Endpoint = iota
	RangeEnd
)

// Draft is the canonical (start, end, duration) triple composed from the
// independently edited parts, plus the targeted room. It is recomputed as a
// whole on every change, so it can never hold a duration that disagrees with
// its interval.
type Draft struct {
	RoomID        string
	Start         time.Time
	End           time.Time
	DurationHours float64
}

// TimeRangeBuilder composes a booking time range from six independently
// chosen primitives: a calendar day, an hour and a minute for each endpoint.
// The zero hour/minute pickers of the booking form map directly onto SetHour
// and SetMinute; date pickers onto SetDate.
type TimeRangeBuilder struct {
	loc *time.Location
	now func() time.Time

	roomID      string
	startDay    time.Time
	startHour   int
	startMinute int
	endDay      time.Time
	endHour     int
	endMinute   int
}

// Default picker positions for a fresh draft: a two hour slot starting 09:00
// on the current day.
const (
	defaultStartHour = 9
	defaultEndHour   = 11
)

// NewTimeRangeBuilder returns a builder anchored in loc (nil means
// time.Local).
func NewTimeRangeBuilder(loc *time.Location) *TimeRangeBuilder {
	if loc == nil {
		loc = time.Local
	}
	b := &TimeRangeBuilder{
		loc:       loc,
		now:       time.Now,
		startHour: defaultStartHour,
		endHour:   defaultEndHour,
	}
	b.seedDays()
	return b
}

// seedDays anchors both endpoints on the clock's current day.
func (b *TimeRangeBuilder) seedDays() {
	today := midnight(b.now().In(b.loc))
	b.startDay = today
	b.endDay = today
}

// SetRoom records the room the draft targets.
func (b *TimeRangeBuilder) SetRoom(roomID string) {
	b.roomID = roomID
}

// SetDate replaces the calendar day of one endpoint. The time-of-day parts
// are left untouched.
func (b *TimeRangeBuilder) SetDate(ep Endpoint, year int, month time.Month, day int) {
	d := time.Date(year, month, day, 0, 0, 0, 0, b.loc)
	if ep == RangeStart {
		b.startDay = d
	} else {
		b.endDay = d
	}
}

// SetHour replaces the hour of one endpoint. Values outside 0-23 are
// rejected.
func (b *TimeRangeBuilder) SetHour(ep Endpoint, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("hour %d out of range: %w", hour, domain.ErrInvalidDate)
	}
	if ep == RangeStart {
		b.startHour = hour
	} else {
		b.endHour = hour
	}
	return nil
}

// SetMinute replaces the minute of one endpoint. Values outside 0-59 are
// rejected.
func (b *TimeRangeBuilder) SetMinute(ep Endpoint, minute int) error {
	if minute < 0 || minute > 59 {
		return fmt.Errorf("minute %d out of range: %w", minute, domain.ErrInvalidDate)
	}
	if ep == RangeStart {
		b.startMinute = minute
	} else {
		b.endMinute = minute
	}
	return nil
}

// QuickFill sets one endpoint to now plus offsetHours, a convenience
// shortcut for the booking form. Minutes are kept as picked by the clock,
// not snapped.
func (b *TimeRangeBuilder) QuickFill(ep Endpoint, offsetHours float64) {
	t := b.now().In(b.loc).Add(time.Duration(offsetHours * float64(time.Hour)))
	if ep == RangeStart {
		b.startDay = midnight(t)
		b.startHour = t.Hour()
		b.startMinute = t.Minute()
	} else {
		b.endDay = midnight(t)
		b.endHour = t.Hour()
		b.endMinute = t.Minute()
	}
}

// Load seeds the builder from an existing booking so its range can be
// edited.
func (b *TimeRangeBuilder) Load(bk domain.Booking) {
	start := bk.StartsAt.In(b.loc)
	end := bk.EndsAt.In(b.loc)
	b.roomID = bk.RoomID
	b.startDay = midnight(start)
	b.startHour = start.Hour()
	b.startMinute = start.Minute()
	b.endDay = midnight(end)
	b.endHour = end.Hour()
	b.endMinute = end.Minute()
}

// Draft recomposes both instants from their parts and derives the duration.
// The duration is always computed strictly from the two full date+time
// instants; an end clock earlier than the start clock does not wrap to the
// next day.
func (b *TimeRangeBuilder) Draft() Draft {
	start := b.compose(b.startDay, b.startHour, b.startMinute)
	end := b.compose(b.endDay, b.endHour, b.endMinute)
	return Draft{
		RoomID:        b.roomID,
		Start:         start,
		End:           end,
		DurationHours: ComputeDuration(start, end),
	}
}

func (b *TimeRangeBuilder) compose(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, b.loc)
}

// ComputeDuration returns the length of the interval in hours, rounded to
// one decimal place. Inverted ranges yield a non-positive value and are left
// for the validator to reject.
func ComputeDuration(start, end time.Time) float64 {
	return math.Round(end.Sub(start).Hours()*10) / 10
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
