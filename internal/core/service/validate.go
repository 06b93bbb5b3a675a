package service

import (
	"fmt"
	"time"

	"github.com/campusrooms/booking-client/internal/core/domain"
)

// draftTimeLayout is the editable text form of a booking instant.
const draftTimeLayout = "2006-01-02 15:04"

// ParseDateTime parses a manually typed "YYYY-MM-DD HH:MM" instant in loc.
// Failures are reported as domain.ErrInvalidDate so they surface through the
// same taxonomy as the rest of the validation rules.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(draftTimeLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, domain.ErrInvalidDate)
	}
	return t, nil
}

// Validate gates submission of a composed range. It is a pure function of
// its inputs: validation failures short-circuit locally and never reach the
// network layer.
//
// Rules, checked in order:
//   - absent instant -> ErrMissingField
//   - start not strictly before end -> ErrRangeInverted, regardless of the
//     duration value
//   - absent duration -> ErrMissingField
func Validate(start, end time.Time, durationHours float64) error {
	if start.IsZero() || end.IsZero() {
		return domain.ErrMissingField
	}
	if !start.Before(end) {
		return domain.ErrRangeInverted
	}
	if durationHours <= 0 {
		return domain.ErrMissingField
	}
	return nil
}
