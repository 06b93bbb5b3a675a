package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
)

// editableStatuses lists the states in which the owner may still change the
// reserved time range.
var editableStatuses = map[BookingStatus]bool{
	StatusPending:   true,
	StatusConfirmed: true,
}

// Editable reports whether the owner may modify the booking's time fields.
func (s BookingStatus) Editable() bool {
	return editableStatuses[s]
}

// Approvable reports whether an administrator may approve the booking.
// Only pending bookings can transition to approved.
func (s BookingStatus) Approvable() bool {
	return s == StatusPending
}

// Booking is a reservation of a room for an interval, owned by a user and
// progressing through an approval-oriented status lifecycle. Transient UI
// state (in-flight action markers) is deliberately not part of this type;
// the list controller keeps it in a separate map keyed by booking ID.
type Booking struct {
	ID            string        `json:"id"`
	RoomID        string        `json:"room_id,omitempty"`
	RoomName      string        `json:"room_name"`
	OwnerID       string        `json:"user_id"`
	OwnerName     string        `json:"fullname,omitempty"`
	StartsAt      time.Time     `json:"start_datetime"`
	EndsAt        time.Time     `json:"end_datetime"`
	DurationHours float64       `json:"duration_hours"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at,omitempty"`
}
