package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/campusrooms/booking-client/internal/core/domain"
)

// The backend is not consistent about scalar shapes: ids arrive as strings or
// numbers depending on the endpoint, and timestamps arrive either as plain
// ISO-8601 strings or as Mongo extended JSON ({"$date": ...}). The flex types
// absorb those differences at the decode boundary so the rest of the client
// only sees canonical values.

// flexID decodes a JSON string, number, or null into a string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// flexTime decodes an ISO-8601 string, a "2006-01-02 15:04:05" string, or a
// {"$date": <string|epoch-millis>} object.
type flexTime struct {
	time.Time
}

func (ft *flexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		ft.Time = time.Time{}
		return nil
	}

	if data[0] == '{' {
		var wrapper struct {
			Date json.RawMessage `json:"$date"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return err
		}
		if wrapper.Date == nil {
			return fmt.Errorf("timestamp object without $date")
		}
		return ft.UnmarshalJSON(wrapper.Date)
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04"} {
			if t, err := time.Parse(layout, s); err == nil {
				ft.Time = t
				return nil
			}
		}
		return fmt.Errorf("unrecognized timestamp %q", s)
	}

	// Bare number: epoch milliseconds.
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return err
	}
	ft.Time = time.UnixMilli(ms).UTC()
	return nil
}

// bookingDoc is the booking as the backend renders it. The primary key may
// appear as "_id" or "id".
type bookingDoc struct {
	ID       flexID   `json:"_id"`
	AltID    flexID   `json:"id"`
	RoomID   flexID   `json:"room_id"`
	RoomName string   `json:"room_name"`
	UserID   flexID   `json:"user_id"`
	FullName string   `json:"fullname"`
	Start    flexTime `json:"start_datetime"`
	End      flexTime `json:"end_datetime"`
	Duration float64  `json:"duration_hours"`
	Status   string   `json:"status"`
	Created  flexTime `json:"created_at"`
}

func (d bookingDoc) toDomain() domain.Booking {
	id := string(d.ID)
	if id == "" {
		id = string(d.AltID)
	}
	status := domain.BookingStatus(d.Status)
	if status == "" {
		status = domain.StatusPending
	}
	return domain.Booking{
		ID:            id,
		RoomID:        string(d.RoomID),
		RoomName:      d.RoomName,
		OwnerID:       string(d.UserID),
		OwnerName:     d.FullName,
		StartsAt:      d.Start.Time,
		EndsAt:        d.End.Time,
		DurationHours: d.Duration,
		Status:        status,
		CreatedAt:     d.Created.Time,
	}
}

// bookingBody is the JSON submitted on create and update.
type bookingBody struct {
	StartDatetime string  `json:"start_datetime"`
	EndDatetime   string  `json:"end_datetime"`
	DurationHours float64 `json:"duration_hours"`
	RoomID        string  `json:"room_id,omitempty"`
}

type roomDoc struct {
	ID         flexID   `json:"_id"`
	AltID      flexID   `json:"id"`
	RoomName   string   `json:"room_name"`
	Building   string   `json:"building"`
	Type       string   `json:"type"`
	Capacity   int      `json:"capacity"`
	Facilities []string `json:"facilities"`
	Status     string   `json:"status"`
}

func (d roomDoc) toDomain() domain.Room {
	id := string(d.ID)
	if id == "" {
		id = string(d.AltID)
	}
	return domain.Room{
		ID:         id,
		Name:       d.RoomName,
		Building:   d.Building,
		Type:       d.Type,
		Capacity:   d.Capacity,
		Facilities: d.Facilities,
		Status:     domain.RoomStatus(d.Status),
	}
}
