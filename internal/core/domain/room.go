package domain

// RoomStatus marks whether a room can currently be booked.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomUnavailable RoomStatus = "unavailable"
)

// Room describes a bookable room. The client treats rooms as read-only
// reference data; only the backend mutates them.
type Room struct {
	ID         string     `json:"id"`
	Name       string     `json:"room_name"`
	Building   string     `json:"building"`
	Type       string     `json:"type"` // lab, classroom, meeting, ...
	Capacity   int        `json:"capacity"`
	Facilities []string   `json:"facilities"`
	Status     RoomStatus `json:"status"`
}

// Bookable reports whether a new booking may target this room.
func (r Room) Bookable() bool {
	return r.Status == RoomAvailable
}
