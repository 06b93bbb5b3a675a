// Package devserver is a runnable in-memory stand-in for the reservation
// backend. It implements the same HTTP surface the client talks to, enough
// for local development and for integration-testing the REST adapters. It is
// a test double: nothing survives a restart.
package devserver

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusrooms/booking-client/internal/core/domain"
)

var (
	errUserExists         = errors.New("username already taken")
	errInvalidCredentials = errors.New("invalid username or password")
	errUserNotFound       = errors.New("user not found")
	errBookingNotFound    = errors.New("booking not found")
	errNotOwner           = errors.New("booking belongs to another user")
	errNotEditable        = errors.New("booking can no longer be modified")
)

type user struct {
	ID           string
	Username     string
	PasswordHash []byte
	FullName     string
	Email        string
	Role         string
}

type booking struct {
	ID        string
	RoomID    string
	RoomName  string
	OwnerID   string
	OwnerName string
	StartsAt  time.Time
	EndsAt    time.Time
	Duration  float64
	Status    domain.BookingStatus
	CreatedAt time.Time
}

// store holds all devserver state behind one mutex. Volume is tiny, so a
// single lock is plenty.
type store struct {
	mu       sync.Mutex
	users    map[string]*user // keyed by username
	bookings map[string]*booking
	rooms    []domain.Room
}

func newStore() *store {
	return &store{
		users:    make(map[string]*user),
		bookings: make(map[string]*booking),
		rooms:    seedRooms(),
	}
}

func seedRooms() []domain.Room {
	return []domain.Room{
		{ID: "room-4311", Name: "4311", Building: "IT Building", Type: "lab", Capacity: 30,
			Facilities: []string{"projector", "whiteboard"}, Status: domain.RoomAvailable},
		{ID: "room-7204", Name: "7204", Building: "Engineering", Type: "classroom", Capacity: 60,
			Facilities: []string{"projector"}, Status: domain.RoomAvailable},
		{ID: "room-1101", Name: "1101", Building: "Library", Type: "meeting", Capacity: 8,
			Facilities: []string{"screen", "conference phone"}, Status: domain.RoomUnavailable},
	}
}

func (s *store) createUser(username, password, fullName, email, role string) (*user, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return nil, errUserExists
	}
	u := &user{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Email:        email,
		Role:         role,
	}
	s.users[username] = u
	return u, nil
}

func (s *store) authenticate(username, password string) (*user, error) {
	s.mu.Lock()
	u, ok := s.users[username]
	s.mu.Unlock()

	if !ok {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return u, nil
}

func (s *store) userByID(id string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errUserNotFound
}

func (s *store) listRooms() []domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Room, len(s.rooms))
	copy(out, s.rooms)
	return out
}

func (s *store) createBooking(owner *user, roomID string, start, end time.Time, duration float64) *booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	roomName := roomID
	for _, r := range s.rooms {
		if r.ID == roomID {
			roomName = r.Name
			break
		}
	}

	b := &booking{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		RoomName:  roomName,
		OwnerID:   owner.ID,
		OwnerName: owner.FullName,
		StartsAt:  start,
		EndsAt:    end,
		Duration:  duration,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	s.bookings[b.ID] = b
	return b
}

// listBookings returns every booking ordered by creation time. The server
// never narrows by owner; that mirrors the real backend, where filtering is
// the client's concern.
func (s *store) listBookings() []*booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		clone := *b
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *store) updateBooking(id, requesterID string, start, end time.Time, duration float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return errBookingNotFound
	}
	if b.OwnerID != requesterID {
		return errNotOwner
	}
	if !b.Status.Editable() {
		return errNotEditable
	}
	b.StartsAt = start
	b.EndsAt = end
	b.Duration = duration
	return nil
}

func (s *store) deleteBooking(id, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return errBookingNotFound
	}
	if b.OwnerID != requesterID {
		return errNotOwner
	}
	delete(s.bookings, id)
	return nil
}

func (s *store) setBookingStatus(id string, status domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return errBookingNotFound
	}
	b.Status = status
	return nil
}

func (s *store) adminDeleteBooking(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return errBookingNotFound
	}
	delete(s.bookings, id)
	return nil
}
