package ports

import (
	"context"
	"time"

	"github.com/campusrooms/booking-client/internal/core/domain"
)

// BookingRequest carries the fields submitted when creating or updating a
// booking. DurationHours is always derived from the interval before
// submission; the backend expects both and they must agree.
type BookingRequest struct {
	StartsAt      time.Time
	EndsAt        time.Time
	DurationHours float64
	RoomID        string
}

// BookingRepository is the CRUD boundary against the remote booking API.
// Every method may return domain.ErrSessionExpired when the backend rejects
// the bearer token; callers must treat that as a signal to reset all local
// session state, never as a retryable condition.
type BookingRepository interface {
	// List fetches the full booking collection. The server does not narrow
	// the result by owner; role-based filtering is the controller's job.
	List(ctx context.Context) ([]domain.Booking, error)
	Create(ctx context.Context, req BookingRequest) error
	Update(ctx context.Context, id string, req BookingRequest) error
	Delete(ctx context.Context, id string) error
	// Approve transitions a pending booking to approved. Admin only.
	Approve(ctx context.Context, id string) error
	// AdminDelete removes any user's booking. Admin only.
	AdminDelete(ctx context.Context, id string) error
}
