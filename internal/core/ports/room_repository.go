package ports

import (
	"context"

	"github.com/campusrooms/booking-client/internal/core/domain"
)

// RoomRepository reads the room catalogue. Listing rooms requires no
// authentication.
type RoomRepository interface {
	List(ctx context.Context) ([]domain.Room, error)
}
