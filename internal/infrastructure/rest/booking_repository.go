package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/campusrooms/booking-client/internal/core/domain"
	"github.com/campusrooms/booking-client/internal/core/ports"
)

// BookingRepository talks to the reservation backend's booking endpoints.
type BookingRepository struct {
	client *Client
}

func NewBookingRepository(client *Client) *BookingRepository {
	return &BookingRepository{client: client}
}

// listEnvelope tolerates both a bare array and a wrapped collection.
type listEnvelope struct {
	docs []bookingDoc
}

func (e *listEnvelope) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &e.docs)
	}
	var wrapper struct {
		Bookings []bookingDoc `json:"bookings"`
		Data     []bookingDoc `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	if wrapper.Bookings != nil {
		e.docs = wrapper.Bookings
	} else {
		e.docs = wrapper.Data
	}
	return nil
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var envelope listEnvelope
	if err := r.client.do(ctx, "list", http.MethodGet, "/api/bookings_list", nil, &envelope, true); err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(envelope.docs))
	for _, d := range envelope.docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *BookingRepository) Create(ctx context.Context, req ports.BookingRequest) error {
	return r.client.do(ctx, "create", http.MethodPost, "/api/bookings", requestBody(req), nil, true)
}

func (r *BookingRepository) Update(ctx context.Context, id string, req ports.BookingRequest) error {
	path := "/api/bookings_list/update/" + url.PathEscape(id)
	return r.client.do(ctx, "update", http.MethodPut, path, requestBody(req), nil, true)
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	path := "/api/bookings_list/delete/" + url.PathEscape(id)
	return r.client.do(ctx, "delete", http.MethodDelete, path, nil, nil, true)
}

// Approve sends the admin status-update body the backend expects for
// approving a booking.
func (r *BookingRepository) Approve(ctx context.Context, id string) error {
	body := map[string]string{"status": string(domain.StatusApproved), "type": "booking"}
	path := "/api/admin_update/" + url.PathEscape(id)
	return r.client.do(ctx, "approve", http.MethodPut, path, body, nil, true)
}

func (r *BookingRepository) AdminDelete(ctx context.Context, id string) error {
	path := "/api/admin/booking/" + url.PathEscape(id)
	return r.client.do(ctx, "admin_delete", http.MethodDelete, path, nil, nil, true)
}

func requestBody(req ports.BookingRequest) bookingBody {
	return bookingBody{
		StartDatetime: req.StartsAt.Format(time.RFC3339),
		EndDatetime:   req.EndsAt.Format(time.RFC3339),
		DurationHours: req.DurationHours,
		RoomID:        req.RoomID,
	}
}
