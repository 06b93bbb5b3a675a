package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/campusrooms/booking-client/internal/core/domain"
)

// RoomRepository fetches the room catalogue. The endpoint is public, so no
// bearer token is attached.
type RoomRepository struct {
	client *Client
}

func NewRoomRepository(client *Client) *RoomRepository {
	return &RoomRepository{client: client}
}

type roomListEnvelope struct {
	docs []roomDoc
}

func (e *roomListEnvelope) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &e.docs)
	}
	var wrapper struct {
		Rooms []roomDoc `json:"rooms"`
		Data  []roomDoc `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	if wrapper.Rooms != nil {
		e.docs = wrapper.Rooms
	} else {
		e.docs = wrapper.Data
	}
	return nil
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var envelope roomListEnvelope
	if err := r.client.do(ctx, "rooms", http.MethodGet, "/api/rooms", nil, &envelope, false); err != nil {
		return nil, err
	}
	out := make([]domain.Room, 0, len(envelope.docs))
	for _, d := range envelope.docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
