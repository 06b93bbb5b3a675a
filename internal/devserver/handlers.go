package devserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusrooms/booking-client/internal/core/domain"
)

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
	FullName string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty,oneof=student teacher admin"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type bookingRequest struct {
	StartDatetime string  `json:"start_datetime" validate:"required"`
	EndDatetime   string  `json:"end_datetime" validate:"required"`
	DurationHours float64 `json:"duration_hours" validate:"gt=0"`
	RoomID        string  `json:"room_id"`
}

type adminUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved confirmed cancelled rejected"`
	Type   string `json:"type" validate:"required,oneof=booking"`
}

// bookingView renders a booking the way the real backend does, with the
// Mongo-style "_id" key.
type bookingView struct {
	ID            string  `json:"_id"`
	RoomID        string  `json:"room_id"`
	RoomName      string  `json:"room_name"`
	UserID        string  `json:"user_id"`
	FullName      string  `json:"fullname"`
	StartDatetime string  `json:"start_datetime"`
	EndDatetime   string  `json:"end_datetime"`
	DurationHours float64 `json:"duration_hours"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}

func viewOf(b *booking) bookingView {
	return bookingView{
		ID:            b.ID,
		RoomID:        b.RoomID,
		RoomName:      b.RoomName,
		UserID:        b.OwnerID,
		FullName:      b.OwnerName,
		StartDatetime: b.StartsAt.Format(time.RFC3339),
		EndDatetime:   b.EndsAt.Format(time.RFC3339),
		DurationHours: b.Duration,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Role == "" {
		req.Role = domain.RoleStudent
	}

	u, err := s.store.createUser(req.Username, req.Password, req.FullName, req.Email, req.Role)
	if err != nil {
		return err
	}
	s.log.Info().Str("username", u.Username).Str("role", u.Role).Msg("user registered")
	return c.JSON(http.StatusCreated, map[string]string{"message": "account created"})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := s.store.authenticate(req.Username, req.Password)
	if err != nil {
		return err
	}
	token, err := issueToken(s.secret, u, s.tokenTTL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"accessToken": token})
}

func (s *Server) handleProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	u, err := s.store.userByID(userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"username": u.Username,
		"fullname": u.FullName,
		"email":    u.Email,
		"role":     u.Role,
	})
}

func (s *Server) handleRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"rooms": s.store.listRooms()})
}

func (s *Server) handleListBookings(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}
	list := s.store.listBookings()
	views := make([]bookingView, 0, len(list))
	for _, b := range list {
		views = append(views, viewOf(b))
	}
	return c.JSON(http.StatusOK, map[string]any{"bookings": views})
}

func (s *Server) handleCreateBooking(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	start, end, req, err := bindBookingRequest(c)
	if err != nil {
		return err
	}

	u, err := s.store.userByID(userID)
	if err != nil {
		return err
	}
	b := s.store.createBooking(u, req.RoomID, start, end, req.DurationHours)
	s.log.Info().Str("booking_id", b.ID).Str("user", u.Username).Msg("booking created")
	return c.JSON(http.StatusCreated, viewOf(b))
}

func (s *Server) handleUpdateBooking(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	start, end, req, err := bindBookingRequest(c)
	if err != nil {
		return err
	}
	if err := s.store.updateBooking(c.Param("id"), userID, start, end, req.DurationHours); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "booking updated"})
}

func (s *Server) handleDeleteBooking(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	if err := s.store.deleteBooking(c.Param("id"), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "booking deleted"})
}

func (s *Server) handleAdminUpdate(c echo.Context) error {
	var req adminUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := s.store.setBookingStatus(c.Param("id"), domain.BookingStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "status updated"})
}

func (s *Server) handleAdminDelete(c echo.Context) error {
	if err := s.store.adminDeleteBooking(c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "booking deleted"})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// bindBookingRequest decodes and validates the shared create/update body,
// returning the parsed interval.
func bindBookingRequest(c echo.Context) (start, end time.Time, req bookingRequest, err error) {
	if err = c.Bind(&req); err != nil {
		return start, end, req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return start, end, req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	start, err = time.Parse(time.RFC3339, req.StartDatetime)
	if err != nil {
		return start, end, req, echo.NewHTTPError(http.StatusBadRequest, "start_datetime must be ISO-8601")
	}
	end, err = time.Parse(time.RFC3339, req.EndDatetime)
	if err != nil {
		return start, end, req, echo.NewHTTPError(http.StatusBadRequest, "end_datetime must be ISO-8601")
	}
	if !start.Before(end) {
		return start, end, req, echo.NewHTTPError(http.StatusBadRequest, "start_datetime must be before end_datetime")
	}
	return start, end, req, nil
}
