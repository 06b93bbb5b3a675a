package devserver_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusrooms/booking-client/internal/core/domain"
	"github.com/campusrooms/booking-client/internal/core/ports"
	"github.com/campusrooms/booking-client/internal/core/service"
	"github.com/campusrooms/booking-client/internal/devserver"
	"github.com/campusrooms/booking-client/internal/infrastructure/rest"
	"github.com/campusrooms/booking-client/internal/infrastructure/session"
)

var log = zerolog.Nop()

// client bundles everything one logged-in user needs to drive the API.
type client struct {
	store      *session.Memory
	auth       *rest.AuthClient
	rooms      *rest.RoomRepository
	controller *service.BookingListController
}

func newUserClient(t *testing.T, baseURL string) *client {
	t.Helper()
	store := session.NewMemory()
	httpClient, err := rest.NewClient(baseURL, 5*time.Second, store, log)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	repo := rest.NewBookingRepository(httpClient)
	resolver := service.NewIdentityResolver(store, log)
	return &client{
		store:      store,
		auth:       rest.NewAuthClient(httpClient, store, log),
		rooms:      rest.NewRoomRepository(httpClient),
		controller: service.NewBookingListController(repo, resolver, store, log),
	}
}

func register(t *testing.T, c *client, username, fullName, role string) {
	t.Helper()
	err := c.auth.Register(context.Background(), ports.RegisterInput{
		Username: username,
		Password: "pass1234",
		FullName: fullName,
		Email:    username + "@example.edu",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
}

func login(t *testing.T, c *client, username string) {
	t.Helper()
	if err := c.auth.Login(context.Background(), username, "pass1234"); err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	if err := c.controller.Activate(context.Background()); err != nil {
		t.Fatalf("activate %s: %v", username, err)
	}
}

func TestBookingLifecycleEndToEnd(t *testing.T) {
	srv := httptest.NewServer(devserver.New(devserver.Options{
		JWTSecret: "integration-secret",
		TokenTTL:  time.Hour,
		Log:       log,
	}).Handler())
	defer srv.Close()
	ctx := context.Background()

	student := newUserClient(t, srv.URL)
	admin := newUserClient(t, srv.URL)
	register(t, student, "alice", "Alice Lee", "student")
	register(t, admin, "root", "Site Admin", "admin")

	// Rooms are public: no login required.
	rooms, err := student.rooms.List(ctx)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if len(rooms) == 0 {
		t.Fatal("expected seeded rooms")
	}

	login(t, student, "alice")
	login(t, admin, "root")

	// Student profile round-trips through the authenticated endpoint.
	profile, err := student.auth.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Username != "alice" || profile.Role != "student" {
		t.Fatalf("profile = %+v", profile)
	}

	// Student creates a booking; the refreshed list shows it as pending.
	start := time.Now().UTC().Truncate(time.Minute).Add(24 * time.Hour)
	draft := service.Draft{RoomID: rooms[0].ID, Start: start, End: start.Add(2 * time.Hour)}
	if err := student.controller.Create(ctx, draft); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	phase, rows := student.controller.Snapshot()
	if phase != service.PhaseReady || len(rows) != 1 {
		t.Fatalf("after create: phase=%v rows=%d", phase, len(rows))
	}
	b := rows[0].Booking
	if b.Status != domain.StatusPending || b.OwnerName != "Alice Lee" || b.DurationHours != 2.0 {
		t.Fatalf("created booking = %+v", b)
	}

	// Student edits the pending booking.
	edit := service.Draft{RoomID: b.RoomID, Start: start, End: start.Add(90 * time.Minute)}
	if err := student.controller.SubmitEdit(ctx, b.ID, edit); err != nil {
		t.Fatalf("edit booking: %v", err)
	}
	_, rows = student.controller.Snapshot()
	if rows[0].Booking.DurationHours != 1.5 {
		t.Fatalf("duration after edit = %v", rows[0].Booking.DurationHours)
	}

	// Admin sees the student's booking and may approve it.
	if err := admin.controller.Refresh(ctx); err != nil {
		t.Fatalf("admin refresh: %v", err)
	}
	_, adminRows := admin.controller.Snapshot()
	if len(adminRows) != 1 {
		t.Fatalf("admin sees %d bookings, want 1", len(adminRows))
	}
	if err := admin.controller.Approve(ctx, b.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// The approved booking is no longer editable by its owner.
	if err := student.controller.Refresh(ctx); err != nil {
		t.Fatalf("student refresh: %v", err)
	}
	_, rows = student.controller.Snapshot()
	if rows[0].Booking.Status != domain.StatusApproved {
		t.Fatalf("status = %v, want approved", rows[0].Booking.Status)
	}
	if err := student.controller.SubmitEdit(ctx, b.ID, edit); !errors.Is(err, service.ErrActionUnavailable) {
		t.Fatalf("edit of approved booking = %v, want ErrActionUnavailable", err)
	}

	// The owner can still delete it.
	if err := student.controller.Delete(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, rows = student.controller.Snapshot()
	if len(rows) != 0 {
		t.Fatalf("rows after delete = %d, want 0", len(rows))
	}
}

func TestAdminRoutesAreRoleGated(t *testing.T) {
	srv := httptest.NewServer(devserver.New(devserver.Options{
		JWTSecret: "integration-secret",
		Log:       log,
	}).Handler())
	defer srv.Close()
	ctx := context.Background()

	student := newUserClient(t, srv.URL)
	register(t, student, "bob", "Bob Tan", "student")
	login(t, student, "bob")

	start := time.Now().UTC().Add(24 * time.Hour)
	if err := student.controller.Create(ctx, service.Draft{Start: start, End: start.Add(time.Hour)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, rows := student.controller.Snapshot()

	// The controller refuses admin actions locally; the backend would too.
	if err := student.controller.Approve(ctx, rows[0].Booking.ID); !errors.Is(err, service.ErrActionUnavailable) {
		t.Fatalf("student approve = %v, want ErrActionUnavailable", err)
	}
}

func TestTamperedTokenExpiresSession(t *testing.T) {
	srv := httptest.NewServer(devserver.New(devserver.Options{
		JWTSecret: "integration-secret",
		Log:       log,
	}).Handler())
	defer srv.Close()
	ctx := context.Background()

	c := newUserClient(t, srv.URL)
	register(t, c, "eve", "Eve Ng", "student")
	login(t, c, "eve")

	// Corrupt the cached token. The next refresh hits a 401 and must cascade
	// into a full local reset.
	sess, _ := c.store.Load(ctx)
	forged := sess
	forged.Token = forged.Token + "tampered"
	if err := c.store.Save(ctx, forged); err != nil {
		t.Fatal(err)
	}

	err := c.controller.Refresh(ctx)
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("refresh with tampered token = %v, want ErrSessionExpired", err)
	}
	phase, rows := c.controller.Snapshot()
	if phase != service.PhaseUnauthenticated || len(rows) != 0 {
		t.Fatalf("state after expiry: phase=%v rows=%d", phase, len(rows))
	}
	if stored, _ := c.store.Load(ctx); !stored.Empty() {
		t.Fatal("tampered credential still cached")
	}
}
