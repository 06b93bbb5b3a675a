package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campusrooms/booking-client/internal/core/domain"
	"github.com/campusrooms/booking-client/internal/core/ports"
)

// Phase is the controller's externally visible state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseUnauthenticated
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Action is a per-row mutating operation. The value doubles as the transient
// in-flight marker shown by the UI while the request is outstanding.
type Action string

const (
	ActionEdit        Action = "editing"
	ActionDelete      Action = "deleting"
	ActionApprove     Action = "approving"
	ActionAdminDelete Action = "admin_deleting"
)

var (
	// ErrRowBusy is returned when an action targets a row whose previous
	// action has not completed. The in-flight marker is the re-entrancy
	// guard: at most one outstanding request per row.
	ErrRowBusy = errors.New("another action is in flight for this booking")
	// ErrActionUnavailable is returned when role or status gating does not
	// offer the requested action for the row.
	ErrActionUnavailable = errors.New("action not available for this booking")
)

// Row pairs a booking with its transient in-flight marker for rendering.
type Row struct {
	Booking  domain.Booking
	InFlight Action
}

// BookingListController owns the booking collection visible to the UI and
// sequences every mutation against it. All state changes funnel through this
// type; after each successful mutation the list is re-derived from the
// server rather than patched locally, so the client's view cannot drift from
// server-side side effects.
type BookingListController struct {
	repo     ports.BookingRepository
	resolver *IdentityResolver
	store    ports.SessionStore
	log      zerolog.Logger

	mu       sync.Mutex
	phase    Phase
	identity domain.Identity
	bookings []domain.Booking
	inflight map[string]Action
	lastErr  error
}

func NewBookingListController(
	repo ports.BookingRepository,
	resolver *IdentityResolver,
	store ports.SessionStore,
	log zerolog.Logger,
) *BookingListController {
	return &BookingListController{
		repo:     repo,
		resolver: resolver,
		store:    store,
		log:      log,
		phase:    PhaseIdle,
		inflight: make(map[string]Action),
	}
}

// Activate resolves identity and loads the booking list. Called when the
// booking screen gains focus. An unauthenticated result clears any stale
// booking state so the UI shows the login prompt instead of old data.
func (c *BookingListController) Activate(ctx context.Context) error {
	ident, err := c.resolver.Resolve(ctx)
	if err != nil {
		c.mu.Lock()
		c.resetLocked()
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.identity = ident
	c.phase = PhaseLoading
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh re-fetches the collection and re-applies role-based filtering.
// Admins see every booking; everyone else only their own. A fetch failure
// clears the collection: stale data is never shown.
func (c *BookingListController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.identity.UserID == "" {
		c.mu.Unlock()
		return domain.ErrUnauthenticated
	}
	ident := c.identity
	c.mu.Unlock()

	list, err := c.repo.List(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			c.expire(ctx)
			return err
		}
		c.mu.Lock()
		c.bookings = nil
		c.phase = PhaseError
		c.lastErr = err
		c.mu.Unlock()
		c.log.Error().Err(err).Msg("booking list fetch failed")
		return err
	}

	if !ident.IsAdmin() {
		filtered := list[:0]
		for _, b := range list {
			if ident.Owns(b) {
				filtered = append(filtered, b)
			}
		}
		list = filtered
	}

	c.mu.Lock()
	c.bookings = list
	c.phase = PhaseReady
	c.lastErr = nil
	c.mu.Unlock()
	return nil
}

// SubmitEdit validates the edited draft and updates the booking's time
// range. Validation failures short-circuit before any network call. The
// submitted duration is recomputed from the interval, never trusted from the
// draft, so the two cannot disagree.
func (c *BookingListController) SubmitEdit(ctx context.Context, id string, draft Draft) error {
	duration := ComputeDuration(draft.Start, draft.End)
	if err := Validate(draft.Start, draft.End, duration); err != nil {
		return err
	}
	req := ports.BookingRequest{
		StartsAt:      draft.Start,
		EndsAt:        draft.End,
		DurationHours: duration,
		RoomID:        draft.RoomID,
	}
	return c.mutate(ctx, id, ActionEdit, func(ctx context.Context) error {
		return c.repo.Update(ctx, id, req)
	})
}

// Delete removes the caller's own booking.
func (c *BookingListController) Delete(ctx context.Context, id string) error {
	return c.mutate(ctx, id, ActionDelete, func(ctx context.Context) error {
		return c.repo.Delete(ctx, id)
	})
}

// Approve transitions a pending booking to approved. Admin only.
func (c *BookingListController) Approve(ctx context.Context, id string) error {
	return c.mutate(ctx, id, ActionApprove, func(ctx context.Context) error {
		return c.repo.Approve(ctx, id)
	})
}

// AdminDelete removes any booking regardless of owner. Admin only.
func (c *BookingListController) AdminDelete(ctx context.Context, id string) error {
	return c.mutate(ctx, id, ActionAdminDelete, func(ctx context.Context) error {
		return c.repo.AdminDelete(ctx, id)
	})
}

// Create submits a new booking draft and refreshes the list. Not row-scoped:
// there is no existing row to mark in-flight.
func (c *BookingListController) Create(ctx context.Context, draft Draft) error {
	duration := ComputeDuration(draft.Start, draft.End)
	if err := Validate(draft.Start, draft.End, duration); err != nil {
		return err
	}

	c.mu.Lock()
	if c.identity.UserID == "" {
		c.mu.Unlock()
		return domain.ErrUnauthenticated
	}
	c.mu.Unlock()

	err := c.repo.Create(ctx, ports.BookingRequest{
		StartsAt:      draft.Start,
		EndsAt:        draft.End,
		DurationHours: duration,
		RoomID:        draft.RoomID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			c.expire(ctx)
		}
		return err
	}
	return c.Refresh(ctx)
}

// mutate runs one row-scoped repository call under the in-flight guard:
// mark the row, call, refresh on success, clear the mark. A failure clears
// only this row's marker; the rest of the list is untouched.
func (c *BookingListController) mutate(ctx context.Context, id string, action Action, call func(context.Context) error) error {
	c.mu.Lock()
	if c.identity.UserID == "" {
		c.mu.Unlock()
		return domain.ErrUnauthenticated
	}
	b, ok := c.findLocked(id)
	if !ok {
		c.mu.Unlock()
		return domain.ErrBookingNotFound
	}
	if !c.offeredLocked(b, action) {
		c.mu.Unlock()
		return ErrActionUnavailable
	}
	if _, busy := c.inflight[id]; busy {
		c.mu.Unlock()
		return ErrRowBusy
	}
	c.inflight[id] = action
	c.mu.Unlock()

	if err := call(ctx); err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			c.expire(ctx)
			return err
		}
		c.mu.Lock()
		delete(c.inflight, id)
		c.mu.Unlock()
		c.log.Warn().Err(err).Str("booking_id", id).Str("action", string(action)).Msg("booking action failed")
		return err
	}

	// Sequenced: the refresh only starts once the mutation has completed.
	refreshErr := c.Refresh(ctx)

	c.mu.Lock()
	delete(c.inflight, id)
	c.mu.Unlock()
	return refreshErr
}

// ActionsFor returns the actions the UI should offer for a row, applying
// role and status gating. Gating here is a convenience; the backend
// re-checks authorization on every call.
func (c *BookingListController) ActionsFor(id string) []Action {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.findLocked(id)
	if !ok || c.identity.UserID == "" {
		return nil
	}

	var actions []Action
	for _, a := range []Action{ActionEdit, ActionDelete, ActionApprove, ActionAdminDelete} {
		if c.offeredLocked(b, a) {
			actions = append(actions, a)
		}
	}
	return actions
}

func (c *BookingListController) offeredLocked(b domain.Booking, action Action) bool {
	switch action {
	case ActionEdit:
		return c.identity.Owns(b) && b.Status.Editable()
	case ActionDelete:
		return c.identity.Owns(b)
	case ActionApprove:
		return c.identity.IsAdmin() && b.Status.Approvable()
	case ActionAdminDelete:
		return c.identity.IsAdmin()
	default:
		return false
	}
}

// Snapshot returns the phase and a copy of the rows with their in-flight
// markers, safe for the UI to render without holding any lock.
func (c *BookingListController) Snapshot() (Phase, []Row) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make([]Row, len(c.bookings))
	for i, b := range c.bookings {
		rows[i] = Row{Booking: b, InFlight: c.inflight[b.ID]}
	}
	return c.phase, rows
}

// Identity returns the resolved identity, zero when unauthenticated.
func (c *BookingListController) Identity() domain.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Err returns the error recorded by the last failed list fetch.
func (c *BookingListController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// expire handles the session-invalidation signal: clear the cached
// credential and every piece of booking state, then require a fresh login.
func (c *BookingListController) expire(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear session store")
	}
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
	c.log.Info().Msg("session expired, local state cleared")
}

func (c *BookingListController) resetLocked() {
	c.identity = domain.Identity{}
	c.bookings = nil
	c.inflight = make(map[string]Action)
	c.lastErr = nil
	c.phase = PhaseUnauthenticated
}

func (c *BookingListController) findLocked(id string) (domain.Booking, bool) {
	for _, b := range c.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Booking{}, false
}
