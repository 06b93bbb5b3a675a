package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campusrooms/booking-client/internal/core/domain"
	"github.com/campusrooms/booking-client/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub session store
// ---------------------------------------------------------------------------

type stubStore struct {
	sess    ports.Session
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func (s *stubStore) Load(context.Context) (ports.Session, error) {
	if s.loadErr != nil {
		return ports.Session{}, s.loadErr
	}
	return s.sess, nil
}

func (s *stubStore) Save(_ context.Context, sess ports.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.sess = sess
	return nil
}

func (s *stubStore) Clear(context.Context) error {
	s.clears++
	s.sess = ports.Session{}
	return nil
}

// mkToken builds a JWT-shaped token whose payload is the JSON encoding of
// claims. The header and signature segments are opaque filler: the resolver
// never verifies them.
func mkToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString(raw) + ".sig"
}

var nopLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Resolve tests
// ---------------------------------------------------------------------------

func TestResolve_NoToken(t *testing.T) {
	r := NewIdentityResolver(&stubStore{}, nopLogger)

	_, err := r.Resolve(context.Background())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolve_CachedUserID(t *testing.T) {
	store := &stubStore{sess: ports.Session{
		Token:  mkToken(t, map[string]any{"id": "u1", "role": "student"}),
		UserID: "u1",
	}}
	r := NewIdentityResolver(store, nopLogger)

	ident, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident.UserID != "u1" || ident.Role != "student" {
		t.Errorf("identity = %+v, want u1/student", ident)
	}
	if store.saves != 0 {
		t.Errorf("expected no write-back when user id already cached, got %d saves", store.saves)
	}
}

func TestResolve_DecodesIDFromToken(t *testing.T) {
	store := &stubStore{sess: ports.Session{
		Token: mkToken(t, map[string]any{"id": "u42", "role": "admin"}),
	}}
	r := NewIdentityResolver(store, nopLogger)

	ident, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident.UserID != "u42" {
		t.Errorf("user id = %q, want u42", ident.UserID)
	}
	if !ident.IsAdmin() {
		t.Error("expected admin identity")
	}
	// Recovered id is written back so future resolutions skip the decode.
	if store.sess.UserID != "u42" {
		t.Errorf("cached user id = %q, want u42", store.sess.UserID)
	}
}

func TestResolve_NumericIDNormalized(t *testing.T) {
	store := &stubStore{sess: ports.Session{
		Token: mkToken(t, map[string]any{"id": 42, "role": "teacher"}),
	}}
	r := NewIdentityResolver(store, nopLogger)

	ident, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident.UserID != "42" {
		t.Errorf("user id = %q, want \"42\"", ident.UserID)
	}
}

func TestResolve_MalformedToken(t *testing.T) {
	for _, token := range []string{
		"garbage",
		"a.b",                 // too few segments
		"a.!!!not-base64!!.c", // undecodable payload
		"a." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".c",
		"eyJhbGciOiJIUzI1NiJ9..sig", // empty payload segment
	} {
		store := &stubStore{sess: ports.Session{Token: token}}
		r := NewIdentityResolver(store, nopLogger)

		if _, err := r.Resolve(context.Background()); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("token %q: expected ErrUnauthenticated, got %v", token, err)
		}
	}
}

func TestResolve_TokenWithoutID(t *testing.T) {
	store := &stubStore{sess: ports.Session{
		Token: mkToken(t, map[string]any{"role": "student"}),
	}}
	r := NewIdentityResolver(store, nopLogger)

	if _, err := r.Resolve(context.Background()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolve_StoreFailure(t *testing.T) {
	store := &stubStore{loadErr: errors.New("disk gone")}
	r := NewIdentityResolver(store, nopLogger)

	if _, err := r.Resolve(context.Background()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolve_SaveFailureIsNotFatal(t *testing.T) {
	store := &stubStore{
		sess:    ports.Session{Token: mkToken(t, map[string]any{"id": "u7", "role": "student"})},
		saveErr: errors.New("read-only store"),
	}
	r := NewIdentityResolver(store, nopLogger)

	ident, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident.UserID != "u7" {
		t.Errorf("user id = %q, want u7", ident.UserID)
	}
}
