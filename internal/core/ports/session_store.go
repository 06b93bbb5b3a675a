package ports

import "context"

// Session is the locally cached identity material: the opaque signed token
// and, once known, the user id recovered from it.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id,omitempty"`
}

// Empty reports whether no token is cached.
func (s Session) Empty() bool {
	return s.Token == ""
}

// SessionStore is the local key-value cache holding the session between
// process runs. Implementations must treat a missing session as a zero
// Session, not an error, so resolution can distinguish "not logged in" from
// "store broken".
type SessionStore interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}
