package ports

import "context"

// RegisterInput carries the fields for creating an account.
type RegisterInput struct {
	Username string
	Password string
	FullName string
	Email    string
	Role     string
}

// Profile is the authenticated user's account data as returned by the
// backend.
type Profile struct {
	Username string
	FullName string
	Email    string
	Role     string
}

// AuthClient handles the authentication endpoints. Login stores the issued
// token in the SessionStore; a failed Profile fetch clears it.
type AuthClient interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, in RegisterInput) error
	Profile(ctx context.Context) (*Profile, error)
	Logout(ctx context.Context) error
}
