package service

import (
	"context"
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/campusrooms/booking-client/internal/core/domain"
	"github.com/campusrooms/booking-client/internal/core/ports"
)

// IdentityResolver produces the acting user's id and role from whatever
// identity material the session store holds. When the cached user id is
// missing it is recovered by decoding the token's payload segment; the
// signature is never verified here — that is the backend's job, and keeping
// the shortcut isolated in this type makes a future hardening (verification,
// or a /me lookup) a local change.
type IdentityResolver struct {
	store ports.SessionStore
	log   zerolog.Logger
}

func NewIdentityResolver(store ports.SessionStore, log zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{store: store, log: log}
}

// Resolve returns the current identity or domain.ErrUnauthenticated when no
// usable credential exists. Malformed tokens are tolerated, never propagated
// as parse errors. Successfully recovered user ids are written back to the
// store so future resolutions skip the decode.
func (r *IdentityResolver) Resolve(ctx context.Context) (domain.Identity, error) {
	sess, err := r.store.Load(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("session store load failed")
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	if sess.Empty() {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	claims, err := decodeTokenPayload(sess.Token)
	if err != nil {
		r.log.Debug().Err(err).Msg("token payload not decodable")
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	userID := sess.UserID
	if userID == "" {
		userID = claims.UserID
		if userID == "" {
			return domain.Identity{}, domain.ErrUnauthenticated
		}
		sess.UserID = userID
		if err := r.store.Save(ctx, sess); err != nil {
			r.log.Warn().Err(err).Msg("failed to cache user id")
		}
	}

	return domain.Identity{
		UserID: domain.NormalizeID(userID),
		Role:   claims.Role,
	}, nil
}

type tokenClaims struct {
	UserID string
	Role   string
}

// decodeTokenPayload extracts id and role from the payload of a JWT-shaped
// token via ParseUnverified. Read-only inspection only; no signature check.
func decodeTokenPayload(token string) (tokenClaims, error) {
	payload := jwt.MapClaims{}
	// WithJSONNumber keeps numeric id claims as json.Number so string and
	// numeric issuers normalize to the same representation.
	if _, _, err := jwt.NewParser(jwt.WithJSONNumber()).ParseUnverified(token, payload); err != nil {
		return tokenClaims{}, err
	}

	var claims tokenClaims
	switch id := payload["id"].(type) {
	case string:
		claims.UserID = id
	case json.Number:
		claims.UserID = id.String()
	}
	if role, ok := payload["role"].(string); ok {
		claims.Role = role
	}
	return claims, nil
}
