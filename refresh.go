package authcore

import (
	"context"
	"errors"

	"github.com/praveengoswami1996/authcore/jwt"
	"github.com/praveengoswami1996/authcore/session"
)

// RefreshResult carries the new access token and, when the session was
// renewed, a rotated refresh token. NewRefreshToken is empty when the
// session still has comfortable runway and the caller should keep using the
// token it presented.
type RefreshResult struct {
	AccessToken     string
	NewRefreshToken string
}

// Refresh exchanges a valid refresh token for a new access token. When the
// backing session is inside its renewal threshold the session expiry slides
// forward by a full session lifetime and a fresh refresh token is issued
// against the new horizon, so an active user never hits a hard logout.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		if jwt.IsExpired(err) {
			return nil, fail(KindUnauthorized, "refresh token expired")
		}
		return nil, fail(KindUnauthorized, "invalid refresh token")
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, fail(KindUnauthorized, "session expired")
		}
		return nil, failWith(KindInternal, "failed to load session", err)
	}

	now := s.now()
	result := &RefreshResult{}

	if sess.ExpiresAt.Sub(now) <= s.config.SessionRenewalThreshold {
		newExpiry := now.Add(s.config.SessionTTL)
		if err := s.sessions.ExtendExpiry(ctx, sess.ID, newExpiry); err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return nil, fail(KindUnauthorized, "session expired")
			}
			return nil, failWith(KindInternal, "failed to extend session", err)
		}

		rotated, err := s.tokens.SignRefresh(sess.ID)
		if err != nil {
			return nil, failWith(KindInternal, "failed to sign refresh token", err)
		}
		result.NewRefreshToken = rotated
	}

	accessToken, err := s.tokens.SignAccess(sess.UserID, sess.ID)
	if err != nil {
		return nil, failWith(KindInternal, "failed to sign access token", err)
	}
	result.AccessToken = accessToken

	return result, nil
}
