package authcore

import (
	"context"
	"errors"
	"time"

	"github.com/praveengoswami1996/authcore/session"
)

// SessionInfo describes one of a user's active sessions. IsCurrent marks
// the session the request itself rode in on, so UIs can pin "this device"
// and disable its revoke button.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	IsCurrent bool      `json:"isCurrent,omitempty"`
}

// Sessions lists userID's active sessions newest-first, marking
// currentSessionID when present in the list.
func (s *Service) Sessions(ctx context.Context, userID, currentSessionID string) ([]SessionInfo, error) {
	active, err := s.sessions.ListActive(ctx, userID)
	if err != nil {
		return nil, failWith(KindInternal, "failed to list sessions", err)
	}

	infos := make([]SessionInfo, len(active))
	for i, sess := range active {
		infos[i] = SessionInfo{
			ID:        sess.ID,
			UserAgent: sess.UserAgent,
			CreatedAt: sess.CreatedAt,
			IsCurrent: sess.ID == currentSessionID,
		}
	}
	return infos, nil
}

// DeleteSession revokes one of userID's sessions. Sessions owned by other
// users look exactly like missing ones.
func (s *Service) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if err := s.sessions.DeleteOwned(ctx, userID, sessionID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return fail(KindNotFound, "session not found")
		}
		return failWith(KindInternal, "failed to delete session", err)
	}
	return nil
}

// RevokeUserSessions force-logs-out a user everywhere. Intended for
// boundaries that pair it with [Service.ResetPassword] or with an
// administrative lockout.
func (s *Service) RevokeUserSessions(ctx context.Context, userID string) error {
	if err := s.sessions.DeleteAllForUser(ctx, userID); err != nil {
		return failWith(KindInternal, "failed to revoke sessions", err)
	}
	return nil
}

// User fetches the sanitized account for an authenticated caller.
func (s *Service) User(ctx context.Context, userID string) (*SanitizedUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fail(KindNotFound, "user not found")
		}
		return nil, failWith(KindInternal, "failed to look up account", err)
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}
