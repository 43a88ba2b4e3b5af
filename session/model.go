package session

import "time"

// Session is one logged-in device/browser window for a user.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Active reports whether the session is still live at the given instant.
// A session whose expiry has passed is logically dead even if the row has
// not been deleted yet.
func (s *Session) Active(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
