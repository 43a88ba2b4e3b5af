package authcore

import (
	"context"
	"errors"

	"github.com/praveengoswami1996/authcore/verification"
)

// AuthResult is what registration and login hand back to the boundary: the
// sanitized account plus a fresh token pair bound to a new session.
type AuthResult struct {
	User         SanitizedUser
	AccessToken  string
	RefreshToken string
}

// CreateAccount registers a new user, opens their first session, and sends
// the verification email. The email is best-effort: a mail provider outage
// must not block registration, so delivery failures are logged and swallowed.
func (s *Service) CreateAccount(ctx context.Context, email, plainPassword, userAgent string) (*AuthResult, error) {
	exists, err := s.users.Exists(ctx, email)
	if err != nil {
		return nil, failWith(KindInternal, "failed to check existing accounts", err)
	}
	if exists {
		return nil, fail(KindConflict, "email already in use")
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, failWith(KindInternal, "failed to hash password", err)
	}

	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		// The store's uniqueness constraint closes the check-then-create
		// race that Exists leaves open.
		if errors.Is(err, ErrEmailTaken) {
			return nil, fail(KindConflict, "email already in use")
		}
		return nil, failWith(KindInternal, "failed to create account", err)
	}

	s.sendVerificationEmail(ctx, user)

	return s.openSession(ctx, user, userAgent)
}

// Login authenticates by email and password and opens a new session. An
// unknown email and a wrong password fail identically so the endpoint cannot
// be used to probe which addresses are registered.
func (s *Service) Login(ctx context.Context, email, plainPassword, userAgent string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fail(KindUnauthorized, "invalid email or password")
		}
		return nil, failWith(KindInternal, "failed to look up account", err)
	}

	ok, err := s.hasher.Verify(plainPassword, user.PasswordHash)
	if err != nil {
		return nil, failWith(KindInternal, "failed to verify password", err)
	}
	if !ok {
		return nil, fail(KindUnauthorized, "invalid email or password")
	}

	return s.openSession(ctx, user, userAgent)
}

// Logout revokes the session named by the access token. The token's
// signature must check out, but expiry is tolerated: a user whose access
// token lapsed mid-visit can still log out. Tokens that fail signature
// verification are ignored, making logout idempotent and unconditionally
// successful from the caller's point of view.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokens.DecodeAccess(accessToken)
	if err != nil {
		s.logger.DebugContext(ctx, "logout with undecodable access token", "error", err)
		return nil
	}

	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return failWith(KindInternal, "failed to delete session", err)
	}
	return nil
}

func (s *Service) openSession(ctx context.Context, user *User, userAgent string) (*AuthResult, error) {
	sess, err := s.sessions.Create(ctx, user.ID, userAgent, s.config.SessionTTL)
	if err != nil {
		return nil, failWith(KindInternal, "failed to create session", err)
	}

	accessToken, err := s.tokens.SignAccess(user.ID, sess.ID)
	if err != nil {
		return nil, failWith(KindInternal, "failed to sign access token", err)
	}
	refreshToken, err := s.tokens.SignRefresh(sess.ID)
	if err != nil {
		return nil, failWith(KindInternal, "failed to sign refresh token", err)
	}

	return &AuthResult{
		User:         user.Sanitized(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) sendVerificationEmail(ctx context.Context, user *User) {
	code, err := s.codes.Create(ctx, user.ID, verification.TypeEmailVerification, s.now().Add(s.config.EmailVerificationTTL))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create email verification code",
			"userId", user.ID, "error", err)
		return
	}

	url := s.config.AppOrigin + "/email/verify/" + code.ID
	if _, err := s.mailer.Send(ctx, verifyEmailMail(user.Email, url)); err != nil {
		s.logger.WarnContext(ctx, "failed to send verification email",
			"userId", user.ID, "error", err)
	}
}
