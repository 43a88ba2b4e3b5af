package authcore

import (
	"context"
	"errors"

	"github.com/praveengoswami1996/authcore/verification"
)

// VerifyEmail redeems an email verification code and marks the account
// verified. Codes are single-use: the first successful call consumes the
// code, and replays see [KindNotFound]. The user update lands before the
// code is deleted so a crash between the two leaves a retryable code rather
// than an unverified account with no way to verify.
func (s *Service) VerifyEmail(ctx context.Context, codeID string) (*SanitizedUser, error) {
	code, err := s.codes.FindValid(ctx, codeID, verification.TypeEmailVerification)
	if err != nil {
		if errors.Is(err, verification.ErrNotFound) {
			return nil, fail(KindNotFound, "invalid or expired verification code")
		}
		return nil, failWith(KindInternal, "failed to look up verification code", err)
	}

	user, err := s.users.SetVerified(ctx, code.UserID, true)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fail(KindNotFound, "invalid or expired verification code")
		}
		return nil, failWith(KindInternal, "failed to verify email", err)
	}

	if err := s.codes.Delete(ctx, code.ID); err != nil {
		return nil, failWith(KindInternal, "failed to consume verification code", err)
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}
