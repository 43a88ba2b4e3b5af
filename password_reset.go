package authcore

import (
	"context"
	"errors"
	"strconv"

	"github.com/praveengoswami1996/authcore/verification"
)

// ResetEmailResult reports where the reset link points and the mail
// provider's message id, mostly for operational tracing.
type ResetEmailResult struct {
	URL    string
	MailID string
}

// SendPasswordResetEmail issues a password reset code and mails the reset
// link. Issuance is throttled per account over a sliding window; redeeming a
// code does not reset the count. Unlike the registration email, delivery
// failure here is fatal: the email is the whole point of the operation.
func (s *Service) SendPasswordResetEmail(ctx context.Context, email string) (*ResetEmailResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fail(KindNotFound, "user not found")
		}
		return nil, failWith(KindInternal, "failed to look up account", err)
	}

	windowStart := s.now().Add(-s.config.PasswordResetWindow)
	count, err := s.codes.CountSince(ctx, user.ID, verification.TypePasswordReset, windowStart)
	if err != nil {
		return nil, failWith(KindInternal, "failed to check reset rate limit", err)
	}
	if count >= s.config.PasswordResetMaxPerWindow {
		return nil, fail(KindTooManyRequests, "too many requests, try again later")
	}

	expiresAt := s.now().Add(s.config.PasswordResetTTL)
	code, err := s.codes.Create(ctx, user.ID, verification.TypePasswordReset, expiresAt)
	if err != nil {
		return nil, failWith(KindInternal, "failed to create reset code", err)
	}

	url := s.config.AppOrigin + "/password/reset?code=" + code.ID +
		"&exp=" + strconv.FormatInt(expiresAt.UnixMilli(), 10)

	mailID, err := s.mailer.Send(ctx, passwordResetMail(user.Email, url))
	if err != nil {
		return nil, failWith(KindInternal, "failed to send password reset email", err)
	}

	return &ResetEmailResult{URL: url, MailID: mailID}, nil
}

// ResetPassword redeems a reset code and replaces the account's password
// hash. The code is consumed on success; existing sessions stay alive, and
// boundaries that want reset-revokes-everything call
// [Service.RevokeUserSessions] afterwards.
func (s *Service) ResetPassword(ctx context.Context, codeID, newPassword string) (*SanitizedUser, error) {
	code, err := s.codes.FindValid(ctx, codeID, verification.TypePasswordReset)
	if err != nil {
		if errors.Is(err, verification.ErrNotFound) {
			return nil, fail(KindNotFound, "invalid or expired reset code")
		}
		return nil, failWith(KindInternal, "failed to look up reset code", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, failWith(KindInternal, "failed to hash password", err)
	}

	user, err := s.users.SetPasswordHash(ctx, code.UserID, hash)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fail(KindNotFound, "invalid or expired reset code")
		}
		return nil, failWith(KindInternal, "failed to update password", err)
	}

	if err := s.codes.Delete(ctx, code.ID); err != nil {
		return nil, failWith(KindInternal, "failed to consume reset code", err)
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}
