package authcore

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCreateAccountIssuesTokensAndMail(t *testing.T) {
	env := newTestEnv(t, testConfig())
	ctx := context.Background()

	result, err := env.service.CreateAccount(ctx, "jane@example.com", "s3cretpass", "test-agent")
	if err != nil {
		t.Fatalf("CreateAccount error: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if result.User.Email != "jane@example.com" || result.User.Verified {
		t.Fatalf("unexpected user: %+v", result.User)
	}

	mail := env.mailer.lastMail(t)
	if mail.To != "jane@example.com" {
		t.Fatalf("verification mail went to %q", mail.To)
	}
	if !strings.Contains(mail.HTML, "https://app.example.com/email/verify/") {
		t.Fatalf("verification mail is missing the verify link: %q", mail.HTML)
	}
}

func TestCreateAccountDuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t, testConfig())
	ctx := context.Background()

	if _, err := env.service.CreateAccount(ctx, "jane@example.com", "s3cretpass", ""); err != nil {
		t.Fatalf("CreateAccount error: %v", err)
	}
	_, err := env.service.CreateAccount(ctx, "jane@example.com", "otherpass", "")
	mustKind(t, err, KindConflict)
}

func TestCreateAccountSurvivesMailOutage(t *testing.T) {
	env := newTestEnv(t, testConfig())
	env.mailer.failWith(errors.New("smtp down"))

	result, err := env.service.CreateAccount(context.Background(), "jane@example.com", "s3cretpass", "")
	if err != nil {
		t.Fatalf("registration must not fail on mail outage, got %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected tokens despite mail outage")
	}
}

func TestLoginRejectsBadCredentialsUniformly(t *testing.T) {
	env := newTestEnv(t, testConfig())
	ctx := context.Background()

	if _, err := env.service.CreateAccount(ctx, "jane@example.com", "s3cretpass", ""); err != nil {
		t.Fatalf("CreateAccount error: %v", err)
	}

	_, wrongPass := env.service.Login(ctx, "jane@example.com", "wrongpass", "")
	mustKind(t, wrongPass, KindUnauthorized)

	_, unknownEmail := env.service.Login(ctx, "nobody@example.com", "s3cretpass", "")
	mustKind(t, unknownEmail, KindUnauthorized)

	// Same message for both, or the endpoint leaks which emails exist.
	if wrongPass.Error() != unknownEmail.Error() {
		t.Fatalf("credential failures must be indistinguishable: %q vs %q",
			wrongPass.Error(), unknownEmail.Error())
	}
}

func TestLoginOpensFreshSession(t *testing.T) {
	env := newTestEnv(t, testConfig())
	ctx := context.Background()

	reg, err := env.service.CreateAccount(ctx, "jane@example.com", "s3cretpass", "")
	if err != nil {
		t.Fatalf("CreateAccount error: %v", err)
	}

	login, err := env.service.Login(ctx, "jane@example.com", "s3cretpass", "phone")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	sessions, err := env.service.Sessions(ctx, reg.User.ID, "")
	if err != nil {
		t.Fatalf("Sessions error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions after register+login, got %d", len(sessions))
	}
	if login.AccessToken == reg.AccessToken {
		t.Fatal("login must not reuse the registration session's token")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t, testConfig())
	ctx := context.Background()

	result, err := env.service.CreateAccount(ctx, "jane@example.com", "s3cretpass", "")
	if err != nil {
		t.Fatalf("CreateAccount error: %v", err)
	}

	if err := env.service.Logout(ctx, result.AccessToken); err != nil {
		t.Fatalf("Logout error: %v", err)
	}

	_, err = env.service.Refresh(ctx, result.RefreshToken)
	mustKind(t, err, KindUnauthorized)
}

func TestLogoutToleratesGarbageTokens(t *testing.T) {
	env := newTestEnv(t, testConfig())
	ctx := context.Background()

	if err := env.service.Logout(ctx, "not-a-token"); err != nil {
		t.Fatalf("Logout with garbage must be a no-op success, got %v", err)
	}
	if err := env.service.Logout(ctx, ""); err != nil {
		t.Fatalf("Logout with empty token must be a no-op success, got %v", err)
	}
}
