package authcore

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func testConfig() Config {
	return Config{
		AppOrigin:                 "https://app.example.com",
		AccessSecret:              []byte("test-access-secret"),
		RefreshSecret:             []byte("test-refresh-secret"),
		AccessTokenTTL:            15 * time.Minute,
		SessionTTL:                720 * time.Hour,
		SessionRenewalThreshold:   24 * time.Hour,
		EmailVerificationTTL:      8760 * time.Hour,
		PasswordResetTTL:          time.Hour,
		PasswordResetWindow:       5 * time.Minute,
		PasswordResetMaxPerWindow: 2,
	}
}

type testEnv struct {
	service *Service
	users   *memUserStore
	mailer  *captureMailer
}

func newTestEnv(t *testing.T, cfg Config) *testEnv {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	users := newMemUserStore()
	mailer := &captureMailer{}

	service, err := New(cfg, Deps{
		Users:  users,
		Redis:  rdb,
		Mailer: mailer,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	return &testEnv{service: service, users: users, mailer: mailer}
}

func mustKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected %s error, got %s: %v", want, got, err)
	}
}

// memUserStore is an in-memory UserStore honoring the uniqueness contract.
type memUserStore struct {
	mu      sync.Mutex
	byID    map[string]*User
	byEmail map[string]string
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (m *memUserStore) Exists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *memUserStore) Create(_ context.Context, email, passwordHash string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[email]; ok {
		return nil, ErrEmailTaken
	}
	now := time.Now()
	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.byID[user.ID] = user
	m.byEmail[email] = user.ID
	copied := *user
	return &copied, nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *m.byID[id]
	return &copied, nil
}

func (m *memUserStore) FindByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memUserStore) SetVerified(_ context.Context, id string, verified bool) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	user.Verified = verified
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

func (m *memUserStore) SetPasswordHash(_ context.Context, id, passwordHash string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

// captureMailer records outbound mail and can be told to fail.
type captureMailer struct {
	mu      sync.Mutex
	sent    []Mail
	sendErr error
}

func (c *captureMailer) Send(_ context.Context, mail Mail) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return "", c.sendErr
	}
	c.sent = append(c.sent, mail)
	return uuid.NewString(), nil
}

func (c *captureMailer) failWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendErr = err
}

func (c *captureMailer) lastMail(t *testing.T) Mail {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		t.Fatal("expected at least one mail to have been sent")
	}
	return c.sent[len(c.sent)-1]
}
