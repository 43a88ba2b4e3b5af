package authcore

import (
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/praveengoswami1996/authcore/jwt"
	"github.com/praveengoswami1996/authcore/password"
	"github.com/praveengoswami1996/authcore/session"
	"github.com/praveengoswami1996/authcore/verification"
)

// Deps are the external collaborators a [Service] is wired with.
type Deps struct {
	Users  UserStore
	Redis  redis.UniversalClient
	Mailer Mailer

	// Logger is optional; nil falls back to slog.Default.
	Logger *slog.Logger
}

// Service implements the account, session, and verification lifecycle. All
// methods are safe for concurrent use.
type Service struct {
	config   Config
	users    UserStore
	sessions *session.Store
	codes    *verification.Store
	tokens   *jwt.Manager
	hasher   *password.Hasher
	mailer   Mailer
	logger   *slog.Logger
	now      func() time.Time
}

// New validates cfg and wires a [Service] over deps.
func New(cfg Config, deps Deps) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if deps.Users == nil {
		return nil, errors.New("user store is required")
	}
	if deps.Redis == nil {
		return nil, errors.New("redis client is required")
	}
	if deps.Mailer == nil {
		return nil, errors.New("mailer is required")
	}

	tokens, err := jwt.NewManager(jwt.Config{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.SessionTTL,
		Issuer:        cfg.Issuer,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.DefaultConfig())
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		config:   cfg,
		users:    deps.Users,
		sessions: session.NewStore(deps.Redis, cfg.SessionKeyPrefix),
		codes:    verification.NewStore(deps.Redis, cfg.CodeKeyPrefix),
		tokens:   tokens,
		hasher:   hasher,
		mailer:   deps.Mailer,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Tokens exposes the token manager so boundaries can verify access tokens
// in their auth middleware without a round trip through the service.
func (s *Service) Tokens() *jwt.Manager {
	return s.tokens
}
