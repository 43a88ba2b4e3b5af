package jwt

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAudience is set on every issued token unless overridden in [Config].
const DefaultAudience = "user"

// Config holds the signing secrets and lifetimes for both token classes.
// Secrets must be distinct; see the package documentation for why.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Audience      string
}

// Manager signs and verifies access and refresh tokens. A Manager is
// immutable after construction and safe for concurrent use.
type Manager struct {
	config Config
}

// AccessClaims bind an access token to a user and the session it was
// minted under.
type AccessClaims struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// RefreshClaims carry the session id only. Possession of a refresh token
// proves nothing about identity without a live session lookup.
type RefreshClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("both signing secrets are required")
	}
	if len(cfg.AccessSecret) == len(cfg.RefreshSecret) &&
		subtle.ConstantTimeCompare(cfg.AccessSecret, cfg.RefreshSecret) == 1 {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Audience == "" {
		cfg.Audience = DefaultAudience
	}
	return &Manager{config: cfg}, nil
}

// SignAccess mints an access token carrying the user and session ids.
func (m *Manager) SignAccess(userID, sessionID string) (string, error) {
	claims := AccessClaims{
		UserID:           userID,
		SessionID:        sessionID,
		RegisteredClaims: m.registered(m.config.AccessTTL),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.config.AccessSecret)
}

// SignRefresh mints a refresh token carrying the session id only.
func (m *Manager) SignRefresh(sessionID string) (string, error) {
	claims := RefreshClaims{
		SessionID:        sessionID,
		RegisteredClaims: m.registered(m.config.RefreshTTL),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.config.RefreshSecret)
}

// ParseAccess verifies signature, expiry, and audience of an access token.
func (m *Manager) ParseAccess(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := m.parse(tokenStr, claims, m.config.AccessSecret, m.parserOptions()); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefresh verifies signature, expiry, and audience of a refresh token.
func (m *Manager) ParseRefresh(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := m.parse(tokenStr, claims, m.config.RefreshSecret, m.parserOptions()); err != nil {
		return nil, err
	}
	return claims, nil
}

// DecodeAccess verifies the signature of an access token but tolerates an
// expired (or otherwise claim-invalid) one. Logout uses this to recover the
// session id from tokens that are authentic but past their window.
func (m *Manager) DecodeAccess(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	}
	if err := m.parse(tokenStr, claims, m.config.AccessSecret, options); err != nil {
		return nil, err
	}
	return claims, nil
}

// IsExpired reports whether a parse failure was caused by token expiry, as
// opposed to a bad signature or malformed input. The distinction drives
// user-facing behavior (silent refresh vs forced re-login) without exposing
// cryptographic detail.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}

func (m *Manager) parse(tokenStr string, claims jwt.Claims, secret []byte, options []jwt.ParserOption) error {
	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenInvalidClaims
	}
	return nil
}

func (m *Manager) parserOptions() []jwt.ParserOption {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(m.config.Audience),
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}
	return options
}

func (m *Manager) registered(ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Audience:  jwt.ClaimStrings{m.config.Audience},
	}
	if m.config.Issuer != "" {
		claims.Issuer = m.config.Issuer
	}
	return claims
}
