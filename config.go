package authcore

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries every tunable of the service. Zero values are not usable;
// start from [FromEnv] or fill the struct and let [New] validate it.
type Config struct {
	// AppOrigin is the public base URL of the frontend, used to build the
	// links embedded in verification and reset emails.
	AppOrigin string `env:"APP_ORIGIN"`

	// AccessSecret and RefreshSecret sign the two token classes. They must
	// be set and must differ.
	AccessSecret  []byte `env:"JWT_ACCESS_SECRET"`
	RefreshSecret []byte `env:"JWT_REFRESH_SECRET"`

	// Issuer is an optional iss claim stamped on and required of all tokens.
	Issuer string `env:"JWT_ISSUER"`

	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`

	// SessionTTL bounds both the session record and the refresh token
	// signed against it.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// SessionRenewalThreshold is the remaining-lifetime floor under which a
	// refresh extends the session and rotates the refresh token.
	SessionRenewalThreshold time.Duration `env:"SESSION_RENEWAL_THRESHOLD" envDefault:"24h"`

	EmailVerificationTTL time.Duration `env:"EMAIL_VERIFICATION_TTL" envDefault:"8760h"`
	PasswordResetTTL     time.Duration `env:"PASSWORD_RESET_TTL" envDefault:"1h"`

	// PasswordResetWindow and PasswordResetMaxPerWindow throttle reset-email
	// issuance per account.
	PasswordResetWindow       time.Duration `env:"PASSWORD_RESET_WINDOW" envDefault:"5m"`
	PasswordResetMaxPerWindow int           `env:"PASSWORD_RESET_MAX" envDefault:"2"`

	// SessionKeyPrefix and CodeKeyPrefix namespace the Redis keys.
	SessionKeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"as"`
	CodeKeyPrefix    string `env:"CODE_KEY_PREFIX" envDefault:"avc"`
}

// FromEnv loads a [Config] from process environment variables. The secret
// fields take the variable's raw bytes; env's default slice handling would
// split them on commas and try to parse digits.
func FromEnv() (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf([]byte(nil)): func(v string) (interface{}, error) {
				return []byte(v), nil
			},
		},
	})
	if err != nil {
		return Config{}, fmt.Errorf("parse config from env: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.AccessSecret) == 0 || len(c.RefreshSecret) == 0 {
		return errors.New("access and refresh secrets are required")
	}
	if c.AppOrigin == "" {
		return errors.New("app origin is required")
	}
	if c.AccessTokenTTL <= 0 || c.SessionTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.SessionRenewalThreshold <= 0 || c.SessionRenewalThreshold >= c.SessionTTL {
		return errors.New("session renewal threshold must be positive and below the session ttl")
	}
	if c.EmailVerificationTTL <= 0 || c.PasswordResetTTL <= 0 {
		return errors.New("verification code lifetimes must be positive")
	}
	if c.PasswordResetWindow <= 0 || c.PasswordResetMaxPerWindow <= 0 {
		return errors.New("password reset throttle must be positive")
	}
	return nil
}
