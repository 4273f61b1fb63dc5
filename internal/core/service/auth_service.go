package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/simpleuser/user-directory/internal/auth/password"
	"github.com/simpleuser/user-directory/internal/auth/token"
	"github.com/simpleuser/user-directory/internal/core/domain"
	"github.com/simpleuser/user-directory/internal/core/ports"
	"github.com/simpleuser/user-directory/internal/metrics"
)

const defaultTokenTTL = time.Hour

// AuthService verifies credentials against the user repository and issues
// signed tokens. No server-side session state is created: the token itself
// is the only artifact of a successful login.
type AuthService struct {
	users    ports.UserRepository
	hasher   *password.Hasher
	codec    *token.Codec
	tokenTTL time.Duration
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

// NewAuthService builds an AuthService. throttle may be nil to disable the
// failed-login limiter. A non-positive tokenTTL falls back to one hour.
func NewAuthService(users ports.UserRepository, hasher *password.Hasher, codec *token.Codec, tokenTTL time.Duration, throttle ports.LoginThrottle, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		users:    users,
		hasher:   hasher,
		codec:    codec,
		tokenTTL: tokenTTL,
		throttle: throttle,
		log:      log,
	}
}

// Authenticate checks the email/password pair and returns a signed token.
// Unknown email and wrong password both come back as ErrInvalidCredentials;
// callers must not be able to tell the two apart.
func (s *AuthService) Authenticate(ctx context.Context, email, plaintext string) (string, error) {
	if email == "" || plaintext == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, email)
		if err != nil {
			// A broken throttle must not lock everyone out.
			s.log.Warn().Err(err).Msg("login throttle check failed")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		s.recordFailure(ctx, email)
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	now := time.Now().UTC()
	signed, err := s.codec.Issue(user.Email, user.Role, now, now.Add(s.tokenTTL))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("login succeeded")
	return signed, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}
