package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stwms/workforce-portal/internal/api/metrics"
	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

// SessionService is the single source of truth for "who is logged in". It is
// the only component allowed to mutate the persisted Identity+Credential
// pair; everything else reads the session it hands out.
type SessionService struct {
	upstream ports.UpstreamClient
	store    ports.SessionStore
	ttl      time.Duration
	log      zerolog.Logger
}

func NewSessionService(upstream ports.UpstreamClient, store ports.SessionStore, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		upstream: upstream,
		store:    store,
		ttl:      ttl,
		log:      log.With().Str("component", "session").Logger(),
	}
}

// Login exchanges credentials with the backend and, on success, commits the
// token and identity together in one Save. On any failure nothing is stored,
// so a credential can never exist without its identity or vice versa.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	result, err := s.upstream.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			s.log.Info().Str("username", username).Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("username", username).Msg("login failed")
		return nil, err
	}

	now := time.Now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Identity:  result.Identity,
		Token:     result.Token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Save(ctx, sess); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("failed to persist session")
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", result.Identity.Username).Msg("login succeeded")
	return sess, nil
}

// Restore loads a previously persisted session. Absent, malformed or expired
// records all settle to domain.ErrNoSession; an expired record is dropped so
// the next restore is a clean miss.
func (s *SessionService) Restore(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		metrics.SessionsRestoredTotal.WithLabelValues("miss").Inc()
		return nil, domain.ErrNoSession
	}

	sess, err := s.store.Find(ctx, id)
	if err != nil {
		metrics.SessionsRestoredTotal.WithLabelValues("miss").Inc()
		if errors.Is(err, domain.ErrNoSession) {
			return nil, domain.ErrNoSession
		}
		s.log.Error().Err(err).Msg("session store lookup failed")
		return nil, err
	}

	if sess.Expired(time.Now()) {
		metrics.SessionsRestoredTotal.WithLabelValues("miss").Inc()
		_ = s.store.Delete(ctx, id)
		return nil, domain.ErrNoSession
	}

	metrics.SessionsRestoredTotal.WithLabelValues("hit").Inc()
	return sess, nil
}

// Logout clears the session unconditionally. Calling it for a session that
// is already gone is not an error.
func (s *SessionService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.store.Delete(ctx, id)
}

// Signup forwards registration to the backend. Session state is untouched on
// success (the user still logs in separately) and errors are propagated so
// the caller can render a specific message.
func (s *SessionService) Signup(ctx context.Context, in ports.SignupInput) error {
	if err := s.upstream.Signup(ctx, in); err != nil {
		s.log.Info().Err(err).Str("username", in.Username).Msg("signup rejected")
		return err
	}
	s.log.Info().Str("username", in.Username).Msg("signup accepted")
	return nil
}
