package application

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Apurer/go-water-storefront/internal/domains/session/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/session/ports"
)

// Service is the single owner of the bearer token and the cached profile.
// Remote calls run outside the lock; store writes and the in-memory swap run under it.
type Service struct {
	gateway ports.AuthGateway
	store   ports.Store
	logger  *slog.Logger

	mu    sync.RWMutex
	state domain.State
	token string
	user  *domain.User

	restoreOnce sync.Once
}

type Option func(*Service)

// WithLogger sets the logger used for failures that are absorbed rather than returned.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(gateway ports.AuthGateway, store ports.Store, opts ...Option) *Service {
	s := &Service{gateway: gateway, store: store, state: domain.StateRestoring}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Restore loads the persisted session. Only the first call does any work and it never fails.
func (s *Service) Restore(ctx context.Context) error {
	s.restoreOnce.Do(func() {
		token, user := s.readStored(ctx)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state != domain.StateRestoring {
			// a login or logout already decided the session
			return
		}
		s.token, s.user = token, user
		s.state = stateFor(token)
	})
	return nil
}

func (s *Service) readStored(ctx context.Context) (string, *domain.User) {
	token, ok, err := s.store.Get(ctx, ports.KeyToken)
	if err != nil {
		s.logger.WarnContext(ctx, "restore session token", slog.String("error", err.Error()))
		return "", nil
	}
	if !ok || token == "" {
		return "", nil
	}
	raw, ok, err := s.store.Get(ctx, ports.KeyUser)
	if err != nil {
		s.logger.WarnContext(ctx, "restore cached user", slog.String("error", err.Error()))
		return token, nil
	}
	if !ok || raw == "" {
		return token, nil
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.WarnContext(ctx, "ignoring corrupt cached user", slog.String("error", err.Error()))
		return token, nil
	}
	return token, &user
}

func (s *Service) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if err := domain.ValidateCredentials(email, password); err != nil {
		return invalidInput(err)
	}
	grant, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return newError(ErrInvalidCredentials, msgInvalidCredentials, err)
	}
	if grant.Token == "" {
		return newError(ErrInvalidCredentials, msgInvalidCredentials, nil)
	}
	return s.commit(ctx, grant.Token, grant.User)
}

func (s *Service) Register(ctx context.Context, reg domain.Registration) error {
	reg = reg.Normalize()
	if err := reg.Validate(); err != nil {
		return invalidInput(err)
	}
	grant, err := s.gateway.Register(ctx, reg)
	if err != nil {
		return remoteError(ErrRegistrationFailed, msgRegistrationFailed, err)
	}
	if grant.Token == "" {
		return newError(ErrRegistrationFailed, msgRegistrationFailed, nil)
	}
	return s.commit(ctx, grant.Token, grant.User)
}

func (s *Service) RequestPasswordReset(ctx context.Context, email string) (domain.ResetAck, error) {
	email = strings.TrimSpace(email)
	if err := domain.ValidateEmail(email); err != nil {
		return domain.ResetAck{}, invalidInput(err)
	}
	ack, err := s.gateway.RequestPasswordReset(ctx, email)
	if err != nil {
		return domain.ResetAck{}, remoteError(ErrResetRequestFailed, msgResetRequestFailed, err)
	}
	return ack, nil
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return invalidInput(domain.ErrMissingResetToken)
	}
	if err := domain.ValidatePassword(password); err != nil {
		return invalidInput(err)
	}
	if err := s.gateway.ConfirmPasswordReset(ctx, token, password); err != nil {
		return remoteError(ErrResetConfirmFailed, msgResetConfirmFailed, err)
	}
	return nil
}

// FetchMe refreshes the cached profile. It returns nil, nil when nobody is signed in.
func (s *Service) FetchMe(ctx context.Context) (*domain.User, error) {
	token := s.Token()
	if token == "" {
		return nil, nil
	}
	user, err := s.gateway.Me(ctx, token)
	if err != nil {
		return nil, newError(ErrProfileLoadFailed, msgProfileLoadFailed, err)
	}
	if err := s.replaceUser(ctx, token, user); err != nil {
		return nil, err
	}
	return user.Clone(), nil
}

func (s *Service) UpdateMe(ctx context.Context, patch domain.ProfilePatch) (*domain.User, error) {
	token := s.Token()
	if token == "" {
		return nil, notAuthenticated()
	}
	if patch.IsEmpty() {
		return nil, invalidInput(domain.ErrEmptyPatch)
	}
	user, err := s.gateway.UpdateMe(ctx, token, patch)
	if err != nil {
		return nil, remoteError(ErrProfileUpdateFailed, msgProfileUpdateFailed, err)
	}
	if err := s.replaceUser(ctx, token, user); err != nil {
		return nil, err
	}
	return user.Clone(), nil
}

func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	token := s.Token()
	if token == "" {
		return notAuthenticated()
	}
	if currentPassword == "" {
		return invalidInput(domain.ErrMissingPassword)
	}
	if err := domain.ValidatePassword(newPassword); err != nil {
		return invalidInput(err)
	}
	if err := s.gateway.ChangePassword(ctx, token, currentPassword, newPassword); err != nil {
		return remoteError(ErrPasswordChangeFailed, msgPasswordChangeFailed, err)
	}
	return nil
}

// Logout clears the session in memory and in the store. Store failures are logged, never returned.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	s.state = domain.StateUnauthenticated
	for _, key := range []string{ports.KeyToken, ports.KeyUser} {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "clear persisted session", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return nil
}

func (s *Service) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Snapshot{State: s.state, Token: s.token, User: s.user.Clone()}
}

func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Service) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

func (s *Service) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == domain.StateRestoring
}

// commit persists token and user, then swaps them into memory.
func (s *Service) commit(ctx context.Context, token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, token, user); err != nil {
		s.rollback(ctx)
		return newError(ErrStorage, msgStorage, err)
	}
	s.token, s.user = token, user.Clone()
	s.state = domain.StateAuthenticated
	return nil
}

// replaceUser stores a refreshed profile unless the session changed while it was in flight.
func (s *Service) replaceUser(ctx context.Context, token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		s.logger.DebugContext(ctx, "discarding profile for a replaced session")
		return nil
	}
	if err := s.persistUser(ctx, user); err != nil {
		s.rollback(ctx)
		return newError(ErrStorage, msgStorage, err)
	}
	s.user = user.Clone()
	return nil
}

func (s *Service) persist(ctx context.Context, token string, user *domain.User) error {
	if err := s.store.Set(ctx, ports.KeyToken, token); err != nil {
		return err
	}
	return s.persistUser(ctx, user)
}

func (s *Service) persistUser(ctx context.Context, user *domain.User) error {
	if user == nil {
		return s.store.Delete(ctx, ports.KeyUser)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, ports.KeyUser, string(raw))
}

// rollback rewrites the in-memory session to the store after a partial write. Caller holds mu.
func (s *Service) rollback(ctx context.Context) {
	var err error
	if s.token == "" {
		_ = s.store.Delete(ctx, ports.KeyUser)
		err = s.store.Delete(ctx, ports.KeyToken)
	} else {
		err = s.persist(ctx, s.token, s.user)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "restore persisted session after failed write", slog.String("error", err.Error()))
	}
}

func stateFor(token string) domain.State {
	if token == "" {
		return domain.StateUnauthenticated
	}
	return domain.StateAuthenticated
}

var _ ports.Service = (*Service)(nil)
