package demo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-water-storefront/internal/domains/session/domain"
	"github.com/Apurer/go-water-storefront/internal/domains/session/ports"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

// Demo account seeded into every gateway.
const (
	DemoEmail    = "demo@aquaflow.example"
	DemoPassword = "demo123"
)

// StateKey is where the demo accounts live in the session store.
const StateKey = "demo:accounts"

const tokenPrefix = "demo-"

// Store is the slice of the session store the gateway persists into.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Option func(*Gateway)

// WithStore keeps accounts and pending resets in store so later processes see them.
func WithStore(store Store) Option {
	return func(g *Gateway) { g.store = store }
}

type account struct {
	User         domain.User `json:"user"`
	PasswordHash []byte      `json:"passwordHash"`
}

type state struct {
	Accounts map[string]*account `json:"accounts"`
	Resets   map[string]string   `json:"resets,omitempty"`
}

// Gateway is an in-process auth backend used when demo mode is on.
type Gateway struct {
	mu    sync.Mutex
	store Store
	state state
}

func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{state: seed()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func seed() state {
	return state{
		Accounts: map[string]*account{
			DemoEmail: {
				User: domain.User{
					ID:      "1",
					Name:    "Demo Customer",
					Email:   DemoEmail,
					Phone:   "+92 300 0000000",
					Address: "123 Main St, Karachi",
					Role:    "customer",
				},
				PasswordHash: hash(DemoPassword),
			},
		},
		Resets: map[string]string{},
	}
}

func (g *Gateway) Login(ctx context.Context, email, password string) (domain.Grant, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return domain.Grant{}, err
	}
	acct, ok := g.state.Accounts[normalize(email)]
	if !ok || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)) != nil {
		return domain.Grant{}, &sharederrors.HTTPError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	}
	return issue(acct), nil
}

func (g *Gateway) Register(ctx context.Context, reg domain.Registration) (domain.Grant, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return domain.Grant{}, err
	}
	email := normalize(reg.Email)
	if _, exists := g.state.Accounts[email]; exists {
		return domain.Grant{}, &sharederrors.HTTPError{StatusCode: http.StatusConflict, Message: "Email already registered"}
	}
	acct := &account{
		User: domain.User{
			ID:    uuid.NewString(),
			Name:  reg.Name,
			Email: email,
			Phone: reg.Phone,
			CNIC:  reg.CNIC,
			Role:  "customer",
		},
		PasswordHash: hash(reg.Password),
	}
	g.state.Accounts[email] = acct
	if err := g.save(ctx); err != nil {
		return domain.Grant{}, err
	}
	return issue(acct), nil
}

func (g *Gateway) RequestPasswordReset(ctx context.Context, email string) (domain.ResetAck, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return domain.ResetAck{}, err
	}
	email = normalize(email)
	if _, ok := g.state.Accounts[email]; !ok {
		// unknown addresses get the same answer
		return domain.ResetAck{Success: true}, nil
	}
	token := uuid.NewString()
	g.state.Resets[token] = email
	if err := g.save(ctx); err != nil {
		return domain.ResetAck{}, err
	}
	return domain.ResetAck{Success: true, Token: token}, nil
}

func (g *Gateway) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return err
	}
	email, ok := g.state.Resets[token]
	acct, known := g.state.Accounts[email]
	if !ok || !known {
		return &sharederrors.HTTPError{StatusCode: http.StatusBadRequest, Message: "Invalid or expired reset token"}
	}
	delete(g.state.Resets, token)
	acct.PasswordHash = hash(password)
	return g.save(ctx)
}

func (g *Gateway) Me(ctx context.Context, token string) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return nil, err
	}
	acct, err := g.owner(token)
	if err != nil {
		return nil, err
	}
	return acct.User.Clone(), nil
}

func (g *Gateway) UpdateMe(ctx context.Context, token string, patch domain.ProfilePatch) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return nil, err
	}
	acct, err := g.owner(token)
	if err != nil {
		return nil, err
	}
	acct.User = *patch.Apply(&acct.User)
	if err := g.save(ctx); err != nil {
		return nil, err
	}
	return acct.User.Clone(), nil
}

func (g *Gateway) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(ctx); err != nil {
		return err
	}
	acct, err := g.owner(token)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(currentPassword)) != nil {
		return &sharederrors.HTTPError{StatusCode: http.StatusBadRequest, Message: "Current password is incorrect"}
	}
	acct.PasswordHash = hash(newPassword)
	return g.save(ctx)
}

// load replaces the in-memory state with the persisted one, when there is one.
func (g *Gateway) load(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	raw, ok, err := g.store.Get(ctx, StateKey)
	if err != nil {
		return fmt.Errorf("load demo accounts: %w", err)
	}
	if !ok || raw == "" {
		return nil
	}
	var st state
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return fmt.Errorf("decode demo accounts: %w", err)
	}
	if st.Accounts == nil {
		st.Accounts = map[string]*account{}
	}
	if st.Resets == nil {
		st.Resets = map[string]string{}
	}
	if _, ok := st.Accounts[DemoEmail]; !ok {
		st.Accounts[DemoEmail] = seed().Accounts[DemoEmail]
	}
	g.state = st
	return nil
}

func (g *Gateway) save(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	raw, err := json.Marshal(g.state)
	if err != nil {
		return fmt.Errorf("encode demo accounts: %w", err)
	}
	if err := g.store.Set(ctx, StateKey, string(raw)); err != nil {
		return fmt.Errorf("save demo accounts: %w", err)
	}
	return nil
}

// owner resolves a token minted by issue, in this process or an earlier one.
func (g *Gateway) owner(token string) (*account, error) {
	if email, ok := tokenEmail(token); ok {
		if acct, known := g.state.Accounts[email]; known {
			return acct, nil
		}
	}
	return nil, &sharederrors.HTTPError{StatusCode: http.StatusUnauthorized, Message: "Not authenticated"}
}

// issue mints a token that names its account.
func issue(acct *account) domain.Grant {
	token := tokenPrefix + base64.RawURLEncoding.EncodeToString([]byte(acct.User.Email))
	return domain.Grant{Token: token, User: acct.User.Clone()}
}

func tokenEmail(token string) (string, bool) {
	encoded, ok := strings.CutPrefix(token, tokenPrefix)
	if !ok {
		return "", false
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func hash(password string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		// only passwords over 72 bytes fail; store them unusable
		return nil
	}
	return h
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	_ ports.AuthGateway = (*Gateway)(nil)
	_ Store             = ports.Store(nil)
)
