package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	clienterrors "github.com/wedvenue/wedvenue-client/internal/errors"
)

// DefaultMaxAge is the absolute session lifetime. Sessions are not renewed
// by activity: a login is valid for exactly this long.
const DefaultMaxAge = 2 * time.Hour

const (
	hydrationPollInterval = 100 * time.Millisecond
	hydrationPollAttempts = 10
)

// Manager owns the client's single live session. It is the only writer of
// session state; every other component either reads through its accessors or
// invokes Login/Logout/IsExpired.
type Manager struct {
	repo    Repo
	maxAge  time.Duration
	nowTime func() time.Time
	logger  zerolog.Logger

	mu          sync.RWMutex
	sess        Session
	hydrated    bool
	hydrateOnce sync.Once
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithMaxAge overrides the absolute session lifetime.
func WithMaxAge(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.maxAge = d
	}
}

// WithLogger sets the logger. The default is a no-op logger so the SDK stays
// quiet unless the host application opts in.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager initializes a Manager backed by the given credentials repository.
func NewManager(repo Repo, options ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("[NewManager] credentials repo is required")
	}

	m := &Manager{
		repo:    repo,
		maxAge:  DefaultMaxAge,
		nowTime: time.Now,
		logger:  zerolog.Nop(),
	}
	for _, option := range options {
		option(m)
	}
	if m.maxAge <= 0 {
		return nil, errors.New("[NewManager] max age must be positive")
	}
	return m, nil
}

// Hydrate loads the persisted credential record into memory. It runs exactly
// once per Manager; later calls return immediately. Until Hydrate has
// completed, readers must treat an absent token as "unknown, retry" (see
// AwaitToken) rather than "definitely logged out".
//
// A login that lands before hydration completes wins: the stale persisted
// record is discarded rather than clobbering the fresher session.
func (m *Manager) Hydrate(ctx context.Context) error {
	var hydrateErr error
	m.hydrateOnce.Do(func() {
		rec, err := m.repo.Load(ctx)

		m.mu.Lock()
		defer m.mu.Unlock()
		m.hydrated = true

		if err != nil {
			hydrateErr = clienterrors.Wrapf(err, "session hydrate")
			return
		}
		if m.sess.Authenticated() {
			return
		}
		if !rec.Complete() {
			if !rec.Empty() {
				m.logger.Warn().Msg("discarding partial credential record")
			}
			return
		}
		m.sess = Session{Identity: rec.Identity, Token: rec.Token, LoginTime: rec.LoginTime}
		m.logger.Debug().Str("email", rec.Identity.Email).Msg("session hydrated from credential store")
	})
	return hydrateErr
}

// Hydrated reports whether the initial load from the credential store has
// completed (successfully or not).
func (m *Manager) Hydrated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hydrated
}

// Login replaces any prior session wholesale with the given identity and
// token and stamps the login time. The identity/token pair must have been
// obtained from the backend first; Login performs no validation beyond
// rejecting empty input.
//
// The credential store is written through. A persistence failure is
// returned but does not roll back the in-memory session: the store is a
// cache, not an authority.
func (m *Manager) Login(ctx context.Context, identity Identity, token string) error {
	if identity.ID == "" || token == "" {
		return errors.New("[Login] identity and token are required")
	}

	ident := identity
	m.mu.Lock()
	m.sess = Session{Identity: &ident, Token: token, LoginTime: m.nowTime()}
	// A live login supersedes whatever hydration might still load.
	m.hydrated = true
	rec := Record{Identity: &ident, Token: token, LoginTime: m.sess.LoginTime}
	m.mu.Unlock()

	m.logger.Info().Str("email", identity.Email).Str("role", string(identity.Role)).Msg("session established")

	if err := m.repo.Save(ctx, rec); err != nil {
		m.logger.Error().Err(err).Msg("failed to persist credentials")
		return clienterrors.Wrapf(err, "session login: persist credentials")
	}
	return nil
}

// Logout clears the session. It is idempotent: logging out of an already
// anonymous session is a no-op with no error.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	wasActive := m.sess.Authenticated() || !m.sess.LoginTime.IsZero()
	m.sess = Session{}
	m.mu.Unlock()

	if wasActive {
		m.logger.Info().Msg("session cleared")
	}

	if err := m.repo.Clear(ctx); err != nil {
		m.logger.Error().Err(err).Msg("failed to clear persisted credentials")
		return clienterrors.Wrapf(err, "session logout: clear credentials")
	}
	return nil
}

// IsExpired reports whether the current login exceeds the maximum session
// age. When it does, the session is logged out as a side effect so the
// expired state is never observed twice. When no login has ever happened it
// returns false with no side effects: "no session" and "expired session"
// are distinct outcomes and callers branch on that distinction.
func (m *Manager) IsExpired(ctx context.Context) bool {
	m.mu.RLock()
	loginTime := m.sess.LoginTime
	m.mu.RUnlock()

	if loginTime.IsZero() {
		return false
	}
	if m.nowTime().Sub(loginTime) <= m.maxAge {
		return false
	}

	m.logger.Warn().Time("login_time", loginTime).Msg("session exceeded maximum age")
	if err := m.Logout(ctx); err != nil {
		m.logger.Error().Err(err).Msg("logout after expiry failed")
	}
	return true
}

// State derives the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.sess.Authenticated() {
		return StateAnonymous
	}
	if m.nowTime().Sub(m.sess.LoginTime) > m.maxAge {
		return StateExpired
	}
	return StateAuthenticated
}

// Current returns a copy of the session. The identity is cloned so callers
// cannot alias the manager's state.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess := m.sess
	if sess.Identity != nil {
		ident := *sess.Identity
		sess.Identity = &ident
	}
	return sess
}

// Token returns the current bearer token, if any.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess.Token, m.sess.Token != ""
}

// AuthIdentity returns the current identity, if any.
func (m *Manager) AuthIdentity() (Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.sess.Identity == nil {
		return Identity{}, false
	}
	return *m.sess.Identity, true
}

// AwaitToken returns the current bearer token, waiting briefly for hydration
// when it has not yet completed. This is the bounded poll that covers the
// cold-start race: a request fired immediately after process start must not
// misread "not yet loaded" as "logged out". It polls up to ten times at
// 100ms and returns as soon as a token appears or hydration settles.
func (m *Manager) AwaitToken(ctx context.Context) (string, bool) {
	if token, ok := m.Token(); ok {
		return token, true
	}
	if m.Hydrated() {
		return "", false
	}

	ticker := time.NewTicker(hydrationPollInterval)
	defer ticker.Stop()

	for attempt := 0; attempt < hydrationPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", false
		case <-ticker.C:
			if token, ok := m.Token(); ok {
				return token, true
			}
			if m.Hydrated() {
				return m.Token()
			}
		}
	}
	return m.Token()
}

// TokenSource adapts the manager to the oauth2.TokenSource interface so the
// live session can be handed to any library that expects one.
func (m *Manager) TokenSource() oauth2.TokenSource {
	return managerTokenSource{manager: m}
}

type managerTokenSource struct {
	manager *Manager
}

func (ts managerTokenSource) Token() (*oauth2.Token, error) {
	sess := ts.manager.Current()
	if !sess.Authenticated() {
		return nil, clienterrors.ErrNotAuthenticated
	}
	return &oauth2.Token{
		AccessToken: sess.Token,
		TokenType:   "Bearer",
		Expiry:      sess.LoginTime.Add(ts.manager.maxAge),
	}, nil
}
