// Package watchdog proactively detects session expiry while the user is
// idle, rather than waiting for the next request to fail.
package watchdog

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/wedvenue/wedvenue-client/nav"
	"github.com/wedvenue/wedvenue-client/session"
)

const (
	// DefaultInterval is how often the watchdog re-checks expiry on its own.
	DefaultInterval = time.Minute
	// DefaultGraceDelay holds off the first check after Start so a tick from
	// a previous mount cannot race the login that just completed.
	DefaultGraceDelay = 2 * time.Second

	expiredMessage = "Your session has expired. Please log in again."
)

// Watchdog re-checks session expiry on a fixed interval and whenever the
// host reports the page regaining visibility or focus. Its timers and
// listeners are a scoped resource: acquired by Start, released exactly once
// by the stop function, by context cancellation, or by the session ending.
type Watchdog struct {
	manager   *session.Manager
	navigator nav.Navigator
	interval  time.Duration
	grace     time.Duration
	logger    zerolog.Logger

	signals  chan struct{}
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Option defines a function type to modify the Watchdog instance.
type Option func(*Watchdog)

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) Option {
	return func(w *Watchdog) {
		w.interval = d
	}
}

// WithGraceDelay overrides the post-start grace delay.
func WithGraceDelay(d time.Duration) Option {
	return func(w *Watchdog) {
		w.grace = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Watchdog) {
		w.logger = logger
	}
}

// New creates a Watchdog.
func New(manager *session.Manager, navigator nav.Navigator, options ...Option) (*Watchdog, error) {
	if manager == nil {
		return nil, errors.New("[watchdog.New] session manager is required")
	}
	if navigator == nil {
		return nil, errors.New("[watchdog.New] navigator is required")
	}

	w := &Watchdog{
		manager:   manager,
		navigator: navigator,
		interval:  DefaultInterval,
		grace:     DefaultGraceDelay,
		logger:    zerolog.Nop(),
		signals:   make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, option := range options {
		option(w)
	}
	if w.interval <= 0 {
		return nil, errors.New("[watchdog.New] interval must be positive")
	}
	return w, nil
}

// NotifyVisible reports that the page became visible again (e.g. the user
// switched back to the tab). Signals arriving during the grace delay or
// while a check is already pending are coalesced.
func (w *Watchdog) NotifyVisible() {
	w.signal()
}

// NotifyFocus reports that the window regained input focus.
func (w *Watchdog) NotifyFocus() {
	w.signal()
}

func (w *Watchdog) signal() {
	select {
	case w.signals <- struct{}{}:
	default:
	}
}

// Done is closed once the watchdog loop has fully released its timers.
func (w *Watchdog) Done() <-chan struct{} {
	return w.done
}

// Start launches the watchdog loop and returns its stop function. The stop
// function is idempotent and must be called when the host view unmounts.
func (w *Watchdog) Start(ctx context.Context) (stop func()) {
	go w.run(ctx)
	return func() {
		w.stopOnce.Do(func() {
			close(w.stopCh)
		})
	}
}

func (w *Watchdog) run(ctx context.Context) {
	defer close(w.done)

	graceTimer := time.NewTimer(w.grace)
	defer graceTimer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-w.stopCh:
		return
	case <-graceTimer.C:
	}

	// Drop any visibility/focus signal that arrived during the grace delay;
	// checks must not begin before it elapses.
	select {
	case <-w.signals:
	default:
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	seenAuthenticated := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
		case <-w.signals:
		}

		switch w.manager.State() {
		case session.StateAnonymous:
			if seenAuthenticated {
				// The session ended (logout elsewhere); release the timers.
				w.logger.Debug().Msg("session ended, watchdog stopping")
				return
			}
			continue
		default:
			seenAuthenticated = true
		}

		if !w.manager.IsExpired(ctx) {
			continue
		}

		if !nav.IsAuthScreen(w.navigator.CurrentPath()) {
			w.logger.Warn().Msg("session expired while idle")
			w.navigator.Notify(expiredMessage)
			w.navigator.Assign(nav.RouteLogin)
		}
		return
	}
}
