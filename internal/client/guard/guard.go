// Package guard enforces which navigation area is reachable based on the
// session state: signed-out users can only stay in the auth area, signed-in
// users are moved out of it.
package guard

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/bookwarm/internal/client/session"
	"github.com/dmitrijs2005/bookwarm/internal/logging"
)

// Phase of the guard's lifecycle.
type Phase int

const (
	// Initializing lasts until the first session restore completes. No
	// redirect is ever issued in this phase, so the user never sees the
	// wrong area flash by on startup.
	Initializing Phase = iota
	Unauthenticated
	Authenticated
)

// Route segments and targets for the app's two areas.
const (
	AuthSegment = "(auth)"
	AuthRoute   = "/(auth)"
	TabsRoute   = "/(tabs)"
)

// Navigator is the navigation surface the guard drives.
type Navigator interface {
	// Segments returns the path segments of the active route.
	Segments() []string
	// Replace switches to the given route without growing history.
	Replace(route string)
}

// SessionSource is the part of the session store the guard observes.
type SessionSource interface {
	Snapshot() session.Snapshot
	Subscribe(fn func(session.Snapshot)) func()
	CheckAuth(ctx context.Context)
}

// Guard watches the session and the active route and redirects whenever the
// two disagree. Evaluation is idempotent: once a redirect lands in the right
// area the condition turns false, so there are no redirect loops.
type Guard struct {
	store SessionSource
	nav   Navigator
	log   logging.Logger

	mu    sync.Mutex
	phase Phase
}

func New(store SessionSource, nav Navigator, log logging.Logger) *Guard {
	return &Guard{store: store, nav: nav, log: log, phase: Initializing}
}

// Phase returns the current lifecycle phase.
func (g *Guard) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Start restores the session exactly once, leaves Initializing, and from then
// on re-evaluates after every published session change. The owner of the
// Navigator must call Evaluate after navigation changes as well.
func (g *Guard) Start(ctx context.Context) {
	g.store.CheckAuth(ctx)

	g.mu.Lock()
	g.phase = phaseFor(g.store.Snapshot())
	g.mu.Unlock()

	g.store.Subscribe(func(snap session.Snapshot) {
		g.apply(snap)
	})

	g.Evaluate()
}

// Evaluate re-checks the active segments against the session state and
// redirects if they disagree. Safe to call at any time; a no-op while
// Initializing.
func (g *Guard) Evaluate() {
	g.apply(g.store.Snapshot())
}

func phaseFor(snap session.Snapshot) Phase {
	if snap.Authenticated() {
		return Authenticated
	}
	return Unauthenticated
}

func (g *Guard) apply(snap session.Snapshot) {
	g.mu.Lock()
	if g.phase == Initializing {
		g.mu.Unlock()
		return
	}
	g.phase = phaseFor(snap)
	g.mu.Unlock()

	segments := g.nav.Segments()
	inAuthArea := len(segments) > 0 && segments[0] == AuthSegment

	switch {
	case !snap.Authenticated() && !inAuthArea:
		g.log.Debug(context.Background(), "redirecting to auth area")
		g.nav.Replace(AuthRoute)
	case snap.Authenticated() && inAuthArea:
		g.log.Debug(context.Background(), "redirecting to main area")
		g.nav.Replace(TabsRoute)
	}
}
