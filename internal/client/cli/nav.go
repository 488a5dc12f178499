package cli

import (
	"strings"
	"sync"

	"github.com/dmitrijs2005/bookwarm/internal/client/guard"
)

// Router is the terminal rendition of a navigation stack: it tracks a single
// active route and tells its observer when the route changes. It satisfies
// guard.Navigator.
type Router struct {
	mu       sync.Mutex
	route    string
	onChange func()
}

func NewRouter(initial string) *Router {
	return &Router{route: initial}
}

// OnChange registers the callback invoked after every effective route change.
func (r *Router) OnChange(fn func()) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}

// Replace switches to the given route. Replacing with the active route is a
// no-op, so observers never see spurious changes.
func (r *Router) Replace(route string) {
	r.mu.Lock()
	if r.route == route {
		r.mu.Unlock()
		return
	}
	r.route = route
	fn := r.onChange
	r.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Route returns the active route.
func (r *Router) Route() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route
}

// Segments returns the path segments of the active route.
func (r *Router) Segments() []string {
	return strings.FieldsFunc(r.Route(), func(c rune) bool { return c == '/' })
}

// InAuthArea reports whether the active route is inside the auth area.
func (r *Router) InAuthArea() bool {
	segments := r.Segments()
	return len(segments) > 0 && segments[0] == guard.AuthSegment
}
