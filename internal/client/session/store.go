package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bookwarm/internal/client/api"
	"github.com/dmitrijs2005/bookwarm/internal/client/models"
	"github.com/dmitrijs2005/bookwarm/internal/client/repositories/keyvalue"
	"github.com/dmitrijs2005/bookwarm/internal/common"
	"github.com/dmitrijs2005/bookwarm/internal/dbx"
	"github.com/dmitrijs2005/bookwarm/internal/logging"
)

// Keys under which the session is persisted in durable storage.
const (
	tokenKey = "token"
	userKey  = "user"
)

// Snapshot is an immutable copy of the session state at one point in time.
type Snapshot struct {
	User    *models.User
	Token   string
	Loading bool
}

// Authenticated reports whether both identity and credential are present.
func (s Snapshot) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// LoginResult is the outcome of Login. Login never returns a Go error: every
// failure is folded into Error for the caller to display.
type LoginResult struct {
	Success bool
	Error   string
}

// Store is the session store. Construct one per process with NewStore and
// share it; there is no package-level instance, so tests build isolated
// stores freely.
//
// Session-mutating operations are serialized by opMu: two overlapping logins
// cannot interleave their storage and memory writes, the later one wins
// wholesale.
type Store struct {
	api api.Client
	db  *sql.DB
	log logging.Logger

	opMu sync.Mutex // serializes Register/Login/CheckAuth/Logout

	mu      sync.Mutex // guards cur and subs
	cur     Snapshot
	subs    map[int]func(Snapshot)
	nextSub int
}

func NewStore(apiClient api.Client, db *sql.DB, log logging.Logger) *Store {
	return &Store{
		api:  apiClient,
		db:   db,
		log:  log,
		subs: make(map[int]func(Snapshot)),
	}
}

func (s *Store) repo() keyvalue.Repository {
	return keyvalue.NewSQLiteRepository(s.db)
}

// Snapshot returns the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Subscribe registers fn to be called with the new snapshot after every state
// change. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// setState replaces the snapshot and notifies subscribers. Callbacks run
// outside the lock so a subscriber may call back into the store.
func (s *Store) setState(snap Snapshot) {
	s.mu.Lock()
	s.cur = snap
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Register creates a new account. On success the returned identity and token
// are held in memory only: unlike Login nothing is persisted, so the session
// does not survive a restart and the user signs in explicitly afterwards.
// API errors are returned unchanged for the caller to display.
func (s *Store) Register(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: username, email and password are required", common.ErrValidation)
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	resp, err := s.api.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	if resp.User == nil || resp.Token == "" {
		return fmt.Errorf("%w: malformed auth response", common.ErrInternal)
	}

	s.api.SetToken(resp.Token)
	s.setState(Snapshot{User: resp.User, Token: resp.Token})
	return nil
}

// Login authenticates with the API and persists the session. On success both
// keys are written in a single transaction before the in-memory state is
// updated, so storage and memory never disagree. On any failure the result
// carries a display message and neither memory nor storage is touched.
func (s *Store) Login(ctx context.Context, email, password string) LoginResult {
	if email == "" || password == "" {
		return LoginResult{Error: "email and password are required"}
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	snap := s.Snapshot()
	snap.Loading = true
	s.setState(snap)

	fail := func(msg string) LoginResult {
		snap := s.Snapshot()
		snap.Loading = false
		s.setState(snap)
		return LoginResult{Error: msg}
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return fail(loginMessage(err))
	}
	if resp.User == nil || resp.Token == "" {
		return fail("login failed")
	}

	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		s.log.Error(ctx, "encoding user failed", "error", err)
		return fail("login failed")
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := keyvalue.NewSQLiteRepository(tx)
		if err := r.Set(ctx, tokenKey, []byte(resp.Token)); err != nil {
			return err
		}
		return r.Set(ctx, userKey, userJSON)
	})
	if err != nil {
		s.log.Error(ctx, "persisting session failed", "error", err)
		return fail("could not save session")
	}

	s.api.SetToken(resp.Token)
	s.setState(Snapshot{User: resp.User, Token: resp.Token})
	return LoginResult{Success: true}
}

// CheckAuth restores the session from durable storage. Missing keys, a broken
// user payload or any storage failure degrade to "not authenticated"; nothing
// is ever surfaced to the caller.
func (s *Store) CheckAuth(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	repo := s.repo()

	token, err := repo.Get(ctx, tokenKey)
	if err != nil {
		s.log.Warn(ctx, "auth check failed", "error", err)
		s.signOut()
		return
	}
	userJSON, err := repo.Get(ctx, userKey)
	if err != nil {
		s.log.Warn(ctx, "auth check failed", "error", err)
		s.signOut()
		return
	}

	if len(token) == 0 || len(userJSON) == 0 {
		s.signOut()
		return
	}

	var user models.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		s.log.Warn(ctx, "stored user is not valid json", "error", err)
		s.signOut()
		return
	}

	s.api.SetToken(string(token))
	s.setState(Snapshot{User: &user, Token: string(token)})
}

// Logout removes the persisted session and clears the in-memory state. The
// store owns everything in local storage, so logout wipes it wholesale.
// Storage failures are logged; the in-memory session is cleared regardless.
func (s *Store) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.repo().Clear(ctx); err != nil {
		s.log.Warn(ctx, "removing stored session failed", "error", err)
	}

	s.signOut()
}

// signOut clears the in-memory session and the API client's bearer token.
func (s *Store) signOut() {
	s.api.SetToken("")
	s.setState(Snapshot{})
}

// loginMessage extracts a user-facing message from an API failure.
func loginMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "server unavailable"
	}
	return "login failed"
}
