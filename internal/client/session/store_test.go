package session

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/bookwarm/internal/client/api"
	"github.com/dmitrijs2005/bookwarm/internal/client/models"
	"github.com/dmitrijs2005/bookwarm/internal/common"
	"github.com/dmitrijs2005/bookwarm/internal/logging"
)

// ---- helpers ----

func setupDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE keyvalue (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func insertKV(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO keyvalue(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func getKV(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM keyvalue WHERE key=?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return nil
	}
	require.NoError(t, err)
	return v
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ---- fake api client ----

// fakeClient implements api.Client for session store unit tests.
type fakeClient struct {
	RegisterRet *models.AuthResponse
	RegisterErr error

	LoginRet *models.AuthResponse
	LoginErr error

	LastRegisterUsername string
	LastRegisterEmail    string
	LastRegisterPassword string

	LastLoginEmail    string
	LastLoginPassword string

	Token    string
	TokenSet bool
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	f.LastRegisterUsername, f.LastRegisterEmail, f.LastRegisterPassword = username, email, password
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	f.LastLoginEmail, f.LastLoginPassword = email, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) ListBooks(ctx context.Context) ([]models.Book, error)   { return nil, nil }
func (f *fakeClient) ListMyBooks(ctx context.Context) ([]models.Book, error) { return nil, nil }
func (f *fakeClient) CreateBook(ctx context.Context, req api.CreateBookRequest) (*models.Book, error) {
	return nil, nil
}
func (f *fakeClient) DeleteBook(ctx context.Context, id string) error { return nil }
func (f *fakeClient) SetToken(token string) {
	f.Token = token
	f.TokenSet = true
}

func authResponse() *models.AuthResponse {
	return &models.AuthResponse{
		User:  &models.User{ID: "1", Username: "a", Email: "a@b.com"},
		Token: "T1",
	}
}

// ---- TESTS ----

func TestLogin_Success_UpdatesMemoryAndStorage(t *testing.T) {
	db := setupDB(t, "login_success")
	fc := &fakeClient{LoginRet: authResponse()}
	s := NewStore(fc, db, testLogger())

	res := s.Login(context.Background(), "a@b.com", "pw")
	require.True(t, res.Success)
	require.Empty(t, res.Error)

	snap := s.Snapshot()
	require.True(t, snap.Authenticated())
	assert.Equal(t, "1", snap.User.ID)
	assert.Equal(t, "T1", snap.Token)
	assert.False(t, snap.Loading)

	assert.Equal(t, []byte("T1"), getKV(t, db, "token"))
	assert.NotEmpty(t, getKV(t, db, "user"))
	assert.Equal(t, "T1", fc.Token, "bearer token must follow the session")
}

func TestLogin_ThenCheckAuth_RestoresIdenticalSession(t *testing.T) {
	db := setupDB(t, "login_restart")
	fc := &fakeClient{LoginRet: authResponse()}
	s := NewStore(fc, db, testLogger())

	require.True(t, s.Login(context.Background(), "a@b.com", "pw").Success)
	before := s.Snapshot()

	// simulate a process restart: fresh store over the same storage
	s2 := NewStore(&fakeClient{}, db, testLogger())
	s2.CheckAuth(context.Background())

	after := s2.Snapshot()
	require.True(t, after.Authenticated())
	assert.Equal(t, before.Token, after.Token)
	assert.Equal(t, *before.User, *after.User)
}

func TestLogin_ServerError_LeavesEverythingUntouched(t *testing.T) {
	db := setupDB(t, "login_401")
	fc := &fakeClient{LoginErr: &api.Error{Status: 401, Message: "bad creds"}}
	s := NewStore(fc, db, testLogger())

	res := s.Login(context.Background(), "a@b.com", "pw")
	require.False(t, res.Success)
	assert.Equal(t, "bad creds", res.Error)

	snap := s.Snapshot()
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
	assert.False(t, snap.Loading)

	assert.Nil(t, getKV(t, db, "token"))
	assert.Nil(t, getKV(t, db, "user"))
}

func TestLogin_NetworkError_ResultMessage(t *testing.T) {
	db := setupDB(t, "login_net")
	fc := &fakeClient{LoginErr: fmt.Errorf("%w: connection refused", api.ErrUnavailable)}
	s := NewStore(fc, db, testLogger())

	res := s.Login(context.Background(), "a@b.com", "pw")
	require.False(t, res.Success)
	assert.Equal(t, "server unavailable", res.Error)
}

func TestLogin_EmptyInput_FailsWithoutRequest(t *testing.T) {
	db := setupDB(t, "login_empty")
	fc := &fakeClient{}
	s := NewStore(fc, db, testLogger())

	res := s.Login(context.Background(), "", "pw")
	require.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Empty(t, fc.LastLoginEmail, "no request must be sent")
}

func TestLogin_PublishesLoadingThenFinalState(t *testing.T) {
	db := setupDB(t, "login_loading")
	fc := &fakeClient{LoginRet: authResponse()}
	s := NewStore(fc, db, testLogger())

	var seen []Snapshot
	s.Subscribe(func(snap Snapshot) { seen = append(seen, snap) })

	require.True(t, s.Login(context.Background(), "a@b.com", "pw").Success)

	require.GreaterOrEqual(t, len(seen), 2)
	assert.True(t, seen[0].Loading, "first publish marks login in flight")
	last := seen[len(seen)-1]
	assert.False(t, last.Loading)
	assert.True(t, last.Authenticated())
}

func TestRegister_Success_DoesNotPersist(t *testing.T) {
	db := setupDB(t, "register_ok")
	fc := &fakeClient{RegisterRet: authResponse()}
	s := NewStore(fc, db, testLogger())

	require.NoError(t, s.Register(context.Background(), "a", "a@b.com", "pw"))

	snap := s.Snapshot()
	require.True(t, snap.Authenticated())
	assert.Equal(t, "a", fc.LastRegisterUsername)

	// the session lives in memory only until the next login
	assert.Nil(t, getKV(t, db, "token"))
	assert.Nil(t, getKV(t, db, "user"))
}

func TestRegister_EmptyInput_ValidationError(t *testing.T) {
	db := setupDB(t, "register_empty")
	fc := &fakeClient{}
	s := NewStore(fc, db, testLogger())

	err := s.Register(context.Background(), "a", "", "pw")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, fc.LastRegisterUsername, "no request must be sent")
}

func TestRegister_ServerError_IsReturnedUnchanged(t *testing.T) {
	db := setupDB(t, "register_err")
	apiErr := &api.Error{Status: 409, Message: "username taken"}
	fc := &fakeClient{RegisterErr: apiErr}
	s := NewStore(fc, db, testLogger())

	err := s.Register(context.Background(), "a", "a@b.com", "pw")
	require.ErrorIs(t, err, error(apiErr))
	assert.False(t, s.Snapshot().Authenticated())
}

func TestCheckAuth_NoStoredKeys_SignedOut(t *testing.T) {
	db := setupDB(t, "check_empty")
	fc := &fakeClient{}
	s := NewStore(fc, db, testLogger())

	s.CheckAuth(context.Background())

	snap := s.Snapshot()
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
}

func TestCheckAuth_TokenWithoutUser_SignedOut(t *testing.T) {
	db := setupDB(t, "check_partial")
	insertKV(t, db, "token", []byte("T1"))

	s := NewStore(&fakeClient{}, db, testLogger())
	s.CheckAuth(context.Background())

	assert.False(t, s.Snapshot().Authenticated())
}

func TestCheckAuth_CorruptUserPayload_SignedOut(t *testing.T) {
	db := setupDB(t, "check_corrupt")
	insertKV(t, db, "token", []byte("T1"))
	insertKV(t, db, "user", []byte("{not json"))

	fc := &fakeClient{}
	s := NewStore(fc, db, testLogger())
	s.CheckAuth(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.Authenticated())
	assert.Empty(t, fc.Token)
}

func TestLogout_ClearsMemoryAndStorage(t *testing.T) {
	db := setupDB(t, "logout")
	fc := &fakeClient{LoginRet: authResponse()}
	s := NewStore(fc, db, testLogger())

	require.True(t, s.Login(context.Background(), "a@b.com", "pw").Success)
	s.Logout(context.Background())

	snap := s.Snapshot()
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
	assert.Nil(t, getKV(t, db, "token"))
	assert.Nil(t, getKV(t, db, "user"))
	assert.Empty(t, fc.Token, "bearer token must be cleared")
}

func TestLogout_WithoutPriorSession_IsQuiet(t *testing.T) {
	db := setupDB(t, "logout_empty")
	s := NewStore(&fakeClient{}, db, testLogger())

	s.Logout(context.Background())

	assert.False(t, s.Snapshot().Authenticated())
}

func TestSubscribe_UnsubscribeStopsNotifications(t *testing.T) {
	db := setupDB(t, "subs")
	fc := &fakeClient{LoginRet: authResponse()}
	s := NewStore(fc, db, testLogger())

	var n int
	unsub := s.Subscribe(func(Snapshot) { n++ })

	require.True(t, s.Login(context.Background(), "a@b.com", "pw").Success)
	require.Greater(t, n, 0)

	before := n
	unsub()
	s.Logout(context.Background())
	assert.Equal(t, before, n, "no notifications after unsubscribe")
}
