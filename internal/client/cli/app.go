package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/bookwarm/internal/client/api"
	"github.com/dmitrijs2005/bookwarm/internal/client/config"
	"github.com/dmitrijs2005/bookwarm/internal/client/guard"
	"github.com/dmitrijs2005/bookwarm/internal/client/models"
	"github.com/dmitrijs2005/bookwarm/internal/client/services"
	"github.com/dmitrijs2005/bookwarm/internal/client/session"
	"github.com/dmitrijs2005/bookwarm/internal/client/storage"
	"github.com/dmitrijs2005/bookwarm/internal/logging"
)

// sessionStore is the part of the session store the CLI drives. The real
// *session.Store satisfies it; tests can provide a lightweight stub.
type sessionStore interface {
	Snapshot() session.Snapshot
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) session.LoginResult
	Logout(ctx context.Context)
}

// bookService is the book command surface the CLI needs.
type bookService interface {
	Feed(ctx context.Context) ([]models.Book, error)
	Mine(ctx context.Context) ([]models.Book, error)
	Post(ctx context.Context, title, caption, imagePath string, rating int) (*models.Book, error)
	Delete(ctx context.Context, id string) error
}

type App struct {
	config *config.Config
	store  sessionStore
	books  bookService
	guard  *guard.Guard
	router *Router
	reader *bufio.Reader
	db     *sql.DB
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.New()

	db, err := storage.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL)
	store := session.NewStore(apiClient, db, logger)
	books := services.NewBookService(apiClient)

	router := NewRouter(guard.AuthRoute)
	g := guard.New(store, router, logger)
	router.OnChange(g.Evaluate)

	return &App{
		config: c,
		store:  store,
		books:  books,
		guard:  g,
		router: router,
		reader: bufio.NewReader(os.Stdin),
		db:     db,
	}, nil
}

func (a *App) getStatus() string {
	snap := a.store.Snapshot()
	if snap.Authenticated() {
		return fmt.Sprintf("(%s)", snap.User.Username)
	}
	return ""
}

func (a *App) inAuthArea() bool {
	return a.router.InAuthArea()
}

// Run restores the stored session, lets the guard pick the starting area and
// hands control to the REPL. Blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.db.Close() }()

	log.Println("Checking stored session...")
	a.guard.Start(ctx)

	log.Println("Welcome to bookwarm CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
