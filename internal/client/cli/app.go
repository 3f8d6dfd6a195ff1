package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/localdb"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/repositories/events"
	"github.com/dmitrijs2005/userdir/internal/client/repositories/users"
	"github.com/dmitrijs2005/userdir/internal/client/services"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	tracker   *session.Tracker
	auth      services.AuthService
	directory services.DirectoryService
	stats     services.StatsService
	orders    services.OrderService

	reader *bufio.Reader
	out    io.Writer

	// users is the collection loaded at login; current points into it.
	users   *models.Collection
	current *models.User
}

// NewApp opens the local database and builds the services described by c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := localdb.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := users.NewFileRepository(c.StorePath, logger)
	return newApp(c, logger, db, store, session.NewTracker(), os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, store users.Repository,
	tracker *session.Tracker, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = logging.Nop()
	}

	var journal events.Repository
	if db != nil {
		journal = events.NewSQLiteRepository(db)
	}

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		tracker:   tracker,
		auth:      services.NewAuthService(store, tracker, journal, logger),
		directory: services.NewDirectoryService(store, logger),
		stats:     services.NewStatsService(journal, logger),
		orders:    services.NewOrderService(db, c.OrdersDir, c.OrderFields, tracker.Now, logger),
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

// Run blocks in the REPL until the user leaves, then closes the database.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to userdir (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(context.Background(), "failed to close database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.current != nil
}

func (a *App) access() access {
	switch {
	case a.current == nil:
		return accessGuest
	case a.current.IsAdmin():
		return accessAdmin
	default:
		return accessStandard
	}
}

func (a *App) getStatus() string {
	if a.current == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", a.current.Login, a.current.Role)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
