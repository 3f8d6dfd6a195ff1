package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/localdb"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/repositories/events"
	"github.com/dmitrijs2005/userdir/internal/client/repositories/users"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app   *App
	out   *bytes.Buffer
	store *users.FileRepository
	dir   string
	clock *time.Time
}

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

// newTestEnv builds an App over a temp store and database. input is fed to
// the prompts and to the REPL; passwords are read from it too.
func newTestEnv(t *testing.T, input string, seed ...*models.User) *testEnv {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	db, err := localdb.InitDatabase(ctx, filepath.Join(dir, "userdir.db"))
	require.NoError(t, err)

	store := users.NewFileRepository(filepath.Join(dir, "users.json"), nil)
	if len(seed) > 0 {
		require.NoError(t, store.Save(ctx, models.NewCollection(seed...)))
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.OrdersDir = filepath.Join(dir, "orders")
	cfg.OrderFields = []string{"customer", "product", "quantity"}

	clock := at("2024-01-01 10:00:00")
	tracker := session.NewTracker(session.WithClock(func() time.Time { return clock }))

	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	var out bytes.Buffer
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&out, a...) }
	t.Cleanup(func() { printlnFn = origPrint })

	app := newApp(cfg, nil, db, store, tracker, strings.NewReader(input), &out)
	t.Cleanup(app.Close)

	return &testEnv{app: app, out: &out, store: store, dir: dir, clock: &clock}
}

func (e *testEnv) run(t *testing.T) {
	t.Helper()
	runREPL(context.Background(), e.app, e.app.getStatus, e.app.reader)
}

func (e *testEnv) stored(t *testing.T, login string) *models.User {
	t.Helper()
	c, err := e.store.Load(context.Background())
	require.NoError(t, err)
	u, _ := c.FindByLogin(login)
	return u
}

func lines(in ...string) string {
	return strings.Join(in, "\n") + "\n"
}

func seedUsers() []*models.User {
	return []*models.User{
		{ID: 1, Surname: "Smith", Name: "Bob", Login: "bob", Password: "secret1",
			Role: models.RoleStandard, Status: models.StatusActive},
		{ID: 2, Surname: "Liddell", Name: "Alice", Login: "alice", Password: "wonder1",
			Role: models.RoleAdmin, Status: models.StatusActive},
	}
}

func TestApp_LoginRejections(t *testing.T) {
	seed := seedUsers()
	seed[0].Status = models.StatusInactive
	env := newTestEnv(t, lines(
		"login", "bob", "wrong",
		"login", "bob", "secret1",
		"login", "ghost", "secret1",
		"exit",
	), seed...)

	env.run(t)

	out := env.out.String()
	assert.Equal(t, 3, strings.Count(out, "Authentication failed:"))
	assert.Contains(t, out, "Authentication failed: wrong password.")
	assert.Contains(t, out, "Authentication failed: account disabled.\nContact an administrator.")
	assert.Contains(t, out, "Authentication failed: user not found.")
	assert.False(t, env.app.isLoggedIn())
	assert.Equal(t, 0, env.stored(t, "bob").LoginCount)
}

func TestApp_AdminAddsUserWithReprompts(t *testing.T) {
	env := newTestEnv(t, lines(
		"login", "alice", "wonder1",
		"add",
		"Brown", "Carol",
		"", "alice", "carol",
		"123", "abcdef",
		"5", "0",
		"no",
		"Brown", "Carol", "carol", "abcdef", "0",
		"yes",
		"exit",
	), seedUsers()...)

	env.run(t)

	out := env.out.String()
	assert.Contains(t, out, "Rejected: login: login must not be empty")
	assert.Contains(t, out, "Rejected: login: login already exists")
	assert.Contains(t, out, "Rejected: password:")
	assert.Contains(t, out, "Rejected: role:")
	assert.Contains(t, out, "User carol added with id 3.")

	carol := env.stored(t, "carol")
	require.NotNil(t, carol)
	assert.Equal(t, 3, carol.ID)
	assert.Equal(t, models.StatusActive, carol.Status)
	assert.Equal(t, models.RoleStandard, carol.Role)

	alice := env.stored(t, "alice")
	assert.Equal(t, 1, alice.LoginCount)
	assert.NotNil(t, alice.LogoutTime, "exit while logged in records the logout")
}

func TestApp_AdminManagesRecords(t *testing.T) {
	env := newTestEnv(t, lines(
		"login", "alice", "wonder1",
		"delete alice",
		"toggle alice",
		"toggle bob",
		"filter status inactive",
		"edit bob", "", "Bobby", "alice", "", "", "1",
		"search Bobby",
		"sort login desc",
		"delete ghost",
		"exit",
	), seedUsers()...)

	env.run(t)

	out := env.out.String()
	assert.Contains(t, out, "You cannot delete the account you are logged in with.")
	assert.Contains(t, out, "You cannot disable the account you are logged in with.")
	assert.Contains(t, out, "User bob is now inactive.")
	assert.Contains(t, out, "Rejected: login: login already exists")
	assert.Contains(t, out, "User bob updated.")
	assert.Contains(t, out, "Password (at least 6 characters, shown as typed)")
	assert.NotContains(t, out, "(hidden)")
	assert.Contains(t, out, "Error: user \"ghost\": not found")

	bob := env.stored(t, "bob")
	assert.Equal(t, "Bobby", bob.Name)
	assert.Equal(t, "Smith", bob.Surname)
	assert.Equal(t, "secret1", bob.Password)
	assert.Equal(t, models.RoleAdmin, bob.Role)
	assert.Equal(t, models.StatusInactive, bob.Status)
}

func TestApp_StatsAndHistory(t *testing.T) {
	seed := seedUsers()
	in, out := at("2024-01-01 10:00:00"), at("2024-01-01 12:30:00")
	seed[0].LoginCount, seed[0].LoginTime, seed[0].LogoutTime = 2, &in, &out
	seed = append(seed, &models.User{ID: 3, Login: "carol", Password: "abcdef", Status: models.StatusActive})

	env := newTestEnv(t, lines(
		"login", "alice", "wonder1",
		"stats",
		"stats bob",
		"history alice",
		"history all x",
		"exit",
	), seed...)

	env.run(t)

	text := env.out.String()
	assert.Contains(t, text, "Users: 3 (active 3, inactive 0; admins 1, standard 2)")
	assert.Contains(t, text, "02:30:00")
	assert.Contains(t, text, "never logged in")
	assert.Contains(t, text, "Logins:")
	assert.Contains(t, text, "Logouts:")
	assert.Contains(t, text, "LOGOUTS")
	assert.Contains(t, text, "2024-01-01 10:00:00  alice  login")
	assert.Contains(t, text, "Error: limit must be a positive number")
}

func TestApp_StandardUserOrders(t *testing.T) {
	env := newTestEnv(t, lines(
		"login", "bob", "secret1",
		"list",
		"order", "ACME", "   ", "Widget", "3", "yes",
		"order", "ACME", "Gadget", "1", "no",
		"orders",
		"logout",
		"exit",
	), seedUsers()...)

	env.run(t)

	text := env.out.String()
	assert.Contains(t, text, "Unknown command: list")
	assert.Contains(t, text, "Rejected: field must not be empty")
	assert.Contains(t, text, "Error: order cancelled")
	assert.Contains(t, text, "Widget")
	assert.Contains(t, text, "Logged out.")

	docs, err := os.ReadDir(filepath.Join(env.dir, "orders"))
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	journal := events.NewSQLiteRepository(env.app.db)
	n, err := journal.Count(context.Background(), "bob", models.EventLogout)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestApp_EndOfInputRecordsLogout(t *testing.T) {
	env := newTestEnv(t, lines("login", "bob", "secret1"), seedUsers()...)

	env.run(t)

	bob := env.stored(t, "bob")
	assert.Equal(t, 1, bob.LoginCount)
	require.NotNil(t, bob.LogoutTime)
	assert.False(t, env.app.isLoggedIn())
}

func TestApp_BrokenStoreStillStarts(t *testing.T) {
	env := newTestEnv(t, lines("login", "bob", "secret1", "exit"))
	require.NoError(t, os.WriteFile(env.store.Path(), []byte("{ not json"), 0o600))

	env.run(t)

	assert.Contains(t, env.out.String(), "Authentication failed: user not found.")
}

func TestApp_GetStatus(t *testing.T) {
	a := &App{}
	assert.Equal(t, "", a.getStatus())
	assert.Equal(t, accessGuest, a.access())

	a.current = &models.User{Login: "alice", Role: models.RoleAdmin}
	assert.Equal(t, "(alice admin)", a.getStatus())
	assert.Equal(t, accessAdmin, a.access())

	a.current.Role = models.RoleStandard
	assert.Equal(t, accessStandard, a.access())
}
