// Package cli implements the terminal client: a command loop over the
// expense tracker views (dashboard, expenses, add-expense, analytics,
// admin) backed by the API client and the persisted session store.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"minflow/internal/client/api"
	"minflow/internal/client/session"
)

// Config carries the client's runtime settings
type Config struct {
	ServerURL string
	StateFile string
}

// App wires the views to the API client and session store
type App struct {
	client  *api.Client
	session *session.Store
	reader  *bufio.Reader
	out     io.Writer
	logger  *slog.Logger
}

// NewApp builds the client application from config
func NewApp(cfg *Config, logger *slog.Logger) *App {
	client := api.NewClient(cfg.ServerURL)
	store := session.NewStore(client, client, cfg.StateFile)

	return &App{
		client:  client,
		session: store,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		logger:  logger,
	}
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// restoreSession hydrates the session from the state file. Called on every
// view entry; idempotent.
func (a *App) restoreSession() {
	if err := a.session.LoadFromStorage(); err != nil {
		a.logger.Warn("could not restore session", "error", err)
	}
}

// enter runs a view's guard after restoring the session. Returns false when
// the caller must not proceed; the guard's warning and redirect are surfaced
// to the user.
func (a *App) enter(guard func(*session.Store) GuardResult) bool {
	a.restoreSession()
	result := guard(a.session)
	if result.Allowed {
		return true
	}
	if result.Warning != "" {
		a.println(result.Warning)
	}
	a.printf("Use '%s' first.\n", result.Redirect)
	return false
}

func (a *App) status() string {
	if a.session.IsAuthenticated() {
		return a.session.User().Email
	}
	return "not logged in"
}

// Run starts the command loop. Exits on EOF or the exit command.
func (a *App) Run(ctx context.Context) {
	a.restoreSession()
	a.println("minflow expense tracker")
	a.printHelp()

	for {
		a.printf("\nminflow [%s] > ", a.status())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			a.printHelp()
		case "login":
			a.LoginView(ctx)
		case "signup":
			a.SignupView(ctx)
		case "logout":
			a.session.Logout()
			a.println("Logged out.")
		case "dashboard", "d":
			a.DashboardView(ctx)
		case "expenses", "e":
			a.ExpensesView(ctx)
		case "add", "a":
			a.AddExpenseView(ctx)
		case "analytics":
			a.AnalyticsView(ctx)
		case "admin":
			a.AdminView(ctx)
		case "exit", "quit":
			a.println("Bye!")
			return
		default:
			a.println("Unknown command:", fields[0])
		}
	}
}

func (a *App) printHelp() {
	if a.session.IsAuthenticated() {
		a.println("Commands: (d)ashboard, (e)xpenses, (a)dd, analytics, admin, logout, help, exit")
	} else {
		a.println("Commands: login, signup, help, exit")
	}
}
