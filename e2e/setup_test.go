//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"github.com/stretchr/testify/require"

	"github.com/atb-as/webshop-e2e/internal/browser"
	"github.com/atb-as/webshop-e2e/internal/config"
	"github.com/atb-as/webshop-e2e/internal/database"
	"github.com/atb-as/webshop-e2e/internal/flow"
	"github.com/atb-as/webshop-e2e/internal/intercept"
	"github.com/atb-as/webshop-e2e/internal/locator"
	"github.com/atb-as/webshop-e2e/internal/repository"
	"github.com/atb-as/webshop-e2e/internal/services"
)

const scenarioTimeout = 3 * time.Minute

var (
	cfg     *config.Config
	logger  *log.Logger
	session *browser.Session
	shop    *flow.Orchestrator
)

// TestMain launches one browser page that every scenario drives in turn
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	// Load environment variables from .env file
	if err := godotenv.Load("../.env"); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	var err error
	if cfg, err = config.Load(os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}
	logger = cfg.Log.Logger()

	// Browsers are installed with: go run ./cmd/webshop-e2e install
	registry := intercept.NewRegistry()
	session, err = browser.Launch(cfg.Browser, cfg.Webshop, registry, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to launch browser")
		return 1
	}
	defer session.Close()

	opts := flow.Options{Logger: logger}
	if cfg.Postgres.Enabled() {
		if err := database.Connect(cfg.Postgres); err != nil {
			logger.Error().Err(err).Msg("failed to connect to run journal")
			return 1
		}
		defer database.Close()
		if err := database.RunMigrations(); err != nil {
			logger.Error().Err(err).Msg("failed to migrate run journal")
			return 1
		}
		opts.Recorder = services.NewJournalService(repository.NewFlowRunRepository())
	}
	shop = flow.New(session, locator.Default(), registry, opts)

	return m.Run()
}

// start begins a scenario without logging in. The page is captured into the
// artifacts directory when the scenario fails.
func start(t *testing.T, timeout time.Duration) (context.Context, *flow.Orchestrator) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	session.Registry().Reset()

	t.Cleanup(func() {
		if !t.Failed() {
			return
		}
		path, err := session.Screenshot(strings.ReplaceAll(t.Name(), "/", "-"))
		if err != nil {
			t.Logf("no screenshot: %v", err)
			return
		}
		t.Logf("screenshot: %s", path)
	})

	return ctx, shop.ForScenario(t.Name())
}

// loggedIn begins a scenario on "Mine billetter" with the test account
func loggedIn(t *testing.T) (context.Context, *flow.Orchestrator) {
	t.Helper()
	return loggedInWithin(t, scenarioTimeout)
}

func loggedInWithin(t *testing.T, timeout time.Duration) (context.Context, *flow.Orchestrator) {
	t.Helper()
	if !cfg.Webshop.Authorized() {
		t.Skip("WEBSHOP_LOGIN_EMAIL and WEBSHOP_LOGIN_PASSWORD are not set")
	}

	ctx, o := start(t, timeout)
	require.NoError(t, o.Auth().VisitMainAsAuthorized(ctx, cfg.Webshop.LoginEmail, cfg.Webshop.LoginPassword))
	return ctx, o
}

// loggedOut begins a scenario on the login page, logging out first when the
// browser still holds a session
func loggedOut(t *testing.T) (context.Context, *flow.Orchestrator) {
	t.Helper()

	ctx, o := start(t, scenarioTimeout)
	require.NoError(t, session.Visit(""))
	present, err := o.Auth().LoggedIn()
	require.NoError(t, err)
	if present {
		require.NoError(t, o.Auth().LogOut(ctx))
	}
	require.NoError(t, o.Auth().VisitMainAsNotAuthorized(ctx))
	return ctx, o
}

// storedCard is the saved card of the test account used for purchases
const storedCard = "Visa"

// withBuyTicket begins a logged in scenario that is allowed to buy a ticket
func withBuyTicket(t *testing.T) (context.Context, *flow.Orchestrator) {
	t.Helper()
	if !cfg.Suite.WithBuyTicket {
		t.Skip("WITH_BUY_TICKET is not set")
	}
	return loggedInWithin(t, cfg.Suite.BuyTicketTimeout+scenarioTimeout)
}

// buyTicket buys product as a period ticket from "Min profil", returns to the
// overview and waits until the new ticket is listed
func buyTicket(t *testing.T, ctx context.Context, o *flow.Orchestrator, product string) string {
	t.Helper()

	require.NoError(t, o.Menu().MyProfile(ctx))
	orderID, err := o.BuyTicket(ctx, product, storedCard)
	require.NoError(t, err)

	require.NoError(t, o.Menu().StartPage(ctx))
	require.NoError(t, o.Tickets().WaitForTicket(ctx, orderID, cfg.Suite.BuyTicketTimeout))
	return orderID
}
