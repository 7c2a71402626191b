package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"github.com/urfave/cli/v2"

	"github.com/atb-as/webshop-e2e/internal/browser"
	internalcli "github.com/atb-as/webshop-e2e/internal/cli"
	"github.com/atb-as/webshop-e2e/internal/config"
	"github.com/atb-as/webshop-e2e/internal/database"
	"github.com/atb-as/webshop-e2e/internal/repository"
	"github.com/atb-as/webshop-e2e/internal/services"
	"github.com/atb-as/webshop-e2e/internal/stubshop"
)

var version = "0.1.0"

// loadConfig reads the full configuration and builds the logger from it
func loadConfig() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, cfg.Log.Logger(), nil
}

// buildServerDependencies creates everything the stub webshop needs
func buildServerDependencies() (internalcli.ServerDependencies, error) {
	var deps internalcli.ServerDependencies

	serverConfig, err := config.LoadServerConfig(os.Getenv)
	if err != nil {
		return deps, fmt.Errorf("invalid server configuration: %w", err)
	}
	deps.ServerConfig = serverConfig

	logConfig, err := config.LoadLogConfig(os.Getenv)
	if err != nil {
		return deps, fmt.Errorf("invalid log configuration: %w", err)
	}
	deps.Logger = logConfig.Logger()

	shop, err := stubshop.New(stubshop.NewState(), deps.Logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create stub webshop: %w", err)
	}
	deps.Shop = shop

	return deps, nil
}

// StubCommand returns the stub command
func StubCommand() *cli.Command {
	return &cli.Command{
		Name:  "stub",
		Usage: "Serve a local stand-in for the webshop's profile and ticket pages",
		Action: func(c *cli.Context) error {
			deps, err := buildServerDependencies()
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

// CheckCommand returns the check command
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify that the configured webshop is reachable and loads in the browser",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			return internalcli.RunCheck(c.Context, cfg, logger)
		},
	}
}

// AuditCommand returns the audit command
func AuditCommand() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "Run an accessibility audit of one webshop page",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Usage: "page path relative to the webshop base URL"},
			&cli.StringFlag{Name: "scope", Usage: "CSS selector limiting the audit"},
			&cli.StringSliceFlag{Name: "disable", Usage: "axe rule id to skip, may be repeated"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			opts := internalcli.AuditOptions{
				Path:     strings.TrimLeft(c.String("path"), "/"),
				Scope:    c.String("scope"),
				Disabled: c.StringSlice("disable"),
			}
			return internalcli.RunAudit(cfg, opts, os.Stdout, logger)
		},
	}
}

// JournalCommand returns the journal command
func JournalCommand() *cli.Command {
	return &cli.Command{
		Name:  "journal",
		Usage: "Summarise recorded flow runs and the network waits that timed out",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "since", Value: 24 * time.Hour, Usage: "how far back to report"},
		},
		Action: func(c *cli.Context) error {
			pgConfig, err := config.LoadPostgresConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("invalid postgres configuration: %w", err)
			}
			if !pgConfig.Enabled() {
				return fmt.Errorf("run journal is disabled: POSTGRES_HOSTNAME is not set")
			}

			if err := database.Connect(pgConfig); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()
			log.Info().Msg("connected to database")

			if err := database.RunMigrations(); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			journal := services.NewJournalService(repository.NewFlowRunRepository())
			return internalcli.RunJournal(c.Context, journal, c.Duration("since"), time.Now(), os.Stdout)
		},
	}
}

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Download the playwright driver and browsers",
		ArgsUsage: "[browser...]",
		Action: func(c *cli.Context) error {
			return browser.Install(c.Args().Slice()...)
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "webshop-e2e",
		Usage:   "End-to-end test tooling for the ticket webshop",
		Version: version,
		Commands: []*cli.Command{
			StubCommand(),
			CheckCommand(),
			AuditCommand(),
			JournalCommand(),
			InstallCommand(),
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using environment variables")
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
