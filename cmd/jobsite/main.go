package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/mfletch/jobsite/internal/cli"
	"github.com/mfletch/jobsite/internal/db"
	"github.com/mfletch/jobsite/internal/domain"
	"github.com/mfletch/jobsite/internal/repository"
	"github.com/mfletch/jobsite/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.jobsite/jobsite.db
	dbPath := os.Getenv("JOBSITE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".jobsite", "jobsite.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := newLogger()
	repos := repository.NewRepos(database)
	uow := db.NewSQLiteUnitOfWork(database)

	company, err := resolveCompany(repos)
	if err != nil {
		return err
	}

	var observer service.OpObserver = service.NoopOpObserver{}
	if os.Getenv("JOBSITE_DEBUG") != "" {
		observer = service.NewLogOpObserver(os.Stderr)
	}

	app := &cli.App{
		Schedule:   service.NewScheduleService(repos, uow, logger, observer),
		Activities: service.NewActivityService(repos, logger),
		Templates:  service.NewTemplateService(repos, uow, logger),
		Jobs:       service.NewJobService(repos, logger),

		CompanyID: company.ID,
		Actor:     resolveActor(),
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// newLogger writes structured logs to stderr. Verbose output is gated on
// JOBSITE_DEBUG so normal CLI runs stay quiet.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("JOBSITE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// resolveCompany loads the tenant named by JOBSITE_COMPANY, creating it on
// first use. Defaults to "default" for single-company installs.
func resolveCompany(repos *repository.Repos) (*domain.Company, error) {
	name := os.Getenv("JOBSITE_COMPANY")
	if name == "" {
		name = "default"
	}

	ctx := context.Background()
	company, err := repos.Companies.GetByName(ctx, name)
	if err == nil {
		return company, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	company = &domain.Company{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := repos.Companies.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("creating company %q: %w", name, err)
	}
	return company, nil
}

func resolveActor() domain.Actor {
	name := os.Getenv("JOBSITE_ACTOR")
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = "unknown"
	}
	return domain.Actor{ID: name, Name: name}
}
