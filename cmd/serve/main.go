package main

import (
	"embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/robfig/cron/v3"
	"github.com/supabase-community/gotrue-go"
	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/sentrytools"
	"sayplan.app/internal/auth"
	"sayplan.app/internal/config"
	"sayplan.app/internal/metrics"
	"sayplan.app/internal/repositories"
	"sayplan.app/internal/services"
	"sayplan.app/pkg/places"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Application struct {
	logger   *slog.Logger
	config   config.Config
	metrics  *metrics.Metrics
	services *services.Services
	cron     *cron.Cron
}

//	@title			sayplan
//	@version		1.0
//	@license.name	GPL-3.0
//	@Accept			json
//	@Produce		json

func main() {
	cfg := config.New(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	logger := slog.New(sentrytools.NewLogHandler(cfg.Env,
		slog.NewTextHandler(os.Stdout, nil)))
	db, err := postgres.Connect(
		logger,
		cfg.DBDsn,
		25, //nolint:mnd //no magic number
		"15m",
		60,             //nolint:mnd //no magic number
		10*time.Second, //nolint:mnd //no magic number
		5*time.Minute,  //nolint:mnd //no magic number
	)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	supabase := gotrue.New(
		cfg.SupabaseProjRef,
		cfg.SupabaseAPIKey,
	)

	authService := services.NewAuthService(cfg, supabase)
	placesClient := places.New(cfg.PlacesURL)

	app := NewApplication(logger, cfg, db, authService, placesClient, metrics.New())

	err = app.ApplyMigrations(db)
	if err != nil {
		panic(err)
	}

	app.startJobs()
	defer app.cron.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,  //nolint:mnd //no magic number
		WriteTimeout: 10 * time.Second, //nolint:mnd //no magic number
	}
	err = httptools.Serve(logger, srv, cfg.Env)
	if err != nil {
		logger.Error("failed to serve server", logging.ErrAttr(err))
	}
}

func NewApplication(
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
	authService auth.Service,
	placesClient places.Client,
	appMetrics *metrics.Metrics,
) *Application {
	spandb := postgres.NewSpanDB(db)

	repos := repositories.New(spandb)

	//nolint:exhaustruct //other fields are optional
	app := &Application{
		logger:  logger,
		config:  cfg,
		metrics: appMetrics,
		services: services.New(
			logger,
			cfg,
			repos,
			placesClient,
			authService,
			appMetrics,
		),
	}

	return app
}

// startJobs schedules the nightly horizon top-up, which materializes
// occurrences for series whose event rows lag behind their rule's end
// date.
func (app *Application) startJobs() {
	app.cron = cron.New()

	_, err := app.cron.AddFunc("@daily", func() {
		ctx, cancel := contextWithJobTimeout()
		defer cancel()

		app.services.Events.ExtendMaterialized(ctx)
	})
	if err != nil {
		panic(err)
	}

	app.cron.Start()
}

func (app *Application) ApplyMigrations(db *pgxpool.Pool) error {
	migrationsDB := stdlib.OpenDBFromPool(db)

	goose.SetLogger(slog.NewLogLogger(app.logger.Handler(), slog.LevelInfo))

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(string(goose.DialectPostgres)); err != nil {
		return err
	}

	if err := goose.Up(migrationsDB, "migrations"); err != nil {
		return err
	}

	return nil
}
