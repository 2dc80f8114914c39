package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-cz/devslog"
	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/config"
	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/database"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
)

type application struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	core     *core.Core
	feed     *core.Feed
	tokens   *auth.TokenIssuer
	resolver *auth.Resolver
}

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Error loading configuration", slog.String("error", xerrors.Sprint(err)))
		os.Exit(1)
	}

	logger := configLogger(cfg.Log)
	logger.Info("Starting application...")

	db, err := database.Open(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Error opening database connection", slog.String("error", xerrors.Sprint(err)))
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	logger.Info("Database connection established successfully", slog.String("driver", cfg.Database.Driver))

	app := newApplication(cfg, logger, db)

	if err := app.serve(); err != nil {
		logger.Error("Error running server", slog.String("error", xerrors.Sprint(err)))
		os.Exit(1)
	}
}

func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) *application {
	sqlTemplate := databaseutils.NewSQLTemplate(db, cfg.Database.QueryTimeout)
	appCore := core.NewCore(db, logger, sqlTemplate)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	return &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		core:     appCore,
		feed:     core.NewFeed(appCore, appCore),
		tokens:   tokens,
		resolver: auth.NewResolver(tokens, appCore, logger),
	}
}

func configLogger(cfg config.LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: true,
			Level:     level,
		}))
	}

	handler := devslog.NewHandler(
		os.Stdout, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			NewLineAfterLog: false,
		})

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
