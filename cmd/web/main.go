package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/myrjola/interrogation-room/internal/ai"
	"github.com/myrjola/interrogation-room/internal/auth"
	"github.com/myrjola/interrogation-room/internal/envstruct"
	"github.com/myrjola/interrogation-room/internal/errors"
	"github.com/myrjola/interrogation-room/internal/interrogation"
	"github.com/myrjola/interrogation-room/internal/logging"
	"github.com/myrjola/interrogation-room/internal/pprofserver"
	"github.com/myrjola/interrogation-room/internal/repositories"
	"github.com/myrjola/interrogation-room/internal/sqlite"
	"github.com/spf13/pflag"
)

type application struct {
	logger         *slog.Logger
	interrogations *interrogation.Service
	summaries      *interrogation.SummaryService
	authenticator  auth.Authenticator
}

type secrets struct {
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"  envDefault:""`
	Model         string `env:"COMPLETION_MODEL" envDefault:"gpt-4o-mini"`
	JWTSecret     string `env:"JWT_SECRET"`
	JWTIssuer     string `env:"JWT_ISSUER"       envDefault:"interrogation-room"`
}

const tokenTTL = 24 * time.Hour

func run(ctx context.Context) error {
	addr := pflag.String("addr", "localhost:4000", "HTTP network address")
	pprofPort := pflag.String("pprof-port", ":6060", "Port for pprof listening on localhost")
	dbURL := pflag.String("sqlite-url", "./interrogation-room.sqlite", "SQLite URL")
	pflag.Parse()

	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
	logger := slog.New(loggerHandler)

	// Initialise pprof listening on localhost so that it's not open to the world.
	pprofserver.Launch(*pprofPort, logger)

	if err := godotenv.Load(); err != nil {
		logger.LogAttrs(ctx, slog.LevelInfo, "skipping .env", errors.SlogError(err))
	}
	var env secrets
	if err := envstruct.Populate(&env, os.LookupEnv); err != nil {
		return errors.Wrap(err, "read environment")
	}

	db, err := sqlite.NewDatabase(*dbURL)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", *dbURL))
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close database", errors.SlogError(err))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db", slog.String("url", *dbURL))

	cases := repositories.NewCaseRepository(db, logger)
	summaries := repositories.NewSummaryRepository(db, logger)
	keywords := repositories.NewKeywordRepository(db, logger)

	engine := ai.NewClient(env.OpenAIAPIKey, env.OpenAIBaseURL, env.Model)

	app := application{
		logger:         logger,
		interrogations: interrogation.NewService(cases, summaries, engine, logger),
		summaries:      interrogation.NewSummaryService(summaries, keywords, engine, logger),
		authenticator:  auth.NewJWTAuthenticator(env.JWTSecret, env.JWTIssuer, tokenTTL),
	}

	return app.configureAndStartServer(ctx, *addr)
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
