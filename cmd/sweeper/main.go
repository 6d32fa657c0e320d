package main

import (
	"context"
	"embed"
	"errors"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-ai/internal/config"
	"github.com/vancomm/minesweeper-ai/internal/database"
	"github.com/vancomm/minesweeper-ai/internal/middleware"
	"github.com/vancomm/minesweeper-ai/internal/repository"
	"github.com/vancomm/minesweeper-ai/internal/solver"
)

//go:embed migrations
var migrations embed.FS

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func main() {
	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	solver.Log = logger

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	db, err := database.ConnectAndMigrate(ctx, migrations)
	if err != nil {
		logger.Error("unable to connect and migrate db", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	auth, err := config.NewAuth()
	if err != nil {
		logger.Error("unable to load auth config", "error", err)
		os.Exit(1)
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		logger.Error("unable to load ws config", "error", err)
		os.Exit(1)
	}

	app := &application{
		logger: logger,
		repo:   repository.New(db),
		db:     db,
		auth:   auth,
		ws:     ws,
		rnd:    createRand(),
	}

	port := config.Port()
	server := &http.Server{
		Addr: port,
		Handler: middleware.Wrap(
			app.ServeMux(),
			middleware.Auth(auth),
			middleware.Cors(),
			middleware.Logging(logger),
		),
	}

	logger.Info("sweeper online", slog.String("port", port))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("exit reason", "error", err)
		os.Exit(1)
	}
}
