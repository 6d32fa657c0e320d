package main

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-ai/internal/config"
	"github.com/vancomm/minesweeper-ai/internal/handlers"
	"github.com/vancomm/minesweeper-ai/internal/middleware"
	"github.com/vancomm/minesweeper-ai/internal/repository"
)

type application struct {
	logger *slog.Logger
	repo   *repository.Queries
	db     *pgxpool.Pool
	auth   *config.Auth
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func (app application) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /game", app.handleNewGame)
	mux.HandleFunc("GET /game/{id}", app.handleFetchGame)
	mux.HandleFunc("POST /game/{id}/reveal", app.handleReveal)
	mux.HandleFunc("POST /game/{id}/flag", app.handleFlag)
	mux.HandleFunc("GET /game/{id}/hint", app.handleHint)
	mux.HandleFunc("POST /game/{id}/auto", app.handleAuto)
	mux.HandleFunc("POST /game/{id}/forfeit", app.handleForfeit)
	mux.HandleFunc("GET /game/{id}/connect", app.wsConnect)
	mux.HandleFunc("GET /stats", app.handleStats)

	auth := handlers.NewAuth(app.logger, app.db, app.auth)
	mux.HandleFunc("POST /register", auth.Register)
	mux.HandleFunc("POST /login", auth.Login)
	mux.HandleFunc("POST /logout", auth.Logout)
	mux.HandleFunc("GET /status", auth.Status)

	return mux
}

func (app application) badRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	handlers.SendErrorOrLog(w, app.logger, err)
}

func (app application) notFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

func (app application) internalError(w http.ResponseWriter, msg string, args ...any) {
	w.WriteHeader(http.StatusInternalServerError)
	app.logger.Error(msg, args...)
}

// fetchSession resolves the {id} path value into a stored session,
// writing the error response itself when it cannot.
func (app application) fetchSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, bool) {
	sessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		app.notFound(w)
		return nil, false
	}

	session, err := app.repo.GetSession(r.Context(), sessionID)
	if errors.Is(err, pgx.ErrNoRows) {
		app.notFound(w)
		return nil, false
	}
	if err != nil {
		app.internalError(w, "unable to fetch session from db", "error", err)
		return nil, false
	}

	playerID, ok := middleware.PlayerID(r)
	if ok && session.PlayerID != nil && *session.PlayerID != playerID {
		w.WriteHeader(http.StatusUnauthorized)
		return nil, false
	}

	return session, true
}
