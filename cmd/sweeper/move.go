package main

import (
	"net/http"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/handlers"
	"github.com/vancomm/minesweeper-ai/internal/repository"
)

func (app application) handleReveal(w http.ResponseWriter, r *http.Request) {
	app.handleMove(w, r, func(g *game.Game, c game.Cell) error {
		return g.Reveal(c)
	})
}

func (app application) handleFlag(w http.ResponseWriter, r *http.Request) {
	app.handleMove(w, r, func(g *game.Game, c game.Cell) error {
		return g.ToggleFlag(c)
	})
}

func (app application) handleMove(
	w http.ResponseWriter, r *http.Request,
	move func(*game.Game, game.Cell) error,
) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	p, err := decodePoint(r.URL.Query())
	if err != nil {
		app.badRequest(w, err)
		return
	}

	g, err := session.Game()
	if err != nil {
		app.internalError(w, "unable to decode game state", "error", err)
		return
	}

	if err := move(g, p.Cell()); err != nil {
		app.badRequest(w, err)
		return
	}

	app.saveAndReply(w, r, session, g)
}

func (app application) saveAndReply(
	w http.ResponseWriter, r *http.Request,
	session *repository.GameSession, g *game.Game,
) {
	session, err := app.repo.SaveGame(r.Context(), session, g)
	if err != nil {
		app.internalError(w, "unable to update session in db", "error", err)
		return
	}

	sessionDTO, err := NewGameSessionDTO(session)
	if err != nil {
		app.internalError(w, "unable to build session dto", "error", err)
		return
	}
	handlers.SendJSONOrLog(w, app.logger, sessionDTO)
}
