package main

import (
	"net/http"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/handlers"
	"github.com/vancomm/minesweeper-ai/internal/middleware"
)

func (app application) handleNewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeNewGame(r.URL.Query())
	if err != nil {
		app.badRequest(w, err)
		return
	}

	board, err := game.NewBoard(dto.Height, dto.Width, dto.MineCount, app.rnd)
	if err != nil {
		app.badRequest(w, err)
		return
	}
	g := game.NewGame(board)

	var playerID *int64
	if id, ok := middleware.PlayerID(r); ok {
		playerID = &id
	}

	session, err := app.repo.CreateSession(r.Context(), g, playerID)
	if err != nil {
		app.internalError(w, "unable to create game session", "error", err)
		return
	}

	sessionDTO, err := NewGameSessionDTO(session)
	if err != nil {
		app.internalError(w, "unable to build session dto", "error", err)
		return
	}
	handlers.SendJSONOrLog(w, app.logger, sessionDTO)
}
