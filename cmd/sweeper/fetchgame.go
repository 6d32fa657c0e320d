package main

import (
	"net/http"

	"github.com/vancomm/minesweeper-ai/internal/handlers"
)

func (app application) handleFetchGame(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	sessionDTO, err := NewGameSessionDTO(session)
	if err != nil {
		app.internalError(w, "unable to build session dto", "error", err)
		return
	}
	handlers.SendJSONOrLog(w, app.logger, sessionDTO)
}
