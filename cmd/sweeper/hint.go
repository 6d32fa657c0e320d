package main

import (
	"net/http"

	"github.com/vancomm/minesweeper-ai/internal/handlers"
	"github.com/vancomm/minesweeper-ai/internal/solver"
)

// HintDTO is a single suggested move. Safe means the square is proven
// clear; otherwise it is a uniform pick over the unresolved squares.
type HintDTO struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Safe bool `json:"safe"`
}

func (app application) handleHint(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	g, err := session.Game()
	if err != nil {
		app.internalError(w, "unable to decode game state", "error", err)
		return
	}
	if g.Over() {
		app.badRequest(w, errGameOver)
		return
	}

	e := solver.Replay(g)

	move, safe := e.SafeMove()
	if !safe {
		var ok bool
		if move, ok = e.RandomMove(app.rnd); !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	handlers.SendJSONOrLog(w, app.logger, HintDTO{
		Row:  move.Row,
		Col:  move.Col,
		Safe: safe,
	})
}
