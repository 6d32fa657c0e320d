package main

import (
	"fmt"
	"net/http"

	"github.com/vancomm/minesweeper-ai/internal/solver"
)

var errGameOver = fmt.Errorf("game is over")

// handleAuto lets the engine play the session out: safe moves while it
// can deduce them, random guesses when it cannot. The final state is
// persisted whether the engine wins, loses or stalls.
func (app application) handleAuto(w http.ResponseWriter, r *http.Request) {
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
	res := e.Play(g, app.rnd)
	app.logger.Info(
		"autoplayed session",
		"id", session.GameSessionID,
		"won", res.Won,
		"dead", res.Dead,
		"moves", res.Moves,
		"guesses", res.Guesses,
	)

	app.saveAndReply(w, r, session, g)
}
