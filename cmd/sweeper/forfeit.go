package main

import (
	"net/http"
)

func (app application) handleForfeit(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	g, err := session.Game()
	if err != nil {
		app.internalError(w, "unable to decode game state", "error", err)
		return
	}

	g.Forfeit()
	app.saveAndReply(w, r, session, g)
}
