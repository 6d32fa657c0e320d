package main

import (
	"net/http"
	"strconv"

	"github.com/vancomm/minesweeper-ai/internal/handlers"
	"github.com/vancomm/minesweeper-ai/internal/repository"
)

func (app application) handleStats(w http.ResponseWriter, r *http.Request) {
	var filter repository.SolveStatsFilter
	query := r.URL.Query()
	for name, dst := range map[string]**int{
		"width":      &filter.Width,
		"height":     &filter.Height,
		"mine_count": &filter.MineCount,
	} {
		if !query.Has(name) {
			continue
		}
		value, err := strconv.Atoi(query.Get(name))
		if err != nil {
			app.badRequest(w, err)
			return
		}
		*dst = &value
	}

	stats, err := app.repo.GetSolveStats(r.Context(), filter)
	if err != nil {
		app.internalError(w, "unable to fetch solve stats", "error", err)
		return
	}
	handlers.SendJSONOrLog(w, app.logger, stats)
}
