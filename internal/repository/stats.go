package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

// SolveStats aggregates finished sessions per board configuration.
type SolveStats struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	MineCount  int     `json:"mine_count"`
	Games      int64   `json:"games"`
	GamesWon   int64   `json:"games_won"`
	WinRate    float64 `json:"win_rate"`
	AvgSolveMs float64 `json:"avg_solve_ms"`
}

type SolveStatsFilter struct {
	Width     *int
	Height    *int
	MineCount *int
}

func (f SolveStatsFilter) whereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Width != nil {
		clauses = append(clauses, "width = @width")
		args["width"] = *f.Width
	}
	if f.Height != nil {
		clauses = append(clauses, "height = @height")
		args["height"] = *f.Height
	}
	if f.MineCount != nil {
		clauses = append(clauses, "mine_count = @mine_count")
		args["mine_count"] = *f.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) GetSolveStats(
	ctx context.Context, filter SolveStatsFilter,
) ([]SolveStats, error) {
	query := `
	SELECT
		width,
		height,
		mine_count,
		count(*) games,
		count(*) FILTER (WHERE won) games_won,
		count(*) FILTER (WHERE won)::float / count(*) win_rate,
		coalesce(avg(
			(
				extract('epoch' from ended_at) -
				extract('epoch' from started_at)
			) * 1000
		) FILTER (WHERE won), 0) avg_solve_ms
	FROM game_session
	WHERE ended_at IS NOT NULL
	`

	whereClause, args := filter.whereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += `
	GROUP BY width, height, mine_count
	ORDER BY width, height, mine_count;`

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[SolveStats])
}
