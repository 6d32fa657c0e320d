package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/minesweeper-ai/internal/game"
)

// GameSession is one persisted game. State holds the gob-encoded
// game.Game; the scalar columns are denormalized for filtering.
type GameSession struct {
	GameSessionID int64
	PlayerID      *int64
	Width         int
	Height        int
	MineCount     int
	Dead          bool
	Won           bool
	State         []byte
	StartedAt     pgtype.Timestamptz
	EndedAt       pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (s GameSession) Game() (*game.Game, error) {
	return game.DecodeGame(s.State)
}

func (q Queries) CreateSession(
	ctx context.Context, g *game.Game, playerID *int64,
) (*GameSession, error) {
	state, err := g.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"width":      g.Board.Width,
		"height":     g.Board.Height,
		"mine_count": len(g.Board.Mines),
		"dead":       g.Dead,
		"won":        g.Won,
		"state":      state,
	}
	if playerID != nil {
		args["player_id"] = *playerID
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, width, height, mine_count, dead, won, state
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @dead, @won, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q Queries) GetSession(ctx context.Context, gameSessionID int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionID,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateSessionParams struct {
	Dead    *bool
	Won     *bool
	EndedAt *time.Time
	State   *[]byte
}

func (p UpdateSessionParams) setClause() (string, pgx.NamedArgs) {
	parts := make([]string, 0)
	args := pgx.NamedArgs{}

	if p.Dead != nil {
		parts = append(parts, "dead = @dead")
		args["dead"] = *p.Dead
	}
	if p.Won != nil {
		parts = append(parts, "won = @won")
		args["won"] = *p.Won
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q Queries) UpdateSession(
	ctx context.Context, gameSessionID int64, params UpdateSessionParams,
) (*GameSession, error) {
	setClause, args := params.setClause()
	args["game_session_id"] = gameSessionID
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_session SET "+setClause+
			" WHERE game_session_id = @game_session_id RETURNING *",
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// SaveGame is the common post-move update: reserialize the game and sync
// the outcome columns, stamping ended_at once the game is over.
func (q Queries) SaveGame(
	ctx context.Context, session *GameSession, g *game.Game,
) (*GameSession, error) {
	state, err := g.Bytes()
	if err != nil {
		return nil, err
	}
	params := UpdateSessionParams{
		Dead:  &g.Dead,
		Won:   &g.Won,
		State: &state,
	}
	if g.Over() && !session.EndedAt.Valid {
		now := time.Now().UTC()
		params.EndedAt = &now
	}
	return q.UpdateSession(ctx, session.GameSessionID, params)
}
