package main

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/repository"
)

type NewGameDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

func decodeNewGame(src map[string][]string) (NewGameDTO, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var dto NewGameDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

type point struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func (p point) Cell() game.Cell {
	return game.Cell{Row: p.Row, Col: p.Col}
}

func decodePoint(src map[string][]string) (point, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var p point
	err := dec.Decode(&p, src)
	return p, err
}

// GameSessionDTO is the client view of a session: the hidden mine layout
// stays server-side, the player sees the rendered grid instead.
type GameSessionDTO struct {
	GameSessionID int64   `json:"game_session_id"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	MineCount     int     `json:"mine_count"`
	Dead          bool    `json:"dead"`
	Won           bool    `json:"won"`
	Grid          string  `json:"grid"`
	StartedAt     *int64  `json:"started_at,omitempty"`
	EndedAt       *int64  `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(session *repository.GameSession) (*GameSessionDTO, error) {
	g, err := session.Game()
	if err != nil {
		return nil, err
	}
	dto := &GameSessionDTO{
		GameSessionID: session.GameSessionID,
		Width:         session.Width,
		Height:        session.Height,
		MineCount:     session.MineCount,
		Dead:          g.Dead,
		Won:           g.Won,
		Grid:          g.String(),
	}
	if session.StartedAt.Valid {
		ms := session.StartedAt.Time.UnixMilli()
		dto.StartedAt = &ms
	}
	if session.EndedAt.Valid {
		ms := session.EndedAt.Time.UnixMilli()
		dto.EndedAt = &ms
	}
	return dto, nil
}
