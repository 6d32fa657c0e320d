package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-ai/internal/game"
	"github.com/vancomm/minesweeper-ai/internal/repository"
	"github.com/vancomm/minesweeper-ai/internal/solver"
)

/*
Websocket game protocol: one text command per line.

	g			no-op, resend state
	o ROW COL	reveal a square
	f ROW COL	toggle a flag
	h			ask the engine for a hint (extra hint frame)
	a			let the engine play the game out
	r			forfeit
*/
type wsSession struct {
	app     *application
	game    *game.Game
	session *repository.GameSession
	hint    *HintDTO
}

func parseRowCol(args []string) (game.Cell, error) {
	if len(args) != 2 {
		return game.Cell{}, fmt.Errorf("expected two arguments")
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return game.Cell{}, fmt.Errorf("row must be an int")
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return game.Cell{}, fmt.Errorf("col must be an int")
	}
	return game.Cell{Row: row, Col: col}, nil
}

func (s *wsSession) execute(command string) error {
	tokens := strings.Split(command, " ")
	cmd, args := tokens[0], tokens[1:]
	switch cmd {
	case "g":
		return nil
	case "o":
		c, err := parseRowCol(args)
		if err != nil {
			return err
		}
		return s.game.Reveal(c)
	case "f":
		c, err := parseRowCol(args)
		if err != nil {
			return err
		}
		return s.game.ToggleFlag(c)
	case "h":
		if s.game.Over() {
			return errGameOver
		}
		e := solver.Replay(s.game)
		move, safe := e.SafeMove()
		if !safe {
			var ok bool
			if move, ok = e.RandomMove(s.app.rnd); !ok {
				return nil
			}
		}
		s.hint = &HintDTO{Row: move.Row, Col: move.Col, Safe: safe}
		return nil
	case "a":
		if s.game.Over() {
			return errGameOver
		}
		e := solver.Replay(s.game)
		e.Play(s.game, s.app.rnd)
		return nil
	case "r":
		s.game.Forfeit()
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (s *wsSession) runGameLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		message := strings.TrimSpace(string(buf))
		for _, line := range strings.Split(message, "\n") {
			if err := s.execute(strings.TrimSpace(line)); err != nil {
				return err
			}
			if s.game.Over() {
				break
			}
		}

		session, err := s.app.repo.SaveGame(ctx, s.session, s.game)
		if err != nil {
			return fmt.Errorf("unable to update session in db: %w", err)
		}
		s.session = session

		dto, err := NewGameSessionDTO(session)
		if err != nil {
			return fmt.Errorf("unable to build session dto: %w", err)
		}
		if err := conn.WriteJSON(dto); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
		if s.hint != nil {
			err := conn.WriteJSON(s.hint)
			s.hint = nil
			if err != nil {
				return fmt.Errorf("unable to write hint: %w", err)
			}
		}
	}
}

func (app *application) wsConnect(w http.ResponseWriter, r *http.Request) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return
	}

	g, err := session.Game()
	if err != nil {
		app.internalError(w, "unable to decode game state", "error", err)
		return
	}

	conn, err := app.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		app.logger.Error("unable to upgrade", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(time.Hour))
	app.logger.Debug("established ws connection", "id", session.GameSessionID)

	s := &wsSession{app: app, game: g, session: session}
	if err := s.runGameLoop(r.Context(), conn); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			return
		}
		app.logger.Warn("ws loop ended", "error", err)
	}
}
