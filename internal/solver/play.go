package solver

import (
	"math/rand/v2"

	"github.com/vancomm/minesweeper-ai/internal/game"
)

/*
Replay rebuilds an engine from a game in progress by feeding every
revealed square back through Observe in row-major order. Engines are
cheap to reconstruct this way, so callers persist only the game and
never the knowledge base.
*/
func Replay(g *game.Game) *Engine {
	e := NewEngine(g.Board.Height, g.Board.Width)
	for row := range g.Board.Height {
		for col := range g.Board.Width {
			c := game.Cell{Row: row, Col: col}
			if count, open := g.Revealed[c]; open {
				e.Observe(c, count)
			}
		}
	}
	return e
}

// observeNew feeds the engine every revealed square it has not yet
// played. A single Reveal can flood open a whole region, so the diff
// may be much larger than one square.
func (e *Engine) observeNew(g *game.Game) {
	for row := range g.Board.Height {
		for col := range g.Board.Width {
			c := game.Cell{Row: row, Col: col}
			if count, open := g.Revealed[c]; open && !e.MovesMade[c] {
				e.Observe(c, count)
			}
		}
	}
}

type PlayResult struct {
	Won, Dead bool
	Moves     int
	Guesses   int
}

/*
Play drives a game to completion: safe moves while deduction provides
them, a uniform random guess when it does not, and flags on everything
proven to be a mine once no square is left to open. The game is won
when the flags end up matching the mine set exactly; a wrong guess
loses it.
*/
func (e *Engine) Play(g *game.Game, r *rand.Rand) PlayResult {
	var res PlayResult

	for !g.Over() {
		move, ok := e.SafeMove()
		if !ok {
			if move, ok = e.RandomMove(r); !ok {
				break
			}
			res.Guesses++
			Log.Debug("guessing", "cell", move)
		}
		res.Moves++

		if err := g.Reveal(move); err != nil {
			break
		}
		if g.Dead {
			Log.Debug("stepped on a mine", "cell", move)
			break
		}
		e.observeNew(g)
	}

	/*
	 * Out of squares to open. If the engine has accounted for every
	 * covered square, flagging its mines completes the game.
	 */
	if !g.Over() {
		for c := range e.Mines {
			if g.Flagged[c] {
				continue
			}
			if err := g.ToggleFlag(c); err != nil {
				break
			}
			if g.Won {
				break
			}
		}
		// a mine-free board is won with no flags at all
		g.Won = g.Board.IsWon(g.Flagged)
	}

	res.Won, res.Dead = g.Won, g.Dead
	return res
}
