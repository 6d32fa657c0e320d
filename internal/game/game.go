package game

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"strings"
)

// Game is the player-facing state of one session: which squares have been
// revealed or flagged on top of a fixed Board. All fields are exported for
// gob round-tripping (sessions are persisted as opaque blobs).
type Game struct {
	Board     *Board
	Revealed  map[Cell]int
	Flagged   map[Cell]bool
	Dead, Won bool
	MoveCount int
}

func NewGame(b *Board) *Game {
	return &Game{
		Board:    b,
		Revealed: make(map[Cell]int),
		Flagged:  make(map[Cell]bool),
	}
}

func DecodeGame(buf []byte) (*Game, error) {
	var g Game
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&g)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (g Game) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(g)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g Game) Over() bool {
	return g.Dead || g.Won
}

// Reveal opens a square. Opening a mine kills the game; opening a square
// with no adjacent mines floods outwards through its neighborhood.
func (g *Game) Reveal(c Cell) error {
	if !g.Board.InBounds(c) {
		return fmt.Errorf("cell %s out of bounds", c)
	}
	if g.Over() {
		return fmt.Errorf("game is over")
	}
	if _, open := g.Revealed[c]; open || g.Flagged[c] {
		return nil
	}
	g.MoveCount++

	if g.Board.IsMine(c) {
		/*
		 * The player has landed on a mine. Bad luck. Mark the game
		 * dead but leave the rest of the board intact.
		 */
		g.Dead = true
		return nil
	}

	/*
	 * Otherwise the square is safe. Open it, and keep opening the
	 * neighborhoods of zero-count squares until nothing changes.
	 */
	todo := []Cell{c}
	for len(todo) > 0 {
		cur := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if _, done := g.Revealed[cur]; done {
			continue
		}
		count := g.Board.NearbyMineCount(cur)
		g.Revealed[cur] = count
		if count != 0 {
			continue
		}
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				n := Cell{cur.Row + dr, cur.Col + dc}
				if !g.Board.InBounds(n) || g.Board.IsMine(n) || g.Flagged[n] {
					continue
				}
				if _, done := g.Revealed[n]; !done {
					todo = append(todo, n)
				}
			}
		}
	}

	return nil
}

// ToggleFlag flags or unflags a covered square, then rechecks the win
// condition: the game is won once the flags match the mine set exactly.
func (g *Game) ToggleFlag(c Cell) error {
	if !g.Board.InBounds(c) {
		return fmt.Errorf("cell %s out of bounds", c)
	}
	if g.Over() {
		return fmt.Errorf("game is over")
	}
	if _, open := g.Revealed[c]; open {
		return nil
	}
	if g.Flagged[c] {
		delete(g.Flagged, c)
	} else {
		g.Flagged[c] = true
	}
	g.Won = g.Board.IsWon(g.Flagged)
	return nil
}

func (g *Game) Forfeit() {
	if !g.Over() {
		g.Dead = true
	}
}

// String renders the player's view: covered squares blank, flags as '*',
// open squares as their counts, mines as 'X' once the game is over.
func (g Game) String() string {
	var b strings.Builder
	for row := range g.Board.Height {
		for col := range g.Board.Width {
			c := Cell{row, col}
			var ch string
			switch {
			case g.Over() && g.Board.IsMine(c):
				ch = "X"
			case g.Flagged[c]:
				ch = "*"
			default:
				if count, open := g.Revealed[c]; open {
					ch = fmt.Sprint(count)
				} else {
					ch = " "
				}
			}
			fmt.Fprint(&b, ch+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
