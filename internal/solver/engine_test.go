package solver

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/minesweeper-ai/internal/game"
)

func TestMain(m *testing.M) {
	Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	m.Run()
}

func TestObserveMarksCellSafe(t *testing.T) {
	e := NewEngine(3, 3)
	c := game.Cell{Row: 1, Col: 1}

	e.Observe(c, 2)

	assert.True(t, e.MovesMade[c])
	assert.True(t, e.Safes[c])
}

func TestDirectResolutionSaturatedNeighborhood(t *testing.T) {
	// every neighbor of the center is a mine
	e := NewEngine(3, 3)

	e.Observe(game.Cell{Row: 1, Col: 1}, 8)

	require.Len(t, e.Mines, 8)
	for row := range 3 {
		for col := range 3 {
			c := game.Cell{Row: row, Col: col}
			if row == 1 && col == 1 {
				assert.False(t, e.Mines[c])
			} else {
				assert.True(t, e.Mines[c], "expected %s to be a mine", c)
			}
		}
	}
}

func TestZeroCountEndToEnd(t *testing.T) {
	// 1x3 board, mine at 0:2; revealing 0:0 (count 0) proves 0:1 safe
	e := NewEngine(1, 3)

	e.Observe(game.Cell{Row: 0, Col: 0}, 0)

	next := game.Cell{Row: 0, Col: 1}
	assert.True(t, e.Safes[next])

	move, ok := e.SafeMove()
	require.True(t, ok)
	assert.Equal(t, next, move)

	e.Observe(move, 1)
	_, ok = e.SafeMove()
	assert.False(t, ok, "no unplayed safe square should remain")
}

func TestSubsetReduction(t *testing.T) {
	var (
		c1 = game.Cell{Row: 0, Col: 0}
		c2 = game.Cell{Row: 0, Col: 1}
		c3 = game.Cell{Row: 0, Col: 2}
		c4 = game.Cell{Row: 0, Col: 3}
	)
	e := NewEngine(1, 4)
	e.Knowledge = []*Sentence{
		NewSentence(cells(c1, c2, c3), 1),
		NewSentence(cells(c1, c2, c3, c4), 2),
	}

	e.reduceSubsets()

	require.Len(t, e.Knowledge, 2)
	derived := e.Knowledge[1]
	assert.True(t, derived.Equal(NewSentence(cells(c4), 1)),
		"expected {0:3} = 1, got %s", derived)

	e.resolveKnown()
	assert.True(t, e.Mines[c4])
}

func TestSubsetReductionUsesPrePassSentences(t *testing.T) {
	// two disjoint subsets of the same superset: each derivation must be
	// computed against the original superset, not an earlier replacement
	var (
		c1 = game.Cell{Row: 0, Col: 0}
		c2 = game.Cell{Row: 0, Col: 1}
		c3 = game.Cell{Row: 0, Col: 2}
	)
	e := NewEngine(1, 3)
	e.Knowledge = []*Sentence{
		NewSentence(cells(c1), 1),
		NewSentence(cells(c2), 0),
		NewSentence(cells(c1, c2, c3), 1),
	}

	e.reduceSubsets()

	require.Len(t, e.Knowledge, 3)
	derived := e.Knowledge[2]
	ok := derived.Equal(NewSentence(cells(c2, c3), 0)) ||
		derived.Equal(NewSentence(cells(c1, c3), 1))
	assert.True(t, ok, "derived sentence %s not computed from the pre-pass superset", derived)
}

func TestDeductionIdempotent(t *testing.T) {
	e := NewEngine(4, 4)
	e.Observe(game.Cell{Row: 0, Col: 0}, 1)
	e.Observe(game.Cell{Row: 3, Col: 3}, 0)
	e.Observe(game.Cell{Row: 0, Col: 3}, 2)

	safes, mines := len(e.Safes), len(e.Mines)

	e.resolveKnown()
	e.reduceSubsets()
	e.resolveKnown()

	assert.Equal(t, safes, len(e.Safes), "stable state grew safes")
	assert.Equal(t, mines, len(e.Mines), "stable state grew mines")
}

func TestRandomMoveExclusions(t *testing.T) {
	e := NewEngine(3, 3)
	e.MovesMade[game.Cell{Row: 0, Col: 0}] = true
	e.MovesMade[game.Cell{Row: 1, Col: 1}] = true
	e.Mines[game.Cell{Row: 2, Col: 2}] = true

	r := rand.New(rand.NewPCG(1, 2))
	for range 1000 {
		c, ok := e.RandomMove(r)
		require.True(t, ok)
		assert.False(t, e.MovesMade[c], "%s was already played", c)
		assert.False(t, e.Mines[c], "%s is a known mine", c)
	}
}

func TestRandomMoveExhausted(t *testing.T) {
	e := NewEngine(1, 2)
	e.MovesMade[game.Cell{Row: 0, Col: 0}] = true
	e.Mines[game.Cell{Row: 0, Col: 1}] = true

	r := rand.New(rand.NewPCG(1, 2))
	_, ok := e.RandomMove(r)
	assert.False(t, ok)
}

func TestSafeMoveDoesNotMutate(t *testing.T) {
	e := NewEngine(2, 2)
	e.Observe(game.Cell{Row: 0, Col: 0}, 0)

	moves, safes, mines := len(e.MovesMade), len(e.Safes), len(e.Mines)
	knowledge := len(e.Knowledge)

	for range 10 {
		e.SafeMove()
	}

	assert.Equal(t, moves, len(e.MovesMade))
	assert.Equal(t, safes, len(e.Safes))
	assert.Equal(t, mines, len(e.Mines))
	assert.Equal(t, knowledge, len(e.Knowledge))
}

/*
Play whole games against real boards and check the engine's conclusions
against the ground truth after every observation: anything it calls safe
must not be a mine, anything it calls a mine must be one, the two sets
never overlap, and neither ever shrinks. Random moves may still lose the
game; the classifications must be sound regardless.
*/
func TestEngineSoundnessFullGames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                     string
		height, width, mineCount int
	}{
		{"4x4(2)", 4, 4, 2},
		{"8x8(8)", 8, 8, 8},
		{"8x8(16)", 8, 8, 16},
		{"16x16(40)", 16, 16, 40},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))

			for round := range 20 {
				board, err := game.NewBoard(test.height, test.width, test.mineCount, r)
				require.NoError(t, err)

				e := NewEngine(test.height, test.width)
				prevSafes, prevMines := 0, 0

				for {
					move, ok := e.SafeMove()
					if !ok {
						if move, ok = e.RandomMove(r); !ok {
							break
						}
					}
					if board.IsMine(move) {
						break // guessed wrong, game over
					}
					e.Observe(move, board.NearbyMineCount(move))

					require.GreaterOrEqual(t, len(e.Safes), prevSafes,
						"round %d: safes shrank", round)
					require.GreaterOrEqual(t, len(e.Mines), prevMines,
						"round %d: mines shrank", round)
					prevSafes, prevMines = len(e.Safes), len(e.Mines)

					for c := range e.Safes {
						require.False(t, board.IsMine(c),
							"round %d: %s marked safe but is a mine", round, c)
					}
					for c := range e.Mines {
						require.True(t, board.IsMine(c),
							"round %d: %s marked mine but is safe", round, c)
						require.False(t, e.Safes[c],
							"round %d: %s in both safes and mines", round, c)
					}
				}
			}
		})
	}
}
