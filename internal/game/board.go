package game

import (
	"fmt"
	"math/rand/v2"
)

// Cell addresses a single board square. Zero-indexed, row before column,
// comparable so it can key sets.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// Board owns the ground truth of a single game: dimensions and the hidden
// mine layout. It answers queries and never changes after construction.
type Board struct {
	Height, Width int
	Mines         map[Cell]bool
}

// NewBoard places mineCount distinct mines uniformly at random over the
// height×width grid.
func NewBoard(height, width, mineCount int, r *rand.Rand) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid board dimensions %dx%d", width, height)
	}
	if mineCount < 0 || mineCount > height*width {
		return nil, fmt.Errorf(
			"cannot place %d mines on a %dx%d board", mineCount, width, height,
		)
	}

	b := &Board{
		Height: height,
		Width:  width,
		Mines:  make(map[Cell]bool, mineCount),
	}

	/*
	 * Write down the list of possible mine locations, then pick
	 * mineCount off the list at random.
	 */
	candidates := make([]Cell, 0, height*width)
	for row := range height {
		for col := range width {
			candidates = append(candidates, Cell{row, col})
		}
	}
	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		b.Mines[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	return b, nil
}

func (b Board) InBounds(c Cell) bool {
	return 0 <= c.Row && c.Row < b.Height && 0 <= c.Col && c.Col < b.Width
}

func (b Board) IsMine(c Cell) bool {
	return b.Mines[c]
}

// NearbyMineCount reports how many of the up to 8 squares adjacent to c
// contain mines. Out-of-bounds neighbors are skipped, not wrapped.
func (b Board) NearbyMineCount(c Cell) (count int) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Cell{c.Row + dr, c.Col + dc}
			if b.InBounds(n) && b.Mines[n] {
				count++
			}
		}
	}
	return count
}

// IsWon reports whether flagged matches the true mine set exactly, both
// membership and cardinality.
func (b Board) IsWon(flagged map[Cell]bool) bool {
	if len(flagged) != len(b.Mines) {
		return false
	}
	for c := range flagged {
		if !b.Mines[c] {
			return false
		}
	}
	return true
}
