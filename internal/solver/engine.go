package solver

import (
	"log/slog"
	"math/rand/v2"

	"github.com/vancomm/minesweeper-ai/internal/game"
)

var Log *slog.Logger = slog.Default()

/* ----------------------------------------------------------------------
 * Deductive minesweeper player. The engine accumulates sentences of the
 * form "exactly N of these squares are mines" and runs two rules over
 * them: direct resolution (a sentence whose count is zero or equals its
 * cardinality classifies all its squares at once) and subset reduction
 * (a sentence contained in another splits the larger one's mine count).
 * No guessing, no probabilities; anything the rules cannot reach stays
 * unknown until a later observation unlocks it.
 */

type Engine struct {
	Height, Width int
	MovesMade     map[game.Cell]bool
	Safes         map[game.Cell]bool
	Mines         map[game.Cell]bool
	Knowledge     []*Sentence
}

func NewEngine(height, width int) *Engine {
	return &Engine{
		Height:    height,
		Width:     width,
		MovesMade: make(map[game.Cell]bool),
		Safes:     make(map[game.Cell]bool),
		Mines:     make(map[game.Cell]bool),
	}
}

// MarkMine records cell as a proven mine and tells every sentence so.
func (e *Engine) MarkMine(cell game.Cell) {
	e.Mines[cell] = true
	for _, s := range e.Knowledge {
		s.MarkMine(cell)
	}
}

// MarkSafe records cell as proven safe and tells every sentence so.
func (e *Engine) MarkSafe(cell game.Cell) {
	e.Safes[cell] = true
	for _, s := range e.Knowledge {
		s.MarkSafe(cell)
	}
}

/*
Neighbors collects the squares adjacent to cell, clipped to the grid,
minus anything already proven safe. Squares already proven to be mines
stay in: the sentence built over the result still counts them, and the
MarkMine propagation resolves them out on the spot.
*/
func (e Engine) Neighbors(cell game.Cell) map[game.Cell]bool {
	ns := make(map[game.Cell]bool, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := game.Cell{Row: cell.Row + dr, Col: cell.Col + dc}
			if n.Row < 0 || n.Row >= e.Height || n.Col < 0 || n.Col >= e.Width {
				continue
			}
			if e.Safes[n] {
				continue
			}
			ns[n] = true
		}
	}
	return ns
}

/*
Observe ingests one revealed square and its adjacent-mine count, then
deduces everything currently reachable: it records the move, marks the
square safe, adds a sentence over the square's unresolved neighborhood,
drains the direct-resolution rule to a fixed point and finally runs one
pass of subset reduction. The engine trusts count completely.
*/
func (e *Engine) Observe(cell game.Cell, count int) {
	e.MovesMade[cell] = true
	e.MarkSafe(cell)

	neighbors := e.Neighbors(cell)
	sentence := NewSentence(neighbors, count)
	e.Knowledge = append(e.Knowledge, sentence)
	Log.Debug("observed", "cell", cell, "sentence", sentence)

	e.resolveKnown()
	e.reduceSubsets()
}

/*
resolveKnown repeatedly sweeps the knowledge base marking every square
some sentence fully determines, until a whole sweep classifies nothing.
Terminates because each classification removes the square from every
sentence that mentions it, and nothing is added here: the total number
of (sentence, cell) memberships only shrinks.
*/
func (e *Engine) resolveKnown() {
	for {
		changed := 0
		for _, s := range e.Knowledge {
			for _, c := range s.KnownMines() {
				if !e.Mines[c] {
					changed++
				}
				e.MarkMine(c)
			}
			for _, c := range s.KnownSafes() {
				if !e.Safes[c] {
					changed++
				}
				e.MarkSafe(c)
			}
		}
		if changed == 0 {
			return
		}
		Log.Debug("resolution pass", "classified", changed)
	}
}

/*
reduceSubsets makes a single pairwise pass over the knowledge base. When
one sentence's cells sit strictly inside another's, the larger sentence
is replaced by its difference with the smaller: those cells must hold
exactly the difference of the two counts. Replacements land in a cloned
arena by index and are swapped in only after the full scan, so every
comparison within the pass sees the pre-pass sentences. The pass is not
iterated to its own fixed point; later observations pick up whatever a
single pass leaves on the table.
*/
func (e *Engine) reduceSubsets() {
	next := make([]*Sentence, len(e.Knowledge))
	copy(next, e.Knowledge)
	replaced := false

	for i, small := range e.Knowledge {
		for j, big := range e.Knowledge {
			if i == j ||
				len(small.Cells) == 0 || len(big.Cells) == 0 ||
				len(small.Cells) >= len(big.Cells) {
				continue
			}
			if small.subsetOf(big) {
				derived := small.subtract(big)
				Log.Debug("subset reduction",
					"small", small, "big", big, "derived", derived)
				next[j] = derived
				replaced = true
			}
		}
	}

	if replaced {
		e.Knowledge = next
	}
}

// SafeMove returns a square proven safe that has not been played yet.
// Read-only; which of several candidates comes back is unspecified.
func (e Engine) SafeMove() (game.Cell, bool) {
	for c := range e.Safes {
		if !e.MovesMade[c] {
			return c, true
		}
	}
	return game.Cell{}, false
}

// RandomMove picks uniformly among the squares that have been neither
// played nor proven to be mines. ok is false when no such square exists.
func (e Engine) RandomMove(r *rand.Rand) (game.Cell, bool) {
	candidates := make([]game.Cell, 0, e.Height*e.Width)
	for row := range e.Height {
		for col := range e.Width {
			c := game.Cell{Row: row, Col: col}
			if !e.MovesMade[c] && !e.Mines[c] {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return game.Cell{}, false
	}
	return candidates[r.IntN(len(candidates))], true
}
