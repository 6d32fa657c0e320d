package solver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vancomm/minesweeper-ai/internal/game"
)

// Sentence is a single piece of knowledge about the board: exactly Count
// of the squares in Cells are mines. Sentences shrink in place as squares
// around them get classified.
type Sentence struct {
	Cells map[game.Cell]bool
	Count int
}

func NewSentence(cells map[game.Cell]bool, count int) *Sentence {
	s := &Sentence{
		Cells: make(map[game.Cell]bool, len(cells)),
		Count: count,
	}
	for c := range cells {
		s.Cells[c] = true
	}
	return s
}

// KnownMines returns every cell of the sentence when all of them must be
// mines, i.e. the mine count equals the (non-zero) cell count. Otherwise
// nil: the sentence carries no new information on its own.
func (s Sentence) KnownMines() []game.Cell {
	if len(s.Cells) == 0 || len(s.Cells) != s.Count {
		return nil
	}
	return s.cellList()
}

// KnownSafes returns every cell of the sentence when none of them can be
// a mine. Count <= 0 rather than == 0: subset subtraction may transiently
// drive a count negative, and such a sentence still proves its cells safe.
func (s Sentence) KnownSafes() []game.Cell {
	if len(s.Cells) == 0 || s.Count > 0 {
		return nil
	}
	return s.cellList()
}

// MarkMine records the outside fact that cell is a mine: it leaves the
// sentence and takes one of the counted mines with it.
func (s *Sentence) MarkMine(cell game.Cell) {
	if s.Cells[cell] {
		delete(s.Cells, cell)
		s.Count--
	}
}

// MarkSafe records the outside fact that cell is safe: it leaves the
// sentence and the count stands.
func (s *Sentence) MarkSafe(cell game.Cell) {
	delete(s.Cells, cell)
}

// Equal compares by value: same cell set, same count.
func (s Sentence) Equal(other *Sentence) bool {
	if s.Count != other.Count || len(s.Cells) != len(other.Cells) {
		return false
	}
	for c := range s.Cells {
		if !other.Cells[c] {
			return false
		}
	}
	return true
}

// subsetOf reports whether every cell of s belongs to other.
func (s Sentence) subsetOf(other *Sentence) bool {
	if len(s.Cells) > len(other.Cells) {
		return false
	}
	for c := range s.Cells {
		if !other.Cells[c] {
			return false
		}
	}
	return true
}

// subtract derives the more specific sentence over other's cells not in s,
// holding other.Count - s.Count mines. Caller guarantees s ⊂ other.
func (s Sentence) subtract(other *Sentence) *Sentence {
	diff := &Sentence{
		Cells: make(map[game.Cell]bool, len(other.Cells)-len(s.Cells)),
		Count: other.Count - s.Count,
	}
	for c := range other.Cells {
		if !s.Cells[c] {
			diff.Cells[c] = true
		}
	}
	return diff
}

func (s Sentence) cellList() []game.Cell {
	cells := make([]game.Cell, 0, len(s.Cells))
	for c := range s.Cells {
		cells = append(cells, c)
	}
	return cells
}

func (s Sentence) String() string {
	cells := s.cellList()
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return fmt.Sprintf("{%s} = %d", strings.Join(parts, " "), s.Count)
}
