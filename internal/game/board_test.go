package game

import (
	"math/rand/v2"
	"testing"
)

func TestNewBoardRejectsBadParams(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	tests := []struct {
		name                     string
		height, width, mineCount int
	}{
		{"zero height", 0, 8, 1},
		{"zero width", 8, 0, 1},
		{"negative mines", 8, 8, -1},
		{"too many mines", 3, 3, 10},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := NewBoard(test.height, test.width, test.mineCount, r); err == nil {
				t.Errorf("expected error for %dx%d with %d mines",
					test.width, test.height, test.mineCount)
			}
		})
	}
}

func TestNewBoardPlacesExactMineCount(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for _, mineCount := range []int{0, 1, 10, 63, 64} {
		b, err := NewBoard(8, 8, mineCount, r)
		if err != nil {
			t.Fatalf("failed to create board with %d mines: %v", mineCount, err)
		}
		if len(b.Mines) != mineCount {
			t.Errorf("expected %d mines, placed %d", mineCount, len(b.Mines))
		}
		for c := range b.Mines {
			if !b.InBounds(c) {
				t.Errorf("mine %s out of bounds", c)
			}
		}
	}
}

func fixedBoard() *Board {
	// . * .
	// . . .
	// * . .
	return &Board{
		Height: 3,
		Width:  3,
		Mines: map[Cell]bool{
			{0, 1}: true,
			{2, 0}: true,
		},
	}
}

func TestNearbyMineCount(t *testing.T) {
	b := fixedBoard()

	tests := []struct {
		cell Cell
		want int
	}{
		{Cell{0, 0}, 1},
		{Cell{0, 2}, 1},
		{Cell{1, 0}, 2},
		{Cell{1, 1}, 2},
		{Cell{1, 2}, 1},
		{Cell{2, 1}, 1},
		{Cell{2, 2}, 0},
		{Cell{0, 1}, 0}, // a mine square counts only its neighbors
	}
	for _, test := range tests {
		if got := b.NearbyMineCount(test.cell); got != test.want {
			t.Errorf("NearbyMineCount(%s) = %d, expected %d", test.cell, got, test.want)
		}
	}
}

func TestIsWon(t *testing.T) {
	b := fixedBoard()

	exact := map[Cell]bool{{0, 1}: true, {2, 0}: true}
	if !b.IsWon(exact) {
		t.Error("exact flag set should win")
	}

	missing := map[Cell]bool{{0, 1}: true}
	if b.IsWon(missing) {
		t.Error("missing flag should not win")
	}

	extra := map[Cell]bool{{0, 1}: true, {2, 0}: true, {2, 2}: true}
	if b.IsWon(extra) {
		t.Error("extra flag should not win")
	}
}
