package game

import (
	"reflect"
	"testing"
)

func TestRevealMineKillsGame(t *testing.T) {
	g := NewGame(fixedBoard())

	if err := g.Reveal(Cell{0, 1}); err != nil {
		t.Fatal(err)
	}
	if !g.Dead {
		t.Error("revealing a mine should kill the game")
	}
	if err := g.Reveal(Cell{2, 2}); err == nil {
		t.Error("expected error revealing after game over")
	}
}

func TestRevealFloodsZeroCountSquares(t *testing.T) {
	// . * .      1 * 1
	// . . .  =>  1 1 1
	// * . .      * 1 0  <- opening 2:2 floods its neighborhood
	g := NewGame(fixedBoard())

	if err := g.Reveal(Cell{2, 2}); err != nil {
		t.Fatal(err)
	}
	if g.Dead {
		t.Fatal("game should not be dead")
	}

	want := map[Cell]int{
		{1, 1}: 2,
		{1, 2}: 1,
		{2, 1}: 1,
		{2, 2}: 0,
	}
	if !reflect.DeepEqual(g.Revealed, want) {
		t.Errorf("expected revealed %v, got %v", want, g.Revealed)
	}
}

func TestRevealOutOfBounds(t *testing.T) {
	g := NewGame(fixedBoard())
	if err := g.Reveal(Cell{-1, 0}); err == nil {
		t.Error("expected error for out-of-bounds reveal")
	}
	if err := g.Reveal(Cell{0, 3}); err == nil {
		t.Error("expected error for out-of-bounds reveal")
	}
}

func TestFlagsWinGame(t *testing.T) {
	g := NewGame(fixedBoard())

	if err := g.ToggleFlag(Cell{0, 1}); err != nil {
		t.Fatal(err)
	}
	if g.Won {
		t.Error("one of two mines flagged should not win")
	}

	if err := g.ToggleFlag(Cell{2, 0}); err != nil {
		t.Fatal(err)
	}
	if !g.Won {
		t.Error("flagging exactly the mine set should win")
	}
}

func TestUnflagRevokesWin(t *testing.T) {
	g := NewGame(fixedBoard())
	g.ToggleFlag(Cell{0, 1})
	g.ToggleFlag(Cell{2, 2}) // wrong flag
	if g.Won {
		t.Error("wrong flag set should not win")
	}
	g.ToggleFlag(Cell{2, 2})
	g.ToggleFlag(Cell{2, 0})
	if !g.Won {
		t.Error("correcting the flags should win")
	}
}

func TestGameStateRoundTrip(t *testing.T) {
	g := NewGame(fixedBoard())
	g.Reveal(Cell{2, 2})
	g.ToggleFlag(Cell{0, 1})

	buf, err := g.Bytes()
	if err != nil {
		t.Fatalf("failed to serialize game: %v", err)
	}

	rt, err := DecodeGame(buf)
	if err != nil {
		t.Fatalf("failed to decode game: %v", err)
	}
	if !reflect.DeepEqual(g.Revealed, rt.Revealed) {
		t.Error("revealed set did not survive round trip")
	}
	if !reflect.DeepEqual(g.Flagged, rt.Flagged) {
		t.Error("flagged set did not survive round trip")
	}
	if !reflect.DeepEqual(g.Board.Mines, rt.Board.Mines) {
		t.Error("mine layout did not survive round trip")
	}
}
