package pkg

import (
	"testing"

	"github.com/qnkhuat/termchess/pkg/engine"
)

func TestGameTurnOrder(t *testing.T) {
	g := NewGame()
	if g.Turn != engine.White {
		t.Fatalf("new game starts with %s", g.Turn)
	}

	if err := g.ApplyUCI("e2e4"); err != nil {
		t.Fatalf("e2e4 rejected: %v", err)
	}
	if g.Turn != engine.Black {
		t.Fatalf("turn is %s after White's move", g.Turn)
	}

	// White cannot move twice in a row.
	if err := g.ApplyUCI("d2d4"); err == nil {
		t.Fatal("White moved on Black's turn")
	}

	if err := g.ApplyUCI("e7e5"); err != nil {
		t.Fatalf("e7e5 rejected: %v", err)
	}
	if len(g.History) != 2 {
		t.Fatalf("history has %d moves, want 2", len(g.History))
	}
}

func TestGameRejectsMoves(t *testing.T) {
	g := NewGame()
	bad := []string{
		"",
		"e2",
		"e2e5", // pawns cannot triple step
		"e4e5", // empty square
		"e7e5", // opponent's piece
		"b1d2", // own pawn on the target square
	}
	for _, uci := range bad {
		if err := g.ApplyUCI(uci); err == nil {
			t.Errorf("ApplyUCI(%q) succeeded", uci)
		}
	}
	if len(g.History) != 0 {
		t.Fatalf("rejected moves left history %v", g.History)
	}
}

func TestGamePromotionKind(t *testing.T) {
	b := &engine.Board{}
	b.SetPiece(engine.Square{Rank: 1, File: 0}, engine.Piece{Color: engine.White, Kind: engine.Pawn})
	b.SetPiece(engine.Square{Rank: 7, File: 7}, engine.Piece{Color: engine.Black, Kind: engine.King})
	g := &Game{Board: b, Turn: engine.White}

	if err := g.ApplyUCI("a7a8r"); err != nil {
		t.Fatalf("promotion move rejected: %v", err)
	}
	got := g.Board.Piece(engine.Square{Rank: 0, File: 0})
	if got != (engine.Piece{Color: engine.White, Kind: engine.Rook}) {
		t.Fatalf("a8 holds %v, want white rook", got)
	}
}

func TestGameOver(t *testing.T) {
	g := NewGame()
	if g.Over() {
		t.Fatal("new game is over")
	}

	// A side with no pieces has no moves; the game is simply over. The
	// engine makes no checkmate/stalemate call and neither do we.
	empty := &Game{Board: &engine.Board{}, Turn: engine.White}
	if !empty.Over() {
		t.Fatal("side without moves is not over")
	}
	if err := empty.ApplyUCI("e2e4"); err == nil {
		t.Fatal("move applied to a finished game")
	}
}

func TestGameFromState(t *testing.T) {
	g := NewGame()
	if err := g.ApplyUCI("g1f3"); err != nil {
		t.Fatal(err)
	}

	mirror, err := GameFromState(g.Board.Placement(), g.Turn)
	if err != nil {
		t.Fatal(err)
	}
	if mirror.Turn != engine.Black {
		t.Fatalf("mirror turn = %s", mirror.Turn)
	}
	if got := mirror.Board.Placement(); got != g.Board.Placement() {
		t.Fatalf("mirror placement %s != %s", got, g.Board.Placement())
	}

	if _, err := GameFromState("not/a/board", engine.White); err == nil {
		t.Fatal("bad placement accepted")
	}
}
