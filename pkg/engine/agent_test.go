package engine

import (
	"testing"
)

func TestChooseMoveNoMoves(t *testing.T) {
	a := NewAgent(1)
	b := &Board{}
	if m, ok := a.ChooseMove(b, White); ok {
		t.Fatalf("agent found a move %s on a side with no pieces", m)
	}
}

func TestChooseMoveSingleCandidate(t *testing.T) {
	// A lone white pawn one step from promotion has exactly one move;
	// the agent must return it every time.
	b := &Board{}
	b.SetPiece(Square{1, 0}, Piece{White, Pawn})
	b.SetPiece(Square{0, 0}, Piece{Black, Rook})
	b.SetPiece(Square{0, 1}, Piece{Black, Rook})

	moves := Moves(b, White)
	if len(moves) != 1 {
		t.Fatalf("expected a single candidate, got %v", moves)
	}
	want := moves[0]

	for seed := int64(0); seed < 20; seed++ {
		m, ok := NewAgent(seed).ChooseMove(b, White)
		if !ok || m != want {
			t.Fatalf("seed %d: got %v/%v, want %v", seed, m, ok, want)
		}
	}
}

func TestChooseMoveIsGenerated(t *testing.T) {
	a := NewAgent(42)
	b := NewBoard()
	color := White
	for i := 0; i < 30; i++ {
		m, ok := a.ChooseMove(b, color)
		if !ok {
			break
		}
		found := false
		for _, c := range Moves(b, color) {
			if c == m {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("ply %d: agent returned %s which is not a generated move", i, m)
		}
		b.Apply(m)
		color = color.Other()
	}
}

func TestChooseMovePrefersBestCapture(t *testing.T) {
	// The white rook can take an undefended queen; material-wise that
	// dominates every other candidate.
	b := &Board{}
	b.SetPiece(Square{7, 0}, Piece{White, Rook})
	b.SetPiece(Square{7, 7}, Piece{Black, Queen})
	b.SetPiece(Square{0, 0}, Piece{Black, King})
	b.SetPiece(Square{0, 7}, Piece{White, King})

	want := Move{From: Square{7, 0}, To: Square{7, 7}}
	for seed := int64(0); seed < 20; seed++ {
		m, ok := NewAgent(seed).ChooseMove(b, White)
		if !ok || m != want {
			t.Fatalf("seed %d: got %v, want queen capture %v", seed, m, want)
		}
	}
}

func TestChooseMoveCaptureTieBreak(t *testing.T) {
	// Two pawn captures are available, one of a knight and one of a
	// rook. Both leave material up for White, but the rook capture wins
	// both the evaluation and the capture tie-break.
	b := &Board{}
	b.SetPiece(Square{4, 2}, Piece{White, Pawn})
	b.SetPiece(Square{3, 1}, Piece{Black, Knight})
	b.SetPiece(Square{3, 3}, Piece{Black, Rook})
	b.SetPiece(Square{7, 7}, Piece{White, King})
	b.SetPiece(Square{0, 0}, Piece{Black, King})

	want := Move{From: Square{4, 2}, To: Square{3, 3}}
	for seed := int64(0); seed < 20; seed++ {
		m, ok := NewAgent(seed).ChooseMove(b, White)
		if !ok || m != want {
			t.Fatalf("seed %d: got %v, want rook capture %v", seed, m, want)
		}
	}
}

func TestChooseMoveSeededReproducible(t *testing.T) {
	b := NewBoard()
	first, ok := NewAgent(7).ChooseMove(b, White)
	if !ok {
		t.Fatal("no move in the starting position")
	}
	for i := 0; i < 10; i++ {
		m, ok := NewAgent(7).ChooseMove(b, White)
		if !ok || m != first {
			t.Fatalf("run %d: got %v, want %v", i, m, first)
		}
	}
}

func TestChooseMoveDoesNotMutate(t *testing.T) {
	a := NewAgent(3)
	b := NewBoard()
	before := b.Placement()
	a.ChooseMove(b, Black)
	if got := b.Placement(); got != before {
		t.Fatalf("ChooseMove mutated the board: %s", got)
	}
}
