package engine

import (
	"reflect"
	"testing"
)

func TestRookOpenBoard(t *testing.T) {
	b := &Board{}
	from := Square{3, 3}
	b.SetPiece(from, Piece{White, Rook})

	moves := Moves(b, White)
	if len(moves) != 14 {
		t.Fatalf("lone rook generated %d moves, want 14", len(moves))
	}
	for _, m := range moves {
		if m.From != from {
			t.Errorf("move %s does not originate at %s", m, from)
		}
		if m.To.Rank != from.Rank && m.To.File != from.File {
			t.Errorf("move %s leaves the rook's rank and file", m)
		}
	}
}

func TestKnightCorner(t *testing.T) {
	b := &Board{}
	b.SetPiece(Square{0, 0}, Piece{White, Knight})

	moves := Moves(b, White)
	if len(moves) != 2 {
		t.Fatalf("corner knight generated %d moves, want 2", len(moves))
	}
	want := map[Square]bool{{2, 1}: true, {1, 2}: true}
	for _, m := range moves {
		if !want[m.To] {
			t.Errorf("unexpected knight destination %s", m.To)
		}
	}
}

func TestPawnAdvances(t *testing.T) {
	tests := []struct {
		name    string
		block   []Square // squares to occupy with an enemy pawn
		forward int      // expected number of non-capture moves
	}{
		{"start rank open", nil, 2},
		{"second square blocked", []Square{{4, 4}}, 1},
		{"first square blocked", []Square{{5, 4}}, 0},
		{"both blocked", []Square{{5, 4}, {4, 4}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Board{}
			b.SetPiece(Square{6, 4}, Piece{White, Pawn})
			for _, sq := range tt.block {
				b.SetPiece(sq, Piece{Black, Pawn})
			}
			moves := Moves(b, White)
			forward := 0
			for _, m := range moves {
				if m.To.File == 4 {
					forward++
				}
			}
			if forward != tt.forward {
				t.Errorf("got %d forward moves, want %d", forward, tt.forward)
			}
		})
	}
}

func TestPawnOffStartRankSingleStep(t *testing.T) {
	b := &Board{}
	b.SetPiece(Square{5, 4}, Piece{White, Pawn})
	moves := Moves(b, White)
	if len(moves) != 1 || moves[0].To != (Square{4, 4}) {
		t.Fatalf("pawn off its start rank generated %v, want single step", moves)
	}
}

func TestPawnCaptures(t *testing.T) {
	b := &Board{}
	b.SetPiece(Square{4, 4}, Piece{White, Pawn})
	b.SetPiece(Square{3, 3}, Piece{Black, Knight}) // capturable
	b.SetPiece(Square{3, 5}, Piece{White, Bishop}) // own piece, not capturable
	b.SetPiece(Square{3, 4}, Piece{Black, Pawn})   // blocks the advance

	moves := Moves(b, White)
	var pawn []Move
	for _, m := range moves {
		if m.From == (Square{4, 4}) {
			pawn = append(pawn, m)
		}
	}
	if len(pawn) != 1 || pawn[0].To != (Square{3, 3}) {
		t.Fatalf("pawn moves = %v, want single capture to d5", pawn)
	}
}

func TestSlidingStopsAtBlockers(t *testing.T) {
	b := &Board{}
	b.SetPiece(Square{3, 3}, Piece{White, Rook})
	b.SetPiece(Square{3, 6}, Piece{Black, Pawn}) // capturable, ends the ray
	b.SetPiece(Square{5, 3}, Piece{White, Pawn}) // own piece, ends the ray early

	moves := MovesFrom(b, White, Square{3, 3})
	dests := make(map[Square]bool)
	for _, m := range moves {
		dests[m.To] = true
	}
	if !dests[Square{3, 6}] {
		t.Error("rook cannot capture the enemy pawn ending its ray")
	}
	if dests[Square{3, 7}] {
		t.Error("rook slides through an enemy piece")
	}
	if dests[Square{5, 3}] || dests[Square{6, 3}] {
		t.Error("rook moves onto or through its own pawn")
	}
	if len(moves) != 10 {
		t.Errorf("rook generated %d moves, want 10", len(moves))
	}
}

func TestKingMoves(t *testing.T) {
	b := &Board{}
	b.SetPiece(Square{4, 4}, Piece{White, King})
	if got := len(Moves(b, White)); got != 8 {
		t.Errorf("central king generated %d moves, want 8", got)
	}

	b = &Board{}
	b.SetPiece(Square{0, 0}, Piece{Black, King})
	if got := len(Moves(b, Black)); got != 3 {
		t.Errorf("corner king generated %d moves, want 3", got)
	}
}

func TestStartingPositionMoveCount(t *testing.T) {
	// 16 pawn moves plus 4 knight moves per side.
	b := NewBoard()
	if got := len(Moves(b, White)); got != 20 {
		t.Errorf("White has %d opening moves, want 20", got)
	}
	if got := len(Moves(b, Black)); got != 20 {
		t.Errorf("Black has %d opening moves, want 20", got)
	}
}

func TestMovesFromFilters(t *testing.T) {
	b := NewBoard()

	if got := MovesFrom(b, White, Square{4, 4}); len(got) != 0 {
		t.Errorf("empty square yielded %v", got)
	}
	if got := MovesFrom(b, White, Square{1, 0}); len(got) != 0 {
		t.Errorf("opponent square yielded %v", got)
	}
	if got := MovesFrom(b, White, Square{-3, 12}); len(got) != 0 {
		t.Errorf("off-board square yielded %v", got)
	}

	from := Square{6, 4}
	got := MovesFrom(b, White, from)
	var want []Move
	for _, m := range Moves(b, White) {
		if m.From == from {
			want = append(want, m)
		}
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MovesFrom = %v, want %v", got, want)
	}
}

func TestMovesDoesNotMutate(t *testing.T) {
	b := NewBoard()
	before := b.Placement()
	Moves(b, White)
	Moves(b, Black)
	if got := b.Placement(); got != before {
		t.Fatalf("Moves mutated the board: %s", got)
	}
}

func TestMovesDeterministicOrder(t *testing.T) {
	b := NewBoard()
	b.Apply(Move{From: Square{6, 4}, To: Square{4, 4}})
	first := Moves(b, Black)
	second := Moves(b, Black)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("move order is not deterministic")
	}
}
