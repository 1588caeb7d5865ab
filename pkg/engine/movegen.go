package engine

// Direction sets for the sliding pieces and the fixed offsets for knights
// and kings. Enumeration order is fixed so that Moves is deterministic for
// a given position.
var (
	bishopDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookDirs   = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	queenDirs  = [8][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	knightOffsets = [8][2]int{
		{-2, -1}, {-2, 1}, {2, -1}, {2, 1},
		{-1, -2}, {-1, 2}, {1, -2}, {1, 2},
	}
)

// Moves returns every pseudo-legal move for side c, scanning squares in
// row-major order. The board is never mutated. Moves that would leave the
// mover's own king capturable are NOT filtered out.
func Moves(b *Board, c Color) []Move {
	var moves []Move
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			from := Square{r, f}
			p := b.Piece(from)
			if p == NoPiece || p.Color != c {
				continue
			}
			moves = append(moves, pieceMoves(b, from, p)...)
		}
	}
	return moves
}

// MovesFrom returns the pseudo-legal moves for side c whose origin is the
// square from. It is empty when from is empty, off the board, or holds an
// opposing piece.
func MovesFrom(b *Board, c Color, from Square) []Move {
	p := b.Piece(from)
	if p == NoPiece || p.Color != c {
		return nil
	}
	return pieceMoves(b, from, p)
}

func pieceMoves(b *Board, from Square, p Piece) []Move {
	switch p.Kind {
	case Pawn:
		return pawnMoves(b, from, p.Color)
	case Knight:
		return knightMoves(b, from, p.Color)
	case Bishop:
		return slidingMoves(b, from, p.Color, bishopDirs[:])
	case Rook:
		return slidingMoves(b, from, p.Color, rookDirs[:])
	case Queen:
		return slidingMoves(b, from, p.Color, queenDirs[:])
	case King:
		return kingMoves(b, from, p.Color)
	}
	return nil
}

// pawnStartRank is the rank pawns of the given color start on, which
// permits the two-step advance.
func pawnStartRank(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// pawnMoves emits the single advance, the two-step advance from the start
// rank, and diagonal captures. Promotion is not encoded here; Board.Apply
// resolves it when the pawn lands on its far rank. No en passant.
func pawnMoves(b *Board, from Square, c Color) []Move {
	dir := 1
	if c == White {
		dir = -1
	}
	var moves []Move

	one := Square{from.Rank + dir, from.File}
	if one.Valid() && b.Piece(one) == NoPiece {
		moves = append(moves, Move{From: from, To: one})
		two := Square{one.Rank + dir, one.File}
		if from.Rank == pawnStartRank(c) && two.Valid() && b.Piece(two) == NoPiece {
			moves = append(moves, Move{From: from, To: two})
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := Square{from.Rank + dir, from.File + df}
		if !to.Valid() {
			continue
		}
		if t := b.Piece(to); t != NoPiece && t.Color != c {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func knightMoves(b *Board, from Square, c Color) []Move {
	var moves []Move
	for _, d := range knightOffsets {
		to := Square{from.Rank + d[0], from.File + d[1]}
		if !to.Valid() {
			continue
		}
		if t := b.Piece(to); t == NoPiece || t.Color != c {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// slidingMoves ray-casts along dirs: every empty square is a destination
// and the ray continues; the first occupied square ends the ray and is a
// destination only when it holds an enemy piece.
func slidingMoves(b *Board, from Square, c Color, dirs [][2]int) []Move {
	var moves []Move
	for _, d := range dirs {
		to := Square{from.Rank + d[0], from.File + d[1]}
		for to.Valid() {
			t := b.Piece(to)
			if t == NoPiece {
				moves = append(moves, Move{From: from, To: to})
			} else {
				if t.Color != c {
					moves = append(moves, Move{From: from, To: to})
				}
				break
			}
			to = Square{to.Rank + d[0], to.File + d[1]}
		}
	}
	return moves
}

// kingMoves emits the 8 adjacent squares. No castling.
func kingMoves(b *Board, from Square, c Color) []Move {
	var moves []Move
	for dr := -1; dr <= 1; dr++ {
		for df := -1; df <= 1; df++ {
			if dr == 0 && df == 0 {
				continue
			}
			to := Square{from.Rank + dr, from.File + df}
			if !to.Valid() {
				continue
			}
			if t := b.Piece(to); t == NoPiece || t.Color != c {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}
