// Package engine implements a simplified chess rules core: an 8x8 board,
// pseudo-legal move generation and a one-ply material-greedy agent.
//
// The engine is deliberately incomplete chess: no check detection, no
// castling, no en passant, no draw rules. Moves are pseudo-legal only and
// the caller decides what it means when a side has none.
package engine

// Color identifies a side.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Other returns the opposing side.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceKind identifies a kind of chess piece. The zero value NoKind marks
// an empty square.
type PieceKind int

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// materialValues maps a kind to its material value. The king is 0 so that
// it never dominates the evaluation.
var materialValues = [...]int{NoKind: 0, Pawn: 1, Knight: 3, Bishop: 3, Rook: 5, Queen: 9, King: 0}

// Value returns the material value of the kind.
func (k PieceKind) Value() int {
	if k < 0 || int(k) >= len(materialValues) {
		return 0
	}
	return materialValues[k]
}

// Piece is a colored piece. The zero value is NoPiece.
type Piece struct {
	Color Color
	Kind  PieceKind
}

// NoPiece marks an empty square.
var NoPiece = Piece{}

// Square addresses a board cell. Rank 0 is the top row (Black's back rank),
// rank 7 the bottom (White's back rank), file 0 the a-file.
type Square struct {
	Rank, File int
}

// Valid reports whether the square is on the board.
func (s Square) Valid() bool {
	return s.Rank >= 0 && s.Rank < 8 && s.File >= 0 && s.File < 8
}

// Move relocates the piece on From to To. Promotion is only consulted when
// a pawn reaches its far rank; NoKind selects the default (queen).
type Move struct {
	From, To  Square
	Promotion PieceKind
}

// Board holds the piece placement. The zero value is an empty board; use
// NewBoard or Reset for the standard starting position.
//
// Boards are plain values underneath: Clone is a full copy and clones never
// alias each other, which is what makes per-candidate lookahead safe.
type Board struct {
	grid [8][8]Piece
}

// backRank is the piece order of both back ranks, a-file first.
var backRank = [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns a board with the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset places the standard starting position: Black on ranks 0-1, White
// on ranks 6-7.
func (b *Board) Reset() {
	for f := 0; f < 8; f++ {
		b.grid[0][f] = Piece{Black, backRank[f]}
		b.grid[1][f] = Piece{Black, Pawn}
		for r := 2; r < 6; r++ {
			b.grid[r][f] = NoPiece
		}
		b.grid[6][f] = Piece{White, Pawn}
		b.grid[7][f] = Piece{White, backRank[f]}
	}
}

// Piece returns the piece on sq, or NoPiece if the square is empty or off
// the board.
func (b *Board) Piece(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.grid[sq.Rank][sq.File]
}

// SetPiece places p on sq. Off-board squares are ignored.
func (b *Board) SetPiece(sq Square, p Piece) {
	if !sq.Valid() {
		return
	}
	b.grid[sq.Rank][sq.File] = p
}

// promotionRank is the far rank for a pawn of the given color.
func promotionRank(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

// Apply relocates the piece on m.From to m.To, capturing whatever occupied
// m.To, and clears m.From. A pawn reaching its far rank becomes
// m.Promotion, or a queen when none is given. The promotion kind is not
// validated. Applying a move from an empty square does nothing.
func (b *Board) Apply(m Move) {
	p := b.Piece(m.From)
	if p == NoPiece {
		return
	}
	if p.Kind == Pawn && m.To.Rank == promotionRank(p.Color) {
		if m.Promotion != NoKind {
			p.Kind = m.Promotion
		} else {
			p.Kind = Queen
		}
	}
	b.SetPiece(m.To, p)
	b.SetPiece(m.From, NoPiece)
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// MaterialScore sums the material on the board, counting c's pieces
// positive and the opponent's negative. MaterialScore(White) is always the
// negation of MaterialScore(Black).
func (b *Board) MaterialScore(c Color) int {
	score := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := b.grid[r][f]
			if p == NoPiece {
				continue
			}
			if p.Color == c {
				score += p.Kind.Value()
			} else {
				score -= p.Kind.Value()
			}
		}
	}
	return score
}
