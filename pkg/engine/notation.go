package engine

import (
	"fmt"
	"strings"
)

// Algebraic notation helpers. Engine rank 0 is the top row of the board,
// which is algebraic rank 8; file 0 is the a-file.

// String formats the square in algebraic notation ("e4"). Off-board
// squares format as "-".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+s.File, '8'-s.Rank)
}

// ParseSquare parses an algebraic square like "e4".
func ParseSquare(v string) (Square, error) {
	if len(v) != 2 || v[0] < 'a' || v[0] > 'h' || v[1] < '1' || v[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", v)
	}
	return Square{Rank: int('8' - v[1]), File: int(v[0] - 'a')}, nil
}

// letters maps kinds to FEN letters (upper case, White's set).
var letters = [...]byte{Pawn: 'P', Knight: 'N', Bishop: 'B', Rook: 'R', Queen: 'Q', King: 'K'}

// glyphs holds the unicode chess symbols, White's set first.
var glyphs = [2][7]rune{
	{Pawn: '♙', Knight: '♘', Bishop: '♗', Rook: '♖', Queen: '♕', King: '♔'},
	{Pawn: '♟', Knight: '♞', Bishop: '♝', Rook: '♜', Queen: '♛', King: '♚'},
}

// Letter returns the FEN letter for the piece: upper case for White,
// lower case for Black, space for NoPiece.
func (p Piece) Letter() byte {
	if p.Kind == NoKind {
		return ' '
	}
	l := letters[p.Kind]
	if p.Color == Black {
		l += 'a' - 'A'
	}
	return l
}

// Rune returns the unicode chess glyph for the piece, or a space for
// NoPiece.
func (p Piece) Rune() rune {
	if p.Kind == NoKind {
		return ' '
	}
	return glyphs[p.Color][p.Kind]
}

// kindFromLetter maps a FEN letter (either case) to its kind.
func kindFromLetter(l byte) PieceKind {
	switch l {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoKind
}

// String formats the move in UCI style: source square, destination square
// and an optional promotion letter ("e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += string(letters[m.Promotion] + ('a' - 'A'))
	}
	return s
}

// ParseMove parses a UCI style move like "e2e4" or "e7e8q".
func ParseMove(v string) (Move, error) {
	if len(v) != 4 && len(v) != 5 {
		return Move{}, fmt.Errorf("invalid move %q", v)
	}
	from, err := ParseSquare(v[:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q", v)
	}
	to, err := ParseSquare(v[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q", v)
	}
	m := Move{From: from, To: to}
	if len(v) == 5 {
		m.Promotion = kindFromLetter(v[4])
		if m.Promotion == NoKind {
			return Move{}, fmt.Errorf("invalid promotion in %q", v)
		}
	}
	return m, nil
}

// Placement encodes the piece placement as the board field of a FEN string
// ("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR" for the starting
// position). The engine tracks no castling rights, en passant target or
// move counters, so the placement plus the side to move is the entire
// session state on the wire.
func (b *Board) Placement() string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		empty := 0
		for f := 0; f < 8; f++ {
			p := b.grid[r][f]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r != 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ParsePlacement decodes a FEN piece placement field into a board.
func ParsePlacement(v string) (*Board, error) {
	rows := strings.Split(v, "/")
	if len(rows) != 8 {
		return nil, fmt.Errorf("invalid placement %q", v)
	}
	b := &Board{}
	for r, row := range rows {
		f := 0
		for i := 0; i < len(row); i++ {
			ch := row[i]
			if ch >= '1' && ch <= '8' {
				f += int(ch - '0')
				continue
			}
			kind := kindFromLetter(ch)
			if kind == NoKind || f > 7 {
				return nil, fmt.Errorf("invalid placement %q", v)
			}
			color := White
			if ch >= 'a' {
				color = Black
			}
			b.grid[r][f] = Piece{color, kind}
			f++
		}
		if f != 8 {
			return nil, fmt.Errorf("invalid placement %q", v)
		}
	}
	return b, nil
}
