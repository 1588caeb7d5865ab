package pkg

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/qnkhuat/termchess/pkg/engine"
)

var (
	lightSquare = color.New(color.BgYellow, color.FgBlack)
	darkSquare  = color.New(color.BgGreen, color.FgBlack)
	legendStyle = color.New(color.FgHiBlack)
)

// FprintBoard writes an ANSI-colored board, ranks labelled on the left
// and files underneath, from the given side's perspective. Used by demo
// mode and for dumping the final position; the interactive client draws
// with tview instead.
func FprintBoard(w io.Writer, b *engine.Board, perspective engine.Color) {
	for row := 0; row < 8; row++ {
		rank := row
		if perspective == engine.Black {
			rank = 7 - row
		}
		legendStyle.Fprintf(w, "%d ", 8-rank)
		for col := 0; col < 8; col++ {
			file := col
			if perspective == engine.Black {
				file = 7 - col
			}
			sq := engine.Square{Rank: rank, File: file}
			style := darkSquare
			if (sq.Rank+sq.File)%2 == 0 {
				style = lightSquare
			}
			style.Fprintf(w, "%c ", b.Piece(sq).Rune())
		}
		fmt.Fprintln(w)
	}
	if perspective == engine.Black {
		legendStyle.Fprintln(w, "  h g f e d c b a")
	} else {
		legendStyle.Fprintln(w, "  a b c d e f g h")
	}
}
