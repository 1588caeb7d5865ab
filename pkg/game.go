package pkg

import (
	"fmt"

	"github.com/qnkhuat/termchess/pkg/engine"
)

// Game is one session of play on top of the engine: the authoritative
// board, the side to move and the move history. It enforces turn order and
// membership in the engine's pseudo-legal move set, nothing more — the
// engine deliberately knows nothing about check, so neither does the
// session.
type Game struct {
	Board   *engine.Board
	Turn    engine.Color
	History []engine.Move
}

// NewGame starts a session from the standard position, White to move.
func NewGame() *Game {
	return &Game{
		Board: engine.NewBoard(),
		Turn:  engine.White,
	}
}

// GameFromState rebuilds a session from a wire placement and side to move.
// The move history is not carried over the wire.
func GameFromState(placement string, turn engine.Color) (*Game, error) {
	b, err := engine.ParsePlacement(placement)
	if err != nil {
		return nil, err
	}
	return &Game{Board: b, Turn: turn}, nil
}

// ValidMoves returns the pseudo-legal moves of the side to move.
func (g *Game) ValidMoves() []engine.Move {
	return engine.Moves(g.Board, g.Turn)
}

// MovesFrom returns the side to move's pseudo-legal moves starting on sq.
// Empty when sq is empty or holds the opponent's piece.
func (g *Game) MovesFrom(sq engine.Square) []engine.Move {
	return engine.MovesFrom(g.Board, g.Turn, sq)
}

// Apply plays m for the side to move. The move must match a generated
// move on its From/To squares; the promotion kind is taken from m as-is.
func (g *Game) Apply(m engine.Move) error {
	if g.Over() {
		return fmt.Errorf("game is over")
	}
	ok := false
	for _, c := range g.ValidMoves() {
		if c.From == m.From && c.To == m.To {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("illegal move %s for %s", m, g.Turn)
	}
	g.Board.Apply(m)
	g.History = append(g.History, m)
	g.Turn = g.Turn.Other()
	return nil
}

// ApplyUCI plays a move given in UCI notation.
func (g *Game) ApplyUCI(v string) error {
	m, err := engine.ParseMove(v)
	if err != nil {
		return err
	}
	return g.Apply(m)
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (engine.Move, bool) {
	if len(g.History) == 0 {
		return engine.Move{}, false
	}
	return g.History[len(g.History)-1], true
}

// Over reports whether the side to move has no pseudo-legal moves. The
// engine does not distinguish checkmate from stalemate; the app simply
// ends the game here.
func (g *Game) Over() bool {
	return len(g.ValidMoves()) == 0
}

// Status describes the session for display.
func (g *Game) Status() string {
	if g.Over() {
		return fmt.Sprintf("%s has no moves. Game over", g.Turn)
	}
	return fmt.Sprintf("%s to move", g.Turn)
}
