package pkg

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/termchess/pkg/engine"
)

const (
	numrows = 8
	numcols = 8
)

// Client is the terminal UI. It renders the board in a tview table,
// highlights the destinations of the selected piece and either plays
// locally against the built-in agent or forwards moves to a server.
type Client struct {
	App    *tview.Application
	Board  *tview.Table
	Status *tview.TextView
	Layout *tview.Grid
	Game   *Game
	Color  PlayerColor // seat this client controls

	// local play
	local    bool
	agent    *engine.Agent
	botColor engine.Color

	// network play
	Conn   net.Conn
	Out    chan MessageInterface
	isTurn bool

	selecting     bool
	lastSelection engine.Square
	highlights    map[engine.Square]bool
	finished      bool // resigned or decided; blocks further input

	matchId                string
	statusLine             string
	whiteClock, blackClock string
}

func newClient() *Client {
	cl := &Client{
		App:        tview.NewApplication(),
		Board:      tview.NewTable(),
		Status:     tview.NewTextView().SetDynamicColors(true),
		Game:       NewGame(),
		Color:      White,
		Out:        make(chan MessageInterface, ConnQueueSize),
		highlights: make(map[engine.Square]bool),
	}

	resignBtn := tview.NewButton("Resign").SetSelectedFunc(func() {
		cl.resign()
	})
	newGameBtn := tview.NewButton("New").SetSelectedFunc(func() {
		cl.newGame()
	})
	exitBtn := tview.NewButton("Exit").SetSelectedFunc(func() {
		cl.App.Stop()
	})

	gameOptions := tview.NewGrid().
		SetColumns(8, 8, 8).
		SetRows(3, -1).
		AddItem(resignBtn, 0, 0, 1, 1, 0, 0, false).
		AddItem(newGameBtn, 0, 1, 1, 1, 0, 0, false).
		AddItem(exitBtn, 0, 2, 1, 1, 0, 0, false).
		AddItem(cl.Status, 1, 0, 1, 3, 0, 0, false)

	cl.Layout = tview.NewGrid().
		SetRows(-1, numrows+2, -1).
		SetColumns(-1, (numcols+1)*3, 30, -1).
		AddItem(cl.Board, 1, 1, 1, 1, 0, 0, true).
		AddItem(gameOptions, 1, 2, 1, 1, 0, 0, false)

	cl.initTable()
	return cl
}

// NewLocalClient plays a hotseat game against the built-in agent. The
// human takes humanColor, the agent the other side.
func NewLocalClient(humanColor engine.Color, seed int64) *Client {
	cl := newClient()
	cl.local = true
	cl.Color = seatColor(humanColor)
	cl.botColor = humanColor.Other()
	cl.agent = engine.NewAgent(seed)
	cl.statusLine = cl.Game.Status()
	cl.RenderTable()
	cl.renderStatus()
	if cl.Game.Turn == cl.botColor {
		cl.scheduleBot()
	}
	return cl
}

// NewClient plays over a server connection; call Connect before running
// the application.
func NewClient() *Client {
	cl := newClient()
	cl.statusLine = "Connecting..."
	cl.RenderTable()
	cl.renderStatus()
	return cl
}

func (cl *Client) initTable() {
	cl.Board.SetSelectable(true, true)
	cl.Board.Select(0, 1).SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			cl.App.Stop()
		}
		if key == tcell.KeyEnter {
			cl.Board.SetSelectable(true, true)
		}
	}).SetSelectedFunc(func(row, col int) {
		cl.onSelect(row, col)
	})
}

// myTurn reports whether the UI should accept a move right now.
func (cl *Client) myTurn() bool {
	if cl.finished || cl.Game.Over() {
		return false
	}
	if cl.local {
		return cl.Game.Turn != cl.botColor
	}
	return cl.isTurn && cl.Color == seatColor(cl.Game.Turn)
}

// onSelect drives the two-click move flow: pick one of your pieces, then
// pick one of its highlighted destinations.
func (cl *Client) onSelect(row, col int) {
	sq := cl.posToSquare(row, col)
	if !sq.Valid() {
		return
	}

	if cl.selecting {
		switch {
		case sq == cl.lastSelection:
			cl.clearSelection()
		case cl.highlights[sq]:
			mv := engine.Move{From: cl.lastSelection, To: sq}
			cl.clearSelection()
			cl.playMove(mv)
		default:
			cl.clearSelection()
			cl.trySelect(sq)
		}
	} else {
		cl.trySelect(sq)
	}
	cl.RenderTable()
	cl.renderStatus()
}

// trySelect highlights the piece on sq and its destinations if the piece
// belongs to this client and it is its turn.
func (cl *Client) trySelect(sq engine.Square) {
	if !cl.myTurn() {
		return
	}
	moves := cl.Game.MovesFrom(sq)
	if len(moves) == 0 {
		return
	}
	p := cl.Game.Board.Piece(sq)
	if seatColor(p.Color) != cl.Color {
		return
	}
	cl.selecting = true
	cl.lastSelection = sq
	cl.highlights[sq] = true
	for _, m := range moves {
		cl.highlights[m.To] = true
	}
}

func (cl *Client) clearSelection() {
	cl.selecting = false
	cl.lastSelection = engine.Square{}
	cl.highlights = make(map[engine.Square]bool)
}

// playMove applies the move locally or forwards it to the server. The
// promotion kind is left unset; the engine promotes to a queen.
func (cl *Client) playMove(mv engine.Move) {
	if cl.local {
		if err := cl.Game.Apply(mv); err != nil {
			log.Printf("Rejected move %s: %v", mv, err)
			return
		}
		cl.statusLine = cl.Game.Status()
		if !cl.Game.Over() && cl.Game.Turn == cl.botColor {
			cl.scheduleBot()
		}
		return
	}
	log.Printf("Move: %s", mv)
	cl.Out <- MessageMove{Move: mv.String()}
}

// scheduleBot lets the agent take its turn off the UI goroutine.
func (cl *Client) scheduleBot() {
	cl.statusLine = fmt.Sprintf("%s is thinking...", cl.botColor)
	go func() {
		time.Sleep(300 * time.Millisecond)
		cl.App.QueueUpdateDraw(func() {
			mv, ok := cl.agent.ChooseMove(cl.Game.Board, cl.botColor)
			if ok {
				if err := cl.Game.Apply(mv); err != nil {
					log.Printf("Bot move %s rejected: %v", mv, err)
				}
			}
			cl.statusLine = cl.Game.Status()
			cl.RenderTable()
			cl.renderStatus()
		})
	}()
}

func (cl *Client) resign() {
	if cl.local {
		if cl.finished || cl.Game.Over() {
			return
		}
		cl.finished = true
		cl.clearSelection()
		cl.statusLine = fmt.Sprintf("%s resigned", cl.Color)
		cl.RenderTable()
		cl.renderStatus()
		return
	}
	cl.Out <- MessageAction{Action: ActionResign}
}

func (cl *Client) newGame() {
	if cl.local {
		cl.Game = NewGame()
		cl.finished = false
		cl.clearSelection()
		cl.statusLine = cl.Game.Status()
		cl.RenderTable()
		cl.renderStatus()
		if cl.Game.Turn == cl.botColor {
			cl.scheduleBot()
		}
		return
	}
	cl.Out <- MessageAction{Action: ActionNewGameOffer}
}

// posToSquare maps a table cell to a board square, honoring the board
// flip for the black seat. Legend cells map off the board.
func (cl *Client) posToSquare(row, col int) engine.Square {
	if row >= numrows || col < 1 || col > numcols {
		return engine.Square{Rank: -1, File: -1}
	}
	if cl.Color == Black {
		return engine.Square{Rank: numrows - row - 1, File: numcols - col}
	}
	return engine.Square{Rank: row, File: col - 1}
}

// RenderTable redraws the board: rank legend on the left, file legend on
// the bottom, pieces as unicode glyphs on their square colors.
func (cl *Client) RenderTable() {
	board := cl.Game.Board
	for r := 0; r <= numrows; r++ {
		for f := 0; f <= numcols; f++ {
			if r == numrows && f == 0 {
				continue
			}

			if f == 0 { // rank legend
				label := fmt.Sprintf("%d", numrows-r)
				if cl.Color == Black {
					label = fmt.Sprintf("%d", r+1)
				}
				cell := tview.NewTableCell(label).
					SetAlign(tview.AlignCenter).
					SetSelectable(false)
				cl.Board.SetCell(r, f, cell)
				continue
			}

			if r == numrows { // file legend
				file := byte('a' + f - 1)
				if cl.Color == Black {
					file = byte('a' + numcols - f)
				}
				cell := tview.NewTableCell(fmt.Sprintf(" %c", file)).
					SetAlign(tview.AlignCenter).
					SetSelectable(false)
				cl.Board.SetCell(r, f, cell)
				continue
			}

			sq := cl.posToSquare(r, f)
			p := board.Piece(sq)
			fg := tcell.ColorWhite
			if p != engine.NoPiece && p.Color == engine.Black {
				fg = tcell.ColorBlack
			}
			cell := tview.NewTableCell(fmt.Sprintf(" %c", p.Rune())).
				SetAlign(tview.AlignCenter).
				SetTextColor(fg).
				SetBackgroundColor(squareToColor(sq, cl.highlights))
			cl.Board.SetCell(r, f, cell)
		}
	}
}

func (cl *Client) renderStatus() {
	clocks := ""
	if !cl.local {
		clocks = fmt.Sprintf("White %s\nBlack %s\n", cl.whiteClock, cl.blackClock)
	}
	match := ""
	if cl.matchId != "" {
		match = fmt.Sprintf("Match: %s\n", cl.matchId)
	}
	cl.Status.SetText(fmt.Sprintf("%sYou play %s\n%s%s", match, cl.Color, clocks, cl.statusLine))
}

// Connect dials the server and sends the join request. An empty match
// name lets the server pick one.
func (cl *Client) Connect(addr, match string) {
	log.Printf("Connecting to %s", addr)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		log.Panic(err)
	}
	cl.Conn = conn

	b := Encode(NewTransport(MessageJoin{Match: match}))
	b = append(b, '\n')
	if _, err := cl.Conn.Write(b); err != nil {
		log.Panic(err)
	}
}

func (cl *Client) Disconnect() {
	if cl.Conn != nil {
		cl.Conn.Close()
	}
}

// HandleWrite forwards outgoing messages onto the connection.
func (cl *Client) HandleWrite() {
	for command := range cl.Out {
		b := Encode(NewTransport(command))
		b = append(b, '\n')
		if _, err := cl.Conn.Write(b); err != nil {
			log.Printf("Failed to write: %v", err)
			return
		}
		log.Printf("Sent a msg type: %s", command.Type())
	}
}

// HandleRead applies server updates to the local mirror of the game.
func (cl *Client) HandleRead() {
	scanner := bufio.NewScanner(cl.Conn)
	for scanner.Scan() {
		var mt MessageTransport
		Decode(scanner.Bytes(), &mt)
		switch mt.MsgType {
		case TypeMessageConnect:
			var message MessageConnect
			Decode(mt.Data, &message)
			game, err := GameFromState(message.Board, message.Turn.Engine())
			if err != nil {
				log.Printf("Bad board from server: %v", err)
				continue
			}
			cl.App.QueueUpdateDraw(func() {
				cl.Game = game
				cl.Color = message.Color
				cl.matchId = message.Match
				cl.isTurn = message.IsTurn
				cl.statusLine = cl.Game.Status()
				cl.clearSelection()
				cl.RenderTable()
				cl.renderStatus()
			})

		case TypeMessageGame:
			var message MessageGame
			Decode(mt.Data, &message)
			game, err := GameFromState(message.Board, message.Turn.Engine())
			if err != nil {
				log.Printf("Bad board from server: %v", err)
				continue
			}
			cl.App.QueueUpdateDraw(func() {
				cl.Game = game
				cl.finished = false
				cl.isTurn = message.IsTurn
				cl.statusLine = message.Status
				cl.whiteClock = message.WhiteClock
				cl.blackClock = message.BlackClock
				cl.clearSelection()
				cl.RenderTable()
				cl.renderStatus()
			})

		case TypeMessageAction:
			var message MessageAction
			Decode(mt.Data, &message)
			cl.App.QueueUpdateDraw(func() {
				switch message.Action {
				case ActionWin:
					cl.finished = true
					cl.statusLine = "You win"
				case ActionLose:
					cl.finished = true
					cl.statusLine = "You lose"
				}
				cl.renderStatus()
			})

		default:
			log.Printf("Received unknown message %s", mt.MsgType)
		}
	}
}
