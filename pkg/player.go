package pkg

import (
	"bufio"
	"log"
	"net"

	"github.com/qnkhuat/termchess/pkg/engine"
)

type PlayerColor int

const (
	White PlayerColor = iota
	Black
	Viewer
	Unknown
)

func (pc PlayerColor) String() string {
	switch pc {
	case White:
		return "White"
	case Black:
		return "Black"
	case Viewer:
		return "Viewer"
	default:
		return "Unknown"
	}
}

// Engine converts a seat color to the engine's color. Only meaningful for
// White and Black.
func (pc PlayerColor) Engine() engine.Color {
	if pc == Black {
		return engine.Black
	}
	return engine.White
}

// seatColor converts an engine color to its seat.
func seatColor(c engine.Color) PlayerColor {
	if c == engine.Black {
		return Black
	}
	return White
}

// Player is one connection to a match: a seat color and a buffered outbox.
type Player struct {
	Conn  net.Conn
	Color PlayerColor
	Out   chan MessageInterface
	Id    int
	Name  string
}

func NewPlayer(conn net.Conn) *Player {
	p := &Player{
		Conn: conn,
		Out:  make(chan MessageInterface, ConnQueueSize),
	}
	return p
}

// HandleRead forwards incoming envelopes to the match, tagged with the
// player id.
func (p *Player) HandleRead(in chan MessageTransport) {
	scanner := bufio.NewScanner(p.Conn)
	for scanner.Scan() {
		var mt MessageTransport
		Decode(scanner.Bytes(), &mt)
		mt.PlayerId = p.Id
		in <- mt
	}
}

// HandleWrite drains the outbox onto the connection, one envelope per
// line.
func (p *Player) HandleWrite() {
	for message := range p.Out {
		b := Encode(NewTransport(message))
		b = append(b, '\n')
		if _, err := p.Conn.Write(b); err != nil {
			log.Printf("Failed to write: %v Error: %v", message, err)
		}
	}
}

func (p *Player) Disconnect() {
	p.Conn.Close()
}
