package pkg

import (
	"encoding/json"
)

type MessageType int

const (
	TypeMessageTransport MessageType = iota
	TypeMessageJoin
	TypeMessageConnect
	TypeMessageGame
	TypeMessageMove
	TypeMessageAction
)

func (m MessageType) String() string {
	switch m {
	case TypeMessageTransport:
		return "TypeMessageTransport"
	case TypeMessageJoin:
		return "TypeMessageJoin"
	case TypeMessageConnect:
		return "TypeMessageConnect"
	case TypeMessageGame:
		return "TypeMessageGame"
	case TypeMessageMove:
		return "TypeMessageMove"
	case TypeMessageAction:
		return "TypeMessageAction"
	default:
		return "Unknown MessageType"
	}
}

// MessageInterface is implemented by every message that can travel inside
// a MessageTransport envelope.
type MessageInterface interface {
	Type() MessageType
}

// MessageTransport is the newline-framed envelope every connection
// exchanges. PlayerId is filled in server side.
type MessageTransport struct {
	MsgType  MessageType
	Data     json.RawMessage
	PlayerId int
}

func (m MessageTransport) Type() MessageType {
	return TypeMessageTransport
}

// NewTransport wraps a message into its envelope.
func NewTransport(m MessageInterface) MessageTransport {
	return MessageTransport{MsgType: m.Type(), Data: Encode(m)}
}

// MessageJoin is the first message a client sends: which match it wants.
// An empty match name lets the server pick one.
type MessageJoin struct {
	Match string
	Name  string
}

func (m MessageJoin) Type() MessageType {
	return TypeMessageJoin
}

// MessageConnect tells a client which seat it got.
type MessageConnect struct {
	Color  PlayerColor
	Match  string
	Board  string // piece placement
	Turn   PlayerColor
	IsTurn bool
}

func (m MessageConnect) Type() MessageType {
	return TypeMessageConnect
}

// MessageGame carries the authoritative game state after every move.
type MessageGame struct {
	Board      string // piece placement
	Turn       PlayerColor
	IsTurn     bool
	LastMove   string
	Status     string
	WhiteClock string
	BlackClock string
}

func (m MessageGame) Type() MessageType {
	return TypeMessageGame
}

// MessageMove asks the server to play a move, in UCI notation ("e2e4",
// "e7e8q").
type MessageMove struct {
	Move string
}

func (m MessageMove) Type() MessageType {
	return TypeMessageMove
}

// MessageAction carries out-of-band game actions (resign, new game, ...).
type MessageAction struct {
	Action Action
}

func (m MessageAction) Type() MessageType {
	return TypeMessageAction
}
