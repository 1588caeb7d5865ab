package pkg

import (
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/qnkhuat/termchess/pkg/engine"
)

const (
	DefaultClockDuration  = 10 * time.Minute
	DefaultClockIncrement = 5 * time.Second
)

// Match is one served game. The first connection gets White, the second
// Black, everyone after that watches. While a seat has no human in it the
// built-in agent plays it, so a single connection immediately has an
// opponent.
type Match struct {
	ID      string
	Game    *Game
	In      chan MessageTransport
	joins   chan net.Conn
	mu      sync.Mutex
	players []*Player
	clocks  [2]*Clock // indexed by engine.Color
	bot     *engine.Agent
	last    time.Time
	over    bool
}

func NewMatch(id string) *Match {
	m := &Match{
		ID:    id,
		Game:  NewGame(),
		In:    make(chan MessageTransport, MessageQueueSize),
		joins: make(chan net.Conn, ConnQueueSize),
		bot:   engine.NewAgent(time.Now().UnixNano()),
		last:  time.Now(),
	}
	m.clocks[engine.White] = NewClock(DefaultClockDuration, DefaultClockIncrement)
	m.clocks[engine.Black] = NewClock(DefaultClockDuration, DefaultClockIncrement)
	go m.run()
	return m
}

// AddConn hands the connection to the run goroutine for seating. Game
// state is only ever touched from that goroutine, so a join never reads a
// board that a move is rewriting.
func (m *Match) AddConn(conn net.Conn) {
	m.joins <- conn
}

// seat gives a new connection its color and starts its read/write pumps.
// Runs on the run goroutine.
func (m *Match) seat(conn net.Conn) {
	m.mu.Lock()
	p := NewPlayer(conn)
	p.Id = len(m.players)
	switch len(m.players) {
	case 0:
		p.Color = White
	case 1:
		p.Color = Black
	default:
		p.Color = Viewer
	}
	m.players = append(m.players, p)
	m.last = time.Now()
	m.mu.Unlock()

	go p.HandleWrite()
	go p.HandleRead(m.In)

	p.Out <- MessageConnect{
		Color:  p.Color,
		Match:  m.ID,
		Board:  m.Game.Board.Placement(),
		Turn:   seatColor(m.Game.Turn),
		IsTurn: p.Color == seatColor(m.Game.Turn),
	}
	log.Printf("Match %s: added a %s", m.ID, p.Color)
}

// Idle reports how long the match has been without traffic.
func (m *Match) Idle() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.last)
}

// Disconnect closes every connection in the match and stops its clocks.
func (m *Match) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		p.Disconnect()
	}
	m.clocks[engine.White].Stop()
	m.clocks[engine.Black].Stop()
}

func (m *Match) run() {
	for {
		select {
		case conn := <-m.joins:
			m.seat(conn)
		case mt := <-m.In:
			m.handle(mt)
		}
	}
}

func (m *Match) handle(mt MessageTransport) {
	m.mu.Lock()
	m.last = time.Now()
	m.mu.Unlock()

	switch mt.MsgType {
	case TypeMessageMove:
		var msg MessageMove
		Decode(mt.Data, &msg)
		if err := m.handleMove(mt.PlayerId, msg.Move); err != nil {
			log.Printf("Match %s: move %q rejected: %v", m.ID, msg.Move, err)
		}
	case TypeMessageAction:
		var msg MessageAction
		Decode(mt.Data, &msg)
		m.handleAction(mt.PlayerId, msg.Action)
	default:
		log.Printf("Match %s: unexpected message %s", m.ID, mt.MsgType)
	}
}

func (m *Match) player(id int) *Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

// seatTaken reports whether a human holds the seat of color c.
func (m *Match) seatTaken(c engine.Color) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.Color == seatColor(c) {
			return true
		}
	}
	return false
}

// handleMove applies a player's move, then lets the agent answer for any
// unmanned seat.
func (m *Match) handleMove(playerID int, uci string) error {
	if m.over {
		return fmt.Errorf("match is over")
	}
	p := m.player(playerID)
	if p == nil {
		return fmt.Errorf("unknown player %d", playerID)
	}
	if p.Color != seatColor(m.Game.Turn) {
		return fmt.Errorf("not %s's turn", p.Color)
	}
	if err := m.Game.ApplyUCI(uci); err != nil {
		return err
	}
	m.afterMove()
	m.playBot()
	return nil
}

// playBot makes the agent move while it owns the side to move. The agent
// returning no move means the side cannot move, which ends the game.
func (m *Match) playBot() {
	for !m.over && !m.Game.Over() && !m.seatTaken(m.Game.Turn) {
		mv, ok := m.bot.ChooseMove(m.Game.Board, m.Game.Turn)
		if !ok {
			break
		}
		if err := m.Game.Apply(mv); err != nil {
			log.Printf("Match %s: bot move %s rejected: %v", m.ID, mv, err)
			break
		}
		m.afterMove()
	}
}

// afterMove swaps the clocks and broadcasts the new state. The side that
// just moved is the one whose turn it no longer is.
func (m *Match) afterMove() {
	mover := m.Game.Turn.Other()
	m.clocks[mover].Tick()
	m.clocks[mover].Pause()
	if !m.Game.Over() {
		m.clocks[m.Game.Turn].Resume()
	} else {
		m.over = true
		m.clocks[m.Game.Turn].Pause()
	}
	m.broadcastGame()
}

func (m *Match) handleAction(playerID int, a Action) {
	p := m.player(playerID)
	if p == nil {
		return
	}
	switch a {
	case ActionResign:
		if p.Color != White && p.Color != Black {
			return
		}
		m.over = true
		m.broadcast(func(q *Player) MessageInterface {
			if q.Id == p.Id {
				return MessageAction{Action: ActionLose}
			}
			return MessageAction{Action: ActionWin}
		})
	case ActionNewGameOffer:
		if p.Color != White && p.Color != Black {
			return
		}
		m.Game = NewGame()
		m.over = false
		m.clocks[engine.White].Reset()
		m.clocks[engine.Black].Reset()
		m.broadcastGame()
	case ActionExit:
		p.Disconnect()
	default:
		log.Printf("Match %s: unhandled action %s", m.ID, a)
	}
}

// broadcast sends each player the message built for it.
func (m *Match) broadcast(build func(*Player) MessageInterface) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		select {
		case p.Out <- build(p):
		default:
			log.Printf("Match %s: dropping message for slow player %d", m.ID, p.Id)
		}
	}
}

func (m *Match) broadcastGame() {
	g := m.Game
	last := ""
	if mv, ok := g.LastMove(); ok {
		last = mv.String()
	}
	msg := MessageGame{
		Board:      g.Board.Placement(),
		Turn:       seatColor(g.Turn),
		LastMove:   last,
		Status:     g.Status(),
		WhiteClock: m.clocks[engine.White].String(),
		BlackClock: m.clocks[engine.Black].String(),
	}
	m.broadcast(func(p *Player) MessageInterface {
		pm := msg
		pm.IsTurn = p.Color == seatColor(g.Turn)
		return pm
	})
}
