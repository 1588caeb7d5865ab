package pkg

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"github.com/creack/pty"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
	ServerPort        = ":1998"
	MessageQueueSize  = 20
	ConnQueueSize     = 10
)

// Server hosts matches over plain TCP and serves the terminal client over
// SSH so nothing needs to be installed to play.
type Server struct {
	*ssh.Server
	mu         sync.Mutex
	Matches    map[string]*Match
	ClientPath string
}

func setWinsize(f *os.File, w, h int) {
	syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uintptr(syscall.TIOCSWINSZ),
		uintptr(unsafe.Pointer(&struct{ h, w, x, y uint16 }{uint16(h), uint16(w), 0, 0})))
}

// sshHandle runs the terminal client on a pty wired to the SSH session.
func (s *Server) sshHandle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := exec.CommandContext(cmdCtx, s.ClientPath)
	cmd.Env = append(sess.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.Start(cmd)
	if err != nil {
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			setWinsize(f, win.Width, win.Height)
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	f.Close()
	cmd.Wait()
}

// NewServer builds the match server. clientPath is the termchess binary
// the SSH front door spawns for each session. The host key is validated
// before use; when it cannot be loaded the SSH server falls back to an
// ephemeral key, which is fine for local play.
func NewServer(sshAddr, hostKeyPath, clientPath string) *Server {
	server := &Server{
		Matches:    make(map[string]*Match),
		ClientPath: clientPath,
	}

	s := &ssh.Server{
		Addr:        sshAddr,
		IdleTimeout: ServerIdleTimeout,
		Handler:     server.sshHandle,
	}

	if pem, err := ioutil.ReadFile(hostKeyPath); err != nil {
		log.Printf("No host key at %s, using an ephemeral key: %v", hostKeyPath, err)
	} else if _, err := gossh.ParsePrivateKey(pem); err != nil {
		log.Printf("Invalid host key at %s, using an ephemeral key: %v", hostKeyPath, err)
	} else if err := s.SetOption(ssh.HostKeyPEM(pem)); err != nil {
		log.Panic(err)
	}

	go func() {
		if err := s.ListenAndServe(); err != nil {
			log.Panicf("ssh server: %v", err)
		}
	}()

	server.Server = s
	return server
}

// ListenAndServeTCP accepts game connections.
func (s *Server) ListenAndServeTCP(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer listener.Close()
	log.Printf("Listening at port %s", addr)
	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Printf("Failed to accept: %v", err)
			continue
		}
		go s.HandleConn(conn)
	}
}

// readLine reads one newline-terminated frame without buffering past it,
// so the match's own reader sees everything that follows.
func readLine(conn net.Conn) ([]byte, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		if _, err := conn.Read(buf); err != nil {
			return nil, err
		}
		if buf[0] == '\n' {
			return line, nil
		}
		line = append(line, buf[0])
	}
}

// HandleConn expects a join request as the first frame, then hands the
// connection to its match.
func (s *Server) HandleConn(conn net.Conn) {
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	line, err := readLine(conn)
	if err != nil {
		log.Printf("Failed to read join request: %v", err)
		conn.Close()
		return
	}
	conn.SetReadDeadline(time.Time{})

	var mt MessageTransport
	Decode(line, &mt)
	if mt.MsgType != TypeMessageJoin {
		log.Printf("Expected a join request, got %s", mt.MsgType)
		conn.Close()
		return
	}
	var join MessageJoin
	Decode(mt.Data, &join)
	s.AddConn(conn, join.Match)
}

// AddConn adds the connection to the named match, creating it on demand.
// An empty name gets a fresh petname id.
func (s *Server) AddConn(conn net.Conn, matchId string) {
	if matchId == "" {
		matchId = petname.Generate(2, "-")
	}
	s.mu.Lock()
	m, ok := s.Matches[matchId]
	if !ok {
		m = NewMatch(matchId)
		s.Matches[matchId] = m
		log.Printf("Created match %s", matchId)
	}
	s.mu.Unlock()
	m.AddConn(conn)
}

// CleanIdleMatches drops matches that have seen no traffic for a while.
func (s *Server) CleanIdleMatches() {
	tick := time.NewTicker(time.Minute)
	defer tick.Stop()
	for range tick.C {
		s.mu.Lock()
		for id, m := range s.Matches {
			if m.Idle() > ServerIdleTimeout {
				log.Printf("Cleaning idle match %s", id)
				m.Disconnect()
				delete(s.Matches, id)
			}
		}
		s.mu.Unlock()
	}
}
