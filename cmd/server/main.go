package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/qnkhuat/termchess/pkg"
)

var (
	done = make(chan bool)
)

func main() {
	homeDir, _ := os.UserHomeDir()

	logPath := flag.String("log", "./log", "path to log file")
	tcpAddr := flag.String("tcp", pkg.ServerPort, "address for game connections")
	sshAddr := flag.String("ssh", pkg.SshPort, "address for ssh sessions")
	hostKey := flag.String("hostkey", path.Join(homeDir, ".ssh", "id_rsa"), "ssh host key file")
	clientPath := flag.String("client", "termchess", "client binary served to ssh sessions")
	flag.Parse()

	pkg.InitLog(*logPath, "SERVER: ")
	log.Println("Server started")

	s := pkg.NewServer(*sshAddr, *hostKey, *clientPath)
	go s.CleanIdleMatches()

	go func() {
		if err := s.ListenAndServeTCP(*tcpAddr); err != nil {
			log.Panic(err)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc
		done <- true
	}()

	<-done
}
