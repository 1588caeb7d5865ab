package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/qnkhuat/termchess/pkg"
	"github.com/qnkhuat/termchess/pkg/engine"
)

var (
	done = make(chan bool)
)

func main() {
	logPath := flag.String("log", "./log", "path to log file")
	connect := flag.String("connect", "", "server address to play against another player")
	match := flag.String("match", "", "match name to join (empty lets the server pick)")
	playBlack := flag.Bool("black", false, "play Black in a local game")
	seed := flag.Int64("seed", 0, "bot random seed (0 uses the clock)")
	demo := flag.Int("demo", 0, "play a bot-vs-bot demo for n plies and exit")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	if *demo > 0 {
		runDemo(*demo, *seed)
		return
	}

	pkg.InitLog(*logPath, "CLIENT: ")
	log.Println("New Client")

	var cl *pkg.Client
	if *connect != "" {
		cl = pkg.NewClient()
		cl.Connect(*connect, *match)
		go cl.HandleRead()
		go cl.HandleWrite()
	} else {
		humanColor := engine.White
		if *playBlack {
			humanColor = engine.Black
		}
		cl = pkg.NewLocalClient(humanColor, *seed)
	}

	go func() {
		if err := cl.App.SetRoot(cl.Layout, true).EnableMouse(true).Run(); err != nil {
			log.Printf("Application stopped: %v", err)
		}
		done <- true
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
	cl.Disconnect()
}

// runDemo plays the agent against itself, printing every position. A
// side with no moves ends the demo early.
func runDemo(plies int, seed int64) {
	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	bot := engine.NewAgent(seed)
	game := pkg.NewGame()
	pkg.FprintBoard(os.Stdout, game.Board, engine.White)

	for i := 0; i < plies; i++ {
		mv, ok := bot.ChooseMove(game.Board, game.Turn)
		if !ok {
			break
		}
		mover := game.Turn
		if err := game.Apply(mv); err != nil {
			log.Fatalf("demo move %s rejected: %v", mv, err)
		}
		fmt.Printf("\n%d. %s plays %s\n", i+1, mover, mv)
		pkg.FprintBoard(os.Stdout, game.Board, engine.White)
		if game.Over() {
			break
		}
	}
	fmt.Printf("\n%s. Material: White %+d\n",
		game.Status(), game.Board.MaterialScore(engine.White))
}
