package pkg

import (
	"encoding/json"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/termchess/pkg/engine"
)

// Encode marshals a message for the wire.
func Encode(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		log.Panic(err)
	}
	return data
}

// Decode unmarshals wire data into v.
func Decode(data []byte, v interface{}) {
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Failed to decode message: %v", err)
	}
}

// InitLog sends the standard logger to a file. Both the client and the
// server draw on the terminal, so logs cannot go to stdout.
func InitLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}

// squareToColor picks the background color for a board square, honoring
// any active highlights.
func squareToColor(sq engine.Square, highlights map[engine.Square]bool) tcell.Color {
	if hl, ok := highlights[sq]; ok && hl {
		return tcell.ColorRed
	} else if (sq.Rank+sq.File)%2 == 0 {
		return tcell.ColorBlue
	} else {
		return tcell.ColorGreen
	}
}
