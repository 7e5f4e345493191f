package api

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/isaacjstriker/blockdrop/games/blocks"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all connections for now. In production, you'd want to restrict this.
		return true
	},
}

// handleGameConnection upgrades an HTTP request to a WebSocket
// connection and runs one live play session. The server owns the rules
// engine; the client is a renderer that sends commands and consumes the
// state frames, including each clear's animation timeline.
func (s *APIServer) handleGameConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Failed to upgrade connection:", err)
		return
	}
	defer conn.Close()

	mode := r.URL.Query().Get("mode")
	session := newSession(mode, s.config.ContentPath)
	gameLoop(conn, session)
}

func newSession(mode, contentPath string) *blocks.Game {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	gen := blocks.NewGenerator(rng, blocks.DefaultColorWeights)

	opts := []blocks.GameOption{blocks.WithRotationUnlocked()}
	queueMode := blocks.QueueInfinite
	finiteCount := 0
	if mode == "adventure" {
		opts = append(opts, blocks.WithContent(blocks.LoadContent(contentPath, "adventure")))
		queueMode = blocks.QueueFinite
		finiteCount = 40
	}

	queue := blocks.NewQueue(gen, queueMode, 1, finiteCount)
	return blocks.NewGame(blocks.DefaultEngine(), queue, opts...)
}

// gameLoop runs the main loop for a single game session. The game is
// turn-based, so a state frame goes out after every command; a slow
// ticker re-syncs idle clients.
func gameLoop(conn *websocket.Conn, game *blocks.Game) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	inputChan := make(chan string)
	go func() {
		defer close(inputChan)
		for {
			var msg struct {
				Type string `json:"type"`
				Key  string `json:"key"`
			}
			err := conn.ReadJSON(&msg)
			if err != nil {
				// Client disconnected
				return
			}
			if msg.Type == "input" {
				inputChan <- msg.Key
			}
		}
	}()

	if err := conn.WriteJSON(game.State()); err != nil {
		return
	}

	for {
		select {
		case input, ok := <-inputChan:
			if !ok {
				// Client disconnected
				return
			}
			game.HandleWebInput(input)

			if game.IsGameOver() {
				conn.WriteJSON(map[string]interface{}{"type": "gameOver", "score": game.Score()})
				return
			}
			if err := conn.WriteJSON(game.State()); err != nil {
				return
			}

		case <-ticker.C:
			if err := conn.WriteJSON(game.State()); err != nil {
				return
			}
		}
	}
}
