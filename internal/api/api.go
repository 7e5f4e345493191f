package api

import (
	"log"
	"net/http"

	"github.com/isaacjstriker/blockdrop/internal/config"
	"github.com/isaacjstriker/blockdrop/internal/database"
)

// APIServer represents the main server for the application
type APIServer struct {
	listenAddr string
	db         *database.DB
	config     *config.Config
}

// NewAPIServer creates a new APIServer instance
func NewAPIServer(listenAddr string, db *database.DB, config *config.Config) *APIServer {
	return &APIServer{
		listenAddr: listenAddr,
		db:         db,
		config:     config,
	}
}

// Start runs the HTTP server
func (s *APIServer) Start() {
	router := http.NewServeMux()

	router.HandleFunc("GET /", s.handleIndex)

	// --- API Routes ---
	router.HandleFunc("POST /api/register", s.handleRegister)
	router.HandleFunc("POST /api/login", s.handleLogin)
	router.HandleFunc("POST /api/logout", s.handleLogout)
	router.HandleFunc("GET /api/leaderboard/{gameType}", s.handleGetLeaderboard)
	router.HandleFunc("GET /api/recent/{gameType}", s.handleGetRecentGames)
	router.HandleFunc("POST /api/scores", requireAuth(s, s.handleSubmitScore))
	router.HandleFunc("GET /api/settings", requireAuth(s, s.handleGetSettings))
	router.HandleFunc("PUT /api/settings", requireAuth(s, s.handleSaveSettings))

	// --- WebSocket Route for live play ---
	router.HandleFunc("/ws/game", s.handleGameConnection)

	log.Printf("API server listening on %s", s.listenAddr)
	if err := http.ListenAndServe(s.listenAddr, router); err != nil {
		log.Fatalf("could not start server: %s", err)
	}
}

// handleIndex reports service identity; the browser frontend is served
// separately.
func (s *APIServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":    s.config.AppName,
		"status": "ok",
	})
}
