package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/skirmish/internal/game"
	skirmishnet "github.com/peterkuimelis/skirmish/internal/net"
	"github.com/peterkuimelis/skirmish/internal/session"
)

// PresetInfo is the JSON representation of a preset for the /api/presets endpoint.
type PresetInfo struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   int64  `json:"seed,omitempty"`
}

// Server is the skirmish HTTP server. Browsers play over /ws using the same
// JSON protocol as TCP clients.
type Server struct {
	presetFile string
	games      *skirmishnet.Server
	registry   *session.Registry
	log        *logrus.Logger
	mux        *http.ServeMux
}

// NewServer creates a new web server. Matches joined with preset 0 use a
// default 6x6 board.
func NewServer(presetFile string, seed int64, logger *logrus.Logger) *Server {
	registry := session.NewRegistry(logger)
	s := &Server{
		presetFile: presetFile,
		registry:   registry,
		log:        logger,
		mux:        http.NewServeMux(),
	}
	s.games = &skirmishnet.Server{PresetFile: presetFile, Registry: registry, Logger: logger}
	s.games.Defaults.Seed = seed
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/presets", s.handlePresets)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	pf, err := game.ParsePresetFile(s.presetFile)
	if err != nil {
		s.log.WithError(err).Warn("could not load presets")
		http.Error(w, "could not load presets file", http.StatusInternalServerError)
		return
	}

	presets := make([]PresetInfo, 0, len(pf.Presets))
	for i, p := range pf.Presets {
		presets = append(presets, PresetInfo{
			Number: i + 1,
			Name:   p.Name,
			Width:  p.Width,
			Height: p.Height,
			Seed:   p.Seed,
		})
	}
	writeJSON(w, presets)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"status": "ok", "matches": s.registry.Len()})
}

// handleWebSocket relays one browser to one match. The first message must be
// a "join".
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept")
		return
	}
	defer wsConn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn := websocket.NetConn(ctx, wsConn, websocket.MessageText)
	entry := s.log.WithField("remote", r.RemoteAddr)
	entry.Info("browser connected")
	if err := s.games.Handle(ctx, conn); err != nil {
		entry.WithError(err).Warn("websocket match ended with error")
		wsConn.Close(websocket.StatusInternalError, "match error")
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// Close ends every running match.
func (s *Server) Close() {
	s.registry.CloseAll()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
