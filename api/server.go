package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/domino-duel/game/config"
	"github.com/wricardo/domino-duel/game/engine"
	"github.com/wricardo/domino-duel/game/service"
	"github.com/wricardo/domino-duel/game/session"
	"github.com/wricardo/domino-duel/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service  service.GameService
	hub      *websocket.Hub
	router   *mux.Router
	botDelay time.Duration

	timersMu sync.Mutex
	timers   map[string]*time.Timer
}

// Option configures a Server
type Option func(*Server)

// WithBotDelay makes the server play pending bot turns by itself after d.
// With zero delay clients drive the bot through the bot-turn endpoint.
func WithBotDelay(d time.Duration) Option {
	return func(s *Server) {
		s.botDelay = d
	}
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub, opts ...Option) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
		timers:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Game operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/sessions/{id}/play", s.handlePlay).Methods("POST")
	api.HandleFunc("/sessions/{id}/draw", s.handleDraw).Methods("POST")
	api.HandleFunc("/sessions/{id}/pass", s.handlePass).Methods("POST")
	api.HandleFunc("/sessions/{id}/bot-turn", s.handleBotTurn).Methods("POST")
	api.HandleFunc("/sessions/{id}/new-game", s.handleNewGame).Methods("POST")
	api.HandleFunc("/sessions/{id}/bot-hand", s.handleRevealBotHand).Methods("GET")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close cancels every scheduled bot turn
func (s *Server) Close() {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]string{"error": message, "code": code})
}

// errorStatus maps service and engine errors to an HTTP status and a
// machine readable code
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, config.ErrConfigNotFound):
		return http.StatusNotFound, "config_not_found"

	case errors.Is(err, engine.ErrActionOutOfTurn):
		return http.StatusConflict, "out_of_turn"
	case errors.Is(err, engine.ErrActionAfterTermination):
		return http.StatusConflict, "game_over"
	case errors.Is(err, engine.ErrGameInProgress):
		return http.StatusConflict, "game_in_progress"
	case errors.Is(err, service.ErrStaleGame):
		return http.StatusConflict, "stale_game"

	case errors.Is(err, engine.ErrTileNotInHand):
		return http.StatusUnprocessableEntity, "tile_not_in_hand"
	case errors.Is(err, engine.ErrIllegalMove):
		return http.StatusUnprocessableEntity, "illegal_move"
	case errors.Is(err, engine.ErrIllegalPlacement):
		return http.StatusUnprocessableEntity, "illegal_placement"
	case errors.Is(err, engine.ErrAmbiguousOrInvalidSide):
		return http.StatusUnprocessableEntity, "ambiguous_side"
	case errors.Is(err, engine.ErrEmptyDeck):
		return http.StatusUnprocessableEntity, "empty_deck"
	case errors.Is(err, engine.ErrPassNotAllowed):
		return http.StatusUnprocessableEntity, "pass_not_allowed"
	case errors.Is(err, service.ErrInvalidOptions):
		return http.StatusUnprocessableEntity, "invalid_options"
	case errors.Is(err, config.ErrInvalidConfig):
		return http.StatusUnprocessableEntity, "invalid_config"
	}
	return http.StatusInternalServerError, "internal_error"
}

func respondServiceError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	respondError(w, status, code, err.Error())
}

func decodeBody(r *http.Request, target interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(target)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
		service.NewGameOptions
	}

	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	info, err := s.service.CreateSession(r.Context(), configID, &req.NewGameOptions)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if info.GameState != nil && info.GameState.BotTurnPending {
		s.scheduleBotTurn(info.ID, info.GameID)
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			sessions = sessions[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r)

	info, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r)

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}
	s.cancelBotTurn(sessionID)

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Game Operation Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r)

	state, err := s.service.GetGameState(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r)

	var req struct {
		TileID *int   `json:"tile_id"`
		Side   string `json:"side,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TileID == nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Request body must contain tile_id")
		return
	}

	side, ok := engine.ParseSide(strings.TrimSpace(req.Side))
	if !ok {
		respondError(w, http.StatusUnprocessableEntity, "ambiguous_side",
			fmt.Sprintf("side must be left or right, got %q", req.Side))
		return
	}

	result, err := s.service.PlayTile(r.Context(), sessionID, *req.TileID, side)
	s.finishAction(w, sessionID, "play", result, err)
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r)

	result, err := s.service.DrawTile(r.Context(), sessionID)
	s.finishAction(w, sessionID, "draw", result, err)
}

func (s *Server) handlePass(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r)

	result, err := s.service.Pass(r.Context(), sessionID)
	s.finishAction(w, sessionID, "pass", result, err)
}

func (s *Server) handleBotTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r)

	var req struct {
		GameID string `json:"game_id,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	if req.GameID == "" {
		req.GameID = r.URL.Query().Get("game_id")
	}

	result, err := s.service.RunBotTurn(r.Context(), sessionID, req.GameID)
	if err == nil {
		// The manual turn replaced the scheduled one.
		s.cancelBotTurn(sessionID)
	}
	s.finishAction(w, sessionID, "bot-turn", result, err)
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r)

	var opts service.NewGameOptions
	if err := decodeBody(r, &opts); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	s.cancelBotTurn(sessionID)

	result, err := s.service.NewGame(r.Context(), sessionID, &opts)
	s.finishAction(w, sessionID, "new-game", result, err)
}

// finishAction writes the result of a game action, pushes the snapshot to
// websocket clients and schedules the bot when it is its turn.
func (s *Server) finishAction(w http.ResponseWriter, sessionID, action string, result *service.PlayResult, err error) {
	if err != nil {
		status, code := errorStatus(err)
		log.Debug().Str("session", sessionID).Str("action", action).Str("code", code).Msg("action rejected")
		respondError(w, status, code, err.Error())
		return
	}

	s.publish(sessionID, result)

	ev := log.Info().Str("session", sessionID).Str("action", action)
	if result.GameState != nil {
		ev = ev.Str("phase", string(result.GameState.Phase))
	}
	if result.Placed != nil {
		ev = ev.Stringer("tile", result.Placed)
	}
	ev.Msg(result.Message)

	if result.BotTurnPending {
		s.scheduleBotTurn(sessionID, result.GameID)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) publish(sessionID string, result *service.PlayResult) {
	if s.hub == nil || result == nil {
		return
	}
	s.hub.BroadcastToSession(sessionID, result.GameID, result.GameState)
	for _, ev := range result.Events {
		s.hub.BroadcastEvent(sessionID, websocket.EventGameEvent, ev)
	}
}

// sessionIDFrom returns the session id from the route. Session ids are case
// insensitive, so timers and websocket subscriptions use the lower case form.
func sessionIDFrom(r *http.Request) string {
	return strings.ToLower(mux.Vars(r)["id"])
}

// scheduleBotTurn plays the bot's turn after the configured delay. The game
// ID pins the turn to the deal that was current when it was scheduled.
func (s *Server) scheduleBotTurn(sessionID, gameID string) {
	if s.botDelay <= 0 {
		return
	}

	s.timersMu.Lock()
	defer s.timersMu.Unlock()

	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(s.botDelay, func() {
		s.timersMu.Lock()
		if s.timers[sessionID] == timer {
			delete(s.timers, sessionID)
		}
		s.timersMu.Unlock()

		s.runScheduledBotTurn(sessionID, gameID)
	})
	s.timers[sessionID] = timer
}

func (s *Server) runScheduledBotTurn(sessionID, gameID string) {
	result, err := s.service.RunBotTurn(context.Background(), sessionID, gameID)
	if err != nil {
		// The game moved on before the timer fired.
		log.Debug().Err(err).Str("session", sessionID).Str("game_id", gameID).Msg("scheduled bot turn discarded")
		return
	}

	s.publish(sessionID, result)
	log.Info().
		Str("session", sessionID).
		Str("game_id", gameID).
		Str("phase", string(result.GameState.Phase)).
		Msg(result.Message)
}

func (s *Server) cancelBotTurn(sessionID string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()

	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
		delete(s.timers, sessionID)
	}
}

func (s *Server) handleRevealBotHand(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r)

	tiles, err := s.service.RevealBotHand(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	pips := 0
	for _, t := range tiles {
		pips += t.Pips()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"bot_hand": tiles,
		"bot_pips": pips,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r)

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetMoveHistory(r.Context(), sessionID, opts)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	gameConfig, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, gameConfig)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string `json:"config_id,omitempty"`
		engine.GameConfig
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "Config name is required")
		return
	}

	configID := req.ConfigID
	if configID == "" {
		configID = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(req.Name), " ", "-"))
	}

	if err := s.service.SaveConfig(r.Context(), configID, &req.GameConfig); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": configID,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.ToLower(r.URL.Query().Get("session"))
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	if s.hub == nil {
		http.Error(w, "websocket updates disabled", http.StatusServiceUnavailable)
		return
	}
	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
