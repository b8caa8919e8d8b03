package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/domino-duel/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, opts *NewGameOptions) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found, available configs %v: %w", configName, configIDs, err)
				}
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	config, err = applyOptions(config, opts)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Info().
		Str("session", session.ID).
		Str("game_id", session.GameID).
		Str("config", configID).
		Int64("seed", session.Engine.Seed()).
		Msg("session created")

	return &SessionInfo{
		ID:             session.ID,
		GameID:         session.GameID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.Snapshot(),
		GameConfig:     session.Config,
	}, nil
}

// applyOptions returns a copy of base with the requested overrides
func applyOptions(base *engine.GameConfig, opts *NewGameOptions) (*engine.GameConfig, error) {
	config := base.Normalized()
	if opts == nil {
		return config, nil
	}

	if opts.MaxPip != nil {
		config.MaxPip = *opts.MaxPip
	}
	if opts.HandSize != nil {
		config.HandSize = *opts.HandSize
	}
	if opts.StartingPlayer != "" {
		config.StartingPlayer = engine.Player(strings.ToLower(opts.StartingPlayer))
	}
	if opts.Seed != nil {
		seed := *opts.Seed
		config.Seed = &seed
	}

	if err := engine.ValidateGameConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return config, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	// UpdateLastAccessed writes the session, so readers of it must be excluded
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		GameID:         session.GameID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.Snapshot(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			GameID:         sess.GameID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.Snapshot(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	log.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// NewGame deals a fresh game in an existing session. Any bot turn scheduled
// for the previous game becomes stale.
func (s *gameServiceImpl) NewGame(ctx context.Context, sessionID string, opts *NewGameOptions) (*PlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	config, err := applyOptions(sess.Config, opts)
	if err != nil {
		return nil, err
	}
	previous := sess.GameID
	sess, err = s.sessions.Restart(sessionID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to start new game: %w", err)
	}

	log.Info().
		Str("session", sess.ID).
		Str("game_id", sess.GameID).
		Str("previous_game_id", previous).
		Int64("seed", sess.Engine.Seed()).
		Msg("new game dealt")

	events := []GameEvent{{
		Type:      EventNewGame,
		Message:   fmt.Sprintf("New game dealt: double-%d set, %d tiles each, %s starts", config.MaxPip, config.HandSize, config.StartingPlayer),
		Timestamp: time.Now(),
	}}
	return s.buildResult(sess, "New game started", events), nil
}

// PlayTile places a tile from the player's hand
func (s *gameServiceImpl) PlayTile(ctx context.Context, sessionID string, tileID int, side engine.Side) (*PlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	placed, err := sess.Engine.SubmitPlayerPlay(tileID, side)
	if err != nil {
		log.Debug().Str("session", sess.ID).Int("tile", tileID).Str("side", string(side)).Err(err).Msg("play rejected")
		return nil, err
	}

	applied := sideOf(sess.Engine, placed)
	log.Debug().Str("session", sess.ID).Str("tile", placed.String()).Str("side", string(applied)).Msg("player played")

	events := []GameEvent{{
		Type:      EventPlay,
		Message:   describePlay("You", placed, applied),
		Timestamp: time.Now(),
		Tile:      &placed,
		Side:      applied,
	}}
	result := s.buildResult(sess, describePlay("You", placed, applied), events)
	result.Placed = &placed
	return result, nil
}

// DrawTile draws a tile into the player's hand
func (s *gameServiceImpl) DrawTile(ctx context.Context, sessionID string) (*PlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	tile, err := sess.Engine.SubmitPlayerDraw()
	if err != nil {
		return nil, err
	}

	log.Debug().Str("session", sess.ID).Str("tile", tile.String()).Msg("player drew")

	message := fmt.Sprintf("You drew %s", tile)
	events := []GameEvent{{
		Type:      EventDraw,
		Message:   message,
		Timestamp: time.Now(),
		Tile:      &tile,
	}}
	result := s.buildResult(sess, message, events)
	result.Drawn = &tile
	return result, nil
}

// Pass ends the player's turn when nothing can be played or drawn
func (s *gameServiceImpl) Pass(ctx context.Context, sessionID string) (*PlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if err := sess.Engine.SubmitPlayerPass(); err != nil {
		return nil, err
	}

	log.Debug().Str("session", sess.ID).Msg("player passed")

	events := []GameEvent{{
		Type:      EventPass,
		Message:   "You passed",
		Timestamp: time.Now(),
	}}
	return s.buildResult(sess, "You passed", events), nil
}

// RunBotTurn resolves the bot's pending turn. A non-empty gameID must match
// the session's current game, otherwise ErrStaleGame is returned and nothing
// happens.
func (s *gameServiceImpl) RunBotTurn(ctx context.Context, sessionID, gameID string) (*PlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if gameID != "" && gameID != sess.GameID {
		return nil, fmt.Errorf("%w: expected %s, current %s", ErrStaleGame, gameID, sess.GameID)
	}

	turn, err := sess.Engine.RunBotTurn()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var events []GameEvent
	for i := 0; i < turn.Draws; i++ {
		events = append(events, GameEvent{
			Type:      EventBotDraw,
			Message:   "Bot drew a tile",
			Timestamp: now,
		})
	}

	var message string
	switch {
	case turn.Played != nil:
		tile := turn.Played.Tile
		message = describePlay("Bot", tile, turn.Played.Side)
		events = append(events, GameEvent{
			Type:      EventBotPlay,
			Message:   message,
			Timestamp: now,
			Tile:      &tile,
			Side:      turn.Played.Side,
		})
	case turn.Passed:
		message = "Bot passed"
		events = append(events, GameEvent{
			Type:      EventBotPass,
			Message:   message,
			Timestamp: now,
		})
	}
	if turn.Draws > 0 {
		message = fmt.Sprintf("Bot drew %d tile(s). %s", turn.Draws, message)
	}

	log.Debug().
		Str("session", sess.ID).
		Str("game_id", sess.GameID).
		Int("draws", turn.Draws).
		Bool("passed", turn.Passed).
		Str("phase", string(turn.Phase)).
		Msg("bot turn resolved")

	result := s.buildResult(sess, message, events)
	result.BotTurn = turn
	return result, nil
}

// buildResult attaches the snapshot and end-of-game event to a result
func (s *gameServiceImpl) buildResult(sess *Session, message string, events []GameEvent) *PlayResult {
	snap := sess.Engine.Snapshot()

	if ev, ok := terminalEvent(snap.Phase); ok {
		events = append(events, ev)
		message = strings.TrimSpace(message + ". " + ev.Message)
		log.Info().
			Str("session", sess.ID).
			Str("game_id", sess.GameID).
			Str("phase", string(snap.Phase)).
			Int("moves", snap.TotalMoves).
			Msg("game over")
	}

	return &PlayResult{
		Success:        true,
		GameID:         sess.GameID,
		GameState:      snap,
		Message:        message,
		Events:         events,
		BotTurnPending: snap.BotTurnPending,
	}
}

func terminalEvent(phase engine.Phase) (GameEvent, bool) {
	ev := GameEvent{Timestamp: time.Now()}
	switch phase {
	case engine.PhasePlayerWon:
		ev.Type, ev.Message = EventPlayerWon, "You emptied your hand and won"
	case engine.PhaseBotWon:
		ev.Type, ev.Message = EventBotWon, "The bot emptied its hand and won"
	case engine.PhaseDraw:
		ev.Type, ev.Message = EventDrawGame, "Deck exhausted and nobody can play: the game is a draw"
	default:
		return GameEvent{}, false
	}
	return ev, true
}

// sideOf reports where a just-placed tile ended up on the board
func sideOf(eng *engine.GameEngine, placed engine.Tile) engine.Side {
	board := eng.Snapshot().Board
	switch {
	case len(board) <= 1:
		return engine.SideNone
	case board[0].ID == placed.ID:
		return engine.SideLeft
	default:
		return engine.SideRight
	}
}

func describePlay(actor string, tile engine.Tile, side engine.Side) string {
	if side == engine.SideNone {
		return fmt.Sprintf("%s opened with %s", actor, tile)
	}
	return fmt.Sprintf("%s played %s on the %s", actor, tile, side)
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	// UpdateLastAccessed writes the session, so readers of it must be excluded
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Snapshot(), nil
}

// RevealBotHand returns the bot's tiles after the game has ended
func (s *gameServiceImpl) RevealBotHand(ctx context.Context, sessionID string) ([]engine.Tile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return sess.Engine.RevealBotHand()
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if config == nil {
		return errors.New("config is required")
	}
	return s.configs.SaveConfig(configName, config)
}
