package service

import (
	"time"

	"github.com/wricardo/domino-duel/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	GameID         string             `json:"game_id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.Snapshot   `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// NewGameOptions overrides parts of the session's rules for a new deal.
// Nil or empty fields keep the configured value.
type NewGameOptions struct {
	MaxPip         *int   `json:"max_pip,omitempty"`
	HandSize       *int   `json:"hand_size,omitempty"`
	StartingPlayer string `json:"starting_player,omitempty"`
	Seed           *int64 `json:"seed,omitempty"`
}

// PlayResult contains the result of a game action
type PlayResult struct {
	Success        bool                  `json:"success"`
	GameID         string                `json:"game_id"`
	GameState      *engine.Snapshot      `json:"game_state"`
	Message        string                `json:"message"`
	Events         []GameEvent           `json:"events,omitempty"`
	BotTurnPending bool                  `json:"bot_turn_pending"`
	Placed         *engine.Tile          `json:"placed,omitempty"`
	Drawn          *engine.Tile          `json:"drawn,omitempty"`
	BotTurn        *engine.BotTurnResult `json:"bot_turn,omitempty"`
}

// Event types emitted with a PlayResult
const (
	EventPlay      = "play"
	EventDraw      = "draw"
	EventPass      = "pass"
	EventBotPlay   = "bot_play"
	EventBotDraw   = "bot_draw"
	EventBotPass   = "bot_pass"
	EventPlayerWon = "player_won"
	EventBotWon    = "bot_won"
	EventDrawGame  = "draw_game"
	EventNewGame   = "new_game"
)

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string       `json:"type"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
	Tile      *engine.Tile `json:"tile,omitempty"`
	Side      engine.Side  `json:"side,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename       string        `json:"filename"`
	ConfigID       string        `json:"config_id"` // The identifier to use for session creation
	Name           string        `json:"name"`      // Display name
	Description    string        `json:"description"`
	MaxPip         int           `json:"max_pip"`
	HandSize       int           `json:"hand_size"`
	StartingPlayer engine.Player `json:"starting_player"`
}
