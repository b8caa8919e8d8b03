package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/domino-duel/game/engine"
)

// ErrStaleGame is returned when a scheduled bot turn refers to a game that
// has since been replaced by a new one in the same session.
var ErrStaleGame = errors.New("game was replaced by a new game")

// ErrInvalidOptions is returned when new game overrides produce rules that
// fail validation.
var ErrInvalidOptions = errors.New("invalid game options")

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, opts *NewGameOptions) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	NewGame(ctx context.Context, sessionID string, opts *NewGameOptions) (*PlayResult, error)
	PlayTile(ctx context.Context, sessionID string, tileID int, side engine.Side) (*PlayResult, error)
	DrawTile(ctx context.Context, sessionID string) (*PlayResult, error)
	Pass(ctx context.Context, sessionID string) (*PlayResult, error)
	RunBotTurn(ctx context.Context, sessionID, gameID string) (*PlayResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	RevealBotHand(ctx context.Context, sessionID string) ([]engine.Tile, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	Restart(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session. GameID changes every time a new
// game is dealt in the session.
type Session struct {
	ID             string
	GameID         string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
