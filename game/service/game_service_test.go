package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/domino-duel/game/engine"
	"github.com/wricardo/domino-duel/game/service"
	"github.com/wricardo/domino-duel/game/session"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	games    int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) nextGameID() string {
	m.games++
	return fmt.Sprintf("game_%d", m.games)
}

func (m *MockSessionManager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		GameID:         m.nextGameID(),
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

// put installs a session positioned at layout
func (m *MockSessionManager) put(t *testing.T, id string, layout engine.Layout) *service.Session {
	t.Helper()
	config := engine.DefaultGameConfig()
	eng, err := engine.NewEngineFromLayout(config, layout)
	if err != nil {
		t.Fatalf("Failed to build engine: %v", err)
	}
	session := &service.Session{
		ID:             id,
		GameID:         m.nextGameID(),
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = session
	return session
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) Restart(id string, config *engine.GameConfig) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}
	session.Engine = eng
	session.Config = config
	session.GameID = m.nextGameID()
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
	saved   map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	seed := int64(42)
	defaultConfig := engine.DefaultGameConfig()
	defaultConfig.Name = "test"
	defaultConfig.Description = "Test configuration"
	defaultConfig.Seed = &seed

	botFirst := engine.DefaultGameConfig()
	botFirst.Name = "bot-first"
	botFirst.StartingPlayer = engine.PlayerBot

	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"test":      defaultConfig,
			"default":   defaultConfig,
			"bot-first": botFirst,
		},
		saved: make(map[string]*engine.GameConfig),
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			MaxPip:      config.MaxPip,
			HandSize:    config.HandSize,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["default"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	m.saved[name] = config
	return nil
}

func newTestService() (service.GameService, *MockSessionManager, *MockConfigManager) {
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	return service.NewGameService(sessions, configs), sessions, configs
}

// Test cases
func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	handSize := 5
	badHand := 20

	tests := []struct {
		name       string
		configName string
		opts       *service.NewGameOptions
		wantErr    bool
		wantHand   int
	}{
		{
			name:       "create with default config",
			configName: "",
			wantHand:   7,
		},
		{
			name:       "create with specific config",
			configName: "test",
			wantHand:   7,
		},
		{
			name:       "create with overrides",
			configName: "test",
			opts:       &service.NewGameOptions{HandSize: &handSize},
			wantHand:   5,
		},
		{
			name:       "create with invalid override",
			configName: "test",
			opts:       &service.NewGameOptions{HandSize: &badHand},
			wantErr:    true,
		},
		{
			name:       "create with invalid config",
			configName: "nonexistent",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.configName, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if session == nil || session.GameState == nil {
				t.Fatal("CreateSession() returned nil session or state")
			}
			if len(session.GameState.PlayerHand) != tt.wantHand {
				t.Errorf("Expected %d tiles in hand, got %d", tt.wantHand, len(session.GameState.PlayerHand))
			}
			if session.GameID == "" {
				t.Error("Expected a game id")
			}
		})
	}
}

func TestGameService_CreateSessionInvalidOptions(t *testing.T) {
	svc, _, _ := newTestService()

	maxPip := 40
	_, err := svc.CreateSession(context.Background(), "test", &service.NewGameOptions{MaxPip: &maxPip})
	if !errors.Is(err, service.ErrInvalidOptions) {
		t.Errorf("Expected ErrInvalidOptions, got %v", err)
	}
}

func TestGameService_CreateSessionDoesNotMutatePreset(t *testing.T) {
	ctx := context.Background()
	svc, _, configs := newTestService()

	maxPip := 9
	if _, err := svc.CreateSession(ctx, "test", &service.NewGameOptions{MaxPip: &maxPip}); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if configs.configs["test"].MaxPip != 6 {
		t.Errorf("Preset was modified: max_pip %d", configs.configs["test"].MaxPip)
	}
}

func TestGameService_PlayTile(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newTestService()

	layout := engine.Layout{
		Deck:       []engine.Tile{engine.NewTile(10, 6, 6)},
		PlayerHand: []engine.Tile{engine.NewTile(1, 5, 3), engine.NewTile(2, 1, 2), engine.NewTile(3, 5, 0)},
		BotHand:    []engine.Tile{engine.NewTile(4, 4, 4)},
		Board:      []engine.Tile{engine.NewTile(0, 3, 5)},
	}

	tests := []struct {
		name      string
		sessionID string
		tileID    int
		side      engine.Side
		wantErr   error
	}{
		{"single side", "s1", 3, engine.SideNone, nil},
		{"both sides chosen", "s1", 1, engine.SideRight, nil},
		{"ambiguous", "s1", 1, engine.SideNone, engine.ErrAmbiguousOrInvalidSide},
		{"illegal", "s1", 2, engine.SideNone, engine.ErrIllegalMove},
		{"not in hand", "s1", 4, engine.SideNone, engine.ErrTileNotInHand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions.put(t, tt.sessionID, layout)

			result, err := svc.PlayTile(ctx, tt.sessionID, tt.tileID, tt.side)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("PlayTile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PlayTile() error = %v", err)
			}
			if !result.Success || result.Placed == nil || result.Placed.ID != tt.tileID {
				t.Errorf("Unexpected result: %+v", result)
			}
			if !result.BotTurnPending || !result.GameState.BotTurnPending {
				t.Error("Expected bot turn pending after the player's play")
			}
			if len(result.Events) == 0 || result.Events[0].Type != service.EventPlay {
				t.Errorf("Expected a play event, got %+v", result.Events)
			}
		})
	}

	if _, err := svc.PlayTile(ctx, "nonexistent", 1, engine.SideNone); err == nil {
		t.Error("Expected error for unknown session")
	}
}

func TestGameService_PlayerWinEvent(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newTestService()

	sessions.put(t, "win", engine.Layout{
		Deck:       []engine.Tile{engine.NewTile(10, 6, 6)},
		PlayerHand: []engine.Tile{engine.NewTile(1, 5, 0)},
		BotHand:    []engine.Tile{engine.NewTile(4, 4, 4)},
		Board:      []engine.Tile{engine.NewTile(0, 3, 5)},
	})

	result, err := svc.PlayTile(ctx, "win", 1, engine.SideNone)
	if err != nil {
		t.Fatalf("PlayTile() error = %v", err)
	}
	if result.GameState.Phase != engine.PhasePlayerWon {
		t.Fatalf("Expected player_won, got %s", result.GameState.Phase)
	}
	last := result.Events[len(result.Events)-1]
	if last.Type != service.EventPlayerWon {
		t.Errorf("Expected player_won event, got %s", last.Type)
	}
	if result.BotTurnPending {
		t.Error("No bot turn should be pending after the game ended")
	}

	hand, err := svc.RevealBotHand(ctx, "win")
	if err != nil || len(hand) != 1 {
		t.Errorf("Expected revealed bot hand, got %v (err %v)", hand, err)
	}
}

func TestGameService_DrawAndPass(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newTestService()

	sessions.put(t, "dp", engine.Layout{
		Deck:       []engine.Tile{engine.NewTile(10, 0, 0)},
		PlayerHand: []engine.Tile{engine.NewTile(1, 1, 2)},
		BotHand:    []engine.Tile{engine.NewTile(4, 5, 4)},
		Board:      []engine.Tile{engine.NewTile(0, 3, 5)},
	})

	if _, err := svc.Pass(ctx, "dp"); !errors.Is(err, engine.ErrPassNotAllowed) {
		t.Errorf("Expected ErrPassNotAllowed, got %v", err)
	}

	result, err := svc.DrawTile(ctx, "dp")
	if err != nil {
		t.Fatalf("DrawTile() error = %v", err)
	}
	if result.Drawn == nil || result.Drawn.ID != 10 {
		t.Errorf("Expected to draw tile 10, got %+v", result.Drawn)
	}
	if result.BotTurnPending {
		t.Error("Drawing must not hand the turn to the bot")
	}

	if _, err := svc.DrawTile(ctx, "dp"); !errors.Is(err, engine.ErrEmptyDeck) {
		t.Errorf("Expected ErrEmptyDeck, got %v", err)
	}

	result, err = svc.Pass(ctx, "dp")
	if err != nil {
		t.Fatalf("Pass() error = %v", err)
	}
	if !result.BotTurnPending {
		t.Error("Expected bot turn pending after pass")
	}
}

func TestGameService_RunBotTurn(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newTestService()

	sess := sessions.put(t, "bot", engine.Layout{
		Deck:       []engine.Tile{engine.NewTile(10, 1, 1), engine.NewTile(11, 5, 2), engine.NewTile(12, 6, 6)},
		PlayerHand: []engine.Tile{engine.NewTile(1, 2, 6)},
		BotHand:    []engine.Tile{engine.NewTile(4, 0, 0)},
		Board:      []engine.Tile{engine.NewTile(0, 3, 5)},
		TurnOwner:  engine.PlayerBot,
	})

	if _, err := svc.RunBotTurn(ctx, "bot", "some-old-game"); !errors.Is(err, service.ErrStaleGame) {
		t.Errorf("Expected ErrStaleGame, got %v", err)
	}
	if sess.Engine.Snapshot().TotalMoves != 0 {
		t.Fatal("Stale bot turn must not touch the game")
	}

	result, err := svc.RunBotTurn(ctx, "bot", sess.GameID)
	if err != nil {
		t.Fatalf("RunBotTurn() error = %v", err)
	}
	if result.BotTurn == nil || result.BotTurn.Draws != 2 || result.BotTurn.Played == nil {
		t.Fatalf("Unexpected bot turn: %+v", result.BotTurn)
	}

	var draws, plays int
	for _, ev := range result.Events {
		switch ev.Type {
		case service.EventBotDraw:
			draws++
			if ev.Tile != nil {
				t.Error("Bot draw events must not reveal the tile")
			}
		case service.EventBotPlay:
			plays++
		}
	}
	if draws != 2 || plays != 1 {
		t.Errorf("Expected 2 draw events and 1 play event, got %d and %d", draws, plays)
	}

	if _, err := svc.RunBotTurn(ctx, "bot", ""); !errors.Is(err, engine.ErrActionOutOfTurn) {
		t.Errorf("Expected ErrActionOutOfTurn, got %v", err)
	}
}

func TestGameService_NewGame(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	info, err := svc.CreateSession(ctx, "test", nil)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	handSize := 4
	result, err := svc.NewGame(ctx, info.ID, &service.NewGameOptions{HandSize: &handSize, StartingPlayer: "BOT"})
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	if result.GameID == info.GameID {
		t.Error("Expected a new game id")
	}
	if len(result.GameState.PlayerHand) != 4 {
		t.Errorf("Expected 4 tiles, got %d", len(result.GameState.PlayerHand))
	}
	if !result.BotTurnPending {
		t.Error("Expected the bot to move first")
	}
	if result.Events[0].Type != service.EventNewGame {
		t.Errorf("Expected new_game event, got %s", result.Events[0].Type)
	}

	// the pending turn of the previous game is discarded
	if _, err := svc.RunBotTurn(ctx, info.ID, info.GameID); !errors.Is(err, service.ErrStaleGame) {
		t.Errorf("Expected ErrStaleGame, got %v", err)
	}
	if _, err := svc.RunBotTurn(ctx, info.ID, result.GameID); err != nil {
		t.Errorf("RunBotTurn() for the current game error = %v", err)
	}

	if _, err := svc.NewGame(ctx, "nonexistent", nil); err == nil {
		t.Error("Expected error for unknown session")
	}
}

func TestGameService_GetMoveHistory(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newTestService()

	sess := sessions.put(t, "hist", engine.Layout{
		Deck:       []engine.Tile{engine.NewTile(10, 1, 1), engine.NewTile(11, 5, 2), engine.NewTile(12, 6, 6)},
		PlayerHand: []engine.Tile{engine.NewTile(1, 2, 6), engine.NewTile(2, 0, 4)},
		BotHand:    []engine.Tile{engine.NewTile(4, 0, 0)},
		Board:      []engine.Tile{engine.NewTile(0, 3, 5)},
		TurnOwner:  engine.PlayerBot,
	})
	if _, err := svc.RunBotTurn(ctx, "hist", sess.GameID); err != nil {
		t.Fatalf("RunBotTurn() error = %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		opts      service.HistoryOptions
		wantMoves int
		wantFirst engine.Action
		wantNext  bool
		wantErr   bool
	}{
		{
			name:      "default options",
			sessionID: "hist",
			opts:      service.HistoryOptions{},
			wantMoves: 3,
			wantFirst: engine.ActionPlay,
		},
		{
			name:      "with pagination",
			sessionID: "hist",
			opts:      service.HistoryOptions{Page: 1, Limit: 2, Order: "asc"},
			wantMoves: 2,
			wantFirst: engine.ActionDraw,
			wantNext:  true,
		},
		{
			name:      "second page",
			sessionID: "hist",
			opts:      service.HistoryOptions{Page: 2, Limit: 2, Order: "asc"},
			wantMoves: 1,
			wantFirst: engine.ActionPlay,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.GetMoveHistory(ctx, tt.sessionID, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetMoveHistory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(result.Moves) != tt.wantMoves {
				t.Fatalf("Expected %d moves, got %d", tt.wantMoves, len(result.Moves))
			}
			if result.Moves[0].Action != tt.wantFirst {
				t.Errorf("Expected first action %s, got %s", tt.wantFirst, result.Moves[0].Action)
			}
			if result.HasNext != tt.wantNext {
				t.Errorf("Expected HasNext %v, got %v", tt.wantNext, result.HasNext)
			}
			if result.TotalMoves != 3 {
				t.Errorf("Expected 3 total moves, got %d", result.TotalMoves)
			}
			for _, m := range result.Moves {
				if m.Action == engine.ActionDraw && m.Tile != nil {
					t.Error("Bot draws must stay hidden while the game is in progress")
				}
			}
		})
	}
}

func TestGameService_ListSessions(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateSession(ctx, "test", nil)
		if err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
	}

	sessionList, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}

	if len(sessionList) != 3 {
		t.Errorf("ListSessions() returned %d sessions, want 3", len(sessionList))
	}
	for _, info := range sessionList {
		if info.ConfigName != "test" && info.ConfigName != "default" {
			t.Errorf("Unexpected config id %q", info.ConfigName)
		}
	}
}

func TestGameService_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(session.NewManager(), NewMockConfigManager())

	info, err := svc.CreateSession(ctx, "test", nil)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8*50)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				var err error
				switch (g + i) % 3 {
				case 0:
					_, err = svc.GetSession(ctx, info.ID)
				case 1:
					_, err = svc.GetGameState(ctx, info.ID)
				default:
					_, err = svc.ListSessions(ctx)
				}
				if err != nil {
					errs <- err
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent read failed: %v", err)
	}
}

func TestGameService_DeleteSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	info, _ := svc.CreateSession(ctx, "test", nil)
	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("Expected deleted session to be gone")
	}
	if err := svc.DeleteSession(ctx, info.ID); err == nil {
		t.Error("Expected error deleting twice")
	}
}

func TestGameService_RevealBotHandInProgress(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	info, _ := svc.CreateSession(ctx, "test", nil)
	if _, err := svc.RevealBotHand(ctx, info.ID); !errors.Is(err, engine.ErrGameInProgress) {
		t.Errorf("Expected ErrGameInProgress, got %v", err)
	}
	state, err := svc.GetGameState(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetGameState() error = %v", err)
	}
	if state.BotHand != nil {
		t.Error("Bot hand must be hidden in the state")
	}
}

func TestGameService_Configs(t *testing.T) {
	ctx := context.Background()
	svc, _, configs := newTestService()

	list, err := svc.ListConfigs(ctx)
	if err != nil || len(list) != 3 {
		t.Errorf("Expected 3 configs, got %d (err %v)", len(list), err)
	}

	config, err := svc.LoadConfig(ctx, "bot-first")
	if err != nil || config.StartingPlayer != engine.PlayerBot {
		t.Errorf("Expected bot-first preset, got %+v (err %v)", config, err)
	}

	if err := svc.SaveConfig(ctx, "custom", engine.DefaultGameConfig()); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	if _, ok := configs.saved["custom"]; !ok {
		t.Error("Expected config to be saved")
	}
	if err := svc.SaveConfig(ctx, "nil", nil); err == nil {
		t.Error("Expected error saving a nil config")
	}
}
