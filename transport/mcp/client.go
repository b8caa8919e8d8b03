package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/domino-duel/game/engine"
	"github.com/wricardo/domino-duel/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Domino Duel",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Domino Duel - MCP Interface

You play dominoes against a computer opponent. This is a thin client that
proxies every request to the REST API server.

AVAILABLE TOOLS:
- create_session: Start a table (optionally pick a preset and rule overrides)
- game_state: Board, your hand with tile ids, playable tiles and sides
- play_tile: Play a tile by id on the left or right end
- draw_tile: Draw from the boneyard when nothing fits
- pass_turn: Pass when the boneyard is empty and nothing fits
- bot_turn: Let the computer move when bot_turn_pending is true
- new_game: Deal again in the same session
- reveal_bot_hand: See the computer's tiles after the game ends
- move_history, list_sessions, get_session, list_configs, game_instructions

Always check game_state before playing: it lists exactly which tiles and
sides are legal right now.`),
	)

	c.registerTools()
}

func sessionProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// ruleProps are the overrides accepted by create_session and new_game
func ruleProps(props map[string]interface{}) map[string]interface{} {
	props["max_pip"] = map[string]interface{}{
		"type":        "integer",
		"description": "Highest pip value in the set (6 for double-six, 9 for double-nine)",
	}
	props["hand_size"] = map[string]interface{}{
		"type":        "integer",
		"description": "Tiles dealt to each seat",
	}
	props["starting_player"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"player", "bot"},
		"description": "Who opens the game",
	}
	props["seed"] = map[string]interface{}{
		"type":        "integer",
		"description": "Shuffle seed for a reproducible deal",
	}
	return props
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional preset and rule overrides",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: ruleProps(map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Preset to use (see list_configs). Defaults to double-six",
				},
			}),
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, your hand and the legal moves",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "play_tile",
		Description: "Play a tile from your hand. Omit side on the opening move or when the tile fits only one end",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"tile_id": map[string]interface{}{
					"type":        "integer",
					"description": "ID of the tile in your hand (the #N shown in game_state)",
				},
				"side": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"left", "right"},
					"description": "End of the chain to attach to",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you chose this tile",
				},
			},
			Required: []string{"session_id", "tile_id"},
		},
	}, c.handlePlayTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "draw_tile",
		Description: "Draw one tile from the boneyard. Your turn continues",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleDrawTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "pass_turn",
		Description: "Pass the turn. Only allowed when the boneyard is empty and no tile fits",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
			},
			Required: []string{"session_id"},
		},
	}, c.handlePassTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bot_turn",
		Description: "Let the computer take its turn when bot_turn_pending is true",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game the turn belongs to (optional); rejected if a new game was dealt since",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleBotTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Deal a new game in the same session, optionally changing the rules",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: ruleProps(map[string]interface{}{
				"session_id": sessionProp(),
			}),
			Required: []string{"session_id"},
		},
	}, c.handleNewGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reveal_bot_hand",
		Description: "Show the computer's remaining tiles. Only available once the game is over",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRevealBotHand)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the moves made so far in the current game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Moves per page (default 20)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest first (asc) or newest first (desc, default)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List the available rule presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of Domino Duel and tips for playing through these tools",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			if code := errResp["code"]; code != "" {
				return fmt.Errorf("%s (%s)", msg, code)
			}
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}

func ruleBody(args map[string]interface{}, body map[string]interface{}) map[string]interface{} {
	for _, key := range []string{"max_pip", "hand_size", "seed"} {
		if v, ok := intArg(args, key); ok {
			body[key] = v
		}
	}
	if sp, _ := args["starting_player"].(string); sp != "" {
		body["starting_player"] = sp
	}
	return body
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := ruleBody(args, map[string]interface{}{})
	if configID, _ := args["config_id"].(string); configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nGame: %s\nConfig: %s\n\n%s",
		session.ID, session.GameID, session.ConfigName, formatSnapshot(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(resp.Sessions) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Active Sessions (%d):\n\n", len(resp.Sessions)))
	for _, s := range resp.Sessions {
		phase := "unknown"
		if s.GameState != nil {
			phase = string(s.GameState.Phase)
		}
		b.WriteString(fmt.Sprintf("• %s  config=%s  phase=%s  last used %s\n",
			s.ID, s.ConfigName, phase, s.LastAccessedAt.Format("15:04:05")))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.Snapshot
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&state)), nil
}

func (c *Client) handlePlayTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	tileID, ok := intArg(args, "tile_id")
	if !ok {
		return mcp.NewToolResultError("tile_id is required"), nil
	}

	body := map[string]interface{}{"tile_id": tileID}
	if side, _ := args["side"].(string); side != "" {
		body["side"] = side
	}

	return c.action(ctx, sessionPath(sessionID, "/play"), body)
}

func (c *Client) handleDrawTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)
	return c.action(ctx, sessionPath(sessionID, "/draw"), nil)
}

func (c *Client) handlePassTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)
	return c.action(ctx, sessionPath(sessionID, "/pass"), nil)
}

func (c *Client) handleBotTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	body := map[string]interface{}{}
	if gameID, _ := args["game_id"].(string); gameID != "" {
		body["game_id"] = gameID
	}

	return c.action(ctx, sessionPath(sessionID, "/bot-turn"), body)
}

func (c *Client) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	return c.action(ctx, sessionPath(sessionID, "/new-game"), ruleBody(args, map[string]interface{}{}))
}

// action posts a game action and formats the PlayResult
func (c *Client) action(ctx context.Context, path string, body interface{}) (*mcp.CallToolResult, error) {
	var result service.PlayResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatPlayResult(&result)), nil
}

func (c *Client) handleRevealBotHand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var resp struct {
		BotHand []engine.Tile `json:"bot_hand"`
		BotPips int           `json:"bot_pips"`
	}
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/bot-hand"), nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Computer's hand (%d tiles, %d pips): %s",
		len(resp.BotHand), resp.BotPips, formatTiles(resp.BotHand, false))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order, _ := args["order"].(string); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (config_id: %s)\n  %s\n  Double-%d set, %d tiles each, %s starts\n\n",
			config.Name, config.ConfigID, config.Description, config.MaxPip, config.HandSize, config.StartingPlayer)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Domino Duel - Complete Instructions

GAME OBJECTIVE:
Be the first to empty your hand. You play against the computer.

THE TILES:
• A double-six set has every pair of pips from 0|0 to 6|6 (28 tiles)
• Each tile has an id (#N). Always refer to tiles by id
• Both seats are dealt the same number of tiles; the rest form the boneyard

THE BOARD:
• Tiles form a single chain with a left end and a right end
• A tile can be played on an end if one of its faces matches that end's pips
• The first tile of the game can be any tile and needs no side

YOUR TURN:
1. If a tile fits, play it with play_tile (give side when it fits both ends)
2. If nothing fits and the boneyard has tiles, draw_tile, then look again
3. If nothing fits and the boneyard is empty, pass_turn

THE COMPUTER'S TURN:
• When bot_turn_pending is true call bot_turn
• The computer draws until it can play, or passes with an empty boneyard
• Its hand is hidden until the game ends; only its size is shown

GAME END:
• You win by playing your last tile
• The computer wins by playing its last tile
• If the boneyard is empty and neither seat can play, the game is a draw
• After the game, reveal_bot_hand shows what the computer was holding

TIPS:
• game_state lists "Playable" tiles with their legal sides; use it
• Getting rid of high-pip tiles early limits the damage of a blocked game
• Keep tiles that match many numbers in your hand so you have options later

Good luck at the table!`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nGame: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.GameID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSnapshot(session.GameState))
}

func formatTile(t engine.Tile, withID bool) string {
	if withID {
		return fmt.Sprintf("#%d[%d|%d]", t.ID, t.A, t.B)
	}
	return fmt.Sprintf("[%d|%d]", t.A, t.B)
}

func formatTiles(tiles []engine.Tile, withID bool) string {
	if len(tiles) == 0 {
		return "(none)"
	}
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = formatTile(t, withID)
	}
	return strings.Join(parts, " ")
}

func formatSnapshot(state *engine.Snapshot) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder

	switch state.Phase {
	case engine.PhasePlayerWon:
		b.WriteString("🎉 YOU WON!\n")
	case engine.PhaseBotWon:
		b.WriteString("💀 THE COMPUTER WON\n")
	case engine.PhaseDraw:
		b.WriteString("🤝 DRAW - nobody can play\n")
	default:
		if state.TurnOwner == engine.PlayerBot {
			b.WriteString("Turn: computer")
			if state.BotTurnPending {
				b.WriteString(" (call bot_turn)")
			}
			b.WriteString("\n")
		} else {
			b.WriteString("Turn: you\n")
		}
	}

	b.WriteString(fmt.Sprintf("Board: %s\n", formatTiles(state.Board, false)))
	if state.LeftEnd != nil && state.RightEnd != nil {
		b.WriteString(fmt.Sprintf("Ends: left=%d right=%d\n", *state.LeftEnd, *state.RightEnd))
	} else {
		b.WriteString("Ends: board is empty, any tile opens\n")
	}

	b.WriteString(fmt.Sprintf("Your hand (%d, %d pips): %s\n",
		len(state.PlayerHand), state.PlayerPips, formatTiles(state.PlayerHand, true)))

	if state.BotHand != nil {
		pips := 0
		if state.BotPips != nil {
			pips = *state.BotPips
		}
		b.WriteString(fmt.Sprintf("Computer's hand (%d, %d pips): %s\n",
			len(state.BotHand), pips, formatTiles(state.BotHand, false)))
	} else {
		b.WriteString(fmt.Sprintf("Computer holds: %d tiles\n", state.BotHandSize))
	}
	b.WriteString(fmt.Sprintf("Boneyard: %d tiles\n", state.DeckRemaining))

	if !state.Phase.IsTerminal() && state.TurnOwner == engine.PlayerHuman {
		b.WriteString(formatOptions(state))
	}

	if state.LastMove != nil {
		b.WriteString(fmt.Sprintf("Last move: %s\n", formatHistoryEntry(*state.LastMove)))
	}

	return b.String()
}

// formatOptions spells out what the player may do right now
func formatOptions(state *engine.Snapshot) string {
	var b strings.Builder
	if len(state.PlayerPlayable) > 0 {
		b.WriteString("Playable:\n")
		for _, p := range state.PlayerPlayable {
			if len(p.Sides) == 0 {
				b.WriteString(fmt.Sprintf("  %s (opening, no side)\n", formatTile(p.Tile, true)))
				continue
			}
			sides := make([]string, len(p.Sides))
			for i, s := range p.Sides {
				sides[i] = string(s)
			}
			b.WriteString(fmt.Sprintf("  %s -> %s\n", formatTile(p.Tile, true), strings.Join(sides, ", ")))
		}
		return b.String()
	}

	switch {
	case state.CanDraw:
		b.WriteString("Nothing fits: draw_tile\n")
	case state.CanPass:
		b.WriteString("Nothing fits and the boneyard is empty: pass_turn\n")
	}
	return b.String()
}

func formatPlayResult(result *service.PlayResult) string {
	var b strings.Builder

	if result.Message != "" {
		b.WriteString(result.Message + "\n")
	}
	for _, ev := range result.Events {
		line := "• " + ev.Message
		if ev.Message == "" {
			line = "• " + ev.Type
		}
		b.WriteString(line + "\n")
	}
	if result.BotTurnPending {
		b.WriteString(fmt.Sprintf("Computer to move (bot_turn with game_id %s)\n", result.GameID))
	}

	b.WriteString("\n")
	b.WriteString(formatSnapshot(result.GameState))
	return b.String()
}

func formatHistoryEntry(entry engine.MoveHistoryEntry) string {
	who := "You"
	if entry.Actor == engine.PlayerBot {
		who = "Computer"
	}

	switch entry.Action {
	case engine.ActionPlay:
		s := fmt.Sprintf("%s played", who)
		if entry.Tile != nil {
			s += " " + formatTile(*entry.Tile, false)
		}
		if entry.Side != engine.SideNone {
			s += " on the " + string(entry.Side)
		}
		return s
	case engine.ActionDraw:
		if entry.Tile != nil {
			return fmt.Sprintf("%s drew %s", who, formatTile(*entry.Tile, false))
		}
		return fmt.Sprintf("%s drew a tile", who)
	case engine.ActionPass:
		return fmt.Sprintf("%s passed", who)
	}
	return fmt.Sprintf("%s %s", who, entry.Action)
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Move History (Page %d/%d), %d moves total\n\n",
		history.Page, history.TotalPages, history.TotalMoves))

	if len(history.Moves) == 0 {
		b.WriteString("(no moves yet)\n")
		return b.String()
	}

	for _, move := range history.Moves {
		line := fmt.Sprintf("%d. %s", move.MoveNumber, formatHistoryEntry(move))
		if move.LeftEnd != nil && move.RightEnd != nil {
			line += fmt.Sprintf(" [ends %d|%d]", *move.LeftEnd, *move.RightEnd)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
