// Package service provides the business logic layer for Domino Duel.
//
// The service package implements:
//   - Multi-session game management
//   - Player actions (play, draw, pass) and bot turn resolution
//   - New games with rule overrides and stale bot turn detection
//   - Paginated move history with hidden bot draws
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages rule presets.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. All calls are serialized through one lock, so engines,
// which are not safe for concurrent use, only ever see one caller.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "double-six", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.PlayTile(ctx, info.ID, tileID, engine.SideNone)
//	if result.BotTurnPending {
//		result, err = gameService.RunBotTurn(ctx, info.ID, result.GameID)
//	}
//
// Bot Turns:
//
// The service never waits. Callers that want a pause before the bot moves
// schedule RunBotTurn themselves and pass the game ID they saw; if the
// session has been dealt a new game in the meantime ErrStaleGame is returned.
package service
