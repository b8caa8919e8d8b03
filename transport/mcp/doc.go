// Package mcp exposes Domino Duel to AI agents over the Model Context
// Protocol.
//
// Client is a thin proxy: every tool call becomes a request against the REST
// API, and the JSON response is turned into readable text. The agent plays
// the human seat.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: table management
//   - game_state: board, hand with tile ids, legal moves
//   - play_tile, draw_tile, pass_turn: the player's actions
//   - bot_turn: let the computer move when bot_turn_pending is set
//   - new_game: deal again, optionally with rule overrides
//   - reveal_bot_hand: the computer's tiles, once the game is over
//   - move_history, list_configs, game_instructions
//
// Transport Modes:
//
// The server runs over stdio for local MCP clients, or is mounted on the
// HTTP server at /mcp.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal().Err(err).Msg("mcp stdio server failed")
//	}
package mcp
