// Package api provides the HTTP REST API for Domino Duel.
//
// Endpoints:
//
// Session Management:
//   - POST   /api/sessions             - Create a session ({config_id, max_pip, hand_size, starting_player, seed})
//   - GET    /api/sessions             - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET    /api/sessions/{id}        - Get one session
//   - DELETE /api/sessions/{id}        - Delete a session
//
// Game Operations:
//   - GET  /api/sessions/{id}/state    - Current snapshot
//   - POST /api/sessions/{id}/play     - Play a tile ({tile_id, side}); side is omitted on the opening move
//   - POST /api/sessions/{id}/draw     - Draw from the boneyard
//   - POST /api/sessions/{id}/pass     - Pass (empty boneyard, nothing playable)
//   - POST /api/sessions/{id}/bot-turn - Run the bot's turn ({game_id} or ?game_id=)
//   - POST /api/sessions/{id}/new-game - Deal again, optionally with rule overrides
//   - GET  /api/sessions/{id}/bot-hand - Bot hand, only once the game is over
//   - GET  /api/sessions/{id}/history  - Move history (?page=&limit=&order=)
//
// Configuration:
//   - GET  /api/configs                - List rule presets
//   - POST /api/configs                - Save a preset
//   - GET  /api/configs/{name}         - Get one preset
//
// Live updates are served on /ws?session={id} by the websocket hub.
//
// Bot Turns:
//
// Every action result carries bot_turn_pending. A server built with
// WithBotDelay plays that turn itself after the delay and pushes the new
// snapshot over the websocket; the turn is pinned to the game_id that was
// current when it was scheduled, so dealing a new game in between discards
// it. Without a delay clients call bot-turn themselves.
//
// Error Handling:
//
// Errors are returned as JSON with a machine readable code:
//
//	{
//	  "error": "tile cannot be played on the board",
//	  "code": "illegal_move"
//	}
//
// Unknown sessions and presets are 404, turn and lifecycle conflicts
// (out_of_turn, game_over, stale_game, game_in_progress) are 409, rule
// violations are 422 and malformed bodies are 400.
package api
