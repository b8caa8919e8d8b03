// Package websocket pushes Domino Duel table updates to browsers.
//
// A central Hub keeps the connected clients grouped by session ID. After
// every action, including a delayed bot turn, the API layer calls
// BroadcastToSession with the new snapshot and every client watching that
// session receives it as one JSON text frame:
//
//	{"session_id":"a1b2","game_id":"...","event":"state_update","game_state":{...}}
//
// Snapshots never carry the bot's hand while a game is in progress, so
// spectators see exactly what the human player sees.
//
// Clients connect with ?session=<id>. Anything they send is ignored; the
// connection is watch-only and kept alive with ping/pong.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	server := api.NewServer(gameService, hub)
package websocket
