// Package engine provides the core rules for a two-seat game of dominoes
// between a human player and the computer.
//
// The engine package implements the game mechanics including:
//   - Tile set generation, shuffling and dealing
//   - The board chain with end matching and tile orientation
//   - Move validation and side resolution
//   - Bot strategies (greedy and random)
//   - Turn order, draws, passes and end-of-game detection
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. Snapshot is the outbound view of a game with the
// bot's hand hidden until the game ends. GameConfig defines the rules and is
// loaded from JSON files.
//
// Usage:
//
//	config, err := engine.LoadGameConfig("configs/double-six.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	placed, err := gameEngine.SubmitPlayerPlay(tileID, engine.SideNone)
//	if gameEngine.BotTurnPending() {
//		result, err := gameEngine.RunBotTurn()
//	}
//	snap := gameEngine.Snapshot()
//
// Game Rules:
//
// Each seat is dealt a hand from a shuffled double-N set. On their turn a
// seat plays a tile whose face matches an open end of the chain, or draws
// from the deck. With an empty deck and nothing to play the seat passes. The
// first seat to empty its hand wins; if the deck is exhausted and neither
// seat can play, the game is a draw.
//
// The engine never sleeps or schedules work. Pacing of the bot turn belongs
// to the caller.
package engine
