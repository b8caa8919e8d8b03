package engine

import (
	"errors"
	"testing"
)

func seededConfig(seed int64) *GameConfig {
	config := DefaultGameConfig()
	config.Seed = &seed
	return config
}

func newLayoutEngine(t *testing.T, layout Layout) *GameEngine {
	t.Helper()
	e, err := NewEngineFromLayout(DefaultGameConfig(), layout)
	if err != nil {
		t.Fatalf("Failed to create engine from layout: %v", err)
	}
	return e
}

// playOut drives both seats to the end, checking the tile partition after
// every step. The player side uses the greedy strategy.
func playOut(t *testing.T, e *GameEngine) {
	t.Helper()
	greedy := &GreedyStrategy{Scoring: ScoringPipSum, SidePolicy: SidePolicyLeftFirst}

	for step := 0; step < 1000; step++ {
		if e.Phase().IsTerminal() {
			return
		}

		if e.BotTurnPending() {
			if _, err := e.RunBotTurn(); err != nil {
				t.Fatalf("Step %d: bot turn failed: %v", step, err)
			}
		} else {
			snap := e.Snapshot()
			board, err := BoardFromTiles(snap.Board, e.GetConfig().OpeningOrientation)
			if err != nil {
				t.Fatalf("Step %d: rebuilding board: %v", step, err)
			}
			move, ok := greedy.ChooseMove(NewHand(snap.PlayerHand...), board)
			switch {
			case ok:
				side := SideNone
				if len(board.PlayableSides(move.Tile)) == 2 {
					side = move.Side
				}
				if _, err := e.SubmitPlayerPlay(move.Tile.ID, side); err != nil {
					t.Fatalf("Step %d: play %s failed: %v", step, move.Tile, err)
				}
			case snap.CanDraw:
				if _, err := e.SubmitPlayerDraw(); err != nil {
					t.Fatalf("Step %d: draw failed: %v", step, err)
				}
			case snap.CanPass:
				if err := e.SubmitPlayerPass(); err != nil {
					t.Fatalf("Step %d: pass failed: %v", step, err)
				}
			default:
				t.Fatalf("Step %d: player has no legal action in %+v", step, snap)
			}
		}

		if err := e.CheckInvariants(); err != nil {
			t.Fatalf("Step %d: %v", step, err)
		}
	}
	t.Fatal("Game did not finish")
}

func TestNewEngineSetup(t *testing.T) {
	e, err := NewEngine(seededConfig(12345))
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	snap := e.Snapshot()
	if snap.DeckRemaining != 14 {
		t.Errorf("Expected 14 tiles in deck, got %d", snap.DeckRemaining)
	}
	if len(snap.PlayerHand) != 7 || snap.BotHandSize != 7 {
		t.Errorf("Expected 7 tiles each, got %d and %d", len(snap.PlayerHand), snap.BotHandSize)
	}
	if len(snap.Board) != 0 {
		t.Errorf("Expected empty board, got %v", snap.Board)
	}
	if snap.Phase != PhaseInProgress || snap.TurnOwner != PlayerHuman {
		t.Errorf("Expected in_progress with player to move, got %s/%s", snap.Phase, snap.TurnOwner)
	}
	if snap.Seed != 12345 {
		t.Errorf("Expected seed 12345, got %d", snap.Seed)
	}
	if snap.BotHand != nil || snap.BotPips != nil {
		t.Error("Bot hand must stay hidden while the game is in progress")
	}
	if len(snap.PlayerPlayable) != 7 {
		t.Errorf("Every tile should be playable on the opening, got %d", len(snap.PlayerPlayable))
	}
	if err := e.CheckInvariants(); err != nil {
		t.Errorf("Invariant violated after setup: %v", err)
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	config := DefaultGameConfig()
	config.HandSize = 20
	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for a hand size larger than half the set")
	}
}

func TestNewEngineBotStarts(t *testing.T) {
	config := seededConfig(3)
	config.StartingPlayer = PlayerBot
	config.DealOrder = DealBotFirst

	e, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	if !e.BotTurnPending() {
		t.Fatal("Expected bot turn to be pending")
	}
	if _, err := e.SubmitPlayerDraw(); !errors.Is(err, ErrActionOutOfTurn) {
		t.Errorf("Expected ErrActionOutOfTurn, got %v", err)
	}

	result, err := e.RunBotTurn()
	if err != nil {
		t.Fatalf("Bot turn failed: %v", err)
	}
	if result.Played == nil || result.Draws != 0 {
		t.Errorf("Bot should open without drawing, got %+v", result)
	}
	if e.TurnOwner() != PlayerHuman {
		t.Errorf("Expected turn to pass to the player, got %s", e.TurnOwner())
	}
}

func TestSameSeedSameGame(t *testing.T) {
	a, _ := NewEngine(seededConfig(2024))
	b, _ := NewEngine(seededConfig(2024))

	ha, hb := a.Snapshot().PlayerHand, b.Snapshot().PlayerHand
	for i := range ha {
		if ha[i] != hb[i] {
			t.Fatalf("Same seed dealt different hands: %v vs %v", ha, hb)
		}
	}

	playOut(t, a)
	playOut(t, b)
	if a.Phase() != b.Phase() {
		t.Errorf("Same seed ended differently: %s vs %s", a.Phase(), b.Phase())
	}
	if len(a.GetMoveHistory()) != len(b.GetMoveHistory()) {
		t.Error("Same seed produced different histories")
	}
}

func TestOpeningDoubleThenBotMatches(t *testing.T) {
	e := newLayoutEngine(t, Layout{
		Deck:       []Tile{NewTile(10, 4, 4)},
		PlayerHand: []Tile{NewTile(1, 3, 3), NewTile(2, 1, 2)},
		BotHand:    []Tile{NewTile(3, 3, 5), NewTile(4, 0, 0)},
		TurnOwner:  PlayerHuman,
	})

	if _, err := e.SubmitPlayerPlay(1, SideLeft); !errors.Is(err, ErrAmbiguousOrInvalidSide) {
		t.Errorf("Expected a side on the opening move to be rejected, got %v", err)
	}

	placed, err := e.SubmitPlayerPlay(1, SideNone)
	if err != nil {
		t.Fatalf("Opening play failed: %v", err)
	}
	if placed.A != 3 || placed.B != 3 {
		t.Errorf("Expected 3|3 on the board, got %s", placed)
	}
	snap := e.Snapshot()
	if *snap.LeftEnd != 3 || *snap.RightEnd != 3 {
		t.Errorf("Expected ends 3/3, got %d/%d", *snap.LeftEnd, *snap.RightEnd)
	}
	if !snap.BotTurnPending {
		t.Fatal("Expected bot turn pending after the player's play")
	}

	result, err := e.RunBotTurn()
	if err != nil {
		t.Fatalf("Bot turn failed: %v", err)
	}
	if result.Played == nil || result.Played.Tile.ID != 3 {
		t.Fatalf("Expected bot to play 3|5, got %+v", result)
	}

	board := e.Snapshot().Board
	if len(board) != 2 {
		t.Fatalf("Expected 2 tiles on the board, got %v", board)
	}
	// left_first: 3|5 is turned so its 3 touches the double and 5 is the open end
	if board[0] != NewTile(3, 5, 3) {
		t.Errorf("Expected 5|3 on the left, got %s", board[0])
	}
	left, right, _ := e.board.Ends()
	if left != 5 || right != 3 {
		t.Errorf("Expected ends 5/3, got %d/%d", left, right)
	}
	if e.TurnOwner() != PlayerHuman {
		t.Errorf("Expected player's turn, got %s", e.TurnOwner())
	}
}

func TestPlayerWinsWithDeckRemaining(t *testing.T) {
	e := newLayoutEngine(t, Layout{
		Deck:       []Tile{NewTile(10, 6, 6), NewTile(11, 0, 1)},
		PlayerHand: []Tile{NewTile(1, 3, 4)},
		BotHand:    []Tile{NewTile(2, 1, 5)},
		Board:      []Tile{NewTile(0, 2, 3)},
		TurnOwner:  PlayerHuman,
	})

	if _, err := e.SubmitPlayerPlay(1, SideNone); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if e.Phase() != PhasePlayerWon {
		t.Fatalf("Expected player_won, got %s", e.Phase())
	}
	if e.BotTurnPending() {
		t.Error("No bot turn should be pending after the game ended")
	}

	if _, err := e.RunBotTurn(); !errors.Is(err, ErrActionAfterTermination) {
		t.Errorf("Expected ErrActionAfterTermination, got %v", err)
	}
	if _, err := e.SubmitPlayerDraw(); !errors.Is(err, ErrActionAfterTermination) {
		t.Errorf("Expected ErrActionAfterTermination, got %v", err)
	}

	hand, err := e.RevealBotHand()
	if err != nil {
		t.Fatalf("RevealBotHand failed: %v", err)
	}
	if len(hand) != 1 || hand[0].ID != 2 {
		t.Errorf("Expected bot hand [1|5], got %v", hand)
	}

	snap := e.Snapshot()
	if len(snap.BotHand) != 1 || snap.BotPips == nil || *snap.BotPips != 6 {
		t.Errorf("Expected bot hand revealed in snapshot, got %v / %v", snap.BotHand, snap.BotPips)
	}
}

func TestMutualBlockIsDraw(t *testing.T) {
	e := newLayoutEngine(t, Layout{
		PlayerHand: []Tile{NewTile(1, 6, 0), NewTile(2, 1, 2)},
		BotHand:    []Tile{NewTile(3, 3, 3)},
		Board:      []Tile{NewTile(0, 5, 6)},
		TurnOwner:  PlayerHuman,
	})

	if _, err := e.SubmitPlayerPlay(1, SideNone); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if e.Phase() != PhaseDraw {
		t.Errorf("Expected draw, got %s", e.Phase())
	}
}

func TestBlockedLayoutIsDrawImmediately(t *testing.T) {
	e := newLayoutEngine(t, Layout{
		PlayerHand: []Tile{NewTile(1, 1, 2)},
		BotHand:    []Tile{NewTile(2, 0, 3)},
		Board:      []Tile{NewTile(0, 5, 6)},
		TurnOwner:  PlayerHuman,
	})
	if e.Phase() != PhaseDraw {
		t.Errorf("Expected draw, got %s", e.Phase())
	}
	if err := e.SubmitPlayerPass(); !errors.Is(err, ErrActionAfterTermination) {
		t.Errorf("Expected ErrActionAfterTermination, got %v", err)
	}
}

func TestPlayerPlayErrors(t *testing.T) {
	layout := Layout{
		Deck:       []Tile{NewTile(10, 6, 6)},
		PlayerHand: []Tile{NewTile(1, 5, 3), NewTile(2, 1, 2), NewTile(3, 3, 1)},
		BotHand:    []Tile{NewTile(4, 0, 0)},
		Board:      []Tile{NewTile(0, 3, 5)},
		TurnOwner:  PlayerHuman,
	}

	tests := []struct {
		name   string
		tileID int
		side   Side
		err    error
	}{
		{"not in hand", 4, SideNone, ErrTileNotInHand},
		{"unknown tile", 99, SideNone, ErrTileNotInHand},
		{"does not fit", 2, SideNone, ErrIllegalMove},
		{"does not fit with side", 2, SideLeft, ErrIllegalMove},
		{"both ends without side", 1, SideNone, ErrAmbiguousOrInvalidSide},
		{"one end with side", 3, SideLeft, ErrAmbiguousOrInvalidSide},
		{"invalid side", 1, Side("middle"), ErrAmbiguousOrInvalidSide},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e := newLayoutEngine(t, layout)
			before := e.Snapshot()

			_, err := e.SubmitPlayerPlay(test.tileID, test.side)
			if !errors.Is(err, test.err) {
				t.Fatalf("Expected %v, got %v", test.err, err)
			}

			after := e.Snapshot()
			if len(after.Board) != len(before.Board) || len(after.PlayerHand) != len(before.PlayerHand) {
				t.Error("Failed play mutated the game")
			}
			if after.TurnOwner != PlayerHuman || after.TotalMoves != 0 {
				t.Error("Failed play changed the turn or history")
			}
		})
	}
}

func TestPlayerPlayBothEnds(t *testing.T) {
	for _, side := range []Side{SideLeft, SideRight} {
		e := newLayoutEngine(t, Layout{
			Deck:       []Tile{NewTile(10, 6, 6)},
			PlayerHand: []Tile{NewTile(1, 5, 3), NewTile(2, 1, 2)},
			BotHand:    []Tile{NewTile(4, 0, 0)},
			Board:      []Tile{NewTile(0, 3, 5)},
			TurnOwner:  PlayerHuman,
		})
		placed, err := e.SubmitPlayerPlay(1, side)
		if err != nil {
			t.Fatalf("Play on %s failed: %v", side, err)
		}
		board := e.Snapshot().Board
		if side == SideLeft && (board[0] != placed || placed.B != 3) {
			t.Errorf("Expected tile on the left touching 3, got %v", board)
		}
		if side == SideRight && (board[1] != placed || placed.A != 5) {
			t.Errorf("Expected tile on the right touching 5, got %v", board)
		}
		if !e.BotTurnPending() {
			t.Error("Expected bot turn pending")
		}
	}
}

func TestPlayerDraw(t *testing.T) {
	e := newLayoutEngine(t, Layout{
		Deck:       []Tile{NewTile(10, 5, 6)},
		PlayerHand: []Tile{NewTile(1, 1, 2)},
		BotHand:    []Tile{NewTile(4, 0, 0)},
		Board:      []Tile{NewTile(0, 3, 5)},
		TurnOwner:  PlayerHuman,
	})

	if err := e.SubmitPlayerPass(); !errors.Is(err, ErrPassNotAllowed) {
		t.Errorf("Expected ErrPassNotAllowed while the deck has tiles, got %v", err)
	}

	tile, err := e.SubmitPlayerDraw()
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if tile.ID != 10 {
		t.Errorf("Expected to draw tile 10, got %s", tile)
	}
	if e.TurnOwner() != PlayerHuman {
		t.Error("Drawing must not end the player's turn")
	}
	if _, err := e.SubmitPlayerDraw(); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("Expected ErrEmptyDeck, got %v", err)
	}

	if _, err := e.SubmitPlayerPlay(10, SideNone); err != nil {
		t.Errorf("Expected drawn tile to be playable: %v", err)
	}
}

func TestPlayerPass(t *testing.T) {
	e := newLayoutEngine(t, Layout{
		PlayerHand: []Tile{NewTile(1, 0, 0)},
		BotHand:    []Tile{NewTile(2, 5, 1), NewTile(3, 6, 6)},
		Board:      []Tile{NewTile(0, 3, 5)},
		TurnOwner:  PlayerHuman,
	})

	snap := e.Snapshot()
	if !snap.CanPass || snap.CanDraw {
		t.Errorf("Expected pass available and draw unavailable, got pass=%v draw=%v", snap.CanPass, snap.CanDraw)
	}
	if err := e.SubmitPlayerPass(); err != nil {
		t.Fatalf("Pass failed: %v", err)
	}
	if !e.BotTurnPending() {
		t.Error("Expected bot turn pending after pass")
	}
	last := e.GetLastMove()
	if last == nil || last.Action != ActionPass || last.Actor != PlayerHuman {
		t.Errorf("Expected pass recorded in history, got %+v", last)
	}
}

func TestPassRejectedWithPlayableTile(t *testing.T) {
	e := newLayoutEngine(t, Layout{
		PlayerHand: []Tile{NewTile(1, 3, 0)},
		BotHand:    []Tile{NewTile(2, 5, 1)},
		Board:      []Tile{NewTile(0, 3, 5)},
		TurnOwner:  PlayerHuman,
	})
	if err := e.SubmitPlayerPass(); !errors.Is(err, ErrPassNotAllowed) {
		t.Errorf("Expected ErrPassNotAllowed, got %v", err)
	}
}

func TestBotDrawsUntilPlayable(t *testing.T) {
	e := newLayoutEngine(t, Layout{
		Deck:       []Tile{NewTile(10, 1, 1), NewTile(11, 2, 5), NewTile(12, 4, 4)},
		PlayerHand: []Tile{NewTile(1, 6, 2)},
		BotHand:    []Tile{NewTile(2, 0, 0)},
		Board:      []Tile{NewTile(0, 3, 5)},
		TurnOwner:  PlayerBot,
	})

	result, err := e.RunBotTurn()
	if err != nil {
		t.Fatalf("Bot turn failed: %v", err)
	}
	if result.Draws != 2 {
		t.Errorf("Expected 2 draws, got %d", result.Draws)
	}
	if result.Played == nil || result.Played.Tile.ID != 11 || result.Played.Side != SideRight {
		t.Fatalf("Expected bot to play 2|5 on the right, got %+v", result.Played)
	}
	if result.Played.Tile.A != 5 || result.Played.Tile.B != 2 {
		t.Errorf("Expected 2|5 flipped to 5|2, got %s", result.Played.Tile)
	}

	snap := e.Snapshot()
	if snap.BotHandSize != 2 || snap.DeckRemaining != 1 {
		t.Errorf("Expected bot 2 tiles and deck 1, got %d and %d", snap.BotHandSize, snap.DeckRemaining)
	}
	if snap.TurnOwner != PlayerHuman {
		t.Errorf("Expected player's turn, got %s", snap.TurnOwner)
	}

	// the bot's draws are hidden from the player while the game goes on
	history := e.GetMoveHistory()
	if len(history) != 3 {
		t.Fatalf("Expected 3 history entries, got %d", len(history))
	}
	for _, entry := range history[:2] {
		if entry.Action != ActionDraw || entry.Tile != nil {
			t.Errorf("Expected redacted bot draw, got %+v", entry)
		}
	}
	if history[2].Action != ActionPlay || history[2].Tile == nil {
		t.Errorf("Expected visible bot play, got %+v", history[2])
	}

	if _, err := e.SubmitPlayerPlay(1, SideNone); err != nil {
		t.Fatalf("Player play failed: %v", err)
	}
	if e.Phase() != PhasePlayerWon {
		t.Fatalf("Expected player_won, got %s", e.Phase())
	}
	for _, entry := range e.GetMoveHistory()[:2] {
		if entry.Tile == nil {
			t.Error("Bot draws should be visible once the game is over")
		}
	}
}

func TestBotPassesWithEmptyDeck(t *testing.T) {
	e := newLayoutEngine(t, Layout{
		PlayerHand: []Tile{NewTile(1, 5, 1)},
		BotHand:    []Tile{NewTile(2, 0, 0)},
		Board:      []Tile{NewTile(0, 3, 5)},
		TurnOwner:  PlayerBot,
	})

	result, err := e.RunBotTurn()
	if err != nil {
		t.Fatalf("Bot turn failed: %v", err)
	}
	if !result.Passed || result.Played != nil || result.Draws != 0 {
		t.Errorf("Expected a plain pass, got %+v", result)
	}
	if e.TurnOwner() != PlayerHuman || e.Phase() != PhaseInProgress {
		t.Errorf("Expected player's turn in progress, got %s/%s", e.TurnOwner(), e.Phase())
	}
}

func TestBotWins(t *testing.T) {
	e := newLayoutEngine(t, Layout{
		Deck:       []Tile{NewTile(10, 0, 0)},
		PlayerHand: []Tile{NewTile(1, 1, 1)},
		BotHand:    []Tile{NewTile(2, 5, 6)},
		Board:      []Tile{NewTile(0, 3, 5)},
		TurnOwner:  PlayerBot,
	})

	result, err := e.RunBotTurn()
	if err != nil {
		t.Fatalf("Bot turn failed: %v", err)
	}
	if result.Phase != PhaseBotWon || e.Phase() != PhaseBotWon {
		t.Errorf("Expected bot_won, got %s", e.Phase())
	}
	if _, err := e.SubmitPlayerPlay(1, SideNone); !errors.Is(err, ErrActionAfterTermination) {
		t.Errorf("Expected ErrActionAfterTermination, got %v", err)
	}
}

func TestRevealBotHandInProgress(t *testing.T) {
	e := NewEngineWithDefaults()
	if _, err := e.RevealBotHand(); !errors.Is(err, ErrGameInProgress) {
		t.Errorf("Expected ErrGameInProgress, got %v", err)
	}
}

func TestRunBotTurnOutOfTurn(t *testing.T) {
	e := NewEngineWithDefaults()
	if _, err := e.RunBotTurn(); !errors.Is(err, ErrActionOutOfTurn) {
		t.Errorf("Expected ErrActionOutOfTurn, got %v", err)
	}
}

type fixedStrategy struct {
	move Move
}

func (s fixedStrategy) ChooseMove(*Hand, *Board) (Move, bool) {
	return s.move, true
}

func TestBotStrategyIllegalMoveRejected(t *testing.T) {
	layout := Layout{
		PlayerHand: []Tile{NewTile(1, 5, 1)},
		BotHand:    []Tile{NewTile(2, 0, 0)},
		Board:      []Tile{NewTile(0, 3, 5)},
		TurnOwner:  PlayerBot,
	}
	e, err := NewEngineFromLayout(DefaultGameConfig(), layout, WithStrategy(fixedStrategy{move: Move{Tile: NewTile(2, 0, 0), Side: SideLeft}}))
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if _, err := e.RunBotTurn(); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Expected ErrIllegalMove, got %v", err)
	}
	if e.Snapshot().TotalMoves != 0 || !e.BotTurnPending() {
		t.Error("Rejected bot move must leave the game untouched")
	}
}

// declineOnceStrategy passes on its first call and returns move afterwards
type declineOnceStrategy struct {
	calls int
	move  Move
}

func (s *declineOnceStrategy) ChooseMove(*Hand, *Board) (Move, bool) {
	s.calls++
	if s.calls == 1 {
		return Move{}, false
	}
	return s.move, true
}

func TestBotStrategyFailureAfterDrawRollsBack(t *testing.T) {
	layout := Layout{
		Deck:       []Tile{NewTile(10, 6, 6), NewTile(11, 4, 4)},
		PlayerHand: []Tile{NewTile(1, 5, 1)},
		BotHand:    []Tile{NewTile(2, 0, 0)},
		Board:      []Tile{NewTile(0, 3, 5)},
		TurnOwner:  PlayerBot,
	}
	strategy := &declineOnceStrategy{move: Move{Tile: NewTile(999, 1, 1)}}
	e, err := NewEngineFromLayout(DefaultGameConfig(), layout, WithStrategy(strategy))
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if _, err := e.RunBotTurn(); !errors.Is(err, ErrTileNotInHand) {
		t.Fatalf("Expected ErrTileNotInHand, got %v", err)
	}
	if strategy.calls != 2 {
		t.Fatalf("Expected the strategy to be asked twice, got %d", strategy.calls)
	}

	snap := e.Snapshot()
	if snap.DeckRemaining != 2 {
		t.Errorf("Expected deck of 2 after rollback, got %d", snap.DeckRemaining)
	}
	if snap.BotHandSize != 1 {
		t.Errorf("Expected bot hand of 1 after rollback, got %d", snap.BotHandSize)
	}
	if snap.TotalMoves != 0 {
		t.Errorf("Expected no history after rollback, got %d entries", snap.TotalMoves)
	}
	if !e.BotTurnPending() {
		t.Error("Expected the bot to still be on turn")
	}
	if err := e.CheckInvariants(); err != nil {
		t.Errorf("Invariants broken after rollback: %v", err)
	}
}

func TestQueryIdempotent(t *testing.T) {
	e := newLayoutEngine(t, Layout{
		Deck:       []Tile{NewTile(10, 6, 6)},
		PlayerHand: []Tile{NewTile(1, 5, 1)},
		BotHand:    []Tile{NewTile(2, 0, 0)},
		Board:      []Tile{NewTile(0, 3, 5)},
	})

	l1, r1, _ := e.board.Ends()
	l2, r2, _ := e.board.Ends()
	if l1 != l2 || r1 != r2 {
		t.Error("Ends changed without a mutation")
	}
	if a, b := e.Snapshot(), e.Snapshot(); a.TotalMoves != b.TotalMoves || a.DeckRemaining != b.DeckRemaining {
		t.Error("Snapshot changed without a mutation")
	}
}

func TestResetWithPinnedSeed(t *testing.T) {
	e, _ := NewEngine(seededConfig(77))
	first := e.Snapshot().PlayerHand
	playOut(t, e)

	snap := e.Reset()
	if snap.Phase != PhaseInProgress || snap.TotalMoves != 0 || len(snap.Board) != 0 {
		t.Errorf("Expected a fresh game after reset, got %+v", snap)
	}
	for i := range first {
		if snap.PlayerHand[i] != first[i] {
			t.Fatalf("Pinned seed should deal the same hand after reset")
		}
	}
	if err := e.CheckInvariants(); err != nil {
		t.Error(err)
	}
}

func TestFullGamesKeepInvariants(t *testing.T) {
	configs := []func(*GameConfig){
		func(c *GameConfig) {},
		func(c *GameConfig) { c.MaxPip = 9; c.HandSize = 10 },
		func(c *GameConfig) { c.StartingPlayer = PlayerBot; c.DealOrder = DealBotFirst },
		func(c *GameConfig) { c.BotStrategy = StrategyRandom; c.OpeningOrientation = OpeningSmallerFirst },
		func(c *GameConfig) { c.Scoring = ScoringFlexibility; c.SidePolicy = SidePolicyParity },
		func(c *GameConfig) { c.MaxPip = 2; c.HandSize = 3 },
	}

	for i, adjust := range configs {
		for seed := int64(1); seed <= 25; seed++ {
			config := seededConfig(seed)
			adjust(config)
			e, err := NewEngine(config)
			if err != nil {
				t.Fatalf("Config %d: %v", i, err)
			}
			playOut(t, e)

			if !e.Phase().IsTerminal() {
				t.Fatalf("Config %d seed %d: game not finished", i, seed)
			}
			snap := e.Snapshot()
			switch snap.Phase {
			case PhasePlayerWon:
				if len(snap.PlayerHand) != 0 {
					t.Errorf("Config %d seed %d: player won with tiles in hand", i, seed)
				}
			case PhaseBotWon:
				if snap.BotHandSize != 0 {
					t.Errorf("Config %d seed %d: bot won with tiles in hand", i, seed)
				}
			case PhaseDraw:
				if snap.DeckRemaining != 0 {
					t.Errorf("Config %d seed %d: draw with tiles in the deck", i, seed)
				}
			}
		}
	}
}
