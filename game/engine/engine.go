package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state
	Snapshot() *Snapshot
	Phase() Phase
	TurnOwner() Player
	BotTurnPending() bool
	Reset() *Snapshot

	// Player actions
	SubmitPlayerPlay(tileID int, side Side) (Tile, error)
	SubmitPlayerDraw() (Tile, error)
	SubmitPlayerPass() error

	// Bot
	RunBotTurn() (*BotTurnResult, error)
	RevealBotHand() ([]Tile, error)

	// Configuration and history
	GetConfig() *GameConfig
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// BotTurnResult summarizes one resolved bot turn. Drawn tiles are counted but
// not disclosed.
type BotTurnResult struct {
	Played *Move `json:"played,omitempty"`
	Draws  int   `json:"draws"`
	Passed bool  `json:"passed"`
	Phase  Phase `json:"phase"`
}

// Layout describes an arbitrary mid-game position
type Layout struct {
	Deck       []Tile
	PlayerHand []Tile
	BotHand    []Tile
	Board      []Tile
	TurnOwner  Player
}

// Option customizes a GameEngine
type Option func(*GameEngine)

// WithStrategy replaces the bot strategy named in the config
func WithStrategy(strategy BotStrategy) Option {
	return func(e *GameEngine) {
		e.strategy = strategy
	}
}

// GameEngine implements the Engine interface. It is a synchronous state
// machine and is not safe for concurrent use; callers serialize access.
type GameEngine struct {
	config   *GameConfig
	options  []Option
	seed     int64
	rng      *rand.Rand
	strategy BotStrategy

	deck  *Deck
	board *Board
	hands map[Player]*Hand

	turn    Player
	phase   Phase
	history []MoveHistoryEntry

	// full tile set this game started with
	tileSet []Tile
}

// NewEngine creates an engine and deals a new game
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	cfg := config.Normalized()
	if err := ValidateGameConfig(cfg); err != nil {
		return nil, err
	}

	e := &GameEngine{config: cfg, options: opts}
	if err := e.deal(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngineWithDefaults creates an engine with the double-six rules
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(DefaultGameConfig())
	if err != nil {
		panic(fmt.Sprintf("default config rejected: %v", err))
	}
	return e
}

// NewEngineFromLayout creates an in-progress engine positioned at layout.
// The tiles of all four zones must be pairwise distinct and the board must
// form a valid chain.
func NewEngineFromLayout(config *GameConfig, layout Layout, opts ...Option) (*GameEngine, error) {
	cfg := config.Normalized()
	if err := ValidateGameConfig(cfg); err != nil {
		return nil, err
	}

	board, err := BoardFromTiles(layout.Board, cfg.OpeningOrientation)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var all []Tile
	for _, zone := range [][]Tile{layout.Deck, layout.PlayerHand, layout.BotHand, layout.Board} {
		for _, t := range zone {
			if seen[t.ID] {
				return nil, fmt.Errorf("layout: tile id %d appears more than once", t.ID)
			}
			seen[t.ID] = true
			all = append(all, t)
		}
	}

	turn := layout.TurnOwner
	if turn == "" {
		turn = PlayerHuman
	}

	e := &GameEngine{
		config:  cfg,
		options: opts,
		board:   board,
		deck:    NewDeckFromTiles(layout.Deck),
		hands: map[Player]*Hand{
			PlayerHuman: NewHand(layout.PlayerHand...),
			PlayerBot:   NewHand(layout.BotHand...),
		},
		turn:    turn,
		phase:   PhaseInProgress,
		tileSet: all,
	}
	if err := e.initRandom(); err != nil {
		return nil, err
	}
	e.evaluateTermination()
	return e, nil
}

// BoardFromTiles rebuilds a board from already oriented tiles
func BoardFromTiles(tiles []Tile, opening OpeningOrientation) (*Board, error) {
	board := NewBoard(opening)
	for i, t := range tiles {
		if i > 0 && tiles[i-1].B != t.A {
			return nil, fmt.Errorf("%w: %s does not follow %s", ErrIllegalPlacement, t, tiles[i-1])
		}
		for _, prev := range tiles[:i] {
			if prev.ID == t.ID {
				return nil, fmt.Errorf("%w: tile id %d repeated", ErrIllegalPlacement, t.ID)
			}
		}
	}
	board.tiles = append(board.tiles, tiles...)
	return board, nil
}

// deal initializes a fresh game from the config
func (e *GameEngine) deal() error {
	if err := e.initRandom(); err != nil {
		return err
	}

	e.deck = NewDeck(e.config.MaxPip)
	e.tileSet = e.deck.Tiles()
	e.deck.Shuffle(e.rng)

	e.board = NewBoard(e.config.OpeningOrientation)
	e.hands = map[Player]*Hand{
		PlayerHuman: NewHand(),
		PlayerBot:   NewHand(),
	}

	first, second := e.hands[PlayerHuman], e.hands[PlayerBot]
	if e.config.DealOrder == DealBotFirst {
		first, second = second, first
	}
	if err := e.deck.Deal(e.config.HandSize, first, second); err != nil {
		return err
	}

	e.turn = e.config.StartingPlayer
	e.phase = PhaseInProgress
	e.history = nil
	return nil
}

func (e *GameEngine) initRandom() error {
	if e.config.Seed != nil {
		e.seed = *e.config.Seed
	} else {
		e.seed = time.Now().UnixNano()
	}
	e.rng = rand.New(rand.NewSource(e.seed))

	strategy, err := NewStrategy(e.config.BotStrategy, e.config.Scoring, e.config.SidePolicy, e.rng)
	if err != nil {
		return err
	}
	e.strategy = strategy
	for _, opt := range e.options {
		opt(e)
	}
	return nil
}

// Reset deals a new game with the same configuration. Without a pinned seed
// the new deal is different.
func (e *GameEngine) Reset() *Snapshot {
	if err := e.deal(); err != nil {
		// the config was validated when the engine was created
		panic(fmt.Sprintf("reset failed: %v", err))
	}
	return e.Snapshot()
}

// Phase returns the current lifecycle phase
func (e *GameEngine) Phase() Phase {
	return e.phase
}

// TurnOwner returns whose turn it is
func (e *GameEngine) TurnOwner() Player {
	return e.turn
}

// BotTurnPending reports whether the caller should schedule RunBotTurn
func (e *GameEngine) BotTurnPending() bool {
	return e.phase == PhaseInProgress && e.turn == PlayerBot
}

// GetConfig returns the normalized configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// Seed returns the seed used for the current deal
func (e *GameEngine) Seed() int64 {
	return e.seed
}

// checkActor rejects actions after the game ended or out of turn
func (e *GameEngine) checkActor(actor Player) error {
	if e.phase.IsTerminal() {
		return fmt.Errorf("%w: phase is %s", ErrActionAfterTermination, e.phase)
	}
	if e.turn != actor {
		return fmt.Errorf("%w: it is the %s's turn", ErrActionOutOfTurn, e.turn)
	}
	return nil
}

// SubmitPlayerPlay places a tile from the player's hand. side must be given
// only when the tile fits both ends. It returns the tile as placed.
func (e *GameEngine) SubmitPlayerPlay(tileID int, side Side) (Tile, error) {
	if err := e.checkActor(PlayerHuman); err != nil {
		return Tile{}, err
	}

	hand := e.hands[PlayerHuman]
	tile, ok := hand.Find(tileID)
	if !ok {
		return Tile{}, fmt.Errorf("%w: tile %d", ErrTileNotInHand, tileID)
	}
	if !e.board.CanPlay(tile) {
		return Tile{}, fmt.Errorf("%w: %s", ErrIllegalMove, tile)
	}

	resolved, err := e.board.ResolveSide(tile, side)
	if err != nil {
		return Tile{}, fmt.Errorf("%w: %s with side %q, legal sides %v", err, tile, side, e.board.PlayableSides(tile))
	}

	placed, err := e.applyPlay(PlayerHuman, tile, resolved)
	if err != nil {
		return Tile{}, err
	}

	e.endTurn()
	return placed, nil
}

// SubmitPlayerDraw draws one tile into the player's hand. The turn continues.
func (e *GameEngine) SubmitPlayerDraw() (Tile, error) {
	if err := e.checkActor(PlayerHuman); err != nil {
		return Tile{}, err
	}

	tile, err := e.deck.Draw()
	if err != nil {
		return Tile{}, err
	}
	e.hands[PlayerHuman].Add(tile)
	e.record(PlayerHuman, ActionDraw, &tile, SideNone)

	e.evaluateTermination()
	return tile, nil
}

// SubmitPlayerPass ends the player's turn without playing. Only allowed when
// the deck is empty and no tile in hand fits.
func (e *GameEngine) SubmitPlayerPass() error {
	if err := e.checkActor(PlayerHuman); err != nil {
		return err
	}
	if e.deck.Size() > 0 || e.hands[PlayerHuman].HasPlayable(e.board) {
		return ErrPassNotAllowed
	}

	e.record(PlayerHuman, ActionPass, nil, SideNone)
	e.endTurn()
	return nil
}

// RunBotTurn resolves the bot's turn synchronously: play if possible,
// otherwise draw and retry until the deck runs out, then pass.
func (e *GameEngine) RunBotTurn() (*BotTurnResult, error) {
	if err := e.checkActor(PlayerBot); err != nil {
		return nil, err
	}

	hand := e.hands[PlayerBot]
	result := &BotTurnResult{}

	// Draws made earlier in the turn are undone if the strategy then fails.
	deckBefore, handBefore := e.deck.Tiles(), hand.Tiles()
	boardBefore, historyBefore := e.board.Tiles(), len(e.history)
	rollback := func() {
		e.deck = NewDeckFromTiles(deckBefore)
		hand.tiles = handBefore
		e.board.tiles = boardBefore
		e.history = e.history[:historyBefore]
	}

	for {
		move, ok := e.strategy.ChooseMove(hand, e.board)
		if ok {
			side, err := e.validateBotMove(move)
			if err != nil {
				rollback()
				return nil, err
			}
			placed, err := e.applyPlay(PlayerBot, move.Tile, side)
			if err != nil {
				rollback()
				return nil, err
			}
			result.Played = &Move{Tile: placed, Side: side}
			break
		}

		tile, err := e.deck.Draw()
		if err != nil {
			e.record(PlayerBot, ActionPass, nil, SideNone)
			result.Passed = true
			break
		}
		hand.Add(tile)
		e.record(PlayerBot, ActionDraw, &tile, SideNone)
		result.Draws++
	}

	e.endTurn()
	result.Phase = e.phase
	return result, nil
}

// validateBotMove checks a strategy's choice against the rules
func (e *GameEngine) validateBotMove(move Move) (Side, error) {
	if !e.hands[PlayerBot].Contains(move.Tile.ID) {
		return SideNone, fmt.Errorf("bot strategy: %w: tile %d", ErrTileNotInHand, move.Tile.ID)
	}
	if e.board.IsEmpty() {
		return SideNone, nil
	}

	sides := e.board.PlayableSides(move.Tile)
	switch {
	case len(sides) == 0:
		return SideNone, fmt.Errorf("bot strategy: %w: %s", ErrIllegalMove, move.Tile)
	case move.Side == SideNone && len(sides) == 1:
		return sides[0], nil
	case containsSide(sides, move.Side):
		return move.Side, nil
	default:
		return SideNone, fmt.Errorf("bot strategy: %w: %s on %q", ErrAmbiguousOrInvalidSide, move.Tile, move.Side)
	}
}

// applyPlay places tile and removes it from actor's hand
func (e *GameEngine) applyPlay(actor Player, tile Tile, side Side) (Tile, error) {
	placed, err := e.board.Place(tile, side)
	if err != nil {
		return Tile{}, err
	}
	if _, err := e.hands[actor].Remove(tile.ID); err != nil {
		return Tile{}, err
	}
	e.record(actor, ActionPlay, &placed, side)
	return placed, nil
}

// endTurn evaluates termination and, if the game goes on, passes the turn
func (e *GameEngine) endTurn() {
	if e.evaluateTermination() {
		return
	}
	e.turn = e.turn.Opponent()
}

// evaluateTermination applies the end conditions in priority order:
// player hand empty, bot hand empty, then mutual block with an empty deck.
func (e *GameEngine) evaluateTermination() bool {
	if e.phase.IsTerminal() {
		return true
	}

	player, bot := e.hands[PlayerHuman], e.hands[PlayerBot]
	switch {
	case player.IsEmpty():
		e.phase = PhasePlayerWon
	case bot.IsEmpty():
		e.phase = PhaseBotWon
	case e.deck.Size() == 0 && !player.HasPlayable(e.board) && !bot.HasPlayable(e.board):
		e.phase = PhaseDraw
	default:
		return false
	}
	return true
}

// RevealBotHand returns the bot's tiles once the game is over
func (e *GameEngine) RevealBotHand() ([]Tile, error) {
	if !e.phase.IsTerminal() {
		return nil, ErrGameInProgress
	}
	return e.hands[PlayerBot].Tiles(), nil
}

// record appends an entry to the move history
func (e *GameEngine) record(actor Player, action Action, tile *Tile, side Side) {
	entry := MoveHistoryEntry{
		MoveNumber: len(e.history) + 1,
		Actor:      actor,
		Action:     action,
		Side:       side,
		Timestamp:  time.Now().Unix(),
	}
	if tile != nil {
		t := *tile
		entry.Tile = &t
	}
	if left, right, err := e.board.Ends(); err == nil {
		entry.LeftEnd, entry.RightEnd = &left, &right
	}
	e.history = append(e.history, entry)
}

// GetMoveHistory returns the history as the player may see it: tiles the bot
// drew stay hidden until the game is over.
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	out := make([]MoveHistoryEntry, len(e.history))
	for i, entry := range e.history {
		out[i] = e.redact(entry)
	}
	return out
}

// GetLastMove returns the most recent visible entry, or nil
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	last := e.redact(e.history[len(e.history)-1])
	return &last
}

func (e *GameEngine) redact(entry MoveHistoryEntry) MoveHistoryEntry {
	if entry.Actor == PlayerBot && entry.Action == ActionDraw && !e.phase.IsTerminal() {
		entry.Tile = nil
	}
	return entry
}

// Snapshot builds the outbound view of the game
func (e *GameEngine) Snapshot() *Snapshot {
	player, bot := e.hands[PlayerHuman], e.hands[PlayerBot]
	playerTurn := e.phase == PhaseInProgress && e.turn == PlayerHuman

	snap := &Snapshot{
		ConfigName:     e.config.Name,
		Phase:          e.phase,
		TurnOwner:      e.turn,
		Board:          e.board.Tiles(),
		PlayerHand:     player.Tiles(),
		PlayerPips:     player.PipCount(),
		BotHandSize:    bot.Size(),
		DeckRemaining:  e.deck.Size(),
		BotTurnPending: e.BotTurnPending(),
		PlayerPlayable: []PlayableTile{},
		CanDraw:        playerTurn && e.deck.Size() > 0,
		CanPass:        playerTurn && e.deck.Size() == 0 && !player.HasPlayable(e.board),
		Seed:           e.seed,
		TotalMoves:     len(e.history),
		LastMove:       e.GetLastMove(),
	}

	if left, right, err := e.board.Ends(); err == nil {
		snap.LeftEnd, snap.RightEnd = &left, &right
	}

	if e.phase == PhaseInProgress {
		for _, t := range player.Tiles() {
			if e.board.CanPlay(t) {
				snap.PlayerPlayable = append(snap.PlayerPlayable, PlayableTile{
					TileID: t.ID,
					Tile:   t,
					Sides:  e.board.PlayableSides(t),
				})
			}
		}
	} else {
		snap.BotHand = bot.Tiles()
		pips := bot.PipCount()
		snap.BotPips = &pips
	}

	return snap
}

// CheckInvariants verifies that deck, hands and board partition the tile set
// and that the chain is consistent.
func (e *GameEngine) CheckInvariants() error {
	seen := make(map[int]Tile, len(e.tileSet))
	zones := map[string][]Tile{
		"deck":        e.deck.Tiles(),
		"player hand": e.hands[PlayerHuman].Tiles(),
		"bot hand":    e.hands[PlayerBot].Tiles(),
		"board":       e.board.Tiles(),
	}
	for zone, tiles := range zones {
		for _, t := range tiles {
			if _, dup := seen[t.ID]; dup {
				return fmt.Errorf("tile %d appears twice (found again in %s)", t.ID, zone)
			}
			seen[t.ID] = t
		}
	}

	if len(seen) != len(e.tileSet) {
		return fmt.Errorf("expected %d tiles across all zones, found %d", len(e.tileSet), len(seen))
	}
	for _, orig := range e.tileSet {
		t, ok := seen[orig.ID]
		if !ok {
			return fmt.Errorf("tile %d (%s) is missing", orig.ID, orig)
		}
		if !(t.A == orig.A && t.B == orig.B) && !(t.A == orig.B && t.B == orig.A) {
			return fmt.Errorf("tile %d changed from %s to %s", orig.ID, orig, t)
		}
	}

	board := e.board.Tiles()
	for i := 1; i < len(board); i++ {
		if board[i-1].B != board[i].A {
			return fmt.Errorf("chain broken between %s and %s", board[i-1], board[i])
		}
	}
	return nil
}
