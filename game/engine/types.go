package engine

// Player identifies one of the two seats at the table
type Player string

const (
	PlayerHuman Player = "player"
	PlayerBot   Player = "bot"
)

// Opponent returns the other seat
func (p Player) Opponent() Player {
	if p == PlayerBot {
		return PlayerHuman
	}
	return PlayerBot
}

// Phase is the lifecycle state of a game. Every phase other than
// PhaseInProgress is terminal.
type Phase string

const (
	PhaseInProgress Phase = "in_progress"
	PhasePlayerWon  Phase = "player_won"
	PhaseBotWon     Phase = "bot_won"
	PhaseDraw       Phase = "draw"
)

// IsTerminal reports whether the phase ends the game
func (p Phase) IsTerminal() bool {
	return p != PhaseInProgress
}

// Side is the end of the chain a tile attaches to. SideNone is used for the
// opening move, where no side has to be chosen.
type Side string

const (
	SideNone  Side = ""
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// ParseSide converts user input into a Side
func ParseSide(s string) (Side, bool) {
	switch s {
	case "":
		return SideNone, true
	case "left", "l", "L":
		return SideLeft, true
	case "right", "r", "R":
		return SideRight, true
	default:
		return SideNone, false
	}
}

// Action is the kind of a history entry
type Action string

const (
	ActionPlay Action = "play"
	ActionDraw Action = "draw"
	ActionPass Action = "pass"
)

// DealOrder decides who receives the first tile of every dealing round
type DealOrder string

const (
	DealPlayerFirst DealOrder = "player_first"
	DealBotFirst    DealOrder = "bot_first"
)

// SidePolicy resolves a move that fits both ends of the board
type SidePolicy string

const (
	SidePolicyLeftFirst SidePolicy = "left_first"
	SidePolicyParity    SidePolicy = "parity"
)

// ScoringMode ranks playable tiles for the greedy strategy
type ScoringMode string

const (
	ScoringPipSum      ScoringMode = "pip_sum"
	ScoringFlexibility ScoringMode = "flexibility"
)

// OpeningOrientation fixes how the first tile lies on the board
type OpeningOrientation string

const (
	OpeningAsPlayed     OpeningOrientation = "as_played"
	OpeningSmallerFirst OpeningOrientation = "smaller_first"
)

// Strategy names understood by NewStrategy
const (
	StrategyGreedy = "greedy"
	StrategyRandom = "random"
)

// Validation constants
const (
	MinMaxPip       = 1
	MaxMaxPip       = 18
	MinHandSize     = 1
	DefaultMaxPip   = 6
	DefaultHandSize = 7
)

// GameConfig holds the rules of one game. Zero values fall back to the
// defaults in DefaultGameConfig when passed through Normalized.
type GameConfig struct {
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	MaxPip             int                `json:"max_pip"`
	HandSize           int                `json:"hand_size"`
	StartingPlayer     Player             `json:"starting_player"`
	DealOrder          DealOrder          `json:"deal_order"`
	Seed               *int64             `json:"seed,omitempty"`
	BotStrategy        string             `json:"bot_strategy"`
	Scoring            ScoringMode        `json:"scoring"`
	SidePolicy         SidePolicy         `json:"side_policy"`
	OpeningOrientation OpeningOrientation `json:"opening_orientation"`
}

// Move is a tile together with the side it attaches to
type Move struct {
	Tile Tile `json:"tile"`
	Side Side `json:"side"`
}

// PlayableTile lists the legal sides for one tile in the player's hand.
// Sides is empty on the opening move.
type PlayableTile struct {
	TileID int    `json:"tile_id"`
	Tile   Tile   `json:"tile"`
	Sides  []Side `json:"sides"`
}

// MoveHistoryEntry represents a single action in the game history
type MoveHistoryEntry struct {
	MoveNumber int    `json:"move_number"`
	Actor      Player `json:"actor"`
	Action     Action `json:"action"`
	Tile       *Tile  `json:"tile,omitempty"`
	Side       Side   `json:"side,omitempty"`
	LeftEnd    *int   `json:"left_end,omitempty"`
	RightEnd   *int   `json:"right_end,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// Snapshot is the outbound view of a game. The bot's hand is only filled in
// once the game has ended.
type Snapshot struct {
	ConfigName     string            `json:"config_name"`
	Phase          Phase             `json:"phase"`
	TurnOwner      Player            `json:"turn_owner"`
	Board          []Tile            `json:"board"`
	LeftEnd        *int              `json:"left_end,omitempty"`
	RightEnd       *int              `json:"right_end,omitempty"`
	PlayerHand     []Tile            `json:"player_hand"`
	PlayerPips     int               `json:"player_pips"`
	BotHandSize    int               `json:"bot_hand_size"`
	BotHand        []Tile            `json:"bot_hand,omitempty"`
	BotPips        *int              `json:"bot_pips,omitempty"`
	DeckRemaining  int               `json:"deck_remaining"`
	BotTurnPending bool              `json:"bot_turn_pending"`
	PlayerPlayable []PlayableTile    `json:"player_playable"`
	CanDraw        bool              `json:"can_draw"`
	CanPass        bool              `json:"can_pass"`
	Seed           int64             `json:"seed"`
	TotalMoves     int               `json:"total_moves"`
	LastMove       *MoveHistoryEntry `json:"last_move,omitempty"`
}
