package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultGameConfig returns the classic double-six rules
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:               "double-six",
		Description:        "Classic double-six set, seven tiles each, player opens",
		MaxPip:             DefaultMaxPip,
		HandSize:           DefaultHandSize,
		StartingPlayer:     PlayerHuman,
		DealOrder:          DealPlayerFirst,
		BotStrategy:        StrategyGreedy,
		Scoring:            ScoringPipSum,
		SidePolicy:         SidePolicyLeftFirst,
		OpeningOrientation: OpeningAsPlayed,
	}
}

// Normalized returns a copy of c with unset fields filled from the defaults
func (c *GameConfig) Normalized() *GameConfig {
	def := DefaultGameConfig()
	if c == nil {
		return def
	}

	out := *c
	if out.Seed != nil {
		seed := *out.Seed
		out.Seed = &seed
	}
	if out.Name == "" {
		out.Name = def.Name
	}
	if out.MaxPip == 0 {
		out.MaxPip = def.MaxPip
	}
	if out.HandSize == 0 {
		out.HandSize = def.HandSize
	}
	if out.StartingPlayer == "" {
		out.StartingPlayer = def.StartingPlayer
	}
	if out.DealOrder == "" {
		out.DealOrder = def.DealOrder
	}
	if out.BotStrategy == "" {
		out.BotStrategy = def.BotStrategy
	}
	if out.Scoring == "" {
		out.Scoring = def.Scoring
	}
	if out.SidePolicy == "" {
		out.SidePolicy = def.SidePolicy
	}
	if out.OpeningOrientation == "" {
		out.OpeningOrientation = def.OpeningOrientation
	}
	return &out
}

// ValidateGameConfig checks that a configuration describes a playable game
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if config.MaxPip < MinMaxPip || config.MaxPip > MaxMaxPip {
		return fmt.Errorf("config validation: max_pip must be between %d and %d, got %d", MinMaxPip, MaxMaxPip, config.MaxPip)
	}

	total := TileCount(config.MaxPip)
	if config.HandSize < MinHandSize {
		return fmt.Errorf("config validation: hand_size must be at least %d, got %d", MinHandSize, config.HandSize)
	}
	if 2*config.HandSize > total {
		return fmt.Errorf("config validation: hand_size %d needs %d tiles but a max_pip %d set has only %d",
			config.HandSize, 2*config.HandSize, config.MaxPip, total)
	}

	switch config.StartingPlayer {
	case PlayerHuman, PlayerBot:
	default:
		return fmt.Errorf("config validation: starting_player must be %q or %q, got %q", PlayerHuman, PlayerBot, config.StartingPlayer)
	}

	switch config.DealOrder {
	case DealPlayerFirst, DealBotFirst:
	default:
		return fmt.Errorf("config validation: deal_order must be %q or %q, got %q", DealPlayerFirst, DealBotFirst, config.DealOrder)
	}

	switch config.BotStrategy {
	case StrategyGreedy, StrategyRandom:
	default:
		return fmt.Errorf("config validation: bot_strategy must be %q or %q, got %q", StrategyGreedy, StrategyRandom, config.BotStrategy)
	}

	switch config.Scoring {
	case ScoringPipSum, ScoringFlexibility:
	default:
		return fmt.Errorf("config validation: scoring must be %q or %q, got %q", ScoringPipSum, ScoringFlexibility, config.Scoring)
	}

	switch config.SidePolicy {
	case SidePolicyLeftFirst, SidePolicyParity:
	default:
		return fmt.Errorf("config validation: side_policy must be %q or %q, got %q", SidePolicyLeftFirst, SidePolicyParity, config.SidePolicy)
	}

	switch config.OpeningOrientation {
	case OpeningAsPlayed, OpeningSmallerFirst:
	default:
		return fmt.Errorf("config validation: opening_orientation must be %q or %q, got %q",
			OpeningAsPlayed, OpeningSmallerFirst, config.OpeningOrientation)
	}

	return nil
}

// LoadGameConfig reads, normalizes and validates a configuration file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	normalized := config.Normalized()
	if err := ValidateGameConfig(normalized); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", filename, err)
	}

	return normalized, nil
}
