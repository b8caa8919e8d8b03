package engine

import (
	"fmt"
	"math/rand"
)

// BotStrategy picks the computer's move. It returns false when no tile in
// hand can be played, in which case the caller draws or passes.
type BotStrategy interface {
	ChooseMove(hand *Hand, board *Board) (Move, bool)
}

// NewStrategy builds the strategy named in a game config
func NewStrategy(name string, scoring ScoringMode, policy SidePolicy, rng *rand.Rand) (BotStrategy, error) {
	switch name {
	case "", StrategyGreedy:
		return &GreedyStrategy{Scoring: scoring, SidePolicy: policy}, nil
	case StrategyRandom:
		if rng == nil {
			return nil, fmt.Errorf("random strategy requires a random source")
		}
		return &RandomStrategy{rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown bot strategy: %q", name)
	}
}

// GreedyStrategy plays the best-scoring playable tile without lookahead.
// Ties go to the tile found first in hand order.
type GreedyStrategy struct {
	Scoring    ScoringMode
	SidePolicy SidePolicy
}

// ChooseMove implements BotStrategy
func (s *GreedyStrategy) ChooseMove(hand *Hand, board *Board) (Move, bool) {
	tiles := hand.Tiles()
	if len(tiles) == 0 {
		return Move{}, false
	}

	if board.IsEmpty() {
		return Move{Tile: tiles[0], Side: SideNone}, true
	}

	best, bestScore := -1, -1
	for i, t := range tiles {
		if !board.CanPlay(t) {
			continue
		}
		if score := s.score(tiles, i); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return Move{}, false
	}

	tile := tiles[best]
	return Move{Tile: tile, Side: s.chooseSide(tile, board.PlayableSides(tile))}, true
}

func (s *GreedyStrategy) score(tiles []Tile, idx int) int {
	tile := tiles[idx]
	if s.Scoring != ScoringFlexibility {
		return tile.Pips()
	}
	shared := 0
	for i, other := range tiles {
		if i == idx {
			continue
		}
		if other.Matches(tile.A) || other.Matches(tile.B) {
			shared++
		}
	}
	return shared
}

func (s *GreedyStrategy) chooseSide(tile Tile, sides []Side) Side {
	if len(sides) == 1 {
		return sides[0]
	}
	if s.SidePolicy == SidePolicyParity {
		if tile.Pips()%2 == 0 {
			return SideLeft
		}
		return SideRight
	}
	return SideLeft
}

// RandomStrategy plays a uniformly chosen legal move
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandomStrategy creates a RandomStrategy using rng
func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

// ChooseMove implements BotStrategy
func (s *RandomStrategy) ChooseMove(hand *Hand, board *Board) (Move, bool) {
	tiles := hand.Tiles()
	if len(tiles) == 0 {
		return Move{}, false
	}
	if board.IsEmpty() {
		return Move{Tile: tiles[s.rng.Intn(len(tiles))], Side: SideNone}, true
	}

	var moves []Move
	for _, t := range tiles {
		for _, side := range board.PlayableSides(t) {
			moves = append(moves, Move{Tile: t, Side: side})
		}
	}
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[s.rng.Intn(len(moves))], true
}
