package engine

import (
	"fmt"
	"math/rand"
)

// GenerateTiles returns every unordered pair (i, j) with 0 <= i <= j <= maxPip
// exactly once, ordered by i then j. Tile IDs follow that order.
func GenerateTiles(maxPip int) []Tile {
	if maxPip < 0 {
		return nil
	}
	tiles := make([]Tile, 0, TileCount(maxPip))
	id := 0
	for i := 0; i <= maxPip; i++ {
		for j := i; j <= maxPip; j++ {
			tiles = append(tiles, NewTile(id, i, j))
			id++
		}
	}
	return tiles
}

// TileCount is the size of a full set for maxPip: (N+1)(N+2)/2
func TileCount(maxPip int) int {
	if maxPip < 0 {
		return 0
	}
	return (maxPip + 1) * (maxPip + 2) / 2
}

// Deck holds the undealt tiles in draw order
type Deck struct {
	tiles []Tile
}

// NewDeck creates an unshuffled deck for maxPip
func NewDeck(maxPip int) *Deck {
	return &Deck{tiles: GenerateTiles(maxPip)}
}

// NewDeckFromTiles creates a deck that draws tiles in the given order
func NewDeckFromTiles(tiles []Tile) *Deck {
	return &Deck{tiles: append([]Tile(nil), tiles...)}
}

// Shuffle applies a Fisher-Yates permutation driven by rng
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d.tiles) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.tiles[i], d.tiles[j] = d.tiles[j], d.tiles[i]
	}
}

// Draw removes and returns the first tile
func (d *Deck) Draw() (Tile, error) {
	if len(d.tiles) == 0 {
		return Tile{}, ErrEmptyDeck
	}
	tile := d.tiles[0]
	d.tiles = d.tiles[1:]
	return tile, nil
}

// Size returns the number of tiles left
func (d *Deck) Size() int {
	return len(d.tiles)
}

// Tiles returns a copy of the remaining tiles in draw order
func (d *Deck) Tiles() []Tile {
	return append([]Tile(nil), d.tiles...)
}

// Deal draws count tiles for each hand, alternating between them one tile at
// a time in the order given.
func (d *Deck) Deal(count int, hands ...*Hand) error {
	if need := count * len(hands); need > len(d.tiles) {
		return fmt.Errorf("cannot deal %d tiles from a deck of %d: %w", need, len(d.tiles), ErrEmptyDeck)
	}
	for i := 0; i < count; i++ {
		for _, h := range hands {
			tile, _ := d.Draw()
			h.Add(tile)
		}
	}
	return nil
}
