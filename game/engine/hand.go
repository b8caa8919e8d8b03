package engine

import "fmt"

// Hand is the set of tiles held by one player. Insertion order is kept so the
// bot's tie-breaks are deterministic.
type Hand struct {
	tiles []Tile
}

// NewHand creates a hand holding tiles in the given order
func NewHand(tiles ...Tile) *Hand {
	return &Hand{tiles: append([]Tile(nil), tiles...)}
}

// Add appends a tile to the hand
func (h *Hand) Add(tile Tile) {
	h.tiles = append(h.tiles, tile)
}

// Remove takes the tile with the given ID out of the hand
func (h *Hand) Remove(id int) (Tile, error) {
	for i, t := range h.tiles {
		if t.ID == id {
			h.tiles = append(h.tiles[:i:i], h.tiles[i+1:]...)
			return t, nil
		}
	}
	return Tile{}, fmt.Errorf("%w: tile %d", ErrTileNotInHand, id)
}

// Find returns the tile with the given ID
func (h *Hand) Find(id int) (Tile, bool) {
	for _, t := range h.tiles {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}

// Contains reports whether the tile with the given ID is held
func (h *Hand) Contains(id int) bool {
	_, ok := h.Find(id)
	return ok
}

// Size returns the number of tiles held
func (h *Hand) Size() int {
	return len(h.tiles)
}

// IsEmpty reports whether the hand has no tiles
func (h *Hand) IsEmpty() bool {
	return len(h.tiles) == 0
}

// Tiles returns a copy of the held tiles in insertion order
func (h *Hand) Tiles() []Tile {
	return append([]Tile(nil), h.tiles...)
}

// PipCount sums the pips of every held tile
func (h *Hand) PipCount() int {
	total := 0
	for _, t := range h.tiles {
		total += t.Pips()
	}
	return total
}

// HasPlayable reports whether any held tile can be played on board
func (h *Hand) HasPlayable(board *Board) bool {
	for _, t := range h.tiles {
		if board.CanPlay(t) {
			return true
		}
	}
	return false
}
